package syntax_test

import (
	"bytes"
	"strings"
	"testing"

	"go.loxlang.net/syntax"
)

// parse returns the canonical printed form of the parsed program.
func parse(src string) (string, error) {
	tokens, err := syntax.Scan(src)
	if err != nil {
		return "", err
	}
	stmts, err := syntax.Parse(tokens)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	for i, s := range stmts {
		if i > 0 {
			buf.WriteByte('\n')
		}
		syntax.WriteStmt(&buf, s)
	}
	return buf.String(), nil
}

func TestStmtParseTrees(t *testing.T) {
	for _, test := range []struct {
		input, want string
	}{
		{`print 1 + 2 * 3;`, `print 1 + 2 * 3;`},
		{`1 - 2 - 3;`, `1 - 2 - 3;`},
		{`1 == 2 != 3 < 4 <= 5 > 6 >= 7;`, `1 == 2 != 3 < 4 <= 5 > 6 >= 7;`},
		{`a = b = c;`, `a = b = c;`},
		{`(1 + 2) * 3;`, `(1 + 2) * 3;`},
		{`!-x;`, `!-x;`},
		{`a.b.c = d;`, `a.b.c = d;`},
		{`f(1, 2)(3);`, `f(1, 2)(3);`},
		{`f();`, `f();`},
		{`super.m(1);`, `super.m(1);`},
		{`this.x;`, `this.x;`},
		{`x and y or z;`, `x and y or z;`},
		{`"a" + "b";`, `"a" + "b";`},
		{`nil == false;`, `nil == false;`},
		{`var x;`, `var x;`},
		{`var x = nil;`, `var x = nil;`},
		{`if (a) print 1;`, `if (a) print 1;`},
		{`if (a) print 1; else print 2;`, `if (a) print 1; else print 2;`},
		{`if (a) if (b) print 1; else print 2;`, // dangling else binds inner
			`if (a) if (b) print 1; else print 2;`},
		{`while (a) f();`, `while (a) f();`},
		{`return;`, `return;`},
		{`return 1 + 2;`, `return 1 + 2;`},
		{"{ var a = 1; }", "{\n  var a = 1;\n}"},
		{"fun f(a, b) { return a; }", "fun f(a, b) {\n  return a;\n}"},
		{"class A {\n m() { }\n}", "class A {\n  m() {\n  }\n}"},
		{"class B < A {\n}", "class B < A {\n}"},

		// for loops desugar to while loops at parse time
		{`for (var i = 0; i < 3; i = i + 1) print i;`,
			"{\n  var i = 0;\n  while (i < 3) {\n    print i;\n    i = i + 1;\n  }\n}"},
		{`for (;;) print 1;`, `while (true) print 1;`},
		{`for (; x;) print 1;`, `while (x) print 1;`},
		{`for (i = 0;;) print 1;`, "{\n  i = 0;\n  while (true) print 1;\n}"},
	} {
		got, err := parse(test.input)
		if err != nil {
			t.Errorf("parse %q failed: %v", test.input, err)
			continue
		}
		if got != test.want {
			t.Errorf("parse %q = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, test := range []struct {
		input, want string
	}{
		{`+;`, `[line 1] error at '+': expected expression`},
		{`(1;`, `[line 1] error at ';': expected ')' after expression`},
		{`1 + 2`, `[line 1] error at end: expected ';' after expression`},
		{`1 = 2;`, `[line 1] error at '=': invalid assignment target`},
		{`a.b() = c;`, `[line 1] error at '=': invalid assignment target`},
		{`var 1 = 2;`, `[line 1] error at '1': expected variable name`},
		{`print;`, `[line 1] error at ';': expected expression`},
		{`super m;`, `[line 1] error at 'm': expected '.' after 'super'`},
		{"if (x print 1;", `[line 1] error at 'print': expected ')' after if condition`},
		{"class A < {}", `[line 1] error at '{': expected superclass name`},
	} {
		tokens, err := syntax.Scan(test.input)
		if err != nil {
			t.Errorf("scan %q failed: %v", test.input, err)
			continue
		}
		_, err = syntax.Parse(tokens)
		if err == nil {
			t.Errorf("parse %q: unexpected success", test.input)
			continue
		}
		if got := err.(syntax.ErrorList)[0].Error(); got != test.want {
			t.Errorf("parse %q: error was %q, want %q", test.input, got, test.want)
		}
	}
}

// After an error the parser synchronizes to the next statement
// boundary, so one parse reports every bad declaration and still
// returns the good ones.
func TestParseSynchronization(t *testing.T) {
	src := "var = 1;\nfun 2() {}\nprint 3;"
	tokens, err := syntax.Scan(src)
	if err != nil {
		t.Fatal(err)
	}
	stmts, err := syntax.Parse(tokens)
	if err == nil {
		t.Fatal("unexpected success")
	}
	errs := err.(syntax.ErrorList)
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), errs)
	}
	if errs[0].Line != 1 || errs[1].Line != 2 {
		t.Errorf("error lines were %d, %d, want 1, 2", errs[0].Line, errs[1].Line)
	}

	// The failed declarations are nil placeholders; the rest parse.
	var good []syntax.Stmt
	for _, s := range stmts {
		if s != nil {
			good = append(good, s)
		}
	}
	if len(good) != 1 {
		t.Fatalf("got %d good statements, want 1", len(good))
	}
	if _, ok := good[0].(*syntax.PrintStmt); !ok {
		t.Errorf("surviving statement is %T, want *syntax.PrintStmt", good[0])
	}
}

func TestParseLimits(t *testing.T) {
	args := strings.Repeat("0, ", 256)
	src := "f(" + args[:len(args)-2] + ");"
	tokens, err := syntax.Scan(src)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := syntax.Parse(tokens); err == nil {
		t.Error("256 arguments: unexpected success")
	} else if got := err.(syntax.ErrorList)[0].Msg; got != "cannot have more than 255 arguments" {
		t.Errorf("error was %q", got)
	}

	params := strings.Repeat("a, ", 256)
	src = "fun f(" + params[:len(params)-2] + ") {}"
	tokens, err = syntax.Scan(src)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := syntax.Parse(tokens); err == nil {
		t.Error("256 parameters: unexpected success")
	} else if got := err.(syntax.ErrorList)[0].Msg; got != "cannot have more than 255 parameters" {
		t.Errorf("error was %q", got)
	}
}

// Printing a parsed program and reparsing the result must reach a
// fixed point: the second print equals the first.
func TestPrinterRoundTrip(t *testing.T) {
	for _, src := range []string{
		`print 1 + 2 * (3 - 4) / 5;`,
		`var x = -1; x = x + 1; print !x;`,
		"fun fib(n) { if (n < 2) return n; return fib(n - 1) + fib(n - 2); } print fib(10);",
		"class Point { init(x, y) { this.x = x; this.y = y; } sum() { return this.x + this.y; } }",
		"class B < A { m() { return super.m(); } }",
		`for (var i = 0; i < 10; i = i + 1) { print i; }`,
		`while (a or b and !c) { x.y = z("s", 1.5, nil); }`,
	} {
		first, err := parse(src)
		if err != nil {
			t.Errorf("parse %q failed: %v", src, err)
			continue
		}
		second, err := parse(first)
		if err != nil {
			t.Errorf("reparse of %q failed: %v\nprinted form:\n%s", src, err, first)
			continue
		}
		if first != second {
			t.Errorf("print/reparse of %q not a fixed point:\nfirst:\n%s\nsecond:\n%s", src, first, second)
		}
	}
}
