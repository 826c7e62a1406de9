package resolve_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.loxlang.net/internal/chunkedfile"
	"go.loxlang.net/resolve"
	"go.loxlang.net/syntax"
)

func TestResolve(t *testing.T) {
	filename := "testdata/resolve.lox"
	for _, chunk := range chunkedfile.Read(filename, t) {
		tokens, err := syntax.Scan(chunk.Source)
		if err != nil {
			t.Error(err)
			continue
		}
		stmts, err := syntax.Parse(tokens)
		if err != nil {
			t.Error(err)
			continue
		}
		if err := resolve.File(stmts, func(syntax.Expr, int) {}); err != nil {
			for _, e := range err.(resolve.ErrorList) {
				chunk.GotError(e.Line, e.Msg)
			}
		}
		chunk.Done()
	}
}

// depths resolves a program and returns the recorded depth for each
// bound reference, keyed by lexeme.
func depths(t *testing.T, src string) map[string]int {
	t.Helper()
	tokens, err := syntax.Scan(src)
	if err != nil {
		t.Fatal(err)
	}
	stmts, err := syntax.Parse(tokens)
	if err != nil {
		t.Fatal(err)
	}
	got := make(map[string]int)
	bind := func(e syntax.Expr, depth int) {
		switch e := e.(type) {
		case *syntax.Ident:
			got[e.Name.Lexeme] = depth
		case *syntax.AssignExpr:
			got[e.Name.Lexeme+"="] = depth
		case *syntax.ThisExpr:
			got["this"] = depth
		case *syntax.SuperExpr:
			got["super"] = depth
		}
	}
	if err := resolve.File(stmts, bind); err != nil {
		t.Fatal(err)
	}
	return got
}

func TestResolveDepths(t *testing.T) {
	got := depths(t, `
fun outer() {
  var x = 1;
  fun inner() {
    var y = 2;
    print x;
    print y;
    x = y;
  }
  inner();
}
`)
	// x is one function scope out from inner's body; y and the call to
	// inner are local to their own scopes.
	want := map[string]int{
		"x":     1,
		"x=":    1,
		"y":     0,
		"inner": 0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("depth mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveGlobalsUnbound(t *testing.T) {
	// References that no enclosing scope binds stay out of the table:
	// the interpreter treats them as globals.
	got := depths(t, `
var g = 1;
fun f() {
  print g;
}
`)
	if _, ok := got["g"]; ok {
		t.Errorf("global reference g was bound at depth %d, want unbound", got["g"])
	}
}

func TestResolveThisSuper(t *testing.T) {
	got := depths(t, `
class B < A {
  m() {
    print this.f;
    return super.m;
  }
}
`)
	// Inside a method body: the parameter scope is 0, the scope
	// binding 'this' is 1, and the scope binding 'super' is 2.
	// The superclass reference A is global and stays unbound.
	want := map[string]int{
		"this":  1,
		"super": 2,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("depth mismatch (-want +got):\n%s", diff)
	}
}
