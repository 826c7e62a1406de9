// Package resolve performs static name resolution of a Lox syntax tree.
//
// The resolver walks the tree once before execution and computes, for
// every variable reference, assignment, 'this', and 'super' expression,
// the number of lexical scopes between the use and the declaration.
// The depths are delivered through a callback, typically the
// interpreter's Resolve method, which stores them in a side table keyed
// by expression identity. References not bound by any enclosing scope
// are left out of the table; the interpreter treats them as globals.
//
// The resolver also enforces the static scoping rules: a local may not
// be read in its own initializer or redeclared in the same scope,
// 'return' is only legal inside a function and may not carry a value
// inside an initializer, and 'this'/'super' are only legal inside
// methods (for 'super', methods of a subclass).
package resolve

import (
	"fmt"

	"go.loxlang.net/syntax"
)

// An Error describes a scoping violation found during resolution.
type Error struct {
	Line  int
	Where string // "at 'lexeme'" or "at end"
	Msg   string
}

func (e Error) Error() string {
	return fmt.Sprintf("[line %d] error %s: %s", e.Line, e.Where, e.Msg)
}

// An ErrorList is a non-empty list of resolution errors.
type ErrorList []Error // len > 0

func (e ErrorList) Error() string { return e[0].Error() }

// funcKind records what kind of function body encloses the current node.
type funcKind int

const (
	funcNone funcKind = iota
	funcFunction
	funcMethod
	funcInitializer
)

// classKind records what kind of class body encloses the current node.
type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

// File resolves a program and reports scope depths through bind.
//
// Statements that failed to parse (nil entries) are skipped. Resolution
// continues past errors so that a single pass reports as many
// violations as possible; if any occurred, the returned error is an
// ErrorList and execution must not be attempted.
func File(stmts []syntax.Stmt, bind func(e syntax.Expr, depth int)) error {
	r := resolver{bind: bind}
	r.stmts(stmts)
	if len(r.errors) > 0 {
		return r.errors
	}
	return nil
}

// Expr resolves a single expression, such as a REPL input line.
func Expr(e syntax.Expr, bind func(e syntax.Expr, depth int)) error {
	r := resolver{bind: bind}
	r.expr(e)
	if len(r.errors) > 0 {
		return r.errors
	}
	return nil
}

type resolver struct {
	bind   func(e syntax.Expr, depth int)
	scopes []map[string]bool // name → defined; innermost last
	fn     funcKind
	class  classKind
	errors ErrorList
}

func (r *resolver) errorf(tok syntax.Token, format string, args ...interface{}) {
	where := fmt.Sprintf("at '%s'", tok.Lexeme)
	if tok.Kind == syntax.EOF {
		where = "at end"
	}
	r.errors = append(r.errors, Error{
		Line:  tok.Line,
		Where: where,
		Msg:   fmt.Sprintf(format, args...),
	})
}

func (r *resolver) push() { r.scopes = append(r.scopes, make(map[string]bool)) }

func (r *resolver) pop() { r.scopes = r.scopes[:len(r.scopes)-1] }

// declare introduces name in the innermost scope, not yet defined.
// Reading a declared-but-undefined name is the in-own-initializer error.
func (r *resolver) declare(name syntax.Token) {
	if len(r.scopes) == 0 {
		return // global; globals are late-bound
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.errorf(name, "variable '%s' already in scope", name.Lexeme)
	}
	scope[name.Lexeme] = false
}

// define marks name as fully initialized in the innermost scope.
func (r *resolver) define(name syntax.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// local binds e to the depth of the innermost scope containing name,
// if any. Unmatched names are left for the global environment.
func (r *resolver) local(e syntax.Expr, name syntax.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.bind(e, len(r.scopes)-1-i)
			return
		}
	}
}

func (r *resolver) stmts(stmts []syntax.Stmt) {
	for _, s := range stmts {
		if s != nil {
			r.stmt(s)
		}
	}
}

func (r *resolver) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.ExprStmt:
		r.expr(s.X)

	case *syntax.PrintStmt:
		r.expr(s.X)

	case *syntax.VarStmt:
		r.declare(s.Name)
		if s.Init != nil {
			r.expr(s.Init)
		}
		r.define(s.Name)

	case *syntax.BlockStmt:
		r.push()
		r.stmts(s.Stmts)
		r.pop()

	case *syntax.IfStmt:
		r.expr(s.Cond)
		r.stmt(s.Then)
		if s.Else != nil {
			r.stmt(s.Else)
		}

	case *syntax.WhileStmt:
		r.expr(s.Cond)
		r.stmt(s.Body)

	case *syntax.FuncStmt:
		r.declare(s.Name)
		r.define(s.Name) // defined eagerly so the function may recurse
		r.function(s, funcFunction)

	case *syntax.ReturnStmt:
		if r.fn == funcNone {
			r.errorf(s.Return, "cannot return from top level")
		}
		if s.Value != nil {
			if r.fn == funcInitializer {
				r.errorf(s.Return, "cannot return a value from an initializer")
			}
			r.expr(s.Value)
		}

	case *syntax.ClassStmt:
		enclosing := r.class
		r.class = classClass

		r.declare(s.Name)
		r.define(s.Name)

		if s.Superclass != nil {
			if s.Superclass.Name.Lexeme == s.Name.Lexeme {
				r.errorf(s.Superclass.Name, "a class cannot inherit from itself")
			}
			r.class = classSubclass
			r.expr(s.Superclass)

			r.push() // scope holding 'super'
			r.scopes[len(r.scopes)-1]["super"] = true
		}

		r.push() // scope holding 'this'
		r.scopes[len(r.scopes)-1]["this"] = true

		for _, method := range s.Methods {
			kind := funcMethod
			if method.Name.Lexeme == "init" {
				kind = funcInitializer
			}
			r.function(method, kind)
		}

		r.pop()
		if s.Superclass != nil {
			r.pop()
		}
		r.class = enclosing
	}
}

func (r *resolver) function(fn *syntax.FuncStmt, kind funcKind) {
	enclosing := r.fn
	r.fn = kind

	r.push()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.stmts(fn.Body)
	r.pop()

	r.fn = enclosing
}

func (r *resolver) expr(e syntax.Expr) {
	switch e := e.(type) {
	case *syntax.Literal:
		// nothing to do

	case *syntax.ParenExpr:
		r.expr(e.X)

	case *syntax.UnaryExpr:
		r.expr(e.X)

	case *syntax.BinaryExpr:
		r.expr(e.X)
		r.expr(e.Y)

	case *syntax.LogicalExpr:
		r.expr(e.X)
		r.expr(e.Y)

	case *syntax.Ident:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.errorf(e.Name, "cannot read variable in its own initializer")
			}
		}
		r.local(e, e.Name)

	case *syntax.AssignExpr:
		r.expr(e.Value)
		r.local(e, e.Name)

	case *syntax.CallExpr:
		r.expr(e.Fn)
		for _, arg := range e.Args {
			r.expr(arg)
		}

	case *syntax.DotExpr:
		r.expr(e.X)

	case *syntax.SetExpr:
		r.expr(e.X)
		r.expr(e.Value)

	case *syntax.ThisExpr:
		if r.class == classNone {
			r.errorf(e.Keyword, "cannot use 'this' outside of a class")
			return
		}
		r.local(e, e.Keyword)

	case *syntax.SuperExpr:
		switch r.class {
		case classNone:
			r.errorf(e.Keyword, "cannot use 'super' outside of a class")
			return
		case classClass:
			r.errorf(e.Keyword, "cannot use 'super' in a class with no superclass")
			return
		}
		r.local(e, e.Keyword)
	}
}
