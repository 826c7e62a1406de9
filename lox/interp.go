package lox

import (
	"fmt"

	"go.loxlang.net/resolve"
	"go.loxlang.net/syntax"
)

// An Interpreter executes resolved Lox programs.
//
// An Interpreter may be reused across successive Run calls, as a REPL
// does: the global environment and the resolver's depth table persist,
// so definitions carry forward from one chunk to the next.
type Interpreter struct {
	// Print is the client-supplied implementation of the Lox print
	// statement. If nil, fmt.Println(msg) is used instead.
	Print func(intr *Interpreter, msg string)

	globals *Environment
	depths  map[syntax.Expr]int
}

// New returns an interpreter whose global environment is seeded with
// the bindings in Universe.
func New() *Interpreter {
	intr := &Interpreter{
		globals: NewEnvironment(nil),
		depths:  make(map[syntax.Expr]int),
	}
	for name, v := range Universe {
		intr.globals.Define(name, v)
	}
	return intr
}

// Globals returns the interpreter's global environment.
func (intr *Interpreter) Globals() *Environment { return intr.globals }

// Resolve records that expression e refers to a binding depth
// environments up the enclosing chain. It is called by the resolver;
// expressions without a recorded depth refer to globals.
func (intr *Interpreter) Resolve(e syntax.Expr, depth int) {
	intr.depths[e] = depth
}

// An EvalError is a Lox runtime error. Line is the line of the token
// at which evaluation failed.
type EvalError struct {
	Line int
	Msg  string
}

func (e *EvalError) Error() string { return fmt.Sprintf("[line %d] %s", e.Line, e.Msg) }

func evalErrorf(tok syntax.Token, format string, args ...interface{}) *EvalError {
	return &EvalError{Line: tok.Line, Msg: fmt.Sprintf(format, args...)}
}

// returnSignal is the control error that unwinds a return statement to
// the nearest enclosing user-function call. It is not a failure:
// Function.Call catches it and yields the carried value.
type returnSignal struct {
	value Value
}

func (returnSignal) Error() string { return "return outside function" }

// Run scans, parses, resolves, and executes a Lox program.
//
// Scan and parse diagnostics are combined into a single
// syntax.ErrorList; if any occurred, the program is not resolved or
// executed. Resolution errors are returned as a resolve.ErrorList and
// likewise suppress execution. A runtime failure is returned as an
// *EvalError and aborts execution at the failing statement.
func (intr *Interpreter) Run(src string) error {
	tokens, scanErr := syntax.Scan(src)
	stmts, parseErr := syntax.Parse(tokens)
	if scanErr != nil || parseErr != nil {
		var errs syntax.ErrorList
		if scanErr != nil {
			errs = append(errs, scanErr.(syntax.ErrorList)...)
		}
		if parseErr != nil {
			errs = append(errs, parseErr.(syntax.ErrorList)...)
		}
		return errs
	}

	if err := resolve.File(stmts, intr.Resolve); err != nil {
		return err
	}

	return intr.Interpret(stmts)
}

// Interpret executes a resolved program against the global
// environment. Execution stops at the first runtime error.
func (intr *Interpreter) Interpret(stmts []syntax.Stmt) error {
	for _, s := range stmts {
		if s == nil {
			continue
		}
		if err := intr.exec(s, intr.globals); err != nil {
			return err
		}
	}
	return nil
}

// EvalExpr evaluates a single resolved expression against the global
// environment.
func (intr *Interpreter) EvalExpr(e syntax.Expr) (Value, error) {
	return intr.eval(e, intr.globals)
}

// ExecBlock executes stmts in the given environment. It is the entry
// point used by function calls to run a body in the call's
// environment.
func (intr *Interpreter) ExecBlock(stmts []syntax.Stmt, env *Environment) error {
	for _, s := range stmts {
		if s == nil {
			continue
		}
		if err := intr.exec(s, env); err != nil {
			return err
		}
	}
	return nil
}

func (intr *Interpreter) print(msg string) {
	if intr.Print != nil {
		intr.Print(intr, msg)
	} else {
		fmt.Println(msg)
	}
}

func (intr *Interpreter) exec(s syntax.Stmt, env *Environment) error {
	switch s := s.(type) {
	case *syntax.ExprStmt:
		_, err := intr.eval(s.X, env)
		return err

	case *syntax.PrintStmt:
		v, err := intr.eval(s.X, env)
		if err != nil {
			return err
		}
		intr.print(v.String())
		return nil

	case *syntax.VarStmt:
		var v Value = Nil
		if s.Init != nil {
			var err error
			v, err = intr.eval(s.Init, env)
			if err != nil {
				return err
			}
		}
		env.Define(s.Name.Lexeme, v)
		return nil

	case *syntax.BlockStmt:
		return intr.ExecBlock(s.Stmts, NewEnvironment(env))

	case *syntax.IfStmt:
		cond, err := intr.eval(s.Cond, env)
		if err != nil {
			return err
		}
		if cond.Truth() {
			return intr.exec(s.Then, env)
		}
		if s.Else != nil {
			return intr.exec(s.Else, env)
		}
		return nil

	case *syntax.WhileStmt:
		for {
			cond, err := intr.eval(s.Cond, env)
			if err != nil {
				return err
			}
			if !cond.Truth() {
				return nil
			}
			if err := intr.exec(s.Body, env); err != nil {
				return err
			}
		}

	case *syntax.FuncStmt:
		env.Define(s.Name.Lexeme, &Function{decl: s, closure: env})
		return nil

	case *syntax.ReturnStmt:
		var v Value = Nil
		if s.Value != nil {
			var err error
			v, err = intr.eval(s.Value, env)
			if err != nil {
				return err
			}
		}
		return returnSignal{value: v}

	case *syntax.ClassStmt:
		return intr.execClass(s, env)
	}

	panic(fmt.Sprintf("exec: unexpected statement %T", s))
}

// execClass implements a class declaration. The class name is defined
// before the methods are evaluated so that methods may refer to the
// class; with a superclass, the methods close over an extra
// environment in which 'super' is bound.
func (intr *Interpreter) execClass(s *syntax.ClassStmt, env *Environment) error {
	env.Define(s.Name.Lexeme, Nil)

	var superclass *Class
	if s.Superclass != nil {
		v, err := intr.eval(s.Superclass, env)
		if err != nil {
			return err
		}
		var ok bool
		if superclass, ok = v.(*Class); !ok {
			return evalErrorf(s.Superclass.Name, "superclass must be a class")
		}
	}

	methodEnv := env
	if superclass != nil {
		methodEnv = NewEnvironment(env)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &Function{
			decl:          m,
			closure:       methodEnv,
			isInitializer: m.Name.Lexeme == "init",
		}
	}

	env.Assign(s.Name.Lexeme, NewClass(s.Name.Lexeme, superclass, methods))
	return nil
}

func (intr *Interpreter) eval(e syntax.Expr, env *Environment) (Value, error) {
	switch e := e.(type) {
	case *syntax.Literal:
		switch v := e.Value.(type) {
		case nil:
			return Nil, nil
		case bool:
			return Bool(v), nil
		case float64:
			return Number(v), nil
		case string:
			return String(v), nil
		}

	case *syntax.ParenExpr:
		return intr.eval(e.X, env)

	case *syntax.UnaryExpr:
		x, err := intr.eval(e.X, env)
		if err != nil {
			return nil, err
		}
		switch e.Op.Kind {
		case syntax.NOT:
			return !x.Truth(), nil
		case syntax.MINUS:
			n, ok := x.(Number)
			if !ok {
				return nil, evalErrorf(e.Op, "operand must be a number")
			}
			return -n, nil
		}

	case *syntax.BinaryExpr:
		return intr.evalBinary(e, env)

	case *syntax.LogicalExpr:
		x, err := intr.eval(e.X, env)
		if err != nil {
			return nil, err
		}
		if e.Op.Kind == syntax.OR {
			if x.Truth() {
				return x, nil
			}
		} else if !x.Truth() {
			return x, nil
		}
		return intr.eval(e.Y, env)

	case *syntax.Ident:
		return intr.lookupVariable(e.Name, e, env)

	case *syntax.AssignExpr:
		v, err := intr.eval(e.Value, env)
		if err != nil {
			return nil, err
		}
		if depth, ok := intr.depths[e]; ok {
			env.AssignAt(depth, e.Name.Lexeme, v)
		} else if !intr.globals.Assign(e.Name.Lexeme, v) {
			return nil, intr.undefined(e.Name)
		}
		return v, nil

	case *syntax.CallExpr:
		return intr.evalCall(e, env)

	case *syntax.DotExpr:
		x, err := intr.eval(e.X, env)
		if err != nil {
			return nil, err
		}
		inst, ok := x.(*Instance)
		if !ok {
			return nil, evalErrorf(e.Name, "only instances have properties")
		}
		v := inst.Attr(e.Name.Lexeme)
		if v == nil {
			return nil, intr.unknownProperty(e.Name, inst)
		}
		return v, nil

	case *syntax.SetExpr:
		x, err := intr.eval(e.X, env)
		if err != nil {
			return nil, err
		}
		inst, ok := x.(*Instance)
		if !ok {
			return nil, evalErrorf(e.Name, "only instances have fields")
		}
		v, err := intr.eval(e.Value, env)
		if err != nil {
			return nil, err
		}
		inst.SetField(e.Name.Lexeme, v)
		return v, nil

	case *syntax.ThisExpr:
		return intr.lookupVariable(e.Keyword, e, env)

	case *syntax.SuperExpr:
		// The resolver bound 'super' at the class-body environment;
		// 'this' lives one scope below it.
		depth := intr.depths[e]
		superclass := env.GetAt(depth, "super").(*Class)
		inst := env.GetAt(depth-1, "this").(*Instance)
		method := superclass.FindMethod(e.Method.Lexeme)
		if method == nil {
			return nil, evalErrorf(e.Method, "undefined property '%s'", e.Method.Lexeme)
		}
		return method.Bind(inst), nil
	}

	panic(fmt.Sprintf("eval: unexpected expression %T", e))
}

func (intr *Interpreter) evalBinary(e *syntax.BinaryExpr, env *Environment) (Value, error) {
	x, err := intr.eval(e.X, env)
	if err != nil {
		return nil, err
	}
	y, err := intr.eval(e.Y, env)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case syntax.EQL:
		return Bool(EqualValues(x, y)), nil
	case syntax.NEQ:
		return Bool(!EqualValues(x, y)), nil

	case syntax.PLUS:
		if xn, ok := x.(Number); ok {
			if yn, ok := y.(Number); ok {
				return xn + yn, nil
			}
		}
		// If either operand is a string, both are coerced to their
		// display forms and concatenated.
		if _, ok := x.(String); ok {
			return String(x.String() + y.String()), nil
		}
		if _, ok := y.(String); ok {
			return String(x.String() + y.String()), nil
		}
		return nil, evalErrorf(e.Op, "operands must be two numbers or two strings")
	}

	xn, yn, err := numberOperands(e.Op, x, y)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case syntax.MINUS:
		return xn - yn, nil
	case syntax.STAR:
		return xn * yn, nil
	case syntax.SLASH:
		if yn == 0 {
			return nil, evalErrorf(e.Op, "cannot divide by zero")
		}
		return xn / yn, nil
	case syntax.GT:
		return Bool(xn > yn), nil
	case syntax.GE:
		return Bool(xn >= yn), nil
	case syntax.LT:
		return Bool(xn < yn), nil
	case syntax.LE:
		return Bool(xn <= yn), nil
	}

	panic(fmt.Sprintf("evalBinary: unexpected operator %s", e.Op.Kind))
}

func numberOperands(op syntax.Token, x, y Value) (Number, Number, error) {
	xn, ok := x.(Number)
	if !ok {
		return 0, 0, evalErrorf(op, "operands must be numbers")
	}
	yn, ok := y.(Number)
	if !ok {
		return 0, 0, evalErrorf(op, "operands must be numbers")
	}
	return xn, yn, nil
}

func (intr *Interpreter) evalCall(e *syntax.CallExpr, env *Environment) (Value, error) {
	fn, err := intr.eval(e.Fn, env)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))
	for i, arg := range e.Args {
		v, err := intr.eval(arg, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	callable, ok := fn.(Callable)
	if !ok {
		return nil, evalErrorf(e.Lparen, "can only call functions and classes")
	}
	if len(args) != callable.Arity() {
		return nil, evalErrorf(e.Lparen, "expected %d arguments but got %d",
			callable.Arity(), len(args))
	}
	return callable.Call(intr, args)
}

// lookupVariable fetches a variable, 'this' included, using the depth
// recorded by the resolver, or from globals if no depth was recorded.
func (intr *Interpreter) lookupVariable(name syntax.Token, e syntax.Expr, env *Environment) (Value, error) {
	if depth, ok := intr.depths[e]; ok {
		return env.GetAt(depth, name.Lexeme), nil
	}
	if v, ok := intr.globals.Get(name.Lexeme); ok {
		return v, nil
	}
	return nil, intr.undefined(name)
}

func (intr *Interpreter) undefined(name syntax.Token) *EvalError {
	msg := fmt.Sprintf("undefined variable '%s'", name.Lexeme)
	if alt := nearest(name.Lexeme, intr.globals.Names()); alt != "" {
		msg += fmt.Sprintf(" (did you mean '%s'?)", alt)
	}
	return evalErrorf(name, "%s", msg)
}

func (intr *Interpreter) unknownProperty(name syntax.Token, inst *Instance) *EvalError {
	msg := fmt.Sprintf("undefined property '%s'", name.Lexeme)
	if alt := nearest(name.Lexeme, inst.attrNames()); alt != "" {
		msg += fmt.Sprintf(" (did you mean '%s'?)", alt)
	}
	return evalErrorf(name, "%s", msg)
}
