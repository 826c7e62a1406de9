package lox

import (
	"fmt"

	"go.loxlang.net/syntax"
)

// A Function is a user-defined Lox function or method.
//
// It pairs the function's declaration with the environment captured at
// the moment the declaration executed; calls chain their parameter
// environment off that closure, which is how free variables remain
// shared between the function and its enclosing scope.
type Function struct {
	decl          *syntax.FuncStmt
	closure       *Environment
	isInitializer bool
}

var _ Callable = (*Function)(nil)

func (fn *Function) Name() string   { return fn.decl.Name.Lexeme }
func (fn *Function) String() string { return fmt.Sprintf("<function %s>", fn.Name()) }
func (fn *Function) Type() string   { return "function" }
func (fn *Function) Truth() Bool    { return True }
func (fn *Function) Arity() int     { return len(fn.decl.Params) }

// Call executes the function body in a fresh environment chained to
// the closure. A return statement anywhere in the body unwinds to
// exactly this frame; an initializer's result is always the bound
// 'this', whatever the body does.
func (fn *Function) Call(intr *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(fn.closure)
	for i, param := range fn.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	if err := intr.ExecBlock(fn.decl.Body, env); err != nil {
		ret, ok := err.(returnSignal)
		if !ok {
			return nil, err
		}
		if fn.isInitializer {
			return fn.closure.GetAt(0, "this"), nil
		}
		return ret.value, nil
	}

	if fn.isInitializer {
		return fn.closure.GetAt(0, "this"), nil
	}
	return Nil, nil
}

// Bind returns a copy of the method whose closure defines 'this' as
// the given instance.
func (fn *Function) Bind(inst *Instance) *Function {
	env := NewEnvironment(fn.closure)
	env.Define("this", inst)
	return &Function{decl: fn.decl, closure: env, isInitializer: fn.isInitializer}
}

// A Builtin is a function implemented by the host.
type Builtin struct {
	name  string
	arity int
	fn    func(intr *Interpreter, args []Value) (Value, error)
}

var _ Callable = (*Builtin)(nil)

// NewBuiltin returns a native function value with the given name and
// arity.
func NewBuiltin(name string, arity int, fn func(intr *Interpreter, args []Value) (Value, error)) *Builtin {
	return &Builtin{name: name, arity: arity, fn: fn}
}

func (b *Builtin) Name() string   { return b.name }
func (b *Builtin) String() string { return "<native function>" }
func (b *Builtin) Type() string   { return "native function" }
func (b *Builtin) Truth() Bool    { return True }
func (b *Builtin) Arity() int     { return b.arity }

func (b *Builtin) Call(intr *Interpreter, args []Value) (Value, error) {
	return b.fn(intr, args)
}
