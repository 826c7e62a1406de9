package lox

import "time"

// Universe defines the set of global bindings predeclared in every Lox
// program. New copies it into each interpreter's global environment.
var Universe = StringDict{
	"clock": NewBuiltin("clock", 0, clock),
}

// NowFunc is the clock source for the clock built-in. It is a variable
// so that tests and embedders requiring determinism can override it.
var NowFunc = time.Now

// clock returns the current wall-clock time in seconds.
func clock(intr *Interpreter, args []Value) (Value, error) {
	return Number(float64(NowFunc().UnixNano()) / 1e9), nil
}
