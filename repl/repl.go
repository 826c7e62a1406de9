// Package repl provides a read/eval/print loop for Lox.
//
// It supports readline-style command editing and multi-line input:
// lines are accumulated until braces and parentheses balance.
//
// If an input chunk can be parsed as a single expression, the REPL
// evaluates it and prints its result; otherwise the chunk is executed
// as a list of statements, for side effects. One interpreter is used
// for the whole session, so definitions persist from line to line,
// while errors affect only the line that produced them.
package repl // import "go.loxlang.net/repl"

import (
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"go.loxlang.net/lox"
	"go.loxlang.net/resolve"
	"go.loxlang.net/syntax"
)

// REPL executes a read, eval, print loop on the given interpreter.
func REPL(intr *lox.Interpreter) {
	rl, err := readline.New(">>> ")
	if err != nil {
		PrintError(err)
		return
	}
	defer rl.Close()
	for {
		if err := rep(rl, intr); err != nil {
			if err == readline.ErrInterrupt {
				fmt.Println(err)
				continue
			}
			break
		}
	}
	fmt.Println()
}

// rep reads, evaluates, and prints one item.
//
// It returns an error (possibly readline.ErrInterrupt) only if
// readline failed. Lox errors are printed and cleared.
func rep(rl *readline.Instance, intr *lox.Interpreter) error {
	rl.SetPrompt(">>> ")
	var src string
	var tokens []syntax.Token
	var scanErr error
	for {
		line, err := rl.Readline()
		if err != nil {
			return err
		}
		src += line + "\n"

		// Keep reading while delimiters are unbalanced, so that a
		// function or class body may span several lines.
		tokens, scanErr = syntax.Scan(src)
		if depth(tokens) <= 0 {
			break
		}
		rl.SetPrompt("... ")
	}

	// An input consisting of a single expression is evaluated and its
	// value printed; anything else is run as a program chunk.
	if expr, err := syntax.ParseExpr(tokens); scanErr == nil && err == nil {
		if err := resolve.Expr(expr, intr.Resolve); err != nil {
			PrintError(err)
			return nil
		}
		v, err := intr.EvalExpr(expr)
		if err != nil {
			PrintError(err)
			return nil
		}
		if v != lox.Nil {
			fmt.Println(v)
		}
		return nil
	}

	if err := intr.Run(src); err != nil {
		PrintError(err)
	}
	return nil
}

// depth returns the nesting depth of unmatched braces and parentheses
// at the end of the token stream.
func depth(tokens []syntax.Token) int {
	n := 0
	for _, tok := range tokens {
		switch tok.Kind {
		case syntax.LBRACE, syntax.LPAREN:
			n++
		case syntax.RBRACE, syntax.RPAREN:
			n--
		}
	}
	return n
}

// PrintError prints an error to stderr, one diagnostic per line.
func PrintError(err error) {
	switch err := err.(type) {
	case syntax.ErrorList:
		for _, e := range err {
			fmt.Fprintln(os.Stderr, e)
		}
	case resolve.ErrorList:
		for _, e := range err {
			fmt.Fprintln(os.Stderr, e)
		}
	default:
		fmt.Fprintln(os.Stderr, err)
	}
}
