// The lox command interprets a Lox file.
// With no arguments, it starts a read-eval-print loop (REPL) if standard
// input is a terminal, and otherwise runs standard input as a script.
package main // import "go.loxlang.net/cmd/lox"

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/term"

	"go.loxlang.net/lox"
	"go.loxlang.net/repl"
)

// flags
var (
	execprog = flag.String("c", "", "execute program `prog`")
)

// Exit codes follow the sysexits convention: 64 for a usage error,
// 65 for malformed input, 70 for a runtime failure.
const (
	exitUsage    = 64
	exitDataErr  = 65
	exitSoftware = 70
)

func main() {
	os.Exit(doMain())
}

func doMain() int {
	log.SetPrefix("lox: ")
	log.SetFlags(0)
	flag.Parse()

	if flag.NArg() > 1 || (*execprog != "" && flag.NArg() > 0) {
		fmt.Fprintln(os.Stderr, "Usage: lox [script]")
		return exitUsage
	}

	intr := lox.New()

	switch {
	case *execprog != "":
		return run(intr, *execprog)

	case flag.NArg() == 1:
		data, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			log.Print(err)
			return 1
		}
		return run(intr, string(data))

	case term.IsTerminal(int(os.Stdin.Fd())):
		fmt.Println("Welcome to Lox (go.loxlang.net)")
		repl.REPL(intr)
		return 0

	default:
		// stdin is a pipe or file: execute it as a script.
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Print(err)
			return 1
		}
		return run(intr, string(data))
	}
}

// run executes one program and maps its outcome to an exit code.
func run(intr *lox.Interpreter, src string) int {
	if err := intr.Run(src); err != nil {
		repl.PrintError(err)
		if _, ok := err.(*lox.EvalError); ok {
			return exitSoftware
		}
		return exitDataErr
	}
	return 0
}
