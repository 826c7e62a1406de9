package syntax

// This file defines a printer that renders a syntax tree back to Lox
// source. The output is canonical: printing, rescanning, and reparsing
// a parser-produced tree yields a tree that prints identically.

import (
	"bytes"
	"fmt"
	"strconv"
)

// ExprString returns the canonical source form of an expression.
func ExprString(e Expr) string {
	var buf bytes.Buffer
	WriteExpr(&buf, e)
	return buf.String()
}

// StmtString returns the canonical source form of a statement.
func StmtString(s Stmt) string {
	var buf bytes.Buffer
	WriteStmt(&buf, s)
	return buf.String()
}

// WriteExpr writes the canonical source form of e to buf.
func WriteExpr(buf *bytes.Buffer, e Expr) {
	switch e := e.(type) {
	case *Literal:
		switch v := e.Value.(type) {
		case nil:
			buf.WriteString("nil")
		case bool:
			fmt.Fprintf(buf, "%t", v)
		case float64:
			buf.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		case string:
			buf.WriteByte('"')
			buf.WriteString(v)
			buf.WriteByte('"')
		default:
			fmt.Fprintf(buf, "%v", v)
		}

	case *ParenExpr:
		buf.WriteByte('(')
		WriteExpr(buf, e.X)
		buf.WriteByte(')')

	case *UnaryExpr:
		buf.WriteString(e.Op.Lexeme)
		WriteExpr(buf, e.X)

	case *BinaryExpr:
		WriteExpr(buf, e.X)
		fmt.Fprintf(buf, " %s ", e.Op.Lexeme)
		WriteExpr(buf, e.Y)

	case *LogicalExpr:
		WriteExpr(buf, e.X)
		fmt.Fprintf(buf, " %s ", e.Op.Lexeme)
		WriteExpr(buf, e.Y)

	case *Ident:
		buf.WriteString(e.Name.Lexeme)

	case *AssignExpr:
		buf.WriteString(e.Name.Lexeme)
		buf.WriteString(" = ")
		WriteExpr(buf, e.Value)

	case *CallExpr:
		WriteExpr(buf, e.Fn)
		buf.WriteByte('(')
		for i, arg := range e.Args {
			if i > 0 {
				buf.WriteString(", ")
			}
			WriteExpr(buf, arg)
		}
		buf.WriteByte(')')

	case *DotExpr:
		WriteExpr(buf, e.X)
		buf.WriteByte('.')
		buf.WriteString(e.Name.Lexeme)

	case *SetExpr:
		WriteExpr(buf, e.X)
		buf.WriteByte('.')
		buf.WriteString(e.Name.Lexeme)
		buf.WriteString(" = ")
		WriteExpr(buf, e.Value)

	case *ThisExpr:
		buf.WriteString("this")

	case *SuperExpr:
		buf.WriteString("super.")
		buf.WriteString(e.Method.Lexeme)

	default:
		fmt.Fprintf(buf, "<unknown expr %T>", e)
	}
}

// WriteStmt writes the canonical source form of s to buf. No newline
// is written after the statement.
func WriteStmt(buf *bytes.Buffer, s Stmt) {
	pr := printer{buf: buf}
	pr.stmt(s)
}

type printer struct {
	buf    *bytes.Buffer
	indent int
}

func (pr *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(pr.buf, format, args...)
}

func (pr *printer) newline() {
	pr.buf.WriteByte('\n')
	for i := 0; i < pr.indent; i++ {
		pr.buf.WriteString("  ")
	}
}

func (pr *printer) stmt(s Stmt) {
	switch s := s.(type) {
	case *ExprStmt:
		WriteExpr(pr.buf, s.X)
		pr.printf(";")

	case *PrintStmt:
		pr.printf("print ")
		WriteExpr(pr.buf, s.X)
		pr.printf(";")

	case *VarStmt:
		pr.printf("var %s", s.Name.Lexeme)
		if s.Init != nil {
			pr.printf(" = ")
			WriteExpr(pr.buf, s.Init)
		}
		pr.printf(";")

	case *BlockStmt:
		pr.block(s.Stmts)

	case *IfStmt:
		pr.printf("if (")
		WriteExpr(pr.buf, s.Cond)
		pr.printf(") ")
		pr.stmt(s.Then)
		if s.Else != nil {
			pr.printf(" else ")
			pr.stmt(s.Else)
		}

	case *WhileStmt:
		pr.printf("while (")
		WriteExpr(pr.buf, s.Cond)
		pr.printf(") ")
		pr.stmt(s.Body)

	case *FuncStmt:
		pr.printf("fun ")
		pr.function(s)

	case *ReturnStmt:
		if s.Value == nil {
			pr.printf("return;")
		} else {
			pr.printf("return ")
			WriteExpr(pr.buf, s.Value)
			pr.printf(";")
		}

	case *ClassStmt:
		pr.printf("class %s ", s.Name.Lexeme)
		if s.Superclass != nil {
			pr.printf("< %s ", s.Superclass.Name.Lexeme)
		}
		pr.printf("{")
		pr.indent++
		for _, m := range s.Methods {
			pr.newline()
			pr.function(m)
		}
		pr.indent--
		pr.newline()
		pr.printf("}")

	default:
		pr.printf("<unknown stmt %T>", s)
	}
}

func (pr *printer) function(fn *FuncStmt) {
	pr.printf("%s(", fn.Name.Lexeme)
	for i, param := range fn.Params {
		if i > 0 {
			pr.printf(", ")
		}
		pr.printf("%s", param.Lexeme)
	}
	pr.printf(") ")
	pr.block(fn.Body)
}

func (pr *printer) block(stmts []Stmt) {
	pr.printf("{")
	pr.indent++
	for _, s := range stmts {
		if s == nil {
			continue
		}
		pr.newline()
		pr.stmt(s)
	}
	pr.indent--
	pr.newline()
	pr.printf("}")
}
