package syntax_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.loxlang.net/syntax"
)

func TestWalk(t *testing.T) {
	src := `fun add(a, b) { return a + b; }
print add(1, 2) + add(3, 4);`
	tokens, err := syntax.Scan(src)
	if err != nil {
		t.Fatal(err)
	}
	stmts, err := syntax.Parse(tokens)
	if err != nil {
		t.Fatal(err)
	}

	// Collect variable references in evaluation order.
	var idents []string
	for _, s := range stmts {
		syntax.Walk(s, func(n syntax.Node) bool {
			if id, ok := n.(*syntax.Ident); ok {
				idents = append(idents, id.Name.Lexeme)
			}
			return true
		})
	}
	want := []string{"a", "b", "add", "add"}
	if diff := cmp.Diff(want, idents); diff != "" {
		t.Errorf("ident mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkPrune(t *testing.T) {
	src := `if (a) { print b; } else { print c; }`
	tokens, err := syntax.Scan(src)
	if err != nil {
		t.Fatal(err)
	}
	stmts, err := syntax.Parse(tokens)
	if err != nil {
		t.Fatal(err)
	}

	// Returning false skips the subtree.
	n := 0
	syntax.Walk(stmts[0], func(node syntax.Node) bool {
		n++
		_, isBlock := node.(*syntax.BlockStmt)
		return !isBlock
	})
	// if + cond ident + two pruned blocks
	if n != 4 {
		t.Errorf("visited %d nodes, want 4", n)
	}
}
