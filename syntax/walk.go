package syntax

// Walk traverses a syntax tree in depth-first order.
// It calls f(n) for each node n before visiting its children;
// if f returns false the children are skipped.
// Nil children (such as a missing else branch or a statement that
// failed to parse) are not visited.
func Walk(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}

	walk := func(n Node) { Walk(n, f) }

	switch n := n.(type) {
	case *ExprStmt:
		walk(n.X)
	case *PrintStmt:
		walk(n.X)
	case *VarStmt:
		if n.Init != nil {
			walk(n.Init)
		}
	case *BlockStmt:
		for _, s := range n.Stmts {
			if s != nil {
				walk(s)
			}
		}
	case *IfStmt:
		walk(n.Cond)
		walk(n.Then)
		if n.Else != nil {
			walk(n.Else)
		}
	case *WhileStmt:
		walk(n.Cond)
		walk(n.Body)
	case *FuncStmt:
		for _, s := range n.Body {
			if s != nil {
				walk(s)
			}
		}
	case *ReturnStmt:
		if n.Value != nil {
			walk(n.Value)
		}
	case *ClassStmt:
		if n.Superclass != nil {
			walk(n.Superclass)
		}
		for _, m := range n.Methods {
			walk(m)
		}

	case *Literal, *Ident, *ThisExpr, *SuperExpr:
		// no children
	case *ParenExpr:
		walk(n.X)
	case *UnaryExpr:
		walk(n.X)
	case *BinaryExpr:
		walk(n.X)
		walk(n.Y)
	case *LogicalExpr:
		walk(n.X)
		walk(n.Y)
	case *AssignExpr:
		walk(n.Value)
	case *CallExpr:
		walk(n.Fn)
		for _, arg := range n.Args {
			walk(arg)
		}
	case *DotExpr:
		walk(n.X)
	case *SetExpr:
		walk(n.X)
		walk(n.Value)
	}
}
