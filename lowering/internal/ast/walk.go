package ast

// Children returns the direct child nodes of n in source order.
// The grammar is a closed union, so an unknown node yields nothing.
func Children(n Node) []Node {
	var out []Node
	expr := func(e Expr) {
		if e != nil {
			out = append(out, e)
		}
	}
	stmts := func(ss []Stmt) {
		for _, s := range ss {
			out = append(out, s)
		}
	}
	exprs := func(es []Expr) {
		for _, e := range es {
			expr(e)
		}
	}

	switch v := n.(type) {
	case *Module:
		stmts(v.Body)
	case *FunctionDef:
		stmts(v.Body)
	case *Assign:
		exprs(v.Targets)
		expr(v.Value)
	case *AugAssign:
		expr(v.Target)
		expr(v.Value)
	case *Delete:
		exprs(v.Targets)
	case *Return:
		expr(v.Value)
	case *If:
		expr(v.Cond)
		stmts(v.Body)
		stmts(v.Else)
	case *While:
		expr(v.Cond)
		stmts(v.Body)
		stmts(v.Else)
	case *For:
		expr(v.Target)
		expr(v.Iter)
		stmts(v.Body)
		stmts(v.Else)
	case *ExprStmt:
		expr(v.X)
	case *Name, *Constant, *Raw, *Global, *Nonlocal, *Pass:
		// leaves
	case *Attribute:
		expr(v.Value)
	case *Subscript:
		expr(v.Value)
		expr(v.Index)
	case *Call:
		expr(v.Func)
		exprs(v.Args)
		for _, k := range v.Keywords {
			expr(k.Value)
		}
	case *Tuple:
		exprs(v.Elts)
	case *List:
		exprs(v.Elts)
	case *Dict:
		exprs(v.Keys)
		exprs(v.Values)
	case *BinOp:
		expr(v.Left)
		expr(v.Right)
	case *UnaryOp:
		expr(v.X)
	case *Compare:
		expr(v.Left)
		exprs(v.Comparators)
	case *ListComp:
		expr(v.Elt)
		out = append(out, comprehensionChildren(v.Generators)...)
	case *SetComp:
		expr(v.Elt)
		out = append(out, comprehensionChildren(v.Generators)...)
	case *DictComp:
		expr(v.Key)
		expr(v.Value)
		out = append(out, comprehensionChildren(v.Generators)...)
	}
	return out
}

func comprehensionChildren(gens []Comprehension) []Node {
	var out []Node
	for _, g := range gens {
		if g.Target != nil {
			out = append(out, g.Target)
		}
		if g.Iter != nil {
			out = append(out, g.Iter)
		}
		for _, c := range g.Ifs {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	return out
}

// Walk calls f on n and, when f returns true, on every descendant in
// preorder.
func Walk(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, f)
	}
}
