package astbridge

import (
	"fmt"

	"github.com/graphlower/graphlower/lowering/internal/ast"
)

func nodeFromModule(m *ast.Module) (*node, error) {
	body, err := nodesFromStmts(m.Body)
	if err != nil {
		return nil, err
	}
	return &node{Kind: "Module", Body: body}, nil
}

func nodesFromStmts(ss []ast.Stmt) ([]*node, error) {
	if ss == nil {
		return nil, nil
	}
	out := make([]*node, 0, len(ss))
	for _, s := range ss {
		n, err := nodeFromStmt(s)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func nodesFromExprs(es []ast.Expr) ([]*node, error) {
	if es == nil {
		return nil, nil
	}
	out := make([]*node, 0, len(es))
	for _, e := range es {
		n, err := nodeFromExpr(e)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func optNodeFromExpr(e ast.Expr) (*node, error) {
	if e == nil {
		return nil, nil
	}
	return nodeFromExpr(e)
}

func nodeFromStmt(s ast.Stmt) (*node, error) {
	switch v := s.(type) {
	case *ast.FunctionDef:
		body, err := nodesFromStmts(v.Body)
		if err != nil {
			return nil, err
		}
		n := &node{Kind: "FunctionDef", Name: v.Name, Body: body}
		if v.Role != ast.RoleUser {
			n.Role = v.Role.String()
		}
		if len(v.Args.Args) > 0 || v.Args.Vararg != "" || v.Args.Kwarg != "" {
			n.Params = &params{Args: v.Args.Args, Vararg: v.Args.Vararg, Kwarg: v.Args.Kwarg}
		}
		return n, nil
	case *ast.Assign:
		targets, err := nodesFromExprs(v.Targets)
		if err != nil {
			return nil, err
		}
		value, err := nodeFromExpr(v.Value)
		if err != nil {
			return nil, err
		}
		return &node{Kind: "Assign", Targets: targets, Value: value}, nil
	case *ast.AugAssign:
		target, err := nodeFromExpr(v.Target)
		if err != nil {
			return nil, err
		}
		value, err := nodeFromExpr(v.Value)
		if err != nil {
			return nil, err
		}
		return &node{Kind: "AugAssign", Target: target, Op: v.Op, Value: value}, nil
	case *ast.Delete:
		targets, err := nodesFromExprs(v.Targets)
		if err != nil {
			return nil, err
		}
		return &node{Kind: "Delete", Targets: targets}, nil
	case *ast.Return:
		value, err := optNodeFromExpr(v.Value)
		if err != nil {
			return nil, err
		}
		return &node{Kind: "Return", Value: value}, nil
	case *ast.If:
		return nodeFromIfLike("If", v.Cond, v.Body, v.Else)
	case *ast.While:
		return nodeFromIfLike("While", v.Cond, v.Body, v.Else)
	case *ast.For:
		target, err := nodeFromExpr(v.Target)
		if err != nil {
			return nil, err
		}
		iter, err := nodeFromExpr(v.Iter)
		if err != nil {
			return nil, err
		}
		body, err := nodesFromStmts(v.Body)
		if err != nil {
			return nil, err
		}
		orelse, err := nodesFromStmts(v.Else)
		if err != nil {
			return nil, err
		}
		return &node{Kind: "For", Target: target, Iter: iter, Body: body, Else: orelse}, nil
	case *ast.Global:
		return &node{Kind: "Global", Names: v.Names}, nil
	case *ast.Nonlocal:
		return &node{Kind: "Nonlocal", Names: v.Names}, nil
	case *ast.ExprStmt:
		x, err := nodeFromExpr(v.X)
		if err != nil {
			return nil, err
		}
		return &node{Kind: "ExprStmt", X: x}, nil
	case *ast.Pass:
		return &node{Kind: "Pass"}, nil
	default:
		return nil, fmt.Errorf("astbridge: cannot encode statement %T", s)
	}
}

func nodeFromIfLike(kind string, cond ast.Expr, body, orelse []ast.Stmt) (*node, error) {
	c, err := nodeFromExpr(cond)
	if err != nil {
		return nil, err
	}
	b, err := nodesFromStmts(body)
	if err != nil {
		return nil, err
	}
	e, err := nodesFromStmts(orelse)
	if err != nil {
		return nil, err
	}
	return &node{Kind: kind, Cond: c, Body: b, Else: e}, nil
}

func ctxString(c ast.Ctx) string {
	if c == ast.CtxLoad {
		return ""
	}
	return c.String()
}

func nodeFromExpr(e ast.Expr) (*node, error) {
	switch v := e.(type) {
	case *ast.Name:
		return &node{Kind: "Name", ID: v.ID, Ctx: ctxString(v.Ctx)}, nil
	case *ast.Attribute:
		value, err := nodeFromExpr(v.Value)
		if err != nil {
			return nil, err
		}
		return &node{Kind: "Attribute", Value: value, Attr: v.Attr, Ctx: ctxString(v.Ctx)}, nil
	case *ast.Subscript:
		value, err := nodeFromExpr(v.Value)
		if err != nil {
			return nil, err
		}
		index, err := nodeFromExpr(v.Index)
		if err != nil {
			return nil, err
		}
		return &node{Kind: "Subscript", Value: value, Index: index, Ctx: ctxString(v.Ctx)}, nil
	case *ast.Call:
		fn, err := nodeFromExpr(v.Func)
		if err != nil {
			return nil, err
		}
		args, err := nodesFromExprs(v.Args)
		if err != nil {
			return nil, err
		}
		var kws []keyword
		for _, k := range v.Keywords {
			kv, err := nodeFromExpr(k.Value)
			if err != nil {
				return nil, err
			}
			kws = append(kws, keyword{Arg: k.Arg, Value: kv})
		}
		return &node{Kind: "Call", Func: fn, Args: args, Keywords: kws}, nil
	case *ast.Tuple:
		elts, err := nodesFromExprs(v.Elts)
		if err != nil {
			return nil, err
		}
		return &node{Kind: "Tuple", Elts: elts, Ctx: ctxString(v.Ctx)}, nil
	case *ast.List:
		elts, err := nodesFromExprs(v.Elts)
		if err != nil {
			return nil, err
		}
		return &node{Kind: "List", Elts: elts, Ctx: ctxString(v.Ctx)}, nil
	case *ast.Dict:
		keys, err := nodesFromExprs(v.Keys)
		if err != nil {
			return nil, err
		}
		values, err := nodesFromExprs(v.Values)
		if err != nil {
			return nil, err
		}
		return &node{Kind: "Dict", Keys: keys, Values: values}, nil
	case *ast.Constant:
		return &node{Kind: "Constant", Lit: v.Value}, nil
	case *ast.BinOp:
		left, err := nodeFromExpr(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := nodeFromExpr(v.Right)
		if err != nil {
			return nil, err
		}
		return &node{Kind: "BinOp", Left: left, Op: v.Op, Right: right}, nil
	case *ast.UnaryOp:
		x, err := nodeFromExpr(v.X)
		if err != nil {
			return nil, err
		}
		return &node{Kind: "UnaryOp", Op: v.Op, X: x}, nil
	case *ast.Compare:
		left, err := nodeFromExpr(v.Left)
		if err != nil {
			return nil, err
		}
		comparators, err := nodesFromExprs(v.Comparators)
		if err != nil {
			return nil, err
		}
		return &node{Kind: "Compare", Left: left, Ops: v.Ops, Comparators: comparators}, nil
	case *ast.ListComp:
		return nodeFromComp("ListComp", v.Elt, nil, nil, v.Generators)
	case *ast.SetComp:
		return nodeFromComp("SetComp", v.Elt, nil, nil, v.Generators)
	case *ast.DictComp:
		return nodeFromComp("DictComp", nil, v.Key, v.Value, v.Generators)
	case *ast.Raw:
		return &node{Kind: "Raw", Text: v.Text}, nil
	default:
		return nil, fmt.Errorf("astbridge: cannot encode expression %T", e)
	}
}

func nodeFromComp(kind string, elt, key, value ast.Expr, gens []ast.Comprehension) (*node, error) {
	n := &node{Kind: kind}
	var err error
	if elt != nil {
		if n.X, err = nodeFromExpr(elt); err != nil {
			return nil, err
		}
	}
	if key != nil {
		if n.Key, err = nodeFromExpr(key); err != nil {
			return nil, err
		}
	}
	if value != nil {
		if n.Value, err = nodeFromExpr(value); err != nil {
			return nil, err
		}
	}
	for _, g := range gens {
		target, err := nodeFromExpr(g.Target)
		if err != nil {
			return nil, err
		}
		iter, err := nodeFromExpr(g.Iter)
		if err != nil {
			return nil, err
		}
		ifs, err := nodesFromExprs(g.Ifs)
		if err != nil {
			return nil, err
		}
		n.Generators = append(n.Generators, compGen{Target: target, Iter: iter, Ifs: ifs})
	}
	return n, nil
}
