package ast

import (
	"fmt"
	"strconv"
	"strings"
)

/*** SOURCE TEXT ***/

// ExprString renders an expression back to source text. The liveness pass
// records qualified written names (attribute and subscript targets) by this
// text, and the synthesizer re-emits them verbatim.
func ExprString(e Expr) string {
	switch v := e.(type) {
	case *Name:
		return v.ID
	case *Attribute:
		return ExprString(v.Value) + "." + v.Attr
	case *Subscript:
		return ExprString(v.Value) + "[" + ExprString(v.Index) + "]"
	case *Call:
		parts := make([]string, 0, len(v.Args)+len(v.Keywords))
		for _, a := range v.Args {
			parts = append(parts, ExprString(a))
		}
		for _, k := range v.Keywords {
			parts = append(parts, k.Arg+"="+ExprString(k.Value))
		}
		return ExprString(v.Func) + "(" + strings.Join(parts, ", ") + ")"
	case *Tuple:
		if len(v.Elts) == 1 {
			return ExprString(v.Elts[0]) + ","
		}
		return joinExprs(v.Elts, ", ")
	case *List:
		return "[" + joinExprs(v.Elts, ", ") + "]"
	case *Dict:
		var b strings.Builder
		b.WriteString("{")
		for i := range v.Keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(ExprString(v.Keys[i]))
			b.WriteString(": ")
			b.WriteString(ExprString(v.Values[i]))
		}
		b.WriteString("}")
		return b.String()
	case *Constant:
		return constString(v.Value)
	case *BinOp:
		return "(" + ExprString(v.Left) + " " + v.Op + " " + ExprString(v.Right) + ")"
	case *UnaryOp:
		return v.Op + " " + ExprString(v.X)
	case *Compare:
		var b strings.Builder
		b.WriteString(ExprString(v.Left))
		for i, op := range v.Ops {
			b.WriteString(" " + op + " ")
			b.WriteString(ExprString(v.Comparators[i]))
		}
		return b.String()
	case *ListComp:
		return "[" + ExprString(v.Elt) + compClauses(v.Generators) + "]"
	case *SetComp:
		return "{" + ExprString(v.Elt) + compClauses(v.Generators) + "}"
	case *DictComp:
		return "{" + ExprString(v.Key) + ": " + ExprString(v.Value) + compClauses(v.Generators) + "}"
	case *Raw:
		return v.Text
	default:
		return "<expr>"
	}
}

func joinExprs(es []Expr, sep string) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = ExprString(e)
	}
	return strings.Join(parts, sep)
}

func compClauses(gens []Comprehension) string {
	var b strings.Builder
	for _, g := range gens {
		fmt.Fprintf(&b, " for %s in %s", ExprString(g.Target), ExprString(g.Iter))
		for _, c := range g.Ifs {
			b.WriteString(" if " + ExprString(c))
		}
	}
	return b.String()
}

func constString(v any) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case bool:
		if x {
			return "True"
		}
		return "False"
	case string:
		return "'" + strings.ReplaceAll(x, "'", "\\'") + "'"
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}

/*** DUMP ***/

// Dump renders a module as indentation-structured source, one statement per
// line. It exists for the CLI and tests; the pretty-printer of record lives
// with the front-end.
func Dump(m *Module) string {
	var b strings.Builder
	writeStmts(&b, m.Body, 0)
	return b.String()
}

// DumpStmt renders a single statement subtree at the given indent depth.
func DumpStmt(s Stmt, depth int) string {
	var b strings.Builder
	writeStmt(&b, s, depth)
	return b.String()
}

func writeStmts(b *strings.Builder, ss []Stmt, depth int) {
	for _, s := range ss {
		writeStmt(b, s, depth)
	}
}

func writeStmt(b *strings.Builder, s Stmt, depth int) {
	ind := strings.Repeat("    ", depth)
	switch st := s.(type) {
	case *FunctionDef:
		fmt.Fprintf(b, "%sdef %s(%s):\n", ind, st.Name, strings.Join(st.Args.Names(), ", "))
		writeBody(b, st.Body, depth+1)
	case *Assign:
		targets := make([]string, len(st.Targets))
		for i, t := range st.Targets {
			targets[i] = ExprString(t)
		}
		fmt.Fprintf(b, "%s%s = %s\n", ind, strings.Join(targets, " = "), ExprString(st.Value))
	case *AugAssign:
		fmt.Fprintf(b, "%s%s %s= %s\n", ind, ExprString(st.Target), st.Op, ExprString(st.Value))
	case *Delete:
		fmt.Fprintf(b, "%sdel %s\n", ind, joinExprs(st.Targets, ", "))
	case *Return:
		if st.Value == nil {
			fmt.Fprintf(b, "%sreturn\n", ind)
		} else {
			fmt.Fprintf(b, "%sreturn %s\n", ind, ExprString(st.Value))
		}
	case *If:
		fmt.Fprintf(b, "%sif %s:\n", ind, ExprString(st.Cond))
		writeBody(b, st.Body, depth+1)
		if st.Else != nil {
			fmt.Fprintf(b, "%selse:\n", ind)
			writeBody(b, st.Else, depth+1)
		}
	case *While:
		fmt.Fprintf(b, "%swhile %s:\n", ind, ExprString(st.Cond))
		writeBody(b, st.Body, depth+1)
		if st.Else != nil {
			fmt.Fprintf(b, "%selse:\n", ind)
			writeBody(b, st.Else, depth+1)
		}
	case *For:
		fmt.Fprintf(b, "%sfor %s in %s:\n", ind, ExprString(st.Target), ExprString(st.Iter))
		writeBody(b, st.Body, depth+1)
		if st.Else != nil {
			fmt.Fprintf(b, "%selse:\n", ind)
			writeBody(b, st.Else, depth+1)
		}
	case *Global:
		fmt.Fprintf(b, "%sglobal %s\n", ind, strings.Join(st.Names, ", "))
	case *Nonlocal:
		fmt.Fprintf(b, "%snonlocal %s\n", ind, strings.Join(st.Names, ", "))
	case *ExprStmt:
		fmt.Fprintf(b, "%s%s\n", ind, ExprString(st.X))
	case *Pass:
		fmt.Fprintf(b, "%spass\n", ind)
	default:
		fmt.Fprintf(b, "%s<stmt>\n", ind)
	}
}

func writeBody(b *strings.Builder, ss []Stmt, depth int) {
	if len(ss) == 0 {
		fmt.Fprintf(b, "%spass\n", strings.Repeat("    ", depth))
		return
	}
	writeStmts(b, ss, depth)
}
