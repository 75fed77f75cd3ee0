// Package synth builds the code fragments control-flow lowering inserts as
// sibling statements: getter/setter accessor functions over an ordered name
// list, nonlocal declarations, and the small node helpers shared by the
// branch and loop transformers.
package synth

import (
	"regexp"
	"strings"

	"github.com/graphlower/graphlower/lowering/internal/ast"
	"github.com/graphlower/graphlower/lowering/internal/uniquename"
)

const (
	// GetArgsPrefix and SetArgsPrefix name the synthesized accessors.
	GetArgsPrefix = "get_args"
	SetArgsPrefix = "set_args"

	// ArgsName is the parameter of the setter: the full positional tuple.
	ArgsName = "__args"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Accessors bundles the getter and setter generated from one ordered name
// list. Both come out of the same synthesis call so they always agree on
// slot positions.
type Accessors struct {
	Getter *ast.FunctionDef
	Setter *ast.FunctionDef
	Names  []string // the list both were generated from, unmodified
}

// CreateAccessors synthesizes the getter/setter pair for names. The list
// must already be ordered and de-duplicated; it is never re-sorted here,
// since the two functions must agree positionally.
func CreateAccessors(names []string, gen *uniquename.Generator) Accessors {
	names = append([]string(nil), names...)
	return Accessors{
		Getter: CreateGetArgs(names, gen),
		Setter: CreateSetArgs(names, gen),
		Names:  names,
	}
}

// CreateGetArgs builds a zero-argument function that declares the simple
// names nonlocal and returns all names as a tuple in input order:
//
//	def get_args_0():
//	    nonlocal x, y
//	    return x, y,
//
// An empty list yields a no-op returning nothing.
func CreateGetArgs(names []string, gen *uniquename.Generator) *ast.FunctionDef {
	fn := &ast.FunctionDef{
		Name: generate(gen, GetArgsPrefix),
		Role: ast.RoleGetter,
	}
	if len(names) == 0 {
		fn.Body = []ast.Stmt{&ast.Return{}}
		return fn
	}
	if nl, ok := CreateNonlocalStmt(names); ok {
		fn.Body = append(fn.Body, nl)
	}
	fn.Body = append(fn.Body, &ast.Return{
		Value: GenerateNameExpr(names, ast.CtxLoad, true),
	})
	return fn
}

// CreateSetArgs builds a one-argument function that declares the simple
// names nonlocal and unpacks its argument positionally into them:
//
//	def set_args_0(__args):
//	    nonlocal x, y
//	    x, y, = __args
//
// An empty list yields a no-op that ignores its argument.
func CreateSetArgs(names []string, gen *uniquename.Generator) *ast.FunctionDef {
	fn := &ast.FunctionDef{
		Name: generate(gen, SetArgsPrefix),
		Args: ast.Arguments{Args: []string{ArgsName}},
		Role: ast.RoleSetter,
	}
	if len(names) == 0 {
		fn.Body = []ast.Stmt{&ast.Pass{}}
		return fn
	}
	if nl, ok := CreateNonlocalStmt(names); ok {
		fn.Body = append(fn.Body, nl)
	}
	fn.Body = append(fn.Body, &ast.Assign{
		Targets: []ast.Expr{GenerateNameExpr(names, ast.CtxStore, true)},
		Value:   &ast.Name{ID: ArgsName, Ctx: ast.CtxLoad},
	})
	return fn
}

// NonlocalNames filters names down to valid nonlocal-declaration targets:
// simple names only, de-duplicated with input order preserved. Qualified
// names are rejected here, before any code generation, and are instead
// reconstructed as expressions at the call site.
func NonlocalNames(names []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, n := range names {
		if strings.ContainsAny(n, ".[") {
			continue
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// CreateNonlocalStmt builds `nonlocal a, b, ...` over the valid subset of
// names. ok is false when nothing survives the filter.
func CreateNonlocalStmt(names []string) (*ast.Nonlocal, bool) {
	kept := NonlocalNames(names)
	if len(kept) == 0 {
		return nil, false
	}
	return &ast.Nonlocal{Names: kept}, true
}

// GenerateNameExpr turns a name list into the expression that reads or
// stores them. A single name yields a bare expression unless tupleIfSingle
// is set; multiple names always yield a tuple. Qualified names are
// reconstructed from their source text.
func GenerateNameExpr(names []string, ctx ast.Ctx, tupleIfSingle bool) ast.Expr {
	elts := make([]ast.Expr, len(names))
	for i, n := range names {
		elts[i] = ExprForName(n, ctx)
	}
	if len(elts) == 1 && !tupleIfSingle {
		return elts[0]
	}
	return &ast.Tuple{Elts: elts, Ctx: ctx}
}

// ExprForName rebuilds an expression from a recorded name. Simple names
// become Name nodes, dotted identifier chains become Attribute chains, and
// anything else (subscripted text) is carried verbatim.
func ExprForName(name string, ctx ast.Ctx) ast.Expr {
	if identRe.MatchString(name) {
		return &ast.Name{ID: name, Ctx: ctx}
	}
	if !strings.Contains(name, "[") {
		parts := strings.Split(name, ".")
		allIdents := true
		for _, p := range parts {
			if !identRe.MatchString(p) {
				allIdents = false
				break
			}
		}
		if allIdents && len(parts) > 1 {
			var e ast.Expr = &ast.Name{ID: parts[0], Ctx: ast.CtxLoad}
			for _, p := range parts[1 : len(parts)-1] {
				e = &ast.Attribute{Value: e, Attr: p, Ctx: ast.CtxLoad}
			}
			return &ast.Attribute{Value: e, Attr: parts[len(parts)-1], Ctx: ctx}
		}
	}
	return &ast.Raw{Text: name}
}

func generate(gen *uniquename.Generator, prefix string) string {
	if gen == nil {
		return uniquename.Generate(prefix)
	}
	return gen.Generate(prefix)
}
