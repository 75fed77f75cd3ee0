package astbridge

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lithammer/dedent"

	"github.com/graphlower/graphlower/lowering/internal/ast"
)

func TestDecodeModule(t *testing.T) {
	src := dedent.Dedent(`
		{
		  "kind": "Module",
		  "body": [
		    {
		      "kind": "FunctionDef",
		      "name": "f",
		      "params": {"args": ["x"]},
		      "body": [
		        {
		          "kind": "If",
		          "cond": {"kind": "Name", "id": "c"},
		          "body": [
		            {
		              "kind": "Assign",
		              "targets": [{"kind": "Name", "id": "y", "ctx": "store"}],
		              "value": {"kind": "Constant", "lit": 1}
		            }
		          ]
		        }
		      ]
		    }
		  ]
		}
	`)
	mod, err := DecodeModule(strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodeModule: %v", err)
	}
	fn, ok := mod.Body[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("body[0] is %T, want FunctionDef", mod.Body[0])
	}
	if fn.Name != "f" || len(fn.Args.Args) != 1 || fn.Args.Args[0] != "x" {
		t.Fatalf("decoded function header mismatch: %+v", fn)
	}
	ifStmt, ok := fn.Body[0].(*ast.If)
	if !ok {
		t.Fatalf("fn.Body[0] is %T, want If", fn.Body[0])
	}
	asn := ifStmt.Body[0].(*ast.Assign)
	name := asn.Targets[0].(*ast.Name)
	if name.ID != "y" || name.Ctx != ast.CtxStore {
		t.Fatalf("decoded target = %+v, want y in store context", name)
	}
	c, ok := asn.Value.(*ast.Constant)
	if !ok || c.Value != int64(1) {
		t.Fatalf("decoded literal = %#v, want int64(1)", asn.Value)
	}
}

func TestDecodeRejectsUnknownKinds(t *testing.T) {
	cases := []string{
		`{"kind": "NotAModule"}`,
		`{"kind": "Module", "body": [{"kind": "Mystery"}]}`,
		`{"kind": "Module", "body": [{"kind": "ExprStmt", "x": {"kind": "Name", "id": "a", "ctx": "sideways"}}]}`,
	}
	for _, src := range cases {
		if _, err := DecodeModule(strings.NewReader(src)); err == nil {
			t.Fatalf("expected decode error for %s", src)
		}
	}
}

func TestDecodeRoleTags(t *testing.T) {
	src := `{"kind": "Module", "body": [
		{"kind": "FunctionDef", "name": "t", "role": "branch-true", "body": [{"kind": "Pass"}]},
		{"kind": "FunctionDef", "name": "g", "role": "getter", "body": [{"kind": "Return"}]}
	]}`
	mod, err := DecodeModule(strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodeModule: %v", err)
	}
	if got := mod.Body[0].(*ast.FunctionDef).Role; got != ast.RoleBranchTrue {
		t.Fatalf("role = %v, want branch-true", got)
	}
	if got := mod.Body[1].(*ast.FunctionDef).Role; got != ast.RoleGetter {
		t.Fatalf("role = %v, want getter", got)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	mod := &ast.Module{Body: []ast.Stmt{
		&ast.FunctionDef{
			Name: "f",
			Args: ast.Arguments{Args: []string{"a", "b"}, Vararg: "rest"},
			Body: []ast.Stmt{
				&ast.Assign{
					Targets: []ast.Expr{&ast.Name{ID: "x", Ctx: ast.CtxStore}},
					Value: &ast.BinOp{
						Left:  &ast.Name{ID: "a", Ctx: ast.CtxLoad},
						Op:    "+",
						Right: &ast.Constant{Value: int64(2)},
					},
				},
				&ast.While{
					Cond: &ast.Compare{
						Left:        &ast.Name{ID: "x", Ctx: ast.CtxLoad},
						Ops:         []string{"<"},
						Comparators: []ast.Expr{&ast.Name{ID: "b", Ctx: ast.CtxLoad}},
					},
					Body: []ast.Stmt{
						&ast.AugAssign{
							Target: &ast.Name{ID: "x", Ctx: ast.CtxStore},
							Op:     "+",
							Value:  &ast.Constant{Value: int64(1)},
						},
					},
				},
				&ast.ExprStmt{X: &ast.Call{
					Func: &ast.Attribute{
						Value: &ast.Name{ID: "acc", Ctx: ast.CtxLoad},
						Attr:  "append",
						Ctx:   ast.CtxLoad,
					},
					Args:     []ast.Expr{&ast.Name{ID: "x", Ctx: ast.CtxLoad}},
					Keywords: []ast.Keyword{{Arg: "flag", Value: &ast.Constant{Value: true}}},
				}},
				&ast.Return{Value: &ast.Tuple{
					Elts: []ast.Expr{
						&ast.Name{ID: "x", Ctx: ast.CtxLoad},
						&ast.Constant{Value: "done"},
						&ast.Constant{Value: 2.5},
						&ast.Raw{Text: "a[0]"},
					},
					Ctx: ast.CtxLoad,
				}},
			},
		},
	}}

	var buf bytes.Buffer
	if err := EncodeModule(&buf, mod); err != nil {
		t.Fatalf("EncodeModule: %v", err)
	}
	back, err := DecodeModule(&buf)
	if err != nil {
		t.Fatalf("DecodeModule: %v", err)
	}
	if diff := cmp.Diff(mod, back); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
