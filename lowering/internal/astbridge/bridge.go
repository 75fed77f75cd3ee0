// Package astbridge decodes and encodes the JSON tree interchange format
// the external front-end emits, mirroring the source grammar node for node.
// The parser itself lives with the front-end; this bridge only maps its
// output onto the in-memory AST.
package astbridge

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/graphlower/graphlower/lowering/internal/ast"
)

// node is the wire shape of one AST node. Example rows:
//
//	{"kind":"Name","id":"x","ctx":"store"}
//	{"kind":"If","cond":{...},"body":[...],"else":[...]}
//
// Field meaning depends on kind; unknown kinds are rejected.
type node struct {
	Kind string `json:"kind"`

	// identifiers and flat payloads
	ID    string   `json:"id,omitempty"`
	Ctx   string   `json:"ctx,omitempty"`
	Attr  string   `json:"attr,omitempty"`
	Op    string   `json:"op,omitempty"`
	Text  string   `json:"text,omitempty"`
	Name  string   `json:"name,omitempty"`
	Role  string   `json:"role,omitempty"`
	Names []string `json:"names,omitempty"`
	Ops   []string `json:"ops,omitempty"`
	Lit   any      `json:"lit,omitempty"`

	// function parameters
	Params *params `json:"params,omitempty"`

	// statement bodies
	Body []*node `json:"body,omitempty"`
	Else []*node `json:"else,omitempty"`

	// expression children
	Cond        *node     `json:"cond,omitempty"`
	Target      *node     `json:"target,omitempty"`
	Targets     []*node   `json:"targets,omitempty"`
	Iter        *node     `json:"iter,omitempty"`
	Value       *node     `json:"value,omitempty"`
	Index       *node     `json:"index,omitempty"`
	Func        *node     `json:"func,omitempty"`
	Args        []*node   `json:"args,omitempty"`
	Keywords    []keyword `json:"keywords,omitempty"`
	Elts        []*node   `json:"elts,omitempty"`
	Keys        []*node   `json:"keys,omitempty"`
	Values      []*node   `json:"values,omitempty"`
	Left        *node     `json:"left,omitempty"`
	Right       *node     `json:"right,omitempty"`
	X           *node     `json:"x,omitempty"`
	Comparators []*node   `json:"comparators,omitempty"`
	Key         *node     `json:"key,omitempty"`
	Generators  []compGen `json:"generators,omitempty"`
}

type params struct {
	Args   []string `json:"args,omitempty"`
	Vararg string   `json:"vararg,omitempty"`
	Kwarg  string   `json:"kwarg,omitempty"`
}

type keyword struct {
	Arg   string `json:"arg"`
	Value *node  `json:"value"`
}

type compGen struct {
	Target *node   `json:"target"`
	Iter   *node   `json:"iter"`
	Ifs    []*node `json:"ifs,omitempty"`
}

// DecodeModule reads one JSON module document from r.
func DecodeModule(r io.Reader) (*ast.Module, error) {
	var root node
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("astbridge: decode: %w", err)
	}
	return moduleFromNode(&root)
}

// EncodeModule writes m as a JSON module document.
func EncodeModule(w io.Writer, m *ast.Module) error {
	root, err := nodeFromModule(m)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("astbridge: encode: %w", err)
	}
	return nil
}
