// Package uniquename mints collision-free synthetic identifiers for
// generated code (accessor functions, loop helpers). Counters are atomic so
// concurrent lowering of different functions never reuses a suffix.
package uniquename

import (
	"fmt"
	"sync/atomic"
)

// Generator produces names of the form prefix_N with a monotonically
// increasing N. The zero value is ready to use.
type Generator struct {
	n atomic.Int64
}

// Generate returns the next unique name for the given prefix.
func (g *Generator) Generate(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, g.n.Add(1)-1)
}

var global Generator

// Generate mints a name from the process-wide generator.
func Generate(prefix string) string { return global.Generate(prefix) }
