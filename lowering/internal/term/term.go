// Package term holds the print helpers the glow commands write through.
// Each one swallows the (n, err) pair from fmt so command code stays free of
// unhandled-result noise; only the helpers the CLI actually calls live here.
package term

import (
	"fmt"
	"os"
)

// Printf writes formatted text to stdout.
func Printf(format string, a ...any) { _, _ = fmt.Printf(format, a...) }

// Eprintf writes formatted text to stderr.
func Eprintf(format string, a ...any) { _, _ = fmt.Fprintf(os.Stderr, format, a...) }

// Eprintln writes a line to stderr.
func Eprintln(a ...any) { _, _ = fmt.Fprintln(os.Stderr, a...) }
