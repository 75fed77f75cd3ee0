package diag

import "fmt"

// Pos marks a 1-based line/column location in a source file.
type Pos struct{ Line, Col int }

// Span marks a half-open range [Start, End) within a file.
type Span struct {
	Start Pos
	End   Pos
}

// Diagnostic is an analyzer message with an optional span.
type Diagnostic struct {
	Span Span
	Msg  string
}

func (d Diagnostic) Error() string {
	if d.Span.Start.Line == 0 {
		return d.Msg
	}
	return fmt.Sprintf("%d:%d: %s", d.Span.Start.Line, d.Span.Start.Col, d.Msg)
}

// Warning is a non-fatal analyzer message carrying a stable code.
type Warning struct {
	Code string // e.g., GLW0001
	Msg  string
}

func (w Warning) String() string {
	if w.Code == "" {
		return "warning: " + w.Msg
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Msg)
}

// Warningf builds a Warning with a formatted message.
func Warningf(code, format string, a ...any) Warning {
	return Warning{Code: code, Msg: fmt.Sprintf(format, a...)}
}
