package asm

import "fmt"

// Diagnostic is one assembler error, anchored to a source position.
// Diagnostic itself doesn't know the source file name; the caller adds the
// path prefix when rendering (see Assemble).
type Diagnostic struct {
	Pos     Position
	Message string
}

func newDiagnostic(pos Position, format string, args ...any) Diagnostic {
	return Diagnostic{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// String renders "line:col: error: message"; the caller prepends the path.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: error: %s", d.Pos.Line, d.Pos.Column, d.Message)
}
