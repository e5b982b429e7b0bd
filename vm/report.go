package vm

import "fmt"

// ReportError writes a human-readable rendering of a runtime error to
// v.Stderr. The error's message already carries the failing opcode and
// pc, attached by Step via errors.Wrapf.
func (v *VM) ReportError(err error) {
	fmt.Fprintf(v.Stderr, "pocol-vm: %s\n", err)
}
