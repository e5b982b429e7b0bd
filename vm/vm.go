// Package vm implements the Pocol interpreter core: a single-threaded
// fetch/decode/dispatch loop over a loaded object.
package vm

import (
	"io"
	"os"

	"pocol/config"
)

// VM holds all interpreter state. Memory and Stack are sized from a
// config.Config at construction rather than package-level constants, so
// the two historically-inconsistent size pairs noted in the reference
// collapse into one configurable value.
type VM struct {
	Memory    []byte
	Stack     []uint64
	Registers [8]uint64
	PC        uint64
	SP        int
	Halted    bool

	// Stdout and Stderr receive print output and error reports
	// respectively. Tests substitute buffers here instead of reaching
	// for package-level os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// NewVM allocates a VM sized per cfg. Memory and stack are zeroed; the
// VM is not runnable until Load or LoadBytes populates it.
func NewVM(cfg config.Config) *VM {
	return &VM{
		Memory: make([]byte, cfg.MemorySize),
		Stack:  make([]uint64, cfg.StackSize),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
