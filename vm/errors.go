package vm

import "github.com/pkg/errors"

// Runtime error taxonomy. Each is wrapped with the failing opcode byte
// and the pc at which it was detected before being returned from Step.
var (
	ErrStackOverflow       = errors.New("stack overflow")
	ErrStackUnderflow      = errors.New("stack underflow")
	ErrIllegalInstruction  = errors.New("unrecognized opcode")
	ErrIllegalMemoryAccess = errors.New("illegal memory access")
)
