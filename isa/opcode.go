// Package isa defines the Pocol instruction set and binary object format:
// the shared contract between the assembler and the interpreter.
package isa

import "github.com/pkg/errors"

// Opcode identifies one of the six Pocol instructions. Numeric identities
// are assigned starting at zero and MUST stay stable across toolchain
// versions that share a format version (see Header.Version).
type Opcode byte

const (
	Halt Opcode = iota
	Push
	Pop
	Add
	Jmp
	Print
)

// OpcodeInfo describes the fixed shape of an opcode: its mnemonic and the
// number of operand slots an encoded instruction of that opcode carries.
type OpcodeInfo struct {
	Mnemonic     string
	OperandCount int
}

// opcodeTable is exhaustive over Opcode and is consulted both by the
// assembler (mnemonic -> opcode, and operand count) and by disassembly.
var opcodeTable = map[Opcode]OpcodeInfo{
	Halt:  {"halt", 0},
	Push:  {"push", 1},
	Pop:   {"pop", 1},
	Add:   {"add", 2},
	Jmp:   {"jmp", 1},
	Print: {"print", 1},
}

var mnemonicTable map[string]Opcode

func init() {
	mnemonicTable = make(map[string]Opcode, len(opcodeTable))
	for op, info := range opcodeTable {
		mnemonicTable[info.Mnemonic] = op
	}
}

// ErrUnknownOpcode is wrapped with the offending byte value by Info.
var ErrUnknownOpcode = errors.New("unrecognized opcode")

// Info returns the table entry for op.
func Info(op Opcode) (OpcodeInfo, error) {
	info, ok := opcodeTable[op]
	if !ok {
		return OpcodeInfo{}, errors.Wrapf(ErrUnknownOpcode, "opcode byte 0x%02x", byte(op))
	}
	return info, nil
}

// Lookup maps a mnemonic to its opcode, for the assembler's pass 1/pass 2
// classification of an identifier token.
func Lookup(mnemonic string) (Opcode, bool) {
	op, ok := mnemonicTable[mnemonic]
	return op, ok
}

// String renders the opcode's mnemonic, or "?unknown?" for a value outside
// the table — mirrors the permissive Stringer used for debug output
// throughout the toolchain.
func (op Opcode) String() string {
	if info, ok := opcodeTable[op]; ok {
		return info.Mnemonic
	}
	return "?unknown?"
}
