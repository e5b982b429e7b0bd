package vm

import (
	"fmt"

	"pocol/isa"
)

// DisassembleAt decodes and formats the single instruction at the given
// memory offset for trace/debug output. It uses the same
// isa.DecodeInstruction that Step does, so trace output and actual
// execution never disagree about what an instruction means (mirrors
// asm.Object.Disassemble on the other side of the toolchain).
func (v *VM) DisassembleAt(pc int) (string, int, error) {
	op, operands, next, err := isa.DecodeInstruction(v.Memory, pc)
	if err != nil {
		return "", pc, err
	}
	info, err := isa.Info(op)
	if err != nil {
		return "", pc, err
	}

	line := info.Mnemonic
	for i := 0; i < info.OperandCount; i++ {
		o := operands[i]
		switch o.Kind {
		case isa.KindReg:
			line += fmt.Sprintf(" r%d", o.Reg)
		case isa.KindImm:
			line += fmt.Sprintf(" %d", o.Imm)
		}
	}
	return line, next, nil
}
