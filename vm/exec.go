package vm

import (
	"fmt"

	"github.com/pkg/errors"

	"pocol/isa"
)

// Step executes exactly one fetch/decode/dispatch cycle. It is a no-op
// returning nil if the VM is already halted.
func (v *VM) Step() error {
	if v.Halted {
		return nil
	}

	pc := int(v.PC)
	op, operands, next, err := isa.DecodeInstruction(v.Memory, pc)
	if err != nil {
		return v.decodeError(op, pc, err)
	}

	switch op {
	case isa.Halt:
		v.Halted = true

	case isa.Push:
		if err := v.push(v.operandValue(operands[0])); err != nil {
			return errors.Wrapf(err, "opcode=%s pc=%d", op, pc)
		}

	case isa.Pop:
		// pop's operand byte is read as a register index whatever kind
		// the descriptor byte names.
		if pc+3 > len(v.Memory) {
			return errors.Wrapf(ErrIllegalMemoryAccess, "opcode=%s pc=%d", op, pc)
		}
		if err := v.pop(isa.MaskReg(v.Memory[pc+2])); err != nil {
			return errors.Wrapf(err, "opcode=%s pc=%d", op, pc)
		}
		next = pc + 3

	case isa.Add:
		dest := operands[0].Reg
		v.Registers[dest] += v.operandValue(operands[1])

	case isa.Jmp:
		v.PC = v.operandValue(operands[0])
		return nil

	case isa.Print:
		fmt.Fprintf(v.Stdout, "%d", v.operandValue(operands[0]))

	default:
		return errors.Wrapf(ErrIllegalInstruction, "opcode=0x%02x pc=%d", byte(op), pc)
	}

	v.PC = uint64(next)
	return nil
}

// Run executes step() in a loop until halted, an error occurs, or
// stepBudget instructions have been dispatched. stepBudget < 0 means
// unbounded.
func (v *VM) Run(stepBudget int64) error {
	for stepBudget != 0 && !v.Halted {
		if err := v.Step(); err != nil {
			return err
		}
		if stepBudget > 0 {
			stepBudget--
		}
	}
	return nil
}

// operandValue resolves an operand to its 64-bit value: register
// contents for a reg operand, the literal value for an imm operand, and
// zero for none (which should never be dispatched against a real
// opcode's operand slot).
func (v *VM) operandValue(o isa.Operand) uint64 {
	switch o.Kind {
	case isa.KindReg:
		return v.Registers[o.Reg]
	case isa.KindImm:
		return uint64(o.Imm)
	default:
		return 0
	}
}

func (v *VM) push(val uint64) error {
	if v.SP == len(v.Stack) {
		return ErrStackOverflow
	}
	v.Stack[v.SP] = val
	v.SP++
	return nil
}

func (v *VM) pop(destReg byte) error {
	if v.SP == 0 {
		return ErrStackUnderflow
	}
	v.SP--
	v.Registers[destReg] = v.Stack[v.SP]
	return nil
}

// decodeError classifies a DecodeInstruction failure into the runtime
// taxonomy: an unrecognized opcode byte is illegal-instruction, anything
// else (a read crossing the end of memory) is illegal-memory-access.
func (v *VM) decodeError(op isa.Opcode, pc int, err error) error {
	if errors.Is(err, isa.ErrUnknownOpcode) {
		return errors.Wrapf(ErrIllegalInstruction, "opcode=0x%02x pc=%d", byte(op), pc)
	}
	if pc >= 0 && pc < len(v.Memory) {
		return errors.Wrapf(ErrIllegalMemoryAccess, "opcode=0x%02x pc=%d: %s", v.Memory[pc], pc, err)
	}
	return errors.Wrapf(ErrIllegalMemoryAccess, "pc=%d: %s", pc, err)
}
