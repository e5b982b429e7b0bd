package isa

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// ErrOutOfRange is wrapped with the offending offset whenever a multi-byte
// read or write would cross the end of the supplied buffer.
var ErrOutOfRange = errors.New("illegal memory access")

// PutInt64 serializes v as 8 little-endian, two's-complement bytes starting
// at buf[offset:]. It requires offset+8 <= len(buf).
func PutInt64(buf []byte, offset int, v int64) error {
	if offset < 0 || offset+8 > len(buf) {
		return errors.Wrapf(ErrOutOfRange, "write of 8 bytes at offset %d (len %d)", offset, len(buf))
	}
	binary.LittleEndian.PutUint64(buf[offset:], uint64(v))
	return nil
}

// Int64 decodes a 64-bit little-endian, two's-complement value from
// buf[offset : offset+8]. It requires offset+8 <= len(buf).
func Int64(buf []byte, offset int) (int64, error) {
	if offset < 0 || offset+8 > len(buf) {
		return 0, errors.Wrapf(ErrOutOfRange, "read of 8 bytes at offset %d (len %d)", offset, len(buf))
	}
	return int64(binary.LittleEndian.Uint64(buf[offset:])), nil
}

// EncodeInstruction lays out one instruction on the wire: opcode byte,
// descriptor byte, then per-operand bytes in order.
func EncodeInstruction(op Opcode, operands [2]Operand) []byte {
	info, err := Info(op)
	if err != nil {
		// Caller is responsible for only encoding known opcodes; a bad
		// opcode here is a toolchain bug, not a user-facing error.
		panic(err)
	}

	out := make([]byte, 2, 2+8+8)
	out[0] = byte(op)
	out[1] = PackDescriptor(operands[0].Kind, operands[1].Kind)

	for i := 0; i < info.OperandCount; i++ {
		o := operands[i]
		switch o.Kind {
		case KindReg:
			out = append(out, MaskReg(o.Reg))
		case KindImm:
			var buf [8]byte
			binary.LittleEndian.PutUint64(buf[:], uint64(o.Imm))
			out = append(out, buf[:]...)
		}
	}
	return out
}

// DecodeInstruction reads one encoded instruction from code[pc:], returning
// the opcode, its (up to two) operands, and the offset of the following
// instruction. It is used by both the interpreter's dispatch loop and the
// assembler/interpreter's shared disassembly path, so both always agree on
// how bytes map to instructions.
func DecodeInstruction(code []byte, pc int) (Opcode, [2]Operand, int, error) {
	if pc < 0 || pc+2 > len(code) {
		return 0, [2]Operand{}, pc, errors.Wrapf(ErrOutOfRange, "instruction header at pc=%d", pc)
	}

	op := Opcode(code[pc])
	info, err := Info(op)
	if err != nil {
		return op, [2]Operand{}, pc, err
	}

	slot1, slot2 := UnpackDescriptor(code[pc+1])
	kinds := [2]OperandKind{slot1, slot2}
	cursor := pc + 2

	var operands [2]Operand
	for i := 0; i < info.OperandCount; i++ {
		k := kinds[i]
		operands[i].Kind = k
		switch k {
		case KindReg:
			if cursor+1 > len(code) {
				return op, operands, cursor, errors.Wrapf(ErrOutOfRange, "register operand at pc=%d", cursor)
			}
			operands[i].Reg = MaskReg(code[cursor])
			cursor++
		case KindImm:
			v, err := Int64(code, cursor)
			if err != nil {
				return op, operands, cursor, err
			}
			operands[i].Imm = v
			cursor += 8
		}
	}

	return op, operands, cursor, nil
}

// EncodedLen returns the number of bytes an instruction with the given
// opcode and operand kinds will occupy — used by the assembler's first
// pass to advance the virtual program counter without emitting anything.
func EncodedLen(op Opcode, kinds [2]OperandKind) (int, error) {
	info, err := Info(op)
	if err != nil {
		return 0, err
	}
	n := 2
	for i := 0; i < info.OperandCount; i++ {
		n += kinds[i].EncodedSize()
	}
	return n, nil
}
