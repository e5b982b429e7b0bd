package asm

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"pocol/isa"
)

// Object is an assembled program: a header plus its code section.
type Object struct {
	Header isa.Header
	Code   []byte
}

// Bytes returns the full on-disk representation: header followed by code.
func (obj *Object) Bytes() []byte {
	out := make([]byte, 0, isa.HeaderSize+len(obj.Code))
	out = append(out, obj.Header.Encode()...)
	out = append(out, obj.Code...)
	return out
}

// WriteFile writes the object atomically: to a temporary path in the same
// directory, created executable (0777 modulo umask) as a convenience for
// tooling that invokes it directly, then renamed over the final path. On
// any failure the temporary file is removed.
func (obj *Object) WriteFile(path string) (err error) {
	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".pocol-obj-%d-%d", os.Getpid(), time.Now().UnixNano()))
	// The permission passed to OpenFile is reduced by the process umask.
	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o777)
	if err != nil {
		return errors.Wrap(err, "creating temporary object file")
	}
	defer func() {
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(obj.Bytes()); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temporary object file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temporary object file")
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return errors.Wrap(err, "renaming object file into place")
	}
	return nil
}

// Line is one disassembled instruction, used both for the
// assemble/disassemble round-trip check and for debug output.
type Line struct {
	Addr     uint64
	Mnemonic string
	Operands []string
}

func (l Line) String() string {
	out := l.Mnemonic
	for _, o := range l.Operands {
		out += " " + o
	}
	return out
}

// Disassemble decodes the object's code section back into a sequence of
// lines, using the same isa.DecodeInstruction the interpreter's fetch
// step uses — assembler and interpreter never maintain independent
// notions of "what does this instruction mean".
func (obj *Object) Disassemble() ([]Line, error) {
	var lines []Line
	pc := 0
	for pc < len(obj.Code) {
		op, operands, next, err := isa.DecodeInstruction(obj.Code, pc)
		if err != nil {
			return lines, errors.Wrapf(err, "disassembling at code offset %d", pc)
		}

		info, err := isa.Info(op)
		if err != nil {
			return lines, err
		}

		line := Line{Addr: uint64(pc) + isa.HeaderSize, Mnemonic: info.Mnemonic}
		for i := 0; i < info.OperandCount; i++ {
			operand := operands[i]
			switch operand.Kind {
			case isa.KindReg:
				line.Operands = append(line.Operands, fmt.Sprintf("r%d", operand.Reg))
			case isa.KindImm:
				line.Operands = append(line.Operands, fmt.Sprintf("%d", operand.Imm))
			}
		}

		lines = append(lines, line)
		pc = next
	}
	return lines, nil
}
