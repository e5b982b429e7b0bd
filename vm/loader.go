package vm

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"pocol/isa"
)

var (
	// ErrNotRegularFile is returned when the path does not name a
	// regular file.
	ErrNotRegularFile = errors.New("not a regular file")
	// ErrEmptyFile is returned for a zero-length object file.
	ErrEmptyFile = errors.New("empty object file")
	// ErrObjectTooLarge is returned when the object file is larger
	// than the VM's memory.
	ErrObjectTooLarge = errors.New("object file larger than memory")
)

// Load opens, validates, and loads the object file at path.
func (v *VM) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening object %s", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return errors.Wrapf(err, "stat object %s", path)
	}
	if !info.Mode().IsRegular() {
		return errors.Wrapf(ErrNotRegularFile, "%s", path)
	}
	if info.Size() == 0 {
		return errors.Wrapf(ErrEmptyFile, "%s", path)
	}
	if info.Size() > int64(len(v.Memory)) {
		return errors.Wrapf(ErrObjectTooLarge, "%s: %d bytes, memory is %d bytes", path, info.Size(), len(v.Memory))
	}

	data := make([]byte, info.Size())
	if _, err := io.ReadFull(f, data); err != nil {
		return errors.Wrapf(err, "reading object %s", path)
	}
	return v.LoadBytes(data)
}

// LoadBytes validates and loads an already-read object image. The full
// image is copied into memory starting at byte 0; the remainder of
// memory is zeroed. PC is set to the header's entry point, SP to 0,
// Halted to false, and all registers to 0.
func (v *VM) LoadBytes(data []byte) error {
	if len(data) == 0 {
		return ErrEmptyFile
	}
	if len(data) > len(v.Memory) {
		return errors.Wrapf(ErrObjectTooLarge, "%d bytes, memory is %d bytes", len(data), len(v.Memory))
	}

	header, err := isa.DecodeHeader(data)
	if err != nil {
		return err
	}

	n := copy(v.Memory, data)
	for i := n; i < len(v.Memory); i++ {
		v.Memory[i] = 0
	}

	v.PC = header.EntryPoint
	v.SP = 0
	v.Halted = false
	v.Registers = [8]uint64{}
	for i := range v.Stack {
		v.Stack[i] = 0
	}
	return nil
}
