package isa

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	// Magic is the ASCII letters 'p','o','c','o' read as a little-endian
	// 32-bit word.
	Magic uint32 = 0x6F636F70

	// CurrentVersion is the only format version this toolchain emits or
	// accepts.
	CurrentVersion uint32 = 1

	// HeaderSize is the fixed byte length of the object header. Because it
	// occupies bytes [0, HeaderSize), a well-formed program's entry point
	// must be >= HeaderSize.
	HeaderSize = 24
)

var (
	// ErrBadMagic is returned when a loaded object's magic word doesn't
	// match Magic.
	ErrBadMagic = errors.New("bad object magic")
	// ErrUnsupportedVersion is returned when a loaded object's version
	// doesn't match CurrentVersion.
	ErrUnsupportedVersion = errors.New("unsupported object version")
	// ErrTruncatedHeader is returned when fewer than HeaderSize bytes are
	// available to decode a header from.
	ErrTruncatedHeader = errors.New("truncated object header")
)

// Header is the fixed-size prefix of every Pocol object file.
type Header struct {
	Magic      uint32
	Version    uint32
	EntryPoint uint64
	CodeSize   uint64
}

// NewHeader builds a header for a freshly assembled object. The assembler
// calls it once both passes have completed, when EntryPoint and CodeSize
// are known.
func NewHeader(entryPoint, codeSize uint64) Header {
	return Header{
		Magic:      Magic,
		Version:    CurrentVersion,
		EntryPoint: entryPoint,
		CodeSize:   codeSize,
	}
}

// Encode serializes the header to its on-disk layout: magic, version,
// entry_point, code_size, all little-endian.
func (h Header) Encode() []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], h.Magic)
	binary.LittleEndian.PutUint32(buf[4:8], h.Version)
	binary.LittleEndian.PutUint64(buf[8:16], h.EntryPoint)
	binary.LittleEndian.PutUint64(buf[16:24], h.CodeSize)
	return buf
}

// DecodeHeader reads a header from buf and validates its magic and version
// against this toolchain's constants.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, errors.Wrapf(ErrTruncatedHeader, "got %d bytes, want %d", len(buf), HeaderSize)
	}

	h := Header{
		Magic:      binary.LittleEndian.Uint32(buf[0:4]),
		Version:    binary.LittleEndian.Uint32(buf[4:8]),
		EntryPoint: binary.LittleEndian.Uint64(buf[8:16]),
		CodeSize:   binary.LittleEndian.Uint64(buf[16:24]),
	}

	if h.Magic != Magic {
		return h, errors.Wrapf(ErrBadMagic, "got 0x%08x", h.Magic)
	}
	if h.Version != CurrentVersion {
		return h, errors.Wrapf(ErrUnsupportedVersion, "got %d, support %d", h.Version, CurrentVersion)
	}
	return h, nil
}
