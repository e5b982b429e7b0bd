package isa

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptorPackIdempotence(t *testing.T) {
	kinds := []OperandKind{KindNone, KindReg, KindImm}
	for _, a := range kinds {
		for _, b := range kinds {
			packed := PackDescriptor(a, b)
			gotA, gotB := UnpackDescriptor(packed)
			assert.Equal(t, a, gotA)
			assert.Equal(t, b, gotB)
		}
	}
}

func TestInt64RoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 7, -7, 1 << 40, -(1 << 40), 9223372036854775807, -9223372036854775808}
	for _, v := range values {
		buf := make([]byte, 8)
		require.NoError(t, PutInt64(buf, 0, v))
		got, err := Int64(buf, 0)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestInt64OutOfRange(t *testing.T) {
	buf := make([]byte, 4)
	_, err := Int64(buf, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestEncodeDecodeInstructionRoundTrip(t *testing.T) {
	cases := []struct {
		name     string
		op       Opcode
		operands [2]Operand
	}{
		{"halt", Halt, [2]Operand{}},
		{"push-imm", Push, [2]Operand{{Kind: KindImm, Imm: 10}}},
		{"pop-reg", Pop, [2]Operand{{Kind: KindReg, Reg: 1}}},
		{"add-reg-reg", Add, [2]Operand{{Kind: KindReg, Reg: 3}, {Kind: KindReg, Reg: 5}}},
		{"jmp-imm", Jmp, [2]Operand{{Kind: KindImm, Imm: 24}}},
		{"print-reg", Print, [2]Operand{{Kind: KindReg, Reg: 0}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := EncodeInstruction(tc.op, tc.operands)
			op, operands, next, err := DecodeInstruction(encoded, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.op, op)
			assert.Equal(t, len(encoded), next)

			info, err := Info(tc.op)
			require.NoError(t, err)
			for i := 0; i < info.OperandCount; i++ {
				if diff := cmp.Diff(tc.operands[i], operands[i]); diff != "" {
					t.Errorf("operand %d mismatch (-want +got):\n%s", i, diff)
				}
			}
		})
	}
}

func TestDescriptorCompactness(t *testing.T) {
	add := EncodeInstruction(Add, [2]Operand{{Kind: KindReg, Reg: 3}, {Kind: KindReg, Reg: 5}})
	halt := EncodeInstruction(Halt, [2]Operand{})

	want := []byte{byte(Add), PackDescriptor(KindReg, KindReg), 3, 5}
	assert.Equal(t, want, add)
	assert.Equal(t, []byte{byte(Halt), 0}, halt)
}

func TestHeaderRoundTrip(t *testing.T) {
	h := NewHeader(HeaderSize, 42)
	got, err := DecodeHeader(h.Encode())
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestHeaderBadMagic(t *testing.T) {
	h := NewHeader(HeaderSize, 0)
	buf := h.Encode()
	buf[0] ^= 0xFF
	_, err := DecodeHeader(buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestHeaderBadVersion(t *testing.T) {
	h := Header{Magic: Magic, Version: CurrentVersion + 1}
	_, err := DecodeHeader(h.Encode())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestRegisterMasking(t *testing.T) {
	for b := 0; b < 256; b++ {
		masked := MaskReg(byte(b))
		assert.Less(t, int(masked), 8)
	}
}
