package asm

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pocol/config"
	"pocol/isa"
)

func assemble(t *testing.T, source string) (*Object, *Context) {
	t.Helper()
	ctx := NewContext("test.pocol", []byte(source), config.Default())
	obj, _ := ctx.Assemble()
	return obj, ctx
}

func TestAssembleArithmeticProgram(t *testing.T) {
	source := `
_start: push 10
        push 20
        pop r0
        pop r1
        add r0, r1
        print r0
        halt
`
	obj, ctx := assemble(t, source)
	require.Empty(t, ctx.Diagnostics())
	require.NotNil(t, obj)
	assert.Equal(t, uint64(isa.HeaderSize), obj.Header.EntryPoint)

	lines, err := obj.Disassemble()
	require.NoError(t, err)
	want := []string{"push 10", "push 20", "pop r0", "pop r1", "add r0 r1", "print r0", "halt"}
	got := make([]string, len(lines))
	for i, l := range lines {
		got[i] = l.String()
	}
	assert.Equal(t, want, got)
}

func TestAssembleForwardLabelReference(t *testing.T) {
	source := `
_start: jmp later
        push 999
        print r0
        halt
later:  push 7
        pop r0
        print r0
        halt
`
	obj, ctx := assemble(t, source)
	require.Empty(t, ctx.Diagnostics())
	require.NotNil(t, obj)

	lines, err := obj.Disassemble()
	require.NoError(t, err)

	// later: is the 5th decoded instruction (jmp, push, print, halt, push...)
	laterAddr := lines[4].Addr
	assert.Equal(t, "jmp", lines[0].Mnemonic)
	assert.Equal(t, []string{strconv.FormatUint(laterAddr, 10)}, lines[0].Operands)
}

func TestAssembleDuplicateLabel(t *testing.T) {
	source := "_start: halt\n_start: halt\n"
	obj, ctx := assemble(t, source)
	assert.Nil(t, obj)
	require.Len(t, ctx.Diagnostics(), 1)
	assert.Contains(t, ctx.Diagnostics()[0].Message, "duplicate label _start")
}

func TestAssembleMissingStart(t *testing.T) {
	source := "loop: halt\n"
	obj, ctx := assemble(t, source)
	assert.Nil(t, obj)
	assert.True(t, diagsContain(ctx, "undefined reference to _start"))
}

func TestAssembleIntegerOutOfRangeStillFails(t *testing.T) {
	source := "_start: push 99999999999999999999\n        halt\n"
	obj, ctx := assemble(t, source)
	assert.Nil(t, obj)
	assert.True(t, diagsContain(ctx, "integer out of range"))
}

func TestAssembleDescriptorCompactness(t *testing.T) {
	source := "_start: add r3, r5\n        halt\n"
	obj, ctx := assemble(t, source)
	require.Empty(t, ctx.Diagnostics())
	require.NotNil(t, obj)

	want := []byte{
		byte(isa.Add), isa.PackDescriptor(isa.KindReg, isa.KindReg), 3, 5,
		byte(isa.Halt), 0,
	}
	assert.Equal(t, want, obj.Code)
}

func TestAssemblePopRejectsNonRegisterOperand(t *testing.T) {
	source := "_start: pop 5\n        halt\n"
	obj, ctx := assemble(t, source)
	assert.Nil(t, obj)
	assert.True(t, diagsContain(ctx, "pop operand must be a register"))
}

func TestAssembleUnknownMnemonic(t *testing.T) {
	source := "_start: frobnicate r0\n        halt\n"
	obj, ctx := assemble(t, source)
	assert.Nil(t, obj)
	assert.True(t, diagsContain(ctx, "unknown mnemonic"))
}

func TestAssembleUndefinedIdentifier(t *testing.T) {
	source := "_start: jmp nowhere\n"
	obj, ctx := assemble(t, source)
	assert.Nil(t, obj)
	assert.True(t, diagsContain(ctx, "identifier not defined"))
}

func diagsContain(ctx *Context, substr string) bool {
	for _, d := range ctx.Diagnostics() {
		if strings.Contains(d.Message, substr) {
			return true
		}
	}
	return false
}
