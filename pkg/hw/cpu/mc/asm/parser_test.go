package asm

import (
	"testing"

	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/expressions"
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/instructions"
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/registers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpression(t *testing.T) {
	cases := map[string]string{
		"foo":                "foo",
		"42":                 "42",
		"-8":                 "-8",
		"0x1f":               "31",
		"0b101":              "5",
		"foo+4":              "foo+4",
		"foo - 4 + bar":      "foo-4+bar",
		"%hi(foo)":           "%hi(foo)",
		"%lo(foo+8)":         "%lo(foo+8)",
		"%TGD_CALL(x)":       "%tgd_call(x)",
		"-foo":               "0-foo",
		"(4)":                "4",
		"a-(b+c)":            "a-(b+c)",
		".LBB0_2":            ".LBB0_2",
		"__tls_get_addr":     "__tls_get_addr",
		"foo ! trailing":     "foo",
		"0xffffffffffffffff": "-1",
	}

	for text, expected := range cases {
		expr, err := ParseExpression(text)
		require.NoError(t, err, text)
		assert.Equal(t, expected, expr.String(), text)
	}
}

func TestParseExpression_Folding(t *testing.T) {
	expr, err := ParseExpression("%hi(0x12345678)")
	require.NoError(t, err)

	value, isConstant := expr.EvaluateAsAbsolute()
	assert.True(t, isConstant)
	assert.Equal(t, int64(0x48d15), value)
}

func TestParseExpression_Errors(t *testing.T) {
	for _, text := range []string{"", "foo +", "(foo", "%hi foo", "foo bar", "%(foo)"} {
		_, err := ParseExpression(text)
		assert.ErrorIs(t, err, ErrSyntax, text)
	}

	_, err := ParseExpression("%bogus(foo)")
	assert.ErrorIs(t, err, expressions.ErrUnknownVariant)
}

func TestParseInstruction(t *testing.T) {
	inst, err := ParseInstruction("addri %g1, %sp, %lo(foo)")
	require.NoError(t, err)

	assert.Equal(t, instructions.OpCode_ADDri, inst.OpCode())
	require.Len(t, inst.Operands, 3)
	assert.Same(t, registers.Register("g1"), inst.Operands[0].Register())
	assert.Same(t, registers.Register("o6"), inst.Operands[1].Register())
	require.True(t, inst.Operands[2].IsExpression())
	assert.Equal(t, "%lo(foo)", inst.Operands[2].Expression().String())
}

func TestParseInstruction_Immediates(t *testing.T) {
	inst, err := ParseInstruction("ADDC5 %g2, %g1, -4")
	require.NoError(t, err)
	require.True(t, inst.Operands[2].IsImmediate())
	assert.Equal(t, int64(-4), inst.Operands[2].Immediate())

	inst, err = ParseInstruction("ADDri %g2, %g1, 4+4")
	require.NoError(t, err)
	require.True(t, inst.Operands[2].IsExpression(), "folding is left to the emitter")
}

func TestParseInstruction_ConditionCodes(t *testing.T) {
	inst, err := ParseInstruction("BCOND .LBB0_2, ne")
	require.NoError(t, err)
	assert.Equal(t, int64(instructions.CC_NE), inst.Operands[1].Immediate())

	inst, err = ParseInstruction("BCOND 8, 9")
	require.NoError(t, err)
	assert.Equal(t, int64(9), inst.Operands[1].Immediate())

	inst, err = ParseInstruction("BPR .LBB0_2, rnz, %o0")
	require.NoError(t, err)
	assert.Equal(t, int64(instructions.RCC_NZ), inst.Operands[1].Immediate())

	_, err = ParseInstruction("BCOND .LBB0_2, rnz")
	assert.ErrorIs(t, err, instructions.ErrInvalidConditionCode)
}

func TestParseInstruction_TLS(t *testing.T) {
	inst, err := ParseInstruction("TLS_CALL %wdisp30(__tls_get_addr), %tgd_call(x) ! general dynamic")
	require.NoError(t, err)
	assert.Equal(t, instructions.OpCode_TLS_CALL, inst.OpCode())
	assert.Equal(t, "TLS_CALL %wdisp30(__tls_get_addr), %tgd_call(x)", inst.String())
}

func TestParseInstruction_EmptyLines(t *testing.T) {
	for _, line := range []string{"", "   ", "! only a comment"} {
		inst, err := ParseInstruction(line)
		require.NoError(t, err, line)
		assert.Nil(t, inst, line)
	}
}

func TestParseInstruction_Errors(t *testing.T) {
	_, err := ParseInstruction("FMULD %f0, %f2, %f4")
	assert.ErrorIs(t, err, instructions.ErrInvalidOpCode)

	_, err = ParseInstruction("ADDrr %g1, %g2")
	assert.ErrorIs(t, err, ErrSyntax, "missing operand")

	_, err = ParseInstruction("ADDrr %g1, %g2, %g3, %g4")
	assert.ErrorIs(t, err, ErrSyntax, "extra operand")

	_, err = ParseInstruction("ADDrr %g1, %g2, 3")
	assert.ErrorIs(t, err, ErrSyntax, "immediate as register")

	_, err = ParseInstruction("ADDrr %g1, %g2, %x9")
	assert.ErrorIs(t, err, registers.ErrUnknownRegister)

	_, err = ParseInstruction("42")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestParseProgram(t *testing.T) {
	program, err := ParseProgram(`
! function prologue
SETHI %o0, %hi(msg)
ORri  %o0, %o0, %lo(msg)
CALL  printf
NOP
`)
	require.NoError(t, err)
	require.Len(t, program, 4)
	assert.Equal(t, []instructions.OpCode{
		instructions.OpCode_SETHI,
		instructions.OpCode_ORri,
		instructions.OpCode_CALL,
		instructions.OpCode_NOP,
	}, []instructions.OpCode{program[0].OpCode(), program[1].OpCode(), program[2].OpCode(), program[3].OpCode()})

	_, err = ParseProgram("NOP\nBOGUS\n")
	assert.ErrorIs(t, err, instructions.ErrInvalidOpCode)
	assert.ErrorContains(t, err, "line 2")
}
