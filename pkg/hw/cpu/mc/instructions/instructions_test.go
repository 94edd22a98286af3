package instructions

import (
	"testing"

	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/expressions"
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/registers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instruction(t *testing.T, op OpCode) *InstructionDescriptor {
	descriptor, err := Instructions.Instruction(op)
	require.NoError(t, err)
	return descriptor
}

func TestAllOpCodesHaveAnInstruction(t *testing.T) {
	for _, opcode := range Opcodes.AllOpCodes() {
		descriptor, err := Instructions.Instruction(opcode.OpCode)
		require.NoError(t, err, opcode.Mnemonic)
		assert.Equal(t, opcode.OpCode, descriptor.OpCode.OpCode)
	}

	assert.Len(t, Instructions.AllInstructions(), int(TOTAL_OPCODES))
}

func TestParseOpCode(t *testing.T) {
	op, err := Opcodes.ParseOpCode("addri")
	require.NoError(t, err)
	assert.Equal(t, OpCode_ADDri, op)

	op, err = Opcodes.ParseOpCode("TLS_CALL")
	require.NoError(t, err)
	assert.Equal(t, OpCode_TLS_CALL, op)

	_, err = Opcodes.ParseOpCode("fmuld")
	assert.ErrorIs(t, err, ErrInvalidOpCode)
}

func TestInstructionByMnemonic(t *testing.T) {
	descriptor, err := Instructions.InstructionByMnemonic("MULC5")
	require.NoError(t, err)
	assert.Equal(t, OpCode_MULC5, descriptor.OpCode.OpCode)
	assert.Equal(t, Feature_CompactImm, descriptor.Predicates)
}

func TestLayout(t *testing.T) {
	cases := []struct {
		name     string
		op       OpCode
		values   []uint64
		expected uint32
	}{
		{"nop", OpCode_NOP, nil, 0x01000000},
		{"call +1", OpCode_CALL, []uint64{1}, 0x40000001},
		{"add %g2, %g3, %g1", OpCode_ADDrr, []uint64{1, 2, 3}, 0x82008003},
		{"add %g2, 5, %g1", OpCode_ADDri, []uint64{1, 2, 5}, 0x8200a005},
		{"add %g2, -1, %g1", OpCode_ADDri, []uint64{1, 2, uint64(0x1fff)}, 0x8200bfff},
		{"sethi 0x3fffff, %o0", OpCode_SETHI, []uint64{8, 0x3fffff}, 0x113fffff},
		{"ld [%o0 + %o1], %o2", OpCode_LDrr, []uint64{10, 8, 9}, 0xd4020009},
		{"st %o2, [%o0 + 4]", OpCode_STri, []uint64{8, 4, 10}, 0xd4222004},
		{"jmpl %i7 + 8, %g0", OpCode_JMPLri, []uint64{0, 31, 8}, 0x81c7e008},
		{"bne +4", OpCode_BCOND, []uint64{4, uint64(CC_NE)}, 0x12800004},
		{"bne,a +4", OpCode_BCONDA, []uint64{4, uint64(CC_NE)}, 0x32800004},
		{"ba %xcc, +2", OpCode_BPXCC, []uint64{2, uint64(CC_A)}, 0x10680002},
		{"mulc5 %g1, 0b00101, %g2", OpCode_MULC5, []uint64{2, 1, 0b00101}, 0x85b06005},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			word, err := instruction(t, c.op).Layout(c.values)
			require.NoError(t, err)
			assert.Equal(t, c.expected, word, "0x%08x != 0x%08x", c.expected, word)
		})
	}
}

func TestLayout_BranchOnRegisterSplitsDisplacement(t *testing.T) {
	bpr := instruction(t, OpCode_BPR)

	word, err := bpr.Layout([]uint64{0xc001, uint64(RCC_NZ), 8})
	require.NoError(t, err)

	assert.Equal(t, uint32(0x1), word&0x3fff, "d16lo")
	assert.Equal(t, uint32(0x3), (word>>20)&0x3, "d16hi")
	assert.Equal(t, uint32(RCC_NZ), (word>>25)&0x7, "rcond")
	assert.Equal(t, uint32(8), (word>>14)&0x1f, "rs1")
	assert.Equal(t, Op2_BPr, (word>>22)&0x7, "op2")
	assert.NotZero(t, word&(1<<Bit_P), "p")
}

func TestLayout_TLSAnnotationTakesNoBits(t *testing.T) {
	tlsAdd := instruction(t, OpCode_TLS_ADDrr)
	add := instruction(t, OpCode_ADDrr)

	expected, err := add.Layout([]uint64{1, 2, 3})
	require.NoError(t, err)

	actual, err := tlsAdd.Layout([]uint64{1, 2, 3, 0xffffffff})
	require.NoError(t, err)

	assert.Equal(t, expected, actual)
	assert.Zero(t, tlsAdd.Operands[3].EncodingBits())
}

func TestOperandRoles(t *testing.T) {
	for _, descriptor := range Instructions.AllInstructions() {
		for _, operand := range descriptor.Operands {
			assert.Equal(t, operand.Role == OperandRole_Annotation, len(operand.Fields) == 0, "%v %v", descriptor.OpCode.Mnemonic, operand.Name)
		}
	}

	assert.Equal(t, OperandRole_Annotation, instruction(t, OpCode_TLS_CALL).Operands[1].Role)
	assert.Equal(t, OperandRole_Destination, instruction(t, OpCode_ADDrr).Operands[0].Role)
	assert.Equal(t, OperandRole_Source, instruction(t, OpCode_STri).Operands[2].Role)
	assert.Equal(t, "annotation", OperandRole_Annotation.String())
	assert.Equal(t, "role(7)", OperandRole(7).String())
}

func TestLayout_WrongValueCount(t *testing.T) {
	_, err := instruction(t, OpCode_ADDrr).Layout([]uint64{1, 2})
	assert.ErrorIs(t, err, ErrInvalidOperandKind)
}

func TestOperandIndices(t *testing.T) {
	for _, descriptor := range Instructions.AllInstructions() {
		for i, operand := range descriptor.Operands {
			assert.Equal(t, i, operand.Index, descriptor.OpCode.Mnemonic)
		}
	}
}

func TestMissingFeatures(t *testing.T) {
	ldx := instruction(t, OpCode_LDXrr)

	assert.Equal(t, Feature_V9|Feature_Is64Bit, ldx.MissingFeatures(0))
	assert.Equal(t, Feature_Is64Bit, ldx.MissingFeatures(Feature_V9))
	assert.Zero(t, ldx.MissingFeatures(Feature_V9|Feature_Is64Bit|Feature_CompactImm))
	assert.Zero(t, instruction(t, OpCode_ADDrr).MissingFeatures(0))
}

func TestNewInstruction(t *testing.T) {
	add := instruction(t, OpCode_ADDri)

	inst, err := NewInstruction(add, []Operand{
		RegisterOperand(registers.Register("g1")),
		RegisterOperand(registers.Register("g2")),
		ExpressionOperand(expressions.Wrap(expressions.VariantKind_Lo, expressions.Symbol("foo"))),
	})
	require.NoError(t, err)
	assert.Equal(t, OpCode_ADDri, inst.OpCode())
	assert.Equal(t, "ADDri %g1, %g2, %lo(foo)", inst.String())
}

func TestNewInstruction_Errors(t *testing.T) {
	add := instruction(t, OpCode_ADDrr)
	g1 := RegisterOperand(registers.Register("g1"))

	_, err := NewInstruction(add, []Operand{g1, g1})
	assert.ErrorIs(t, err, ErrInvalidOperandKind, "missing operand")

	_, err = NewInstruction(add, []Operand{g1, g1, ImmediateOperand(3)})
	assert.ErrorIs(t, err, ErrInvalidOperandKind, "immediate in register slot")

	_, err = NewInstruction(add, []Operand{g1, g1, {}})
	assert.ErrorIs(t, err, ErrInvalidOperandKind, "empty operand")

	_, err = NewInstruction(instruction(t, OpCode_ADDri), []Operand{g1, g1, g1})
	assert.ErrorIs(t, err, ErrInvalidOperandKind, "register in immediate slot")
}

func TestOperandKind(t *testing.T) {
	assert.Equal(t, OperandKind_Invalid, Operand{}.Kind())
	assert.Equal(t, OperandKind_Invalid, RegisterOperand(nil).Kind())
	assert.Equal(t, OperandKind_Invalid, ExpressionOperand(nil).Kind())
	assert.Equal(t, OperandKind_Immediate, ImmediateOperand(0).Kind())
	assert.Equal(t, "<empty>", Operand{}.String())
}

func TestFeatures(t *testing.T) {
	features, err := ParseFeatures([]string{"V9", " 64bit ", ""})
	require.NoError(t, err)
	assert.Equal(t, Feature_V9|Feature_Is64Bit, features)
	assert.Equal(t, "v9,64bit", features.String())
	assert.True(t, features.Has(Feature_V9))
	assert.False(t, features.Has(Feature_V9|Feature_CompactImm))
	assert.Equal(t, "(none)", Features(0).String())
	assert.Len(t, AllFeatures(), TOTAL_FEATURES)

	_, err = ParseFeatures([]string{"v9", "sse"})
	assert.ErrorIs(t, err, ErrUnknownFeature)

	// Comma and space separated lists, as read from environment variables
	features, err = ParseFeatures([]string{"v9,64bit", "CompactImm"})
	require.NoError(t, err)
	assert.Equal(t, Feature_V9|Feature_Is64Bit|Feature_CompactImm, features)

	features, err = ParseFeatures([]string{" v9 , ,64bit "})
	require.NoError(t, err)
	assert.Equal(t, Feature_V9|Feature_Is64Bit, features)

	_, err = ParseFeatures([]string{"v9,vis"})
	assert.ErrorIs(t, err, ErrUnknownFeature)
	assert.ErrorContains(t, err, "'vis'")
}

func TestConditionCodes(t *testing.T) {
	cc, err := ParseConditionCode("NE")
	require.NoError(t, err)
	assert.Equal(t, CC_NE, cc)
	assert.Equal(t, CC_E, cc.Opposite())
	assert.Equal(t, CC_N, CC_A.Opposite())

	cc, err = ParseConditionCode("geu")
	require.NoError(t, err)
	assert.Equal(t, CC_CC, cc)

	_, err = ParseConditionCode("lt")
	assert.ErrorIs(t, err, ErrInvalidConditionCode)

	rcc, err := ParseRegisterConditionCode("rnz")
	require.NoError(t, err)
	assert.Equal(t, RCC_NZ, rcc)
	assert.Equal(t, RCC_Z, rcc.Opposite())
	assert.Equal(t, "rgez", RCC_GEZ.String())

	_, err = ParseRegisterConditionCode("ne")
	assert.ErrorIs(t, err, ErrInvalidConditionCode)
}

func TestDocumentation(t *testing.T) {
	for _, descriptor := range Instructions.AllInstructions() {
		doc := descriptor.Documentation(0)
		assert.Contains(t, doc, descriptor.OpCode.Mnemonic)
		assert.Contains(t, doc, descriptor.Description)
	}
}
