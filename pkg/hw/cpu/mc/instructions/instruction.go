package instructions

import (
	"strings"

	"github.com/Manu343726/sparcmc/pkg/utils"
)

// Stores an instruction ready for encoding: its descriptor and the value of every operand
type Instruction struct {
	Descriptor *InstructionDescriptor
	Operands   []Operand
}

// Returns the instruction opcode
func (i *Instruction) OpCode() OpCode {
	return i.Descriptor.OpCode.OpCode
}

func (i *Instruction) String() string {
	var builder strings.Builder

	builder.WriteString(i.Descriptor.OpCode.Mnemonic)

	for j, operand := range i.Operands {
		if j == 0 {
			builder.WriteString(" ")
		} else {
			builder.WriteString(", ")
		}
		builder.WriteString(operand.String())
	}

	return builder.String()
}

// Builds an instruction, checking operand count and kinds against the descriptor
func NewInstruction(descriptor *InstructionDescriptor, operands []Operand) (*Instruction, error) {
	if len(operands) != len(descriptor.Operands) {
		return nil, utils.MakeError(ErrInvalidOperandKind, "instruction %s expects %d operands, got %d",
			descriptor.OpCode.Mnemonic, len(descriptor.Operands), len(operands))
	}

	for i, op := range operands {
		if err := descriptor.Operands[i].Accepts(op); err != nil {
			return nil, utils.MakeError(err, "operand %d of %s", i, descriptor.OpCode.Mnemonic)
		}
	}

	return &Instruction{
		Descriptor: descriptor,
		Operands:   operands,
	}, nil
}
