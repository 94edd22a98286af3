package instructions

import (
	"fmt"
	"strings"

	"github.com/Manu343726/sparcmc/pkg/utils"
)

// Contains information describing an instruction
type InstructionDescriptor struct {
	// Instruction opcode
	OpCode *OpCodeDescriptor
	// Instruction operands
	Operands []*OperandDescriptor
	// Bits of the instruction word that do not depend on operands (op, op2, op3, i, cond...)
	FixedBits uint32
	// Subtarget features required to encode the instruction
	Predicates Features
	// Instruction description (for documentation and debugging)
	Description string
}

// Returns a human readable string representation of the instruction
func (d *InstructionDescriptor) String() string {
	var builder strings.Builder

	builder.WriteString(d.OpCode.Mnemonic)

	for i, operand := range d.Operands {
		if i == 0 {
			builder.WriteString(" ")
		} else {
			builder.WriteString(", ")
		}
		builder.WriteString(operand.String())
	}

	return builder.String()
}

// Returns the predicates the instruction requires that are not satisfied by the given features
func (d *InstructionDescriptor) MissingFeatures(features Features) Features {
	return features.Missing(d.Predicates)
}

// Returns the mask of all instruction bits filled by operands
func (d *InstructionDescriptor) OperandsMask() uint32 {
	return utils.Reduce(d.Operands, func(op *OperandDescriptor, mask uint32) uint32 { return mask | op.Mask() })
}

// Returns the instruction word obtained from the fixed bits and the given operand values,
// one per operand in descriptor order
func (d *InstructionDescriptor) Layout(values []uint64) (uint32, error) {
	if len(values) != len(d.Operands) {
		return 0, utils.MakeError(ErrInvalidOperandKind, "instruction %v expects %v operand values, got %v", d.OpCode.Mnemonic, len(d.Operands), len(values))
	}

	instruction := d.FixedBits

	for i, operand := range d.Operands {
		operand.Place(values[i], &instruction)
	}

	return instruction, nil
}

// Returns the layout fields of the instruction word, including fixed bits, sorted by position
func (d *InstructionDescriptor) layoutFields() []utils.AsciiFrameField {
	fields := []utils.AsciiFrameField{}
	operandsMask := d.OperandsMask()

	for _, operand := range d.Operands {
		for _, field := range operand.Fields {
			fields = append(fields, utils.AsciiFrameField{
				Name:  operand.Name,
				Begin: field.Position,
				Width: field.Bits,
			})
		}
	}

	// Contiguous runs of non operand bits are shown with their fixed value
	view := utils.CreateBitView(&d.FixedBits)
	for bit := 0; bit < Instructions.InstructionBits(); {
		if operandsMask&(1<<bit) != 0 {
			bit++
			continue
		}

		begin := bit
		for bit < Instructions.InstructionBits() && operandsMask&(1<<bit) == 0 {
			bit++
		}

		fields = append(fields, utils.AsciiFrameField{
			Name:  utils.FormatUintBinary(uint64(view.Read(begin, bit-begin)), bit-begin),
			Begin: begin,
			Width: bit - begin,
		})
	}

	return fields
}

// Returns full documentation for the instruction
func (d *InstructionDescriptor) Documentation(leftpad int) string {
	var builder strings.Builder
	leftpad_str := strings.Repeat(" ", leftpad)

	builder.WriteString(leftpad_str)
	builder.WriteString(fmt.Sprintf("%v\n\n", d))

	leftpad_str += "  "
	leftpad += 2

	builder.WriteString(leftpad_str)
	builder.WriteString("Description:\n\n  ")
	builder.WriteString(leftpad_str)
	builder.WriteString(d.Description)
	builder.WriteString("\n\n")
	builder.WriteString(leftpad_str)
	builder.WriteString(fmt.Sprintf("Requires: %v\n\n", d.Predicates))
	builder.WriteString(leftpad_str)
	builder.WriteString("Memory layout:\n\n")

	asciiFrame, err := utils.AsciiFrame(d.layoutFields(), Instructions.InstructionBits(), "b", utils.AsciiFrameUnitLayout_RightToLeft, leftpad+2)
	if err != nil {
		panic(fmt.Errorf("error generating documentation for instruction %s: %w", d.OpCode.Mnemonic, err))
	}

	builder.WriteString(asciiFrame)
	builder.WriteString("\n")
	builder.WriteString(leftpad_str)
	builder.WriteString("Operands:\n\n")

	if len(d.Operands) > 0 {
		for i, operand := range d.Operands {
			builder.WriteString(leftpad_str)
			builder.WriteString(fmt.Sprintf(" [%v] %v %v: %v\n", i, operand, utils.FormatSlice(operand.Fields, ""), operand.Description))
		}
	} else {
		builder.WriteString(leftpad_str)
		builder.WriteString("  (none)\n")
	}

	return builder.String()
}
