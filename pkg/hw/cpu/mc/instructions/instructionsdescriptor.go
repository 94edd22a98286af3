package instructions

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/Manu343726/sparcmc/pkg/utils"
)

// Constains information about all implemented instructions
type InstructionsDescriptor struct {
	instructions map[OpCode]*InstructionDescriptor
}

// Returns all implemented instructions, sorted by opcode
func (d *InstructionsDescriptor) AllInstructions() []*InstructionDescriptor {
	return slices.SortedFunc(slices.Values(utils.Values(d.instructions)), func(a, b *InstructionDescriptor) int {
		return cmp.Compare(a.OpCode.OpCode, b.OpCode.OpCode)
	})
}

var ErrInstructionNotImplemented = errors.New("instruction not implemented")

// Returns the instruction corresponding to the given opcode
func (d *InstructionsDescriptor) Instruction(op OpCode) (*InstructionDescriptor, error) {
	if instruction, hasInstruction := d.instructions[op]; hasInstruction {
		return instruction, nil
	} else {
		return nil, utils.MakeError(ErrInstructionNotImplemented, "no instruction implemented for opcode '%v'", op)
	}
}

// Returns the instruction corresponding to the given mnemonic
func (d *InstructionsDescriptor) InstructionByMnemonic(mnemonic string) (*InstructionDescriptor, error) {
	opcode, err := Opcodes.ParseOpCode(mnemonic)
	if err != nil {
		return nil, err
	}

	return d.Instruction(opcode)
}

// Returns the number of bits required to encode a machine instruction
func (d *InstructionsDescriptor) InstructionBits() int {
	return 32
}

// Returns the number of bytes required to encode a machine instruction
func (d *InstructionsDescriptor) InstructionBytes() int {
	return d.InstructionBits() / 8
}

func fixInstructionOperands(instr *InstructionDescriptor, instructionBits int) {
	var usedBits uint32

	for i, operand := range instr.Operands {
		operand.Index = i

		if (operand.Role == OperandRole_Annotation) != (len(operand.Fields) == 0) {
			panic(fmt.Errorf("operand %v of instruction %s must have bit fields unless it is an annotation", operand, instr.OpCode.Mnemonic))
		}

		for _, field := range operand.Fields {
			if field.Bits <= 0 {
				panic(fmt.Errorf("operand %v of instruction %s has invalid encoding bits %v", operand, instr.OpCode.Mnemonic, field.Bits))
			} else if field.Position < 0 || field.Position+field.Bits > instructionBits {
				panic(fmt.Errorf("operand %v of instruction %s has field %v out of the %v bits instruction word", operand, instr.OpCode.Mnemonic, field, instructionBits))
			} else if usedBits&field.Mask() != 0 {
				panic(fmt.Errorf("operand %v of instruction %s has field %v overlapping with previous operands", operand, instr.OpCode.Mnemonic, field))
			}

			usedBits |= field.Mask()
		}
	}

	if instr.FixedBits&usedBits != 0 {
		panic(fmt.Errorf("fixed bits %v of instruction %s overlap with operand fields %v", utils.FormatUintBinary(uint64(instr.FixedBits), instructionBits), instr.OpCode.Mnemonic, utils.FormatUintBinary(uint64(usedBits), instructionBits)))
	}
}

// Initializes an instructions descriptor with all the given instructions
func NewInstructionsDescriptor(instructions []*InstructionDescriptor) InstructionsDescriptor {
	d := InstructionsDescriptor{
		instructions: utils.GenMap(instructions, func(i *InstructionDescriptor) OpCode { return i.OpCode.OpCode }),
	}

	if len(d.instructions) != len(instructions) {
		panic("duplicated opcodes in instructions table")
	}

	// fill operand indices and validate layouts
	for _, instr := range instructions {
		fixInstructionOperands(instr, d.InstructionBits())
	}

	return d
}
