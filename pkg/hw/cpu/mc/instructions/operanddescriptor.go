package instructions

import (
	"fmt"

	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/registers"
	"github.com/Manu343726/sparcmc/pkg/utils"
)

// Range of instruction bits receiving part of an operand value
type BitField struct {
	// First bit within the instruction
	Position int
	// Width of the range in bits
	Bits int
	// Bits of the operand value skipped before the range is filled (value >> ValueShift)
	ValueShift int
}

// Mask of the instruction bits covered by the field
func (f BitField) Mask() uint32 {
	return utils.AllOnes[uint32](f.Bits) << f.Position
}

func (f BitField) String() string {
	if f.ValueShift != 0 {
		return fmt.Sprintf("[%v:%v]<<%v", f.Position+f.Bits-1, f.Position, f.ValueShift)
	}
	return fmt.Sprintf("[%v:%v]", f.Position+f.Bits-1, f.Position)
}

// Contains information about an instruction operand
type OperandDescriptor struct {
	// Name of the operand in assembly syntax and documentation (rd, rs1, simm13...)
	Name string
	// Type of operand
	Kind OperandKind
	// Role the operand takes in the instruction
	Role OperandRole
	// How the operand value is computed during encoding
	Encoding OperandEncoding
	// Register classes compatible with the operand in case the operand is a register, nil otherwise
	RegisterMetaClass *registers.RegisterMetaClass
	// Instruction bits receiving the operand value. Operands without fields do not contribute to
	// the instruction word (annotation operands of TLS pseudo instructions)
	Fields []BitField
	// Operand description (for documentation and debugging)
	Description string
	// Position within the set of operands of the instruction, indexed from 0 to total operands - 1
	Index int
}

// Returns true if the operand is a register operand
func (o *OperandDescriptor) IsRegister() bool {
	return o.Kind == OperandKind_Register
}

// Returns true if the operand is an immediate operand. Immediate operands accept
// symbolic expressions too
func (o *OperandDescriptor) IsImmediate() bool {
	return o.Kind == OperandKind_Immediate
}

// Returns the total number of instruction bits used by the operand
func (o *OperandDescriptor) EncodingBits() int {
	return utils.Accumulate(o.Fields, func(f BitField) int { return f.Bits })
}

// Returns the mask of all instruction bits used by the operand
func (o *OperandDescriptor) Mask() uint32 {
	return utils.Reduce(o.Fields, func(f BitField, mask uint32) uint32 { return mask | f.Mask() })
}

// Places the operand value into the instruction fields
func (o *OperandDescriptor) Place(value uint64, instruction *uint32) {
	view := utils.CreateBitView(instruction)

	for _, field := range o.Fields {
		view.Overwrite(uint32(value>>field.ValueShift), field.Position, field.Bits)
	}
}

// Returns an human readable string describing the operand (See [InstructionDescriptor.String])
func (o *OperandDescriptor) String() string {
	if o.IsRegister() {
		return fmt.Sprintf("%v:%v", o.Name, o.RegisterMetaClass)
	} else {
		return fmt.Sprintf("%v:<%v:%v>", o.Name, o.Role, o.Encoding)
	}
}

// Validates an operand value against the descriptor
func (o *OperandDescriptor) Accepts(operand Operand) error {
	switch operand.Kind() {
	case OperandKind_Register:
		if !o.IsRegister() {
			return utils.MakeError(ErrInvalidOperandKind, "operand %v expects %v, got register %v", o.Name, o.Kind, operand)
		}

		return o.RegisterMetaClass.RegisterBelongsToClass(operand.Register())
	case OperandKind_Immediate, OperandKind_Expression:
		if !o.IsImmediate() {
			return utils.MakeError(ErrInvalidOperandKind, "operand %v expects %v, got %v %v", o.Name, o.Kind, operand.Kind(), operand)
		}

		return nil
	}

	return utils.MakeError(ErrInvalidOperandKind, "operand %v has no value", o.Name)
}

// Initializes a register operand descriptor
func RegisterOperandDescriptor(rmc *registers.RegisterMetaClass, opd OperandDescriptor) *OperandDescriptor {
	opd.RegisterMetaClass = rmc
	opd.Kind = OperandKind_Register

	return &opd
}

// Initializes an immediate operand descriptor
func ImmediateOperandDescriptor(encoding OperandEncoding, opd OperandDescriptor) *OperandDescriptor {
	opd.Encoding = encoding
	opd.Kind = OperandKind_Immediate
	opd.Role = OperandRole_Source

	return &opd
}
