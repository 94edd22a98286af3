package instructions

// Represents the kind of operand (Register, immediate, expression)
type OperandKind uint

const (
	OperandKind_Invalid OperandKind = iota
	OperandKind_Immediate
	OperandKind_Register
	OperandKind_Expression
)

func (o OperandKind) String() string {
	switch o {
	case OperandKind_Invalid:
		return "Invalid"
	case OperandKind_Immediate:
		return "Immediate"
	case OperandKind_Register:
		return "Register"
	case OperandKind_Expression:
		return "Expression"
	}

	panic("unreachable")
}
