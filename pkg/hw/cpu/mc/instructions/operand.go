package instructions

import (
	"errors"
	"fmt"

	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/expressions"
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/registers"
)

var ErrInvalidOperandKind = errors.New("invalid operand kind")

// Stores the value of an instruction operand: a register, an integer immediate or
// a symbolic expression. The zero value is an empty operand
type Operand struct {
	register   *registers.RegisterDescriptor
	immediate  int64
	expression expressions.Expression
	kind       OperandKind
}

// Returns a register operand
func RegisterOperand(register *registers.RegisterDescriptor) Operand {
	return Operand{
		register: register,
		kind:     OperandKind_Register,
	}
}

// Returns an integer immediate operand
func ImmediateOperand(value int64) Operand {
	return Operand{
		immediate: value,
		kind:      OperandKind_Immediate,
	}
}

// Returns a symbolic expression operand
func ExpressionOperand(expr expressions.Expression) Operand {
	return Operand{
		expression: expr,
		kind:       OperandKind_Expression,
	}
}

// Returns the kind of value stored in the operand. Empty operands return [OperandKind_Invalid]
func (o Operand) Kind() OperandKind {
	if o.kind == OperandKind_Register && o.register == nil {
		return OperandKind_Invalid
	}
	if o.kind == OperandKind_Expression && o.expression == nil {
		return OperandKind_Invalid
	}

	return o.kind
}

func (o Operand) IsRegister() bool {
	return o.Kind() == OperandKind_Register
}

func (o Operand) IsImmediate() bool {
	return o.Kind() == OperandKind_Immediate
}

func (o Operand) IsExpression() bool {
	return o.Kind() == OperandKind_Expression
}

// Returns the register of a register operand, nil otherwise
func (o Operand) Register() *registers.RegisterDescriptor {
	return o.register
}

// Returns the value of an immediate operand
func (o Operand) Immediate() int64 {
	return o.immediate
}

// Returns the expression of an expression operand, nil otherwise
func (o Operand) Expression() expressions.Expression {
	return o.expression
}

func (o Operand) String() string {
	switch o.Kind() {
	case OperandKind_Register:
		return o.register.String()
	case OperandKind_Immediate:
		return fmt.Sprint(o.immediate)
	case OperandKind_Expression:
		return o.expression.String()
	}

	return "<empty>"
}
