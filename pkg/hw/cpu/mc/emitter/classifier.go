package emitter

import (
	"fmt"

	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/expressions"
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/instructions"
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/registers"
	"github.com/Manu343726/sparcmc/pkg/utils"
)

// Class of an operand value from the point of view of the encoder
type OperandClass uint

const (
	// Register operand, resolved to its hardware encoding
	OperandClass_Register OperandClass = iota
	// Literal immediate or expression folded to a constant
	OperandClass_ConstantInteger
	// Expression that can only be resolved after layout or linking
	OperandClass_UnresolvedExpression
)

func (c OperandClass) String() string {
	switch c {
	case OperandClass_Register:
		return "Register"
	case OperandClass_ConstantInteger:
		return "ConstantInteger"
	case OperandClass_UnresolvedExpression:
		return "UnresolvedExpression"
	}

	return fmt.Sprintf("OperandClass(%d)", uint(c))
}

// Result of classifying an operand
type Classification struct {
	Class OperandClass
	// Register encoding or constant value. Zero for unresolved expressions
	Value int64
	// The unresolved expression, nil otherwise
	Expression expressions.Expression
}

// Classifies an operand as a register, a constant integer or an unresolved expression
func Classify(operand instructions.Operand) (Classification, error) {
	switch operand.Kind() {
	case instructions.OperandKind_Register:
		encoding, err := registers.RegisterClasses.EncodingValue(operand.Register())
		if err != nil {
			return Classification{}, utils.MakeError(ErrInvalidOperand, "%v", err)
		}

		return Classification{Class: OperandClass_Register, Value: int64(encoding)}, nil
	case instructions.OperandKind_Immediate:
		return Classification{Class: OperandClass_ConstantInteger, Value: operand.Immediate()}, nil
	case instructions.OperandKind_Expression:
		if value, isConstant := operand.Expression().EvaluateAsAbsolute(); isConstant {
			return Classification{Class: OperandClass_ConstantInteger, Value: value}, nil
		}

		return Classification{Class: OperandClass_UnresolvedExpression, Expression: operand.Expression()}, nil
	}

	return Classification{}, utils.MakeError(ErrInvalidOperand, "operand is neither a register, an immediate nor an expression")
}
