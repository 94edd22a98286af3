package emitter

import "errors"

var (
	// The instruction requires subtarget features that are not available
	ErrMissingFeatures = errors.New("missing subtarget features")
	// The operand is empty or has a kind the operand role cannot encode
	ErrInvalidOperand = errors.New("invalid operand")
	// The expression does not fold to a constant and carries no relocation request
	ErrUnhandledExpression = errors.New("unhandled expression")
	// The constant value of the operand does not fit into its instruction fields
	ErrOperandOutOfRange = errors.New("operand out of range")
	// The TLS symbol operand of a TLS pseudo instruction resolved to a non zero value
	ErrUnexpectedTLSOperand = errors.New("unexpected TLS operand value")
	// The callee of a TLS call is not the TLS runtime helper
	ErrUnexpectedTLSCallee = errors.New("unexpected TLS callee")
)
