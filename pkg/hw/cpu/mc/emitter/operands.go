package emitter

import (
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/compact"
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/expressions"
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/fixups"
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/instructions"
	"github.com/Manu343726/sparcmc/pkg/utils"
)

// Name of the runtime helper resolving TLS addresses
const TLSGetAddrSymbol = "__tls_get_addr"

// Computes the value of an instruction operand, appending the fixups it requires
type operandValueFunc func(e *CodeEmitter, inst *instructions.Instruction, index int, out *[]fixups.Fixup) (int64, error)

var operandValueFuncs = map[instructions.OperandEncoding]operandValueFunc{
	instructions.OperandEncoding_Machine:           (*CodeEmitter).machineOpValue,
	instructions.OperandEncoding_SImm13:            (*CodeEmitter).simm13OpValue,
	instructions.OperandEncoding_Imm5:              (*CodeEmitter).imm5OpValue,
	instructions.OperandEncoding_SImm5:             (*CodeEmitter).simm5OpValue,
	instructions.OperandEncoding_CallTarget:        (*CodeEmitter).callTargetOpValue,
	instructions.OperandEncoding_BranchTarget:      (*CodeEmitter).branchTargetOpValue,
	instructions.OperandEncoding_BranchPredTarget:  (*CodeEmitter).branchTargetOpValue,
	instructions.OperandEncoding_BranchOnRegTarget: (*CodeEmitter).branchTargetOpValue,
}

func (e *CodeEmitter) operandValue(inst *instructions.Instruction, index int, out *[]fixups.Fixup) (int64, error) {
	encoding := inst.Descriptor.Operands[index].Encoding

	if valueFunc, hasValueFunc := operandValueFuncs[encoding]; hasValueFunc {
		return valueFunc(e, inst, index, out)
	}

	return 0, utils.MakeError(ErrInvalidOperand, "no value function for %v operands", encoding)
}

func (e *CodeEmitter) classify(inst *instructions.Instruction, index int) (Classification, error) {
	classification, err := Classify(inst.Operands[index])
	if err != nil {
		return classification, utils.MakeError(err, "operand %v (%v) of %v", index, inst.Descriptor.Operands[index].Name, inst.Descriptor.OpCode.Mnemonic)
	}

	return classification, nil
}

// Records the fixups selected for an unresolved expression. The value placed in the
// instruction is always 0
func (e *CodeEmitter) deferOperand(inst *instructions.Instruction, index int, expr expressions.Expression, out *[]fixups.Fixup) (int64, error) {
	kinds, err := SelectFixupKinds(expr, inst.Descriptor.Operands[index].Encoding, e.config.PositionIndependent)
	if err != nil {
		return 0, utils.MakeError(err, "operand %v (%v) of %v", index, inst.Descriptor.Operands[index].Name, inst.Descriptor.OpCode.Mnemonic)
	}

	for _, kind := range kinds {
		*out = append(*out, fixups.New(expr, kind))
	}

	return 0, nil
}

// Generic operand: registers, constants and annotated expressions
func (e *CodeEmitter) machineOpValue(inst *instructions.Instruction, index int, out *[]fixups.Fixup) (int64, error) {
	classification, err := e.classify(inst, index)
	if err != nil {
		return 0, err
	}

	if classification.Class == OperandClass_UnresolvedExpression {
		return e.deferOperand(inst, index, classification.Expression, out)
	}

	return classification.Value, nil
}

func (e *CodeEmitter) immediateOpValue(inst *instructions.Instruction, index int, out *[]fixups.Fixup, encode func(int64) (int64, error)) (int64, error) {
	classification, err := e.classify(inst, index)
	if err != nil {
		return 0, err
	}

	switch classification.Class {
	case OperandClass_Register:
		return 0, utils.MakeError(ErrInvalidOperand, "operand %v of %v expects an immediate or an expression, got register %v",
			index, inst.Descriptor.OpCode.Mnemonic, inst.Operands[index])
	case OperandClass_UnresolvedExpression:
		return e.deferOperand(inst, index, classification.Expression, out)
	}

	value, err := encode(classification.Value)
	if err != nil {
		return 0, utils.MakeError(err, "operand %v of %v", index, inst.Descriptor.OpCode.Mnemonic)
	}

	return value, nil
}

func (e *CodeEmitter) simm13OpValue(inst *instructions.Instruction, index int, out *[]fixups.Fixup) (int64, error) {
	return e.immediateOpValue(inst, index, out, func(value int64) (int64, error) { return value, nil })
}

func (e *CodeEmitter) imm5OpValue(inst *instructions.Instruction, index int, out *[]fixups.Fixup) (int64, error) {
	return e.immediateOpValue(inst, index, out, func(value int64) (int64, error) {
		code, err := compact.EncodeImm5(value)
		return int64(code), err
	})
}

func (e *CodeEmitter) simm5OpValue(inst *instructions.Instruction, index int, out *[]fixups.Fixup) (int64, error) {
	return e.immediateOpValue(inst, index, out, func(value int64) (int64, error) {
		code, err := compact.EncodeSImm5(value)
		return int64(code), err
	})
}

// Branch displacements given as registers or constants are placed as they are
func (e *CodeEmitter) branchTargetOpValue(inst *instructions.Instruction, index int, out *[]fixups.Fixup) (int64, error) {
	classification, err := e.classify(inst, index)
	if err != nil {
		return 0, err
	}

	if classification.Class == OperandClass_UnresolvedExpression {
		return e.deferOperand(inst, index, classification.Expression, out)
	}

	return classification.Value, nil
}

// Calls to the TLS helper record no fixup, the relocation comes from the TLS
// symbol operand (see [CodeEmitter.EncodeInstruction])
func (e *CodeEmitter) callTargetOpValue(inst *instructions.Instruction, index int, out *[]fixups.Fixup) (int64, error) {
	if inst.OpCode() == instructions.OpCode_TLS_CALL {
		return 0, e.checkTLSCallee(inst, index)
	}

	return e.branchTargetOpValue(inst, index, out)
}

func (e *CodeEmitter) checkTLSCallee(inst *instructions.Instruction, index int) error {
	operand := inst.Operands[index]
	var symbol *expressions.SymbolRef

	if operand.IsExpression() {
		switch expr := operand.Expression().(type) {
		case *expressions.SymbolRef:
			symbol = expr
		case *expressions.Target:
			symbol, _ = expr.Expr.(*expressions.SymbolRef)
		}
	}

	if symbol != nil && symbol.Name == TLSGetAddrSymbol {
		return nil
	}

	err := utils.MakeError(ErrUnexpectedTLSCallee, "%v calls '%v', expected %v", inst.Descriptor.OpCode.Mnemonic, operand, TLSGetAddrSymbol)
	if e.config.Strict {
		return err
	}

	e.logger.Warn("unexpected TLS callee", "instruction", inst.String(), "error", err)
	return nil
}
