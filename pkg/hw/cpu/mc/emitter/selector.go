package emitter

import (
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/expressions"
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/fixups"
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/instructions"
	"github.com/Manu343726/sparcmc/pkg/utils"
)

// Returns the fixup kinds to record for an unresolved expression placed in an operand
// with the given encoding. An explicit relocation request carried by the expression
// always wins. Branches on register return two kinds for the same expression,
// the low part first: Br16_14 (d16lo) followed by Br16_2 (d16hi)
func SelectFixupKinds(expr expressions.Expression, encoding instructions.OperandEncoding, positionIndependent bool) ([]fixups.Kind, error) {
	if kind, isAnnotated := fixups.KindOf(expr); isAnnotated {
		return []fixups.Kind{kind}, nil
	}

	switch encoding {
	case instructions.OperandEncoding_SImm13:
		if positionIndependent {
			return []fixups.Kind{fixups.Kind_GOT13}, nil
		}
		return []fixups.Kind{fixups.Kind_13}, nil
	case instructions.OperandEncoding_Imm5, instructions.OperandEncoding_SImm5:
		if positionIndependent {
			return []fixups.Kind{fixups.Kind_GOT5}, nil
		}
		return []fixups.Kind{fixups.Kind_5}, nil
	case instructions.OperandEncoding_BranchTarget:
		return []fixups.Kind{fixups.Kind_Br22}, nil
	case instructions.OperandEncoding_BranchPredTarget:
		return []fixups.Kind{fixups.Kind_Br19}, nil
	case instructions.OperandEncoding_BranchOnRegTarget:
		return []fixups.Kind{fixups.Kind_Br16_14, fixups.Kind_Br16_2}, nil
	case instructions.OperandEncoding_CallTarget:
		return []fixups.Kind{fixups.Kind_Call30}, nil
	}

	return nil, utils.MakeError(ErrUnhandledExpression, "'%v' has no relocation request and %v operands have no default one", expr, encoding)
}
