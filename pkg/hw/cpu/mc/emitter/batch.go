package emitter

import (
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/fixups"
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/instructions"
	"github.com/Manu343726/sparcmc/pkg/utils"
	"github.com/sourcegraph/conc/iter"
)

type encodedInstruction struct {
	bytes  []byte
	fixups []fixups.Fixup
	err    error
}

// Like EncodeInstructions(), but instructions are encoded concurrently. The result
// is the same stream EncodeInstructions() returns. If several instructions fail,
// the error of the first one in the sequence is returned
func (e *CodeEmitter) EncodeInstructionsConcurrently(insts []*instructions.Instruction, features instructions.Features) ([]byte, []fixups.Fixup, error) {
	encoded := iter.Map(insts, func(inst **instructions.Instruction) encodedInstruction {
		bytes, instFixups, err := e.EncodeInstruction(*inst, features)
		return encodedInstruction{bytes: bytes, fixups: instFixups, err: err}
	})

	stream := make([]byte, 0, len(insts)*instructions.Instructions.InstructionBytes())
	result := []fixups.Fixup{}

	for i, instruction := range encoded {
		if instruction.err != nil {
			return nil, nil, utils.MakeError(instruction.err, "instruction %v (%v)", i, insts[i])
		}

		offset := uint32(len(stream))
		stream = append(stream, instruction.bytes...)

		for _, fixup := range instruction.fixups {
			result = append(result, fixup.Shifted(offset))
		}
	}

	return stream, result, nil
}
