// Package emitter encodes SPARC instructions into machine code words, recording
// fixups for the operands that can only be resolved after layout or linking.
package emitter

import (
	"encoding/binary"
	"log/slog"

	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/fixups"
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/instructions"
	"github.com/Manu343726/sparcmc/pkg/utils"
)

// Code emitter configuration
type Config struct {
	// Byte order of the emitted words. Big endian if nil
	ByteOrder binary.ByteOrder
	// Select GOT relative fixups for unannotated immediates
	PositionIndependent bool
	// Fail on TLS calls to functions other than __tls_get_addr instead of logging a warning
	Strict bool
	// slog.Default() if nil
	Logger *slog.Logger
}

// Encodes instructions into machine code. Emitters hold no mutable state and can
// be shared by multiple goroutines
type CodeEmitter struct {
	config Config
	logger *slog.Logger
}

func NewCodeEmitter(config Config) *CodeEmitter {
	if config.ByteOrder == nil {
		config.ByteOrder = binary.BigEndian
	}

	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &CodeEmitter{
		config: config,
		logger: config.Logger.With("component", "emitter"),
	}
}

// Returns the emitter configuration
func (e *CodeEmitter) Config() Config {
	return e.config
}

// Index of the operand carrying the TLS symbol of TLS pseudo instructions
var tlsOperands = map[instructions.OpCode]int{
	instructions.OpCode_TLS_CALL:   1,
	instructions.OpCode_TLS_ADDrr:  3,
	instructions.OpCode_TLS_ADDXrr: 3,
	instructions.OpCode_TLS_LDrr:   3,
	instructions.OpCode_TLS_LDXrr:  3,
}

// Returns true if a constant fits into a field of the given width, either as
// a signed or as an unsigned integer
func fitsInField(value int64, bits int) bool {
	if bits >= 64 {
		return true
	}

	return value >= -(int64(1)<<(bits-1)) && value <= int64(utils.AllOnes[uint64](bits))
}

// Encodes an instruction, returning the serialized instruction word and the fixups
// recorded for its operands, in operand order. Fixup offsets are relative to the
// instruction (always 0)
func (e *CodeEmitter) EncodeInstruction(inst *instructions.Instruction, features instructions.Features) ([]byte, []fixups.Fixup, error) {
	descriptor := inst.Descriptor
	mnemonic := descriptor.OpCode.Mnemonic

	if missing := descriptor.MissingFeatures(features); missing != 0 {
		return nil, nil, utils.MakeError(ErrMissingFeatures, "%v requires %v, missing %v", mnemonic, descriptor.Predicates, missing)
	}

	if len(inst.Operands) != len(descriptor.Operands) {
		return nil, nil, utils.MakeError(ErrInvalidOperand, "%v expects %v operands, got %v", mnemonic, len(descriptor.Operands), len(inst.Operands))
	}

	result := []fixups.Fixup{}
	values := make([]uint64, len(descriptor.Operands))

	for i, operand := range descriptor.Operands {
		// Annotations take no bits, TLS annotations are handled after layout
		if operand.Role == instructions.OperandRole_Annotation {
			continue
		}

		value, err := e.operandValue(inst, i, &result)
		if err != nil {
			return nil, nil, err
		}

		if !fitsInField(value, operand.EncodingBits()) {
			return nil, nil, utils.MakeError(ErrOperandOutOfRange, "value %v of operand %v (%v) of %v does not fit in %v bits", value, i, operand.Name, mnemonic, operand.EncodingBits())
		}

		values[i] = uint64(value)
	}

	word, err := descriptor.Layout(values)
	if err != nil {
		return nil, nil, err
	}

	encoded := make([]byte, instructions.Instructions.InstructionBytes())
	e.config.ByteOrder.PutUint32(encoded, word)

	if index, isTLS := tlsOperands[inst.OpCode()]; isTLS {
		recorded := len(result)

		value, err := e.machineOpValue(inst, index, &result)
		if err != nil {
			return nil, nil, err
		}

		if value != 0 {
			return nil, nil, utils.MakeError(ErrUnexpectedTLSOperand, "TLS operand %v of %v resolved to %v, expected 0", inst.Operands[index], mnemonic, value)
		}

		// Registers and constants resolving to 0 would drop the TLS relocation
		if len(result) == recorded {
			return nil, nil, utils.MakeError(ErrUnexpectedTLSOperand, "TLS operand %v of %v records no relocation", inst.Operands[index], mnemonic)
		}
	}

	instructionsEmitted.Add(1)

	e.logger.Debug("encoded instruction",
		"instruction", inst.String(),
		"word", utils.FormatUintHex(uint64(word), 8),
		"fixups", len(result))

	return encoded, result, nil
}

// Encodes a sequence of instructions into a contiguous stream. Fixup offsets are
// relative to the beginning of the stream
func (e *CodeEmitter) EncodeInstructions(insts []*instructions.Instruction, features instructions.Features) ([]byte, []fixups.Fixup, error) {
	stream := make([]byte, 0, len(insts)*instructions.Instructions.InstructionBytes())
	result := []fixups.Fixup{}

	for i, inst := range insts {
		offset := uint32(len(stream))

		encoded, instFixups, err := e.EncodeInstruction(inst, features)
		if err != nil {
			return nil, nil, utils.MakeError(err, "instruction %v (%v)", i, inst)
		}

		stream = append(stream, encoded...)

		for _, fixup := range instFixups {
			result = append(result, fixup.Shifted(offset))
		}
	}

	return stream, result, nil
}
