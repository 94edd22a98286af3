// Package listing turns an encoded instruction stream back into a per-instruction
// report (operands, machine words and fixups) and renders it as a table, a tree
// or YAML.
package listing

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/emitter"
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/fixups"
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/instructions"
	"github.com/Manu343726/sparcmc/pkg/utils"
)

var ErrInvalidStream = errors.New("invalid instruction stream")

type Operand struct {
	Name     string `yaml:"name"`
	Encoding string `yaml:"encoding"`
	Class    string `yaml:"class"`
	Value    string `yaml:"value"`
}

type Fixup struct {
	Offset     uint32 `yaml:"offset"`
	Kind       string `yaml:"kind"`
	Expression string `yaml:"expression"`
	PCRelative bool   `yaml:"pcrel"`
}

type Entry struct {
	Offset      uint32    `yaml:"offset"`
	Instruction string    `yaml:"instruction"`
	Word        string    `yaml:"word"`
	Bytes       string    `yaml:"bytes"`
	Operands    []Operand `yaml:"operands"`
	Fixups      []Fixup   `yaml:"fixups,omitempty"`
}

// Encoded program report
type Listing struct {
	ByteOrder string  `yaml:"byte_order"`
	Entries   []Entry `yaml:"instructions"`
}

func operands(inst *instructions.Instruction) ([]Operand, error) {
	result := make([]Operand, 0, len(inst.Operands))

	for i, operand := range inst.Operands {
		classification, err := emitter.Classify(operand)
		if err != nil {
			return nil, err
		}

		value := operand.String()
		if classification.Class != emitter.OperandClass_UnresolvedExpression {
			value = fmt.Sprint(classification.Value)
		}

		result = append(result, Operand{
			Name:     inst.Descriptor.Operands[i].Name,
			Encoding: inst.Descriptor.Operands[i].Encoding.String(),
			Class:    classification.Class.String(),
			Value:    value,
		})
	}

	return result, nil
}

// Builds the listing of a stream returned by the code emitter for the given
// instructions. Fixup offsets must be relative to the beginning of the stream
func New(insts []*instructions.Instruction, stream []byte, streamFixups []fixups.Fixup, byteOrder binary.ByteOrder) (*Listing, error) {
	wordBytes := instructions.Instructions.InstructionBytes()

	if len(stream) != len(insts)*wordBytes {
		return nil, utils.MakeError(ErrInvalidStream, "%v bytes for %v instructions", len(stream), len(insts))
	}

	listing := &Listing{
		ByteOrder: byteOrder.String(),
		Entries:   make([]Entry, 0, len(insts)),
	}

	for i, inst := range insts {
		offset := i * wordBytes
		encoded := stream[offset : offset+wordBytes]

		instOperands, err := operands(inst)
		if err != nil {
			return nil, utils.MakeError(err, "instruction %v (%v)", i, inst)
		}

		listing.Entries = append(listing.Entries, Entry{
			Offset:      uint32(offset),
			Instruction: inst.String(),
			Word:        utils.FormatUintHex(uint64(byteOrder.Uint32(encoded)), 8),
			Bytes:       utils.FormatBytes(encoded),
			Operands:    instOperands,
		})
	}

	for _, fixup := range streamFixups {
		index := int(fixup.Offset) / wordBytes
		if index >= len(listing.Entries) || int(fixup.Offset)%wordBytes != 0 {
			return nil, utils.MakeError(ErrInvalidStream, "fixup %v out of the stream", fixup)
		}

		info, err := fixups.Info(fixup.Kind)
		if err != nil {
			return nil, err
		}

		listing.Entries[index].Fixups = append(listing.Entries[index].Fixups, Fixup{
			Offset:     fixup.Offset,
			Kind:       info.Name,
			Expression: fixup.Value.String(),
			PCRelative: info.PCRelative,
		})
	}

	return listing, nil
}

// Total number of fixups in the listing
func (l *Listing) TotalFixups() int {
	return utils.Reduce(l.Entries, func(entry Entry, total int) int { return total + len(entry.Fixups) })
}
