package instructions

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Manu343726/sparcmc/pkg/utils"
)

// Returns information about the implemented opcodes
type OpCodesDescriptor struct {
	mnemonics         map[OpCode]string
	mnemonicsToOpCode map[string]OpCode
}

func (d *OpCodesDescriptor) Descriptor(op OpCode) *OpCodeDescriptor {
	return &OpCodeDescriptor{
		OpCode:   op,
		Mnemonic: d.Mnemonic(op),
	}
}

// Returns the descriptors of all implemented opcodes, sorted by opcode
func (d *OpCodesDescriptor) AllOpCodes() []*OpCodeDescriptor {
	opcodes := utils.Keys(d.mnemonics)
	slices.Sort(opcodes)
	return utils.Map(opcodes, d.Descriptor)
}

// Number of opcodes implemented
func (d *OpCodesDescriptor) TotalOpCodes() int {
	return len(d.mnemonics)
}

// Returns the mnemonic string representation of the opcode
func (d *OpCodesDescriptor) Mnemonic(op OpCode) string {
	if mnemonic, hasMnemonic := d.mnemonics[op]; hasMnemonic {
		return mnemonic
	}

	return fmt.Sprintf("OPCODE(%d)", uint(op))
}

var ErrInvalidOpCode error = errors.New("invalid instruction opcode")

// Returns the opcode corresponding to the given mnemonic
func (d *OpCodesDescriptor) ParseOpCode(mnemonic string) (OpCode, error) {
	if opcode, hasOpCode := d.mnemonicsToOpCode[strings.ToUpper(mnemonic)]; hasOpCode {
		return opcode, nil
	} else {
		return 0, utils.MakeError(ErrInvalidOpCode, "'%v'", mnemonic)
	}
}

// Initialized an opcodes descriptor with all the opcodes in the given opcode -> mnemonic map
func NewOpCodesDescriptor(mnemonics map[OpCode]string) OpCodesDescriptor {
	for _, opCode := range utils.Iota(int(TOTAL_OPCODES), func(i int) OpCode { return OpCode(i) }) {
		if _, hasOpCode := mnemonics[opCode]; !hasOpCode {
			panic(fmt.Sprintf("missing entry for opcode %v in mnemonics table. Make sure you've added all OpCode -> Mnemonic entries in the NewOpCodesDescriptor() call", uint(opCode)))
		}
	}

	d := OpCodesDescriptor{
		mnemonics:         mnemonics,
		mnemonicsToOpCode: utils.InvertedMap(utils.MapMap(mnemonics, func(op OpCode, mnemonic string) (OpCode, string) { return op, strings.ToUpper(mnemonic) })),
	}

	if d.TotalOpCodes() != int(TOTAL_OPCODES) {
		panic("unexpected entries in opcode mnemonics table. Make sure you've added only OpCode -> Mnemonic entries of implemented opcodes in the NewOpCodesDescriptor() call")
	}
	return d
}
