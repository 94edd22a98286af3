package instructions

import (
	"fmt"
)

// Contains implementation information of an instruction opcode
type OpCodeDescriptor struct {
	OpCode   OpCode
	Mnemonic string
}

func (d *OpCodeDescriptor) String() string {
	return fmt.Sprintf("%v (code: %v)", d.Mnemonic, uint(d.OpCode))
}
