package instructions

import "fmt"

// How an instruction uses one of its operands
type OperandRole uint

const (
	// Read by the instruction (rs1, rs2, immediates, branch targets)
	OperandRole_Source OperandRole = iota
	// Written by the instruction (rd of ALU ops and loads)
	OperandRole_Destination
	// Takes no bit of the instruction word. Only carries a relocation for the
	// object writer, like the symbol of TLS pseudo instructions
	OperandRole_Annotation
)

var operandRoleNames = map[OperandRole]string{
	OperandRole_Source:      "src",
	OperandRole_Destination: "dst",
	OperandRole_Annotation:  "annotation",
}

func (o OperandRole) String() string {
	if name, hasName := operandRoleNames[o]; hasName {
		return name
	}

	return fmt.Sprintf("role(%d)", uint(o))
}
