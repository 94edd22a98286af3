package instructions

// Describes how the value of an operand is computed before being placed into the instruction
// bit fields, and which fixups are recorded when the value is not known at encoding time
type OperandEncoding uint

const (
	// Generic operand: registers, constants and explicitly annotated expressions
	OperandEncoding_Machine OperandEncoding = iota
	// 13-bit signed immediate of format 3 instructions
	OperandEncoding_SImm13
	// Compact unsigned 5-bit immediate
	OperandEncoding_Imm5
	// Compact signed 5-bit immediate
	OperandEncoding_SImm5
	// 30-bit word displacement of CALL
	OperandEncoding_CallTarget
	// 22-bit word displacement of Bicc
	OperandEncoding_BranchTarget
	// 19-bit word displacement of BPcc
	OperandEncoding_BranchPredTarget
	// 16-bit word displacement of BPr, split in two fields
	OperandEncoding_BranchOnRegTarget
)

var operandEncodingNames = map[OperandEncoding]string{
	OperandEncoding_Machine:           "machine",
	OperandEncoding_SImm13:            "simm13",
	OperandEncoding_Imm5:              "imm5",
	OperandEncoding_SImm5:             "simm5",
	OperandEncoding_CallTarget:        "calltarget",
	OperandEncoding_BranchTarget:      "brtarget",
	OperandEncoding_BranchPredTarget:  "bprtarget",
	OperandEncoding_BranchOnRegTarget: "bprtarget16",
}

func (e OperandEncoding) String() string {
	if name, hasName := operandEncodingNames[e]; hasName {
		return name
	}

	panic("unreachable")
}
