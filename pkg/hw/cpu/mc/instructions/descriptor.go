package instructions

import (
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/registers"
)

var Opcodes OpCodesDescriptor = NewOpCodesDescriptor(
	map[OpCode]string{
		OpCode_CALL:       "CALL",
		OpCode_TLS_CALL:   "TLS_CALL",
		OpCode_SETHI:      "SETHI",
		OpCode_NOP:        "NOP",
		OpCode_BCOND:      "BCOND",
		OpCode_BCONDA:     "BCONDA",
		OpCode_BPICC:      "BPICC",
		OpCode_BPXCC:      "BPXCC",
		OpCode_BPR:        "BPR",
		OpCode_ADDrr:      "ADDrr",
		OpCode_ADDri:      "ADDri",
		OpCode_ADDXrr:     "ADDXrr",
		OpCode_SUBrr:      "SUBrr",
		OpCode_SUBri:      "SUBri",
		OpCode_ANDrr:      "ANDrr",
		OpCode_ANDri:      "ANDri",
		OpCode_ORrr:       "ORrr",
		OpCode_ORri:       "ORri",
		OpCode_XORrr:      "XORrr",
		OpCode_XORri:      "XORri",
		OpCode_LDrr:       "LDrr",
		OpCode_LDri:       "LDri",
		OpCode_LDXrr:      "LDXrr",
		OpCode_STrr:       "STrr",
		OpCode_STri:       "STri",
		OpCode_JMPLri:     "JMPLri",
		OpCode_TLS_ADDrr:  "TLS_ADDrr",
		OpCode_TLS_ADDXrr: "TLS_ADDXrr",
		OpCode_TLS_LDrr:   "TLS_LDrr",
		OpCode_TLS_LDXrr:  "TLS_LDXrr",
		OpCode_MULC5:      "MULC5",
		OpCode_ADDC5:      "ADDC5",
	},
)

var Instructions InstructionsDescriptor = NewInstructionsDescriptor([]*InstructionDescriptor{
	Call(),
	TLSCall(),
	Sethi(),
	Nop(),
	BranchOnConditionCodes(OpCode_BCOND, false),
	BranchOnConditionCodes(OpCode_BCONDA, true),
	BranchOnConditionCodesWithPrediction(OpCode_BPICC, false),
	BranchOnConditionCodesWithPrediction(OpCode_BPXCC, true),
	BranchOnRegister(),
	AluRR(OpCode_ADDrr, Op3_ADD, "Adds two 32 bit integer registers", 0),
	AluRI(OpCode_ADDri, Op3_ADD, "Adds a 13 bit signed immediate to a 32 bit integer register"),
	AluRR(OpCode_ADDXrr, Op3_ADD, "Adds two 64 bit integer registers", Feature_Is64Bit),
	AluRR(OpCode_SUBrr, Op3_SUB, "Substracts two integer registers", 0),
	AluRI(OpCode_SUBri, Op3_SUB, "Substracts a 13 bit signed immediate from an integer register"),
	AluRR(OpCode_ANDrr, Op3_AND, "Bitwise and of two integer registers", 0),
	AluRI(OpCode_ANDri, Op3_AND, "Bitwise and of an integer register and a 13 bit signed immediate"),
	AluRR(OpCode_ORrr, Op3_OR, "Bitwise or of two integer registers", 0),
	AluRI(OpCode_ORri, Op3_OR, "Bitwise or of an integer register and a 13 bit signed immediate"),
	AluRR(OpCode_XORrr, Op3_XOR, "Bitwise xor of two integer registers", 0),
	AluRI(OpCode_XORri, Op3_XOR, "Bitwise xor of an integer register and a 13 bit signed immediate"),
	LoadRR(OpCode_LDrr, Op3_LD, "Loads a 32 bit word from the address [rs1 + rs2]", 0),
	LoadRI(OpCode_LDri, Op3_LD, "Loads a 32 bit word from the address [rs1 + simm13]"),
	LoadRR(OpCode_LDXrr, Op3_LDX, "Loads a 64 bit extended word from the address [rs1 + rs2]", Feature_V9|Feature_Is64Bit),
	StoreRR(),
	StoreRI(),
	JumpAndLink(),
	TLS(OpCode_TLS_ADDrr, Op_Arith, Op3_ADD, "Adds the thread pointer offset of a TLS symbol", 0),
	TLS(OpCode_TLS_ADDXrr, Op_Arith, Op3_ADD, "Adds the 64 bit thread pointer offset of a TLS symbol", Feature_Is64Bit),
	TLS(OpCode_TLS_LDrr, Op_Memory, Op3_LD, "Loads the GOT entry of a TLS symbol", 0),
	TLS(OpCode_TLS_LDXrr, Op_Memory, Op3_LDX, "Loads the 64 bit GOT entry of a TLS symbol", Feature_V9|Feature_Is64Bit),
	CompactImmediate(OpCode_MULC5, Op3_IMPDEP1, OperandEncoding_Imm5, "Multiplies an integer register by an unsigned compact immediate"),
	CompactImmediate(OpCode_ADDC5, Op3_IMPDEP2, OperandEncoding_SImm5, "Adds a signed compact immediate to an integer register"),
})

// Values of the op field (bits 31-30)
const (
	Op_Branch uint32 = 0b00
	Op_Call   uint32 = 0b01
	Op_Arith  uint32 = 0b10
	Op_Memory uint32 = 0b11
)

// Values of the op2 field of format 2 instructions (bits 24-22)
const (
	Op2_BPcc  uint32 = 0b001
	Op2_Bicc  uint32 = 0b010
	Op2_BPr   uint32 = 0b011
	Op2_SETHI uint32 = 0b100
)

// Values of the op3 field of format 3 instructions (bits 24-19)
const (
	Op3_ADD     uint32 = 0x00
	Op3_AND     uint32 = 0x01
	Op3_OR      uint32 = 0x02
	Op3_XOR     uint32 = 0x03
	Op3_SUB     uint32 = 0x04
	Op3_IMPDEP1 uint32 = 0x36
	Op3_IMPDEP2 uint32 = 0x37
	Op3_JMPL    uint32 = 0x38

	Op3_LD  uint32 = 0x00
	Op3_ST  uint32 = 0x04
	Op3_LDX uint32 = 0x0b
)

const (
	// Immediate flag of format 3 instructions
	Bit_I = 13
	// Annul flag of branches
	Bit_A = 29
	// Prediction flag of V9 branches (predict taken)
	Bit_P = 19
	// Condition codes selector of BPcc (icc = 0, xcc = 1)
	Bit_CC1 = 21
)

func format1() uint32 {
	return Op_Call << 30
}

func format2(op2 uint32) uint32 {
	return Op_Branch<<30 | op2<<22
}

func format3(op uint32, op3 uint32) uint32 {
	return op<<30 | op3<<19
}

func rd(role OperandRole, description string) *OperandDescriptor {
	return RegisterOperandDescriptor(registers.IntRegs, OperandDescriptor{
		Name:        "rd",
		Role:        role,
		Fields:      []BitField{{Position: 25, Bits: 5}},
		Description: description,
	})
}

func rs1(description string) *OperandDescriptor {
	return RegisterOperandDescriptor(registers.IntRegs, OperandDescriptor{
		Name:        "rs1",
		Role:        OperandRole_Source,
		Fields:      []BitField{{Position: 14, Bits: 5}},
		Description: description,
	})
}

func rs2(description string) *OperandDescriptor {
	return RegisterOperandDescriptor(registers.IntRegs, OperandDescriptor{
		Name:        "rs2",
		Role:        OperandRole_Source,
		Fields:      []BitField{{Position: 0, Bits: 5}},
		Description: description,
	})
}

func simm13(description string) *OperandDescriptor {
	return ImmediateOperandDescriptor(OperandEncoding_SImm13, OperandDescriptor{
		Name:        "simm13",
		Fields:      []BitField{{Position: 0, Bits: 13}},
		Description: description,
	})
}

// Operand naming the TLS symbol a pseudo instruction refers to. It does not take
// any bit of the instruction word
func tlsSymbol() *OperandDescriptor {
	operand := ImmediateOperandDescriptor(OperandEncoding_Machine, OperandDescriptor{
		Name:        "sym",
		Description: "TLS symbol annotation, must be a relocated expression",
	})
	operand.Role = OperandRole_Annotation

	return operand
}

func Call() *InstructionDescriptor {
	return &InstructionDescriptor{
		OpCode:      Opcodes.Descriptor(OpCode_CALL),
		Description: "Calls the procedure at PC + 4 * disp30, saving the PC into %o7",
		FixedBits:   format1(),
		Operands: []*OperandDescriptor{
			ImmediateOperandDescriptor(OperandEncoding_CallTarget, OperandDescriptor{
				Name:        "disp30",
				Fields:      []BitField{{Position: 0, Bits: 30}},
				Description: "call target",
			}),
		},
	}
}

func TLSCall() *InstructionDescriptor {
	return &InstructionDescriptor{
		OpCode:      Opcodes.Descriptor(OpCode_TLS_CALL),
		Description: "Calls __tls_get_addr to resolve the address of a TLS symbol",
		FixedBits:   format1(),
		Operands: []*OperandDescriptor{
			ImmediateOperandDescriptor(OperandEncoding_CallTarget, OperandDescriptor{
				Name:        "disp30",
				Fields:      []BitField{{Position: 0, Bits: 30}},
				Description: "callee, must be the __tls_get_addr symbol",
			}),
			tlsSymbol(),
		},
	}
}

func Sethi() *InstructionDescriptor {
	return &InstructionDescriptor{
		OpCode:      Opcodes.Descriptor(OpCode_SETHI),
		Description: "Copies a 22 bit immediate into the 22 most significant bits of the low word of a register, clearing the 10 least significant bits",
		FixedBits:   format2(Op2_SETHI),
		Operands: []*OperandDescriptor{
			rd(OperandRole_Destination, "destination register"),
			ImmediateOperandDescriptor(OperandEncoding_Machine, OperandDescriptor{
				Name:        "imm22",
				Fields:      []BitField{{Position: 0, Bits: 22}},
				Description: "22 bit immediate, usually %hi(value)",
			}),
		},
	}
}

func Nop() *InstructionDescriptor {
	return &InstructionDescriptor{
		OpCode:      Opcodes.Descriptor(OpCode_NOP),
		Description: "No operation (sethi 0, %g0)",
		FixedBits:   format2(Op2_SETHI),
		Operands:    nil,
	}
}

func conditionCode(name string, bits int, description string) *OperandDescriptor {
	return ImmediateOperandDescriptor(OperandEncoding_Machine, OperandDescriptor{
		Name:        name,
		Fields:      []BitField{{Position: 25, Bits: bits}},
		Description: description,
	})
}

func BranchOnConditionCodes(opcode OpCode, annul bool) *InstructionDescriptor {
	fixed := format2(Op2_Bicc)
	description := "Branches to PC + 4 * disp22 if the integer condition codes satisfy the condition"

	if annul {
		fixed |= 1 << Bit_A
		description += ", annulling the delay slot instruction if the branch is not taken"
	}

	return &InstructionDescriptor{
		OpCode:      Opcodes.Descriptor(opcode),
		Description: description,
		FixedBits:   fixed,
		Operands: []*OperandDescriptor{
			ImmediateOperandDescriptor(OperandEncoding_BranchTarget, OperandDescriptor{
				Name:        "disp22",
				Fields:      []BitField{{Position: 0, Bits: 22}},
				Description: "branch target",
			}),
			conditionCode("cond", 4, "integer condition code (see ConditionCode)"),
		},
	}
}

func BranchOnConditionCodesWithPrediction(opcode OpCode, xcc bool) *InstructionDescriptor {
	fixed := format2(Op2_BPcc) | 1<<Bit_P
	description := "Branches to PC + 4 * disp19 if the 32 bit integer condition codes satisfy the condition, predicting the branch is taken"

	if xcc {
		fixed |= 1 << Bit_CC1
		description = "Branches to PC + 4 * disp19 if the 64 bit integer condition codes satisfy the condition, predicting the branch is taken"
	}

	return &InstructionDescriptor{
		OpCode:      Opcodes.Descriptor(opcode),
		Description: description,
		FixedBits:   fixed,
		Predicates:  Feature_V9,
		Operands: []*OperandDescriptor{
			ImmediateOperandDescriptor(OperandEncoding_BranchPredTarget, OperandDescriptor{
				Name:        "disp19",
				Fields:      []BitField{{Position: 0, Bits: 19}},
				Description: "branch target",
			}),
			conditionCode("cond", 4, "integer condition code (see ConditionCode)"),
		},
	}
}

func BranchOnRegister() *InstructionDescriptor {
	return &InstructionDescriptor{
		OpCode:      Opcodes.Descriptor(OpCode_BPR),
		Description: "Branches to PC + 4 * d16 if the contents of rs1 satisfy the register condition, predicting the branch is taken",
		FixedBits:   format2(Op2_BPr) | 1<<Bit_P,
		Predicates:  Feature_V9,
		Operands: []*OperandDescriptor{
			ImmediateOperandDescriptor(OperandEncoding_BranchOnRegTarget, OperandDescriptor{
				Name: "d16",
				Fields: []BitField{
					{Position: 0, Bits: 14},
					{Position: 20, Bits: 2, ValueShift: 14},
				},
				Description: "branch target, split in d16lo (bits 13-0) and d16hi (bits 21-20)",
			}),
			conditionCode("rcond", 3, "register condition (see RegisterConditionCode)"),
			rs1("tested register"),
		},
	}
}

func AluRR(opcode OpCode, op3 uint32, description string, predicates Features) *InstructionDescriptor {
	return &InstructionDescriptor{
		OpCode:      Opcodes.Descriptor(opcode),
		Description: description,
		FixedBits:   format3(Op_Arith, op3),
		Predicates:  predicates,
		Operands: []*OperandDescriptor{
			rd(OperandRole_Destination, "destination register"),
			rs1("first operand"),
			rs2("second operand"),
		},
	}
}

func AluRI(opcode OpCode, op3 uint32, description string) *InstructionDescriptor {
	return &InstructionDescriptor{
		OpCode:      Opcodes.Descriptor(opcode),
		Description: description,
		FixedBits:   format3(Op_Arith, op3) | 1<<Bit_I,
		Operands: []*OperandDescriptor{
			rd(OperandRole_Destination, "destination register"),
			rs1("first operand"),
			simm13("second operand"),
		},
	}
}

func LoadRR(opcode OpCode, op3 uint32, description string, predicates Features) *InstructionDescriptor {
	return &InstructionDescriptor{
		OpCode:      Opcodes.Descriptor(opcode),
		Description: description,
		FixedBits:   format3(Op_Memory, op3),
		Predicates:  predicates,
		Operands: []*OperandDescriptor{
			rd(OperandRole_Destination, "destination register"),
			rs1("base address"),
			rs2("offset"),
		},
	}
}

func LoadRI(opcode OpCode, op3 uint32, description string) *InstructionDescriptor {
	return &InstructionDescriptor{
		OpCode:      Opcodes.Descriptor(opcode),
		Description: description,
		FixedBits:   format3(Op_Memory, op3) | 1<<Bit_I,
		Operands: []*OperandDescriptor{
			rd(OperandRole_Destination, "destination register"),
			rs1("base address"),
			simm13("offset"),
		},
	}
}

func StoreRR() *InstructionDescriptor {
	return &InstructionDescriptor{
		OpCode:      Opcodes.Descriptor(OpCode_STrr),
		Description: "Stores the low word of rd to the address [rs1 + rs2]",
		FixedBits:   format3(Op_Memory, Op3_ST),
		Operands: []*OperandDescriptor{
			rs1("base address"),
			rs2("offset"),
			rd(OperandRole_Source, "stored register"),
		},
	}
}

func StoreRI() *InstructionDescriptor {
	return &InstructionDescriptor{
		OpCode:      Opcodes.Descriptor(OpCode_STri),
		Description: "Stores the low word of rd to the address [rs1 + simm13]",
		FixedBits:   format3(Op_Memory, Op3_ST) | 1<<Bit_I,
		Operands: []*OperandDescriptor{
			rs1("base address"),
			simm13("offset"),
			rd(OperandRole_Source, "stored register"),
		},
	}
}

func JumpAndLink() *InstructionDescriptor {
	return &InstructionDescriptor{
		OpCode:      Opcodes.Descriptor(OpCode_JMPLri),
		Description: "Jumps to the address [rs1 + simm13], saving the PC into rd",
		FixedBits:   format3(Op_Arith, Op3_JMPL) | 1<<Bit_I,
		Operands: []*OperandDescriptor{
			rd(OperandRole_Destination, "link register"),
			rs1("base address"),
			simm13("offset"),
		},
	}
}

func TLS(opcode OpCode, op uint32, op3 uint32, description string, predicates Features) *InstructionDescriptor {
	return &InstructionDescriptor{
		OpCode:      Opcodes.Descriptor(opcode),
		Description: description,
		FixedBits:   format3(op, op3),
		Predicates:  predicates,
		Operands: []*OperandDescriptor{
			rd(OperandRole_Destination, "destination register"),
			rs1("first operand"),
			rs2("second operand"),
			tlsSymbol(),
		},
	}
}

func CompactImmediate(opcode OpCode, op3 uint32, encoding OperandEncoding, description string) *InstructionDescriptor {
	return &InstructionDescriptor{
		OpCode:      Opcodes.Descriptor(opcode),
		Description: description,
		FixedBits:   format3(Op_Arith, op3) | 1<<Bit_I,
		Predicates:  Feature_CompactImm,
		Operands: []*OperandDescriptor{
			rd(OperandRole_Destination, "destination register"),
			rs1("first operand"),
			ImmediateOperandDescriptor(encoding, OperandDescriptor{
				Name:        encoding.String(),
				Fields:      []BitField{{Position: 0, Bits: 5}},
				Description: "compact 5 bit immediate",
			}),
		},
	}
}
