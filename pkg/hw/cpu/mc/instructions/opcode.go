package instructions

// Represents an instruction opcode
type OpCode uint

const (
	// Call and link, 30-bit word displacement
	OpCode_CALL OpCode = iota
	// Call to the __tls_get_addr runtime helper, annotated with the TLS symbol being resolved
	OpCode_TLS_CALL
	// Set high 22 bits of a register
	OpCode_SETHI
	// No-Operation (sethi 0, %g0)
	OpCode_NOP
	// Branch on integer condition codes
	OpCode_BCOND
	// Branch on integer condition codes, annulling the delay slot if not taken
	OpCode_BCONDA
	// Branch on 32-bit integer condition codes with prediction (V9)
	OpCode_BPICC
	// Branch on 64-bit integer condition codes with prediction (V9)
	OpCode_BPXCC
	// Branch on register contents with prediction (V9)
	OpCode_BPR
	// Add registers
	OpCode_ADDrr
	// Add register and 13-bit signed immediate
	OpCode_ADDri
	// 64-bit add registers
	OpCode_ADDXrr
	// Substract registers
	OpCode_SUBrr
	// Substract 13-bit signed immediate from register
	OpCode_SUBri
	// Bitwise and of registers
	OpCode_ANDrr
	// Bitwise and of register and 13-bit signed immediate
	OpCode_ANDri
	// Bitwise or of registers
	OpCode_ORrr
	// Bitwise or of register and 13-bit signed immediate
	OpCode_ORri
	// Bitwise xor of registers
	OpCode_XORrr
	// Bitwise xor of register and 13-bit signed immediate
	OpCode_XORri
	// Load word from register + register address
	OpCode_LDrr
	// Load word from register + 13-bit signed immediate address
	OpCode_LDri
	// Load extended word from register + register address (V9)
	OpCode_LDXrr
	// Store word to register + register address
	OpCode_STrr
	// Store word to register + 13-bit signed immediate address
	OpCode_STri
	// Jump and link to register + 13-bit signed immediate address
	OpCode_JMPLri
	// TLS add, annotated with the TLS symbol
	OpCode_TLS_ADDrr
	// 64-bit TLS add, annotated with the TLS symbol
	OpCode_TLS_ADDXrr
	// TLS load, annotated with the TLS symbol
	OpCode_TLS_LDrr
	// TLS extended load, annotated with the TLS symbol
	OpCode_TLS_LDXrr
	// Multiply register by unsigned compact immediate (IMPDEP1)
	OpCode_MULC5
	// Add signed compact immediate to register (IMPDEP2)
	OpCode_ADDC5

	// Total opcodes implemented
	TOTAL_OPCODES
)

// Returns the mnemonic of the instruction opcode
func (op OpCode) String() string {
	return Opcodes.Mnemonic(op)
}
