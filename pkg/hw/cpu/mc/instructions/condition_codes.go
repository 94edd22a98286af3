package instructions

import (
	"errors"
	"strings"

	"github.com/Manu343726/sparcmc/pkg/utils"
)

// ConditionCode represents the integer condition codes tested by Bicc and
// BPcc branches (cond field, bits 28-25)
type ConditionCode uint32

const (
	CC_N   ConditionCode = iota // 0 - Never
	CC_E                        // 1 - Equal (Z)
	CC_LE                       // 2 - Less or Equal (Z or (N xor V))
	CC_L                        // 3 - Less (N xor V)
	CC_LEU                      // 4 - Less or Equal Unsigned (C or Z)
	CC_CS                       // 5 - Carry Set, Less Unsigned (C)
	CC_NEG                      // 6 - Negative (N)
	CC_VS                       // 7 - Overflow Set (V)
	CC_A                        // 8 - Always
	CC_NE                       // 9 - Not Equal (not Z)
	CC_G                        // 10 - Greater (not (Z or (N xor V)))
	CC_GE                       // 11 - Greater or Equal (not (N xor V))
	CC_GU                       // 12 - Greater Unsigned (not (C or Z))
	CC_CC                       // 13 - Carry Clear, Greater or Equal Unsigned (not C)
	CC_POS                      // 14 - Positive (not N)
	CC_VC                       // 15 - Overflow Clear (not V)
	CC_INVALID
)

var conditionCodeNames = []string{
	"n", "e", "le", "l", "leu", "cs", "neg", "vs",
	"a", "ne", "g", "ge", "gu", "cc", "pos", "vc",
}

// Assembler synonyms accepted by ParseConditionCode
var conditionCodeSynonyms = map[string]ConditionCode{
	"z":   CC_E,
	"nz":  CC_NE,
	"lu":  CC_CS,
	"geu": CC_CC,
}

var ErrInvalidConditionCode = errors.New("invalid condition code")

// String returns the condition code name
func (cc ConditionCode) String() string {
	if int(cc) < len(conditionCodeNames) {
		return conditionCodeNames[cc]
	}
	return "invalid"
}

// Opposite returns the opposite condition code. Bit 3 of the cond field
// negates the condition
func (cc ConditionCode) Opposite() ConditionCode {
	if cc >= CC_INVALID {
		return CC_INVALID
	}
	return cc ^ 0b1000
}

// Parses a condition code name (e.g. "ne", "geu")
func ParseConditionCode(name string) (ConditionCode, error) {
	name = strings.ToLower(name)

	for i, ccName := range conditionCodeNames {
		if ccName == name {
			return ConditionCode(i), nil
		}
	}

	if cc, isSynonym := conditionCodeSynonyms[name]; isSynonym {
		return cc, nil
	}

	return CC_INVALID, utils.MakeError(ErrInvalidConditionCode, "'%v'", name)
}

// RegisterConditionCode represents the conditions tested by branches on
// register contents (rcond field of BPr, bits 27-25)
type RegisterConditionCode uint32

const (
	RCC_Z   RegisterConditionCode = 1 // Register is zero
	RCC_LEZ RegisterConditionCode = 2 // Register is less or equal to zero
	RCC_LZ  RegisterConditionCode = 3 // Register is less than zero
	RCC_NZ  RegisterConditionCode = 5 // Register is not zero
	RCC_GZ  RegisterConditionCode = 6 // Register is greater than zero
	RCC_GEZ RegisterConditionCode = 7 // Register is greater or equal to zero
)

var registerConditionCodeNames = map[RegisterConditionCode]string{
	RCC_Z:   "rz",
	RCC_LEZ: "rlez",
	RCC_LZ:  "rlz",
	RCC_NZ:  "rnz",
	RCC_GZ:  "rgz",
	RCC_GEZ: "rgez",
}

var registerConditionCodesByName = utils.InvertedMap(registerConditionCodeNames)

func (rcc RegisterConditionCode) String() string {
	if name, hasName := registerConditionCodeNames[rcc]; hasName {
		return name
	}
	return "invalid"
}

// Opposite returns the opposite register condition. Bit 2 of the rcond field
// negates the condition
func (rcc RegisterConditionCode) Opposite() RegisterConditionCode {
	return rcc ^ 0b100
}

// Parses a register condition name (e.g. "rnz")
func ParseRegisterConditionCode(name string) (RegisterConditionCode, error) {
	if rcc, hasName := registerConditionCodesByName[strings.ToLower(name)]; hasName {
		return rcc, nil
	}

	return 0, utils.MakeError(ErrInvalidConditionCode, "'%v' is not a register condition", name)
}
