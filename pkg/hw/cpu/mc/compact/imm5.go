package compact

import (
	"slices"

	"github.com/Manu343726/sparcmc/pkg/utils"
)

const (
	// Smallest value accepted by the unsigned form
	Imm5Min int64 = 0
	// Largest value accepted by the unsigned form. Only a subset of
	// [Imm5Min, Imm5Max] is representable, see Imm5Values()
	Imm5Max int64 = 255
)

var imm5Values = representableValues(DecodeImm5, Imm5Min, Imm5Max)

// Returns the sorted set of values representable by the unsigned form:
// 0-10, 15-18, 31-34, 63-66 and 127-130
func Imm5Values() []int64 {
	return slices.Clone(imm5Values)
}

// Returns true if the value has an unsigned compact representation
func IsImm5(value int64) bool {
	_, found := slices.BinarySearch(imm5Values, value)
	return found
}

// Decodes an unsigned compact immediate code
func DecodeImm5(code uint32) int64 {
	view := utils.CreateBitView(&code)
	plus := int64(view.Read(flagBit, 1)) * 2
	sub := int64(view.Read(subtractOneBit, 1))

	return exponent(code) + plus - sub
}

// Encodes a value using the unsigned compact immediate form
func EncodeImm5(value int64) (uint32, error) {
	if value == 0 {
		return ZeroCode, nil
	}

	if value < Imm5Min || value > Imm5Max {
		return 0, utils.MakeError(ErrOutOfRange, "invalid value %v for Imm5, value must be within [%v, %v] range", value, Imm5Min, Imm5Max)
	}

	if !IsImm5(value) {
		return 0, utils.MakeError(ErrNotRepresentable, "invalid value %v for Imm5, value must be representable as 2^immediate{3-1} + immediate{4}*2 - immediate{0}", value)
	}

	var code uint32
	view := utils.CreateBitView(&code)
	magnitude := value

	if magnitude%2 == 1 {
		magnitude++
		view.SetBit(subtractOneBit)
	}

	if magnitude&2 == 2 && magnitude > 2 {
		magnitude -= 2
		view.SetBit(flagBit)
	}

	code |= encodeExponent(magnitude)

	if decoded := DecodeImm5(code); decoded != value {
		return 0, utils.MakeError(ErrCodecMismatch, "Imm5 code %v decodes to %v, expected %v", utils.FormatUintBinary(uint64(code), CodeBits), decoded, value)
	}

	return code, nil
}
