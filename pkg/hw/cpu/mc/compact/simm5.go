package compact

import (
	"slices"

	"github.com/Manu343726/sparcmc/pkg/utils"
)

const (
	// Smallest value accepted by the signed form
	SImm5Min int64 = -128
	// Largest value accepted by the signed form. Only a subset of
	// [SImm5Min, SImm5Max] is representable, see SImm5Values()
	SImm5Max int64 = 127
)

var simm5Values = representableValues(DecodeSImm5, SImm5Min, SImm5Max)

// Returns the sorted set of values representable by the signed form:
// 0 and ±{1, 2, 3, 4, 7, 8, 15, 16, 31, 32, 63, 64, 127}, plus -128
func SImm5Values() []int64 {
	return slices.Clone(simm5Values)
}

// Returns true if the value has a signed compact representation
func IsSImm5(value int64) bool {
	_, found := slices.BinarySearch(simm5Values, value)
	return found
}

// Decodes a signed compact immediate code
func DecodeSImm5(code uint32) int64 {
	view := utils.CreateBitView(&code)
	sign := int64(1)
	if view.IsSet(flagBit) {
		sign = -1
	}
	sub := int64(view.Read(subtractOneBit, 1))

	return sign * (exponent(code) - sub)
}

// Encodes a value using the signed compact immediate form
func EncodeSImm5(value int64) (uint32, error) {
	if value == 0 {
		return ZeroCode, nil
	}

	if value < SImm5Min || value > SImm5Max {
		return 0, utils.MakeError(ErrOutOfRange, "invalid value %v for SImm5, value must be within [%v, %v] range", value, SImm5Min, SImm5Max)
	}

	if !IsSImm5(value) {
		return 0, utils.MakeError(ErrNotRepresentable, "invalid value %v for SImm5, value must be representable as (immediate{4} ? -1 : 1) * (2^immediate{3-1} - immediate{0})", value)
	}

	var code uint32
	view := utils.CreateBitView(&code)
	magnitude := value

	if magnitude < 0 {
		view.SetBit(flagBit)
		magnitude = -magnitude
	}

	if magnitude%2 == 1 {
		magnitude++
		view.SetBit(subtractOneBit)
	}

	code |= encodeExponent(magnitude)

	if decoded := DecodeSImm5(code); decoded != value {
		return 0, utils.MakeError(ErrCodecMismatch, "SImm5 code %v decodes to %v, expected %v", utils.FormatUintBinary(uint64(code), CodeBits), decoded, value)
	}

	return code, nil
}
