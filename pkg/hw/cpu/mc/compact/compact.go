// Package compact implements the 5-bit compact immediate encodings used by
// the MULC5 and ADDC5 instructions.
//
// A compact immediate packs a sparse set of integers (powers of two, their
// predecessors and, for the unsigned form, their +2 shifted variants) into 5
// bits:
//
//	unsigned form:  value = 2^code{3-1} + 2*code{4} - code{0}
//	signed form:    value = (code{4} ? -1 : 1) * (2^code{3-1} - code{0})
//
// Both forms encode 0 as 0b00001. Every encode call verifies its result by
// decoding it back, so a wrong code is never returned silently.
package compact

import (
	"errors"
	"math/bits"
	"slices"

	"github.com/Manu343726/sparcmc/pkg/utils"
	"golang.org/x/exp/constraints"
)

// Number of bits of a compact immediate code
const CodeBits = 5

// Code of the value 0 in both forms
const ZeroCode uint32 = 0b00001

const (
	subtractOneBit = 0
	exponentBit    = 1
	exponentBits   = 3
	flagBit        = 4
)

var (
	// The value is outside the range accepted by the encoding
	ErrOutOfRange = errors.New("compact immediate out of range")
	// The value is within range but has no compact representation
	ErrNotRepresentable = errors.New("compact immediate not representable")
	// The produced code does not decode back to the encoded value
	ErrCodecMismatch = errors.New("compact immediate codec mismatch")
)

// Returns all the values the given decode function produces over the full
// code space that fall within [min, max], sorted and without duplicates
func representableValues[T constraints.Signed](decode func(uint32) T, min, max T) []T {
	values := make([]T, 0, 1<<CodeBits)

	for code := uint32(0); code < 1<<CodeBits; code++ {
		if value := decode(code); value >= min && value <= max {
			values = append(values, value)
		}
	}

	slices.Sort(values)
	return slices.Compact(values)
}

func exponent(code uint32) int64 {
	view := utils.CreateBitView(&code)
	return int64(1) << view.Read(exponentBit, exponentBits)
}

func encodeExponent(value int64) uint32 {
	return uint32(bits.TrailingZeros64(uint64(value))) << exponentBit
}
