package instructions

import (
	"errors"
	"math/bits"
	"strings"
	"unicode"

	"github.com/Manu343726/sparcmc/pkg/utils"
)

// Set of subtarget features available when encoding instructions
type Features uint64

const (
	// SPARC V9 instruction set (BPcc, BPr, 64-bit loads)
	Feature_V9 Features = 1 << iota
	// 64-bit target (sparcv9 ABI)
	Feature_Is64Bit
	// Compact 5-bit immediate extension (MULC5, ADDC5)
	Feature_CompactImm

	// Total features implemented
	TOTAL_FEATURES = iota
)

var featureNames = map[Features]string{
	Feature_V9:         "v9",
	Feature_Is64Bit:    "64bit",
	Feature_CompactImm: "compactimm",
}

var featuresByName = utils.InvertedMap(featureNames)

var ErrUnknownFeature = errors.New("unknown subtarget feature")

// Returns true if all the given features are present in the set
func (f Features) Has(features Features) bool {
	return f&features == features
}

// Returns the features of the given set that are not present in this set
func (f Features) Missing(required Features) Features {
	return required &^ f
}

// Returns the individual features of the set, lowest bit first
func (f Features) List() []Features {
	result := make([]Features, 0, bits.OnesCount64(uint64(f)))

	for remaining := f; remaining != 0; remaining &= remaining - 1 {
		result = append(result, Features(1)<<bits.TrailingZeros64(uint64(remaining)))
	}

	return result
}

// Returns a comma separated list of feature names
func (f Features) String() string {
	if f == 0 {
		return "(none)"
	}

	return utils.FormatSlice(utils.Map(f.List(), func(feature Features) string {
		if name, hasName := featureNames[feature]; hasName {
			return name
		}
		return "feature(" + utils.FormatUintHex(uint64(feature), 16) + ")"
	}), ",")
}

func isFeatureSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// Parses a set of feature names (e.g. from command line flags). Each item may hold
// several names separated by commas or spaces ("v9,64bit", as environment variables
// give them). Names are case insensitive, empty names are ignored
func ParseFeatures(items []string) (Features, error) {
	var result Features

	for _, item := range items {
		for _, name := range strings.FieldsFunc(strings.ToLower(item), isFeatureSeparator) {
			feature, known := featuresByName[name]
			if !known {
				return 0, utils.MakeError(ErrUnknownFeature, "'%v'", name)
			}

			result |= feature
		}
	}

	return result, nil
}

// Returns all implemented features
func AllFeatures() []Features {
	return utils.Iota(TOTAL_FEATURES, func(i int) Features { return Features(1) << i })
}
