package expressions

import (
	"errors"
	"strings"

	"github.com/Manu343726/sparcmc/pkg/utils"
)

// Relocation modifier applied to a target expression
type VariantKind uint

const (
	VariantKind_None VariantKind = iota
	VariantKind_Lo
	VariantKind_Hi
	VariantKind_H44
	VariantKind_M44
	VariantKind_L44
	VariantKind_HH
	VariantKind_HM
	VariantKind_LM
	VariantKind_PC22
	VariantKind_PC10
	VariantKind_GOT22
	VariantKind_GOT10
	VariantKind_GOT13
	VariantKind_GOT5
	VariantKind_13
	VariantKind_5
	VariantKind_WPLT30
	VariantKind_WDISP30
	VariantKind_R_DISP32
	VariantKind_TLS_GD_HI22
	VariantKind_TLS_GD_LO10
	VariantKind_TLS_GD_ADD
	VariantKind_TLS_GD_CALL
	VariantKind_TLS_LDM_HI22
	VariantKind_TLS_LDM_LO10
	VariantKind_TLS_LDM_ADD
	VariantKind_TLS_LDM_CALL
	VariantKind_TLS_LDO_HIX22
	VariantKind_TLS_LDO_LOX10
	VariantKind_TLS_LDO_ADD
	VariantKind_TLS_IE_HI22
	VariantKind_TLS_IE_LO10
	VariantKind_TLS_IE_LD
	VariantKind_TLS_IE_LDX
	VariantKind_TLS_IE_ADD
	VariantKind_TLS_LE_HIX22
	VariantKind_TLS_LE_LOX10

	// Total variants implemented
	TOTAL_VARIANT_KINDS
)

// Assembly spelling of each variant, without the leading %
var variantNames = map[VariantKind]string{
	VariantKind_None:          "",
	VariantKind_Lo:            "lo",
	VariantKind_Hi:            "hi",
	VariantKind_H44:           "h44",
	VariantKind_M44:           "m44",
	VariantKind_L44:           "l44",
	VariantKind_HH:            "hh",
	VariantKind_HM:            "hm",
	VariantKind_LM:            "lm",
	VariantKind_PC22:          "pc22",
	VariantKind_PC10:          "pc10",
	VariantKind_GOT22:         "got22",
	VariantKind_GOT10:         "got10",
	VariantKind_GOT13:         "got13",
	VariantKind_GOT5:          "got5",
	VariantKind_13:            "r_13",
	VariantKind_5:             "r_5",
	VariantKind_WPLT30:        "wplt30",
	VariantKind_WDISP30:       "wdisp30",
	VariantKind_R_DISP32:      "r_disp32",
	VariantKind_TLS_GD_HI22:   "tgd_hi22",
	VariantKind_TLS_GD_LO10:   "tgd_lo10",
	VariantKind_TLS_GD_ADD:    "tgd_add",
	VariantKind_TLS_GD_CALL:   "tgd_call",
	VariantKind_TLS_LDM_HI22:  "tldm_hi22",
	VariantKind_TLS_LDM_LO10:  "tldm_lo10",
	VariantKind_TLS_LDM_ADD:   "tldm_add",
	VariantKind_TLS_LDM_CALL:  "tldm_call",
	VariantKind_TLS_LDO_HIX22: "tldo_hix22",
	VariantKind_TLS_LDO_LOX10: "tldo_lox10",
	VariantKind_TLS_LDO_ADD:   "tldo_add",
	VariantKind_TLS_IE_HI22:   "tie_hi22",
	VariantKind_TLS_IE_LO10:   "tie_lo10",
	VariantKind_TLS_IE_LD:     "tie_ld",
	VariantKind_TLS_IE_LDX:    "tie_ldx",
	VariantKind_TLS_IE_ADD:    "tie_add",
	VariantKind_TLS_LE_HIX22:  "tle_hix22",
	VariantKind_TLS_LE_LOX10:  "tle_lox10",
}

var variantsByName = utils.InvertedMap(variantNames)

var ErrUnknownVariant = errors.New("unknown expression variant")

func (v VariantKind) String() string {
	return "%" + variantNames[v]
}

// Returns the variant spelled as the given modifier name, with or without the leading %
func ParseVariant(name string) (VariantKind, error) {
	name = strings.ToLower(strings.TrimPrefix(name, "%"))

	if variant, hasVariant := variantsByName[name]; hasVariant && variant != VariantKind_None {
		return variant, nil
	}

	return VariantKind_None, utils.MakeError(ErrUnknownVariant, "'%%%v'", name)
}

// Returns true if the variant selects a fixed bit range of an absolute
// value, so it can be computed as soon as the value is known
func (v VariantKind) IsAbsolute() bool {
	_, ok := v.Apply(0)
	return ok
}

// Applies the modifier to a known value. Returns false for modifiers that
// depend on the final location of the instruction or on linker generated
// tables (PC relative, GOT, TLS, ...)
func (v VariantKind) Apply(value int64) (int64, bool) {
	u := uint64(value)

	switch v {
	case VariantKind_None:
		return value, true
	case VariantKind_Lo:
		return int64(u & 0x3ff), true
	case VariantKind_Hi:
		return int64((u >> 10) & 0x3fffff), true
	case VariantKind_H44:
		return int64((u >> 22) & 0x3fffff), true
	case VariantKind_M44:
		return int64((u >> 12) & 0x3ff), true
	case VariantKind_L44:
		return int64(u & 0xfff), true
	case VariantKind_HH:
		return int64((u >> 42) & 0x3fffff), true
	case VariantKind_HM:
		return int64((u >> 32) & 0x3ff), true
	case VariantKind_LM:
		return int64((u >> 10) & 0x3fffff), true
	}

	return 0, false
}
