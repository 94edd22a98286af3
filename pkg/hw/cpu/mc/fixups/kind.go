package fixups

import (
	"errors"
	"fmt"

	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/expressions"
	"github.com/Manu343726/sparcmc/pkg/utils"
)

// Relocation kind tag attached to a fixup. The emitter only selects and
// forwards kinds, their meaning belongs to the object writer and the linker
type Kind uint

// Target kinds start after the generic data kinds of the object writer
const FirstTargetKind Kind = 128

const (
	// 30-bit PC relative relocation for call
	Kind_Call30 Kind = FirstTargetKind + iota
	// 22-bit PC relative relocation for branches
	Kind_Br22
	// 19-bit PC relative relocation for branches on icc/xcc
	Kind_Br19
	// Upper 2 bits of the 16-bit displacement of branches on register
	Kind_Br16_2
	// Lower 14 bits of the 16-bit displacement of branches on register
	Kind_Br16_14
	// 13-bit immediate
	Kind_13
	// 5-bit compact immediate
	Kind_5
	// %hi(foo) for sethi
	Kind_Hi22
	// %lo(foo)
	Kind_Lo10
	// %h44(foo)
	Kind_H44
	// %m44(foo)
	Kind_M44
	// %l44(foo)
	Kind_L44
	// %hh(foo)
	Kind_HH
	// %hm(foo)
	Kind_HM
	// %lm(foo)
	Kind_LM
	// %pc22(foo)
	Kind_PC22
	// %pc10(foo)
	Kind_PC10
	// %got22(foo)
	Kind_GOT22
	// %got10(foo)
	Kind_GOT10
	// %got13(foo)
	Kind_GOT13
	// %got5(foo)
	Kind_GOT5
	// 30-bit PC relative relocation to the PLT entry of a call target
	Kind_WPLT30

	// Thread local storage
	Kind_TLS_GD_HI22
	Kind_TLS_GD_LO10
	Kind_TLS_GD_ADD
	Kind_TLS_GD_CALL
	Kind_TLS_LDM_HI22
	Kind_TLS_LDM_LO10
	Kind_TLS_LDM_ADD
	Kind_TLS_LDM_CALL
	Kind_TLS_LDO_HIX22
	Kind_TLS_LDO_LOX10
	Kind_TLS_LDO_ADD
	Kind_TLS_IE_HI22
	Kind_TLS_IE_LO10
	Kind_TLS_IE_LD
	Kind_TLS_IE_LDX
	Kind_TLS_IE_ADD
	Kind_TLS_LE_HIX22
	Kind_TLS_LE_LOX10

	// Marker
	LastTargetKind
)

// Number of target specific fixup kinds
const NumTargetKinds = int(LastTargetKind - FirstTargetKind)

// Describes where a fixup kind patches the instruction word
type KindInfo struct {
	Name string
	// First (least significant) bit patched by the fixup
	Position int
	// Number of bits patched. Zero for marker relocations that only annotate
	// the instruction for the linker (TLS call/add/ld sequences)
	Bits int
	// True if the value is relative to the address of the instruction
	PCRelative bool
}

var kindInfos = map[Kind]KindInfo{
	Kind_Call30:        {"fixup_sparc_call30", 0, 30, true},
	Kind_Br22:          {"fixup_sparc_br22", 0, 22, true},
	Kind_Br19:          {"fixup_sparc_br19", 0, 19, true},
	Kind_Br16_2:        {"fixup_sparc_br16_2", 20, 2, true},
	Kind_Br16_14:       {"fixup_sparc_br16_14", 0, 14, true},
	Kind_13:            {"fixup_sparc_13", 0, 13, false},
	Kind_5:             {"fixup_sparc_5", 0, 5, false},
	Kind_Hi22:          {"fixup_sparc_hi22", 0, 22, false},
	Kind_Lo10:          {"fixup_sparc_lo10", 0, 10, false},
	Kind_H44:           {"fixup_sparc_h44", 0, 22, false},
	Kind_M44:           {"fixup_sparc_m44", 0, 10, false},
	Kind_L44:           {"fixup_sparc_l44", 0, 12, false},
	Kind_HH:            {"fixup_sparc_hh", 0, 22, false},
	Kind_HM:            {"fixup_sparc_hm", 0, 10, false},
	Kind_LM:            {"fixup_sparc_lm", 0, 22, false},
	Kind_PC22:          {"fixup_sparc_pc22", 0, 22, true},
	Kind_PC10:          {"fixup_sparc_pc10", 0, 10, true},
	Kind_GOT22:         {"fixup_sparc_got22", 0, 22, false},
	Kind_GOT10:         {"fixup_sparc_got10", 0, 10, false},
	Kind_GOT13:         {"fixup_sparc_got13", 0, 13, false},
	Kind_GOT5:          {"fixup_sparc_got5", 0, 5, false},
	Kind_WPLT30:        {"fixup_sparc_wplt30", 0, 30, true},
	Kind_TLS_GD_HI22:   {"fixup_sparc_tls_gd_hi22", 0, 22, false},
	Kind_TLS_GD_LO10:   {"fixup_sparc_tls_gd_lo10", 0, 10, false},
	Kind_TLS_GD_ADD:    {"fixup_sparc_tls_gd_add", 0, 0, false},
	Kind_TLS_GD_CALL:   {"fixup_sparc_tls_gd_call", 0, 0, false},
	Kind_TLS_LDM_HI22:  {"fixup_sparc_tls_ldm_hi22", 0, 22, false},
	Kind_TLS_LDM_LO10:  {"fixup_sparc_tls_ldm_lo10", 0, 10, false},
	Kind_TLS_LDM_ADD:   {"fixup_sparc_tls_ldm_add", 0, 0, false},
	Kind_TLS_LDM_CALL:  {"fixup_sparc_tls_ldm_call", 0, 0, false},
	Kind_TLS_LDO_HIX22: {"fixup_sparc_tls_ldo_hix22", 0, 22, false},
	Kind_TLS_LDO_LOX10: {"fixup_sparc_tls_ldo_lox10", 0, 10, false},
	Kind_TLS_LDO_ADD:   {"fixup_sparc_tls_ldo_add", 0, 0, false},
	Kind_TLS_IE_HI22:   {"fixup_sparc_tls_ie_hi22", 0, 22, false},
	Kind_TLS_IE_LO10:   {"fixup_sparc_tls_ie_lo10", 0, 10, false},
	Kind_TLS_IE_LD:     {"fixup_sparc_tls_ie_ld", 0, 0, false},
	Kind_TLS_IE_LDX:    {"fixup_sparc_tls_ie_ldx", 0, 0, false},
	Kind_TLS_IE_ADD:    {"fixup_sparc_tls_ie_add", 0, 0, false},
	Kind_TLS_LE_HIX22:  {"fixup_sparc_tls_le_hix22", 0, 22, false},
	Kind_TLS_LE_LOX10:  {"fixup_sparc_tls_le_lox10", 0, 10, false},
}

var ErrUnknownKind = errors.New("unknown fixup kind")

// Returns the patching information of a fixup kind
func Info(kind Kind) (KindInfo, error) {
	if info, hasInfo := kindInfos[kind]; hasInfo {
		return info, nil
	}

	return KindInfo{}, utils.MakeError(ErrUnknownKind, "%d", uint(kind))
}

// Returns all target fixup kinds in declaration order
func AllKinds() []Kind {
	return utils.Iota(NumTargetKinds, func(i int) Kind { return FirstTargetKind + Kind(i) })
}

func (k Kind) String() string {
	if info, err := Info(k); err == nil {
		return info.Name
	}

	return fmt.Sprintf("fixup_kind(%d)", uint(k))
}

// Fixup kinds requested by expression variants. Variants that do not patch
// instruction words (e.g. %r_disp32, a data relocation) have no entry
var variantKinds = map[expressions.VariantKind]Kind{
	expressions.VariantKind_Lo:            Kind_Lo10,
	expressions.VariantKind_Hi:            Kind_Hi22,
	expressions.VariantKind_H44:           Kind_H44,
	expressions.VariantKind_M44:           Kind_M44,
	expressions.VariantKind_L44:           Kind_L44,
	expressions.VariantKind_HH:            Kind_HH,
	expressions.VariantKind_HM:            Kind_HM,
	expressions.VariantKind_LM:            Kind_LM,
	expressions.VariantKind_PC22:          Kind_PC22,
	expressions.VariantKind_PC10:          Kind_PC10,
	expressions.VariantKind_GOT22:         Kind_GOT22,
	expressions.VariantKind_GOT10:         Kind_GOT10,
	expressions.VariantKind_GOT13:         Kind_GOT13,
	expressions.VariantKind_GOT5:          Kind_GOT5,
	expressions.VariantKind_13:            Kind_13,
	expressions.VariantKind_5:             Kind_5,
	expressions.VariantKind_WPLT30:        Kind_WPLT30,
	expressions.VariantKind_WDISP30:       Kind_Call30,
	expressions.VariantKind_TLS_GD_HI22:   Kind_TLS_GD_HI22,
	expressions.VariantKind_TLS_GD_LO10:   Kind_TLS_GD_LO10,
	expressions.VariantKind_TLS_GD_ADD:    Kind_TLS_GD_ADD,
	expressions.VariantKind_TLS_GD_CALL:   Kind_TLS_GD_CALL,
	expressions.VariantKind_TLS_LDM_HI22:  Kind_TLS_LDM_HI22,
	expressions.VariantKind_TLS_LDM_LO10:  Kind_TLS_LDM_LO10,
	expressions.VariantKind_TLS_LDM_ADD:   Kind_TLS_LDM_ADD,
	expressions.VariantKind_TLS_LDM_CALL:  Kind_TLS_LDM_CALL,
	expressions.VariantKind_TLS_LDO_HIX22: Kind_TLS_LDO_HIX22,
	expressions.VariantKind_TLS_LDO_LOX10: Kind_TLS_LDO_LOX10,
	expressions.VariantKind_TLS_LDO_ADD:   Kind_TLS_LDO_ADD,
	expressions.VariantKind_TLS_IE_HI22:   Kind_TLS_IE_HI22,
	expressions.VariantKind_TLS_IE_LO10:   Kind_TLS_IE_LO10,
	expressions.VariantKind_TLS_IE_LD:     Kind_TLS_IE_LD,
	expressions.VariantKind_TLS_IE_LDX:    Kind_TLS_IE_LDX,
	expressions.VariantKind_TLS_IE_ADD:    Kind_TLS_IE_ADD,
	expressions.VariantKind_TLS_LE_HIX22:  Kind_TLS_LE_HIX22,
	expressions.VariantKind_TLS_LE_LOX10:  Kind_TLS_LE_LOX10,
}

// Returns the fixup kind explicitly requested by an expression, if any
func KindOf(expr expressions.Expression) (Kind, bool) {
	annotated, isAnnotated := expr.(expressions.Annotated)
	if !isAnnotated {
		return 0, false
	}

	kind, hasKind := variantKinds[annotated.Variant()]
	return kind, hasKind
}
