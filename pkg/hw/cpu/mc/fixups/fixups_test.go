package fixups

import (
	"testing"

	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/expressions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllKindsHaveInfo(t *testing.T) {
	kinds := AllKinds()
	require.Len(t, kinds, NumTargetKinds)
	assert.Equal(t, Kind_Call30, kinds[0])
	assert.Equal(t, Kind_TLS_LE_LOX10, kinds[len(kinds)-1])

	names := map[string]bool{}

	for _, kind := range kinds {
		info, err := Info(kind)
		require.NoError(t, err, kind)
		assert.LessOrEqual(t, info.Position+info.Bits, 32, info.Name)
		assert.False(t, names[info.Name], "duplicated name %v", info.Name)
		names[info.Name] = true
	}
}

func TestInfo_UnknownKind(t *testing.T) {
	_, err := Info(LastTargetKind)
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Equal(t, "fixup_kind(3)", Kind(3).String())
}

func TestBranchOnRegisterKindsCoverSplitDisplacement(t *testing.T) {
	hi, _ := Info(Kind_Br16_2)
	lo, _ := Info(Kind_Br16_14)

	assert.Equal(t, 16, hi.Bits+lo.Bits)
	assert.Equal(t, 20, hi.Position)
	assert.Equal(t, 0, lo.Position)
	assert.True(t, hi.PCRelative)
	assert.True(t, lo.PCRelative)
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(expressions.Wrap(expressions.VariantKind_Hi, expressions.Symbol("foo")))
	require.True(t, ok)
	assert.Equal(t, Kind_Hi22, kind)

	kind, ok = KindOf(expressions.Wrap(expressions.VariantKind_WDISP30, expressions.Symbol("foo")))
	require.True(t, ok)
	assert.Equal(t, Kind_Call30, kind)

	_, ok = KindOf(expressions.Wrap(expressions.VariantKind_R_DISP32, expressions.Symbol("foo")))
	assert.False(t, ok)

	_, ok = KindOf(expressions.Symbol("foo"))
	assert.False(t, ok)
}

func TestEveryInstructionVariantHasAKind(t *testing.T) {
	for variant := expressions.VariantKind_Lo; variant < expressions.TOTAL_VARIANT_KINDS; variant++ {
		if variant == expressions.VariantKind_R_DISP32 {
			continue
		}

		_, ok := variantKinds[variant]
		assert.True(t, ok, variant.String())
	}
}

func TestFixup(t *testing.T) {
	fixup := New(expressions.Symbol("foo"), Kind_Br22)
	assert.Equal(t, uint32(0), fixup.Offset)

	shifted := fixup.Shifted(8)
	assert.Equal(t, uint32(8), shifted.Offset)
	assert.Equal(t, uint32(0), fixup.Offset)
	assert.Equal(t, "fixup_sparc_br22 @8: foo", shifted.String())
}
