package mc

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/instructions"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEndianness(t *testing.T) {
	order, err := parseEndianness("Little")
	require.NoError(t, err)
	assert.Equal(t, binary.LittleEndian, order)

	order, err = parseEndianness("be")
	require.NoError(t, err)
	assert.Equal(t, binary.BigEndian, order)

	_, err = parseEndianness("middle")
	assert.ErrorIs(t, err, ErrInvalidEndianness)
}

func TestNewEmitter(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Set("endianness", "little")
	viper.Set("pic", true)
	viper.Set("strict", true)
	viper.Set("features", []string{"v9", "compactimm"})

	e, features, err := newEmitter()
	require.NoError(t, err)
	assert.Equal(t, binary.LittleEndian, e.Config().ByteOrder)
	assert.True(t, e.Config().PositionIndependent)
	assert.True(t, e.Config().Strict)
	assert.Equal(t, instructions.Feature_V9|instructions.Feature_CompactImm, features)

	viper.Set("features", []string{"sse"})
	_, _, err = newEmitter()
	assert.ErrorIs(t, err, instructions.ErrUnknownFeature)

	// Environment variables carry feature lists as a single string
	viper.Reset()
	viper.Set("endianness", "big")
	t.Setenv("SPARCMC_FEATURES", "v9,64bit")

	viper.SetEnvPrefix("SPARCMC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	_, features, err = newEmitter()
	require.NoError(t, err)
	assert.Equal(t, instructions.Feature_V9|instructions.Feature_Is64Bit, features)

	t.Setenv("SPARCMC_FEATURES", "v9 compactimm")
	_, features, err = newEmitter()
	require.NoError(t, err)
	assert.Equal(t, instructions.Feature_V9|instructions.Feature_CompactImm, features)
}

func TestOutputFormat(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Set("format", "YAML")
	format, err := outputFormat()
	require.NoError(t, err)
	assert.Equal(t, "yaml", format)

	viper.Set("format", "xml")
	_, err = outputFormat()
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestCompactEntries(t *testing.T) {
	entries, err := compactEntries(imm5Codec, []string{"0", "0x41", "11", "300"})
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, "0b00001", entries[0].Code)
	assert.Equal(t, int64(65), *entries[1].Decoded)
	assert.Contains(t, entries[2].Error, "not representable")
	assert.Contains(t, entries[3].Error, "out of range")

	all, err := compactEntries(simm5Codec, nil)
	require.NoError(t, err)
	assert.Len(t, all, 28)

	_, err = compactEntries(imm5Codec, []string{"two"})
	assert.Error(t, err)
}
