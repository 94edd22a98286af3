package registers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterBits(t *testing.T) {
	assert.Equal(t, 2, RegisterClasses.RegisterClassBits())
	assert.Equal(t, 5, RegisterClasses.RegisterBits())
}

func TestRegisterEncodingMatchesHardwareNumbering(t *testing.T) {
	cases := map[string]uint64{
		"%g0": 0,
		"%g7": 7,
		"%o0": 8,
		"%o6": 14,
		"%l0": 16,
		"%l5": 21,
		"%i0": 24,
		"%i7": 31,
	}

	for name, expected := range cases {
		register, err := RegisterClasses.RegisterByName(name)
		require.NoError(t, err, name)

		encoding, err := RegisterClasses.EncodingValue(register)
		require.NoError(t, err, name)
		assert.Equal(t, expected, encoding, name)
	}
}

func TestRegisterByName_Aliases(t *testing.T) {
	assert.Same(t, Register("o6"), Register("%sp"))
	assert.Same(t, Register("i6"), Register("%fp"))
	assert.Same(t, Register("%g1"), Register("G1"))
}

func TestRegisterByName_Unknown(t *testing.T) {
	for _, name := range []string{"%x1", "%g8", "%o", ""} {
		_, err := RegisterClasses.RegisterByName(name)
		assert.ErrorIs(t, err, ErrUnknownRegister, name)
	}
}

func TestDecodeRegister(t *testing.T) {
	for encoding := uint64(0); encoding < 32; encoding++ {
		register, err := RegisterClasses.DecodeRegister(encoding)
		require.NoError(t, err)
		assert.Equal(t, encoding, register.Encode())
	}

	_, err := RegisterClasses.DecodeRegister(32)
	assert.ErrorIs(t, err, ErrUnknownRegister)
}

func TestRegisterString(t *testing.T) {
	assert.Equal(t, "%o6", Register("sp").String())
	assert.Equal(t, "l3", Register("%l3").Name())
}

func TestEncodingValue_ForeignRegister(t *testing.T) {
	foreign := NewRegisterClassDescriptor(&RegisterClassDescriptor{Class: RegisterClass_Local, RegisterNamePrefix: "x"}, MakeRegisters(1))
	foreign.registers[0].Class = foreign

	_, err := RegisterClasses.EncodingValue(foreign.registers[0])
	assert.ErrorIs(t, err, ErrWrongRegisterClass)

	_, err = RegisterClasses.EncodingValue(&RegisterDescriptor{})
	assert.ErrorIs(t, err, ErrUnknownRegister)
}

func TestRegisterMetaClass(t *testing.T) {
	assert.NoError(t, IntRegs.RegisterBelongsToClass(Register("%i7")))
	assert.Len(t, IntRegs.AllClasses(), int(TOTAL_REGISTER_CLASSES))

	globalsOnly := MakeRegisterMetaClass("Globals", []RegisterClass{RegisterClass_Global})
	assert.ErrorIs(t, globalsOnly.RegisterBelongsToClass(Register("%o1")), ErrWrongRegisterClass)
}
