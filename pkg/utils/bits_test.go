package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllOnes(t *testing.T) {
	assert.Equal(t, uint32(0), AllOnes[uint32](0))
	assert.Equal(t, uint32(0x1f), AllOnes[uint32](5))
	assert.Equal(t, uint32(0xffffffff), AllOnes[uint32](32))
	assert.Equal(t, uint64(0xffffffffffffffff), AllOnes[uint64](64))
	assert.Equal(t, uint8(0xff), AllOnes[uint8](12))
}

func TestSizeofBits(t *testing.T) {
	assert.Equal(t, 32, SizeofBits[uint32]())
	assert.Equal(t, 8, Sizeof[uint64]())
	assert.Equal(t, 16, Bits(2))
}

func TestBitView(t *testing.T) {
	var word uint32
	view := CreateBitView(&word)

	view.Write(0b10, 30, 2)
	assert.Equal(t, uint32(0x80000000), word)

	// Write ORs, Overwrite replaces
	view.Write(0b01, 30, 2)
	assert.Equal(t, uint32(0b11), view.Read(30, 2))
	view.Overwrite(0b01, 30, 2)
	assert.Equal(t, uint32(0x40000000), word)

	// Bits outside of the field are dropped
	view.Overwrite(0xffff, 0, 4)
	assert.Equal(t, uint32(0x4000000f), word)

	view.ClearBits(0, 2)
	assert.Equal(t, uint32(0x4000000c), word)

	view.SetBit(13)
	assert.True(t, view.IsSet(13))
	view.ClearBit(13)
	assert.False(t, view.IsSet(13))

	view.SetBits(4, 4)
	assert.Equal(t, uint32(0xf), view.Read(4, 4))
	assert.Equal(t, word, view.Value())
	assert.Equal(t, 32, view.SizeofBits())
}
