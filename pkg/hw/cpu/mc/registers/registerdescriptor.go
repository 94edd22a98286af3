package registers

import (
	"github.com/Manu343726/sparcmc/pkg/utils"
)

type RegisterDescriptor struct {
	// Register class
	Class *RegisterClassDescriptor

	// Index within the register class
	Index int

	// Custom name for the register instead of the default RegisterNamePrefix + Index name
	CustomName string

	// Register description (for documentation/debugging)
	Description string
}

// Returns the register name, without the assembly % prefix
func (d *RegisterDescriptor) Name() string {
	if len(d.CustomName) > 0 {
		return d.CustomName
	} else {
		return d.Class.DefaultRegisterName(d.Index)
	}
}

// Returns the register as written in assembly, e.g. %o6
func (d *RegisterDescriptor) String() string {
	return "%" + d.Name()
}

// Returns the hardware encoding of the register, that is, the value written
// into rd/rs1/rs2 instruction fields
func (d *RegisterDescriptor) Encode() uint64 {
	var result uint64 = 0
	view := utils.CreateBitView(&result)
	classBits := RegisterClasses.RegisterClassBits()
	totalBits := RegisterClasses.RegisterBits()
	registerIndexBits := totalBits - classBits

	view.Write(uint64(d.Index), 0, registerIndexBits)
	view.Write(d.Class.Encode(), registerIndexBits, classBits)

	return result
}

// Creates multiple consecutive indexed registers
func MakeRegisters(count int) []*RegisterDescriptor {
	return utils.Iota(count, func(i int) *RegisterDescriptor {
		return &RegisterDescriptor{
			Index: i,
		}
	})
}
