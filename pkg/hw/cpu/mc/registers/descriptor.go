package registers

// Contains all the metadata describing the integer register file
var RegisterClasses RegisterClassesDescriptor = NewRegisterClassesDescriptor(
	[]*RegisterClassDescriptor{
		GlobalRegisters(),
		OutRegisters(),
		LocalRegisters(),
		InRegisters(),
	},
	map[string]string{
		"sp": "o6",
		"fp": "i6",
	},
)

// Contains all the different meta-classes of registers, which are used to specify the kind of registers accepted by instruction operands
var RegisterMetaClasses []*RegisterMetaClass = []*RegisterMetaClass{
	IntRegs,
}

// Global registers descriptor. %g0 always reads as zero
func GlobalRegisters() *RegisterClassDescriptor {
	registers := MakeRegisters(8)
	registers[0].Description = "Hardwired zero"

	return NewRegisterClassDescriptor(&RegisterClassDescriptor{
		Class:              RegisterClass_Global,
		Description:        "Global registers, shared by all register windows",
		RegisterNamePrefix: "g",
	}, registers)
}

// Out registers descriptor
func OutRegisters() *RegisterClassDescriptor {
	registers := MakeRegisters(8)
	registers[6].Description = "Stack pointer"
	registers[7].Description = "Address of the CALL instruction"

	return NewRegisterClassDescriptor(&RegisterClassDescriptor{
		Class:              RegisterClass_Out,
		Description:        "Out registers of the current window, become the in registers of the callee",
		RegisterNamePrefix: "o",
	}, registers)
}

// Local registers descriptor
func LocalRegisters() *RegisterClassDescriptor {
	return NewRegisterClassDescriptor(&RegisterClassDescriptor{
		Class:              RegisterClass_Local,
		Description:        "Local registers of the current window",
		RegisterNamePrefix: "l",
	}, MakeRegisters(8))
}

// In registers descriptor
func InRegisters() *RegisterClassDescriptor {
	registers := MakeRegisters(8)
	registers[6].Description = "Frame pointer"
	registers[7].Description = "Return address"

	return NewRegisterClassDescriptor(&RegisterClassDescriptor{
		Class:              RegisterClass_In,
		Description:        "In registers of the current window, the out registers of the caller",
		RegisterNamePrefix: "i",
	}, registers)
}

// Returns a register descriptor by name, panics if no such register exists
func Register(name string) *RegisterDescriptor {
	reg, err := RegisterClasses.RegisterByName(name)

	if err != nil {
		panic(err)
	}

	return reg
}
