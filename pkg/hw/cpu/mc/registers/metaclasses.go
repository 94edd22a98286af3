package registers

// Register metaclass for all 32 bit integer registers
var IntRegs *RegisterMetaClass = MakeRegisterMetaClass("IntRegs", []RegisterClass{
	RegisterClass_Global,
	RegisterClass_Out,
	RegisterClass_Local,
	RegisterClass_In,
})
