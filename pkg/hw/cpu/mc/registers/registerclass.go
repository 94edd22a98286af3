package registers

// Identifies one of the SPARC integer register windows slices
type RegisterClass uint

const (
	// Global registers %g0-%g7
	RegisterClass_Global RegisterClass = iota

	// Out registers %o0-%o7
	RegisterClass_Out

	// Local registers %l0-%l7
	RegisterClass_Local

	// In registers %i0-%i7
	RegisterClass_In

	// Number of register classes
	TOTAL_REGISTER_CLASSES
)

func (rc RegisterClass) String() string {
	switch rc {
	case RegisterClass_Global:
		return "global registers"
	case RegisterClass_Out:
		return "out registers"
	case RegisterClass_Local:
		return "local registers"
	case RegisterClass_In:
		return "in registers"
	}

	panic("unreachable")
}
