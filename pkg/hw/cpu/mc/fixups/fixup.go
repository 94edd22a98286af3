package fixups

import (
	"fmt"

	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/expressions"
)

// Deferred relocation request recorded while encoding an instruction whose
// operand value is not known yet
type Fixup struct {
	// Byte offset of the patched instruction within the emitted stream. The
	// emitter always records 0, the caller assigns the final offset
	Offset uint32
	// Expression whose value must be patched in
	Value expressions.Expression
	// How the value is computed and where it is patched
	Kind Kind
}

// Creates a fixup at offset 0
func New(value expressions.Expression, kind Kind) Fixup {
	return Fixup{
		Offset: 0,
		Value:  value,
		Kind:   kind,
	}
}

// Returns a copy of the fixup moved by the given number of bytes
func (f Fixup) Shifted(bytes uint32) Fixup {
	f.Offset += bytes
	return f
}

func (f Fixup) String() string {
	return fmt.Sprintf("%v @%v: %v", f.Kind, f.Offset, f.Value)
}
