package emitter

import "sync/atomic"

var instructionsEmitted atomic.Uint64

// Returns the number of instructions successfully encoded by all the emitters
// of the process
func InstructionsEmitted() uint64 {
	return instructionsEmitted.Load()
}
