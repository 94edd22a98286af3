package mc

import (
	"fmt"
	"strings"

	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/fixups"
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/instructions"
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/registers"
)

// Contains implementation information about the machine code
type MachineCodeDescriptor struct {
	// Information about instruction opcodes
	OpCodes *instructions.OpCodesDescriptor
	// Information about machine instructions
	Instructions *instructions.InstructionsDescriptor
	// Information about machine registers classes
	RegisterClasses *registers.RegisterClassesDescriptor
	// Information of machine register meta classes
	RegisterMetaClasses []*registers.RegisterMetaClass
	// Relocation kinds the emitter can request
	FixupKinds []fixups.Kind
	// Subtarget features instructions may require
	Features []instructions.Features
}

// Dumps all the MC description as one big multiline string
func (d *MachineCodeDescriptor) Documentation(leftpad int) string {
	leftpad_str := strings.Repeat(" ", leftpad)

	var builder strings.Builder

	builder.WriteString(leftpad_str)
	builder.WriteString(fmt.Sprintf("total supported opcodes: %v\n", d.OpCodes.TotalOpCodes()))
	builder.WriteString(leftpad_str)
	builder.WriteString(fmt.Sprintf("total implemented instructions: %v\n", len(d.Instructions.AllInstructions())))
	builder.WriteString(leftpad_str)
	builder.WriteString(fmt.Sprintf("instruction encoding lengh (bits): %v\n", d.Instructions.InstructionBits()))
	builder.WriteString(leftpad_str)
	builder.WriteString(fmt.Sprintf("total fixup kinds: %v\n\n", len(d.FixupKinds)))

	builder.WriteString(leftpad_str)
	builder.WriteString("Opcodes:\n\n")

	for _, opCode := range d.OpCodes.AllOpCodes() {
		builder.WriteString(fmt.Sprintf(" - %v%v\n", leftpad_str, opCode))
	}

	builder.WriteString("\n")
	builder.WriteString(leftpad_str)
	builder.WriteString("Features:\n\n")

	for _, feature := range d.Features {
		builder.WriteString(fmt.Sprintf(" - %v%v\n", leftpad_str, feature))
	}

	builder.WriteString("\n")
	builder.WriteString(leftpad_str)
	builder.WriteString("Registers:\n\n")

	for _, class := range d.RegisterClasses.AllClasses() {
		builder.WriteString(fmt.Sprintf(" - %v%v (%v):", leftpad_str, class.Class, class.Description))

		for _, register := range class.AllRegisters() {
			builder.WriteString(" ")
			builder.WriteString(register.String())
		}

		builder.WriteString("\n")
	}

	builder.WriteString("\n")
	builder.WriteString(leftpad_str)
	builder.WriteString("Fixup kinds:\n\n")

	for _, kind := range d.FixupKinds {
		info, err := fixups.Info(kind)
		if err != nil {
			panic(err)
		}

		pcrel := ""
		if info.PCRelative {
			pcrel = ", pc relative"
		}

		builder.WriteString(fmt.Sprintf(" - %v%v [bits %v:%v%v]\n", leftpad_str, info.Name, info.Position, info.Bits, pcrel))
	}

	builder.WriteString("\n")
	builder.WriteString(leftpad_str)
	builder.WriteString("Instructions:\n\n")

	for _, instruction := range d.Instructions.AllInstructions() {
		builder.WriteString(instruction.Documentation(leftpad + 2))
		builder.WriteString("\n\n")
	}

	return builder.String()
}

// Like Documentation(), but with zero leftpad
func (d *MachineCodeDescriptor) DocString() string {
	return d.Documentation(0)
}

func makeMachineCodeDescriptor() MachineCodeDescriptor {
	return MachineCodeDescriptor{
		OpCodes:             &instructions.Opcodes,
		Instructions:        &instructions.Instructions,
		RegisterClasses:     &registers.RegisterClasses,
		RegisterMetaClasses: registers.RegisterMetaClasses,
		FixupKinds:          fixups.AllKinds(),
		Features:            instructions.AllFeatures(),
	}
}

// Contains implementation information about the machine code
var Descriptor MachineCodeDescriptor = makeMachineCodeDescriptor()
