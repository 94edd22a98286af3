package registers

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/Manu343726/sparcmc/pkg/utils"
)

type RegisterClassesDescriptor struct {
	classes map[RegisterClass]*RegisterClassDescriptor
	aliases map[string]string
}

// Returns the descriptor of a register class
func (d *RegisterClassesDescriptor) Class(rc RegisterClass) *RegisterClassDescriptor {
	return d.classes[rc]
}

// Returns all the register classes, sorted by class
func (d *RegisterClassesDescriptor) AllClasses() []*RegisterClassDescriptor {
	return utils.Map(utils.SortedKeys(d.classes), d.Class)
}

// Returns the minimal number of bits required to encode all register classes
func (d *RegisterClassesDescriptor) RegisterClassBits() int {
	return bits.Len(uint(len(d.classes) - 1))
}

// Returns the minimal number of bits required to univocally encode a register
func (d *RegisterClassesDescriptor) RegisterBits() int {
	return d.RegisterClassBits() + utils.Max(utils.Map(d.AllClasses(), (*RegisterClassDescriptor).RegisterBits))
}

var ErrInvalidRegisterClass = errors.New("invalid register class")

// Returns a register class given its binary representation
func (d *RegisterClassesDescriptor) Decode(classBinaryRepresentation uint64) (*RegisterClassDescriptor, error) {
	class := RegisterClass(classBinaryRepresentation)

	if class < TOTAL_REGISTER_CLASSES {
		return d.Class(class), nil
	} else {
		return nil, utils.MakeError(ErrInvalidRegisterClass, "%v (binary: %v) is not a valid register class",
			classBinaryRepresentation,
			utils.FormatUintBinary(classBinaryRepresentation, d.RegisterClassBits()))
	}
}

// Returns a register given its class and index. Equivalent to Class(class).Register(index)
func (d *RegisterClassesDescriptor) Register(class RegisterClass, index int) (*RegisterDescriptor, error) {
	return d.Class(class).Register(index)
}

// Returns a register given its name. The assembly '%' prefix and the
// conventional aliases (sp, fp) are accepted
func (d *RegisterClassesDescriptor) RegisterByName(name string) (*RegisterDescriptor, error) {
	name = strings.ToLower(strings.TrimPrefix(name, "%"))

	if aliased, isAlias := d.aliases[name]; isAlias {
		name = aliased
	}

	for _, class := range d.AllClasses() {
		for _, register := range class.AllRegisters() {
			if register.Name() == name {
				return register, nil
			}
		}

		if registerIndexStr, hasPrefix := strings.CutPrefix(name, class.RegisterNamePrefix); hasPrefix {
			registerIndex, err := strconv.Atoi(registerIndexStr)

			if err == nil {
				return class.Register(registerIndex)
			}
		}
	}

	return nil, utils.MakeError(ErrUnknownRegister, "'%v'", name)
}

// Returns a register given its binary representation
func (d *RegisterClassesDescriptor) DecodeRegister(binaryRepresentation uint64) (*RegisterDescriptor, error) {
	view := utils.CreateBitView(&binaryRepresentation)
	classBits := d.RegisterClassBits()
	totalBits := d.RegisterBits()
	registerIndexBits := totalBits - classBits

	if binaryRepresentation>>totalBits != 0 {
		return nil, utils.MakeError(ErrUnknownRegister, "encoding %v does not fit in %v bits", binaryRepresentation, totalBits)
	}

	class, err := d.Decode(view.Read(registerIndexBits, classBits))

	if err != nil {
		return nil, err
	}

	index := int(view.Read(0, registerIndexBits))

	return class.Register(index)
}

// Returns the register encoding value of a register, i.e. the value the
// register takes once placed into an instruction operand field
func (d *RegisterClassesDescriptor) EncodingValue(register *RegisterDescriptor) (uint64, error) {
	if register == nil || register.Class == nil {
		return 0, utils.MakeError(ErrUnknownRegister, "register has no class")
	}

	if d.Class(register.Class.Class) != register.Class {
		return 0, utils.MakeError(ErrWrongRegisterClass, "register %v is not part of this register file", register)
	}

	return register.Encode(), nil
}

// Initializes a register classes descriptor with all the given register class descriptors
func NewRegisterClassesDescriptor(classes []*RegisterClassDescriptor, aliases map[string]string) RegisterClassesDescriptor {
	classMap := utils.GenMap(classes, func(class *RegisterClassDescriptor) RegisterClass {
		return class.Class
	})

	for _, class := range utils.Iota(int(TOTAL_REGISTER_CLASSES), func(i int) RegisterClass { return RegisterClass(i) }) {
		if descriptor, hasClass := classMap[class]; !hasClass {
			panic(fmt.Sprintf("missing entry for register class '%v' in registers classes descriptor. Make sure you've added an entry for all register classes in the NewRegisterClassesDescriptor() call", class))
		} else {
			// Make sure all registers in the class have the right class
			for _, register := range descriptor.registers {
				register.Class = descriptor
			}
		}
	}

	return RegisterClassesDescriptor{
		classes: classMap,
		aliases: aliases,
	}
}
