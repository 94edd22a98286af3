package registers

import (
	"fmt"

	"github.com/Manu343726/sparcmc/pkg/utils"
)

// Represents a set of register classes accepted by an instruction operand
type RegisterMetaClass struct {
	classes map[RegisterClass]*RegisterClassDescriptor
	Name    string
}

func (mc *RegisterMetaClass) String() string {
	return fmt.Sprintf("<%v>", mc.Name)
}

// Returns the descriptor for the given register class in the metaclass
func (mc *RegisterMetaClass) Class(class RegisterClass) (*RegisterClassDescriptor, error) {
	if descriptor, hasClass := mc.classes[class]; hasClass {
		return descriptor, nil
	} else {
		return nil, utils.MakeError(ErrWrongRegisterClass, "'%v' is not part of this %v register metaclass", class, mc)
	}
}

// Checks if a given register belong to any of the register classes of this metaclass. If not returns a detailed error
func (mc *RegisterMetaClass) RegisterBelongsToClass(register *RegisterDescriptor) error {
	if _, err := mc.Class(register.Class.Class); err == nil {
		return nil
	} else {
		return utils.MakeError(ErrWrongRegisterClass, "expected a %v register, '%v' is one of the %v", mc, register, register.Class.Class)
	}
}

// Returns all registers classes in the metaclass, sorted by class
func (mc *RegisterMetaClass) AllClasses() []*RegisterClassDescriptor {
	return utils.Map(utils.SortedKeys(mc.classes), func(class RegisterClass) *RegisterClassDescriptor { return mc.classes[class] })
}

// Returns a metaclass of all the given register classes
func MakeRegisterMetaClass(name string, classes []RegisterClass) *RegisterMetaClass {
	if len(classes) <= 0 {
		panic("register metaclass cannot be empty")
	}

	return &RegisterMetaClass{
		classes: utils.GenMap(utils.Map(classes, RegisterClasses.Class), func(class *RegisterClassDescriptor) RegisterClass { return class.Class }),
		Name:    name,
	}
}
