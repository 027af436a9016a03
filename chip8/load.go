package chip8

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

/// Load copies a program image into memory at ProgramAddress. The image
/// also replaces the pristine copy that Reset restores.
///
func (vm *CHIP_8) Load(program []byte) error {
	if len(program) > MaxImageSize {
		return fmt.Errorf("%w: %d bytes, at most %d fit", ErrImageTooLarge, len(program), MaxImageSize)
	}

	// drop whatever was loaded before
	for i := ProgramAddress; i < MemorySize; i++ {
		vm.ROM[i] = 0
	}

	copy(vm.ROM[ProgramAddress:], program)
	copy(vm.Memory[ProgramAddress:], vm.ROM[ProgramAddress:])

	return nil
}

/// LoadROM returns a new CHIP-8 virtual machine running program.
///
func LoadROM(program []byte, opts ...Option) (*CHIP_8, error) {
	vm := New(opts...)

	if err := vm.Load(program); err != nil {
		return nil, err
	}

	return vm, nil
}

/// LoadFile reads a ROM file and returns a new CHIP-8 virtual machine.
/// Files ending in SourceExt are assembled first.
///
func LoadFile(file string, opts ...Option) (*CHIP_8, error) {
	program, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(err, "reading rom")
	}

	if strings.EqualFold(filepath.Ext(file), SourceExt) {
		if program, err = Assemble(program); err != nil {
			return nil, errors.Wrapf(err, "assembling %s", file)
		}
	}

	vm, err := LoadROM(program, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", file)
	}

	return vm, nil
}
