package chip8

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrogolib/assert"
)

func TestStepScenario(t *testing.T) {
	vm := newVM(t, 0x6A05, 0x7A03)
	run(t, vm, 2)

	assert.Equal(t, byte(8), vm.V[0xA])
	assert.Equal(t, uint16(516), vm.PC)
}

func TestStepUnknownOpcode(t *testing.T) {
	unknown := []uint16{
		0x0000, 0x0123, 0x00E1, 0x00FF, 0x0FFF,
		0x8008, 0x800D, 0x800F,
		0x9001, 0x900F,
		0xE000, 0xE09F, 0xE0A2,
		0xF000, 0xF0FF, 0xF056, 0xF066,
	}

	for _, inst := range unknown {
		t.Run(fmt.Sprintf("%04X", inst), func(t *testing.T) {
			vm := newVM(t, inst)
			vm.V[0xF] = 0x42
			vm.I = 0x300

			before := *vm
			err := vm.Step()

			var fault *Fault
			assert.True(t, errors.As(err, &fault))
			assert.True(t, errors.Is(err, ErrUnknownOpcode))
			assert.Equal(t, uint16(ProgramAddress), fault.PC)
			assert.Equal(t, inst, fault.Opcode)

			// only the program counter moved
			assert.Equal(t, uint16(ProgramAddress+2), vm.PC)
			before.PC = vm.PC
			assert.True(t, cmp.Equal(before.Memory, vm.Memory))
			assert.True(t, cmp.Equal(before.V, vm.V))
			assert.Equal(t, before.I, vm.I)
			assert.Equal(t, before.SP, vm.SP)
			assert.True(t, cmp.Equal(before.Video, vm.Video))
		})
	}
}

func TestStepUnknownOpcodeContinues(t *testing.T) {
	vm := newVM(t, 0xFFFF, 0x6105)

	assert.True(t, errors.Is(vm.Step(), ErrUnknownOpcode))
	assert.NoError(t, vm.Step())
	assert.Equal(t, byte(5), vm.V[1])
}

func TestStepKnownOpcodes(t *testing.T) {
	// every class with a secondary table must stop at the first match
	known := []uint16{
		0x00E0, 0x00EE,
		0x8120, 0x8121, 0x8122, 0x8123, 0x8124, 0x8125, 0x8126, 0x8127, 0x812E,
		0x9120,
		0xE19E, 0xE1A1,
		0xF107, 0xF10A, 0xF115, 0xF118, 0xF11E, 0xF129, 0xF133, 0xF155, 0xF165,
	}

	for _, inst := range known {
		t.Run(fmt.Sprintf("%04X", inst), func(t *testing.T) {
			// 00EE needs something on the stack
			vm := newVM(t, 0x2204, 0x0000, inst)
			vm.PressKey(0)
			run(t, vm, 2)
		})
	}
}

func TestStepSkipAnyLowNibble(t *testing.T) {
	// class 5 only looks at the high nibble
	vm := newVM(t, 0x5127, 0x6001, 0x6002)
	run(t, vm, 2)

	assert.Equal(t, byte(2), vm.V[0])
}

func TestStepFetchWraps(t *testing.T) {
	vm := New(WithSeed(1))
	vm.Memory[0xFFF] = 0x6A
	vm.Memory[0x000] = 0x07
	vm.PC = 0xFFF

	run(t, vm, 1)
	assert.Equal(t, byte(7), vm.V[0xA])
	assert.Equal(t, uint16(0x001), vm.PC)
}

func TestStepCallFault(t *testing.T) {
	vm := newVM(t, 0x00EE)

	err := vm.Step()

	var fault *Fault
	assert.True(t, errors.As(err, &fault))
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, uint16(ProgramAddress), fault.PC)
	assert.Equal(t, uint16(0x00EE), fault.Opcode)
	assert.Equal(t, uint16(ProgramAddress+2), vm.PC)
}

func TestDecodeTables(t *testing.T) {
	defined := 0

	for inst := 0; inst <= 0xFFFF; inst++ {
		if _, ok := decode(uint16(inst)); ok {
			defined++
		}
	}

	// 11 primary classes of 4096 words each, plus the secondary entries
	want := 11*0x1000 + 2*0x10 + 9*0x100 + 1*0x100 + 2*0x10 + 9*0x10
	assert.Equal(t, want, defined)
}
