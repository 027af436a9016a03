package chip8

import (
	"math/rand"
	"time"
)

const (
	/// MemorySize is the number of addressable bytes.
	///
	MemorySize = 0x1000

	/// ProgramAddress is where program images are loaded and where
	/// execution begins.
	///
	ProgramAddress = 0x200

	/// MaxImageSize is the largest program image that fits in memory.
	///
	MaxImageSize = MemorySize - ProgramAddress

	/// StackDepth is the number of return addresses the stack can hold.
	///
	StackDepth = 16

	// every memory access is wrapped with this
	addressMask = MemorySize - 1
)

/// CHIP_8 virtual machine emulator.
///
type CHIP_8 struct {
	/// ROM is the pristine memory image: the font table and the
	/// loaded program. Reset copies it back into Memory.
	///
	ROM [MemorySize]byte

	/// Memory addressable by CHIP-8. The first 512 bytes are reserved
	/// for the interpreter; the font sprites live at FontAddress.
	///
	Memory [MemorySize]byte

	/// Video memory for CHIP-8 (64x32 bits). Each bit represents a
	/// single pixel. It is stored MSB first. For example, pixel <0,0>
	/// is bit 0x80 of byte 0.
	///
	Video [VideoSize]byte

	/// PC is the program counter. All programs begin at 0x200.
	///
	PC uint16

	/// Stack holds up to 16 return addresses; SP is how many are in use.
	///
	Stack [StackDepth]uint16
	SP    uint

	/// I is the address register.
	///
	I uint16

	/// V are the 16 virtual registers. VF doubles as the carry, borrow
	/// and collision flag.
	///
	V [16]byte

	/// DT and ST are the delay and sound timers. The host decrements
	/// both toward zero at 60 Hz by calling Tick.
	///
	DT byte
	ST byte

	/// Keys hold the current state for the 16-key pad keys. Only the
	/// host writes to them.
	///
	Keys [16]bool

	/// Waiting is true when the last instruction executed was a key
	/// wait (Fx0A) that found no key down.
	///
	Waiting bool

	// random byte source for RND
	rng *rand.Rand
}

/// Option configures a new virtual machine.
///
type Option func(vm *CHIP_8)

/// WithSeed seeds the random number generator, making RND reproducible.
///
func WithSeed(seed int64) Option {
	return WithSource(rand.NewSource(seed))
}

/// WithSource uses src for RND.
///
func WithSource(src rand.Source) Option {
	return func(vm *CHIP_8) {
		vm.rng = rand.New(src)
	}
}

/// New returns a virtual machine with the font table loaded, nothing
/// else in memory and the program counter at ProgramAddress.
///
func New(opts ...Option) *CHIP_8 {
	vm := &CHIP_8{}

	// copy the font sprites into the pristine image
	copy(vm.ROM[FontAddress:], Font[:])

	for _, opt := range opts {
		opt(vm)
	}

	// seed from the clock unless told otherwise
	if vm.rng == nil {
		vm.rng = rand.New(rand.NewSource(time.Now().UTC().UnixNano()))
	}

	vm.Reset()

	return vm
}

/// Reset the CHIP-8 virtual machine memory and registers. The loaded
/// program stays in place.
///
func (vm *CHIP_8) Reset() {
	vm.Memory = vm.ROM

	// reset video memory
	vm.Video = [VideoSize]byte{}

	// reset keys
	vm.Keys = [16]bool{}

	// reset program counter and stack
	vm.PC = ProgramAddress
	vm.Stack = [StackDepth]uint16{}
	vm.SP = 0

	// reset address register
	vm.I = 0

	// reset virtual registers
	vm.V = [16]byte{}

	// reset timer registers
	vm.DT = 0
	vm.ST = 0

	// not waiting for a key
	vm.Waiting = false
}

/// PressKey emulates a CHIP-8 key being pressed.
///
func (vm *CHIP_8) PressKey(key uint) {
	if key < 16 {
		vm.Keys[key] = true
	}
}

/// ReleaseKey emulates a CHIP-8 key being released.
///
func (vm *CHIP_8) ReleaseKey(key uint) {
	if key < 16 {
		vm.Keys[key] = false
	}
}

/// Tick decrements the delay and sound timers. Call it at 60 Hz.
///
func (vm *CHIP_8) Tick() {
	if vm.DT > 0 {
		vm.DT--
	}
	if vm.ST > 0 {
		vm.ST--
	}
}

/// Beeping is true while the sound timer is running.
///
func (vm *CHIP_8) Beeping() bool {
	return vm.ST > 0
}

// read a byte from memory, wrapping the address
func (vm *CHIP_8) peek(address uint16) byte {
	return vm.Memory[address&addressMask]
}

// write a byte to memory, wrapping the address
func (vm *CHIP_8) poke(address uint16, b byte) {
	vm.Memory[address&addressMask] = b
}
