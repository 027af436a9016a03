package chip8

/// opcode is a fetched 16-bit instruction word.
///
type opcode uint16

// x register operand
func (op opcode) x() uint {
	return uint(op>>8) & 0xF
}

// y register operand
func (op opcode) y() uint {
	return uint(op>>4) & 0xF
}

// nibble operand
func (op opcode) n() byte {
	return byte(op & 0xF)
}

// byte operand
func (op opcode) kk() byte {
	return byte(op & 0xFF)
}

// 12-bit address operand
func (op opcode) nnn() uint16 {
	return uint16(op & 0xFFF)
}

/// instruction is one entry of the decode tables.
///
type instruction struct {
	/// mnemonic and operand layout, used by Mnemonic
	///
	name     string
	operands operands

	/// exec performs the instruction. The program counter has already
	/// been advanced past it.
	///
	exec func(vm *CHIP_8, op opcode) error
}

/// subtable dispatches a class on the bits in mask.
///
type subtable struct {
	mask  uint16
	table map[uint16]*instruction
}

var (
	/// classes that decode on the high nibble alone.
	///
	primary = [16]*instruction{
		0x1: {"JP", opAddr, (*CHIP_8).jump},
		0x2: {"CALL", opAddr, (*CHIP_8).call},
		0x3: {"SE", opXKK, (*CHIP_8).skipIf},
		0x4: {"SNE", opXKK, (*CHIP_8).skipIfNot},
		0x5: {"SE", opXY, (*CHIP_8).skipIfXY},
		0x6: {"LD", opXKK, (*CHIP_8).loadX},
		0x7: {"ADD", opXKK, (*CHIP_8).addX},
		0xA: {"LD", opIAddr, (*CHIP_8).loadI},
		0xB: {"JP", opV0Addr, (*CHIP_8).jumpV0},
		0xC: {"RND", opXKK, (*CHIP_8).rnd},
		0xD: {"DRW", opXYN, (*CHIP_8).drw},
	}

	/// classes that need a second look at the low bits.
	///
	secondary = [16]*subtable{
		0x0: {mask: 0x00FF, table: map[uint16]*instruction{
			0xE0: {"CLS", opNone, (*CHIP_8).cls},
			0xEE: {"RET", opNone, (*CHIP_8).ret},
		}},
		0x8: {mask: 0x000F, table: map[uint16]*instruction{
			0x0: {"LD", opXY, (*CHIP_8).loadXY},
			0x1: {"OR", opXY, (*CHIP_8).or},
			0x2: {"AND", opXY, (*CHIP_8).and},
			0x3: {"XOR", opXY, (*CHIP_8).xor},
			0x4: {"ADD", opXY, (*CHIP_8).addXY},
			0x5: {"SUB", opXY, (*CHIP_8).subXY},
			0x6: {"SHR", opX, (*CHIP_8).shr},
			0x7: {"SUBN", opXY, (*CHIP_8).subYX},
			0xE: {"SHL", opX, (*CHIP_8).shl},
		}},
		0x9: {mask: 0x000F, table: map[uint16]*instruction{
			0x0: {"SNE", opXY, (*CHIP_8).skipIfNotXY},
		}},
		0xE: {mask: 0x00FF, table: map[uint16]*instruction{
			0x9E: {"SKP", opX, (*CHIP_8).skipIfPressed},
			0xA1: {"SKNP", opX, (*CHIP_8).skipIfNotPressed},
		}},
		0xF: {mask: 0x00FF, table: map[uint16]*instruction{
			0x07: {"LD", opXDT, (*CHIP_8).loadXDT},
			0x0A: {"LD", opXK, (*CHIP_8).loadXK},
			0x15: {"LD", opDTX, (*CHIP_8).loadDTX},
			0x18: {"LD", opSTX, (*CHIP_8).loadSTX},
			0x1E: {"ADD", opIX, (*CHIP_8).addIX},
			0x29: {"LD", opFX, (*CHIP_8).loadF},
			0x33: {"LD", opBX, (*CHIP_8).loadB},
			0x55: {"LD", opSaveX, (*CHIP_8).saveRegs},
			0x65: {"LD", opLoadX, (*CHIP_8).loadRegs},
		}},
	}
)

/// decode looks up the instruction for a word. Returns false if the
/// word is not a CHIP-8 instruction.
///
func decode(inst uint16) (*instruction, bool) {
	class := inst >> 12

	if i := primary[class]; i != nil {
		return i, true
	}

	if sub := secondary[class]; sub != nil {
		i, ok := sub.table[inst&sub.mask]
		return i, ok
	}

	return nil, false
}

/// Step the CHIP-8 virtual machine a single instruction. The program
/// counter is always advanced past the instruction word, even when a
/// *Fault is returned, so a host may choose to keep stepping.
///
func (vm *CHIP_8) Step() error {
	pc := vm.PC

	// fetch the next instruction
	inst := vm.fetch()

	i, ok := decode(inst)
	if !ok {
		return &Fault{PC: pc, Opcode: inst, Err: ErrUnknownOpcode}
	}

	vm.Waiting = false

	if err := i.exec(vm, opcode(inst)); err != nil {
		return &Fault{PC: pc, Opcode: inst, Err: err}
	}

	return nil
}

/// Fetch the next 16-bit instruction to execute.
///
func (vm *CHIP_8) fetch() uint16 {
	i := vm.PC

	// advance the program counter
	vm.PC = (vm.PC + 2) & addressMask

	// return the 16-bit instruction, high byte first
	return uint16(vm.peek(i))<<8 | uint16(vm.peek(i+1))
}
