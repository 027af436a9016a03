package chip8

import "fmt"

/// operands is the operand layout of an instruction.
///
type operands int

const (
	opNone operands = iota
	opAddr
	opIAddr
	opV0Addr
	opX
	opXKK
	opXY
	opXYN
	opXDT
	opXK
	opDTX
	opSTX
	opIX
	opFX
	opBX
	opSaveX
	opLoadX
)

/// format the operands of op.
///
func (o operands) format(op opcode) string {
	switch o {
	case opAddr:
		return fmt.Sprintf("#%04X", op.nnn())
	case opIAddr:
		return fmt.Sprintf("I, #%04X", op.nnn())
	case opV0Addr:
		return fmt.Sprintf("V0, #%04X", op.nnn())
	case opX:
		return fmt.Sprintf("V%X", op.x())
	case opXKK:
		return fmt.Sprintf("V%X, #%02X", op.x(), op.kk())
	case opXY:
		return fmt.Sprintf("V%X, V%X", op.x(), op.y())
	case opXYN:
		return fmt.Sprintf("V%X, V%X, %d", op.x(), op.y(), op.n())
	case opXDT:
		return fmt.Sprintf("V%X, DT", op.x())
	case opXK:
		return fmt.Sprintf("V%X, K", op.x())
	case opDTX:
		return fmt.Sprintf("DT, V%X", op.x())
	case opSTX:
		return fmt.Sprintf("ST, V%X", op.x())
	case opIX:
		return fmt.Sprintf("I, V%X", op.x())
	case opFX:
		return fmt.Sprintf("F, V%X", op.x())
	case opBX:
		return fmt.Sprintf("B, V%X", op.x())
	case opSaveX:
		return fmt.Sprintf("[I], V%X", op.x())
	case opLoadX:
		return fmt.Sprintf("V%X, [I]", op.x())
	}

	return ""
}

/// Mnemonic returns the assembly text for a single instruction word,
/// or "??" if it is not a CHIP-8 instruction.
///
func Mnemonic(inst uint16) string {
	i, ok := decode(inst)
	if !ok {
		return "??"
	}

	if i.operands == opNone {
		return i.name
	}

	return fmt.Sprintf("%-6s %s", i.name, i.operands.format(opcode(inst)))
}

/// Disassemble the CHIP-8 instruction at address.
///
func (vm *CHIP_8) Disassemble(address uint16) string {
	inst := uint16(vm.peek(address))<<8 | uint16(vm.peek(address+1))

	return fmt.Sprintf("%04X - %s", address&addressMask, Mnemonic(inst))
}
