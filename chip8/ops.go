package chip8

/// Clear the video display memory.
///
func (vm *CHIP_8) cls(op opcode) error {
	for i := range vm.Video {
		vm.Video[i] = 0
	}

	return nil
}

/// call a subroutine at address.
///
func (vm *CHIP_8) call(op opcode) error {
	if vm.SP >= StackDepth {
		return ErrStackOverflow
	}

	// push program counter onto stack
	vm.Stack[vm.SP] = vm.PC
	vm.SP++

	// jump to address
	vm.PC = op.nnn()

	return nil
}

/// return from subroutine.
///
func (vm *CHIP_8) ret(op opcode) error {
	if vm.SP == 0 {
		return ErrStackUnderflow
	}

	// restore program counter
	vm.SP--
	vm.PC = vm.Stack[vm.SP]

	return nil
}

/// jump to address.
///
func (vm *CHIP_8) jump(op opcode) error {
	vm.PC = op.nnn()

	return nil
}

/// jump to address + v0.
///
func (vm *CHIP_8) jumpV0(op opcode) error {
	vm.PC = (op.nnn() + uint16(vm.V[0])) & addressMask

	return nil
}

/// skip the next instruction.
///
func (vm *CHIP_8) skip() {
	vm.PC = (vm.PC + 2) & addressMask
}

/// skip next instruction if vx == n.
///
func (vm *CHIP_8) skipIf(op opcode) error {
	if vm.V[op.x()] == op.kk() {
		vm.skip()
	}

	return nil
}

/// skip next instruction if vx != n.
///
func (vm *CHIP_8) skipIfNot(op opcode) error {
	if vm.V[op.x()] != op.kk() {
		vm.skip()
	}

	return nil
}

/// skip next instruction if vx == vy.
///
func (vm *CHIP_8) skipIfXY(op opcode) error {
	if vm.V[op.x()] == vm.V[op.y()] {
		vm.skip()
	}

	return nil
}

/// skip next instruction if vx != vy.
///
func (vm *CHIP_8) skipIfNotXY(op opcode) error {
	if vm.V[op.x()] != vm.V[op.y()] {
		vm.skip()
	}

	return nil
}

/// skip next instruction if key(vx) is pressed.
///
func (vm *CHIP_8) skipIfPressed(op opcode) error {
	if vm.Keys[vm.V[op.x()]&0xF] {
		vm.skip()
	}

	return nil
}

/// skip next instruction if key(vx) is not pressed.
///
func (vm *CHIP_8) skipIfNotPressed(op opcode) error {
	if !vm.Keys[vm.V[op.x()]&0xF] {
		vm.skip()
	}

	return nil
}

/// load n into vx.
///
func (vm *CHIP_8) loadX(op opcode) error {
	vm.V[op.x()] = op.kk()

	return nil
}

/// load y into vx.
///
func (vm *CHIP_8) loadXY(op opcode) error {
	vm.V[op.x()] = vm.V[op.y()]

	return nil
}

/// load delay timer into vx.
///
func (vm *CHIP_8) loadXDT(op opcode) error {
	vm.V[op.x()] = vm.DT

	return nil
}

/// load vx into delay timer.
///
func (vm *CHIP_8) loadDTX(op opcode) error {
	vm.DT = vm.V[op.x()]

	return nil
}

/// load vx into sound timer.
///
func (vm *CHIP_8) loadSTX(op opcode) error {
	vm.ST = vm.V[op.x()]

	return nil
}

/// load vx with next key hit. There is no blocking: with no key down the
/// program counter is wound back so the same instruction runs again on
/// the next step.
///
func (vm *CHIP_8) loadXK(op opcode) error {
	for key, down := range vm.Keys {
		if down {
			vm.V[op.x()] = byte(key)
			return nil
		}
	}

	vm.PC = (vm.PC - 2) & addressMask
	vm.Waiting = true

	return nil
}

/// load address register.
///
func (vm *CHIP_8) loadI(op opcode) error {
	vm.I = op.nnn()

	return nil
}

/// load address with BCD of vx.
///
func (vm *CHIP_8) loadB(op opcode) error {
	n := vm.V[op.x()]

	vm.poke(vm.I+0, n/100)
	vm.poke(vm.I+1, n/10%10)
	vm.poke(vm.I+2, n%10)

	return nil
}

/// load font sprite for vx into I.
///
func (vm *CHIP_8) loadF(op opcode) error {
	vm.I = FontAddress + uint16(vm.V[op.x()])*5

	return nil
}

/// or vx with vy into vx.
///
func (vm *CHIP_8) or(op opcode) error {
	vm.V[op.x()] |= vm.V[op.y()]

	return nil
}

/// and vx with vy into vx.
///
func (vm *CHIP_8) and(op opcode) error {
	vm.V[op.x()] &= vm.V[op.y()]

	return nil
}

/// xor vx with vy into vx.
///
func (vm *CHIP_8) xor(op opcode) error {
	vm.V[op.x()] ^= vm.V[op.y()]

	return nil
}

/// shl vx 1 bit, set carry to MSB of vx before shift. vy is ignored.
/// The flag is set first, so a shifted VF keeps the result.
///
func (vm *CHIP_8) shl(op opcode) error {
	x := op.x()
	c := vm.V[x] >> 7

	vm.V[0xF] = c
	vm.V[x] <<= 1

	return nil
}

/// shr vx 1 bit, set carry to LSB of vx before shift. vy is ignored.
///
func (vm *CHIP_8) shr(op opcode) error {
	x := op.x()
	c := vm.V[x] & 1

	vm.V[0xF] = c
	vm.V[x] >>= 1

	return nil
}

/// add n to vx. The carry flag is untouched.
///
func (vm *CHIP_8) addX(op opcode) error {
	vm.V[op.x()] += op.kk()

	return nil
}

/// add vy to vx and set carry.
///
func (vm *CHIP_8) addXY(op opcode) error {
	x := op.x()
	sum := uint(vm.V[x]) + uint(vm.V[op.y()])

	vm.V[0xF] = flag(sum > 0xFF)
	vm.V[x] = byte(sum)

	return nil
}

/// add vx to i.
///
func (vm *CHIP_8) addIX(op opcode) error {
	vm.I += uint16(vm.V[op.x()])

	return nil
}

/// subtract vy from vx, set carry if no borrow.
///
func (vm *CHIP_8) subXY(op opcode) error {
	x, y := op.x(), op.y()
	c := flag(vm.V[x] >= vm.V[y])

	d := vm.V[x] - vm.V[y]

	vm.V[0xF] = c
	vm.V[x] = d

	return nil
}

/// subtract vx from vy and store in vx, set carry if no borrow.
///
func (vm *CHIP_8) subYX(op opcode) error {
	x, y := op.x(), op.y()
	c := flag(vm.V[y] >= vm.V[x])

	d := vm.V[y] - vm.V[x]

	vm.V[0xF] = c
	vm.V[x] = d

	return nil
}

/// load a random number & n into vx.
///
func (vm *CHIP_8) rnd(op opcode) error {
	vm.V[op.x()] = byte(vm.rng.Intn(0x100)) & op.kk()

	return nil
}

/// draw a sprite at I to video memory at vx, vy. Pixels that fall off
/// an edge wrap around to the other side.
///
func (vm *CHIP_8) drw(op opcode) error {
	x := int(vm.V[op.x()])
	y := int(vm.V[op.y()])

	// collision flag
	vm.V[0xF] = 0

	// draw each row of the sprite
	for row := 0; row < int(op.n()); row++ {
		s := vm.peek(vm.I + uint16(row))

		for col := 0; col < 8; col++ {
			if s&(0x80>>uint(col)) == 0 {
				continue
			}

			// was a lit pixel turned off?
			if vm.togglePixel(x+col, y+row) {
				vm.V[0xF] = 1
			}
		}
	}

	return nil
}

/// save registers v0..vx to I.
///
func (vm *CHIP_8) saveRegs(op opcode) error {
	for i := uint(0); i <= op.x(); i++ {
		vm.poke(vm.I+uint16(i), vm.V[i])
	}

	return nil
}

/// load registers v0..vx from I.
///
func (vm *CHIP_8) loadRegs(op opcode) error {
	for i := uint(0); i <= op.x(); i++ {
		vm.V[i] = vm.peek(vm.I + uint16(i))
	}

	return nil
}

// 1 if set, 0 if not
func flag(set bool) byte {
	if set {
		return 1
	}

	return 0
}
