package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestMnemonic(t *testing.T) {
	tests := []struct {
		inst uint16
		want string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x0123, "??"},
		{0x1ABC, "JP     #0ABC"},
		{0x2300, "CALL   #0300"},
		{0x3A42, "SE     VA, #42"},
		{0x4A42, "SNE    VA, #42"},
		{0x5AB0, "SE     VA, VB"},
		{0x6A05, "LD     VA, #05"},
		{0x7A03, "ADD    VA, #03"},
		{0x8AB0, "LD     VA, VB"},
		{0x8AB1, "OR     VA, VB"},
		{0x8AB2, "AND    VA, VB"},
		{0x8AB3, "XOR    VA, VB"},
		{0x8AB4, "ADD    VA, VB"},
		{0x8AB5, "SUB    VA, VB"},
		{0x8AB6, "SHR    VA"},
		{0x8AB7, "SUBN   VA, VB"},
		{0x8ABE, "SHL    VA"},
		{0x9AB0, "SNE    VA, VB"},
		{0x9AB1, "??"},
		{0xA123, "LD     I, #0123"},
		{0xB123, "JP     V0, #0123"},
		{0xCA0F, "RND    VA, #0F"},
		{0xDAB5, "DRW    VA, VB, 5"},
		{0xEA9E, "SKP    VA"},
		{0xEAA1, "SKNP   VA"},
		{0xFA07, "LD     VA, DT"},
		{0xFA0A, "LD     VA, K"},
		{0xFA15, "LD     DT, VA"},
		{0xFA18, "LD     ST, VA"},
		{0xFA1E, "ADD    I, VA"},
		{0xFA29, "LD     F, VA"},
		{0xFA33, "LD     B, VA"},
		{0xFA55, "LD     [I], VA"},
		{0xFA65, "LD     VA, [I]"},
		{0xFA99, "??"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Mnemonic(tt.inst))
	}
}

func TestDisassemble(t *testing.T) {
	vm := newVM(t, 0x6A05, 0x7A03)

	assert.Equal(t, "0200 - LD     VA, #05", vm.Disassemble(0x200))
	assert.Equal(t, "0202 - ADD    VA, #03", vm.Disassemble(0x202))
	assert.Equal(t, "0204 - ??", vm.Disassemble(0x204))
}
