package main

import (
	"errors"
	"testing"

	"github.com/massung/chip8vm/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// frontend that replays controls and records what it was shown
type fakeFrontend struct {
	controls []control
	keys     []uint

	refreshes int
	beeping   bool
}

func (f *fakeFrontend) Poll(vm *chip8.CHIP_8) control {
	for _, key := range f.keys {
		vm.PressKey(key)
	}

	if len(f.controls) == 0 {
		return ctlNone
	}

	ctl := f.controls[0]
	f.controls = f.controls[1:]
	return ctl
}

func (f *fakeFrontend) Refresh(vm *chip8.CHIP_8) error {
	f.refreshes++
	return nil
}

func (f *fakeFrontend) Beep(on bool) {
	f.beeping = on
}

func (f *fakeFrontend) Close() error {
	return nil
}

func newHost(t *testing.T, policy string, rom ...byte) (*Host, *fakeFrontend) {
	t.Helper()

	vm, err := chip8.LoadROM(rom, chip8.WithSeed(1))
	assert.NoError(t, err)

	fe := &fakeFrontend{}
	return &Host{
		VM:       vm,
		Frontend: fe,
		Logger:   log.NewTestLogger(t),
		Hz:       500,
		OnFault:  policy,
	}, fe
}

func TestHostFaultHalt(t *testing.T) {
	h, _ := newHost(t, faultHalt, 0xFF, 0xFF, 0x61, 0x05)

	assert.NoError(t, h.Step())
	assert.True(t, h.Halted)

	// nothing runs while halted
	assert.NoError(t, h.Step())
	assert.Equal(t, uint16(0x202), h.VM.PC)
	assert.Equal(t, byte(0), h.VM.V[1])
}

func TestHostFaultSkip(t *testing.T) {
	h, _ := newHost(t, faultSkip, 0xFF, 0xFF, 0x61, 0x05)

	assert.NoError(t, h.Step())
	assert.False(t, h.Halted)

	assert.NoError(t, h.Step())
	assert.Equal(t, byte(5), h.VM.V[1])
}

func TestHostFaultExit(t *testing.T) {
	h, _ := newHost(t, faultExit, 0x00, 0xEE)

	err := h.Step()
	assert.True(t, errors.Is(err, chip8.ErrStackUnderflow))
}

func TestHostFrame(t *testing.T) {
	// LD V0, #03; LD ST, V0; JP #0204
	h, fe := newHost(t, faultHalt, 0x60, 0x03, 0xF0, 0x18, 0x12, 0x04)

	for i := 0; i < 3; i++ {
		assert.NoError(t, h.Step())
	}
	assert.Equal(t, byte(3), h.VM.ST)

	quit, err := h.Frame()
	assert.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, byte(2), h.VM.ST)
	assert.True(t, fe.beeping)
	assert.Equal(t, 1, fe.refreshes)

	h.Frame()
	h.Frame()
	assert.Equal(t, byte(0), h.VM.ST)
	assert.False(t, fe.beeping)
}

func TestHostControls(t *testing.T) {
	h, fe := newHost(t, faultHalt, 0x61, 0x05, 0x62, 0x06)
	fe.controls = []control{ctlPause, ctlStep, ctlPause, ctlReset, ctlQuit}

	// pause, then nothing steps until asked to
	_, err := h.Frame()
	assert.NoError(t, err)
	assert.True(t, h.Paused)
	assert.NoError(t, h.Step())
	assert.Equal(t, uint16(0x200), h.VM.PC)

	// single step
	_, err = h.Frame()
	assert.NoError(t, err)
	assert.Equal(t, byte(5), h.VM.V[1])

	// unpause and run
	_, err = h.Frame()
	assert.NoError(t, err)
	assert.False(t, h.Paused)
	assert.NoError(t, h.Step())
	assert.Equal(t, byte(6), h.VM.V[2])

	// reset
	_, err = h.Frame()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x200), h.VM.PC)
	assert.Equal(t, byte(0), h.VM.V[1])

	quit, err := h.Frame()
	assert.NoError(t, err)
	assert.True(t, quit)
}

func TestHostWaitKey(t *testing.T) {
	// LD V3, K
	h, fe := newHost(t, faultHalt, 0xF3, 0x0A)

	assert.NoError(t, h.Step())
	assert.True(t, h.VM.Waiting)

	// the wait is retried on the next frame, after input is read
	fe.keys = []uint{0x9}
	_, err := h.Frame()
	assert.NoError(t, err)
	assert.False(t, h.VM.Waiting)
	assert.Equal(t, byte(9), h.VM.V[3])
	assert.Equal(t, uint16(0x202), h.VM.PC)
}
