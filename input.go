package main

import (
	"github.com/massung/chip8vm/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Mapping of modern keyboard to CHIP-8 keys.
	///
	KeyMap = map[sdl.Scancode]uint{
		sdl.SCANCODE_X: 0x0,
		sdl.SCANCODE_1: 0x1,
		sdl.SCANCODE_2: 0x2,
		sdl.SCANCODE_3: 0x3,
		sdl.SCANCODE_Q: 0x4,
		sdl.SCANCODE_W: 0x5,
		sdl.SCANCODE_E: 0x6,
		sdl.SCANCODE_A: 0x7,
		sdl.SCANCODE_S: 0x8,
		sdl.SCANCODE_D: 0x9,
		sdl.SCANCODE_Z: 0xA,
		sdl.SCANCODE_C: 0xB,
		sdl.SCANCODE_4: 0xC,
		sdl.SCANCODE_R: 0xD,
		sdl.SCANCODE_F: 0xE,
		sdl.SCANCODE_V: 0xF,
	}
)

/// Poll events from SDL and map keys to the CHIP-8 VM.
///
func (w *Window) Poll(vm *chip8.CHIP_8) control {
	ctl := ctlNone

	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			return ctlQuit
		case *sdl.KeyboardEvent:
			key, ok := KeyMap[ev.Keysym.Scancode]

			if ev.Type == sdl.KEYUP {
				if ok {
					vm.ReleaseKey(key)
				}
				continue
			}

			if ok {
				vm.PressKey(key)
				continue
			}

			// control keys act once per press, not on auto-repeat
			if ev.Repeat != 0 {
				continue
			}

			switch ev.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE:
				return ctlQuit
			case sdl.SCANCODE_BACKSPACE:
				ctl = ctlReset
			case sdl.SCANCODE_F5, sdl.SCANCODE_SPACE:
				ctl = ctlPause
			case sdl.SCANCODE_F6, sdl.SCANCODE_F10:
				ctl = ctlStep
			}
		}
	}

	return ctl
}
