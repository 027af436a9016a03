package main

import (
	"strconv"
	"time"

	"github.com/massung/chip8vm/chip8"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

/// control is a request from the user to the host loop.
///
type control int

const (
	ctlNone control = iota
	ctlQuit
	ctlReset
	ctlPause
	ctlStep
)

/// Frontend presents the virtual machine to the user. Everything except
/// the keypad is read only.
///
type Frontend interface {
	/// Poll drains pending input, updating the keypad.
	///
	Poll(vm *chip8.CHIP_8) control

	/// Refresh redraws the display.
	///
	Refresh(vm *chip8.CHIP_8) error

	/// Beep turns the tone on or off.
	///
	Beep(on bool)

	/// Close releases the frontend.
	///
	Close() error
}

/// Host runs a virtual machine: instructions at the clock rate, timers,
/// input and video at 60 Hz.
///
type Host struct {
	VM       *chip8.CHIP_8
	Frontend Frontend
	Logger   *log.Logger

	/// Hz is the instruction clock rate.
	///
	Hz int

	/// OnFault is the fault policy (halt/skip/exit).
	///
	OnFault string

	/// Paused is true when single stepping.
	///
	Paused bool

	/// Halted is true after a fault stopped emulation.
	///
	Halted bool
}

/// Run until the user quits, or a fault under the exit policy.
///
func (h *Host) Run() error {
	clock := time.NewTicker(time.Second / time.Duration(h.Hz))
	video := time.NewTicker(time.Second / 60)

	defer clock.Stop()
	defer video.Stop()

	for {
		select {
		case <-video.C:
			quit, err := h.Frame()
			if quit || err != nil {
				return err
			}
		case <-clock.C:
			// a key wait is only retried once per frame
			if h.VM.Waiting {
				continue
			}

			if err := h.Step(); err != nil {
				return err
			}
		}
	}
}

/// Frame handles input, decrements the timers and refreshes the screen.
/// Returns true when the user asked to quit.
///
func (h *Host) Frame() (bool, error) {
	switch h.Frontend.Poll(h.VM) {
	case ctlQuit:
		return true, nil
	case ctlReset:
		h.Logger.Debug("Reset")
		h.VM.Reset()
		h.Halted = false
	case ctlPause:
		h.Paused = !h.Paused
		h.Logger.Debug("Pause", log.String("paused", strconv.FormatBool(h.Paused)))
	case ctlStep:
		if h.Paused {
			h.Logger.Debug("Step", log.String("instruction", h.VM.Disassemble(h.VM.PC)))
			if err := h.execute(); err != nil {
				return false, err
			}
		}
	}

	running := !h.Paused && !h.Halted

	if running {
		h.VM.Tick()

		// retry a pending key wait now that input has been read
		if h.VM.Waiting {
			if err := h.execute(); err != nil {
				return false, err
			}
		}
	}

	h.Frontend.Beep(running && h.VM.Beeping())

	if err := h.Frontend.Refresh(h.VM); err != nil {
		return false, errors.Wrap(err, "refreshing display")
	}

	return false, nil
}

/// Step executes one instruction unless paused or halted.
///
func (h *Host) Step() error {
	if h.Paused || h.Halted {
		return nil
	}

	return h.execute()
}

/// execute one instruction and apply the fault policy.
///
func (h *Host) execute() error {
	err := h.VM.Step()
	if err == nil {
		return nil
	}

	switch h.OnFault {
	case faultSkip:
		LogFault(h.Logger, h.VM, err, true)
		return nil
	case faultExit:
		LogFault(h.Logger, h.VM, err, false)
		return err
	}

	// halt, keeping the last frame on screen
	LogFault(h.Logger, h.VM, err, false)
	h.Halted = true

	return nil
}
