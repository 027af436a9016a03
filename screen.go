package main

import (
	"github.com/massung/chip8vm/chip8"
	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"
)

/// Window is the SDL frontend: a scaled view of the CHIP-8 video memory,
/// the keyboard mapped to the keypad and a beeper.
///
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer

	/// Screen is the render target the video memory is drawn to before
	/// it is stretched over the window.
	///
	screen *sdl.Texture

	beeper *Beeper
	scale  int32
}

/// NewWindow initializes SDL and opens the main window.
///
func NewWindow(title string, scale int) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, errors.Wrap(err, "initializing sdl")
	}

	w := &Window{scale: int32(scale)}

	var err error

	// create the main window and renderer
	width, height := int32(chip8.Width*scale), int32(chip8.Height*scale)
	if w.window, w.renderer, err = sdl.CreateWindowAndRenderer(width, height, sdl.WINDOW_SHOWN); err != nil {
		sdl.Quit()
		return nil, errors.Wrap(err, "creating window")
	}

	w.window.SetTitle(title)

	// create a render target for the display
	w.screen, err = w.renderer.CreateTexture(sdl.PIXELFORMAT_RGB888, sdl.TEXTUREACCESS_TARGET, chip8.Width, chip8.Height)
	if err != nil {
		w.Close()
		return nil, errors.Wrap(err, "creating screen texture")
	}

	if w.beeper, err = NewBeeper(); err != nil {
		w.Close()
		return nil, err
	}

	return w, nil
}

/// Refresh the window with the CHIP-8 video memory.
///
func (w *Window) Refresh(vm *chip8.CHIP_8) error {
	if err := w.renderer.SetRenderTarget(w.screen); err != nil {
		return err
	}

	// the background color for the screen
	w.renderer.SetDrawColor(143, 145, 133, 255)
	w.renderer.Clear()

	// set the pixel color
	w.renderer.SetDrawColor(17, 29, 43, 255)

	// draw all the pixels
	for y := 0; y < chip8.Height; y++ {
		for x := 0; x < chip8.Width; x++ {
			if vm.Pixel(x, y) {
				w.renderer.DrawPoint(int32(x), int32(y))
			}
		}
	}

	// restore the render target
	if err := w.renderer.SetRenderTarget(nil); err != nil {
		return err
	}

	// stretch the render target to fit
	src := sdl.Rect{W: chip8.Width, H: chip8.Height}
	dst := sdl.Rect{W: chip8.Width * w.scale, H: chip8.Height * w.scale}

	if err := w.renderer.Copy(w.screen, &src, &dst); err != nil {
		return err
	}

	w.renderer.Present()

	return nil
}

/// Beep turns the tone on or off.
///
func (w *Window) Beep(on bool) {
	if err := w.beeper.Beep(on); err != nil {
		// no sound is not worth stopping for
		w.beeper.Close()
		w.beeper = &Beeper{}
	}
}

/// Close destroys the window and shuts SDL down.
///
func (w *Window) Close() error {
	if w.beeper != nil {
		w.beeper.Close()
	}
	if w.screen != nil {
		w.screen.Destroy()
	}
	if w.renderer != nil {
		w.renderer.Destroy()
	}
	if w.window != nil {
		w.window.Destroy()
	}

	sdl.Quit()

	return nil
}
