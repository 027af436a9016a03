package main

import (
	"bufio"
	"os"
	"strings"
	"time"

	"github.com/massung/chip8vm/chip8"
	"github.com/mgutz/ansi"
	"github.com/pkg/errors"
	"github.com/pkg/term"
)

// terminals only report key presses, so a key is held down for this long
const keyLatch = 150 * time.Millisecond

var (
	/// Mapping of terminal input bytes to CHIP-8 keys. Same layout as the
	/// window's KeyMap.
	///
	TermKeyMap = map[byte]uint{
		'x': 0x0,
		'1': 0x1,
		'2': 0x2,
		'3': 0x3,
		'q': 0x4,
		'w': 0x5,
		'e': 0x6,
		'a': 0x7,
		's': 0x8,
		'd': 0x9,
		'z': 0xA,
		'c': 0xB,
		'4': 0xC,
		'r': 0xD,
		'f': 0xE,
		'v': 0xF,
	}

	// pixel color
	pixelColor = ansi.ColorCode("green+b:black")
)

/// Terminal is a frontend drawing to a raw mode terminal with half-block
/// characters, two pixel rows per line.
///
type Terminal struct {
	tty *term.Term
	out *bufio.Writer

	// bytes read from the tty by the reader goroutine
	input chan byte
	done  chan struct{}

	// when each key was last hit
	hit [16]time.Time

	beeping bool
}

/// NewTerminal puts the controlling terminal in raw mode.
///
func NewTerminal() (*Terminal, error) {
	tty, err := term.Open("/dev/tty", term.RawMode)
	if err != nil {
		return nil, errors.Wrap(err, "opening terminal")
	}

	t := &Terminal{
		tty:   tty,
		out:   bufio.NewWriter(os.Stdout),
		input: make(chan byte, 64),
		done:  make(chan struct{}),
	}

	go t.read()

	// clear and hide the cursor
	t.out.WriteString("\x1b[2J\x1b[?25l")

	if err := t.out.Flush(); err != nil {
		t.Close()
		return nil, errors.Wrap(err, "writing to terminal")
	}

	return t, nil
}

/// read forwards bytes from the tty until it is closed.
///
func (t *Terminal) read() {
	buf := make([]byte, 16)

	for {
		n, err := t.tty.Read(buf)
		if err != nil {
			return
		}

		for _, b := range buf[:n] {
			select {
			case t.input <- b:
			case <-t.done:
				return
			}
		}
	}
}

/// Poll drains the bytes typed since the last frame.
///
func (t *Terminal) Poll(vm *chip8.CHIP_8) control {
	now := time.Now()
	ctl := ctlNone

drain:
	for {
		select {
		case b := <-t.input:
			if key, ok := TermKeyMap[lower(b)]; ok {
				t.hit[key] = now
				continue
			}

			switch b {
			case 0x03, 0x1B:
				return ctlQuit
			case 0x7F, 0x08:
				ctl = ctlReset
			case ' ':
				ctl = ctlPause
			case '.':
				ctl = ctlStep
			}
		default:
			break drain
		}
	}

	for key, hit := range t.hit {
		if !hit.IsZero() && now.Sub(hit) < keyLatch {
			vm.PressKey(uint(key))
		} else {
			vm.ReleaseKey(uint(key))
		}
	}

	return ctl
}

/// Refresh redraws the whole display from the home position.
///
func (t *Terminal) Refresh(vm *chip8.CHIP_8) error {
	t.out.WriteString("\x1b[H")
	t.out.WriteString(RenderFrame(vm))

	return t.out.Flush()
}

/// Beep rings the terminal bell when the tone starts.
///
func (t *Terminal) Beep(on bool) {
	if on && !t.beeping {
		t.out.WriteByte('\a')
	}

	t.beeping = on
}

/// Close restores the terminal.
///
func (t *Terminal) Close() error {
	close(t.done)

	t.out.WriteString(ansi.Reset + "\x1b[?25h\r\n")
	t.out.Flush()

	if err := t.tty.Restore(); err != nil {
		return errors.Wrap(err, "restoring terminal")
	}

	return t.tty.Close()
}

/// RenderFrame draws the video memory as 16 lines of half blocks.
///
func RenderFrame(vm *chip8.CHIP_8) string {
	var sb strings.Builder

	for y := 0; y < chip8.Height; y += 2 {
		sb.WriteString(pixelColor)

		for x := 0; x < chip8.Width; x++ {
			top, bottom := vm.Pixel(x, y), vm.Pixel(x, y+1)

			switch {
			case top && bottom:
				sb.WriteString("█")
			case top:
				sb.WriteString("▀")
			case bottom:
				sb.WriteString("▄")
			default:
				sb.WriteByte(' ')
			}
		}

		// raw mode needs the carriage return
		sb.WriteString(ansi.Reset + "\r\n")
	}

	return sb.String()
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 'a' - 'A'
	}
	return b
}
