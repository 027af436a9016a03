package chip8

const (
	/// Width and Height of the display in pixels.
	///
	Width  = 64
	Height = 32

	/// VideoSize is the number of bytes of packed video memory.
	///
	VideoSize = Width * Height / 8

	// bytes per scan line
	pitch = Width / 8
)

/// Pixel returns true if the pixel at <x, y> is on. Coordinates wrap.
///
func (vm *CHIP_8) Pixel(x, y int) bool {
	i, mask := pixelOffset(x, y)

	return vm.Video[i]&mask != 0
}

/// togglePixel flips the pixel at <x, y> and returns true if it was on.
///
func (vm *CHIP_8) togglePixel(x, y int) bool {
	i, mask := pixelOffset(x, y)
	on := vm.Video[i]&mask != 0

	vm.Video[i] ^= mask

	return on
}

// byte offset and bit mask of a pixel, wrapping the coordinates
func pixelOffset(x, y int) (int, byte) {
	x &= Width - 1
	y &= Height - 1

	return y*pitch + x>>3, 0x80 >> uint(x&7)
}
