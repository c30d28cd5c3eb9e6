package vm

import (
	"strings"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
)

// Framebuffer is the monochrome 64x32 display. Cells are stored row-major,
// the index of a pixel is x + y*Width.
type Framebuffer struct {
	cells [Width * Height]uint8
}

// Display dimensions in pixels.
const (
	Width  = chip8.DisplayWidth
	Height = chip8.DisplayHeight
)

// Pixel returns whether the pixel at the given coordinates is lit.
// Coordinates outside of the display return false.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return f.cells[x+y*Width] != 0
}

// Cells returns a copy of all display cells, each 0 or 1.
func (f *Framebuffer) Cells() [Width * Height]uint8 {
	return f.cells
}

// String renders the framebuffer as text, one line per row with '#' for lit
// and '.' for unlit pixels.
func (f *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)

	for y := range Height {
		for x := range Width {
			if f.cells[x+y*Width] != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (f *Framebuffer) clear() {
	f.cells = [Width * Height]uint8{}
}

// flip toggles the pixel at the given in-range coordinates and returns 1 if
// the pixel was lit before, which is a collision.
func (f *Framebuffer) flip(x, y int) uint8 {
	i := x + y*Width
	collision := f.cells[i] & 1
	f.cells[i] ^= 1
	return collision
}
