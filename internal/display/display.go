// Package display provides the monochrome CHIP-8 pixel buffer and the XOR sprite blitter.
package display

import "strings"

// Display dimensions of the canonical CHIP-8 screen.
const (
	Width  = 64
	Height = 32
)

// spriteWidth is the number of pixels encoded in one sprite byte.
const spriteWidth = 8

// Frame is a copy of the pixel buffer indexed by row, then column.
type Frame [Height][Width]bool

// Pixel describes a single cell that was changed by a draw operation.
type Pixel struct {
	Row int
	Col int
	On  bool // state of the cell after the draw
}

// DrawResult is the outcome of a sprite blit.
type DrawResult struct {
	Pixels    []Pixel // every cell toggled by the sprite, in drawing order
	Collision bool    // at least one lit cell was turned off
}

// Display is the pixel buffer. The zero value is a cleared display.
type Display struct {
	pixels Frame
}

// Clear turns every pixel off.
func (d *Display) Clear() {
	d.pixels = Frame{}
}

// Pixel returns whether the pixel at the given row and column is lit.
// Coordinates must be within the display, callers are responsible for wrapping.
func (d *Display) Pixel(row, col int) bool {
	return d.pixels[row][col]
}

// SetPixel sets the pixel at the given row and column.
// Coordinates must be within the display, callers are responsible for wrapping.
func (d *Display) SetPixel(row, col int, on bool) {
	d.pixels[row][col] = on
}

// Draw blits the sprite rows at column x and row y. Every sprite byte is one row,
// the most significant bit is the leftmost pixel. Pixels that extend past an edge
// wrap around to the opposite edge. Each set sprite bit is XOR-composited onto the
// display, a collision is reported if any lit pixel gets turned off.
func (d *Display) Draw(x, y int, sprite []byte) DrawResult {
	var result DrawResult

	for j, row := range sprite {
		targetRow := wrap(y+j, Height)

		for bit := 0; bit < spriteWidth; bit++ {
			if row&(0x80>>bit) == 0 {
				continue // XOR with 0 keeps the cell unchanged
			}

			targetCol := wrap(x+bit, Width)
			previous := d.pixels[targetRow][targetCol]
			if previous {
				result.Collision = true
			}

			d.pixels[targetRow][targetCol] = !previous
			result.Pixels = append(result.Pixels, Pixel{
				Row: targetRow,
				Col: targetCol,
				On:  !previous,
			})
		}
	}

	return result
}

// Frame returns a copy of the complete pixel buffer.
func (d *Display) Frame() Frame {
	return d.pixels
}

// String renders the display as text, see Frame.String.
func (d *Display) String() string {
	return d.pixels.String()
}

// String renders the frame as text, one line per row with '#' for lit
// and '.' for dark pixels.
func (f Frame) String() string {
	var sb strings.Builder
	sb.Grow(Height * (Width + 1))

	for row := range f {
		for _, on := range f[row] {
			if on {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// wrap maps the value into [0, size), also for negative values.
func wrap(value, size int) int {
	value %= size
	if value < 0 {
		value += size
	}
	return value
}

// LitPixels returns the number of pixels that are on.
func (f Frame) LitPixels() int {
	count := 0
	for row := range f {
		for col := range f[row] {
			if f[row][col] {
				count++
			}
		}
	}
	return count
}
