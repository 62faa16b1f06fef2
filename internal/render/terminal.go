// Package render implements text based host devices for the display and the sound timer.
package render

import (
	"fmt"
	"io"

	"github.com/retroenv/chip8vm/internal/display"
)

// ansiHome moves the cursor to the top left corner of the terminal.
const ansiHome = "\x1b[H"

// Terminal writes every frame as text, one line per display row.
type Terminal struct {
	writer io.Writer
	redraw bool // position the cursor at the top before every frame
	frames int
}

// NewTerminal returns a renderer writing to w. If redraw is set, every frame
// overwrites the previous one instead of being appended.
func NewTerminal(w io.Writer, redraw bool) *Terminal {
	return &Terminal{
		writer: w,
		redraw: redraw,
	}
}

// Render writes the frame.
func (t *Terminal) Render(frame display.Frame) error {
	text := frame.String()
	if t.redraw {
		text = ansiHome + text
	}
	if _, err := io.WriteString(t.writer, text); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	t.frames++
	return nil
}

// Frames returns the number of rendered frames.
func (t *Terminal) Frames() int {
	return t.frames
}
