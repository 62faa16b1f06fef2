package render

import (
	"io"

	"github.com/retroenv/retrogolib/log"
)

// Bell signals the sound timer by writing the terminal bell character
// when the sound starts.
type Bell struct {
	logger *log.Logger
	writer io.Writer
}

// NewBell returns a speaker writing to w.
func NewBell(logger *log.Logger, w io.Writer) *Bell {
	return &Bell{
		logger: logger,
		writer: w,
	}
}

// StartSound rings the bell.
func (b *Bell) StartSound() {
	if _, err := io.WriteString(b.writer, "\a"); err != nil {
		b.logger.Error("Ringing bell failed", log.Err(err))
	}
}

// StopSound is a no-op, the bell can not be silenced.
func (b *Bell) StopSound() {}
