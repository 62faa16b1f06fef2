// Package loader handles program file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// ErrEmptyProgram is returned for program files without content.
var ErrEmptyProgram = errors.New("program is empty")

// Loader handles loading program files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new program loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads the raw program file. Programs have no header, the whole file
// content is the memory image that gets loaded at the program start address.
func (l *Loader) Load(fileName string) ([]byte, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", fileName, err)
	}
	defer func() { _ = file.Close() }()

	program, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", fileName, err)
	}
	if len(program) == 0 {
		return nil, fmt.Errorf("loading file %s: %w", fileName, ErrEmptyProgram)
	}

	if !hasProgramExtension(fileName) {
		l.logger.Warn("File extension does not indicate a CHIP-8 program",
			log.String("file", fileName))
	}
	return program, nil
}

// hasProgramExtension determines whether the file extension is one commonly
// used for CHIP-8 programs.
func hasProgramExtension(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".ch8", ".c8", ".rom":
		return true
	default:
		return false
	}
}
