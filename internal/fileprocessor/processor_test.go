package fileprocessor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// testProgram draws the glyph 0 at the top left corner and loops forever.
var testProgram = []byte{
	0x00, 0xE0, // CLS
	0xA0, 0x00, // LD I, $000
	0xD0, 0x15, // DRW V0, V0, $5
	0x12, 0x06, // JP $206
}

func writeProgram(t *testing.T, name string, program []byte) string {
	t.Helper()
	fileName := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(fileName, program, 0o600))
	return fileName
}

func TestProcessFile_Run(t *testing.T) {
	opts := options.Program{
		Parameters:  options.Parameters{Input: writeProgram(t, "draw.ch8", testProgram)},
		Flags:       options.Flags{Cycles: 10, Seed: 1},
		OutputFlags: options.OutputFlags{Frame: true},
	}

	var buf bytes.Buffer
	assert.NoError(t, ProcessFile(context.Background(), log.NewTestLogger(t), opts, &buf))

	lines := strings.Split(buf.String(), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "####."))
	assert.True(t, strings.HasPrefix(lines[1], "#..#."))
	assert.True(t, strings.HasPrefix(lines[5], "....."))
}

func TestProcessFile_Live(t *testing.T) {
	opts := options.Program{
		Parameters:  options.Parameters{Input: writeProgram(t, "draw.ch8", testProgram)},
		Flags:       options.Flags{Cycles: 4},
		OutputFlags: options.OutputFlags{Live: true},
	}

	var buf bytes.Buffer
	assert.NoError(t, ProcessFile(context.Background(), log.NewTestLogger(t), opts, &buf))
	assert.Equal(t, 2, strings.Count(buf.String(), "\x1b[H"))
}

func TestProcessFile_List(t *testing.T) {
	opts := options.Program{
		Parameters:  options.Parameters{Input: writeProgram(t, "draw.ch8", testProgram)},
		OutputFlags: options.OutputFlags{List: true},
	}

	var buf bytes.Buffer
	assert.NoError(t, ProcessFile(context.Background(), log.NewTestLogger(t), opts, &buf))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "0200  00E0  "))
	assert.True(t, strings.HasPrefix(lines[3], "0206  1206  "))
}

func TestProcessFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		program []byte
		opts    options.Flags
		err     error
		msg     string
	}{
		{
			name:    "empty file",
			program: []byte{},
			err:     loader.ErrEmptyProgram,
			msg:     "loading program file",
		},
		{
			name:    "unknown opcode",
			program: []byte{0xE1, 0xFF},
			opts:    options.Flags{Cycles: 10},
			err:     runner.ErrUnknownOpcode,
			msg:     "running program",
		},
		{
			name:    "program too large",
			program: make([]byte, 0x1000),
			msg:     "loading program",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.Program{
				Parameters: options.Parameters{Input: writeProgram(t, "test.ch8", tt.program)},
				Flags:      tt.opts,
			}

			err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, &bytes.Buffer{})
			assert.ErrorContains(t, err, tt.msg)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
			}
		})
	}
}

func TestProcessFile_MissingFile(t *testing.T) {
	opts := options.Program{
		Parameters: options.Parameters{Input: filepath.Join(t.TempDir(), "missing.ch8")},
	}
	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, &bytes.Buffer{})
	assert.ErrorContains(t, err, "opening file")
}

func TestGetFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.ch8", "b.ch8", "c.txt"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), testProgram, 0o600))
	}

	opts := &options.Program{Parameters: options.Parameters{Batch: filepath.Join(dir, "*.ch8")}}
	files, err := GetFilesToProcess(opts)
	assert.NoError(t, err)
	assert.Len(t, files, 2)

	opts = &options.Program{Parameters: options.Parameters{Input: "pong.ch8"}}
	files, err = GetFilesToProcess(opts)
	assert.NoError(t, err)
	assert.Equal(t, []string{"pong.ch8"}, files)
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf, "1.0.0", "", "")
	assert.True(t, strings.HasPrefix(buf.String(), "version: "))
}
