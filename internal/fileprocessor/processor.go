// Package fileprocessor handles program loading and the run or list workflow
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/instruction"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/processor"
	"github.com/retroenv/chip8vm/internal/random"
	"github.com/retroenv/chip8vm/internal/render"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile loads the program file and either lists or runs it. Console
// output like the listing or the final frame is written to w.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, w io.Writer) error {
	program, err := loader.New(logger).Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program file: %w", err)
	}

	if opts.List {
		if err := instruction.Listing(w, program, processor.ProgramStart); err != nil {
			return fmt.Errorf("listing program: %w", err)
		}
		return nil
	}

	proc := processor.New(logger, random.New(opts.Seed))
	if err := proc.Load(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	if !opts.Quiet {
		logger.Info("Running CHIP-8 program",
			log.String("file", opts.Input),
			log.Int("size", len(program)),
			log.Int("cycles_per_second", opts.CyclesPerSecond))
	}

	r := runner.New(logger, proc, createDevices(logger, opts, w), config.RunnerOptions(opts))
	runErr := r.Run(ctx)
	frame := proc.Frame()

	logger.Debug("Execution stopped",
		log.Int("cycles", int(r.Cycles())),
		log.Int("unknown_opcodes", int(r.UnknownOpcodes())),
		log.Int("lit_pixels", frame.LitPixels()),
		log.Hex("pc", proc.PC()))

	if opts.Frame {
		if _, err := io.WriteString(w, frame.String()); err != nil {
			return fmt.Errorf("writing frame: %w", err)
		}
	}

	if runErr != nil {
		return fmt.Errorf("running program: %w", runErr)
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("chip8vm", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// PrintVersion writes the full version information.
func PrintVersion(w io.Writer, version, commit, date string) {
	_, _ = fmt.Fprintf(w, "version: %s\n", buildinfo.Version(version, commit, date))
}

func createDevices(logger *log.Logger, opts options.Program, w io.Writer) runner.Devices {
	var devices runner.Devices
	if opts.Live {
		devices.Renderer = render.NewTerminal(w, true)
	}
	if opts.Bell {
		devices.Speaker = render.NewBell(logger, w)
	}
	return devices
}
