// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// RunnerOptions returns the execution options for the program options.
func RunnerOptions(opts options.Program) runner.Options {
	return runner.Options{
		CyclesPerSecond:   opts.CyclesPerSecond,
		MaxCycles:         opts.Cycles,
		ContinueOnUnknown: opts.Continue,
		Trace:             opts.Trace,
	}
}
