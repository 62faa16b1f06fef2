// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/retroenv/chip8vm/internal/options"
)

const (
	defaultCyclesPerSecond = 500
	maxCyclesPerSecond     = int(time.Second) // one cycle per nanosecond
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil {
		return opts, &UsageError{flags: flags}
	}
	if opts.Version {
		return opts, nil
	}
	if len(args) == 0 && opts.Input == "" && opts.Batch == "" {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if opts.Input == "" && opts.Batch == "" {
		opts.Input = args[0]
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8vm [options] <program file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	if opts.CyclesPerSecond < 0 {
		return fmt.Errorf("invalid cycles per second %d: value must not be negative", opts.CyclesPerSecond)
	}
	if opts.CyclesPerSecond > maxCyclesPerSecond {
		return fmt.Errorf("invalid cycles per second %d: maximum is %d", opts.CyclesPerSecond, maxCyclesPerSecond)
	}

	if opts.Trace {
		opts.Debug = true
	}
	if opts.Debug {
		opts.Quiet = false
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input program file")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask, for example *.ch8")
	flags.IntVar(&opts.CyclesPerSecond, "cps", defaultCyclesPerSecond, "executed cycles per second, 0 runs unthrottled")
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "stop after the given number of cycles, 0 runs until interrupted")
	flags.Int64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 seeds from the current time")
	flags.BoolVar(&opts.Continue, "continue", false, "skip unknown instructions instead of stopping")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Version, "version", false, "print the version and exit")
	flags.BoolVar(&opts.List, "list", false, "print an instruction listing of the program instead of running it")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Frame, "frame", false, "print the display after execution ends")
	flags.BoolVar(&opts.Live, "live", false, "redraw the display on the console while running")
	flags.BoolVar(&opts.Bell, "bell", false, "ring the terminal bell when the sound timer starts")
}
