// Package runner implements the cycle driver that runs a loaded program on the processor.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/instruction"
	"github.com/retroenv/chip8vm/internal/processor"
	"github.com/retroenv/retrogolib/log"
)

// ErrUnknownOpcode is returned when the program executes an unknown instruction
// and the runner is not configured to continue.
var ErrUnknownOpcode = errors.New("unknown opcode")

// Renderer receives the display content after every instruction that changed it.
type Renderer interface {
	Render(frame display.Frame) error
}

// Speaker is switched on while the sound timer is active.
type Speaker interface {
	StartSound()
	StopSound()
}

// Devices are the optional host devices attached to the runner.
type Devices struct {
	Renderer Renderer
	Speaker  Speaker
}

// Options control the execution.
type Options struct {
	CyclesPerSecond   int    // 0 runs unthrottled
	MaxCycles         uint64 // 0 runs until cancelled or a failure occurs
	ContinueOnUnknown bool   // skip unknown instructions instead of stopping
	Trace             bool   // log every executed instruction
}

// Runner drives the processor one cycle at a time.
type Runner struct {
	logger  *log.Logger
	proc    *processor.Processor
	devices Devices
	opts    Options

	cycles   uint64
	beeping  bool
	unknowns uint64
}

// New returns a runner for the processor.
func New(logger *log.Logger, proc *processor.Processor, devices Devices, opts Options) *Runner {
	return &Runner{
		logger:  logger,
		proc:    proc,
		devices: devices,
		opts:    opts,
	}
}

// Cycles returns the number of executed cycles.
func (r *Runner) Cycles() uint64 {
	return r.cycles
}

// UnknownOpcodes returns the number of unknown instructions that were skipped.
func (r *Runner) UnknownOpcodes() uint64 {
	return r.unknowns
}

// Run executes cycles until the context is cancelled, the cycle limit is reached
// or the processor fails. Reaching the cycle limit is not an error.
func (r *Runner) Run(ctx context.Context) error {
	var clock <-chan time.Time
	if interval := clockInterval(r.opts.CyclesPerSecond); interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		clock = ticker.C
	}

	r.logger.Debug("Starting execution",
		log.Int("cycles_per_second", r.opts.CyclesPerSecond),
		log.Hex("pc", r.proc.PC()))
	defer r.stopSound()

	for {
		if r.opts.MaxCycles > 0 && r.cycles >= r.opts.MaxCycles {
			r.logger.Debug("Cycle limit reached", log.Int("cycles", int(r.cycles)))
			return nil
		}

		if err := r.wait(ctx, clock); err != nil {
			return err
		}

		if _, err := r.Step(); err != nil {
			return err
		}
	}
}

// clockInterval returns the time between two cycles. Rates that are not
// positive or too high for a nanosecond resolution run unthrottled and return 0.
func clockInterval(cyclesPerSecond int) time.Duration {
	if cyclesPerSecond <= 0 {
		return 0
	}
	return time.Second / time.Duration(cyclesPerSecond)
}

// wait blocks until the next clock tick, without clock it only checks for
// cancellation.
func (r *Runner) wait(ctx context.Context, clock <-chan time.Time) error {
	if clock == nil {
		select {
		case <-ctx.Done():
			return fmt.Errorf("running program: %w", ctx.Err())
		default:
			return nil
		}
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("running program: %w", ctx.Err())
	case <-clock:
		return nil
	}
}

// Step executes a single cycle and forwards display and sound changes to the devices.
func (r *Runner) Step() (processor.Result, error) {
	pc := r.proc.PC()

	res, err := r.proc.Tick()
	if err != nil {
		return res, fmt.Errorf("cycle %d: %w", r.cycles, err)
	}
	r.cycles++

	if r.opts.Trace {
		r.logger.Debug("Executed",
			log.Hex("address", pc),
			log.Hex("opcode", res.Opcode),
			log.String("instruction", instruction.Format(res.Opcode)),
			log.String("pc", res.Transition.Kind.String()))
	}

	if !res.Success {
		if !r.opts.ContinueOnUnknown {
			return res, fmt.Errorf("%w $%04X at $%04X", ErrUnknownOpcode, res.Opcode, pc)
		}
		r.unknowns++
	}

	if res.DisplayChanged() && r.devices.Renderer != nil {
		if err := r.devices.Renderer.Render(r.proc.Frame()); err != nil {
			return res, fmt.Errorf("rendering frame: %w", err)
		}
	}

	r.updateSound()
	return res, nil
}

func (r *Runner) updateSound() {
	beep := r.proc.ShouldBeep()
	if beep == r.beeping {
		return
	}
	r.beeping = beep

	if r.devices.Speaker == nil {
		return
	}
	if beep {
		r.devices.Speaker.StartSound()
	} else {
		r.devices.Speaker.StopSound()
	}
}

func (r *Runner) stopSound() {
	if !r.beeping {
		return
	}
	r.beeping = false
	if r.devices.Speaker != nil {
		r.devices.Speaker.StopSound()
	}
}
