// Package processor implements the CHIP-8 fetch-decode-execute cycle.
//
// The Processor owns the 4KB memory, the 16 data registers V0-VF, the index
// register I, the program counter, a 16 level call stack, the delay and sound
// timers, the key state and the display. A driver calls Tick once per emulated
// cycle, every Tick decrements the timers and executes a single instruction.
package processor

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/random"
	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 memory layout and machine constants.
//
//	0x000-0x04F: font glyphs (16 glyphs of 5 bytes)
//	0x050-0x1FF: reserved interpreter area
//	0x200-0xFFF: program space
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// ProgramStart is the address that programs are loaded to and execution starts at.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart

	// FontAddress is the address of the first font glyph.
	FontAddress = 0x000

	// RegisterCount is the number of data registers V0-VF.
	RegisterCount = 16

	// FlagRegister is the index of VF, which receives carry, borrow, shift and collision flags.
	FlagRegister = 0xF

	// StackSize is the maximum number of nested subroutine calls.
	StackSize = 16

	// InstructionSize is the width of every instruction in bytes.
	InstructionSize = 2
)

// Random is the entropy source used by the random byte instruction.
type Random interface {
	Byte() byte
}

// Processor is the CHIP-8 virtual machine state.
type Processor struct {
	logger *log.Logger
	random Random

	memory [MemorySize]byte
	v      [RegisterCount]byte
	i      uint16
	pc     uint16

	stack [StackSize]uint16
	sp    int // number of return addresses on the stack

	delayTimer byte
	soundTimer byte

	keys       [KeyCount]bool
	currentKey Key
	keyPressed bool // currentKey holds a valid key

	display display.Display
}

// New returns a processor in reset state. If rnd is nil, a time seeded
// generator is used for the random byte instruction.
func New(logger *log.Logger, rnd Random) *Processor {
	if rnd == nil {
		rnd = random.New(0)
	}
	p := &Processor{
		logger: logger,
		random: rnd,
	}
	p.Reset()
	return p
}

// Reset clears memory, all registers including the timers, the stack and the
// display, sets the program counter to the program start and reloads the font.
// Key state is owned by the host and is kept.
func (p *Processor) Reset() {
	p.memory = [MemorySize]byte{}
	p.v = [RegisterCount]byte{}
	p.i = 0
	p.delayTimer = 0
	p.soundTimer = 0
	p.stack = [StackSize]uint16{}
	p.sp = 0
	p.pc = ProgramStart
	p.display.Clear()

	copy(p.memory[FontAddress:], font[:])
}

// Load resets the processor and copies the program into memory at the program start.
func (p *Processor) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	p.Reset()
	copy(p.memory[ProgramStart:], program)

	p.logger.Debug("Program loaded",
		log.Int("size", len(program)),
		log.Hex("address", uint16(ProgramStart)))
	return nil
}

// Fetch reads the big-endian instruction word at the program counter.
// It does not advance the program counter.
func (p *Processor) Fetch() (uint16, error) {
	pc := int(p.pc)
	if pc+1 >= MemorySize {
		return 0, fmt.Errorf("%w: fetching instruction at $%04X", ErrMemoryBounds, p.pc)
	}
	return uint16(p.memory[pc])<<8 | uint16(p.memory[pc+1]), nil
}

// Tick runs one emulated cycle: both timers are decremented if they are not zero,
// then one instruction is fetched and executed.
func (p *Processor) Tick() (Result, error) {
	if p.delayTimer > 0 {
		p.delayTimer--
	}
	if p.soundTimer > 0 {
		p.soundTimer--
	}

	word, err := p.Fetch()
	if err != nil {
		return Result{}, err
	}
	return p.Execute(word)
}

// ShouldBeep returns whether the sound timer is active.
func (p *Processor) ShouldBeep() bool {
	return p.soundTimer > 0
}

// PC returns the program counter.
func (p *Processor) PC() uint16 {
	return p.pc
}

// Index returns the index register I.
func (p *Processor) Index() uint16 {
	return p.i
}

// Register returns the value of the data register Vx.
func (p *Processor) Register(x int) byte {
	return p.v[x&0xF]
}

// DelayTimer returns the current delay timer value.
func (p *Processor) DelayTimer() byte {
	return p.delayTimer
}

// SoundTimer returns the current sound timer value.
func (p *Processor) SoundTimer() byte {
	return p.soundTimer
}

// Memory returns the byte at the given address.
func (p *Processor) Memory(address uint16) (byte, error) {
	if int(address) >= MemorySize {
		return 0, fmt.Errorf("%w: reading $%04X", ErrMemoryBounds, address)
	}
	return p.memory[address], nil
}

// Pixel returns whether the display pixel at the given row and column is lit.
func (p *Processor) Pixel(row, col int) bool {
	return p.display.Pixel(row, col)
}

// Frame returns a copy of the display pixel buffer.
func (p *Processor) Frame() display.Frame {
	return p.display.Frame()
}
