package processor

import (
	"errors"
	"testing"

	"github.com/retroenv/chip8vm/internal/random"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestProcessor(t *testing.T) *Processor {
	t.Helper()
	return New(log.NewTestLogger(t), random.NewSequence(0xAB))
}

func TestNew(t *testing.T) {
	p := newTestProcessor(t)

	assert.Equal(t, uint16(ProgramStart), p.PC())
	assert.Equal(t, uint16(0), p.Index())
	assert.Equal(t, 0, p.sp)
	assert.Equal(t, font[:], p.memory[FontAddress:FontAddress+len(font)])
	assert.Equal(t, byte(0), p.memory[FontAddress+len(font)])
}

func TestNew_DefaultRandom(t *testing.T) {
	p := New(log.NewTestLogger(t), nil)
	assert.NotNil(t, p.random)
}

func TestProcessor_Fetch(t *testing.T) {
	p := newTestProcessor(t)
	p.memory[0x200] = 0xAB
	p.memory[0x201] = 0xCD

	word, err := p.Fetch()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xABCD), word)
	assert.Equal(t, uint16(0x200), p.PC())

	p.pc = MemorySize - 1
	_, err = p.Fetch()
	assert.True(t, errors.Is(err, ErrMemoryBounds))
}

func TestProcessor_Load(t *testing.T) {
	p := newTestProcessor(t)
	p.v[3] = 0x33
	p.pc = 0x400

	assert.NoError(t, p.Load([]byte{1, 2, 3}))

	for offset, want := range []byte{1, 2, 3} {
		got, err := p.Memory(uint16(ProgramStart + offset))
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, byte(0), p.Register(3))
	assert.Equal(t, uint16(ProgramStart), p.PC())
}

func TestProcessor_LoadSize(t *testing.T) {
	p := newTestProcessor(t)

	program := make([]byte, MaxProgramSize)
	program[len(program)-1] = 0xEE
	assert.NoError(t, p.Load(program))
	assert.Equal(t, byte(0xEE), p.memory[MemorySize-1])

	err := p.Load(make([]byte, MaxProgramSize+1))
	assert.True(t, errors.Is(err, ErrProgramTooLarge))
	assert.Equal(t, byte(0xEE), p.memory[MemorySize-1])
}

func TestProcessor_Reset(t *testing.T) {
	p := newTestProcessor(t)
	p.memory[0x300] = 0x12
	p.memory[FontAddress] = 0x00
	p.v[5] = 5
	p.i = 0x123
	p.stack[0] = 0x202
	p.sp = 1
	p.pc = 0x456
	p.delayTimer = 9
	p.soundTimer = 9
	p.display.SetPixel(1, 1, true)
	assert.NoError(t, p.KeyDown(Key7))

	p.Reset()

	state := p.Snapshot()
	assert.Equal(t, uint16(ProgramStart), state.PC)
	assert.Equal(t, uint16(0), state.I)
	assert.Equal(t, [RegisterCount]byte{}, state.V)
	assert.Equal(t, 0, state.SP)
	assert.Len(t, state.Stack, 0)
	assert.Equal(t, byte(0), state.DelayTimer)
	assert.Equal(t, byte(0), state.SoundTimer)
	assert.Equal(t, byte(0), p.memory[0x300])
	assert.Equal(t, byte(0xF0), p.memory[FontAddress])
	assert.False(t, p.Pixel(1, 1))
	assert.True(t, state.Keys[Key7])
}

func TestProcessor_TickTimers(t *testing.T) {
	p := newTestProcessor(t)
	assert.NoError(t, p.Load([]byte{
		0xF0, 0x07, // LD V0, DT
		0xF1, 0x07, // LD V1, DT
	}))
	p.delayTimer = 1
	p.soundTimer = 2

	_, err := p.Tick()
	assert.NoError(t, err)
	assert.Equal(t, byte(0), p.Register(0))
	assert.Equal(t, byte(0), p.DelayTimer())
	assert.Equal(t, byte(1), p.SoundTimer())
	assert.True(t, p.ShouldBeep())

	_, err = p.Tick()
	assert.NoError(t, err)
	assert.Equal(t, byte(0), p.Register(1))
	assert.Equal(t, byte(0), p.DelayTimer())
	assert.False(t, p.ShouldBeep())
	assert.Equal(t, uint16(0x204), p.PC())
}

func TestProcessor_TickFetchOutOfBounds(t *testing.T) {
	p := newTestProcessor(t)
	p.pc = MemorySize - 1

	_, err := p.Tick()
	assert.True(t, errors.Is(err, ErrMemoryBounds))
	assert.Equal(t, uint16(MemorySize-1), p.PC())
}

func TestProcessor_Keys(t *testing.T) {
	p := newTestProcessor(t)

	assert.NoError(t, p.KeyDown(KeyA))
	assert.NoError(t, p.KeyDown(Key3))
	state := p.Snapshot()
	assert.True(t, state.Keys[KeyA])
	assert.True(t, state.Keys[Key3])
	assert.True(t, state.KeyPressed)
	assert.Equal(t, Key3, state.CurrentKey)

	// releasing a key that is not the current one keeps the current key
	assert.NoError(t, p.KeyUp(KeyA))
	state = p.Snapshot()
	assert.False(t, state.Keys[KeyA])
	assert.True(t, state.KeyPressed)
	assert.Equal(t, Key3, state.CurrentKey)

	assert.NoError(t, p.KeyUp(Key3))
	state = p.Snapshot()
	assert.False(t, state.Keys[Key3])
	assert.False(t, state.KeyPressed)

	assert.True(t, errors.Is(p.KeyDown(Key(16)), ErrInvalidKey))
	assert.True(t, errors.Is(p.KeyUp(Key(0xFF)), ErrInvalidKey))
}

func TestProcessor_Memory(t *testing.T) {
	p := newTestProcessor(t)

	b, err := p.Memory(FontAddress + 5)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x20), b)

	_, err = p.Memory(MemorySize)
	assert.True(t, errors.Is(err, ErrMemoryBounds))
}

func TestProcessor_Snapshot(t *testing.T) {
	p := newTestProcessor(t)
	p.stack[0] = 0x202
	p.stack[1] = 0x304
	p.sp = 2

	state := p.Snapshot()
	assert.Equal(t, []uint16{0x202, 0x304}, state.Stack)

	// the snapshot does not alias processor state
	state.Stack[0] = 0
	assert.Equal(t, uint16(0x202), p.stack[0])
}

func TestProcessor_RunProgram(t *testing.T) {
	p := newTestProcessor(t)
	assert.NoError(t, p.Load([]byte{
		0x60, 0x05, // 200: LD V0, $05
		0x61, 0x0A, // 202: LD V1, $0A
		0x22, 0x0A, // 204: CALL $20A
		0x12, 0x08, // 206: JP $208
		0x12, 0x08, // 208: JP $208
		0xF0, 0x29, // 20A: LD F, V0
		0xD1, 0x15, // 20C: DRW V1, V1, 5
		0x00, 0xEE, // 20E: RET
	}))

	for i := 0; i < 7; i++ {
		res, err := p.Tick()
		assert.NoError(t, err)
		assert.True(t, res.Success)
	}

	assert.Equal(t, uint16(0x208), p.PC())
	assert.Equal(t, uint16(FontAddress+5*fontGlyphSize), p.Index())
	assert.Equal(t, byte(0), p.Register(FlagRegister))
	// glyph "5" top row 0xF0 at column 10, row 10
	assert.True(t, p.Pixel(10, 10))
	assert.True(t, p.Pixel(10, 13))
	assert.False(t, p.Pixel(10, 14))
}
