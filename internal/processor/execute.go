package processor

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/retrogolib/log"
)

// Result describes an executed instruction.
type Result struct {
	Opcode     uint16
	Success    bool       // false only if the opcode is not a known instruction
	Transition Transition // program counter change that was applied

	Cleared   bool            // display was cleared
	Pixels    []display.Pixel // display pixels changed by a sprite draw
	Collision bool            // sprite draw turned off a lit pixel
}

// DisplayChanged returns whether the instruction modified the display.
func (r Result) DisplayChanged() bool {
	return r.Cleared || len(r.Pixels) > 0
}

// handler executes a decoded instruction. It mutates registers, memory, stack or
// display and returns the program counter transition. A handler that returns an
// error must not have modified any state.
type handler func(p *Processor, op opcode, res *Result) (Transition, error)

// Execute decodes and executes the instruction word and applies the resulting
// program counter transition.
//
// An unknown instruction sets Success to false and advances the program counter
// by one instruction without any other change. Stack and memory bounds violations
// return an error and leave the processor state unmodified, the returned result
// then only carries the opcode with Success set.
func (p *Processor) Execute(word uint16) (Result, error) {
	op := opcode(word)
	res := Result{
		Opcode:  word,
		Success: true,
	}

	fn := decode(op)
	if fn == nil {
		p.logger.Warn("Unknown opcode",
			log.Hex("opcode", word),
			log.Hex("address", p.pc))

		res.Success = false
		res.Transition = next()
		p.pc = res.Transition.apply(p.pc)
		return res, nil
	}

	transition, err := fn(p, op, &res)
	if err != nil {
		return Result{Opcode: word, Success: true}, fmt.Errorf("executing opcode $%04X at $%04X: %w", word, p.pc, err)
	}

	res.Transition = transition
	p.pc = transition.apply(p.pc)
	return res, nil
}

// decode returns the handler for the instruction or nil if it is unknown.
func decode(op opcode) handler {
	switch op.kind() {
	case 0x0:
		switch op {
		case 0x00E0:
			return (*Processor).clearScreen
		case 0x00EE:
			return (*Processor).returnFromSubroutine
		}
	case 0x1:
		return (*Processor).jumpToAddress
	case 0x2:
		return (*Processor).callSubroutine
	case 0x3:
		return (*Processor).skipIfEqualByte
	case 0x4:
		return (*Processor).skipIfNotEqualByte
	case 0x5:
		if op.n() == 0x0 {
			return (*Processor).skipIfEqualRegister
		}
	case 0x6:
		return (*Processor).loadByte
	case 0x7:
		return (*Processor).addByte
	case 0x8:
		return decodeArithmetic(op)
	case 0x9:
		if op.n() == 0x0 {
			return (*Processor).skipIfNotEqualRegister
		}
	case 0xA:
		return (*Processor).loadIndex
	case 0xB:
		return (*Processor).jumpWithOffset
	case 0xC:
		return (*Processor).randomByte
	case 0xD:
		return (*Processor).drawSprite
	case 0xE:
		switch op.kk() {
		case 0x9E:
			return (*Processor).skipIfKeyPressed
		case 0xA1:
			return (*Processor).skipIfKeyNotPressed
		}
	case 0xF:
		return decodeMisc(op)
	}
	return nil
}

// decodeArithmetic decodes the 8xyN register to register instructions.
func decodeArithmetic(op opcode) handler {
	switch op.n() {
	case 0x0:
		return (*Processor).loadRegister
	case 0x1:
		return (*Processor).or
	case 0x2:
		return (*Processor).and
	case 0x3:
		return (*Processor).xor
	case 0x4:
		return (*Processor).addRegister
	case 0x5:
		return (*Processor).subtract
	case 0x6:
		return (*Processor).shiftRight
	case 0x7:
		return (*Processor).subtractReverse
	case 0xE:
		return (*Processor).shiftLeft
	}
	return nil
}

// decodeMisc decodes the FxNN timer, key, index and transfer instructions.
func decodeMisc(op opcode) handler {
	switch op.kk() {
	case 0x07:
		return (*Processor).loadDelayTimer
	case 0x0A:
		return (*Processor).waitForKey
	case 0x15:
		return (*Processor).setDelayTimer
	case 0x18:
		return (*Processor).setSoundTimer
	case 0x1E:
		return (*Processor).addIndex
	case 0x29:
		return (*Processor).loadFontGlyph
	case 0x33:
		return (*Processor).storeBCD
	case 0x55:
		return (*Processor).storeRegisters
	case 0x65:
		return (*Processor).loadRegisters
	}
	return nil
}

// 00E0 - CLS
func (p *Processor) clearScreen(_ opcode, res *Result) (Transition, error) {
	p.display.Clear()
	res.Cleared = true
	return next(), nil
}

// 00EE - RET
func (p *Processor) returnFromSubroutine(_ opcode, _ *Result) (Transition, error) {
	if p.sp == 0 {
		return Transition{}, ErrStackUnderflow
	}
	p.sp--
	return jump(p.stack[p.sp]), nil
}

// 1nnn - JP addr
func (p *Processor) jumpToAddress(op opcode, _ *Result) (Transition, error) {
	return jump(op.nnn()), nil
}

// 2nnn - CALL addr
func (p *Processor) callSubroutine(op opcode, _ *Result) (Transition, error) {
	if p.sp >= StackSize {
		return Transition{}, ErrStackOverflow
	}
	p.stack[p.sp] = p.pc + InstructionSize
	p.sp++
	return jump(op.nnn()), nil
}

// 3xkk - SE Vx, byte
func (p *Processor) skipIfEqualByte(op opcode, _ *Result) (Transition, error) {
	return skipIf(p.v[op.x()] == op.kk()), nil
}

// 4xkk - SNE Vx, byte
func (p *Processor) skipIfNotEqualByte(op opcode, _ *Result) (Transition, error) {
	return skipIf(p.v[op.x()] != op.kk()), nil
}

// 5xy0 - SE Vx, Vy
func (p *Processor) skipIfEqualRegister(op opcode, _ *Result) (Transition, error) {
	return skipIf(p.v[op.x()] == p.v[op.y()]), nil
}

// 6xkk - LD Vx, byte
func (p *Processor) loadByte(op opcode, _ *Result) (Transition, error) {
	p.v[op.x()] = op.kk()
	return next(), nil
}

// 7xkk - ADD Vx, byte. Wraps around without touching VF.
func (p *Processor) addByte(op opcode, _ *Result) (Transition, error) {
	p.v[op.x()] += op.kk()
	return next(), nil
}

// 8xy0 - LD Vx, Vy
func (p *Processor) loadRegister(op opcode, _ *Result) (Transition, error) {
	p.v[op.x()] = p.v[op.y()]
	return next(), nil
}

// 8xy1 - OR Vx, Vy
func (p *Processor) or(op opcode, _ *Result) (Transition, error) {
	p.v[op.x()] |= p.v[op.y()]
	return next(), nil
}

// 8xy2 - AND Vx, Vy
func (p *Processor) and(op opcode, _ *Result) (Transition, error) {
	p.v[op.x()] &= p.v[op.y()]
	return next(), nil
}

// 8xy3 - XOR Vx, Vy
func (p *Processor) xor(op opcode, _ *Result) (Transition, error) {
	p.v[op.x()] ^= p.v[op.y()]
	return next(), nil
}

// The flag producing instructions write VF after the result, so that VF used as
// destination register ends up holding the flag.

// 8xy4 - ADD Vx, Vy
func (p *Processor) addRegister(op opcode, _ *Result) (Transition, error) {
	sum := uint16(p.v[op.x()]) + uint16(p.v[op.y()])
	p.v[op.x()] = byte(sum)
	p.v[FlagRegister] = boolToFlag(sum > 0xFF)
	return next(), nil
}

// 8xy5 - SUB Vx, Vy
func (p *Processor) subtract(op opcode, _ *Result) (Transition, error) {
	vx, vy := p.v[op.x()], p.v[op.y()]
	p.v[op.x()] = vx - vy
	p.v[FlagRegister] = boolToFlag(vx >= vy)
	return next(), nil
}

// 8xy6 - SHR Vx
func (p *Processor) shiftRight(op opcode, _ *Result) (Transition, error) {
	vx := p.v[op.x()]
	p.v[op.x()] = vx >> 1
	p.v[FlagRegister] = vx & 0x01
	return next(), nil
}

// 8xy7 - SUBN Vx, Vy
func (p *Processor) subtractReverse(op opcode, _ *Result) (Transition, error) {
	vx, vy := p.v[op.x()], p.v[op.y()]
	p.v[op.x()] = vy - vx
	p.v[FlagRegister] = boolToFlag(vy >= vx)
	return next(), nil
}

// 8xyE - SHL Vx
func (p *Processor) shiftLeft(op opcode, _ *Result) (Transition, error) {
	vx := p.v[op.x()]
	p.v[op.x()] = vx << 1
	p.v[FlagRegister] = vx >> 7
	return next(), nil
}

// 9xy0 - SNE Vx, Vy
func (p *Processor) skipIfNotEqualRegister(op opcode, _ *Result) (Transition, error) {
	return skipIf(p.v[op.x()] != p.v[op.y()]), nil
}

// Annn - LD I, addr
func (p *Processor) loadIndex(op opcode, _ *Result) (Transition, error) {
	p.i = op.nnn()
	return next(), nil
}

// Bnnn - JP V0, addr
func (p *Processor) jumpWithOffset(op opcode, _ *Result) (Transition, error) {
	return jump(op.nnn() + uint16(p.v[0])), nil
}

// Cxkk - RND Vx, byte
func (p *Processor) randomByte(op opcode, _ *Result) (Transition, error) {
	p.v[op.x()] = p.random.Byte() & op.kk()
	return next(), nil
}

// Dxyn - DRW Vx, Vy, nibble
func (p *Processor) drawSprite(op opcode, res *Result) (Transition, error) {
	start := int(p.i)
	end := start + int(op.n())
	if end > MemorySize {
		return Transition{}, fmt.Errorf("%w: sprite $%04X-$%04X", ErrMemoryBounds, start, end-1)
	}

	drawn := p.display.Draw(int(p.v[op.x()]), int(p.v[op.y()]), p.memory[start:end])
	p.v[FlagRegister] = boolToFlag(drawn.Collision)

	res.Pixels = drawn.Pixels
	res.Collision = drawn.Collision
	return next(), nil
}

// Ex9E - SKP Vx
func (p *Processor) skipIfKeyPressed(op opcode, _ *Result) (Transition, error) {
	return skipIf(p.isKeyPressed(p.v[op.x()])), nil
}

// ExA1 - SKNP Vx
func (p *Processor) skipIfKeyNotPressed(op opcode, _ *Result) (Transition, error) {
	return skipIf(!p.isKeyPressed(p.v[op.x()])), nil
}

// Fx07 - LD Vx, DT
func (p *Processor) loadDelayTimer(op opcode, _ *Result) (Transition, error) {
	p.v[op.x()] = p.delayTimer
	return next(), nil
}

// Fx0A - LD Vx, K
func (p *Processor) waitForKey(op opcode, _ *Result) (Transition, error) {
	if !p.keyPressed {
		return Transition{Kind: Block}, nil
	}
	p.v[op.x()] = byte(p.currentKey)
	return next(), nil
}

// Fx15 - LD DT, Vx
func (p *Processor) setDelayTimer(op opcode, _ *Result) (Transition, error) {
	p.delayTimer = p.v[op.x()]
	return next(), nil
}

// Fx18 - LD ST, Vx
func (p *Processor) setSoundTimer(op opcode, _ *Result) (Transition, error) {
	p.soundTimer = p.v[op.x()]
	return next(), nil
}

// Fx1E - ADD I, Vx
func (p *Processor) addIndex(op opcode, _ *Result) (Transition, error) {
	p.i += uint16(p.v[op.x()])
	return next(), nil
}

// Fx29 - LD F, Vx
func (p *Processor) loadFontGlyph(op opcode, _ *Result) (Transition, error) {
	digit := uint16(p.v[op.x()] & 0x0F)
	p.i = FontAddress + digit*fontGlyphSize
	return next(), nil
}

// Fx33 - LD B, Vx
func (p *Processor) storeBCD(op opcode, _ *Result) (Transition, error) {
	start := int(p.i)
	if start+3 > MemorySize {
		return Transition{}, fmt.Errorf("%w: BCD store at $%04X", ErrMemoryBounds, start)
	}

	value := p.v[op.x()]
	p.memory[start] = value / 100
	p.memory[start+1] = value / 10 % 10
	p.memory[start+2] = value % 10
	return next(), nil
}

// Fx55 - LD [I], Vx. Stores V0 through Vx inclusive, I is not changed.
func (p *Processor) storeRegisters(op opcode, _ *Result) (Transition, error) {
	start, count := int(p.i), int(op.x())+1
	if start+count > MemorySize {
		return Transition{}, fmt.Errorf("%w: register store at $%04X", ErrMemoryBounds, start)
	}

	copy(p.memory[start:start+count], p.v[:count])
	return next(), nil
}

// Fx65 - LD Vx, [I]. Loads V0 through Vx inclusive, I is not changed.
func (p *Processor) loadRegisters(op opcode, _ *Result) (Transition, error) {
	start, count := int(p.i), int(op.x())+1
	if start+count > MemorySize {
		return Transition{}, fmt.Errorf("%w: register load at $%04X", ErrMemoryBounds, start)
	}

	copy(p.v[:count], p.memory[start:start+count])
	return next(), nil
}

func boolToFlag(b bool) byte {
	if b {
		return 1
	}
	return 0
}
