// Package instruction provides CHIP-8 instruction naming and text formatting.
// Mnemonics are resolved through the retrogolib CHIP-8 opcode table.
package instruction

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Size is the size of CHIP-8 instructions in bytes.
const Size = 2

// Lookup returns the instruction definition matching the opcode word,
// or nil if the word is not a known instruction.
func Lookup(word uint16) *chip8.Instruction {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value {
			return op.Instruction
		}
	}
	return nil
}

// Name returns the mnemonic of the opcode word or an empty string for unknown words.
func Name(word uint16) string {
	ins := Lookup(word)
	if ins == nil {
		return ""
	}
	return ins.Name
}

// IsSkip returns true if the opcode word is a conditional skip instruction.
func IsSkip(word uint16) bool {
	ins := Lookup(word)
	if ins == nil {
		return false
	}
	return chip8.SkipInstructions.Contains(ins.Name)
}

// Format returns the assembly text of the opcode word, for example "ld V1, $02".
// Unknown words are formatted as a data word directive.
func Format(word uint16) string {
	name := Name(word)
	if name == "" {
		return fmt.Sprintf(".word $%04X", word)
	}
	if params := formatParams(word); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// formatParams returns the formatted operands of the opcode word.
func formatParams(word uint16) string {
	x := extractRegisterX(word)
	y := extractRegisterY(word)

	switch word & 0xF000 {
	case 0x0000:
		return "" // CLS, RET
	case 0x1000, 0x2000:
		return fmt.Sprintf("$%03X", word&0x0FFF)
	case 0x3000, 0x4000, 0x6000, 0x7000, 0xC000:
		return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0x8000:
		return formatArithmeticParams(word, x, y)
	case 0xA000:
		return fmt.Sprintf("I, $%03X", word&0x0FFF)
	case 0xB000:
		return fmt.Sprintf("V0, $%03X", word&0x0FFF)
	case 0xD000:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, word&0x000F)
	case 0xE000:
		return fmt.Sprintf("V%X", x)
	case 0xF000:
		return formatMiscParams(word, x)
	}
	return ""
}

// formatArithmeticParams formats the 8xyN register instructions. Shifts only
// operate on Vx.
func formatArithmeticParams(word, x, y uint16) string {
	switch word & 0x000F {
	case 0x6, 0xE:
		return fmt.Sprintf("V%X", x)
	default:
		return fmt.Sprintf("V%X, V%X", x, y)
	}
}

// formatMiscParams formats the FxNN timer, key, index and transfer instructions.
func formatMiscParams(word, x uint16) string {
	switch word & 0x00FF {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x1E:
		return fmt.Sprintf("I, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}

// extractRegisterX extracts the X register nibble from a CHIP-8 opcode.
func extractRegisterX(word uint16) uint16 {
	return (word & 0x0F00) >> 8
}

// extractRegisterY extracts the Y register nibble from a CHIP-8 opcode.
func extractRegisterY(word uint16) uint16 {
	return (word & 0x00F0) >> 4
}
