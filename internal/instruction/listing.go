package instruction

import (
	"fmt"
	"io"
)

// skipIndent prefixes instructions that a preceding skip can jump over.
const skipIndent = "  "

// Listing writes a linear listing of the program, one instruction word per line
// with its address, raw word and formatted text. Data embedded in the program is
// listed as instructions as well, a trailing odd byte is listed as a data byte.
// The instruction following a conditional skip is indented.
func Listing(w io.Writer, program []byte, baseAddress uint16) error {
	var conditional bool
	for offset := 0; offset < len(program); offset += Size {
		address := int(baseAddress) + offset

		if offset+1 >= len(program) {
			b := program[offset]
			if _, err := fmt.Fprintf(w, "%04X  %02X    .byte $%02X\n", address, b, b); err != nil {
				return fmt.Errorf("writing listing line: %w", err)
			}
			break
		}

		word := uint16(program[offset])<<8 | uint16(program[offset+1])
		indent := ""
		if conditional {
			indent = skipIndent
		}
		if _, err := fmt.Fprintf(w, "%04X  %04X  %s%s\n", address, word, indent, Format(word)); err != nil {
			return fmt.Errorf("writing listing line: %w", err)
		}
		conditional = IsSkip(word)
	}
	return nil
}
