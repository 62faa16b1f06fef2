package processor

// opcode is a decoded instruction word. Nibbles are named by their position:
//
//	kind x y n
//	     nnn
//	       kk
type opcode uint16

// kind returns the top nibble that selects the instruction class.
func (o opcode) kind() uint8 {
	return uint8(o >> 12)
}

// x returns the second nibble, the first register index.
func (o opcode) x() uint8 {
	return uint8(o>>8) & 0x0F
}

// y returns the third nibble, the second register index.
func (o opcode) y() uint8 {
	return uint8(o>>4) & 0x0F
}

// n returns the lowest nibble.
func (o opcode) n() uint8 {
	return uint8(o) & 0x0F
}

// kk returns the low byte, the immediate operand.
func (o opcode) kk() byte {
	return byte(o)
}

// nnn returns the low 12 bits, the address operand.
func (o opcode) nnn() uint16 {
	return uint16(o) & 0x0FFF
}
