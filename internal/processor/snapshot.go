package processor

// State is a copy of the processor registers, stack and key state.
type State struct {
	PC         uint16
	I          uint16
	V          [RegisterCount]byte
	DelayTimer byte
	SoundTimer byte
	SP         int
	Stack      []uint16 // return addresses, oldest first
	Keys       [KeyCount]bool
	CurrentKey Key
	KeyPressed bool // CurrentKey is valid
}

// Snapshot returns a copy of the current processor state.
func (p *Processor) Snapshot() State {
	stack := make([]uint16, p.sp)
	copy(stack, p.stack[:p.sp])

	return State{
		PC:         p.pc,
		I:          p.i,
		V:          p.v,
		DelayTimer: p.delayTimer,
		SoundTimer: p.soundTimer,
		SP:         p.sp,
		Stack:      stack,
		Keys:       p.keys,
		CurrentKey: p.currentKey,
		KeyPressed: p.keyPressed,
	}
}
