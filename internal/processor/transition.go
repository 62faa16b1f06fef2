package processor

// TransitionKind selects how the program counter changes after an instruction.
type TransitionKind uint8

// Program counter transitions.
const (
	// Next advances to the following instruction.
	Next TransitionKind = iota
	// Skip advances past the following instruction.
	Skip
	// Block keeps the program counter on the current instruction so that it
	// executes again on the next cycle.
	Block
	// Jump sets the program counter to an explicit address.
	Jump
)

// String returns the name of the transition kind.
func (k TransitionKind) String() string {
	switch k {
	case Next:
		return "next"
	case Skip:
		return "skip"
	case Block:
		return "block"
	case Jump:
		return "jump"
	default:
		return "unknown"
	}
}

// Transition is the program counter outcome of an executed instruction.
// Instruction handlers only return it, Execute applies it.
type Transition struct {
	Kind    TransitionKind
	Address uint16 // target for Jump
}

func next() Transition {
	return Transition{Kind: Next}
}

func jump(address uint16) Transition {
	return Transition{Kind: Jump, Address: address}
}

func skipIf(condition bool) Transition {
	if condition {
		return Transition{Kind: Skip}
	}
	return Transition{Kind: Next}
}

// apply returns the program counter that follows pc.
func (t Transition) apply(pc uint16) uint16 {
	switch t.Kind {
	case Skip:
		return pc + 2*InstructionSize
	case Block:
		return pc // the normal advance, retreated by one instruction
	case Jump:
		return t.Address
	default:
		return pc + InstructionSize
	}
}
