package processor

import "fmt"

// KeyCount is the number of keys on the hexadecimal keypad.
const KeyCount = 16

// Key is a key of the hexadecimal keypad, valid values are 0x0 to 0xF.
type Key uint8

// Keypad keys.
const (
	Key0 Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
)

// KeyDown marks the key as pressed and records it as the current key.
func (p *Processor) KeyDown(k Key) error {
	if k >= KeyCount {
		return fmt.Errorf("%w: %d", ErrInvalidKey, k)
	}
	p.keys[k] = true
	p.currentKey = k
	p.keyPressed = true
	return nil
}

// KeyUp marks the key as released. The current key is only cleared if it is
// the released key.
func (p *Processor) KeyUp(k Key) error {
	if k >= KeyCount {
		return fmt.Errorf("%w: %d", ErrInvalidKey, k)
	}
	p.keys[k] = false
	if p.keyPressed && p.currentKey == k {
		p.keyPressed = false
		p.currentKey = 0
	}
	return nil
}

// isKeyPressed returns whether the key with the given register value is down.
// Values outside of the keypad are never pressed.
func (p *Processor) isKeyPressed(value byte) bool {
	if value >= KeyCount {
		return false
	}
	return p.keys[value]
}
