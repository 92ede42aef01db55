// Package frontend holds what the host side front ends share: the key
// translation and the interfaces they are driven through.
package frontend

import "github.com/OfficialPixelBrush/Pix80Emu/devices/terminal"

// Sink receives translated key presses.
type Sink interface {
	Key(value byte)
}

// Screen is a character display as seen by a front end.
type Screen interface {
	// Text returns the visible characters, one string per row.
	Text() []string

	// Cursor returns the cursor position and whether it is visible.
	Cursor() (row, col int, visible bool)
}

// Keyboard translates host key presses into terminal key codes.
// Letters are delivered as typed; caps lock swaps their case.
type Keyboard struct {
	capsLock bool
}

// CapsLock toggles the caps lock state.
func (k *Keyboard) CapsLock() {
	k.capsLock = !k.capsLock
}

// Char returns the code for a printable character.
// Returns 0 if the character has no terminal code.
func (k *Keyboard) Char(r rune) byte {
	if r < ' ' || r > '~' {
		return 0
	}

	b := byte(r)
	if k.capsLock {
		switch {
		case b >= 'a' && b <= 'z':
			b -= 'a' - 'A'
		case b >= 'A' && b <= 'Z':
			b += 'a' - 'A'
		}
	}

	return b
}

// Byte translates a byte read from a raw terminal. quit is set for the
// keys that end the session: Escape, which is still delivered, and
// Ctrl-C, which is not.
func (k *Keyboard) Byte(b byte) (value byte, quit bool) {
	switch b {
	case 0x03:
		return 0, true
	case terminal.KeyEscape:
		return terminal.KeyEscape, true
	case 0x7f, terminal.KeyBackspace:
		return terminal.KeyBackspace, false
	case '\r', '\n':
		return terminal.KeyReturn, false
	}
	return k.Char(rune(b)), false
}
