package frontend

import (
	"testing"

	"github.com/OfficialPixelBrush/Pix80Emu/devices/terminal"
)

func TestChar(t *testing.T) {
	var k Keyboard

	for _, tc := range []struct {
		in   rune
		want byte
	}{
		{'a', 'a'},
		{'Z', 'Z'},
		{' ', ' '},
		{'~', '~'},
		{'é', 0},
		{'\t', 0},
	} {
		if have := k.Char(tc.in); have != tc.want {
			t.Fatalf("char %q:\nwant: %02x\nhave: %02x", tc.in, tc.want, have)
		}
	}
}

func TestCapsLock(t *testing.T) {
	var k Keyboard
	k.CapsLock()

	if have := k.Char('a'); have != 'A' {
		t.Fatalf("caps lock a:\nwant: %q\nhave: %q", 'A', have)
	}
	if have := k.Char('Q'); have != 'q' {
		t.Fatalf("caps lock Q:\nwant: %q\nhave: %q", 'q', have)
	}
	if have := k.Char('1'); have != '1' {
		t.Fatalf("caps lock 1:\nwant: %q\nhave: %q", '1', have)
	}

	k.CapsLock()
	if have := k.Char('a'); have != 'a' {
		t.Fatalf("caps lock off:\nwant: %q\nhave: %q", 'a', have)
	}
}

func TestByte(t *testing.T) {
	var k Keyboard

	for _, tc := range []struct {
		in   byte
		want byte
		quit bool
	}{
		{'x', 'x', false},
		{'\r', terminal.KeyReturn, false},
		{'\n', terminal.KeyReturn, false},
		{0x7f, terminal.KeyBackspace, false},
		{0x08, terminal.KeyBackspace, false},
		{0x1b, terminal.KeyEscape, true},
		{0x03, 0, true},
		{0x01, 0, false},
	} {
		have, quit := k.Byte(tc.in)
		if have != tc.want || quit != tc.quit {
			t.Fatalf("byte %02x:\nwant: %02x %v\nhave: %02x %v", tc.in, tc.want, tc.quit, have, quit)
		}
	}
}
