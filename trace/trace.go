// Package trace formats CPU state for debug output.
//
// Every function in this package is pure: it derives text from the
// snapshot it is given and keeps no state between calls.
package trace

import (
	"fmt"
	"strings"

	"github.com/OfficialPixelBrush/Pix80Emu/arch"
	"github.com/OfficialPixelBrush/Pix80Emu/cpu"
)

// Verbosity selects how much detail Format produces.
type Verbosity int

// Known verbosity levels.
const (
	Compact  Verbosity = iota // Registers, program counter and bank.
	Expanded                  // Compact plus a flag by flag decode.
)

// Snapshot is the state Format works from.
type Snapshot struct {
	cpu.Registers
	Bank int // Selected bank.
}

// Format renders s at the given verbosity.
func Format(s Snapshot, v Verbosity) string {
	var sb strings.Builder
	sb.Grow(96)

	fmt.Fprintf(&sb, "A=%02X F=%02X BC=%04X DE=%04X HL=%04X SP=%04X PC=%04X BANK=%d",
		s.A, s.F, s.BC(), s.DE(), s.HL(), s.SP, s.PC, s.Bank)

	if v >= Expanded {
		sb.WriteString(" [")
		sb.WriteString(Flags(s.F))
		sb.WriteString("]")

		if s.Halted {
			sb.WriteString(" HALT")
		}
		if s.IFF1 {
			sb.WriteString(" EI")
		}
	}

	return sb.String()
}

// Flags renders the flag register as eight letters, sign first and carry
// last. A letter is upper case if its flag is set.
func Flags(f byte) string {
	var b [8]byte

	for i := range b {
		c := arch.FlagLetters[i]
		if f&(0x80>>i) == 0 {
			c += 'a' - 'A'
		}
		b[i] = c
	}

	return string(b[:])
}

// Instruction renders the opcode at pc with its immediate operand bytes,
// for example "0003  D3 02     OUT (n),A".
func Instruction(pc uint16, code []byte) string {
	if len(code) == 0 {
		return fmt.Sprintf("%04X  ??", pc)
	}

	name, ok := arch.Name(int(code[0]))
	if !ok {
		name = "?"
	}

	n := arch.Argc(int(code[0])) + 1
	if n < 1 {
		n = 1
	}
	if n > len(code) {
		n = len(code)
	}

	var hex strings.Builder
	for i, v := range code[:n] {
		if i > 0 {
			hex.WriteByte(' ')
		}
		fmt.Fprintf(&hex, "%02X", v)
	}

	return fmt.Sprintf("%04X  %-9s %s", pc, hex.String(), name)
}
