package trace

import (
	"testing"

	"github.com/OfficialPixelBrush/Pix80Emu/arch"
	"github.com/OfficialPixelBrush/Pix80Emu/cpu"
)

func TestFlags(t *testing.T) {
	for _, tc := range []struct {
		f    byte
		want string
	}{
		{0x00, "szyhxpnc"},
		{0xff, "SZYHXPNC"},
		{arch.FlagZ | arch.FlagC, "sZyhxpnC"},
		{arch.FlagS | arch.FlagPV | arch.FlagN, "SzyhxPNc"},
	} {
		have := Flags(tc.f)
		if have != tc.want {
			t.Fatalf("flags mismatch for %02x:\nwant: %q\nhave: %q", tc.f, tc.want, have)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	s := Snapshot{
		Registers: cpu.Registers{
			A: 0x41, F: 0x44,
			B: 0x12, C: 0x34,
			D: 0x56, E: 0x78,
			H: 0x9a, L: 0xbc,
			SP: 0xfffe, PC: 0x0005,
		},
		Bank: 3,
	}

	want := "A=41 F=44 BC=1234 DE=5678 HL=9ABC SP=FFFE PC=0005 BANK=3"
	have := Format(s, Compact)
	if have != want {
		t.Fatalf("format mismatch:\nwant: %q\nhave: %q", want, have)
	}
}

func TestFormatExpanded(t *testing.T) {
	s := Snapshot{
		Registers: cpu.Registers{
			F:      arch.FlagZ,
			SP:     0xffff,
			Halted: true,
		},
	}

	want := "A=00 F=40 BC=0000 DE=0000 HL=0000 SP=FFFF PC=0000 BANK=0 [sZyhxpnc] HALT"
	have := Format(s, Expanded)
	if have != want {
		t.Fatalf("format mismatch:\nwant: %q\nhave: %q", want, have)
	}
}

func TestFormatPure(t *testing.T) {
	a := Snapshot{Registers: cpu.Registers{F: 0xff}}
	b := Snapshot{Registers: cpu.Registers{F: 0x00}}

	fa := Format(a, Expanded)
	fb := Format(b, Expanded)

	if Format(a, Expanded) != fa || Format(b, Expanded) != fb {
		t.Fatalf("format output depends on previous calls")
	}
	if fa == fb {
		t.Fatalf("expected distinct output for distinct flags")
	}
}

func TestInstruction(t *testing.T) {
	for _, tc := range []struct {
		pc   uint16
		code []byte
		want string
	}{
		{0x0003, []byte{arch.OUTnA, 0x02, 0x76}, "0003  D3 02     OUT (n),A"},
		{0x0000, []byte{arch.HALT}, "0000  76        HALT"},
		{0x0010, []byte{arch.JP, 0x00, 0x01}, "0010  C3 00 01  JP nn"},
		{0x0020, nil, "0020  ??"},
	} {
		have := Instruction(tc.pc, tc.code)
		if have != tc.want {
			t.Fatalf("instruction mismatch:\nwant: %q\nhave: %q", tc.want, have)
		}
	}
}
