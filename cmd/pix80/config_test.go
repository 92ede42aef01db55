package main

import (
	"io"
	"testing"
	"time"

	"github.com/OfficialPixelBrush/Pix80Emu/bus"
	"github.com/OfficialPixelBrush/Pix80Emu/devices"
	"github.com/OfficialPixelBrush/Pix80Emu/machine"
	"github.com/OfficialPixelBrush/Pix80Emu/memory"
)

func TestParseDefaults(t *testing.T) {
	c := parseTest(t, "rom.bin")

	if c.ROM != "rom.bin" {
		t.Fatalf("rom mismatch:\nwant: %q\nhave: %q", "rom.bin", c.ROM)
	}

	if c.Frontend != FrontendWindow || c.Revision != "flat" || c.Scale != 2 || c.Delay != 0 {
		t.Fatalf("unexpected defaults: %+v", c)
	}

	mc, err := c.Machine()
	if err != nil {
		t.Fatal(err)
	}

	if mc.Layout != memory.Flat() {
		t.Fatalf("layout mismatch:\nwant: %+v\nhave: %+v", memory.Flat(), mc.Layout)
	}

	if mc.BankPolicy != memory.Clamp {
		t.Fatalf("bank policy mismatch:\nwant: %v\nhave: %v", memory.Clamp, mc.BankPolicy)
	}

	if mc.Verbose != machine.Quiet {
		t.Fatalf("verbosity mismatch:\nwant: %d\nhave: %d", machine.Quiet, mc.Verbose)
	}
}

func TestParseDelayArgument(t *testing.T) {
	c := parseTest(t, "rom.bin", "25")

	if c.Delay != 25*time.Millisecond {
		t.Fatalf("delay mismatch:\nwant: %v\nhave: %v", 25*time.Millisecond, c.Delay)
	}

	c = parseTest(t, "-delay", "3ms", "rom.bin")

	if c.Delay != 3*time.Millisecond {
		t.Fatalf("delay mismatch:\nwant: %v\nhave: %v", 3*time.Millisecond, c.Delay)
	}
}

func TestParseOptions(t *testing.T) {
	c := parseTest(t,
		"-revision", "banked",
		"-ports", "low3",
		"-bank-policy", "mask",
		"-debug", "2",
		"-frontend", "headless",
		"-stop-on-halt",
		"-lcd-status",
		"rom.bin")

	mc, err := c.Machine()
	if err != nil {
		t.Fatal(err)
	}

	if mc.Layout != memory.Banked() {
		t.Fatalf("layout mismatch:\nwant: %+v\nhave: %+v", memory.Banked(), mc.Layout)
	}

	// Port 0x85 decodes to the bank register with the preset's decoding.
	if have, want := mc.DeviceID(0x85), bus.Low3(0x85); have != want {
		t.Fatalf("port decoding mismatch:\nwant: %v\nhave: %v", want, have)
	}

	if mc.DeviceID(0x85) == devices.BankSelect {
		t.Fatalf("port decoding override ignored")
	}

	if mc.BankPolicy != memory.Mask {
		t.Fatalf("bank policy mismatch:\nwant: %v\nhave: %v", memory.Mask, mc.BankPolicy)
	}

	if mc.Verbose != machine.Anomalies || !mc.StopOnHalt || !mc.LCDStatus {
		t.Fatalf("unexpected machine config: verbose=%d stopOnHalt=%v lcdStatus=%v", mc.Verbose, mc.StopOnHalt, mc.LCDStatus)
	}

	if c.Frontend != FrontendHeadless {
		t.Fatalf("frontend mismatch:\nwant: %q\nhave: %q", FrontendHeadless, c.Frontend)
	}
}

func TestParseVersion(t *testing.T) {
	c := parseTest(t, "-version")
	if !c.Version {
		t.Fatalf("version not set")
	}
}

func TestParseErrors(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"a.bin", "b.bin", "10"},
		{"rom.bin", "slow"},
		{"rom.bin", "-5"},
		{"-revision", "huge", "rom.bin"},
		{"-ports", "low9", "rom.bin"},
		{"-bank-policy", "wrap", "rom.bin"},
		{"-frontend", "sdl", "rom.bin"},
		{"-nosuchflag", "rom.bin"},
	} {
		if _, err := parseArgs(args, io.Discard); err == nil {
			t.Fatalf("expected error for %q", args)
		}
	}
}

func TestVersion(t *testing.T) {
	want := AppVendor + " " + AppName + " "
	if have := Version(); len(have) <= len(want) || have[:len(want)] != want {
		t.Fatalf("version mismatch:\nwant prefix: %q\nhave: %q", want, have)
	}
}

func parseTest(t *testing.T, args ...string) *Config {
	t.Helper()

	c, err := parseArgs(args, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	return c
}
