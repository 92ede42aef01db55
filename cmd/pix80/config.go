package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/OfficialPixelBrush/Pix80Emu/bus"
	"github.com/OfficialPixelBrush/Pix80Emu/machine"
	"github.com/OfficialPixelBrush/Pix80Emu/memory"
)

// Front ends selectable with -frontend.
const (
	FrontendWindow   = "window"
	FrontendTUI      = "tui"
	FrontendHeadless = "headless"
)

// Config defines program configuration.
type Config struct {
	ROM        string        // Path to the ROM image to load.
	Revision   string        // Board revision preset.
	Ports      string        // Port decoding override; empty keeps the preset's.
	BankPolicy string        // Handling of out of range bank numbers.
	Delay      time.Duration // Sleep between ticks.
	Debug      int           // Logging level.
	Frontend   string        // Host front end.
	Scale      int           // Pixel scale factor of the window.
	StopOnHalt bool          // Exit once the program halts with interrupts disabled.
	LCDStatus  bool          // LCD command port reads return the status register.
	Statsview  string        // Address of the runtime statistics server; empty disables it.
	Version    bool          // Print version information and exit.
}

// parseArgs parses command line arguments. The ROM path may be followed by
// a delay in milliseconds, which overrides -delay.
//
// Usage errors are written to out.
func parseArgs(args []string, out io.Writer) (*Config, error) {
	var c Config
	c.Revision = "flat"
	c.BankPolicy = memory.Clamp.String()
	c.Frontend = FrontendWindow
	c.Scale = 2

	fs := flag.NewFlagSet(AppName, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(out, "%s [options] <rom file> [delay ms]\n", AppName)
		fs.PrintDefaults()
	}

	fs.StringVar(&c.Revision, "revision", c.Revision, "Board revision: flat, single or banked.")
	fs.StringVar(&c.Ports, "ports", c.Ports, "Port decoding: low3, low7 or highbit. Defaults to the revision's.")
	fs.StringVar(&c.BankPolicy, "bank-policy", c.BankPolicy, "Out of range bank numbers: clamp or mask.")
	fs.DurationVar(&c.Delay, "delay", c.Delay, "Delay between CPU ticks.")
	fs.IntVar(&c.Debug, "debug", c.Debug, "Debug level: 0 quiet, 1 lifecycle, 2 bus anomalies, 3 instruction trace.")
	fs.StringVar(&c.Frontend, "frontend", c.Frontend, "Front end: window, tui or headless.")
	fs.IntVar(&c.Scale, "scale", c.Scale, "Pixel scale factor of the window.")
	fs.BoolVar(&c.StopOnHalt, "stop-on-halt", c.StopOnHalt, "Exit when the program halts with interrupts disabled.")
	fs.BoolVar(&c.LCDStatus, "lcd-status", c.LCDStatus, "Reads from LCD port 0 return the status register instead of data.")
	fs.StringVar(&c.Statsview, "statsview", c.Statsview, "Serve runtime statistics on this address, e.g. localhost:18066.")
	fs.BoolVar(&c.Version, "version", c.Version, "Display version information.")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if c.Version {
		return &c, nil
	}

	if err := c.positional(fs.Args()); err != nil {
		fmt.Fprintln(out, err)
		fs.Usage()
		return nil, err
	}

	if _, err := c.Machine(); err != nil {
		fmt.Fprintln(out, err)
		return nil, err
	}

	return &c, nil
}

func (c *Config) positional(args []string) error {
	switch len(args) {
	case 0:
		return errors.New("missing rom file")
	case 1:
	case 2:
		ms, err := strconv.Atoi(args[1])
		if err != nil || ms < 0 {
			return errors.Errorf("invalid delay %q", args[1])
		}
		c.Delay = time.Duration(ms) * time.Millisecond
	default:
		return errors.New("too many arguments")
	}

	c.ROM = args[0]

	switch c.Frontend {
	case FrontendWindow, FrontendTUI, FrontendHeadless:
	default:
		return errors.Errorf("unknown frontend %q", c.Frontend)
	}

	return nil
}

// Machine returns the machine configuration selected by c.
func (c *Config) Machine() (machine.Config, error) {
	mc, ok := machine.Revision(c.Revision)
	if !ok {
		return mc, errors.Errorf("unknown revision %q", c.Revision)
	}

	if c.Ports != "" {
		mc.DeviceID = bus.Policy(c.Ports)
		if mc.DeviceID == nil {
			return mc, errors.Errorf("unknown port decoding %q", c.Ports)
		}
	}

	mc.BankPolicy, ok = memory.ParseBankPolicy(c.BankPolicy)
	if !ok {
		return mc, errors.Errorf("unknown bank policy %q", c.BankPolicy)
	}

	mc.Delay = c.Delay
	mc.Verbose = c.Debug
	mc.StopOnHalt = c.StopOnHalt
	mc.LCDStatus = c.LCDStatus
	return mc, nil
}
