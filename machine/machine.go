// Package machine assembles a Pix80 system and runs its tick loop.
package machine

import (
	"io"
	"log"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/OfficialPixelBrush/Pix80Emu/bus"
	"github.com/OfficialPixelBrush/Pix80Emu/cpu"
	"github.com/OfficialPixelBrush/Pix80Emu/cpu/z80"
	"github.com/OfficialPixelBrush/Pix80Emu/devices"
	"github.com/OfficialPixelBrush/Pix80Emu/devices/bank"
	"github.com/OfficialPixelBrush/Pix80Emu/devices/lcd"
	"github.com/OfficialPixelBrush/Pix80Emu/devices/terminal"
	"github.com/OfficialPixelBrush/Pix80Emu/memory"
	"github.com/OfficialPixelBrush/Pix80Emu/trace"
)

// Machine owns every component of the system. It is not safe for
// concurrent use, except for Stop and Running.
type Machine struct {
	config   Config
	space    *memory.Space
	bank     *memory.Bank
	irq      *bus.Interrupt
	devices  devices.Map
	arbiter  *bus.Arbiter
	core     cpu.Core
	terminal *terminal.Device
	display  lcd.Controller
	pins     bus.Request   // Pins as the bus left them after the last tick.
	started  uint32        // Set between Startup and Shutdown.
	running  uint32        // Cleared to stop Run.
	stopped  uint32        // Set by Stop, cleared by Startup.
	wake     chan struct{} // Interrupts the inter-tick delay.
	start    time.Time     // Start of the current run.
	ticks    uint64        // Ticks in the current run.
}

// New creates a machine for the given configuration.
func New(c Config) (*Machine, error) {
	space, err := memory.New(c.Layout)
	if err != nil {
		return nil, errors.Wrap(err, "machine")
	}

	if c.Refresh <= 0 {
		c.Refresh = DefaultRefresh
	}

	if c.Log == nil {
		c.Log = log.Default()
	}

	if c.Display == nil {
		c.Display = lcd.NewHD44780()
	}

	if c.Core == nil {
		c.Core = z80.New()
	}

	var m Machine
	m.config = c
	m.space = space
	m.bank = memory.NewBank(c.Layout.Banks, c.BankPolicy)
	m.irq = bus.NewInterrupt(c.Vector)
	m.core = c.Core
	m.display = c.Display
	m.terminal = terminal.New(c.Output)
	m.wake = make(chan struct{}, 1)

	cmd := lcd.New(m.display, devices.LCDCommand)
	cmd.StatusRead = c.LCDStatus
	m.devices.Connect(cmd)
	m.devices.Connect(lcd.New(m.display, devices.LCDData))
	m.devices.Connect(m.terminal)

	if c.Layout.Banks > 0 {
		m.devices.Connect(bank.New(m.bank))
	}

	m.arbiter = bus.NewArbiter(m.space, m.bank, m.devices, m.irq, c.DeviceID)

	if c.Verbose >= Anomalies {
		m.space.Log = c.Log
		m.arbiter.Log = c.Log
	}

	return &m, nil
}

// LoadROM copies a ROM image into the ROM region. Images larger than the
// region are truncated; this is logged but not an error.
func (m *Machine) LoadROM(r io.Reader) error {
	n, truncated, err := m.space.LoadROM(r)
	return m.loaded(n, truncated, err)
}

// LoadROMFile loads the ROM image in the given file.
func (m *Machine) LoadROMFile(file string) error {
	n, truncated, err := m.space.LoadROMFile(file)
	return m.loaded(n, truncated, err)
}

func (m *Machine) loaded(n int, truncated bool, err error) error {
	if err != nil {
		return err
	}

	if truncated && m.config.Verbose >= Lifecycle {
		m.config.Log.Printf("rom: image truncated to %d bytes", n)
	}

	return nil
}

// Startup resets the core and starts the devices.
func (m *Machine) Startup() error {
	if !atomic.CompareAndSwapUint32(&m.started, 0, 1) {
		return errors.New("machine: already started")
	}

	logger := m.lifecycle()
	if logger != nil {
		logger.Println("machine startup")
	}

	atomic.StoreUint32(&m.stopped, 0)
	m.space.Reset()
	m.irq.Reset()
	m.pins = m.core.Init()

	return m.devices.Startup(m.irq.Raise, logger)
}

// Shutdown stops execution and shuts the devices down.
func (m *Machine) Shutdown() error {
	if !atomic.CompareAndSwapUint32(&m.started, 1, 0) {
		return nil
	}

	m.Stop()

	logger := m.lifecycle()
	if logger != nil {
		logger.Println("machine shutdown")
	}

	return m.devices.Shutdown(logger)
}

// lifecycle returns the logger for startup and shutdown messages, nil if
// they are not wanted.
func (m *Machine) lifecycle() *log.Logger {
	if m.config.Verbose >= Lifecycle {
		return m.config.Log
	}
	return nil
}

// Step performs a single tick: the core issues one bus cycle and the
// arbiter services it.
func (m *Machine) Step() {
	m.pins.INT = m.irq.Pending()
	r := m.core.Tick(m.pins)

	if m.config.Verbose >= Trace && r.M1 && r.MREQ {
		m.trace(r.Address)
	}

	m.pins = m.arbiter.Service(r)
	m.ticks++
}

// RunUntilHalt steps the machine until the core halts.
// Returns the number of ticks executed, or an error if the core did not
// halt within limit ticks.
func (m *Machine) RunUntilHalt(limit int) (int, error) {
	for i := 1; i <= limit; i++ {
		m.Step()
		if m.Halted() {
			return i, nil
		}
	}
	return limit, errors.Errorf("machine: no halt after %d ticks", limit)
}

// Running returns true while Run is executing.
func (m *Machine) Running() bool {
	return atomic.LoadUint32(&m.running) == 1
}

// Stop makes Run return after the current tick. A Stop issued before Run
// makes the next Run return at once. It may be called from any goroutine.
func (m *Machine) Stop() {
	atomic.StoreUint32(&m.stopped, 1)
	atomic.StoreUint32(&m.running, 0)

	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// Frequency returns the tick rate of the current run in herz.
func (m *Machine) Frequency() float64 {
	if !m.Running() {
		return 0
	}
	return float64(m.ticks) / time.Since(m.start).Seconds()
}

// Key delivers a key press to the terminal port, which raises the
// interrupt line.
func (m *Machine) Key(value byte) {
	m.terminal.Key(value)
}

// Halted returns true if the core is halted.
func (m *Machine) Halted() bool {
	return m.core.Registers().Halted
}

// Registers returns the core's registers.
func (m *Machine) Registers() cpu.Registers {
	return m.core.Registers()
}

// Snapshot returns the state shown in debug traces.
func (m *Machine) Snapshot() trace.Snapshot {
	return trace.Snapshot{
		Registers: m.core.Registers(),
		Bank:      m.bank.Index(),
	}
}

// Peek reads memory at addr as the core currently sees it.
func (m *Machine) Peek(addr uint16) byte {
	return m.space.Read(addr, m.bank.Index())
}

// Bank returns the selected bank.
func (m *Machine) Bank() int {
	return m.bank.Index()
}

// Terminal returns the terminal port.
func (m *Machine) Terminal() *terminal.Device {
	return m.terminal
}

// Display returns the LCD controller.
func (m *Machine) Display() lcd.Controller {
	return m.display
}

// Interrupt returns the interrupt line.
func (m *Machine) Interrupt() *bus.Interrupt {
	return m.irq
}

func (m *Machine) trace(pc uint16) {
	var code [3]byte
	for i := range code {
		code[i] = m.space.Read(pc+uint16(i), m.bank.Index())
	}

	// The core has moved past the opcode already.
	s := m.Snapshot()
	s.PC = pc

	m.config.Log.Printf("%-30s %s",
		trace.Instruction(pc, code[:]),
		trace.Format(s, trace.Expanded))
}
