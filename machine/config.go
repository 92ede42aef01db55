package machine

import (
	"io"
	"log"
	"time"

	"github.com/OfficialPixelBrush/Pix80Emu/bus"
	"github.com/OfficialPixelBrush/Pix80Emu/cpu"
	"github.com/OfficialPixelBrush/Pix80Emu/devices/lcd"
	"github.com/OfficialPixelBrush/Pix80Emu/memory"
)

// DefaultRefresh is the display refresh interval.
const DefaultRefresh = 16 * time.Millisecond

// Verbosity levels understood by Config.Verbose.
const (
	Quiet     = iota // Startup errors only.
	Lifecycle        // Device startup and shutdown, ROM truncation.
	Anomalies        // Recoverable bus anomalies.
	Trace            // Every instruction fetch.
)

// Config defines the hardware and runtime settings of a machine.
type Config struct {
	Layout     memory.Layout     // Memory map of the board revision.
	DeviceID   bus.DeviceIDFunc  // Port decoding. Nil selects bus.Low3.
	BankPolicy memory.BankPolicy // Handling of out of range bank numbers.
	Vector     byte              // Byte placed on the bus for interrupt acknowledge.
	Delay      time.Duration     // Sleep between ticks.
	Refresh    time.Duration     // Minimum time between display refreshes.
	StopOnHalt bool              // Stop Run once the core halts with interrupts disabled.
	Verbose    int               // Logging level.
	Log        *log.Logger       // Destination for anomalies and traces. Nil selects the standard logger.
	Output     io.Writer         // Host side of the terminal port. Nil discards output.
	LCDStatus  bool              // Reads from the LCD command port return the status register instead of data.
	Display    lcd.Controller    // Nil selects a new HD44780.
	Core       cpu.Core          // Nil selects the Z80 core.
}

// Flat returns the configuration of the unbanked board: 32k ROM, 32k RAM
// and ports decoded from the three lowest address bits.
func Flat() Config {
	return Config{
		Layout:   memory.Flat(),
		DeviceID: bus.Low3,
		Vector:   bus.DefaultVector,
		Refresh:  DefaultRefresh,
	}
}

// SingleBank returns the configuration of the board with one switchable
// RAM window.
func SingleBank() Config {
	c := Flat()
	c.Layout = memory.SingleBank()
	c.DeviceID = bus.Low7
	return c
}

// Banked returns the configuration of the board with sixteen RAM banks
// in the upper window. Ports with bit 7 set select the bank.
func Banked() Config {
	c := Flat()
	c.Layout = memory.Banked()
	c.DeviceID = bus.HighBitBank
	return c
}

// Revision returns the configuration preset with the given name:
// "flat", "single" or "banked". Returns false if the name is not
// recognized.
func Revision(name string) (Config, bool) {
	switch name {
	case "flat":
		return Flat(), true
	case "single":
		return SingleBank(), true
	case "banked":
		return Banked(), true
	}
	return Config{}, false
}
