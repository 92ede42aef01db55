// Package terminal implements the serial terminal port: bytes written to it
// are shown on the host, bytes typed on the host can be read from it.
package terminal

import (
	"io"
	"log"

	"github.com/OfficialPixelBrush/Pix80Emu/devices"
)

// Key codes delivered for special host keys.
const (
	KeyBackspace = 0x08
	KeyReturn    = 0x0d
	KeyEscape    = 0x1b
)

// Device defines the terminal port.
type Device struct {
	out     io.Writer       // Host side output.
	intFunc devices.IntFunc // Raises the interrupt line on key input.
	key     byte            // Last key received from the host, 0 if none.
}

var (
	_ devices.Device = &Device{}
	_ devices.Input  = &Device{}
	_ devices.Output = &Device{}
)

// New creates a terminal that echoes output to w.
// A nil writer discards output.
func New(w io.Writer) *Device {
	if w == nil {
		w = io.Discard
	}
	return &Device{out: w}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.Terminal
}

// Startup retains the interrupt handler used to signal key input.
func (d *Device) Startup(f devices.IntFunc) error {
	d.intFunc = f
	d.key = 0
	return nil
}

// Shutdown drops the interrupt handler.
func (d *Device) Shutdown() error {
	d.intFunc = nil
	d.key = 0
	return nil
}

// Out emits the given byte to the host.
func (d *Device) Out(value byte) {
	if _, err := d.out.Write([]byte{value}); err != nil {
		log.Println(d.ID(), err)
	}
}

// In returns the last key received from the host and forgets it, so the
// same key press is never delivered twice. Returns 0 if no key is waiting.
func (d *Device) In() byte {
	key := d.key
	d.key = 0
	return key
}

// Key delivers a key press from the host and raises an interrupt.
// A key that was not read yet is overwritten.
func (d *Device) Key(value byte) {
	if value == 0 {
		return
	}

	d.key = value
	if d.intFunc != nil {
		d.intFunc()
	}
}

// Pending returns the key waiting to be read, 0 if none.
func (d *Device) Pending() byte {
	return d.key
}
