// Package lcd implements the character display ports and a model of the
// HD44780 display controller behind them.
package lcd

import "github.com/OfficialPixelBrush/Pix80Emu/devices"

// Controller defines the interface of a character display controller.
type Controller interface {
	// Command writes to the instruction register.
	Command(value byte)

	// WriteData writes to display or character generator memory.
	WriteData(value byte)

	// ReadData reads from display or character generator memory.
	ReadData() byte

	// ReadStatus returns the busy flag and the address counter.
	ReadStatus() byte
}

// Device is one register port of a display controller. Bit 0 of the
// device id drives the controller's register select line for writes: 0
// addresses the instruction register, 1 the data register.
//
// Reads return the data register on both ports, as the board does. With
// StatusRead set, reads from the command port return the status register
// instead.
type Device struct {
	StatusRead bool

	ctrl Controller
	id   devices.ID
}

var (
	_ devices.Device = &Device{}
	_ devices.Input  = &Device{}
	_ devices.Output = &Device{}
)

// New creates the port with the given id for ctrl.
func New(ctrl Controller, id devices.ID) *Device {
	return &Device{ctrl: ctrl, id: id}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return d.id
}

// Startup does nothing; the controller keeps its state across restarts
// like the real part does.
func (d *Device) Startup(devices.IntFunc) error {
	return nil
}

// Shutdown does nothing.
func (d *Device) Shutdown() error {
	return nil
}

// Out forwards value as a command or a data byte.
func (d *Device) Out(value byte) {
	if d.isData() {
		d.ctrl.WriteData(value)
	} else {
		d.ctrl.Command(value)
	}
}

// In reads the data register, or the status register for the command
// port if StatusRead is set.
func (d *Device) In() byte {
	if d.StatusRead && !d.isData() {
		return d.ctrl.ReadStatus()
	}
	return d.ctrl.ReadData()
}

func (d *Device) isData() bool {
	return d.id&1 == 1
}
