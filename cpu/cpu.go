// Package cpu defines what the machine expects from a CPU core.
package cpu

import "github.com/OfficialPixelBrush/Pix80Emu/bus"

// Core is a CPU driven one bus cycle at a time.
//
// Each call to Tick receives the pins as the bus left them after the
// previous cycle, including read data and the interrupt line, and returns
// the request for the next cycle.
type Core interface {
	// Init resets the core and returns its initial pin state.
	Init() bus.Request

	// Reset puts the core into its power on state.
	Reset()

	// Tick advances the core by one bus cycle.
	Tick(pins bus.Request) bus.Request

	// Registers returns a snapshot of the programmer visible state.
	Registers() Registers
}

// Registers is a read only view of the CPU's registers and flags.
type Registers struct {
	A, F   byte
	B, C   byte
	D, E   byte
	H, L   byte
	IX, IY uint16
	SP, PC uint16
	I, R   byte
	IM     byte // Interrupt mode.
	IFF1   bool // Interrupts enabled.
	IFF2   bool
	Halted bool
}

// AF returns the accumulator and flags pair.
func (r Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.F) }

// BC returns the BC register pair.
func (r Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }

// DE returns the DE register pair.
func (r Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }

// HL returns the HL register pair.
func (r Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }
