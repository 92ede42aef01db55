// Package bus implements the Pix80 bus arbiter: it decodes each bus cycle
// requested by the CPU core and routes it to memory or to an I/O device.
package bus

import (
	"fmt"
	"strings"
)

// Request defines the signals exchanged between the CPU core and the bus for
// one tick. It is a plain value: the core hands one to the bus, the bus hands
// a copy back with read data filled in.
type Request struct {
	Address uint16 // Address bus.
	Data    byte   // Data bus. Carries write data out and read data back.
	MREQ    bool   // Memory request.
	IORQ    bool   // I/O request.
	RD      bool   // Read.
	WR      bool   // Write.
	M1      bool   // Opcode fetch, or interrupt acknowledge together with IORQ.
	INT     bool   // Interrupt request, driven by the bus towards the core.
	HALT    bool   // The core is halted.
}

// IsMemory returns true if r is a memory cycle.
func (r Request) IsMemory() bool {
	return r.MREQ && !r.IORQ
}

// IsIO returns true if r is an I/O cycle, including interrupt acknowledge.
func (r Request) IsIO() bool {
	return r.IORQ && !r.MREQ
}

// IsInterruptAck returns true if r is an interrupt acknowledge cycle.
func (r Request) IsInterruptAck() bool {
	return r.IORQ && r.M1
}

func (r Request) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%04x %02x", r.Address, r.Data)

	for _, s := range []struct {
		name string
		set  bool
	}{
		{"MREQ", r.MREQ},
		{"IORQ", r.IORQ},
		{"RD", r.RD},
		{"WR", r.WR},
		{"M1", r.M1},
		{"INT", r.INT},
		{"HALT", r.HALT},
	} {
		if s.set {
			sb.WriteString(" " + s.name)
		}
	}

	return sb.String()
}
