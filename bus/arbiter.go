package bus

import (
	"log"

	"github.com/OfficialPixelBrush/Pix80Emu/devices"
	"github.com/OfficialPixelBrush/Pix80Emu/memory"
)

// Arbiter routes bus cycles to the address space or the I/O devices.
// It owns no state of its own; everything it touches belongs to the
// system it was built for.
type Arbiter struct {
	space    *memory.Space
	bank     *memory.Bank
	devices  devices.Map
	irq      *Interrupt
	deviceID DeviceIDFunc
	Log      *log.Logger // Optional sink for anomalies; nil discards them.
}

// NewArbiter creates an arbiter for the given components.
// A nil id function defaults to Low3.
func NewArbiter(space *memory.Space, bank *memory.Bank, dm devices.Map, irq *Interrupt, id DeviceIDFunc) *Arbiter {
	if id == nil {
		id = Low3
	}

	return &Arbiter{
		space:    space,
		bank:     bank,
		devices:  dm,
		irq:      irq,
		deviceID: id,
	}
}

// Service performs the bus cycle described by r and returns r with any
// read data filled in. A request that is neither a memory nor an I/O
// cycle is returned as is.
func (a *Arbiter) Service(r Request) Request {
	switch {
	case r.IsMemory():
		a.memory(&r)
	case r.IsIO():
		a.io(&r)
	}
	return r
}

func (a *Arbiter) memory(r *Request) {
	bank := a.bank.Index()

	if r.RD {
		r.Data = a.space.Read(r.Address, bank)
	} else if r.WR {
		a.space.Write(r.Address, r.Data, bank)
	}
}

func (a *Arbiter) io(r *Request) {
	if r.IsInterruptAck() {
		r.Data = a.irq.Acknowledge()
		return
	}

	id := a.deviceID(r.Address)
	if a.devices.Find(id) == -1 {
		if a.Log != nil {
			a.Log.Printf("bus: port %04x: no device %s", r.Address, id)
		}
		if r.RD {
			r.Data = devices.Sentinel
		}
		return
	}

	if r.WR || r.RD {
		r.Data = a.devices.Dispatch(id, r.WR, r.Data)
	}
}
