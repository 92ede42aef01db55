// Package z80 implements a Z80 core that is driven one bus cycle at a time.
//
// The core covers the instructions a small monitor ROM needs: loads,
// arithmetic and logic, the CB bit group, jumps, calls, the stack, port
// I/O and interrupt modes 0, 1 and 2. Index registers and block
// instructions are not implemented; unknown opcodes execute as NOP.
package z80

import (
	"github.com/OfficialPixelBrush/Pix80Emu/bus"
	"github.com/OfficialPixelBrush/Pix80Emu/cpu"
)

// step produces the request for one bus cycle.
type step func() bus.Request

// CPU implements cpu.Core.
type CPU struct {
	A, F, B, C, D, E, H, L byte
	IX, IY, SP, PC         uint16
	I, R, IM               byte
	IFF1, IFF2             bool

	af2, bc2, de2, hl2 uint16 // Alternate register set.

	halted  bool
	intLine bool       // INT pin as last seen.
	eiDelay bool       // EI was the last instruction.
	queue   []step     // Bus cycles of the current instruction.
	pending func(byte) // Consumer of the data bus at the next tick.
	unknown int        // Unknown opcodes executed.
}

var _ cpu.Core = &CPU{}

// New creates a core in its power on state.
func New() *CPU {
	var c CPU
	c.Reset()
	return &c
}

// Init resets the core and returns idle pins.
func (c *CPU) Init() bus.Request {
	c.Reset()
	return bus.Request{}
}

// Reset puts the core into its power on state.
func (c *CPU) Reset() {
	*c = CPU{}
	c.SP = 0xffff
	c.A = 0xff
	c.F = 0xff
}

// Tick consumes the data bus of the previous cycle, if the core asked
// for data, and returns the request for the next cycle.
func (c *CPU) Tick(pins bus.Request) bus.Request {
	c.intLine = pins.INT

	if fn := c.pending; fn != nil {
		c.pending = nil
		fn(pins.Data)
	}

	if len(c.queue) == 0 {
		c.begin()
	}

	s := c.queue[0]
	c.queue = c.queue[1:]
	return s()
}

// Registers returns a snapshot of the register file.
func (c *CPU) Registers() cpu.Registers {
	return cpu.Registers{
		A: c.A, F: c.F,
		B: c.B, C: c.C,
		D: c.D, E: c.E,
		H: c.H, L: c.L,
		IX: c.IX, IY: c.IY,
		SP: c.SP, PC: c.PC,
		I: c.I, R: c.R,
		IM:     c.IM,
		IFF1:   c.IFF1,
		IFF2:   c.IFF2,
		Halted: c.halted,
	}
}

// Halted returns true if the core executed HALT and is waiting for an
// interrupt.
func (c *CPU) Halted() bool {
	return c.halted
}

// Unknown returns the number of unknown opcodes executed so far.
func (c *CPU) Unknown() int {
	return c.unknown
}

// begin starts the next instruction, an interrupt acknowledge or a halt
// cycle at an instruction boundary.
func (c *CPU) begin() {
	if c.intLine && c.IFF1 && !c.eiDelay {
		c.acknowledge()
		return
	}

	c.eiDelay = false

	if c.halted {
		c.queue = append(c.queue, func() bus.Request {
			return bus.Request{Address: c.PC, HALT: true}
		})
		return
	}

	c.fetch(c.execute)
}

// acknowledge runs the interrupt acknowledge cycle and dispatches on the
// vector byte according to the interrupt mode.
func (c *CPU) acknowledge() {
	c.IFF1, c.IFF2 = false, false
	c.halted = false
	c.incR()

	c.queue = append(c.queue, func() bus.Request {
		c.pending = c.vector
		return bus.Request{Address: c.PC, M1: true, IORQ: true}
	})
}

func (c *CPU) vector(v byte) {
	switch c.IM {
	case 2:
		table := uint16(c.I)<<8 | uint16(v&0xfe)
		c.push(c.PC, func() {
			c.read16(table, func(addr uint16) { c.PC = addr })
		})
	case 1:
		c.call(0x38)
	default:
		// Mode 0 executes the vector. Only RST instructions are supported.
		if v&0xc7 == 0xc7 {
			c.call(uint16(v & 0x38))
		} else {
			c.call(0x38)
		}
	}
}

func (c *CPU) incR() {
	c.R = c.R&0x80 | (c.R+1)&0x7f
}

// fetch queues an opcode fetch at PC.
func (c *CPU) fetch(fn func(byte)) {
	pc := c.PC
	c.PC++
	c.incR()

	c.queue = append(c.queue, func() bus.Request {
		c.pending = fn
		return bus.Request{Address: pc, M1: true, MREQ: true, RD: true}
	})
}

// read queues a memory read cycle. fn receives the data.
func (c *CPU) read(addr uint16, fn func(byte)) {
	c.queue = append(c.queue, func() bus.Request {
		c.pending = fn
		return bus.Request{Address: addr, MREQ: true, RD: true}
	})
}

// write queues a memory write cycle. next runs when the cycle is issued.
func (c *CPU) write(addr uint16, value byte, next func()) {
	c.queue = append(c.queue, func() bus.Request {
		if next != nil {
			next()
		}
		return bus.Request{Address: addr, Data: value, MREQ: true, WR: true}
	})
}

// in queues an I/O read cycle. fn receives the data.
func (c *CPU) in(port uint16, fn func(byte)) {
	c.queue = append(c.queue, func() bus.Request {
		c.pending = fn
		return bus.Request{Address: port, IORQ: true, RD: true}
	})
}

// out queues an I/O write cycle.
func (c *CPU) out(port uint16, value byte) {
	c.queue = append(c.queue, func() bus.Request {
		return bus.Request{Address: port, Data: value, IORQ: true, WR: true}
	})
}

// imm8 reads the byte at PC and advances PC.
func (c *CPU) imm8(fn func(byte)) {
	pc := c.PC
	c.PC++
	c.read(pc, fn)
}

// imm16 reads the little endian word at PC and advances PC.
func (c *CPU) imm16(fn func(uint16)) {
	c.imm8(func(lo byte) {
		c.imm8(func(hi byte) {
			fn(word(hi, lo))
		})
	})
}

func (c *CPU) read16(addr uint16, fn func(uint16)) {
	c.read(addr, func(lo byte) {
		c.read(addr+1, func(hi byte) {
			fn(word(hi, lo))
		})
	})
}

func (c *CPU) write16(addr, value uint16) {
	c.write(addr, byte(value), func() {
		c.write(addr+1, byte(value>>8), nil)
	})
}

// push stores value on the stack, high byte first.
func (c *CPU) push(value uint16, next func()) {
	c.SP--
	c.write(c.SP, byte(value>>8), func() {
		c.SP--
		c.write(c.SP, byte(value), next)
	})
}

// pop loads a word from the stack.
func (c *CPU) pop(fn func(uint16)) {
	c.read(c.SP, func(lo byte) {
		c.SP++
		c.read(c.SP, func(hi byte) {
			c.SP++
			fn(word(hi, lo))
		})
	})
}

func (c *CPU) call(addr uint16) {
	c.push(c.PC, func() { c.PC = addr })
}

func word(hi, lo byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}
