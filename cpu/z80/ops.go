package z80

import (
	"github.com/OfficialPixelBrush/Pix80Emu/arch"
)

// execute decodes and runs an unprefixed opcode.
func (c *CPU) execute(op byte) {
	x, y, z := op>>6, op>>3&7, op&7
	p, q := y>>1, y&1

	switch x {
	case 0:
		c.x0(op, y, z, p, q)
	case 1:
		if op == arch.HALT {
			c.halted = true
			return
		}
		c.getReg(z, func(v byte) { c.setReg(y, v) })
	case 2:
		c.getReg(z, func(v byte) { c.alu(y, v) })
	case 3:
		c.x3(op, y, z, p, q)
	}
}

func (c *CPU) x0(op, y, z, p, q byte) {
	switch z {
	case 0:
		switch y {
		case 0: // NOP
		case 1:
			af := c.af()
			c.setAF(c.af2)
			c.af2 = af
		case 2:
			c.imm8(func(e byte) {
				c.B--
				if c.B != 0 {
					c.jr(e)
				}
			})
		case 3:
			c.imm8(c.jr)
		default:
			c.imm8(func(e byte) {
				if c.cond(y - 4) {
					c.jr(e)
				}
			})
		}

	case 1:
		if q == 0 {
			c.imm16(func(v uint16) { c.setRP(p, v) })
		} else {
			c.setHL(c.add16(c.hl(), c.rp(p)))
		}

	case 2:
		switch op {
		case arch.LDBCA:
			c.write(c.bc(), c.A, nil)
		case arch.LDDEA:
			c.write(c.de(), c.A, nil)
		case arch.LDnnHL:
			c.imm16(func(addr uint16) { c.write16(addr, c.hl()) })
		case arch.LDnnA:
			c.imm16(func(addr uint16) { c.write(addr, c.A, nil) })
		case arch.LDABC:
			c.read(c.bc(), func(v byte) { c.A = v })
		case arch.LDADE:
			c.read(c.de(), func(v byte) { c.A = v })
		case arch.LDHLinn:
			c.imm16(func(addr uint16) { c.read16(addr, c.setHL) })
		case arch.LDAnn:
			c.imm16(func(addr uint16) {
				c.read(addr, func(v byte) { c.A = v })
			})
		}

	case 3:
		if q == 0 {
			c.setRP(p, c.rp(p)+1)
		} else {
			c.setRP(p, c.rp(p)-1)
		}

	case 4:
		c.getReg(y, func(v byte) { c.setReg(y, c.inc8(v)) })

	case 5:
		c.getReg(y, func(v byte) { c.setReg(y, c.dec8(v)) })

	case 6:
		c.imm8(func(v byte) { c.setReg(y, v) })

	case 7:
		switch y {
		case 0, 1, 2, 3:
			c.rotateA(y)
		case 4:
			c.daa()
		case 5:
			c.A = ^c.A
			c.F = c.F&(fS|fZ|fPV|fC) | fH | fN | c.A&(fY|fX)
		case 6:
			c.F = c.F&(fS|fZ|fPV) | fC | c.A&(fY|fX)
		case 7:
			f := c.F&(fS|fZ|fPV) | c.A&(fY|fX)
			if c.F&fC != 0 {
				f |= fH
			} else {
				f |= fC
			}
			c.F = f
		}
	}
}

func (c *CPU) x3(op, y, z, p, q byte) {
	switch z {
	case 0:
		if c.cond(y) {
			c.pop(c.setPC)
		}

	case 1:
		if q == 0 {
			c.pop(func(v uint16) { c.setRP2(p, v) })
			return
		}
		switch p {
		case 0:
			c.pop(c.setPC)
		case 1:
			bc, de, hl := c.bc(), c.de(), c.hl()
			c.setBC(c.bc2)
			c.setDE(c.de2)
			c.setHL(c.hl2)
			c.bc2, c.de2, c.hl2 = bc, de, hl
		case 2:
			c.PC = c.hl()
		case 3:
			c.SP = c.hl()
		}

	case 2:
		c.imm16(func(addr uint16) {
			if c.cond(y) {
				c.PC = addr
			}
		})

	case 3:
		switch op {
		case arch.JP:
			c.imm16(c.setPC)
		case arch.CB:
			c.fetch(c.executeCB)
		case arch.OUTnA:
			c.imm8(func(n byte) { c.out(uint16(c.A)<<8|uint16(n), c.A) })
		case arch.INAn:
			c.imm8(func(n byte) {
				c.in(uint16(c.A)<<8|uint16(n), func(v byte) { c.A = v })
			})
		case arch.EXSPHL:
			sp := c.SP
			c.read16(sp, func(v uint16) {
				c.write16(sp, c.hl())
				c.setHL(v)
			})
		case arch.EXDEHL:
			de := c.de()
			c.setDE(c.hl())
			c.setHL(de)
		case arch.DI:
			c.IFF1, c.IFF2 = false, false
		case arch.EI:
			c.IFF1, c.IFF2 = true, true
			c.eiDelay = true
		}

	case 4:
		c.imm16(func(addr uint16) {
			if c.cond(y) {
				c.call(addr)
			}
		})

	case 5:
		if q == 0 {
			c.push(c.rp2(p), nil)
			return
		}
		switch op {
		case arch.CALL:
			c.imm16(c.call)
		case arch.ED:
			c.fetch(c.executeED)
		default:
			// DD and FD prefixes.
			c.unknown++
		}

	case 6:
		c.imm8(func(v byte) { c.alu(y, v) })

	case 7:
		c.call(uint16(y) * 8)
	}
}

// executeCB runs a CB prefixed opcode.
func (c *CPU) executeCB(op byte) {
	x, y, z := op>>6, op>>3&7, op&7

	c.getReg(z, func(v byte) {
		switch x {
		case 0:
			c.setReg(z, c.shift(y, v))
		case 1:
			c.bit(y, v)
		case 2:
			c.setReg(z, v&^(1<<y))
		case 3:
			c.setReg(z, v|1<<y)
		}
	})
}

// modes maps bits 3-5 of the IM opcodes to the interrupt mode.
var modes = [8]byte{0, 0, 1, 2, 0, 0, 1, 2}

// executeED runs an ED prefixed opcode.
func (c *CPU) executeED(op byte) {
	x, y, z := op>>6, op>>3&7, op&7
	p, q := y>>1, y&1

	if x != 1 {
		c.unknown++
		return
	}

	switch z {
	case 0:
		c.in(c.bc(), func(v byte) {
			c.F = c.F&fC | szp(v)
			if y != 6 {
				c.setReg(y, v)
			}
		})

	case 1:
		v := byte(0)
		if y != 6 {
			v = c.reg(y)
		}
		c.out(c.bc(), v)

	case 2:
		if q == 0 {
			c.setHL(c.sbc16(c.hl(), c.rp(p)))
		} else {
			c.setHL(c.adc16(c.hl(), c.rp(p)))
		}

	case 3:
		if q == 0 {
			c.imm16(func(addr uint16) { c.write16(addr, c.rp(p)) })
		} else {
			c.imm16(func(addr uint16) {
				c.read16(addr, func(v uint16) { c.setRP(p, v) })
			})
		}

	case 4:
		c.A, c.F = sub8(0, c.A, 0)

	case 5:
		c.IFF1 = c.IFF2
		c.pop(c.setPC)

	case 6:
		c.IM = modes[y]

	case 7:
		switch op {
		case arch.EDLDIA:
			c.I = c.A
		case arch.EDLDRA:
			c.R = c.A
		case arch.EDLDAI:
			c.A = c.I
			c.ldAIR()
		case arch.EDLDAR:
			c.A = c.R
			c.ldAIR()
		default:
			c.unknown++
		}
	}
}

func (c *CPU) ldAIR() {
	f := c.F&fC | sz(c.A)
	if c.IFF2 {
		f |= fPV
	}
	c.F = f
}

func (c *CPU) jr(e byte) {
	c.PC += uint16(int8(e))
}

func (c *CPU) cond(cc byte) bool {
	switch cc {
	case 0:
		return c.F&fZ == 0
	case 1:
		return c.F&fZ != 0
	case 2:
		return c.F&fC == 0
	case 3:
		return c.F&fC != 0
	case 4:
		return c.F&fPV == 0
	case 5:
		return c.F&fPV != 0
	case 6:
		return c.F&fS == 0
	default:
		return c.F&fS != 0
	}
}

// reg returns register r. It must not be called for (HL).
func (c *CPU) reg(r byte) byte {
	switch r {
	case arch.B:
		return c.B
	case arch.C:
		return c.C
	case arch.D:
		return c.D
	case arch.E:
		return c.E
	case arch.H:
		return c.H
	case arch.L:
		return c.L
	default:
		return c.A
	}
}

// getReg passes register r to fn. (HL) costs a memory read.
func (c *CPU) getReg(r byte, fn func(byte)) {
	if r == arch.M {
		c.read(c.hl(), fn)
		return
	}
	fn(c.reg(r))
}

// setReg stores v in register r. (HL) costs a memory write.
func (c *CPU) setReg(r, v byte) {
	switch r {
	case arch.B:
		c.B = v
	case arch.C:
		c.C = v
	case arch.D:
		c.D = v
	case arch.E:
		c.E = v
	case arch.H:
		c.H = v
	case arch.L:
		c.L = v
	case arch.M:
		c.write(c.hl(), v, nil)
	default:
		c.A = v
	}
}

func (c *CPU) bc() uint16 { return word(c.B, c.C) }
func (c *CPU) de() uint16 { return word(c.D, c.E) }
func (c *CPU) hl() uint16 { return word(c.H, c.L) }
func (c *CPU) af() uint16 { return word(c.A, c.F) }

func (c *CPU) setBC(v uint16) { c.B, c.C = byte(v>>8), byte(v) }
func (c *CPU) setDE(v uint16) { c.D, c.E = byte(v>>8), byte(v) }
func (c *CPU) setHL(v uint16) { c.H, c.L = byte(v>>8), byte(v) }
func (c *CPU) setAF(v uint16) { c.A, c.F = byte(v>>8), byte(v) }
func (c *CPU) setPC(v uint16) { c.PC = v }

// rp returns register pair p with SP as pair 3.
func (c *CPU) rp(p byte) uint16 {
	switch p {
	case 0:
		return c.bc()
	case 1:
		return c.de()
	case 2:
		return c.hl()
	default:
		return c.SP
	}
}

func (c *CPU) setRP(p byte, v uint16) {
	switch p {
	case 0:
		c.setBC(v)
	case 1:
		c.setDE(v)
	case 2:
		c.setHL(v)
	default:
		c.SP = v
	}
}

// rp2 returns register pair p with AF as pair 3.
func (c *CPU) rp2(p byte) uint16 {
	if p == 3 {
		return c.af()
	}
	return c.rp(p)
}

func (c *CPU) setRP2(p byte, v uint16) {
	if p == 3 {
		c.setAF(v)
		return
	}
	c.setRP(p, v)
}
