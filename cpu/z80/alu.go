package z80

import "github.com/OfficialPixelBrush/Pix80Emu/arch"

const (
	fS  = arch.FlagS
	fZ  = arch.FlagZ
	fY  = arch.FlagY
	fH  = arch.FlagH
	fX  = arch.FlagX
	fPV = arch.FlagPV
	fN  = arch.FlagN
	fC  = arch.FlagC
)

// sz returns the sign, zero and undocumented flags for v.
func sz(v byte) byte {
	f := v & (fS | fY | fX)
	if v == 0 {
		f |= fZ
	}
	return f
}

// szp is sz with the parity flag.
func szp(v byte) byte {
	f := sz(v)
	if parity(v) {
		f |= fPV
	}
	return f
}

// parity returns true if v has an even number of bits set.
func parity(v byte) bool {
	v ^= v >> 4
	v ^= v >> 2
	v ^= v >> 1
	return v&1 == 0
}

func add8(a, b, carry byte) (byte, byte) {
	r := uint16(a) + uint16(b) + uint16(carry)
	v := byte(r)
	f := sz(v)
	if (a^b^v)&0x10 != 0 {
		f |= fH
	}
	if (a^b)&0x80 == 0 && (a^v)&0x80 != 0 {
		f |= fPV
	}
	if r > 0xff {
		f |= fC
	}
	return v, f
}

func sub8(a, b, carry byte) (byte, byte) {
	r := int(a) - int(b) - int(carry)
	v := byte(r)
	f := sz(v) | fN
	if (a^b^v)&0x10 != 0 {
		f |= fH
	}
	if (a^b)&(a^v)&0x80 != 0 {
		f |= fPV
	}
	if r < 0 {
		f |= fC
	}
	return v, f
}

// alu applies arithmetic or logic operation op to A and v.
// The order matches bits 3-5 of the opcode.
func (c *CPU) alu(op, v byte) {
	carry := c.F & fC

	switch op {
	case 0:
		c.A, c.F = add8(c.A, v, 0)
	case 1:
		c.A, c.F = add8(c.A, v, carry)
	case 2:
		c.A, c.F = sub8(c.A, v, 0)
	case 3:
		c.A, c.F = sub8(c.A, v, carry)
	case 4:
		c.A &= v
		c.F = szp(c.A) | fH
	case 5:
		c.A ^= v
		c.F = szp(c.A)
	case 6:
		c.A |= v
		c.F = szp(c.A)
	case 7:
		_, f := sub8(c.A, v, 0)
		c.F = f&^(fY|fX) | v&(fY|fX)
	}
}

func (c *CPU) inc8(v byte) byte {
	r := v + 1
	f := c.F&fC | sz(r)
	if v&0x0f == 0x0f {
		f |= fH
	}
	if v == 0x7f {
		f |= fPV
	}
	c.F = f
	return r
}

func (c *CPU) dec8(v byte) byte {
	r := v - 1
	f := c.F&fC | sz(r) | fN
	if v&0x0f == 0 {
		f |= fH
	}
	if v == 0x80 {
		f |= fPV
	}
	c.F = f
	return r
}

// add16 implements ADD HL,rr. S, Z and PV are preserved.
func (c *CPU) add16(a, b uint16) uint16 {
	r := uint32(a) + uint32(b)
	v := uint16(r)
	f := c.F&(fS|fZ|fPV) | byte(v>>8)&(fY|fX)
	if (a^b^v)&0x1000 != 0 {
		f |= fH
	}
	if r > 0xffff {
		f |= fC
	}
	c.F = f
	return v
}

func (c *CPU) adc16(a, b uint16) uint16 {
	r := uint32(a) + uint32(b) + uint32(c.F&fC)
	v := uint16(r)
	f := byte(v>>8) & (fS | fY | fX)
	if v == 0 {
		f |= fZ
	}
	if (a^b^v)&0x1000 != 0 {
		f |= fH
	}
	if (a^b)&0x8000 == 0 && (a^v)&0x8000 != 0 {
		f |= fPV
	}
	if r > 0xffff {
		f |= fC
	}
	c.F = f
	return v
}

func (c *CPU) sbc16(a, b uint16) uint16 {
	r := int32(a) - int32(b) - int32(c.F&fC)
	v := uint16(r)
	f := byte(v>>8)&(fS|fY|fX) | fN
	if v == 0 {
		f |= fZ
	}
	if (a^b^v)&0x1000 != 0 {
		f |= fH
	}
	if (a^b)&(a^v)&0x8000 != 0 {
		f |= fPV
	}
	if r < 0 {
		f |= fC
	}
	c.F = f
	return v
}

// rotateA implements RLCA, RRCA, RLA and RRA.
func (c *CPU) rotateA(op byte) {
	var carry byte

	switch op {
	case 0:
		carry = c.A >> 7
		c.A = c.A<<1 | carry
	case 1:
		carry = c.A & 1
		c.A = c.A>>1 | carry<<7
	case 2:
		carry = c.A >> 7
		c.A = c.A<<1 | c.F&fC
	case 3:
		carry = c.A & 1
		c.A = c.A>>1 | (c.F&fC)<<7
	}

	c.F = c.F&(fS|fZ|fPV) | c.A&(fY|fX) | carry
}

// shift implements the CB prefixed rotate and shift group.
func (c *CPU) shift(op, v byte) byte {
	var r, carry byte

	switch op {
	case 0: // RLC
		carry = v >> 7
		r = v<<1 | carry
	case 1: // RRC
		carry = v & 1
		r = v>>1 | carry<<7
	case 2: // RL
		carry = v >> 7
		r = v<<1 | c.F&fC
	case 3: // RR
		carry = v & 1
		r = v>>1 | (c.F&fC)<<7
	case 4: // SLA
		carry = v >> 7
		r = v << 1
	case 5: // SRA
		carry = v & 1
		r = v>>1 | v&0x80
	case 6: // SLL
		carry = v >> 7
		r = v<<1 | 1
	case 7: // SRL
		carry = v & 1
		r = v >> 1
	}

	c.F = szp(r) | carry
	return r
}

func (c *CPU) bit(n, v byte) {
	f := c.F&fC | fH | v&(fY|fX)
	if v&(1<<n) == 0 {
		f |= fZ | fPV
	} else if n == 7 {
		f |= fS
	}
	c.F = f
}

func (c *CPU) daa() {
	a := c.A
	var fix byte
	carry := c.F & fC

	if c.F&fH != 0 || a&0x0f > 9 {
		fix |= 0x06
	}
	if carry != 0 || a > 0x99 {
		fix |= 0x60
		carry = fC
	}

	var h byte
	if c.F&fN != 0 {
		if c.F&fH != 0 && a&0x0f < 6 {
			h = fH
		}
		a -= fix
	} else {
		if a&0x0f > 9 {
			h = fH
		}
		a += fix
	}

	c.F = szp(a) | c.F&fN | carry | h
	c.A = a
}
