// Package arch defines the Z80 instruction encodings understood by the
// reference core, along with some related helper functions.
package arch

import "fmt"

// Frequently used opcodes.
const (
	NOP     = 0x00
	LDBCnn  = 0x01
	LDBCA   = 0x02
	DJNZ    = 0x10
	LDDEnn  = 0x11
	LDDEA   = 0x12
	JR      = 0x18
	LDABC   = 0x0a
	LDADE   = 0x1a
	JRNZ    = 0x20
	LDHLnn  = 0x21
	LDnnHL  = 0x22
	JRZ     = 0x28
	LDHLinn = 0x2a
	CPL     = 0x2f
	JRNC    = 0x30
	LDSPnn  = 0x31
	LDnnA   = 0x32
	LDMn    = 0x36
	SCF     = 0x37
	JRC     = 0x38
	LDAnn   = 0x3a
	LDAn    = 0x3e
	CCF     = 0x3f
	LDAM    = 0x7e
	LDMA    = 0x77
	HALT    = 0x76
	JP      = 0xc3
	RET     = 0xc9
	CALL    = 0xcd
	ADDn    = 0xc6
	SUBn    = 0xd6
	OUTnA   = 0xd3
	INAn    = 0xdb
	ANDn    = 0xe6
	EXSPHL  = 0xe3
	EXDEHL  = 0xeb
	JPHL    = 0xe9
	XORn    = 0xee
	DI      = 0xf3
	ORn     = 0xf6
	LDSPHL  = 0xf9
	EI      = 0xfb
	CPn     = 0xfe
	CB      = 0xcb
	ED      = 0xed
)

// ED prefixed opcodes.
const (
	EDIM0  = 0x46
	EDIM1  = 0x56
	EDIM2  = 0x5e
	EDLDIA = 0x47
	EDLDAI = 0x57
	EDLDRA = 0x4f
	EDLDAR = 0x5f
	EDRETN = 0x45
	EDRETI = 0x4d
)

var aluNames = [8]string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}

// Name returns the mnemonic for the given unprefixed opcode.
// Immediate operands are shown as n, nn or e.
// Returns false if the opcode is not recognized.
func Name(opcode int) (string, bool) {
	x, y, z := opcode>>6&3, opcode>>3&7, opcode&7

	switch opcode {
	case NOP:
		return "NOP", true
	case DJNZ:
		return "DJNZ e", true
	case JR:
		return "JR e", true
	case LDBCA:
		return "LD (BC),A", true
	case LDDEA:
		return "LD (DE),A", true
	case LDABC:
		return "LD A,(BC)", true
	case LDADE:
		return "LD A,(DE)", true
	case LDnnHL:
		return "LD (nn),HL", true
	case LDHLinn:
		return "LD HL,(nn)", true
	case LDnnA:
		return "LD (nn),A", true
	case LDAnn:
		return "LD A,(nn)", true
	case CPL:
		return "CPL", true
	case SCF:
		return "SCF", true
	case CCF:
		return "CCF", true
	case HALT:
		return "HALT", true
	case JP:
		return "JP nn", true
	case RET:
		return "RET", true
	case CALL:
		return "CALL nn", true
	case OUTnA:
		return "OUT (n),A", true
	case INAn:
		return "IN A,(n)", true
	case EXDEHL:
		return "EX DE,HL", true
	case EXSPHL:
		return "EX (SP),HL", true
	case 0x08:
		return "EX AF,AF'", true
	case 0xd9:
		return "EXX", true
	case 0x27:
		return "DAA", true
	case CB:
		return "CB", true
	case 0x07:
		return "RLCA", true
	case 0x0f:
		return "RRCA", true
	case 0x17:
		return "RLA", true
	case 0x1f:
		return "RRA", true
	case JPHL:
		return "JP (HL)", true
	case DI:
		return "DI", true
	case LDSPHL:
		return "LD SP,HL", true
	case EI:
		return "EI", true
	case ED:
		return "ED", true
	}

	switch {
	case x == 0 && (y == 4 || y == 5 || y == 6 || y == 7) && z == 0:
		return "JR " + ConditionName(y-4) + ",e", true
	case x == 0 && z == 1 && y&1 == 0:
		return "LD " + PairName(y>>1, false) + ",nn", true
	case x == 0 && z == 1:
		return "ADD HL," + PairName(y>>1, false), true
	case x == 0 && z == 3:
		if y&1 == 0 {
			return "INC " + PairName(y>>1, false), true
		}
		return "DEC " + PairName(y>>1, false), true
	case x == 0 && z == 4:
		return "INC " + RegisterName(y), true
	case x == 0 && z == 5:
		return "DEC " + RegisterName(y), true
	case x == 0 && z == 6:
		return "LD " + RegisterName(y) + ",n", true
	case x == 1:
		return "LD " + RegisterName(y) + "," + RegisterName(z), true
	case x == 2:
		return aluNames[y] + RegisterName(z), true
	case x == 3 && z == 6:
		return aluNames[y] + "n", true
	case x == 3 && z == 0:
		return "RET " + ConditionName(y), true
	case x == 3 && z == 2:
		return "JP " + ConditionName(y) + ",nn", true
	case x == 3 && z == 4:
		return "CALL " + ConditionName(y) + ",nn", true
	case x == 3 && z == 1 && y&1 == 0:
		return "POP " + PairName(y>>1, true), true
	case x == 3 && z == 5 && y&1 == 0:
		return "PUSH " + PairName(y>>1, true), true
	case x == 3 && z == 7:
		return fmt.Sprintf("RST %02XH", y*8), true
	}

	return "", false
}

// Argc returns the number of immediate operand bytes following the given
// unprefixed opcode. Returns -1 if the opcode is not recognized.
func Argc(opcode int) int {
	if _, ok := Name(opcode); !ok {
		return -1
	}

	x, z := opcode>>6&3, opcode&7

	switch opcode {
	case DJNZ, JR, JRNZ, JRZ, JRNC, JRC, OUTnA, INAn, LDMn:
		return 1
	case LDnnHL, LDHLinn, LDnnA, LDAnn, JP, CALL:
		return 2
	case ED, CB:
		return 1
	}

	switch {
	case x == 0 && z == 1 && opcode&0x08 == 0:
		return 2
	case x == 0 && z == 6:
		return 1
	case x == 3 && z == 6:
		return 1
	case x == 3 && (z == 2 || z == 4):
		return 2
	}

	return 0
}
