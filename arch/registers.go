package arch

import "strings"

// Register codes as encoded in bits 0-2 and 3-5 of Z80 opcodes.
const (
	B = iota
	C
	D
	E
	H
	L
	M // (HL)
	A
)

// Register pair codes as encoded in bits 4-5 of Z80 opcodes.
const (
	BC = iota
	DE
	HL
	SP
)

// IsRegister returns true if the given name represents a known 8-bit register.
func IsRegister(name string) bool {
	return RegisterIndex(name) > -1
}

// RegisterIndex returns the opcode encoding for the given 8-bit register.
// Returns -1 if the name is not recognized.
func RegisterIndex(name string) int {
	switch strings.ToUpper(name) {
	case "B":
		return B
	case "C":
		return C
	case "D":
		return D
	case "E":
		return E
	case "H":
		return H
	case "L":
		return L
	case "(HL)":
		return M
	case "A":
		return A
	}
	return -1
}

// RegisterName returns the name associated with the given register encoding.
// Returns "" if the code is not recognized.
func RegisterName(n int) string {
	switch n {
	case B:
		return "B"
	case C:
		return "C"
	case D:
		return "D"
	case E:
		return "E"
	case H:
		return "H"
	case L:
		return "L"
	case M:
		return "(HL)"
	case A:
		return "A"
	}
	return ""
}

// PairName returns the name of the given register pair encoding.
// af selects AF instead of SP for code 3, as PUSH and POP do.
func PairName(n int, af bool) string {
	switch n {
	case BC:
		return "BC"
	case DE:
		return "DE"
	case HL:
		return "HL"
	case SP:
		if af {
			return "AF"
		}
		return "SP"
	}
	return ""
}

// ConditionName returns the mnemonic for the condition code in bits 3-5.
func ConditionName(n int) string {
	switch n & 7 {
	case 0:
		return "NZ"
	case 1:
		return "Z"
	case 2:
		return "NC"
	case 3:
		return "C"
	case 4:
		return "PO"
	case 5:
		return "PE"
	case 6:
		return "P"
	}
	return "M"
}
