package arch

// Flag register bits.
const (
	FlagS  = 0x80 // Sign.
	FlagZ  = 0x40 // Zero.
	FlagY  = 0x20 // Unused, copy of result bit 5.
	FlagH  = 0x10 // Half-carry.
	FlagX  = 0x08 // Unused, copy of result bit 3.
	FlagPV = 0x04 // Parity/overflow.
	FlagN  = 0x02 // Add/subtract.
	FlagC  = 0x01 // Carry.
)

// FlagLetters names the flag bits from bit 7 down to bit 0.
const FlagLetters = "SZYHXPNC"
