package bus

import (
	"strings"

	"github.com/OfficialPixelBrush/Pix80Emu/devices"
)

// DeviceIDFunc derives a device identifier from an I/O address.
// Implementations must be pure.
type DeviceIDFunc func(address uint16) devices.ID

// Low3 selects the device with the three lowest address bits. This is the
// port decoding of the unbanked board: ports 0-7, mirrored across the rest
// of the I/O space.
func Low3(address uint16) devices.ID {
	return devices.ID(address & 0x07)
}

// Low7 selects the device with the seven lowest address bits.
func Low7(address uint16) devices.ID {
	return devices.ID(address & 0x7f)
}

// HighBitBank routes every port with bit 7 set to the bank select
// register and decodes the remaining ports with their low seven bits.
//
// One board revision switched banks as a side effect of any such access
// while still decoding the low bits as a device. Only the bank select
// interpretation is kept here.
func HighBitBank(address uint16) devices.ID {
	if address&0x80 != 0 {
		return devices.BankSelect
	}
	return Low7(address)
}

// Policy returns the device id function with the given name.
// Returns nil if the name is not recognized.
func Policy(name string) DeviceIDFunc {
	switch strings.ToLower(name) {
	case "low3":
		return Low3
	case "low7":
		return Low7
	case "highbit":
		return HighBitBank
	}
	return nil
}
