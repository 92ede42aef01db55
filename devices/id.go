package devices

import "fmt"

// ID identifies an I/O device. It is derived from the low bits of the
// port address, never from the full address.
type ID uint8

// Device ids of the Pix80 board. They are stable for the lifetime of the
// process; ids 3 and 5-7 are unassigned.
const (
	LCDCommand ID = 0 // Display controller, instruction register.
	LCDData    ID = 1 // Display controller, data register.
	Terminal   ID = 2 // Serial terminal and keyboard.
	BankSelect ID = 4 // Bank select register.
)

// Sentinel is read from ports without a device, or from devices that
// cannot be read.
const Sentinel = 0

func (id ID) String() string {
	return fmt.Sprintf("dev%02x", uint8(id))
}
