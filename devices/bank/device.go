// Package bank implements the bank select register port.
package bank

import (
	"github.com/OfficialPixelBrush/Pix80Emu/devices"
	"github.com/OfficialPixelBrush/Pix80Emu/memory"
)

// Device selects the bank mapped into the memory window. It is write only.
type Device struct {
	bank *memory.Bank
}

var (
	_ devices.Device = &Device{}
	_ devices.Output = &Device{}
)

// New creates a bank select port for the given register.
func New(bank *memory.Bank) *Device {
	return &Device{bank: bank}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.BankSelect
}

// Startup selects bank 0.
func (d *Device) Startup(devices.IntFunc) error {
	d.bank.Reset()
	return nil
}

// Shutdown does nothing.
func (d *Device) Shutdown() error {
	return nil
}

// Out selects the bank with the given number, clamped or masked into range
// according to the register's policy.
func (d *Device) Out(value byte) {
	d.bank.Select(value)
}
