// Package memory implements the Pix80 address space: a ROM region, a fixed
// RAM region and an optional bank switched window.
package memory

import "github.com/pkg/errors"

// Capacity is the size of the CPU's address space.
const Capacity = 0x10000

// Layout defines the memory map of one hardware revision. ROM always
// starts at address 0. Addresses not covered by any region are unmapped.
type Layout struct {
	ROMSize    int // ROM occupies [0, ROMSize).
	RAMBase    int // Start of fixed RAM.
	RAMSize    int // Size of fixed RAM.
	WindowBase int // Start of the bank switched window.
	WindowSize int // Size of the window and of every bank.
	Banks      int // Number of banks behind the window.
}

// Flat returns the layout of the original board: 32 KB ROM followed by
// 32 KB RAM, no banking.
func Flat() Layout {
	return Layout{
		ROMSize: 0x8000,
		RAMBase: 0x8000,
		RAMSize: 0x8000,
	}
}

// SingleBank returns the first banked layout: 32 KB ROM, 16 KB RAM and a
// 16 KB window backed by a single bank.
func SingleBank() Layout {
	return Layout{
		ROMSize:    0x8000,
		RAMBase:    0x8000,
		RAMSize:    0x4000,
		WindowBase: 0xc000,
		WindowSize: 0x4000,
		Banks:      1,
	}
}

// Banked returns the banked layout: like SingleBank, with 16 banks.
func Banked() Layout {
	l := SingleBank()
	l.Banks = 16
	return l
}

// Validate returns an error if the layout regions are malformed,
// overlap or exceed the address space.
func (l Layout) Validate() error {
	if l.ROMSize < 0 || l.RAMSize < 0 || l.WindowSize < 0 || l.Banks < 0 {
		return errors.New("negative region size")
	}

	if l.WindowSize > 0 && l.Banks == 0 {
		return errors.New("bank window without banks")
	}

	if l.Banks > 0 && l.WindowSize == 0 {
		return errors.Errorf("%d banks without a window", l.Banks)
	}

	if l.Banks > 256 {
		return errors.Errorf("%d banks can not be selected with one byte", l.Banks)
	}

	regions := []struct {
		name       string
		start, end int
	}{
		{"rom", 0, l.ROMSize},
		{"ram", l.RAMBase, l.RAMBase + l.RAMSize},
		{"window", l.WindowBase, l.WindowBase + l.WindowSize},
	}

	for i, a := range regions {
		if a.start < 0 || a.end > Capacity {
			return errors.Errorf("%s [%04x, %04x) exceeds the address space", a.name, a.start, a.end)
		}

		for _, b := range regions[i+1:] {
			if a.start < a.end && b.start < b.end && a.start < b.end && b.start < a.end {
				return errors.Errorf("%s overlaps %s", a.name, b.name)
			}
		}
	}

	return nil
}

// IsROM returns true if addr lies in the ROM region.
func (l Layout) IsROM(addr uint16) bool {
	return int(addr) < l.ROMSize
}

// IsRAM returns true if addr lies in the fixed RAM region.
func (l Layout) IsRAM(addr uint16) bool {
	return int(addr) >= l.RAMBase && int(addr) < l.RAMBase+l.RAMSize
}

// IsWindow returns true if addr lies in the bank switched window.
func (l Layout) IsWindow(addr uint16) bool {
	return int(addr) >= l.WindowBase && int(addr) < l.WindowBase+l.WindowSize
}
