package memory

import (
	"log"

	"github.com/pkg/errors"
)

// Space implements the byte addressable memory seen by the CPU.
//
// ROM is read only once loaded; writes to it are discarded. Unmapped
// addresses read as 0 and discard writes. None of these conditions are
// errors: they are reported through Log, if set.
type Space struct {
	layout Layout
	rom    []byte
	ram    []byte
	banks  [][]byte
	Log    *log.Logger // Optional sink for anomalies; nil discards them.
}

// New creates a zeroed address space with the given layout.
func New(l Layout) (*Space, error) {
	if err := l.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid memory layout")
	}

	s := &Space{
		layout: l,
		rom:    make([]byte, l.ROMSize),
		ram:    make([]byte, l.RAMSize),
		banks:  make([][]byte, l.Banks),
	}

	for i := range s.banks {
		s.banks[i] = make([]byte, l.WindowSize)
	}

	return s, nil
}

// Layout returns the memory layout.
func (s *Space) Layout() Layout {
	return s.layout
}

// Read returns the byte at addr, with the given bank mapped into the window.
func (s *Space) Read(addr uint16, bank int) byte {
	l := &s.layout

	switch {
	case l.IsROM(addr):
		return s.rom[addr]
	case l.IsRAM(addr):
		return s.ram[int(addr)-l.RAMBase]
	case l.IsWindow(addr):
		return s.banks[s.bank(bank)][int(addr)-l.WindowBase]
	}

	s.logf("read from unmapped address %04x", addr)
	return 0
}

// Write stores value at addr, with the given bank mapped into the window.
func (s *Space) Write(addr uint16, value byte, bank int) {
	l := &s.layout

	switch {
	case l.IsROM(addr):
		s.logf("write %02x to rom address %04x discarded", value, addr)
	case l.IsRAM(addr):
		s.ram[int(addr)-l.RAMBase] = value
	case l.IsWindow(addr):
		s.banks[s.bank(bank)][int(addr)-l.WindowBase] = value
	default:
		s.logf("write %02x to unmapped address %04x discarded", value, addr)
	}
}

// Reset zeroes RAM and all banks. ROM contents are kept.
func (s *Space) Reset() {
	clear(s.ram)
	for _, b := range s.banks {
		clear(b)
	}
}

// bank clamps a bank index that slipped past the bank register.
func (s *Space) bank(n int) int {
	switch {
	case n < 0:
		s.logf("bank %d out of range", n)
		return 0
	case n >= len(s.banks):
		s.logf("bank %d out of range", n)
		return len(s.banks) - 1
	}
	return n
}

func (s *Space) logf(f string, argv ...interface{}) {
	if s.Log != nil {
		s.Log.Printf("memory: "+f, argv...)
	}
}
