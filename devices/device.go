package devices

import (
	"log"

	"github.com/pkg/errors"
)

// IntFunc raises the system's interrupt line.
type IntFunc func()

// Device represents a peripheral on the I/O bus.
//
// A device additionally implements Input, Output or both to take part in
// I/O cycles. A side it does not implement reads as Sentinel and ignores
// writes.
type Device interface {
	// ID yields the device identifier the device answers to.
	ID() ID

	// Startup initializes internal resources.
	//
	// IntFunc can be retained by the device to raise interrupts.
	Startup(IntFunc) error

	// Shutdown cleans up internal resources.
	Shutdown() error
}

// Input is implemented by devices that produce a byte for IN cycles.
type Input interface {
	In() byte
}

// Output is implemented by devices that consume a byte from OUT cycles.
type Output interface {
	Out(value byte)
}

// Map contains a list of registered peripherals.
type Map []Device

// Connect adds the given device to the device map.
// Returns false if a device with the same id is already present.
func (dm *Map) Connect(dev Device) bool {
	if (*dm).Find(dev.ID()) > -1 {
		return false
	}

	*dm = append(*dm, dev)
	return true
}

// Dispatch performs an I/O cycle on the device with the given id. For
// writes, value is handed to the device and returned unchanged. For reads
// the device's byte is returned.
func (dm Map) Dispatch(id ID, write bool, value byte) byte {
	if write {
		dm.Out(id, value)
		return value
	}
	return dm.In(id)
}

// In reads a byte from the device with the given id.
// Returns Sentinel if there is no such device or it cannot be read.
func (dm Map) In(id ID) byte {
	index := dm.Find(id)
	if index == -1 {
		return Sentinel
	}

	if dev, ok := dm[index].(Input); ok {
		return dev.In()
	}
	return Sentinel
}

// Out writes a byte to the device with the given id.
// It does nothing if there is no such device or it cannot be written.
func (dm Map) Out(id ID, value byte) {
	index := dm.Find(id)
	if index == -1 {
		return
	}

	if dev, ok := dm[index].(Output); ok {
		dev.Out(value)
	}
}

// Startup initializes internal resources. Each device is logged to
// logger, if set.
func (dm Map) Startup(f IntFunc, logger *log.Logger) error {
	var errorset ErrorSet

	for _, dev := range dm {
		if logger != nil {
			logger.Println(dev.ID(), "startup")
		}
		if err := dev.Startup(f); err != nil {
			errorset.Append(errors.Wrapf(err, "%s", dev.ID()))
		}
	}

	if errorset.Len() == 0 {
		return nil
	}

	return errorset
}

// Shutdown cleans up internal resources.
func (dm Map) Shutdown(logger *log.Logger) error {
	var errorset ErrorSet

	for _, dev := range dm {
		if logger != nil {
			logger.Println(dev.ID(), "shutdown")
		}
		if err := dev.Shutdown(); err != nil {
			errorset.Append(errors.Wrapf(err, "%s", dev.ID()))
		}
	}

	if errorset.Len() == 0 {
		return nil
	}

	return errorset
}

// Find returns the index for the device with the given id.
// Returns -1 if it can't be found.
func (dm Map) Find(id ID) int {
	for i, dev := range dm {
		if dev.ID() == id {
			return i
		}
	}
	return -1
}
