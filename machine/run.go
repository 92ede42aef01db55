package machine

import (
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// Frontend is the host side of a running machine.
type Frontend interface {
	// Poll handles pending host input. It returns false if the user
	// asked to quit.
	Poll() bool

	// Refresh redraws the display.
	Refresh()
}

// Run executes the machine until Stop is called, the frontend asks to
// quit or, with StopOnHalt, the core halts for good. Host input and
// display refreshes are only serviced between ticks.
func (m *Machine) Run(f Frontend) error {
	if atomic.LoadUint32(&m.started) == 0 {
		return errors.New("machine: not started")
	}

	m.setRunning()
	defer atomic.StoreUint32(&m.running, 0)

	refreshed := time.Now()
	f.Refresh()

	for m.Running() {
		if time.Since(refreshed) >= m.config.Refresh {
			refreshed = time.Now()
			f.Refresh()
		}

		if !f.Poll() {
			break
		}

		m.Step()

		if m.config.StopOnHalt && m.deadlocked() {
			break
		}

		if m.config.Delay > 0 {
			m.sleep(m.config.Delay)
		}
	}

	f.Refresh()
	return nil
}

// deadlocked returns true if the core is halted and cannot be woken by
// an interrupt.
func (m *Machine) deadlocked() bool {
	r := m.core.Registers()
	return r.Halted && !r.IFF1
}

// sleep waits for d or until Stop is called.
func (m *Machine) sleep(d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
	case <-m.wake:
	}
}

func (m *Machine) setRunning() {
	select {
	case <-m.wake:
	default:
	}

	m.start = time.Now()
	m.ticks = 0
	atomic.StoreUint32(&m.running, 1)

	// Stop sets stopped before clearing running, so a Stop racing with
	// this function is seen by one check or the other.
	if atomic.LoadUint32(&m.stopped) == 1 {
		atomic.StoreUint32(&m.running, 0)
	}
}
