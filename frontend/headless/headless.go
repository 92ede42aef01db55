// Package headless implements a front end without a display window: key
// presses are read from a raw terminal and the LCD contents are printed
// whenever they change.
package headless

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/OfficialPixelBrush/Pix80Emu/frontend"
)

// Host reads keys from an input stream and forwards them to a sink.
type Host struct {
	sink     frontend.Sink
	screen   frontend.Screen // Optional.
	status   io.Writer       // Receives the LCD contents.
	in       io.Reader
	keys     chan byte
	keyboard frontend.Keyboard
	last     string // LCD contents last printed.
	fd       int
	oldState *term.State
	stopped  sync.Once
}

// New creates a host reading from in. screen may be nil, in which case
// nothing is printed to status.
func New(sink frontend.Sink, in io.Reader, screen frontend.Screen, status io.Writer) *Host {
	if status == nil {
		status = io.Discard
	}

	return &Host{
		sink:   sink,
		screen: screen,
		status: status,
		in:     in,
		keys:   make(chan byte, 64),
		fd:     -1,
	}
}

// Start puts the input into raw mode if it is a terminal and begins
// reading from it.
func (h *Host) Start() error {
	if f, ok := h.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		h.fd = int(f.Fd())

		state, err := term.MakeRaw(h.fd)
		if err != nil {
			return errors.Wrapf(err, "failed to set raw mode")
		}
		h.oldState = state
	}

	go h.read()
	return nil
}

// Stop restores the terminal state.
func (h *Host) Stop() {
	h.stopped.Do(func() {
		if h.oldState != nil {
			term.Restore(h.fd, h.oldState)
			h.oldState = nil
		}
	})
}

// read runs until the input is exhausted. A blocked read on a terminal
// outlives Stop; it ends with the process.
func (h *Host) read() {
	defer close(h.keys)

	buf := make([]byte, 1)
	for {
		n, err := h.in.Read(buf)
		if n > 0 {
			h.keys <- buf[0]
		}
		if err != nil {
			return
		}
	}
}

// Poll delivers the next key read, if any. The terminal holds a single
// key, so the rest stay queued for later calls. It returns false once
// the user asked to quit.
func (h *Host) Poll() bool {
	for {
		select {
		case b, ok := <-h.keys:
			if !ok {
				// Input closed; keep running on whatever the ROM does.
				h.keys = nil
				return true
			}

			value, quit := h.keyboard.Byte(b)
			if quit {
				if value != 0 {
					h.sink.Key(value)
				}
				return false
			}
			if value != 0 {
				h.sink.Key(value)
				return true
			}

		default:
			return true
		}
	}
}

// Refresh prints the LCD contents if they changed.
func (h *Host) Refresh() {
	if h.screen == nil {
		return
	}

	text := strings.Join(h.screen.Text(), "|")
	if text == h.last {
		return
	}

	h.last = text
	fmt.Fprintf(h.status, "lcd |%s|\r\n", text)
}

// Output translates line feeds into CR LF pairs. A terminal in raw mode
// no longer does this itself.
type Output struct {
	w    io.Writer
	last byte
}

// NewOutput returns an Output writing to w.
func NewOutput(w io.Writer) *Output {
	return &Output{w: w}
}

// Write implements io.Writer. A line feed already preceded by a carriage
// return is passed through unchanged.
func (o *Output) Write(p []byte) (int, error) {
	buf := make([]byte, 0, len(p)+8)
	for _, b := range p {
		if b == '\n' && o.last != '\r' {
			buf = append(buf, '\r')
		}
		buf = append(buf, b)
		o.last = b
	}

	if _, err := o.w.Write(buf); err != nil {
		return 0, err
	}
	return len(p), nil
}
