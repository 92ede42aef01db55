package headless

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/OfficialPixelBrush/Pix80Emu/devices/terminal"
)

func TestPollDeliversKeys(t *testing.T) {
	var sink testSink
	h := New(&sink, strings.NewReader("ab\r"), nil, nil)
	if err := h.Start(); err != nil {
		t.Fatal(err)
	}
	defer h.Stop()

	waitKeys(t, h, &sink, 3)

	want := []byte{'a', 'b', terminal.KeyReturn}
	if !bytes.Equal(sink.keys, want) {
		t.Fatalf("keys mismatch:\nwant: %x\nhave: %x", want, sink.keys)
	}
}

func TestPollOneKey(t *testing.T) {
	var sink testSink
	h := New(&sink, strings.NewReader("xyz"), nil, nil)
	if err := h.Start(); err != nil {
		t.Fatal(err)
	}
	defer h.Stop()

	deadline := time.Now().Add(5 * time.Second)
	for len(h.keys) < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("timeout waiting for input")
		}
		time.Sleep(time.Millisecond)
	}

	for i, want := range []string{"x", "xy", "xyz", "xyz"} {
		h.Poll()
		if have := string(sink.keys); have != want {
			t.Fatalf("poll %d mismatch:\nwant: %q\nhave: %q", i, want, have)
		}
	}
}

func TestOutput(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput(&buf)

	for _, s := range []string{"a\nb", "\r", "\n", "\n"} {
		n, err := out.Write([]byte(s))
		if err != nil {
			t.Fatal(err)
		}
		if n != len(s) {
			t.Fatalf("length mismatch:\nwant: %d\nhave: %d", len(s), n)
		}
	}

	want := "a\r\nb\r\n\r\n"
	if have := buf.String(); have != want {
		t.Fatalf("output mismatch:\nwant: %q\nhave: %q", want, have)
	}
}

func TestPollQuit(t *testing.T) {
	var sink testSink
	r, w := io.Pipe()
	h := New(&sink, r, nil, nil)
	if err := h.Start(); err != nil {
		t.Fatal(err)
	}
	defer h.Stop()

	go w.Write([]byte{terminal.KeyEscape})

	deadline := time.Now().Add(5 * time.Second)
	for h.Poll() {
		if time.Now().After(deadline) {
			t.Fatalf("escape did not end the session")
		}
		time.Sleep(time.Millisecond)
	}

	if !bytes.Equal(sink.keys, []byte{terminal.KeyEscape}) {
		t.Fatalf("escape not delivered: %x", sink.keys)
	}
	w.Close()
}

func TestPollAfterEOF(t *testing.T) {
	var sink testSink
	h := New(&sink, strings.NewReader(""), nil, nil)
	h.Start()
	defer h.Stop()

	for i := 0; i < 10; i++ {
		if !h.Poll() {
			t.Fatalf("end of input ended the session")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestRefreshPrintsChanges(t *testing.T) {
	var status bytes.Buffer
	screen := &testScreen{rows: []string{"hello", ""}}
	h := New(&testSink{}, strings.NewReader(""), screen, &status)

	h.Refresh()
	h.Refresh()

	screen.rows[1] = "world"
	h.Refresh()

	want := "lcd |hello||\r\nlcd |hello|world|\r\n"
	if have := status.String(); have != want {
		t.Fatalf("status mismatch:\nwant: %q\nhave: %q", want, have)
	}
}

func waitKeys(t *testing.T, h *Host, sink *testSink, n int) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for len(sink.keys) < n {
		if time.Now().After(deadline) {
			t.Fatalf("timeout waiting for %d keys; have %x", n, sink.keys)
		}
		h.Poll()
		time.Sleep(time.Millisecond)
	}
}

type testSink struct {
	keys []byte
}

func (s *testSink) Key(v byte) {
	s.keys = append(s.keys, v)
}

type testScreen struct {
	rows []string
}

func (s *testScreen) Text() []string                   { return s.rows }
func (s *testScreen) Cursor() (row, col int, vis bool) { return 0, 0, false }
