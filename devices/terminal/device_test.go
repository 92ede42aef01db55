package terminal

import (
	"bytes"
	"testing"
)

func TestOut(t *testing.T) {
	var buf bytes.Buffer
	d := New(&buf)

	for _, v := range []byte("Hi\r\n") {
		d.Out(v)
	}

	if have := buf.String(); have != "Hi\r\n" {
		t.Fatalf("output mismatch:\nwant: %q\nhave: %q", "Hi\r\n", have)
	}
}

func TestOutDiscard(t *testing.T) {
	d := New(nil)
	d.Out('x')
}

func TestKey(t *testing.T) {
	raised := 0
	d := New(nil)
	if err := d.Startup(func() { raised++ }); err != nil {
		t.Fatal(err)
	}

	if v := d.In(); v != 0 {
		t.Fatalf("read without key:\nwant: 00\nhave: %02x", v)
	}

	d.Key('a')
	if raised != 1 {
		t.Fatalf("interrupt count mismatch:\nwant: 1\nhave: %d", raised)
	}
	if d.Pending() != 'a' {
		t.Fatalf("pending mismatch:\nwant: %q\nhave: %q", 'a', d.Pending())
	}

	if v := d.In(); v != 'a' {
		t.Fatalf("read mismatch:\nwant: %q\nhave: %q", 'a', v)
	}

	// A key is delivered once.
	if v := d.In(); v != 0 {
		t.Fatalf("second read mismatch:\nwant: 00\nhave: %02x", v)
	}
}

func TestKeyOverwrite(t *testing.T) {
	d := New(nil)
	d.Startup(nil)

	d.Key('a')
	d.Key(KeyReturn)

	if v := d.In(); v != KeyReturn {
		t.Fatalf("read mismatch:\nwant: %02x\nhave: %02x", KeyReturn, v)
	}
}

func TestKeyZeroIgnored(t *testing.T) {
	raised := 0
	d := New(nil)
	d.Startup(func() { raised++ })

	d.Key(0)
	if raised != 0 {
		t.Fatalf("zero key raised an interrupt")
	}
}
