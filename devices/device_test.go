package devices

import (
	"errors"
	"strings"
	"testing"
)

func TestConnect(t *testing.T) {
	var dm Map

	if !dm.Connect(&testDevice{id: Terminal}) {
		t.Fatalf("expected first connect to succeed")
	}
	if dm.Connect(&testDevice{id: Terminal}) {
		t.Fatalf("expected duplicate id to be rejected")
	}
	if !dm.Connect(&testDevice{id: LCDData}) {
		t.Fatalf("expected second device to connect")
	}

	if dm.Find(LCDData) != 1 {
		t.Fatalf("find mismatch:\nwant: 1\nhave: %d", dm.Find(LCDData))
	}
	if dm.Find(BankSelect) != -1 {
		t.Fatalf("found unconnected device")
	}
}

func TestDispatch(t *testing.T) {
	var dm Map
	dev := &testDevice{id: Terminal, in: 0x61}
	dm.Connect(dev)
	bank := &writeOnly{id: BankSelect}
	dm.Connect(bank)

	if v := dm.Dispatch(Terminal, true, 0x41); v != 0x41 {
		t.Fatalf("write result mismatch:\nwant: 41\nhave: %02x", v)
	}
	if dev.out != 0x41 {
		t.Fatalf("output mismatch:\nwant: 41\nhave: %02x", dev.out)
	}
	if bank.value != 0 {
		t.Fatalf("terminal write reached bank select: %02x", bank.value)
	}

	dm.Dispatch(BankSelect, true, 0x03)
	if bank.value != 0x03 || dev.out != 0x41 {
		t.Fatalf("bank write mismatch:\nwant: 03 41\nhave: %02x %02x", bank.value, dev.out)
	}

	if v := dm.Dispatch(Terminal, false, 0); v != 0x61 {
		t.Fatalf("read mismatch:\nwant: 61\nhave: %02x", v)
	}

	if v := dm.Dispatch(BankSelect, false, 0x55); v != Sentinel {
		t.Fatalf("write only read mismatch:\nwant: %02x\nhave: %02x", Sentinel, v)
	}
	if v := dm.In(LCDCommand); v != Sentinel {
		t.Fatalf("missing device read mismatch:\nwant: %02x\nhave: %02x", Sentinel, v)
	}

	// Writes to missing devices are dropped.
	dm.Out(LCDCommand, 0x01)
}

func TestStartupShutdown(t *testing.T) {
	var dm Map
	a := &testDevice{id: LCDCommand}
	b := &testDevice{id: Terminal}
	dm.Connect(a)
	dm.Connect(b)

	raised := 0
	if err := dm.Startup(func() { raised++ }, nil); err != nil {
		t.Fatal(err)
	}

	b.intFunc()
	if raised != 1 {
		t.Fatalf("interrupt callback not retained")
	}

	if err := dm.Shutdown(nil); err != nil {
		t.Fatal(err)
	}
	if !a.down || !b.down {
		t.Fatalf("expected every device to shut down")
	}
}

func TestStartupErrors(t *testing.T) {
	var dm Map
	dm.Connect(&testDevice{id: LCDCommand, fail: true})
	dm.Connect(&testDevice{id: LCDData})
	dm.Connect(&testDevice{id: Terminal, fail: true})

	err := dm.Startup(nil, nil)
	if err == nil {
		t.Fatalf("expected startup error")
	}

	var set ErrorSet
	if !errors.As(err, &set) || set.Len() != 2 {
		t.Fatalf("expected 2 collected errors; have %v", err)
	}

	if !errors.Is(err, errStartup) {
		t.Fatalf("expected collected errors to unwrap")
	}

	msg := err.Error()
	if !strings.Contains(msg, "dev00") || !strings.Contains(msg, "dev02") {
		t.Fatalf("error does not name the devices: %q", msg)
	}
}

func TestErrorSetAppend(t *testing.T) {
	var set ErrorSet
	set.Append(nil, errStartup, nil)

	if set.Len() != 1 {
		t.Fatalf("length mismatch:\nwant: 1\nhave: %d", set.Len())
	}
}

func TestIDString(t *testing.T) {
	if have := BankSelect.String(); have != "dev04" {
		t.Fatalf("string mismatch:\nwant: %q\nhave: %q", "dev04", have)
	}
}

var errStartup = errors.New("startup failed")

type testDevice struct {
	id      ID
	in      byte
	out     byte
	fail    bool
	down    bool
	intFunc IntFunc
}

func (d *testDevice) ID() ID { return d.id }

func (d *testDevice) Startup(f IntFunc) error {
	d.intFunc = f
	if d.fail {
		return errStartup
	}
	return nil
}

func (d *testDevice) Shutdown() error {
	d.down = true
	return nil
}

func (d *testDevice) In() byte   { return d.in }
func (d *testDevice) Out(v byte) { d.out = v }

type writeOnly struct {
	id    ID
	value byte
}

func (d *writeOnly) ID() ID                { return d.id }
func (d *writeOnly) Startup(IntFunc) error { return nil }
func (d *writeOnly) Shutdown() error       { return nil }
func (d *writeOnly) Out(v byte)            { d.value = v }
