package bus

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/OfficialPixelBrush/Pix80Emu/devices"
	"github.com/OfficialPixelBrush/Pix80Emu/memory"
)

func TestMemoryCycles(t *testing.T) {
	a, _ := newTestArbiter(t, memory.Flat(), Low3)

	a.Service(Request{Address: 0x9000, Data: 0x42, MREQ: true, WR: true})
	r := a.Service(Request{Address: 0x9000, MREQ: true, RD: true})

	if r.Data != 0x42 {
		t.Fatalf("read mismatch:\nwant: 42\nhave: %02x", r.Data)
	}
}

func TestBankedMemoryCycles(t *testing.T) {
	a, _ := newTestArbiter(t, memory.Banked(), Low7)

	a.bank.Select(2)
	a.Service(Request{Address: 0xc123, Data: 0x99, MREQ: true, WR: true})

	a.bank.Select(0)
	if r := a.Service(Request{Address: 0xc123, MREQ: true, RD: true}); r.Data != 0 {
		t.Fatalf("bank 0 mismatch:\nwant: 00\nhave: %02x", r.Data)
	}

	a.bank.Select(2)
	if r := a.Service(Request{Address: 0xc123, MREQ: true, RD: true}); r.Data != 0x99 {
		t.Fatalf("bank 2 mismatch:\nwant: 99\nhave: %02x", r.Data)
	}
}

func TestIOWrite(t *testing.T) {
	a, dev := newTestArbiter(t, memory.Flat(), Low3)

	// Only the low bits select the device.
	a.Service(Request{Address: 0x4102, Data: 0x41, IORQ: true, WR: true})

	if !bytes.Equal(dev.out, []byte{0x41}) {
		t.Fatalf("output mismatch:\nwant: [41]\nhave: %x", dev.out)
	}
}

func TestIOWriteIsolation(t *testing.T) {
	space, err := memory.New(memory.Flat())
	if err != nil {
		t.Fatal(err)
	}

	ids := []devices.ID{devices.LCDCommand, devices.LCDData, devices.Terminal, devices.BankSelect}

	var dm devices.Map
	devs := make([]*testDevice, len(ids))
	for i, id := range ids {
		devs[i] = &testDevice{id: id}
		dm.Connect(devs[i])
	}

	a := NewArbiter(space, memory.NewBank(1, memory.Clamp), dm, NewInterrupt(0xcf), Low3)

	for i, id := range ids {
		v := byte(0x10 + i)
		a.Service(Request{Address: uint16(id), Data: v, IORQ: true, WR: true})

		for j, d := range devs {
			want := 0
			if j <= i {
				want = 1
			}
			if len(d.out) != want {
				t.Fatalf("write to %s: %s output mismatch:\nwant: %d bytes\nhave: %x", id, d.id, want, d.out)
			}
		}
		if have := devs[i].out[0]; have != v {
			t.Fatalf("write to %s mismatch:\nwant: %02x\nhave: %02x", id, v, have)
		}
	}
}

func TestIORead(t *testing.T) {
	a, dev := newTestArbiter(t, memory.Flat(), Low3)
	dev.in = 0x7a

	r := a.Service(Request{Address: 0xff0a, IORQ: true, RD: true})
	if r.Data != 0x7a {
		t.Fatalf("read mismatch:\nwant: 7a\nhave: %02x", r.Data)
	}
}

func TestIOUnknownDevice(t *testing.T) {
	var buf bytes.Buffer
	a, dev := newTestArbiter(t, memory.Flat(), Low3)
	a.Log = log.New(&buf, "", 0)

	r := a.Service(Request{Address: 0x0005, Data: 0x33, IORQ: true, RD: true})
	if r.Data != devices.Sentinel {
		t.Fatalf("read mismatch:\nwant: %02x\nhave: %02x", devices.Sentinel, r.Data)
	}

	a.Service(Request{Address: 0x0005, Data: 0x33, IORQ: true, WR: true})
	if len(dev.out) != 0 {
		t.Fatalf("unexpected output: %x", dev.out)
	}

	if strings.Count(buf.String(), "no device dev05") != 2 {
		t.Fatalf("expected 2 unknown device accesses to be logged; have %q", buf.String())
	}
}

func TestInterruptAcknowledge(t *testing.T) {
	a, dev := newTestArbiter(t, memory.Flat(), Low3)
	a.irq.Raise()

	r := a.Service(Request{Address: 0x0002, IORQ: true, M1: true})

	if r.Data != 0xcf {
		t.Fatalf("vector mismatch:\nwant: cf\nhave: %02x", r.Data)
	}
	if a.irq.Pending() {
		t.Fatalf("interrupt still pending after acknowledge")
	}
	if dev.reads != 0 {
		t.Fatalf("acknowledge cycle reached a device")
	}
}

func TestIdleRequest(t *testing.T) {
	a, dev := newTestArbiter(t, memory.Flat(), Low3)
	a.irq.Raise()

	in := Request{Address: 0x1234, Data: 0x56, HALT: true}
	if out := a.Service(in); out != in {
		t.Fatalf("idle request modified:\nwant: %v\nhave: %v", in, out)
	}
	if !a.irq.Pending() {
		t.Fatalf("idle request cleared the interrupt")
	}
	if dev.reads != 0 || len(dev.out) != 0 {
		t.Fatalf("idle request reached a device")
	}
}

func TestInterruptRaise(t *testing.T) {
	irq := NewInterrupt(DefaultVector)
	if irq.Pending() {
		t.Fatalf("new interrupt line is pending")
	}

	irq.Raise()
	irq.Raise()
	if !irq.Pending() {
		t.Fatalf("expected pending interrupt")
	}

	if v := irq.Acknowledge(); v != DefaultVector {
		t.Fatalf("vector mismatch:\nwant: %02x\nhave: %02x", DefaultVector, v)
	}
	if irq.Pending() {
		t.Fatalf("double raise needs a single acknowledge")
	}
}

func TestPolicies(t *testing.T) {
	for _, tc := range []struct {
		name string
		fn   DeviceIDFunc
		addr uint16
		want devices.ID
	}{
		{"low3", Low3, 0x0002, devices.Terminal},
		{"low3", Low3, 0xff0a, devices.Terminal},
		{"low3", Low3, 0x0084, devices.BankSelect},
		{"low7", Low7, 0x0002, devices.Terminal},
		{"low7", Low7, 0x000a, devices.ID(0x0a)},
		{"low7", Low7, 0x0084, devices.BankSelect},
		{"highbit", HighBitBank, 0x0080, devices.BankSelect},
		{"highbit", HighBitBank, 0x00ff, devices.BankSelect},
		{"highbit", HighBitBank, 0x8001, devices.LCDData},
		{"highbit", HighBitBank, 0x0004, devices.BankSelect},
	} {
		if have := tc.fn(tc.addr); have != tc.want {
			t.Fatalf("%s(%04x):\nwant: %s\nhave: %s", tc.name, tc.addr, tc.want, have)
		}

		if Policy(tc.name) == nil {
			t.Fatalf("policy %q not recognized", tc.name)
		}
	}

	if Policy("high") != nil {
		t.Fatalf("expected unknown policy to be rejected")
	}
}

func TestRequestString(t *testing.T) {
	r := Request{Address: 0x0038, Data: 0xff, IORQ: true, M1: true}
	if have, want := r.String(), "0038 ff IORQ M1"; have != want {
		t.Fatalf("string mismatch:\nwant: %q\nhave: %q", want, have)
	}
}

func newTestArbiter(t *testing.T, l memory.Layout, id DeviceIDFunc) (*Arbiter, *testDevice) {
	t.Helper()

	space, err := memory.New(l)
	if err != nil {
		t.Fatal(err)
	}

	dev := &testDevice{id: devices.Terminal}

	var dm devices.Map
	dm.Connect(dev)

	bank := memory.NewBank(l.Banks, memory.Clamp)
	return NewArbiter(space, bank, dm, NewInterrupt(0xcf), id), dev
}

type testDevice struct {
	id    devices.ID
	in    byte
	out   []byte
	reads int
}

func (d *testDevice) ID() devices.ID                { return d.id }
func (d *testDevice) Startup(devices.IntFunc) error { return nil }
func (d *testDevice) Shutdown() error               { return nil }
func (d *testDevice) Out(v byte)                    { d.out = append(d.out, v) }

func (d *testDevice) In() byte {
	d.reads++
	return d.in
}
