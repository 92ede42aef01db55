package bank

import (
	"testing"

	"github.com/OfficialPixelBrush/Pix80Emu/devices"
	"github.com/OfficialPixelBrush/Pix80Emu/memory"
)

func TestOut(t *testing.T) {
	b := memory.NewBank(16, memory.Mask)
	d := New(b)

	if d.ID() != devices.BankSelect {
		t.Fatalf("id mismatch:\nwant: %s\nhave: %s", devices.BankSelect, d.ID())
	}

	d.Out(5)
	if b.Index() != 5 {
		t.Fatalf("bank mismatch:\nwant: 5\nhave: %d", b.Index())
	}

	d.Out(0x13)
	if b.Index() != 3 {
		t.Fatalf("masked bank mismatch:\nwant: 3\nhave: %d", b.Index())
	}
}

func TestStartupSelectsBankZero(t *testing.T) {
	b := memory.NewBank(4, memory.Clamp)
	d := New(b)

	d.Out(2)
	if err := d.Startup(nil); err != nil {
		t.Fatal(err)
	}

	if b.Index() != 0 {
		t.Fatalf("bank mismatch after startup:\nwant: 0\nhave: %d", b.Index())
	}
}
