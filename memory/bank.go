package memory

import "strings"

// BankPolicy decides how an out of range bank number is brought into range.
type BankPolicy int

// Known bank policies.
const (
	Clamp BankPolicy = iota // Values past the last bank select the last bank.
	Mask                    // Values wrap around modulo the bank count.
)

// ParseBankPolicy returns the policy with the given name.
// Returns false if the name is not recognized.
func ParseBankPolicy(name string) (BankPolicy, bool) {
	switch strings.ToLower(name) {
	case "clamp":
		return Clamp, true
	case "mask":
		return Mask, true
	}
	return Clamp, false
}

func (p BankPolicy) String() string {
	if p == Mask {
		return "mask"
	}
	return "clamp"
}

// Bank holds the index of the bank currently mapped into the window.
type Bank struct {
	index  int
	count  int
	policy BankPolicy
}

// NewBank creates a bank register for count banks.
func NewBank(count int, policy BankPolicy) *Bank {
	return &Bank{count: count, policy: policy}
}

// Select maps the bank with the given number into the window and returns
// the index that was actually selected. With a power of two bank count,
// Mask is the same as dropping the high bits of value.
func (b *Bank) Select(value byte) int {
	b.index = b.resolve(int(value))
	return b.index
}

// Index returns the currently selected bank.
func (b *Bank) Index() int {
	return b.index
}

// Count returns the number of banks.
func (b *Bank) Count() int {
	return b.count
}

// Policy returns the bank policy.
func (b *Bank) Policy() BankPolicy {
	return b.policy
}

// Reset selects bank 0.
func (b *Bank) Reset() {
	b.index = 0
}

func (b *Bank) resolve(n int) int {
	if b.count <= 0 || n < 0 {
		return 0
	}

	if n < b.count {
		return n
	}

	if b.policy == Mask {
		return n % b.count
	}
	return b.count - 1
}
