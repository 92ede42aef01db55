package bus

// DefaultVector is the byte presented on the data bus during an interrupt
// acknowledge cycle. 0xff is RST 38H, which IM 0 and IM 1 both end up at.
const DefaultVector = 0xff

// Interrupt models the single maskable interrupt line of the system.
type Interrupt struct {
	pending bool
	vector  byte
}

// NewInterrupt creates an interrupt line that presents the given vector.
func NewInterrupt(vector byte) *Interrupt {
	return &Interrupt{vector: vector}
}

// Raise asserts the interrupt line. Raising an already pending
// interrupt has no further effect.
func (i *Interrupt) Raise() {
	i.pending = true
}

// Pending returns true if an interrupt is waiting to be acknowledged.
func (i *Interrupt) Pending() bool {
	return i.pending
}

// Vector returns the byte presented during an acknowledge cycle.
func (i *Interrupt) Vector() byte {
	return i.vector
}

// Acknowledge clears the pending state and yields the vector byte.
func (i *Interrupt) Acknowledge() byte {
	i.pending = false
	return i.vector
}

// Reset clears the pending state.
func (i *Interrupt) Reset() {
	i.pending = false
}
