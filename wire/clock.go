package wire

// Clock tracks a monotonically advancing serial-number counter, wrapping
// the package's RFC 1982 arithmetic behind Add/Gt so a counter's user
// (rtpio's SequenceTracker uses the 16-bit form) compares wraparound
// without calling Uint16*/Uint32* directly. bits selects which
// width's wraparound rules apply; the counter itself is always stored
// widened to 64 bits.
type Clock struct {
	value uint64
	bits  uint8
}

// NewClock32 creates a Clock over a 32-bit serial space (the width of SCTP
// TSNs), seeded at initial.
func NewClock32(initial uint32) *Clock {
	return &Clock{value: uint64(initial), bits: 32}
}

// NewClock16 creates a Clock over a 16-bit serial space (RTP sequence
// numbers), seeded at initial.
func NewClock16(initial uint16) *Clock {
	return &Clock{value: uint64(initial), bits: 16}
}

// Value32 returns the counter's current value truncated to 32 bits.
func (c *Clock) Value32() uint32 {
	return uint32(c.value)
}

// Value16 returns the counter's current value truncated to 16 bits.
func (c *Clock) Value16() uint16 {
	return uint16(c.value)
}

// Add advances the counter by delta, wrapping per the clock's bit width.
func (c *Clock) Add(delta uint32) {
	if c.bits == 16 {
		c.value = uint64(Uint16Add(uint16(c.value), uint16(delta)))
		return
	}
	c.value = uint64(Uint32Add(uint32(c.value), delta))
}

// Gt reports whether the counter's current value is serially greater than
// other, per RFC 1982, at the clock's bit width.
func (c *Clock) Gt(other uint32) bool {
	if c.bits == 16 {
		return Uint16Gt(uint16(c.value), uint16(other))
	}
	return Uint32Gt(uint32(c.value), other)
}
