package wire

import "testing"

func TestClock16WrapsAtBoundary(t *testing.T) {
	c := NewClock16(65535)
	c.Add(1)
	if got := c.Value16(); got != 0 {
		t.Fatalf("Value16() = %d, want 0", got)
	}
}

func TestClock32GtMatchesUint32Gt(t *testing.T) {
	c := NewClock32(10)
	if !c.Gt(5) {
		t.Fatalf("Clock32(10).Gt(5) = false, want true")
	}
	if c.Gt(10) {
		t.Fatalf("Clock32(10).Gt(10) = true, want false")
	}
}

func TestClock16GtHonorsSerialWraparound(t *testing.T) {
	c := NewClock16(1)
	c.Add(65535) // wraps back to 0
	if got := c.Value16(); got != 0 {
		t.Fatalf("Value16() = %d, want 0", got)
	}
	if !c.Gt(65535) {
		t.Fatalf("Clock16(0).Gt(65535) = false, want true under serial arithmetic")
	}
}
