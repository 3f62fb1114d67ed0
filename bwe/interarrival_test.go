package bwe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterArrivalFirstGroupScenario(t *testing.T) {
	ia := NewInterArrival(5000, 0.001)

	_, ok := ia.ComputeDeltas(0, 17, 10)
	assert.False(t, ok, "first packet never has a prior group to diff against")

	_, ok = ia.ComputeDeltas(5020, 23, 11)
	assert.False(t, ok, "second packet opens the second burst with no completed pair yet")

	delta, ok := ia.ComputeDeltas(10040, 29, 12)
	require.True(t, ok)
	assert.Equal(t, int64(5020), delta.TimestampDelta)
	assert.Equal(t, int64(6), delta.ArrivalTimeDelta)
	assert.Equal(t, int64(1), delta.SizeDelta)
}

func TestInterArrivalSameBurstNoDelta(t *testing.T) {
	ia := NewInterArrival(5000, 0.001)

	_, ok := ia.ComputeDeltas(0, 0, 100)
	assert.False(t, ok)

	// 10 ticks at 0.001 ms/tick round to a 0 ms timestamp delta: folded
	// into the same burst, no new group.
	_, ok = ia.ComputeDeltas(10, 1, 50)
	assert.False(t, ok)
}

func TestInterArrivalOutOfOrderPacketDropped(t *testing.T) {
	ia := NewInterArrival(5000, 0.001)
	ia.ComputeDeltas(10000, 0, 10)

	_, ok := ia.ComputeDeltas(5000, 1, 10)
	assert.False(t, ok, "a timestamp far behind the group's first timestamp is out of order")
}

func TestInterArrivalWraparoundTimestamp(t *testing.T) {
	ia := NewInterArrival(5000, 0.001)
	ia.ComputeDeltas(^uint32(0)-100, 0, 10)

	// Wraps past 2^32 but is still a forward-moving timestamp.
	_, ok := ia.ComputeDeltas(200, 1, 10)
	assert.False(t, ok)
}
