package wire

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUint32AddWraps(t *testing.T) {
	assert.Equal(t, uint32(0), Uint32Add(math.MaxUint32, 1))
	assert.Equal(t, uint32(5), Uint32Add(math.MaxUint32, 6))
}

func TestUint32GtWraparound(t *testing.T) {
	assert.True(t, Uint32Gt(1, 0))
	assert.False(t, Uint32Gt(0, 1))
	assert.False(t, Uint32Gt(5, 5))

	// Wraparound: a just past the boundary should compare greater than b
	// near the top of the space.
	assert.True(t, Uint32Gt(0, math.MaxUint32))
	assert.False(t, Uint32Gt(math.MaxUint32, 0))
}

func TestUint32GtAntisymmetric(t *testing.T) {
	// For values within a half-window of each other, exactly one
	// direction (or neither, if equal) holds.
	pairs := [][2]uint32{
		{10, 20}, {20, 10}, {1<<31 - 1, 0}, {0, 1<<31 - 1},
		{math.MaxUint32, 0}, {0, math.MaxUint32},
	}
	for _, p := range pairs {
		a, b := p[0], p[1]
		if a == b {
			continue
		}
		gt := Uint32Gt(a, b)
		ltOther := Uint32Gt(b, a)
		assert.NotEqual(t, gt, ltOther, "a=%d b=%d", a, b)
	}
}

func TestUint32Diff(t *testing.T) {
	assert.Equal(t, int64(1), Uint32Diff(0, 1))
	assert.Equal(t, int64(-1), Uint32Diff(1, 0))
	assert.Equal(t, int64(1), Uint32Diff(math.MaxUint32, 0))
}

func TestUint16GtWraparound(t *testing.T) {
	assert.True(t, Uint16Gt(1, 0))
	assert.True(t, Uint16Gt(0, math.MaxUint16))
	assert.False(t, Uint16Gt(math.MaxUint16, 0))
}

func TestUint16Gte(t *testing.T) {
	assert.True(t, Uint16Gte(5, 5))
	assert.True(t, Uint16Gte(6, 5))
	assert.False(t, Uint16Gte(5, 6))
}
