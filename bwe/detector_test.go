package bwe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOveruseDetectorStaysNormalBelowThreshold(t *testing.T) {
	d := NewOveruseDetector()
	usage := d.Detect(1.0, 10, 5, 1000)
	assert.Equal(t, BandwidthNormal, usage)
}

func TestOveruseDetectorSignalsUnderuseOnNegativeOffset(t *testing.T) {
	d := NewOveruseDetector()
	usage := d.Detect(-20.0, 10, 5, 1000)
	assert.Equal(t, BandwidthUnderusing, usage)
}

func TestOveruseDetectorRequiresSustainedOffsetBeforeOveruse(t *testing.T) {
	d := NewOveruseDetector()

	now := int64(0)
	offset := 15.0
	var last BandwidthUsage
	for i := 0; i < 20; i++ {
		now += 10
		offset += 1.0 // offset must keep rising, not just stay above threshold
		last = d.Detect(offset, 10, 5, now)
	}
	assert.Equal(t, BandwidthOverusing, last, "a sustained, still-rising offset must eventually classify as overuse")
}

func TestOveruseDetectorDoesNotFireOnConstantOffset(t *testing.T) {
	d := NewOveruseDetector()

	now := int64(0)
	var last BandwidthUsage
	for i := 0; i < 20; i++ {
		now += 10
		last = d.Detect(20.0, 10, 5, now)
	}
	assert.NotEqual(t, BandwidthOverusing, last, "a constant (non-rising) offset never satisfies offset > prevOffset")
}

func TestOveruseDetectorIgnoresUpdatesBelowMinDeltaCount(t *testing.T) {
	d := NewOveruseDetector()
	usage := d.Detect(100.0, 10, 0, 1000)
	assert.Equal(t, BandwidthNormal, usage, "an update with no accumulated deltas cannot yet classify")
}
