package bwe

import "math"

// BandwidthUsage is the signal an OveruseDetector reports after each
// estimator update.
type BandwidthUsage int

const (
	BandwidthNormal BandwidthUsage = iota
	BandwidthOverusing
	BandwidthUnderusing
)

func (b BandwidthUsage) String() string {
	switch b {
	case BandwidthOverusing:
		return "overusing"
	case BandwidthUnderusing:
		return "underusing"
	default:
		return "normal"
	}
}

// Overuse-detector gain and timing constants. The offset must stay above
// a time-varying threshold for on the order of 100ms before the detector
// commits to OVERUSING; K_u/K_d adapt that threshold asymmetrically for
// over- vs under-use.
const (
	detectorOverusingTimeThresholdMS = 100.0
	detectorKU                       = 0.01
	detectorKD                       = 0.00018
	detectorMaxAdaptOffsetMS         = 15.0
	detectorMaxTimeDeltaMS           = 100.0
	detectorMaxThreshold             = 600.0
	detectorMinThreshold             = 6.0
	detectorMaxDeltaWeight           = 60
)

// OveruseDetector classifies an estimator's queuing-delay offset into
// NORMAL/OVERUSING/UNDERUSING, adapting its own decision threshold over
// time.
//
// No original_source implementation was present in the retrieval pack;
// this follows the published webrtc.org overuse_detector.cc state
// machine (weighted offset T, a running time_over_using accumulator that
// commits to OVERUSING only once it clears overusing_time_threshold_ms
// with a still-rising offset, and an asymmetric adaptive threshold).
type OveruseDetector struct {
	threshold      float64
	lastUpdateMS   int64
	haveLastUpdate bool

	timeOverUsingMS float64
	haveOverusing   bool
	overuseCounter  int
	prevOffset      float64
	state           BandwidthUsage
}

// NewOveruseDetector creates a detector starting in the NORMAL state.
func NewOveruseDetector() *OveruseDetector {
	return &OveruseDetector{threshold: 12.5, state: BandwidthNormal}
}

// Detect consumes one estimator update and returns the current bandwidth
// usage classification.
func (od *OveruseDetector) Detect(offset float64, timestampDeltaMS float64, numOfDeltas int, nowMS int64) BandwidthUsage {
	if numOfDeltas < 2 {
		return od.state
	}

	weight := numOfDeltas
	if weight > detectorMaxDeltaWeight {
		weight = detectorMaxDeltaWeight
	}
	weightedOffset := float64(weight) * offset

	switch {
	case weightedOffset > od.threshold:
		if !od.haveOverusing {
			od.timeOverUsingMS = timestampDeltaMS / 2
			od.haveOverusing = true
		} else {
			od.timeOverUsingMS += timestampDeltaMS
		}
		od.overuseCounter++

		if od.timeOverUsingMS > detectorOverusingTimeThresholdMS && od.overuseCounter > 1 && offset > od.prevOffset {
			od.timeOverUsingMS = 0
			od.overuseCounter = 0
			od.state = BandwidthOverusing
		}
	case weightedOffset < -od.threshold:
		od.haveOverusing = false
		od.overuseCounter = 0
		od.state = BandwidthUnderusing
	default:
		od.haveOverusing = false
		od.overuseCounter = 0
		od.state = BandwidthNormal
	}

	od.prevOffset = offset
	od.updateThreshold(weightedOffset, nowMS)
	return od.state
}

func (od *OveruseDetector) updateThreshold(weightedOffset float64, nowMS int64) {
	if !od.haveLastUpdate {
		od.lastUpdateMS = nowMS
		od.haveLastUpdate = true
	}

	absOffset := math.Abs(weightedOffset)
	if absOffset > od.threshold+detectorMaxAdaptOffsetMS {
		od.lastUpdateMS = nowMS
		return
	}

	k := detectorKD
	if absOffset > od.threshold {
		k = detectorKU
	}

	timeDeltaMS := nowMS - od.lastUpdateMS
	if timeDeltaMS > detectorMaxTimeDeltaMS {
		timeDeltaMS = detectorMaxTimeDeltaMS
	}

	od.threshold += k * (absOffset - od.threshold) * float64(timeDeltaMS)
	od.threshold = math.Min(math.Max(od.threshold, detectorMinThreshold), detectorMaxThreshold)
	od.lastUpdateMS = nowMS
}
