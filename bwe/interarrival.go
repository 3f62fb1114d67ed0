package bwe

import "github.com/opd-ai/rtcore/wire"

// burstDeltaThresholdMS is the maximum arrival-time gap, in milliseconds,
// within which two packets whose timestamp delta resolves to a negative
// send-time gap are still folded into the same burst.
const burstDeltaThresholdMS = 5

// Delta is the burst-to-burst change the InterArrival grouper reports
// once a new burst displaces the one before it.
type Delta struct {
	TimestampDelta   int64 // media clock ticks, wraparound-aware
	ArrivalTimeDelta int64 // milliseconds
	SizeDelta        int64 // bytes
}

// timestampGroup accumulates the packets belonging to one burst.
type timestampGroup struct {
	hasArrival    bool
	arrivalTimeMS int64
	firstTS       uint32
	lastTS        uint32
	size          int64
}

// InterArrival buckets packet arrivals into bursts and, once a burst is
// displaced by its successor, reports the timestamp/arrival/size deltas
// between the two most recently completed bursts. Grounded on
// aiortc.rate.InterArrival (webrtc.org's inter-arrival time and size
// filter).
type InterArrival struct {
	groupLength    uint32  // in timestamp units
	timestampToMS  float64 // scale factor converting one timestamp tick to ms
	current        *timestampGroup
	previous       *timestampGroup
}

// NewInterArrival creates a grouper. groupLength bounds how many
// timestamp ticks a single burst may span; timestampToMS converts one
// tick into milliseconds (e.g. 1/90 for a 90kHz RTP clock, or
// 1000/(1<<26) for the NTP-derived abs-send-time clock).
func NewInterArrival(groupLength uint32, timestampToMS float64) *InterArrival {
	return &InterArrival{groupLength: groupLength, timestampToMS: timestampToMS}
}

// ComputeDeltas feeds one packet arrival into the grouper. It returns the
// most recently completed burst-to-burst delta, or ok=false if the packet
// was folded into an in-progress burst, discarded as out of order, or no
// prior burst exists yet to diff against.
func (ia *InterArrival) ComputeDeltas(timestamp uint32, arrivalTimeMS int64, size int) (Delta, bool) {
	if ia.current == nil {
		ia.current = &timestampGroup{firstTS: timestamp, lastTS: timestamp}
		ia.accumulate(timestamp, arrivalTimeMS, size)
		return Delta{}, false
	}

	if ia.packetOutOfOrder(timestamp) {
		return Delta{}, false
	}

	if ia.newTimestampGroup(timestamp, arrivalTimeMS) {
		delta, ok := ia.completedDelta()

		ia.previous = ia.current
		ia.current = &timestampGroup{firstTS: timestamp, lastTS: timestamp}
		ia.accumulate(timestamp, arrivalTimeMS, size)
		return delta, ok
	}

	if wire.Uint32Gt(timestamp, ia.current.lastTS) {
		ia.current.lastTS = timestamp
	}
	ia.accumulate(timestamp, arrivalTimeMS, size)
	return Delta{}, false
}

func (ia *InterArrival) accumulate(timestamp uint32, arrivalTimeMS int64, size int) {
	ia.current.size += int64(size)
	ia.current.arrivalTimeMS = arrivalTimeMS
	ia.current.hasArrival = true
}

func (ia *InterArrival) completedDelta() (Delta, bool) {
	if ia.previous == nil {
		return Delta{}, false
	}
	return Delta{
		TimestampDelta:   wire.Uint32Diff(ia.previous.lastTS, ia.current.lastTS),
		ArrivalTimeDelta: ia.current.arrivalTimeMS - ia.previous.arrivalTimeMS,
		SizeDelta:        ia.current.size - ia.previous.size,
	}, true
}

// belongsToBurst reports whether (timestamp, arrivalTimeMS) continues the
// current burst rather than starting a new one.
func (ia *InterArrival) belongsToBurst(timestamp uint32, arrivalTimeMS int64) bool {
	timestampDeltaMS := roundHalfAwayFromZero(ia.timestampToMS * float64(wire.Uint32Diff(ia.current.lastTS, timestamp)))
	arrivalTimeDelta := arrivalTimeMS - ia.current.arrivalTimeMS
	return timestampDeltaMS == 0 ||
		(arrivalTimeDelta-timestampDeltaMS < 0 && arrivalTimeDelta <= burstDeltaThresholdMS)
}

func (ia *InterArrival) newTimestampGroup(timestamp uint32, arrivalTimeMS int64) bool {
	if ia.belongsToBurst(timestamp, arrivalTimeMS) {
		return false
	}
	timestampDelta := wire.Uint32Diff(ia.current.firstTS, timestamp)
	return timestampDelta > int64(ia.groupLength)
}

func (ia *InterArrival) packetOutOfOrder(timestamp uint32) bool {
	return wire.Uint32Diff(ia.current.firstTS, timestamp) < 0
}

func roundHalfAwayFromZero(v float64) int64 {
	if v >= 0 {
		return int64(v + 0.5)
	}
	return -int64(-v + 0.5)
}
