package bwe

import (
	"math"
	"sync"

	"github.com/sirupsen/logrus"
)

// AimdState is the rate controller's current mode.
type AimdState int

const (
	AimdHold AimdState = iota
	AimdIncrease
	AimdDecrease
)

func (s AimdState) String() string {
	switch s {
	case AimdIncrease:
		return "increase"
	case AimdDecrease:
		return "decrease"
	default:
		return "hold"
	}
}

const (
	aimdFloorBps             = 5000.0
	aimdCeilingMultiplier    = 1.5
	aimdDecreaseMultiplier   = 0.85
	aimdMultiplicativeFactor = 1.08
	aimdDefaultIntervalMS    = 200.0
	aimdOneKilobytePacketBits = 8000.0
	aimdWindowAlpha          = 0.05
	aimdJumpSigma            = 3.0
)

// AimdRateController implements additive-increase/multiplicative-decrease
// rate control driven by an OveruseDetector's bandwidth-usage
// classification, following av/adaptation.go's
// config/mutex/callback-on-significant-change shape generalized from
// loss/jitter sampling to a delay-based usage signal.
type AimdRateController struct {
	mu sync.Mutex

	rate    float64
	state   AimdState
	nearMax bool

	avgMaxBitrateKbps float64
	varMaxBitrateKbps float64
	haveMaxBitrate    bool

	lastUpdateMS int64
	haveLast     bool
}

// NewAimdRateController creates a controller seeded at initialRateBps.
func NewAimdRateController(initialRateBps float64) *AimdRateController {
	return &AimdRateController{rate: math.Max(initialRateBps, aimdFloorBps), state: AimdHold}
}

// Update folds one overuse-detector classification into the controller
// and returns the resulting target bitrate in bits/sec. ackedBps is the
// last observed acknowledged throughput, or nil if unknown.
func (rc *AimdRateController) Update(usage BandwidthUsage, ackedBps *float64, nowMS int64) float64 {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	switch usage {
	case BandwidthOverusing:
		rc.applyDecrease(ackedBps)
		// The decrease is a one-shot action; the controller rests in
		// HOLD afterward until the next classification moves it.
		rc.state = AimdHold
	case BandwidthUnderusing:
		rc.state = AimdHold
	default:
		rc.state = AimdIncrease
		rc.applyIncrease(ackedBps, nowMS)
	}

	rc.rate = math.Max(rc.rate, aimdFloorBps)
	if ackedBps != nil {
		ceiling := *ackedBps * aimdCeilingMultiplier
		if rc.rate > ceiling {
			rc.rate = ceiling
		}
	}

	rc.lastUpdateMS = nowMS
	rc.haveLast = true

	logrus.WithFields(logrus.Fields{
		"function": "AimdRateController.Update",
		"usage":    usage.String(),
		"state":    rc.state.String(),
		"rate_bps": rc.rate,
	}).Debug("congestion controller updated target bitrate")

	return rc.rate
}

// applyIncrease implements the NORMAL -> INCREASE rule: additive increase
// of one 1kB-packet's worth of bitrate per response interval when near
// the recently observed ceiling, multiplicative increase by 1.08
// otherwise.
func (rc *AimdRateController) applyIncrease(ackedBps *float64, nowMS int64) {
	if rc.nearMax {
		intervalMS := aimdDefaultIntervalMS
		if rc.haveLast {
			if elapsed := float64(nowMS - rc.lastUpdateMS); elapsed > 0 {
				intervalMS = elapsed
			}
		}
		increase := aimdOneKilobytePacketBits * (1000.0 / intervalMS)
		rc.rate += increase
	} else {
		rc.rate *= aimdMultiplicativeFactor
	}
}

// applyDecrease implements the OVERUSING -> DECREASE rule: multiply the
// rate by 0.85, snap it to the exponentially-weighted max-bitrate window
// derived from observed acked throughput, and mark near_max so the next
// increase is additive rather than multiplicative.
func (rc *AimdRateController) applyDecrease(ackedBps *float64) {
	rc.rate *= aimdDecreaseMultiplier
	rc.nearMax = true

	if ackedBps == nil {
		return
	}
	observedKbps := *ackedBps / 1000

	switch {
	case !rc.haveMaxBitrate:
		rc.avgMaxBitrateKbps = observedKbps
		rc.varMaxBitrateKbps = 0
		rc.haveMaxBitrate = true
	case observedKbps > rc.avgMaxBitrateKbps+aimdJumpSigma*math.Sqrt(rc.varMaxBitrateKbps):
		// A jump this large means the network just proved a much
		// higher ceiling than the window remembers; discard the old
		// window rather than let it keep suppressing the rate.
		rc.avgMaxBitrateKbps = observedKbps
		rc.varMaxBitrateKbps = 0
	default:
		diff := observedKbps - rc.avgMaxBitrateKbps
		rc.avgMaxBitrateKbps += aimdWindowAlpha * diff
		rc.varMaxBitrateKbps = (1 - aimdWindowAlpha) * (rc.varMaxBitrateKbps + aimdWindowAlpha*diff*diff)
	}

	if snap := rc.avgMaxBitrateKbps * 1000; rc.rate > snap && snap > 0 {
		rc.rate = snap
	}
}

// Rate returns the controller's current target bitrate without updating
// it.
func (rc *AimdRateController) Rate() float64 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.rate
}

// State returns the controller's current mode.
func (rc *AimdRateController) State() AimdState {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.state
}
