package bwe

import "math"

// Overuse estimator constants. These follow the commonly published
// Google Congestion Control parameterization: a 1-D Kalman filter
// tracking the inter-group queuing-delay slope, fed by the chain rule
// m(i) = d(i) - size_delta(i)/bandwidth, with an adaptively estimated
// measurement noise variance.
const (
	estimatorMinFramePeriodMS = 1.0
	estimatorMaxVarNoise      = 50.0
	estimatorMinVarNoise      = 1.0
	estimatorChiSquare        = 3.0
)

// OveruseEstimator maintains a scalar queuing-delay offset, updated by a
// Kalman filter fed with the (arrivalTimeDelta, timestampDeltaMS,
// sizeDelta) tuples an InterArrival grouper emits on each completed
// burst.
//
// No original_source implementation of this class was present in the
// retrieval pack (aiortc.rate only supplies InterArrival and
// RateCounter); this is implemented directly from the estimator's
// documented behavior, following the public Kalman-filter formulation
// that webrtc.org and its derivatives use.
type OveruseEstimator struct {
	processNoise [2]float64 // [slope, offset] process noise variance
	e            [2][2]float64
	slope        float64
	offset       float64

	avgNoise    float64
	varNoise    float64
	numOfDeltas int
}

// NewOveruseEstimator creates an estimator in its initial, unconverged
// state.
func NewOveruseEstimator() *OveruseEstimator {
	oe := &OveruseEstimator{
		processNoise: [2]float64{1e-13, 1e-3},
		varNoise:     50.0,
	}
	oe.e[0][0] = 100.0
	oe.e[1][1] = 1e-1
	return oe
}

// Update folds one burst-to-burst delta into the filter.
func (oe *OveruseEstimator) Update(timestampDeltaMS float64, arrivalTimeDeltaMS int64, sizeDelta int64) {
	minFramePeriod := estimatorMinFramePeriodMS
	if timestampDeltaMS < minFramePeriod {
		timestampDeltaMS = minFramePeriod
	}

	tTsDelta := float64(arrivalTimeDeltaMS) - timestampDeltaMS

	oe.numOfDeltas++
	if oe.numOfDeltas > 1000 {
		oe.numOfDeltas = 1000
	}

	// Propagate state covariance: e = e + Q.
	oe.e[0][0] += oe.processNoise[0]
	oe.e[1][1] += oe.processNoise[1]

	if (oe.slope < 0 && tTsDelta > 0) || (oe.slope > 0 && tTsDelta < -1) {
		oe.varNoise += 400
	}

	h := [2]float64{float64(sizeDelta), 1}
	residual := tTsDelta - (h[0]*oe.slope + h[1]*oe.offset)

	maxResidual := 3.0 * math.Sqrt(oe.varNoise)
	if math.Abs(residual) < maxResidual {
		oe.updateNoiseEstimate(residual)
	} else if residual >= 0 {
		oe.updateNoiseEstimate(maxResidual)
	} else {
		oe.updateNoiseEstimate(-maxResidual)
	}

	ehH := [2]float64{
		oe.e[0][0]*h[0] + oe.e[0][1]*h[1],
		oe.e[1][0]*h[0] + oe.e[1][1]*h[1],
	}
	denom := oe.varNoise + h[0]*ehH[0] + h[1]*ehH[1]
	if denom < 1e-9 {
		denom = 1e-9
	}
	kalmanGain := [2]float64{ehH[0] / denom, ehH[1] / denom}

	oe.slope += kalmanGain[0] * residual
	oe.offset += kalmanGain[1] * residual

	// Covariance update: E = (I - K H) E.
	e00 := oe.e[0][0]
	e01 := oe.e[0][1]
	e10 := oe.e[1][0]
	e11 := oe.e[1][1]
	oe.e[0][0] = e00 - kalmanGain[0]*(h[0]*e00+h[1]*e10)
	oe.e[0][1] = e01 - kalmanGain[0]*(h[0]*e01+h[1]*e11)
	oe.e[1][0] = e10 - kalmanGain[1]*(h[0]*e00+h[1]*e10)
	oe.e[1][1] = e11 - kalmanGain[1]*(h[0]*e01+h[1]*e11)
}

func (oe *OveruseEstimator) updateNoiseEstimate(residual float64) {
	alpha := 0.01
	oe.avgNoise = alpha*residual + (1-alpha)*oe.avgNoise
	oe.varNoise = alpha*(residual-oe.avgNoise)*(residual-oe.avgNoise) + (1-alpha)*oe.varNoise

	if oe.varNoise < estimatorMinVarNoise {
		oe.varNoise = estimatorMinVarNoise
	}
	if oe.varNoise > estimatorMaxVarNoise {
		oe.varNoise = estimatorMaxVarNoise
	}
}

// Offset returns the current estimated one-way queuing-delay trend.
func (oe *OveruseEstimator) Offset() float64 { return oe.offset }

// NumOfDeltas returns how many deltas have been folded into the filter,
// capped at 1000.
func (oe *OveruseEstimator) NumOfDeltas() int { return oe.numOfDeltas }
