package bwe

// Controller wires the inter-arrival grouper, overuse estimator, overuse
// detector, and AIMD rate controller into the single pipeline a media
// receiver drives with each packet arrival: group -> estimate -> detect
// -> control.
type Controller struct {
	grouper   *InterArrival
	estimator *OveruseEstimator
	detector  *OveruseDetector
	rate      *AimdRateController
}

// NewController creates a pipeline. groupLength and timestampToMS
// parameterize the inter-arrival grouper for the media clock in use (see
// NewInterArrival); initialRateBps seeds the rate controller.
func NewController(groupLength uint32, timestampToMS float64, initialRateBps float64) *Controller {
	return &Controller{
		grouper:   NewInterArrival(groupLength, timestampToMS),
		estimator: NewOveruseEstimator(),
		detector:  NewOveruseDetector(),
		rate:      NewAimdRateController(initialRateBps),
	}
}

// OnPacketArrival feeds one packet's (timestamp, arrival time, size)
// through the pipeline. ackedBps is the last observed acknowledged
// throughput, or nil if unknown. It returns the updated bandwidth-usage
// classification and target bitrate; ok is false when the grouper produced
// no delta (the packet extended the current burst, arrived out of order,
// or opened a burst with no completed burst before the current one) and
// so no new classification was made.
func (c *Controller) OnPacketArrival(timestamp uint32, arrivalTimeMS int64, size int, ackedBps *float64) (BandwidthUsage, float64, bool) {
	delta, ok := c.grouper.ComputeDeltas(timestamp, arrivalTimeMS, size)
	if !ok {
		return BandwidthNormal, c.rate.Rate(), false
	}

	timestampDeltaMS := float64(delta.TimestampDelta) * c.grouper.timestampToMS
	c.estimator.Update(timestampDeltaMS, delta.ArrivalTimeDelta, delta.SizeDelta)

	usage := c.detector.Detect(c.estimator.Offset(), timestampDeltaMS, c.estimator.NumOfDeltas(), arrivalTimeMS)
	rate := c.rate.Update(usage, ackedBps, arrivalTimeMS)
	return usage, rate, true
}

// Rate returns the controller's current target bitrate.
func (c *Controller) Rate() float64 { return c.rate.Rate() }

// State returns the rate controller's current mode.
func (c *Controller) State() AimdState { return c.rate.State() }
