package bwe

import "errors"

// Sentinel errors for bwe package operations.
var (
	// ErrNoFeedback indicates a transport-wide congestion-control RTCP
	// packet carried zero packet-status entries.
	ErrNoFeedback = errors.New("bwe: feedback packet carries no packet statuses")
)
