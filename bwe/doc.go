// Package bwe implements delay-based congestion control for a media
// session: an inter-arrival grouper that buckets packet arrivals into
// bursts, a Kalman-filter overuse estimator that turns burst deltas into
// a queuing-delay signal, an overuse detector that classifies the signal
// as NORMAL/OVERUSING/UNDERUSING, an AIMD rate controller driven by that
// classification, and a RateCounter for measuring instantaneous
// throughput.
//
// The algorithm is delay-based (Google Congestion Control style) rather
// than the loss/jitter-sampled AIMD in av/adaptation.go, but keeps that
// package's state-held-between-calls, caller-supplies-the-clock shape:
// every entry point takes its timestamps as explicit arguments so callers
// can drive the controller deterministically in tests.
//
// Callers pass each packet's (timestamp, arrival time, size) directly to
// Controller.OnPacketArrival; this package does not unpack transport-wide
// congestion-control feedback. Its pion/rtcp use is REMB capping of the
// controller's output (RembCap, ClampToRemb).
package bwe
