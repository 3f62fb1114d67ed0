package wire

import "github.com/pion/transport/v2/replaydetector"

// ReplayDetector rejects duplicate or too-far-in-the-past sequence
// numbers within a sliding window, wrapping pion/transport/v2's
// implementation instead of hand-rolling a bitmap. rtpio's Depacketizer
// runs it over inbound RTP sequence numbers.
type ReplayDetector struct {
	rd replaydetector.ReplayDetector
}

// NewReplayDetector constructs a detector over a sliding window of
// windowSize entries within a serial space that wraps at maxSeqNum (e.g.
// 1<<16 for RTP sequence numbers, 1<<32 for SCTP TSNs).
func NewReplayDetector(windowSize uint, maxSeqNum uint64) *ReplayDetector {
	return &ReplayDetector{rd: replaydetector.New(windowSize, maxSeqNum)}
}

// Accept reports whether seq is new — neither a duplicate nor older than
// the trailing edge of the window — marking it seen if so.
func (d *ReplayDetector) Accept(seq uint64) bool {
	accept, ok := d.rd.Check(seq)
	if !ok {
		return false
	}
	accept()
	return true
}
