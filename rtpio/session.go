package rtpio

import (
	"sync"

	"github.com/opd-ai/rtcore/wire"
)

// VP8Packetizer implements Packetizer for VP8-encoded video, tracking the
// per-frame picture id required by the payload descriptor.
//
// Grounded on av/video/rtp.go's RTPPacketizer: the frame-split loop is
// kept, generalized to PacketMax and the full VP8 descriptor field set.
// The starting picture id comes from NextPictureID and is not injectable.
type VP8Packetizer struct {
	mu            sync.Mutex
	pictureID     uint16
	targetBitrate uint32
}

// NewVP8Packetizer creates a VP8Packetizer seeded with a random starting
// picture id.
func NewVP8Packetizer() (*VP8Packetizer, error) {
	pid, err := NextPictureID()
	if err != nil {
		return nil, err
	}
	return &VP8Packetizer{pictureID: pid}, nil
}

// Packetize splits frame into VP8 RTP payload bodies sharing one picture
// id, then advances the picture id for the next frame.
func (p *VP8Packetizer) Packetize(frame []byte) ([][]byte, error) {
	p.mu.Lock()
	pid := p.pictureID
	p.mu.Unlock()

	payloads, err := PacketizeFrame(frame, pid)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.pictureID = IncrementPictureID(p.pictureID)
	p.mu.Unlock()

	return payloads, nil
}

// TargetBitrate returns the packetizer's current target bitrate in bps.
func (p *VP8Packetizer) TargetBitrate() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.targetBitrate
}

// SetTargetBitrate updates the packetizer's target bitrate, typically
// driven by the bwe package's rate controller output.
func (p *VP8Packetizer) SetTargetBitrate(bps uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.targetBitrate = bps
}

// SequenceTracker tracks an RTP sequence-number counter on top of the
// wire package's shared Clock abstraction (RFC 1982 16-bit wraparound).
// It is a standalone helper: neither VP8Packetizer nor Depacketizer uses it.
type SequenceTracker struct {
	mu      sync.Mutex
	clock   *wire.Clock
	started bool
}

// Next returns the next sequence number in the series, starting from a
// caller-supplied initial value on first call.
func (s *SequenceTracker) Next(initial uint16) uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		s.clock = wire.NewClock16(initial)
		s.started = true
		return s.clock.Value16()
	}
	s.clock.Add(1)
	return s.clock.Value16()
}
