package rtpio

import "errors"

// Sentinel errors for rtpio package operations.
var (
	// ErrDescriptorTooShort indicates the VP8 payload descriptor is
	// shorter than the fields its flags promise. ReassembleFrame also
	// returns it when the first payload does not start a partition.
	ErrDescriptorTooShort = errors.New("vp8 payload descriptor truncated")

	// ErrEmptyFrame indicates PacketizeFrame was called with no data.
	ErrEmptyFrame = errors.New("frame data cannot be empty")

	// ErrPacketSizeTooSmall indicates the configured max packet size
	// cannot fit even a bare descriptor plus one byte of payload.
	ErrPacketSizeTooSmall = errors.New("max packet size too small for descriptor")

	// ErrCodecNotImplemented indicates a Packetizer was requested for a
	// codec whose payload framing is not implemented by this package —
	// audio codec payload framing is an external collaborator.
	ErrCodecNotImplemented = errors.New("codec not implemented")

	// ErrReplayedPacket indicates a packet's sequence number fell outside
	// the depacketizer's replay window: either a duplicate or older than
	// the window can still accept.
	ErrReplayedPacket = errors.New("rtp sequence number replayed or too old")
)
