package sctpio

import "errors"

// Sentinel errors for sctpio package operations.
var (
	// ErrTruncated indicates a chunk's declared length exceeds the
	// remaining buffer, or the packet is shorter than a fixed header.
	ErrTruncated = errors.New("sctp packet truncated")

	// ErrBadChecksum indicates the CRC-32C verification tag did not
	// match the packet contents.
	ErrBadChecksum = errors.New("sctp checksum mismatch")

	// ErrUnknownChunkType is returned by typed-chunk decoders when the
	// generic chunk's Type does not match what the decoder expects.
	ErrUnknownChunkType = errors.New("unexpected sctp chunk type")

	// ErrInvalidDCEPMessage indicates a DATA_CHANNEL_OPEN/ACK control
	// message was malformed.
	ErrInvalidDCEPMessage = errors.New("invalid data channel control message")
)
