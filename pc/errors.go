package pc

import "errors"

// Signaling and setup errors.
var (
	// ErrInvalidState indicates the signaling state forbids the requested
	// operation (e.g. createAnswer outside have-remote-offer and
	// have-local-pranswer).
	ErrInvalidState = errors.New("pc: operation forbidden in current signaling state")

	// ErrInvalidAccess indicates a malformed argument given the current
	// state (duplicate track, unknown transceiver/channel).
	ErrInvalidAccess = errors.New("pc: invalid access")

	// ErrNegotiation indicates no common codec or no usable transport was
	// found while applying a remote description.
	ErrNegotiation = errors.New("pc: negotiation failed")

	// ErrClosed indicates the peer connection has already been closed.
	ErrClosed = errors.New("pc: peer connection is closed")

	// ErrNoTransceiversOrData indicates createOffer was called with no
	// transceivers and no data-channel transport to describe.
	ErrNoTransceiversOrData = errors.New("pc: no transceivers or data channel to offer")
)

// Data-channel errors.
var (
	// ErrChannelClosed indicates a send was attempted on a channel that is
	// not open (still connecting, closing, or closed).
	ErrChannelClosed = errors.New("pc: data channel is closed")

	// ErrUnknownChannel indicates a stream id not tracked by the manager.
	ErrUnknownChannel = errors.New("pc: unknown data channel stream id")

	// ErrChannelIDCollision indicates both peers tried to open a channel
	// with the same parity id simultaneously.
	ErrChannelIDCollision = errors.New("pc: data channel id collision")
)
