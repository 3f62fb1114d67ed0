package transport

import "errors"

var (
	// ErrClosed is returned by Send after Close has completed.
	ErrClosed = errors.New("transport: use of closed transport")

	// ErrNotReady is returned when Send is attempted before the transport
	// signals readiness (candidates not yet installed on both sides).
	ErrNotReady = errors.New("transport: not ready")

	// ErrNoSecuredTransport is returned when BundledTransport.Fingerprint
	// is called before a secured channel has been attached.
	ErrNoSecuredTransport = errors.New("transport: no secured transport attached")
)
