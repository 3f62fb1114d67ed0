package transport

import (
	"sync"

	"github.com/pion/logging"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/rtcore/sdp"
)

// IceConnectionState mirrors the peer connection's reduced ICE state
// machine: new -> checking -> completed, or new -> closed directly.
type IceConnectionState int

const (
	IceNew IceConnectionState = iota
	IceChecking
	IceCompleted
	IceClosed
)

func (s IceConnectionState) String() string {
	switch s {
	case IceNew:
		return "new"
	case IceChecking:
		return "checking"
	case IceCompleted:
		return "completed"
	case IceClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// BundledTransport is the per-bundle harness above one DatagramTransport
// and, once the handshake completes, one SecuredTransport: at most one RTP
// context plus one SCTP context share it when a=bundle groups them, and
// writes are routed through it rather than through the transports
// directly. Send does not hold the harness lock while writing, so
// concurrent Sends reach the active transport concurrently.
type BundledTransport struct {
	mu sync.Mutex

	datagram DatagramTransport
	secured  SecuredTransport

	localCandidates  []sdp.IceCandidate
	remoteCandidates []sdp.IceCandidate
	localComplete    bool
	remoteComplete   bool

	state       IceConnectionState
	readHandler ReadHandler

	log *logrus.Entry
}

// NewBundledTransport wraps dg; the secured transport is attached later
// with AttachSecured once the DTLS/SRTP handshake is armed.
func NewBundledTransport(dg DatagramTransport) *BundledTransport {
	return &BundledTransport{
		datagram: dg,
		state:    IceNew,
		log:      logrus.WithField("component", "transport.harness"),
	}
}

// AddLocalCandidate records a locally gathered candidate.
func (h *BundledTransport) AddLocalCandidate(c sdp.IceCandidate) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.localCandidates = append(h.localCandidates, c)
}

// AddRemoteCandidate records a candidate learned from the remote session
// description or trickled in afterward.
func (h *BundledTransport) AddRemoteCandidate(c sdp.IceCandidate) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remoteCandidates = append(h.remoteCandidates, c)
}

// MarkLocalCandidatesComplete records that end-of-candidates was reached
// locally.
func (h *BundledTransport) MarkLocalCandidatesComplete() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.localComplete = true
}

// MarkRemoteCandidatesComplete records that the remote side signaled
// a=end-of-candidates.
func (h *BundledTransport) MarkRemoteCandidatesComplete() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remoteComplete = true
}

// ReadyToCheck reports whether this harness has at least one local and one
// remote candidate installed — the per-transport half of the peer
// connection's "every transport has both local and remote candidates
// installed" advance-to-checking condition.
func (h *BundledTransport) ReadyToCheck() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.localCandidates) > 0 && len(h.remoteCandidates) > 0
}

// AttachSecured installs the secured transport once its handshake is
// armed. Send and SetReadHandler switch to routing through it once set.
func (h *BundledTransport) AttachSecured(s SecuredTransport) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.secured = s
	if h.readHandler != nil {
		s.SetReadHandler(h.readHandler)
	}
}

// SetState transitions the harness's tracked ICE state; the peer
// connection calls this once it has aggregated readiness across every
// bundled harness, keeping ordering of iceconnectionstatechange events at
// the connection level rather than duplicated per-harness.
func (h *BundledTransport) SetState(state IceConnectionState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == state {
		return
	}
	h.log.WithFields(logrus.Fields{"from": h.state, "to": state}).Debug("ice state transition")
	h.state = state
}

// State returns the harness's last-set ICE connection state.
func (h *BundledTransport) State() IceConnectionState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Send writes data to the active transport: the secured channel once
// attached, otherwise the raw datagram transport (used only for the
// pre-handshake STUN/DTLS flight the secured-transport provider itself
// drives over the same socket).
func (h *BundledTransport) Send(data []byte) error {
	h.mu.Lock()
	active, datagram := h.activeLocked()
	h.mu.Unlock()
	if active != nil {
		return active.Send(data)
	}
	return datagram.Send(data)
}

// SetReadHandler installs the inbound datagram callback on whichever
// transport is currently active, and remembers it so a later
// AttachSecured re-installs it on the secured channel.
func (h *BundledTransport) SetReadHandler(handler ReadHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.readHandler = handler
	if h.secured != nil {
		h.secured.SetReadHandler(handler)
		return
	}
	h.datagram.SetReadHandler(handler)
}

// LoggerFactory returns a pion/logging-shaped factory backed by this
// harness's own logrus entry, for constructing a pion-ecosystem
// DatagramTransport/SecuredTransport implementation that expects to log
// through that interface rather than logrus directly.
func (h *BundledTransport) LoggerFactory() logging.LoggerFactory {
	h.mu.Lock()
	defer h.mu.Unlock()
	return NewLoggerFactory(h.log)
}

// Fingerprint returns the secured transport's authenticated peer
// fingerprint. It returns ErrNoSecuredTransport before AttachSecured.
func (h *BundledTransport) Fingerprint() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.secured == nil {
		return "", ErrNoSecuredTransport
	}
	return h.secured.PeerFingerprint(), nil
}

// Close tears down the secured transport first, then the datagram
// transport, mirroring teardown in reverse of creation order.
func (h *BundledTransport) Close() error {
	h.mu.Lock()
	secured, datagram := h.secured, h.datagram
	h.state = IceClosed
	h.mu.Unlock()

	var firstErr error
	if secured != nil {
		if err := secured.Close(); err != nil {
			firstErr = err
		}
	}
	if err := datagram.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func (h *BundledTransport) activeLocked() (SecuredTransport, DatagramTransport) {
	return h.secured, h.datagram
}
