package pc

import (
	"github.com/google/uuid"

	"github.com/opd-ai/rtcore/bwe"
	"github.com/opd-ai/rtcore/rtpio"
	"github.com/opd-ai/rtcore/sdp"
	"github.com/opd-ai/rtcore/transport"
)

// Transceiver owns one media section's transport harness, negotiated
// codecs, and the packetization/congestion-estimation state riding over
// it. It is selected or created per remote media section as described in
// §4.6: the peer connection picks the first existing transceiver of the
// remote section's kind whose remote parameters are unset, or else
// constructs one.
type Transceiver struct {
	ID uuid.UUID

	Kind      sdp.MediaKind
	Mid       string
	Direction sdp.Direction

	LocalCodecs  []sdp.RtpCodecParameters
	RemoteCodecs []sdp.RtpCodecParameters
	hasRemote    bool
	remoteDir    sdp.Direction

	SSRC uint32

	Transport *transport.BundledTransport

	Packetizer   rtpio.Packetizer
	Depacketizer *rtpio.Depacketizer
	Congestion   *bwe.Controller
}

// NewTransceiver constructs a transceiver of the given kind with no
// transport attached yet; AttachTransport wires it once the bundle group
// it belongs to is known.
func NewTransceiver(kind sdp.MediaKind, direction sdp.Direction) *Transceiver {
	return &Transceiver{ID: uuid.New(), Kind: kind, Direction: direction}
}

// AttachTransport wires t's harness. It only replaces Transport; any
// packetizer/depacketizer state is left as it was.
func (t *Transceiver) AttachTransport(harness *transport.BundledTransport) {
	t.Transport = harness
}

// ApplyRemote records the remote media section's negotiated codec list and
// direction, marking this transceiver as having a remote configuration —
// the condition §4.6's selection rule checks to decide whether an existing
// transceiver can be reused for a later remote offer.
func (t *Transceiver) ApplyRemote(codecs []sdp.RtpCodecParameters, remoteDir sdp.Direction) {
	t.RemoteCodecs = codecs
	t.remoteDir = remoteDir
	t.hasRemote = true
}

// HasRemote reports whether ApplyRemote has been called.
func (t *Transceiver) HasRemote() bool {
	return t.hasRemote
}

// currentDirection intersects this transceiver's locally configured
// direction with the remote peer's offered direction: recv only survives
// where both sides allow it, send only where both sides allow it.
func (t *Transceiver) currentDirection() sdp.Direction {
	if !t.hasRemote {
		return t.Direction
	}

	localSend, localRecv := directionCapabilities(t.Direction)
	remoteSend, remoteRecv := directionCapabilities(t.remoteDir)

	// The remote's send capability is this side's recv capability, and
	// vice versa.
	send := localSend && remoteRecv
	recv := localRecv && remoteSend

	switch {
	case send && recv:
		return sdp.DirectionSendRecv
	case send:
		return sdp.DirectionSendOnly
	case recv:
		return sdp.DirectionRecvOnly
	default:
		return sdp.DirectionInactive
	}
}

func directionCapabilities(d sdp.Direction) (send, recv bool) {
	switch d {
	case sdp.DirectionSendRecv:
		return true, true
	case sdp.DirectionSendOnly:
		return true, false
	case sdp.DirectionRecvOnly:
		return false, true
	default:
		return false, false
	}
}
