package pc

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/rtcore/sctpio"
	"github.com/opd-ai/rtcore/sdp"
	"github.com/opd-ai/rtcore/transport"
)

// DataChannelTransportFactory builds the singleton SCTP transport and wires
// its outbound chunk sink the first time a remote description names an
// application media section. controlling reports the RFC 8832 stream-id
// parity this side should claim.
type DataChannelTransportFactory func() (dcTransport *transport.BundledTransport, send func(chunk sctpio.Chunk) error, controlling bool)

// Configuration carries the locally fixed identity fields a PeerConnection
// stamps into every session description it builds.
type Configuration struct {
	Origin string // o= username, e.g. "-"
	Host   string // session-level c= address (0.0.0.0/:: for a bundle-only offer)
}

// PeerConnection orchestrates the transceiver set, the singleton SCTP data
// transport, and the signaling/ICE state machines described in §4.6-§4.7.
// It is single-threaded by design: every exported method is called from the
// application's own goroutine, with mu guarding only the state the
// background read/timer callbacks also touch.
type PeerConnection struct {
	mu sync.Mutex

	config Configuration

	signaling SignalingState
	closed    bool

	transceivers     map[uuid.UUID]*Transceiver
	transceiverOrder []uuid.UUID

	dcTransport        *transport.BundledTransport
	dcManager          *DataChannelManager
	dataChannelFactory DataChannelTransportFactory

	localDescription  *sdp.SessionDescription
	remoteDescription *sdp.SessionDescription

	sessionVersion uint64

	iceState       transport.IceConnectionState
	gatheringState GatheringState

	events eventTable

	log *logrus.Entry
}

// New constructs a PeerConnection with no transceivers and no data channel
// transport; AddTransceiver adds transceivers and EnableDataChannels attaches
// the data-channel transport before the first createOffer.
func New(config Configuration) *PeerConnection {
	return &PeerConnection{
		config:       config,
		signaling:    SignalingStable,
		transceivers: make(map[uuid.UUID]*Transceiver),
		log:          logrus.WithField("component", "pc.peerconnection"),
	}
}

// SignalingState returns the current signaling state.
func (pc *PeerConnection) SignalingState() SignalingState {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.signaling
}

// IceConnectionState returns the aggregated ICE connection state.
func (pc *PeerConnection) IceConnectionState() transport.IceConnectionState {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.iceState
}

// AddTransceiver registers t, to be offered on the next createOffer. It is
// a programming error to call this after the first local description has
// been set; callers negotiate additional media with renegotiation instead.
func (pc *PeerConnection) AddTransceiver(t *Transceiver) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.addTransceiverLocked(t)
}

func (pc *PeerConnection) addTransceiverLocked(t *Transceiver) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	pc.transceivers[t.ID] = t
	pc.transceiverOrder = append(pc.transceiverOrder, t.ID)
}

// transceiversInOrderLocked returns the transceiver set in the order each
// was added, the order offer/answer media sections and BUNDLE mids follow.
func (pc *PeerConnection) transceiversInOrderLocked() []*Transceiver {
	out := make([]*Transceiver, 0, len(pc.transceiverOrder))
	for _, id := range pc.transceiverOrder {
		if t, ok := pc.transceivers[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Transceivers returns the current transceiver set in addition order.
func (pc *PeerConnection) Transceivers() []*Transceiver {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.transceiversInOrderLocked()
}

// EnableDataChannels wires the singleton SCTP transport this connection's
// data channels share, and the manager that allocates their stream ids.
// controlling selects the RFC 8832 id-parity this side claims; send is the
// function that actually frames and transmits one SCTP chunk (DATA or
// RE-CONFIG) over dcTransport.
func (pc *PeerConnection) EnableDataChannels(dcTransport *transport.BundledTransport, controlling bool, send func(chunk sctpio.Chunk) error) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.dcTransport = dcTransport
	pc.dcManager = NewDataChannelManager(controlling, send)
}

// SetDataChannelTransportFactory registers the hook applyRemoteLocked uses
// to create the singleton SCTP transport the first time a remote
// description names an application media section, so an answerer that
// never called EnableDataChannels itself still ends up with one per §4.6.
func (pc *PeerConnection) SetDataChannelTransportFactory(f DataChannelTransportFactory) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.dataChannelFactory = f
}

// CreateDataChannel opens a new channel over the already-enabled SCTP
// transport.
func (pc *PeerConnection) CreateDataChannel(label, protocol string, reliability uint32, priority uint16) (*DataChannel, error) {
	pc.mu.Lock()
	mgr := pc.dcManager
	closed := pc.closed
	pc.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}
	if mgr == nil {
		return nil, fmt.Errorf("%w: data channels not enabled", ErrInvalidAccess)
	}
	return mgr.OpenChannel(label, protocol, reliability, priority)
}

// HandleDataChannelControl dispatches an inbound PPIDControl message to the
// data-channel manager, firing OnDataChannel for peer-initiated channels.
func (pc *PeerConnection) HandleDataChannelControl(streamID uint16, data []byte) error {
	pc.mu.Lock()
	mgr := pc.dcManager
	pc.mu.Unlock()
	if mgr == nil {
		return fmt.Errorf("%w: data channels not enabled", ErrInvalidAccess)
	}
	return mgr.HandleControl(streamID, data, pc.fireDataChannel)
}

// HandleDataChannelPayload dispatches an inbound user-data message to the
// data-channel manager.
func (pc *PeerConnection) HandleDataChannelPayload(streamID uint16, ppid sctpio.PayloadProtocolID, data []byte) error {
	pc.mu.Lock()
	mgr := pc.dcManager
	pc.mu.Unlock()
	if mgr == nil {
		return fmt.Errorf("%w: data channels not enabled", ErrInvalidAccess)
	}
	return mgr.HandlePayload(streamID, ppid, data)
}

// HandleDataChannelReconfig dispatches an inbound RE-CONFIG chunk (a stream
// reset request or response) to the data-channel manager.
func (pc *PeerConnection) HandleDataChannelReconfig(chunk sctpio.Chunk) error {
	pc.mu.Lock()
	mgr := pc.dcManager
	pc.mu.Unlock()
	if mgr == nil {
		return fmt.Errorf("%w: data channels not enabled", ErrInvalidAccess)
	}
	return mgr.HandleReconfig(chunk)
}

// CreateOffer builds a session description from the current transceiver
// set and the enabled data-channel transport, without mutating signaling
// state — createOffer only becomes "the" local description once passed to
// SetLocalDescription.
func (pc *PeerConnection) CreateOffer() (*sdp.SessionDescription, error) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.closed {
		return nil, ErrClosed
	}
	if len(pc.transceivers) == 0 && pc.dcTransport == nil {
		return nil, ErrNoTransceiversOrData
	}

	return pc.buildDescriptionLocked(true)
}

// CreateAnswer builds a session description in response to the current
// remote offer; it is only valid in have-remote-offer or
// have-local-pranswer.
func (pc *PeerConnection) CreateAnswer() (*sdp.SessionDescription, error) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.closed {
		return nil, ErrClosed
	}
	if pc.signaling != SignalingHaveRemoteOffer && pc.signaling != SignalingHaveLocalPranswer {
		return nil, fmt.Errorf("%w: createAnswer requires have-remote-offer or have-local-pranswer", ErrInvalidState)
	}

	return pc.buildDescriptionLocked(false)
}

func (pc *PeerConnection) buildDescriptionLocked(offer bool) (*sdp.SessionDescription, error) {
	pc.sessionVersion++

	desc := &sdp.SessionDescription{
		Version: 0,
		Origin:  fmt.Sprintf("%s %d %d IN IP4 %s", originUsername(pc.config.Origin), sessionIDFromVersion(pc.sessionVersion), pc.sessionVersion, hostOrDefault(pc.config.Host)),
		Name:    "-",
		Time:    "0 0",
		Host:    pc.config.Host,
	}

	ordered := pc.transceiversInOrderLocked()

	var mids []string
	for i, t := range ordered {
		mid := t.Mid
		if mid == "" {
			mid = fmt.Sprintf("%d", i)
		}
		mids = append(mids, mid)

		media := transceiverToMedia(t, mid, offer)
		if !offer && t.HasRemote() && len(t.LocalCodecs) > 0 && len(media.RTP.Codecs) == 0 {
			return nil, fmt.Errorf("%w: no common codec for mid %s", ErrNegotiation, mid)
		}
		desc.Media = append(desc.Media, media)
	}

	if pc.dcTransport != nil {
		mid := fmt.Sprintf("%d", len(ordered))
		mids = append(mids, mid)
		desc.Media = append(desc.Media, dataChannelMedia(mid))
	}

	if len(mids) > 1 {
		desc.Group = []sdp.GroupDescription{{Semantic: "BUNDLE", Items: mids}}
	}

	return desc, nil
}

// SetLocalDescription advances the signaling state machine for a
// locally-originated description and records it as the active local
// description.
func (pc *PeerConnection) SetLocalDescription(kind string, desc *sdp.SessionDescription) error {
	pc.mu.Lock()
	st, err := pc.transitionLocked(opSetLocal, kind)
	if err != nil {
		pc.mu.Unlock()
		return err
	}

	pc.localDescription = desc
	pc.signaling = st
	pc.mu.Unlock()

	pc.fireSignalingStateChange(st)
	return nil
}

// SetRemoteDescription advances the signaling state machine for a
// remotely-originated description, applies it to the transceiver set per
// §4.6's selection rule, and adds each media section's remote ICE
// candidates (and end-of-candidates) to its transceiver's transport. DTLS
// parameters are not passed to the transports.
func (pc *PeerConnection) SetRemoteDescription(kind string, desc *sdp.SessionDescription) error {
	pc.mu.Lock()
	st, err := pc.transitionLocked(opSetRemote, kind)
	if err != nil {
		pc.mu.Unlock()
		return err
	}

	newTracks, err := pc.applyRemoteLocked(desc)
	if err != nil {
		pc.mu.Unlock()
		return err
	}

	pc.remoteDescription = desc.Clone()
	pc.signaling = st
	pc.mu.Unlock()

	for _, t := range newTracks {
		pc.fireTrack(t)
	}
	pc.fireSignalingStateChange(st)
	return nil
}

func (pc *PeerConnection) transitionLocked(op signalingOp, kind string) (SignalingState, error) {
	var k sdpType
	switch kind {
	case "offer":
		k = sdpOffer
	case "answer":
		k = sdpAnswer
	case "pranswer":
		k = sdpPranswer
	default:
		return pc.signaling, fmt.Errorf("%w: unknown description type %q", ErrInvalidAccess, kind)
	}
	return nextSignalingState(pc.signaling, op, k)
}

// applyRemoteLocked binds each remote media section to the first existing
// transceiver of matching kind whose remote parameters are unset, or else
// constructs a new one — the rule §4.6 names for matching an incoming
// offer or answer against the local transceiver set.
func (pc *PeerConnection) applyRemoteLocked(desc *sdp.SessionDescription) ([]*Transceiver, error) {
	// A resent, unchanged remote description (e.g. a retransmitted offer)
	// renders identically to the one already applied — re-running
	// transceiver selection against it would be a no-op at best and risks
	// spuriously reusing a transceiver twice at worst, so skip it.
	if pc.remoteDescription != nil && sdp.Equal(pc.remoteDescription, desc) {
		return nil, nil
	}

	var newTracks []*Transceiver

	for _, m := range desc.Media {
		if m.Kind == sdp.KindApplication {
			pc.ensureDataChannelTransportLocked()
			continue
		}

		var target *Transceiver
		for _, t := range pc.transceiversInOrderLocked() {
			if t.Kind == m.Kind && !t.HasRemote() {
				target = t
				break
			}
		}
		if target == nil {
			target = NewTransceiver(m.Kind, m.Direction)
			pc.addTransceiverLocked(target)
		}

		target.Mid = m.RTP.MuxID
		target.ApplyRemote(m.RTP.Codecs, m.Direction)
		newTracks = append(newTracks, target)

		if len(m.IceCandidates) > 0 && target.Transport != nil {
			for _, c := range m.IceCandidates {
				target.Transport.AddRemoteCandidate(c)
			}
			if m.IceCandidatesComplete {
				target.Transport.MarkRemoteCandidatesComplete()
			}
		}
	}
	return newTracks, nil
}

// ensureDataChannelTransportLocked creates the singleton SCTP transport the
// first time a remote description names an application media section, per
// §4.6, using the factory the caller registered with
// SetDataChannelTransportFactory. A caller that already set up the
// transport itself via EnableDataChannels, or never registered a factory,
// leaves this a no-op.
func (pc *PeerConnection) ensureDataChannelTransportLocked() {
	if pc.dcTransport != nil || pc.dataChannelFactory == nil {
		return
	}
	dcTransport, send, controlling := pc.dataChannelFactory()
	pc.dcTransport = dcTransport
	pc.dcManager = NewDataChannelManager(controlling, send)
}

// UpdateIceConnectionState recomputes the aggregated ICE state across every
// transceiver's transport plus the data-channel transport, and fires
// OnIceConnectionStateChange if it advanced. It is not invoked
// automatically: callers invoke it after any AddLocalCandidate/
// AddRemoteCandidate/MarkComplete call changes a harness's readiness.
func (pc *PeerConnection) UpdateIceConnectionState() {
	pc.mu.Lock()

	harnesses := pc.allTransportsLocked()
	if len(harnesses) == 0 {
		pc.mu.Unlock()
		return
	}

	allReady := true
	anyClosed := false
	for _, h := range harnesses {
		if h.State() == transport.IceClosed {
			anyClosed = true
		}
		if !h.ReadyToCheck() {
			allReady = false
		}
	}

	var next transport.IceConnectionState
	switch {
	case anyClosed:
		next = transport.IceClosed
	case allReady:
		next = transport.IceChecking
	default:
		next = transport.IceNew
	}

	changed := next != pc.iceState
	pc.iceState = next
	pc.mu.Unlock()

	if changed {
		for _, h := range harnesses {
			h.SetState(next)
		}
		pc.fireIceConnectionStateChange(next)
	}
}

// MarkIceCompleted is called once the secured transport for every bundled
// harness has finished its handshake, advancing the aggregated state to
// completed.
func (pc *PeerConnection) MarkIceCompleted() {
	pc.mu.Lock()
	harnesses := pc.allTransportsLocked()
	changed := pc.iceState != transport.IceCompleted
	pc.iceState = transport.IceCompleted
	pc.mu.Unlock()

	if changed {
		for _, h := range harnesses {
			h.SetState(transport.IceCompleted)
		}
		pc.fireIceConnectionStateChange(transport.IceCompleted)
	}
}

func (pc *PeerConnection) allTransportsLocked() []*transport.BundledTransport {
	var out []*transport.BundledTransport
	for _, t := range pc.transceiversInOrderLocked() {
		if t.Transport != nil {
			out = append(out, t.Transport)
		}
	}
	if pc.dcTransport != nil {
		out = append(out, pc.dcTransport)
	}
	return out
}

// Close tears down every bundled transport in reverse of creation order and
// transitions signaling to closed. Close is idempotent.
func (pc *PeerConnection) Close() error {
	pc.mu.Lock()
	if pc.closed {
		pc.mu.Unlock()
		return nil
	}
	pc.closed = true
	harnesses := pc.allTransportsLocked()
	pc.signaling = SignalingClosed
	pc.mu.Unlock()

	var firstErr error
	for i := len(harnesses) - 1; i >= 0; i-- {
		if err := harnesses[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	pc.fireSignalingStateChange(SignalingClosed)
	return firstErr
}

func transceiverToMedia(t *Transceiver, mid string, offer bool) *sdp.MediaDescription {
	codecs := t.LocalCodecs
	direction := t.Direction
	if !offer && t.HasRemote() {
		codecs = negotiateCodecs(t.LocalCodecs, t.RemoteCodecs)
		direction = t.currentDirection()
	}

	m := &sdp.MediaDescription{
		Kind:      t.Kind,
		Port:      9,
		Profile:   "UDP/TLS/RTP/SAVPF",
		Direction: direction,
		RTP: sdp.RtpParameters{
			MuxID:  mid,
			Codecs: codecs,
		},
		RtcpMux: true,
	}
	for _, c := range codecs {
		m.Fmt = append(m.Fmt, fmt.Sprintf("%d", c.PayloadType))
	}
	return m
}

func dataChannelMedia(mid string) *sdp.MediaDescription {
	return &sdp.MediaDescription{
		Kind:    sdp.KindApplication,
		Port:    9,
		Profile: "UDP/DTLS/SCTP",
		Fmt:     []string{"webrtc-datachannel"},
		RTP:     sdp.RtpParameters{MuxID: mid},
	}
}

// negotiateCodecs keeps only the local codecs the remote side also offered,
// matching on payload type, preserving local preference order.
func negotiateCodecs(local, remote []sdp.RtpCodecParameters) []sdp.RtpCodecParameters {
	var out []sdp.RtpCodecParameters
	for _, l := range local {
		for _, r := range remote {
			if l.PayloadType == r.PayloadType {
				out = append(out, l)
				break
			}
		}
	}
	return out
}

func originUsername(configured string) string {
	if configured == "" {
		return "-"
	}
	return configured
}

func hostOrDefault(host string) string {
	if host == "" {
		return "0.0.0.0"
	}
	return host
}

func sessionIDFromVersion(v uint64) uint64 {
	return v
}
