package pc

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/rtcore/sctpio"
)

// ChannelState is a data channel's connection lifecycle.
type ChannelState int

const (
	ChannelConnecting ChannelState = iota
	ChannelOpen
	ChannelClosing
	ChannelClosed
)

func (s ChannelState) String() string {
	switch s {
	case ChannelConnecting:
		return "connecting"
	case ChannelOpen:
		return "open"
	case ChannelClosing:
		return "closing"
	case ChannelClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// DataChannel is one SCTP-stream-backed reliable data channel.
type DataChannel struct {
	StreamID uint16
	Label    string
	Protocol string

	mu              sync.Mutex
	state           ChannelState
	outboundResetOK bool
	inboundResetOK  bool

	onMessage func(data []byte, isString bool)
	onClose   func()
}

// State returns the channel's current lifecycle state.
func (dc *DataChannel) State() ChannelState {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return dc.state
}

// OnMessage registers the callback fired for each PPIDString/PPIDBinary
// payload delivered on this channel.
func (dc *DataChannel) OnMessage(f func(data []byte, isString bool)) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	dc.onMessage = f
}

// OnClose registers the callback fired once both the outbound and inbound
// stream reset have completed.
func (dc *DataChannel) OnClose(f func()) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	dc.onClose = f
}

// DataChannelManager owns every data channel on the singleton SCTP
// transport, indexed by stream id, and serializes channel opens so the two
// peers never race each other into the same id.
type DataChannelManager struct {
	mu           sync.Mutex
	controlling  bool // true: this side allocates even ids (DTLS client / offerer)
	nextEven     uint16
	nextOdd      uint16
	nextReqSeq   uint32
	channels     map[uint16]*DataChannel
	pendingReset map[uint32]uint16 // outstanding reconfig ReqSeq -> stream id

	send func(chunk sctpio.Chunk) error

	log *logrus.Entry
}

// NewDataChannelManager constructs a manager. controlling selects RFC
// 8832's id-allocation parity: the controlling (DTLS client) side draws
// even ids, the controlled (DTLS server) side odd ones — §9's Open
// Question decision, recorded in DESIGN.md. send transmits one SCTP
// chunk (a DATA chunk for channel open/ack/payload, a RE-CONFIG chunk for
// close) over the singleton SCTP transport.
func NewDataChannelManager(controlling bool, send func(chunk sctpio.Chunk) error) *DataChannelManager {
	return &DataChannelManager{
		controlling:  controlling,
		nextEven:     0,
		nextOdd:      1,
		channels:     make(map[uint16]*DataChannel),
		pendingReset: make(map[uint32]uint16),
		send:         send,
		log:          logrus.WithField("component", "pc.datachannel"),
	}
}

// sendData frames data as a DATA chunk for streamID/ppid and hands it to
// send.
func (m *DataChannelManager) sendData(streamID uint16, ppid sctpio.PayloadProtocolID, data []byte) error {
	chunk := (&sctpio.DataChunk{StreamID: streamID, PPID: ppid, UserData: data}).Marshal()
	return m.send(chunk)
}

// OpenChannel allocates a stream id consistent with this side's DTLS role
// parity, sends DATA_CHANNEL_OPEN on PPIDControl, and returns the new
// channel in the connecting state.
func (m *DataChannelManager) OpenChannel(label, protocol string, reliability uint32, priority uint16) (*DataChannel, error) {
	m.mu.Lock()
	var id uint16
	if m.controlling {
		id = m.nextEven
		m.nextEven += 2
	} else {
		id = m.nextOdd
		m.nextOdd += 2
	}

	dc := &DataChannel{StreamID: id, Label: label, Protocol: protocol, state: ChannelConnecting}
	m.channels[id] = dc
	// Released before sending: the peer's DATA_CHANNEL_ACK may be handed
	// back to HandleControl on this same goroutine.
	m.mu.Unlock()

	open := &sctpio.DataChannelOpen{
		ChannelType: 0x00, // reliable, ordered
		Priority:    priority,
		Reliability: reliability,
		Label:       label,
		Protocol:    protocol,
	}
	if err := m.sendData(id, sctpio.PPIDControl, open.Marshal()); err != nil {
		m.mu.Lock()
		delete(m.channels, id)
		m.mu.Unlock()
		return nil, err
	}

	m.log.WithFields(logrus.Fields{"stream_id": id, "label": label}).Debug("data channel open sent")
	return dc, nil
}

// HandleControl dispatches an inbound PPIDControl message (DATA_CHANNEL_OPEN
// or DATA_CHANNEL_ACK) for the given stream id. onPeerChannel, if non-nil,
// is invoked with a freshly created channel when the remote peer opened one.
func (m *DataChannelManager) HandleControl(streamID uint16, data []byte, onPeerChannel func(*DataChannel)) error {
	if sctpio.IsDataChannelAck(data) {
		m.mu.Lock()
		dc, ok := m.channels[streamID]
		m.mu.Unlock()
		if !ok {
			return ErrUnknownChannel
		}
		dc.mu.Lock()
		dc.state = ChannelOpen
		dc.mu.Unlock()
		return nil
	}

	open, err := sctpio.ParseDataChannelOpen(data)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if _, exists := m.channels[streamID]; exists {
		m.mu.Unlock()
		return ErrChannelIDCollision
	}
	dc := &DataChannel{StreamID: streamID, Label: open.Label, Protocol: open.Protocol, state: ChannelOpen}
	m.channels[streamID] = dc
	m.mu.Unlock()

	if err := m.sendData(streamID, sctpio.PPIDControl, sctpio.MarshalDataChannelAck()); err != nil {
		return err
	}
	if onPeerChannel != nil {
		onPeerChannel(dc)
	}
	return nil
}

// HandlePayload dispatches an inbound user-data message (PPIDString or
// PPIDBinary) to the channel's registered OnMessage callback.
func (m *DataChannelManager) HandlePayload(streamID uint16, ppid sctpio.PayloadProtocolID, data []byte) error {
	m.mu.Lock()
	dc, ok := m.channels[streamID]
	m.mu.Unlock()
	if !ok {
		return ErrUnknownChannel
	}

	isString := ppid == sctpio.PPIDString || ppid == sctpio.PPIDStringEmpty

	dc.mu.Lock()
	f := dc.onMessage
	dc.mu.Unlock()
	if f != nil {
		f(data, isString)
	}
	return nil
}

// Send transmits data on streamID's channel, choosing the PPID per the
// empty/non-empty and string/binary message rules DCEP uses to distinguish
// a genuinely empty payload from a zero-length SCTP DATA chunk.
func (m *DataChannelManager) Send(streamID uint16, data []byte, isString bool) error {
	m.mu.Lock()
	dc, ok := m.channels[streamID]
	m.mu.Unlock()
	if !ok {
		return ErrUnknownChannel
	}

	if dc.State() != ChannelOpen {
		return ErrChannelClosed
	}

	return m.sendData(streamID, payloadProtocolFor(data, isString), data)
}

func payloadProtocolFor(data []byte, isString bool) sctpio.PayloadProtocolID {
	switch {
	case isString && len(data) == 0:
		return sctpio.PPIDStringEmpty
	case isString:
		return sctpio.PPIDString
	case len(data) == 0:
		return sctpio.PPIDBinaryEmpty
	default:
		return sctpio.PPIDBinary
	}
}

// Close marks streamID's outbound reset in flight and sends a RE-CONFIG
// stream-reset request to the peer; the channel fires its OnClose
// callback once HandleReconfig delivers the matching response.
func (m *DataChannelManager) Close(streamID uint16) error {
	m.mu.Lock()
	dc, ok := m.channels[streamID]
	if !ok {
		m.mu.Unlock()
		return ErrUnknownChannel
	}
	m.nextReqSeq++
	seq := m.nextReqSeq
	m.pendingReset[seq] = streamID
	m.mu.Unlock()

	dc.mu.Lock()
	dc.state = ChannelClosing
	dc.outboundResetOK = true
	done := dc.inboundResetOK
	dc.mu.Unlock()

	chunk := (&sctpio.ReconfigChunk{ReqSeq: seq, StreamIDs: []uint16{streamID}}).Marshal()
	if err := m.send(chunk); err != nil {
		return err
	}

	if done {
		m.finishClose(dc)
	}
	return nil
}

// HandleReconfig dispatches an inbound RE-CONFIG chunk. A request names
// the stream ids the peer is resetting: per RFC 6525 a reset tears down
// both directions for that stream at once, so this side completes its
// half of the channel immediately and acks. A response completes the
// half of a channel this side is waiting on, correlated against the
// ReqSeq Close recorded.
func (m *DataChannelManager) HandleReconfig(chunk sctpio.Chunk) error {
	rc, err := sctpio.ParseReconfigChunk(chunk)
	if err != nil {
		return err
	}

	if rc.IsResponse {
		m.mu.Lock()
		streamID, ok := m.pendingReset[rc.ReqSeq]
		if ok {
			delete(m.pendingReset, rc.ReqSeq)
		}
		dc := m.channels[streamID]
		m.mu.Unlock()
		if !ok || dc == nil {
			return ErrUnknownChannel
		}

		dc.mu.Lock()
		dc.inboundResetOK = true
		done := dc.outboundResetOK
		dc.mu.Unlock()
		if done {
			m.finishClose(dc)
		}
		return nil
	}

	for _, sid := range rc.StreamIDs {
		m.mu.Lock()
		dc, ok := m.channels[sid]
		m.mu.Unlock()
		if !ok {
			continue
		}
		dc.mu.Lock()
		dc.outboundResetOK = true
		dc.inboundResetOK = true
		dc.mu.Unlock()
		m.finishClose(dc)
	}

	ack := (&sctpio.ReconfigChunk{IsResponse: true, ReqSeq: rc.ReqSeq, Result: sctpio.ReconfigResultSuccess}).Marshal()
	return m.send(ack)
}

func (m *DataChannelManager) finishClose(dc *DataChannel) {
	dc.mu.Lock()
	dc.state = ChannelClosed
	f := dc.onClose
	dc.mu.Unlock()

	m.mu.Lock()
	delete(m.channels, dc.StreamID)
	m.mu.Unlock()

	if f != nil {
		f()
	}
}
