package pc

import (
	"sync"

	"github.com/opd-ai/rtcore/transport"
)

// eventTable replaces the source's event-emitter pattern with a small
// typed callback table: one optional listener per event kind, invoked
// synchronously on the caller's goroutine in the order transitions occur,
// so state-change events preserve transition order without a broadcast
// channel's buffering/ordering surprises.
type eventTable struct {
	mu sync.Mutex

	onSignalingStateChange func(SignalingState)
	onIceConnectionChange  func(transport.IceConnectionState)
	onIceGatheringChange   func(GatheringState)
	onTrack                func(*Transceiver)
	onDataChannel          func(*DataChannel)
}

// GatheringState is the candidate-gathering half of ICE progress, reported
// separately from connectivity per §4.6.
type GatheringState int

const (
	GatheringNew GatheringState = iota
	GatheringGathering
	GatheringComplete
)

func (g GatheringState) String() string {
	switch g {
	case GatheringNew:
		return "new"
	case GatheringGathering:
		return "gathering"
	case GatheringComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// OnSignalingStateChange registers the listener fired after every
// successful signaling-state transition.
func (pc *PeerConnection) OnSignalingStateChange(f func(SignalingState)) {
	pc.events.mu.Lock()
	defer pc.events.mu.Unlock()
	pc.events.onSignalingStateChange = f
}

// OnIceConnectionStateChange registers the listener fired as the
// aggregated ICE connection state advances.
func (pc *PeerConnection) OnIceConnectionStateChange(f func(transport.IceConnectionState)) {
	pc.events.mu.Lock()
	defer pc.events.mu.Unlock()
	pc.events.onIceConnectionChange = f
}

// OnIceGatheringStateChange registers a listener for candidate-gathering
// progress. No PeerConnection operation changes the gathering state, so
// the listener is stored but never invoked.
func (pc *PeerConnection) OnIceGatheringStateChange(f func(GatheringState)) {
	pc.events.mu.Lock()
	defer pc.events.mu.Unlock()
	pc.events.onIceGatheringChange = f
}

// OnTrack registers the listener fired the first time a transceiver's
// remote media configuration is applied.
func (pc *PeerConnection) OnTrack(f func(*Transceiver)) {
	pc.events.mu.Lock()
	defer pc.events.mu.Unlock()
	pc.events.onTrack = f
}

// OnDataChannel registers the listener fired when a peer-initiated data
// channel opens.
func (pc *PeerConnection) OnDataChannel(f func(*DataChannel)) {
	pc.events.mu.Lock()
	defer pc.events.mu.Unlock()
	pc.events.onDataChannel = f
}

func (pc *PeerConnection) fireSignalingStateChange(state SignalingState) {
	pc.events.mu.Lock()
	f := pc.events.onSignalingStateChange
	pc.events.mu.Unlock()
	if f != nil {
		f(state)
	}
}

func (pc *PeerConnection) fireIceConnectionStateChange(state transport.IceConnectionState) {
	pc.events.mu.Lock()
	f := pc.events.onIceConnectionChange
	pc.events.mu.Unlock()
	if f != nil {
		f(state)
	}
}

func (pc *PeerConnection) fireIceGatheringStateChange(state GatheringState) {
	pc.events.mu.Lock()
	f := pc.events.onIceGatheringChange
	pc.events.mu.Unlock()
	if f != nil {
		f(state)
	}
}

func (pc *PeerConnection) fireTrack(t *Transceiver) {
	pc.events.mu.Lock()
	f := pc.events.onTrack
	pc.events.mu.Unlock()
	if f != nil {
		f(t)
	}
}

func (pc *PeerConnection) fireDataChannel(dc *DataChannel) {
	pc.events.mu.Lock()
	f := pc.events.onDataChannel
	pc.events.mu.Unlock()
	if f != nil {
		f(dc)
	}
}
