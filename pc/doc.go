// Package pc implements the peer-connection state machine: the signaling
// FSM, transceiver selection, the data-channel manager, and the event
// callbacks a peer connection fires as those pieces change. It orchestrates
// the sdp, transport, sctpio, rtpio, and bwe packages but performs no I/O
// of its own — every suspension point (setLocalDescription,
// setRemoteDescription, createOffer/createAnswer, close) is driven by the
// single event loop that owns a PeerConnection, consistent with the
// cooperative, single-threaded scheduling model the rest of this module
// follows.
package pc
