// Package rtcore implements a WebRTC-compatible peer-connection core: the
// wire-level RTP/SCTP codecs, a receiver-side delay-based bandwidth estimator, an SDP
// offer/answer grammar, and the peer-connection state machine that ties
// them together over externally supplied ICE and DTLS/SRTP transports.
//
// rtcore does not implement ICE candidate gathering/connectivity checks or
// the DTLS/SRTP handshake itself — those are expected to come from an
// external transport.DatagramTransport/SecuredTransport pair, the same way
// a browser's WebRTC stack delegates them to its own ICE agent and DTLS
// stack. What rtcore owns is everything above that line:
//
//   - [wire]: RFC 1982 serial-number arithmetic, a serial Clock, and a
//     replay-window detector.
//   - [rtpio]: RTP packetization/depacketization and reassembly within a
//     bounded reorder window.
//   - [sctpio]: SCTP DATA chunk framing and the data-channel establishment
//     protocol (DCEP) riding on it.
//   - [bwe]: the inter-arrival grouper, Kalman-filter overuse estimator and
//     detector a media receiver drives, and its AIMD rate controller.
//   - [sdp]: parsing and rendering of session descriptions into a typed
//     domain model, independent of any particular SDP library's wire
//     representation.
//   - [transport]: the per-bundle harness above one ICE candidate pair and
//     its eventual DTLS/SRTP context.
//   - [pc]: the signaling state machine, transceiver set, and data-channel
//     manager that an application drives through createOffer/createAnswer,
//     setLocalDescription/setRemoteDescription, and close.
//
// # Getting Started
//
// A minimal offer/answer exchange between two PeerConnections in the same
// process:
//
//	offerer := pc.New(pc.Configuration{Host: "203.0.113.1"})
//	offerer.AddTransceiver(pc.NewTransceiver(sdp.KindAudio, sdp.DirectionSendRecv))
//
//	offer, err := offerer.CreateOffer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := offerer.SetLocalDescription("offer", offer); err != nil {
//	    log.Fatal(err)
//	}
//
//	answerer := pc.New(pc.Configuration{Host: "203.0.113.2"})
//	if err := answerer.SetRemoteDescription("offer", offer); err != nil {
//	    log.Fatal(err)
//	}
//	answer, err := answerer.CreateAnswer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := answerer.SetLocalDescription("answer", answer); err != nil {
//	    log.Fatal(err)
//	}
//	if err := offerer.SetRemoteDescription("answer", answer); err != nil {
//	    log.Fatal(err)
//	}
//
// Rendering either side's description to the wire format, or parsing one
// received over a signaling channel, goes through [sdp.Render] and
// [sdp.Parse].
package rtcore
