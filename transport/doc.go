// Package transport defines the two narrow collaborator interfaces a peer
// connection drives, and a harness above them that shares one secured
// channel across an RTP context and an SCTP context when they are bundled.
//
// ICE candidate gathering and connectivity checking live entirely behind
// DatagramTransport — some other component (not this module) drives STUN
// binding requests, candidate pairing, and NAT traversal, and hands this
// package a channel that is already readable/writable once connectivity
// succeeds. Likewise SecuredTransport hides the DTLS/SRTP handshake and
// record layer; this package only needs its send/recv surface and the
// fingerprint it negotiated. That division follows the purpose of this
// module: the real-time control and transport engine above those two
// external collaborators, not the collaborators themselves.
package transport
