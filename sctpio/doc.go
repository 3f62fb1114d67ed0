// Package sctpio implements SCTP packet/chunk framing over a secured
// datagram channel, plus the data-channel establishment protocol (DCEP)
// that rides on top of it.
//
// The wire codec (packet header, CRC-32C checksum, chunk TLV framing) and
// the typed DATA/RE-CONFIG chunk bodies are hand-written to the bit-exact
// layout in RFC 4960/RFC 6525: this package owns SCTP packet/chunk
// framing outright rather than delegating to a socket-driving
// association implementation, since connectivity and record-layer
// encryption are handled externally while SCTP framing itself is not.
package sctpio
