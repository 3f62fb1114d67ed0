// Package rtpio implements RTP payload framing for packetized video.
//
// The centerpiece is the VP8 payload descriptor (RFC 7741), encoded and
// decoded at bit-exact fidelity with the on-wire format, plus a packetizer
// and depacketizer that split/reassemble a compressed frame across RTP
// packets no larger than PacketMax bytes including the descriptor.
//
// RTP headers themselves are built with github.com/pion/rtp; this package
// owns only the VP8 payload-descriptor framing layered on top of them.
package rtpio
