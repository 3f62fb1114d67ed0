// Package wire implements serial-number arithmetic, a serial Clock, and a
// replay-window detector.
//
// RTP sequence numbers, RTP timestamps, and SCTP transmission sequence
// numbers are all fixed-width counters that wrap around. Comparing two
// such counters for "greater than" is only meaningful modulo the
// counter's width, per RFC 1982. This package centralizes that arithmetic
// for the rtpio and bwe packages; sctpio does not use it.
package wire
