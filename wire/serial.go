package wire

// Uint32Add returns a+b wrapped modulo 2^32.
func Uint32Add(a, b uint32) uint32 {
	return a + b
}

// Uint32Gt reports whether a is "serially greater than" b per RFC 1982,
// treating both as 32-bit unsigned counters subject to wraparound.
//
// a > b iff a != b and either:
//   - a < b and b-a > 2^31, or
//   - a > b and a-b < 2^31
func Uint32Gt(a, b uint32) bool {
	if a == b {
		return false
	}
	if a < b {
		return b-a > 1<<31
	}
	return a-b < 1<<31
}

// Uint32Gte reports whether a is serially greater than or equal to b.
func Uint32Gte(a, b uint32) bool {
	return a == b || Uint32Gt(a, b)
}

// Uint32Diff returns the signed serial distance b-a as a value in
// [-2^31, 2^31), i.e. the quantity that when added to a (mod 2^32) yields
// b. This is what the inter-arrival grouper uses to compute deltas across
// a wraparound boundary.
func Uint32Diff(a, b uint32) int64 {
	return int64(int32(b - a))
}

// Uint16Add returns a+b wrapped modulo 2^16.
func Uint16Add(a, b uint16) uint16 {
	return a + b
}

// Uint16Gt reports whether a is serially greater than b per RFC 1982 for
// 16-bit counters (used for RTP sequence numbers).
func Uint16Gt(a, b uint16) bool {
	if a == b {
		return false
	}
	if a < b {
		return b-a > 1<<15
	}
	return a-b < 1<<15
}

// Uint16Gte reports whether a is serially greater than or equal to b.
func Uint16Gte(a, b uint16) bool {
	return a == b || Uint16Gt(a, b)
}
