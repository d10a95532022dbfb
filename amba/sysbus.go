package amba

// Req is one beat on the internal request stream. Only one request can be
// outstanding at a time.
type Req struct {
	Valid bool
	Addr  uint64
	Write bool
	WData uint64
	WStrb uint8
	Burst bool
	Last  bool
}

// Resp answers the outstanding Req. Valid is high for exactly one cycle.
type Resp struct {
	Valid bool
	RData uint64
	Err   bool
}

// Lower32 returns bits [31:0] of v.
func Lower32(v uint64) uint32 {
	return uint32(v)
}

// Upper32 returns bits [63:32] of v.
func Upper32(v uint64) uint32 {
	return uint32(v >> 32)
}

// LowerStrb returns the strobe of byte lanes [3:0].
func LowerStrb(strb uint8) uint8 {
	return strb & 0x0F
}

// UpperStrb returns the strobe of byte lanes [7:4], shifted down.
func UpperStrb(strb uint8) uint8 {
	return strb >> 4
}

// SpansBothHalves tells if a strobe touches both 32-bit halves of a 64-bit
// word.
func SpansBothHalves(strb uint8) bool {
	return LowerStrb(strb) != 0 && UpperStrb(strb) != 0
}

// MergeHalf replaces one 32-bit half of word with data.
func MergeHalf(word uint64, data uint32, upper bool) uint64 {
	if upper {
		return word&0x0000_0000_FFFF_FFFF | uint64(data)<<32
	}

	return word&0xFFFF_FFFF_0000_0000 | uint64(data)
}
