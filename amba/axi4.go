package amba

import "fmt"

// Burst types.
const (
	BurstFixed uint8 = 0
	BurstIncr  uint8 = 1
	BurstWrap  uint8 = 2
)

// Response codes on the B and R channels.
const (
	RespOkay   uint8 = 0
	RespExOkay uint8 = 1
	RespSlvErr uint8 = 2
	RespDecErr uint8 = 3
)

// RespName returns a short printable name of a response code.
func RespName(resp uint8) string {
	switch resp {
	case RespOkay:
		return "OKAY"
	case RespExOkay:
		return "EXOKAY"
	case RespSlvErr:
		return "SLVERR"
	case RespDecErr:
		return "DECERR"
	default:
		return fmt.Sprintf("RESP(%d)", resp)
	}
}

// AXI4MetaData carries the attributes of an AW or AR transfer.
type AXI4MetaData struct {
	Addr   uint64
	Len    uint8 // number of beats minus one
	Size   uint8 // log2 of bytes per beat
	Burst  uint8
	Lock   bool
	Cache  uint8
	Prot   uint8
	QoS    uint8
	Region uint8
}

// AXI4SlaveIn is everything a master drives towards a slave.
type AXI4SlaveIn struct {
	AWValid bool
	AWBits  AXI4MetaData
	AWID    uint8
	AWUser  uint8

	WValid bool
	WData  uint64
	WLast  bool
	WStrb  uint8
	WUser  uint8

	BReady bool

	ARValid bool
	ARBits  AXI4MetaData
	ARID    uint8
	ARUser  uint8

	RReady bool
}

// AXI4SlaveOut is everything a slave drives towards a master.
type AXI4SlaveOut struct {
	AWReady bool
	WReady  bool

	BValid bool
	BResp  uint8
	BID    uint8
	BUser  uint8

	ARReady bool

	RValid bool
	RResp  uint8
	RData  uint64
	RLast  bool
	RID    uint8
	RUser  uint8
}

// XSizeToBytes converts an AXI size field to the number of bytes per beat.
func XSizeToBytes(size uint8) uint64 {
	return uint64(1) << size
}

// ByteLanes returns the strobe mask of the data lanes an access of the given
// size at the given address touches. Accesses as wide as the bus or wider use
// every lane.
func ByteLanes(addr uint64, size uint8) uint8 {
	bytes := XSizeToBytes(size)
	if bytes >= SysBusDataBytes {
		return fullStrobe
	}

	offset := (addr % SysBusDataBytes) &^ (bytes - 1)
	mask := uint64(1)<<bytes - 1

	return uint8(mask << offset)
}

// NextBurstAddr returns the address of the beat that follows addr in an
// incrementing burst. Only the low BurstBlockBits advance; the bits above
// stay the same.
func NextBurstAddr(addr uint64, bytes uint64) uint64 {
	high := addr &^ burstBlockMask
	low := (addr + bytes) & burstBlockMask

	return (high | low) & sysBusAddrMask
}
