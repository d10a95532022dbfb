package amba

// APBIn is everything a bridge drives towards an APB peripheral.
type APBIn struct {
	PSel    bool
	PEnable bool
	PAddr   uint32
	PWrite  bool
	PWData  uint32
	PStrb   uint8
	PProt   uint8
}

// APBOut is everything an APB peripheral drives back to the bridge.
type APBOut struct {
	PReady  bool
	PRData  uint32
	PSlvErr bool
}

// IsSetup tells if the bus is in the SETUP phase of a transfer.
func (p APBIn) IsSetup() bool {
	return p.PSel && !p.PEnable
}

// IsAccess tells if the bus is in the ACCESS phase of a transfer.
func (p APBIn) IsAccess() bool {
	return p.PSel && p.PEnable
}
