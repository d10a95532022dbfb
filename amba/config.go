package amba

// System bus parameters.
const (
	// SysBusAddrBits is the width of an AXI address.
	SysBusAddrBits = 48

	// SysBusDataBits is the width of the AXI data path.
	SysBusDataBits = 64

	// SysBusDataBytes is the number of byte lanes on the AXI data path.
	SysBusDataBytes = SysBusDataBits / 8

	// SysBusUserBits is the width of the user sideband.
	SysBusUserBits = 1

	// SysBusIDBits is the width of the transaction ID.
	SysBusIDBits = 5

	// BurstBlockBits is the number of low address bits that advance within
	// a burst. Bursts never cross a 4 KiB boundary.
	BurstBlockBits = 12

	// APBDataBits is the width of the APB data path.
	APBDataBits = 32

	// APBDataBytes is the number of byte lanes on the APB data path.
	APBDataBytes = APBDataBits / 8
)

const (
	sysBusAddrMask = uint64(1)<<SysBusAddrBits - 1
	burstBlockMask = uint64(1)<<BurstBlockBits - 1
	fullStrobe     = uint8(1<<SysBusDataBytes - 1)
)
