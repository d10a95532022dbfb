package aximaster

import "github.com/sarchlab/ambabridge/amba"

// A Txn is one AXI4 transaction issued by the master.
type Txn struct {
	Write bool
	Addr  uint64
	Size  uint8 // log2 of bytes per beat
	Len   uint8 // number of beats minus one
	Burst uint8
	ID    uint8
	User  uint8

	// Data holds one word per write beat. Missing words are sent as zero.
	Data []uint64

	// Strb holds one strobe per write beat. A missing strobe is replaced by
	// the byte lanes of the beat address and size.
	Strb []uint8
}

// Beats returns the number of data beats of the transaction.
func (t Txn) Beats() int {
	return int(t.Len) + 1
}

// BeatAddr returns the address of the i-th beat of an incrementing burst.
func (t Txn) BeatAddr(i int) uint64 {
	addr := t.Addr
	for j := 0; j < i; j++ {
		addr = amba.NextBurstAddr(addr, amba.XSizeToBytes(t.Size))
	}

	return addr
}

func (t Txn) beatData(i int) uint64 {
	if i < len(t.Data) {
		return t.Data[i]
	}

	return 0
}

func (t Txn) beatStrb(i int) uint8 {
	if i < len(t.Strb) {
		return t.Strb[i]
	}

	return amba.ByteLanes(t.BeatAddr(i), t.Size)
}

// A Beat is one R channel transfer received by the master.
type Beat struct {
	Data uint64
	Resp uint8
	Last bool
	ID   uint8
	User uint8
}

// A Result records how a transaction completed.
type Result struct {
	Txn Txn

	// B channel of a write.
	BResp uint8
	BID   uint8
	BUser uint8

	// R channel beats of a read, in arrival order.
	Beats []Beat

	IssueCycle uint64
	DoneCycle  uint64
}

// Failed tells if any response of the transaction is not OKAY.
func (r Result) Failed() bool {
	if r.Txn.Write {
		return r.BResp != amba.RespOkay
	}

	for _, b := range r.Beats {
		if b.Resp != amba.RespOkay {
			return true
		}
	}

	return false
}
