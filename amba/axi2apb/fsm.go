package axi2apb

import (
	"log"

	"github.com/sarchlab/ambabridge/amba"
)

const allOnes = ^uint64(0)

func comb(r registers, req amba.Req, apbo amba.APBOut) registers {
	v := r

	switch r.state {
	case StateIdle:
		if req.Valid {
			v = accept(v, req)
		}
	case StateSetup:
		v.penable = true
		v.state = StateAccess
	case StateAccess:
		if apbo.PReady {
			v = complete(r, v, apbo)
		}
	case StateOut:
		v.pvalid = false
		v.pslverr = false
		v.state = StateIdle
	default:
		log.Panicf("unknown bridge state %d", r.state)
	}

	return v
}

func accept(v registers, req amba.Req) registers {
	v.pwrite = req.Write
	v.paddr = uint32(req.Addr) &^ 0x3
	v.pwdata = req.WData
	v.pstrb = req.WStrb
	v.pprot = 0
	v.prdata = 0
	v.pslverr = false
	v.xsize = 0

	if amba.SpansBothHalves(req.WStrb) {
		v.xsize = 1
	} else if amba.LowerStrb(req.WStrb) == 0 && amba.UpperStrb(req.WStrb) != 0 {
		v.paddr |= 0x4
	}

	if !req.Last {
		v.psel = false
		v.penable = false
		v.pslverr = true
		v.prdata = allOnes
		v.pvalid = true
		v.state = StateOut

		return v
	}

	v.psel = true
	v.penable = false
	v.state = StateSetup

	return v
}

func complete(r, v registers, apbo amba.APBOut) registers {
	v.pslverr = r.pslverr || apbo.PSlvErr
	v.prdata = amba.MergeHalf(r.prdata, apbo.PRData, r.upper())
	v.psel = false
	v.penable = false

	if r.xsize != 0 {
		v.xsize = r.xsize - 1
		v.paddr = r.paddr + amba.APBDataBytes
		v.psel = true
		v.state = StateSetup

		return v
	}

	v.pvalid = true
	v.state = StateOut

	return v
}

func outputs(r registers) (amba.APBIn, amba.Resp, bool) {
	apbi := amba.APBIn{
		PSel:    r.psel,
		PEnable: r.penable,
		PAddr:   r.paddr,
		PWrite:  r.pwrite,
		PWData:  amba.Lower32(r.pwdata),
		PStrb:   amba.LowerStrb(r.pstrb),
		PProt:   r.pprot,
	}

	if r.upper() {
		apbi.PWData = amba.Upper32(r.pwdata)
		apbi.PStrb = amba.UpperStrb(r.pstrb)
	}

	resp := amba.Resp{
		Valid: r.pvalid,
		RData: r.prdata,
		Err:   r.pslverr,
	}

	return apbi, resp, r.state == StateIdle
}
