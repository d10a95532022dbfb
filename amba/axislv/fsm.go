package axislv

import (
	"log"

	"github.com/sarchlab/ambabridge/amba"
)

// comb computes the next register values. It is a pure function of the
// committed registers and the inputs.
func comb(r registers, in inputs) registers {
	v := r
	xi := in.xslvi

	if r.reqValid && in.reqReady {
		v.reqValid = false
	}

	switch r.state {
	case StateIdle:
		v = idle(v, xi)
	case StateWaitWriteData:
		if xi.WValid {
			v.reqWData = xi.WData
			v.reqWStrb = xi.WStrb
			v = firstWriteBeat(v)
		}
	case StateBurstWrite:
		if in.resp.Valid && r.busy {
			v.busy = false
			v.respErr = r.respErr || in.resp.Err
		}

		if xi.WValid && !r.busy {
			v.reqWData = xi.WData
			v.reqWStrb = xi.WStrb
			v = nextBeat(r, v, StateLastWrite)
		}
	case StateLastWrite:
		if in.resp.Valid && r.busy {
			v.busy = false
			v.respErr = r.respErr || in.resp.Err
			v.state = StateWriteResponse
		}
	case StateWriteResponse:
		if xi.BReady {
			v.state = StateIdle
		}
	case StateBurstRead, StateLastRead:
		v = readBeat(r, v, in)
	default:
		log.Panicf("unknown adapter state %d", r.state)
	}

	return v
}

func idle(v registers, xi amba.AXI4SlaveIn) registers {
	v.reqBurst = false
	v.reqLast = false
	v.busy = false
	v.respValid = false
	v.respErr = false

	switch {
	case xi.AWValid:
		v.reqWrite = true
		v.reqAddr = xi.AWBits.Addr
		v.reqSize = xi.AWBits.Size
		v.reqLen = xi.AWBits.Len
		v.reqUser = xi.AWUser
		v.reqID = xi.AWID
		v.reqWData = xi.WData
		v.reqWStrb = xi.WStrb

		if xi.WValid {
			v = firstWriteBeat(v)
		} else {
			v.state = StateWaitWriteData
		}
	case xi.ARValid:
		v.reqWrite = false
		v.reqAddr = xi.ARBits.Addr
		v.reqSize = xi.ARBits.Size
		v.reqLen = xi.ARBits.Len
		v.reqUser = xi.ARUser
		v.reqID = xi.ARID
		v.reqWData = 0
		v.reqWStrb = amba.ByteLanes(v.reqAddr, v.reqSize)

		if v.reqLen != 0 {
			v = raise(v, false)
			v.state = StateBurstRead
		} else {
			v = raise(v, true)
			v.state = StateLastRead
		}
	}

	return v
}

// firstWriteBeat raises the request for the first W beat of a write. The
// latched length is the number of beats that follow.
func firstWriteBeat(v registers) registers {
	if v.reqLen != 0 {
		v = raise(v, false)
		v.state = StateBurstWrite
	} else {
		v = raise(v, true)
		v.state = StateLastWrite
	}

	return v
}

// nextBeat advances a burst by one beat and raises its request. When the
// current beat is the second to last, the new one is flagged last and the FSM
// moves to lastState.
func nextBeat(r, v registers, lastState State) registers {
	v.reqAddr = amba.NextBurstAddr(r.reqAddr, amba.XSizeToBytes(r.reqSize))
	v.reqLen = r.reqLen - 1

	last := r.reqLen == 1
	v = raise(v, last)

	if last {
		v.state = lastState
	}

	if !r.reqWrite {
		v.reqWStrb = amba.ByteLanes(v.reqAddr, r.reqSize)
	}

	return v
}

// readBeat waits for the response of the outstanding read beat, presents it
// on R, and moves to the next beat once the master accepts it.
func readBeat(r, v registers, in inputs) registers {
	if in.resp.Valid && r.busy {
		v.busy = false
		v.respValid = true
		v.respRData = in.resp.RData
		v.respErr = in.resp.Err
	}

	if !r.respValid || !in.xslvi.RReady {
		return v
	}

	v.respValid = false

	if r.state == StateLastRead {
		v.state = StateIdle
		return v
	}

	return nextBeat(r, v, StateLastRead)
}

func raise(v registers, last bool) registers {
	v.reqValid = true
	v.busy = true
	v.reqLast = last
	v.reqBurst = !last || v.reqBurst

	return v
}

// outputs computes what the adapter drives. Ready signals in Idle look at the
// valid signals of the master; everything else comes from the registers.
func outputs(r registers, xi amba.AXI4SlaveIn) (amba.AXI4SlaveOut, amba.Req) {
	var o amba.AXI4SlaveOut

	idle := r.state == StateIdle

	o.AWReady = idle
	o.ARReady = idle && !xi.AWValid
	o.WReady = (idle && xi.AWValid) ||
		r.state == StateWaitWriteData ||
		(r.state == StateBurstWrite && !r.busy)

	o.BValid = r.state == StateWriteResponse
	o.BResp = respCode(r.respErr)
	o.BID = r.reqID
	o.BUser = r.reqUser

	reading := r.state == StateBurstRead || r.state == StateLastRead
	o.RValid = reading && r.respValid
	o.RData = r.respRData
	o.RResp = respCode(r.respErr)
	o.RLast = r.state == StateLastRead
	o.RID = r.reqID
	o.RUser = r.reqUser

	req := amba.Req{
		Valid: r.reqValid,
		Addr:  r.reqAddr,
		Write: r.reqWrite,
		WData: r.reqWData,
		WStrb: r.reqWStrb,
		Burst: r.reqBurst,
		Last:  r.reqLast,
	}

	return o, req
}

func respCode(err bool) uint8 {
	if err {
		return amba.RespSlvErr
	}

	return amba.RespOkay
}
