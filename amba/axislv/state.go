package axislv

import (
	"fmt"

	"github.com/sarchlab/ambabridge/amba"
)

// State is the state of the adapter FSM.
type State uint8

// States of the adapter FSM.
const (
	StateIdle State = iota
	StateWaitWriteData
	StateBurstWrite
	StateLastWrite
	StateWriteResponse
	StateBurstRead
	StateLastRead
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateWaitWriteData:
		return "WaitWriteData"
	case StateBurstWrite:
		return "BurstWrite"
	case StateLastWrite:
		return "LastWrite"
	case StateWriteResponse:
		return "WriteResponse"
	case StateBurstRead:
		return "BurstRead"
	case StateLastRead:
		return "LastRead"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

type registers struct {
	state     State
	reqValid  bool
	reqAddr   uint64
	reqWrite  bool
	reqWData  uint64
	reqWStrb  uint8
	reqSize   uint8
	reqLen    uint8
	reqUser   uint8
	reqID     uint8
	reqBurst  bool
	reqLast   bool
	busy      bool
	respValid bool
	respRData uint64
	respErr   bool
}

type inputs struct {
	xslvi    amba.AXI4SlaveIn
	reqReady bool
	resp     amba.Resp
}
