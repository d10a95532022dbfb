package axi2apb

import "fmt"

// State is the state of the narrow bus FSM.
type State uint8

// States of the narrow bus FSM.
const (
	StateIdle State = iota
	StateSetup
	StateAccess
	StateOut
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateSetup:
		return "Setup"
	case StateAccess:
		return "Access"
	case StateOut:
		return "Out"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

type registers struct {
	state   State
	paddr   uint32
	pwrite  bool
	pwdata  uint64
	pstrb   uint8
	xsize   uint8
	psel    bool
	penable bool
	pprot   uint8
	pvalid  bool
	prdata  uint64
	pslverr bool
}

// upper tells if the current APB beat targets bits [63:32] of the word.
func (r registers) upper() bool {
	return r.paddr&0x4 != 0
}
