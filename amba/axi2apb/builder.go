package axi2apb

import (
	"github.com/sarchlab/ambabridge/amba"
	"github.com/sarchlab/ambabridge/amba/axislv"
	"github.com/sarchlab/ambabridge/rtl"
)

// Builder can build AXI4 to APB bridges.
type Builder struct {
	resetMode rtl.ResetMode
	nrst      *rtl.Signal[bool]
	xslvi     *rtl.Signal[amba.AXI4SlaveIn]
	apbo      *rtl.Signal[amba.APBOut]
}

// MakeBuilder returns a Builder with a synchronous reset.
func MakeBuilder() Builder {
	return Builder{
		resetMode: rtl.SyncReset,
	}
}

// WithResetMode sets the reset discipline of both halves.
func (b Builder) WithResetMode(mode rtl.ResetMode) Builder {
	b.resetMode = mode
	return b
}

// WithNRst connects the active-low reset.
func (b Builder) WithNRst(nrst *rtl.Signal[bool]) Builder {
	b.nrst = nrst
	return b
}

// WithXSlvI connects the AXI signals driven by the master.
func (b Builder) WithXSlvI(xslvi *rtl.Signal[amba.AXI4SlaveIn]) Builder {
	b.xslvi = xslvi
	return b
}

// WithAPBO connects the APB signals driven by the peripheral.
func (b Builder) WithAPBO(apbo *rtl.Signal[amba.APBOut]) Builder {
	b.apbo = apbo
	return b
}

// Build creates a bridge. The AXI half is named <name>.AXI and the APB half
// <name>.APB.
func (b Builder) Build(name string) *Comp {
	nrst := b.nrst
	if nrst == nil {
		nrst = rtl.NewSignalWithValue(name+".NRst", true)
	}

	bridge := NewBridge(name+".APB", b.resetMode, nrst, nil, b.apbo)

	adapter := axislv.MakeBuilder().
		WithResetMode(b.resetMode).
		WithNRst(nrst).
		WithXSlvI(b.xslvi).
		WithReqReady(bridge.ReqReady).
		WithResp(bridge.Resp).
		Build(name + ".AXI")

	bridge.Req = adapter.Req

	return &Comp{
		name:    name,
		Adapter: adapter,
		Bridge:  bridge,
		NRst:    nrst,
		XSlvI:   adapter.XSlvI,
		XSlvO:   adapter.XSlvO,
		APBI:    bridge.APBI,
		APBO:    bridge.APBO,
	}
}
