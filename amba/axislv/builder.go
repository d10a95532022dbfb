package axislv

import (
	"github.com/sarchlab/ambabridge/amba"
	"github.com/sarchlab/ambabridge/rtl"
)

// Builder can build adapters.
type Builder struct {
	resetMode rtl.ResetMode
	nrst      *rtl.Signal[bool]
	xslvi     *rtl.Signal[amba.AXI4SlaveIn]
	reqReady  *rtl.Signal[bool]
	resp      *rtl.Signal[amba.Resp]
}

// MakeBuilder returns a Builder with a synchronous reset.
func MakeBuilder() Builder {
	return Builder{
		resetMode: rtl.SyncReset,
	}
}

// WithResetMode sets the reset discipline.
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

// WithReqReady connects the ready signal of the request consumer.
func (b Builder) WithReqReady(ready *rtl.Signal[bool]) Builder {
	b.reqReady = ready
	return b
}

// WithResp connects the response stream.
func (b Builder) WithResp(resp *rtl.Signal[amba.Resp]) Builder {
	b.resp = resp
	return b
}

// Build creates an adapter. Inputs that are not connected get new signals
// named after the adapter. A new reset signal starts deasserted.
func (b Builder) Build(name string) *Comp {
	c := &Comp{
		name:  name,
		regs:  rtl.NewRegisters(registers{}, b.resetMode),
		XSlvO: rtl.NewSignal[amba.AXI4SlaveOut](name + ".XSlvO"),
		Req:   rtl.NewSignal[amba.Req](name + ".Req"),
	}

	c.NRst = b.nrst
	if c.NRst == nil {
		c.NRst = rtl.NewSignalWithValue(name+".NRst", true)
	}

	c.XSlvI = b.xslvi
	if c.XSlvI == nil {
		c.XSlvI = rtl.NewSignal[amba.AXI4SlaveIn](name + ".XSlvI")
	}

	c.ReqReady = b.reqReady
	if c.ReqReady == nil {
		c.ReqReady = rtl.NewSignal[bool](name + ".ReqReady")
	}

	c.Resp = b.resp
	if c.Resp == nil {
		c.Resp = rtl.NewSignal[amba.Resp](name + ".Resp")
	}

	rtl.WatchAsyncReset(c.NRst, c.regs)

	return c
}
