// Package axislv provides the wide bus slave adapter. It terminates an AXI4
// slave port and serializes every beat into a single outstanding request on
// the internal request/response stream.
package axislv

import (
	"github.com/sarchlab/ambabridge/amba"
	"github.com/sarchlab/ambabridge/rtl"
)

// Comp is an AXI4 slave adapter.
type Comp struct {
	name string
	regs *rtl.Registers[registers]

	NRst     *rtl.Signal[bool]
	XSlvI    *rtl.Signal[amba.AXI4SlaveIn]
	XSlvO    *rtl.Signal[amba.AXI4SlaveOut]
	Req      *rtl.Signal[amba.Req]
	ReqReady *rtl.Signal[bool]
	Resp     *rtl.Signal[amba.Resp]
}

// Name returns the name of the adapter.
func (c *Comp) Name() string {
	return c.name
}

// State returns the committed FSM state.
func (c *Comp) State() State {
	return c.regs.R().state
}

// ResetMode returns the reset discipline of the adapter.
func (c *Comp) ResetMode() rtl.ResetMode {
	return c.regs.Mode()
}

// Drive publishes the AXI outputs and the internal request.
func (c *Comp) Drive() {
	xo, req := outputs(c.regs.R(), c.XSlvI.Read())

	c.XSlvO.Write(xo)
	c.Req.Write(req)
}

// Eval computes the next state.
func (c *Comp) Eval() {
	in := inputs{
		xslvi:    c.XSlvI.Read(),
		reqReady: c.ReqReady.Read(),
		resp:     c.Resp.Read(),
	}

	c.regs.Eval(c.NRst.Read(), func(r registers) registers {
		return comb(r, in)
	})
}

// Commit latches the next state.
func (c *Comp) Commit() {
	c.regs.Commit(c.NRst.Read())
}

// Probe visits every port and register of the adapter.
func (c *Comp) Probe(visit rtl.Visitor) {
	rtl.ProbeSignal(c.NRst, visit)
	rtl.ProbeSignal(c.XSlvI, visit)
	rtl.ProbeSignal(c.XSlvO, visit)
	rtl.ProbeSignal(c.Req, visit)
	rtl.ProbeSignal(c.ReqReady, visit)
	rtl.ProbeSignal(c.Resp, visit)
	c.ProbeRegisters(visit)
}

// ProbeRegisters visits the registers only. Composites that share the ports
// of the adapter use it to avoid visiting a signal twice.
func (c *Comp) ProbeRegisters(visit rtl.Visitor) {
	rtl.Flatten(c.name+".r", c.regs.R(), visit)
}
