// Package axi2apb provides an AXI4 to APB bridge. The bridge terminates an
// AXI4 slave port with an axislv adapter and executes each beat as one or two
// APB transfers.
package axi2apb

import (
	"github.com/sarchlab/ambabridge/amba"
	"github.com/sarchlab/ambabridge/amba/axislv"
	"github.com/sarchlab/ambabridge/rtl"
)

// Comp is an AXI4 to APB bridge.
type Comp struct {
	name string

	Adapter *axislv.Comp
	Bridge  *Bridge

	NRst  *rtl.Signal[bool]
	XSlvI *rtl.Signal[amba.AXI4SlaveIn]
	XSlvO *rtl.Signal[amba.AXI4SlaveOut]
	APBI  *rtl.Signal[amba.APBIn]
	APBO  *rtl.Signal[amba.APBOut]
}

// Name returns the name of the bridge.
func (c *Comp) Name() string {
	return c.name
}

// Drive publishes the outputs of both halves. The adapter drives first so
// that the narrow half sees the request of this cycle.
func (c *Comp) Drive() {
	c.Adapter.Drive()
	c.Bridge.Drive()
}

// Eval computes the next state of both halves.
func (c *Comp) Eval() {
	c.Adapter.Eval()
	c.Bridge.Eval()
}

// Commit latches the next state of both halves.
func (c *Comp) Commit() {
	c.Adapter.Commit()
	c.Bridge.Commit()
}

// Probe visits every port and register of the bridge. Internal signals are
// visited once.
func (c *Comp) Probe(visit rtl.Visitor) {
	c.Adapter.Probe(visit)
	c.Bridge.probeAPB(visit)
}
