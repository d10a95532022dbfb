package aximaster

import (
	"github.com/sarchlab/ambabridge/amba"
	"github.com/sarchlab/ambabridge/rtl"
)

// Builder can build AXI4 masters.
type Builder struct {
	nrst     *rtl.Signal[bool]
	xslvi    *rtl.Signal[amba.AXI4SlaveIn]
	xslvo    *rtl.Signal[amba.AXI4SlaveOut]
	script   []Txn
	ready    func(cycle uint64) bool
	combined bool
}

// MakeBuilder returns a Builder that issues AW and W together and is always
// ready on B and R.
func MakeBuilder() Builder {
	return Builder{
		combined: true,
	}
}

// WithNRst connects the active-low reset. The master does not start a
// transaction while the reset is low.
func (b Builder) WithNRst(nrst *rtl.Signal[bool]) Builder {
	b.nrst = nrst
	return b
}

// WithXSlvI sets the signal the master drives. By default the master creates
// its own.
func (b Builder) WithXSlvI(xslvi *rtl.Signal[amba.AXI4SlaveIn]) Builder {
	b.xslvi = xslvi
	return b
}

// WithXSlvO connects the signals driven by the slave.
func (b Builder) WithXSlvO(xslvo *rtl.Signal[amba.AXI4SlaveOut]) Builder {
	b.xslvo = xslvo
	return b
}

// WithScript sets the transactions to issue, in order.
func (b Builder) WithScript(script []Txn) Builder {
	b.script = script
	return b
}

// WithReadyPattern sets when BReady and RReady are high.
func (b Builder) WithReadyPattern(ready func(cycle uint64) bool) Builder {
	b.ready = ready
	return b
}

// WithCombinedIssue sets if the first W beat is issued together with AW.
func (b Builder) WithCombinedIssue(combined bool) Builder {
	b.combined = combined
	return b
}

// Build creates a master.
func (b Builder) Build(name string) *Comp {
	c := &Comp{
		name:     name,
		XSlvI:    b.xslvi,
		script:   append([]Txn(nil), b.script...),
		ready:    b.ready,
		combined: b.combined,
	}

	if c.ready == nil {
		c.ready = func(uint64) bool { return true }
	}

	if c.XSlvI == nil {
		c.XSlvI = rtl.NewSignal[amba.AXI4SlaveIn](name + ".XSlvI")
	}

	c.NRst = b.nrst
	if c.NRst == nil {
		c.NRst = rtl.NewSignalWithValue(name+".NRst", true)
	}

	c.XSlvO = b.xslvo
	if c.XSlvO == nil {
		c.XSlvO = rtl.NewSignal[amba.AXI4SlaveOut](name + ".XSlvO")
	}

	return c
}
