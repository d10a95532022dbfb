// Package apbmem provides an APB memory peripheral with configurable wait
// states and error windows.
package apbmem

import (
	"github.com/sarchlab/ambabridge/amba"
	"github.com/sarchlab/ambabridge/rtl"
)

// A Window is an address range [Start, End) where every access fails with
// PSLVERR.
type Window struct {
	Start uint64
	End   uint64
}

// Contains tells if addr is inside the window.
func (w Window) Contains(addr uint64) bool {
	return addr >= w.Start && addr < w.End
}

// Phase tells which phase of an APB transfer an Access records.
type Phase int

// Phases of an APB transfer.
const (
	PhaseSetup Phase = iota
	PhaseAccess
)

func (p Phase) String() string {
	if p == PhaseSetup {
		return "SETUP"
	}

	return "ACCESS"
}

// An Access is one entry of the access log.
type Access struct {
	Cycle uint64
	Phase Phase
	Addr  uint32
	Write bool
	WData uint32
	Strb  uint8
	RData uint32
	Err   bool
}

type registers struct {
	wait    int
	pready  bool
	prdata  uint32
	pslverr bool
}

// Comp is an APB memory.
type Comp struct {
	name       string
	regs       *rtl.Registers[registers]
	waitStates int
	windows    []Window

	Storage *Storage

	NRst *rtl.Signal[bool]
	APBI *rtl.Signal[amba.APBIn]
	APBO *rtl.Signal[amba.APBOut]

	cycle uint64
	log   []Access
	entry *Access
}

// Name returns the name of the memory.
func (c *Comp) Name() string {
	return c.name
}

// Log returns every SETUP and every completed ACCESS seen so far.
func (c *Comp) Log() []Access {
	return c.log
}

// ClearLog drops the access log.
func (c *Comp) ClearLog() {
	c.log = nil
}

// Drive publishes PREADY, PRDATA and PSLVERR.
func (c *Comp) Drive() {
	r := c.regs.R()

	c.APBO.Write(amba.APBOut{
		PReady:  r.pready,
		PRData:  r.prdata,
		PSlvErr: r.pslverr,
	})
}

// Eval computes the next state. A write is performed on the edge that
// completes its ACCESS phase.
func (c *Comp) Eval() {
	in := c.APBI.Read()
	c.entry = nil

	c.regs.Eval(c.NRst.Read(), func(r registers) registers {
		return c.comb(r, in)
	})
}

func (c *Comp) comb(r registers, in amba.APBIn) registers {
	v := r

	switch {
	case in.IsSetup():
		c.entry = &Access{
			Cycle: c.cycle,
			Phase: PhaseSetup,
			Addr:  in.PAddr,
			Write: in.PWrite,
			WData: in.PWData,
			Strb:  in.PStrb,
		}

		v = registers{wait: c.waitStates}
		if c.waitStates == 0 {
			v = c.respond(v, in)
		}
	case in.IsAccess() && r.pready:
		c.entry = &Access{
			Cycle: c.cycle,
			Phase: PhaseAccess,
			Addr:  in.PAddr,
			Write: in.PWrite,
			WData: in.PWData,
			Strb:  in.PStrb,
			RData: r.prdata,
			Err:   r.pslverr,
		}

		v = registers{}
	case in.IsAccess():
		v.wait = r.wait - 1
		if v.wait <= 0 {
			v = c.respond(v, in)
		}
	default:
		v = registers{}
	}

	return v
}

func (c *Comp) respond(v registers, in amba.APBIn) registers {
	v.pready = true
	v.prdata = 0
	v.pslverr = c.fails(uint64(in.PAddr))

	if !in.PWrite && !v.pslverr {
		data, err := c.Storage.ReadWord(uint64(in.PAddr))
		v.prdata = data
		v.pslverr = err != nil
	}

	return v
}

func (c *Comp) fails(addr uint64) bool {
	for _, w := range c.windows {
		if w.Contains(addr) {
			return true
		}
	}

	return addr+amba.APBDataBytes > c.Storage.Capacity()
}

// Commit latches the next state, performs completed writes and records the
// access log.
func (c *Comp) Commit() {
	nrst := c.NRst.Read()
	c.regs.Commit(nrst)

	if e := c.entry; e != nil && nrst {
		if e.Phase == PhaseAccess && e.Write && !e.Err {
			// The range was checked when PREADY was raised.
			_ = c.Storage.WriteWord(uint64(e.Addr), e.WData, e.Strb)
		}

		c.log = append(c.log, *e)
	}

	c.entry = nil
	c.cycle++
}

// Probe visits the ports and registers of the memory.
func (c *Comp) Probe(visit rtl.Visitor) {
	rtl.ProbeSignal(c.APBO, visit)
	rtl.Flatten(c.name+".r", c.regs.R(), visit)
}
