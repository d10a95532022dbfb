// Package aximaster provides an AXI4 master that plays a script of
// transactions against a slave port and records the responses.
package aximaster

import (
	"log"

	"github.com/sarchlab/ambabridge/amba"
	"github.com/sarchlab/ambabridge/rtl"
)

type phase int

const (
	phaseIdle phase = iota
	phaseWrite
	phaseWaitB
	phaseRead
	phaseDone
)

type registers struct {
	phase  phase
	txn    int
	awDone bool
	arDone bool
	beat   int
}

// Comp is an AXI4 master traffic generator.
type Comp struct {
	name string

	NRst  *rtl.Signal[bool]
	XSlvI *rtl.Signal[amba.AXI4SlaveIn]
	XSlvO *rtl.Signal[amba.AXI4SlaveOut]

	script   []Txn
	ready    func(cycle uint64) bool
	combined bool

	r, v    registers
	cycle   uint64
	current Result
	staged  []Beat
	results []Result
	finish  bool
}

// Name returns the name of the master.
func (c *Comp) Name() string {
	return c.name
}

// Done tells if every transaction of the script has completed.
func (c *Comp) Done() bool {
	return c.r.phase == phaseDone
}

// Results returns the results of the completed transactions in order.
func (c *Comp) Results() []Result {
	return c.results
}

// Reset rewinds the master to the start of its script and drops all results.
func (c *Comp) Reset() {
	c.r = registers{}
	c.v = registers{}
	c.cycle = 0
	c.current = Result{}
	c.staged = nil
	c.results = nil
	c.finish = false
}

// Drive publishes the AXI master signals.
func (c *Comp) Drive() {
	c.XSlvI.Write(c.drive(c.r))
}

func (c *Comp) drive(r registers) amba.AXI4SlaveIn {
	var in amba.AXI4SlaveIn

	switch r.phase {
	case phaseIdle, phaseDone:
	case phaseWrite:
		t := c.script[r.txn]

		in.AWValid = !r.awDone
		in.AWBits = t.metaData()
		in.AWID = t.ID
		in.AWUser = t.User

		in.WValid = r.beat < t.Beats() && (r.awDone || c.combined)
		if in.WValid {
			in.WData = t.beatData(r.beat)
			in.WStrb = t.beatStrb(r.beat)
			in.WLast = r.beat == t.Beats()-1
			in.WUser = t.User
		}
	case phaseWaitB:
		in.BReady = c.ready(c.cycle)
	case phaseRead:
		t := c.script[r.txn]

		in.ARValid = !r.arDone
		in.ARBits = t.metaData()
		in.ARID = t.ID
		in.ARUser = t.User
		in.RReady = r.arDone && c.ready(c.cycle)
	default:
		log.Panicf("unknown master phase %d", r.phase)
	}

	return in
}

// Eval observes the handshakes of this cycle.
func (c *Comp) Eval() {
	in := c.XSlvI.Read()
	out := c.XSlvO.Read()
	r := c.r
	v := r

	c.staged = c.staged[:0]
	c.finish = false

	switch r.phase {
	case phaseIdle:
		v = c.start(v)
	case phaseWrite:
		t := c.script[r.txn]

		if in.AWValid && out.AWReady {
			v.awDone = true
		}

		if in.WValid && out.WReady {
			v.beat++
		}

		if v.awDone && v.beat == t.Beats() {
			v.phase = phaseWaitB
		}
	case phaseWaitB:
		if in.BReady && out.BValid {
			c.finish = true
			v.phase = phaseIdle
			v.txn++
		}
	case phaseRead:
		t := c.script[r.txn]

		if in.ARValid && out.ARReady {
			v.arDone = true
		}

		if in.RReady && out.RValid {
			c.staged = append(c.staged, Beat{
				Data: out.RData,
				Resp: out.RResp,
				Last: out.RLast,
				ID:   out.RID,
				User: out.RUser,
			})
			v.beat++
		}

		if v.beat == t.Beats() {
			c.finish = true
			v.phase = phaseIdle
			v.txn++
		}
	}

	if !c.NRst.Read() {
		v = registers{phase: phaseIdle, txn: r.txn}
		c.finish = false
		c.staged = c.staged[:0]
	}

	c.v = v
}

func (c *Comp) start(v registers) registers {
	if !c.NRst.Read() {
		return v
	}

	if v.txn >= len(c.script) {
		v.phase = phaseDone
		return v
	}

	t := c.script[v.txn]

	v.awDone = false
	v.arDone = false
	v.beat = 0
	v.phase = phaseRead
	if t.Write {
		v.phase = phaseWrite
	}

	c.current = Result{Txn: t, IssueCycle: c.cycle + 1}

	return v
}

// Commit applies the handshakes observed in Eval.
func (c *Comp) Commit() {
	out := c.XSlvO.Read()

	c.current.Beats = append(c.current.Beats, c.staged...)

	if c.finish {
		if c.current.Txn.Write {
			c.current.BResp = out.BResp
			c.current.BID = out.BID
			c.current.BUser = out.BUser
		}

		c.current.DoneCycle = c.cycle
		c.results = append(c.results, c.current)
		c.current = Result{}
	}

	c.r = c.v
	c.cycle++
}

func (t Txn) metaData() amba.AXI4MetaData {
	return amba.AXI4MetaData{
		Addr:  t.Addr,
		Len:   t.Len,
		Size:  t.Size,
		Burst: t.Burst,
	}
}

// Probe visits the registers of the master. The AXI signals are visited by
// the slave that shares them.
func (c *Comp) Probe(visit rtl.Visitor) {
	rtl.Flatten(c.name+".r", c.r, visit)
}
