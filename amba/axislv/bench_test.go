package axislv

import (
	"github.com/sarchlab/ambabridge/amba"
	"github.com/sarchlab/ambabridge/amba/aximaster"
	"github.com/sarchlab/ambabridge/rtl"
)

// responder stands in for the narrow bridge. It accepts one request at a time
// and answers it after a fixed latency.
type responder struct {
	req   *rtl.Signal[amba.Req]
	ready *rtl.Signal[bool]
	resp  *rtl.Signal[amba.Resp]

	latency int
	readyAt func(cycle int) bool
	data    func(addr uint64) uint64
	failAt  func(addr uint64) bool

	cycle   int
	pending *amba.Req
	wait    int
	reqs    []amba.Req

	held      amba.Req
	holding   bool
	stalled   int
	unstable  bool
	overlaped bool
}

func newResponder() *responder {
	return &responder{
		ready:   rtl.NewSignal[bool]("stub.ReqReady"),
		resp:    rtl.NewSignal[amba.Resp]("stub.Resp"),
		readyAt: func(int) bool { return true },
		data:    func(addr uint64) uint64 { return 0xD000_0000_0000_0000 | addr },
		failAt:  func(uint64) bool { return false },
	}
}

func (s *responder) drive() {
	s.ready.Write(s.pending == nil && s.readyAt(s.cycle))

	var resp amba.Resp
	if s.pending != nil && s.wait == 0 {
		resp = amba.Resp{
			Valid: true,
			RData: s.data(s.pending.Addr),
			Err:   s.failAt(s.pending.Addr),
		}
	}

	s.resp.Write(resp)
}

func (s *responder) step() {
	req := s.req.Read()

	switch {
	case s.resp.Read().Valid:
		s.pending = nil
	case s.pending != nil:
		if req.Valid {
			s.overlaped = true
		}
		s.wait--
	case req.Valid && s.ready.Read():
		accepted := req
		s.reqs = append(s.reqs, accepted)
		s.pending = &accepted
		s.wait = s.latency
		s.holding = false
	case req.Valid:
		if s.holding && req != s.held {
			s.unstable = true
		}
		s.held = req
		s.holding = true
		s.stalled++
	}

	s.cycle++
}

type bench struct {
	nrst    *rtl.Signal[bool]
	master  *aximaster.Comp
	adapter *Comp
	stub    *responder
	states  []State
}

func newBench(
	mode rtl.ResetMode,
	master aximaster.Builder,
) *bench {
	b := &bench{
		nrst: rtl.NewSignalWithValue("nrst", true),
		stub: newResponder(),
	}

	xslvi := rtl.NewSignal[amba.AXI4SlaveIn]("master.XSlvI")

	b.adapter = MakeBuilder().
		WithResetMode(mode).
		WithNRst(b.nrst).
		WithXSlvI(xslvi).
		WithReqReady(b.stub.ready).
		WithResp(b.stub.resp).
		Build("Adapter")
	b.stub.req = b.adapter.Req

	b.master = master.
		WithNRst(b.nrst).
		WithXSlvI(xslvi).
		WithXSlvO(b.adapter.XSlvO).
		Build("Master")

	return b
}

func (b *bench) tick() {
	b.master.Drive()
	b.adapter.Drive()
	b.stub.drive()

	b.master.Eval()
	b.adapter.Eval()

	b.master.Commit()
	b.adapter.Commit()
	b.stub.step()

	b.states = append(b.states, b.adapter.State())
}

func (b *bench) runToCompletion(limit int) bool {
	for i := 0; i < limit; i++ {
		if b.master.Done() {
			return true
		}

		b.tick()
	}

	return b.master.Done()
}
