package axi2apb

import (
	"github.com/sarchlab/ambabridge/amba"
	"github.com/sarchlab/ambabridge/rtl"
)

// Bridge executes requests of the internal stream as APB transfers. Requests
// that touch both 32-bit halves of the word take two APB transfers.
type Bridge struct {
	name string
	regs *rtl.Registers[registers]

	NRst     *rtl.Signal[bool]
	Req      *rtl.Signal[amba.Req]
	ReqReady *rtl.Signal[bool]
	Resp     *rtl.Signal[amba.Resp]
	APBI     *rtl.Signal[amba.APBIn]
	APBO     *rtl.Signal[amba.APBOut]
}

// NewBridge creates a narrow bus bridge. Signal arguments may be nil, in
// which case the bridge creates its own.
func NewBridge(
	name string,
	mode rtl.ResetMode,
	nrst *rtl.Signal[bool],
	req *rtl.Signal[amba.Req],
	apbo *rtl.Signal[amba.APBOut],
) *Bridge {
	b := &Bridge{
		name:     name,
		regs:     rtl.NewRegisters(registers{}, mode),
		NRst:     nrst,
		Req:      req,
		ReqReady: rtl.NewSignal[bool](name + ".ReqReady"),
		Resp:     rtl.NewSignal[amba.Resp](name + ".Resp"),
		APBI:     rtl.NewSignal[amba.APBIn](name + ".APBI"),
		APBO:     apbo,
	}

	if b.NRst == nil {
		b.NRst = rtl.NewSignalWithValue(name+".NRst", true)
	}

	if b.Req == nil {
		b.Req = rtl.NewSignal[amba.Req](name + ".Req")
	}

	if b.APBO == nil {
		b.APBO = rtl.NewSignal[amba.APBOut](name + ".APBO")
	}

	rtl.WatchAsyncReset(b.NRst, b.regs)

	return b
}

// Name returns the name of the bridge.
func (b *Bridge) Name() string {
	return b.name
}

// State returns the committed FSM state.
func (b *Bridge) State() State {
	return b.regs.R().state
}

// XSize returns the number of APB transfers left after the current one.
func (b *Bridge) XSize() uint8 {
	return b.regs.R().xsize
}

// Drive publishes the APB signals, the response and the request ready.
func (b *Bridge) Drive() {
	apbi, resp, ready := outputs(b.regs.R())

	b.APBI.Write(apbi)
	b.Resp.Write(resp)
	b.ReqReady.Write(ready)
}

// Eval computes the next state.
func (b *Bridge) Eval() {
	req := b.Req.Read()
	apbo := b.APBO.Read()

	b.regs.Eval(b.NRst.Read(), func(r registers) registers {
		return comb(r, req, apbo)
	})
}

// Commit latches the next state.
func (b *Bridge) Commit() {
	b.regs.Commit(b.NRst.Read())
}

// Probe visits every port and register of the bridge.
func (b *Bridge) Probe(visit rtl.Visitor) {
	rtl.ProbeSignal(b.NRst, visit)
	rtl.ProbeSignal(b.Req, visit)
	rtl.ProbeSignal(b.ReqReady, visit)
	rtl.ProbeSignal(b.Resp, visit)
	b.probeAPB(visit)
}

func (b *Bridge) probeAPB(visit rtl.Visitor) {
	rtl.ProbeSignal(b.APBO, visit)
	rtl.ProbeSignal(b.APBI, visit)
	rtl.Flatten(b.name+".r", b.regs.R(), visit)
}
