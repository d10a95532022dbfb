// Package platform assembles an AXI master, the bridge and an APB memory into
// one clocked system and runs the configured script on it.
package platform

import (
	"errors"
	"fmt"

	"github.com/sarchlab/ambabridge/amba/aximaster"
	"github.com/sarchlab/ambabridge/amba/axi2apb"
	"github.com/sarchlab/ambabridge/apbmem"
	"github.com/sarchlab/ambabridge/monitoring"
	"github.com/sarchlab/ambabridge/rtl"
	"github.com/sarchlab/ambabridge/sim"
	"github.com/sarchlab/ambabridge/trace"
)

// ErrIncomplete is returned by Run when the script does not complete within
// the cycle limit.
var ErrIncomplete = errors.New("script did not complete")

// A Platform is a bridge between an AXI master and an APB memory.
type Platform struct {
	name      string
	maxCycles uint64
	scriptLen int
	reset     *resetSequencer
	vcd       *trace.VCDWriter
	db        *trace.SQLiteWriter
	url       string
	closed    bool

	Engine  *sim.SerialEngine
	Domain  *sim.ClockDomain
	NRst    *rtl.Signal[bool]
	Master  *aximaster.Comp
	Bridge  *axi2apb.Comp
	Memory  *apbmem.Comp
	Tracer  *trace.SignalTracer
	Monitor *monitoring.Monitor
}

// Name returns the name of the platform.
func (p *Platform) Name() string {
	return p.name
}

// URL returns the address of the monitor, or an empty string if the platform
// is not monitored.
func (p *Platform) URL() string {
	return p.url
}

// Run holds the reset low for the configured number of cycles and then plays
// the script until it completes. Calling Run again replays the script from
// reset on the same memory.
func (p *Platform) Run() ([]aximaster.Result, error) {
	p.Master.Reset()
	p.Memory.ClearLog()
	p.reset.arm()

	var bar *monitoring.ProgressBar
	if p.Monitor != nil {
		bar = p.Monitor.CreateProgressBar(p.name,
			uint64(p.scriptLen))
		defer p.Monitor.CompleteProgressBar(bar)
	}

	progress := &progressHook{master: p.Master, bar: bar}
	p.Domain.AcceptHook(progress)
	defer p.removeHook(progress)

	start := p.Domain.Cycle()
	p.Domain.StopAfter(uint64(p.reset.cycles) + p.maxCycles)
	p.Domain.StopWhen(p.Master.Done)
	p.Domain.Start()

	err := p.Engine.Run()
	p.Domain.Stop()

	if p.Tracer != nil {
		err = errors.Join(err, p.Tracer.Flush())
	}

	if err == nil && !p.Master.Done() {
		err = fmt.Errorf("%w after %d cycles", ErrIncomplete,
			p.Domain.Cycle()-start)
	}

	return p.Master.Results(), err
}

func (p *Platform) removeHook(h sim.Hook) {
	hooks := p.Domain.Hooks[:0]
	for _, existing := range p.Domain.Hooks {
		if existing != h {
			hooks = append(hooks, existing)
		}
	}

	p.Domain.Hooks = hooks
}

// Close ends the simulation, flushes and closes the trace outputs and stops
// the monitor.
func (p *Platform) Close() error {
	var errs []error

	if !p.closed {
		p.closed = true
		p.Engine.Finished()
	}

	if p.vcd != nil {
		errs = append(errs, p.vcd.Close())
		p.vcd = nil
	}

	if p.db != nil {
		errs = append(errs, p.db.Close())
		p.db = nil
	}

	if p.Monitor != nil {
		errs = append(errs, p.Monitor.StopServer())
	}

	return errors.Join(errs...)
}

// progressHook shows the completed transactions on a progress bar.
type progressHook struct {
	master *aximaster.Comp
	bar    *monitoring.ProgressBar
	done   int
}

func (h *progressHook) Func(ctx sim.HookCtx) {
	if ctx.Pos != sim.HookPosClockCommitted || h.bar == nil {
		return
	}

	n := len(h.master.Results())
	if n == h.done {
		return
	}

	h.done = n

	var inFlight uint64
	if !h.master.Done() {
		inFlight = 1
	}

	h.bar.Update(uint64(n), inFlight)
}
