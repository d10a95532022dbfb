package trace

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/sarchlab/ambabridge/rtl"
	"github.com/sarchlab/ambabridge/sim"
)

// SignalTracer samples probes once per cycle, after all outputs of the cycle
// are driven. The first sample of every signal is always recorded; after that
// only changes are.
type SignalTracer struct {
	lock   sync.Mutex
	sinks  []Sink
	probes []rtl.Probe
	last   map[string]uint64
}

// NewSignalTracer creates a tracer that writes to the given sinks.
func NewSignalTracer(sinks ...Sink) *SignalTracer {
	return &SignalTracer{
		sinks: sinks,
		last:  make(map[string]uint64),
	}
}

// AddProbe adds a probe to sample in addition to the components of the traced
// domain.
func (t *SignalTracer) AddProbe(p rtl.Probe) {
	t.probes = append(t.probes, p)
}

// Trace attaches the tracer to a clock domain. Every registered component that
// is a probe is sampled.
func (t *SignalTracer) Trace(domain *sim.ClockDomain) {
	for _, h := range domain.Hooks {
		if h == t {
			log.Panicf("domain %s is already traced by this tracer",
				domain.Name())
		}
	}

	domain.AcceptHook(t)
}

// Func samples the probes when a clock domain settles.
func (t *SignalTracer) Func(ctx sim.HookCtx) {
	if ctx.Pos != sim.HookPosClockSettled {
		return
	}

	domain, ok := ctx.Domain.(*sim.ClockDomain)
	if !ok {
		return
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	cycle := ctx.Item.(uint64)
	now := sim.VTimeInSec(cycle) * domain.Freq().Period()

	visit := func(name string, width int, value uint64) {
		if prev, seen := t.last[name]; seen && prev == value {
			return
		}

		t.last[name] = value
		s := Sample{
			Cycle: cycle,
			Time:  now,
			Name:  name,
			Width: width,
			Value: value,
		}

		for _, sink := range t.sinks {
			sink.Record(s)
		}
	}

	for _, c := range domain.Components() {
		if p, ok := c.(rtl.Probe); ok {
			p.Probe(visit)
		}
	}

	for _, p := range t.probes {
		p.Probe(visit)
	}
}

// Flush flushes every sink and reports all failures.
func (t *SignalTracer) Flush() error {
	var errs []error

	for _, sink := range t.sinks {
		if err := sink.Flush(); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("flush trace: %w", err)
	}

	return nil
}

// Last returns the most recent value of every sampled signal.
func (t *SignalTracer) Last() map[string]uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	values := make(map[string]uint64, len(t.last))
	for k, v := range t.last {
		values[k] = v
	}

	return values
}
