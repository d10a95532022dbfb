package sim

import (
	"log"
	"reflect"
	"sync"
)

// Clocked is a component that advances its state on a clock edge. A clock
// domain calls Drive on every component, then Eval on every component, then
// Commit on every component, once per cycle.
type Clocked interface {
	Named

	// Drive publishes the outputs of the component. Outputs may depend on
	// the committed registers and on inputs that are driven by components
	// registered earlier in the domain.
	Drive()

	// Eval computes the next register values from the committed registers
	// and the current inputs. Eval must not change anything that other
	// components can observe.
	Eval()

	// Commit replaces the committed registers with the values computed by
	// Eval.
	Commit()
}

// HookPosClockSettled is triggered after all outputs of a cycle are driven
// and before the next state is evaluated. The item is the cycle number.
var HookPosClockSettled = &HookPos{Name: "Clock Settled"}

// HookPosClockCommitted is triggered after all components commit. The item is
// the number of cycles completed.
var HookPosClockCommitted = &HookPos{Name: "Clock Committed"}

// ClockEdgeEvent triggers one rising edge of a clock domain.
type ClockEdgeEvent struct {
	*EventBase
}

// A ClockDomain drives a set of Clocked components with one clock.
type ClockDomain struct {
	HookableBase

	lock       sync.Mutex
	name       string
	engine     Engine
	freq       Freq
	components []Clocked

	cycle     uint64
	running   bool
	stopAt    uint64
	stopWhen  func() bool
	scheduled bool
}

// NewClockDomain creates a clock domain that schedules its edges on the given
// engine at the given frequency.
func NewClockDomain(name string, engine Engine, freq Freq) *ClockDomain {
	freq.mustBeValid()

	return &ClockDomain{
		name:   name,
		engine: engine,
		freq:   freq,
	}
}

// Name returns the name of the clock domain.
func (d *ClockDomain) Name() string {
	return d.name
}

// Freq returns the clock frequency.
func (d *ClockDomain) Freq() Freq {
	return d.freq
}

// Cycle returns the number of completed cycles.
func (d *ClockDomain) Cycle() uint64 {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.cycle
}

// Components returns the registered components in evaluation order.
func (d *ClockDomain) Components() []Clocked {
	return d.components
}

// Register adds a component to the domain. Components are driven in the
// order they are registered.
func (d *ClockDomain) Register(c Clocked) {
	for _, existing := range d.components {
		if existing.Name() == c.Name() {
			log.Panicf("component %s is already registered in %s",
				c.Name(), d.name)
		}
	}

	d.components = append(d.components, c)
}

// Tick runs exactly one clock cycle without involving the engine.
func (d *ClockDomain) Tick() {
	for _, c := range d.components {
		c.Drive()
	}

	d.lock.Lock()
	cycle := d.cycle
	d.lock.Unlock()

	d.InvokeHook(HookCtx{
		Domain: d,
		Pos:    HookPosClockSettled,
		Item:   cycle,
	})

	for _, c := range d.components {
		c.Eval()
	}

	for _, c := range d.components {
		c.Commit()
	}

	d.lock.Lock()
	d.cycle++
	cycle = d.cycle
	d.lock.Unlock()

	d.InvokeHook(HookCtx{
		Domain: d,
		Pos:    HookPosClockCommitted,
		Item:   cycle,
	})
}

// Start schedules the first edge at the current engine time. The domain keeps
// ticking until Stop is called or a stop condition is met.
func (d *ClockDomain) Start() {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.running = true
	d.scheduleLocked(d.freq.ThisTick(d.engine.CurrentTime()))
}

// Stop prevents the domain from scheduling more edges.
func (d *ClockDomain) Stop() {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.running = false
}

// StopAfter stops the domain once n more cycles are completed.
func (d *ClockDomain) StopAfter(n uint64) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.stopAt = d.cycle + n
}

// StopWhen stops the domain after the first cycle at which cond returns true.
func (d *ClockDomain) StopWhen(cond func() bool) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.stopWhen = cond
}

// IsRunning tells if the domain is still scheduling edges.
func (d *ClockDomain) IsRunning() bool {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.running
}

// Handle handles clock edge events.
func (d *ClockDomain) Handle(e Event) error {
	switch e.(type) {
	case ClockEdgeEvent:
	default:
		log.Panicf("cannot handle event of %s", reflect.TypeOf(e))
	}

	d.lock.Lock()
	d.scheduled = false
	running := d.running
	d.lock.Unlock()

	if !running {
		return nil
	}

	d.Tick()

	d.lock.Lock()
	stopWhen := d.stopWhen
	d.lock.Unlock()

	condMet := stopWhen != nil && stopWhen()

	d.lock.Lock()
	defer d.lock.Unlock()

	if condMet || (d.stopAt > 0 && d.cycle >= d.stopAt) {
		d.running = false
	}

	if d.running {
		d.scheduleLocked(d.freq.NextTick(e.Time()))
	}

	return nil
}

func (d *ClockDomain) scheduleLocked(t VTimeInSec) {
	if d.scheduled {
		return
	}

	d.scheduled = true
	d.engine.Schedule(ClockEdgeEvent{EventBase: NewEventBase(t, d)})
}
