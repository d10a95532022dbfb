package apbmem

import (
	"github.com/sarchlab/ambabridge/amba"
	"github.com/sarchlab/ambabridge/rtl"
)

// Builder can build APB memories.
type Builder struct {
	capacity   uint64
	storage    *Storage
	waitStates int
	windows    []Window
	nrst       *rtl.Signal[bool]
	apbi       *rtl.Signal[amba.APBIn]
	apbo       *rtl.Signal[amba.APBOut]
}

// MakeBuilder returns a Builder of 64 KiB memories without wait states.
func MakeBuilder() Builder {
	return Builder{
		capacity: 64 * 1024,
	}
}

// WithNewStorage sets the capacity of a newly created storage.
func (b Builder) WithNewStorage(capacity uint64) Builder {
	b.capacity = capacity
	return b
}

// WithStorage makes the memory use an existing storage.
func (b Builder) WithStorage(storage *Storage) Builder {
	b.storage = storage
	return b
}

// WithWaitStates sets how many cycles PREADY stays low in the ACCESS phase.
func (b Builder) WithWaitStates(n int) Builder {
	b.waitStates = n
	return b
}

// WithErrorWindows sets the address ranges that respond with PSLVERR.
func (b Builder) WithErrorWindows(windows ...Window) Builder {
	b.windows = append([]Window(nil), windows...)
	return b
}

// WithNRst connects the active-low reset.
func (b Builder) WithNRst(nrst *rtl.Signal[bool]) Builder {
	b.nrst = nrst
	return b
}

// WithAPBI connects the APB signals driven by the bridge.
func (b Builder) WithAPBI(apbi *rtl.Signal[amba.APBIn]) Builder {
	b.apbi = apbi
	return b
}

// WithAPBO sets the signal the memory drives. By default the memory creates
// its own.
func (b Builder) WithAPBO(apbo *rtl.Signal[amba.APBOut]) Builder {
	b.apbo = apbo
	return b
}

// Build creates a memory.
func (b Builder) Build(name string) *Comp {
	c := &Comp{
		name:       name,
		regs:       rtl.NewRegisters(registers{}, rtl.SyncReset),
		waitStates: max(b.waitStates, 0),
		windows:    b.windows,
		Storage:    b.storage,
		NRst:       b.nrst,
		APBI:       b.apbi,
		APBO:       b.apbo,
	}

	if c.APBO == nil {
		c.APBO = rtl.NewSignal[amba.APBOut](name + ".APBO")
	}

	if c.Storage == nil {
		c.Storage = NewStorage(b.capacity)
	}

	if c.NRst == nil {
		c.NRst = rtl.NewSignalWithValue(name+".NRst", true)
	}

	if c.APBI == nil {
		c.APBI = rtl.NewSignal[amba.APBIn](name + ".APBI")
	}

	return c
}
