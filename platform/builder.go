package platform

import (
	"fmt"
	"os"

	"github.com/sarchlab/ambabridge/amba"
	"github.com/sarchlab/ambabridge/amba/aximaster"
	"github.com/sarchlab/ambabridge/amba/axi2apb"
	"github.com/sarchlab/ambabridge/apbmem"
	"github.com/sarchlab/ambabridge/config"
	"github.com/sarchlab/ambabridge/monitoring"
	"github.com/sarchlab/ambabridge/rtl"
	"github.com/sarchlab/ambabridge/sim"
	"github.com/sarchlab/ambabridge/trace"
)

// Builder can build platforms.
type Builder struct {
	cfg   *config.Config
	sinks []trace.Sink
}

// MakeBuilder returns a Builder that uses the default configuration.
func MakeBuilder() Builder {
	return Builder{
		cfg: config.Default(),
	}
}

// WithConfig sets the configuration of the platform.
func (b Builder) WithConfig(cfg *config.Config) Builder {
	b.cfg = cfg
	return b
}

// WithSink adds a trace sink in addition to the ones the configuration
// enables.
func (b Builder) WithSink(s trace.Sink) Builder {
	b.sinks = append(append([]trace.Sink(nil), b.sinks...), s)
	return b
}

// Build creates a platform. The configuration must be valid.
func (b Builder) Build(name string) (*Platform, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	cfg := b.cfg
	p := &Platform{
		name:      name,
		maxCycles: cfg.MaxCycles,
		scriptLen: len(cfg.Script),
		Engine:    sim.NewSerialEngine(),
		NRst:      rtl.NewSignalWithValue(name+".NRst", true),
	}

	p.Domain = sim.NewClockDomain(name, p.Engine,
		sim.Freq(cfg.FreqMHz)*sim.MHz)
	p.reset = &resetSequencer{
		name:   name + ".Reset",
		nrst:   p.NRst,
		cycles: cfg.ResetCycles,
	}

	b.buildComponents(p)

	p.Domain.Register(p.reset)
	p.Domain.Register(p.Master)
	p.Domain.Register(p.Bridge)
	p.Domain.Register(p.Memory)

	if err := b.buildTracer(p); err != nil {
		_ = p.Close()
		return nil, err
	}

	if err := b.buildMonitor(p); err != nil {
		_ = p.Close()
		return nil, err
	}

	return p, nil
}

func (b Builder) buildComponents(p *Platform) {
	cfg := b.cfg
	xslvi := rtl.NewSignal[amba.AXI4SlaveIn](p.name + ".XSlvI")
	apbo := rtl.NewSignal[amba.APBOut](p.name + ".APBO")

	p.Bridge = axi2apb.MakeBuilder().
		WithResetMode(cfg.Mode()).
		WithNRst(p.NRst).
		WithXSlvI(xslvi).
		WithAPBO(apbo).
		Build(p.name + ".Bridge")

	p.Master = aximaster.MakeBuilder().
		WithNRst(p.NRst).
		WithXSlvI(xslvi).
		WithXSlvO(p.Bridge.XSlvO).
		WithScript(Script(cfg.Script)).
		WithReadyPattern(readyEvery(cfg.Master.ReadyEvery)).
		WithCombinedIssue(cfg.Master.CombinedIssue).
		Build(p.name + ".Master")

	windows := make([]apbmem.Window, 0, len(cfg.Memory.ErrorWindows))
	for _, w := range cfg.Memory.ErrorWindows {
		windows = append(windows, apbmem.Window{Start: w.Start, End: w.End})
	}

	p.Memory = apbmem.MakeBuilder().
		WithNewStorage(cfg.Memory.Capacity).
		WithWaitStates(cfg.Memory.WaitStates).
		WithErrorWindows(windows...).
		WithNRst(p.NRst).
		WithAPBI(p.Bridge.APBI).
		WithAPBO(apbo).
		Build(p.name + ".Memory")
}

func (b Builder) buildTracer(p *Platform) error {
	sinks := append([]trace.Sink(nil), b.sinks...)

	if path := b.cfg.Trace.VCD; path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create vcd file: %w", err)
		}

		p.vcd = trace.NewVCDWriter(f)
		sinks = append(sinks, p.vcd)
	}

	if path := b.cfg.Trace.SQLite; path != "" {
		p.db = trace.NewSQLiteWriter(path)
		if err := p.db.Init(); err != nil {
			return err
		}

		sinks = append(sinks, p.db)
	}

	if len(sinks) == 0 {
		return nil
	}

	p.Tracer = trace.NewSignalTracer(sinks...)
	p.Tracer.Trace(p.Domain)

	return nil
}

func (b Builder) buildMonitor(p *Platform) error {
	mon := b.cfg.Monitor
	if !mon.Enabled {
		return nil
	}

	p.Monitor = monitoring.NewMonitor().WithPortNumber(mon.Port)
	p.Monitor.RegisterEngine(p.Engine)
	p.Monitor.RegisterDomain(p.Domain)

	url, err := p.Monitor.StartServer()
	if err != nil {
		return err
	}

	p.url = url

	if mon.OpenBrowser {
		if err := p.Monitor.OpenInBrowser(url); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
	}

	return nil
}

// Script converts configured transactions into master transactions.
func Script(txns []config.TxnConfig) []aximaster.Txn {
	script := make([]aximaster.Txn, 0, len(txns))
	for _, t := range txns {
		script = append(script, aximaster.Txn{
			Write: t.IsWrite(),
			Addr:  t.Addr,
			Size:  t.SizeLog2(),
			Len:   t.Len,
			Burst: amba.BurstIncr,
			ID:    t.ID,
			User:  t.User,
			Data:  t.Data,
			Strb:  t.Strb,
		})
	}

	return script
}

func readyEvery(n int) func(cycle uint64) bool {
	if n <= 1 {
		return nil
	}

	return func(cycle uint64) bool {
		return cycle%uint64(n) == 0
	}
}
