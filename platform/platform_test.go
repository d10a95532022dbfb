package platform_test

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/ambabridge/amba"
	"github.com/sarchlab/ambabridge/amba/aximaster"
	"github.com/sarchlab/ambabridge/config"
	"github.com/sarchlab/ambabridge/platform"
	"github.com/sarchlab/ambabridge/rtl"
	"github.com/sarchlab/ambabridge/trace"
)

func roundTrip() []config.TxnConfig {
	return []config.TxnConfig{
		{Op: "write", Addr: 0x1000, Size: 4, Data: []uint64{0xAABBCCDD}},
		{Op: "write", Addr: 0x1008, Size: 8,
			Data: []uint64{0x88776655_44332211}},
		{Op: "read", Addr: 0x1000, Size: 4},
		{Op: "read", Addr: 0x1008, Size: 8},
	}
}

var _ = Describe("Platform", func() {
	var cfg *config.Config

	BeforeEach(func() {
		cfg = config.Default()
		cfg.Script = roundTrip()
	})

	build := func(b platform.Builder) *platform.Platform {
		p, err := b.WithConfig(cfg).Build("Top")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(p.Close)

		return p
	}

	run := func(p *platform.Platform) []aximaster.Result {
		res, err := p.Run()
		Expect(err).NotTo(HaveOccurred())

		return res
	}

	It("should reject an invalid configuration", func() {
		cfg.FreqMHz = -1

		_, err := platform.MakeBuilder().WithConfig(cfg).Build("Top")

		Expect(err).To(MatchError(config.ErrInvalid))
	})

	It("should convert the script", func() {
		script := platform.Script(cfg.Script)

		Expect(script).To(HaveLen(4))
		Expect(script[0].Write).To(BeTrue())
		Expect(script[0].Size).To(Equal(uint8(2)))
		Expect(script[0].Burst).To(Equal(amba.BurstIncr))
		Expect(script[3].Write).To(BeFalse())
		Expect(script[3].Size).To(Equal(uint8(3)))
	})

	DescribeTable("should read back what it writes",
		func(mode rtl.ResetMode, waitStates, readyEvery int, combined bool) {
			cfg.ResetMode = mode.String()
			cfg.Memory.WaitStates = waitStates
			cfg.Master.ReadyEvery = readyEvery
			cfg.Master.CombinedIssue = combined
			p := build(platform.MakeBuilder())

			res := run(p)

			Expect(res).To(HaveLen(4))
			Expect(res[0].BResp).To(Equal(amba.RespOkay))
			Expect(res[1].BResp).To(Equal(amba.RespOkay))
			Expect(res[2].Beats).To(HaveLen(1))
			Expect(res[2].Beats[0].Data & 0xFFFF_FFFF).
				To(Equal(uint64(0xAABBCCDD)))
			Expect(res[3].Beats[0].Data).
				To(Equal(uint64(0x88776655_44332211)))
			Expect(res[3].Beats[0].Last).To(BeTrue())

			w, err := p.Memory.Storage.ReadWord(0x100C)
			Expect(err).NotTo(HaveOccurred())
			Expect(w).To(Equal(uint32(0x88776655)))
		},
		Entry("sync reset", rtl.SyncReset, 0, 1, true),
		Entry("async reset", rtl.AsyncReset, 0, 1, true),
		Entry("wait states", rtl.SyncReset, 2, 1, true),
		Entry("back pressure", rtl.SyncReset, 1, 3, false),
	)

	It("should hold the reset before issuing", func() {
		cfg.ResetCycles = 10
		p := build(platform.MakeBuilder())

		res := run(p)

		Expect(res[0].IssueCycle).To(BeNumerically(">=", 10))
		Expect(p.NRst.Read()).To(BeTrue())
	})

	It("should replay the script from reset", func() {
		p := build(platform.MakeBuilder())

		first := run(p)
		log := p.Memory.Log()
		second := run(p)

		Expect(second).To(Equal(first))
		Expect(p.Memory.Log()).To(HaveLen(len(log)))
		Expect(p.Bridge.Bridge.State().String()).To(Equal("Idle"))
	})

	It("should stop at the cycle limit", func() {
		cfg.MaxCycles = 5
		p := build(platform.MakeBuilder())

		res, err := p.Run()

		Expect(err).To(MatchError(platform.ErrIncomplete))
		Expect(len(res)).To(BeNumerically("<", 4))
		Expect(p.Domain.Cycle()).To(Equal(uint64(cfg.ResetCycles) + 5))
	})

	It("should report peripheral errors", func() {
		cfg.Memory.ErrorWindows = []config.WindowConfig{
			{Start: 0x1000, End: 0x1004},
		}
		p := build(platform.MakeBuilder())

		res := run(p)

		Expect(res[0].Failed()).To(BeTrue())
		Expect(res[1].Failed()).To(BeFalse())
		Expect(res[2].Beats[0].Resp).To(Equal(amba.RespSlvErr))
	})

	It("should trace the signals", func() {
		sink := &trace.MemorySink{}
		p := build(platform.MakeBuilder().WithSink(sink))

		run(p)

		values := sink.Values()
		Expect(values).To(HaveKeyWithValue("Top.NRst", uint64(1)))
		Expect(values).To(HaveKey("Top.APBO.PReady"))
		Expect(sink.Samples[0].Cycle).To(BeZero())
	})

	It("should write a value change dump", func() {
		path := filepath.Join(GinkgoT().TempDir(), "top.vcd")
		cfg.Trace.VCD = path
		p := build(platform.MakeBuilder())

		run(p)
		Expect(p.Close()).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring("$scope module Top $end"))
		Expect(string(data)).To(ContainSubstring("$enddefinitions $end"))
		Expect(string(data)).To(ContainSubstring("\n#0\n"))
	})

	It("should serve the monitor", func() {
		cfg.Monitor.Enabled = true
		p := build(platform.MakeBuilder())

		run(p)

		Expect(p.URL()).To(HavePrefix("http://localhost:"))
		resp, err := http.Get(p.URL() + "/api/list_components")
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(ContainSubstring("Top.Bridge"))
	})
})
