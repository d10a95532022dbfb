package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/ambabridge/config"
	"github.com/sarchlab/ambabridge/rtl"
)

const sample = `
reset_mode: async
freq_mhz: 200
memory:
  capacity: 8192
  wait_states: 1
  error_windows:
    - {start: 0x1000, end: 0x1100}
script:
  - {op: write, addr: 0x10, size: 4, data: [0xCAFE]}
  - {op: read, addr: 0x10, size: 8, len: 1}
`

var _ = Describe("Config", func() {
	It("should have a valid default", func() {
		c := config.Default()

		Expect(c.Validate()).To(Succeed())
		Expect(c.Mode()).To(Equal(rtl.SyncReset))
		Expect(c.Master.CombinedIssue).To(BeTrue())
	})

	It("should parse YAML on top of the default", func() {
		c, err := config.Parse([]byte(sample))

		Expect(err).ToNot(HaveOccurred())
		Expect(c.Validate()).To(Succeed())
		Expect(c.Mode()).To(Equal(rtl.AsyncReset))
		Expect(c.FreqMHz).To(Equal(200.0))
		Expect(c.ResetCycles).To(Equal(2))
		Expect(c.Memory.ErrorWindows).To(Equal([]config.WindowConfig{
			{Start: 0x1000, End: 0x1100},
		}))
		Expect(c.Script).To(HaveLen(2))
		Expect(c.Script[0].IsWrite()).To(BeTrue())
		Expect(c.Script[1].IsWrite()).To(BeFalse())
		Expect(c.Script[1].SizeLog2()).To(Equal(uint8(3)))
	})

	It("should accept an empty document", func() {
		c, err := config.Parse(nil)

		Expect(err).ToNot(HaveOccurred())
		Expect(c).To(Equal(config.Default()))
	})

	It("should reject unknown keys", func() {
		_, err := config.Parse([]byte("frequency: 3\n"))

		Expect(err).To(HaveOccurred())
	})

	It("should report every problem", func() {
		c := config.Default()
		c.ResetMode = "sometimes"
		c.FreqMHz = 0
		c.Master.ReadyEvery = 0
		c.Script = []config.TxnConfig{
			{Op: "fetch", Size: 4},
			{Op: "write", Size: 3},
			{Op: "read", Size: 4, Data: []uint64{1}},
			{Op: "write", Size: 4, Len: 0, Data: []uint64{1, 2}},
		}

		err := c.Validate()

		Expect(err).To(MatchError(config.ErrInvalid))
		msg := err.Error()
		Expect(msg).To(ContainSubstring("reset_mode"))
		Expect(msg).To(ContainSubstring("freq_mhz"))
		Expect(msg).To(ContainSubstring("ready_every"))
		Expect(msg).To(ContainSubstring("script[0]"))
		Expect(msg).To(ContainSubstring("script[1]"))
		Expect(msg).To(ContainSubstring("script[2]: reads carry no data"))
		Expect(msg).To(ContainSubstring("script[3]: 2 data words for 1 beats"))
	})

	It("should reject empty error windows", func() {
		c := config.Default()
		c.Memory.ErrorWindows = []config.WindowConfig{{Start: 8, End: 8}}

		Expect(c.Validate()).To(MatchError(config.ErrInvalid))
	})

	It("should save and load", func() {
		path := filepath.Join(GinkgoT().TempDir(), "bridge.yaml")
		c, err := config.Parse([]byte(sample))
		Expect(err).ToNot(HaveOccurred())

		Expect(c.Save(path)).To(Succeed())
		loaded, err := config.Load(path)

		Expect(err).ToNot(HaveOccurred())
		Expect(loaded).To(Equal(c))
	})

	It("should fail to load a missing file", func() {
		_, err := config.Load(filepath.Join(GinkgoT().TempDir(), "none.yaml"))

		Expect(err).To(HaveOccurred())
	})

	Context("environment", func() {
		lookupOf := func(env map[string]string) func(string) (string, bool) {
			return func(key string) (string, bool) {
				v, ok := env[key]
				return v, ok
			}
		}

		It("should override fields", func() {
			c := config.Default()

			err := c.ApplyLookup(lookupOf(map[string]string{
				"AMBABRIDGE_RESET_MODE":   "async",
				"AMBABRIDGE_VCD":          "out.vcd",
				"AMBABRIDGE_FREQ_MHZ":     "50",
				"AMBABRIDGE_MAX_CYCLES":   "0x100",
				"AMBABRIDGE_WAIT_STATES":  "3",
				"AMBABRIDGE_MONITOR":      "true",
				"AMBABRIDGE_MONITOR_PORT": "8080",
			}))

			Expect(err).ToNot(HaveOccurred())
			Expect(c.Mode()).To(Equal(rtl.AsyncReset))
			Expect(c.Trace.VCD).To(Equal("out.vcd"))
			Expect(c.FreqMHz).To(Equal(50.0))
			Expect(c.MaxCycles).To(Equal(uint64(256)))
			Expect(c.Memory.WaitStates).To(Equal(3))
			Expect(c.Monitor.Enabled).To(BeTrue())
			Expect(c.Monitor.Port).To(Equal(8080))
		})

		It("should keep fields on parse errors", func() {
			c := config.Default()

			err := c.ApplyLookup(lookupOf(map[string]string{
				"AMBABRIDGE_RESET_CYCLES": "many",
			}))

			Expect(err).To(MatchError(config.ErrInvalid))
			Expect(err.Error()).To(ContainSubstring("AMBABRIDGE_RESET_CYCLES"))
			Expect(c.ResetCycles).To(Equal(2))
		})

		It("should load dot env files", func() {
			path := filepath.Join(GinkgoT().TempDir(), "test.env")
			Expect(os.WriteFile(path,
				[]byte("AMBABRIDGE_SQLITE=trace.sqlite3\n"), 0o644)).
				To(Succeed())
			DeferCleanup(os.Unsetenv, "AMBABRIDGE_SQLITE")

			Expect(config.LoadDotEnv(path)).To(Succeed())

			c := config.Default()
			Expect(c.ApplyEnv()).To(Succeed())
			Expect(c.Trace.SQLite).To(Equal("trace.sqlite3"))
		})

		It("should fail on a missing explicit env file", func() {
			err := config.LoadDotEnv(
				filepath.Join(GinkgoT().TempDir(), "none.env"))

			Expect(err).To(HaveOccurred())
		})
	})
})
