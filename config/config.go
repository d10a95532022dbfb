// Package config loads the description of a bridge simulation from YAML files
// and environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"os"
	"strings"

	"github.com/sarchlab/ambabridge/rtl"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Config describes a simulation of the bridge with one AXI master and one
// APB memory.
type Config struct {
	// ResetMode is "sync" or "async".
	ResetMode string `yaml:"reset_mode"`

	// FreqMHz is the frequency of the bus clock.
	FreqMHz float64 `yaml:"freq_mhz"`

	// ResetCycles is the number of cycles the reset is held low before the
	// script starts.
	ResetCycles int `yaml:"reset_cycles"`

	// MaxCycles stops a script that never completes.
	MaxCycles uint64 `yaml:"max_cycles"`

	Memory  MemoryConfig  `yaml:"memory"`
	Master  MasterConfig  `yaml:"master"`
	Trace   TraceConfig   `yaml:"trace"`
	Monitor MonitorConfig `yaml:"monitor"`
	Script  []TxnConfig   `yaml:"script,omitempty"`
}

// MemoryConfig describes the APB memory.
type MemoryConfig struct {
	Capacity     uint64         `yaml:"capacity"`
	WaitStates   int            `yaml:"wait_states"`
	ErrorWindows []WindowConfig `yaml:"error_windows,omitempty"`
}

// WindowConfig is an address range [Start, End) that responds with an error.
type WindowConfig struct {
	Start uint64 `yaml:"start"`
	End   uint64 `yaml:"end"`
}

// MasterConfig describes how the AXI master issues transactions.
type MasterConfig struct {
	// CombinedIssue sends the first W beat together with AW.
	CombinedIssue bool `yaml:"combined_issue"`

	// ReadyEvery raises BREADY and RREADY once every ReadyEvery cycles.
	ReadyEvery int `yaml:"ready_every"`
}

// TraceConfig selects the trace outputs. Empty paths disable an output.
type TraceConfig struct {
	VCD    string `yaml:"vcd"`
	SQLite string `yaml:"sqlite"`
}

// MonitorConfig configures the web monitor.
type MonitorConfig struct {
	Enabled     bool `yaml:"enabled"`
	Port        int  `yaml:"port"`
	OpenBrowser bool `yaml:"open_browser"`
}

// TxnConfig is one transaction of the script.
type TxnConfig struct {
	// Op is "read" or "write".
	Op   string `yaml:"op"`
	Addr uint64 `yaml:"addr"`

	// Size is the number of bytes per beat: 1, 2, 4 or 8.
	Size uint64 `yaml:"size"`

	// Len is the number of beats minus one.
	Len  uint8 `yaml:"len"`
	ID   uint8 `yaml:"id"`
	User uint8 `yaml:"user"`

	Data []uint64 `yaml:"data,omitempty"`
	Strb []uint8  `yaml:"strb,omitempty"`
}

// IsWrite tells if the transaction is a write.
func (t TxnConfig) IsWrite() bool {
	return strings.EqualFold(t.Op, "write")
}

// SizeLog2 returns the AXI size field of the transaction.
func (t TxnConfig) SizeLog2() uint8 {
	return uint8(bits.TrailingZeros64(t.Size))
}

// Default returns the configuration of a 100 MHz bridge in front of a 64 KiB
// memory without wait states and with an empty script.
func Default() *Config {
	return &Config{
		ResetMode:   rtl.SyncReset.String(),
		FreqMHz:     100,
		ResetCycles: 2,
		MaxCycles:   100000,
		Memory: MemoryConfig{
			Capacity: 64 * 1024,
		},
		Master: MasterConfig{
			CombinedIssue: true,
			ReadyEvery:    1,
		},
	}
}

// Load reads a YAML file on top of the default configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Parse decodes YAML on top of the default configuration. Unknown keys are
// rejected.
func Parse(data []byte) (*Config, error) {
	c := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return c, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Mode returns the parsed reset mode.
func (c *Config) Mode() rtl.ResetMode {
	mode, err := rtl.ParseResetMode(c.ResetMode)
	if err != nil {
		return rtl.SyncReset
	}

	return mode
}

// Validate reports every problem of the configuration. Each error wraps
// ErrInvalid.
func (c *Config) Validate() error {
	var errs []error

	fail := func(format string, args ...any) {
		errs = append(errs,
			fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
	}

	if _, err := rtl.ParseResetMode(c.ResetMode); err != nil {
		fail("reset_mode: %v", err)
	}

	if c.FreqMHz <= 0 {
		fail("freq_mhz must be > 0")
	}

	if c.ResetCycles < 0 {
		fail("reset_cycles must be >= 0")
	}

	if c.MaxCycles == 0 {
		fail("max_cycles must be > 0")
	}

	if c.Memory.Capacity == 0 {
		fail("memory.capacity must be > 0")
	}

	if c.Memory.WaitStates < 0 {
		fail("memory.wait_states must be >= 0")
	}

	for i, w := range c.Memory.ErrorWindows {
		if w.Start >= w.End {
			fail("memory.error_windows[%d]: start must be < end", i)
		}
	}

	if c.Master.ReadyEvery < 1 {
		fail("master.ready_every must be >= 1")
	}

	if c.Monitor.Port < 0 || c.Monitor.Port > 65535 {
		fail("monitor.port %d is out of range", c.Monitor.Port)
	}

	for i, t := range c.Script {
		c.validateTxn(i, t, fail)
	}

	return errors.Join(errs...)
}

func (c *Config) validateTxn(
	i int,
	t TxnConfig,
	fail func(format string, args ...any),
) {
	op := strings.ToLower(t.Op)
	if op != "read" && op != "write" {
		fail("script[%d]: op %q must be read or write", i, t.Op)
	}

	if t.Size == 0 || t.Size > 8 || t.Size&(t.Size-1) != 0 {
		fail("script[%d]: size %d must be 1, 2, 4 or 8", i, t.Size)
	}

	beats := int(t.Len) + 1
	if len(t.Data) > beats {
		fail("script[%d]: %d data words for %d beats", i, len(t.Data), beats)
	}

	if len(t.Strb) > beats {
		fail("script[%d]: %d strobes for %d beats", i, len(t.Strb), beats)
	}

	if !t.IsWrite() && (len(t.Data) > 0 || len(t.Strb) > 0) {
		fail("script[%d]: reads carry no data", i)
	}
}
