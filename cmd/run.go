package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/sarchlab/ambabridge/amba"
	"github.com/sarchlab/ambabridge/amba/aximaster"
	"github.com/sarchlab/ambabridge/config"
	"github.com/sarchlab/ambabridge/platform"
	"github.com/sarchlab/ambabridge/sim"
	"github.com/spf13/cobra"
)

type runOptions struct {
	configFile string
	envFile    string
	vcd        string
	sqlite     string
	monitor    bool
	saveConfig string
}

var runOpts runOptions

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a transaction script through the bridge.",
	Long: "`run --config bridge.yaml` plays the script of the configuration " +
		"and prints one line per transaction and per read beat. " +
		"AMBABRIDGE_* environment variables override the file.",
	Run: func(cmd *cobra.Command, _ []string) {
		err := runScript(cmd.OutOrStdout(), runOpts)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	f.StringVarP(&runOpts.configFile, "config", "c", "",
		"YAML file describing the simulation")
	f.StringVar(&runOpts.envFile, "env", "",
		"env file to load instead of .env")
	f.StringVar(&runOpts.vcd, "vcd", "", "write a value change dump")
	f.StringVar(&runOpts.sqlite, "sqlite", "", "write a SQLite trace")
	f.BoolVar(&runOpts.monitor, "monitor", false,
		"serve the web monitor while running")
	f.StringVar(&runOpts.saveConfig, "save-config", "",
		"write the effective configuration to a file")
}

func loadConfig(opts runOptions) (*config.Config, error) {
	var envFiles []string
	if opts.envFile != "" {
		envFiles = append(envFiles, opts.envFile)
	}

	if err := config.LoadDotEnv(envFiles...); err != nil {
		return nil, err
	}

	cfg := config.Default()
	if opts.configFile != "" {
		var err error
		if cfg, err = config.Load(opts.configFile); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if opts.vcd != "" {
		cfg.Trace.VCD = opts.vcd
	}

	if opts.sqlite != "" {
		cfg.Trace.SQLite = opts.sqlite
	}

	if opts.monitor {
		cfg.Monitor.Enabled = true
	}

	return cfg, cfg.Validate()
}

func runScript(out io.Writer, opts runOptions) (err error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	if opts.saveConfig != "" {
		if err := cfg.Save(opts.saveConfig); err != nil {
			return err
		}
	}

	p, err := platform.MakeBuilder().WithConfig(cfg).Build("Top")
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, p.Close())
	}()

	p.Engine.RegisterSimulationEndHandler(timeReporter{out: out})

	results, err := p.Run()
	for i, r := range results {
		printResult(out, i, r)
	}

	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%d transactions completed in %d cycles\n",
		len(results), p.Domain.Cycle())

	return nil
}

func printResult(out io.Writer, i int, r aximaster.Result) {
	t := r.Txn

	op := "read"
	if t.Write {
		op = "write"
	}

	fmt.Fprintf(out, "#%d %s addr=%#x size=%d len=%d id=%d cycles=%d-%d",
		i, op, t.Addr, amba.XSizeToBytes(t.Size), t.Len, t.ID,
		r.IssueCycle, r.DoneCycle)

	if t.Write {
		fmt.Fprintf(out, " bresp=%s\n", amba.RespName(r.BResp))
		return
	}

	fmt.Fprintln(out)

	for j, b := range r.Beats {
		last := ""
		if b.Last {
			last = " last"
		}

		fmt.Fprintf(out, "  beat %d data=0x%016x resp=%s%s\n",
			j, b.Data, amba.RespName(b.Resp), last)
	}
}

// timeReporter prints the simulated time when the simulation ends.
type timeReporter struct {
	out io.Writer
}

func (r timeReporter) Handle(now sim.VTimeInSec) {
	fmt.Fprintf(r.out, "simulated time: %.3f us\n", float64(now)*1e6)
}
