package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix is the prefix of every environment variable that overrides the
// configuration.
const EnvPrefix = "AMBABRIDGE_"

// LoadDotEnv loads environment variables from the given files. Variables that
// are already set are kept. Without arguments it loads .env in the working
// directory if the file exists.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
	}

	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}

	return nil
}

// ApplyEnv overrides the configuration with AMBABRIDGE_* environment
// variables.
func (c *Config) ApplyEnv() error {
	return c.ApplyLookup(os.LookupEnv)
}

// ApplyLookup overrides the configuration with the variables returned by
// lookup.
func (c *Config) ApplyLookup(lookup func(key string) (string, bool)) error {
	var errs []error

	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}

	num := func(key string, parse func(s string) error) {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			return
		}

		if err := parse(v); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s%s=%q: %v",
				ErrInvalid, EnvPrefix, key, v, err))
		}
	}

	str("RESET_MODE", &c.ResetMode)
	str("VCD", &c.Trace.VCD)
	str("SQLITE", &c.Trace.SQLite)

	num("FREQ_MHZ", into(&c.FreqMHz, parseFloat))
	num("RESET_CYCLES", into(&c.ResetCycles, strconv.Atoi))
	num("MAX_CYCLES", into(&c.MaxCycles, parseUint))
	num("WAIT_STATES", into(&c.Memory.WaitStates, strconv.Atoi))
	num("MEMORY_CAPACITY", into(&c.Memory.Capacity, parseUint))
	num("MONITOR_PORT", into(&c.Monitor.Port, strconv.Atoi))
	num("MONITOR", into(&c.Monitor.Enabled, strconv.ParseBool))
	num("OPEN_BROWSER", into(&c.Monitor.OpenBrowser, strconv.ParseBool))

	return errors.Join(errs...)
}

// into returns a parser that stores the parsed value in dst only when parsing
// succeeds.
func into[T any](dst *T, parse func(s string) (T, error)) func(string) error {
	return func(s string) error {
		v, err := parse(s)
		if err == nil {
			*dst = v
		}

		return err
	}
}

func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(s, 0, 64)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
