package rtl

import (
	"fmt"
	"strings"
)

// ResetMode selects how an active-low reset affects a register file.
type ResetMode int

const (
	// SyncReset folds the reset vector into the next state. The registers
	// take the reset value on the following clock edge.
	SyncReset ResetMode = iota

	// AsyncReset overwrites the committed registers as soon as the reset is
	// asserted, without waiting for a clock edge.
	AsyncReset
)

// String returns the name of the reset mode.
func (m ResetMode) String() string {
	switch m {
	case SyncReset:
		return "sync"
	case AsyncReset:
		return "async"
	default:
		return fmt.Sprintf("ResetMode(%d)", int(m))
	}
}

// ParseResetMode converts "sync" or "async" into a ResetMode.
func ParseResetMode(s string) (ResetMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sync", "synchronous", "":
		return SyncReset, nil
	case "async", "asynchronous":
		return AsyncReset, nil
	default:
		return SyncReset, fmt.Errorf("unknown reset mode %q", s)
	}
}

// WatchAsyncReset makes the registers reset immediately when nrst falls. It
// does nothing for a synchronous register file.
func WatchAsyncReset[T any](nrst *Signal[bool], regs *Registers[T]) {
	if regs.Mode() != AsyncReset {
		return
	}

	nrst.Watch(func(_, asserted bool) {
		if !asserted {
			regs.ResetNow()
		}
	})
}
