// Package rtl provides register-transfer level building blocks: named wires,
// double-buffered register files, reset disciplines and signal probes.
package rtl

// A Signal is a named wire that carries a value between components.
//
// A Signal has exactly one driver. Watchers are notified synchronously when a
// write changes the value.
type Signal[T comparable] struct {
	name     string
	value    T
	watchers []func(prev, next T)
}

// NewSignal creates a signal with the zero value.
func NewSignal[T comparable](name string) *Signal[T] {
	return &Signal[T]{name: name}
}

// NewSignalWithValue creates a signal holding an initial value.
func NewSignalWithValue[T comparable](name string, v T) *Signal[T] {
	return &Signal[T]{name: name, value: v}
}

// Name returns the name of the signal.
func (s *Signal[T]) Name() string {
	return s.name
}

// Read returns the current value of the signal.
func (s *Signal[T]) Read() T {
	return s.value
}

// Write updates the value of the signal.
func (s *Signal[T]) Write(v T) {
	old := s.value
	s.value = v

	if old == v {
		return
	}

	for _, w := range s.watchers {
		w(old, v)
	}
}

// Watch registers a function that is called whenever the value changes.
func (s *Signal[T]) Watch(fn func(prev, next T)) {
	s.watchers = append(s.watchers, fn)
}
