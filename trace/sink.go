// Package trace captures the signals of clocked components and writes them to
// waveform files and databases.
package trace

import "github.com/sarchlab/ambabridge/sim"

// A Sample is the value of one signal at one cycle.
type Sample struct {
	Cycle uint64
	Time  sim.VTimeInSec
	Name  string
	Width int
	Value uint64
}

// A Sink receives samples. Sinks are write-only; nothing in the simulation
// reads them back.
type Sink interface {
	Record(s Sample)
	Flush() error
}

// MemorySink keeps every sample in memory.
type MemorySink struct {
	Samples []Sample
}

// Record appends the sample.
func (s *MemorySink) Record(sample Sample) {
	s.Samples = append(s.Samples, sample)
}

// Flush does nothing.
func (s *MemorySink) Flush() error {
	return nil
}

// Values returns the last recorded value of every signal.
func (s *MemorySink) Values() map[string]uint64 {
	values := make(map[string]uint64)
	for _, sample := range s.Samples {
		values[sample.Name] = sample.Value
	}

	return values
}
