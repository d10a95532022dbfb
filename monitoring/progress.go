package monitoring

import (
	"encoding/json"
	"sync"
	"time"
)

// A ProgressBar tracks how many transactions of a script have completed.
type ProgressBar struct {
	lock sync.Mutex

	ID         string
	Name       string
	StartTime  time.Time
	Total      uint64
	Finished   uint64
	InProgress uint64
}

// Update sets the number of finished and in-flight transactions.
func (b *ProgressBar) Update(finished, inProgress uint64) {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.Finished = finished
	b.InProgress = inProgress
}

// Fraction returns the finished share of the total, or 1 for an empty bar.
func (b *ProgressBar) Fraction() float64 {
	b.lock.Lock()
	defer b.lock.Unlock()

	if b.Total == 0 {
		return 1
	}

	return float64(b.Finished) / float64(b.Total)
}

// MarshalJSON encodes a consistent snapshot of the bar.
func (b *ProgressBar) MarshalJSON() ([]byte, error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	return json.Marshal(struct {
		ID         string    `json:"id"`
		Name       string    `json:"name"`
		StartTime  time.Time `json:"start_time"`
		Total      uint64    `json:"total"`
		Finished   uint64    `json:"finished"`
		InProgress uint64    `json:"in_progress"`
	}{b.ID, b.Name, b.StartTime, b.Total, b.Finished, b.InProgress})
}
