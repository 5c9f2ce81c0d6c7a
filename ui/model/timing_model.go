package model

import (
	"time"
)

// TimingModel tracks highlight compute durations for the status line.
// The zero value is ready to use.
type TimingModel struct {
	count       int
	last        time.Duration
	accumulated time.Duration
	stale       int
}

// NewTimingModel returns a pointer to a ready-to-use TimingModel.
func NewTimingModel() *TimingModel { return &TimingModel{} }

// OnApplied records a result that reached the display.
func (m *TimingModel) OnApplied(d time.Duration) {
	if m == nil {
		return
	}
	m.count++
	m.last = d
	m.accumulated += d
}

// OnStale records a result discarded because its key no longer matched.
func (m *TimingModel) OnStale() {
	if m == nil {
		return
	}
	m.stale++
}

// Reset clears the counters, e.g. when a new image is loaded.
func (m *TimingModel) Reset() {
	if m == nil {
		return
	}
	*m = TimingModel{}
}

// Values returns the last and mean applied durations plus the counts.
func (m *TimingModel) Values() (last, mean time.Duration, applied, stale int) {
	if m == nil {
		return 0, 0, 0, 0
	}
	if m.count > 0 {
		mean = m.accumulated / time.Duration(m.count)
	}
	return m.last, mean, m.count, m.stale
}
