package highlight

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period required before a continuous input is
// submitted.
const DefaultDebounce = 30 * time.Millisecond

// Debouncer holds back rapid job submissions until input pauses for the
// configured delay, then submits only the last job. Now bypasses the delay
// and discards any held job.
type Debouncer struct {
	delay  time.Duration
	submit func(Job)

	mu      sync.Mutex
	timer   *time.Timer
	pending *Job
	seq     uint64
}

// NewDebouncer returns a debouncer feeding submit. A non-positive delay
// selects DefaultDebounce.
func NewDebouncer(delay time.Duration, submit func(Job)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, submit: submit}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// Push holds job, replacing any job still waiting, and restarts the quiet
// period.
func (d *Debouncer) Push(job Job) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = &job
	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fire(seq) })
}

// Now cancels any held job and submits job immediately.
func (d *Debouncer) Now(job Job) {
	d.Cancel()
	d.submit(job)
}

// Cancel drops a held job without submitting it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire(seq uint64) {
	d.mu.Lock()
	if seq != d.seq || d.pending == nil {
		d.mu.Unlock()
		return
	}
	job := *d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()
	d.submit(job)
}
