package highlight

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrShutdownTimeout is returned by Close when the worker does not stop in
// time. The goroutine is abandoned; it exits after its current job.
var ErrShutdownTimeout = errors.New("highlight: worker did not stop before timeout")

// ComputeFunc runs one job. The default is ComputeJob.
type ComputeFunc func(Job) Result

// SchedulerOptions configures NewScheduler. Zero values select defaults.
type SchedulerOptions struct {
	Workers   int         // engine goroutines per job, 0 = runtime.NumCPU()
	CacheSize int         // delivered results remembered, minimum 1
	Compute   ComputeFunc // replaces the engine, used by tests
}

// Stats summarises scheduler behaviour for instrumentation.
type Stats struct {
	Submitted    uint64
	Coalesced    uint64 // pending jobs overwritten before they started
	Computed     uint64
	CacheHits    uint64
	Panics       uint64
	Dropped      uint64 // results superseded before or after delivery
	LastDuration time.Duration
}

// Scheduler runs highlight jobs on one background worker. At most one job
// waits at a time: a new submission replaces any job that has not started.
// A job already running is never cancelled, but its result is only
// delivered if no newer submission happened meanwhile.
type Scheduler struct {
	logger  *slog.Logger
	compute ComputeFunc

	mu       sync.Mutex // serializes slot replacement, cache updates and delivery
	seq      uint64     // sequence number of the latest submission, guarded by mu
	workCh   chan queuedJob
	resultCh chan Result
	stop     chan struct{}
	done     chan struct{}
	closed   atomic.Bool

	workerOnce sync.Once
	closeOnce  sync.Once

	cache      *lru.Cache[Key, Result]
	generation atomic.Uint64

	submitted atomic.Uint64
	coalesced atomic.Uint64
	computed  atomic.Uint64
	cacheHits atomic.Uint64
	panics    atomic.Uint64
	dropped   atomic.Uint64
	lastNanos atomic.Int64
}

type queuedJob struct {
	job Job
	seq uint64
}

// NewScheduler constructs a scheduler. The worker starts on first Submit.
func NewScheduler(logger *slog.Logger, opts SchedulerOptions) *Scheduler {
	if opts.CacheSize < 1 {
		opts.CacheSize = 1
	}
	cache, err := lru.New[Key, Result](opts.CacheSize)
	if err != nil {
		// Only reachable with a non-positive size, excluded above.
		panic(fmt.Sprintf("highlight: result cache: %v", err))
	}
	compute := opts.Compute
	if compute == nil {
		workers := opts.Workers
		compute = func(j Job) Result { return ComputeJob(j, workers) }
	}
	return &Scheduler{
		logger:   logger,
		compute:  compute,
		workCh:   make(chan queuedJob, 1),
		resultCh: make(chan Result, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		cache:    cache,
	}
}

// Results delivers computed (and cached) results. The UI drains it without
// blocking on every tick.
func (s *Scheduler) Results() <-chan Result { return s.resultCh }

// Generation identifies the current source buffer.
func (s *Scheduler) Generation() uint64 { return s.generation.Load() }

// Invalidate forgets every cached result and starts a new generation. Call
// it whenever the source buffer changes.
func (s *Scheduler) Invalidate() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Purge()
	s.drainPendingLocked()
	return s.generation.Add(1)
}

// Lookup returns the cached result for key, if any. A hit supersedes every
// earlier submission: their results are no longer delivered.
func (s *Scheduler) Lookup(key Key) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.cache.Get(key)
	if ok {
		s.cacheHits.Add(1)
		s.seq++
		s.drainPendingLocked()
	}
	return res, ok
}

// Submit schedules job. If a result for an identical key was already
// delivered it is re-delivered from the cache without running the engine
// and Submit reports true. Submissions after Close are ignored.
func (s *Scheduler) Submit(job Job) bool {
	if s.closed.Load() {
		return false
	}
	s.ensureWorker()
	s.submitted.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	if res, ok := s.cache.Get(job.Key); ok {
		s.cacheHits.Add(1)
		s.drainPendingLocked()
		s.deliverLocked(res)
		return true
	}
	s.drainPendingLocked()
	select {
	case s.workCh <- queuedJob{job: job, seq: s.seq}:
	default:
		// Unreachable while mu is held: the slot was just drained and
		// the worker only receives.
	}
	return false
}

func (s *Scheduler) drainPendingLocked() {
	select {
	case <-s.workCh:
		s.coalesced.Add(1)
	default:
	}
}

func (s *Scheduler) ensureWorker() {
	s.workerOnce.Do(func() {
		go s.runWorker()
	})
}

func (s *Scheduler) runWorker() {
	defer close(s.done)
	for {
		select {
		case <-s.stop:
			return
		case q := <-s.workCh:
			res, ok := s.execute(q.job)
			if !ok {
				continue
			}
			s.mu.Lock()
			if q.job.Key.Generation == s.generation.Load() {
				s.cache.Add(q.job.Key, res)
			}
			if q.seq == s.seq {
				s.deliverLocked(res)
			} else {
				s.dropped.Add(1)
			}
			s.mu.Unlock()
		}
	}
}

// execute runs one job, converting a panic into a logged failure so the
// worker keeps serving later jobs.
func (s *Scheduler) execute(job Job) (res Result, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.panics.Add(1)
			if s.logger != nil {
				s.logger.Error("highlight job panic", "error", r, "generation", job.Key.Generation, "stack", string(debug.Stack()))
			}
			ok = false
		}
	}()
	start := time.Now()
	res = s.compute(job)
	res.Key = job.Key
	if res.Duration == 0 {
		res.Duration = time.Since(start)
	}
	s.computed.Add(1)
	s.lastNanos.Store(int64(res.Duration))
	if s.logger != nil {
		s.logger.Debug("highlight computed",
			"left", job.Key.Bounds.Left,
			"right", job.Key.Bounds.Right,
			"highlighted", res.Highlighted,
			"duration", res.Duration,
		)
	}
	return res, true
}

// deliverLocked publishes res, replacing an undrained older result.
func (s *Scheduler) deliverLocked(res Result) {
	select {
	case s.resultCh <- res:
		return
	default:
	}
	select {
	case <-s.resultCh:
		s.dropped.Add(1)
	default:
	}
	select {
	case s.resultCh <- res:
	default:
	}
}

// Close stops the worker and waits up to timeout for it to exit. A job in
// progress runs to completion first. On timeout the worker is abandoned
// and ErrShutdownTimeout is returned.
func (s *Scheduler) Close(timeout time.Duration) error {
	var err error
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.stop)
		// A worker that never started has nothing to wait for.
		s.workerOnce.Do(func() { close(s.done) })
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		select {
		case <-s.done:
		case <-timer.C:
			err = ErrShutdownTimeout
			if s.logger != nil {
				s.logger.Warn("highlight worker shutdown timed out", "timeout", timeout)
			}
		}
	})
	return err
}

// Stats returns a snapshot of the scheduler counters.
func (s *Scheduler) Stats() Stats {
	return Stats{
		Submitted:    s.submitted.Load(),
		Coalesced:    s.coalesced.Load(),
		Computed:     s.computed.Load(),
		CacheHits:    s.cacheHits.Load(),
		Panics:       s.panics.Load(),
		Dropped:      s.dropped.Load(),
		LastDuration: time.Duration(s.lastNanos.Load()),
	}
}
