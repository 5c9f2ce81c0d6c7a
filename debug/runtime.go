package debug

// Periodic runtime logger enabled when config.Debug is true.
// Logs goroutine count, heap, working set and highlight scheduler counters
// so stalls or leaks in the recompute pipeline show up in the log stream.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"sync"
	"time"

	"github.com/soocke/histoedit-go/domain/highlight"
)

// StatsFunc returns scheduler counters; it may be nil.
type StatsFunc func() highlight.Stats

// StartRuntimeLogger launches a ticker that logs runtime and scheduler
// stats every interval. The returned function stops it.
func StartRuntimeLogger(interval time.Duration, logger *slog.Logger, stats StatsFunc) (stop func()) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	done := make(chan struct{})
	var once sync.Once
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		var rssErrLogged bool
		for {
			select {
			case <-done:
				return
			case <-t.C:
			}
			rss, err := residentSetSize()
			if err != nil && !rssErrLogged {
				logger.Warn("runtime log: working set query failed", slog.String("err", err.Error()))
				rssErrLogged = true
			}
			attrs := append(sampleRuntime(), slog.Uint64("rss", rss))
			if stats != nil {
				st := stats()
				attrs = append(attrs,
					slog.Uint64("jobs_submitted", st.Submitted),
					slog.Uint64("jobs_coalesced", st.Coalesced),
					slog.Uint64("jobs_computed", st.Computed),
					slog.Uint64("cache_hits", st.CacheHits),
					slog.Uint64("panics", st.Panics),
					slog.Duration("last_compute", st.LastDuration),
				)
			}
			logger.LogAttrs(context.Background(), slog.LevelInfo, "runtime", attrs...)
		}
	}()
	return func() { once.Do(func() { close(done) }) }
}

func sampleRuntime() []slog.Attr {
	samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
	metrics.Read(samples)
	var goroutines uint64
	if samples[0].Value.Kind() == metrics.KindUint64 {
		goroutines = samples[0].Value.Uint64()
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return []slog.Attr{
		slog.Uint64("goroutines", goroutines),
		slog.Uint64("heap_alloc", ms.HeapAlloc),
		slog.Uint64("heap_inuse", ms.HeapInuse),
		slog.Uint64("stack_inuse", ms.StackInuse),
		slog.Uint64("num_gc", uint64(ms.NumGC)),
	}
}
