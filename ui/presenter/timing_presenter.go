package presenter

import (
	"fmt"
	"time"

	"github.com/soocke/histoedit-go/domain/highlight"
	"github.com/soocke/histoedit-go/ui/model"
)

// StatsSource exposes scheduler counters.
type StatsSource interface{ Stats() highlight.Stats }

// TimingView displays compute timing.
type TimingView interface{ SetTiming(text string) }

// TimingPresenter formats compute timing from the model to the view.
type TimingPresenter struct {
	timing *model.TimingModel
	stats  StatsSource
	view   TimingView
	last   string
}

func NewTimingPresenter(timing *model.TimingModel, stats StatsSource, view TimingView) *TimingPresenter {
	return &TimingPresenter{timing: timing, stats: stats, view: view}
}

// Tick pushes the current values to the view when they changed.
func (p *TimingPresenter) Tick() {
	if p == nil || p.timing == nil || p.view == nil {
		return
	}
	last, mean, applied, stale := p.timing.Values()
	text := ""
	if applied > 0 {
		text = fmt.Sprintf("Compute %v (avg %v)", last.Round(100*time.Microsecond), mean.Round(100*time.Microsecond))
		if p.stats != nil {
			if st := p.stats.Stats(); st.CacheHits > 0 {
				text += fmt.Sprintf(", %d cached", st.CacheHits)
			}
		}
		if stale > 0 {
			text += fmt.Sprintf(", %d stale", stale)
		}
	}
	if text != p.last {
		p.last = text
		p.view.SetTiming(text)
	}
}
