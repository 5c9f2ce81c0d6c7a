package presenter

import (
	"github.com/soocke/histoedit-go/domain/highlight"
)

// StateView sets the state label in the view.
type StateView interface{ SetStateLabel(string) }

// StatePresenter receives selector transitions and updates the view on tick.
type StatePresenter struct {
	view    StateView
	latest  highlight.State
	shown   bool
	pending []highlight.State
}

func NewStatePresenter(view StateView) *StatePresenter {
	return &StatePresenter{view: view}
}

// OnState queues a transitioned state from the selector listener.
//
// The latest queued state will be reflected on the next Tick.
func (p *StatePresenter) OnState(prev, next highlight.State) {
	if p == nil {
		return
	}
	p.pending = append(p.pending, next)
}

// Tick reflects the most recent queued state and clears the queue.
func (p *StatePresenter) Tick() {
	if p == nil || p.view == nil {
		return
	}
	if !p.shown {
		p.shown = true
		p.view.SetStateLabel("State: " + p.latest.String())
	}
	if len(p.pending) > 0 {
		last := p.pending[len(p.pending)-1]
		p.pending = p.pending[:0]
		if last != p.latest {
			p.latest = last
			p.view.SetStateLabel("State: " + last.String())
		}
	}
}
