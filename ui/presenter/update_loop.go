package presenter

// Loop aggregates feature presenters and drives periodic updates.
//
// It drains worker results, flushes state changes and invokes a scheduler
// callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Highlight *HighlightPresenter
	State     *StatePresenter
	Timing    *TimingPresenter
	Schedule  func()
}

func NewLoop(hl *HighlightPresenter, state *StatePresenter, timing *TimingPresenter, schedule func()) *Loop {
	return &Loop{Highlight: hl, State: state, Timing: timing, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	if l.Highlight != nil {
		l.Highlight.Drain()
	}
	if l.State != nil {
		l.State.Tick()
	}
	if l.Timing != nil {
		l.Timing.Tick()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
