package highlight

import (
	"image"
)

// State enumerates the pointer interaction states of the selector.
type State int

const (
	StateIdle State = iota
	StateHovering
	StateDragging
	StateLocked
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHovering:
		return "hovering"
	case StateDragging:
		return "dragging"
	case StateLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// Trigger tells the caller how to schedule a recompute after an input.
type Trigger int

const (
	// TriggerNone means the selection did not change.
	TriggerNone Trigger = iota
	// TriggerDebounced is continuous pointer or slider movement.
	TriggerDebounced
	// TriggerImmediate is a discrete change that bypasses debounce.
	TriggerImmediate
)

func (t Trigger) String() string {
	switch t {
	case TriggerNone:
		return "none"
	case TriggerDebounced:
		return "debounced"
	case TriggerImmediate:
		return "immediate"
	default:
		return "unknown"
	}
}

// StateListener is called after every state transition.
type StateListener func(prev, next State)

// Selector maps pointer input over the histogram area to a selection Range.
// It is not safe for concurrent use; it belongs to the UI goroutine.
type Selector struct {
	// MaxWidth is the width produced at the top edge of the area at zoom 1.
	// The vertical mapping is a UX policy, not a derived invariant.
	MaxWidth float64

	state     State
	enabled   bool
	hasRange  bool
	rng       Range
	viewport  Viewport
	area      image.Rectangle
	listeners []StateListener
}

// NewSelector returns an enabled selector in StateIdle.
func NewSelector(area image.Rectangle) *Selector {
	return &Selector{MaxWidth: DefaultMaxWidth, enabled: true, viewport: DefaultViewport, area: area}
}

// AddListener registers l for state transitions.
func (s *Selector) AddListener(l StateListener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

func (s *Selector) Current() State        { return s.state }
func (s *Selector) Enabled() bool         { return s.enabled }
func (s *Selector) Range() Range          { return s.rng }
func (s *Selector) HasRange() bool        { return s.hasRange }
func (s *Selector) Viewport() Viewport    { return s.viewport }
func (s *Selector) Locked() bool          { return s.state == StateLocked }
func (s *Selector) Area() image.Rectangle { return s.area }

// Active reports whether a highlight should currently be shown.
func (s *Selector) Active() bool { return s.enabled && s.hasRange }

// SetArea updates the interaction rectangle (e.g. after a resize).
func (s *Selector) SetArea(r image.Rectangle) { s.area = r }

// Reset restores defaults for a newly loaded image. Listeners observe the
// transition back to StateIdle.
func (s *Selector) Reset(enabled bool) {
	s.enabled = enabled
	s.hasRange = false
	s.rng = Range{}
	s.viewport = DefaultViewport
	s.transition(StateIdle)
}

// RangeAt maps a pointer position to a selection range under the current
// viewport. Positions outside the area are clamped to its edges.
func (s *Selector) RangeAt(x, y int) Range {
	w, h := float64(s.area.Dx()), float64(s.area.Dy())
	relX, relY := 0.0, 0.0
	if w > 0 {
		relX = clamp01(float64(x-s.area.Min.X) / w)
	}
	if h > 0 {
		relY = clamp01(float64(y-s.area.Min.Y) / h)
	}
	vp := s.viewport
	center := (float64(vp.StartBin()) + relX*float64(vp.VisibleBins())) / 255
	maxW := s.MaxWidth
	if maxW <= 0 {
		maxW = DefaultMaxWidth
	}
	return Range{Center: clamp01(center), Width: (1 - relY) * maxW / float64(vp.zoom())}
}

// PointerEnter starts hovering and previews the range under the pointer.
func (s *Selector) PointerEnter(x, y int) Trigger {
	if !s.enabled || s.state == StateLocked || s.state == StateDragging {
		return TriggerNone
	}
	s.transition(StateHovering)
	return s.update(x, y)
}

// PointerMove updates the range while hovering or dragging.
func (s *Selector) PointerMove(x, y int) Trigger {
	if !s.enabled {
		return TriggerNone
	}
	switch s.state {
	case StateIdle:
		// Motion without a prior enter event.
		if !image.Pt(x, y).In(s.area) {
			return TriggerNone
		}
		s.transition(StateHovering)
		return s.update(x, y)
	case StateHovering, StateDragging:
		return s.update(x, y)
	default:
		return TriggerNone
	}
}

// PointerLeave ends hovering. A drag in progress continues with clamped
// positions until the button is released.
func (s *Selector) PointerLeave() Trigger {
	if !s.enabled {
		return TriggerNone
	}
	if s.state == StateHovering {
		s.transition(StateIdle)
	}
	return TriggerNone
}

// PointerPress begins a drag, or unlocks a locked selection.
func (s *Selector) PointerPress(x, y int) Trigger {
	if !s.enabled {
		return TriggerNone
	}
	switch s.state {
	case StateLocked:
		s.transition(StateHovering)
		return TriggerNone
	case StateIdle, StateHovering:
		s.transition(StateDragging)
		return s.update(x, y)
	default:
		return TriggerNone
	}
}

// PointerRelease freezes the range at the release position.
func (s *Selector) PointerRelease(x, y int) Trigger {
	if !s.enabled || s.state != StateDragging {
		return TriggerNone
	}
	s.update(x, y)
	s.transition(StateLocked)
	return TriggerImmediate
}

// Unlock releases a locked selection without a pointer press.
func (s *Selector) Unlock() Trigger {
	if s.state == StateLocked {
		s.transition(StateIdle)
	}
	return TriggerNone
}

// SetEnabled toggles highlighting. Turning it on re-applies the current
// range immediately; turning it off suppresses all pointer handling and
// abandons a drag in progress.
func (s *Selector) SetEnabled(on bool) Trigger {
	if s.enabled == on {
		return TriggerNone
	}
	s.enabled = on
	if !on && s.state == StateDragging {
		s.transition(StateIdle)
	}
	if on && s.hasRange {
		return TriggerImmediate
	}
	return TriggerNone
}

// SetZoom changes the histogram zoom (1..3) and resets scrolling.
func (s *Selector) SetZoom(zoom int) Trigger {
	if zoom < 1 {
		zoom = 1
	}
	if zoom > 3 {
		zoom = 3
	}
	if zoom == s.viewport.Zoom {
		return TriggerNone
	}
	s.viewport = Viewport{Zoom: zoom}
	return s.discrete()
}

// SetScroll moves the visible bin window; f is clamped to [0,1].
func (s *Selector) SetScroll(f float64) Trigger {
	f = clamp01(f)
	if f == s.viewport.Scroll {
		return TriggerNone
	}
	s.viewport.Scroll = f
	return s.discrete()
}

// Changed reports a discrete change of an input outside the selector
// (channel toggle) and returns the trigger it warrants.
func (s *Selector) Changed() Trigger { return s.discrete() }

// Adjusted reports a continuous change of an input outside the selector
// (brightness slider) and returns the trigger it warrants.
func (s *Selector) Adjusted() Trigger {
	if !s.Active() {
		return TriggerNone
	}
	return TriggerDebounced
}

func (s *Selector) discrete() Trigger {
	if !s.Active() {
		return TriggerNone
	}
	return TriggerImmediate
}

func (s *Selector) update(x, y int) Trigger {
	r := s.RangeAt(x, y)
	if s.hasRange && r == s.rng {
		return TriggerNone
	}
	s.rng = r
	s.hasRange = true
	return TriggerDebounced
}

func (s *Selector) transition(next State) {
	prev := s.state
	if prev == next {
		return
	}
	s.state = next
	for _, l := range s.listeners {
		l(prev, next)
	}
}
