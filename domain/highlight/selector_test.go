package highlight

import (
	"image"
	"math"
	"testing"
)

func TestRangeBounds_LeftNeverExceedsRight(t *testing.T) {
	for c := 0; c <= 1000; c++ {
		for w := 0; w <= 100; w++ {
			r := Range{Center: float64(c) / 1000, Width: float64(w) / 1000}
			b := r.Bounds()
			if b.Left > b.Right || b.Left < 0 || b.Right > 255 {
				t.Fatalf("center=%.3f width=%.3f gave %+v", r.Center, r.Width, b)
			}
		}
	}
}

func TestRangeBounds_Values(t *testing.T) {
	b := Range{Center: 0.5, Width: 0.1}.Bounds()
	// round(127.5)=128, round(12.75)=13
	if b.Left != 115 || b.Right != 141 {
		t.Fatalf("got %+v want {115 141}", b)
	}
	b = Range{Center: 0, Width: 0.1}.Bounds()
	if b.Left != 0 || b.Right != 13 {
		t.Fatalf("left edge clamp failed: %+v", b)
	}
}

func TestViewport_Window(t *testing.T) {
	cases := []struct {
		vp      Viewport
		visible int
		start   int
	}{
		{Viewport{Zoom: 1}, 256, 0},
		{Viewport{Zoom: 2, Scroll: 1}, 128, 128},
		{Viewport{Zoom: 3, Scroll: 0.5}, 85, 85},
		{Viewport{Zoom: 0}, 256, 0},
	}
	for _, tc := range cases {
		if got := tc.vp.VisibleBins(); got != tc.visible {
			t.Fatalf("%+v visible=%d want %d", tc.vp, got, tc.visible)
		}
		if got := tc.vp.StartBin(); got != tc.start {
			t.Fatalf("%+v start=%d want %d", tc.vp, got, tc.start)
		}
	}
}

func TestSelector_PointerMapping(t *testing.T) {
	s := NewSelector(image.Rect(10, 20, 266, 120))
	r := s.RangeAt(10, 20)
	if r.Center != 0 || math.Abs(r.Width-0.1) > 1e-12 {
		t.Fatalf("top-left got %+v", r)
	}
	r = s.RangeAt(400, 500)
	if r.Center != 1 || r.Width != 0 {
		t.Fatalf("clamped bottom-right got %+v", r)
	}
	s.SetZoom(2)
	s.SetScroll(1)
	r = s.RangeAt(10, 70)
	if math.Abs(r.Center-128.0/255) > 1e-12 {
		t.Fatalf("zoomed center=%v want %v", r.Center, 128.0/255)
	}
	if math.Abs(r.Width-0.025) > 1e-12 {
		t.Fatalf("zoomed width=%v want 0.025", r.Width)
	}
}

func TestSelector_StateMachine(t *testing.T) {
	s := NewSelector(image.Rect(0, 0, 256, 100))
	var seq []State
	s.AddListener(func(prev, next State) { seq = append(seq, next) })

	if tr := s.PointerEnter(10, 10); tr != TriggerDebounced || s.Current() != StateHovering {
		t.Fatalf("enter: trigger=%v state=%v", tr, s.Current())
	}
	if tr := s.PointerMove(20, 10); tr != TriggerDebounced {
		t.Fatalf("hover move trigger=%v", tr)
	}
	if tr := s.PointerPress(30, 10); tr != TriggerDebounced || s.Current() != StateDragging {
		t.Fatalf("press: trigger=%v state=%v", tr, s.Current())
	}
	if tr := s.PointerLeave(); tr != TriggerNone || s.Current() != StateDragging {
		t.Fatalf("leave during drag should keep dragging, got %v", s.Current())
	}
	if tr := s.PointerRelease(40, 50); tr != TriggerImmediate || s.Current() != StateLocked {
		t.Fatalf("release: trigger=%v state=%v", tr, s.Current())
	}
	frozen := s.Range()
	if tr := s.PointerMove(200, 90); tr != TriggerNone || s.Range() != frozen {
		t.Fatalf("locked move changed range or triggered %v", tr)
	}
	if tr := s.PointerPress(100, 10); tr != TriggerNone || s.Current() != StateHovering {
		t.Fatalf("unlock press: trigger=%v state=%v", tr, s.Current())
	}
	if s.Range() != frozen {
		t.Fatalf("unlocking press must not move the range")
	}
	if tr := s.PointerMove(120, 10); tr != TriggerDebounced {
		t.Fatalf("move after unlock trigger=%v", tr)
	}
	s.PointerLeave()
	want := []State{StateHovering, StateDragging, StateLocked, StateHovering, StateIdle}
	if len(seq) != len(want) {
		t.Fatalf("transitions %v want %v", seq, want)
	}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("transitions %v want %v", seq, want)
		}
	}
}

func TestSelector_DisabledSuppressesPointer(t *testing.T) {
	s := NewSelector(image.Rect(0, 0, 256, 100))
	s.PointerEnter(10, 10)
	s.SetEnabled(false)
	before := s.Range()
	for _, tr := range []Trigger{s.PointerMove(100, 50), s.PointerPress(100, 50), s.PointerRelease(100, 50), s.PointerLeave()} {
		if tr != TriggerNone {
			t.Fatalf("disabled selector produced trigger %v", tr)
		}
	}
	if s.Range() != before || s.Current() != StateHovering {
		t.Fatalf("disabled selector changed state: %v %+v", s.Current(), s.Range())
	}
	if tr := s.SetEnabled(true); tr != TriggerImmediate {
		t.Fatalf("re-enable trigger=%v want immediate", tr)
	}
}

func TestSelector_DisableEndsDrag(t *testing.T) {
	s := NewSelector(image.Rect(0, 0, 256, 100))
	s.PointerPress(10, 10)
	s.SetEnabled(false)
	if s.Current() != StateIdle {
		t.Fatalf("disable during drag left state %v", s.Current())
	}
	s.SetEnabled(true)
	if tr := s.PointerMove(300, 10); tr != TriggerNone {
		t.Fatalf("move outside the area after re-enable acted as a drag: %v", tr)
	}
	if tr := s.PointerRelease(30, 10); tr != TriggerNone || s.Locked() {
		t.Fatalf("release without a drag locked the range")
	}
}

func TestSelector_DiscreteChanges(t *testing.T) {
	s := NewSelector(image.Rect(0, 0, 256, 100))
	if tr := s.SetZoom(2); tr != TriggerNone {
		t.Fatalf("zoom without a range should not trigger, got %v", tr)
	}
	s.PointerEnter(50, 50)
	if tr := s.SetZoom(3); tr != TriggerImmediate {
		t.Fatalf("zoom trigger=%v", tr)
	}
	if s.Viewport().Scroll != 0 {
		t.Fatalf("zoom must reset scroll")
	}
	if tr := s.SetScroll(0.5); tr != TriggerImmediate {
		t.Fatalf("scroll trigger=%v", tr)
	}
	if tr := s.SetScroll(0.5); tr != TriggerNone {
		t.Fatalf("unchanged scroll trigger=%v", tr)
	}
	if tr := s.SetZoom(3); tr != TriggerNone {
		t.Fatalf("unchanged zoom trigger=%v", tr)
	}
	if s.Viewport().Scroll != 0.5 {
		t.Fatalf("unchanged zoom must not reset scroll")
	}
	if tr := s.Changed(); tr != TriggerImmediate {
		t.Fatalf("channel change trigger=%v", tr)
	}
	if tr := s.Adjusted(); tr != TriggerDebounced {
		t.Fatalf("brightness change trigger=%v", tr)
	}
}

func TestSelector_ResetRestoresDefaults(t *testing.T) {
	s := NewSelector(image.Rect(0, 0, 256, 100))
	s.SetZoom(2)
	s.PointerPress(10, 10)
	s.PointerRelease(10, 10)
	s.Reset(true)
	if s.Current() != StateIdle || s.HasRange() || s.Viewport() != DefaultViewport || !s.Enabled() {
		t.Fatalf("reset left state=%v hasRange=%v viewport=%+v", s.Current(), s.HasRange(), s.Viewport())
	}
}
