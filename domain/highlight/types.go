package highlight

import (
	"math"
	"time"

	"github.com/soocke/histoedit-go/domain/pixels"
)

// DefaultMaxWidth is the widest selection (fraction of the 0-255 domain)
// reachable at zoom 1.
const DefaultMaxWidth = 0.1

// Range is a selection over the value domain expressed as fractions of 255.
type Range struct {
	Center float64 // [0,1]
	Width  float64 // [0,0.1]
}

// Bounds is an inclusive bin interval with 0 <= Left <= Right <= 255.
type Bounds struct {
	Left, Right int
}

// Contains reports whether v lies in the inclusive interval.
func (b Bounds) Contains(v uint8) bool { return int(v) >= b.Left && int(v) <= b.Right }

// Bounds derives the integer bin interval. Rounding is half away from zero.
func (r Range) Bounds() Bounds {
	c := math.Round(r.Center * 255)
	half := math.Round(r.Width * 255 / 2)
	return Bounds{Left: clampBin(c - half), Right: clampBin(c + half)}
}

func clampBin(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int(v)
}

// ChannelMask selects which color channels take part in the mask test.
type ChannelMask struct {
	Red, Green, Blue bool
}

// AllChannels is the default mask.
var AllChannels = ChannelMask{Red: true, Green: true, Blue: true}

// Enabled reports whether channel c is selected.
func (m ChannelMask) Enabled(c pixels.Channel) bool {
	switch c {
	case pixels.Red:
		return m.Red
	case pixels.Green:
		return m.Green
	case pixels.Blue:
		return m.Blue
	default:
		return false
	}
}

// With returns a copy of m with channel c set to on.
func (m ChannelMask) With(c pixels.Channel, on bool) ChannelMask {
	switch c {
	case pixels.Red:
		m.Red = on
	case pixels.Green:
		m.Green = on
	case pixels.Blue:
		m.Blue = on
	}
	return m
}

// Any reports whether at least one channel is selected.
func (m ChannelMask) Any() bool { return m.Red || m.Green || m.Blue }

// Viewport is the visible window of the 256 histogram bins.
type Viewport struct {
	Zoom   int     // 1, 2 or 3
	Scroll float64 // [0,1]
}

// DefaultViewport shows all bins.
var DefaultViewport = Viewport{Zoom: 1}

// VisibleBins is the number of bins shown at the current zoom.
func (v Viewport) VisibleBins() int { return 256 / v.zoom() }

// StartBin is the first visible bin.
func (v Viewport) StartBin() int {
	return int(math.Floor(clamp01(v.Scroll) * float64(256-v.VisibleBins())))
}

func (v Viewport) zoom() int {
	if v.Zoom < 1 {
		return 1
	}
	if v.Zoom > 3 {
		return 3
	}
	return v.Zoom
}

// Key is the cache identity of a recompute: two jobs with equal keys produce
// bit-identical results. Generation changes whenever the source buffer is
// replaced, so keys from a previous image never match.
type Key struct {
	Bounds     Bounds
	Channels   ChannelMask
	Brightness float64
	Generation uint64
}

// Job is an immutable recompute request. Buffer must not be mutated after
// the job is created.
type Job struct {
	Buffer *pixels.Buffer
	Key    Key
}

// Result is the output of Compute for one Job.
type Result struct {
	Key         Key
	Mask        []bool
	Composite   *pixels.Buffer
	Highlighted int
	Duration    time.Duration
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
