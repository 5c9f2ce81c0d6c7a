package view

import (
	"image"

	"github.com/soocke/histoedit-go/config"
	"github.com/soocke/histoedit-go/domain/pixels"
)

// Handlers are the callbacks the view invokes on user actions. Nil
// handlers are skipped.
type Handlers struct {
	OpenPath      func(path string)
	CloseImage    func()
	Capture       func()
	CaptureRegion func(r image.Rectangle)
	ExportSVG     func()
	Exit          func()

	Zoom      func(z float64)
	ZoomReset func()
	ZoomFit   func()

	Channel         func(c pixels.Channel, on bool)
	Brightness      func(v float64)
	HistogramZoom   func(z int)
	Scroll          func(delta float64)
	HighlightToggle func(on bool)
	Unlock          func()

	PointerEnter   func(x, y int)
	PointerMove    func(x, y int)
	PointerLeave   func()
	PointerPress   func(x, y int)
	PointerRelease func(x, y int)

	ConfigApplied func(cfg *config.Config)
}

func call(f func()) {
	if f != nil {
		f()
	}
}

func callXY(f func(x, y int), x, y int) {
	if f != nil {
		f(x, y)
	}
}
