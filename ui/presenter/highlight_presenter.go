package presenter

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/soocke/histoedit-go/domain/highlight"
	"github.com/soocke/histoedit-go/domain/pixels"
	"github.com/soocke/histoedit-go/ui/images"
	"github.com/soocke/histoedit-go/ui/model"
)

// HighlightScheduler is the part of highlight.Scheduler the presenter uses.
type HighlightScheduler interface {
	Submit(job highlight.Job) bool
	Results() <-chan highlight.Result
	Lookup(key highlight.Key) (highlight.Result, bool)
}

// Debouncer delays continuous input. highlight.Debouncer implements it.
type Debouncer interface {
	Push(job highlight.Job)
	Now(job highlight.Job)
	Cancel()
}

// HighlightView describes the UI surface updated by the presenter.
type HighlightView interface {
	ShowImage(img image.Image)
	ShowHistogram(img image.Image)
	SetReadout(text string)
	SetControls(channels highlight.ChannelMask, brightness float64)
}

// HighlightPresenter turns pointer and control input into highlight jobs
// and applies worker results to the view. All methods run on the UI thread.
type HighlightPresenter struct {
	Images   *model.ImageModel
	Settings *model.SettingsModel
	Timing   *model.TimingModel
	Selector *highlight.Selector
	Sched    HighlightScheduler
	Debounce Debouncer
	View     HighlightView
	logger   *slog.Logger

	chartW, chartH int

	applied    *highlight.Key // key of the result currently on screen
	lastResult highlight.Result
}

// NewHighlightPresenter constructs the presenter for a chart of chartW x chartH pixels.
func NewHighlightPresenter(imgs *model.ImageModel, settings *model.SettingsModel, timing *model.TimingModel, sel *highlight.Selector, sched HighlightScheduler, debounce Debouncer, view HighlightView, chartW, chartH int, logger *slog.Logger) *HighlightPresenter {
	sel.SetArea(images.PlotArea(chartW, chartH))
	return &HighlightPresenter{
		Images:   imgs,
		Settings: settings,
		Timing:   timing,
		Selector: sel,
		Sched:    sched,
		Debounce: debounce,
		View:     view,
		logger:   logger,
		chartW:   chartW,
		chartH:   chartH,
	}
}

// --- pointer input over the histogram chart ---

func (p *HighlightPresenter) PointerEnter(x, y int) { p.handle(p.Selector.PointerEnter(x, y)) }
func (p *HighlightPresenter) PointerMove(x, y int)  { p.handle(p.Selector.PointerMove(x, y)) }
func (p *HighlightPresenter) PointerLeave()         { p.handle(p.Selector.PointerLeave()) }
func (p *HighlightPresenter) PointerPress(x, y int) { p.handle(p.Selector.PointerPress(x, y)) }
func (p *HighlightPresenter) PointerRelease(x, y int) {
	p.handle(p.Selector.PointerRelease(x, y))
}

// Unlock releases a locked selection.
func (p *HighlightPresenter) Unlock() { p.handle(p.Selector.Unlock()) }

// --- controls ---

// SetEnabled turns highlighting on or off. Off shows the original image.
func (p *HighlightPresenter) SetEnabled(on bool) {
	tr := p.Selector.SetEnabled(on)
	if !on {
		p.Debounce.Cancel()
		p.applied = nil
		p.showOriginal()
	}
	p.handle(tr)
}

// SetChannel toggles one channel of the mask test.
func (p *HighlightPresenter) SetChannel(c pixels.Channel, on bool) {
	if !p.Settings.SetChannel(c, on) {
		return
	}
	p.handle(p.Selector.Changed())
}

// SetBrightness changes the brightness lift of masked pixels.
func (p *HighlightPresenter) SetBrightness(v float64) {
	if !p.Settings.SetBrightness(v) {
		return
	}
	p.handle(p.Selector.Adjusted())
}

// SetHistogramZoom selects 1x, 2x or 3x bin magnification.
func (p *HighlightPresenter) SetHistogramZoom(z int) {
	p.handle(p.Selector.SetZoom(z))
}

// ScrollBy moves the visible bin window by delta (fraction of the scroll range).
func (p *HighlightPresenter) ScrollBy(delta float64) {
	if p.Selector.Viewport().Zoom <= 1 {
		return
	}
	p.handle(p.Selector.SetScroll(p.Selector.Viewport().Scroll + delta))
}

// ImageChanged resets selection, channels and brightness for a newly
// loaded image.
func (p *HighlightPresenter) ImageChanged() {
	p.Debounce.Cancel()
	p.applied = nil
	p.lastResult = highlight.Result{}
	p.Selector.Reset(p.Selector.Enabled())
	p.Settings.Reset()
	p.View.SetControls(p.Settings.Channels(), p.Settings.Brightness())
	p.Timing.Reset()
	p.View.SetReadout("")
	p.showOriginal()
	p.renderChart()
}

// Redisplay repaints the image at the current display zoom.
func (p *HighlightPresenter) Redisplay() {
	if p.applied != nil && p.Selector.Active() {
		p.showComposite(p.lastResult)
		return
	}
	p.showOriginal()
}

// Drain applies every pending worker result without blocking. Called on
// each UI tick.
func (p *HighlightPresenter) Drain() {
	if p == nil || p.Sched == nil {
		return
	}
	for {
		select {
		case res := <-p.Sched.Results():
			p.apply(res)
		default:
			return
		}
	}
}

// CurrentKey is the key a result must carry to be displayed now.
func (p *HighlightPresenter) CurrentKey() highlight.Key {
	return highlight.Key{
		Bounds:     p.Selector.Range().Bounds(),
		Channels:   p.Settings.Channels(),
		Brightness: p.Settings.Brightness(),
		Generation: p.Images.Generation(),
	}
}

func (p *HighlightPresenter) handle(tr highlight.Trigger) {
	p.renderChart()
	if tr == highlight.TriggerNone || !p.Selector.Active() || !p.Images.Loaded() {
		return
	}
	key := p.CurrentKey()
	if p.applied != nil && *p.applied == key {
		p.Debounce.Cancel()
		return
	}
	if res, ok := p.Sched.Lookup(key); ok {
		p.Debounce.Cancel()
		p.apply(res)
		return
	}
	job := highlight.Job{Buffer: p.Images.Buffer(), Key: key}
	if tr == highlight.TriggerImmediate {
		p.Debounce.Now(job)
		return
	}
	p.Debounce.Push(job)
}

func (p *HighlightPresenter) apply(res highlight.Result) {
	if !p.Selector.Active() || !p.Images.Loaded() || res.Key != p.CurrentKey() {
		p.Timing.OnStale()
		if p.logger != nil {
			p.logger.Debug("stale highlight result dropped", "left", res.Key.Bounds.Left, "right", res.Key.Bounds.Right)
		}
		return
	}
	key := res.Key
	p.applied = &key
	p.lastResult = res
	p.Timing.OnApplied(res.Duration)
	p.showComposite(res)
}

func (p *HighlightPresenter) showComposite(res highlight.Result) {
	if res.Composite == nil || res.Composite.Empty() {
		p.showOriginal()
		return
	}
	img, _ := images.Zoom(res.Composite.Image(), p.Images.Zoom())
	p.View.ShowImage(img)
	p.View.SetReadout(FormatReadout(res.Highlighted, p.Images.Buffer().Len(), res.Key.Bounds))
}

func (p *HighlightPresenter) showOriginal() {
	if !p.Images.Loaded() {
		p.View.ShowImage(nil)
		return
	}
	img, _ := images.Zoom(p.Images.Buffer().Image(), p.Images.Zoom())
	p.View.ShowImage(img)
	if !p.Selector.Active() {
		p.View.SetReadout("")
	}
}

func (p *HighlightPresenter) renderChart() {
	opts := images.ChartOptions{
		Width:    p.chartW,
		Height:   p.chartH,
		Viewport: p.Selector.Viewport(),
		Locked:   p.Selector.Locked(),
	}
	if p.Selector.Active() {
		b := p.Selector.Range().Bounds()
		opts.Selection = &b
	}
	p.View.ShowHistogram(images.RenderHistogram(p.Images.Histogram(), opts))
}

// FormatReadout renders the highlighted pixel count, e.g. "1,234 px (12.34%) in 115-141".
func FormatReadout(highlighted, total int, b highlight.Bounds) string {
	pct := 0.0
	if total > 0 {
		pct = float64(highlighted) / float64(total) * 100
	}
	return fmt.Sprintf("%s px (%.2f%%) in %d-%d", humanize.Comma(int64(highlighted)), pct, b.Left, b.Right)
}
