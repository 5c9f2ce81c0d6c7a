package view

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/histoedit-go/config"
	"github.com/soocke/histoedit-go/domain/highlight"
	"github.com/soocke/histoedit-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ChartWidth is the histogram chart width: two pixels per bin plus margins.
const ChartWidth = 2*256 + 20

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
	h       *Handlers

	// Subviews
	Image    PhotoPane
	Chart    PhotoPane
	Status   StatusBar
	Controls ControlPanel
	Prefs    ConfigPanel
	Region   RegionOverlay

	// Widgets
	StateLabel *TLabelWidget
	ZoomLabel  *TLabelWidget
	Readout    *TLabelWidget
	ZoomSelect *TComboboxWidget
}

// UI abstracts the subset of view operations needed by presenters, enabling decoupling
// from the concrete RootView implementation.
type UI interface {
	ShowImage(img image.Image)
	ShowHistogram(img image.Image)
	SetReadout(text string)
	SetControls(channels highlight.ChannelMask, brightness float64)
	SetStatus(text string)
	SetZoomLabel(text string)
	SetTitle(text string)
	ViewportSize() (w, h int)
	SetStateLabel(text string)
	SetTiming(text string)
}

var _ UI = (*RootView)(nil)

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// ChartSize is the histogram chart size in pixels.
func (rv *RootView) ChartSize() (w, h int) {
	return ChartWidth, rv.cfg.HistogramHeight
}

// Build constructs the layout. Handlers are invoked on user actions;
// screen reports the screen bounds for the region overlay.
func (rv *RootView) Build(h *Handlers, screen func() (image.Rectangle, error)) {
	if rv == nil {
		return
	}
	if h == nil {
		h = &Handlers{}
	}
	rv.h = h
	GridColumnConfigure(App, 0, Weight(1))
	GridRowConfigure(App, 1, Weight(1))

	rv.buildToolbar()

	// Row 1: image on the left, histogram and controls on the right
	imgFrame := Frame()
	Grid(imgFrame, Row(1), Column(0), Sticky("nsew"), Padx("0.3m"))
	vw, vh := rv.ViewportSize()
	rv.Image = NewPhotoPane(imgFrame, 0, 0, vw, vh)

	side := Frame()
	Grid(side, Row(1), Column(1), Sticky("ne"), Padx("0.3m"))
	cw, ch := rv.ChartSize()
	rv.Chart = NewPhotoPane(side, 0, 0, cw, ch)
	rv.bindChart(rv.Chart.Widget())
	rv.Readout = side.TLabel(Txt(""), Anchor("w"), Style(theme.StyleReadoutLabel))
	Grid(rv.Readout, Row(1), Column(0), Sticky("we"), Padx("0.4m"))
	rv.Controls = NewControlPanel(side, h, rv.cfg.DefaultBrightness, rv.cfg.HighlightEnabled)
	rv.Controls.Build(2)

	// Row 2: status bar
	statusFrame := Frame()
	Grid(statusFrame, Row(2), Column(0), Columnspan(2), Sticky("we"))
	GridColumnConfigure(statusFrame.Window, 0, Weight(1))
	rv.Status = NewStatusBar(statusFrame, 0)

	rv.Prefs = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger, h.ConfigApplied)
	rv.Region = NewRegionOverlay(screen, func(r image.Rectangle) {
		if h.CaptureRegion != nil {
			h.CaptureRegion(r)
		}
	})
}

func (rv *RootView) buildToolbar() {
	h := rv.h
	bar := Frame()
	Grid(bar, Row(0), Column(0), Columnspan(2), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	col := 0
	add := func(w Widget) {
		Grid(w, Row(0), Column(col), Sticky("w"), Padx("0.2m"))
		col++
	}
	add(bar.Button(Txt("Load Image"), Command(rv.openDialog)))
	add(bar.Button(Txt("Close Image"), Command(func() { call(h.CloseImage) })))
	add(bar.Button(Txt("Capture Screen"), Command(func() { call(h.Capture) })))
	add(bar.Button(Txt("Capture Region"), Command(func() { rv.Region.OpenOrFocus() })))
	add(bar.TButton(Txt("Export SVG"), Style(theme.StylePrimaryButton), Command(func() { call(h.ExportSVG) })))

	labels := make([]string, len(ZoomPresets))
	current := 0
	for i, z := range ZoomPresets {
		labels[i] = fmt.Sprintf("%d%%", int(z*100+0.5))
		if z == 1 {
			current = i
		}
	}
	rv.ZoomSelect = bar.TCombobox(Values(labels), Width(6))
	add(rv.ZoomSelect)
	rv.ZoomSelect.Current(current)
	Bind(rv.ZoomSelect, "<<ComboboxSelected>>", Command(func() {
		idx, ok := comboIndex(rv.ZoomSelect, len(ZoomPresets))
		if !ok {
			if rv.logger != nil {
				rv.logger.Error("zoom selection parse error", "value", rv.ZoomSelect.Current(nil))
			}
			return
		}
		if h.Zoom != nil {
			h.Zoom(ZoomPresets[idx])
		}
	}))
	add(bar.Button(Txt("100%"), Command(func() { call(h.ZoomReset) })))
	add(bar.Button(Txt("Fit"), Command(func() { call(h.ZoomFit) })))
	rv.ZoomLabel = bar.TLabel(Txt("100%"), Width(6), Style(theme.StyleAccentLabel))
	add(rv.ZoomLabel)
	rv.StateLabel = bar.TLabel(Txt("State: idle"), Style(theme.StyleStateLabel))
	add(rv.StateLabel)
	add(bar.Button(Txt("Preferences"), Command(func() { rv.Prefs.OpenOrFocus() })))
	add(bar.TButton(Txt("Exit"), Style(theme.StyleDangerButton), Command(func() { call(h.Exit) })))
}

// bindChart forwards pointer events over the chart; coordinates are
// relative to the chart image.
func (rv *RootView) bindChart(w *LabelWidget) {
	h := rv.h
	w.Configure(Borderwidth(0))
	Bind(w, "<Enter>", Command(func(e *Event) { callXY(h.PointerEnter, e.X, e.Y) }))
	Bind(w, "<Motion>", Command(func(e *Event) { callXY(h.PointerMove, e.X, e.Y) }))
	Bind(w, "<Leave>", Command(func() { call(h.PointerLeave) }))
	Bind(w, "<ButtonPress-1>", Command(func(e *Event) { callXY(h.PointerPress, e.X, e.Y) }))
	Bind(w, "<ButtonRelease-1>", Command(func(e *Event) { callXY(h.PointerRelease, e.X, e.Y) }))
}

func (rv *RootView) openDialog() {
	dir := rv.cfg.LastDir
	opts := []Opt{Title("Open Image")}
	if dir != "" {
		opts = append(opts, Initialdir(dir))
	}
	files := GetOpenFile(opts...)
	if len(files) == 0 || files[0] == "" {
		return
	}
	if rv.h.OpenPath != nil {
		rv.h.OpenPath(files[0])
	}
}

// ViewportSize is the space left for the image: the window minus the side
// panel and the tool and status bars.
func (rv *RootView) ViewportSize() (w, h int) {
	winW, winH := rv.cfg.WindowWidth, rv.cfg.WindowHeight
	if r, ok := parseGeometry(WmGeometry(App)); ok && r.Dx() > 1 {
		winW, winH = r.Dx(), r.Dy()
	}
	return max(winW-ChartWidth-40, 100), max(winH-90, 100)
}

// --- HighlightView ---

func (rv *RootView) ShowImage(img image.Image) {
	if rv != nil && rv.Image != nil {
		rv.Image.Update(img)
	}
}

func (rv *RootView) ShowHistogram(img image.Image) {
	if rv != nil && rv.Chart != nil {
		rv.Chart.Update(img)
	}
}

func (rv *RootView) SetReadout(text string) {
	if rv != nil && rv.Readout != nil {
		rv.Readout.Configure(Txt(text))
	}
}

// SetControls shows channel and brightness settings restored by the presenter.
func (rv *RootView) SetControls(channels highlight.ChannelMask, brightness float64) {
	if rv == nil || rv.Controls == nil {
		return
	}
	rv.Controls.SetChannels(channels.Red, channels.Green, channels.Blue)
	rv.Controls.SetBrightness(brightness)
}

// --- ImageView ---

func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetStatus(text)
	}
}

func (rv *RootView) SetZoomLabel(text string) {
	if rv != nil && rv.ZoomLabel != nil {
		rv.ZoomLabel.Configure(Txt(text))
	}
}

func (rv *RootView) SetTitle(text string) {
	if text == "" {
		App.WmTitle("Histogram Viewer")
		return
	}
	App.WmTitle(text + " - Histogram Viewer")
}

// --- StateView / TimingView ---

// SetStateLabel updates the state label text.
func (rv *RootView) SetStateLabel(text string) {
	if rv != nil && rv.StateLabel != nil {
		rv.StateLabel.Configure(Txt(text))
	}
}

func (rv *RootView) SetTiming(text string) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetTiming(text)
	}
}
