package app

import (
	"image"
	"log/slog"
	"path/filepath"

	"github.com/soocke/histoedit-go/config"
	"github.com/soocke/histoedit-go/domain/highlight"
	"github.com/soocke/histoedit-go/domain/imageio"
	"github.com/soocke/histoedit-go/ui/images"
	"github.com/soocke/histoedit-go/ui/model"
	"github.com/soocke/histoedit-go/ui/presenter"
	"github.com/soocke/histoedit-go/ui/theme"
	"github.com/soocke/histoedit-go/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config  *config.Config
	CfgPath string
	Logger  *slog.Logger

	Images   *model.ImageModel
	Settings *model.SettingsModel
	Timing   *model.TimingModel

	Selector  *highlight.Selector
	Scheduler *highlight.Scheduler
	Debouncer *highlight.Debouncer
	Source    imageio.Source

	RootView *view.RootView
	UI       view.UI

	// Presenters
	HighlightPresenter *presenter.HighlightPresenter
	ImagePresenter     *presenter.ImagePresenter
	StatePresenter     *presenter.StatePresenter
	TimingPresenter    *presenter.TimingPresenter
	Loop               *presenter.Loop
}

// BuildContainer constructs all components. No widgets are created until
// RootView.Build runs.
func BuildContainer(cfg *config.Config, logger *slog.Logger, cfgPath string) *AppContainer {
	c := &AppContainer{Config: cfg, CfgPath: cfgPath, Logger: logger}
	c.Images = model.NewImageModel()
	c.Settings = model.NewSettingsModel(cfg.DefaultBrightness)
	c.Timing = model.NewTimingModel()

	c.Scheduler = highlight.NewScheduler(logger, highlight.SchedulerOptions{
		Workers:   cfg.EngineWorkers,
		CacheSize: cfg.ResultCacheSize,
	})
	c.Debouncer = highlight.NewDebouncer(cfg.Debounce(), func(job highlight.Job) { c.Scheduler.Submit(job) })

	// View
	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.UI = c.RootView
	chartW, chartH := c.RootView.ChartSize()
	c.Selector = highlight.NewSelector(images.PlotArea(chartW, chartH))
	c.Selector.MaxWidth = cfg.MaxHighlightWidth
	c.Selector.Reset(cfg.HighlightEnabled)

	// Presenters
	c.HighlightPresenter = presenter.NewHighlightPresenter(c.Images, c.Settings, c.Timing, c.Selector, c.Scheduler, c.Debouncer, c.UI, chartW, chartH, logger)
	c.ImagePresenter = presenter.NewImagePresenter(c.Images, c.Source, c.Scheduler, c.HighlightPresenter, c.UI, logger)
	c.ImagePresenter.OnOpened = func(path string) { cfg.LastDir = filepath.Dir(path) }
	c.StatePresenter = presenter.NewStatePresenter(c.UI)
	c.Selector.AddListener(c.StatePresenter.OnState)
	c.Selector.AddListener(func(prev, next highlight.State) {
		logger.Debug("selection state", "from", prev.String(), "to", next.String())
	})
	c.TimingPresenter = presenter.NewTimingPresenter(c.Timing, c.Scheduler, c.UI)
	return c
}

// Handlers maps view callbacks onto the presenters. exit is invoked by the
// Exit button.
func (c *AppContainer) Handlers(exit func()) *view.Handlers {
	hl, img := c.HighlightPresenter, c.ImagePresenter
	return &view.Handlers{
		OpenPath:      func(path string) { _ = img.Open(path) },
		CloseImage:    img.Close,
		Capture:       func() { _ = img.Capture() },
		CaptureRegion: func(r image.Rectangle) { _ = img.CaptureRegion(r) },
		ExportSVG:     func() { _, _ = img.ExportSVG() },
		Exit:          exit,

		Zoom:      img.SetZoom,
		ZoomReset: img.ResetZoom,
		ZoomFit:   img.Fit,

		Channel:       hl.SetChannel,
		Brightness:    hl.SetBrightness,
		HistogramZoom: hl.SetHistogramZoom,
		Scroll:        hl.ScrollBy,
		HighlightToggle: func(on bool) {
			c.Config.HighlightEnabled = on
			hl.SetEnabled(on)
		},
		Unlock: hl.Unlock,

		PointerEnter:   hl.PointerEnter,
		PointerMove:    hl.PointerMove,
		PointerLeave:   hl.PointerLeave,
		PointerPress:   hl.PointerPress,
		PointerRelease: hl.PointerRelease,

		ConfigApplied: c.applyConfig,
	}
}

// applyConfig pushes preferences that take effect without a restart.
func (c *AppContainer) applyConfig(cfg *config.Config) {
	c.Selector.MaxWidth = cfg.MaxHighlightWidth
	c.Settings.SetDefaultBrightness(cfg.DefaultBrightness)
	theme.SetDark(cfg.DarkMode)
	c.UI.SetStatus("Preferences saved; worker, cache and debounce changes apply on restart")
}
