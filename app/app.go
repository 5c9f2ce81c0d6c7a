package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/gg"

	. "modernc.org/tk9.0"

	"github.com/soocke/histoedit-go/config"
	"github.com/soocke/histoedit-go/debug"
	"github.com/soocke/histoedit-go/domain/highlight"
	"github.com/soocke/histoedit-go/domain/imageio"
	"github.com/soocke/histoedit-go/ui/images"
	"github.com/soocke/histoedit-go/ui/presenter"
	"github.com/soocke/histoedit-go/ui/theme"
)

const (
	tick          = 25 * time.Millisecond
	debugInterval = 5 * time.Second
)

type app struct {
	c         *AppContainer
	logger    *slog.Logger
	afterID   string
	stopDebug func()
	closed    bool
}

// NewApp prepares the main window and the component graph.
func NewApp(title string, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	a := &app{logger: logger}
	a.c = BuildContainer(cfg, logger, cfgPath)

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", cfg.WindowWidth, cfg.WindowHeight))
	App.IconPhoto(NewPhoto(Data(images.EncodePNG(images.Icon(64)))))

	if cfg.Debug {
		gg.SetLogger(logger)
		a.stopDebug = debug.StartRuntimeLogger(debugInterval, logger, a.c.Scheduler.Stats)
	}
	return a
}

// Start builds the UI, opens initialPath if given and runs the Tk event
// loop until the window closes.
func (a *app) Start(initialPath string) {
	cfg := a.c.Config
	theme.SetDark(cfg.DarkMode)
	a.c.RootView.Build(a.c.Handlers(a.exitHandler), imageio.ScreenRect)
	a.c.Loop = presenter.NewLoop(a.c.HighlightPresenter, a.c.StatePresenter, a.c.TimingPresenter, a.scheduleUpdate)
	a.c.HighlightPresenter.ImageChanged()
	if initialPath != "" {
		_ = a.c.ImagePresenter.Open(initialPath)
	}

	a.scheduleUpdate()
	App.Wait()
}

func (a *app) exitHandler() {
	if a.closed {
		return
	}
	a.closed = true
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	a.c.Debouncer.Cancel()
	cfg := a.c.Config
	// The scheduler logs its own shutdown timeout.
	if err := a.c.Scheduler.Close(cfg.ShutdownTimeout()); err != nil && !errors.Is(err, highlight.ErrShutdownTimeout) {
		a.logger.Error("highlight worker shutdown failed", "error", err)
	}
	if a.stopDebug != nil {
		a.stopDebug()
	}
	if err := cfg.Save(a.c.CfgPath); err != nil {
		a.logger.Error("config save failed", "path", a.c.CfgPath, "error", err)
	}
	Destroy(App)
}

// scheduleUpdate queues the next loop tick on Tk's event loop thread.
func (a *app) scheduleUpdate() {
	if a.closed {
		return
	}
	a.afterID = TclAfter(tick, func() { a.c.Loop.Tick() })
}
