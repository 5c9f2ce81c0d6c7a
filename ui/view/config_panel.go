package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/histoedit-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel is the preferences window. It owns its widgets and writes
// back into *config.Config on ApplyChanges.
type ConfigPanel interface {
	OpenOrFocus()
	ApplyChanges() // parses widget text into the config, persists it and notifies
}

type configPanel struct {
	cfg       *config.Config
	cfgPath   string
	logger    *slog.Logger
	onApplied func(cfg *config.Config)

	win     *ToplevelWidget
	widgets map[string]*TextWidget // keyed by field id
}

// NewConfigPanel creates the preferences view bound to cfg. onApplied runs
// after a successful apply.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger, onApplied func(cfg *config.Config)) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, onApplied: onApplied, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) OpenOrFocus() {
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	win := App.Toplevel()
	win.WmTitle("Preferences")
	v.win = win
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.close)

	c := v.cfg
	row := 0
	makeRow := func(id, label, value string) {
		lbl := win.Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := win.Text(Height(1), Width(12))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("maxWidth", "Max Highlight Width (0-0.1)", fmt.Sprintf("%.3f", c.MaxHighlightWidth))
	makeRow("brightness", "Default Brightness (0-1)", fmt.Sprintf("%.2f", c.DefaultBrightness))
	makeRow("debounce", "Debounce ms", fmt.Sprintf("%d", c.DebounceMS))
	makeRow("workers", "Engine Workers (0 = all CPUs)", fmt.Sprintf("%d", c.EngineWorkers))
	makeRow("cache", "Result Cache Size", fmt.Sprintf("%d", c.ResultCacheSize))
	makeRow("shutdown", "Shutdown Timeout ms", fmt.Sprintf("%d", c.ShutdownTimeoutMS))
	makeRow("dark", "Dark Mode (true/false)", fmt.Sprintf("%t", c.DarkMode))
	makeRow("debug", "Debug (true/false)", fmt.Sprintf("%t", c.Debug))

	btns := win.Frame()
	Grid(btns, Row(row), Column(0), Columnspan(2), Sticky("we"), Pady("0.3m"))
	apply := btns.Button(Txt("Apply Changes"), Command(v.ApplyChanges))
	Grid(apply, Row(0), Column(0), Sticky("we"), Padx("0.2m"))
	closeBtn := btns.Button(Txt("Close [Esc]"), Command(v.close))
	Grid(closeBtn, Row(0), Column(1), Sticky("we"), Padx("0.2m"))
	Bind(win, "<Return>", Command(v.ApplyChanges))
	Bind(win, "<Escape>", Command(v.close))
}

func (v *configPanel) close() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
	v.widgets = make(map[string]*TextWidget)
}

func (v *configPanel) text(id string) (string, bool) {
	w := v.widgets[id]
	if w == nil {
		return "", false
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), "")), true
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	fields := make(map[string]string, len(v.widgets))
	for id := range v.widgets {
		if s, ok := v.text(id); ok {
			fields[id] = s
		}
	}
	cfg := applyFields(*v.cfg, fields)
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
	if v.onApplied != nil {
		v.onApplied(v.cfg)
	}
}

// applyFields parses the preference form into a copy of cfg. Unparsable
// fields keep their previous value.
func applyFields(cfg config.Config, fields map[string]string) config.Config {
	assignFloat := func(id string, dst *float64) {
		if f, ok := parseFloatField(fields[id]); ok {
			*dst = f
		}
	}
	assignInt := func(id string, dst *int) {
		if i, ok := parseIntField(fields[id]); ok {
			*dst = i
		}
	}
	assignFloat("maxWidth", &cfg.MaxHighlightWidth)
	assignFloat("brightness", &cfg.DefaultBrightness)
	assignInt("debounce", &cfg.DebounceMS)
	assignInt("workers", &cfg.EngineWorkers)
	assignInt("cache", &cfg.ResultCacheSize)
	assignInt("shutdown", &cfg.ShutdownTimeoutMS)
	if b, ok := parseBoolLoose(fields["dark"]); ok {
		cfg.DarkMode = b
	}
	if b, ok := parseBoolLoose(fields["debug"]); ok {
		cfg.Debug = b
	}
	_ = cfg.Validate()
	return cfg
}

// parsing helpers (unexported)
func parseFloatField(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}
func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
