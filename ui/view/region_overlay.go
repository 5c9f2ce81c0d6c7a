package view

import (
	"fmt"
	"image"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/soocke/histoedit-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// captureDelay lets the window manager unmap the overlay before the grab.
const captureDelay = 150 * time.Millisecond

// RegionOverlay is a translucent window the user moves and resizes over the
// screen area to capture.
type RegionOverlay interface {
	OpenOrFocus()
	LastRect() *image.Rectangle
}

type regionOverlay struct {
	screen    func() (image.Rectangle, error)
	onConfirm func(r image.Rectangle)
	last      image.Rectangle
	win       *ToplevelWidget
}

// NewRegionOverlay creates the overlay manager. screen reports the screen
// bounds used to size the initial window; onConfirm receives the chosen
// rectangle once the overlay is gone.
func NewRegionOverlay(screen func() (image.Rectangle, error), onConfirm func(r image.Rectangle)) RegionOverlay {
	return &regionOverlay{screen: screen, onConfirm: onConfirm}
}

func (v *regionOverlay) OpenOrFocus() {
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	win := App.Toplevel(Borderwidth(2), Background("#008080"))
	win.WmTitle("Capture Region")
	v.win = win
	WmGeometry(win.Window, v.initialGeometry())
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-alpha", 0.4)
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.cancel)
	GridRowConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 0, Weight(0))
	GridColumnConfigure(win.Window, 1, Weight(1))
	GridColumnConfigure(win.Window, 2, Weight(0))
	edge := theme.CurrentPalette().Action
	left := win.Frame(Width(4), Background(edge))
	Grid(left, Row(0), Column(0), Sticky("ns"))
	center := win.Frame(Background("#008080"))
	Grid(center, Row(0), Column(1), Sticky("nsew"))
	right := win.Frame(Width(4), Background(edge))
	Grid(right, Row(0), Column(2), Sticky("ns"))
	controls := win.Frame()
	Grid(controls, Row(1), Column(0), Columnspan(3), Sticky("we"))
	confirm := win.Button(Txt("Capture [Enter]"), Command(v.confirm))
	Grid(confirm, In(controls), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	cancel := win.Button(Txt("Cancel [Esc]"), Command(v.cancel))
	Grid(cancel, In(controls), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Bind(win, "<Return>", Command(v.confirm))
	Bind(win, "<Escape>", Command(v.cancel))
}

// initialGeometry reuses the last region, or centers a window covering
// two thirds of the screen.
func (v *regionOverlay) initialGeometry() string {
	if !v.last.Empty() {
		return formatGeometry(v.last)
	}
	screenW, screenH := 1920, 1080
	if v.screen != nil {
		if r, err := v.screen(); err == nil && !r.Empty() {
			screenW, screenH = r.Dx(), r.Dy()
		}
	}
	initW, initH := max(screenW*2/3, 1), max(screenH*5/9, 1)
	x, y := (screenW-initW)/2, (screenH-initH)/2
	return formatGeometry(image.Rect(x, y, x+initW, y+initH))
}

func (v *regionOverlay) confirm() {
	if v.win == nil {
		return
	}
	rect, ok := parseGeometry(WmGeometry(v.win.Window))
	v.destroy()
	if !ok {
		return
	}
	v.last = rect
	if v.onConfirm != nil {
		TclAfter(captureDelay, func() { v.onConfirm(rect) })
	}
}

func (v *regionOverlay) cancel() { v.destroy() }

func (v *regionOverlay) destroy() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
}

func (v *regionOverlay) LastRect() *image.Rectangle {
	if v.last.Empty() {
		return nil
	}
	r := v.last
	return &r
}

// geomRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y"
var geomRe = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)

// parseGeometry parses a Tk geometry string and returns the corresponding rectangle.
func parseGeometry(g string) (image.Rectangle, bool) {
	g = strings.TrimSpace(g)
	m := geomRe.FindStringSubmatch(g)
	if len(m) != 5 {
		return image.Rectangle{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, _ := strconv.Atoi(m[3])
	y, _ := strconv.Atoi(m[4])
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}

func formatGeometry(r image.Rectangle) string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
}
