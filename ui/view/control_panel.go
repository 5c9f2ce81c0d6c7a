package view

import (
	"fmt"
	"strconv"

	"github.com/soocke/histoedit-go/domain/pixels"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Preset values offered by the comboboxes.
var (
	ZoomPresets       = []float64{0.01, 0.1, 0.25, 0.5, 0.75, 1, 1.5, 2, 3}
	BrightnessPresets = []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1}
)

const scrollStep = 0.1

// ControlPanel holds the histogram and highlight controls below the chart.
type ControlPanel interface {
	Build(startRow int) (endRow int)
	SetHighlightOn(on bool)
	SetChannels(r, g, b bool)
	SetBrightness(v float64)
}

type controlPanel struct {
	parent     *FrameWidget
	h          *Handlers
	brightness float64

	highlightBtn *ButtonWidget
	highlightOn  bool
	channelBtns  [3]*ButtonWidget
	channelOn    [3]bool
	brightSelect *TComboboxWidget
}

// NewControlPanel creates the panel inside parent.
func NewControlPanel(parent *FrameWidget, h *Handlers, brightness float64, highlightOn bool) ControlPanel {
	return &controlPanel{parent: parent, h: h, brightness: brightness, highlightOn: highlightOn, channelOn: [3]bool{true, true, true}}
}

func (v *controlPanel) Build(startRow int) (row int) {
	row = startRow
	p := v.parent

	// Histogram zoom and scroll
	zoomRow := p.Frame()
	Grid(zoomRow, Row(row), Column(0), Sticky("we"), Pady("0.2m"))
	Grid(zoomRow.Label(Txt("Histogram")), Row(0), Column(0), Sticky("w"), Padx("0.3m"))
	for i, z := range []int{1, 2, 3} {
		z := z
		b := zoomRow.Button(Txt(fmt.Sprintf("%dx", z)), Width(3), Command(func() {
			if v.h.HistogramZoom != nil {
				v.h.HistogramZoom(z)
			}
		}))
		Grid(b, Row(0), Column(i+1), Padx("0.2m"))
	}
	left := zoomRow.Button(Txt("<"), Width(2), Command(func() { v.scroll(-scrollStep) }))
	right := zoomRow.Button(Txt(">"), Width(2), Command(func() { v.scroll(scrollStep) }))
	Grid(left, Row(0), Column(4), Padx("0.2m"))
	Grid(right, Row(0), Column(5), Padx("0.2m"))
	row++

	// Channels
	chRow := p.Frame()
	Grid(chRow, Row(row), Column(0), Sticky("we"), Pady("0.2m"))
	Grid(chRow.Label(Txt("Channels")), Row(0), Column(0), Sticky("w"), Padx("0.3m"))
	for _, c := range pixels.ColorChannels {
		c := c
		v.channelBtns[c] = chRow.Button(Txt(v.channelText(c)), Width(9), Command(func() { v.toggleChannel(c) }))
		Grid(v.channelBtns[c], Row(0), Column(int(c)+1), Padx("0.2m"))
	}
	row++

	// Brightness and highlight toggle
	hlRow := p.Frame()
	Grid(hlRow, Row(row), Column(0), Sticky("we"), Pady("0.2m"))
	Grid(hlRow.Label(Txt("Brightness")), Row(0), Column(0), Sticky("w"), Padx("0.3m"))
	labels := make([]string, len(BrightnessPresets))
	for i, b := range BrightnessPresets {
		labels[i] = fmt.Sprintf("%d%%", int(b*100+0.5))
	}
	v.brightSelect = hlRow.TCombobox(Values(labels), Width(6))
	Grid(v.brightSelect, Row(0), Column(1), Padx("0.2m"))
	v.brightSelect.Current(brightnessIndex(v.brightness))
	Bind(v.brightSelect, "<<ComboboxSelected>>", Command(func() {
		if idx, ok := comboIndex(v.brightSelect, len(BrightnessPresets)); ok && v.h.Brightness != nil {
			v.h.Brightness(BrightnessPresets[idx])
		}
	}))
	v.highlightBtn = hlRow.Button(Txt(v.highlightText()), Width(14), Command(v.toggleHighlight))
	Grid(v.highlightBtn, Row(0), Column(2), Padx("0.2m"))
	unlock := hlRow.Button(Txt("Unlock"), Command(func() { call(v.h.Unlock) }))
	Grid(unlock, Row(0), Column(3), Padx("0.2m"))
	row++
	return row
}

func (v *controlPanel) scroll(delta float64) {
	if v.h.Scroll != nil {
		v.h.Scroll(delta)
	}
}

func (v *controlPanel) toggleChannel(c pixels.Channel) {
	v.channelOn[c] = !v.channelOn[c]
	if b := v.channelBtns[c]; b != nil {
		b.Configure(Txt(v.channelText(c)))
	}
	if v.h.Channel != nil {
		v.h.Channel(c, v.channelOn[c])
	}
}

func (v *controlPanel) channelText(c pixels.Channel) string {
	mark := "off"
	if v.channelOn[c] {
		mark = "on"
	}
	return fmt.Sprintf("%s: %s", c, mark)
}

func (v *controlPanel) toggleHighlight() {
	v.SetHighlightOn(!v.highlightOn)
	if v.h.HighlightToggle != nil {
		v.h.HighlightToggle(v.highlightOn)
	}
}

func (v *controlPanel) highlightText() string {
	if v.highlightOn {
		return "Highlight: on"
	}
	return "Highlight: off"
}

func (v *controlPanel) SetHighlightOn(on bool) {
	v.highlightOn = on
	if v.highlightBtn != nil {
		v.highlightBtn.Configure(Txt(v.highlightText()))
	}
}

func (v *controlPanel) SetChannels(r, g, b bool) {
	v.channelOn = [3]bool{r, g, b}
	for c, btn := range v.channelBtns {
		if btn != nil {
			btn.Configure(Txt(v.channelText(pixels.Channel(c))))
		}
	}
}

func (v *controlPanel) SetBrightness(b float64) {
	v.brightness = b
	if v.brightSelect != nil {
		v.brightSelect.Current(brightnessIndex(b))
	}
}

// brightnessIndex is the largest preset not above b.
func brightnessIndex(b float64) int {
	idx := 0
	for i, p := range BrightnessPresets {
		if p <= b+1e-9 {
			idx = i
		}
	}
	return idx
}

// comboIndex parses the selected index of a combobox.
func comboIndex(cb *TComboboxWidget, n int) (int, bool) {
	if cb == nil {
		return 0, false
	}
	idx, err := strconv.Atoi(cb.Current(nil))
	if err != nil || idx < 0 || idx >= n {
		return 0, false
	}
	return idx, true
}
