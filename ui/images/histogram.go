package images

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/soocke/histoedit-go/domain/highlight"
	"github.com/soocke/histoedit-go/domain/histogram"
)

// Chart layout in pixels.
const (
	ChartMarginX      = 10
	ChartMarginTop    = 30
	ChartMarginBottom = 24
)

// ChartOptions controls RenderHistogram.
type ChartOptions struct {
	Width, Height int
	Viewport      highlight.Viewport
	Selection     *highlight.Bounds // nil when nothing is selected
	Locked        bool
}

// PlotArea returns the rectangle the bins are drawn into. Pointer
// coordinates are mapped against this rectangle.
func PlotArea(width, height int) image.Rectangle {
	return image.Rect(ChartMarginX, ChartMarginTop, width-ChartMarginX, height-ChartMarginBottom)
}

var seriesColors = [3]gg.RGBA{
	{R: 1, G: 0, B: 0, A: 0.5},
	{R: 0, G: 1, B: 0, A: 0.5},
	{R: 0, G: 0, B: 1, A: 0.5},
}

var labelColors = [3]color.RGBA{
	{R: 200, A: 255},
	{G: 150, A: 255},
	{B: 220, A: 255},
}

// RenderHistogram draws the visible bin window of h. Bars are normalized to
// the tallest visible bin. A selection grays out everything outside it and
// is outlined, orange when locked.
func RenderHistogram(h *histogram.Histogram, opts ChartOptions) *image.RGBA {
	w, ht := max(opts.Width, 2*ChartMarginX+1), max(opts.Height, ChartMarginTop+ChartMarginBottom+1)
	plot := PlotArea(w, ht)
	start, visible := opts.Viewport.StartBin(), opts.Viewport.VisibleBins()
	binW := float64(plot.Dx()) / float64(visible)
	binX := func(bin int) float64 { return float64(plot.Min.X) + float64(bin-start)*binW }

	dc := gg.NewContext(w, ht)
	defer dc.Close()
	dc.ClearWithColor(gg.RGB(1, 1, 1))

	if h != nil {
		if peak := h.Max(start, start+visible); peak > 0 {
			base := float64(plot.Max.Y)
			for c := 0; c < 3; c++ {
				for i := 0; i < visible; i++ {
					n := h[c][start+i]
					if n == 0 {
						continue
					}
					bh := float64(n) / float64(peak) * float64(plot.Dy())
					dc.DrawRectangle(binX(start+i), base-bh, binW, bh)
				}
				col := seriesColors[c]
				dc.SetRGBA(col.R, col.G, col.B, col.A)
				_ = dc.Fill()
			}
		}
	}

	if sel := opts.Selection; sel != nil {
		left := clampF(binX(sel.Left), float64(plot.Min.X), float64(plot.Max.X))
		right := clampF(binX(sel.Right+1), float64(plot.Min.X), float64(plot.Max.X))
		top, dy := float64(plot.Min.Y), float64(plot.Dy())
		dc.SetRGBA(0.5, 0.5, 0.5, 0.35)
		if left > float64(plot.Min.X) {
			dc.DrawRectangle(float64(plot.Min.X), top, left-float64(plot.Min.X), dy)
		}
		if right < float64(plot.Max.X) {
			dc.DrawRectangle(right, top, float64(plot.Max.X)-right, dy)
		}
		_ = dc.Fill()
		if right > left {
			if opts.Locked {
				dc.SetRGBA(1, 0.6, 0.1, 1)
			} else {
				dc.SetRGBA(0.2, 0.4, 1, 1)
			}
			dc.SetLineWidth(1.5)
			dc.DrawRectangle(left, top, right-left, dy)
			_ = dc.Stroke()
		}
	}

	out := dc.Image()
	rgba, ok := out.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(out.Bounds())
		draw.Draw(rgba, rgba.Bounds(), out, out.Bounds().Min, draw.Src)
	}
	drawLabels(rgba, plot, start, visible, opts.Selection)
	return rgba
}

func drawLabels(dst *image.RGBA, plot image.Rectangle, start, visible int, sel *highlight.Bounds) {
	black := image.NewUniform(color.Black)
	baseline := plot.Max.Y + 16
	text(dst, black, plot.Min.X, baseline, fmt.Sprint(start))
	end := fmt.Sprint(start + visible - 1)
	text(dst, black, plot.Max.X-textWidth(end), baseline, end)
	for c, name := range []string{"R", "G", "B"} {
		text(dst, image.NewUniform(labelColors[c]), plot.Min.X+c*14, 18, name)
	}
	if sel != nil {
		s := fmt.Sprintf("%d-%d", sel.Left, sel.Right)
		text(dst, black, plot.Max.X-textWidth(s), 18, s)
	}
}

func text(dst draw.Image, src image.Image, x, y int, s string) {
	d := &font.Drawer{Dst: dst, Src: src, Face: basicfont.Face7x13, Dot: fixed.P(x, y)}
	d.DrawString(s)
}

func textWidth(s string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(s).Ceil()
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
