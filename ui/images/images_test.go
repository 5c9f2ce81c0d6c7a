package images

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/soocke/histoedit-go/domain/highlight"
	"github.com/soocke/histoedit-go/domain/histogram"
)

func TestDisplaySize_MinimumSide(t *testing.T) {
	w, h, z := DisplaySize(50, 200, 0.25)
	// 12x50 is below the minimum on both sides; width is raised to 100.
	if w != 100 || h != 400 {
		t.Fatalf("size %dx%d want 100x400", w, h)
	}
	if z != 2 {
		t.Fatalf("effective zoom %v want 2", z)
	}
	w, h, z = DisplaySize(400, 300, 0.5)
	if w != 200 || h != 150 || z != 0.5 {
		t.Fatalf("plain zoom gave %dx%d at %v", w, h, z)
	}
}

func TestZoom_Resamples(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 200, 100))
	out, z := Zoom(src, 1.5)
	if out.Bounds().Dx() != 300 || out.Bounds().Dy() != 150 || z != 1.5 {
		t.Fatalf("zoomed to %v at %v", out.Bounds(), z)
	}
	same, _ := Zoom(src, 1)
	if same != image.Image(src) {
		t.Fatalf("zoom 1 should return the source")
	}
}

func TestFitZoom(t *testing.T) {
	cases := []struct {
		iw, ih, vw, vh int
		want           float64
	}{
		{1000, 500, 500, 500, 0.5},
		{10, 10, 1000, 1000, 3},
		{100000, 10, 100, 100, 0.01},
		{0, 10, 100, 100, 1},
	}
	for _, tc := range cases {
		if got := FitZoom(tc.iw, tc.ih, tc.vw, tc.vh); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("FitZoom(%d,%d,%d,%d)=%v want %v", tc.iw, tc.ih, tc.vw, tc.vh, got, tc.want)
		}
	}
}

func gray(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == g && g == b && r < 0xF000
}

func TestRenderHistogram_SelectionGraysOutside(t *testing.T) {
	var h histogram.Histogram
	sel := highlight.Bounds{Left: 200, Right: 220}
	img := RenderHistogram(&h, ChartOptions{Width: 276, Height: 200, Viewport: highlight.DefaultViewport, Selection: &sel})
	if img.Bounds().Dx() != 276 || img.Bounds().Dy() != 200 {
		t.Fatalf("bounds %v", img.Bounds())
	}
	plot := PlotArea(276, 200)
	mid := (plot.Min.Y + plot.Max.Y) / 2
	if c := img.At(plot.Min.X+20, mid); !gray(c) {
		t.Fatalf("outside selection should be grayed, got %v", c)
	}
	if c := img.At(plot.Min.X+210, mid); gray(c) {
		t.Fatalf("inside selection should stay white, got %v", c)
	}
	if c := img.At(img.Bounds().Dx()-2, mid); gray(c) {
		t.Fatalf("margin should stay white, got %v", c)
	}
}

func TestRenderHistogram_DrawsBars(t *testing.T) {
	var h histogram.Histogram
	for i := 0; i < histogram.Bins; i++ {
		h[0][i] = 10
	}
	img := RenderHistogram(&h, ChartOptions{Width: 276, Height: 200, Viewport: highlight.DefaultViewport})
	plot := PlotArea(276, 200)
	r, g, b, _ := img.At(plot.Min.X+100, plot.Max.Y-5).RGBA()
	if r <= g || r <= b {
		t.Fatalf("expected a red bar, got r=%d g=%d b=%d", r, g, b)
	}
}

func TestIcon(t *testing.T) {
	if b := Icon(64).Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("icon bounds %v", b)
	}
}
