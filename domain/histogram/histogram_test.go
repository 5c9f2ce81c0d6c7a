package histogram

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math/rand"
	"strings"
	"testing"

	"github.com/soocke/histoedit-go/domain/pixels"
)

func randomBuffer(r *rand.Rand, w, h int) *pixels.Buffer {
	pix := make([]uint8, w*h*pixels.BytesPerPixel)
	r.Read(pix)
	return pixels.New(w, h, pix)
}

func TestBuild_SumEqualsPixelCount(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, size := range [][2]int{{1, 1}, {3, 7}, {64, 48}, {255, 3}} {
		buf := randomBuffer(r, size[0], size[1])
		h := Build(buf)
		for _, c := range pixels.ColorChannels {
			if got := h.Total(c); got != size[0]*size[1] {
				t.Fatalf("%dx%d channel %v: sum=%d want %d", size[0], size[1], c, got, size[0]*size[1])
			}
		}
	}
}

func TestBuild_ChannelOrder(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 40, B: 30, A: 0})
	h := Build(pixels.FromImage(img))
	if h[pixels.Red][10] != 2 {
		t.Fatalf("red bin 10 = %d, want 2", h[pixels.Red][10])
	}
	if h[pixels.Green][20] != 1 || h[pixels.Green][40] != 1 {
		t.Fatalf("green bins unexpected: 20=%d 40=%d", h[pixels.Green][20], h[pixels.Green][40])
	}
	if h[pixels.Blue][30] != 2 {
		t.Fatalf("blue bin 30 = %d, want 2", h[pixels.Blue][30])
	}
	if h[pixels.Red][255] != 0 {
		t.Fatalf("alpha leaked into red channel")
	}
}

func TestBuild_EmptyBuffer(t *testing.T) {
	h := Build(pixels.FromImage(nil))
	if !h.Empty() {
		t.Fatalf("expected all-zero histogram for empty buffer")
	}
	var nilBuf *pixels.Buffer
	h = Build(nilBuf)
	if !h.Empty() {
		t.Fatalf("expected all-zero histogram for nil buffer")
	}
}

func TestMax_Window(t *testing.T) {
	var h Histogram
	h[pixels.Red][5] = 3
	h[pixels.Blue][200] = 9
	if got := h.Max(0, 100); got != 3 {
		t.Fatalf("Max(0,100)=%d want 3", got)
	}
	if got := h.Max(-10, 1000); got != 9 {
		t.Fatalf("Max clamps bounds, got %d", got)
	}
}

func TestWriteSVG(t *testing.T) {
	var h Histogram
	h[pixels.Green][128] = 4
	var buf bytes.Buffer
	if err := WriteSVG(&buf, &h, SVGOptions{Title: "sample"}); err != nil {
		t.Fatalf("write svg: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatalf("output is not an svg document: %q", out)
	}
	if !strings.Contains(out, "rgb(0,255,0)") {
		t.Fatalf("green series missing")
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteSVG_PropagatesWriteError(t *testing.T) {
	var h Histogram
	if err := WriteSVG(failingWriter{}, &h, SVGOptions{}); err == nil {
		t.Fatalf("expected write error")
	}
}
