package images

import (
	"bytes"
	"image"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
)

const (
	// MinDisplaySide is the smallest edge a zoomed image may shrink to.
	MinDisplaySide = 100
	MinZoom        = 0.01
	MaxZoom        = 3.0
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// DisplaySize returns the on-screen size of a w x h image at zoom and the
// zoom actually applied. When both sides would fall below MinDisplaySide
// the smaller side is raised to it, keeping the aspect ratio.
func DisplaySize(w, h int, zoom float64) (int, int, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0, zoom
	}
	nw := int(float64(w) * zoom)
	nh := int(float64(h) * zoom)
	if nw < MinDisplaySide && nh < MinDisplaySide {
		if nw < nh {
			nh = int(float64(h) * MinDisplaySide / float64(w))
			nw = MinDisplaySide
		} else {
			nw = int(float64(w) * MinDisplaySide / float64(h))
			nh = MinDisplaySide
		}
		zoom = float64(nw) / float64(w)
	}
	return max(nw, 1), max(nh, 1), zoom
}

// Zoom resamples src for display with a Lanczos filter and returns the
// image together with the effective zoom.
func Zoom(src image.Image, zoom float64) (image.Image, float64) {
	if src == nil {
		return nil, zoom
	}
	b := src.Bounds()
	nw, nh, eff := DisplaySize(b.Dx(), b.Dy(), zoom)
	if nw == 0 || (nw == b.Dx() && nh == b.Dy()) {
		return src, eff
	}
	return imaging.Resize(src, nw, nh, imaging.Lanczos), eff
}

// FitZoom is the zoom at which an imgW x imgH image fits entirely within a
// viewW x viewH viewport, clamped to [MinZoom, MaxZoom].
func FitZoom(imgW, imgH, viewW, viewH int) float64 {
	if imgW <= 0 || imgH <= 0 || viewW <= 0 || viewH <= 0 {
		return 1
	}
	z := math.Min(float64(viewW)/float64(imgW), float64(viewH)/float64(imgH))
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}
