package histogram

import (
	"github.com/soocke/histoedit-go/domain/pixels"
)

// Bins is the number of value buckets per channel.
const Bins = 256

// Histogram holds per-channel frequency counts indexed [channel][bin] with
// channels in canonical order (red, green, blue).
type Histogram [3][Bins]int

// Build counts every pixel of buf once per color channel. An empty buffer
// yields an all-zero histogram.
func Build(buf *pixels.Buffer) Histogram {
	var h Histogram
	pix := buf.Pix()
	for i := 0; i+pixels.BytesPerPixel <= len(pix); i += pixels.BytesPerPixel {
		h[pixels.Red][pix[i+int(pixels.Red)]]++
		h[pixels.Green][pix[i+int(pixels.Green)]]++
		h[pixels.Blue][pix[i+int(pixels.Blue)]]++
	}
	return h
}

// Total returns the sum of all bins of channel c.
func (h *Histogram) Total(c pixels.Channel) int {
	if c < pixels.Red || c > pixels.Blue {
		return 0
	}
	n := 0
	for _, v := range h[c] {
		n += v
	}
	return n
}

// Max returns the largest count across all color channels within bins
// [from, to). Out of range bounds are clamped.
func (h *Histogram) Max(from, to int) int {
	if from < 0 {
		from = 0
	}
	if to > Bins {
		to = Bins
	}
	m := 0
	for c := range h {
		for i := from; i < to; i++ {
			if h[c][i] > m {
				m = h[c][i]
			}
		}
	}
	return m
}

// Empty reports whether no pixel was counted.
func (h *Histogram) Empty() bool { return h.Max(0, Bins) == 0 }
