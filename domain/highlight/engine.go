package highlight

import (
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/soocke/histoedit-go/domain/pixels"
)

// minRowsPerBand keeps tiny images on a single goroutine.
const minRowsPerBand = 64

// Compute builds the highlight mask and brightened composite for buf. It is
// a pure function of its inputs and never writes to buf.
//
// A pixel is masked when any enabled channel lies within b (inclusive).
// Masked pixels have each color channel moved toward 255 by brightness;
// alpha and unmasked pixels are copied unchanged.
func Compute(buf *pixels.Buffer, b Bounds, channels ChannelMask, brightness float64) Result {
	return computeWorkers(buf, b, channels, brightness, 0)
}

// ComputeJob runs Compute for job using up to workers goroutines (0 selects
// runtime.NumCPU()). The output does not depend on the worker count.
func ComputeJob(job Job, workers int) Result {
	res := computeWorkers(job.Buffer, job.Key.Bounds, job.Key.Channels, job.Key.Brightness, workers)
	res.Key = job.Key
	return res
}

func computeWorkers(buf *pixels.Buffer, b Bounds, channels ChannelMask, brightness float64, workers int) Result {
	start := time.Now()
	if buf.Empty() {
		return Result{Composite: &pixels.Buffer{}, Duration: time.Since(start)}
	}
	w, h := buf.Width(), buf.Height()
	mask := make([]bool, w*h)
	out := buf.Clone()
	if !channels.Any() {
		return Result{Mask: mask, Composite: pixels.New(w, h, out), Duration: time.Since(start)}
	}

	var inRange [3][256]bool
	for ci, c := range pixels.ColorChannels {
		if !channels.Enabled(c) {
			continue
		}
		for v := b.Left; v <= b.Right; v++ {
			inRange[ci][v] = true
		}
	}
	lift := brightenTable(brightness)

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	bands := (h + minRowsPerBand - 1) / minRowsPerBand
	if bands > workers {
		bands = workers
	}
	if bands < 1 {
		bands = 1
	}
	rowsPer := (h + bands - 1) / bands
	counts := make([]int, bands)

	var wg sync.WaitGroup
	for i := 0; i < bands; i++ {
		y0 := i * rowsPer
		y1 := min(y0+rowsPer, h)
		if y0 >= y1 {
			continue
		}
		wg.Add(1)
		go func(band, y0, y1 int) {
			defer wg.Done()
			counts[band] = maskRows(buf.Pix(), out, mask, w, y0, y1, &inRange, &lift)
		}(i, y0, y1)
	}
	wg.Wait()

	total := 0
	for _, n := range counts {
		total += n
	}
	return Result{Mask: mask, Composite: pixels.New(w, h, out), Highlighted: total, Duration: time.Since(start)}
}

// maskRows processes rows [y0,y1). Each band writes a disjoint region of
// out and mask.
func maskRows(src, out []uint8, mask []bool, w, y0, y1 int, inRange *[3][256]bool, lift *[256]uint8) int {
	n := 0
	for p := y0 * w; p < y1*w; p++ {
		i := p * pixels.BytesPerPixel
		r, g, b := src[i], src[i+1], src[i+2]
		if !inRange[0][r] && !inRange[1][g] && !inRange[2][b] {
			continue
		}
		mask[p] = true
		n++
		out[i] = lift[r]
		out[i+1] = lift[g]
		out[i+2] = lift[b]
	}
	return n
}

// brightenTable precomputes old + (255-old)*brightness for every value.
func brightenTable(brightness float64) [256]uint8 {
	brightness = clamp01(brightness)
	var t [256]uint8
	for v := 0; v < 256; v++ {
		nv := math.Round(float64(v) + float64(255-v)*brightness)
		t[v] = uint8(clampBin(nv))
	}
	return t
}
