package histogram

import (
	"errors"
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
)

// SVGOptions configures WriteSVG. Zero values select the defaults used by the
// on-screen chart.
type SVGOptions struct {
	Width  int
	Height int
	Margin int
	Title  string
}

var seriesFill = [3]string{
	"fill:rgb(255,0,0);fill-opacity:0.5;stroke:rgb(255,0,0);stroke-opacity:0.1",
	"fill:rgb(0,255,0);fill-opacity:0.5;stroke:rgb(0,255,0);stroke-opacity:0.1",
	"fill:rgb(0,0,255);fill-opacity:0.5;stroke:rgb(0,0,255);stroke-opacity:0.1",
}

// WriteSVG renders h as a bar chart: three translucent series normalized to
// the global peak, axis labels 0 and 255 and an R/G/B legend.
func WriteSVG(w io.Writer, h *Histogram, opts SVGOptions) error {
	if w == nil || h == nil {
		return errors.New("histogram: nil writer or histogram")
	}
	if opts.Width <= 0 {
		opts.Width = 512
	}
	if opts.Height <= 0 {
		opts.Height = 300
	}
	if opts.Margin <= 0 {
		opts.Margin = 10
	}
	cw := &errWriter{w: w}
	canvas := svg.New(cw)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:white")
	if opts.Title != "" {
		canvas.Title(opts.Title)
	}
	top := opts.Margin + 30
	plotW := opts.Width - 2*opts.Margin
	plotH := opts.Height - top - opts.Margin - 20
	peak := h.Max(0, Bins)
	if peak > 0 && plotW > 0 && plotH > 0 {
		for c := range h {
			canvas.Gstyle(seriesFill[c])
			for i := 0; i < Bins; i++ {
				if h[c][i] == 0 {
					continue
				}
				x0 := opts.Margin + i*plotW/Bins
				x1 := opts.Margin + (i+1)*plotW/Bins
				bh := h[c][i] * plotH / peak
				if bh == 0 {
					bh = 1
				}
				canvas.Rect(x0, top+plotH-bh, max(x1-x0, 1), bh)
			}
			canvas.Gend()
		}
	}
	label := "font-family:sans-serif;font-size:11px;fill:black"
	canvas.Text(opts.Margin, opts.Height-opts.Margin, "0", label)
	canvas.Text(opts.Width-opts.Margin, opts.Height-opts.Margin, "255", label+";text-anchor:end")
	canvas.Text(opts.Margin, opts.Margin+14, "R", label)
	canvas.Text(opts.Margin+15, opts.Margin+14, "G", label)
	canvas.Text(opts.Margin+30, opts.Margin+14, "B", label)
	canvas.End()
	if cw.err != nil {
		return fmt.Errorf("histogram: write svg: %w", cw.err)
	}
	return nil
}

// errWriter remembers the first write error; svgo discards them.
type errWriter struct {
	w   io.Writer
	err error
}

func (c *errWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	if err != nil {
		c.err = err
	}
	return n, err
}
