package images

import (
	"image"

	"github.com/gogpu/gg"
)

var iconBars = []float64{15, 25, 35, 45, 55, 65, 75, 85, 95, 85, 75, 65, 55, 45, 35, 25, 15}

// Icon draws the window icon: a bar histogram with a few accent bars.
func Icon(size int) image.Image {
	if size < 16 {
		size = 16
	}
	s := float64(size) / 128
	dc := gg.NewContext(size, size)
	defer dc.Close()
	dc.ClearWithColor(gg.RGB(40.0/255, 44.0/255, 52.0/255))

	const barW, gap, x0, y0 = 6, 1, 4, 100
	for i, bh := range iconBars {
		x := (x0 + float64(i)*(barW+gap)) * s
		dc.DrawRectangle(x, (y0-bh)*s, barW*s, bh*s)
		if i == 3 || i == 7 || i == 11 {
			dc.SetRGB(1, 200.0/255, 100.0/255)
		} else {
			dc.SetRGB(100.0/255, 150.0/255, 1)
		}
		_ = dc.Fill()
	}
	dc.SetRGB(80.0/255, 88.0/255, 104.0/255)
	dc.SetLineWidth(2 * s)
	dc.DrawRectangle(1, 1, float64(size)-2, float64(size)-2)
	_ = dc.Stroke()
	return dc.Image()
}
