package model

import (
	"github.com/google/uuid"

	"github.com/soocke/histoedit-go/domain/histogram"
	"github.com/soocke/histoedit-go/domain/imageio"
	"github.com/soocke/histoedit-go/domain/pixels"
)

// ImageModel holds the loaded source image, its histogram and the display
// zoom. The zero value means no image and is usable.
// No synchronization needed: updates occur on the UI thread.
type ImageModel struct {
	buf        *pixels.Buffer
	hist       histogram.Histogram
	info       imageio.Info
	session    string
	generation uint64
	zoom       float64
}

func NewImageModel() *ImageModel { return &ImageModel{zoom: 1} }

// SetImage replaces the source image. The histogram is rebuilt and a new
// session id is assigned; generation must come from the scheduler.
func (m *ImageModel) SetImage(buf *pixels.Buffer, info imageio.Info, generation uint64) {
	if m == nil {
		return
	}
	m.buf = buf
	m.hist = histogram.Build(buf)
	m.info = info
	m.generation = generation
	m.session = uuid.NewString()
	m.zoom = 1
}

// Clear drops the image.
func (m *ImageModel) Clear() {
	if m == nil {
		return
	}
	*m = ImageModel{zoom: 1}
}

// Loaded reports whether a non-empty image is present.
func (m *ImageModel) Loaded() bool { return m != nil && !m.buf.Empty() }

func (m *ImageModel) Buffer() *pixels.Buffer {
	if m == nil {
		return nil
	}
	return m.buf
}

// Histogram returns the histogram of the current image (all zero when none).
func (m *ImageModel) Histogram() *histogram.Histogram {
	if m == nil {
		return &histogram.Histogram{}
	}
	return &m.hist
}

func (m *ImageModel) Info() imageio.Info {
	if m == nil {
		return imageio.Info{}
	}
	return m.info
}

// Session is the id of the current image session, empty before the first load.
func (m *ImageModel) Session() string {
	if m == nil {
		return ""
	}
	return m.session
}

func (m *ImageModel) Generation() uint64 {
	if m == nil {
		return 0
	}
	return m.generation
}

// Zoom is the display zoom (1 = 100%).
func (m *ImageModel) Zoom() float64 {
	if m == nil || m.zoom <= 0 {
		return 1
	}
	return m.zoom
}

func (m *ImageModel) SetZoom(z float64) {
	if m == nil || z <= 0 {
		return
	}
	m.zoom = z
}
