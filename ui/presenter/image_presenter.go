package presenter

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/soocke/histoedit-go/domain/histogram"
	"github.com/soocke/histoedit-go/domain/imageio"
	"github.com/soocke/histoedit-go/domain/pixels"
	"github.com/soocke/histoedit-go/ui/images"
	"github.com/soocke/histoedit-go/ui/model"
)

// ImageSource loads images. imageio.Source implements it.
type ImageSource interface {
	Load(path string) (*pixels.Buffer, imageio.Info, error)
	Capture() (*pixels.Buffer, error)
	CaptureRect(r image.Rectangle) (*pixels.Buffer, error)
}

// Invalidator starts a new cache generation for a new source image.
type Invalidator interface{ Invalidate() uint64 }

// Display is what the image presenter needs from the highlight presenter.
type Display interface {
	ImageChanged()
	Redisplay()
}

// ImageView updates UI elements owned by the image presenter.
type ImageView interface {
	SetStatus(text string)
	SetZoomLabel(text string)
	SetTitle(text string)
	ViewportSize() (w, h int)
}

// ImagePresenter owns loading, capturing, display zoom and export.
type ImagePresenter struct {
	model   *model.ImageModel
	source  ImageSource
	cache   Invalidator
	display Display
	view    ImageView
	logger  *slog.Logger

	// OnOpened is called with the path of every successfully loaded file.
	OnOpened func(path string)
	// CaptureDir receives SVG exports of screen captures. Empty means the
	// system temp directory.
	CaptureDir string
}

func NewImagePresenter(m *model.ImageModel, source ImageSource, cache Invalidator, display Display, view ImageView, logger *slog.Logger) *ImagePresenter {
	return &ImagePresenter{model: m, source: source, cache: cache, display: display, view: view, logger: logger}
}

// Open loads path. On failure the previous image stays on screen.
func (p *ImagePresenter) Open(path string) error {
	if p == nil || p.source == nil || path == "" {
		return nil
	}
	buf, info, err := p.source.Load(path)
	if err != nil {
		p.fail("load", err, "path", path)
		return err
	}
	p.install(buf, info)
	if p.OnOpened != nil {
		p.OnOpened(path)
	}
	return nil
}

// Capture replaces the image with a screen capture.
func (p *ImagePresenter) Capture() error {
	if p == nil || p.source == nil {
		return nil
	}
	buf, err := p.source.Capture()
	if err != nil {
		p.fail("capture", err)
		return err
	}
	p.install(buf, imageio.Info{Format: "screen"})
	return nil
}

// CaptureRegion replaces the image with a capture of screen rectangle r.
func (p *ImagePresenter) CaptureRegion(r image.Rectangle) error {
	if p == nil || p.source == nil {
		return nil
	}
	buf, err := p.source.CaptureRect(r)
	if err != nil {
		p.fail("capture", err, "rect", r.String())
		return err
	}
	p.install(buf, imageio.Info{Format: "screen"})
	return nil
}

// Close drops the current image and its histogram.
func (p *ImagePresenter) Close() {
	if p == nil || !p.model.Loaded() {
		return
	}
	session := p.model.Session()
	if p.cache != nil {
		p.cache.Invalidate()
	}
	p.model.Clear()
	if p.logger != nil {
		p.logger.Info("image closed", "session", session)
	}
	p.view.SetTitle("")
	p.view.SetStatus("Open an image to begin")
	p.view.SetZoomLabel("100%")
	if p.display != nil {
		p.display.ImageChanged()
	}
}

func (p *ImagePresenter) install(buf *pixels.Buffer, info imageio.Info) {
	gen := uint64(0)
	if p.cache != nil {
		gen = p.cache.Invalidate()
	}
	p.model.SetImage(buf, info, gen)
	if p.logger != nil {
		p.logger.Info("image loaded",
			"session", p.model.Session(),
			"path", info.Path,
			"format", info.Format,
			"width", buf.Width(),
			"height", buf.Height(),
			"generation", gen,
		)
	}
	p.view.SetTitle(p.name())
	p.view.SetStatus(p.describe())
	if p.display != nil {
		p.display.ImageChanged()
	}
	p.Fit()
}

func (p *ImagePresenter) fail(op string, err error, attrs ...any) {
	if p.logger != nil {
		p.logger.Error(op+" failed", append(attrs, "error", err)...)
	}
	var de *imageio.DecodeError
	if errors.As(err, &de) {
		p.view.SetStatus(fmt.Sprintf("Could not open %s: %v", filepath.Base(de.Path), de.Err))
		return
	}
	p.view.SetStatus(fmt.Sprintf("%s failed: %v", op, err))
}

func (p *ImagePresenter) name() string {
	if info := p.model.Info(); info.Path != "" {
		return filepath.Base(info.Path)
	}
	if p.model.Loaded() {
		return "Screen capture"
	}
	return ""
}

func (p *ImagePresenter) describe() string {
	buf := p.model.Buffer()
	s := fmt.Sprintf("%s: %dx%d", p.name(), buf.Width(), buf.Height())
	if n := p.model.Info().Bytes; n > 0 {
		s += ", " + humanize.Bytes(uint64(n))
	}
	return s
}

// SetZoom sets the display zoom, clamped to the supported range. Tiny
// results are raised to the minimum display size.
func (p *ImagePresenter) SetZoom(z float64) {
	if p == nil {
		return
	}
	if z < images.MinZoom {
		z = images.MinZoom
	}
	if z > images.MaxZoom {
		z = images.MaxZoom
	}
	if buf := p.model.Buffer(); !buf.Empty() {
		_, _, z = images.DisplaySize(buf.Width(), buf.Height(), z)
	}
	p.model.SetZoom(z)
	p.view.SetZoomLabel(fmt.Sprintf("%d%%", int(z*100+0.5)))
	if p.display != nil {
		p.display.Redisplay()
	}
}

// ResetZoom returns to 100%.
func (p *ImagePresenter) ResetZoom() { p.SetZoom(1) }

// Fit zooms so the whole image is visible in the viewport.
func (p *ImagePresenter) Fit() {
	if p == nil || !p.model.Loaded() {
		return
	}
	buf := p.model.Buffer()
	w, h := p.view.ViewportSize()
	p.SetZoom(images.FitZoom(buf.Width(), buf.Height(), w, h))
}

// ExportPath is where ExportSVG writes the histogram of the current image.
func (p *ImagePresenter) ExportPath() string {
	if path := p.model.Info().Path; path != "" {
		return path + ".histogram.svg"
	}
	dir := p.CaptureDir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "capture-"+p.model.Session()+".histogram.svg")
}

// ExportSVG writes the histogram of the current image as SVG.
func (p *ImagePresenter) ExportSVG() (string, error) {
	if p == nil {
		return "", nil
	}
	if !p.model.Loaded() {
		p.view.SetStatus("No image to export")
		return "", nil
	}
	path := p.ExportPath()
	f, err := os.Create(path)
	if err != nil {
		p.fail("export", err, "path", path)
		return "", err
	}
	err = histogram.WriteSVG(f, p.model.Histogram(), histogram.SVGOptions{Title: p.name()})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		p.fail("export", err, "path", path)
		return "", err
	}
	if p.logger != nil {
		p.logger.Info("histogram exported", "session", p.model.Session(), "path", path)
	}
	p.view.SetStatus("Histogram saved to " + path)
	return path, nil
}
