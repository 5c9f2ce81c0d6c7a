package imageio

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"

	"github.com/soocke/histoedit-go/domain/pixels"
)

// CaptureScreen grabs the primary screen.
func CaptureScreen() (*pixels.Buffer, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("imageio: capture screen: %w", err)
	}
	return fromCapture(img)
}

// ScreenRect reports the bounds of the primary screen.
func ScreenRect() (image.Rectangle, error) {
	r, err := screenshot.ScreenRect()
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("imageio: screen rect: %w", err)
	}
	return r, nil
}

// CaptureRect grabs the given screen rectangle.
func CaptureRect(r image.Rectangle) (*pixels.Buffer, error) {
	if r.Empty() {
		return nil, fmt.Errorf("imageio: capture %v: %w", r, ErrEmptyImage)
	}
	img, err := screenshot.CaptureRect(r)
	if err != nil {
		return nil, fmt.Errorf("imageio: capture %v: %w", r, err)
	}
	return fromCapture(img)
}

// Screen captures are opaque; force alpha so RGBA and NRGBA agree.
func fromCapture(img *image.RGBA) (*pixels.Buffer, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("imageio: capture: %w", ErrEmptyImage)
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 3; i < len(row); i += 4 {
			row[i] = 0xFF
		}
	}
	return pixels.FromImage(img), nil
}

// Source loads images from disk and from the screen.
type Source struct{}

func (Source) Load(path string) (*pixels.Buffer, Info, error) { return Load(path) }

func (Source) Capture() (*pixels.Buffer, error) { return CaptureScreen() }

func (Source) CaptureRect(r image.Rectangle) (*pixels.Buffer, error) { return CaptureRect(r) }
