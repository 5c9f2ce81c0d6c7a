package pixels

import (
	"image"
	"image/draw"
)

// Channel indexes into a pixel's 4 bytes. The canonical order is R, G, B, A
// (non-premultiplied, identical to image.NRGBA). Every image source is
// normalized to this layout before histogramming or compositing.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
	Alpha
)

// ColorChannels lists the channels that carry color information.
var ColorChannels = [3]Channel{Red, Green, Blue}

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Alpha:
		return "alpha"
	default:
		return "unknown"
	}
}

// BytesPerPixel is the stride of one pixel in Pix.
const BytesPerPixel = 4

// Buffer is an immutable pixel grid. Once constructed neither the buffer nor
// its Pix slice may be written to; operations that change pixels return a new
// Buffer. The zero value is an empty buffer.
type Buffer struct {
	width  int
	height int
	pix    []uint8 // len == width*height*4, row stride width*4
}

// New wraps pix as a buffer. pix must have exactly width*height*4 bytes and
// must not be modified by the caller afterwards.
func New(width, height int, pix []uint8) *Buffer {
	if width <= 0 || height <= 0 || len(pix) != width*height*BytesPerPixel {
		return &Buffer{}
	}
	return &Buffer{width: width, height: height, pix: pix}
}

// FromImage copies img into a new buffer in canonical RGBA order.
func FromImage(img image.Image) *Buffer {
	if img == nil {
		return &Buffer{}
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return &Buffer{}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], src.Pix[off:off+w*BytesPerPixel])
		}
	default:
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	}
	return &Buffer{width: w, height: h, pix: dst.Pix}
}

// Width returns the number of columns.
func (b *Buffer) Width() int {
	if b == nil {
		return 0
	}
	return b.width
}

// Height returns the number of rows.
func (b *Buffer) Height() int {
	if b == nil {
		return 0
	}
	return b.height
}

// Len returns the pixel count.
func (b *Buffer) Len() int { return b.Width() * b.Height() }

// Empty reports whether the buffer has no pixels.
func (b *Buffer) Empty() bool { return b.Len() == 0 }

// Pix exposes the backing bytes for read-only iteration.
func (b *Buffer) Pix() []uint8 {
	if b == nil {
		return nil
	}
	return b.pix
}

// At returns the value of channel c at (x, y).
func (b *Buffer) At(x, y int, c Channel) uint8 {
	return b.pix[(y*b.width+x)*BytesPerPixel+int(c)]
}

// Clone returns an independent copy of the pixel bytes.
func (b *Buffer) Clone() []uint8 {
	if b == nil || len(b.pix) == 0 {
		return nil
	}
	out := make([]uint8, len(b.pix))
	copy(out, b.pix)
	return out
}

// Equal reports whether both buffers hold identical dimensions and bytes.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.Width() != o.Width() || b.Height() != o.Height() {
		return false
	}
	bp, op := b.Pix(), o.Pix()
	for i := range bp {
		if bp[i] != op[i] {
			return false
		}
	}
	return true
}

// Image returns an image.NRGBA view sharing the buffer's bytes. Callers must
// treat it as read-only.
func (b *Buffer) Image() *image.NRGBA {
	if b.Empty() {
		return image.NewNRGBA(image.Rectangle{})
	}
	return &image.NRGBA{Pix: b.pix, Stride: b.width * BytesPerPixel, Rect: image.Rect(0, 0, b.width, b.height)}
}
