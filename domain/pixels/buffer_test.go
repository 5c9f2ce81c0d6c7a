package pixels

import (
	"image"
	"image/color"
	"testing"
)

func TestFromImage_NormalizesToRGBAOrder(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	src.SetRGBA(1, 0, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	buf := FromImage(src)
	if buf.Width() != 2 || buf.Height() != 1 {
		t.Fatalf("unexpected size %dx%d", buf.Width(), buf.Height())
	}
	if r, g, b := buf.At(0, 0, Red), buf.At(0, 0, Green), buf.At(0, 0, Blue); r != 10 || g != 20 || b != 30 {
		t.Fatalf("pixel 0 got r=%d g=%d b=%d", r, g, b)
	}
	if r, b := buf.At(1, 0, Red), buf.At(1, 0, Blue); r != 200 || b != 50 {
		t.Fatalf("pixel 1 got r=%d b=%d", r, b)
	}
}

func TestFromImage_SubImageOffset(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.SetNRGBA(2, 2, color.NRGBA{R: 77, A: 255})
	sub := src.SubImage(image.Rect(2, 2, 4, 4))
	buf := FromImage(sub)
	if buf.Width() != 2 || buf.Height() != 2 {
		t.Fatalf("unexpected size %dx%d", buf.Width(), buf.Height())
	}
	if got := buf.At(0, 0, Red); got != 77 {
		t.Fatalf("expected red 77 at origin, got %d", got)
	}
}

func TestFromImage_CopiesPixels(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.Pix[0] = 5
	buf := FromImage(src)
	src.Pix[0] = 99
	if buf.At(0, 0, Red) != 5 {
		t.Fatalf("buffer aliased source pixels")
	}
}

func TestEmptyBuffers(t *testing.T) {
	if !FromImage(nil).Empty() {
		t.Fatalf("nil image should give empty buffer")
	}
	if !New(2, 2, make([]uint8, 3)).Empty() {
		t.Fatalf("short pix should give empty buffer")
	}
	var nb *Buffer
	if nb.Len() != 0 || nb.Pix() != nil {
		t.Fatalf("nil buffer should be empty")
	}
	if FromImage(image.NewRGBA(image.Rectangle{})).Len() != 0 {
		t.Fatalf("zero-sized image should give empty buffer")
	}
}
