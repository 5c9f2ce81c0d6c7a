package imageio

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/soocke/histoedit-go/domain/pixels"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetNRGBA(2, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	return img
}

func writeFile(t *testing.T, name string, encode func(f *os.File) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := encode(f); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return path
}

func TestLoad_PNG(t *testing.T) {
	path := writeFile(t, "a.png", func(f *os.File) error { return png.Encode(f, testImage()) })
	buf, info, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if buf.Width() != 3 || buf.Height() != 2 {
		t.Fatalf("size %dx%d", buf.Width(), buf.Height())
	}
	if buf.At(0, 0, pixels.Red) != 10 || buf.At(0, 0, pixels.Blue) != 30 {
		t.Fatalf("channel order broken: %v", buf.Pix()[:4])
	}
	if info.Format != "png" || info.Bytes == 0 {
		t.Fatalf("info=%+v", info)
	}
}

func TestLoad_BMP(t *testing.T) {
	path := writeFile(t, "a.bmp", func(f *os.File) error { return bmp.Encode(f, testImage()) })
	buf, info, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if info.Format != "bmp" {
		t.Fatalf("format=%q", info.Format)
	}
	if buf.At(2, 1, pixels.Red) != 200 || buf.At(2, 1, pixels.Green) != 100 {
		t.Fatalf("pixel mismatch: %v", buf.Pix()[20:24])
	}
}

func TestLoad_Garbage(t *testing.T) {
	path := writeFile(t, "bad.png", func(f *os.File) error {
		_, err := f.Write([]byte("not an image"))
		return err
	})
	_, _, err := Load(path)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("err=%v want *DecodeError", err)
	}
	if de.Path != path {
		t.Fatalf("path=%q", de.Path)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err=%v want not-exist", err)
	}
}

func TestFromCapture_ForcesOpaque(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Pix[0] = 7
	buf, err := fromCapture(img)
	if err != nil {
		t.Fatalf("fromCapture: %v", err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if a := buf.At(x, y, pixels.Alpha); a != 255 {
				t.Fatalf("alpha at %d,%d = %d", x, y, a)
			}
		}
	}
	if buf.At(0, 0, pixels.Red) != 7 {
		t.Fatalf("red=%d want 7", buf.At(0, 0, pixels.Red))
	}
	if _, err := fromCapture(image.NewRGBA(image.Rectangle{})); !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("empty capture err=%v", err)
	}
}

func TestSupported(t *testing.T) {
	for _, p := range []string{"a.PNG", "b.jpeg", "c.webp", "d.tif"} {
		if !Supported(p) {
			t.Fatalf("%s should be supported", p)
		}
	}
	if Supported("notes.txt") {
		t.Fatalf("txt should not be supported")
	}
}
