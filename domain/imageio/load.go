// Package imageio turns image files and screen captures into pixel buffers.
package imageio

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/soocke/histoedit-go/domain/pixels"
)

// ErrEmptyImage is wrapped by DecodeError when a file decodes to zero pixels.
var ErrEmptyImage = errors.New("imageio: image has no pixels")

// Extensions lists the file suffixes offered by the open dialog.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// DecodeError reports a file that could not be read or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("imageio: decode %s: %v", filepath.Base(e.Path), e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Info describes a loaded image.
type Info struct {
	Path   string
	Format string
	Bytes  int64
}

// Load decodes the file at path into a canonical RGBA buffer.
func Load(path string) (*pixels.Buffer, Info, error) {
	info := Info{Path: path}
	f, err := os.Open(path)
	if err != nil {
		return nil, info, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()
	if st, err := f.Stat(); err == nil {
		info.Bytes = st.Size()
	}
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, info, &DecodeError{Path: path, Err: err}
	}
	info.Format = format
	buf := pixels.FromImage(img)
	if buf.Empty() {
		return nil, info, &DecodeError{Path: path, Err: ErrEmptyImage}
	}
	return buf, info, nil
}

// Supported reports whether path has one of Extensions.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}
