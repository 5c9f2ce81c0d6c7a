package view

import (
	"image"

	"github.com/soocke/histoedit-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PhotoPane shows one image in a label and replaces it on demand.
type PhotoPane interface {
	Update(img image.Image)
	Reset()
	Widget() *LabelWidget
}

type photoPane struct {
	label        *LabelWidget
	photo        *Img // current Tk photo, deleted before it is replaced
	placeholderW int
	placeholderH int
}

// NewPhotoPane creates the label inside parent showing a blank placeholder
// of w x h pixels.
func NewPhotoPane(parent *FrameWidget, row, col, w, h int) PhotoPane {
	p := &photoPane{placeholderW: w, placeholderH: h}
	p.photo = NewPhoto(Data(images.EncodePNG(p.placeholder())))
	p.label = parent.Label(Image(p.photo), Borderwidth(1), Relief("sunken"), Anchor("nw"))
	Grid(p.label, Row(row), Column(col), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	return p
}

func (p *photoPane) placeholder() image.Image {
	return image.NewRGBA(image.Rect(0, 0, p.placeholderW, p.placeholderH))
}

func (p *photoPane) Widget() *LabelWidget { return p.label }

func (p *photoPane) Update(img image.Image) {
	if p == nil || p.label == nil {
		return
	}
	if img == nil {
		p.Reset()
		return
	}
	p.swap(images.EncodePNG(img))
}

func (p *photoPane) Reset() {
	if p == nil || p.label == nil {
		return
	}
	p.swap(images.EncodePNG(p.placeholder()))
}

// swap installs a new photo and frees the old one to avoid retaining
// obsolete pixel buffers.
func (p *photoPane) swap(png []byte) {
	if p.photo != nil {
		p.photo.Delete()
	}
	p.photo = NewPhoto(Data(png))
	p.label.Configure(Image(p.photo))
}
