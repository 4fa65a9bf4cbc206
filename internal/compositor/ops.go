package compositor

import (
	"fmt"
	"image"

	"github.com/opd-ai/go-gradientpanel/internal/gradient"
)

// OpKind identifies a paint operation.
type OpKind int

const (
	// OpEraseTransparent clears a rectangle to transparent.
	OpEraseTransparent OpKind = iota
	// OpFillGradient fills a rectangle with a gradient.
	OpFillGradient
	// OpDrawImage draws the background image with a layout.
	OpDrawImage
)

// String returns the operation name.
func (k OpKind) String() string {
	switch k {
	case OpEraseTransparent:
		return "EraseTransparent"
	case OpFillGradient:
		return "FillGradient"
	case OpDrawImage:
		return "DrawImage"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// Op is one paint operation emitted by the compositor.
type Op interface {
	// Kind identifies the operation.
	Kind() OpKind
	// Apply executes the operation against s.
	Apply(s Surface) error
}

// EraseTransparent clears Rect to transparent so the parent surface shows
// through.
type EraseTransparent struct {
	Rect image.Rectangle
}

// Kind returns OpEraseTransparent.
func (EraseTransparent) Kind() OpKind { return OpEraseTransparent }

// Apply calls s.EraseTransparent.
func (o EraseTransparent) Apply(s Surface) error { return s.EraseTransparent(o.Rect) }

func (o EraseTransparent) String() string {
	return fmt.Sprintf("EraseTransparent(%v)", o.Rect)
}

// FillGradient fills Rect with Descriptor.
type FillGradient struct {
	Rect       image.Rectangle
	Descriptor gradient.Descriptor
}

// Kind returns OpFillGradient.
func (FillGradient) Kind() OpKind { return OpFillGradient }

// Apply calls s.FillGradient.
func (o FillGradient) Apply(s Surface) error { return s.FillGradient(o.Rect, o.Descriptor) }

func (o FillGradient) String() string {
	return fmt.Sprintf("FillGradient(%v, %v)", o.Rect, o.Descriptor)
}

// DrawImage hands the background image to the host image-layout renderer.
type DrawImage struct {
	Image       Image
	Layout      ImageLayout
	Bounds      image.Rectangle
	Clip        image.Rectangle
	Offset      image.Point
	RightToLeft RightToLeft
}

// Kind returns OpDrawImage.
func (DrawImage) Kind() OpKind { return OpDrawImage }

// Apply calls s.DrawImage.
func (o DrawImage) Apply(s Surface) error { return s.DrawImage(o) }

func (o DrawImage) String() string {
	return fmt.Sprintf("DrawImage(%v, bounds=%v, clip=%v, offset=%v, %v)",
		o.Layout, o.Bounds, o.Clip, o.Offset, o.RightToLeft)
}

// Surface is the host drawing surface. Implementations never retain the
// operation arguments beyond the call.
type Surface interface {
	EraseTransparent(r image.Rectangle) error
	FillGradient(r image.Rectangle, d gradient.Descriptor) error
	DrawImage(op DrawImage) error
}
