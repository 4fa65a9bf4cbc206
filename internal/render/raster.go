package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/opd-ai/go-gradientpanel/internal/compositor"
	"github.com/opd-ai/go-gradientpanel/internal/gradient"
)

// ErrSurfaceDisposed is returned by a surface used after Dispose.
var ErrSurfaceDisposed = errors.New("drawing surface disposed")

// ErrUnsupportedImage is returned when a background image does not expose
// the pixels a surface needs.
var ErrUnsupportedImage = errors.New("unsupported background image")

// pixelSource is implemented by images that can hand out their pixels.
type pixelSource interface {
	Source() image.Image
}

// RasterSurface executes paint operations on an in-memory RGBA image.
// It also draws widget foregrounds (group borders and text) with a bitmap
// font.
//
// Erasing restores the backdrop, the pixels that were under the widget
// before it painted, so a parent's surface shows through. Without a
// backdrop erased pixels become fully transparent.
type RasterSurface struct {
	dst      *image.RGBA
	backdrop *image.RGBA
	face     font.Face
	disposed bool
	mu       sync.Mutex
}

// NewRasterSurface returns a surface drawing into dst.
func NewRasterSurface(dst *image.RGBA) *RasterSurface {
	return &RasterSurface{dst: dst, face: basicfont.Face7x13}
}

// WithBackdrop sets the image EraseTransparent restores from. Pixels
// outside the backdrop's bounds erase to transparent.
func (rs *RasterSurface) WithBackdrop(backdrop *image.RGBA) *RasterSurface {
	rs.backdrop = backdrop
	return rs
}

// Snapshot copies r of src into a new image with the same bounds, for use
// as a backdrop.
func Snapshot(src *image.RGBA, r image.Rectangle) *image.RGBA {
	r = r.Intersect(src.Bounds())
	out := image.NewRGBA(r)
	draw.Draw(out, r, src, r.Min, draw.Src)
	return out
}

// Image returns the destination image.
func (rs *RasterSurface) Image() *image.RGBA {
	return rs.dst
}

// Dispose invalidates the surface. Every later call fails with
// ErrSurfaceDisposed.
func (rs *RasterSurface) Dispose() {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.disposed = true
}

func (rs *RasterSurface) check() error {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.disposed {
		return ErrSurfaceDisposed
	}
	return nil
}

// EraseTransparent replaces r with the backdrop.
func (rs *RasterSurface) EraseTransparent(r image.Rectangle) error {
	if err := rs.check(); err != nil {
		return err
	}
	r = r.Intersect(rs.dst.Bounds())
	if r.Empty() {
		return nil
	}
	draw.Draw(rs.dst, r, image.Transparent, image.Point{}, draw.Src)
	if rs.backdrop != nil {
		if br := r.Intersect(rs.backdrop.Bounds()); !br.Empty() {
			draw.Draw(rs.dst, br, rs.backdrop, br.Min, draw.Src)
		}
	}
	return nil
}

// FillGradient composites the gradient over r.
func (rs *RasterSurface) FillGradient(r image.Rectangle, d gradient.Descriptor) error {
	if err := rs.check(); err != nil {
		return err
	}
	d.Fill(r).Draw(rs.dst, rs.dst.Bounds())
	return nil
}

// DrawImage draws the background image with the requested layout, clipped
// to the operation bounds and clip rectangle. Scaled layouts are resampled
// with a Catmull-Rom filter.
func (rs *RasterSurface) DrawImage(op compositor.DrawImage) error {
	if err := rs.check(); err != nil {
		return err
	}
	ps, ok := op.Image.(pixelSource)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedImage, op.Image)
	}
	src := ps.Source()
	sr := src.Bounds()

	clip := op.Bounds.Intersect(op.Clip).Intersect(rs.dst.Bounds())
	if clip.Empty() {
		return nil
	}
	dst, ok := rs.dst.SubImage(clip).(*image.RGBA)
	if !ok {
		return nil
	}

	rtl := op.RightToLeft == compositor.RTLYes
	for _, r := range Placements(op.Layout, sr.Size(), op.Bounds, op.Offset, rtl) {
		if !r.Overlaps(clip) {
			continue
		}
		if r.Size() == sr.Size() {
			draw.Draw(dst, r, src, sr.Min, draw.Over)
			continue
		}
		draw.CatmullRom.Scale(dst, r, src, sr, draw.Over, nil)
	}
	return nil
}

// DrawBorder draws a one-pixel group border around bounds. The top edge is
// drawn at top and left open between gapStart and gapEnd for the caption.
// The right and bottom edges sit one pixel inside bounds.
func (rs *RasterSurface) DrawBorder(bounds image.Rectangle, top, gapStart, gapEnd int, c color.RGBA) error {
	if err := rs.check(); err != nil {
		return err
	}
	if bounds.Dx() < 2 || bounds.Dy() < 2 {
		return nil
	}
	right := bounds.Max.X - 2
	bottom := bounds.Max.Y - 2
	src := image.NewUniform(gradient.Premultiply(c))
	line := func(r image.Rectangle) {
		r = r.Intersect(rs.dst.Bounds())
		if !r.Empty() {
			draw.Draw(rs.dst, r, src, image.Point{}, draw.Over)
		}
	}

	line(image.Rect(bounds.Min.X, top, bounds.Min.X+1, bottom+1))
	line(image.Rect(right, top, right+1, bottom+1))
	line(image.Rect(bounds.Min.X, bottom, right+1, bottom+1))
	if gapEnd <= gapStart {
		line(image.Rect(bounds.Min.X, top, right+1, top+1))
		return nil
	}
	line(image.Rect(bounds.Min.X, top, gapStart, top+1))
	line(image.Rect(gapEnd, top, right+1, top+1))
	return nil
}

// DrawText draws s with its top-left corner at pt.
func (rs *RasterSurface) DrawText(s string, pt image.Point, c color.RGBA) error {
	if err := rs.check(); err != nil {
		return err
	}
	d := font.Drawer{
		Dst:  rs.dst,
		Src:  image.NewUniform(gradient.Premultiply(c)),
		Face: rs.face,
		Dot:  fixed.P(pt.X, pt.Y+rs.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
	return nil
}

// MeasureText returns the advance width of s.
func (rs *RasterSurface) MeasureText(s string) int {
	return font.MeasureString(rs.face, s).Ceil()
}

// LineHeight returns the font line height used for caption notches.
func (rs *RasterSurface) LineHeight() int {
	return rs.face.Metrics().Height.Ceil()
}
