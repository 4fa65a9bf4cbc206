package gradient

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Descriptor is an immutable two-color linear fill. The zero value is a
// fully transparent gradient.
//
// Descriptor is comparable: two descriptors are equal iff both colors match.
type Descriptor struct {
	color1 color.RGBA
	color2 color.RGBA
}

// New returns a descriptor that fades from c1 to c2. Colors use straight
// (non-premultiplied) alpha.
func New(c1, c2 color.RGBA) Descriptor {
	return Descriptor{color1: c1, color2: c2}
}

// Flat returns a descriptor that paints a single color.
func Flat(c color.RGBA) Descriptor {
	return Descriptor{color1: c, color2: c}
}

// Color1 returns the start color.
func (d Descriptor) Color1() color.RGBA { return d.color1 }

// Color2 returns the end color.
func (d Descriptor) Color2() color.RGBA { return d.color2 }

// Equal reports whether both colors of d and o match.
func (d Descriptor) Equal(o Descriptor) bool {
	return d == o
}

// Transparent reports whether both colors have zero alpha. Filling with such
// a descriptor is a guaranteed no-op.
func (d Descriptor) Transparent() bool {
	return d.color1.A == 0 && d.color2.A == 0
}

// Opaque reports whether both colors are fully opaque.
func (d Descriptor) Opaque() bool {
	return d.color1.A == 255 && d.color2.A == 255
}

// String returns the descriptor as "#rrggbb->#rrggbb".
func (d Descriptor) String() string {
	return fmt.Sprintf("%s->%s", ToHex(d.color1), ToHex(d.color2))
}

// Fill returns the fill for bounds. The gradient runs horizontally from the
// left edge (color1) to the right edge (color2). Bounds with no area produce
// an empty fill.
func (d Descriptor) Fill(bounds image.Rectangle) FillSpec {
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return FillSpec{Color1: d.color1, Color2: d.color2}
	}
	return FillSpec{
		Bounds: bounds,
		Start:  image.Pt(bounds.Min.X, bounds.Min.Y+bounds.Dy()/2),
		End:    image.Pt(bounds.Max.X, bounds.Min.Y+bounds.Dy()/2),
		Color1: d.color1,
		Color2: d.color2,
	}
}

// FillSpec is a renderable linear fill over Bounds. Start and End are the
// gradient axis end points; Color1 applies at Start and Color2 at End.
type FillSpec struct {
	Bounds     image.Rectangle
	Start, End image.Point
	Color1     color.RGBA
	Color2     color.RGBA
}

// Empty reports whether the fill covers no pixels.
func (f FillSpec) Empty() bool {
	return f.Bounds.Empty()
}

// Position returns the normalized position [0, 1] of the pixel column x
// along the gradient axis, sampled at the pixel center.
func (f FillSpec) Position(x int) float64 {
	span := f.End.X - f.Start.X
	if span <= 0 {
		return 0
	}
	return (float64(x-f.Start.X) + 0.5) / float64(span)
}

// At returns the straight-alpha color of the fill at pixel (x, y). Points
// outside Bounds return the transparent color.
func (f FillSpec) At(x, y int) color.RGBA {
	if !image.Pt(x, y).In(f.Bounds) {
		return color.RGBA{}
	}
	if f.Color1 == f.Color2 {
		return f.Color1
	}
	return Lerp(f.Color1, f.Color2, f.Position(x))
}

// Draw composites the fill onto dst with source-over blending, restricted
// to clip and the destination bounds. Empty fills and fully transparent
// colors leave dst untouched.
func (f FillSpec) Draw(dst draw.Image, clip image.Rectangle) {
	r := f.Bounds.Intersect(clip).Intersect(dst.Bounds())
	if r.Empty() || (f.Color1.A == 0 && f.Color2.A == 0) {
		return
	}
	if f.Color1 == f.Color2 {
		draw.Draw(dst, r, image.NewUniform(Premultiply(f.Color1)), image.Point{}, draw.Over)
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		c := Premultiply(f.At(x, r.Min.Y))
		if c.A == 0 {
			continue
		}
		col := image.Rect(x, r.Min.Y, x+1, r.Max.Y)
		draw.Draw(dst, col, image.NewUniform(c), image.Point{}, draw.Over)
	}
}
