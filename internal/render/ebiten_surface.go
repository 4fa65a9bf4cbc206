package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/opd-ai/go-gradientpanel/internal/compositor"
	"github.com/opd-ai/go-gradientpanel/internal/gradient"
)

// whiteImage is the source texture for vertex-colored triangles.
var whiteImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img
}()

// whiteSubImage avoids sampling the texture edges.
var whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)

// EbitenSurface executes paint operations on an Ebiten image, typically the
// window screen.
type EbitenSurface struct {
	screen   *ebiten.Image
	disposed bool
}

// NewEbitenSurface returns a surface drawing into screen.
func NewEbitenSurface(screen *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{screen: screen}
}

// Dispose invalidates the surface.
func (es *EbitenSurface) Dispose() {
	es.disposed = true
}

// region returns the screen restricted to r, or nil when r is empty.
func (es *EbitenSurface) region(r image.Rectangle) *ebiten.Image {
	r = r.Intersect(es.screen.Bounds())
	if r.Empty() {
		return nil
	}
	return es.screen.SubImage(r).(*ebiten.Image)
}

// EraseTransparent clears r.
func (es *EbitenSurface) EraseTransparent(r image.Rectangle) error {
	if es.disposed {
		return ErrSurfaceDisposed
	}
	if dst := es.region(r); dst != nil {
		dst.Clear()
	}
	return nil
}

// FillGradient draws the gradient as two triangles with per-vertex colors.
func (es *EbitenSurface) FillGradient(r image.Rectangle, d gradient.Descriptor) error {
	if es.disposed {
		return ErrSurfaceDisposed
	}
	f := d.Fill(r)
	if f.Empty() || d.Transparent() {
		return nil
	}
	dst := es.region(f.Bounds)
	if dst == nil {
		return nil
	}

	x0, y0 := float32(f.Bounds.Min.X), float32(f.Bounds.Min.Y)
	x1, y1 := float32(f.Bounds.Max.X), float32(f.Bounds.Max.Y)
	vertices := []ebiten.Vertex{
		vertex(x0, y0, f.Color1),
		vertex(x1, y0, f.Color2),
		vertex(x0, y1, f.Color1),
		vertex(x1, y1, f.Color2),
	}
	indices := []uint16{0, 1, 2, 1, 3, 2}
	dst.DrawTriangles(vertices, indices, whiteSubImage, &ebiten.DrawTrianglesOptions{})
	return nil
}

func vertex(x, y float32, c color.RGBA) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   x,
		DstY:   y,
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R) / 255,
		ColorG: float32(c.G) / 255,
		ColorB: float32(c.B) / 255,
		ColorA: float32(c.A) / 255,
	}
}

// DrawImage draws the background image with the requested layout.
func (es *EbitenSurface) DrawImage(op compositor.DrawImage) error {
	if es.disposed {
		return ErrSurfaceDisposed
	}
	bm, ok := op.Image.(*Bitmap)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedImage, op.Image)
	}
	dst := es.region(op.Bounds.Intersect(op.Clip))
	if dst == nil {
		return nil
	}

	tex := bm.Ebiten()
	size := bm.Size()
	rtl := op.RightToLeft == compositor.RTLYes
	for _, r := range Placements(op.Layout, size, op.Bounds, op.Offset, rtl) {
		opts := &ebiten.DrawImageOptions{}
		if r.Size() != size {
			opts.GeoM.Scale(float64(r.Dx())/float64(size.X), float64(r.Dy())/float64(size.Y))
			opts.Filter = ebiten.FilterLinear
		}
		opts.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
		dst.DrawImage(tex, opts)
	}
	return nil
}

// DrawBorder strokes a one-pixel frame inside bounds, with the same
// geometry as RasterSurface.DrawBorder and no caption gap.
func (es *EbitenSurface) DrawBorder(bounds image.Rectangle, c color.RGBA) error {
	if es.disposed {
		return ErrSurfaceDisposed
	}
	if bounds.Dx() < 2 || bounds.Dy() < 2 {
		return nil
	}
	x0, y0 := float32(bounds.Min.X), float32(bounds.Min.Y)
	w, h := float32(bounds.Dx()-1), float32(bounds.Dy()-1)
	pc := gradient.Premultiply(c)
	vector.DrawFilledRect(es.screen, x0, y0, w, 1, pc, false)
	vector.DrawFilledRect(es.screen, x0, y0+h-1, w, 1, pc, false)
	vector.DrawFilledRect(es.screen, x0, y0, 1, h, pc, false)
	vector.DrawFilledRect(es.screen, x0+w-1, y0, 1, h, pc, false)
	return nil
}
