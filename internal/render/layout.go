package render

import (
	"image"
	"math"

	"github.com/opd-ai/go-gradientpanel/internal/compositor"
)

// Placements returns the destination rectangles for drawing an image of
// size size inside bounds with the given layout. Each rectangle receives one
// full copy of the image, scaled to the rectangle. The scroll offset applies
// to the None and Tile layouts; rtl anchors the None layout at the right
// edge. Callers clip the result to bounds.
func Placements(layout compositor.ImageLayout, size image.Point, bounds image.Rectangle, offset image.Point, rtl bool) []image.Rectangle {
	if size.X <= 0 || size.Y <= 0 || bounds.Empty() {
		return nil
	}

	switch layout {
	case compositor.LayoutNone:
		origin := bounds.Min
		if rtl {
			origin.X = bounds.Max.X - size.X
		}
		r := image.Rectangle{Min: origin, Max: origin.Add(size)}
		return []image.Rectangle{r.Add(offset)}

	case compositor.LayoutTile:
		return tiles(size, bounds, offset)

	case compositor.LayoutCenter:
		origin := bounds.Min
		if d := bounds.Dx() - size.X; d > 0 {
			origin.X += d / 2
		}
		if d := bounds.Dy() - size.Y; d > 0 {
			origin.Y += d / 2
		}
		return []image.Rectangle{{Min: origin, Max: origin.Add(size)}}

	case compositor.LayoutStretch:
		return []image.Rectangle{bounds}

	case compositor.LayoutZoom:
		scale := math.Min(float64(bounds.Dx())/float64(size.X), float64(bounds.Dy())/float64(size.Y))
		w := int(math.Round(float64(size.X) * scale))
		h := int(math.Round(float64(size.Y) * scale))
		if w <= 0 || h <= 0 {
			return nil
		}
		origin := bounds.Min.Add(image.Pt((bounds.Dx()-w)/2, (bounds.Dy()-h)/2))
		return []image.Rectangle{{Min: origin, Max: origin.Add(image.Pt(w, h))}}
	}

	return nil
}

// tiles covers bounds with copies of the image starting from the bounds
// origin shifted by offset.
func tiles(size image.Point, bounds image.Rectangle, offset image.Point) []image.Rectangle {
	ox := offset.X % size.X
	if ox > 0 {
		ox -= size.X
	}
	oy := offset.Y % size.Y
	if oy > 0 {
		oy -= size.Y
	}

	cols := (bounds.Dx() - ox + size.X - 1) / size.X
	rows := (bounds.Dy() - oy + size.Y - 1) / size.Y
	out := make([]image.Rectangle, 0, cols*rows)
	for y := bounds.Min.Y + oy; y < bounds.Max.Y; y += size.Y {
		for x := bounds.Min.X + ox; x < bounds.Max.X; x += size.X {
			out = append(out, image.Rect(x, y, x+size.X, y+size.Y))
		}
	}
	return out
}
