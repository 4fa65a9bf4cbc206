package widget

import (
	"image"
	"image/color"

	"github.com/opd-ai/go-gradientpanel/internal/compositor"
)

// Canvas is a drawing surface for whole widgets: the compositor operations
// plus the foreground primitives. *render.RasterSurface implements it.
type Canvas interface {
	compositor.Surface

	// DrawBorder draws a group frame whose top edge runs at top with a gap
	// between gapStart and gapEnd.
	DrawBorder(bounds image.Rectangle, top, gapStart, gapEnd int, c color.RGBA) error
	// DrawText draws s with its top-left corner at pt.
	DrawText(s string, pt image.Point, c color.RGBA) error
	// MeasureText returns the advance width of s.
	MeasureText(s string) int
	// LineHeight returns the font line height.
	LineHeight() int
}
