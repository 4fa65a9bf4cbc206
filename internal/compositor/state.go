// Package compositor decides how a widget background is painted. Given a
// snapshot of the widget's paint state and its gradient descriptor it
// produces the ordered erase, fill and image operations for one paint cycle
// and executes them against a host drawing surface.
package compositor

import (
	"fmt"
	"image"
)

// ImageLayout is the policy governing how a background image is positioned
// within the widget bounds.
type ImageLayout int

const (
	// LayoutNone draws the image once at the origin of the bounds.
	LayoutNone ImageLayout = iota
	// LayoutTile repeats the image to cover the bounds.
	LayoutTile
	// LayoutCenter draws the image once, centered in the bounds.
	LayoutCenter
	// LayoutStretch scales the image to the bounds.
	LayoutStretch
	// LayoutZoom scales the image to fit the bounds, keeping its aspect ratio.
	LayoutZoom
)

// String returns the configuration name of the layout.
func (l ImageLayout) String() string {
	switch l {
	case LayoutNone:
		return "none"
	case LayoutTile:
		return "tile"
	case LayoutCenter:
		return "center"
	case LayoutStretch:
		return "stretch"
	case LayoutZoom:
		return "zoom"
	default:
		return fmt.Sprintf("ImageLayout(%d)", int(l))
	}
}

// ParseImageLayout parses a layout name. The empty string selects tiling,
// the host default.
func ParseImageLayout(s string) (ImageLayout, error) {
	switch s {
	case "", "tile":
		return LayoutTile, nil
	case "none":
		return LayoutNone, nil
	case "center":
		return LayoutCenter, nil
	case "stretch":
		return LayoutStretch, nil
	case "zoom":
		return LayoutZoom, nil
	default:
		return LayoutTile, fmt.Errorf("unknown image layout: %s", s)
	}
}

// ControlKind selects the inset geometry used for a widget. The compositor
// never needs the widget's concrete type.
type ControlKind int

const (
	// KindPlain is a plain container or label.
	KindPlain ControlKind = iota
	// KindBorderedGroup is a container that reserves a border and caption notch.
	KindBorderedGroup
	// KindTopLevelWindow is a top-level window.
	KindTopLevelWindow
)

// String returns a human-readable kind name.
func (k ControlKind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindBorderedGroup:
		return "bordered-group"
	case KindTopLevelWindow:
		return "top-level-window"
	default:
		return fmt.Sprintf("ControlKind(%d)", int(k))
	}
}

// RightToLeft is the right-to-left reading setting forwarded to the image
// renderer.
type RightToLeft int

const (
	// RTLInherit takes the setting from the parent widget.
	RTLInherit RightToLeft = iota
	// RTLNo lays out left to right.
	RTLNo
	// RTLYes lays out right to left.
	RTLYes
)

// String returns a human-readable name.
func (r RightToLeft) String() string {
	switch r {
	case RTLNo:
		return "left-to-right"
	case RTLYes:
		return "right-to-left"
	default:
		return "inherit"
	}
}

// Image is an opaque background image handle supplied by the host.
type Image interface {
	// Size returns the image dimensions in device units.
	Size() image.Point
	// HasTransparency reports whether any pixel is not fully opaque.
	HasTransparency() bool
}

// PaintState is a read-only snapshot of the widget state consulted during
// one paint cycle. It is taken once per cycle and passed by value.
type PaintState struct {
	// ClientBounds is the paintable interior of the widget.
	ClientBounds image.Rectangle
	// BackgroundImage is the optional background image; nil when absent.
	BackgroundImage Image
	// ImageLayout positions BackgroundImage.
	ImageLayout ImageLayout
	// Mirrored reports right-to-left layout mirroring.
	Mirrored bool
	// HighContrast is the process-wide accessibility state.
	HighContrast bool
	// Kind selects the inset geometry.
	Kind ControlKind
	// FontLineHeight is used for the bordered-group caption notch.
	FontLineHeight int
	// AutoScroll reports that the widget scrolls and has auto-scroll enabled.
	AutoScroll bool
	// AutoScrollPosition is the current scroll position when AutoScroll is set.
	AutoScrollPosition image.Point
	// RightToLeft is forwarded to the image renderer.
	RightToLeft RightToLeft
}

// EffectiveRect returns the rectangle a gradient fill applies to after the
// control-kind inset. A bordered group fills
// (x+1, y+floor(FontLineHeight/2)+1) with size
// (w-3, h-floor(FontLineHeight/2)-3), which keeps the fill inside the border
// lines and below the caption notch. Bounds too small for the inset yield an
// empty rectangle at the bounds' origin.
func (s PaintState) EffectiveRect() image.Rectangle {
	r := s.ClientBounds
	if s.Kind != KindBorderedGroup {
		return r
	}
	notch := s.FontLineHeight / 2
	origin := image.Pt(r.Min.X+1, r.Min.Y+notch+1)
	size := image.Pt(r.Dx()-3, r.Dy()-notch-3)
	if size.X <= 0 || size.Y <= 0 {
		return image.Rectangle{Min: r.Min, Max: r.Min}
	}
	return image.Rectangle{Min: origin, Max: origin.Add(size)}
}

// scrollOffset returns the offset applied to the background image.
func (s PaintState) scrollOffset() image.Point {
	if s.AutoScroll {
		return s.AutoScrollPosition
	}
	return image.Point{}
}
