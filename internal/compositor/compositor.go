package compositor

import (
	"image"

	"github.com/opd-ai/go-gradientpanel/internal/gradient"
)

// Plan returns the ordered paint operations for one background paint cycle.
// It is a pure function of its arguments.
//
// The sequence is built as follows:
//  1. Bordered groups erase their full client bounds and fill the inset
//     effective rectangle.
//  2. Other widgets erase their client bounds first when either gradient
//     color is render-transparent.
//  3. The background image is drawn only when present, high contrast is off
//     and the widget is not a mirrored top-level window. A tiled transparent
//     image erases the client bounds again, and any transparent image gets
//     the gradient underneath it.
//  4. Otherwise the effective rectangle is filled with the gradient.
//
// Fills are omitted entirely when both gradient colors have zero alpha or
// the effective rectangle is empty.
func Plan(state PaintState, desc gradient.Descriptor, clip image.Rectangle) []Op {
	ops := make([]Op, 0, 4)
	bounds := state.ClientBounds
	effective := state.EffectiveRect()

	fill := func() {
		if desc.Transparent() || effective.Empty() {
			return
		}
		ops = append(ops, FillGradient{Rect: effective, Descriptor: desc})
	}

	if state.Kind == KindBorderedGroup {
		ops = append(ops, EraseTransparent{Rect: bounds})
	} else if renderTransparent(desc.Color1().A, state.Kind) || renderTransparent(desc.Color2().A, state.Kind) {
		ops = append(ops, EraseTransparent{Rect: bounds})
	}

	mirrored := state.Mirrored && state.Kind == KindTopLevelWindow
	img := state.BackgroundImage
	if img == nil || state.HighContrast || mirrored {
		fill()
		return ops
	}

	transparentImage := img.HasTransparency()
	if state.ImageLayout == LayoutTile && transparentImage {
		ops = append(ops, EraseTransparent{Rect: bounds})
	}
	if transparentImage {
		fill()
	}
	ops = append(ops, DrawImage{
		Image:       img,
		Layout:      state.ImageLayout,
		Bounds:      bounds,
		Clip:        clip,
		Offset:      state.scrollOffset(),
		RightToLeft: state.RightToLeft,
	})
	return ops
}

// PaintBackground plans and executes one background paint cycle against s.
// The first surface error aborts the remaining operations and is returned
// unchanged.
func PaintBackground(state PaintState, desc gradient.Descriptor, s Surface, clip image.Rectangle) error {
	for _, op := range Plan(state, desc, clip) {
		if err := op.Apply(s); err != nil {
			return err
		}
	}
	return nil
}

// RenderTransparent reports whether the host erases before painting a color
// with alpha a on a widget of kind k. Top-level windows are never erased;
// their transparency is handled by the window system.
func RenderTransparent(a uint8, k ControlKind) bool {
	return renderTransparent(a, k)
}

func renderTransparent(a uint8, k ControlKind) bool {
	return a < 255 && k != KindTopLevelWindow
}
