package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/opd-ai/go-gradientpanel/internal/accessibility"
	"github.com/opd-ai/go-gradientpanel/internal/compositor"
	"github.com/opd-ai/go-gradientpanel/internal/gradient"
)

// BackgroundMode specifies how the window background is rendered.
type BackgroundMode int

const (
	// BackgroundModeSolid draws a solid background color.
	BackgroundModeSolid BackgroundMode = iota
	// BackgroundModeNone draws no background (fully transparent).
	BackgroundModeNone
	// BackgroundModeGradient draws a two-color gradient, optionally under a
	// background image.
	BackgroundModeGradient
)

// String returns the configuration name of the mode.
func (m BackgroundMode) String() string {
	switch m {
	case BackgroundModeSolid:
		return "solid"
	case BackgroundModeNone:
		return "none"
	case BackgroundModeGradient:
		return "gradient"
	default:
		return fmt.Sprintf("BackgroundMode(%d)", int(m))
	}
}

// ParseBackgroundMode parses a mode name. The empty string selects the
// gradient mode.
func ParseBackgroundMode(s string) (BackgroundMode, error) {
	switch s {
	case "", "gradient":
		return BackgroundModeGradient, nil
	case "solid":
		return BackgroundModeSolid, nil
	case "none":
		return BackgroundModeNone, nil
	default:
		return BackgroundModeGradient, fmt.Errorf("unknown background mode: %s", s)
	}
}

// BackgroundRenderer renders the top-level window background.
type BackgroundRenderer interface {
	// Draw renders the background to the screen.
	Draw(screen *ebiten.Image) error
	// Mode returns the background mode.
	Mode() BackgroundMode
}

// argb holds the ARGB visual override shared by the colored backgrounds.
type argb struct {
	value int
	on    bool
}

func (a argb) apply(c color.RGBA) color.RGBA {
	if a.on {
		c.A = uint8(a.value)
	}
	return c
}

func clampARGB(value int) int {
	if value < 0 {
		return 0
	}
	if value > 255 {
		return 255
	}
	return value
}

// SolidBackground renders a solid color background.
type SolidBackground struct {
	color color.RGBA
	argb  argb
}

// NewSolidBackground creates a new solid background renderer.
func NewSolidBackground(c color.RGBA) *SolidBackground {
	return &SolidBackground{color: c, argb: argb{value: 255}}
}

// WithARGB configures ARGB visual settings for the background.
// When enabled, value overrides the color's alpha channel.
func (sb *SolidBackground) WithARGB(enabled bool, value int) *SolidBackground {
	sb.argb = argb{value: clampARGB(value), on: enabled}
	return sb
}

// Draw fills the screen.
func (sb *SolidBackground) Draw(screen *ebiten.Image) error {
	screen.Fill(gradient.Premultiply(sb.argb.apply(sb.color)))
	return nil
}

// Mode returns BackgroundModeSolid.
func (sb *SolidBackground) Mode() BackgroundMode {
	return BackgroundModeSolid
}

// Color returns the background color.
func (sb *SolidBackground) Color() color.RGBA {
	return sb.color
}

// NoneBackground renders no background (fully transparent).
type NoneBackground struct{}

// NewNoneBackground creates a new none/transparent background renderer.
func NewNoneBackground() *NoneBackground {
	return &NoneBackground{}
}

// Draw clears the screen.
func (nb *NoneBackground) Draw(screen *ebiten.Image) error {
	screen.Clear()
	return nil
}

// Mode returns BackgroundModeNone.
func (nb *NoneBackground) Mode() BackgroundMode {
	return BackgroundModeNone
}

// WindowBackground describes the paint state of the top-level window.
type WindowBackground struct {
	Image       compositor.Image
	Layout      compositor.ImageLayout
	Mirrored    bool
	RightToLeft compositor.RightToLeft
	// Border, when non-nil, frames the window after the background.
	Border *color.RGBA
}

// GradientBackground paints the window through the background compositor
// as a top-level window.
type GradientBackground struct {
	desc   gradient.Descriptor
	window WindowBackground
	argb   argb
}

// NewGradientBackground creates a gradient background renderer.
func NewGradientBackground(desc gradient.Descriptor, window WindowBackground) *GradientBackground {
	return &GradientBackground{desc: desc, window: window, argb: argb{value: 255}}
}

// WithARGB configures ARGB visual settings. When enabled, value overrides
// the alpha of both gradient colors.
func (gb *GradientBackground) WithARGB(enabled bool, value int) *GradientBackground {
	gb.argb = argb{value: clampARGB(value), on: enabled}
	return gb
}

// Descriptor returns the descriptor actually painted, after the ARGB
// override.
func (gb *GradientBackground) Descriptor() gradient.Descriptor {
	return gradient.New(gb.argb.apply(gb.desc.Color1()), gb.argb.apply(gb.desc.Color2()))
}

// State returns the compositor snapshot for a screen of the given bounds.
func (gb *GradientBackground) State(screen *ebiten.Image) compositor.PaintState {
	return compositor.PaintState{
		ClientBounds:    screen.Bounds(),
		BackgroundImage: gb.window.Image,
		ImageLayout:     gb.window.Layout,
		Mirrored:        gb.window.Mirrored,
		HighContrast:    accessibility.HighContrast(),
		Kind:            compositor.KindTopLevelWindow,
		RightToLeft:     gb.window.RightToLeft,
	}
}

// Draw paints the window background.
func (gb *GradientBackground) Draw(screen *ebiten.Image) error {
	screen.Clear()
	es := NewEbitenSurface(screen)
	if err := compositor.PaintBackground(gb.State(screen), gb.Descriptor(), es, screen.Bounds()); err != nil {
		return err
	}
	if gb.window.Border != nil {
		return es.DrawBorder(screen.Bounds(), *gb.window.Border)
	}
	return nil
}

// Mode returns BackgroundModeGradient.
func (gb *GradientBackground) Mode() BackgroundMode {
	return BackgroundModeGradient
}

// NewBackgroundRenderer creates a BackgroundRenderer for mode. The solid
// mode paints desc.Color1(); the gradient mode paints desc under the window
// image.
func NewBackgroundRenderer(mode BackgroundMode, desc gradient.Descriptor, window WindowBackground, argbVisual bool, argbValue int) BackgroundRenderer {
	switch mode {
	case BackgroundModeNone:
		return NewNoneBackground()
	case BackgroundModeSolid:
		return NewSolidBackground(desc.Color1()).WithARGB(argbVisual, argbValue)
	default:
		return NewGradientBackground(desc, window).WithARGB(argbVisual, argbValue)
	}
}
