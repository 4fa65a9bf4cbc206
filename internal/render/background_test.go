package render

import (
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/opd-ai/go-gradientpanel/internal/compositor"
	"github.com/opd-ai/go-gradientpanel/internal/gradient"
)

func TestSolidBackgroundWithARGB(t *testing.T) {
	tests := []struct {
		name          string
		argbEnabled   bool
		argbValue     int
		wantStoredVal int
	}{
		{"ARGB disabled", false, 100, 100},
		{"ARGB enabled", true, 128, 128},
		{"negative value clamped to 0", true, -50, 0},
		{"value over 255 clamped", true, 500, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bg := NewSolidBackground(color.RGBA{A: 200}).WithARGB(tt.argbEnabled, tt.argbValue)
			if bg.Mode() != BackgroundModeSolid {
				t.Errorf("Mode() = %v, want BackgroundModeSolid", bg.Mode())
			}
			if bg.argb.value != tt.wantStoredVal {
				t.Errorf("argb value = %d, want %d", bg.argb.value, tt.wantStoredVal)
			}
			if bg.argb.on != tt.argbEnabled {
				t.Errorf("argb on = %v, want %v", bg.argb.on, tt.argbEnabled)
			}
		})
	}
}

func TestGradientBackgroundARGBOverridesBothColors(t *testing.T) {
	desc := gradient.New(color.RGBA{R: 255, A: 255}, color.RGBA{B: 255, A: 40})

	gb := NewGradientBackground(desc, WindowBackground{})
	if got := gb.Descriptor(); got != desc {
		t.Errorf("Descriptor() without ARGB = %v, want %v", got, desc)
	}

	gb.WithARGB(true, 90)
	got := gb.Descriptor()
	if got.Color1().A != 90 || got.Color2().A != 90 {
		t.Errorf("Descriptor() alphas = %d, %d; want 90", got.Color1().A, got.Color2().A)
	}
	if got.Color1().R != 255 || got.Color2().B != 255 {
		t.Errorf("ARGB override changed RGB channels: %v", got)
	}
}

func TestGradientBackgroundState(t *testing.T) {
	screen := ebiten.NewImage(120, 80)
	gb := NewGradientBackground(gradient.Flat(color.RGBA{A: 255}), WindowBackground{
		Layout:   compositor.LayoutZoom,
		Mirrored: true,
	})

	s := gb.State(screen)
	if s.Kind != compositor.KindTopLevelWindow {
		t.Errorf("Kind = %v, want top-level window", s.Kind)
	}
	if s.ClientBounds != screen.Bounds() {
		t.Errorf("ClientBounds = %v, want %v", s.ClientBounds, screen.Bounds())
	}
	if s.ImageLayout != compositor.LayoutZoom || !s.Mirrored {
		t.Errorf("window settings not copied: %+v", s)
	}
}

func TestBackgroundDraw(t *testing.T) {
	screen := ebiten.NewImage(64, 64)
	desc := gradient.New(color.RGBA{R: 255, A: 255}, color.RGBA{B: 255, A: 128})

	renderers := []BackgroundRenderer{
		NewSolidBackground(color.RGBA{G: 255, A: 255}),
		NewNoneBackground(),
		NewGradientBackground(desc, WindowBackground{}),
		NewGradientBackground(desc, WindowBackground{Image: checkerBitmap(8, true), Layout: compositor.LayoutTile}),
		NewGradientBackground(desc, WindowBackground{Border: &color.RGBA{A: 255}}),
	}

	for _, r := range renderers {
		if err := r.Draw(screen); err != nil {
			t.Errorf("%v Draw() error = %v", r.Mode(), err)
		}
	}
}

func TestNewBackgroundRenderer(t *testing.T) {
	desc := gradient.New(color.RGBA{R: 1, A: 255}, color.RGBA{B: 1, A: 255})
	tests := []struct {
		mode BackgroundMode
		want BackgroundMode
	}{
		{BackgroundModeSolid, BackgroundModeSolid},
		{BackgroundModeNone, BackgroundModeNone},
		{BackgroundModeGradient, BackgroundModeGradient},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			r := NewBackgroundRenderer(tt.mode, desc, WindowBackground{}, false, 255)
			if r.Mode() != tt.want {
				t.Errorf("Mode() = %v, want %v", r.Mode(), tt.want)
			}
		})
	}

	solid := NewBackgroundRenderer(BackgroundModeSolid, desc, WindowBackground{}, false, 255).(*SolidBackground)
	if solid.Color() != desc.Color1() {
		t.Errorf("solid color = %v, want color1 %v", solid.Color(), desc.Color1())
	}
}

func TestParseBackgroundMode(t *testing.T) {
	for _, m := range []BackgroundMode{BackgroundModeSolid, BackgroundModeNone, BackgroundModeGradient} {
		got, err := ParseBackgroundMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseBackgroundMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if got, _ := ParseBackgroundMode(""); got != BackgroundModeGradient {
		t.Errorf("default mode = %v, want gradient", got)
	}
	if _, err := ParseBackgroundMode("pseudo"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
