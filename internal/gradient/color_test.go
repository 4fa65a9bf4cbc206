package gradient

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    color.RGBA
		wantErr bool
	}{
		{"named", "Red", color.RGBA{R: 255, A: 255}, false},
		{"transparent", "transparent", color.RGBA{}, false},
		{"hex RGB", "#f80", color.RGBA{R: 255, G: 136, B: 0, A: 255}, false},
		{"hex RGBA", "#f808", color.RGBA{R: 255, G: 136, B: 0, A: 136}, false},
		{"hex RRGGBB", "#102030", color.RGBA{R: 16, G: 32, B: 48, A: 255}, false},
		{"hex RRGGBBAA", "#10203080", color.RGBA{R: 16, G: 32, B: 48, A: 128}, false},
		{"hex without prefix", "00ff00", color.RGBA{G: 255, A: 255}, false},
		{"rgb", "rgb(1, 2, 3)", color.RGBA{R: 1, G: 2, B: 3, A: 255}, false},
		{"rgba int alpha", "rgba(1, 2, 3, 128)", color.RGBA{R: 1, G: 2, B: 3, A: 128}, false},
		{"rgba float alpha", "RGBA(1, 2, 3, 0.5)", color.RGBA{R: 1, G: 2, B: 3, A: 128}, false},
		{"empty", "", color.RGBA{}, true},
		{"bad hex length", "#12345", color.RGBA{}, true},
		{"bad hex digit", "#12g", color.RGBA{}, true},
		{"rgb arity", "rgb(1, 2)", color.RGBA{}, true},
		{"rgb overflow", "rgb(256, 0, 0)", color.RGBA{}, true},
		{"unknown", "not-a-color", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMustParseColorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseColor should panic on invalid input")
		}
	}()
	MustParseColor("bogus")
}

func TestToHex(t *testing.T) {
	if got := ToHex(color.RGBA{R: 1, G: 2, B: 3, A: 255}); got != "#010203" {
		t.Errorf("ToHex opaque = %q", got)
	}
	if got := ToHex(color.RGBA{R: 1, G: 2, B: 3, A: 4}); got != "#01020304" {
		t.Errorf("ToHex translucent = %q", got)
	}
}

func TestLerp(t *testing.T) {
	a := color.RGBA{R: 0, A: 0}
	b := color.RGBA{R: 200, A: 200}

	if got := Lerp(a, b, 0); got != a {
		t.Errorf("Lerp(0) = %v, want %v", got, a)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Errorf("Lerp(1) = %v, want %v", got, b)
	}
	if got := Lerp(a, b, 0.5); got.R != 100 || got.A != 100 {
		t.Errorf("Lerp(0.5) = %v, want midpoint", got)
	}
	if got := Lerp(a, b, 7); got != b {
		t.Errorf("Lerp clamps above 1: got %v", got)
	}
}

func TestPremultiply(t *testing.T) {
	if got := Premultiply(color.RGBA{R: 255, G: 100, A: 255}); got != (color.RGBA{R: 255, G: 100, A: 255}) {
		t.Errorf("opaque color changed: %v", got)
	}
	got := Premultiply(color.RGBA{R: 255, G: 100, A: 0})
	if got != (color.RGBA{}) {
		t.Errorf("zero alpha = %v, want zero color", got)
	}
	got = Premultiply(color.RGBA{R: 255, A: 128})
	if got.R != 128 || got.A != 128 {
		t.Errorf("half alpha = %v, want R=128 A=128", got)
	}
}
