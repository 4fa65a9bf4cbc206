package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// checker returns a size x size image of one-pixel cells alternating black
// and white. With transparent set the white cells are fully transparent.
func checker(size int, transparent bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := color.RGBA{A: 255}
			if (x+y)%2 == 1 {
				c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
				if transparent {
					c = color.RGBA{}
				}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func checkerBitmap(size int, transparent bool) *Bitmap {
	return NewBitmap(checker(size, transparent))
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func TestDecodeBitmap(t *testing.T) {
	tests := []struct {
		name            string
		transparent     bool
		wantTransparent bool
	}{
		{"opaque", false, false},
		{"translucent", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := encodePNG(t, checker(4, tt.transparent))
			bm, err := DecodeBitmap(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("DecodeBitmap() error = %v", err)
			}
			if bm.Size() != image.Pt(4, 4) {
				t.Errorf("Size() = %v, want (4,4)", bm.Size())
			}
			if bm.HasTransparency() != tt.wantTransparent {
				t.Errorf("HasTransparency() = %v, want %v", bm.HasTransparency(), tt.wantTransparent)
			}
		})
	}
}

func TestDecodeBitmapRejectsNonImages(t *testing.T) {
	_, err := DecodeBitmap(strings.NewReader("window = { width = 10 }"))
	if !errors.Is(err, ErrNotImage) {
		t.Errorf("DecodeBitmap(text) error = %v, want ErrNotImage", err)
	}
}

func TestLoadBitmap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bg.png")
	if err := os.WriteFile(path, encodePNG(t, checker(3, false)), 0o644); err != nil {
		t.Fatal(err)
	}

	bm, err := LoadBitmap(path)
	if err != nil {
		t.Fatalf("LoadBitmap() error = %v", err)
	}
	if bm.Size() != image.Pt(3, 3) {
		t.Errorf("Size() = %v, want (3,3)", bm.Size())
	}

	if _, err := LoadBitmap(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("LoadBitmap() on missing file should fail")
	}
}

// plainImage hides the Opaque method of the wrapped image.
type plainImage struct{ image.Image }

func TestHasTransparency(t *testing.T) {
	pal := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black, color.Transparent})
	if NewBitmap(pal).HasTransparency() {
		t.Error("all-black paletted image reported transparent")
	}
	if hasTransparency(plainImage{pal}) {
		t.Error("scan of all-black image reported transparent")
	}

	pal.SetColorIndex(1, 1, 1)
	if !NewBitmap(pal).HasTransparency() {
		t.Error("paletted image with a transparent pixel reported opaque")
	}
	if !hasTransparency(plainImage{pal}) {
		t.Error("scan missed the transparent pixel")
	}
}
