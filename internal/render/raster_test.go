package render

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/opd-ai/go-gradientpanel/internal/compositor"
	"github.com/opd-ai/go-gradientpanel/internal/gradient"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

func filled(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestRasterEraseTransparent(t *testing.T) {
	dst := filled(10, 10, red)
	rs := NewRasterSurface(dst)

	if err := rs.EraseTransparent(image.Rect(5, 5, 50, 50)); err != nil {
		t.Fatalf("EraseTransparent() error = %v", err)
	}
	if got := dst.RGBAAt(7, 7); got != (color.RGBA{}) {
		t.Errorf("erased pixel = %v, want transparent", got)
	}
	if got := dst.RGBAAt(2, 2); got != red {
		t.Errorf("pixel outside rect = %v, want red", got)
	}
}

func TestRasterEraseRestoresBackdrop(t *testing.T) {
	dst := filled(10, 10, red)
	backdrop := Snapshot(dst, image.Rect(0, 0, 6, 10))
	rs := NewRasterSurface(dst).WithBackdrop(backdrop)

	if err := rs.FillGradient(dst.Bounds(), gradient.New(blue, blue)); err != nil {
		t.Fatal(err)
	}
	if err := rs.EraseTransparent(dst.Bounds()); err != nil {
		t.Fatalf("EraseTransparent() error = %v", err)
	}
	if got := dst.RGBAAt(3, 3); got != red {
		t.Errorf("pixel inside backdrop = %v, want red restored", got)
	}
	if got := dst.RGBAAt(8, 3); got != (color.RGBA{}) {
		t.Errorf("pixel outside backdrop = %v, want transparent", got)
	}
}

func TestSnapshotCopiesRegion(t *testing.T) {
	src := filled(10, 10, red)
	snap := Snapshot(src, image.Rect(4, 4, 20, 20))

	if want := image.Rect(4, 4, 10, 10); snap.Bounds() != want {
		t.Errorf("Snapshot bounds = %v, want %v", snap.Bounds(), want)
	}
	src.SetRGBA(5, 5, blue)
	if got := snap.RGBAAt(5, 5); got != red {
		t.Errorf("snapshot pixel = %v, want red independent of source", got)
	}
}

func TestRasterFillGradient(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 4))
	rs := NewRasterSurface(dst)

	if err := rs.FillGradient(dst.Bounds(), gradient.New(red, blue)); err != nil {
		t.Fatalf("FillGradient() error = %v", err)
	}

	left, right := dst.RGBAAt(0, 2), dst.RGBAAt(9, 2)
	if left.R < 200 || left.B > 55 {
		t.Errorf("left column = %v, want mostly red", left)
	}
	if right.B < 200 || right.R > 55 {
		t.Errorf("right column = %v, want mostly blue", right)
	}
	if dst.RGBAAt(4, 0) != dst.RGBAAt(4, 3) {
		t.Error("gradient should be uniform within a column")
	}
}

func TestRasterDrawImageTile(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	rs := NewRasterSurface(dst)

	err := rs.DrawImage(compositor.DrawImage{
		Image:  checkerBitmap(2, false),
		Layout: compositor.LayoutTile,
		Bounds: dst.Bounds(),
		Clip:   dst.Bounds(),
	})
	if err != nil {
		t.Fatalf("DrawImage() error = %v", err)
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := uint8(0)
			if (x+y)%2 == 1 {
				want = 255
			}
			if got := dst.RGBAAt(x, y); got.R != want || got.A != 255 {
				t.Fatalf("pixel (%d,%d) = %v, want R=%d opaque", x, y, got, want)
			}
		}
	}
}

func TestRasterDrawImageStretchAndClip(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	rs := NewRasterSurface(dst)

	err := rs.DrawImage(compositor.DrawImage{
		Image:  NewBitmap(filled(1, 1, red)),
		Layout: compositor.LayoutStretch,
		Bounds: dst.Bounds(),
		Clip:   image.Rect(0, 0, 4, 8),
	})
	if err != nil {
		t.Fatalf("DrawImage() error = %v", err)
	}
	if got := dst.RGBAAt(2, 6); got != red {
		t.Errorf("stretched pixel = %v, want red", got)
	}
	if got := dst.RGBAAt(6, 6); got != (color.RGBA{}) {
		t.Errorf("pixel outside clip = %v, want untouched", got)
	}
}

type opaqueImage struct{}

func (opaqueImage) Size() image.Point     { return image.Pt(1, 1) }
func (opaqueImage) HasTransparency() bool { return false }

func TestRasterDrawImageUnsupported(t *testing.T) {
	rs := NewRasterSurface(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	err := rs.DrawImage(compositor.DrawImage{Image: opaqueImage{}, Bounds: image.Rect(0, 0, 2, 2), Clip: image.Rect(0, 0, 2, 2)})
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("DrawImage() error = %v, want ErrUnsupportedImage", err)
	}
}

func TestRasterDisposed(t *testing.T) {
	rs := NewRasterSurface(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	rs.Dispose()

	calls := map[string]error{
		"EraseTransparent": rs.EraseTransparent(image.Rect(0, 0, 1, 1)),
		"FillGradient":     rs.FillGradient(image.Rect(0, 0, 1, 1), gradient.Flat(red)),
		"DrawImage":        rs.DrawImage(compositor.DrawImage{Image: checkerBitmap(1, false)}),
		"DrawBorder":       rs.DrawBorder(image.Rect(0, 0, 4, 4), 0, 0, 0, red),
		"DrawText":         rs.DrawText("x", image.Point{}, red),
	}
	for name, err := range calls {
		if !errors.Is(err, ErrSurfaceDisposed) {
			t.Errorf("%s after Dispose = %v, want ErrSurfaceDisposed", name, err)
		}
	}
}

func TestRasterDrawBorder(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	rs := NewRasterSurface(dst)

	if err := rs.DrawBorder(dst.Bounds(), 5, 4, 10, red); err != nil {
		t.Fatalf("DrawBorder() error = %v", err)
	}

	tests := []struct {
		name  string
		pt    image.Point
		drawn bool
	}{
		{"top left of gap", image.Pt(2, 5), true},
		{"inside caption gap", image.Pt(6, 5), false},
		{"top right of gap", image.Pt(12, 5), true},
		{"left edge", image.Pt(0, 10), true},
		{"right edge inset", image.Pt(18, 10), true},
		{"last column", image.Pt(19, 10), false},
		{"bottom edge inset", image.Pt(10, 18), true},
		{"above top edge", image.Pt(10, 2), false},
		{"interior", image.Pt(10, 10), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dst.RGBAAt(tt.pt.X, tt.pt.Y) == red
			if got != tt.drawn {
				t.Errorf("pixel %v drawn = %v, want %v", tt.pt, got, tt.drawn)
			}
		})
	}
}

func TestRasterText(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 40, 20))
	rs := NewRasterSurface(dst)

	if rs.LineHeight() != 13 {
		t.Errorf("LineHeight() = %d, want 13", rs.LineHeight())
	}
	if w := rs.MeasureText("abc"); w != 21 {
		t.Errorf("MeasureText(abc) = %d, want 21", w)
	}

	if err := rs.DrawText("Hi", image.Pt(2, 2), red); err != nil {
		t.Fatalf("DrawText() error = %v", err)
	}
	inked := false
	for i := 3; i < len(dst.Pix); i += 4 {
		if dst.Pix[i] != 0 {
			inked = true
			break
		}
	}
	if !inked {
		t.Error("DrawText() left the image blank")
	}
}

func TestRasterPaintBackground(t *testing.T) {
	tests := []struct {
		name        string
		kind        compositor.ControlKind
		transparent image.Point
		filled      image.Point
	}{
		{"plain widget", compositor.KindPlain, image.Pt(-1, -1), image.Pt(0, 0)},
		{"bordered group", compositor.KindBorderedGroup, image.Pt(0, 0), image.Pt(5, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := filled(40, 40, blue)
			rs := NewRasterSurface(dst)
			state := compositor.PaintState{
				ClientBounds:   dst.Bounds(),
				Kind:           tt.kind,
				FontLineHeight: rs.LineHeight(),
			}
			if err := compositor.PaintBackground(state, gradient.Flat(red), rs, dst.Bounds()); err != nil {
				t.Fatalf("PaintBackground() error = %v", err)
			}
			if tt.transparent.X >= 0 {
				if got := dst.RGBAAt(tt.transparent.X, tt.transparent.Y); got != (color.RGBA{}) {
					t.Errorf("pixel %v = %v, want erased", tt.transparent, got)
				}
			}
			if got := dst.RGBAAt(tt.filled.X, tt.filled.Y); got != red {
				t.Errorf("pixel %v = %v, want red", tt.filled, got)
			}
		})
	}
}
