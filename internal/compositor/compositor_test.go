package compositor

import (
	"errors"
	"image"
	"image/color"
	"reflect"
	"testing"

	"github.com/opd-ai/go-gradientpanel/internal/gradient"
)

type fakeImage struct {
	size        image.Point
	transparent bool
}

func (f *fakeImage) Size() image.Point     { return f.size }
func (f *fakeImage) HasTransparency() bool { return f.transparent }

var (
	opaqueRed  = color.RGBA{R: 255, A: 255}
	opaqueBlue = color.RGBA{B: 255, A: 255}
	redBlue    = gradient.New(opaqueRed, opaqueBlue)
)

func TestPlanScenarios(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 50)
	translucent := gradient.New(color.RGBA{R: 255, A: 128}, opaqueBlue)
	tiled := &fakeImage{size: image.Pt(16, 16), transparent: true}

	tests := []struct {
		name  string
		state PaintState
		desc  gradient.Descriptor
		want  []Op
	}{
		{
			name:  "A plain opaque without image",
			state: PaintState{ClientBounds: bounds, Kind: KindPlain},
			desc:  redBlue,
			want:  []Op{FillGradient{Rect: bounds, Descriptor: redBlue}},
		},
		{
			name:  "B plain translucent color1",
			state: PaintState{ClientBounds: bounds, Kind: KindPlain},
			desc:  translucent,
			want: []Op{
				EraseTransparent{Rect: bounds},
				FillGradient{Rect: bounds, Descriptor: translucent},
			},
		},
		{
			name: "C bordered group",
			state: PaintState{
				ClientBounds:   image.Rect(0, 0, 200, 100),
				Kind:           KindBorderedGroup,
				FontLineHeight: 16,
			},
			desc: redBlue,
			want: []Op{
				EraseTransparent{Rect: image.Rect(0, 0, 200, 100)},
				FillGradient{Rect: image.Rect(1, 9, 1+197, 9+89), Descriptor: redBlue},
			},
		},
		{
			name: "D tiled transparent image",
			state: PaintState{
				ClientBounds:    bounds,
				Kind:            KindPlain,
				BackgroundImage: tiled,
				ImageLayout:     LayoutTile,
			},
			desc: redBlue,
			want: []Op{
				EraseTransparent{Rect: bounds},
				FillGradient{Rect: bounds, Descriptor: redBlue},
				DrawImage{Image: tiled, Layout: LayoutTile, Bounds: bounds, Clip: bounds, RightToLeft: RTLInherit},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Plan(tt.state, tt.desc, bounds)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Plan() =\n  %v\nwant\n  %v", got, tt.want)
			}
		})
	}
}

func TestPlanTransparentDescriptorNeverFills(t *testing.T) {
	invisible := gradient.New(color.RGBA{R: 255}, color.RGBA{G: 255})
	img := &fakeImage{size: image.Pt(4, 4), transparent: true}

	states := []PaintState{
		{ClientBounds: image.Rect(0, 0, 10, 10)},
		{ClientBounds: image.Rect(0, 0, 10, 10), Kind: KindBorderedGroup, FontLineHeight: 13},
		{ClientBounds: image.Rect(0, 0, 10, 10), Kind: KindTopLevelWindow},
		{ClientBounds: image.Rect(0, 0, 10, 10), BackgroundImage: img, ImageLayout: LayoutTile},
		{ClientBounds: image.Rect(0, 0, 10, 10), BackgroundImage: img, HighContrast: true},
	}

	for i, s := range states {
		for _, op := range Plan(s, invisible, s.ClientBounds) {
			if op.Kind() == OpFillGradient {
				t.Errorf("state %d: unexpected %v", i, op)
			}
		}
	}
}

func TestPlanBorderedGroupInset(t *testing.T) {
	heights := []int{0, 1, 7, 13, 16, 21}
	for _, h := range heights {
		bounds := image.Rect(10, 20, 210, 140)
		s := PaintState{ClientBounds: bounds, Kind: KindBorderedGroup, FontLineHeight: h}
		eff := s.EffectiveRect()

		if !eff.In(bounds) || eff == bounds {
			t.Errorf("h=%d: effective %v not strictly inside %v", h, eff, bounds)
		}
		want := image.Rect(11, 20+h/2+1, 11+197, 20+h/2+1+120-h/2-3)
		if eff != want {
			t.Errorf("h=%d: effective = %v, want %v", h, eff, want)
		}

		ops := Plan(s, redBlue, bounds)
		if len(ops) != 2 {
			t.Fatalf("h=%d: got %d ops, want 2", h, len(ops))
		}
		if ops[0] != (EraseTransparent{Rect: bounds}) {
			t.Errorf("h=%d: first op = %v, want erase of client bounds", h, ops[0])
		}
		if ops[1] != (FillGradient{Rect: eff, Descriptor: redBlue}) {
			t.Errorf("h=%d: second op = %v", h, ops[1])
		}
	}
}

func TestPlanBorderedGroupNoDoubleClear(t *testing.T) {
	translucent := gradient.New(color.RGBA{A: 10}, color.RGBA{A: 20})
	s := PaintState{ClientBounds: image.Rect(0, 0, 50, 50), Kind: KindBorderedGroup, FontLineHeight: 10}

	erases := 0
	for _, op := range Plan(s, translucent, s.ClientBounds) {
		if op.Kind() == OpEraseTransparent {
			erases++
		}
	}
	if erases != 1 {
		t.Errorf("erase count = %d, want 1", erases)
	}
}

func TestPlanBorderedGroupTooSmall(t *testing.T) {
	tests := []struct {
		name   string
		bounds image.Rectangle
	}{
		{"narrow", image.Rect(0, 0, 2, 50)},
		{"short", image.Rect(4, 4, 60, 12)},
		{"tiny", image.Rect(0, 0, 2, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := PaintState{ClientBounds: tt.bounds, Kind: KindBorderedGroup, FontLineHeight: 13}
			eff := s.EffectiveRect()
			if !eff.Empty() {
				t.Errorf("effective = %v, want empty", eff)
			}
			if eff.Min != tt.bounds.Min {
				t.Errorf("effective origin = %v, want %v", eff.Min, tt.bounds.Min)
			}

			ops := Plan(s, redBlue, tt.bounds)
			if len(ops) != 1 || ops[0] != (EraseTransparent{Rect: tt.bounds}) {
				t.Errorf("ops = %v, want only the erase", ops)
			}
		})
	}
}

func TestPlanEmptyBoundsNoFill(t *testing.T) {
	for _, b := range []image.Rectangle{image.Rect(5, 5, 5, 20), image.Rect(5, 5, 20, 5)} {
		s := PaintState{ClientBounds: b}
		if ops := Plan(s, redBlue, b); len(ops) != 0 {
			t.Errorf("bounds %v: ops = %v, want none", b, ops)
		}
	}
}

func TestPlanImageBranch(t *testing.T) {
	bounds := image.Rect(0, 0, 64, 32)
	clip := image.Rect(0, 0, 32, 32)

	tests := []struct {
		name        string
		layout      ImageLayout
		transparent bool
		wantKinds   []OpKind
	}{
		{"opaque tile", LayoutTile, false, []OpKind{OpDrawImage}},
		{"opaque stretch", LayoutStretch, false, []OpKind{OpDrawImage}},
		{"transparent center", LayoutCenter, true, []OpKind{OpFillGradient, OpDrawImage}},
		{"transparent zoom", LayoutZoom, true, []OpKind{OpFillGradient, OpDrawImage}},
		{"transparent tile", LayoutTile, true, []OpKind{OpEraseTransparent, OpFillGradient, OpDrawImage}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := &fakeImage{size: image.Pt(8, 8), transparent: tt.transparent}
			s := PaintState{ClientBounds: bounds, BackgroundImage: img, ImageLayout: tt.layout}
			ops := Plan(s, redBlue, clip)

			if got := kinds(ops); !reflect.DeepEqual(got, tt.wantKinds) {
				t.Fatalf("kinds = %v, want %v", got, tt.wantKinds)
			}
			last, ok := ops[len(ops)-1].(DrawImage)
			if !ok {
				t.Fatalf("last op = %T, want DrawImage", ops[len(ops)-1])
			}
			if last.Bounds != bounds || last.Clip != clip || last.Layout != tt.layout || last.Image != img {
				t.Errorf("DrawImage = %v", last)
			}
			if tt.transparent {
				fill := ops[len(ops)-2].(FillGradient)
				if fill.Rect != s.EffectiveRect() {
					t.Errorf("fill rect = %v, want %v", fill.Rect, s.EffectiveRect())
				}
			}
		})
	}
}

func TestPlanScrollOffsetAndRTL(t *testing.T) {
	img := &fakeImage{size: image.Pt(8, 8)}
	s := PaintState{
		ClientBounds:       image.Rect(0, 0, 40, 40),
		BackgroundImage:    img,
		ImageLayout:        LayoutNone,
		AutoScrollPosition: image.Pt(-5, -7),
		RightToLeft:        RTLYes,
	}

	op := Plan(s, redBlue, s.ClientBounds)[0].(DrawImage)
	if op.Offset != (image.Point{}) {
		t.Errorf("offset without auto-scroll = %v, want zero", op.Offset)
	}
	if op.RightToLeft != RTLYes {
		t.Errorf("RightToLeft = %v, want %v", op.RightToLeft, RTLYes)
	}

	s.AutoScroll = true
	op = Plan(s, redBlue, s.ClientBounds)[0].(DrawImage)
	if op.Offset != image.Pt(-5, -7) {
		t.Errorf("offset with auto-scroll = %v", op.Offset)
	}
}

func TestPlanFallbackBranch(t *testing.T) {
	img := &fakeImage{size: image.Pt(8, 8), transparent: true}
	bounds := image.Rect(0, 0, 30, 30)

	tests := []struct {
		name  string
		state PaintState
	}{
		{"high contrast with image", PaintState{ClientBounds: bounds, BackgroundImage: img, ImageLayout: LayoutTile, HighContrast: true}},
		{"high contrast without image", PaintState{ClientBounds: bounds, HighContrast: true}},
		{"mirrored top-level window", PaintState{ClientBounds: bounds, BackgroundImage: img, Mirrored: true, Kind: KindTopLevelWindow}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := Plan(tt.state, redBlue, bounds)
			fills := 0
			for _, op := range ops {
				switch o := op.(type) {
				case DrawImage:
					t.Errorf("unexpected %v", o)
				case FillGradient:
					fills++
					if o.Rect != tt.state.EffectiveRect() {
						t.Errorf("fill rect = %v", o.Rect)
					}
				}
			}
			if fills != 1 {
				t.Errorf("fill count = %d, want 1", fills)
			}
		})
	}
}

func TestPlanMirroredPlainWidgetKeepsImage(t *testing.T) {
	img := &fakeImage{size: image.Pt(8, 8)}
	s := PaintState{ClientBounds: image.Rect(0, 0, 20, 20), BackgroundImage: img, Mirrored: true}
	ops := Plan(s, redBlue, s.ClientBounds)
	if got := kinds(ops); !reflect.DeepEqual(got, []OpKind{OpDrawImage}) {
		t.Errorf("kinds = %v, want [DrawImage]", got)
	}
}

func TestPlanHighContrastStillPreClears(t *testing.T) {
	translucent := gradient.New(color.RGBA{R: 255, A: 100}, opaqueBlue)
	s := PaintState{ClientBounds: image.Rect(0, 0, 20, 20), HighContrast: true}
	got := kinds(Plan(s, translucent, s.ClientBounds))
	want := []OpKind{OpEraseTransparent, OpFillGradient}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}
}

func TestPlanTopLevelWindowNeverRenderTransparent(t *testing.T) {
	translucent := gradient.New(color.RGBA{R: 255, A: 100}, color.RGBA{A: 1})
	s := PaintState{ClientBounds: image.Rect(0, 0, 20, 20), Kind: KindTopLevelWindow}
	got := kinds(Plan(s, translucent, s.ClientBounds))
	if !reflect.DeepEqual(got, []OpKind{OpFillGradient}) {
		t.Errorf("kinds = %v, want [FillGradient]", got)
	}
}

func TestPlanIdempotent(t *testing.T) {
	img := &fakeImage{size: image.Pt(3, 3), transparent: true}
	s := PaintState{
		ClientBounds:    image.Rect(5, 5, 90, 60),
		BackgroundImage: img,
		ImageLayout:     LayoutTile,
		Kind:            KindBorderedGroup,
		FontLineHeight:  13,
		AutoScroll:      true,
	}
	desc := gradient.New(color.RGBA{R: 10, A: 200}, opaqueBlue)
	first := Plan(s, desc, s.ClientBounds)
	second := Plan(s, desc, s.ClientBounds)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Plan is not deterministic:\n%v\n%v", first, second)
	}
}

func TestPaintBackgroundExecutesInOrder(t *testing.T) {
	s := PaintState{ClientBounds: image.Rect(0, 0, 200, 100), Kind: KindBorderedGroup, FontLineHeight: 16}
	rec := NewRecorder(nil)

	if err := PaintBackground(s, redBlue, rec, s.ClientBounds); err != nil {
		t.Fatalf("PaintBackground() error = %v", err)
	}
	if got, want := rec.Ops(), Plan(s, redBlue, s.ClientBounds); !reflect.DeepEqual(got, want) {
		t.Errorf("executed %v, want %v", got, want)
	}
}

func TestPaintBackgroundAbortsOnSurfaceError(t *testing.T) {
	errLost := errors.New("device lost")
	img := &fakeImage{size: image.Pt(4, 4), transparent: true}
	s := PaintState{ClientBounds: image.Rect(0, 0, 10, 10), BackgroundImage: img, ImageLayout: LayoutTile}

	rec := NewRecorder(nil)
	rec.FailAt = 1
	rec.Err = errLost

	err := PaintBackground(s, redBlue, rec, s.ClientBounds)
	if err != errLost {
		t.Fatalf("error = %v, want the surface error unchanged", err)
	}
	if ops := rec.Ops(); len(ops) != 1 || ops[0].Kind() != OpEraseTransparent {
		t.Errorf("executed %v, want only the first erase", ops)
	}
}

func TestRecorderForwards(t *testing.T) {
	inner := NewRecorder(nil)
	outer := NewRecorder(inner)
	s := PaintState{ClientBounds: image.Rect(0, 0, 5, 5)}

	if err := PaintBackground(s, redBlue, outer, s.ClientBounds); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(inner.Ops(), outer.Ops()) {
		t.Errorf("forwarded ops differ: %v vs %v", inner.Ops(), outer.Ops())
	}

	outer.Reset()
	if len(outer.Ops()) != 0 {
		t.Error("Reset should discard recorded ops")
	}
}

func TestParseImageLayout(t *testing.T) {
	for _, l := range []ImageLayout{LayoutNone, LayoutTile, LayoutCenter, LayoutStretch, LayoutZoom} {
		got, err := ParseImageLayout(l.String())
		if err != nil || got != l {
			t.Errorf("ParseImageLayout(%q) = %v, %v", l.String(), got, err)
		}
	}
	if got, err := ParseImageLayout(""); err != nil || got != LayoutTile {
		t.Errorf("empty layout = %v, %v; want tile", got, err)
	}
	if _, err := ParseImageLayout("mosaic"); err == nil {
		t.Error("expected error for unknown layout")
	}
}

func kinds(ops []Op) []OpKind {
	out := make([]OpKind, len(ops))
	for i, op := range ops {
		out[i] = op.Kind()
	}
	return out
}
