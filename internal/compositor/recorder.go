package compositor

import (
	"image"

	"github.com/opd-ai/go-gradientpanel/internal/gradient"
)

// Recorder is a Surface that records the operations executed against it.
// An optional Next surface receives every operation after it is recorded.
// FailAt makes the operation at that index (zero-based) return Err without
// being recorded or forwarded; it is negative when unused. Like every
// Surface it is used from one paint cycle at a time.
type Recorder struct {
	Next   Surface
	FailAt int
	Err    error

	ops []Op
}

// NewRecorder returns a recording surface that forwards to next (may be nil).
func NewRecorder(next Surface) *Recorder {
	return &Recorder{Next: next, FailAt: -1}
}

// Ops returns a copy of the recorded operations.
func (r *Recorder) Ops() []Op {
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Reset discards recorded operations.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
}

// EraseTransparent records the erase.
func (r *Recorder) EraseTransparent(rect image.Rectangle) error {
	return r.record(EraseTransparent{Rect: rect})
}

// FillGradient records the fill.
func (r *Recorder) FillGradient(rect image.Rectangle, d gradient.Descriptor) error {
	return r.record(FillGradient{Rect: rect, Descriptor: d})
}

// DrawImage records the image draw.
func (r *Recorder) DrawImage(op DrawImage) error {
	return r.record(op)
}

func (r *Recorder) record(op Op) error {
	if r.FailAt >= 0 && len(r.ops) == r.FailAt {
		return r.Err
	}
	r.ops = append(r.ops, op)
	if r.Next != nil {
		return op.Apply(r.Next)
	}
	return nil
}
