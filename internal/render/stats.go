package render

import (
	"sync/atomic"
	"time"
)

// PaintStats records how long widget layer repaints take. It is safe for
// concurrent use.
type PaintStats struct {
	count  atomic.Int64
	failed atomic.Int64
	last   atomic.Int64
	min    atomic.Int64
	max    atomic.Int64
	total  atomic.Int64
}

// NewPaintStats returns empty statistics.
func NewPaintStats() *PaintStats {
	ps := &PaintStats{}
	ps.min.Store(int64(time.Hour))
	return ps
}

// Record adds one repaint that took d. Failed repaints are counted but do
// not affect the timings.
func (ps *PaintStats) Record(d time.Duration, err error) {
	if err != nil {
		ps.failed.Add(1)
		return
	}
	n := d.Nanoseconds()
	ps.count.Add(1)
	ps.last.Store(n)
	ps.total.Add(n)
	for {
		cur := ps.min.Load()
		if n >= cur || ps.min.CompareAndSwap(cur, n) {
			break
		}
	}
	for {
		cur := ps.max.Load()
		if n <= cur || ps.max.CompareAndSwap(cur, n) {
			break
		}
	}
}

// PaintSnapshot is a point-in-time copy of PaintStats.
type PaintSnapshot struct {
	Paints  int64
	Failed  int64
	Last    time.Duration
	Min     time.Duration
	Max     time.Duration
	Average time.Duration
}

// Snapshot returns the current statistics. Min is zero until a repaint
// succeeds.
func (ps *PaintStats) Snapshot() PaintSnapshot {
	s := PaintSnapshot{
		Paints: ps.count.Load(),
		Failed: ps.failed.Load(),
		Last:   time.Duration(ps.last.Load()),
		Max:    time.Duration(ps.max.Load()),
	}
	if s.Paints > 0 {
		s.Min = time.Duration(ps.min.Load())
		s.Average = time.Duration(ps.total.Load() / s.Paints)
	}
	return s
}

// Reset clears all statistics.
func (ps *PaintStats) Reset() {
	ps.count.Store(0)
	ps.failed.Store(0)
	ps.last.Store(0)
	ps.min.Store(int64(time.Hour))
	ps.max.Store(0)
	ps.total.Store(0)
}
