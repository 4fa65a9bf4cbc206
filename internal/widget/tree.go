package widget

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/opd-ai/go-gradientpanel/internal/render"
)

var (
	// ErrDuplicateName is returned when a widget name is already taken.
	ErrDuplicateName = errors.New("duplicate widget name")
	// ErrUnknownParent is returned when the named parent does not exist.
	ErrUnknownParent = errors.New("unknown parent widget")
	// ErrNestedWindow is returned when a window is added below another
	// widget.
	ErrNestedWindow = errors.New("windows must be root widgets")
)

// Tree owns a set of widgets by name and paints them depth-first, parents
// before children, siblings in insertion order. Any change notification
// from a widget marks the tree dirty and calls the redraw hook.
type Tree struct {
	mu     sync.RWMutex
	byName map[string]*Widget
	roots  []*Widget

	dirty    atomic.Bool
	onRedraw atomic.Pointer[func()]
}

// NewTree returns an empty tree that needs painting.
func NewTree() *Tree {
	t := &Tree{byName: make(map[string]*Widget)}
	t.dirty.Store(true)
	return t
}

// SetRedrawHook sets the function called synchronously whenever a widget
// changes. Pass nil to remove it.
func (t *Tree) SetRedrawHook(fn func()) {
	if fn == nil {
		t.onRedraw.Store(nil)
		return
	}
	t.onRedraw.Store(&fn)
}

// Add inserts w below the widget named parent, or as a root when parent is
// empty. The widget's bounds are translated from parent-relative to canvas
// coordinates.
func (t *Tree) Add(parent string, w *Widget) error {
	if err := t.add(parent, w); err != nil {
		return err
	}
	t.Invalidate()
	return nil
}

func (t *Tree) add(parent string, w *Widget) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.byName[w.name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, w.name)
	}

	var p *Widget
	if parent != "" {
		var ok bool
		if p, ok = t.byName[parent]; !ok {
			return fmt.Errorf("%w: %s (parent of %s)", ErrUnknownParent, parent, w.name)
		}
		if w.kind == KindWindow {
			return fmt.Errorf("%w: %s", ErrNestedWindow, w.name)
		}
	}

	w.mu.Lock()
	w.parent = p
	w.onChange = t.Invalidate
	if p != nil {
		w.bounds = w.opts.Bounds.Add(p.Bounds().Min)
	}
	w.mu.Unlock()

	if p != nil {
		p.mu.Lock()
		p.children = append(p.children, w)
		p.mu.Unlock()
	} else {
		t.roots = append(t.roots, w)
	}
	t.byName[w.name] = w
	return nil
}

// Widget returns the widget with the given name.
func (t *Tree) Widget(name string) (*Widget, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	w, ok := t.byName[name]
	return w, ok
}

// Len returns the number of widgets.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byName)
}

// Walk calls fn for every widget in paint order and stops at the first
// error.
func (t *Tree) Walk(fn func(w *Widget) error) error {
	t.mu.RLock()
	roots := append([]*Widget(nil), t.roots...)
	t.mu.RUnlock()

	var visit func(w *Widget) error
	visit = func(w *Widget) error {
		if err := fn(w); err != nil {
			return err
		}
		for _, c := range w.Children() {
			if err := visit(c); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range roots {
		if err := visit(r); err != nil {
			return err
		}
	}
	return nil
}

// Invalidate marks the tree dirty and calls the redraw hook.
func (t *Tree) Invalidate() {
	t.dirty.Store(true)
	if fn := t.onRedraw.Load(); fn != nil {
		(*fn)()
	}
}

// Dirty reports whether a widget changed since the last paint.
func (t *Tree) Dirty() bool {
	return t.dirty.Load()
}

// Paint paints every widget into dst.
func (t *Tree) Paint(dst *image.RGBA) error {
	return t.paint(dst, true)
}

// PaintLayer paints every widget except top-level windows, whose
// background is drawn by the window itself. It implements render.Layer.
func (t *Tree) PaintLayer(dst *image.RGBA) error {
	return t.paint(dst, false)
}

// paint draws each widget through a raster surface restricted to the
// widget's bounds intersected with its ancestors' bounds. What is already
// painted under the widget becomes the surface's backdrop, so erasing
// shows the parent rather than clearing it.
func (t *Tree) paint(dst *image.RGBA, windows bool) error {
	t.dirty.Store(false)

	clips := make(map[*Widget]image.Rectangle)
	err := t.Walk(func(w *Widget) error {
		clip := w.Bounds().Intersect(dst.Bounds())
		if p := w.Parent(); p != nil {
			clip = clip.Intersect(clips[p])
		}
		clips[w] = clip

		if w.kind == KindWindow && !windows {
			return nil
		}
		if clip.Empty() {
			return nil
		}
		sub, ok := dst.SubImage(clip).(*image.RGBA)
		if !ok {
			return nil
		}
		rs := render.NewRasterSurface(sub).WithBackdrop(render.Snapshot(dst, clip))
		defer rs.Dispose()
		if err := w.Paint(rs, clip); err != nil {
			return fmt.Errorf("paint %s: %w", w.name, err)
		}
		return nil
	})
	if err != nil {
		t.dirty.Store(true)
	}
	return err
}
