package widget

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/opd-ai/go-gradientpanel/internal/accessibility"
	"github.com/opd-ai/go-gradientpanel/internal/compositor"
	"github.com/opd-ai/go-gradientpanel/internal/gradient"
)

// Kind is the widget class.
type Kind int

const (
	// KindPanel is a plain container.
	KindPanel Kind = iota
	// KindLabel is a plain widget that draws one line of text.
	KindLabel
	// KindGroup is a bordered container with a caption.
	KindGroup
	// KindWindow is a top-level window.
	KindWindow
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPanel:
		return "panel"
	case KindLabel:
		return "label"
	case KindGroup:
		return "group"
	case KindWindow:
		return "window"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses a kind name. The empty string selects a panel.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "panel":
		return KindPanel, nil
	case "label":
		return KindLabel, nil
	case "group":
		return KindGroup, nil
	case "window":
		return KindWindow, nil
	default:
		return KindPanel, fmt.Errorf("unknown widget kind: %s", s)
	}
}

// ControlKind maps the widget class to the compositor inset geometry.
func (k Kind) ControlKind() compositor.ControlKind {
	switch k {
	case KindGroup:
		return compositor.KindBorderedGroup
	case KindWindow:
		return compositor.KindTopLevelWindow
	default:
		return compositor.KindPlain
	}
}

// SystemBackColor is the back color of widgets that neither set one nor
// have an ancestor that does.
var SystemBackColor = gradient.NamedColors["control"]

// DefaultForeColor is used for borders and text when none is set.
var DefaultForeColor = color.RGBA{A: 255}

const (
	captionIndent = 6
	captionPad    = 2
	textPad       = 2
)

// Options configure a new widget.
type Options struct {
	// Bounds is relative to the parent's top-left corner.
	Bounds      image.Rectangle
	Text        string
	BackColor   *color.RGBA
	ForeColor   *color.RGBA
	Image       compositor.Image
	Layout      compositor.ImageLayout
	RightToLeft compositor.RightToLeft
	// Mirrored applies right-to-left mirroring to a top-level window.
	Mirrored   bool
	AutoScroll bool
	Scroll     image.Point
}

// Widget is a node of the widget tree with a gradient background.
type Widget struct {
	name string
	kind Kind
	opts Options

	gradient *GradientProperty

	mu        sync.RWMutex
	bounds    image.Rectangle
	text      string
	backColor *color.RGBA
	parent    *Widget
	children  []*Widget
	onChange  func()
}

// New creates a detached widget. Use Tree.Add to place it.
func New(name string, kind Kind, opts Options) *Widget {
	w := &Widget{
		name:      name,
		kind:      kind,
		opts:      opts,
		bounds:    opts.Bounds,
		text:      opts.Text,
		backColor: opts.BackColor,
	}
	w.gradient = NewGradientProperty(w.changed)
	return w
}

// Name returns the widget name.
func (w *Widget) Name() string { return w.name }

// Kind returns the widget class.
func (w *Widget) Kind() Kind { return w.kind }

// Parent returns the enclosing widget, or nil for a root.
func (w *Widget) Parent() *Widget {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.parent
}

// Children returns the child widgets in insertion order.
func (w *Widget) Children() []*Widget {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]*Widget(nil), w.children...)
}

// Bounds returns the client bounds in canvas coordinates.
func (w *Widget) Bounds() image.Rectangle {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.bounds
}

// Text returns the caption or label text.
func (w *Widget) Text() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.text
}

// SetText replaces the text and requests a redraw.
func (w *Widget) SetText(s string) {
	w.mu.Lock()
	w.text = s
	w.mu.Unlock()
	w.changed()
}

// SetBackColor sets the widget's own back color; nil inherits it again.
// Descendants without an explicit gradient follow the change.
func (w *Widget) SetBackColor(c *color.RGBA) {
	w.mu.Lock()
	w.backColor = c
	w.mu.Unlock()
	w.changed()
}

// BackColor returns the effective back color: the widget's own, else the
// nearest ancestor's, else SystemBackColor.
func (w *Widget) BackColor() color.RGBA {
	for n := w; n != nil; n = n.Parent() {
		n.mu.RLock()
		c := n.backColor
		n.mu.RUnlock()
		if c != nil {
			return *c
		}
	}
	return SystemBackColor
}

// ForeColor returns the border and text color.
func (w *Widget) ForeColor() color.RGBA {
	if w.opts.ForeColor != nil {
		return *w.opts.ForeColor
	}
	return DefaultForeColor
}

// RightToLeft resolves RTLInherit through the ancestors. A root that
// inherits lays out left to right.
func (w *Widget) RightToLeft() compositor.RightToLeft {
	for n := w; n != nil; n = n.Parent() {
		if n.opts.RightToLeft != compositor.RTLInherit {
			return n.opts.RightToLeft
		}
	}
	return compositor.RTLNo
}

// Gradient returns the background gradient. Without an explicit value it
// is a flat fill of the current back color.
func (w *Widget) Gradient() gradient.Descriptor {
	return w.gradient.Get(w.defaultGradient)
}

func (w *Widget) defaultGradient() gradient.Descriptor {
	return gradient.Flat(w.BackColor())
}

// GradientProperty exposes the property for get/set/reset/should-persist
// access.
func (w *Widget) GradientProperty() *GradientProperty {
	return w.gradient
}

// SetGradient assigns an explicit gradient and requests a redraw.
func (w *Widget) SetGradient(d gradient.Descriptor) {
	w.gradient.Set(d)
}

// ResetGradient returns to the inherited default.
func (w *Widget) ResetGradient() {
	w.gradient.Reset()
}

func (w *Widget) changed() {
	w.mu.RLock()
	fn := w.onChange
	w.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// State snapshots the widget for one compositor cycle.
func (w *Widget) State(lineHeight int) compositor.PaintState {
	return compositor.PaintState{
		ClientBounds:       w.Bounds(),
		BackgroundImage:    w.opts.Image,
		ImageLayout:        w.opts.Layout,
		Mirrored:           w.opts.Mirrored && w.kind == KindWindow,
		HighContrast:       accessibility.HighContrast(),
		Kind:               w.kind.ControlKind(),
		FontLineHeight:     lineHeight,
		AutoScroll:         w.opts.AutoScroll,
		AutoScrollPosition: w.opts.Scroll,
		RightToLeft:        w.RightToLeft(),
	}
}

// Paint runs the background compositor for the widget and then draws its
// foreground. Compositor errors are returned unchanged.
func (w *Widget) Paint(c Canvas, clip image.Rectangle) error {
	if err := compositor.PaintBackground(w.State(c.LineHeight()), w.Gradient(), c, clip); err != nil {
		return err
	}

	switch w.kind {
	case KindGroup:
		return w.paintGroup(c)
	case KindLabel:
		return w.paintLabel(c)
	}
	return nil
}

// paintGroup draws the frame with a notch for the caption.
func (w *Widget) paintGroup(c Canvas) error {
	b := w.Bounds()
	text := w.Text()
	fg := w.ForeColor()
	top := b.Min.Y + c.LineHeight()/2

	var gapStart, gapEnd int
	if text != "" {
		width := c.MeasureText(text)
		gapStart = b.Min.X + captionIndent
		if w.RightToLeft() == compositor.RTLYes {
			gapStart = b.Max.X - captionIndent - width - 2*captionPad
		}
		gapEnd = gapStart + width + 2*captionPad
	}

	if err := c.DrawBorder(b, top, gapStart, gapEnd, fg); err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	return c.DrawText(text, image.Pt(gapStart+captionPad, b.Min.Y), fg)
}

// paintLabel draws the text vertically centered, aligned to the reading
// direction.
func (w *Widget) paintLabel(c Canvas) error {
	text := w.Text()
	if text == "" {
		return nil
	}
	b := w.Bounds()
	pt := image.Pt(b.Min.X+textPad, b.Min.Y+(b.Dy()-c.LineHeight())/2)
	if w.RightToLeft() == compositor.RTLYes {
		pt.X = b.Max.X - textPad - c.MeasureText(text)
	}
	return c.DrawText(text, pt, w.ForeColor())
}
