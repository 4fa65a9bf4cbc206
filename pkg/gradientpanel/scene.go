package gradientpanel

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/opd-ai/go-gradientpanel/internal/compositor"
	"github.com/opd-ai/go-gradientpanel/internal/config"
	"github.com/opd-ai/go-gradientpanel/internal/gradient"
	"github.com/opd-ai/go-gradientpanel/internal/render"
	"github.com/opd-ai/go-gradientpanel/internal/widget"
)

// WindowName is the name of the root widget standing for the top-level
// window. Widgets without a parent are placed below it.
const WindowName = "window"

// scene is one built configuration: the widget tree plus everything the
// window needs to show it.
type scene struct {
	cfg    *config.Config
	tree   *widget.Tree
	window *widget.Widget

	mode       render.BackgroundMode
	windowBG   render.WindowBackground
	background render.BackgroundRenderer
	render     render.Config
	hints      render.WindowHints
}

// buildScene turns a validated configuration into a widget tree. Images
// are loaded from disk.
func buildScene(cfg *config.Config) (*scene, error) {
	wc := cfg.Window
	mode, err := render.ParseBackgroundMode(wc.Background)
	if err != nil {
		return nil, configError(err, "window.background")
	}

	opts, err := windowOptions(wc)
	if err != nil {
		return nil, err
	}
	s := &scene{
		cfg:    cfg,
		tree:   widget.NewTree(),
		window: widget.New(WindowName, widget.KindWindow, opts),
		mode:   mode,
		render: render.Config{
			Width:  wc.Width,
			Height: wc.Height,
			Title:  wc.Title,
		},
		hints: render.WindowHints{
			SkipTaskbar: wc.SkipTaskbar,
			SkipPager:   wc.SkipPager,
			Sticky:      wc.Sticky,
			Below:       wc.Below,
		},
	}
	if err := s.tree.Add("", s.window); err != nil {
		return nil, configError(err, "window")
	}
	if desc, ok, err := wc.Gradient(); err != nil {
		return nil, configError(err, "window")
	} else if ok {
		s.window.SetGradient(desc)
	}

	border, err := config.ParseOptionalColor(wc.BorderColor)
	if err != nil {
		return nil, configError(err, "window.border_color")
	}
	s.windowBG = render.WindowBackground{
		Image:       opts.Image,
		Layout:      opts.Layout,
		Mirrored:    opts.Mirrored,
		RightToLeft: opts.RightToLeft,
		Border:      border,
	}

	for _, w := range cfg.Widgets {
		if err := s.addWidget(w); err != nil {
			return nil, err
		}
	}
	s.refreshBackground()
	return s, nil
}

func windowOptions(wc config.WindowConfig) (widget.Options, error) {
	opts := widget.Options{
		Bounds:   image.Rect(0, 0, wc.Width, wc.Height),
		Mirrored: wc.Mirrored,
	}
	var err error
	if opts.BackColor, err = config.ParseOptionalColor(wc.BackColor); err != nil {
		return opts, configError(err, "window.back_color")
	}
	if opts.Layout, err = compositor.ParseImageLayout(wc.Layout); err != nil {
		return opts, configError(err, "window.layout")
	}
	if opts.RightToLeft, err = config.ParseRightToLeft(wc.RightToLeft); err != nil {
		return opts, configError(err, "window.right_to_left")
	}
	if opts.Image, err = loadImage(wc.Image); err != nil {
		return opts, err
	}
	return opts, nil
}

func (s *scene) addWidget(wc config.WidgetConfig) error {
	field := fmt.Sprintf("widgets[%s]", wc.Name)
	kind, err := widget.ParseKind(wc.Kind)
	if err != nil {
		return configError(err, field+".kind")
	}
	opts := widget.Options{
		Bounds:     image.Rect(wc.X, wc.Y, wc.X+wc.Width, wc.Y+wc.Height),
		Text:       wc.Text,
		AutoScroll: wc.AutoScroll,
		Scroll:     image.Pt(wc.ScrollX, wc.ScrollY),
	}
	if opts.BackColor, err = config.ParseOptionalColor(wc.BackColor); err != nil {
		return configError(err, field+".back_color")
	}
	if opts.ForeColor, err = config.ParseOptionalColor(wc.ForeColor); err != nil {
		return configError(err, field+".fore_color")
	}
	if opts.Layout, err = compositor.ParseImageLayout(wc.Layout); err != nil {
		return configError(err, field+".layout")
	}
	if opts.RightToLeft, err = config.ParseRightToLeft(wc.RightToLeft); err != nil {
		return configError(err, field+".right_to_left")
	}
	if opts.Image, err = loadImage(wc.Image); err != nil {
		return err
	}

	w := widget.New(wc.Name, kind, opts)
	parent := wc.Parent
	if parent == "" {
		parent = WindowName
	}
	if err := s.tree.Add(parent, w); err != nil {
		return configError(err, field)
	}
	desc, ok, err := wc.Gradient()
	if err != nil {
		return configError(err, field)
	}
	if ok {
		w.SetGradient(desc)
	}
	return nil
}

// loadImage returns nil for an empty path so the interface stays nil.
func loadImage(path string) (compositor.Image, error) {
	if path == "" {
		return nil, nil
	}
	bmp, err := render.LoadBitmap(path)
	if err != nil {
		return nil, NewCategorizedError(err, ErrorCategoryIO, SeverityError).WithContext("image", path)
	}
	return bmp, nil
}

func configError(err error, field string) error {
	return NewCategorizedError(err, ErrorCategoryConfig, SeverityError).WithContext("field", field)
}

// refreshBackground rebuilds the window renderer from the window widget's
// current gradient.
func (s *scene) refreshBackground() {
	wc := s.cfg.Window
	desc := s.window.Gradient()
	s.background = render.NewBackgroundRenderer(s.mode, desc, s.windowBG, wc.ARGBVisual, wc.ARGBValue)
	s.render.Transparent = s.mode == render.BackgroundModeNone || wc.ARGBVisual || !desc.Opaque()
}

// paint draws the window background the same way the live window does and
// then the widget layer on top.
func (s *scene) paint(dst *image.RGBA) error {
	bounds := dst.Bounds()
	switch bg := s.background.(type) {
	case *render.GradientBackground:
		rs := render.NewRasterSurface(dst)
		defer rs.Dispose()
		state := s.window.State(rs.LineHeight())
		state.ClientBounds = bounds
		if err := compositor.PaintBackground(state, bg.Descriptor(), rs, bounds); err != nil {
			return NewCategorizedError(err, ErrorCategoryRender, SeverityError).WithContext("widget", WindowName)
		}
		if b := s.windowBG.Border; b != nil {
			if err := rs.DrawBorder(bounds, bounds.Min.Y, 0, 0, *b); err != nil {
				return NewCategorizedError(err, ErrorCategoryRender, SeverityError).WithContext("widget", WindowName)
			}
		}
	case *render.SolidBackground:
		fill(dst, bg.Color())
	}

	if err := s.tree.PaintLayer(dst); err != nil {
		return NewCategorizedError(err, ErrorCategoryRender, SeverityError)
	}
	return nil
}

func fill(dst draw.Image, c color.RGBA) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(gradient.Premultiply(c)), image.Point{}, draw.Src)
}
