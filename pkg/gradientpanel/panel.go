package gradientpanel

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/opd-ai/go-gradientpanel/internal/accessibility"
	"github.com/opd-ai/go-gradientpanel/internal/config"
	"github.com/opd-ai/go-gradientpanel/internal/gradient"
	"github.com/opd-ai/go-gradientpanel/internal/render"
	"github.com/opd-ai/go-gradientpanel/internal/widget"
)

// Panel is a loaded scene that can be rendered offscreen or shown in a
// window.
type Panel struct {
	opts       Options
	log        Logger
	configPath string
	loader     func() (*config.Config, error)
	parser     *config.Parser
	loadMu     sync.Mutex

	mu    sync.RWMutex
	scene *scene
	game  *render.Game

	watcher *sceneWatcher
	closed  atomic.Bool
}

// New loads the scene at configPath. A nil opts uses DefaultOptions.
func New(configPath string, opts *Options) (*Panel, error) {
	p, err := newPanel(opts)
	if err != nil {
		return nil, err
	}
	p.configPath = configPath
	p.loader = func() (*config.Config, error) {
		return p.parser.ParseFile(configPath)
	}
	if err := p.load(); err != nil {
		p.parser.Close()
		return nil, err
	}
	return p, nil
}

// NewFromReader loads a scene from r. format is "lua", "yaml" or "toml".
// Relative image paths are resolved against the working directory.
func NewFromReader(r io.Reader, format string, opts *Options) (*Panel, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, NewCategorizedError(err, ErrorCategoryIO, SeverityError)
	}
	p, err := newPanel(opts)
	if err != nil {
		return nil, err
	}
	p.loader = func() (*config.Config, error) {
		return p.parser.Parse(content, config.Format(format))
	}
	if err := p.load(); err != nil {
		p.parser.Close()
		return nil, err
	}
	return p, nil
}

func newPanel(opts *Options) (*Panel, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	log := o.Logger
	if log == nil {
		log = NopLogger()
	}
	parser, err := config.NewParser()
	if err != nil {
		return nil, NewCategorizedError(err, ErrorCategoryConfig, SeverityCritical)
	}
	return &Panel{opts: o, log: log, parser: parser}, nil
}

// load parses, validates and builds a scene and installs it.
func (p *Panel) load() error {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()

	cfg, err := p.loader()
	if err != nil {
		return p.sourceError(err)
	}
	if err := cfg.Validate(); err != nil {
		return p.sourceError(err)
	}
	s, err := buildScene(cfg)
	if err != nil {
		return err
	}

	p.applyHighContrast(cfg)

	p.mu.Lock()
	p.scene = s
	if p.game != nil {
		p.game.SetScene(s.render, s.background, s.tree)
		p.game.SetWindowHints(s.hints)
	}
	p.mu.Unlock()

	p.log.Debug("scene loaded", "widgets", s.tree.Len(), "width", s.render.Width, "height", s.render.Height)
	return nil
}

func (p *Panel) sourceError(err error) error {
	ce := NewCategorizedError(err, ErrorCategoryConfig, SeverityError)
	if p.configPath != "" {
		ce.WithContext("path", p.configPath)
	}
	return ce
}

// applyHighContrast sets the process-wide state when the options or the
// scene ask for it. Otherwise the detected state is left alone.
func (p *Panel) applyHighContrast(cfg *config.Config) {
	switch {
	case p.opts.HighContrast != nil:
		accessibility.SetHighContrast(*p.opts.HighContrast)
	case cfg.HighContrast:
		accessibility.SetHighContrast(true)
	}
}

func (p *Panel) current() (*scene, error) {
	if p.closed.Load() {
		return nil, ErrClosed
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.scene, nil
}

// Reload re-reads the scene. On failure the current scene stays in place.
func (p *Panel) Reload() error {
	if p.closed.Load() {
		return ErrClosed
	}
	if err := p.load(); err != nil {
		return err
	}
	p.log.Info("scene reloaded")
	return nil
}

// Size returns the window size in pixels.
func (p *Panel) Size() (image.Point, error) {
	s, err := p.current()
	if err != nil {
		return image.Point{}, err
	}
	return image.Pt(s.render.Width, s.render.Height), nil
}

// Render paints the whole scene into a new image the size of the window.
func (p *Panel) Render() (*image.RGBA, error) {
	if p.closed.Load() {
		return nil, ErrClosed
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	s := p.scene
	dst := image.NewRGBA(image.Rect(0, 0, s.render.Width, s.render.Height))
	if err := s.paint(dst); err != nil {
		return nil, err
	}
	return dst, nil
}

// WritePNG renders the scene and writes it to path as a PNG.
func (p *Panel) WritePNG(path string) (err error) {
	img, err := p.Render()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return NewCategorizedError(err, ErrorCategoryIO, SeverityError).WithContext("path", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = NewCategorizedError(cerr, ErrorCategoryIO, SeverityError).WithContext("path", path)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return NewCategorizedError(err, ErrorCategoryIO, SeverityError).WithContext("path", path)
	}
	return nil
}

func (p *Panel) widget(name string) (*scene, *widget.Widget, error) {
	s, err := p.current()
	if err != nil {
		return nil, nil, err
	}
	w, ok := s.tree.Widget(name)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrWidgetNotFound, name)
	}
	return s, w, nil
}

// Gradient returns the gradient a widget currently paints with.
func (p *Panel) Gradient(name string) (c1, c2 color.RGBA, err error) {
	_, w, err := p.widget(name)
	if err != nil {
		return c1, c2, err
	}
	d := w.Gradient()
	return d.Color1(), d.Color2(), nil
}

// SetGradient gives a widget an explicit gradient from c1 at its left edge
// to c2 at its right edge.
func (p *Panel) SetGradient(name string, c1, c2 color.RGBA) error {
	s, w, err := p.widget(name)
	if err != nil {
		return err
	}
	w.SetGradient(gradient.New(c1, c2))
	p.windowChanged(s, w)
	return nil
}

// ResetGradient drops a widget's explicit gradient so it paints a flat
// fill of its back color again.
func (p *Panel) ResetGradient(name string) error {
	s, w, err := p.widget(name)
	if err != nil {
		return err
	}
	w.ResetGradient()
	p.windowChanged(s, w)
	return nil
}

// SetText changes a label's text or a group's caption.
func (p *Panel) SetText(name, text string) error {
	_, w, err := p.widget(name)
	if err != nil {
		return err
	}
	w.SetText(text)
	return nil
}

// windowChanged rebuilds the window background after the window widget's
// gradient changed, since it is drawn outside the widget layer.
func (p *Panel) windowChanged(s *scene, w *widget.Widget) {
	if w != s.window {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	s.refreshBackground()
	if p.game != nil && p.scene == s {
		p.game.SetScene(s.render, s.background, s.tree)
	}
}

// Stats returns widget layer repaint statistics of the running window.
// It is the zero snapshot before Run.
func (p *Panel) Stats() render.PaintSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.game == nil {
		return render.PaintSnapshot{}
	}
	return p.game.Stats().Snapshot()
}

// Run shows the scene in a window until the window is closed or ctx is
// cancelled. With Options.Headless it only waits for ctx.
func (p *Panel) Run(ctx context.Context) error {
	s, err := p.current()
	if err != nil {
		return err
	}
	if p.opts.WatchConfig && p.configPath != "" {
		if err := p.startWatcher(); err != nil {
			return err
		}
		defer p.stopWatcher()
	}

	if p.opts.Headless {
		p.log.Info("running headless")
		<-ctx.Done()
		return nil
	}

	if msg := render.CheckTransparencySupport(s.render.Transparent); msg != "" {
		p.log.Warn(msg)
	}
	game := render.NewGame(s.render, s.background, s.tree)
	game.SetContext(ctx)
	game.SetWindowHints(s.hints)
	game.SetErrorHandler(func(err error) {
		ce := NewCategorizedError(err, ErrorCategoryRender, SeverityWarning)
		p.log.Error("paint failed", ce.logArgs()...)
	})

	p.mu.Lock()
	p.game = game
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.game = nil
		p.mu.Unlock()
	}()

	p.log.Info("window opened", "title", s.render.Title, "width", s.render.Width, "height", s.render.Height)
	err = game.Run()
	if err != nil && !errors.Is(err, render.ErrGameTerminated) {
		return NewCategorizedError(err, ErrorCategoryRender, SeverityCritical)
	}
	return nil
}

func (p *Panel) startWatcher() error {
	w, err := newSceneWatcher(p.configPath, p.opts.WatchDebounce, p.Reload, func(err error) {
		var ce *CategorizedError
		if errors.As(err, &ce) {
			p.log.Error("reload failed", ce.logArgs()...)
			return
		}
		p.log.Error("reload failed", "err", err)
	})
	if err != nil {
		return NewCategorizedError(err, ErrorCategoryIO, SeverityError).WithContext("path", p.configPath)
	}
	p.mu.Lock()
	p.watcher = w
	p.mu.Unlock()
	w.Start()
	p.log.Debug("watching scene", "path", p.configPath)
	return nil
}

func (p *Panel) stopWatcher() {
	p.mu.Lock()
	w := p.watcher
	p.watcher = nil
	p.mu.Unlock()
	if w != nil {
		w.Stop()
	}
}

// Close stops watching and releases the scene parser. The panel cannot be
// used afterwards.
func (p *Panel) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	p.stopWatcher()
	return p.parser.Close()
}
