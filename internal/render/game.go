package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrGameTerminated is returned when the game loop is terminated via context cancellation.
var ErrGameTerminated = errors.New("game terminated")

// ErrorHandler is a function type for handling errors during painting.
type ErrorHandler func(err error)

// DefaultErrorHandler writes errors to stderr.
func DefaultErrorHandler(err error) {
	fmt.Fprintf(os.Stderr, "paint error: %v\n", err)
}

// Game implements ebiten.Game. Each frame it paints the window background
// and then the widget layer, which is only repainted when it reports dirty.
type Game struct {
	config       Config
	background   BackgroundRenderer
	layer        Layer
	errorHandler ErrorHandler
	stats        *PaintStats

	hints        WindowHints
	hintsApplied bool

	pixels  *image.RGBA
	texture *ebiten.Image

	mu      sync.RWMutex
	running bool
	ctx     context.Context
}

// NewGame creates a new Game instance with the provided configuration.
func NewGame(config Config, background BackgroundRenderer, layer Layer) *Game {
	return &Game{
		config:       config,
		background:   background,
		layer:        layer,
		errorHandler: DefaultErrorHandler,
		stats:        NewPaintStats(),
	}
}

// Stats returns the widget layer repaint statistics.
func (g *Game) Stats() *PaintStats {
	return g.stats
}

// SetWindowHints sets the EWMH states applied once the window is running.
func (g *Game) SetWindowHints(h WindowHints) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hints = h
	g.hintsApplied = false
}

// SetErrorHandler sets a custom error handler for paint errors.
// If nil is passed, errors will be silently ignored.
func (g *Game) SetErrorHandler(handler ErrorHandler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errorHandler = handler
}

// SetContext sets a context for the game loop. When the context is cancelled,
// the game loop will terminate gracefully.
func (g *Game) SetContext(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ctx = ctx
}

// SetScene replaces the background and widget layer, for example after a
// configuration reload. The layer is repainted on the next update.
func (g *Game) SetScene(config Config, background BackgroundRenderer, layer Layer) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.config = config
	g.background = background
	g.layer = layer
	g.pixels = nil
}

// Update implements ebiten.Game.Update.
func (g *Game) Update() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.ctx != nil {
		select {
		case <-g.ctx.Done():
			return ErrGameTerminated
		default:
		}
	}

	if g.running && !g.hintsApplied {
		g.hintsApplied = true
		if err := ApplyWindowHints(g.hints); err != nil {
			g.report(fmt.Errorf("window hints: %w", err))
		}
	}

	if g.layer == nil {
		return nil
	}
	if g.pixels != nil && !g.layer.Dirty() {
		return nil
	}

	pixels := image.NewRGBA(image.Rect(0, 0, g.config.Width, g.config.Height))
	start := time.Now()
	err := g.layer.PaintLayer(pixels)
	g.stats.Record(time.Since(start), err)
	if err != nil {
		// Keep showing the previous frame; the next update retries.
		g.report(err)
		return nil
	}
	g.pixels = pixels
	if g.texture == nil || g.texture.Bounds().Size() != pixels.Bounds().Size() {
		g.texture = ebiten.NewImage(g.config.Width, g.config.Height)
	}
	g.texture.WritePixels(pixels.Pix)
	return nil
}

// Draw implements ebiten.Game.Draw.
func (g *Game) Draw(screen *ebiten.Image) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.background != nil {
		if err := g.background.Draw(screen); err != nil {
			g.report(err)
			return
		}
	}
	if g.texture != nil {
		screen.DrawImage(g.texture, nil)
	}
}

func (g *Game) report(err error) {
	if g.errorHandler != nil {
		g.errorHandler(err)
	}
}

// Layout implements ebiten.Game.Layout.
// It returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.config.Width, g.config.Height
}

// Config returns the current configuration.
func (g *Game) Config() Config {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.config
}

// Run starts the Ebiten game loop.
// This function blocks until the window is closed.
func (g *Game) Run() error {
	cfg := g.Config()
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)

	g.mu.Lock()
	g.running = true
	g.mu.Unlock()

	err := ebiten.RunGameWithOptions(g, &ebiten.RunGameOptions{
		ScreenTransparent: cfg.Transparent,
	})

	g.mu.Lock()
	g.running = false
	g.mu.Unlock()
	CloseWindowHints()

	return err
}

// IsRunning returns whether the game loop is currently running.
func (g *Game) IsRunning() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.running
}
