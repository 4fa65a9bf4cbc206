package render

import (
	"fmt"
	"image"
)

// Config holds the window configuration.
type Config struct {
	// Width is the window width in pixels.
	Width int
	// Height is the window height in pixels.
	Height int
	// Title is the window title.
	Title string
	// Transparent requests a transparent window surface so translucent
	// backgrounds show the desktop. Requires a compositor on X11.
	Transparent bool
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Width:  400,
		Height: 300,
		Title:  "gradientpanel",
	}
}

// Validate checks if the Config has valid values.
// Returns an error if Width or Height are not positive.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", c.Width)
	}
	if c.Height <= 0 {
		return fmt.Errorf("height must be positive, got %d", c.Height)
	}
	return nil
}

// Layer produces the widget layer drawn above the window background.
type Layer interface {
	// Dirty reports whether the layer must be repainted.
	Dirty() bool
	// PaintLayer repaints the layer into dst, which starts fully
	// transparent and covers the window.
	PaintLayer(dst *image.RGBA) error
}
