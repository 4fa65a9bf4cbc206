// Package config loads gradient panel scenes from Lua, YAML or TOML files.
package config

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/opd-ai/go-gradientpanel/internal/compositor"
	"github.com/opd-ai/go-gradientpanel/internal/gradient"
)

// Config is one scene: a top-level window and the widgets inside it.
type Config struct {
	Window WindowConfig `yaml:"window" toml:"window"`
	// HighContrast forces the process-wide high contrast state on.
	HighContrast bool `yaml:"high_contrast" toml:"high_contrast"`
	// Widgets are listed parents first.
	Widgets []WidgetConfig `yaml:"widgets" toml:"widgets"`
}

// WindowConfig describes the top-level window.
type WindowConfig struct {
	Title  string `yaml:"title" toml:"title"`
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
	// Background is "solid", "none" or "gradient".
	Background string `yaml:"background" toml:"background"`
	BackColor  string `yaml:"back_color" toml:"back_color"`
	Color1     string `yaml:"color1" toml:"color1"`
	Color2     string `yaml:"color2" toml:"color2"`
	// BorderColor frames the window when set.
	BorderColor string `yaml:"border_color" toml:"border_color"`
	ARGBVisual  bool   `yaml:"argb_visual" toml:"argb_visual"`
	ARGBValue   int    `yaml:"argb_value" toml:"argb_value"`
	Image       string `yaml:"image" toml:"image"`
	Layout      string `yaml:"layout" toml:"layout"`
	RightToLeft string `yaml:"right_to_left" toml:"right_to_left"`
	Mirrored    bool   `yaml:"mirrored" toml:"mirrored"`
	SkipTaskbar bool   `yaml:"skip_taskbar" toml:"skip_taskbar"`
	SkipPager   bool   `yaml:"skip_pager" toml:"skip_pager"`
	Sticky      bool   `yaml:"sticky" toml:"sticky"`
	Below       bool   `yaml:"below" toml:"below"`
}

// WidgetConfig describes one child widget. Geometry is relative to the
// parent, or to the window when Parent is empty.
type WidgetConfig struct {
	Name        string `yaml:"name" toml:"name"`
	Kind        string `yaml:"kind" toml:"kind"`
	X           int    `yaml:"x" toml:"x"`
	Y           int    `yaml:"y" toml:"y"`
	Width       int    `yaml:"width" toml:"width"`
	Height      int    `yaml:"height" toml:"height"`
	Text        string `yaml:"text" toml:"text"`
	BackColor   string `yaml:"back_color" toml:"back_color"`
	ForeColor   string `yaml:"fore_color" toml:"fore_color"`
	Color1      string `yaml:"color1" toml:"color1"`
	Color2      string `yaml:"color2" toml:"color2"`
	Image       string `yaml:"image" toml:"image"`
	Layout      string `yaml:"layout" toml:"layout"`
	RightToLeft string `yaml:"right_to_left" toml:"right_to_left"`
	AutoScroll  bool   `yaml:"auto_scroll" toml:"auto_scroll"`
	ScrollX     int    `yaml:"scroll_x" toml:"scroll_x"`
	ScrollY     int    `yaml:"scroll_y" toml:"scroll_y"`
	Parent      string `yaml:"parent" toml:"parent"`
}

// Validate checks the configuration and returns all errors as one.
func (c *Config) Validate() error {
	return ValidateConfig(c)
}

// Widget returns the widget with the given name.
func (c *Config) Widget(name string) (WidgetConfig, bool) {
	for _, w := range c.Widgets {
		if w.Name == name {
			return w, true
		}
	}
	return WidgetConfig{}, false
}

// Gradient returns the window gradient and whether one was configured.
func (w WindowConfig) Gradient() (gradient.Descriptor, bool, error) {
	return parseGradient(w.Color1, w.Color2)
}

// Gradient returns the widget's explicit gradient and whether one was
// configured. Widgets without one inherit a flat fill of their back color.
func (w WidgetConfig) Gradient() (gradient.Descriptor, bool, error) {
	return parseGradient(w.Color1, w.Color2)
}

// parseGradient treats a single configured color as a flat gradient.
func parseGradient(s1, s2 string) (gradient.Descriptor, bool, error) {
	if s1 == "" && s2 == "" {
		return gradient.Descriptor{}, false, nil
	}
	if s1 == "" {
		s1 = s2
	}
	if s2 == "" {
		s2 = s1
	}
	c1, err := gradient.ParseColor(s1)
	if err != nil {
		return gradient.Descriptor{}, false, fmt.Errorf("color1: %w", err)
	}
	c2, err := gradient.ParseColor(s2)
	if err != nil {
		return gradient.Descriptor{}, false, fmt.Errorf("color2: %w", err)
	}
	return gradient.New(c1, c2), true, nil
}

// ParseOptionalColor parses s, returning nil for the empty string.
func ParseOptionalColor(s string) (*color.RGBA, error) {
	if s == "" {
		return nil, nil
	}
	c, err := gradient.ParseColor(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ParseRightToLeft parses a reading direction. The empty string inherits.
func ParseRightToLeft(s string) (compositor.RightToLeft, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "inherit":
		return compositor.RTLInherit, nil
	case "yes", "true", "rtl":
		return compositor.RTLYes, nil
	case "no", "false", "ltr":
		return compositor.RTLNo, nil
	default:
		return compositor.RTLInherit, fmt.Errorf("unknown right_to_left value: %s", s)
	}
}
