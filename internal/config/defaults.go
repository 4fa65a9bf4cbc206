package config

// Default values for configuration options.
const (
	// DefaultTitle is the window title.
	DefaultTitle = "gradientpanel"
	// DefaultWidth is the default window width in pixels.
	DefaultWidth = 400
	// DefaultHeight is the default window height in pixels.
	DefaultHeight = 300
	// DefaultBackground is the default window background mode.
	DefaultBackground = "gradient"
	// DefaultLayout is the default background image layout.
	DefaultLayout = "tile"
	// DefaultARGBValue keeps the window fully opaque.
	DefaultARGBValue = 255
)

// DefaultConfig returns a Config with sensible default values: an empty
// window painted with the system control color.
func DefaultConfig() Config {
	return Config{
		Window: DefaultWindowConfig(),
	}
}

// DefaultWindowConfig returns a WindowConfig with default values.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Title:      DefaultTitle,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Background: DefaultBackground,
		BackColor:  "control",
		ARGBValue:  DefaultARGBValue,
		Layout:     DefaultLayout,
	}
}
