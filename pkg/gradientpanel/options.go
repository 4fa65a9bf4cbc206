package gradientpanel

import "time"

// Options configures a Panel.
type Options struct {
	// Logger receives lifecycle and error messages.
	// If nil, no logging is performed.
	Logger Logger

	// WatchConfig reloads the scene whenever its file changes on disk.
	// It has no effect for scenes created with NewFromReader.
	WatchConfig bool

	// WatchDebounce sets the debounce interval for file change events.
	// Zero means use DefaultWatchDebounce.
	WatchDebounce time.Duration

	// HighContrast, when non-nil, overrides both the detected high contrast
	// state and the scene's high_contrast setting.
	HighContrast *bool

	// Headless makes Run wait for its context instead of opening a window.
	Headless bool
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		WatchDebounce: DefaultWatchDebounce,
	}
}

// Logger interface for custom logging.
// It follows the slog-style signature for compatibility with Go's structured logging.
type Logger interface {
	// Debug logs a debug-level message with optional key-value pairs.
	Debug(msg string, args ...any)
	// Info logs an info-level message with optional key-value pairs.
	Info(msg string, args ...any)
	// Warn logs a warning-level message with optional key-value pairs.
	Warn(msg string, args ...any)
	// Error logs an error-level message with optional key-value pairs.
	Error(msg string, args ...any)
}
