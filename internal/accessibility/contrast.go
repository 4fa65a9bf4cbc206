// Package accessibility holds the process-wide accessibility state consulted
// when painting widget backgrounds.
package accessibility

import (
	"os"
	"strconv"
	"strings"
	"sync/atomic"
)

// EnvHighContrast forces high contrast on or off when set to a boolean.
const EnvHighContrast = "GRADIENTPANEL_HIGH_CONTRAST"

var highContrast atomic.Bool

func init() {
	highContrast.Store(DetectHighContrast(os.Getenv))
}

// HighContrast reports whether high contrast mode is active.
func HighContrast() bool {
	return highContrast.Load()
}

// SetHighContrast overrides the detected high contrast state.
func SetHighContrast(on bool) {
	highContrast.Store(on)
}

// DetectHighContrast derives the high contrast state from the environment.
// EnvHighContrast takes precedence; otherwise a GTK theme whose name
// contains "HighContrast" enables it.
func DetectHighContrast(getenv func(string) string) bool {
	if v := getenv(EnvHighContrast); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			return on
		}
	}
	theme := strings.ToLower(getenv("GTK_THEME"))
	return strings.Contains(theme, "highcontrast")
}
