//go:build !linux

package render

// CompositorStatus represents the detected window compositor state.
type CompositorStatus int

const (
	// CompositorUnknown means the compositor state could not be determined.
	CompositorUnknown CompositorStatus = iota
	// CompositorActive means translucent top-level windows will blend with
	// the desktop.
	CompositorActive
	// CompositorInactive means translucent windows will appear opaque.
	CompositorInactive
)

// String returns a human-readable compositor status.
func (cs CompositorStatus) String() string {
	switch cs {
	case CompositorActive:
		return "active"
	case CompositorInactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// DetectCompositor returns CompositorActive; Windows (DWM) and macOS always
// composite.
func DetectCompositor() CompositorStatus {
	return CompositorActive
}

// IsWayland returns false on non-Linux platforms.
func IsWayland() bool {
	return false
}

// CheckTransparencySupport never warns on non-Linux platforms.
func CheckTransparencySupport(transparent bool) string {
	return ""
}
