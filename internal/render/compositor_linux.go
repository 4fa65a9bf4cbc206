//go:build linux

package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

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

// DetectCompositor reports whether an X11 compositing manager owns the
// _NET_WM_CM_S<n> selection for the default screen. Wayland sessions always
// composite.
func DetectCompositor() CompositorStatus {
	if IsWayland() {
		return CompositorActive
	}

	conn, err := xgb.NewConn()
	if err != nil {
		return CompositorUnknown
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	screen := conn.DefaultScreen
	if screen < 0 || screen >= len(setup.Roots) {
		return CompositorUnknown
	}

	name := fmt.Sprintf("_NET_WM_CM_S%d", screen)
	atom, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
	if err != nil || atom == nil {
		return CompositorUnknown
	}
	owner, err := xproto.GetSelectionOwner(conn, atom.Atom).Reply()
	if err != nil {
		return CompositorUnknown
	}
	if owner.Owner == xproto.WindowNone {
		return CompositorInactive
	}
	return CompositorActive
}

// IsWayland reports whether the session runs on Wayland.
func IsWayland() bool {
	return strings.EqualFold(os.Getenv("XDG_SESSION_TYPE"), "wayland") || os.Getenv("WAYLAND_DISPLAY") != ""
}

// CheckTransparencySupport returns a warning when a translucent window
// background was requested but no compositor will blend it, or an empty
// string when no warning is needed.
func CheckTransparencySupport(transparent bool) string {
	if !transparent {
		return ""
	}
	switch DetectCompositor() {
	case CompositorActive:
		return ""
	case CompositorInactive:
		return "no X11 compositor detected; the translucent window background will appear opaque " +
			"(start a compositing manager such as picom)"
	default:
		return "could not detect an X11 compositor; the translucent window background may appear opaque"
	}
}
