//go:build linux

package render

import (
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// WindowHints are the EWMH states requested for the panel window.
type WindowHints struct {
	SkipTaskbar bool
	SkipPager   bool
	Sticky      bool
	Below       bool
}

// Empty reports whether no hint is requested.
func (h WindowHints) Empty() bool {
	return h == WindowHints{}
}

// stateAtoms returns the _NET_WM_STATE atom names for the requested hints.
func (h WindowHints) stateAtoms() []string {
	var names []string
	if h.SkipTaskbar {
		names = append(names, "_NET_WM_STATE_SKIP_TASKBAR")
	}
	if h.SkipPager {
		names = append(names, "_NET_WM_STATE_SKIP_PAGER")
	}
	if h.Sticky {
		names = append(names, "_NET_WM_STATE_STICKY")
	}
	if h.Below {
		names = append(names, "_NET_WM_STATE_BELOW")
	}
	return names
}

// hintApplier owns the X11 connection used to set window states. Atoms are
// interned once per connection.
type hintApplier struct {
	mu    sync.Mutex
	conn  *xgb.Conn
	atoms map[string]xproto.Atom
}

var windowHints = &hintApplier{atoms: make(map[string]xproto.Atom)}

// ApplyWindowHints merges the requested states into _NET_WM_STATE of the
// active X11 window. It must run after the window is mapped. Missing X11
// support is not an error.
func ApplyWindowHints(h WindowHints) error {
	if h.Empty() {
		return nil
	}
	return windowHints.apply(h)
}

// CloseWindowHints releases the X11 connection.
func CloseWindowHints() {
	windowHints.close()
}

func (a *hintApplier) apply(h WindowHints) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.conn == nil {
		conn, err := xgb.NewConn()
		if err != nil {
			return nil
		}
		a.conn = conn
	}

	window := a.activeWindow()
	if window == xproto.WindowNone {
		return nil
	}
	state, err := a.atom("_NET_WM_STATE")
	if err != nil {
		return nil
	}

	set := make(map[xproto.Atom]bool)
	merged := a.currentState(window, state)
	for _, at := range merged {
		set[at] = true
	}
	for _, name := range h.stateAtoms() {
		at, err := a.atom(name)
		if err != nil || set[at] {
			continue
		}
		set[at] = true
		merged = append(merged, at)
	}

	data := make([]byte, len(merged)*4)
	for i, at := range merged {
		xgb.Put32(data[i*4:], uint32(at))
	}
	return xproto.ChangePropertyChecked(a.conn, xproto.PropModeReplace, window,
		state, xproto.AtomAtom, 32, uint32(len(merged)), data).Check()
}

func (a *hintApplier) atom(name string) (xproto.Atom, error) {
	if at, ok := a.atoms[name]; ok {
		return at, nil
	}
	reply, err := xproto.InternAtom(a.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	a.atoms[name] = reply.Atom
	return reply.Atom, nil
}

// activeWindow prefers _NET_ACTIVE_WINDOW and falls back to the input
// focus.
func (a *hintApplier) activeWindow() xproto.Window {
	setup := xproto.Setup(a.conn)
	if len(setup.Roots) == 0 {
		return xproto.WindowNone
	}
	root := setup.Roots[a.conn.DefaultScreen%len(setup.Roots)].Root

	if active, err := a.atom("_NET_ACTIVE_WINDOW"); err == nil {
		reply, err := xproto.GetProperty(a.conn, false, root, active, xproto.AtomWindow, 0, 1).Reply()
		if err == nil && len(reply.Value) >= 4 {
			return xproto.Window(xgb.Get32(reply.Value))
		}
	}

	focus, err := xproto.GetInputFocus(a.conn).Reply()
	if err != nil {
		return xproto.WindowNone
	}
	return focus.Focus
}

func (a *hintApplier) currentState(window xproto.Window, state xproto.Atom) []xproto.Atom {
	reply, err := xproto.GetProperty(a.conn, false, window, state, xproto.AtomAtom, 0, 256).Reply()
	if err != nil || reply == nil {
		return nil
	}
	out := make([]xproto.Atom, 0, len(reply.Value)/4)
	for i := 0; i+4 <= len(reply.Value); i += 4 {
		out = append(out, xproto.Atom(xgb.Get32(reply.Value[i:])))
	}
	return out
}

func (a *hintApplier) close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.conn != nil {
		a.conn.Close()
		a.conn = nil
	}
	a.atoms = make(map[string]xproto.Atom)
}
