//go:build !linux

package render

// WindowHints are the EWMH states requested for the panel window. They only
// take effect on X11.
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

// ApplyWindowHints is a no-op on non-Linux platforms.
func ApplyWindowHints(h WindowHints) error {
	return nil
}

// CloseWindowHints is a no-op on non-Linux platforms.
func CloseWindowHints() {}
