// Package widget implements the widget tree that owns gradient backgrounds
// and forwards paint cycles to the background compositor.
package widget

import (
	"sync/atomic"

	"github.com/opd-ai/go-gradientpanel/internal/gradient"
)

// GradientProperty holds an optional explicit gradient. When no override is
// set, reads resolve to a default computed at read time and never stored, so
// a later change to the inherited color is observed without a reset.
//
// Assignments replace the whole descriptor atomically; a concurrent reader
// sees either the old or the new descriptor.
type GradientProperty struct {
	value    atomic.Pointer[gradient.Descriptor]
	onChange func()
}

// NewGradientProperty returns an unset property. onChange, when non-nil, is
// called synchronously after every assignment.
func NewGradientProperty(onChange func()) *GradientProperty {
	return &GradientProperty{onChange: onChange}
}

// Get returns the explicit gradient, or def() when none is set. A nil def
// yields the transparent zero descriptor.
func (p *GradientProperty) Get(def func() gradient.Descriptor) gradient.Descriptor {
	if d := p.value.Load(); d != nil {
		return *d
	}
	if def == nil {
		return gradient.Descriptor{}
	}
	return def()
}

// Explicit returns the override and whether one is set.
func (p *GradientProperty) Explicit() (gradient.Descriptor, bool) {
	if d := p.value.Load(); d != nil {
		return *d, true
	}
	return gradient.Descriptor{}, false
}

// Set stores d as the override and notifies.
func (p *GradientProperty) Set(d gradient.Descriptor) {
	p.value.Store(&d)
	p.notify()
}

// Reset clears the override. It notifies only when an override existed.
func (p *GradientProperty) Reset() {
	if p.value.Swap(nil) != nil {
		p.notify()
	}
}

// ShouldPersist reports whether the property carries an explicit value
// that a serializer should write out.
func (p *GradientProperty) ShouldPersist() bool {
	return p.value.Load() != nil
}

func (p *GradientProperty) notify() {
	if p.onChange != nil {
		p.onChange()
	}
}
