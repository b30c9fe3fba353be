package keying

import "github.com/dshills/inlinechrome/internal/dom"

// ComponentSystem is the host that owns focus.
type ComponentSystem interface {
	// FindFocused returns the focused element if it is container or inside it.
	FindFocused(container dom.Element) (dom.Element, bool)
	// TriggerFocus moves focus to target within c.
	TriggerFocus(c Component, target dom.Element)
}

// FocusManager locates and commits the focused item of a component.
type FocusManager interface {
	Get(c Component) (dom.Element, bool)
	Set(c Component, target dom.Element)
}

// DefaultFocus uses the component system's own notion of focus.
type DefaultFocus struct {
	sys ComponentSystem
}

// NewDefaultFocus creates a DefaultFocus backed by sys.
func NewDefaultFocus(sys ComponentSystem) *DefaultFocus {
	return &DefaultFocus{sys: sys}
}

// Get implements FocusManager.
func (f *DefaultFocus) Get(c Component) (dom.Element, bool) {
	return f.sys.FindFocused(c.Element())
}

// Set implements FocusManager.
func (f *DefaultFocus) Set(c Component, target dom.Element) {
	f.sys.TriggerFocus(c, target)
}

// ManagedFocus tracks focus per component explicitly, for widgets whose
// highlighted item is not the document's focused element.
type ManagedFocus struct {
	current map[string]dom.Element
	onSet   func(c Component, target dom.Element)
}

// NewManagedFocus creates an empty registry. onSet, if not nil, is called
// after every Set.
func NewManagedFocus(onSet func(c Component, target dom.Element)) *ManagedFocus {
	return &ManagedFocus{
		current: make(map[string]dom.Element),
		onSet:   onSet,
	}
}

// Get implements FocusManager.
func (f *ManagedFocus) Get(c Component) (dom.Element, bool) {
	el, ok := f.current[c.Element().ID()]
	return el, ok
}

// Set implements FocusManager.
func (f *ManagedFocus) Set(c Component, target dom.Element) {
	f.current[c.Element().ID()] = target
	if f.onSet != nil {
		f.onSet(c, target)
	}
}

// Clear forgets the focused item of c.
func (f *ManagedFocus) Clear(c Component) {
	delete(f.current, c.Element().ID())
}
