package app

import (
	"github.com/dshills/inlinechrome/internal/dom"
	"github.com/dshills/inlinechrome/internal/keying"
)

// PageFocus lets keying move the page's real focus.
type PageFocus struct {
	Page *dom.Page
}

// FindFocused implements keying.ComponentSystem.
func (f PageFocus) FindFocused(container dom.Element) (dom.Element, bool) {
	return f.Page.FindFocused(container)
}

// TriggerFocus implements keying.ComponentSystem.
func (f PageFocus) TriggerFocus(_ keying.Component, target dom.Element) {
	f.Page.Focus(target)
}
