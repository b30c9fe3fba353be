package popup

import (
	"github.com/google/uuid"

	"github.com/dshills/inlinechrome/internal/dom"
	"github.com/dshills/inlinechrome/internal/geom"
)

// AnchoredOption configures an Anchored popup.
type AnchoredOption func(*Anchored)

// WithID overrides the generated ID.
func WithID(id string) AnchoredOption {
	return func(a *Anchored) {
		if id != "" {
			a.id = id
		}
	}
}

// WithPreferAbove makes the popup open above its anchor when fn returns
// true, for example while the toolbar sits below the editor.
func WithPreferAbove(fn func() bool) AnchoredOption {
	return func(a *Anchored) { a.preferAbove = fn }
}

// Anchored is a popup placed against an anchor element.
type Anchored struct {
	id          string
	doc         dom.Document
	el          dom.Element
	anchor      dom.Element
	preferAbove func() bool
}

// NewAnchored creates a popup showing el against anchor.
func NewAnchored(doc dom.Document, el, anchor dom.Element, opts ...AnchoredOption) *Anchored {
	a := &Anchored{
		id:          uuid.NewString(),
		doc:         doc,
		el:          el,
		anchor:      anchor,
		preferAbove: func() bool { return false },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ID implements Popup.
func (a *Anchored) ID() string { return a.id }

// Reposition implements Popup. The preferred side is used when the popup
// fits there or fits on neither side.
func (a *Anchored) Reposition() {
	if a.el == nil || a.anchor == nil {
		return
	}
	anchor := a.doc.BoundingBox(a.anchor)
	h := a.doc.Height(a.el)
	vp := a.doc.Viewport()

	below := anchor.Bottom()
	above := anchor.Y - h
	fitsBelow := below+h <= vp.Bottom()
	fitsAbove := above >= vp.Top()

	top := below
	if a.preferAbove() {
		if fitsAbove || !fitsBelow {
			top = above
		}
	} else if !fitsBelow && fitsAbove {
		top = above
	}

	dom.SetStyles(a.doc, a.el,
		dom.PropPosition, "absolute",
		dom.PropTop, geom.Px(float64(geom.Round(top))),
		dom.PropLeft, geom.Px(float64(geom.Round(anchor.X))),
	)
}
