// Package docking keeps a toolbar stuck to the viewport edge while the page
// scrolls past the element it belongs to.
package docking

import (
	"go.uber.org/zap"

	"github.com/dshills/inlinechrome/internal/dom"
	"github.com/dshills/inlinechrome/internal/geom"
)

// Mode is the viewport edge a component may dock to.
type Mode string

// Docking modes.
const (
	ModeTop    Mode = "top"
	ModeBottom Mode = "bottom"
)

// Controller tracks whether components should stick to the viewport edge.
type Controller interface {
	// SetAllowedModes replaces the edges el may dock to.
	SetAllowedModes(el dom.Element, modes []Mode)
	// Reset undocks el, forgets its remembered position, then refreshes.
	Reset(el dom.Element)
	// Refresh docks or undocks el for the current scroll position.
	Refresh(el dom.Element)
}

// ContextFunc returns the box the docked element belongs to. Docking only
// happens while that box is at least partly visible. ok=false disables the
// check.
type ContextFunc func() (box geom.Rect, ok bool)

// state is what Sticky remembers per element.
type state struct {
	modes  []Mode
	docked Mode // "" when undocked
	origin geom.Rect
	saved  map[string]savedStyle
	// edge style written by dock, e.g. bottom: 0px
	edgeProp, edgeValue string
}

type savedStyle struct {
	value string
	set   bool
}

var dockProps = []string{dom.PropPosition, dom.PropTop, dom.PropLeft, dom.PropBottom}

// Sticky is the default Controller.
type Sticky struct {
	doc     dom.Document
	context ContextFunc
	offset  func() float64
	log     *zap.Logger
	states  map[string]*state
}

// Option configures a Sticky controller.
type Option func(*Sticky)

// WithContext restricts docking to while ctx is visible.
func WithContext(ctx ContextFunc) Option {
	return func(s *Sticky) { s.context = ctx }
}

// WithOffset sets the distance kept from the viewport edge when docked.
// The function is read on every refresh so configuration reloads apply.
func WithOffset(fn func() float64) Option {
	return func(s *Sticky) { s.offset = fn }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Sticky) {
		if log != nil {
			s.log = log
		}
	}
}

// NewSticky creates a controller operating on doc.
func NewSticky(doc dom.Document, opts ...Option) *Sticky {
	s := &Sticky{
		doc:    doc,
		offset: func() float64 { return 0 },
		log:    zap.NewNop(),
		states: make(map[string]*state),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetAllowedModes implements Controller.
func (s *Sticky) SetAllowedModes(el dom.Element, modes []Mode) {
	if el == nil {
		return
	}
	st := s.state(el)
	st.modes = append(st.modes[:0], modes...)
}

// AllowedModes returns the edges el may dock to.
func (s *Sticky) AllowedModes(el dom.Element) []Mode {
	if el == nil {
		return nil
	}
	st, ok := s.states[el.ID()]
	if !ok {
		return nil
	}
	return append([]Mode(nil), st.modes...)
}

// IsDocked reports the edge el is docked to, if any.
func (s *Sticky) IsDocked(el dom.Element) (Mode, bool) {
	if el == nil {
		return "", false
	}
	st, ok := s.states[el.ID()]
	if !ok || st.docked == "" {
		return "", false
	}
	return st.docked, true
}

// Reset implements Controller.
func (s *Sticky) Reset(el dom.Element) {
	if el == nil {
		return
	}
	st := s.state(el)
	if st.docked != "" {
		s.undock(el, st)
	}
	st.origin = geom.Rect{}
	s.Refresh(el)
}

// Refresh implements Controller.
func (s *Sticky) Refresh(el dom.Element) {
	if el == nil {
		return
	}
	st := s.state(el)

	// Someone else repositioned the element since we docked it.
	if st.docked != "" {
		if pos, _ := s.doc.Style(el, dom.PropPosition); pos != "fixed" {
			s.forget(el, st)
		}
	}
	if st.docked == "" {
		st.origin = s.doc.BoundingBox(el)
	}

	mode, dock := s.decide(st)
	switch {
	case dock && st.docked != mode:
		if st.docked != "" {
			s.undock(el, st)
		}
		s.dock(el, st, mode)
	case dock:
		// Follow horizontal scrolling while docked.
		s.doc.SetStyle(el, dom.PropLeft, geom.Px(float64(geom.Round(st.origin.X-s.doc.Scroll().X))))
	case st.docked != "":
		s.undock(el, st)
	}
}

// decide picks the edge el should dock to, if any.
func (s *Sticky) decide(st *state) (Mode, bool) {
	vp := s.doc.Viewport()
	if s.context != nil {
		if box, ok := s.context(); ok && !box.Intersects(vp) {
			return "", false
		}
	}
	off := s.offset()
	for _, m := range st.modes {
		switch m {
		case ModeTop:
			if st.origin.Top() < vp.Top()+off {
				return ModeTop, true
			}
		case ModeBottom:
			if st.origin.Bottom() > vp.Bottom()-off {
				return ModeBottom, true
			}
		}
	}
	return "", false
}

func (s *Sticky) dock(el dom.Element, st *state, mode Mode) {
	st.saved = make(map[string]savedStyle, len(dockProps))
	for _, prop := range dockProps {
		v, ok := s.doc.Style(el, prop)
		st.saved[prop] = savedStyle{value: v, set: ok}
	}

	off := geom.Px(float64(geom.Round(s.offset())))
	left := geom.Px(float64(geom.Round(st.origin.X - s.doc.Scroll().X)))
	s.doc.SetStyle(el, dom.PropPosition, "fixed")
	s.doc.SetStyle(el, dom.PropLeft, left)
	st.edgeProp, st.edgeValue = dom.PropTop, off
	if mode == ModeBottom {
		st.edgeProp = dom.PropBottom
	}
	if mode == ModeTop {
		s.doc.RemoveStyle(el, dom.PropBottom)
	} else {
		s.doc.RemoveStyle(el, dom.PropTop)
	}
	s.doc.SetStyle(el, st.edgeProp, off)
	st.docked = mode
	s.log.Debug("Docked", zap.String("element", el.ID()), zap.String("mode", string(mode)))
}

func (s *Sticky) undock(el dom.Element, st *state) {
	for _, prop := range dockProps {
		saved := st.saved[prop]
		if saved.set {
			s.doc.SetStyle(el, prop, saved.value)
		} else {
			s.doc.RemoveStyle(el, prop)
		}
	}
	s.log.Debug("Undocked", zap.String("element", el.ID()), zap.String("mode", string(st.docked)))
	st.docked = ""
	st.saved = nil
	st.edgeProp, st.edgeValue = "", ""
}

// forget drops docking state after someone else repositioned el. The
// position they wrote is kept; only the edge style dock left behind and
// nobody overwrote is removed.
func (s *Sticky) forget(el dom.Element, st *state) {
	if st.edgeProp != "" {
		if v, ok := s.doc.Style(el, st.edgeProp); ok && v == st.edgeValue {
			s.doc.RemoveStyle(el, st.edgeProp)
		}
	}
	s.log.Debug("Repositioned while docked", zap.String("element", el.ID()), zap.String("mode", string(st.docked)))
	st.docked = ""
	st.saved = nil
	st.edgeProp, st.edgeValue = "", ""
}

func (s *Sticky) state(el dom.Element) *state {
	st, ok := s.states[el.ID()]
	if !ok {
		st = &state{}
		s.states[el.ID()] = st
	}
	return st
}
