// Package flow moves focus through a container's items in document order.
package flow

import (
	"github.com/dshills/inlinechrome/internal/dom"
	"github.com/dshills/inlinechrome/internal/keying"
)

// DisabledAttr marks an item that navigation skips.
const DisabledAttr = "aria-disabled"

// Match reports whether el is a navigable item.
type Match func(el dom.Element) bool

// All matches every element.
func All(dom.Element) bool { return true }

// WithClass matches elements carrying class.
func WithClass(s dom.Styles, class string) Match {
	return func(el dom.Element) bool { return s.HasClass(el, class) }
}

// Enabled narrows m to items not marked disabled.
func Enabled(s dom.Styles, m Match) Match {
	return func(el dom.Element) bool {
		if v, ok := s.Attribute(el, DisabledAttr); ok && v == "true" {
			return false
		}
		return m(el)
	}
}

// Items returns the descendants of container matching m, depth first.
func Items(t dom.Tree, container dom.Element, m Match) []dom.Element {
	var out []dom.Element
	var walk func(el dom.Element)
	walk = func(el dom.Element) {
		for _, c := range t.Children(el) {
			if m(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if container != nil {
		walk(container)
	}
	return out
}

// IndexOf returns the position of el in items, or -1.
func IndexOf(items []dom.Element, el dom.Element) int {
	if el == nil {
		return -1
	}
	for i, it := range items {
		if it.ID() == el.ID() {
			return i
		}
	}
	return -1
}

// Left moves to the previous item.
func Left(t dom.Tree, m Match) keying.MoveFunc {
	return by(t, m, -1)
}

// Right moves to the next item.
func Right(t dom.Tree, m Match) keying.MoveFunc {
	return by(t, m, 1)
}

// First moves to the first item.
func First(t dom.Tree, m Match) keying.MoveFunc {
	return to(t, m, func(n int) int { return 0 })
}

// Last moves to the last item.
func Last(t dom.Tree, m Match) keying.MoveFunc {
	return to(t, m, func(n int) int { return n - 1 })
}

// by steps delta items from the focused one. It wraps when info.Cycle is
// set and declines at the ends otherwise. Moving onto the focused item
// itself is a decline.
func by(t dom.Tree, m Match, delta int) keying.MoveFunc {
	return func(container, focused dom.Element, info keying.Info) (dom.Element, bool) {
		items := Items(t, container, m)
		cur := IndexOf(items, focused)
		if cur < 0 {
			return nil, false
		}
		next := cur + delta
		if next < 0 || next >= len(items) {
			if !info.Cycle {
				return nil, false
			}
			next = (next%len(items) + len(items)) % len(items)
		}
		if next == cur {
			return nil, false
		}
		return items[next], true
	}
}

func to(t dom.Tree, m Match, pick func(n int) int) keying.MoveFunc {
	return func(container, focused dom.Element, _ keying.Info) (dom.Element, bool) {
		items := Items(t, container, m)
		if len(items) == 0 || IndexOf(items, focused) < 0 {
			return nil, false
		}
		next := items[pick(len(items))]
		if next.ID() == focused.ID() {
			return nil, false
		}
		return next, true
	}
}
