package header

import (
	"math"

	"github.com/dshills/inlinechrome/internal/dom"
	"github.com/dshills/inlinechrome/internal/geom"
)

// MinimumToolbarWidth keeps a squeezed toolbar from wrapping into a thin,
// tall strip.
const MinimumToolbarWidth = 150

// Position is the rounded top-left of the outer container.
type Position struct {
	Top  int
	Left int
}

// ComputePosition places the container above (isTop) or below the target.
// offset is the drawer height that may hang below the container when on top.
func ComputePosition(isTop bool, target geom.Rect, containerHeight, offset float64) Position {
	top := target.Bottom()
	if isTop {
		top = math.Max(target.Y-containerHeight+offset, 0)
	}
	return Position{Top: geom.Round(top), Left: geom.Round(target.X)}
}

// ComputeWidthOverride returns an explicit width when the target starts
// beyond the viewport's right edge, which happens when several editors sit
// side by side on a page wider than the window. The result is the natural
// width limited to the visible space, but never below MinimumToolbarWidth.
func ComputeWidthOverride(target geom.Rect, viewportWidth, fullWidth, scrollLeft float64) (float64, bool) {
	if target.X <= viewportWidth {
		return 0, false
	}
	available := viewportWidth - (target.X - scrollLeft)
	return math.Max(MinimumToolbarWidth, math.Min(fullWidth, available)), true
}

// measureNaturalWidth reports the width el renders at when nothing pins
// it: absolutely positioned at the left edge with no explicit width. The
// styles it touches are put back before it returns.
func measureNaturalWidth(s dom.Styles, g dom.Geometry, el dom.Element) float64 {
	restore := snapshotStyles(s, el, dom.PropPosition, dom.PropLeft, dom.PropWidth)
	defer restore()

	s.SetStyle(el, dom.PropPosition, "absolute")
	s.SetStyle(el, dom.PropLeft, "0px")
	s.RemoveStyle(el, dom.PropWidth)
	return g.OuterWidth(el)
}

// snapshotStyles records props on el and returns a func that puts them back.
func snapshotStyles(s dom.Styles, el dom.Element, props ...string) func() {
	type saved struct {
		value string
		ok    bool
	}
	prev := make([]saved, len(props))
	for i, p := range props {
		v, ok := s.Style(el, p)
		prev[i] = saved{v, ok}
	}
	return func() {
		for i, p := range props {
			if prev[i].ok {
				s.SetStyle(el, p, prev[i].value)
			} else {
				s.RemoveStyle(el, p)
			}
		}
	}
}
