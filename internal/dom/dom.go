package dom

import "github.com/dshills/inlinechrome/internal/geom"

// Element is an opaque handle to a node owned by the embedding page.
type Element interface {
	ID() string
}

// Geometry reports layout. All queries are pure.
type Geometry interface {
	// BoundingBox returns the element's border box in document coordinates.
	BoundingBox(el Element) geom.Rect
	// Viewport returns the visible window in document coordinates.
	Viewport() geom.Rect
	// Height returns the rendered height of the element.
	Height(el Element) float64
	// OuterWidth returns the rendered width of the element including borders.
	OuterWidth(el Element) float64
	// DocumentHeight returns max(scrollHeight, height) of the document element.
	DocumentHeight() float64
	// Scroll returns the current scroll offsets.
	Scroll() geom.Point
}

// Styles mutates and reads inline presentation state.
type Styles interface {
	SetStyle(el Element, prop, value string)
	RemoveStyle(el Element, prop string)
	Style(el Element, prop string) (string, bool)
	SetAttribute(el Element, name, value string)
	Attribute(el Element, name string) (string, bool)
	AddClass(el Element, class string)
	RemoveClass(el Element, class string)
	HasClass(el Element, class string) bool
}

// Tree exposes element structure.
type Tree interface {
	Body() Element
	Children(el Element) []Element
}

// Document is everything the core consumes from the page.
type Document interface {
	Geometry
	Styles
	Tree
}

// Style property names used by the positioning code.
const (
	PropPosition = "position"
	PropTop      = "top"
	PropLeft     = "left"
	PropBottom   = "bottom"
	PropWidth    = "width"
	PropMaxWidth = "max-width"
	PropDisplay  = "display"
	PropMargin   = "margin-left"
	PropDir      = "direction"
)

// SetStyles applies several properties in a stable order.
func SetStyles(s Styles, el Element, props ...string) {
	for i := 0; i+1 < len(props); i += 2 {
		s.SetStyle(el, props[i], props[i+1])
	}
}
