package dom

import (
	"math"
	"sort"

	"github.com/dshills/inlinechrome/internal/geom"
)

// Node is an element of a Page.
type Node struct {
	id       string
	parent   *Node
	children []*Node

	// box is the static layout box. For positioned nodes only its size is used.
	box geom.Rect

	styles  map[string]string
	attrs   map[string]string
	classes map[string]bool
}

// ID implements Element.
func (n *Node) ID() string { return n.id }

// Page is an in-memory document.
type Page struct {
	nodes    map[string]*Node
	body     *Node
	viewport geom.Rect
	docH     float64
	focused  *Node

	mutations int
}

// NewPage creates a page whose body is bodyWidth wide and whose visible
// window is viewportWidth x viewportHeight.
func NewPage(bodyWidth, docHeight, viewportWidth, viewportHeight float64) *Page {
	body := &Node{
		id:      "body",
		box:     geom.NewRect(0, 0, bodyWidth, docHeight),
		styles:  make(map[string]string),
		attrs:   make(map[string]string),
		classes: make(map[string]bool),
	}
	return &Page{
		nodes:    map[string]*Node{body.id: body},
		body:     body,
		viewport: geom.NewRect(0, 0, viewportWidth, viewportHeight),
		docH:     docHeight,
	}
}

// Add creates a node under parent with a static layout box. A nil parent
// means the body. Boxes of body children are document coordinates; deeper
// boxes are offsets from the parent. Adding an existing id returns the
// existing node.
func (p *Page) Add(id string, parent Element, box geom.Rect) *Node {
	if n, ok := p.nodes[id]; ok {
		return n
	}
	par := p.body
	if pn := p.node(parent); pn != nil {
		par = pn
	}
	n := &Node{
		id:      id,
		parent:  par,
		box:     box,
		styles:  make(map[string]string),
		attrs:   make(map[string]string),
		classes: make(map[string]bool),
	}
	par.children = append(par.children, n)
	p.nodes[id] = n
	return n
}

// Get returns the node with the given id, or nil.
func (p *Page) Get(id string) *Node {
	return p.nodes[id]
}

// SetBox replaces the static layout box of el.
func (p *Page) SetBox(el Element, box geom.Rect) {
	if n := p.node(el); n != nil {
		n.box = box
	}
}

// Resize changes the visible window size.
func (p *Page) Resize(width, height float64) {
	p.viewport.Width = width
	p.viewport.Height = height
	p.ScrollTo(p.viewport.X, p.viewport.Y)
}

// ScrollTo moves the visible window, clamped to the document.
func (p *Page) ScrollTo(x, y float64) {
	maxY := math.Max(0, p.DocumentHeight()-p.viewport.Height)
	maxX := math.Max(0, p.body.box.Width-p.viewport.Width)
	p.viewport.X = geom.Clamp(x, 0, maxX)
	p.viewport.Y = geom.Clamp(y, 0, maxY)
}

// ScrollBy moves the visible window relative to its current position.
func (p *Page) ScrollBy(dx, dy float64) {
	p.ScrollTo(p.viewport.X+dx, p.viewport.Y+dy)
}

// Mutations returns the number of style, attribute and class writes so far.
func (p *Page) Mutations() int { return p.mutations }

// Focus makes el the active element. A nil el blurs.
func (p *Page) Focus(el Element) {
	p.focused = p.node(el)
}

// Focused returns the active element, or nil.
func (p *Page) Focused() Element {
	if p.focused == nil {
		return nil
	}
	return p.focused
}

// FindFocused returns the active element when it is container or one of its
// descendants.
func (p *Page) FindFocused(container Element) (Element, bool) {
	c := p.node(container)
	if c == nil || p.focused == nil {
		return nil, false
	}
	for n := p.focused; n != nil; n = n.parent {
		if n == c {
			return p.focused, true
		}
	}
	return nil, false
}

// Body implements Tree.
func (p *Page) Body() Element { return p.body }

// Children implements Tree.
func (p *Page) Children(el Element) []Element {
	n := p.node(el)
	if n == nil {
		return nil
	}
	out := make([]Element, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	return out
}

// Viewport implements Geometry.
func (p *Page) Viewport() geom.Rect { return p.viewport }

// Scroll implements Geometry.
func (p *Page) Scroll() geom.Point {
	return geom.Point{X: p.viewport.X, Y: p.viewport.Y}
}

// DocumentHeight implements Geometry.
func (p *Page) DocumentHeight() float64 {
	return math.Max(p.docH, p.body.box.Bottom())
}

// Height implements Geometry.
func (p *Page) Height(el Element) float64 {
	n := p.node(el)
	if n == nil || n.styles[PropDisplay] == "none" {
		return 0
	}
	return n.box.Height
}

// OuterWidth implements Geometry.
func (p *Page) OuterWidth(el Element) float64 {
	n := p.node(el)
	if n == nil || n.styles[PropDisplay] == "none" {
		return 0
	}
	w := n.box.Width
	if v, ok := geom.ParsePx(n.styles[PropWidth]); ok {
		w = v
	}
	if v, ok := geom.ParsePx(n.styles[PropMaxWidth]); ok && v < w {
		w = v
	}
	return w
}

// BoundingBox implements Geometry.
func (p *Page) BoundingBox(el Element) geom.Rect {
	n := p.node(el)
	if n == nil || n.styles[PropDisplay] == "none" {
		return geom.Rect{}
	}
	w := p.OuterWidth(n)
	h := n.box.Height
	static := p.staticOrigin(n)

	switch n.styles[PropPosition] {
	case "absolute":
		x := pxOr(n.styles[PropLeft], static.X)
		y := pxOr(n.styles[PropTop], static.Y)
		return geom.NewRect(x, y, w, h)
	case "fixed":
		x := p.viewport.X + pxOr(n.styles[PropLeft], static.X-p.viewport.X)
		var y float64
		if b, ok := geom.ParsePx(n.styles[PropBottom]); ok {
			y = p.viewport.Bottom() - b - h
		} else {
			y = p.viewport.Y + pxOr(n.styles[PropTop], static.Y-p.viewport.Y)
		}
		return geom.NewRect(x, y, w, h)
	default:
		return geom.NewRect(static.X, static.Y, w, h)
	}
}

// staticOrigin is where n sits in normal flow. Children of the body use
// their box directly; deeper nodes are offset from their parent's box.
func (p *Page) staticOrigin(n *Node) geom.Point {
	if n.parent == nil || n.parent == p.body {
		return geom.Point{X: n.box.X, Y: n.box.Y}
	}
	pb := p.BoundingBox(n.parent)
	return geom.Point{X: pb.X + n.box.X, Y: pb.Y + n.box.Y}
}

// SetStyle implements Styles.
func (p *Page) SetStyle(el Element, prop, value string) {
	if n := p.node(el); n != nil {
		n.styles[prop] = value
		p.mutations++
	}
}

// RemoveStyle implements Styles.
func (p *Page) RemoveStyle(el Element, prop string) {
	if n := p.node(el); n != nil {
		delete(n.styles, prop)
		p.mutations++
	}
}

// Style implements Styles.
func (p *Page) Style(el Element, prop string) (string, bool) {
	n := p.node(el)
	if n == nil {
		return "", false
	}
	v, ok := n.styles[prop]
	return v, ok
}

// StyleNames returns the inline style properties set on el, sorted.
func (p *Page) StyleNames(el Element) []string {
	n := p.node(el)
	if n == nil {
		return nil
	}
	names := make([]string, 0, len(n.styles))
	for k := range n.styles {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// SetAttribute implements Styles.
func (p *Page) SetAttribute(el Element, name, value string) {
	if n := p.node(el); n != nil {
		n.attrs[name] = value
		p.mutations++
	}
}

// Attribute implements Styles.
func (p *Page) Attribute(el Element, name string) (string, bool) {
	n := p.node(el)
	if n == nil {
		return "", false
	}
	v, ok := n.attrs[name]
	return v, ok
}

// AddClass implements Styles.
func (p *Page) AddClass(el Element, class string) {
	if n := p.node(el); n != nil {
		n.classes[class] = true
		p.mutations++
	}
}

// RemoveClass implements Styles.
func (p *Page) RemoveClass(el Element, class string) {
	if n := p.node(el); n != nil {
		delete(n.classes, class)
		p.mutations++
	}
}

// HasClass implements Styles.
func (p *Page) HasClass(el Element, class string) bool {
	n := p.node(el)
	return n != nil && n.classes[class]
}

func (p *Page) node(el Element) *Node {
	if el == nil {
		return nil
	}
	if n, ok := el.(*Node); ok && n != nil {
		if p.nodes[n.id] == n {
			return n
		}
		return nil
	}
	return p.nodes[el.ID()]
}

func pxOr(s string, def float64) float64 {
	if v, ok := geom.ParsePx(s); ok {
		return v
	}
	return def
}
