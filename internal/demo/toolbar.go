package demo

import (
	"github.com/dshills/inlinechrome/internal/dom"
	"github.com/dshills/inlinechrome/internal/geom"
	"github.com/dshills/inlinechrome/internal/keying/flow"
)

// ButtonClass marks toolbar buttons.
const ButtonClass = "ic-button"

// ActiveClass marks the highlighted toolbar button.
const ActiveClass = "ic-active"

// measurer reports how wide text is once drawn.
type measurer interface {
	TextWidth(text string) float64
	CellSize() (width, height float64)
}

// toolbar is one editor's toolbar: an outer container holding a single
// row of buttons. It is both the header's Toolbar and the keying Component.
type toolbar struct {
	page    *dom.Page
	measure measurer

	outer   *dom.Node
	row     *dom.Node
	buttons []*dom.Node
	labels  map[string]string
}

type buttonSpec struct {
	label    string
	disabled bool
}

var defaultButtons = []buttonSpec{
	{label: "Bold"},
	{label: "Italic"},
	{label: "Link"},
	{label: "Code", disabled: true},
	{label: "Quote"},
	{label: "Undo"},
}

func newToolbar(page *dom.Page, m measurer, prefix string, specs []buttonSpec) *toolbar {
	t := &toolbar{
		page:    page,
		measure: m,
		labels:  make(map[string]string, len(specs)),
	}
	t.outer = page.Add(prefix+"-chrome", nil, geom.Rect{})
	t.row = page.Add(prefix+"-row", t.outer, geom.Rect{})
	for _, s := range specs {
		btn := page.Add(prefix+"-"+s.label, t.row, geom.Rect{})
		page.AddClass(btn, ButtonClass)
		if s.disabled {
			page.SetAttribute(btn, flow.DisabledAttr, "true")
		}
		t.buttons = append(t.buttons, btn)
		t.labels[btn.ID()] = s.label
	}
	page.SetStyle(t.outer, dom.PropDisplay, "none")
	t.Refresh()
	return t
}

// Element implements keying.Component.
func (t *toolbar) Element() dom.Element { return t.outer }

// Rows implements header.Toolbar.
func (t *toolbar) Rows() []dom.Element { return []dom.Element{t.row} }

// Refresh lays the buttons out left to right, each as wide as its label
// plus one cell of padding on either side.
func (t *toolbar) Refresh() {
	_, h := t.measure.CellSize()
	x := 0.0
	for _, btn := range t.buttons {
		w := t.measure.TextWidth(pad(t.labels[btn.ID()]))
		t.page.SetBox(btn, geom.NewRect(x, 0, w, h))
		x += w
	}
	t.page.SetBox(t.row, geom.NewRect(0, 0, x, h))
	t.page.SetBox(t.outer, geom.NewRect(0, 0, x, h))
}

// Label returns the text of button el.
func (t *toolbar) Label(el dom.Element) string {
	if el == nil {
		return ""
	}
	return t.labels[el.ID()]
}

func pad(label string) string {
	return " " + label + " "
}
