package renderer

import (
	"math"

	"github.com/dshills/inlinechrome/internal/dom"
	"github.com/dshills/inlinechrome/internal/geom"
	"github.com/dshills/inlinechrome/internal/renderer/backend"
	"github.com/dshills/inlinechrome/internal/renderer/core"
)

// Default cell size in pixels.
const (
	DefaultCellWidth  = 10
	DefaultCellHeight = 20
)

// Option configures a Painter.
type Option func(*Painter)

// WithCellSize sets how many pixels one cell covers.
func WithCellSize(width, height float64) Option {
	return func(p *Painter) {
		if width > 0 && height > 0 {
			p.cellW, p.cellH = width, height
		}
	}
}

// Painter draws page elements onto a backend.
type Painter struct {
	be    backend.Backend
	doc   dom.Document
	cellW float64
	cellH float64
}

// NewPainter creates a painter for doc drawing to be.
func NewPainter(be backend.Backend, doc dom.Document, opts ...Option) *Painter {
	p := &Painter{
		be:    be,
		doc:   doc,
		cellW: DefaultCellWidth,
		cellH: DefaultCellHeight,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CellSize returns the pixel size of one cell.
func (p *Painter) CellSize() (width, height float64) {
	return p.cellW, p.cellH
}

// TextWidth returns the pixel width text occupies once drawn.
func (p *Painter) TextWidth(text string) float64 {
	return float64(core.StringWidth(text)) * p.cellW
}

// ToScreen maps a document rectangle to the cells it covers in the viewport.
func (p *Painter) ToScreen(r geom.Rect) core.ScreenRect {
	vp := p.doc.Viewport()
	return core.ScreenRect{
		Top:    int(math.Floor((r.Top() - vp.Y) / p.cellH)),
		Left:   int(math.Floor((r.Left() - vp.X) / p.cellW)),
		Bottom: int(math.Ceil((r.Bottom() - vp.Y) / p.cellH)),
		Right:  int(math.Ceil((r.Right() - vp.X) / p.cellW)),
	}
}

// visible returns the on-screen cells of el, clipped to the surface.
func (p *Painter) visible(el dom.Element) (box, clip core.ScreenRect, ok bool) {
	if v, _ := p.doc.Style(el, dom.PropDisplay); v == "none" {
		return core.ScreenRect{}, core.ScreenRect{}, false
	}
	w, h := p.be.Size()
	box = p.ToScreen(p.doc.BoundingBox(el))
	clip = box.Intersection(core.RectFromSize(0, 0, h, w))
	return box, clip, !clip.IsEmpty()
}

// Clear blanks the surface.
func (p *Painter) Clear() {
	p.be.Clear()
}

// Box fills el's cells with fill in style. It reports whether anything
// was drawn.
func (p *Painter) Box(el dom.Element, fill rune, style core.Style) bool {
	_, clip, ok := p.visible(el)
	if !ok {
		return false
	}
	p.be.Fill(clip, core.Cell{Rune: fill, Width: 1, Style: style})
	return true
}

// Label writes text on row of el's box, starting at its left edge and cut
// at its right edge. Rows count from the top of the box.
func (p *Painter) Label(el dom.Element, row int, text string, style core.Style) {
	box, clip, ok := p.visible(el)
	if !ok {
		return
	}
	y := box.Top + row
	if y < clip.Top || y >= clip.Bottom {
		return
	}
	x := box.Left
	for _, c := range core.CellsFromString(text, style) {
		if x >= clip.Right {
			break
		}
		if x >= clip.Left && x+max(c.Width, 1) <= clip.Right {
			p.be.SetCell(x, y, c)
		}
		x++
	}
}

// Show flushes the surface.
func (p *Painter) Show() {
	p.be.Show()
}
