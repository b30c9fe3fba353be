// Package core provides the cell types shared by the renderer and its
// backends. It exists so neither has to import the other.
package core

import "github.com/rivo/uniseg"

// Attribute represents text attributes.
type Attribute uint8

// Text attribute flags.
const (
	AttrNone      Attribute = 0
	AttrBold      Attribute = 1 << iota
	AttrDim                 // faint text
	AttrUnderline           // underlined text
	AttrReverse             // swap foreground and background
)

// Has returns true if the attribute set contains attr.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// Color is a terminal color: the default color, a palette index or RGB.
type Color struct {
	R, G, B uint8
	// Indexed means R holds a palette index.
	Indexed bool
	// Default is the terminal's own color.
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// ColorFromRGB creates a true color.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromIndex creates a palette color.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// IsDefault reports whether c is the terminal's default color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Style is the visual styling of a cell.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle uses the terminal's colors and no attributes.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// WithForeground returns s with fg as its foreground.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns s with bg as its background.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// Bold returns s in bold.
func (s Style) Bold() Style {
	s.Attributes |= AttrBold
	return s
}

// Dim returns s dimmed.
func (s Style) Dim() Style {
	s.Attributes |= AttrDim
	return s
}

// Reverse returns s in reverse video.
func (s Style) Reverse() Style {
	s.Attributes |= AttrReverse
	return s
}

// Cell is one terminal cell. A wide grapheme occupies its first cell with
// Width 2 and the next with Width 0.
type Cell struct {
	Rune  rune
	Combo []rune
	Width int
	Style Style
}

// EmptyCell returns a blank cell in the default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Width: 1, Style: DefaultStyle()}
}

// IsContinuation reports whether c is the tail of a wide grapheme.
func (c Cell) IsContinuation() bool {
	return c.Width == 0
}

// StringWidth returns the number of cells s occupies.
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}

// CellsFromString splits s into grapheme clusters, one cell per column.
func CellsFromString(s string, style Style) []Cell {
	cells := make([]Cell, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		var width int
		cluster, s, width, state = uniseg.FirstGraphemeClusterInString(s, state)
		if width == 0 {
			continue
		}
		runes := []rune(cluster)
		cell := Cell{Rune: runes[0], Width: width, Style: style}
		if len(runes) > 1 {
			cell.Combo = runes[1:]
		}
		cells = append(cells, cell)
		for i := 1; i < width; i++ {
			cells = append(cells, Cell{Style: style})
		}
	}
	return cells
}

// ScreenRect is a half-open cell rectangle.
type ScreenRect struct {
	Top, Left, Bottom, Right int
}

// RectFromSize builds a rectangle from its origin and size.
func RectFromSize(top, left, height, width int) ScreenRect {
	return ScreenRect{Top: top, Left: left, Bottom: top + height, Right: left + width}
}

// Width returns the number of columns.
func (r ScreenRect) Width() int {
	if r.Right < r.Left {
		return 0
	}
	return r.Right - r.Left
}

// Height returns the number of rows.
func (r ScreenRect) Height() int {
	if r.Bottom < r.Top {
		return 0
	}
	return r.Bottom - r.Top
}

// IsEmpty reports whether r covers no cells.
func (r ScreenRect) IsEmpty() bool {
	return r.Width() == 0 || r.Height() == 0
}

// Intersection returns the overlap of r and other.
func (r ScreenRect) Intersection(other ScreenRect) ScreenRect {
	out := ScreenRect{
		Top:    max(r.Top, other.Top),
		Left:   max(r.Left, other.Left),
		Bottom: min(r.Bottom, other.Bottom),
		Right:  min(r.Right, other.Right),
	}
	if out.IsEmpty() {
		return ScreenRect{}
	}
	return out
}
