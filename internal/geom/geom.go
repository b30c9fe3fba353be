// Package geom provides the pixel geometry value types shared by the
// positioning and docking code.
//
// All boxes are expressed in absolute document coordinates unless a
// function says otherwise. The viewport is itself a Rect whose origin is
// the current scroll offset.
package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point is a position in pixels.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box in pixels.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewRect creates a Rect from its origin and size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Top returns the top edge.
func (r Rect) Top() float64 { return r.Y }

// Left returns the left edge.
func (r Rect) Left() float64 { return r.X }

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// IsEmpty returns true if the rect has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersects returns true if the two rects overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains returns true if p lies within the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Equals compares two rects exactly.
func (r Rect) Equals(o Rect) bool {
	return r == o
}

// String returns the rect as "x,y wxh".
func (r Rect) String() string {
	return fmt.Sprintf("%g,%g %gx%g", r.X, r.Y, r.Width, r.Height)
}

// Round rounds a pixel value to the nearest integer, halves away from zero.
func Round(v float64) int {
	return int(math.Round(v))
}

// Clamp limits v to [lo, hi]. If lo > hi, lo wins.
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Px formats a pixel value the way style properties expect it.
func Px(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%dpx", int(v))
	}
	return fmt.Sprintf("%gpx", v)
}

// ParsePx parses a "12px" or "12" style value. The second result is false
// when the value is empty or not numeric.
func ParsePx(s string) (float64, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
