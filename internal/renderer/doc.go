// Package renderer draws a page's boxes and labels onto a cell backend.
//
// Page geometry is in pixels. A Painter divides it by a fixed cell size and
// offsets it by the viewport, so whatever is scrolled out of view is
// clipped away.
package renderer
