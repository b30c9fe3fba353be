// Package dom defines what the toolbar positioning and navigation code needs
// from the page it runs in, plus Page, an in-memory implementation.
//
// The embedding system owns the real element tree. The core only ever talks
// to it through the Geometry, Styles and Tree interfaces, so every geometric
// decision can be exercised against Page without a browser.
//
// # Coordinates
//
// Bounding boxes are absolute document coordinates. The viewport is the
// visible window expressed in the same coordinates, so its origin is the
// current scroll offset.
//
// # Page
//
// Page lays elements out from explicit boxes and a small subset of inline
// style: position (static, absolute, fixed), top, left, bottom, width,
// max-width and display. It is not safe for concurrent use; like a browser
// document it belongs to a single UI goroutine.
package dom
