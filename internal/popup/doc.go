// Package popup keeps floating popups (menus, dropdowns, tooltips) attached
// to their anchors while the toolbar moves.
//
// A Registry listens for the reposition broadcast on the event bus and asks
// every mounted popup to recompute its position, in priority order.
// Anchored is the usual popup: it opens below its anchor when the viewport
// has room and above it otherwise.
package popup
