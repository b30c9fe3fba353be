// Package header places an inline editor's toolbar next to the element it
// edits and keeps it there as the page scrolls, resizes and changes.
//
// # Components
//
//   - ResolveMode decides whether the toolbar sits above or below the
//     target. It is a pure function of options and geometry.
//   - ComputePosition and ComputeWidthOverride turn the decision into
//     integer pixel styles for the outer chrome container.
//   - Header is the show/hide/update state machine that runs them.
//
// # States
//
//	Hidden --Show--> Visible --Hide--> Hidden
//
// Update and UpdateMode are no-ops while hidden or after the editor has
// been removed. Missing handles (no float container, no toolbar) shrink
// the work instead of failing: nothing in this package returns an error.
//
// # Update pipeline
//
// One Update pass always runs the same stages in the same order:
//
//	max-width -> measure natural width -> refresh split toolbar
//	  -> reposition -> docking refresh/reset -> popup broadcast
//
// Each stage takes the previous stage's result as its argument, so the
// order is fixed by the types rather than by convention. The measurement
// stage temporarily strips positioning styles and always restores them
// before returning.
package header
