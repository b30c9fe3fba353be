// Package demo runs inline editors on a simulated page in the terminal.
//
// The page is laid out in pixels and drawn through a renderer.Painter, so
// scrolling with the arrow keys shows the toolbar following its editor,
// flipping below it when there is no room above and docking to the
// viewport edge.
//
// Key bindings:
//
//	Tab, Shift+Tab   focus the next or previous editor
//	Esc              blur the focused editor
//	Up, Down         scroll one row
//	PgUp, PgDn       scroll one screen
//	[, Alt+Left      previous toolbar button (visual left)
//	], Alt+Right     next toolbar button (visual right)
//	Home, End        first or last toolbar button
//	Alt+Down         scripted movement, when a script is loaded
//	Enter            press the highlighted button
//	?                toggle the tips popup
//	x                remove the focused editor
//	q, Ctrl+C        quit
package demo
