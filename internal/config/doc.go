// Package config holds the editor options that drive toolbar placement and
// keyboard navigation.
//
// Options are assembled from layers, lowest precedence first:
//
//	defaults -> config file (.toml or .yaml) -> INLINECHROME_* environment
//
// A Store publishes the result as an immutable snapshot. Positioning code
// reads Current() once at the start of each operation, so a reload that
// lands between two passes is picked up by the next pass and never observed
// half-applied.
//
// # Options
//
//	fixed_toolbar_container  selector of an externally positioned container ("" = none)
//	toolbar_sticky           dock the toolbar to the viewport edge while scrolling
//	toolbar_sticky_offset    distance from the viewport edge when docked, px
//	toolbar_location         auto | top | bottom
//	toolbar_mode             floating | sliding | wrap | scrolling
//	max_width                maximum toolbar width, px (0 = derive from body)
//	directionality           ltr | rtl
//	logging                  console and file sinks, see package logging
package config
