// Package topic provides hierarchical dot-separated topics with wildcard
// matching.
//
//	ui.popups.reposition   exact topic
//	ui.popups.*            one segment wildcard
//	ui.**                  zero or more segments
package topic
