// Package key describes the key presses that drive keyboard navigation.
//
// An Event is a key plus modifiers. Events are written and parsed in two
// notations:
//
//	"Left", "Alt+Right", "Shift+Tab"      modifier style
//	"<A-Left>", "<S-Tab>", "<C-Up>"       Vim style
//
// Event.String always produces the short hyphenated form ("A-Left") so it
// can be used as a map key.
package key
