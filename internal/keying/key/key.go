package key

import (
	"fmt"
	"strings"
)

// Key identifies a non-character key. Character keys use KeyRune with the
// character stored in Event.Rune.
type Key uint8

const (
	KeyNone Key = iota
	KeyEscape
	KeyEnter
	KeyTab
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyRune
)

var keyNames = map[Key]string{
	KeyNone:     "None",
	KeyEscape:   "Esc",
	KeyEnter:    "Enter",
	KeyTab:      "Tab",
	KeyHome:     "Home",
	KeyEnd:      "End",
	KeyPageUp:   "PgUp",
	KeyPageDown: "PgDn",
	KeyUp:       "Up",
	KeyDown:     "Down",
	KeyLeft:     "Left",
	KeyRight:    "Right",
	KeySpace:    "Space",
	KeyRune:     "Rune",
}

// lowercase name and alias -> key
var keyByName = map[string]Key{
	"esc":      KeyEscape,
	"escape":   KeyEscape,
	"enter":    KeyEnter,
	"return":   KeyEnter,
	"cr":       KeyEnter,
	"tab":      KeyTab,
	"home":     KeyHome,
	"end":      KeyEnd,
	"pgup":     KeyPageUp,
	"pageup":   KeyPageUp,
	"pgdn":     KeyPageDown,
	"pagedown": KeyPageDown,
	"up":       KeyUp,
	"down":     KeyDown,
	"left":     KeyLeft,
	"right":    KeyRight,
	"space":    KeySpace,
}

// String returns the key's short name.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", k)
}

// IsArrow reports whether k is one of the four arrow keys.
func (k Key) IsArrow() bool {
	return k >= KeyUp && k <= KeyRight
}

// KeyFromName returns the key with the given name or alias, ignoring case.
// It returns KeyNone for unknown names.
func KeyFromName(name string) Key {
	return keyByName[strings.ToLower(name)]
}
