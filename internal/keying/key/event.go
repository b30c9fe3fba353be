package key

// Event is a single key press.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// NewEvent creates an event for a special key.
func NewEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// NewRuneEvent creates an event for a character key.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// String returns the canonical form, e.g. "A-Left", "S-Tab" or "x".
// Shift is folded into the character for rune events.
func (e Event) String() string {
	mods := e.Modifiers
	name := e.Key.String()
	if e.Key == KeyRune {
		name = string(e.Rune)
		if e.Rune == ' ' {
			name = "Space"
		}
		mods &^= ModShift
	}
	if prefix := mods.ShortString(); prefix != "" {
		return prefix + "-" + name
	}
	return name
}
