package key

import "strings"

// Modifier is a set of modifier keys.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether m contains mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns m plus mod.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// ShortString returns the hyphenated form, e.g. "C-A".
func (m Modifier) ShortString() string {
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "C")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "A")
	}
	if m.Has(ModShift) {
		parts = append(parts, "S")
	}
	if m.Has(ModMeta) {
		parts = append(parts, "M")
	}
	return strings.Join(parts, "-")
}

var modifierByName = map[string]Modifier{
	"c":       ModCtrl,
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"a":       ModAlt,
	"alt":     ModAlt,
	"opt":     ModAlt,
	"option":  ModAlt,
	"s":       ModShift,
	"shift":   ModShift,
	"m":       ModMeta,
	"d":       ModMeta,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"super":   ModMeta,
}

// ModifierFromName returns the modifier with the given name, ignoring case.
func ModifierFromName(name string) Modifier {
	return modifierByName[strings.ToLower(strings.TrimSpace(name))]
}
