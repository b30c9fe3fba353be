package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses "Left", "Alt+Left", "A-Left", "<A-Left>" or a single
// character. Parse accepts everything Event.String produces.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	var parts []string
	switch {
	case strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") && len(spec) > 2:
		parts = strings.Split(spec[1:len(spec)-1], "-")
	case strings.Contains(spec, "+") && len(spec) > 1:
		parts = strings.Split(spec, "+")
	case strings.Contains(spec, "-") && len(spec) > 1:
		parts = strings.Split(spec, "-")
	default:
		parts = []string{spec}
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidSpec, p, spec)
		}
		mods = mods.With(mod)
	}

	name := strings.TrimSpace(parts[len(parts)-1])
	if name == "" {
		return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}
	if k := KeyFromName(name); k != KeyNone {
		if k == KeySpace {
			return NewRuneEvent(' ', mods), nil
		}
		return NewEvent(k, mods), nil
	}

	runes := []rune(name)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}
	if unicode.IsUpper(runes[0]) {
		mods = mods.With(ModShift)
	}
	return NewRuneEvent(runes[0], mods), nil
}

// MustParse is Parse for specs known at compile time. It panics on error.
func MustParse(spec string) Event {
	ev, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return ev
}
