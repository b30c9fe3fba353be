package keying

import (
	"fmt"

	"github.com/dshills/inlinechrome/internal/keying/key"
)

// Keymap binds key events to Handlers for a component.
type Keymap struct {
	bindings map[string]Handler
	info     Info
}

// NewKeymap creates an empty keymap. info is passed to every handler.
func NewKeymap(info Info) *Keymap {
	return &Keymap{
		bindings: make(map[string]Handler),
		info:     info,
	}
}

// Bind binds spec, e.g. "Left" or "Alt+Right", to h. A later Bind of the
// same key replaces the earlier one.
func (k *Keymap) Bind(spec string, h Handler) error {
	ev, err := key.Parse(spec)
	if err != nil {
		return fmt.Errorf("bind %q: %w", spec, err)
	}
	k.bindings[ev.String()] = h
	return nil
}

// Handle runs the handler bound to ev and reports whether it consumed ev.
// Unbound keys are not consumed.
func (k *Keymap) Handle(c Component, ev key.Event) bool {
	h, ok := k.bindings[ev.String()]
	if !ok || h == nil {
		return false
	}
	return h(c, ev, k.info)
}

// Len returns the number of bound keys.
func (k *Keymap) Len() int { return len(k.bindings) }

// Arrows builds the usual arrow-key keymap for a row or grid of items.
// Up and Down are left unbound when their MoveFunc is nil.
func Arrows(r *Resolver, left, right, up, down MoveFunc, info Info) *Keymap {
	km := NewKeymap(info)
	km.bindings[key.NewEvent(key.KeyLeft, key.ModNone).String()] = r.West(left, right)
	km.bindings[key.NewEvent(key.KeyRight, key.ModNone).String()] = r.East(left, right)
	if up != nil {
		km.bindings[key.NewEvent(key.KeyUp, key.ModNone).String()] = r.North(up)
	}
	if down != nil {
		km.bindings[key.NewEvent(key.KeyDown, key.ModNone).String()] = r.South(down)
	}
	return km
}
