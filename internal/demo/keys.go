package demo

import (
	"github.com/dshills/inlinechrome/internal/keying/key"
	"github.com/dshills/inlinechrome/internal/renderer/backend"
)

// convertKeyEvent converts a backend key event to a key.Event.
func convertKeyEvent(ev backend.Event) key.Event {
	mods := key.ModNone
	if ev.Mod.Has(backend.ModCtrl) {
		mods = mods.With(key.ModCtrl)
	}
	if ev.Mod.Has(backend.ModAlt) {
		mods = mods.With(key.ModAlt)
	}
	if ev.Mod.Has(backend.ModShift) {
		mods = mods.With(key.ModShift)
	}
	if ev.Mod.Has(backend.ModMeta) {
		mods = mods.With(key.ModMeta)
	}

	switch ev.Key {
	case backend.KeyRune:
		return key.NewRuneEvent(ev.Rune, mods)
	case backend.KeyBacktab:
		return key.NewEvent(key.KeyTab, mods.With(key.ModShift))
	case backend.KeyCtrlC:
		return key.NewRuneEvent('c', mods.With(key.ModCtrl))
	}
	return key.NewEvent(mapBackendKey(ev.Key), mods)
}

// mapBackendKey maps a backend.Key to a key.Key.
func mapBackendKey(bk backend.Key) key.Key {
	switch bk {
	case backend.KeyEscape:
		return key.KeyEscape
	case backend.KeyEnter:
		return key.KeyEnter
	case backend.KeyTab:
		return key.KeyTab
	case backend.KeyHome:
		return key.KeyHome
	case backend.KeyEnd:
		return key.KeyEnd
	case backend.KeyPageUp:
		return key.KeyPageUp
	case backend.KeyPageDown:
		return key.KeyPageDown
	case backend.KeyUp:
		return key.KeyUp
	case backend.KeyDown:
		return key.KeyDown
	case backend.KeyLeft:
		return key.KeyLeft
	case backend.KeyRight:
		return key.KeyRight
	default:
		return key.KeyNone
	}
}
