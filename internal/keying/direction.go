package keying

import (
	"github.com/dshills/inlinechrome/internal/config"
	"github.com/dshills/inlinechrome/internal/dom"
)

// DirectionFunc reports the text direction of a component's host.
type DirectionFunc func(c Component) config.Direction

// StaticDirection always reports d.
func StaticDirection(d config.Direction) DirectionFunc {
	return func(Component) config.Direction { return d }
}

// OptionsDirection reads the directionality option on every call.
func OptionsDirection(src config.Source) DirectionFunc {
	return func(Component) config.Direction {
		if d := src.Current().Directionality; d.Valid() {
			return d
		}
		return config.LTR
	}
}

// ElementDirection uses the component element's direction style when it
// has one and falls back otherwise.
func ElementDirection(s dom.Styles, fallback DirectionFunc) DirectionFunc {
	return func(c Component) config.Direction {
		if v, ok := s.Style(c.Element(), dom.PropDir); ok {
			if d := config.Direction(v); d.Valid() {
				return d
			}
		}
		if fallback == nil {
			return config.LTR
		}
		return fallback(c)
	}
}
