package keying

import (
	"go.uber.org/zap"

	"github.com/dshills/inlinechrome/internal/config"
	"github.com/dshills/inlinechrome/internal/dom"
	"github.com/dshills/inlinechrome/internal/keying/key"
)

// Component is a navigable composite widget.
type Component interface {
	// Element returns the widget's container element.
	Element() dom.Element
}

// Info is passed through to movement functions.
type Info struct {
	// Cycle lets movement wrap from the last item to the first and back.
	Cycle bool
}

// MoveFunc returns the element that should receive focus next. It returns
// false to decline, for example at the edge of the navigable set.
type MoveFunc func(container, focused dom.Element, info Info) (dom.Element, bool)

// Handler handles one key event for a component and reports whether it
// consumed the event.
type Handler func(c Component, ev key.Event, info Info) bool

// Option configures a Resolver.
type Option func(*Resolver)

// WithDirection sets how the host's text direction is found.
func WithDirection(fn DirectionFunc) Option {
	return func(r *Resolver) {
		if fn != nil {
			r.direction = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// Resolver builds directional Handlers that share one FocusManager.
type Resolver struct {
	focus     FocusManager
	direction DirectionFunc
	log       *zap.Logger
}

// NewResolver creates a resolver. The host is LTR unless WithDirection
// says otherwise.
func NewResolver(focus FocusManager, opts ...Option) *Resolver {
	r := &Resolver{
		focus:     focus,
		direction: StaticDirection(config.LTR),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// West moves toward the visual left: moveLeft in LTR, moveRight in RTL.
func (r *Resolver) West(moveLeft, moveRight MoveFunc) Handler {
	return func(c Component, ev key.Event, info Info) bool {
		if r.direction(c) == config.RTL {
			return r.move(c, ev, info, moveRight)
		}
		return r.move(c, ev, info, moveLeft)
	}
}

// East moves toward the visual right: moveRight in LTR, moveLeft in RTL.
func (r *Resolver) East(moveLeft, moveRight MoveFunc) Handler {
	return func(c Component, ev key.Event, info Info) bool {
		if r.direction(c) == config.RTL {
			return r.move(c, ev, info, moveLeft)
		}
		return r.move(c, ev, info, moveRight)
	}
}

// North moves with fn regardless of text direction.
func (r *Resolver) North(fn MoveFunc) Handler {
	return func(c Component, ev key.Event, info Info) bool {
		return r.move(c, ev, info, fn)
	}
}

// South moves with fn regardless of text direction.
func (r *Resolver) South(fn MoveFunc) Handler {
	return func(c Component, ev key.Event, info Info) bool {
		return r.move(c, ev, info, fn)
	}
}

func (r *Resolver) move(c Component, ev key.Event, info Info, fn MoveFunc) bool {
	if c == nil || fn == nil || r.focus == nil {
		return false
	}
	focused, ok := r.focus.Get(c)
	if !ok || focused == nil {
		return false
	}
	next, ok := fn(c.Element(), focused, info)
	if !ok || next == nil {
		return false
	}
	r.focus.Set(c, next)
	r.log.Debug("Focus moved",
		zap.String("key", ev.String()),
		zap.String("from", focused.ID()),
		zap.String("to", next.ID()))
	return true
}
