package app

import (
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/dshills/inlinechrome/internal/config"
	"github.com/dshills/inlinechrome/internal/config/notify"
	"github.com/dshills/inlinechrome/internal/docking"
	"github.com/dshills/inlinechrome/internal/dom"
	"github.com/dshills/inlinechrome/internal/event"
	"github.com/dshills/inlinechrome/internal/geom"
	"github.com/dshills/inlinechrome/internal/header"
	"github.com/dshills/inlinechrome/internal/popup"
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. Session log entries carry the session ID.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithBus shares an event bus between sessions.
func WithBus(bus *event.Bus) Option {
	return func(s *Session) {
		if bus != nil {
			s.bus = bus
		}
	}
}

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// layoutOptions are the option paths that move or resize the toolbar.
var layoutOptions = []string{
	"fixed_toolbar_container",
	"toolbar_sticky",
	"toolbar_sticky_offset",
	"toolbar_location",
	"toolbar_mode",
	"max_width",
}

// Session is one inline editor and its toolbar.
type Session struct {
	id   string
	doc  dom.Document
	refs header.Refs
	opts *config.Store
	log  *zap.Logger

	bus    *event.Bus
	dock   *docking.Sticky
	header *header.Header
	popups *popup.Registry
	cfgSubs []*notify.Subscription

	// set by layout option changes, consumed by the reload that follows
	layoutChanged bool

	removed    bool
	closed     bool
	lastTarget geom.Rect
}

// NewSession builds the header and its collaborators for the editor whose
// editable element is refs.Target.
func NewSession(doc dom.Document, refs header.Refs, opts *config.Store, options ...Option) (*Session, error) {
	if refs.Target == nil {
		return nil, ErrNoTarget
	}
	if opts == nil {
		return nil, ErrNoOptions
	}
	s := &Session{
		id:   uuid.NewString(),
		doc:  doc,
		refs: refs,
		opts: opts,
		log:  zap.NewNop(),
	}
	for _, opt := range options {
		opt(s)
	}
	s.log = s.log.With(zap.String("session", s.id))
	if s.bus == nil {
		s.bus = event.NewBus(event.WithLogger(s.log))
	}

	s.dock = docking.NewSticky(doc,
		docking.WithContext(s.targetBox),
		docking.WithOffset(func() float64 { return s.opts.Current().ToolbarStickyOffset }),
		docking.WithLogger(s.log),
	)
	s.header = header.New(doc, refs,
		header.WithOptions(opts),
		header.WithDocking(s.dock),
		header.WithBroadcaster(s.bus),
		header.WithEditor(s),
		header.WithLogger(s.log),
	)
	s.header.SetupMode(s.header.Mode())

	popups, err := popup.NewRegistry(s.bus, popup.WithLogger(s.log))
	if err != nil {
		return nil, &InitError{Component: "popups", Err: err}
	}
	s.popups = popups

	for _, path := range layoutOptions {
		s.cfgSubs = append(s.cfgSubs, opts.SubscribePath(path, s.layoutOptionChanged))
	}
	s.cfgSubs = append(s.cfgSubs, opts.Subscribe(func(c notify.Change) {
		if c.Type != notify.ChangeReload || !s.layoutChanged {
			return
		}
		s.layoutChanged = false
		s.ConfigChanged()
	}))

	s.log.Debug("Session created", zap.String("target", refs.Target.ID()))
	return s, nil
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Header returns the session's header.
func (s *Session) Header() *header.Header { return s.header }

// Bus returns the event bus the header broadcasts on.
func (s *Session) Bus() *event.Bus { return s.bus }

// Popups returns the popup registry.
func (s *Session) Popups() *popup.Registry { return s.popups }

// Docking returns the docking controller.
func (s *Session) Docking() *docking.Sticky { return s.dock }

// IsRemoved implements header.Editor.
func (s *Session) IsRemoved() bool { return s.removed || s.closed }

// Focus shows the toolbar.
func (s *Session) Focus() {
	if s.IsRemoved() {
		return
	}
	s.lastTarget = s.targetRect()
	s.header.Show()
}

// Blur hides the toolbar.
func (s *Session) Blur() {
	s.header.Hide()
}

// Remove tears the editor down. The header stays hidden from then on.
func (s *Session) Remove() {
	s.removed = true
	s.header.Hide()
	s.log.Debug("Editor removed")
}

// Scroll re-resolves the mode and lets docking follow the page.
func (s *Session) Scroll() {
	if !s.header.IsVisible() {
		return
	}
	s.header.UpdateMode(true)

	opts := s.opts.Current()
	if opts.ToolbarSticky && !opts.UseFixedContainer() && s.refs.Float != nil {
		s.dock.Refresh(s.refs.Float)
		s.bus.Broadcast(event.TopicRepositionPopups, "session")
	}
}

// Resize repositions from scratch.
func (s *Session) Resize() {
	s.header.Update(true)
}

// NodeChange repositions when the editor's box changed since the last pass.
func (s *Session) NodeChange() {
	if !s.header.IsVisible() {
		return
	}
	box := s.targetRect()
	if box.Equals(s.lastTarget) {
		return
	}
	s.lastTarget = box
	s.header.Update(false)
}

func (s *Session) layoutOptionChanged(c notify.Change) {
	if c.Type != notify.ChangeSet {
		return
	}
	s.log.Debug("Layout option changed", zap.String("option", c.Path), zap.String("source", c.Source))
	s.layoutChanged = true
}

// ConfigChanged applies a new options snapshot.
func (s *Session) ConfigChanged() {
	if !s.header.IsVisible() {
		return
	}
	s.header.UpdateMode(false)
	s.header.Update(true)
}

// Close hides the toolbar and releases subscriptions. It is safe to call
// more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.header.Hide()
	s.closed = true

	var err error
	for _, sub := range s.cfgSubs {
		sub.Unsubscribe()
	}
	s.cfgSubs = nil
	if s.popups != nil {
		err = multierr.Append(err, s.popups.Close())
	}
	s.log.Debug("Session closed")
	return err
}

func (s *Session) targetRect() geom.Rect {
	return s.doc.BoundingBox(s.refs.Target)
}

func (s *Session) targetBox() (geom.Rect, bool) {
	return s.targetRect(), true
}
