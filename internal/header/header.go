package header

import (
	"go.uber.org/zap"

	"github.com/dshills/inlinechrome/internal/config"
	"github.com/dshills/inlinechrome/internal/docking"
	"github.com/dshills/inlinechrome/internal/dom"
	"github.com/dshills/inlinechrome/internal/event"
	"github.com/dshills/inlinechrome/internal/event/topic"
	"github.com/dshills/inlinechrome/internal/geom"
)

// Attribute and class names written to the page.
const (
	// FocusClass marks the editable body while the toolbar is shown.
	FocusClass = "ic-edit-focus"

	// VerticalDirAttr tells dropdowns which way to open.
	VerticalDirAttr = "data-vertical-dir"

	VerticalTopToBottom = "toptobottom"
	VerticalBottomToTop = "bottomtotop"
)

// eventSource names the header on broadcasts.
const eventSource = "header"

// Toolbar is a toolbar that can split overflowing items into a drawer.
type Toolbar interface {
	// Rows returns the toolbar's row elements. The second row, if any, is
	// the overflow drawer.
	Rows() []dom.Element
	// Refresh re-flows items between the main row and the drawer.
	Refresh()
}

// Editor reports the lifecycle of the owning editor.
type Editor interface {
	IsRemoved() bool
}

// Broadcaster sends a named, payload-less notification.
type Broadcaster interface {
	Broadcast(t topic.Topic, source string)
}

// Refs are the element handles the header works on. Any of them may be
// nil; the operations that need a missing handle do nothing.
type Refs struct {
	// Target is the editable element the toolbar follows.
	Target dom.Element
	// Body receives FocusClass. Defaults to Target.
	Body dom.Element
	// Outer is the chrome container that gets positioned.
	Outer dom.Element
	// Float is the element handed to docking. Defaults to Outer.
	Float dom.Element
	// Toolbar is set when the toolbar can split into a drawer.
	Toolbar Toolbar
	// Layers are floating UI layers shown and hidden with the header.
	Layers []dom.Element
}

// Option configures a Header.
type Option func(*Header)

// WithOptions sets where editor options are read from on every call.
func WithOptions(src config.Source) Option {
	return func(h *Header) {
		if src != nil {
			h.opts = src
		}
	}
}

// WithDocking sets the docking controller.
func WithDocking(c docking.Controller) Option {
	return func(h *Header) {
		if c != nil {
			h.docking = c
		}
	}
}

// WithBroadcaster sets where notifications go.
func WithBroadcaster(b Broadcaster) Option {
	return func(h *Header) {
		if b != nil {
			h.bus = b
		}
	}
}

// WithEditor sets the owning editor.
func WithEditor(e Editor) Option {
	return func(h *Header) {
		if e != nil {
			h.editor = e
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(h *Header) {
		if log != nil {
			h.log = log
		}
	}
}

// Header keeps an inline toolbar attached to its editor.
//
// Header is not safe for concurrent use. All calls must come from the
// goroutine that owns the page.
type Header struct {
	doc     dom.Document
	refs    Refs
	opts    config.Source
	docking docking.Controller
	bus     Broadcaster
	editor  Editor
	cell    *ModeCell
	log     *zap.Logger

	visible bool
}

// New creates a hidden header. The initial mode is bottom when the
// location is forced to bottom and top otherwise.
func New(doc dom.Document, refs Refs, opts ...Option) *Header {
	h := &Header{
		doc:     doc,
		refs:    refs,
		opts:    config.Fixed(config.Default()),
		docking: nopDocking{},
		bus:     nopBroadcaster{},
		editor:  nopEditor{},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.refs.Body == nil {
		h.refs.Body = h.refs.Target
	}
	if h.refs.Float == nil {
		h.refs.Float = h.refs.Outer
	}
	initial := docking.ModeTop
	if h.opts.Current().ToolbarLocation == config.LocationBottom {
		initial = docking.ModeBottom
	}
	h.cell = NewModeCell(initial)
	return h
}

// Mode returns the current docking mode.
func (h *Header) Mode() docking.Mode { return h.cell.Get() }

// IsPositionedAtTop reports whether the toolbar sits above the target.
func (h *Header) IsPositionedAtTop() bool { return h.cell.IsPositionedAtTop() }

// IsVisible reports whether the header is shown and its editor still exists.
func (h *Header) IsVisible() bool {
	return h.visible && !h.editor.IsRemoved()
}

// Show displays the toolbar and positions it.
func (h *Header) Show() {
	h.visible = true
	if h.refs.Outer != nil {
		h.doc.SetStyle(h.refs.Outer, dom.PropDisplay, "flex")
	}
	if h.refs.Body != nil {
		h.doc.AddClass(h.refs.Body, FocusClass)
	}
	for _, l := range h.refs.Layers {
		h.doc.RemoveStyle(l, dom.PropDisplay)
	}
	h.UpdateMode(false)
	h.Update(false)
	h.log.Debug("Header shown", zap.String("mode", string(h.cell.Get())))
	h.bus.Broadcast(event.TopicHeaderShown, eventSource)
}

// Hide conceals the toolbar and its floating layers.
func (h *Header) Hide() {
	h.visible = false
	if h.refs.Outer != nil {
		h.doc.SetStyle(h.refs.Outer, dom.PropDisplay, "none")
		if h.refs.Body != nil {
			h.doc.RemoveClass(h.refs.Body, FocusClass)
		}
	}
	for _, l := range h.refs.Layers {
		h.doc.SetStyle(l, dom.PropDisplay, "none")
	}
	h.log.Debug("Header hidden")
	h.bus.Broadcast(event.TopicHeaderHidden, eventSource)
}

// SetupMode commits mode: docking may only use it, the mode cell holds it,
// and the float container advertises which way dropdowns should open.
func (h *Header) SetupMode(mode docking.Mode) {
	if h.refs.Float == nil {
		return
	}
	h.docking.SetAllowedModes(h.refs.Float, []docking.Mode{mode})
	h.cell.Set(mode)

	dir := VerticalBottomToTop
	if h.cell.IsPositionedAtTop() {
		dir = VerticalTopToBottom
	}
	h.doc.SetAttribute(h.refs.Float, VerticalDirAttr, dir)
}

// UpdateMode re-resolves the mode for a sticky toolbar. When it changes the
// new mode is set up and, if updateUI is set, one full Update with docking
// reset follows.
func (h *Header) UpdateMode(updateUI bool) {
	opts := h.opts.Current()
	if opts.UseFixedContainer() || !opts.ToolbarSticky || !h.IsVisible() {
		return
	}
	if h.refs.Float == nil {
		return
	}

	prev := h.cell.Get()
	next := h.resolveMode(opts)
	if next == prev {
		return
	}

	h.SetupMode(next)
	h.log.Debug("Header mode changed",
		zap.String("from", string(prev)),
		zap.String("to", string(next)))
	h.bus.Broadcast(event.TopicHeaderMode, eventSource)
	if updateUI {
		h.Update(true)
	}
}

// Update runs one positioning pass. resetDocking discards docking state
// instead of refreshing it.
func (h *Header) Update(resetDocking bool) {
	if !h.IsVisible() {
		return
	}
	opts := h.opts.Current()

	w := h.applyMaxWidth(opts)
	m := h.measure(w, opts)
	t := h.refreshToolbar(m, opts)
	p := h.reposition(t, opts)
	d := h.refreshDocking(p, opts, resetDocking)
	h.repositionPopups(d)
}

// resolveMode evaluates ResolveMode against the live page.
func (h *Header) resolveMode(opts config.Options) docking.Mode {
	if opts.ToolbarLocation != config.LocationAuto || h.refs.Target == nil {
		return ResolveMode(opts.ToolbarLocation, geom.Rect{}, 0, 0, geom.Rect{})
	}
	height := EffectiveToolbarHeight(h.doc.Height(h.refs.Float), h.drawerOffset(opts))
	return ResolveMode(
		opts.ToolbarLocation,
		h.doc.BoundingBox(h.refs.Target),
		height,
		h.doc.DocumentHeight(),
		h.doc.Viewport(),
	)
}

// drawerOffset is the height of the overflow drawer row when the toolbar
// is split and has one.
func (h *Header) drawerOffset(opts config.Options) float64 {
	if !opts.ToolbarMode.IsSplit() || h.refs.Toolbar == nil {
		return 0
	}
	rows := h.refs.Toolbar.Rows()
	if len(rows) < 2 {
		return 0
	}
	return h.doc.Height(rows[1])
}

type nopDocking struct{}

func (nopDocking) SetAllowedModes(dom.Element, []docking.Mode) {}
func (nopDocking) Reset(dom.Element)                           {}
func (nopDocking) Refresh(dom.Element)                         {}

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(topic.Topic, string) {}

type nopEditor struct{}

func (nopEditor) IsRemoved() bool { return false }
