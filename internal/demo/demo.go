package demo

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/dshills/inlinechrome/internal/app"
	"github.com/dshills/inlinechrome/internal/config"
	"github.com/dshills/inlinechrome/internal/dom"
	"github.com/dshills/inlinechrome/internal/event"
	"github.com/dshills/inlinechrome/internal/geom"
	"github.com/dshills/inlinechrome/internal/header"
	"github.com/dshills/inlinechrome/internal/keying"
	"github.com/dshills/inlinechrome/internal/keying/flow"
	"github.com/dshills/inlinechrome/internal/keying/key"
	"github.com/dshills/inlinechrome/internal/keying/script"
	"github.com/dshills/inlinechrome/internal/popup"
	"github.com/dshills/inlinechrome/internal/renderer"
	"github.com/dshills/inlinechrome/internal/renderer/backend"
	"github.com/dshills/inlinechrome/internal/renderer/core"
)

// Page size in pixels.
const (
	DocumentWidth  = 1200
	DocumentHeight = 3000
)

type editorSpec struct {
	name string
	box  geom.Rect
	text []string
}

var defaultEditors = []editorSpec{
	{
		name: "intro",
		box:  geom.NewRect(40, 120, 700, 200),
		text: []string{"Scroll down and watch the toolbar dock.", "Tab moves between editors."},
	},
	{
		name: "wide",
		box:  geom.NewRect(600, 1000, 560, 240),
		text: []string{"This editor runs past narrow terminals,", "so its toolbar is clamped to the viewport."},
	},
	{
		name: "footer",
		box:  geom.NewRect(40, 2700, 700, 260),
		text: []string{"The last editor on the page."},
	},
}

var tipsText = []string{
	" [ ] move between buttons ",
	" Enter presses a button   ",
	" ? hides these tips       ",
}

type editor struct {
	name    string
	text    []string
	target  *dom.Node
	toolbar *toolbar
	session *app.Session

	tips      *dom.Node
	tipsPopup *popup.Anchored
	tipsShown bool
}

// stopLoop is posted to end Run.
type stopLoop struct{}

// Option configures a Demo.
type Option func(*Demo)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(d *Demo) {
		if log != nil {
			d.log = log
		}
	}
}

// WithScript binds Alt+Down to a scripted movement.
func WithScript(s *script.Script) Option {
	return func(d *Demo) { d.script = s }
}

// Demo is the interactive page.
type Demo struct {
	be      backend.Backend
	page    *dom.Page
	painter *renderer.Painter
	store   *config.Store
	log     *zap.Logger
	bus     *event.Bus
	script  *script.Script

	editors []*editor
	active  int

	focus    *keying.ManagedFocus
	resolver *keying.Resolver
	keymap   *keying.Keymap

	status string
	quit   bool
}

// New builds the page for an initialized backend.
func New(be backend.Backend, store *config.Store, opts ...Option) (*Demo, error) {
	d := &Demo{
		be:     be,
		store:  store,
		log:    zap.NewNop(),
		active: -1,
		status: "Tab focuses an editor",
	}
	for _, opt := range opts {
		opt(d)
	}

	w, h := be.Size()
	d.page = dom.NewPage(DocumentWidth, DocumentHeight, 0, 0)
	d.painter = renderer.NewPainter(be, d.page)
	d.resizePage(w, h)
	d.bus = event.NewBus(event.WithLogger(d.log))

	d.focus = keying.NewManagedFocus(d.highlight)
	d.resolver = keying.NewResolver(d.focus,
		keying.WithDirection(keying.ElementDirection(d.page, keying.OptionsDirection(store))),
		keying.WithLogger(d.log),
	)
	if err := d.buildKeymap(); err != nil {
		return nil, err
	}

	for _, spec := range defaultEditors {
		ed, err := d.addEditor(spec)
		if err != nil {
			return nil, multierr.Append(err, d.Close())
		}
		d.editors = append(d.editors, ed)
	}
	return d, nil
}

func (d *Demo) addEditor(spec editorSpec) (*editor, error) {
	ed := &editor{name: spec.name, text: spec.text}
	ed.target = d.page.Add(spec.name, nil, spec.box)
	ed.toolbar = newToolbar(d.page, d.painter, spec.name, defaultButtons)

	_, ch := d.painter.CellSize()
	ed.tips = d.page.Add(spec.name+"-tips", nil, geom.NewRect(0, 0, 260, ch*float64(len(tipsText))))
	d.page.SetStyle(ed.tips, dom.PropDisplay, "none")

	session, err := app.NewSession(d.page, header.Refs{
		Target:  ed.target,
		Outer:   ed.toolbar.outer,
		Float:   ed.toolbar.outer,
		Toolbar: ed.toolbar,
	}, d.store, app.WithBus(d.bus), app.WithLogger(d.log.Named(spec.name)))
	if err != nil {
		return nil, fmt.Errorf("editor %s: %w", spec.name, err)
	}
	ed.session = session
	ed.tipsPopup = popup.NewAnchored(d.page, ed.tips, ed.toolbar.outer,
		popup.WithID(spec.name+"-tips"),
		popup.WithPreferAbove(session.Header().IsPositionedAtTop),
	)
	return ed, nil
}

func (d *Demo) buildKeymap() error {
	items := flow.Enabled(d.page, flow.WithClass(d.page, ButtonClass))
	left, right := flow.Left(d.page, items), flow.Right(d.page, items)

	type binding struct {
		spec string
		h    keying.Handler
	}
	d.keymap = keying.NewKeymap(keying.Info{Cycle: true})
	bindings := []binding{
		{"[", d.resolver.West(left, right)},
		{"Alt+Left", d.resolver.West(left, right)},
		{"]", d.resolver.East(left, right)},
		{"Alt+Right", d.resolver.East(left, right)},
		{"Home", d.resolver.North(flow.First(d.page, items))},
		{"End", d.resolver.South(flow.Last(d.page, items))},
	}
	if d.script != nil {
		list := func(c dom.Element) []dom.Element { return flow.Items(d.page, c, items) }
		bindings = append(bindings, binding{"Alt+Down", d.resolver.South(d.script.MoveFunc(list))})
	}
	for _, b := range bindings {
		if err := d.keymap.Bind(b.spec, b.h); err != nil {
			return err
		}
	}
	return nil
}

// Page returns the simulated page.
func (d *Demo) Page() *dom.Page { return d.page }

// Status returns the status line message.
func (d *Demo) Status() string { return d.status }

// Post runs fn on the event loop. It is safe to call from any goroutine.
func (d *Demo) Post(fn func()) {
	d.be.Interrupt(fn)
}

// Run draws the page and handles events until quit or ctx is done.
func (d *Demo) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { d.be.Interrupt(stopLoop{}) })
	defer stop()

	d.draw()
	for !d.quit {
		d.HandleEvent(d.be.PollEvent())
	}
	return ctx.Err()
}

// HandleEvent applies one backend event and redraws.
func (d *Demo) HandleEvent(ev backend.Event) {
	switch ev.Type {
	case backend.EventKey:
		d.handleKey(convertKeyEvent(ev))
	case backend.EventResize:
		d.resizePage(ev.Width, ev.Height)
		for _, ed := range d.editors {
			ed.session.Resize()
		}
	case backend.EventInterrupt:
		switch data := ev.Data.(type) {
		case func():
			data()
		case stopLoop:
			d.quit = true
		}
	}
	d.draw()
}

func (d *Demo) handleKey(ev key.Event) {
	if ed := d.current(); ed != nil && d.keymap.Handle(ed.toolbar, ev) {
		d.repositionTips(ed)
		return
	}

	_, ch := d.painter.CellSize()
	switch ev.String() {
	case "Tab":
		d.cycleEditors(1)
	case "S-Tab":
		d.cycleEditors(-1)
	case "Esc":
		d.blur()
	case "Up":
		d.scroll(-ch)
	case "Down":
		d.scroll(ch)
	case "PgUp":
		d.scroll(-(d.page.Viewport().Height - ch))
	case "PgDn":
		d.scroll(d.page.Viewport().Height - ch)
	case "Enter":
		d.press()
	case "?":
		d.toggleTips()
	case "x":
		d.removeCurrent()
	case "q", "C-c":
		d.quit = true
	}
}

func (d *Demo) current() *editor {
	if d.active < 0 || d.active >= len(d.editors) {
		return nil
	}
	return d.editors[d.active]
}

// cycleEditors focuses the next editor in direction delta, wrapping around
// and skipping removed ones. With nothing focused it starts at either end.
func (d *Demo) cycleEditors(delta int) {
	n := len(d.editors)
	i := d.active + delta
	if d.active < 0 {
		i = 0
		if delta < 0 {
			i = n - 1
		}
	}
	for range n {
		i = ((i % n) + n) % n
		if ed := d.editors[i]; !ed.session.IsRemoved() {
			d.blur()
			d.activate(i)
			return
		}
		i += delta
	}
	d.status = "No editors left"
}

func (d *Demo) activate(i int) {
	ed := d.editors[i]
	d.active = i

	box := d.page.BoundingBox(ed.target)
	vp := d.page.Viewport()
	if box.Bottom() < vp.Top() || box.Top() > vp.Bottom() {
		_, ch := d.painter.CellSize()
		d.page.ScrollTo(vp.X, box.Y-3*ch)
	}

	d.page.Focus(ed.target)
	ed.session.Focus()
	if _, ok := d.focus.Get(ed.toolbar); !ok {
		if first := flow.Items(d.page, ed.toolbar.outer, flow.Enabled(d.page, flow.WithClass(d.page, ButtonClass))); len(first) > 0 {
			d.focus.Set(ed.toolbar, first[0])
		}
	}
	d.status = "Editing " + ed.name
}

func (d *Demo) blur() {
	ed := d.current()
	if ed == nil {
		return
	}
	d.hideTips(ed)
	ed.session.Blur()
	d.page.Focus(nil)
	d.active = -1
	d.status = "Blurred " + ed.name
}

func (d *Demo) scroll(dy float64) {
	vp := d.page.Viewport()
	d.page.ScrollTo(vp.X, vp.Y+dy)
	for _, ed := range d.editors {
		ed.session.Scroll()
	}
}

func (d *Demo) press() {
	ed := d.current()
	if ed == nil {
		return
	}
	if btn, ok := d.focus.Get(ed.toolbar); ok {
		d.status = ed.toolbar.Label(btn) + " pressed in " + ed.name
	}
}

func (d *Demo) removeCurrent() {
	ed := d.current()
	if ed == nil {
		return
	}
	d.hideTips(ed)
	ed.session.Remove()
	d.page.Focus(nil)
	d.active = -1
	d.status = "Removed " + ed.name
}

func (d *Demo) toggleTips() {
	ed := d.current()
	if ed == nil {
		return
	}
	if ed.tipsShown {
		d.hideTips(ed)
		return
	}
	if err := ed.session.Popups().Mount(ed.tipsPopup, event.PriorityNormal); err != nil {
		d.log.Warn("Mounting tips failed", zap.Error(err))
		return
	}
	ed.tipsShown = true
	d.page.RemoveStyle(ed.tips, dom.PropDisplay)
	ed.tipsPopup.Reposition()
}

func (d *Demo) hideTips(ed *editor) {
	if !ed.tipsShown {
		return
	}
	ed.session.Popups().Unmount(ed.tipsPopup.ID())
	d.page.SetStyle(ed.tips, dom.PropDisplay, "none")
	ed.tipsShown = false
}

func (d *Demo) repositionTips(ed *editor) {
	if ed.tipsShown {
		ed.tipsPopup.Reposition()
	}
}

// highlight moves ActiveClass to the newly focused button.
func (d *Demo) highlight(c keying.Component, target dom.Element) {
	for _, el := range flow.Items(d.page, c.Element(), flow.WithClass(d.page, ButtonClass)) {
		d.page.RemoveClass(el, ActiveClass)
	}
	d.page.AddClass(target, ActiveClass)
}

func (d *Demo) resizePage(w, h int) {
	cw, ch := d.painter.CellSize()
	// The bottom row is the status line.
	d.page.Resize(float64(w)*cw, float64(max(h-1, 1))*ch)
}

// Close closes every session.
func (d *Demo) Close() error {
	var err error
	for _, ed := range d.editors {
		err = multierr.Append(err, ed.session.Close())
	}
	return err
}

var (
	editorStyle   = core.DefaultStyle().WithBackground(core.ColorFromIndex(236))
	activeStyle   = core.DefaultStyle().WithBackground(core.ColorFromIndex(238))
	removedStyle  = editorStyle.Dim()
	toolbarStyle  = core.DefaultStyle().WithBackground(core.ColorFromIndex(24))
	buttonStyle   = toolbarStyle.WithForeground(core.ColorFromIndex(255))
	disabledStyle = buttonStyle.Dim()
	selectedStyle = buttonStyle.Reverse()
	tipsStyle     = core.DefaultStyle().WithBackground(core.ColorFromIndex(58))
	statusStyle   = core.DefaultStyle().Reverse()
)

func (d *Demo) draw() {
	p := d.painter
	p.Clear()

	for i, ed := range d.editors {
		style := editorStyle
		title := ed.name
		switch {
		case ed.session.IsRemoved():
			style = removedStyle
			title += " (removed)"
		case i == d.active:
			style = activeStyle
		}
		p.Box(ed.target, ' ', style)
		p.Label(ed.target, 0, title, style.Bold())
		for row, line := range ed.text {
			p.Label(ed.target, row+2, line, style)
		}
	}

	for _, ed := range d.editors {
		if !ed.session.Header().IsVisible() {
			continue
		}
		p.Box(ed.toolbar.outer, ' ', toolbarStyle)
		for _, btn := range ed.toolbar.buttons {
			style := buttonStyle
			switch {
			case d.page.HasClass(btn, ActiveClass):
				style = selectedStyle
			case !flow.Enabled(d.page, flow.All)(btn):
				style = disabledStyle
			}
			p.Label(btn, 0, pad(ed.toolbar.Label(btn)), style)
		}
		if ed.tipsShown && p.Box(ed.tips, ' ', tipsStyle) {
			for row, line := range tipsText {
				p.Label(ed.tips, row, line, tipsStyle)
			}
		}
	}

	d.drawStatus()
	p.Show()
}

func (d *Demo) drawStatus() {
	w, h := d.be.Size()
	if h == 0 {
		return
	}
	text := " " + d.status
	if ed := d.current(); ed != nil {
		mode := ed.session.Header().Mode()
		docked := "no"
		if m, ok := ed.session.Docking().IsDocked(ed.toolbar.outer); ok {
			docked = string(m)
		}
		text += fmt.Sprintf(" | toolbar %s, docked %s", mode, docked)
	}
	text += fmt.Sprintf(" | scroll %d", geom.Round(d.page.Viewport().Y))

	y := h - 1
	d.be.Fill(core.RectFromSize(y, 0, 1, w), core.Cell{Rune: ' ', Width: 1, Style: statusStyle})
	x := 0
	for _, c := range core.CellsFromString(text, statusStyle) {
		if x >= w {
			break
		}
		d.be.SetCell(x, y, c)
		x++
	}
}
