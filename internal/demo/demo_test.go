package demo

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/dshills/inlinechrome/internal/config"
	"github.com/dshills/inlinechrome/internal/docking"
	"github.com/dshills/inlinechrome/internal/dom"
	"github.com/dshills/inlinechrome/internal/keying/script"
	"github.com/dshills/inlinechrome/internal/renderer/backend"
)

func newTestDemo(t *testing.T, opts ...Option) (*Demo, *backend.NullBackend, *config.Store) {
	t.Helper()
	be := backend.NewNullBackend(80, 30)
	if err := be.Init(); err != nil {
		t.Fatal(err)
	}
	store := config.NewStore(config.Default())
	d, err := New(be, store, append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d, be, store
}

func runeKey(r rune) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r}
}

func specialKey(k backend.Key, mod backend.ModMask) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: k, Mod: mod}
}

func send(d *Demo, evs ...backend.Event) {
	for _, ev := range evs {
		d.HandleEvent(ev)
	}
}

func (d *Demo) activeButton(t *testing.T) string {
	t.Helper()
	ed := d.current()
	if ed == nil {
		t.Fatal("no active editor")
	}
	btn, ok := d.focus.Get(ed.toolbar)
	if !ok {
		t.Fatal("no highlighted button")
	}
	return ed.toolbar.Label(btn)
}

func TestDemo_StartsBlurred(t *testing.T) {
	d, be, _ := newTestDemo(t)
	d.draw()

	for _, ed := range d.editors {
		if ed.session.Header().IsVisible() {
			t.Errorf("%s toolbar visible before focus", ed.name)
		}
	}
	if got := be.Row(29); !strings.Contains(got, "Tab focuses an editor") {
		t.Errorf("status row = %q", got)
	}
	if vp := d.Page().Viewport(); vp.Width != 800 || vp.Height != 580 {
		t.Errorf("viewport = %v, want 800x580", vp)
	}
}

func TestDemo_TabShowsToolbarAboveEditor(t *testing.T) {
	d, be, _ := newTestDemo(t)

	send(d, specialKey(backend.KeyTab, backend.ModNone))

	ed := d.current()
	if ed == nil || ed.name != "intro" {
		t.Fatalf("active editor = %v, want intro", ed)
	}
	if !ed.session.Header().IsVisible() {
		t.Fatal("toolbar hidden after focus")
	}
	if box := d.Page().BoundingBox(ed.toolbar.outer); box.Y != 100 || box.X != 40 {
		t.Errorf("toolbar box = %v, want origin 40,100", box)
	}
	if got := be.Row(5); !strings.Contains(got, " Bold  Italic  Link ") {
		t.Errorf("toolbar row = %q", got)
	}
	if got := d.activeButton(t); got != "Bold" {
		t.Errorf("highlighted = %q, want Bold", got)
	}
}

func TestDemo_ToolbarNavigation(t *testing.T) {
	d, _, _ := newTestDemo(t)
	send(d, specialKey(backend.KeyTab, backend.ModNone))

	steps := []struct {
		ev   backend.Event
		want string
	}{
		{runeKey(']'), "Italic"},
		{runeKey(']'), "Link"},
		{runeKey(']'), "Quote"}, // Code is disabled
		{runeKey('['), "Link"},
		{specialKey(backend.KeyRight, backend.ModAlt), "Quote"},
		{specialKey(backend.KeyEnd, backend.ModNone), "Undo"},
		{runeKey(']'), "Bold"}, // wraps
		{specialKey(backend.KeyLeft, backend.ModAlt), "Undo"},
		{specialKey(backend.KeyHome, backend.ModNone), "Bold"},
	}
	for i, s := range steps {
		send(d, s.ev)
		if got := d.activeButton(t); got != s.want {
			t.Fatalf("step %d: highlighted = %q, want %q", i, got, s.want)
		}
	}

	ed := d.current()
	active := 0
	for _, btn := range ed.toolbar.buttons {
		if d.Page().HasClass(btn, ActiveClass) {
			active++
		}
	}
	if active != 1 {
		t.Errorf("%d buttons carry %s, want 1", active, ActiveClass)
	}
}

func TestDemo_RightToLeftSwapsBrackets(t *testing.T) {
	d, _, store := newTestDemo(t)
	send(d, specialKey(backend.KeyTab, backend.ModNone))

	opts := config.Default()
	opts.Directionality = config.RTL
	if err := store.Replace(opts, "test"); err != nil {
		t.Fatal(err)
	}

	send(d, runeKey(']'))
	if got := d.activeButton(t); got != "Undo" {
		t.Errorf("highlighted = %q after ] in RTL, want Undo", got)
	}

	d.Page().SetStyle(d.current().toolbar.outer, dom.PropDir, string(config.LTR))
	send(d, runeKey(']'))
	if got := d.activeButton(t); got != "Bold" {
		t.Errorf("highlighted = %q with an LTR toolbar, want Bold", got)
	}
}

func TestDemo_ScrollingDocksToolbar(t *testing.T) {
	d, be, _ := newTestDemo(t)
	send(d, specialKey(backend.KeyTab, backend.ModNone))
	ed := d.current()

	for range 6 {
		send(d, specialKey(backend.KeyDown, backend.ModNone))
	}
	if y := d.Page().Viewport().Y; y != 120 {
		t.Fatalf("scroll = %v, want 120", y)
	}
	if mode, ok := ed.session.Docking().IsDocked(ed.toolbar.outer); !ok || mode != docking.ModeTop {
		t.Errorf("IsDocked = %q, %v; want top", mode, ok)
	}
	if got := be.Row(0); !strings.Contains(got, " Bold ") {
		t.Errorf("row 0 = %q, want the docked toolbar", got)
	}
	if got := be.Row(29); !strings.Contains(got, "docked top") {
		t.Errorf("status row = %q", got)
	}

	for range 6 {
		send(d, specialKey(backend.KeyUp, backend.ModNone))
	}
	if _, ok := ed.session.Docking().IsDocked(ed.toolbar.outer); ok {
		t.Error("toolbar still docked after scrolling back")
	}
}

func TestDemo_TabScrollsToEditorAndSkipsRemoved(t *testing.T) {
	d, _, _ := newTestDemo(t)
	send(d, specialKey(backend.KeyTab, backend.ModNone), specialKey(backend.KeyTab, backend.ModNone))

	ed := d.current()
	if ed.name != "wide" {
		t.Fatalf("active = %q, want wide", ed.name)
	}
	if y := d.Page().Viewport().Y; y != 940 {
		t.Errorf("scroll = %v, want 940", y)
	}
	if d.editors[0].session.Header().IsVisible() {
		t.Error("previous toolbar still visible")
	}

	send(d, runeKey('x'))
	if !ed.session.IsRemoved() || ed.session.Header().IsVisible() {
		t.Error("removed editor keeps its toolbar")
	}
	if d.current() != nil {
		t.Error("an editor is active after removal")
	}

	send(d, specialKey(backend.KeyTab, backend.ModShift))
	if got := d.current().name; got != "footer" {
		t.Errorf("active = %q, want footer", got)
	}
	send(d, specialKey(backend.KeyTab, backend.ModShift))
	if got := d.current().name; got != "intro" {
		t.Errorf("active = %q, want intro", got)
	}
}

func TestDemo_BacktabWraps(t *testing.T) {
	d, _, _ := newTestDemo(t)
	send(d, specialKey(backend.KeyBacktab, backend.ModNone))
	if got := d.current().name; got != "footer" {
		t.Errorf("active = %q, want footer", got)
	}
}

func TestDemo_EscapeBlurs(t *testing.T) {
	d, _, _ := newTestDemo(t)
	send(d, specialKey(backend.KeyTab, backend.ModNone))
	ed := d.current()

	send(d, specialKey(backend.KeyEscape, backend.ModNone))
	if ed.session.Header().IsVisible() {
		t.Error("toolbar visible after Esc")
	}
	if d.Page().Focused() != nil {
		t.Error("page still has focus")
	}
}

func TestDemo_TipsPopup(t *testing.T) {
	d, _, _ := newTestDemo(t)
	send(d, specialKey(backend.KeyTab, backend.ModNone), runeKey('?'))
	ed := d.current()

	if ed.session.Popups().Len() != 1 {
		t.Fatalf("mounted popups = %d, want 1", ed.session.Popups().Len())
	}
	if v, _ := d.Page().Style(ed.tips, dom.PropDisplay); v == "none" {
		t.Error("tips hidden after ?")
	}
	// Toolbar at the top of the editor: the tips open above it.
	tips, bar := d.Page().BoundingBox(ed.tips), d.Page().BoundingBox(ed.toolbar.outer)
	if tips.Bottom() != bar.Y {
		t.Errorf("tips bottom = %v, want toolbar top %v", tips.Bottom(), bar.Y)
	}

	send(d, runeKey('?'))
	if ed.session.Popups().Len() != 0 {
		t.Error("tips still mounted")
	}
}

func TestDemo_EnterPressesButton(t *testing.T) {
	d, _, _ := newTestDemo(t)
	send(d, specialKey(backend.KeyTab, backend.ModNone), runeKey(']'), specialKey(backend.KeyEnter, backend.ModNone))
	if got := d.Status(); got != "Italic pressed in intro" {
		t.Errorf("status = %q", got)
	}
}

func TestDemo_Resize(t *testing.T) {
	d, _, _ := newTestDemo(t)
	send(d, backend.Event{Type: backend.EventResize, Width: 100, Height: 41})
	if vp := d.Page().Viewport(); vp.Width != 1000 || vp.Height != 800 {
		t.Errorf("viewport = %v, want 1000x800", vp)
	}
}

func TestDemo_PostRunsOnLoop(t *testing.T) {
	d, be, _ := newTestDemo(t)
	ran := false
	d.Post(func() { ran = true })
	be.PostEvent(runeKey('q'))

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !ran {
		t.Error("posted function did not run")
	}
}

func TestDemo_RunStopsOnCancel(t *testing.T) {
	d, _, _ := newTestDemo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := d.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
}

func TestDemo_ScriptedMovement(t *testing.T) {
	s, err := script.Compile("skip", `
function move(items, focused, cycle)
  if focused + 2 <= #items then return focused + 2 end
  return nil
end`)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	d, _, _ := newTestDemo(t, WithScript(s))
	send(d, specialKey(backend.KeyTab, backend.ModNone), specialKey(backend.KeyDown, backend.ModAlt))
	if got := d.activeButton(t); got != "Link" {
		t.Errorf("highlighted = %q, want Link", got)
	}
}

func TestConvertKeyEvent(t *testing.T) {
	tests := []struct {
		in   backend.Event
		want string
	}{
		{specialKey(backend.KeyLeft, backend.ModAlt), "A-Left"},
		{specialKey(backend.KeyBacktab, backend.ModNone), "S-Tab"},
		{specialKey(backend.KeyCtrlC, backend.ModCtrl), "C-c"},
		{runeKey('?'), "?"},
		{specialKey(backend.KeyPageDown, backend.ModNone), "PgDn"},
	}
	for _, tt := range tests {
		if got := convertKeyEvent(tt.in).String(); got != tt.want {
			t.Errorf("convertKeyEvent(%+v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
