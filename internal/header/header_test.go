package header

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/dshills/inlinechrome/internal/config"
	"github.com/dshills/inlinechrome/internal/docking"
	"github.com/dshills/inlinechrome/internal/dom"
	"github.com/dshills/inlinechrome/internal/event"
	"github.com/dshills/inlinechrome/internal/event/topic"
	"github.com/dshills/inlinechrome/internal/geom"
)

type recordingDocking struct {
	allowed   [][]docking.Mode
	resets    int
	refreshes int
}

func (d *recordingDocking) SetAllowedModes(_ dom.Element, modes []docking.Mode) {
	d.allowed = append(d.allowed, modes)
}
func (d *recordingDocking) Reset(dom.Element)   { d.resets++ }
func (d *recordingDocking) Refresh(dom.Element) { d.refreshes++ }

type recordingBus struct {
	topics []topic.Topic
}

func (b *recordingBus) Broadcast(t topic.Topic, _ string) { b.topics = append(b.topics, t) }

func (b *recordingBus) count(t topic.Topic) int {
	n := 0
	for _, got := range b.topics {
		if got == t {
			n++
		}
	}
	return n
}

type fakeEditor struct{ removed bool }

func (e *fakeEditor) IsRemoved() bool { return e.removed }

type fakeToolbar struct {
	rows      []dom.Element
	refreshes int
}

func (f *fakeToolbar) Rows() []dom.Element { return f.rows }
func (f *fakeToolbar) Refresh()            { f.refreshes++ }

type fixture struct {
	page    *dom.Page
	target  *dom.Node
	outer   *dom.Node
	layer   *dom.Node
	docking *recordingDocking
	bus     *recordingBus
	editor  *fakeEditor
	header  *Header
}

func newFixture(t *testing.T, opts config.Options, targetBox geom.Rect, extra ...Option) *fixture {
	t.Helper()
	f := &fixture{
		page:    dom.NewPage(2000, 3000, 1000, 600),
		docking: &recordingDocking{},
		bus:     &recordingBus{},
		editor:  &fakeEditor{},
	}
	f.target = f.page.Add("target", nil, targetBox)
	f.outer = f.page.Add("outer", nil, geom.NewRect(0, 0, 500, 40))
	f.layer = f.page.Add("sink", nil, geom.NewRect(0, 0, 0, 0))

	all := []Option{
		WithOptions(config.Fixed(opts)),
		WithDocking(f.docking),
		WithBroadcaster(f.bus),
		WithEditor(f.editor),
		WithLogger(zaptest.NewLogger(t)),
	}
	f.header = New(f.page, Refs{
		Target: f.target,
		Outer:  f.outer,
		Float:  f.outer,
		Layers: []dom.Element{f.layer},
	}, append(all, extra...)...)
	return f
}

func (f *fixture) style(el dom.Element, prop string) string {
	v, _ := f.page.Style(el, prop)
	return v
}

func TestHeader_ShowPositionsAboveTarget(t *testing.T) {
	f := newFixture(t, config.Default(), geom.NewRect(100, 400, 600, 200))
	f.page.SetStyle(f.layer, dom.PropDisplay, "none")

	f.header.Show()

	if !f.header.IsVisible() {
		t.Fatal("header not visible after Show")
	}
	if got := f.style(f.outer, dom.PropDisplay); got != "flex" {
		t.Errorf("outer display = %q, want flex", got)
	}
	if !f.page.HasClass(f.target, FocusClass) {
		t.Error("focus class not added to body")
	}
	if _, ok := f.page.Style(f.layer, dom.PropDisplay); ok {
		t.Error("layer display not cleared")
	}
	if got := f.style(f.outer, dom.PropTop); got != "360px" {
		t.Errorf("top = %q, want 360px", got)
	}
	if got := f.style(f.outer, dom.PropLeft); got != "100px" {
		t.Errorf("left = %q, want 100px", got)
	}
	if got := f.style(f.outer, dom.PropPosition); got != "absolute" {
		t.Errorf("position = %q, want absolute", got)
	}
	if _, ok := f.page.Style(f.outer, dom.PropWidth); ok {
		t.Error("width set for a target inside the viewport")
	}
	if got := f.bus.count(event.TopicRepositionPopups); got != 1 {
		t.Errorf("reposition broadcasts = %d, want 1", got)
	}
	if f.docking.refreshes != 1 || f.docking.resets != 0 {
		t.Errorf("docking refreshes=%d resets=%d, want 1 and 0", f.docking.refreshes, f.docking.resets)
	}
}

func TestHeader_BelowTargetWhenNoRoomAbove(t *testing.T) {
	f := newFixture(t, config.Default(), geom.NewRect(100, 10, 600, 200))

	f.header.Show()

	if f.header.IsPositionedAtTop() {
		t.Fatal("mode = top, want bottom")
	}
	if got := f.style(f.outer, dom.PropTop); got != "210px" {
		t.Errorf("top = %q, want 210px", got)
	}
	if got, _ := f.page.Attribute(f.outer, VerticalDirAttr); got != VerticalBottomToTop {
		t.Errorf("%s = %q, want %q", VerticalDirAttr, got, VerticalBottomToTop)
	}
}

func TestHeader_UpdateWhileHiddenDoesNothing(t *testing.T) {
	f := newFixture(t, config.Default(), geom.NewRect(100, 400, 600, 200))

	before := f.page.Mutations()
	f.header.Update(false)
	f.header.Update(true)
	f.header.UpdateMode(true)

	if got := f.page.Mutations(); got != before {
		t.Errorf("mutations = %d, want %d", got, before)
	}
	if len(f.bus.topics) != 0 {
		t.Errorf("broadcasts while hidden: %v", f.bus.topics)
	}
	if f.docking.refreshes+f.docking.resets != 0 {
		t.Error("docking touched while hidden")
	}
}

func TestHeader_RemovedEditorIsNotVisible(t *testing.T) {
	f := newFixture(t, config.Default(), geom.NewRect(100, 400, 600, 200))
	f.header.Show()
	f.editor.removed = true

	if f.header.IsVisible() {
		t.Fatal("visible after editor removal")
	}
	before := f.page.Mutations()
	f.header.Update(false)
	if got := f.page.Mutations(); got != before {
		t.Errorf("Update after removal mutated the page: %d -> %d", before, got)
	}
}

func TestHeader_HideClearsMarkers(t *testing.T) {
	f := newFixture(t, config.Default(), geom.NewRect(100, 400, 600, 200))
	f.header.Show()
	f.header.Hide()

	if f.header.IsVisible() {
		t.Error("visible after Hide")
	}
	if got := f.style(f.outer, dom.PropDisplay); got != "none" {
		t.Errorf("outer display = %q, want none", got)
	}
	if f.page.HasClass(f.target, FocusClass) {
		t.Error("focus class still present")
	}
	if got := f.style(f.layer, dom.PropDisplay); got != "none" {
		t.Errorf("layer display = %q, want none", got)
	}
	if got := f.bus.count(event.TopicHeaderHidden); got != 1 {
		t.Errorf("hidden broadcasts = %d, want 1", got)
	}
}

func TestHeader_ModeChangeRunsOneResetPass(t *testing.T) {
	f := newFixture(t, config.Default(), geom.NewRect(100, 10, 600, 200))
	f.header.Show()
	if f.header.Mode() != docking.ModeBottom {
		t.Fatalf("initial mode = %q, want bottom", f.header.Mode())
	}
	repositions := f.bus.count(event.TopicRepositionPopups)

	f.page.SetBox(f.target, geom.NewRect(100, 400, 600, 200))
	f.header.UpdateMode(true)

	if f.header.Mode() != docking.ModeTop {
		t.Fatalf("mode = %q, want top", f.header.Mode())
	}
	if f.docking.resets != 1 {
		t.Errorf("docking resets = %d, want 1", f.docking.resets)
	}
	if got := f.bus.count(event.TopicRepositionPopups) - repositions; got != 1 {
		t.Errorf("update passes = %d, want 1", got)
	}
	last := f.docking.allowed[len(f.docking.allowed)-1]
	if len(last) != 1 || last[0] != docking.ModeTop {
		t.Errorf("allowed modes = %v, want [top]", last)
	}
	if got := f.style(f.outer, dom.PropTop); got != "360px" {
		t.Errorf("top = %q, want 360px", got)
	}

	// Same geometry again: nothing changes.
	f.header.UpdateMode(true)
	if f.docking.resets != 1 {
		t.Errorf("docking resets = %d after unchanged UpdateMode, want 1", f.docking.resets)
	}
}

func TestHeader_UpdateModeWithoutUI(t *testing.T) {
	f := newFixture(t, config.Default(), geom.NewRect(100, 10, 600, 200))
	f.header.Show()
	repositions := f.bus.count(event.TopicRepositionPopups)

	f.page.SetBox(f.target, geom.NewRect(100, 400, 600, 200))
	f.header.UpdateMode(false)

	if f.header.Mode() != docking.ModeTop {
		t.Fatalf("mode = %q, want top", f.header.Mode())
	}
	if got := f.bus.count(event.TopicRepositionPopups); got != repositions {
		t.Error("UpdateMode(false) ran an update pass")
	}
	if got := f.bus.count(event.TopicHeaderMode); got != 2 {
		t.Errorf("mode broadcasts = %d, want 2", got)
	}
}

func TestHeader_UpdateModeIgnoredWhenNotSticky(t *testing.T) {
	opts := config.Default()
	opts.ToolbarSticky = false
	f := newFixture(t, opts, geom.NewRect(100, 10, 600, 200))

	f.header.Show()

	if f.header.Mode() != docking.ModeTop {
		t.Errorf("mode = %q, want top", f.header.Mode())
	}
	if f.docking.refreshes+f.docking.resets != 0 {
		t.Error("docking used without sticky toolbar")
	}
	// Position is still computed from the unchanged mode.
	if got := f.style(f.outer, dom.PropTop); got != "0px" {
		t.Errorf("top = %q, want 0px", got)
	}
}

func TestHeader_ForcedLocation(t *testing.T) {
	opts := config.Default()
	opts.ToolbarLocation = config.LocationBottom
	f := newFixture(t, opts, geom.NewRect(100, 400, 600, 200))

	if f.header.Mode() != docking.ModeBottom {
		t.Fatalf("initial mode = %q, want bottom", f.header.Mode())
	}
	f.header.Show()
	if got := f.style(f.outer, dom.PropTop); got != "600px" {
		t.Errorf("top = %q, want 600px", got)
	}
}

func TestHeader_FixedContainerSkipsPositioning(t *testing.T) {
	opts := config.Default()
	opts.FixedToolbarContainer = "#toolbar"
	f := newFixture(t, opts, geom.NewRect(100, 400, 600, 200))

	f.header.Show()

	for _, prop := range []string{dom.PropPosition, dom.PropTop, dom.PropLeft, dom.PropMaxWidth, dom.PropWidth} {
		if _, ok := f.page.Style(f.outer, prop); ok {
			t.Errorf("%s set under a fixed container", prop)
		}
	}
	if f.docking.refreshes+f.docking.resets != 0 {
		t.Error("docking used under a fixed container")
	}
	if got := f.bus.count(event.TopicRepositionPopups); got != 1 {
		t.Errorf("reposition broadcasts = %d, want 1", got)
	}
}

func TestHeader_WidthOverride(t *testing.T) {
	f := newFixture(t, config.Default(), geom.NewRect(1100, 400, 600, 200))

	f.header.Show()
	if got := f.style(f.outer, dom.PropWidth); got != "150px" {
		t.Errorf("width = %q, want 150px", got)
	}

	f.page.ScrollTo(500, 0)
	f.header.Update(false)
	if got := f.style(f.outer, dom.PropWidth); got != "400px" {
		t.Errorf("width = %q after scrolling, want 400px", got)
	}

	f.page.ScrollTo(1000, 0)
	f.header.Update(false)
	if got := f.style(f.outer, dom.PropWidth); got != "500px" {
		t.Errorf("width = %q with full room, want 500px", got)
	}

	f.page.SetBox(f.target, geom.NewRect(100, 400, 600, 200))
	f.header.Update(false)
	if _, ok := f.page.Style(f.outer, dom.PropWidth); ok {
		t.Error("width kept after target moved into the viewport")
	}
}

func TestHeader_MaxWidth(t *testing.T) {
	t.Run("configured", func(t *testing.T) {
		opts := config.Default()
		opts.MaxWidth = 300
		f := newFixture(t, opts, geom.NewRect(100, 400, 600, 200))
		f.header.Show()
		if got := f.style(f.outer, dom.PropMaxWidth); got != "300px" {
			t.Errorf("max-width = %q, want 300px", got)
		}
	})
	t.Run("derived from body", func(t *testing.T) {
		f := newFixture(t, config.Default(), geom.NewRect(100, 400, 600, 200))
		f.page.SetStyle(f.page.Body(), dom.PropMargin, "8px")
		f.header.Show()
		if got := f.style(f.outer, dom.PropMaxWidth); got != "1908px" {
			t.Errorf("max-width = %q, want 1908px", got)
		}
	})
	t.Run("unparsable margin", func(t *testing.T) {
		f := newFixture(t, config.Default(), geom.NewRect(100, 400, 600, 200))
		f.page.SetStyle(f.page.Body(), dom.PropMargin, "auto")
		f.header.Show()
		if got := f.style(f.outer, dom.PropMaxWidth); got != "1900px" {
			t.Errorf("max-width = %q, want 1900px", got)
		}
	})
}

func TestHeader_SplitToolbarDrawer(t *testing.T) {
	p := dom.NewPage(2000, 3000, 1000, 600)
	target := p.Add("target", nil, geom.NewRect(100, 400, 600, 200))
	outer := p.Add("outer", nil, geom.NewRect(0, 0, 500, 70))
	main := p.Add("row-main", outer, geom.NewRect(0, 0, 500, 40))
	drawer := p.Add("row-drawer", outer, geom.NewRect(0, 40, 500, 30))
	tb := &fakeToolbar{rows: []dom.Element{main, drawer}}

	h := New(p, Refs{Target: target, Outer: outer, Float: outer, Toolbar: tb},
		WithLogger(zaptest.NewLogger(t)))
	h.Show()

	if tb.refreshes != 1 {
		t.Errorf("toolbar refreshes = %d, want 1", tb.refreshes)
	}
	if got, _ := p.Style(outer, dom.PropTop); got != "360px" {
		t.Errorf("top = %q, want 360px", got)
	}
}

func TestHeader_WrapToolbarIgnoresDrawer(t *testing.T) {
	p := dom.NewPage(2000, 3000, 1000, 600)
	target := p.Add("target", nil, geom.NewRect(100, 400, 600, 200))
	outer := p.Add("outer", nil, geom.NewRect(0, 0, 500, 70))
	main := p.Add("row-main", outer, geom.NewRect(0, 0, 500, 40))
	drawer := p.Add("row-drawer", outer, geom.NewRect(0, 40, 500, 30))
	tb := &fakeToolbar{rows: []dom.Element{main, drawer}}

	opts := config.Default()
	opts.ToolbarMode = config.ToolbarWrap
	h := New(p, Refs{Target: target, Outer: outer, Float: outer, Toolbar: tb},
		WithOptions(config.Fixed(opts)))
	h.Show()

	if tb.refreshes != 0 {
		t.Errorf("toolbar refreshes = %d, want 0", tb.refreshes)
	}
	if got, _ := p.Style(outer, dom.PropTop); got != "330px" {
		t.Errorf("top = %q, want 330px", got)
	}
}

func TestHeader_FloatDefaultsToOuter(t *testing.T) {
	p := dom.NewPage(2000, 3000, 1000, 600)
	target := p.Add("target", nil, geom.NewRect(100, 400, 600, 200))
	outer := p.Add("outer", nil, geom.NewRect(0, 0, 500, 40))
	h := New(p, Refs{Target: target, Outer: outer},
		WithOptions(config.Fixed(config.Default())),
		WithLogger(zaptest.NewLogger(t)),
	)

	h.SetupMode(h.Mode())
	h.Show()
	top, _ := p.Style(outer, dom.PropTop)
	left, _ := p.Style(outer, dom.PropLeft)
	if top != "360px" || left != "100px" {
		t.Errorf("outer top=%q left=%q, want 360px and 100px", top, left)
	}
	if v, _ := p.Attribute(outer, VerticalDirAttr); v != VerticalTopToBottom {
		t.Errorf("%s = %q, want %q", VerticalDirAttr, v, VerticalTopToBottom)
	}
}

func TestHeader_MissingHandles(t *testing.T) {
	p := dom.NewPage(2000, 3000, 1000, 600)
	h := New(p, Refs{})

	h.Show()
	h.UpdateMode(true)
	h.Update(true)
	h.SetupMode(docking.ModeBottom)
	h.Hide()

	if h.Mode() != docking.ModeTop {
		t.Errorf("SetupMode without a float container changed mode to %q", h.Mode())
	}
}

func TestHeader_DocksWithStickyController(t *testing.T) {
	p := dom.NewPage(2000, 3000, 1000, 600)
	target := p.Add("target", nil, geom.NewRect(100, 400, 600, 200))
	outer := p.Add("outer", nil, geom.NewRect(0, 0, 500, 40))
	bus := event.NewBus()

	sticky := docking.NewSticky(p, docking.WithContext(func() (geom.Rect, bool) {
		return p.BoundingBox(target), true
	}))
	h := New(p, Refs{Target: target, Outer: outer, Float: outer},
		WithDocking(sticky), WithBroadcaster(bus))
	h.SetupMode(h.Mode())
	h.Show()

	if got, _ := p.Style(outer, dom.PropPosition); got != "absolute" {
		t.Fatalf("position = %q before scrolling, want absolute", got)
	}

	p.ScrollTo(0, 380)
	h.UpdateMode(true)
	h.Update(false)
	if got, _ := p.Style(outer, dom.PropPosition); got != "fixed" {
		t.Fatalf("position = %q after scrolling past the toolbar, want fixed", got)
	}
	if box := p.BoundingBox(outer); box.Y != 380 {
		t.Errorf("docked top = %v, want 380", box.Y)
	}

	p.ScrollTo(0, 0)
	h.Update(false)
	if got, _ := p.Style(outer, dom.PropPosition); got != "absolute" {
		t.Errorf("position = %q after scrolling back, want absolute", got)
	}
	if box := p.BoundingBox(outer); box.Y != 360 {
		t.Errorf("top = %v after scrolling back, want 360", box.Y)
	}
}
