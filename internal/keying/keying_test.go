package keying

import (
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/dshills/inlinechrome/internal/config"
	"github.com/dshills/inlinechrome/internal/dom"
	"github.com/dshills/inlinechrome/internal/geom"
	"github.com/dshills/inlinechrome/internal/keying/key"
)

type widget struct{ el dom.Element }

func (w widget) Element() dom.Element { return w.el }

// pageSystem focuses elements of a dom.Page and counts transfers.
type pageSystem struct {
	page      *dom.Page
	transfers int
}

func (s *pageSystem) FindFocused(container dom.Element) (dom.Element, bool) {
	return s.page.FindFocused(container)
}

func (s *pageSystem) TriggerFocus(_ Component, target dom.Element) {
	s.transfers++
	s.page.Focus(target)
}

func newToolbar() (*dom.Page, widget, []dom.Element) {
	p := dom.NewPage(1000, 1000, 1000, 600)
	bar := p.Add("bar", nil, geom.NewRect(0, 0, 300, 40))
	items := []dom.Element{
		p.Add("bold", bar, geom.NewRect(0, 0, 30, 30)),
		p.Add("italic", bar, geom.NewRect(30, 0, 30, 30)),
		p.Add("link", bar, geom.NewRect(60, 0, 30, 30)),
	}
	return p, widget{el: bar}, items
}

// recordingMove returns a fixed target and records that it ran.
func recordingMove(name string, calls *[]string, target dom.Element) MoveFunc {
	return func(_, _ dom.Element, _ Info) (dom.Element, bool) {
		*calls = append(*calls, name)
		return target, target != nil
	}
}

func TestResolver_NoFocusIsNotConsumed(t *testing.T) {
	p, w, items := newToolbar()
	sys := &pageSystem{page: p}
	r := NewResolver(NewDefaultFocus(sys), WithLogger(zaptest.NewLogger(t)))

	var calls []string
	left := recordingMove("left", &calls, items[0])
	right := recordingMove("right", &calls, items[2])

	handlers := map[string]Handler{
		"west":  r.West(left, right),
		"east":  r.East(left, right),
		"north": r.North(left),
		"south": r.South(right),
	}
	for name, h := range handlers {
		if h(w, key.NewEvent(key.KeyLeft, key.ModNone), Info{}) {
			t.Errorf("%s consumed an event with nothing focused", name)
		}
	}
	if len(calls) != 0 {
		t.Errorf("movement functions ran: %v", calls)
	}
	if sys.transfers != 0 {
		t.Errorf("focus transfers = %d, want 0", sys.transfers)
	}
}

func TestResolver_FocusOutsideContainerIsNotConsumed(t *testing.T) {
	p, w, items := newToolbar()
	p.Focus(p.Add("elsewhere", nil, geom.NewRect(0, 500, 10, 10)))
	r := NewResolver(NewDefaultFocus(&pageSystem{page: p}))

	var calls []string
	if r.East(nil, recordingMove("right", &calls, items[1]))(w, key.Event{}, Info{}) {
		t.Error("consumed while focus is outside the widget")
	}
}

func TestResolver_DirectionMapping(t *testing.T) {
	tests := []struct {
		dir   config.Direction
		west  string
		east  string
		north string
		south string
	}{
		{config.LTR, "left", "right", "up", "down"},
		{config.RTL, "right", "left", "up", "down"},
	}
	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			p, w, items := newToolbar()
			p.Focus(items[1])
			r := NewResolver(NewDefaultFocus(&pageSystem{page: p}), WithDirection(StaticDirection(tt.dir)))

			var calls []string
			left := recordingMove("left", &calls, items[0])
			right := recordingMove("right", &calls, items[2])
			up := recordingMove("up", &calls, items[0])
			down := recordingMove("down", &calls, items[2])

			r.West(left, right)(w, key.Event{}, Info{})
			r.East(left, right)(w, key.Event{}, Info{})
			r.North(up)(w, key.Event{}, Info{})
			r.South(down)(w, key.Event{}, Info{})

			want := []string{tt.west, tt.east, tt.north, tt.south}
			if len(calls) != len(want) {
				t.Fatalf("calls = %v, want %v", calls, want)
			}
			for i := range want {
				if calls[i] != want[i] {
					t.Errorf("call %d = %s, want %s", i, calls[i], want[i])
				}
			}
		})
	}
}

func TestResolver_CommitsThroughComponentSystem(t *testing.T) {
	p, w, items := newToolbar()
	p.Focus(items[0])
	sys := &pageSystem{page: p}
	r := NewResolver(NewDefaultFocus(sys))

	var calls []string
	if !r.East(nil, recordingMove("right", &calls, items[1]))(w, key.Event{}, Info{}) {
		t.Fatal("move not consumed")
	}
	if p.Focused().ID() != "italic" {
		t.Errorf("focused = %s, want italic", p.Focused().ID())
	}
	if sys.transfers != 1 {
		t.Errorf("focus transfers = %d, want 1", sys.transfers)
	}
}

func TestResolver_DeclinedMoveIsNotConsumed(t *testing.T) {
	p, w, items := newToolbar()
	p.Focus(items[2])
	sys := &pageSystem{page: p}
	r := NewResolver(NewDefaultFocus(sys))

	var calls []string
	if r.East(nil, recordingMove("right", &calls, nil))(w, key.Event{}, Info{}) {
		t.Error("declined move consumed the event")
	}
	if len(calls) != 1 {
		t.Errorf("movement calls = %d, want 1", len(calls))
	}
	if sys.transfers != 0 {
		t.Errorf("focus transfers = %d, want 0", sys.transfers)
	}
}

func TestManagedFocus(t *testing.T) {
	_, w, items := newToolbar()
	var committed []string
	m := NewManagedFocus(func(_ Component, target dom.Element) {
		committed = append(committed, target.ID())
	})
	r := NewResolver(m)

	var calls []string
	east := r.East(nil, recordingMove("right", &calls, items[2]))
	if east(w, key.Event{}, Info{}) {
		t.Fatal("consumed before any item was registered")
	}

	m.Set(w, items[1])
	if !east(w, key.Event{}, Info{}) {
		t.Fatal("move not consumed")
	}
	if got, _ := m.Get(w); got.ID() != "link" {
		t.Errorf("managed focus = %s, want link", got.ID())
	}
	if len(committed) != 2 || committed[1] != "link" {
		t.Errorf("committed = %v", committed)
	}

	m.Clear(w)
	if _, ok := m.Get(w); ok {
		t.Error("focus kept after Clear")
	}
}

func TestDirectionFuncs(t *testing.T) {
	p, w, _ := newToolbar()

	rtl := config.Default()
	rtl.Directionality = config.RTL
	fromOptions := OptionsDirection(config.Fixed(rtl))
	if got := fromOptions(w); got != config.RTL {
		t.Errorf("OptionsDirection = %s, want rtl", got)
	}

	fromElement := ElementDirection(p, StaticDirection(config.LTR))
	if got := fromElement(w); got != config.LTR {
		t.Errorf("ElementDirection without style = %s, want ltr", got)
	}
	p.SetStyle(w.Element(), dom.PropDir, "rtl")
	if got := fromElement(w); got != config.RTL {
		t.Errorf("ElementDirection with style = %s, want rtl", got)
	}
	p.SetStyle(w.Element(), dom.PropDir, "inherit")
	if got := ElementDirection(p, nil)(w); got != config.LTR {
		t.Errorf("ElementDirection with unknown style = %s, want ltr", got)
	}
}

func TestKeymap(t *testing.T) {
	p, w, items := newToolbar()
	p.Focus(items[0])
	r := NewResolver(NewDefaultFocus(&pageSystem{page: p}))

	var calls []string
	km := NewKeymap(Info{Cycle: true})
	if err := km.Bind("Alt+Right", r.East(nil, recordingMove("right", &calls, items[1]))); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := km.Bind("Hyper+Right", nil); !errors.Is(err, key.ErrInvalidSpec) {
		t.Errorf("Bind error = %v, want ErrInvalidSpec", err)
	}

	if km.Handle(w, key.NewEvent(key.KeyRight, key.ModNone)) {
		t.Error("unbound key consumed")
	}
	if !km.Handle(w, key.MustParse("<A-Right>")) {
		t.Error("bound key not consumed")
	}
	if km.Len() != 1 {
		t.Errorf("Len() = %d, want 1", km.Len())
	}
}

func TestArrows(t *testing.T) {
	p, w, items := newToolbar()
	p.Focus(items[1])
	r := NewResolver(NewDefaultFocus(&pageSystem{page: p}))

	var calls []string
	km := Arrows(r,
		recordingMove("left", &calls, items[0]),
		recordingMove("right", &calls, items[2]),
		nil, nil, Info{})

	if km.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", km.Len())
	}
	if km.Handle(w, key.NewEvent(key.KeyUp, key.ModNone)) {
		t.Error("Up bound without a movement function")
	}
	if !km.Handle(w, key.NewEvent(key.KeyLeft, key.ModNone)) {
		t.Fatal("Left not consumed")
	}
	if p.Focused().ID() != "bold" {
		t.Errorf("focused = %s, want bold", p.Focused().ID())
	}
}
