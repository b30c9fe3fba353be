// Package backend abstracts the terminal the demo draws to.
package backend

import "github.com/dshills/inlinechrome/internal/renderer/core"

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Resize event fields
	Width, Height int

	// Data carries the payload of an interrupt.
	Data any
}

// Key represents a keyboard key.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// Backend is a cell surface with an event queue.
type Backend interface {
	// Init prepares the backend. It must be called first.
	Init() error

	// Shutdown restores the terminal.
	Shutdown()

	// Size returns the current dimensions in cells.
	Size() (width, height int)

	// SetCell sets one cell. Positions outside the surface are ignored.
	SetCell(x, y int, cell core.Cell)

	// Fill fills rect with cell.
	Fill(rect core.ScreenRect, cell core.Cell)

	// Clear blanks the surface.
	Clear()

	// Show flushes pending changes to the display.
	Show()

	// PollEvent blocks for the next event.
	PollEvent() Event

	// Interrupt wakes PollEvent with an EventInterrupt carrying data. It is
	// safe to call from any goroutine.
	Interrupt(data any)
}

// NullBackend keeps cells in memory. Tests use it to inspect output.
type NullBackend struct {
	width, height int
	cells         [][]core.Cell
	events        chan Event
	shows         int
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
}

func (b *NullBackend) Init() error {
	b.cells = make([][]core.Cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]core.Cell, b.width)
	}
	b.Clear()
	return nil
}

func (b *NullBackend) Shutdown() {}

func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell core.Cell) {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
	}
}

// Cell returns the cell at x, y.
func (b *NullBackend) Cell(x, y int) core.Cell {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return core.EmptyCell()
}

// Row returns the text of row y, skipping continuation cells.
func (b *NullBackend) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var out []rune
	for _, c := range b.cells[y] {
		if c.IsContinuation() {
			continue
		}
		out = append(out, c.Rune)
		out = append(out, c.Combo...)
	}
	return string(out)
}

func (b *NullBackend) Fill(rect core.ScreenRect, cell core.Cell) {
	clip := rect.Intersection(core.RectFromSize(0, 0, b.height, b.width))
	for y := clip.Top; y < clip.Bottom; y++ {
		for x := clip.Left; x < clip.Right; x++ {
			b.cells[y][x] = cell
		}
	}
}

func (b *NullBackend) Clear() {
	b.Fill(core.RectFromSize(0, 0, b.height, b.width), core.EmptyCell())
}

func (b *NullBackend) Show() { b.shows++ }

// Shows returns how many times Show was called.
func (b *NullBackend) Shows() int { return b.shows }

func (b *NullBackend) PollEvent() Event {
	return <-b.events
}

// PostEvent queues ev. Events beyond the queue size are dropped.
func (b *NullBackend) PostEvent(ev Event) {
	select {
	case b.events <- ev:
	default:
	}
}

func (b *NullBackend) Interrupt(data any) {
	b.PostEvent(Event{Type: EventInterrupt, Data: data})
}

// Resize simulates a terminal resize and queues the resize event.
func (b *NullBackend) Resize(width, height int) {
	b.width = width
	b.height = height
	_ = b.Init()
	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}
