package popup

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/dshills/inlinechrome/internal/event"
)

// ErrDuplicate is returned when mounting a popup whose ID is already mounted.
var ErrDuplicate = errors.New("popup already mounted")

// Popup is a mounted floating element.
type Popup interface {
	ID() string
	Reposition()
}

type entry struct {
	popup    Popup
	priority event.Priority
	seq      uint64
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// Registry tracks mounted popups.
type Registry struct {
	bus     *event.Bus
	sub     *event.Subscription
	entries []entry
	seq     uint64
	log     *zap.Logger
}

// NewRegistry creates a registry subscribed to event.TopicRepositionPopups.
func NewRegistry(bus *event.Bus, opts ...RegistryOption) (*Registry, error) {
	r := &Registry{bus: bus, log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	sub, err := bus.SubscribeFunc(event.TopicRepositionPopups, func(context.Context, event.Event) error {
		r.RepositionAll()
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.sub = sub
	return r, nil
}

// Mount adds p. Lower priorities reposition first; equal priorities keep
// mount order.
func (r *Registry) Mount(p Popup, priority event.Priority) error {
	for _, e := range r.entries {
		if e.popup.ID() == p.ID() {
			return ErrDuplicate
		}
	}
	r.seq++
	r.entries = append(r.entries, entry{popup: p, priority: priority, seq: r.seq})
	sort.SliceStable(r.entries, func(i, j int) bool {
		if r.entries[i].priority != r.entries[j].priority {
			return r.entries[i].priority < r.entries[j].priority
		}
		return r.entries[i].seq < r.entries[j].seq
	})
	r.log.Debug("Popup mounted", zap.String("popup", p.ID()), zap.Stringer("priority", priority))
	return nil
}

// Unmount removes the popup with the given id and reports whether it was mounted.
func (r *Registry) Unmount(id string) bool {
	for i, e := range r.entries {
		if e.popup.ID() == id {
			r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
			r.log.Debug("Popup unmounted", zap.String("popup", id))
			return true
		}
	}
	return false
}

// Len returns the number of mounted popups.
func (r *Registry) Len() int { return len(r.entries) }

// RepositionAll repositions every mounted popup.
func (r *Registry) RepositionAll() {
	// A popup may unmount itself while repositioning.
	snapshot := append([]entry(nil), r.entries...)
	for _, e := range snapshot {
		e.popup.Reposition()
	}
}

// Close stops listening for broadcasts.
func (r *Registry) Close() error {
	if r.sub == nil {
		return nil
	}
	err := r.bus.Unsubscribe(r.sub)
	r.sub = nil
	return err
}
