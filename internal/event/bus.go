package event

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/dshills/inlinechrome/internal/event/topic"
)

// Subscription is an active registration on a Bus.
type Subscription struct {
	id       uint64
	pattern  topic.Topic
	priority Priority
	handler  Handler
	bus      *Bus
}

// ID returns the subscription's identifier.
func (s *Subscription) ID() uint64 { return s.id }

// Unsubscribe removes the subscription from its bus. Removing twice is a no-op.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.bus != nil {
		_ = s.bus.Unsubscribe(s)
	}
}

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*Subscription)

// WithPriority sets the handler's execution priority.
func WithPriority(p Priority) SubscriptionOption {
	return func(s *Subscription) { s.priority = p }
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithLogger sets the logger used for delivery diagnostics.
func WithLogger(log *zap.Logger) BusOption {
	return func(b *Bus) {
		if log != nil {
			b.log = log
		}
	}
}

// Stats are delivery counters.
type Stats struct {
	Published     uint64
	Delivered     uint64
	HandlerErrors uint64
	Panics        uint64
	Subscriptions int
}

// Bus is a synchronous topic-based publish/subscribe hub.
type Bus struct {
	mu     sync.RWMutex
	subs   []*Subscription
	nextID uint64
	log    *zap.Logger

	published atomic.Uint64
	delivered atomic.Uint64
	errs      atomic.Uint64
	panics    atomic.Uint64
}

// NewBus creates a bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{log: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers handler for topics matching pattern.
func (b *Bus) Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (*Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTopic, pattern)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{
		id:       b.nextID,
		pattern:  pattern,
		priority: PriorityNormal,
		handler:  handler,
		bus:      b,
	}
	for _, opt := range opts {
		opt(sub)
	}
	b.subs = append(b.subs, sub)
	sort.SliceStable(b.subs, func(i, j int) bool {
		return b.subs[i].priority < b.subs[j].priority
	})
	return sub, nil
}

// SubscribeFunc registers a function handler.
func (b *Bus) SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(pattern, fn, opts...)
}

// Unsubscribe removes sub.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s == sub {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Publish delivers ev to every matching handler before returning.
func (b *Bus) Publish(ctx context.Context, ev Event) error {
	b.published.Add(1)

	b.mu.RLock()
	matched := make([]*Subscription, 0, len(b.subs))
	for _, s := range b.subs {
		if ev.Topic.Matches(s.pattern) {
			matched = append(matched, s)
		}
	}
	b.mu.RUnlock()

	var err error
	for _, s := range matched {
		if ctx.Err() != nil {
			return multierr.Append(err, ctx.Err())
		}
		if herr := b.deliver(ctx, s, ev); herr != nil {
			err = multierr.Append(err, herr)
		}
	}
	return err
}

// Broadcast publishes a payload-free event on t, logging rather than
// returning delivery errors.
func (b *Bus) Broadcast(t topic.Topic, source string) {
	if err := b.Publish(context.Background(), NewEvent(t, nil, source)); err != nil {
		b.log.Warn("Broadcast delivery failed", zap.Stringer("topic", t), zap.Error(err))
	}
}

// Stats returns delivery counters.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	n := len(b.subs)
	b.mu.RUnlock()
	return Stats{
		Published:     b.published.Load(),
		Delivered:     b.delivered.Load(),
		HandlerErrors: b.errs.Load(),
		Panics:        b.panics.Load(),
		Subscriptions: n,
	}
}

func (b *Bus) deliver(ctx context.Context, s *Subscription, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.panics.Add(1)
			err = &HandlerError{SubscriptionID: s.id, Topic: ev.Topic.String(), Err: fmt.Errorf("%w: %v", ErrHandlerPanic, r)}
		}
	}()

	b.delivered.Add(1)
	if herr := s.handler.Handle(ctx, ev); herr != nil {
		b.errs.Add(1)
		return &HandlerError{SubscriptionID: s.id, Topic: ev.Topic.String(), Err: herr}
	}
	return nil
}
