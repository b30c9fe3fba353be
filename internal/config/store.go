package config

import (
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/dshills/inlinechrome/internal/config/notify"
)

// Source yields the options in effect for one operation.
type Source interface {
	Current() Options
}

// Fixed is a Source that never changes.
type Fixed Options

// Current implements Source.
func (f Fixed) Current() Options { return Options(f) }

// Store holds the live options snapshot and tells observers when it changes.
type Store struct {
	current  atomic.Pointer[Options]
	notifier *notify.Notifier
}

// NewStore creates a store seeded with opts.
func NewStore(opts Options) *Store {
	s := &Store{notifier: notify.New()}
	s.current.Store(&opts)
	return s
}

// Current implements Source.
func (s *Store) Current() Options {
	return *s.current.Load()
}

// Replace validates opts and swaps them in. Observers receive one ChangeSet
// per changed top-level option followed by a ChangeReload. An invalid
// snapshot is rejected and the previous one kept.
func (s *Store) Replace(opts Options, source string) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("rejecting options from %s: %w", source, err)
	}
	old := s.current.Swap(&opts)

	for _, c := range diff(*old, opts) {
		c.Source = source
		s.notifier.Notify(c)
	}
	s.notifier.NotifyReload(source)
	return nil
}

// Subscribe registers fn for every change.
func (s *Store) Subscribe(fn notify.Observer) *notify.Subscription {
	return s.notifier.Subscribe(fn)
}

// SubscribePath registers fn for changes at or below path.
func (s *Store) SubscribePath(path string, fn notify.Observer) *notify.Subscription {
	return s.notifier.SubscribePath(path, fn)
}

// Close drops all observers.
func (s *Store) Close() {
	s.notifier.Close()
}

// diff lists the top-level options whose values differ, keyed by yaml name.
func diff(a, b Options) []notify.Change {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	t := va.Type()

	var changes []notify.Change
	for i := 0; i < t.NumField(); i++ {
		fa, fb := va.Field(i).Interface(), vb.Field(i).Interface()
		if reflect.DeepEqual(fa, fb) {
			continue
		}
		name := t.Field(i).Tag.Get("yaml")
		changes = append(changes, notify.Change{
			Path:     name,
			Type:     notify.ChangeSet,
			OldValue: fa,
			NewValue: fb,
		})
	}
	return changes
}
