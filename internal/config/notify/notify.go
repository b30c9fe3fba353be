// Package notify delivers option changes to interested components.
//
// Delivery is synchronous and in subscription order, so a component that
// reacts to a change sees it before the call that made the change returns.
package notify

import (
	"sort"
	"strings"
	"sync"
)

// ChangeType represents the type of configuration change.
type ChangeType int

const (
	// ChangeSet indicates a value was set or updated.
	ChangeSet ChangeType = iota

	// ChangeReload indicates the entire configuration was replaced.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change represents a configuration change event.
type Change struct {
	// Path is the dot-separated option key, e.g. "toolbar_location".
	// Empty for reload events.
	Path string

	Type     ChangeType
	OldValue any
	NewValue any

	// Source identifies where the change came from (file path, "env", "api").
	Source string
}

// Observer is called when configuration changes occur.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

type entry struct {
	id       uint64
	path     string
	observer Observer
}

// Notifier manages configuration change subscriptions.
type Notifier struct {
	mu      sync.RWMutex
	entries map[uint64]entry
	nextID  uint64
	closed  bool
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{entries: make(map[uint64]entry)}
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.add("", observer)
}

// SubscribePath registers an observer for changes at or below path.
// Reload events are delivered to every observer.
func (n *Notifier) SubscribePath(path string, observer Observer) *Subscription {
	return n.add(path, observer)
}

func (n *Notifier) add(path string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.entries[id] = entry{id: id, path: path, observer: observer}
	return &Subscription{id: id, notifier: n}
}

// Notify sends a change to all matching observers.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	matched := make([]entry, 0, len(n.entries))
	for _, e := range n.entries {
		if e.path == "" || change.Type == ChangeReload || matches(e.path, change.Path) {
			matched = append(matched, e)
		}
	}
	n.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].id < matched[j].id })

	// Observers run outside the lock so they may subscribe or unsubscribe.
	for _, e := range matched {
		e.observer(change)
	}
}

// NotifyReload is a convenience method for reload events.
func (n *Notifier) NotifyReload(source string) {
	n.Notify(Change{Type: ChangeReload, Source: source})
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.entries)
}

// Close drops all observers. Later notifications are ignored.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	n.entries = make(map[uint64]entry)
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.entries, id)
}

// matches reports whether path equals want or is a parent of it.
func matches(path, want string) bool {
	if path == want {
		return true
	}
	return strings.HasPrefix(want, path+".")
}
