package events

import (
	"sync"

	"github.com/genricoloni/tracksync/internal/domain"
)

// Emitter is an in-process event target.
// Listeners run synchronously on the goroutine calling Emit, in subscription order.
// Subscribing or unsubscribing from inside a listener is allowed; changes apply
// from the next Emit.
type Emitter struct {
	mu        sync.Mutex
	nextID    uint64
	listeners map[domain.EventType][]*listener
}

type listener struct {
	id uint64
	fn domain.Handler
}

// NewEmitter creates an empty event target
func NewEmitter() *Emitter {
	return &Emitter{
		listeners: make(map[domain.EventType][]*listener),
	}
}

// On registers fn for events of type t
func (e *Emitter) On(t domain.EventType, fn domain.Handler) domain.Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	l := &listener{id: e.nextID, fn: fn}
	e.listeners[t] = append(e.listeners[t], l)

	return &subscription{emitter: e, eventType: t, id: l.id}
}

// Emit delivers ev to every listener registered for ev.Type
func (e *Emitter) Emit(ev domain.Event) {
	e.mu.Lock()
	current := e.listeners[ev.Type]
	snapshot := make([]*listener, len(current))
	copy(snapshot, current)
	e.mu.Unlock()

	for _, l := range snapshot {
		l.fn(ev)
	}
}

// ListenerCount returns the number of listeners for t
func (e *Emitter) ListenerCount(t domain.EventType) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners[t])
}

// Len returns the number of listeners across all event types
func (e *Emitter) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for _, ls := range e.listeners {
		n += len(ls)
	}
	return n
}

func (e *Emitter) remove(t domain.EventType, id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ls := e.listeners[t]
	for i, l := range ls {
		if l.id != id {
			continue
		}
		// Copy instead of shifting in place so snapshots taken by Emit stay intact
		next := make([]*listener, 0, len(ls)-1)
		next = append(next, ls[:i]...)
		next = append(next, ls[i+1:]...)
		if len(next) == 0 {
			delete(e.listeners, t)
		} else {
			e.listeners[t] = next
		}
		return
	}
}

type subscription struct {
	once      sync.Once
	emitter   *Emitter
	eventType domain.EventType
	id        uint64
}

// Unsubscribe detaches the listener
func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.emitter.remove(s.eventType, s.id)
	})
}

// Group collects subscriptions so they can be released together
type Group struct {
	mu   sync.Mutex
	subs []domain.Subscription
}

// Add records sub
func (g *Group) Add(sub domain.Subscription) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.subs = append(g.subs, sub)
}

// Len returns the number of held subscriptions
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.subs)
}

// UnsubscribeAll releases every recorded subscription and empties the group
func (g *Group) UnsubscribeAll() {
	g.mu.Lock()
	subs := g.subs
	g.subs = nil
	g.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
}
