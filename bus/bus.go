// Package bus is the scoped publish/subscribe mechanism attached to every
// component. Buses are linked explicitly to their parent so an emitted event
// reaches the emitter first, then each ancestor in turn.
package bus

import (
	"chat-box/domain/event"
	"sync"
)

// Event is dispatched to handlers by pointer so any of them can halt bubbling.
type Event struct {
	Kind   event.Kind
	Detail any
	Target *Bus // bus the event was emitted on

	stopped bool
}

// StopPropagation keeps the event from reaching further ancestors.
// Handlers already registered on the current bus still run.
func (e *Event) StopPropagation() {
	e.stopped = true
}

func (e *Event) Stopped() bool {
	return e.stopped
}

type Handler func(e *Event)

// Subscription identifies one handler registration.
type Subscription struct {
	kind event.Kind
	id   uint64
}

func (s Subscription) Kind() event.Kind {
	return s.kind
}

type entry struct {
	id      uint64
	handler Handler
}

type Bus struct {
	mu       sync.RWMutex
	name     string
	parent   *Bus
	handlers map[event.Kind][]entry
	nextID   uint64
}

func New(name string, parent *Bus) *Bus {
	return &Bus{name: name, parent: parent, handlers: make(map[event.Kind][]entry)}
}

func (b *Bus) Name() string {
	return b.name
}

func (b *Bus) Parent() *Bus {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.parent
}

// Attach links the bus under parent, replacing any previous parent.
func (b *Bus) Attach(parent *Bus) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.parent = parent
}

// Detach cuts the bus from its ancestors. Local handlers keep working.
func (b *Bus) Detach() {
	b.Attach(nil)
}

func (b *Bus) Subscribe(kind event.Kind, h Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.handlers[kind] = append(b.handlers[kind], entry{id: b.nextID, handler: h})
	return Subscription{kind: kind, id: b.nextID}
}

// Unsubscribe removes the registration. It reports false when it was already gone.
func (b *Bus) Unsubscribe(sub Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	entries := b.handlers[sub.kind]
	for i, e := range entries {
		if e.id == sub.id {
			b.handlers[sub.kind] = append(entries[:i:i], entries[i+1:]...)
			if len(b.handlers[sub.kind]) == 0 {
				delete(b.handlers, sub.kind)
			}
			return true
		}
	}
	return false
}

// Len counts the handlers for kind, or all handlers when kind is empty.
func (b *Bus) Len(kind event.Kind) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if kind != "" {
		return len(b.handlers[kind])
	}
	n := 0
	for _, entries := range b.handlers {
		n += len(entries)
	}
	return n
}

// Emit dispatches synchronously on b, then bubbles to every ancestor.
func (b *Bus) Emit(kind event.Kind, detail any) *Event {
	e := &Event{Kind: kind, Detail: detail, Target: b}
	for cur := b; cur != nil && !e.stopped; cur = cur.Parent() {
		cur.dispatch(e)
	}
	return e
}

func (b *Bus) dispatch(e *Event) {
	// Snapshot so a handler may unsubscribe itself while running
	b.mu.RLock()
	entries := append([]entry(nil), b.handlers[e.Kind]...)
	b.mu.RUnlock()
	for _, en := range entries {
		en.handler(e)
	}
}
