package interaction

import "sync"

// EventType names a page-wide pointer event.
type EventType string

// Page-wide events a gesture listens to.
const (
	EventPointerMove EventType = "pointermove"
	EventPointerUp   EventType = "pointerup"
	EventBlur        EventType = "blur"
)

// Event is a pointer event delivered to the page-wide target.
type Event struct {
	Type  EventType
	Point Point
}

// Listener handles one event.
type Listener func(Event)

type registration struct {
	id  uint64
	typ EventType
	fn  Listener
}

// EventTarget is the page-wide event target. Listeners run in registration
// order and may remove themselves while an event is being dispatched.
type EventTarget struct {
	mu        sync.Mutex
	nextID    uint64
	listeners []registration
}

// NewEventTarget creates an empty event target.
func NewEventTarget() *EventTarget {
	return &EventTarget{}
}

// AddListener registers fn for events of type typ. The returned function
// removes the registration and is safe to call more than once.
func (t *EventTarget) AddListener(typ EventType, fn Listener) func() {
	t.mu.Lock()
	t.nextID++
	id := t.nextID
	t.listeners = append(t.listeners, registration{id: id, typ: typ, fn: fn})
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		for i, r := range t.listeners {
			if r.id == id {
				t.listeners = append(t.listeners[:i:i], t.listeners[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers ev to the listeners registered for its type.
func (t *EventTarget) Dispatch(ev Event) {
	t.mu.Lock()
	var fns []Listener
	for _, r := range t.listeners {
		if r.typ == ev.Type {
			fns = append(fns, r.fn)
		}
	}
	t.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// ListenerCount returns the number of registered listeners.
func (t *EventTarget) ListenerCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners)
}
