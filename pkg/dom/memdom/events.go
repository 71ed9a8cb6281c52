package memdom

import "github.com/vango-dev/hyperoop/pkg/dom"

// Event is a memdom event. It bubbles from the target to the root.
type Event struct {
	typ     string
	target  dom.Node
	current dom.Element
	stopped bool

	// Key carries the key name for keyboard events.
	Key string

	// Detail carries an arbitrary payload for custom events.
	Detail any
}

// NewEvent creates an event of the given type.
func NewEvent(eventType string) *Event {
	return &Event{typ: eventType}
}

func (ev *Event) Type() string { return ev.typ }
func (ev *Event) Target() dom.Node { return ev.target }
func (ev *Event) CurrentTarget() dom.Element { return ev.current }
func (ev *Event) StopPropagation() { ev.stopped = true }

// AddEventListener registers listener for eventType. Registering the same
// listener twice for the same type has no effect.
func (e *Element) AddEventListener(eventType string, listener dom.EventListener) {
	for _, l := range e.listeners[eventType] {
		if l == listener {
			return
		}
	}
	if e.listeners == nil {
		e.listeners = make(map[string][]dom.EventListener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// RemoveEventListener unregisters listener for eventType.
func (e *Element) RemoveEventListener(eventType string, listener dom.EventListener) {
	ls := e.listeners[eventType]
	for i, l := range ls {
		if l == listener {
			e.listeners[eventType] = append(ls[:i], ls[i+1:]...)
			break
		}
	}
	if len(e.listeners[eventType]) == 0 {
		delete(e.listeners, eventType)
	}
}

// ListenerCount returns how many listeners are registered for eventType.
func (e *Element) ListenerCount(eventType string) int {
	return len(e.listeners[eventType])
}

// Dispatch delivers ev to e and then to each ancestor until a listener stops
// propagation.
func (e *Element) Dispatch(ev *Event) {
	ev.target = e
	for n := e; n != nil && !ev.stopped; n = n.parent {
		ls := n.listeners[ev.typ]
		if len(ls) == 0 {
			continue
		}
		ev.current = n
		snapshot := make([]dom.EventListener, len(ls))
		copy(snapshot, ls)
		for _, l := range snapshot {
			l.HandleEvent(ev)
		}
	}
	ev.current = nil
}

// DispatchEvent creates and dispatches an event of the given type.
func (e *Element) DispatchEvent(eventType string) *Event {
	ev := NewEvent(eventType)
	e.Dispatch(ev)
	return ev
}
