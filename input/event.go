package input

import (
	"fmt"
	"sync"

	"github.com/milk9111/porp/vmath"
)

// EventKind tags an Event.
type EventKind uint8

const (
	EventResized EventKind = iota
	EventClosed
	EventFocused
	EventKey
	EventMouseMoved
	EventMouseButton
)

func (k EventKind) String() string {
	switch k {
	case EventResized:
		return "resized"
	case EventClosed:
		return "closed"
	case EventFocused:
		return "focused"
	case EventKey:
		return "key"
	case EventMouseMoved:
		return "mouse_moved"
	case EventMouseButton:
		return "mouse_button"
	}
	return fmt.Sprintf("event(%d)", uint8(k))
}

// Event is one window event. Only the fields matching Kind are set.
type Event struct {
	Kind EventKind

	Size     vmath.Vec2 // EventResized
	Focused  bool       // EventFocused
	Key      KeyCode    // EventKey
	Mouse    MouseButton
	State    ButtonState // EventKey, EventMouseButton
	Position vmath.Vec2  // EventMouseMoved
}

func Resized(w, h float32) Event { return Event{Kind: EventResized, Size: vmath.Vec2{w, h}} }

func Closed() Event { return Event{Kind: EventClosed} }

func Focused(f bool) Event { return Event{Kind: EventFocused, Focused: f} }

func KeyEvent(k KeyCode, s ButtonState) Event { return Event{Kind: EventKey, Key: k, State: s} }

func MouseMoved(x, y float32) Event {
	return Event{Kind: EventMouseMoved, Position: vmath.Vec2{x, y}}
}

func MouseButtonEvent(b MouseButton, s ButtonState) Event {
	return Event{Kind: EventMouseButton, Mouse: b, State: s}
}

// Source yields the events that arrived since the previous call.
type Source interface {
	PollEvents() []Event
}

// Queue buffers events pushed from any goroutine until they are polled.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Push(events ...Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, events...)
}

func (q *Queue) PollEvents() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.events
	q.events = nil
	return out
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
