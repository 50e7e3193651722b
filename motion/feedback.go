package motion

import "fmt"

// EventKind identifies a feedback event.
type EventKind string

const (
	EventJumped        EventKind = "jumped"
	EventWallJumped    EventKind = "wall_jumped"
	EventLanded        EventKind = "landed"
	EventDashStarted   EventKind = "dash_started"
	EventDashEnded     EventKind = "dash_ended"
	EventDashCancelled EventKind = "dash_cancelled"
)

// Event is emitted by the controller for animation and effect systems.
// Duration is only set for EventDashStarted.
type Event struct {
	Kind     EventKind
	Duration float64
}

func (e Event) String() string {
	if e.Kind == EventDashStarted {
		return fmt.Sprintf("%s(%.3fs)", e.Kind, e.Duration)
	}
	return string(e.Kind)
}

// FeedbackFunc receives events in emission order, after the step completes.
type FeedbackFunc func(Event)

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
