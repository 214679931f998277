package steering

import "gonum.org/v1/gonum/spatial/r2"

// EventKind identifies a tracker state transition.
type EventKind uint8

const (
	EventTargetAcquired EventKind = iota // new random wander target
	EventShockStarted
	EventShockEnded
	EventFoodLocked
	EventFoodEaten
	EventFoodAbandoned // lock ended without eating
)

func (k EventKind) String() string {
	switch k {
	case EventTargetAcquired:
		return "target_acquired"
	case EventShockStarted:
		return "shock_started"
	case EventShockEnded:
		return "shock_ended"
	case EventFoodLocked:
		return "food_locked"
	case EventFoodEaten:
		return "food_eaten"
	case EventFoodAbandoned:
		return "food_abandoned"
	}
	return "unknown"
}

// Event describes a transition. Food is set for food events only.
type Event struct {
	Kind     EventKind
	Position r2.Vec // colony location when the event fired
	Speed    float64
	Food     *Food
}

// Listener receives tracker events synchronously on the tick that caused them.
type Listener interface {
	TrackerEvent(e Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(e Event)

// TrackerEvent calls f(e).
func (f ListenerFunc) TrackerEvent(e Event) { f(e) }

type nopListener struct{}

func (nopListener) TrackerEvent(Event) {}
