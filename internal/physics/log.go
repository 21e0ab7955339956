package physics

import "github.com/go-gl/mathgl/mgl64"

// CollisionEvent records one confirmed collision. BodyA < BodyB (canonical
// pair order); Time is Tick times the fixed timestep; Point approximates the
// contact location as the midpoint between the two centroids.
// Events are never mutated after creation.
type CollisionEvent struct {
	Tick  int
	Time  float64
	BodyA int
	BodyB int
	Point mgl64.Vec2
}

// Log is the append-only collision record. Insertion order is detection
// order: ascending tick, then ascending canonical pair id within a tick.
type Log struct {
	events []CollisionEvent
}

// Append adds an event at the end of the log.
func (l *Log) Append(e CollisionEvent) {
	l.events = append(l.events, e)
}

// Events returns a copy of the log in insertion order.
func (l *Log) Events() []CollisionEvent {
	out := make([]CollisionEvent, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of logged events.
func (l *Log) Len() int {
	return len(l.events)
}
