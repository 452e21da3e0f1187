package player

// EventType represents a player event type.
type EventType int

const (
	EventTrackChanged  EventType = iota // Selection changed (new source loaded)
	EventStateChanged                   // Playing flag changed (play/pause)
	EventProgress                       // Playback position moved
	EventDurationKnown                  // Track duration became known
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventTrackChanged:
		return "track_changed"
	case EventStateChanged:
		return "state_changed"
	case EventProgress:
		return "progress"
	case EventDurationKnown:
		return "duration_known"
	default:
		return "unknown"
	}
}

// Event represents a player state change.
type Event struct {
	Type  EventType
	State State // Snapshot taken after the change
}
