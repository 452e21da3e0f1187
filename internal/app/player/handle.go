package player

// NotificationType represents a media handle notification type.
type NotificationType int

const (
	NoteTime     NotificationType = iota // Playback position update (Seconds set)
	NoteDuration                         // Track duration became known (Seconds set)
	NoteStarted                          // Playback started
	NotePaused                           // Playback paused
	NoteEnded                            // Track played to completion
)

// String returns the string representation of the notification type.
func (n NotificationType) String() string {
	switch n {
	case NoteTime:
		return "time"
	case NoteDuration:
		return "duration"
	case NoteStarted:
		return "started"
	case NotePaused:
		return "paused"
	case NoteEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Notification is a status report from the media handle.
type Notification struct {
	Type    NotificationType
	Seconds float64 // Position or duration, depending on Type
}

// Handle is the platform facility that decodes and plays an audio source.
// The controller owns exactly one handle and issues all commands to it.
//
// Implementations must deliver notifications from their own goroutine, never
// synchronously from inside a command call, and must stop reporting for the
// previous source once Load is issued for a new one.
type Handle interface {
	// Load replaces the current source. Any active playback stops.
	Load(src string)

	// Play starts or resumes playback. The only observable failure in the
	// player is a rejected start; everything else is fire-and-forget.
	Play() error

	// Pause suspends playback.
	Pause()

	// Seek moves the playback position to the given offset in seconds.
	Seek(seconds float64)

	// Subscribe registers a notification callback and returns a function
	// that unregisters it.
	Subscribe(fn func(Notification)) (unsubscribe func())

	// Close releases the handle's resources.
	Close() error
}
