package player

import (
	"context"
	"sync"

	zlog "github.com/rs/zerolog/log"

	"playdeck/internal/domain/track"
)

// Config holds controller configuration.
type Config struct {
	RewindThresholdSec float64 // Previous rewinds instead of switching above this position
}

// DefaultRewindThresholdSec is used when the configured threshold is not positive.
const DefaultRewindThresholdSec = 3.0

// Controller owns the selected-track state and the single media handle.
// All mutation goes through its operations; the view layers only ever see
// State snapshots delivered on the event channel.
type Controller struct {
	mu sync.Mutex

	tracks track.Tracklist
	handle Handle
	state  State

	rewindThreshold float64

	// Load generation. Bumped on every source reload so notifications from
	// a superseded source are dropped instead of leaking stale position or
	// duration values into the new track.
	gen int

	unsubscribe func()

	// Events
	eventCh chan Event

	// Context
	ctx    context.Context
	cancel context.CancelFunc
}

// NewController creates a controller over the given tracklist and handle.
// If the tracklist is non-empty, the first track's source is loaded without
// starting playback. The handle subscription is held until Close.
func NewController(cfg Config, tracks track.Tracklist, handle Handle) *Controller {
	threshold := cfg.RewindThresholdSec
	if threshold <= 0 {
		threshold = DefaultRewindThresholdSec
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		tracks:          tracks,
		handle:          handle,
		rewindThreshold: threshold,
		eventCh:         make(chan Event, 16),
		ctx:             ctx,
		cancel:          cancel,
	}

	c.mu.Lock()
	c.subscribeLocked()
	if !tracks.IsEmpty() {
		handle.Load(tracks.At(0).AudioPath)
	}
	c.mu.Unlock()

	return c
}

// Events returns the event channel. One event is published after every
// state change; slow consumers may miss intermediate events but always
// receive a later snapshot.
func (c *Controller) Events() <-chan Event {
	return c.eventCh
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Tracks returns the current tracklist.
func (c *Controller) Tracks() track.Tracklist {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracks
}

// ReplaceTracks swaps the tracklist, typically after the playlist file was
// reloaded. The selection is kept when the current track is still present;
// otherwise the first track is loaded without starting playback. An empty
// replacement pauses the handle and clears the state.
func (c *Controller) ReplaceTracks(tracks track.Tracklist) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var currentID string
	if c.tracks.Contains(c.state.Index) {
		currentID = c.tracks.At(c.state.Index).ID
	}

	c.tracks = tracks

	if tracks.IsEmpty() {
		c.gen++
		if c.unsubscribe != nil {
			c.unsubscribe()
		}
		c.subscribeLocked()
		c.handle.Pause()
		c.state = State{}
		c.sendEventLocked(Event{Type: EventTrackChanged, State: c.state})
		return
	}

	if currentID != "" {
		for i, t := range tracks.All() {
			if t.ID == currentID {
				c.state.Index = i
				c.sendEventLocked(Event{Type: EventTrackChanged, State: c.state})
				return
			}
		}
	}

	c.state.PendingAutoplay = false
	c.selectLocked(0)
}

// CurrentTrack returns the selected track.
func (c *Controller) CurrentTrack() (track.Track, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tracks.IsEmpty() {
		return track.Track{}, false
	}
	return c.tracks.At(c.state.Index), true
}

// Select selects the track at index i. Selecting the current track toggles
// play/pause instead of reloading; any other valid index reloads the source
// with autoplay pending. Invalid indices are ignored.
func (c *Controller) Select(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.tracks.Contains(i) {
		return
	}
	if i == c.state.Index {
		c.toggleLocked()
		return
	}

	c.state.PendingAutoplay = true
	c.selectLocked(i)
}

// Toggle toggles between play and pause.
func (c *Controller) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tracks.IsEmpty() {
		return
	}
	c.toggleLocked()
}

// Next selects the next track with wrap-around, autoplay pending.
func (c *Controller) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tracks.IsEmpty() {
		return
	}

	c.state.PendingAutoplay = true
	c.selectLocked(c.tracks.NextIndex(c.state.Index))
}

// Previous rewinds to the start of the current track when more than the
// rewind threshold has played; otherwise it selects the previous track with
// wrap-around, autoplay pending.
func (c *Controller) Previous() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tracks.IsEmpty() {
		return
	}

	if c.state.Position > c.rewindThreshold {
		c.seekLocked(0)
		return
	}

	c.state.PendingAutoplay = true
	c.selectLocked(c.tracks.PrevIndex(c.state.Index))
}

// Seek moves playback to the given position in seconds. The displayed
// position is updated immediately rather than waiting for the handle's own
// notification.
func (c *Controller) Seek(seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tracks.IsEmpty() {
		return
	}
	c.seekLocked(seconds)
}

// Close releases the handle subscription and stops event delivery.
// The handle itself is owned by the caller and is not closed here.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}

	// Cancel and close under the lock; sendEventLocked also runs under the
	// lock, so no send can race the close.
	select {
	case <-c.ctx.Done():
		return // already closed
	default:
	}
	c.cancel()
	close(c.eventCh)
}

// toggleLocked issues play or pause depending on the reported state.
// Must be called with lock held.
func (c *Controller) toggleLocked() {
	if c.state.Playing {
		c.handle.Pause()
		return
	}
	c.playLocked()
}

// playLocked attempts to start playback. A rejected start is swallowed and
// leaves the player paused; there is no retry and no user-visible error.
// Must be called with lock held.
func (c *Controller) playLocked() {
	if err := c.handle.Play(); err != nil {
		zlog.Debug().Msgf("player: playback start rejected: index=%d err=%v", c.state.Index, err)
		c.state.Playing = false
		c.sendEventLocked(Event{Type: EventStateChanged, State: c.state})
	}
}

// selectLocked switches the selection to index i and reloads the source.
// Position and duration are zeroed before Load so nothing reported for the
// previous source can be observed against the new one. Must be called with
// lock held.
func (c *Controller) selectLocked(i int) {
	c.gen++
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	c.subscribeLocked()

	c.state.Index = i
	c.state.Position = 0
	c.state.Duration = 0
	c.state.Playing = false

	c.handle.Load(c.tracks.At(i).AudioPath)

	if c.state.PendingAutoplay {
		c.state.PendingAutoplay = false
		if err := c.handle.Play(); err != nil {
			zlog.Debug().Msgf("player: autoplay rejected: index=%d err=%v", i, err)
			c.state.Playing = false
		}
	}

	c.sendEventLocked(Event{Type: EventTrackChanged, State: c.state})
}

// seekLocked mirrors the target into the reported position immediately,
// then commands the handle. Must be called with lock held.
func (c *Controller) seekLocked(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	if c.state.HasDuration() && seconds > c.state.Duration {
		seconds = c.state.Duration
	}

	c.state.Position = seconds
	c.handle.Seek(seconds)
	c.sendEventLocked(Event{Type: EventProgress, State: c.state})
}

// subscribeLocked registers the notification callback for the current load
// generation. Must be called with lock held.
func (c *Controller) subscribeLocked() {
	gen := c.gen
	c.unsubscribe = c.handle.Subscribe(func(n Notification) {
		c.onNotification(gen, n)
	})
}

// onNotification applies a handle notification to the state. Notifications
// carrying a superseded load generation are dropped.
func (c *Controller) onNotification(gen int, n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		zlog.Debug().Msgf("player: dropping stale notification: type=%s gen=%d current=%d", n.Type, gen, c.gen)
		return
	}

	// A reload to an empty list clears the state but keeps the subscription;
	// anything still in flight has nothing to apply to.
	if c.tracks.IsEmpty() {
		return
	}

	switch n.Type {
	case NoteTime:
		c.state.Position = n.Seconds
		if c.state.HasDuration() && c.state.Position > c.state.Duration {
			c.state.Position = c.state.Duration
		}
		c.sendEventLocked(Event{Type: EventProgress, State: c.state})

	case NoteDuration:
		c.state.Duration = n.Seconds
		if c.state.HasDuration() && c.state.Position > c.state.Duration {
			c.state.Position = c.state.Duration
		}
		c.sendEventLocked(Event{Type: EventDurationKnown, State: c.state})

	case NoteStarted:
		c.state.Playing = true
		c.sendEventLocked(Event{Type: EventStateChanged, State: c.state})

	case NotePaused:
		c.state.Playing = false
		c.sendEventLocked(Event{Type: EventStateChanged, State: c.state})

	case NoteEnded:
		// End of track behaves like Next: auto-advance with autoplay.
		c.state.PendingAutoplay = true
		c.selectLocked(c.tracks.NextIndex(c.state.Index))
	}
}

// sendEventLocked sends an event without blocking.
// Must be called with lock held.
func (c *Controller) sendEventLocked(e Event) {
	select {
	case <-c.ctx.Done():
		// Controller closed, don't send
	default:
		select {
		case c.eventCh <- e:
			// Successfully sent
		default:
			// Channel full, drop event; a later snapshot supersedes it
		}
	}
}
