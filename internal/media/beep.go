package media

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	zlog "github.com/rs/zerolog/log"

	"playdeck/internal/app/player"
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

// loadedSource bundles the resources of a single loaded audio source.
type loadedSource struct {
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
}

func (s *loadedSource) close() {
	if s.streamer != nil {
		s.streamer.Close()
	}
	if s.file != nil {
		s.file.Close()
	}
}

// beepHandle plays local audio files through the speaker package.
// It owns the position-update ticker; the controller owns no timers.
type beepHandle struct {
	mu sync.Mutex

	settings   BeepSettings
	sampleRate beep.SampleRate

	current *loadedSource
	loadErr error

	// Load generation, bumped on every Load so the ticker and the
	// end-of-stream callback of a superseded source go quiet.
	gen int

	subs    map[int]func(player.Notification)
	nextSub int

	notifyCh chan player.Notification
	done     chan struct{}
}

func newBeepHandle(cfg BeepSettings) (*beepHandle, error) {
	sr := beep.SampleRate(cfg.SampleRate)
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(sr, sr.N(time.Duration(cfg.BufferMs)*time.Millisecond))
	})
	if speakerErr != nil {
		return nil, errors.Wrap(speakerErr, "failed to initialize speaker")
	}

	h := &beepHandle{
		settings:   cfg,
		sampleRate: sr,
		subs:       make(map[int]func(player.Notification)),
		notifyCh:   make(chan player.Notification, 128),
		done:       make(chan struct{}),
	}
	go h.dispatch()

	return h, nil
}

// Load replaces the current source. Decode failures are swallowed here and
// surface later as a Play rejection.
func (h *beepHandle) Load(src string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.gen++

	speaker.Clear()
	if h.current != nil {
		h.current.close()
		h.current = nil
	}

	loaded, err := openSource(src)
	if err != nil {
		zlog.Warn().Msgf("media: failed to load source: src=%s err=%v", src, err)
		h.loadErr = err
		return
	}
	h.loadErr = nil
	h.current = loaded

	gen := h.gen
	stream := beep.Seq(loaded.ctrl, beep.Callback(func() {
		h.onEnded(gen)
	}))
	if loaded.format.SampleRate != h.sampleRate {
		stream = beep.Resample(4, loaded.format.SampleRate, h.sampleRate, stream)
	}
	speaker.Play(stream)

	duration := loaded.format.SampleRate.D(loaded.streamer.Len()).Seconds()
	h.emit(player.Notification{Type: player.NoteDuration, Seconds: duration})

	go h.tick(gen)
}

// Play starts or resumes playback. It is rejected when no source is loaded,
// which is the only failure the player ever observes.
func (h *beepHandle) Play() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current == nil {
		if h.loadErr != nil {
			return errors.Wrap(h.loadErr, "no playable source")
		}
		return errors.New("no source loaded")
	}

	speaker.Lock()
	h.current.ctrl.Paused = false
	speaker.Unlock()

	h.emit(player.Notification{Type: player.NoteStarted})
	return nil
}

// Pause suspends playback.
func (h *beepHandle) Pause() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current == nil {
		return
	}

	speaker.Lock()
	h.current.ctrl.Paused = true
	speaker.Unlock()

	h.emit(player.Notification{Type: player.NotePaused})
}

// Seek moves the playback position.
func (h *beepHandle) Seek(seconds float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current == nil {
		return
	}

	n := h.current.format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	if n < 0 {
		n = 0
	}
	if max := h.current.streamer.Len() - 1; n > max {
		n = max
	}

	speaker.Lock()
	err := h.current.streamer.Seek(n)
	speaker.Unlock()
	if err != nil {
		zlog.Warn().Msgf("media: seek failed: seconds=%.1f err=%v", seconds, err)
		return
	}

	h.emit(player.Notification{Type: player.NoteTime, Seconds: seconds})
}

// Subscribe registers a notification callback.
func (h *beepHandle) Subscribe(fn func(player.Notification)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextSub
	h.nextSub++
	h.subs[id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

// Close stops playback and releases all resources.
func (h *beepHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	select {
	case <-h.done:
		return nil
	default:
	}

	h.gen++
	close(h.done)
	speaker.Clear()
	if h.current != nil {
		h.current.close()
		h.current = nil
	}
	return nil
}

// tick reports the playback position while the source of the given
// generation is playing.
func (h *beepHandle) tick(gen int) {
	interval := time.Duration(h.settings.UpdateIntervalMs) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			h.mu.Lock()
			if gen != h.gen || h.current == nil {
				h.mu.Unlock()
				return
			}
			speaker.Lock()
			paused := h.current.ctrl.Paused
			pos := h.current.streamer.Position()
			speaker.Unlock()
			rate := h.current.format.SampleRate
			h.mu.Unlock()

			if paused {
				continue
			}
			h.emit(player.Notification{Type: player.NoteTime, Seconds: rate.D(pos).Seconds()})
		}
	}
}

// onEnded runs from the speaker goroutine when the stream is exhausted.
func (h *beepHandle) onEnded(gen int) {
	h.mu.Lock()
	if gen != h.gen {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	h.emit(player.Notification{Type: player.NoteEnded})
}

// emit queues a notification for asynchronous delivery. A full queue drops
// the notification; position updates dominate the traffic and a later one
// supersedes anything lost.
func (h *beepHandle) emit(n player.Notification) {
	select {
	case h.notifyCh <- n:
	default:
		zlog.Debug().Msgf("media: notification dropped: type=%s", n.Type)
	}
}

// dispatch fans queued notifications out to subscribers on a dedicated
// goroutine, never from inside a command call.
func (h *beepHandle) dispatch() {
	for {
		select {
		case <-h.done:
			return
		case n := <-h.notifyCh:
			h.mu.Lock()
			fns := make([]func(player.Notification), 0, len(h.subs))
			for _, fn := range h.subs {
				fns = append(fns, fn)
			}
			h.mu.Unlock()

			for _, fn := range fns {
				fn(n)
			}
		}
	}
}

// openSource opens and decodes a local audio file by extension.
func openSource(src string) (*loadedSource, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open audio file")
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(src)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".ogg", ".oga":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		f.Close()
		return nil, errors.Newf("unsupported audio format: %s", filepath.Ext(src))
	}
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "failed to decode audio file")
	}

	return &loadedSource{
		file:     f,
		streamer: streamer,
		format:   format,
		ctrl:     &beep.Ctrl{Streamer: streamer, Paused: true},
	}, nil
}
