// Package notification fans player events out to multiple subscribers.
package notification

import (
	"sync"

	"github.com/google/uuid"

	"playdeck/internal/app/player"
)

// subscription represents a subscriber's event channel.
type subscription struct {
	id string
	ch chan player.Event
}

// Manager manages event subscriptions and broadcasting. The player
// controller publishes on a single channel; the manager lets the terminal
// UI and remote-control clients each consume their own copy.
type Manager struct {
	mu            sync.RWMutex
	subscriptions map[string]*subscription
	closed        bool
}

// NewManager creates a new notification manager.
func NewManager() *Manager {
	return &Manager{
		subscriptions: make(map[string]*subscription),
	}
}

// Subscribe adds a new subscription and returns its ID and event channel.
// The channel is buffered; a subscriber that falls behind loses intermediate
// events but always receives a later snapshot.
func (m *Manager) Subscribe(buffer int) (string, <-chan player.Event) {
	if buffer <= 0 {
		buffer = 16
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()
	sub := &subscription{
		id: id,
		ch: make(chan player.Event, buffer),
	}
	if m.closed {
		close(sub.ch)
		return id, sub.ch
	}
	m.subscriptions[id] = sub
	return id, sub.ch
}

// Unsubscribe removes a subscription and closes its channel.
func (m *Manager) Unsubscribe(subscriptionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, ok := m.subscriptions[subscriptionID]
	if !ok {
		return
	}
	delete(m.subscriptions, subscriptionID)
	close(sub.ch)
}

// Broadcast delivers an event to every subscriber without blocking.
// A full subscriber channel drops the event.
func (m *Manager) Broadcast(e player.Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscriptions {
		select {
		case sub.ch <- e:
		default:
			// Subscriber is behind; a later event supersedes this one
		}
	}
}

// Pump broadcasts every event from the given channel until it closes.
func (m *Manager) Pump(events <-chan player.Event) {
	for e := range events {
		m.Broadcast(e)
	}
}

// SubscriberCount returns the number of active subscribers.
func (m *Manager) SubscriberCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscriptions)
}

// Close removes all subscriptions and closes their channels.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true
	for id, sub := range m.subscriptions {
		delete(m.subscriptions, id)
		close(sub.ch)
	}
}
