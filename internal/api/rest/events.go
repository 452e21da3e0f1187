package rest

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	zlog "github.com/rs/zerolog/log"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	writeWait  = 5 * time.Second
	pingPeriod = 30 * time.Second
)

// handleEvents upgrades to a websocket and pushes the view model on every
// player event. Clients that cannot keep up are disconnected.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		zlog.Warn().Msgf("api: websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	subID, events := s.events.Subscribe(32)
	defer s.events.Unsubscribe(subID)

	zlog.Debug().Msgf("api: event subscriber connected: id=%s remote=%s", subID, r.RemoteAddr)

	// Discard inbound frames but notice the close handshake.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Initial snapshot so the client renders without waiting for a change.
	if err := s.writeViewModel(conn); err != nil {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
			if err := s.writeViewModel(conn); err != nil {
				zlog.Debug().Msgf("api: event subscriber dropped: id=%s err=%v", subID, err)
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-closed:
			return
		}
	}
}

func (s *Server) writeViewModel(conn *websocket.Conn) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(s.viewModel())
}
