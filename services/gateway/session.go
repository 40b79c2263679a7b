package gateway

import (
	"iris-dashboard/models/constants"
	"iris-dashboard/pkg/observer"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

func newSession(id string, conn *websocket.Conn, limiter *rate.Limiter, pingPeriod time.Duration) *session {
	return &session{
		id:         id,
		conn:       conn,
		send:       make(chan frame, sendBufferSize),
		requests:   make(chan inboundFrame, requestQueueSize),
		done:       make(chan struct{}),
		limiter:    limiter,
		pingPeriod: pingPeriod,
	}
}

func (s *session) ID() string {
	return s.id
}

// OnNotify queues the event for the writer and never blocks.
func (s *session) OnNotify(e observer.Event) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}

	select {
	case s.send <- frame{Event: e.Name, Data: e.Payload}:
		return nil
	case <-s.done:
		return ErrSessionClosed
	default:
		return ErrSessionBusy
	}
}

func (s *session) close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

func (s *session) writeLoop() {
	ticker := time.NewTicker(s.pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case <-s.done:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case f := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(f); err != nil {
				log.Warn().Err(err).Str(constants.LogSessionID, s.id).Str(constants.LogEvent, f.Event).Msg("Cannot write frame, closing session")
				s.close()
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.close()
				return
			}
		}
	}
}
