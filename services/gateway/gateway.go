package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"iris-dashboard/models/constants"
	"iris-dashboard/services/dispatcher"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

func New(dispatcherService dispatcher.Service) *Impl {
	return &Impl{
		dispatcher: dispatcherService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		refreshRate:  rate.Limit(viper.GetFloat64(constants.RefreshRate)),
		refreshBurst: viper.GetInt(constants.RefreshBurst),
		pongWait:     pongWait,
		sessions:     make(map[string]*session),
	}
}

func (service *Impl) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := service.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("Cannot upgrade connection to websocket")
		return
	}

	s := newSession(uuid.NewString(), conn, rate.NewLimiter(service.refreshRate, service.refreshBurst), service.pongWait*9/10)
	service.track(s)
	defer service.untrack(s)
	go s.writeLoop()

	ctx := r.Context()
	service.dispatcher.Connect(ctx, s)

	service.active.Add(1)
	go func() {
		defer service.active.Done()
		service.serveRequests(ctx, s)
	}()
	service.readLoop(s)

	service.dispatcher.Disconnect(s.id)
	s.close()
}

// Shutdown closes every open session and waits for their handlers to return.
func (service *Impl) Shutdown() {
	service.mu.Lock()
	for _, s := range service.sessions {
		s.conn.Close()
	}
	service.mu.Unlock()

	service.active.Wait()
	log.Info().Msg("Websocket sessions closed")
}

func (service *Impl) track(s *session) {
	service.mu.Lock()
	defer service.mu.Unlock()
	service.sessions[s.id] = s
	service.active.Add(1)
}

func (service *Impl) untrack(s *session) {
	service.mu.Lock()
	delete(service.sessions, s.id)
	service.mu.Unlock()
	service.active.Done()
}

// readLoop keeps reading while requests are served, so a slow answer never stalls the deadline.
func (service *Impl) readLoop(s *session) {
	s.conn.SetReadLimit(readLimit)
	s.conn.SetReadDeadline(time.Now().Add(service.pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(service.pongWait))
	})

	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Str(constants.LogSessionID, s.id).Msg("Websocket closed unexpectedly")
			}
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(service.pongWait))

		var in inboundFrame
		if errJSON := json.Unmarshal(message, &in); errJSON != nil {
			log.Warn().Err(errJSON).Str(constants.LogSessionID, s.id).Msg("Malformed frame ignored")
			continue
		}

		service.enqueue(s, in)
	}
}

func (service *Impl) enqueue(s *session, in inboundFrame) {
	switch in.Event {
	case constants.RequestRefreshEvent, constants.RequestTechNewsEvent, constants.RequestTechNewsReload:
	default:
		log.Debug().Str(constants.LogSessionID, s.id).Str(constants.LogEvent, in.Event).Msg("Unknown event ignored")
		return
	}

	if !s.limiter.Allow() {
		log.Warn().Str(constants.LogSessionID, s.id).Str(constants.LogEvent, in.Event).Msg("Too many requests, ignored")
		return
	}

	select {
	case s.requests <- in:
	default:
		log.Warn().Str(constants.LogSessionID, s.id).Str(constants.LogEvent, in.Event).Msg("Request queue full, ignored")
	}
}

func (service *Impl) serveRequests(ctx context.Context, s *session) {
	for {
		select {
		case <-s.done:
			return
		case in := <-s.requests:
			service.handle(ctx, s, in)
		}
	}
}

func (service *Impl) handle(ctx context.Context, s *session, in inboundFrame) {
	var err error
	switch in.Event {
	case constants.RequestRefreshEvent:
		var req refreshRequest
		if len(in.Data) > 0 {
			if errJSON := json.Unmarshal(in.Data, &req); errJSON != nil {
				log.Debug().Err(errJSON).Str(constants.LogSessionID, s.id).Msg("Refresh payload ignored")
			}
		}
		err = service.dispatcher.Refresh(ctx, s.id, req.Force)
	default:
		err = service.dispatcher.TechNews(ctx, s.id)
	}

	if err != nil && !errors.Is(err, ErrSessionClosed) {
		log.Warn().Err(err).Str(constants.LogSessionID, s.id).Str(constants.LogEvent, in.Event).Msg("Cannot answer request")
	}
}
