package gateway

import (
	"encoding/json"
	"errors"
	"iris-dashboard/services/dispatcher"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	sendBufferSize   = 16
	requestQueueSize = 4
	readLimit        = 64 << 10
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
)

var (
	ErrSessionClosed = errors.New("session is closed")
	ErrSessionBusy   = errors.New("session send buffer is full")
)

type Impl struct {
	dispatcher   dispatcher.Service
	upgrader     websocket.Upgrader
	refreshRate  rate.Limit
	refreshBurst int
	// pongWait is how long a silent connection stays open; pings go out at 9/10 of it.
	pongWait     time.Duration
	mu           sync.Mutex
	sessions     map[string]*session
	active       sync.WaitGroup
}

// frame is the wire envelope for both directions: {"event": ..., "data": ...}.
type frame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type refreshRequest struct {
	Force bool `json:"force"`
}

// session is one websocket subscriber. Writes go through send, drained by a single writer goroutine;
// inbound requests go through requests, served one at a time off the read loop.
type session struct {
	id         string
	conn       *websocket.Conn
	send       chan frame
	requests   chan inboundFrame
	done       chan struct{}
	closeOnce  sync.Once
	limiter    *rate.Limiter
	pingPeriod time.Duration
}
