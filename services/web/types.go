package web

import (
	"iris-dashboard/services/dispatcher"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const (
	readHeaderTimeout = 10 * time.Second
	healthStatus      = "online"
)

type Service interface {
	Handler() http.Handler
	ListenAndServe() error
	Shutdown()
}

type Impl struct {
	router        *mux.Router
	server        *http.Server
	dispatcher    dispatcher.Service
	staticDir     string
	userName      string
	primaryCity   string
	secondaryCity string
	now           func() time.Time
}

// page is a static HTML document looked up under several file names.
type page struct {
	name  string
	files []string
}

type configResponse struct {
	UserName      string `json:"userName"`
	PrimaryCity   string `json:"primaryCity"`
	SecondaryCity string `json:"secondaryCity"`
}

type healthResponse struct {
	Status        string    `json:"status"`
	ActiveClients int       `json:"active_clients"`
	Timestamp     time.Time `json:"timestamp"`
}
