package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iris-dashboard/models/constants"
	"iris-dashboard/pkg/metrics"
	"iris-dashboard/services/dispatcher"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var (
	dashboardPage = page{name: "Dashboard.html", files: []string{"Dashboard.html", "dashboard.html"}}
	techNewsPage  = page{name: "TechNews.html", files: []string{"TechNews.html", "technews.html"}}
)

func New(push http.Handler, dispatcherService dispatcher.Service) *Impl {
	service := Impl{
		router:        mux.NewRouter(),
		dispatcher:    dispatcherService,
		staticDir:     viper.GetString(constants.StaticDir),
		userName:      viper.GetString(constants.UserName),
		primaryCity:   viper.GetString(constants.PrimaryCity),
		secondaryCity: viper.GetString(constants.SecondaryCity),
		now:           time.Now,
	}

	service.router.Handle("/ws", push)
	service.router.HandleFunc("/", service.servePage(dashboardPage)).Methods(http.MethodGet)
	service.router.HandleFunc("/tech-news", service.servePage(techNewsPage)).Methods(http.MethodGet)
	service.router.HandleFunc("/config", service.config).Methods(http.MethodGet)
	service.router.HandleFunc("/health", service.health).Methods(http.MethodGet)
	service.router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	address := net.JoinHostPort(viper.GetString(constants.ServerHost), strconv.Itoa(viper.GetInt(constants.ServerPort)))
	service.server = &http.Server{
		Addr:              address,
		Handler:           service.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return &service
}

func (service *Impl) Handler() http.Handler {
	return service.router
}

// ListenAndServe blocks until Shutdown is called.
func (service *Impl) ListenAndServe() error {
	log.Info().Msgf("HTTP server listening on %s", service.server.Addr)
	err := service.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (service *Impl) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := service.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Cannot shutdown HTTP server, continuing...")
	}
}

func (service *Impl) servePage(p page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, file := range p.files {
			path := filepath.Join(service.staticDir, file)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				http.ServeFile(w, r, path)
				return
			}
		}

		log.Warn().Str(constants.LogFileName, p.name).Str("dir", service.staticDir).Msg("Page not found")
		http.Error(w, fmt.Sprintf("%s not found", p.name), http.StatusNotFound)
	}
}

func (service *Impl) config(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, configResponse{
		UserName:      service.userName,
		PrimaryCity:   service.primaryCity,
		SecondaryCity: service.secondaryCity,
	})
}

func (service *Impl) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        healthStatus,
		ActiveClients: service.dispatcher.ActiveSubscribers(),
		Timestamp:     service.now(),
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn().Err(err).Msg("Cannot encode response")
	}
}
