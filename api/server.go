// Package api exposes the operational HTTP surface: component health and
// Prometheus metrics. Price data itself is served through the library
// facade, not over HTTP.
package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openwallet/market-sync/history"
	"github.com/openwallet/market-sync/manager"
	"github.com/openwallet/market-sync/scheduler"
)

// UpstreamHealth reports whether the feed boundary has succeeded recently
type UpstreamHealth interface {
	Healthy() bool
}

type Server struct {
	port     string
	upstream UpstreamHealth
	manager  *manager.Manager
	history  *history.Manager
	loop     *scheduler.SyncLoop
	server   *http.Server
}

func New(port string, upstream UpstreamHealth, mgr *manager.Manager, hist *history.Manager, loop *scheduler.SyncLoop) *Server {
	return &Server{
		port:     port,
		upstream: upstream,
		manager:  mgr,
		history:  hist,
		loop:     loop,
	}
}

func (s *Server) Start(ctx context.Context) error {
	router := mux.NewRouter()

	router.HandleFunc("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	s.server = &http.Server{
		Addr:    ":" + s.port,
		Handler: router,
	}

	log.Printf("Server starting at http://localhost:%s", s.port)
	log.Println("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}
}
