package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves /metrics for scraping while the client runs
type Server struct {
	addr   string
	server *http.Server
	logger ectologger.Logger
}

// NewServer creates a metrics listener on addr
func NewServer(addr string, logger ectologger.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{
		addr: addr,
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

func (s *Server) GetName() string     { return "metrics-server" }
func (s *Server) DependsOn() []string { return nil }

// Start binds the listener and serves in the background
func (s *Server) Start(_ context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.WithError(err).Error("Metrics server stopped")
		}
	}()

	s.logger.Infof("Serving metrics on %s/metrics", listener.Addr())
	return nil
}

// Stop shuts the listener down
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
