// Package httpapi exposes the retrieval pipeline over a small JSON API.
//
// Endpoints:
//
//	GET  /health  liveness probe
//	POST /ingest  build the index from a documentation directory
//	POST /ask     answer a question against the persisted index
package httpapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/traceleaf/docrag/internal/core/ports/driving"
	"github.com/traceleaf/docrag/internal/logger"
)

// Server serves the retrieval API.
type Server struct {
	pipeline driving.Pipeline
	addr     string
	server   *http.Server
	listener net.Listener
}

// NewServer creates a server for the given pipeline. The addr is a
// listen address such as ":8080".
func NewServer(pipeline driving.Pipeline, addr string) *Server {
	return &Server{
		pipeline: pipeline,
		addr:     addr,
	}
}

// Handler returns the route table. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ingest", s.handleIngest)
	mux.HandleFunc("/ask", s.handleAsk)
	return mux
}

// Start begins listening on the configured address. It returns once the
// listener is bound; serving continues in the background.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = listener

	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("http server stopped: %v", err)
		}
	}()

	logger.Info("listening on %s", listener.Addr())
	return nil
}

// Addr returns the bound listen address, or the configured address when
// the server has not started.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
