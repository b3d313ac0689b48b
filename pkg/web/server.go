package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dbehnke/ccsds-fec/pkg/config"
	"github.com/dbehnke/ccsds-fec/pkg/logger"
	"github.com/dbehnke/ccsds-fec/pkg/metrics"
)

// Server exposes the decode harness's live state over HTTP and WebSocket:
// a JSON status endpoint reflecting the current metrics.Collector, and a
// realtime event stream for sweep points and frame decode outcomes.
type Server struct {
	config config.WebConfig
	logger *logger.Logger
	server *http.Server
	hub    *WebSocketHub
	addr   string
	mu     sync.RWMutex

	collector *metrics.Collector
}

// NewServer creates a new web server instance
func NewServer(cfg config.WebConfig, log *logger.Logger) *Server {
	return &Server{
		config: cfg,
		logger: log,
		hub:    NewWebSocketHub(log),
	}
}

// WithCollector attaches a metrics.Collector whose counters back the
// /api/status endpoint.
func (s *Server) WithCollector(c *metrics.Collector) *Server {
	s.collector = c
	return s
}

// Start starts the web server
func Start(ctx context.Context, cfg config.WebConfig, log *logger.Logger) error {
	srv := NewServer(cfg, log)
	return srv.Start(ctx)
}

// StartWithCollector starts the web server with a metrics.Collector wired
// in for the /api/status endpoint.
func StartWithCollector(ctx context.Context, cfg config.WebConfig, log *logger.Logger, c *metrics.Collector) error {
	srv := NewServer(cfg, log).WithCollector(c)
	return srv.Start(ctx)
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.logger.Info("Web server is disabled")
		return nil
	}

	go s.hub.Run(ctx)
	// Broadcast a lightweight heartbeat periodically so clients can confirm
	// realtime plumbing, independent of sweep activity.
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				s.hub.Broadcast(Event{
					Type:      "heartbeat",
					Timestamp: t,
					Data: map[string]interface{}{
						"clients": s.hub.GetClientCount(),
					},
				})
			}
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.Handle("/ws", s.hub.Handler())

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	s.mu.Lock()
	s.addr = listener.Addr().String()
	s.mu.Unlock()

	s.logger.Info("Starting web server",
		logger.String("address", s.addr))

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		return ctx.Err()
	case err := <-errChan:
		return err
	}
}

// GetAddr returns the address the server is listening on
func (s *Server) GetAddr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// GetHub returns the WebSocket hub
func (s *Server) GetHub() *WebSocketHub {
	return s.hub
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "ccsds-fec",
		"time":    time.Now().Unix(),
	}); err != nil {
		s.logger.Warn("Failed to encode health response", logger.Error(err))
	}
}

// handleStatus reports the current metrics.Collector counters.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if s.collector == nil {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"collector": "not attached"})
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"frames_received":   s.collector.GetFramesReceived(),
		"frames_decoded":    s.collector.GetFramesDecoded(),
		"subframes_decoded": s.collector.GetSubframesDecoded(),
		"subframes_total":   s.collector.GetSubframesTotal(),
		"bit_errors":        s.collector.GetBitErrors(),
		"bits_compared":     s.collector.GetBitsCompared(),
		"current_ber":       s.collector.GetCurrentBER(),
		"current_ebn0_db":   s.collector.GetCurrentEbN0(),
		"sync_losses":       s.collector.GetSyncLosses(),
	})
}
