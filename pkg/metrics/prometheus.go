package metrics

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dbehnke/ccsds-fec/pkg/logger"
)

// PrometheusConfig holds Prometheus server configuration
type PrometheusConfig struct {
	Enabled bool
	Port    int
	Path    string
}

// PrometheusHandler handles Prometheus metrics HTTP requests
type PrometheusHandler struct {
	collector *Collector
}

// NewPrometheusHandler creates a new Prometheus handler
func NewPrometheusHandler(collector *Collector) *PrometheusHandler {
	return &PrometheusHandler{
		collector: collector,
	}
}

// ServeHTTP handles HTTP requests for metrics
func (h *PrometheusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	var output strings.Builder

	output.WriteString("# HELP ccsds_frames_received_total Total frames delivered by the ASM correlator\n")
	output.WriteString("# TYPE ccsds_frames_received_total counter\n")
	output.WriteString(fmt.Sprintf("ccsds_frames_received_total %d\n", h.collector.GetFramesReceived()))

	output.WriteString("# HELP ccsds_frames_decoded_total Total frames whose RS framer reported success\n")
	output.WriteString("# TYPE ccsds_frames_decoded_total counter\n")
	output.WriteString(fmt.Sprintf("ccsds_frames_decoded_total %d\n", h.collector.GetFramesDecoded()))

	output.WriteString("# HELP ccsds_subframes_decoded_total Total RS subblocks decoded successfully\n")
	output.WriteString("# TYPE ccsds_subframes_decoded_total counter\n")
	output.WriteString(fmt.Sprintf("ccsds_subframes_decoded_total %d\n", h.collector.GetSubframesDecoded()))

	output.WriteString("# HELP ccsds_subframes_total Total RS subblocks attempted\n")
	output.WriteString("# TYPE ccsds_subframes_total counter\n")
	output.WriteString(fmt.Sprintf("ccsds_subframes_total %d\n", h.collector.GetSubframesTotal()))

	output.WriteString("# HELP ccsds_bit_errors_total Cumulative payload bit errors observed\n")
	output.WriteString("# TYPE ccsds_bit_errors_total counter\n")
	output.WriteString(fmt.Sprintf("ccsds_bit_errors_total %d\n", h.collector.GetBitErrors()))

	output.WriteString("# HELP ccsds_bits_compared_total Cumulative payload bits compared\n")
	output.WriteString("# TYPE ccsds_bits_compared_total counter\n")
	output.WriteString(fmt.Sprintf("ccsds_bits_compared_total %d\n", h.collector.GetBitsCompared()))

	output.WriteString("# HELP ccsds_current_ber Running bit error rate estimate for the active sweep point\n")
	output.WriteString("# TYPE ccsds_current_ber gauge\n")
	output.WriteString(fmt.Sprintf("ccsds_current_ber %g\n", h.collector.GetCurrentBER()))

	output.WriteString("# HELP ccsds_current_ebn0_db Eb/N0 point the active sweep is operating at\n")
	output.WriteString("# TYPE ccsds_current_ebn0_db gauge\n")
	output.WriteString(fmt.Sprintf("ccsds_current_ebn0_db %g\n", h.collector.GetCurrentEbN0()))

	output.WriteString("# HELP ccsds_sync_losses_total Total LOCK-to-SEARCH transitions observed\n")
	output.WriteString("# TYPE ccsds_sync_losses_total counter\n")
	output.WriteString(fmt.Sprintf("ccsds_sync_losses_total %d\n", h.collector.GetSyncLosses()))

	w.Write([]byte(output.String()))
}

// PrometheusServer is an HTTP server for Prometheus metrics
type PrometheusServer struct {
	config    PrometheusConfig
	collector *Collector
	log       *logger.Logger
	server    *http.Server
}

// NewPrometheusServer creates a new Prometheus metrics server
func NewPrometheusServer(config PrometheusConfig, collector *Collector, log *logger.Logger) *PrometheusServer {
	if log == nil {
		log = logger.New(logger.Config{Level: "info", Format: "text"})
	}

	return &PrometheusServer{
		config:    config,
		collector: collector,
		log:       log.WithComponent("metrics"),
	}
}

// Start starts the Prometheus metrics server
func (s *PrometheusServer) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.log.Info("Prometheus metrics server disabled")
		return nil
	}

	handler := NewPrometheusHandler(s.collector)
	mux := http.NewServeMux()
	mux.Handle(s.config.Path, handler)

	// Use a listener to get the actual port (useful for testing with port 0)
	addr := fmt.Sprintf(":%d", s.config.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	actualPort := listener.Addr().(*net.TCPAddr).Port

	s.server = &http.Server{
		Handler: mux,
	}

	s.log.Info("Starting Prometheus metrics server",
		logger.Int("port", actualPort),
		logger.String("path", s.config.Path))

	// Start server
	errChan := make(chan error, 1)
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.log.Info("Shutting down Prometheus metrics server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics server shutdown error: %w", err)
		}
		return ctx.Err()
	case err := <-errChan:
		return err
	}
}

// Stop stops the Prometheus metrics server
func (s *PrometheusServer) Stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.server.Shutdown(ctx)
	}
}
