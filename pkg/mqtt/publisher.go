package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dbehnke/ccsds-fec/pkg/logger"
)

// Config holds MQTT publisher configuration
type Config struct {
	Enabled     bool
	Broker      string
	TopicPrefix string
	ClientID    string
	Username    string
	Password    string
	QoS         byte
	Retained    bool
}

// Publisher handles MQTT event publishing
type Publisher struct {
	config Config
	log    *logger.Logger
}

// Event types for MQTT publishing

// FrameDecodedEvent represents the outcome of decoding one frame.
type FrameDecodedEvent struct {
	FrameIndex int       `json:"frame_index"`
	Locked     bool      `json:"locked"`
	Inverted   bool      `json:"inverted"`
	Success    bool      `json:"success"`
	Timestamp  time.Time `json:"timestamp"`
}

// SyncStateEvent represents an ASM correlator state transition.
type SyncStateEvent struct {
	Locked    bool      `json:"locked"`
	Timestamp time.Time `json:"timestamp"`
}

// SweepPointEvent represents one completed Eb/N0 point of a sweep.
type SweepPointEvent struct {
	EbN0DB         float64   `json:"ebn0_db"`
	BER            float64   `json:"ber"`
	FramesReceived int       `json:"frames_received"`
	FramesDecoded  int       `json:"frames_decoded"`
	Timestamp      time.Time `json:"timestamp"`
}

// SweepCompleteEvent represents the completion of an entire sweep run.
type SweepCompleteEvent struct {
	Points    int       `json:"points"`
	Timestamp time.Time `json:"timestamp"`
}

// New creates a new MQTT publisher
func New(config Config, log *logger.Logger) *Publisher {
	if log == nil {
		log = logger.New(logger.Config{Level: "info", Format: "text"})
	}

	return &Publisher{
		config: config,
		log:    log.WithComponent("mqtt"),
	}
}

// Start starts the MQTT publisher
func (p *Publisher) Start(ctx context.Context) error {
	if !p.config.Enabled {
		p.log.Info("MQTT publisher disabled")
		return nil
	}

	p.log.Info("Starting MQTT publisher",
		logger.String("broker", p.config.Broker),
		logger.String("client_id", p.config.ClientID))

	// TODO: Implement actual MQTT connection when paho.mqtt library is added
	// For now, this is a no-op stub that allows the application to start
	p.log.Warn("MQTT connection not yet implemented - events will not be published")

	return nil
}

// Stop stops the MQTT publisher
func (p *Publisher) Stop() {
	if !p.config.Enabled {
		return
	}

	p.log.Info("Stopping MQTT publisher")
	// TODO: Disconnect MQTT client when implemented
}

// PublishFrameDecoded publishes a per-frame decode outcome.
func (p *Publisher) PublishFrameDecoded(event FrameDecodedEvent) error {
	if !p.config.Enabled {
		return nil
	}

	topic := p.formatTopic("frames/decoded")
	return p.publish(topic, event)
}

// PublishSyncState publishes an ASM correlator lock/loss transition.
func (p *Publisher) PublishSyncState(event SyncStateEvent) error {
	if !p.config.Enabled {
		return nil
	}

	topic := p.formatTopic("sync/state")
	return p.publish(topic, event)
}

// PublishSweepPoint publishes one completed Eb/N0 point.
func (p *Publisher) PublishSweepPoint(event SweepPointEvent) error {
	if !p.config.Enabled {
		return nil
	}

	topic := p.formatTopic("sweep/point")
	return p.publish(topic, event)
}

// PublishSweepComplete publishes the completion of a sweep run.
func (p *Publisher) PublishSweepComplete(event SweepCompleteEvent) error {
	if !p.config.Enabled {
		return nil
	}

	topic := p.formatTopic("sweep/complete")
	return p.publish(topic, event)
}

// publish publishes an event to a topic
func (p *Publisher) publish(topic string, event interface{}) error {
	payload, err := p.serializeEvent(event)
	if err != nil {
		p.log.Error("Failed to serialize event",
			logger.String("topic", topic),
			logger.Error(err))
		return err
	}

	// TODO: Implement actual MQTT publish when paho.mqtt library is added
	p.log.Debug("Would publish MQTT event",
		logger.String("topic", topic),
		logger.Int("payload_size", len(payload)))

	return nil
}

// serializeEvent serializes an event to JSON
func (p *Publisher) serializeEvent(event interface{}) ([]byte, error) {
	return json.Marshal(event)
}

// formatTopic formats a topic with the configured prefix
func (p *Publisher) formatTopic(suffix string) string {
	prefix := strings.TrimSuffix(p.config.TopicPrefix, "/")
	if prefix == "" {
		return suffix
	}
	return fmt.Sprintf("%s/%s", prefix, suffix)
}
