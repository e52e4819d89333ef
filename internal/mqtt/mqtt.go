// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/tinyml-panel/internal/logic"
)

// Topic is the MQTT topic for indicator classifications.
const Topic = "tinyml/panel/indicator"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "tinyml/panel/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a classification to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(c logic.Classification) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT", "OFFLINE"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload is the MQTT message payload for a classification.
type Payload struct {
	Indicator IndicatorPayload `json:"indicator"`
}

// IndicatorPayload contains the classification details.
type IndicatorPayload struct {
	Timestamp   string  `json:"timestamp"`
	State       string  `json:"state"`
	Score       float64 `json:"score"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
}

// FormatPayload creates the JSON payload for a classification.
func FormatPayload(c logic.Classification) ([]byte, error) {
	return json.Marshal(Payload{
		Indicator: IndicatorPayload{
			Timestamp:   c.Timestamp.UTC().Format(time.RFC3339),
			State:       string(c.State),
			Score:       c.Score,
			Temperature: c.Reading.Temperature,
			Humidity:    c.Reading.Humidity,
		},
	})
}

// SystemPayload is the payload for simple system events (LWT) that don't
// carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	return json.Marshal(SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	})
}
