package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string      `json:"event,omitempty"`
	Reason        string      `json:"reason,omitempty"`
	BootID        string      `json:"boot_id"`
	ModelReady    bool        `json:"model_ready"`
	Indicator     string      `json:"indicator"`
	Score         *float64    `json:"score,omitempty"`
	LastError     string      `json:"last_error,omitempty"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	StartTime     string      `json:"start_time"`
	Timestamp     string      `json:"timestamp"`
	MQTT          MQTTStatus  `json:"mqtt"`
	Counts        CountsJSON  `json:"counts"`
	Network       NetworkJSON `json:"network"`
	Config        ConfigJSON  `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of inference outcome counts.
type CountsJSON struct {
	Normal   int `json:"normal"`
	Warning  int `json:"warning"`
	Anomaly  int `json:"anomaly"`
	Failures int `json:"failures"`
}

// NetworkJSON describes the access point.
type NetworkJSON struct {
	SSID string `json:"ssid"`
	IP   string `json:"ip"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PeriodMs    int64  `json:"period_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	HTTPAddr    string `json:"http_addr"`
}

func buildInner(snap Snapshot) StatusInner {
	indicator := "UNKNOWN"
	var score *float64
	if snap.HasResult {
		indicator = string(snap.Last.State)
		s := snap.Last.Score
		score = &s
	}

	return StatusInner{
		BootID:        snap.BootID,
		ModelReady:    snap.ModelReady,
		Indicator:     indicator,
		Score:         score,
		LastError:     snap.LastError,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Normal:   snap.Counts.Normal,
			Warning:  snap.Counts.Warning,
			Anomaly:  snap.Counts.Anomaly,
			Failures: snap.Counts.Failures,
		},
		Network: NetworkJSON{SSID: snap.Config.SSID, IP: snap.Config.IP},
		Config: ConfigJSON{
			PeriodMs:    snap.Config.PeriodMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			HTTPAddr:    snap.Config.HTTPAddr,
		},
	}
}

// FormatJSON returns the indented JSON status (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
