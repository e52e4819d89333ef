// Package status provides a thread-safe status tracker for the panel daemon.
// It is written by the inference task and read by the supervisor loop when
// building MQTT system events. Actuator state is deliberately absent.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/tinyml-panel/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	PeriodMs    int64
	HeartbeatMs int64
	Broker      string
	HTTPAddr    string
	SSID        string
	IP          string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type and safe to use after the lock is released.
type Snapshot struct {
	BootID        string
	ModelReady    bool
	HasResult     bool
	Last          logic.Classification
	LastError     string
	Counts        logic.Counts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time, boot ID and config.
func NewTracker(startTime time.Time, bootID string, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			BootID:    bootID,
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// SetModelReady records whether the interpreter finished setup.
func (t *Tracker) SetModelReady(ready bool) {
	t.mu.Lock()
	t.snap.ModelReady = ready
	t.mu.Unlock()
}

// Record stores a successful classification.
func (t *Tracker) Record(c logic.Classification) {
	t.mu.Lock()
	t.snap.Last = c
	t.snap.HasResult = true
	t.snap.LastError = ""
	t.snap.Counts.Add(c.State)
	t.mu.Unlock()
}

// RecordFailure counts a skipped cycle. The last classification is kept.
func (t *Tracker) RecordFailure(err error) {
	t.mu.Lock()
	t.snap.Counts.Failures++
	if err != nil {
		t.snap.LastError = err.Error()
	}
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
