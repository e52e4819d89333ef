package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sweeney/tinyml-panel/internal/config"
	"github.com/sweeney/tinyml-panel/internal/logic"
	"github.com/sweeney/tinyml-panel/internal/mqtt"
	"github.com/sweeney/tinyml-panel/internal/status"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// --- runLoop tests ---

type fakeStatus struct{ connected bool }

func (f fakeStatus) IsConnected() bool { return f.connected }

func newTestTracker() *status.Tracker {
	return status.NewTracker(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "boot-1", status.Config{
		PeriodMs:    1000,
		HeartbeatMs: 60000,
		Broker:      "tcp://192.168.4.2:1883",
		SSID:        "ESP32S3_AP",
		IP:          "192.168.4.1",
	})
}

// runRunLoop drives runLoop with nBeats heartbeats then signal.
func runRunLoop(t *testing.T, pub mqtt.Publisher, tracker *status.Tracker, nBeats int, signal os.Signal) error {
	t.Helper()
	hb := make(chan time.Time)
	sig := make(chan os.Signal, 1)

	errCh := make(chan error, 1)
	go func() {
		errCh <- runLoop(pub, fakeStatus{connected: true}, tracker, hb, sig)
	}()

	for i := 0; i < nBeats; i++ {
		hb <- time.Time{}
	}
	sig <- signal

	return <-errCh
}

func decodeStatus(t *testing.T, payload []byte) status.StatusInner {
	t.Helper()
	var sj status.StatusJSON
	if err := json.Unmarshal(payload, &sj); err != nil {
		t.Fatalf("invalid status JSON: %v", err)
	}
	return sj.Status
}

func TestRunLoopShutdown(t *testing.T) {
	tests := []struct {
		signal os.Signal
		reason string
	}{
		{syscall.SIGINT, "SIGINT"},
		{syscall.SIGTERM, "SIGTERM"},
		{syscall.SIGHUP, "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			pub := mqtt.NewFakePublisher()
			if err := runRunLoop(t, pub, newTestTracker(), 0, tt.signal); err != nil {
				t.Fatalf("runLoop returned error: %v", err)
			}

			if len(pub.SystemEvents) != 1 {
				t.Fatalf("expected 1 system event, got %d", len(pub.SystemEvents))
			}
			se := pub.SystemEvents[0]
			if se.Event != "SHUTDOWN" || se.Reason != tt.reason {
				t.Errorf("got %s/%s, want SHUTDOWN/%s", se.Event, se.Reason, tt.reason)
			}
			if !se.Retained {
				t.Error("expected Retained=true for SHUTDOWN")
			}

			inner := decodeStatus(t, pub.SystemPayloads[0])
			if inner.Event != "SHUTDOWN" || inner.Reason != tt.reason {
				t.Errorf("payload event/reason: %s/%s", inner.Event, inner.Reason)
			}
		})
	}
}

func TestRunLoopHeartbeat(t *testing.T) {
	pub := mqtt.NewFakePublisher()
	tracker := newTestTracker()
	tracker.SetModelReady(true)
	tracker.Record(logic.Classification{Score: 0.7, State: logic.StateAnomaly})
	tracker.RecordFailure(errors.New("i2c nack"))

	if err := runRunLoop(t, pub, tracker, 2, syscall.SIGTERM); err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	var heartbeats int
	for i, se := range pub.SystemEvents {
		if se.Event != "HEARTBEAT" {
			continue
		}
		heartbeats++
		if se.Retained {
			t.Error("HEARTBEAT should not be retained")
		}

		inner := decodeStatus(t, pub.SystemPayloads[i])
		if inner.Indicator != "ANOMALY" || inner.Score == nil || *inner.Score != 0.7 {
			t.Errorf("heartbeat indicator: %s %v", inner.Indicator, inner.Score)
		}
		if inner.Counts.Anomaly != 1 || inner.Counts.Failures != 1 {
			t.Errorf("heartbeat counts: %+v", inner.Counts)
		}
		if !inner.ModelReady || !inner.MQTT.Connected {
			t.Errorf("heartbeat flags: ready=%v mqtt=%v", inner.ModelReady, inner.MQTT.Connected)
		}
		if inner.Network.SSID != "ESP32S3_AP" || inner.BootID != "boot-1" {
			t.Errorf("heartbeat identity: %+v %s", inner.Network, inner.BootID)
		}
	}
	if heartbeats != 2 {
		t.Errorf("expected 2 HEARTBEAT events, got %d", heartbeats)
	}
	if last := pub.SystemEvents[len(pub.SystemEvents)-1]; last.Event != "SHUTDOWN" {
		t.Errorf("last event: got %s, want SHUTDOWN", last.Event)
	}
}

func TestRunLoopPublishError(t *testing.T) {
	pub := mqtt.NewFakePublisher()
	pub.PublishSystemError = errors.New("broker unavailable")

	if err := runRunLoop(t, pub, newTestTracker(), 3, syscall.SIGTERM); err != nil {
		t.Fatalf("publish errors must not stop the loop: %v", err)
	}
	if len(pub.SystemEvents) != 0 {
		t.Errorf("expected no recorded events, got %d", len(pub.SystemEvents))
	}
}

func TestRunLoopWithoutPublisher(t *testing.T) {
	if err := runRunLoop(t, nil, newTestTracker(), 2, syscall.SIGINT); err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}
}

// --- command tests ---

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "tinyml-panel dev") || !strings.Contains(out, "schema v3") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestClassifyCommand(t *testing.T) {
	tests := []struct {
		temp, humi string
		want       string
	}{
		{"25", "50", "NORMAL"},
		{"37.5", "50", "WARNING"},
		{"40", "50", "ANOMALY"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			out, err := execute(t, "classify", "--temp", tt.temp, "--humi", tt.humi)
			if err != nil {
				t.Fatalf("classify: %v", err)
			}
			if !strings.Contains(out, "state     "+tt.want) {
				t.Errorf("expected %s in output:\n%s", tt.want, out)
			}
		})
	}
}

func TestClassifyCommandArenaTooSmall(t *testing.T) {
	out, err := execute(t, "classify", "--temp", "25", "--humi", "50", "--arena", "8")
	if err == nil {
		t.Fatal("expected error with a tiny arena")
	}
	if !strings.Contains(out, "not ready") {
		t.Errorf("expected not-ready error in output:\n%s", out)
	}
}

func TestClassifyCommandRequiresFlags(t *testing.T) {
	if _, err := execute(t, "classify", "--temp", "25"); err == nil {
		t.Error("expected error when --humi is missing")
	}
}

func TestHostapdCommand(t *testing.T) {
	out, err := execute(t, "hostapd")
	if err != nil {
		t.Fatalf("hostapd: %v", err)
	}
	for _, want := range []string{"ssid=ESP32S3_AP\n", "wpa=2\n", "wpa_psk="} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHostapdCommandRejectsBadAP(t *testing.T) {
	t.Setenv("TINYML_AP_PASSPHRASE", "short")
	if _, err := execute(t, "hostapd"); err == nil {
		t.Error("expected validation error")
	}
}

func TestLoadConfigFlagsOverride(t *testing.T) {
	cmd := &cobra.Command{}
	sf := &serveFlags{}
	addServeFlags(cmd, sf)
	if err := cmd.Flags().Parse([]string{"--period", "250ms", "--hardware", "sim", "--heartbeat", "0"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(cmd, &rootOptions{}, sf)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.PeriodMs != 250 || cfg.Hardware != config.HardwareSim || cfg.MQTT.HeartbeatMs != 0 {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.HTTPAddr != ":80" {
		t.Errorf("unset flag should keep config value, got %q", cfg.HTTPAddr)
	}
}

func TestLoadConfigUnsetFlagsKeepEnv(t *testing.T) {
	t.Setenv("TINYML_PERIOD_MS", "2000")
	cmd := &cobra.Command{}
	sf := &serveFlags{}
	addServeFlags(cmd, sf)
	cmd.Flags().Parse(nil)

	cfg, err := loadConfig(cmd, &rootOptions{}, sf)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.PeriodMs != 2000 {
		t.Errorf("period: got %d, want 2000 from env", cfg.PeriodMs)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	cmd := &cobra.Command{}
	sf := &serveFlags{}
	addServeFlags(cmd, sf)
	cmd.Flags().Parse([]string{"--hardware", "magic"})

	if _, err := loadConfig(cmd, &rootOptions{}, sf); err == nil {
		t.Error("expected validation error")
	}
}

func TestSimHardware(t *testing.T) {
	hw, err := openHardware(config.Config{Hardware: config.HardwareSim})
	if err != nil {
		t.Fatalf("openHardware: %v", err)
	}
	defer hw.Close()

	if _, err := hw.sensor.Read(); err != nil {
		t.Errorf("sim sensor: %v", err)
	}
	if err := hw.led1.Fill(logic.Red); err != nil {
		t.Errorf("sim strip: %v", err)
	}
	if err := hw.relay.Set(true); err != nil {
		t.Errorf("sim relay: %v", err)
	}
}
