package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/sweeney/tinyml-panel/internal/actuator"
	"github.com/sweeney/tinyml-panel/internal/config"
	"github.com/sweeney/tinyml-panel/internal/inference"
	"github.com/sweeney/tinyml-panel/internal/model"
	"github.com/sweeney/tinyml-panel/internal/mqtt"
	"github.com/sweeney/tinyml-panel/internal/status"
	"github.com/sweeney/tinyml-panel/internal/store"
	"github.com/sweeney/tinyml-panel/internal/web"
)

func serve(cfg config.Config) error {
	bootID := uuid.NewString()

	for _, line := range cfg.AP.Banner() {
		log.Print(line)
	}
	if cfg.AP.UsesDefaultCredentials() {
		log.Printf("warning: access point uses the factory passphrase; set [ap] passphrase")
	}

	hw, err := openHardware(cfg)
	if err != nil {
		return fmt.Errorf("init hardware: %w", err)
	}
	panel := actuator.NewPanel(hw.led1, hw.led2, hw.relay)
	indicator := actuator.NewIndicator(hw.indicator)
	defer func() {
		indicator.Close()
		panel.Close()
		hw.sensor.Close()
	}()
	if err := panel.Begin(); err != nil {
		return fmt.Errorf("init actuators: %w", err)
	}

	// A failed setup is not fatal: the task keeps its schedule and every
	// cycle reports ErrNotReady.
	interp, err := model.Setup(model.Embedded, cfg.ArenaBytes)
	if err != nil {
		log.Printf("tinyml: model setup failed, inference disabled: %v", err)
	}

	tracker := status.NewTracker(time.Now(), bootID, status.Config{
		PeriodMs:    cfg.PeriodMs,
		HeartbeatMs: cfg.MQTT.HeartbeatMs,
		Broker:      cfg.MQTT.Broker,
		HTTPAddr:    cfg.HTTPAddr,
		SSID:        cfg.AP.SSID,
		IP:          cfg.AP.IP,
	})
	tracker.SetModelReady(interp.Ready())

	var publisher mqtt.Publisher
	var mqttStatus mqtt.ConnectionStatus
	if cfg.MQTT.Broker != "" {
		p := mqtt.NewRealPublisher(cfg.MQTT.Broker, "tinyml-panel-"+bootID[:8])
		defer p.Close()
		publisher, mqttStatus = p, p
	}

	var recorder store.Recorder
	if cfg.ClickHouse.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		ch, err := store.NewClickHouse(ctx, store.Options{
			Addr:     cfg.ClickHouse.Addr,
			Database: cfg.ClickHouse.Database,
			Username: cfg.ClickHouse.Username,
			Password: cfg.ClickHouse.Password,
		}, bootID)
		cancel()
		if err != nil {
			log.Printf("store: disabled: %v", err)
		} else {
			defer ch.Close()
			recorder = ch
		}
	}

	if publisher != nil {
		if err := publishStatus(publisher, mqttStatus, tracker, "STARTUP", "", true); err != nil {
			log.Printf("failed to publish startup event: %v", err)
		} else {
			log.Printf("published startup event")
		}
	}

	srv := web.New(cfg.HTTPAddr, panel, web.Info{SSID: cfg.AP.SSID, IP: cfg.AP.IP})
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()
	log.Printf("http control panel listening on %s", cfg.HTTPAddr)

	task := &inference.Task{
		Sensor:    hw.sensor,
		Model:     interp,
		Indicator: indicator,
		Tracker:   tracker,
		Publisher: publisher,
		Recorder:  recorder,
		Period:    cfg.Period(),
	}
	ctx, cancel := context.WithCancel(context.Background())
	taskDone := make(chan struct{})
	go func() {
		defer close(taskDone)
		task.Run(ctx)
	}()

	log.Printf("started: boot=%s hardware=%s period=%v broker=%q heartbeat=%v",
		bootID, cfg.Hardware, cfg.Period(), cfg.MQTT.Broker, cfg.Heartbeat())

	var heartbeat <-chan time.Time
	if cfg.Heartbeat() > 0 && publisher != nil {
		ticker := time.NewTicker(cfg.Heartbeat())
		defer ticker.Stop()
		heartbeat = ticker.C
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	err = runLoop(publisher, mqttStatus, tracker, heartbeat, sigCh)

	cancel()
	<-taskDone
	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	srv.Shutdown(shutdownCtx)
	return err
}

// runLoop publishes heartbeats until a signal arrives, then publishes the
// shutdown event. Without a publisher the final status is logged instead.
func runLoop(publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, heartbeat <-chan time.Time, sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			if publisher == nil {
				log.Printf("final status:\n%s", status.FormatJSON(tracker.Snapshot()))
				return nil
			}
			reason := signalName(s)
			if err := publishStatus(publisher, mqttStatus, tracker, "SHUTDOWN", reason, true); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-heartbeat:
			if publisher == nil {
				continue
			}
			snap := tracker.Snapshot()
			log.Printf("heartbeat: uptime=%v normal=%d warning=%d anomaly=%d failures=%d",
				snap.Uptime().Truncate(time.Second), snap.Counts.Normal, snap.Counts.Warning,
				snap.Counts.Anomaly, snap.Counts.Failures)
			if err := publishStatus(publisher, mqttStatus, tracker, "HEARTBEAT", "", false); err != nil {
				log.Printf("heartbeat publish error: %v", err)
			}
		}
	}
}

// publishStatus sends a system event carrying a full status snapshot.
func publishStatus(publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, event, reason string, retained bool) error {
	if mqttStatus != nil {
		tracker.SetMQTTConnected(mqttStatus.IsConnected())
	}
	snap := tracker.Snapshot()
	return publisher.PublishSystem(mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      event,
		Reason:     reason,
		Retained:   retained,
		RawPayload: status.FormatStatusEvent(snap, event, reason),
	})
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	default:
		return "UNKNOWN"
	}
}
