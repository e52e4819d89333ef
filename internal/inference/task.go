// Package inference runs the fixed-period anomaly classification task:
// read the sensor, normalize, invoke the model, classify and indicate.
package inference

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sweeney/tinyml-panel/internal/actuator"
	"github.com/sweeney/tinyml-panel/internal/logic"
	"github.com/sweeney/tinyml-panel/internal/model"
	"github.com/sweeney/tinyml-panel/internal/mqtt"
	"github.com/sweeney/tinyml-panel/internal/sensor"
	"github.com/sweeney/tinyml-panel/internal/status"
	"github.com/sweeney/tinyml-panel/internal/store"
)

// DefaultPeriod is the inference period.
const DefaultPeriod = time.Second

// Task is the periodic inference task. Sensor, Model and Indicator are
// required; Tracker, Publisher and Recorder are optional sinks.
type Task struct {
	Sensor    sensor.Source
	Model     model.Runner
	Indicator actuator.IndicatorSink

	Tracker   *status.Tracker
	Publisher mqtt.Publisher
	Recorder  store.Recorder

	Period time.Duration

	// Now and SleepUntil default to the wall clock.
	Now        func() time.Time
	SleepUntil func(ctx context.Context, wake time.Time) error
}

// Run executes a cycle at every absolute wake time start, start+Period,
// start+2*Period and so on, until ctx is done. A cycle that overruns makes
// the next one start immediately; later wake times are unchanged.
func (t *Task) Run(ctx context.Context) error {
	period := t.Period
	if period <= 0 {
		period = DefaultPeriod
	}
	sched := logic.NewSchedule(t.now(), period)
	log.Printf("tinyml: inference task started, period=%v", period)

	wake := sched.Last()
	for {
		if err := t.sleepUntil(ctx, wake); err != nil {
			log.Printf("tinyml: inference task stopped")
			return nil
		}
		t.Step(ctx, t.now())
		wake = sched.Advance()
	}
}

// Step runs one cycle stamped at now. On failure the indicator is left as
// it was and the error is returned after being logged and counted.
func (t *Task) Step(ctx context.Context, now time.Time) (logic.Classification, error) {
	r, err := t.Sensor.Read()
	if err != nil {
		return logic.Classification{}, t.fail(fmt.Errorf("read sensor: %w", err))
	}
	log.Printf("tinyml: temp=%.2fC humi=%.2f%%", r.Temperature, r.Humidity)

	score, err := t.Model.Invoke(logic.Normalize(r))
	if err != nil {
		return logic.Classification{}, t.fail(fmt.Errorf("invoke: %w", err))
	}
	log.Printf("tinyml: anomaly score=%.3f", score)

	state := logic.Classify(score)
	if err := t.Indicator.Indicate(state); err != nil {
		log.Printf("tinyml: indicator error: %v", err)
	}
	log.Printf("tinyml: %s", logic.Label(state))

	c := logic.Classification{
		Timestamp: now,
		Reading:   r,
		Score:     score,
		State:     state,
	}

	if t.Tracker != nil {
		t.Tracker.Record(c)
	}
	if t.Publisher != nil {
		if err := t.Publisher.Publish(c); err != nil {
			log.Printf("tinyml: publish error: %v", err)
		}
	}
	if t.Recorder != nil {
		if err := t.Recorder.Record(ctx, c); err != nil {
			log.Printf("tinyml: record error: %v", err)
		}
	}
	return c, nil
}

func (t *Task) fail(err error) error {
	log.Printf("tinyml: cycle skipped: %v", err)
	if t.Tracker != nil {
		t.Tracker.RecordFailure(err)
	}
	return err
}

func (t *Task) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

func (t *Task) sleepUntil(ctx context.Context, wake time.Time) error {
	if t.SleepUntil != nil {
		return t.SleepUntil(ctx, wake)
	}

	d := logic.Delay(t.now(), wake)
	if d == 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
