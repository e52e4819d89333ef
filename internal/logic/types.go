// Package logic contains the pure decision logic of the panel: input
// normalization, score classification, indicator colors and the
// absolute-time schedule of the inference task.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import "time"

// State is the indicator band derived from an anomaly score.
type State string

const (
	StateNormal  State = "NORMAL"
	StateWarning State = "WARNING"
	StateAnomaly State = "ANOMALY"
)

// Band thresholds. A score equal to a threshold belongs to the upper band.
const (
	WarningThreshold = 0.35
	AnomalyThreshold = 0.6
)

// Normalization scales applied before inference.
const (
	TemperatureScale = 50.0  // °C
	HumidityScale    = 100.0 // %RH
)

// Reading is a single temperature/humidity sample.
type Reading struct {
	Temperature float64 // °C
	Humidity    float64 // %RH
}

// Features is the model input vector: normalized temperature and humidity.
type Features [2]float64

// RGB is a strip color.
type RGB struct {
	R, G, B uint8
}

// Fixed colors used by the panel and the indicator.
var (
	Off    = RGB{0, 0, 0}
	White  = RGB{255, 255, 255}
	Green  = RGB{0, 255, 0}
	Yellow = RGB{255, 255, 0}
	Red    = RGB{255, 0, 0}
)

// Classification is the result of one successful inference cycle.
type Classification struct {
	Timestamp time.Time
	Reading   Reading
	Score     float64
	State     State
}

// Counts tracks inference outcomes since startup.
type Counts struct {
	Normal   int
	Warning  int
	Anomaly  int
	Failures int
}
