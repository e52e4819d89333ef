package logic

import "fmt"

// Normalize scales a reading into model input space.
// Values are not clamped: readings outside the trained domain extrapolate.
func Normalize(r Reading) Features {
	return Features{r.Temperature / TemperatureScale, r.Humidity / HumidityScale}
}

// Classify maps an anomaly score to its band.
// NaN fails both comparisons and lands in StateAnomaly.
func Classify(score float64) State {
	if score < WarningThreshold {
		return StateNormal
	}
	if score < AnomalyThreshold {
		return StateWarning
	}
	return StateAnomaly
}

// ColorFor returns the indicator color for a state.
func ColorFor(s State) RGB {
	switch s {
	case StateNormal:
		return Green
	case StateWarning:
		return Yellow
	default:
		return Red
	}
}

// Label returns the log line for a state.
func Label(s State) string {
	switch s {
	case StateNormal:
		return "Normal condition"
	case StateWarning:
		return "Warning condition"
	default:
		return "Anomaly detected!"
	}
}

// ClampChannel clamps an integer color component to [0,255].
func ClampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Clamp builds an RGB from unchecked integer components.
func Clamp(r, g, b int) RGB {
	return RGB{ClampChannel(r), ClampChannel(g), ClampChannel(b)}
}

// Hex formats the color as #RRGGBB.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Add counts one successful classification.
func (c *Counts) Add(s State) {
	switch s {
	case StateNormal:
		c.Normal++
	case StateWarning:
		c.Warning++
	default:
		c.Anomaly++
	}
}
