// Package sensor provides temperature/humidity sources with hardware abstraction.
// The real implementation talks to a Sensirion SHT3x over I2C using periph.io.
// The fake implementation allows testing without hardware.
package sensor

import "github.com/sweeney/tinyml-panel/internal/logic"

// Source reads temperature and humidity.
type Source interface {
	// Read returns the latest reading. Implementations may return a cached
	// value when a fresh measurement fails.
	Read() (logic.Reading, error)

	// Close releases sensor resources.
	Close() error
}

// DefaultAddr is the SHT3x I2C address with ADDR pulled low.
const DefaultAddr = 0x44
