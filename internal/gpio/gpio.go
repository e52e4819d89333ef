// Package gpio provides the relay output with hardware abstraction.
// The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Relay drives a single relay coil.
type Relay interface {
	// Set energizes the relay when on is true.
	Set(on bool) error

	// Close releases GPIO resources.
	Close() error
}

// Defaults (BCM numbering)
const (
	DefaultChip     = "gpiochip0"
	DefaultPinRelay = 17
)
