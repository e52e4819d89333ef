//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealRelay drives a relay from an actual GPIO output line.
type RealRelay struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
	pin  int
}

// NewRealRelay requests pin on the named chip as an output, initially low
// so the relay starts released.
func NewRealRelay(chipName string, pin int) (*RealRelay, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request relay pin %d: %w", pin, err)
	}

	return &RealRelay{chip: chip, line: line, pin: pin}, nil
}

// Set drives the line high for on, low for off.
func (r *RealRelay) Set(on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := r.line.SetValue(v); err != nil {
		return fmt.Errorf("set relay pin %d: %w", r.pin, err)
	}
	return nil
}

// Close releases the relay and returns the pin to input with pull-down
// (the Pi boot default) so the coil stays released across reboots.
func (r *RealRelay) Close() error {
	var errs []error

	if r.line != nil {
		if err := r.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("release relay: %w", err))
		}
		if err := r.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure relay pin: %w", err))
		}
		if err := r.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close relay pin: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
