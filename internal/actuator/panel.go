// Package actuator owns the panel's output devices. Every write goes
// through a lock held by the owning handle, so handlers and tasks share
// devices only through these types, never through globals.
package actuator

import (
	"fmt"
	"sync"

	"github.com/sweeney/tinyml-panel/internal/gpio"
	"github.com/sweeney/tinyml-panel/internal/led"
	"github.com/sweeney/tinyml-panel/internal/logic"
)

// Panel owns the two web-controlled strips and the relay.
type Panel struct {
	mu    sync.Mutex
	led1  led.Strip
	led2  led.Strip
	relay gpio.Relay
}

// NewPanel takes ownership of the given devices.
func NewPanel(led1, led2 led.Strip, relay gpio.Relay) *Panel {
	return &Panel{led1: led1, led2: led2, relay: relay}
}

// Begin blanks both strips and releases the relay.
func (p *Panel) Begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.relay.Set(false); err != nil {
		return fmt.Errorf("release relay: %w", err)
	}
	if err := p.led1.Fill(logic.Off); err != nil {
		return fmt.Errorf("clear led1: %w", err)
	}
	if err := p.led2.Fill(logic.Off); err != nil {
		return fmt.Errorf("clear led2: %w", err)
	}
	return nil
}

// SetLED1 fills strip 1 with c.
func (p *Panel) SetLED1(c logic.RGB) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.led1.Fill(c)
}

// SetLED2 fills strip 2 with c.
func (p *Panel) SetLED2(c logic.RGB) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.led2.Fill(c)
}

// SetBoth fills both strips with c. Both are attempted even if the first fails.
func (p *Panel) SetBoth(c logic.RGB) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err1 := p.led1.Fill(c)
	err2 := p.led2.Fill(c)
	if err1 != nil {
		return fmt.Errorf("led1: %w", err1)
	}
	if err2 != nil {
		return fmt.Errorf("led2: %w", err2)
	}
	return nil
}

// SetRelay energizes or releases the relay.
func (p *Panel) SetRelay(on bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.relay.Set(on)
}

// Close releases every device.
func (p *Panel) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for _, c := range []interface{ Close() error }{p.led1, p.led2, p.relay} {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
