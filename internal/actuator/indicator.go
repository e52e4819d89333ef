package actuator

import (
	"sync"

	"github.com/sweeney/tinyml-panel/internal/led"
	"github.com/sweeney/tinyml-panel/internal/logic"
)

// IndicatorSink shows the latest classification state.
type IndicatorSink interface {
	Indicate(s logic.State) error
}

// Indicator shows the state on a strip it owns exclusively.
type Indicator struct {
	mu    sync.Mutex
	strip led.Strip
}

// NewIndicator takes ownership of strip.
func NewIndicator(strip led.Strip) *Indicator {
	return &Indicator{strip: strip}
}

// Indicate fills the strip with the band color for s.
func (i *Indicator) Indicate(s logic.State) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.strip.Fill(logic.ColorFor(s))
}

// Close releases the strip.
func (i *Indicator) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.strip.Close()
}
