package led

import (
	"log"
	"sync"

	"github.com/sweeney/tinyml-panel/internal/logic"
)

// FakeStrip records fills for test assertions.
type FakeStrip struct {
	mu sync.Mutex

	// Fills contains every color written, in order.
	Fills []logic.RGB

	// FillError, if set, will be returned by Fill.
	FillError error

	Closed bool
}

// NewFakeStrip creates a FakeStrip.
func NewFakeStrip() *FakeStrip {
	return &FakeStrip{}
}

// Fill records c.
func (f *FakeStrip) Fill(c logic.RGB) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FillError != nil {
		return f.FillError
	}
	f.Fills = append(f.Fills, c)
	return nil
}

// Current returns the last color written and whether any was.
func (f *FakeStrip) Current() (logic.RGB, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Fills) == 0 {
		return logic.RGB{}, false
	}
	return f.Fills[len(f.Fills)-1], true
}

// Count returns the number of successful fills.
func (f *FakeStrip) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Fills)
}

// Close marks the strip as closed.
func (f *FakeStrip) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
	return nil
}

// LogStrip is a hardware-free strip that logs every fill.
// Used when the daemon runs in simulation mode.
type LogStrip struct {
	name string
}

// NewLogStrip creates a LogStrip labelled name.
func NewLogStrip(name string) *LogStrip {
	return &LogStrip{name: name}
}

// Fill logs c.
func (s *LogStrip) Fill(c logic.RGB) error {
	log.Printf("%s: fill %s", s.name, c.Hex())
	return nil
}

// Close is a no-op.
func (s *LogStrip) Close() error {
	return nil
}
