package gpio

import (
	"log"
	"sync"
)

// FakeRelay is a test double that records relay writes.
type FakeRelay struct {
	mu sync.Mutex

	// States contains every value written, in order.
	States []bool

	// On is the last value written.
	On bool

	// SetError, if set, will be returned by Set.
	SetError error

	// Log, if true, logs every write (simulation mode).
	Log bool

	Closed bool
}

// NewFakeRelay creates a released FakeRelay.
func NewFakeRelay() *FakeRelay {
	return &FakeRelay{}
}

// Set records the value.
func (f *FakeRelay) Set(on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SetError != nil {
		return f.SetError
	}
	f.States = append(f.States, on)
	f.On = on
	if f.Log {
		log.Printf("relay: set %v", on)
	}
	return nil
}

// IsOn reports the last value written.
func (f *FakeRelay) IsOn() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.On
}

// Close marks the relay as closed.
func (f *FakeRelay) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
	return nil
}
