package store

import (
	"context"
	"sync"

	"github.com/sweeney/tinyml-panel/internal/logic"
)

// FakeRecorder keeps recorded classifications in memory.
type FakeRecorder struct {
	mu sync.Mutex

	Records []logic.Classification

	// RecordError, if set, will be returned by Record.
	RecordError error

	Closed bool
}

// Record appends c.
func (f *FakeRecorder) Record(_ context.Context, c logic.Classification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.RecordError != nil {
		return f.RecordError
	}
	f.Records = append(f.Records, c)
	return nil
}

// Count returns the number of recorded classifications.
func (f *FakeRecorder) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Records)
}

// Close marks the recorder as closed.
func (f *FakeRecorder) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
	return nil
}
