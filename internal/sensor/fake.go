package sensor

import (
	"errors"

	"github.com/sweeney/tinyml-panel/internal/logic"
)

// FakeSource is a test double that returns scripted readings.
type FakeSource struct {
	// Samples contains scripted readings. Each call to Read consumes the
	// next sample; the last one repeats once exhausted.
	Samples []logic.Reading

	index int

	// ReadError, if set, will be returned by Read.
	ReadError error

	// Reads counts calls to Read.
	Reads int

	Closed bool
}

// NewFakeSource creates a FakeSource with the given samples.
func NewFakeSource(samples ...logic.Reading) *FakeSource {
	return &FakeSource{Samples: samples}
}

// Read returns the next scripted reading.
func (f *FakeSource) Read() (logic.Reading, error) {
	f.Reads++
	if f.ReadError != nil {
		return logic.Reading{}, f.ReadError
	}
	if len(f.Samples) == 0 {
		return logic.Reading{}, errors.New("no samples configured")
	}

	r := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return r, nil
}

// Close marks the source as closed.
func (f *FakeSource) Close() error {
	f.Closed = true
	return nil
}
