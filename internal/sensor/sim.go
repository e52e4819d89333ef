package sensor

import (
	"sync"

	"github.com/sweeney/tinyml-panel/internal/logic"
)

// SimProfile walks through the three indicator bands.
var SimProfile = []logic.Reading{
	{Temperature: 24.0, Humidity: 45.0},
	{Temperature: 26.5, Humidity: 50.0},
	{Temperature: 37.5, Humidity: 50.0},
	{Temperature: 41.0, Humidity: 60.0},
	{Temperature: 28.0, Humidity: 96.0},
	{Temperature: 25.0, Humidity: 48.0},
}

// SimSource replays a fixed profile in a loop. It stands in for the SHT3x
// when the daemon runs without hardware.
type SimSource struct {
	mu      sync.Mutex
	profile []logic.Reading
	next    int
}

// NewSimSource creates a SimSource over profile, or SimProfile if empty.
func NewSimSource(profile []logic.Reading) *SimSource {
	if len(profile) == 0 {
		profile = SimProfile
	}
	return &SimSource{profile: profile}
}

// Read returns the next reading of the profile.
func (s *SimSource) Read() (logic.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.profile[s.next]
	s.next = (s.next + 1) % len(s.profile)
	return r, nil
}

// Close is a no-op.
func (s *SimSource) Close() error {
	return nil
}
