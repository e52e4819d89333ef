package logic

import "time"

// Schedule produces absolute wake times for a fixed-period task.
// Each wake time is the previous wake time plus the period, never the
// completion time plus the period, so jitter does not accumulate.
// If a cycle overruns, the next wake time may already be in the past;
// the schedule is not re-anchored.
type Schedule struct {
	period time.Duration
	last   time.Time
}

// NewSchedule starts a schedule anchored at start.
func NewSchedule(start time.Time, period time.Duration) *Schedule {
	return &Schedule{period: period, last: start}
}

// Advance moves the schedule forward one period and returns the new wake time.
func (s *Schedule) Advance() time.Time {
	s.last = s.last.Add(s.period)
	return s.last
}

// Last returns the most recent wake time (the anchor before the first Advance).
func (s *Schedule) Last() time.Time {
	return s.last
}

// Period returns the schedule period.
func (s *Schedule) Period() time.Duration {
	return s.period
}

// Delay returns how long to sleep from now until wake. Zero if wake has passed.
func Delay(now, wake time.Time) time.Duration {
	d := wake.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
