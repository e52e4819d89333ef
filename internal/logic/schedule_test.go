package logic

import (
	"testing"
	"time"
)

func TestScheduleAdvance(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewSchedule(start, time.Second)

	if !s.Last().Equal(start) {
		t.Errorf("Last before Advance: got %v, want %v", s.Last(), start)
	}

	for i := 1; i <= 5; i++ {
		got := s.Advance()
		want := start.Add(time.Duration(i) * time.Second)
		if !got.Equal(want) {
			t.Errorf("Advance %d: got %v, want %v", i, got, want)
		}
	}
}

func TestScheduleDoesNotDriftWithJitter(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewSchedule(start, time.Second)

	// Each cycle finishes at a different point inside its period; the wake
	// times must stay on the grid regardless.
	jitter := []time.Duration{30 * time.Millisecond, 400 * time.Millisecond, 5 * time.Millisecond, 990 * time.Millisecond}
	for i, j := range jitter {
		completed := s.Last().Add(j)
		wake := s.Advance()
		if wake.Sub(start) != time.Duration(i+1)*time.Second {
			t.Errorf("cycle %d: wake offset %v, want %v", i, wake.Sub(start), time.Duration(i+1)*time.Second)
		}
		if d := Delay(completed, wake); d != time.Second-j {
			t.Errorf("cycle %d: delay %v, want %v", i, d, time.Second-j)
		}
	}
}

func TestScheduleOverrunNotReanchored(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewSchedule(start, time.Second)

	// Cycle overran by 1.5 periods.
	completed := start.Add(2500 * time.Millisecond)
	wake := s.Advance()
	if d := Delay(completed, wake); d != 0 {
		t.Errorf("overrun delay: got %v, want 0", d)
	}

	// Next wake is still on the original grid.
	if next := s.Advance(); !next.Equal(start.Add(2 * time.Second)) {
		t.Errorf("next wake: got %v, want %v", next, start.Add(2*time.Second))
	}
}

func TestSchedulePeriod(t *testing.T) {
	s := NewSchedule(time.Time{}, 250*time.Millisecond)
	if s.Period() != 250*time.Millisecond {
		t.Errorf("Period: got %v, want 250ms", s.Period())
	}
}
