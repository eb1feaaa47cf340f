package quiz

import (
	"testing"
	"time"
)

func TestTimer_Remaining(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	var tm Timer
	tm.Start(start)

	if got := tm.Remaining(1, start); got != 60 {
		t.Errorf("remaining at start = %d, want 60", got)
	}
	if got := tm.Remaining(1, start.Add(25*time.Second)); got != 35 {
		t.Errorf("remaining after 25s = %d, want 35", got)
	}
	if got := tm.Remaining(1, start.Add(60*time.Second)); got != 0 {
		t.Errorf("remaining after 60s = %d, want 0", got)
	}
	if got := tm.Remaining(1, start.Add(90*time.Second)); got >= 0 {
		t.Errorf("remaining after 90s = %d, want negative", got)
	}
}

func TestTimer_NoLimit(t *testing.T) {
	var tm Timer
	tm.Start(time.Now())
	if got := tm.Remaining(0, time.Now()); got != 0 {
		t.Errorf("remaining with no limit = %d, want 0", got)
	}
}

func TestTimer_Freeze(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	var tm Timer
	tm.Start(start)
	tm.Freeze(start.Add(95 * time.Second))

	if tm.Running() {
		t.Error("timer still running after freeze")
	}
	if tm.ElapsedSeconds != 95 {
		t.Errorf("elapsed = %d, want 95", tm.ElapsedSeconds)
	}

	// Freezing an unstarted timer is a no-op.
	var idle Timer
	idle.Freeze(start)
	if idle.ElapsedSeconds != 0 {
		t.Errorf("elapsed on idle timer = %d, want 0", idle.ElapsedSeconds)
	}
}
