package clock

import (
	"testing"
	"time"
)

func TestSteppingClock_NowAdvancesByStep(t *testing.T) {
	start := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	mock := NewSteppingClock(start, time.Second)

	if got := mock.Now(); !got.Equal(start) {
		t.Errorf("first Now() = %v, expected %v", got, start)
	}
	if got := mock.Now(); !got.Equal(start.Add(time.Second)) {
		t.Errorf("second Now() = %v, expected one step later", got)
	}
}

func TestSteppingClock_MeasuresStep(t *testing.T) {
	start := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	mock := NewSteppingClock(start, 250*time.Millisecond)

	t0 := mock.Now()
	if d := mock.Since(t0); d != 250*time.Millisecond {
		t.Errorf("Since() = %v, expected 250ms", d)
	}
	if d := mock.Since(t0); d != 250*time.Millisecond {
		t.Errorf("Since() should not advance the clock, got %v", d)
	}
}

func TestRealClock_Since(t *testing.T) {
	var c Clock = RealClock{}
	if d := c.Since(c.Now().Add(-time.Second)); d < time.Second {
		t.Errorf("Since() = %v, expected at least 1s", d)
	}
}

func TestDefault_IsRealClock(t *testing.T) {
	if _, ok := Default.(RealClock); !ok {
		t.Errorf("Default = %T, expected RealClock", Default)
	}
}
