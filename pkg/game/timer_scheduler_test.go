package game

import (
	"testing"
	"time"
)

func newTestScheduler() (*TimerScheduler, *MockTimeProvider) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	return NewTimerScheduler(clock), clock
}

func TestAfterFiresOnce(t *testing.T) {
	s, clock := newTestScheduler()
	calls := 0
	s.After(3*time.Second, func() { calls++ })

	clock.Advance(2999 * time.Millisecond)
	s.RunDue()
	if calls != 0 {
		t.Fatalf("Callback fired early (%d)", calls)
	}

	clock.Advance(time.Millisecond)
	s.RunDue()
	clock.Advance(10 * time.Second)
	s.RunDue()
	if calls != 1 {
		t.Errorf("Expected exactly one call, got %d", calls)
	}
	if s.Pending() != 0 {
		t.Errorf("One-shot timer should be removed, %d pending", s.Pending())
	}
}

func TestEveryCatchesUp(t *testing.T) {
	s, clock := newTestScheduler()
	calls := 0
	s.Every(time.Second, func() { calls++ })

	clock.Advance(3500 * time.Millisecond)
	if fired := s.RunDue(); fired != 3 {
		t.Errorf("Expected 3 catch-up calls, got %d", fired)
	}

	clock.Advance(500 * time.Millisecond)
	s.RunDue()
	if calls != 4 {
		t.Errorf("Expected 4 calls at t=4s, got %d", calls)
	}
}

func TestResetDropsPendingCallbacks(t *testing.T) {
	s, clock := newTestScheduler()
	stale := 0
	s.After(time.Second, func() { stale++ })
	s.Every(time.Second, func() { stale++ })

	before := s.Generation()
	s.Reset()
	if s.Generation() != before+1 {
		t.Errorf("Reset should bump generation")
	}

	clock.Advance(5 * time.Second)
	s.RunDue()
	if stale != 0 {
		t.Errorf("Callbacks registered before reset must not run, got %d", stale)
	}
}

func TestResetInsideCallbackStopsStaleTimers(t *testing.T) {
	s, clock := newTestScheduler()
	second := 0
	s.After(time.Second, func() { s.Reset() })
	s.After(time.Second, func() { second++ })

	clock.Advance(time.Second)
	s.RunDue()
	if second != 0 {
		t.Error("Timer due in the same pass as a reset must be dropped")
	}
}

func TestCancel(t *testing.T) {
	s, clock := newTestScheduler()
	calls := 0
	id := s.After(time.Second, func() { calls++ })
	s.Cancel(id)

	clock.Advance(2 * time.Second)
	s.RunDue()
	if calls != 0 {
		t.Error("Cancelled timer fired")
	}
}
