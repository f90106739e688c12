package scheduler

import (
	"testing"
	"time"
)

func TestScheduler_RunDueOnlyFiresExpired(t *testing.T) {
	var s Scheduler
	var fired []string
	s.Schedule(0, func() { fired = append(fired, "immediate") })
	s.Schedule(time.Hour, func() { fired = append(fired, "later") })

	time.Sleep(time.Millisecond)
	s.RunDue()

	if len(fired) != 1 || fired[0] != "immediate" {
		t.Fatalf("expected only the immediate call to fire, got %v", fired)
	}
	if _, ok := s.TimeUntilNext(); !ok {
		t.Fatal("expected the later call to remain pending")
	}
}

func TestScheduler_TimeUntilNextNoneScheduled(t *testing.T) {
	var s Scheduler
	if _, ok := s.TimeUntilNext(); ok {
		t.Fatal("expected ok=false with nothing scheduled")
	}
}

func TestScheduler_ClearDropsPending(t *testing.T) {
	var s Scheduler
	fired := false
	s.Schedule(0, func() { fired = true })
	s.Clear()
	s.RunDue()
	if fired {
		t.Fatal("expected cleared call not to fire")
	}
}
