package production

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTimerSchedulerRunsUntilDone(t *testing.T) {
	s := NewTimerScheduler(time.Millisecond, time.Millisecond)
	defer s.StopAll()

	var ticks atomic.Int32
	done := make(chan struct{})
	s.Schedule("ORD-1", func() bool {
		if ticks.Add(1) == 5 {
			close(done)
			return false
		}
		return true
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("tick sequence never reached the fifth tick")
	}

	// No further ticks after the callback reported done.
	count := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	if got := ticks.Load(); got != count {
		t.Errorf("ticks continued after done: %d -> %d", count, got)
	}
}

func TestTimerSchedulerCancel(t *testing.T) {
	s := NewTimerScheduler(50*time.Millisecond, time.Millisecond)
	defer s.StopAll()

	var ticks atomic.Int32
	s.Schedule("ORD-1", func() bool {
		ticks.Add(1)
		return true
	})
	s.Cancel("ORD-1")

	time.Sleep(100 * time.Millisecond)
	if got := ticks.Load(); got != 0 {
		t.Errorf("cancelled sequence ticked %d times", got)
	}
}

func TestTimerSchedulerRescheduleReplaces(t *testing.T) {
	s := NewTimerScheduler(time.Millisecond, time.Millisecond)
	defer s.StopAll()

	var first, second atomic.Int32
	s.Schedule("ORD-1", func() bool {
		first.Add(1)
		return true
	})
	s.Schedule("ORD-1", func() bool {
		second.Add(1)
		return true
	})

	time.Sleep(50 * time.Millisecond)
	s.StopAll()

	before := first.Load()
	time.Sleep(20 * time.Millisecond)
	if got := first.Load(); got != before {
		t.Error("replaced sequence kept ticking")
	}
	if second.Load() == 0 {
		t.Error("replacement sequence never ticked")
	}
}
