package production

import (
	"sync"
	"time"
)

// Scheduler drives the recurring progress ticks of in-production orders.
// Schedule starts a tick sequence for one order; the callback returns
// false when the sequence must stop (order completed or no longer in
// production). Scheduling the same order again replaces its sequence.
type Scheduler interface {
	Schedule(orderID string, tick func() bool)
	Cancel(orderID string)
	StopAll()
}

// TimerScheduler is the wall-clock Scheduler used in production: one
// goroutine per order, an initial delay before the first tick, then a
// fixed interval between ticks.
type TimerScheduler struct {
	initialDelay time.Duration
	tickInterval time.Duration

	mu    sync.Mutex
	stops map[string]chan struct{}
}

// NewTimerScheduler creates a scheduler with the given initial delay and
// tick interval.
func NewTimerScheduler(initialDelay, tickInterval time.Duration) *TimerScheduler {
	return &TimerScheduler{
		initialDelay: initialDelay,
		tickInterval: tickInterval,
		stops:        make(map[string]chan struct{}),
	}
}

// Schedule starts the tick sequence for orderID, replacing any sequence
// already running for it.
func (s *TimerScheduler) Schedule(orderID string, tick func() bool) {
	s.mu.Lock()
	if old, ok := s.stops[orderID]; ok {
		close(old)
	}
	stop := make(chan struct{})
	s.stops[orderID] = stop
	s.mu.Unlock()

	go s.run(orderID, stop, tick)
}

func (s *TimerScheduler) run(orderID string, stop chan struct{}, tick func() bool) {
	delay := time.NewTimer(s.initialDelay)
	defer delay.Stop()

	select {
	case <-stop:
		return
	case <-delay.C:
	}

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !tick() {
				s.remove(orderID, stop)
				return
			}
		}
	}
}

// Cancel stops the tick sequence for orderID, if one is running.
func (s *TimerScheduler) Cancel(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stop, ok := s.stops[orderID]; ok {
		close(stop)
		delete(s.stops, orderID)
	}
}

// StopAll stops every running tick sequence. Used on shutdown.
func (s *TimerScheduler) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, stop := range s.stops {
		close(stop)
		delete(s.stops, id)
	}
}

// remove clears the bookkeeping for a sequence that ended on its own,
// unless it was already replaced or cancelled.
func (s *TimerScheduler) remove(orderID string, stop chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.stops[orderID]; ok && current == stop {
		delete(s.stops, orderID)
	}
}
