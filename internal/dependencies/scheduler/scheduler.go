package scheduler

import (
	"sync"
	"time"
)

// Key names a timer by purpose so callers can cancel and re-arm
// deterministically across state transitions.
type Key string

// Scheduler owns cancelable timers keyed by purpose. Arming a key that is
// already armed replaces the previous timer. Implementations invoke
// callbacks on their own goroutines; callers serialize their own state.
type Scheduler interface {
	// After arms a one-shot timer.
	After(key Key, delay time.Duration, fn func())

	// Every arms a repeating timer that fires at the given interval until
	// canceled.
	Every(key Key, interval time.Duration, fn func())

	// Cancel disarms the timer for the key, if armed.
	Cancel(key Key)

	// CancelAll disarms every armed timer.
	CancelAll()

	// Active reports whether the key currently has an armed timer.
	Active(key Key) bool
}

// TimerScheduler implements Scheduler using the time package.
type TimerScheduler struct {
	mu     sync.Mutex
	seq    uint64
	timers map[Key]*armedTimer
}

type armedTimer struct {
	id     uint64
	cancel func()
}

// New creates a new TimerScheduler
func New() *TimerScheduler {
	return &TimerScheduler{timers: make(map[Key]*armedTimer)}
}

// Ensure TimerScheduler implements Scheduler
var _ Scheduler = (*TimerScheduler)(nil)

// After arms a one-shot timer for the key.
func (s *TimerScheduler) After(key Key, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(key)

	s.seq++
	id := s.seq
	timer := time.AfterFunc(delay, func() {
		// Disarm the key, but only if it still refers to this timer;
		// the key may have been re-armed since we fired.
		s.mu.Lock()
		if cur, ok := s.timers[key]; ok && cur.id == id {
			delete(s.timers, key)
		}
		s.mu.Unlock()
		fn()
	})
	s.timers[key] = &armedTimer{id: id, cancel: func() { timer.Stop() }}
}

// Every arms a repeating timer for the key.
func (s *TimerScheduler) Every(key Key, interval time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(key)

	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()

	s.seq++
	var once sync.Once
	s.timers[key] = &armedTimer{
		id: s.seq,
		cancel: func() {
			ticker.Stop()
			once.Do(func() { close(done) })
		},
	}
}

// Cancel disarms the timer for the key.
func (s *TimerScheduler) Cancel(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(key)
}

// CancelAll disarms every armed timer.
func (s *TimerScheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.timers {
		s.cancelLocked(key)
	}
}

// Active reports whether the key has an armed timer.
func (s *TimerScheduler) Active(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[key]
	return ok
}

func (s *TimerScheduler) cancelLocked(key Key) {
	if armed, ok := s.timers[key]; ok {
		armed.cancel()
		delete(s.timers, key)
	}
}
