package mocks

import (
	"time"

	"github.com/mcoot/cardgame-go/internal/dependencies/scheduler"
)

// ScheduledTimer records a timer armed on the MockScheduler
type ScheduledTimer struct {
	Delay     time.Duration
	Repeating bool
	Fn        func()
}

// MockScheduler is a mock implementation of Scheduler for testing.
// Timers never fire on their own; tests call Fire to trigger them.
type MockScheduler struct {
	Timers map[scheduler.Key]*ScheduledTimer
}

// Ensure MockScheduler implements Scheduler
var _ scheduler.Scheduler = (*MockScheduler)(nil)

// NewMockScheduler creates a new MockScheduler
func NewMockScheduler() *MockScheduler {
	return &MockScheduler{Timers: make(map[scheduler.Key]*ScheduledTimer)}
}

// After records a one-shot timer
func (s *MockScheduler) After(key scheduler.Key, delay time.Duration, fn func()) {
	s.Timers[key] = &ScheduledTimer{Delay: delay, Fn: fn}
}

// Every records a repeating timer
func (s *MockScheduler) Every(key scheduler.Key, interval time.Duration, fn func()) {
	s.Timers[key] = &ScheduledTimer{Delay: interval, Repeating: true, Fn: fn}
}

// Cancel removes the timer for the key
func (s *MockScheduler) Cancel(key scheduler.Key) {
	delete(s.Timers, key)
}

// CancelAll removes every timer
func (s *MockScheduler) CancelAll() {
	s.Timers = make(map[scheduler.Key]*ScheduledTimer)
}

// Active reports whether the key has a recorded timer
func (s *MockScheduler) Active(key scheduler.Key) bool {
	_, ok := s.Timers[key]
	return ok
}

// Fire triggers the timer for the key, removing it first unless it repeats.
// Firing an unarmed key is a no-op.
func (s *MockScheduler) Fire(key scheduler.Key) {
	timer, ok := s.Timers[key]
	if !ok {
		return
	}
	if !timer.Repeating {
		delete(s.Timers, key)
	}
	timer.Fn()
}
