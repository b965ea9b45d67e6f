package session

import (
	"context"
	"time"
)

// The round and winner timers poll at TickInterval rather than arming a
// single deadline, so intermediate warnings can be announced. Expiry is
// decided by comparing wall-clock elapsed time against the limit, which
// lets pause/resume reconstruct the remaining budget.

// startClockLocked resets the elapsed-time bookkeeping for a fresh
// round or selection window.
func (s *Session) startClockLocked() {
	s.timerStarted = s.deps.Clock.Now()
	s.savedElapsed = 0
	s.warned = make(map[time.Duration]bool)
}

// remainingLocked returns the time left in the current window
func (s *Session) remainingLocked() time.Duration {
	elapsed := s.savedElapsed + s.deps.Clock.Now().Sub(s.timerStarted)
	return s.cfg.RoundLimit - elapsed
}

func (s *Session) armRoundTimerLocked() {
	s.deps.Scheduler.Every(TimerRound, s.cfg.TickInterval, func() {
		s.onRoundTick(context.Background())
	})
}

func (s *Session) armWinnerTimerLocked() {
	s.deps.Scheduler.Every(TimerWinner, s.cfg.TickInterval, func() {
		s.onWinnerTick(context.Background())
	})
}

// onRoundTick fires every TickInterval while entries are being collected
func (s *Session) onRoundTick(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePlayable {
		return
	}

	remaining := s.remainingLocked()
	if remaining > 0 {
		s.warnLocked(remaining, "to play")
		return
	}

	s.announce("Time's up!")
	for _, p := range s.players {
		if p.CanPlay() && !p.HasPlayed {
			p.InactiveRounds++
		}
	}
	s.revealLocked(ctx)
}

// onWinnerTick fires every TickInterval while the judge deliberates
func (s *Session) onWinnerTick(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePlayed {
		return
	}

	remaining := s.remainingLocked()
	if remaining > 0 {
		s.warnLocked(remaining, "to pick a winner")
		return
	}

	s.deps.Scheduler.Cancel(TimerWinner)
	s.autoPickWinnerLocked(ctx, "Time's up")
}

// warnLocked announces at most one crossed warning threshold per tick,
// marking every crossed threshold so it never repeats.
func (s *Session) warnLocked(remaining time.Duration, what string) {
	announced := false
	for _, threshold := range s.cfg.Warnings {
		if remaining <= threshold && !s.warned[threshold] {
			s.warned[threshold] = true
			if !announced {
				s.announce("%d seconds left %s!", int(remaining.Seconds()), what)
				announced = true
			}
		}
	}
}
