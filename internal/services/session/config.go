package session

import "time"

// Config holds the tunable rules for a session
type Config struct {
	// RoundLimit is the time budget for playing a round, and also for the
	// judge's winner selection.
	RoundLimit time.Duration

	// StartDelay is the window between the start command and the first
	// round, giving players time to join.
	StartDelay time.Duration

	// StopDelay is how long a short-handed session waits for more players
	// before stopping.
	StopDelay time.Duration

	// IdleLimit is the idle-ban count at which an identity is refused
	// rejoining.
	IdleLimit int

	// PointLimit ends the session when a player reaches it. Zero disables
	// the limit.
	PointLimit int

	// HandSize is the dealing target for each player's hand.
	HandSize int

	// MinPlayers is the roster size required to run a round.
	MinPlayers int

	// TickInterval is the polling interval for the round and winner
	// timers. Warnings and expiry are detected on ticks, so the effective
	// deadline resolution is one interval.
	TickInterval time.Duration

	// Warnings are the remaining-time thresholds announced while a timer
	// runs, in descending order.
	Warnings []time.Duration
}

// DefaultConfig returns the standard game rules
func DefaultConfig() Config {
	return Config{
		RoundLimit:   2 * time.Minute,
		StartDelay:   15 * time.Second,
		StopDelay:    3 * time.Minute,
		IdleLimit:    3,
		PointLimit:   5,
		HandSize:     10,
		MinPlayers:   3,
		TickInterval: 10 * time.Second,
		Warnings:     []time.Duration{60 * time.Second, 30 * time.Second, 10 * time.Second},
	}
}
