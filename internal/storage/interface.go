package storage

import "context"

// Storage persists per-channel session records that must outlive a player's
// presence on the roster: the score ledger and the idle-ban counters, both
// keyed by identity key. The default backend is in-memory; redis is a
// deployment choice for bots that restart more often than their channels do.
type Storage interface {
	// Score ledger operations
	GetScores(ctx context.Context, channel string) (map[string]int, error)
	SetScore(ctx context.Context, channel, identityKey string, points int) error
	ClearScores(ctx context.Context, channel string) error

	// Idle ban operations
	GetIdleBans(ctx context.Context, channel string) (map[string]int, error)
	IncrIdleBan(ctx context.Context, channel, identityKey string) (int, error)
	ClearIdleBans(ctx context.Context, channel string) error
}
