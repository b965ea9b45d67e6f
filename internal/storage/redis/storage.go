package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/cardgame-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Ledgers are hashes keyed by identity key so increments are atomic.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Score ledger operations

func (s *Storage) GetScores(ctx context.Context, channel string) (map[string]int, error) {
	return s.getHash(ctx, scoresKey(channel))
}

func (s *Storage) SetScore(ctx context.Context, channel, identityKey string, points int) error {
	key := scoresKey(channel)
	pipe := s.client.Pipeline()
	pipe.HSet(ctx, key, identityKey, points)
	if s.cfg.LedgerTTL > 0 {
		pipe.Expire(ctx, key, s.cfg.LedgerTTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ClearScores(ctx context.Context, channel string) error {
	return s.client.Del(ctx, scoresKey(channel)).Err()
}

// Idle ban operations

func (s *Storage) GetIdleBans(ctx context.Context, channel string) (map[string]int, error) {
	return s.getHash(ctx, idleBansKey(channel))
}

func (s *Storage) IncrIdleBan(ctx context.Context, channel, identityKey string) (int, error) {
	key := idleBansKey(channel)
	pipe := s.client.Pipeline()
	incr := pipe.HIncrBy(ctx, key, identityKey, 1)
	if s.cfg.LedgerTTL > 0 {
		pipe.Expire(ctx, key, s.cfg.LedgerTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return int(incr.Val()), nil
}

func (s *Storage) ClearIdleBans(ctx context.Context, channel string) error {
	return s.client.Del(ctx, idleBansKey(channel)).Err()
}

func (s *Storage) getHash(ctx context.Context, key string) (map[string]int, error) {
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(fields))
	for field, value := range fields {
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		out[field] = n
	}
	return out, nil
}
