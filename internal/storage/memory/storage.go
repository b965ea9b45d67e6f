package memory

import (
	"context"
	"sync"

	"github.com/mcoot/cardgame-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	scores   map[string]map[string]int // channel -> identity key -> points
	idleBans map[string]map[string]int // channel -> identity key -> ban count
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		scores:   make(map[string]map[string]int),
		idleBans: make(map[string]map[string]int),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Score ledger operations

func (s *Storage) GetScores(ctx context.Context, channel string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(s.scores[channel]))
	for key, points := range s.scores[channel] {
		out[key] = points
	}
	return out, nil
}

func (s *Storage) SetScore(ctx context.Context, channel, identityKey string, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scores[channel] == nil {
		s.scores[channel] = make(map[string]int)
	}
	s.scores[channel][identityKey] = points
	return nil
}

func (s *Storage) ClearScores(ctx context.Context, channel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scores, channel)
	return nil
}

// Idle ban operations

func (s *Storage) GetIdleBans(ctx context.Context, channel string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(s.idleBans[channel]))
	for key, count := range s.idleBans[channel] {
		out[key] = count
	}
	return out, nil
}

func (s *Storage) IncrIdleBan(ctx context.Context, channel, identityKey string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.idleBans[channel] == nil {
		s.idleBans[channel] = make(map[string]int)
	}
	s.idleBans[channel][identityKey]++
	return s.idleBans[channel][identityKey], nil
}

func (s *Storage) ClearIdleBans(ctx context.Context, channel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.idleBans, channel)
	return nil
}
