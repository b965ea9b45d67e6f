package session

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// PlayerSnapshot is a read-only view of one roster member
type PlayerSnapshot struct {
	Nick      string `json:"nick"`
	Points    int    `json:"points"`
	IsJudge   bool   `json:"is_judge"`
	HasPlayed bool   `json:"has_played"`
}

// Snapshot is a read-only view of the session for status surfaces
type Snapshot struct {
	Channel string           `json:"channel"`
	State   State            `json:"state"`
	Round   int              `json:"round"`
	Players []PlayerSnapshot `json:"players"`
	Entries int              `json:"entries"`
}

// Channel returns the channel this session runs in
func (s *Session) Channel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.channel
}

// State returns the current lifecycle state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Round returns the current round number
func (s *Session) Round() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// Snapshot returns a read-only view of the session
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	players := make([]PlayerSnapshot, len(s.players))
	for i, p := range s.players {
		players[i] = PlayerSnapshot{
			Nick:      p.Identity.Nick,
			Points:    p.Points,
			IsJudge:   p.IsJudge,
			HasPlayed: p.HasPlayed,
		}
	}
	return Snapshot{
		Channel: s.channel,
		State:   s.state,
		Round:   s.round,
		Players: players,
		Entries: len(s.table.Entries),
	}
}

// ListPlayers announces the roster
func (s *Session) ListPlayers(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.players) == 0 {
		s.announce("Nobody has joined yet.")
		return
	}
	names := make([]string, len(s.players))
	for i, p := range s.players {
		names[i] = p.Identity.Nick
		if p.IsJudge {
			names[i] += " (judge)"
		}
	}
	s.announce("Players: %s", strings.Join(names, ", "))
}

// ShowPoints announces the score ledger, covering players who have left
func (s *Session) ShowPoints(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scores, err := s.deps.Storage.GetScores(ctx, s.channel)
	if err != nil {
		scores = make(map[string]int)
	}
	// Live roster overrides the ledger and maps keys back to nicks
	byName := make(map[string]int, len(scores))
	for key, points := range scores {
		byName[key] = points
	}
	for _, p := range s.players {
		delete(byName, p.Key())
		byName[p.Identity.Nick] = p.Points
	}
	if len(byName) == 0 {
		s.announce("No points yet.")
		return
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if byName[names[i]] != byName[names[j]] {
			return byName[names[i]] > byName[names[j]]
		}
		return names[i] < names[j]
	})
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %d", name, byName[name])
	}
	s.announce("Points: %s", strings.Join(parts, ", "))
}

// ShowStatus announces what the session is waiting on
func (s *Session) ShowStatus(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateStarted:
		s.announce("Round %d is about to start.", s.round+1)
	case StateWaiting:
		s.announce("Waiting for %d more player(s) to join.", s.cfg.MinPlayers-len(s.players))
	case StatePlayable:
		var waiting []string
		for _, p := range s.players {
			if p.CanPlay() && !p.HasPlayed {
				waiting = append(waiting, p.Identity.Nick)
			}
		}
		s.announcePromptLocked()
		if len(waiting) > 0 {
			s.announce("Waiting on: %s", strings.Join(waiting, ", "))
		}
	case StatePlayed:
		if s.judge != nil {
			s.announce("Waiting for %s to pick a winner.", s.judge.Identity.Nick)
		}
	case StatePaused:
		s.announce("The game is paused.")
	case StateStopped:
		s.announce("No game running.")
	}
}
