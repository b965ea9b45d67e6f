package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

type MemoryStorageSuite struct {
	suite.Suite
	store *Storage
	ctx   context.Context
}

func TestMemoryStorageSuite(t *testing.T) {
	suite.Run(t, new(MemoryStorageSuite))
}

func (s *MemoryStorageSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
}

func (s *MemoryStorageSuite) TestScoresRoundTrip() {
	s.Require().NoError(s.store.SetScore(s.ctx, "#games", "alice@host", 3))
	s.Require().NoError(s.store.SetScore(s.ctx, "#games", "bob@host", 1))
	s.Require().NoError(s.store.SetScore(s.ctx, "#other", "alice@host", 9))

	scores, err := s.store.GetScores(s.ctx, "#games")
	s.Require().NoError(err)
	s.Equal(map[string]int{"alice@host": 3, "bob@host": 1}, scores)
}

func (s *MemoryStorageSuite) TestClearScoresIsPerChannel() {
	s.Require().NoError(s.store.SetScore(s.ctx, "#games", "alice@host", 3))
	s.Require().NoError(s.store.SetScore(s.ctx, "#other", "alice@host", 9))

	s.Require().NoError(s.store.ClearScores(s.ctx, "#games"))

	scores, err := s.store.GetScores(s.ctx, "#games")
	s.Require().NoError(err)
	s.Empty(scores)

	scores, err = s.store.GetScores(s.ctx, "#other")
	s.Require().NoError(err)
	s.Equal(9, scores["alice@host"])
}

func (s *MemoryStorageSuite) TestIdleBansIncrement() {
	count, err := s.store.IncrIdleBan(s.ctx, "#games", "bob@host")
	s.Require().NoError(err)
	s.Equal(1, count)

	count, err = s.store.IncrIdleBan(s.ctx, "#games", "bob@host")
	s.Require().NoError(err)
	s.Equal(2, count)

	bans, err := s.store.GetIdleBans(s.ctx, "#games")
	s.Require().NoError(err)
	s.Equal(map[string]int{"bob@host": 2}, bans)
}

func (s *MemoryStorageSuite) TestClearIdleBans() {
	_, err := s.store.IncrIdleBan(s.ctx, "#games", "bob@host")
	s.Require().NoError(err)

	s.Require().NoError(s.store.ClearIdleBans(s.ctx, "#games"))

	bans, err := s.store.GetIdleBans(s.ctx, "#games")
	s.Require().NoError(err)
	s.Empty(bans)
}

func (s *MemoryStorageSuite) TestReturnedMapsAreCopies() {
	s.Require().NoError(s.store.SetScore(s.ctx, "#games", "alice@host", 3))

	scores, err := s.store.GetScores(s.ctx, "#games")
	s.Require().NoError(err)
	scores["alice@host"] = 100

	again, err := s.store.GetScores(s.ctx, "#games")
	s.Require().NoError(err)
	s.Equal(3, again["alice@host"])
}
