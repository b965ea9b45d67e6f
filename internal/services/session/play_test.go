package session

import (
	"context"
	"time"

	"github.com/mcoot/cardgame-go/internal/model"
)

func (s *SessionSuite) TestPlayBeforeRoundStartsFails() {
	s.newSession(testConfig())
	s.joinAll(alice, bob, carol)

	s.ErrorIs(s.sess.PlayCard(context.Background(), "bob", []int{0}), model.ErrWrongState)
}

func (s *SessionSuite) TestPlayByNonPlayerFails() {
	s.startRound()

	s.ErrorIs(s.sess.PlayCard(context.Background(), "mallory", []int{0}), model.ErrPlayerNotFound)
}

func (s *SessionSuite) TestJudgeCannotPlay() {
	s.startRound()

	s.ErrorIs(s.sess.PlayCard(context.Background(), "alice", []int{0}), model.ErrIsJudge)
}

func (s *SessionSuite) TestPlayTwiceFails() {
	s.startRound()
	ctx := context.Background()

	s.Require().NoError(s.sess.PlayCard(ctx, "bob", []int{0}))
	s.ErrorIs(s.sess.PlayCard(ctx, "bob", []int{1}), model.ErrAlreadyPlayed)
}

func (s *SessionSuite) TestPlayWrongPickCountFails() {
	s.startRound()

	err := s.sess.PlayCard(context.Background(), "bob", []int{0, 1})
	s.ErrorIs(err, model.ErrWrongPickCount)
	s.Equal(10, s.player("bob").Hand.Size())
}

func (s *SessionSuite) TestPlayInvalidIndexLeavesHandIntact() {
	s.startRound()

	err := s.sess.PlayCard(context.Background(), "bob", []int{42})
	s.ErrorIs(err, model.ErrInvalidIndex)
	s.Equal(10, s.player("bob").Hand.Size())
	s.False(s.player("bob").HasPlayed)
}

func (s *SessionSuite) TestPlayRemovesCardsAndConfirmsPrivately() {
	s.startRound()

	s.Require().NoError(s.sess.PlayCard(context.Background(), "bob", []int{3}))
	p := s.player("bob")
	s.Equal(9, p.Hand.Size())
	s.True(p.HasPlayed)
	s.Equal(0, p.InactiveRounds)

	privates := s.sink.PrivatesTo("bob")
	s.Require().NotEmpty(privates)
	s.Contains(privates[len(privates)-1], "You played:")
}

func (s *SessionSuite) TestMultiPickPromptTakesSeveralCards() {
	s.newSessionWithPrompts(testConfig(), s.prompts(40, 2, 0))
	s.joinAll(alice, bob, carol)
	s.scheduler.Fire(TimerStart)

	s.ErrorIs(s.sess.PlayCard(context.Background(), "bob", []int{0}), model.ErrWrongPickCount)
	s.Require().NoError(s.sess.PlayCard(context.Background(), "bob", []int{4, 1}))
	s.Equal(8, s.player("bob").Hand.Size())
	s.Equal(2, len(s.sess.table.Entries[0].Cards))
}

func (s *SessionSuite) TestDuplicateIndicesAreNotAFullPick() {
	s.newSessionWithPrompts(testConfig(), s.prompts(40, 2, 0))
	s.joinAll(alice, bob, carol)
	s.scheduler.Fire(TimerStart)

	err := s.sess.PlayCard(context.Background(), "bob", []int{0, 0})
	s.ErrorIs(err, model.ErrWrongPickCount)
	s.Equal(10, s.player("bob").Hand.Size())
	s.Empty(s.sess.table.Entries)
}

func (s *SessionSuite) TestLastPlayEndsThePhase() {
	s.startRound()
	s.bothPlay()

	s.True(s.sink.AnnouncedContaining("Everyone has played!"))
	s.True(s.sink.AnnouncedContaining("alice: pick a winner"))
	s.True(s.scheduler.Active(TimerWinner))
	s.False(s.scheduler.Active(TimerRound))
}

func (s *SessionSuite) TestSelectWinnerAwardsAndAdvances() {
	s.startRound()
	ctx := context.Background()
	s.bothPlay()

	// Two entries reveal as carol then bob
	roundOnePrompt := s.sess.table.Prompt
	s.Require().NoError(s.sess.SelectWinner(ctx, "alice", 0))
	s.Equal(1, s.player("carol").Points)
	s.True(s.sink.AnnouncedContaining("carol wins the round"))

	scores, err := s.store.GetScores(ctx, "#games")
	s.Require().NoError(err)
	s.Equal(1, scores[carol.Key()])

	// Round 2 is already underway: the old prompt was discarded, a fresh
	// one is on the table, and the next judge has rotated in
	s.Equal(2, s.sess.round)
	s.Empty(s.sess.table.Entries)
	s.NotSame(roundOnePrompt, s.sess.table.Prompt)
	s.Equal(1, s.sess.prompts.DiscardLen())
	s.Equal(StatePlayable, s.sess.state)
	s.True(s.player("bob").IsJudge)
	s.False(s.player("alice").IsJudge)
	s.Equal(10, s.player("carol").Hand.Size(), "hands are topped back up")
}

func (s *SessionSuite) TestSelectWinnerOnlyByJudge() {
	s.startRound()
	s.bothPlay()

	s.ErrorIs(s.sess.SelectWinner(context.Background(), "bob", 0), model.ErrNotJudge)
}

func (s *SessionSuite) TestSelectWinnerBadEntryNumber() {
	s.startRound()
	s.bothPlay()

	s.ErrorIs(s.sess.SelectWinner(context.Background(), "alice", 7), model.ErrNoSuchEntry)
	s.Equal(StatePlayed, s.sess.state, "a bad pick leaves the round open")
}

func (s *SessionSuite) TestSelectWinnerBeforeRevealFails() {
	s.startRound()

	s.ErrorIs(s.sess.SelectWinner(context.Background(), "alice", 0), model.ErrWrongState)
}

func (s *SessionSuite) TestDiscardCostsAPointAndReplenishes() {
	s.startRound()
	ctx := context.Background()
	s.player("bob").Points = 2

	s.Require().NoError(s.sess.Discard(ctx, "bob", []int{0, 1, 2}))
	p := s.player("bob")
	s.Equal(10, p.Hand.Size())
	s.Equal(1, p.Points)
	s.True(p.HasDiscarded)

	scores, err := s.store.GetScores(ctx, "#games")
	s.Require().NoError(err)
	s.Equal(1, scores[bob.Key()])

	s.ErrorIs(s.sess.Discard(ctx, "bob", []int{0}), model.ErrAlreadyDiscarded)
}

func (s *SessionSuite) TestDiscardWholeHandWhenNoIndices() {
	s.startRound()
	s.player("carol").Points = 1

	s.Require().NoError(s.sess.Discard(context.Background(), "carol", nil))
	s.Equal(10, s.player("carol").Hand.Size())
	s.Equal(0, s.player("carol").Points)
}

func (s *SessionSuite) TestDiscardNeedsAPoint() {
	s.startRound()

	s.ErrorIs(s.sess.Discard(context.Background(), "bob", []int{0}), model.ErrNotEnoughPoints)
}

func (s *SessionSuite) TestDiscardRecyclesOwnCardsWhenPoolRunsDry() {
	// 3 players x HandSize drains the response pool completely at the deal
	s.newSessionWithCards(testConfig(), s.prompts(40, 1, 0), s.responses(30))
	s.joinAll(alice, bob, carol)
	s.scheduler.Fire(TimerStart)
	s.Require().Equal(0, s.sess.responses.Len())
	s.player("bob").Points = 1

	// The only replacement card available is the one being discarded
	s.Require().NoError(s.sess.Discard(context.Background(), "bob", []int{0}))
	s.Equal(10, s.player("bob").Hand.Size())
	s.Equal(StatePlayable, s.sess.state)
}

func (s *SessionSuite) TestJudgeCannotDiscard() {
	s.startRound()
	s.player("alice").Points = 3

	s.ErrorIs(s.sess.Discard(context.Background(), "alice", []int{0}), model.ErrIsJudge)
}

func (s *SessionSuite) TestRoundTimerWarnsAtThresholds() {
	s.startRound()

	s.clock.Advance(65 * time.Second)
	s.scheduler.Fire(TimerRound)
	s.True(s.sink.AnnouncedContaining("55 seconds left to play!"))

	// Re-firing without time passing repeats nothing
	count := len(s.sink.Announcements())
	s.scheduler.Fire(TimerRound)
	s.Len(s.sink.Announcements(), count)

	s.clock.Advance(30 * time.Second)
	s.scheduler.Fire(TimerRound)
	s.True(s.sink.AnnouncedContaining("25 seconds left to play!"))
}

func (s *SessionSuite) TestRoundTimeoutMarksIdlersAndRemovesThem() {
	s.startRound()
	ctx := context.Background()
	s.Require().NoError(s.sess.PlayCard(ctx, "bob", []int{0}))

	s.clock.Advance(121 * time.Second)
	s.scheduler.Fire(TimerRound)

	// carol never played: bob's lone entry wins and carol is dropped
	s.True(s.sink.AnnouncedContaining("Time's up!"))
	s.True(s.sink.AnnouncedContaining("wins by default"))
	s.True(s.sink.AnnouncedContaining("Removed for inactivity: carol"))
	s.Nil(s.sess.findByNickLocked("carol"))

	bans, err := s.store.GetIdleBans(ctx, "#games")
	s.Require().NoError(err)
	s.Equal(1, bans[carol.Key()])
}

func (s *SessionSuite) TestRoundTimeoutWithNoEntriesSkipsRound() {
	s.startRound()

	s.clock.Advance(121 * time.Second)
	s.scheduler.Fire(TimerRound)

	s.True(s.sink.AnnouncedContaining("Nobody played this round."))
	s.True(s.sink.AnnouncedContaining("Removed for inactivity: bob, carol"))
	// Only the judge is left, so the session parks for more players
	s.Equal(StateWaiting, s.sess.state)
	s.Len(s.sess.players, 1)
}

func (s *SessionSuite) TestWinnerTimeoutPicksRandomly() {
	s.startRound()
	s.bothPlay()

	s.clock.Advance(121 * time.Second)
	s.scheduler.Fire(TimerWinner)

	s.True(s.sink.AnnouncedContaining("Time's up, picking a random winner."))
	s.True(s.sink.AnnouncedContaining("wins the round"))
	s.Equal(2, s.sess.round)
	s.False(s.scheduler.Active(TimerWinner))
}

func (s *SessionSuite) TestWinnerTimerWarnsJudge() {
	s.startRound()
	s.bothPlay()

	s.clock.Advance(95 * time.Second)
	s.scheduler.Fire(TimerWinner)
	s.True(s.sink.AnnouncedContaining("25 seconds left to pick a winner!"))
	s.Equal(StatePlayed, s.sess.state)
}

func (s *SessionSuite) TestIdleCounterResetsOnPlay() {
	s.startRound()
	ctx := context.Background()

	// carol idles through round 1 while bob plays
	s.Require().NoError(s.sess.PlayCard(ctx, "bob", []int{0}))
	s.player("carol").InactiveRounds = 0
	s.clock.Advance(121 * time.Second)
	s.scheduler.Fire(TimerRound)
	s.Require().Nil(s.sess.findByNickLocked("carol"))

	// One strike is not a ban: carol can rejoin right away
	s.NoError(s.sess.Join(ctx, carol))
}
