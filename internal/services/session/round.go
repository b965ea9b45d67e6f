package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcoot/cardgame-go/internal/model"
)

// advanceRoundLocked starts the next round: point-limit check, roster
// check, judge rotation, dealing, prompt reveal, round timer.
func (s *Session) advanceRoundLocked(ctx context.Context) {
	if s.cfg.PointLimit > 0 {
		for _, p := range s.players {
			if p.Points >= s.cfg.PointLimit {
				s.announce("%s wins the game with %d points! Congratulations!", p.Identity.Nick, p.Points)
				s.stopLocked()
				return
			}
		}
	}

	if len(s.players) < s.cfg.MinPlayers {
		s.enterWaitingLocked()
		return
	}

	s.round++
	s.rotateJudgeLocked()

	if err := s.prompts.EnsureNonEmpty(s.deps.Random.Intn); err != nil {
		s.abortLocked(err)
		return
	}
	prompt, err := s.prompts.Draw()
	if err != nil {
		s.abortLocked(err)
		return
	}
	s.table.Prompt = prompt

	target := s.cfg.HandSize + prompt.Draw
	for _, p := range s.players {
		p.NeedsDeal = false
		if err := s.dealLocked(p, target); err != nil {
			s.abortLocked(err)
			return
		}
	}

	s.announce("Round %d! %s is the judge.", s.round, s.judge.Identity.Nick)
	s.announcePromptLocked()
	for _, p := range s.players {
		if !p.IsJudge {
			s.showHandLocked(p)
		}
	}

	s.deps.Logger.Info("round started",
		slog.String("channel", s.channel),
		slog.Int("round", s.round),
		slog.String("judge", s.judge.Identity.Nick),
	)

	s.state = StatePlayable
	s.startClockLocked()
	s.armRoundTimerLocked()
}

// rotateJudgeLocked advances the judge one roster position past the
// previous judge, wrapping at the end. If the previous judge left, the
// player who slid into their roster slot is next; with no previous judge,
// position 0 starts.
func (s *Session) rotateJudgeLocked() {
	idx := s.judgeIdx
	if s.judge != nil {
		for i, p := range s.players {
			if p == s.judge {
				idx = i + 1
				break
			}
		}
	}
	if idx < 0 {
		idx = 0
	}
	idx %= len(s.players)

	s.judge = s.players[idx]
	s.judgeIdx = idx
	s.judge.IsJudge = true
}

// dealLocked draws response cards one at a time until the player's hand
// reaches the target, recycling the discard pile as needed. Running out
// of cards entirely is fatal.
func (s *Session) dealLocked(p *model.Player, target int) error {
	for p.Hand.Size() < target {
		if err := s.responses.EnsureNonEmpty(s.deps.Random.Intn); err != nil {
			return err
		}
		card, err := s.responses.Draw()
		if err != nil {
			return err
		}
		p.Hand.Add(card, p.Key())
	}
	return nil
}

// revealLocked closes the play window and shows the submitted entries.
// Zero entries skips straight to the next round; a single entry wins by
// default; otherwise entries are shuffled, displayed, and the judge (or
// the winner timer) takes over.
func (s *Session) revealLocked(ctx context.Context) {
	s.deps.Scheduler.Cancel(TimerRound)

	switch len(s.table.Entries) {
	case 0:
		s.announce("Nobody played this round.")
		s.cleanLocked(ctx)
		s.advanceRoundLocked(ctx)
	case 1:
		s.state = StatePlayed
		s.announce("Only one entry this round, it wins by default.")
		if err := s.awardEntryLocked(ctx, 0); err != nil {
			s.abortLocked(err)
		}
	default:
		s.table.ShuffleEntries(s.deps.Random.Intn)
		s.state = StatePlayed
		s.announce("Everyone has played! The entries:")
		s.announceEntriesLocked()
		if s.judge != nil {
			s.announce("%s: pick a winner with !pick <number>.", s.judge.Identity.Nick)
			s.startClockLocked()
			s.armWinnerTimerLocked()
		} else {
			s.autoPickWinnerLocked(ctx, "There is no judge")
		}
	}
}

// awardEntryLocked gives the winning entry's owner a point, announces the
// result, and rolls into the next round. The owner is resolved from the
// cards' holder key and reconciled into the score ledger, so the point
// lands even if the player has since left the roster.
func (s *Session) awardEntryLocked(ctx context.Context, idx int) error {
	entry := s.table.Entry(idx)
	if entry == nil {
		return model.ErrNoSuchEntry
	}
	s.deps.Scheduler.Cancel(TimerWinner)

	holderKey := entry.Owner.Key()
	if len(entry.Cards) > 0 && entry.Cards[0].Holder != "" {
		holderKey = entry.Cards[0].Holder
	}

	points := 1
	if winner := s.findByKeyLocked(holderKey); winner != nil {
		winner.Points++
		points = winner.Points
	} else if scores, err := s.deps.Storage.GetScores(ctx, s.channel); err == nil {
		points = scores[holderKey] + 1
	}
	if err := s.deps.Storage.SetScore(ctx, s.channel, holderKey, points); err != nil {
		s.deps.Logger.Warn("failed to persist score",
			slog.String("channel", s.channel),
			slog.String("identity", holderKey),
			slog.String("error", err.Error()),
		)
	}

	s.announce("%s wins the round with \"%s\" and now has %d point(s)!",
		entry.Owner.Nick, s.table.Prompt.FillBlanks(entry.Texts()), points)
	s.deps.Logger.Info("round won",
		slog.String("channel", s.channel),
		slog.Int("round", s.round),
		slog.String("winner", entry.Owner.Nick),
		slog.Int("points", points),
	)

	s.cleanLocked(ctx)
	s.advanceRoundLocked(ctx)
	return nil
}

// autoPickWinnerLocked selects a uniformly random entry when no judge can.
func (s *Session) autoPickWinnerLocked(ctx context.Context, why string) {
	if len(s.table.Entries) == 0 {
		s.cleanLocked(ctx)
		s.advanceRoundLocked(ctx)
		return
	}
	s.announce("%s, picking a random winner.", why)
	idx := s.deps.Random.Intn(len(s.table.Entries))
	if err := s.awardEntryLocked(ctx, idx); err != nil {
		s.abortLocked(err)
	}
}

// cleanLocked clears the table and round flags, moving every table card
// to its discard pile, and removes players who sat out the whole round.
// Idle removals skip the usual leave announcement; one summary line names
// everyone dropped.
func (s *Session) cleanLocked(ctx context.Context) {
	if s.table.Prompt != nil {
		s.prompts.AddToDiscard(s.table.Prompt)
		s.table.Prompt = nil
	}
	for _, entry := range s.table.Entries {
		for _, card := range entry.Cards {
			s.responses.AddToDiscard(card)
		}
		entry.Cards = nil
	}
	s.table.Entries = nil

	var removed []string
	kept := s.players[:0]
	for _, p := range s.players {
		if p.InactiveRounds >= 1 {
			for _, card := range p.Hand.PickAll() {
				s.responses.AddToDiscard(card)
			}
			count, err := s.deps.Storage.IncrIdleBan(ctx, s.channel, p.Key())
			if err != nil {
				s.deps.Logger.Warn("failed to persist idle ban",
					slog.String("channel", s.channel),
					slog.String("identity", p.Key()),
					slog.String("error", err.Error()),
				)
				count = s.idleBans[p.Key()] + 1
			}
			s.idleBans[p.Key()] = count
			if p == s.judge {
				s.judge = nil
			}
			removed = append(removed, p.Identity.Nick)
			continue
		}
		p.HasPlayed = false
		p.HasDiscarded = false
		p.IsJudge = false
		kept = append(kept, p)
	}
	s.players = kept

	if len(removed) > 0 {
		s.announce("Removed for inactivity: %s", strings.Join(removed, ", "))
	}

	s.state = StateStarted
}

// removePlayerLocked takes a player off the roster mid-session, discarding
// their held cards, and applies the roster-mutation side effects: a round
// where everyone remaining has played reveals immediately, and losing the
// judge during selection forces a random pick.
func (s *Session) removePlayerLocked(ctx context.Context, player *model.Player) {
	for i, p := range s.players {
		if p == player {
			s.players = append(s.players[:i], s.players[i+1:]...)
			break
		}
	}
	for _, card := range player.Hand.PickAll() {
		s.responses.AddToDiscard(card)
	}

	wasJudge := player == s.judge
	if wasJudge {
		s.judge = nil
	}

	switch s.state {
	case StatePlayed:
		if wasJudge {
			s.autoPickWinnerLocked(ctx, "The judge left")
		}
	case StatePlayable:
		if s.allPlayedLocked() {
			s.revealLocked(ctx)
		}
	}
}

// allPlayedLocked reports whether every eligible player has submitted an
// entry this round. Eligible means dealt, not the judge, and either still
// holding cards or already played.
func (s *Session) allPlayedLocked() bool {
	eligible := 0
	for _, p := range s.players {
		if p.IsJudge || p.NeedsDeal {
			continue
		}
		if p.Hand.Size() == 0 && !p.HasPlayed {
			continue
		}
		eligible++
		if !p.HasPlayed {
			return false
		}
	}
	return eligible > 0
}

// announcePromptLocked shows the active prompt and its pick count
func (s *Session) announcePromptLocked() {
	prompt := s.table.Prompt
	if prompt.Pick > 1 {
		s.announce("The prompt (pick %d): %s", prompt.Pick, prompt.Text)
		return
	}
	s.announce("The prompt: %s", prompt.Text)
}

// announceEntriesLocked enumerates the shuffled entries
func (s *Session) announceEntriesLocked() {
	for i, entry := range s.table.Entries {
		s.announce("%d: %s", i, s.table.Prompt.FillBlanks(entry.Texts()))
	}
}

// showHandLocked privately lists a player's cards with their pick indices
func (s *Session) showHandLocked(p *model.Player) {
	parts := make([]string, 0, p.Hand.Size())
	for i, card := range p.Hand.Cards() {
		parts = append(parts, fmt.Sprintf("[%d] %s", i, card.Text))
	}
	s.deps.Sink.Private(p.Identity.Nick, "Your cards: %s", strings.Join(parts, " "))
}
