package session

import (
	"context"
	"log/slog"

	"github.com/mcoot/cardgame-go/internal/model"
)

// PlayCard submits the cards at the given hand indices as the player's
// entry for the active prompt. The index count must match the prompt's
// pick count and the pick is atomic: an invalid index changes nothing.
func (s *Session) PlayCard(ctx context.Context, nick string, indices []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StatePaused {
		return model.ErrPaused
	}
	if s.state != StatePlayable {
		return model.ErrWrongState
	}

	player := s.findByNickLocked(nick)
	if player == nil {
		return model.ErrPlayerNotFound
	}
	if player.Hand.Size() == 0 {
		return model.ErrEmptyHand
	}
	if player.IsJudge {
		return model.ErrIsJudge
	}
	if player.HasPlayed {
		return model.ErrAlreadyPlayed
	}
	if len(indices) != s.table.Prompt.Pick {
		return model.ErrWrongPickCount
	}
	seen := make(map[int]bool, len(indices))
	for _, idx := range indices {
		if seen[idx] {
			return model.ErrWrongPickCount
		}
		seen[idx] = true
	}

	cards, err := player.Hand.Pick(indices)
	if err != nil {
		return err
	}

	entry := &model.Entry{Owner: player.Identity, Cards: cards}
	s.table.AddEntry(entry)
	player.HasPlayed = true
	player.InactiveRounds = 0

	s.deps.Sink.Private(nick, "You played: %s", s.table.Prompt.FillBlanks(entry.Texts()))
	s.deps.Logger.Info("entry played",
		slog.String("channel", s.channel),
		slog.Int("round", s.round),
		slog.String("nick", nick),
	)

	if s.allPlayedLocked() {
		s.revealLocked(ctx)
	}
	return nil
}

// Discard trades one point for new cards: the requested cards (the whole
// hand when no indices are given) move to the response discard pile and
// the hand is replenished to its previous size. One discard per round.
func (s *Session) Discard(ctx context.Context, nick string, indices []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StatePaused {
		return model.ErrPaused
	}
	if s.state != StatePlayable {
		return model.ErrWrongState
	}

	player := s.findByNickLocked(nick)
	if player == nil {
		return model.ErrPlayerNotFound
	}
	if player.IsJudge {
		return model.ErrIsJudge
	}
	if player.HasDiscarded {
		return model.ErrAlreadyDiscarded
	}
	if player.Points < 1 {
		return model.ErrNotEnoughPoints
	}

	target := player.Hand.Size()
	var discarded []*model.Card
	if len(indices) == 0 {
		discarded = player.Hand.PickAll()
	} else {
		var err error
		discarded, err = player.Hand.Pick(indices)
		if err != nil {
			return err
		}
	}

	// Discarded cards reach the pile before replenishing, so the deal can
	// recycle them when the pool has run dry.
	for _, card := range discarded {
		s.responses.AddToDiscard(card)
	}
	if err := s.dealLocked(player, target); err != nil {
		s.abortLocked(err)
		return err
	}

	player.Points--
	player.HasDiscarded = true
	if err := s.deps.Storage.SetScore(ctx, s.channel, player.Key(), player.Points); err != nil {
		s.deps.Logger.Warn("failed to persist score",
			slog.String("channel", s.channel),
			slog.String("identity", player.Key()),
			slog.String("error", err.Error()),
		)
	}

	s.deps.Sink.Private(nick, "Discarded %d card(s). That cost a point, you now have %d.",
		len(discarded), player.Points)
	s.showHandLocked(player)
	return nil
}

// SelectWinner is the judge picking the round's winning entry by its
// revealed number.
func (s *Session) SelectWinner(ctx context.Context, nick string, idx int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StatePaused {
		return model.ErrPaused
	}
	if s.state != StatePlayed {
		return model.ErrWrongState
	}

	player := s.findByNickLocked(nick)
	if player == nil {
		return model.ErrPlayerNotFound
	}
	if s.judge == nil || player != s.judge {
		return model.ErrNotJudge
	}

	return s.awardEntryLocked(ctx, idx)
}
