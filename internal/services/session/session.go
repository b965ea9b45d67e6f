// Package session implements the game-session state machine: round
// lifecycle, deck and discard management, the player roster, play and
// winner-selection rules, idle handling and score tracking. All inbound
// events (commands, roster changes, timer firings) serialize on the
// session mutex and run to completion.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/cardgame-go/internal/dependencies/clock"
	"github.com/mcoot/cardgame-go/internal/dependencies/random"
	"github.com/mcoot/cardgame-go/internal/dependencies/scheduler"
	"github.com/mcoot/cardgame-go/internal/messaging"
	"github.com/mcoot/cardgame-go/internal/model"
	"github.com/mcoot/cardgame-go/internal/storage"
)

// State is the session lifecycle state
type State string

const (
	StateStarted  State = "started"  // between rounds, or inside the start delay
	StateWaiting  State = "waiting"  // short-handed, waiting for players
	StatePlayable State = "playable" // prompt revealed, collecting entries
	StatePlayed   State = "played"   // entries revealed, awaiting the judge
	StatePaused   State = "paused"
	StateStopped  State = "stopped"
)

// Timer keys, one per purpose so transitions cancel and re-arm
// deterministically.
const (
	TimerStart  scheduler.Key = "start-delay"
	TimerRound  scheduler.Key = "round"
	TimerWinner scheduler.Key = "winner"
	TimerStop   scheduler.Key = "stop-delay"
)

// Deps are the external collaborators a session is constructed with
type Deps struct {
	Clock     clock.Clock
	Random    random.Random
	Scheduler scheduler.Scheduler
	Sink      messaging.Sink
	Storage   storage.Storage
	Logger    *slog.Logger

	// OnStopped is invoked once when the session stops, on the event
	// goroutine that caused the stop. The registry uses it to release
	// its handle to the session.
	OnStopped func()
}

// Session runs one game in one channel
type Session struct {
	mu sync.Mutex

	channel string
	cfg     Config
	deps    Deps

	state       State
	pausedState State // state to restore on resume
	round       int

	players  []*model.Player
	judge    *model.Player
	judgeIdx int

	prompts   *model.Pool
	responses *model.Pool
	table     model.Table

	idleBans map[string]int // identity key -> ban count, loaded at construction

	// Elapsed-time bookkeeping for the running round or winner timer.
	// Elapsed is computed from timerStarted, not from tick counts, so
	// pause/resume reconstructs the remaining budget.
	timerStarted time.Time
	savedElapsed time.Duration
	warned       map[time.Duration]bool
}

// New creates a session for the channel over the given card collections.
// The prompt and response collections must already be validated and
// non-empty; both pools are shuffled here. Any previous score ledger for
// the channel is cleared; idle bans persist.
func New(ctx context.Context, channel string, cfg Config, deps Deps, prompts, responses []*model.Card) (*Session, error) {
	if err := deps.Storage.ClearScores(ctx, channel); err != nil {
		return nil, err
	}
	idleBans, err := deps.Storage.GetIdleBans(ctx, channel)
	if err != nil {
		return nil, err
	}
	if idleBans == nil {
		idleBans = make(map[string]int)
	}

	s := &Session{
		channel:   channel,
		cfg:       cfg,
		deps:      deps,
		state:     StateStarted,
		judgeIdx:  -1,
		prompts:   model.NewPool(prompts),
		responses: model.NewPool(responses),
		idleBans:  idleBans,
		warned:    make(map[time.Duration]bool),
	}
	s.prompts.Shuffle(deps.Random.Intn)
	s.responses.Shuffle(deps.Random.Intn)
	return s, nil
}

// Start announces the session and arms the start-delay timer. The first
// round begins when the delay elapses, if enough players have joined.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deps.Sink.SetTopic(s.channel, "A game is starting! Type !join to play")
	s.announce("Starting a game in %d seconds, type !join to play", int(s.cfg.StartDelay.Seconds()))
	s.deps.Logger.Info("session starting",
		slog.String("channel", s.channel),
		slog.Duration("start_delay", s.cfg.StartDelay),
	)
	s.deps.Scheduler.After(TimerStart, s.cfg.StartDelay, func() {
		s.onStartDelay(context.Background())
	})
}

// Stop ends the session from any state
func (s *Session) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateStopped {
		return
	}
	s.announce("Game stopped.")
	s.stopLocked()
}

// Pause suspends a round in progress, snapshotting the elapsed time so
// the remaining budget survives the pause.
func (s *Session) Pause(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlayable && s.state != StatePlayed {
		if s.state == StatePaused {
			return model.ErrPaused
		}
		return model.ErrWrongState
	}

	s.savedElapsed += s.deps.Clock.Now().Sub(s.timerStarted)
	s.pausedState = s.state
	s.state = StatePaused
	s.deps.Scheduler.Cancel(TimerRound)
	s.deps.Scheduler.Cancel(TimerWinner)

	s.announce("Game paused.")
	s.deps.Logger.Info("session paused",
		slog.String("channel", s.channel),
		slog.Duration("elapsed", s.savedElapsed),
	)
	return nil
}

// Resume restores the paused state and re-arms the relevant timer with
// the remaining time budget. If the judge vanished during the pause, a
// random winner is picked immediately.
func (s *Session) Resume(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePaused {
		return model.ErrNotPaused
	}

	s.state = s.pausedState
	s.timerStarted = s.deps.Clock.Now()
	remaining := s.cfg.RoundLimit - s.savedElapsed
	s.announce("Game resumed. %d seconds left.", int(remaining.Seconds()))

	if s.state == StatePlayed && s.judge == nil {
		s.autoPickWinnerLocked(ctx, "The judge is gone")
		return nil
	}

	switch s.state {
	case StatePlayable:
		s.armRoundTimerLocked()
	case StatePlayed:
		s.armWinnerTimerLocked()
	}
	return nil
}

// Join adds a player to the roster. Identities banned for repeated
// inactivity are refused. Points from the channel ledger are restored, so
// a player who left and rejoined keeps their score. Players joining
// mid-round sit out until the next deal.
func (s *Session) Join(ctx context.Context, identity model.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateStopped {
		return model.ErrStopped
	}
	if s.findByKeyLocked(identity.Key()) != nil {
		return model.ErrAlreadyJoined
	}
	if s.cfg.IdleLimit > 0 && s.idleBans[identity.Key()] >= s.cfg.IdleLimit {
		return model.ErrIdleBanned
	}

	player := model.NewPlayer(identity)
	scores, err := s.deps.Storage.GetScores(ctx, s.channel)
	if err != nil {
		return err
	}
	player.Points = scores[identity.Key()]

	switch s.state {
	case StatePlayable, StatePlayed, StatePaused:
		player.NeedsDeal = true
	}
	s.players = append(s.players, player)

	s.announce("%s joined the game (%d players)", identity.Nick, len(s.players))
	s.deps.Logger.Info("player joined",
		slog.String("channel", s.channel),
		slog.String("nick", identity.Nick),
		slog.Int("players", len(s.players)),
	)

	// A short-handed session resumes as soon as the roster fills out
	if s.state == StateWaiting && len(s.players) >= s.cfg.MinPlayers {
		s.deps.Scheduler.Cancel(TimerStop)
		s.advanceRoundLocked(ctx)
	}
	return nil
}

// HandleLeave removes the player with the given nick from the roster.
// It covers part, quit and kick events; reason is only logged.
func (s *Session) HandleLeave(ctx context.Context, nick, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := s.findByNickLocked(nick)
	if player == nil || s.state == StateStopped {
		return
	}
	s.announce("%s left the game (%d players)", nick, len(s.players)-1)
	s.deps.Logger.Info("player left",
		slog.String("channel", s.channel),
		slog.String("nick", nick),
		slog.String("reason", reason),
	)
	s.removePlayerLocked(ctx, player)
}

// HandleRename updates a roster member's nick. The identity key is
// derived from user and host, so scores and idle bans follow the player
// across the rename.
func (s *Session) HandleRename(oldNick, newNick string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := s.findByNickLocked(oldNick)
	if player == nil {
		return
	}
	player.Identity.Nick = newNick
}

// stopLocked tears the session down: every outstanding timer is canceled
// so no stale firing can mutate a stopped session, and the registry hook
// releases its handle.
func (s *Session) stopLocked() {
	s.state = StateStopped
	s.deps.Scheduler.CancelAll()
	s.deps.Sink.SetTopic(s.channel, "")
	s.deps.Logger.Info("session stopped", slog.String("channel", s.channel))
	if s.deps.OnStopped != nil {
		s.deps.OnStopped()
	}
}

// abortLocked stops the session on a fatal defect, such as running out of
// cards entirely. This indicates insufficient configured card content.
func (s *Session) abortLocked(err error) {
	s.deps.Logger.Error("session aborted",
		slog.String("channel", s.channel),
		slog.String("error", err.Error()),
	)
	s.announce("Game aborted: %s", err.Error())
	s.stopLocked()
}

// onStartDelay fires when the start window closes
func (s *Session) onStartDelay(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateStarted {
		return
	}
	if len(s.players) >= s.cfg.MinPlayers {
		s.advanceRoundLocked(ctx)
		return
	}
	s.enterWaitingLocked()
}

// onStopDelay fires when a short-handed session has waited long enough
func (s *Session) onStopDelay(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateWaiting {
		return
	}
	s.announce("Not enough players, stopping the game.")
	s.stopLocked()
}

// enterWaitingLocked parks the session until enough players join
func (s *Session) enterWaitingLocked() {
	s.state = StateWaiting
	s.announce("Waiting for players, %d more needed. Stopping in %d seconds unless people join.",
		s.cfg.MinPlayers-len(s.players), int(s.cfg.StopDelay.Seconds()))
	s.deps.Scheduler.After(TimerStop, s.cfg.StopDelay, func() {
		s.onStopDelay(context.Background())
	})
}

// findByNickLocked returns the roster member with the given nick, or nil
func (s *Session) findByNickLocked(nick string) *model.Player {
	for _, p := range s.players {
		if p.Identity.Nick == nick {
			return p
		}
	}
	return nil
}

// findByKeyLocked returns the roster member with the given identity key, or nil
func (s *Session) findByKeyLocked(key string) *model.Player {
	for _, p := range s.players {
		if p.Key() == key {
			return p
		}
	}
	return nil
}

func (s *Session) announce(format string, args ...any) {
	s.deps.Sink.Announce(s.channel, format, args...)
}
