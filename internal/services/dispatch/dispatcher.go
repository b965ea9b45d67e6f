// Package dispatch owns the one-session-per-channel registry and routes
// decoded commands and roster events into sessions.
package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mcoot/cardgame-go/internal/dependencies/clock"
	"github.com/mcoot/cardgame-go/internal/dependencies/random"
	"github.com/mcoot/cardgame-go/internal/dependencies/scheduler"
	"github.com/mcoot/cardgame-go/internal/messaging"
	"github.com/mcoot/cardgame-go/internal/model"
	"github.com/mcoot/cardgame-go/internal/services/cards"
	"github.com/mcoot/cardgame-go/internal/services/session"
	"github.com/mcoot/cardgame-go/internal/storage"
)

// Deps are the collaborators shared by every session the dispatcher creates
type Deps struct {
	Clock   clock.Clock
	Random  random.Random
	Sink    messaging.Sink
	Storage storage.Storage
	Cards   *cards.Service
	Logger  *slog.Logger

	// NewScheduler builds a scheduler per session, so stopping one
	// session cannot cancel another's timers.
	NewScheduler func() scheduler.Scheduler
}

// Dispatcher maps channels to running sessions and invokes session
// operations for decoded commands.
type Dispatcher struct {
	mu       sync.Mutex
	sessions map[string]*session.Session

	cfg  session.Config
	deps Deps
}

// New creates a dispatcher creating sessions with the given config
func New(cfg session.Config, deps Deps) *Dispatcher {
	return &Dispatcher{
		sessions: make(map[string]*session.Session),
		cfg:      cfg,
		deps:     deps,
	}
}

// Get returns the session running in the channel, or nil
func (d *Dispatcher) Get(channel string) *session.Session {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sessions[channel]
}

// Channels returns the channels with a running session
func (d *Dispatcher) Channels() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	channels := make([]string, 0, len(d.sessions))
	for channel := range d.sessions {
		channels = append(channels, channel)
	}
	return channels
}

// Dispatch routes a decoded command from the given actor to the channel's
// session. Rejections are messaged back to the actor and also returned.
func (d *Dispatcher) Dispatch(ctx context.Context, channel string, actor model.Identity, cmd Command) error {
	err := d.dispatch(ctx, channel, actor, cmd)
	if err != nil {
		d.deps.Sink.Private(actor.Nick, "%s", rejectionText(err))
	}
	return err
}

func (d *Dispatcher) dispatch(ctx context.Context, channel string, actor model.Identity, cmd Command) error {
	if cmd.Kind == CmdStart {
		return d.startSession(ctx, channel, actor)
	}

	sess := d.Get(channel)
	if sess == nil {
		return model.ErrNoSession
	}

	switch cmd.Kind {
	case CmdStop:
		sess.Stop(ctx)
		return nil
	case CmdPause:
		return sess.Pause(ctx)
	case CmdResume:
		return sess.Resume(ctx)
	case CmdJoin:
		return sess.Join(ctx, actor)
	case CmdQuit:
		sess.HandleLeave(ctx, actor.Nick, "quit the game")
		return nil
	case CmdPlay:
		return sess.PlayCard(ctx, actor.Nick, cmd.Indices)
	case CmdDiscard:
		return sess.Discard(ctx, actor.Nick, cmd.Indices)
	case CmdPick:
		// pick is play or winner selection depending on where the
		// round is
		if sess.State() == session.StatePlayed {
			if len(cmd.Indices) != 1 {
				return model.ErrNoSuchEntry
			}
			return sess.SelectWinner(ctx, actor.Nick, cmd.Indices[0])
		}
		return sess.PlayCard(ctx, actor.Nick, cmd.Indices)
	case CmdPlayers:
		sess.ListPlayers(ctx)
		return nil
	case CmdPoints:
		sess.ShowPoints(ctx)
		return nil
	case CmdStatus:
		sess.ShowStatus(ctx)
		return nil
	default:
		return model.ErrUnknownCommand
	}
}

// startSession creates and starts a session in the channel, joining the
// starter as its first player.
func (d *Dispatcher) startSession(ctx context.Context, channel string, actor model.Identity) error {
	d.mu.Lock()
	if _, ok := d.sessions[channel]; ok {
		d.mu.Unlock()
		return model.ErrSessionRunning
	}
	d.mu.Unlock()

	prompts, responses, err := d.deps.Cards.Cards()
	if err != nil {
		return err
	}

	deps := session.Deps{
		Clock:     d.deps.Clock,
		Random:    d.deps.Random,
		Scheduler: d.deps.NewScheduler(),
		Sink:      d.deps.Sink,
		Storage:   d.deps.Storage,
		Logger:    d.deps.Logger,
		OnStopped: func() { d.remove(channel) },
	}
	sess, err := session.New(ctx, channel, d.cfg, deps, prompts, responses)
	if err != nil {
		return err
	}

	d.mu.Lock()
	if _, ok := d.sessions[channel]; ok {
		d.mu.Unlock()
		return model.ErrSessionRunning
	}
	d.sessions[channel] = sess
	d.mu.Unlock()

	d.deps.Logger.Info("session created", slog.String("channel", channel))
	sess.Start(ctx)
	return sess.Join(ctx, actor)
}

// HandleRoster applies a roster change from the chat transport. Channel
// part and kick events target one session; a network quit hits them all.
func (d *Dispatcher) HandleRoster(ctx context.Context, ev RosterEvent) {
	switch ev.Kind {
	case RosterRenamed:
		for _, sess := range d.targets(ev.Channel) {
			sess.HandleRename(ev.Nick, ev.NewNick)
		}
	case RosterLeft, RosterKicked, RosterQuit:
		reason := string(ev.Kind) + " the channel"
		for _, sess := range d.targets(ev.Channel) {
			sess.HandleLeave(ctx, ev.Nick, reason)
		}
	}
}

func (d *Dispatcher) targets(channel string) []*session.Session {
	d.mu.Lock()
	defer d.mu.Unlock()
	if channel != "" {
		if sess, ok := d.sessions[channel]; ok {
			return []*session.Session{sess}
		}
		return nil
	}
	sessions := make([]*session.Session, 0, len(d.sessions))
	for _, sess := range d.sessions {
		sessions = append(sessions, sess)
	}
	return sessions
}

func (d *Dispatcher) remove(channel string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.sessions, channel)
}

// rejectionText maps sentinel errors to the message shown to the actor
func rejectionText(err error) string {
	switch {
	case errors.Is(err, model.ErrNoSession):
		return "There is no game running. Start one with !start."
	case errors.Is(err, model.ErrSessionRunning):
		return "A game is already running."
	case errors.Is(err, model.ErrPaused):
		return "The game is paused."
	case errors.Is(err, model.ErrNotPaused):
		return "The game is not paused."
	case errors.Is(err, model.ErrWrongState):
		return "You can't do that right now."
	case errors.Is(err, model.ErrIsJudge):
		return "You are the judge this round, sit tight."
	case errors.Is(err, model.ErrNotJudge):
		return "Only the judge can pick the winner."
	case errors.Is(err, model.ErrAlreadyPlayed):
		return "You already played this round."
	case errors.Is(err, model.ErrAlreadyDiscarded):
		return "You already discarded this round."
	case errors.Is(err, model.ErrWrongPickCount):
		return "That's the wrong number of cards for this prompt."
	case errors.Is(err, model.ErrInvalidIndex):
		return "One of those card numbers isn't in your hand."
	case errors.Is(err, model.ErrEmptyHand):
		return "You have no cards; you'll be dealt in next round."
	case errors.Is(err, model.ErrNotEnoughPoints):
		return "Discarding costs a point and you have none."
	case errors.Is(err, model.ErrNoSuchEntry):
		return "There's no entry with that number."
	case errors.Is(err, model.ErrAlreadyJoined):
		return "You're already in the game."
	case errors.Is(err, model.ErrIdleBanned):
		return "You've been removed for inactivity too many times."
	case errors.Is(err, model.ErrPlayerNotFound):
		return "You're not in the game. Join with !join."
	case errors.Is(err, model.ErrStopped):
		return "The game has stopped."
	default:
		return "Something went wrong: " + err.Error()
	}
}
