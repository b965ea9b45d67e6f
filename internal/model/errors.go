package model

import "errors"

// Common errors used across the application
var (
	// Pool errors
	ErrEmptyPool  = errors.New("pool is empty")
	ErrOutOfCards = errors.New("pool and discard are both out of cards")

	// Hand errors
	ErrInvalidIndex = errors.New("invalid card index")

	// Session errors
	ErrWrongState          = errors.New("operation not allowed in current state")
	ErrPaused              = errors.New("session is paused")
	ErrNotPaused           = errors.New("session is not paused")
	ErrStopped             = errors.New("session is stopped")
	ErrIsJudge             = errors.New("the judge cannot act this round")
	ErrNotJudge            = errors.New("only the judge may select a winner")
	ErrAlreadyPlayed       = errors.New("player has already played this round")
	ErrAlreadyDiscarded    = errors.New("player has already discarded this round")
	ErrWrongPickCount      = errors.New("wrong number of cards for this prompt")
	ErrEmptyHand           = errors.New("player has no cards to play")
	ErrNotEnoughPoints     = errors.New("not enough points to discard")
	ErrNoSuchEntry         = errors.New("no entry with that number")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrAlreadyJoined       = errors.New("player has already joined")
	ErrIdleBanned          = errors.New("player is banned for repeated inactivity")

	// Dispatch errors
	ErrNoSession      = errors.New("no session running in this channel")
	ErrSessionRunning = errors.New("a session is already running in this channel")
	ErrUnknownCommand = errors.New("unknown command")
)
