package model

// Player is a roster member of a running session.
type Player struct {
	Identity Identity
	Hand     Hand
	Points   int

	IsJudge      bool
	HasPlayed    bool
	HasDiscarded bool

	// InactiveRounds counts consecutive rounds the player held cards but
	// did not play. Any player at 1 or more is removed during cleanup.
	InactiveRounds int

	// NeedsDeal marks a player who joined mid-round and has not been
	// dealt yet; they sit out until the next round starts.
	NeedsDeal bool
}

// NewPlayer creates a roster entry for the given identity.
func NewPlayer(identity Identity) *Player {
	return &Player{Identity: identity}
}

// Key returns the player's identity key.
func (p *Player) Key() string {
	return p.Identity.Key()
}

// CanPlay reports whether the player is eligible to submit an entry this
// round: dealt, not the judge, holding cards.
func (p *Player) CanPlay() bool {
	return !p.IsJudge && !p.NeedsDeal && p.Hand.Size() > 0
}
