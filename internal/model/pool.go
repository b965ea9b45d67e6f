package model

// Pool is an ordered, drawable collection of cards with a paired discard
// pile. A card is never in the pool and the discard at the same time; the
// session moves cards between containers one at a time.
type Pool struct {
	cards   []*Card
	discard []*Card
}

// NewPool creates a pool over the given cards. The slice is copied so the
// caller's card-set collections are not disturbed by shuffling.
func NewPool(cards []*Card) *Pool {
	p := &Pool{cards: make([]*Card, len(cards))}
	copy(p.cards, cards)
	return p
}

// Len returns the number of drawable cards.
func (p *Pool) Len() int {
	return len(p.cards)
}

// DiscardLen returns the number of cards on the discard pile.
func (p *Pool) DiscardLen() int {
	return len(p.discard)
}

// Shuffle randomizes draw order using the given [0,n) source.
// Shuffling an empty pool is a no-op.
func (p *Pool) Shuffle(intn func(n int) int) {
	for i := len(p.cards) - 1; i > 0; i-- {
		j := intn(i + 1)
		p.cards[i], p.cards[j] = p.cards[j], p.cards[i]
	}
}

// Draw removes and returns the head card. Callers are expected to call
// EnsureNonEmpty first; ErrEmptyPool here is a programming error, not a
// control-flow signal.
func (p *Pool) Draw() (*Card, error) {
	if len(p.cards) == 0 {
		return nil, ErrEmptyPool
	}
	card := p.cards[0]
	p.cards = p.cards[1:]
	return card, nil
}

// EnsureNonEmpty recycles the discard pile into the pool when the pool has
// run dry, reshuffling the recycled cards. If the discard is empty too the
// configured card content was insufficient and ErrOutOfCards is returned;
// the session treats that as fatal.
func (p *Pool) EnsureNonEmpty(intn func(n int) int) error {
	if len(p.cards) > 0 {
		return nil
	}
	if len(p.discard) == 0 {
		return ErrOutOfCards
	}
	p.cards = p.discard
	p.discard = nil
	p.Shuffle(intn)
	return nil
}

// AddToDiscard appends a card to the discard pile, clearing its holder.
func (p *Pool) AddToDiscard(card *Card) {
	card.Holder = ""
	p.discard = append(p.discard, card)
}
