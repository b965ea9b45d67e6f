package model

import "sort"

// Hand is the ordered sequence of cards held by one player.
type Hand struct {
	cards []*Card
}

// Add appends a card and marks it as held by the given identity key.
func (h *Hand) Add(card *Card, holderKey string) {
	card.Holder = holderKey
	h.cards = append(h.cards, card)
}

// Size returns the number of held cards.
func (h *Hand) Size() int {
	return len(h.cards)
}

// Cards returns the held cards in order. The slice is shared; callers must
// not mutate it.
func (h *Hand) Cards() []*Card {
	return h.cards
}

// Pick removes and returns the cards at the given indices, preserving the
// order the indices were supplied in. Duplicate indices are dropped; any
// out-of-range index fails the whole operation with ErrInvalidIndex and
// leaves the hand unmodified. Removed cards keep their holder set; the
// caller clears it when moving them to a discard pile or the table.
func (h *Hand) Pick(indices []int) ([]*Card, error) {
	uniq := make([]int, 0, len(indices))
	seen := make(map[int]bool, len(indices))
	for _, idx := range indices {
		if seen[idx] {
			continue
		}
		seen[idx] = true
		if idx < 0 || idx >= len(h.cards) {
			return nil, ErrInvalidIndex
		}
		uniq = append(uniq, idx)
	}
	if len(uniq) == 0 {
		return nil, ErrInvalidIndex
	}

	picked := make([]*Card, 0, len(uniq))
	for _, idx := range uniq {
		picked = append(picked, h.cards[idx])
	}

	// Remove from highest index down so earlier removals don't shift later ones
	removal := make([]int, len(uniq))
	copy(removal, uniq)
	sort.Sort(sort.Reverse(sort.IntSlice(removal)))
	for _, idx := range removal {
		h.cards = append(h.cards[:idx], h.cards[idx+1:]...)
	}

	return picked, nil
}

// PickAll removes and returns every held card.
func (h *Hand) PickAll() []*Card {
	cards := h.cards
	h.cards = nil
	return cards
}
