package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityShuffle(n int) int {
	// j == i for every position leaves the order untouched
	return n - 1
}

func makeResponses(n int) []*Card {
	cards := make([]*Card, n)
	for i := range cards {
		cards[i] = NewResponse(string(rune('a' + i)))
	}
	return cards
}

func TestPoolDrawRemovesHead(t *testing.T) {
	pool := NewPool(makeResponses(3))

	card, err := pool.Draw()
	require.NoError(t, err)
	assert.Equal(t, "a", card.Text)
	assert.Equal(t, 2, pool.Len())
}

func TestPoolDrawEmptyFails(t *testing.T) {
	pool := NewPool(nil)

	_, err := pool.Draw()
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestPoolEnsureNonEmptyRecyclesDiscard(t *testing.T) {
	pool := NewPool(makeResponses(2))
	first, _ := pool.Draw()
	second, _ := pool.Draw()
	pool.AddToDiscard(first)
	pool.AddToDiscard(second)

	require.Equal(t, 0, pool.Len())
	require.Equal(t, 2, pool.DiscardLen())

	err := pool.EnsureNonEmpty(identityShuffle)
	require.NoError(t, err)
	assert.Equal(t, 2, pool.Len())
	assert.Equal(t, 0, pool.DiscardLen())
}

func TestPoolEnsureNonEmptyNoopWhenPopulated(t *testing.T) {
	pool := NewPool(makeResponses(2))

	err := pool.EnsureNonEmpty(identityShuffle)
	require.NoError(t, err)
	assert.Equal(t, 2, pool.Len())
}

func TestPoolEnsureNonEmptyFatalWhenAllExhausted(t *testing.T) {
	pool := NewPool(nil)

	err := pool.EnsureNonEmpty(identityShuffle)
	assert.ErrorIs(t, err, ErrOutOfCards)
}

func TestPoolAddToDiscardClearsHolder(t *testing.T) {
	pool := NewPool(nil)
	card := NewResponse("a")
	card.Holder = "somebody"

	pool.AddToDiscard(card)
	assert.Empty(t, card.Holder)
}

func TestPoolShuffleEmptyIsNoop(t *testing.T) {
	pool := NewPool(nil)
	pool.Shuffle(identityShuffle)
	assert.Equal(t, 0, pool.Len())
}

func TestPoolShuffleKeepsCards(t *testing.T) {
	pool := NewPool(makeResponses(5))
	pool.Shuffle(func(n int) int { return 0 })

	seen := make(map[string]bool)
	for pool.Len() > 0 {
		card, err := pool.Draw()
		require.NoError(t, err)
		seen[card.Text] = true
	}
	assert.Len(t, seen, 5)
}
