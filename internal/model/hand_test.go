package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeHand(texts ...string) *Hand {
	h := &Hand{}
	for _, text := range texts {
		h.Add(NewResponse(text), "owner")
	}
	return h
}

func handTexts(h *Hand) []string {
	texts := make([]string, 0, h.Size())
	for _, c := range h.Cards() {
		texts = append(texts, c.Text)
	}
	return texts
}

func TestHandAddSetsHolder(t *testing.T) {
	h := &Hand{}
	card := NewResponse("a")

	h.Add(card, "alice-key")
	assert.Equal(t, "alice-key", card.Holder)
	assert.Equal(t, 1, h.Size())
}

func TestHandPickRemovesExactlyThoseCards(t *testing.T) {
	h := makeHand("a", "b", "c", "d", "e")

	picked, err := h.Pick([]int{1, 3})
	require.NoError(t, err)

	require.Len(t, picked, 2)
	assert.Equal(t, "b", picked[0].Text)
	assert.Equal(t, "d", picked[1].Text)
	// Remaining cards keep their relative order
	assert.Equal(t, []string{"a", "c", "e"}, handTexts(h))
}

func TestHandPickPreservesSuppliedOrder(t *testing.T) {
	h := makeHand("a", "b", "c")

	picked, err := h.Pick([]int{2, 0})
	require.NoError(t, err)
	assert.Equal(t, "c", picked[0].Text)
	assert.Equal(t, "a", picked[1].Text)
}

func TestHandPickDeduplicatesIndices(t *testing.T) {
	h := makeHand("a", "b", "c")

	picked, err := h.Pick([]int{1, 1})
	require.NoError(t, err)
	assert.Len(t, picked, 1)
	assert.Equal(t, 2, h.Size())
}

func TestHandPickOutOfRangeLeavesHandUnmodified(t *testing.T) {
	h := makeHand("a", "b", "c")

	_, err := h.Pick([]int{0, 5})
	assert.ErrorIs(t, err, ErrInvalidIndex)
	assert.Equal(t, []string{"a", "b", "c"}, handTexts(h))
}

func TestHandPickNegativeIndexFails(t *testing.T) {
	h := makeHand("a", "b")

	_, err := h.Pick([]int{-1})
	assert.ErrorIs(t, err, ErrInvalidIndex)
	assert.Equal(t, 2, h.Size())
}

func TestHandPickEmptyIndicesFails(t *testing.T) {
	h := makeHand("a", "b")

	_, err := h.Pick(nil)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestHandPickAllEmptiesHand(t *testing.T) {
	h := makeHand("a", "b", "c")

	cards := h.PickAll()
	assert.Len(t, cards, 3)
	assert.Equal(t, 0, h.Size())
}

func TestHandPickedCardsKeepHolder(t *testing.T) {
	h := makeHand("a")

	picked, err := h.Pick([]int{0})
	require.NoError(t, err)
	assert.Equal(t, "owner", picked[0].Holder)
}
