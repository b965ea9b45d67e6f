package model

import "strings"

// CardKind distinguishes prompt cards from response cards
type CardKind string

const (
	KindPrompt   CardKind = "prompt"
	KindResponse CardKind = "response"
)

// BlankMarker is the fill-in-the-blank placeholder in prompt text
const BlankMarker = "%s"

// Card is a single card from a card set.
// Text is immutable content; Holder is the identity key of the player
// currently holding the card, empty while the card sits on a deck,
// discard pile, or the table. Only container moves change Holder.
type Card struct {
	Kind CardKind
	Text string

	// Prompt-only fields
	Pick int // response cards required to play this prompt
	Draw int // extra response cards dealt before play

	Holder string
}

// NewPrompt creates a prompt card. Pick defaults to 1 if not positive.
func NewPrompt(text string, pick, draw int) *Card {
	if pick < 1 {
		pick = 1
	}
	if draw < 0 {
		draw = 0
	}
	return &Card{Kind: KindPrompt, Text: text, Pick: pick, Draw: draw}
}

// NewResponse creates a response card.
func NewResponse(text string) *Card {
	return &Card{Kind: KindResponse, Text: text}
}

// FillBlanks substitutes the given answers into the prompt's blank markers.
// Prompts without markers get the answers appended after the text.
func (c *Card) FillBlanks(answers []string) string {
	if c.Kind != KindPrompt {
		return c.Text
	}
	if strings.Count(c.Text, BlankMarker) == 0 {
		return c.Text + " " + strings.Join(answers, ", ")
	}
	text := c.Text
	for _, a := range answers {
		text = strings.Replace(text, BlankMarker, a, 1)
	}
	return text
}
