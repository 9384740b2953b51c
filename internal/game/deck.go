package game

import (
	"fmt"
	"math/rand"
)

// Deck is a cyclic, shuffled sequence over a set of cards.
// The position always lies in [0, len) while the deck is non-empty.
type Deck struct {
	cards []*Card
	pos   int
	rng   *rand.Rand
}

// NewDeck builds a deck in the given order. Duplicate card IDs are dropped.
// A nil rng gets a randomly seeded source.
func NewDeck(cards []*Card, rng *rand.Rand) *Deck {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	d := &Deck{rng: rng}
	for _, c := range cards {
		d.Add(c)
	}
	return d
}

// Len returns the number of cards in the deck.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Position returns the index of the current card.
func (d *Deck) Position() int {
	return d.pos
}

// Cards returns the deck order as a new slice.
func (d *Deck) Cards() []*Card {
	out := make([]*Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Shuffle randomizes the deck order and rewinds to the first card.
func (d *Deck) Shuffle() {
	// rand.Shuffle is a Fisher–Yates permutation.
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	d.pos = 0
}

// Rewind moves back to the first card without changing the order.
func (d *Deck) Rewind() {
	d.pos = 0
}

// Current returns the card at the current position.
func (d *Deck) Current() (*Card, error) {
	if len(d.cards) == 0 {
		return nil, ErrNoCards
	}
	return d.cards[d.pos], nil
}

// Advance moves to the next card. Running off the end reshuffles the deck
// and reports reshuffled = true.
func (d *Deck) Advance() (reshuffled bool, err error) {
	if len(d.cards) == 0 {
		return false, ErrNoCards
	}
	d.pos++
	if d.pos >= len(d.cards) {
		d.Shuffle()
		return true, nil
	}
	return false, nil
}

func (d *Deck) indexOf(card *Card) int {
	for i, c := range d.cards {
		if c.ID == card.ID {
			return i
		}
	}
	return -1
}

// Contains reports whether a card with the same ID is in the deck.
func (d *Deck) Contains(card *Card) bool {
	return card != nil && d.indexOf(card) >= 0
}

// Add appends the card unless one with the same ID is present.
func (d *Deck) Add(card *Card) bool {
	if card == nil || d.Contains(card) {
		return false
	}
	d.cards = append(d.cards, card)
	return true
}

// Remove deletes the card with the same ID. The position keeps pointing at
// the same upcoming card; removing the tail card at the position reshuffles.
func (d *Deck) Remove(card *Card) bool {
	if card == nil {
		return false
	}
	i := d.indexOf(card)
	if i < 0 {
		return false
	}
	d.cards = append(d.cards[:i], d.cards[i+1:]...)
	switch {
	case len(d.cards) == 0:
		d.pos = 0
	case i < d.pos:
		d.pos--
	case d.pos >= len(d.cards):
		d.Shuffle()
	}
	return true
}

func (d *Deck) String() string {
	return fmt.Sprintf("deck(%d cards, at %d)", len(d.cards), d.pos)
}
