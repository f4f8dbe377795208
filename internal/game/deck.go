package game

import (
	"fmt"
	"math/rand"
)

// NewDeck returns the 52 distinct cards, suit by suit, ranks ascending.
func NewDeck() []Card {
	deck := make([]Card, 0, len(Suits)*len(Ranks))
	for _, s := range Suits {
		for _, r := range Ranks {
			deck = append(deck, NewCard(s, r))
		}
	}
	return deck
}

// Shuffle permutes deck in place. rand.Shuffle is an unbiased Fisher-Yates.
func Shuffle(deck []Card, rng *rand.Rand) {
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}

// ParseCard resolves a composite id such as "spadeA" or "heart10".
func ParseCard(id string) (Card, error) {
	for _, s := range Suits {
		if len(id) <= len(s) || id[:len(s)] != string(s) {
			continue
		}
		r := Rank(id[len(s):])
		if r.Strength() < 0 {
			break
		}
		return NewCard(s, r), nil
	}
	return Card{}, fmt.Errorf("%w: %q", ErrUnknownCard, id)
}

func indexOf(hand []Card, id string) int {
	for i, c := range hand {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func removeAt(hand []Card, i int) []Card {
	out := make([]Card, 0, len(hand)-1)
	out = append(out, hand[:i]...)
	return append(out, hand[i+1:]...)
}
