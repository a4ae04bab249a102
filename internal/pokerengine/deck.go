package pokerengine

import (
	"crypto/rand"
	"math/big"
	mathrand "math/rand"
)

// Deck is a shoe of cards with a cursor into the remaining portion.
type Deck struct {
	cards []Card
	pos   int
}

// NewShuffledDeck builds a full 52-card deck and shuffles it using a
// cryptographically strong source, matching the spec's CSPRNG recommendation.
func NewShuffledDeck() *Deck {
	d := newOrderedDeck()
	d.cryptoShuffle()
	return d
}

// NewDeckWithRand builds a full 52-card deck and shuffles it with the given
// deterministic source. Tests use this to get reproducible deals.
func NewDeckWithRand(rng *mathrand.Rand) *Deck {
	d := newOrderedDeck()
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	return d
}

func newOrderedDeck() *Deck {
	cards := make([]Card, 0, 52)
	for _, s := range AllSuits {
		for _, r := range AllRanks {
			cards = append(cards, Card{Suit: s, Rank: r})
		}
	}
	return &Deck{cards: cards}
}

func (d *Deck) cryptoShuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		jBig, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			// crypto/rand failure is unrecoverable for a fairness-critical
			// shuffle; fall back to a PRNG seeded from math/rand's global
			// source rather than leaving
			// the deck in a partially shuffled state.
			mathrand.New(mathrand.NewSource(mathrand.Int63())).Shuffle(i+1, func(a, b int) {
				d.cards[a], d.cards[b] = d.cards[b], d.cards[a]
			})
			return
		}
		j := int(jBig.Int64())
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Remaining is how many cards are left to draw.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.pos
}

// Draw removes and returns the next card. Panics if the shoe is empty; a
// correctly driven hand never exhausts the deck.
func (d *Deck) Draw() Card {
	if d.pos >= len(d.cards) {
		panic("pokerengine: deck exhausted")
	}
	c := d.cards[d.pos]
	d.pos++
	return c
}

// Burn discards the next card without revealing it.
func (d *Deck) Burn() {
	d.Draw()
}
