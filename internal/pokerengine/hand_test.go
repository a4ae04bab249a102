package pokerengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func c(rank int, suit Suit) Card { return Card{Suit: suit, Rank: rank} }

func TestEvaluateBestRanksCategoriesCorrectly(t *testing.T) {
	royal := []Card{
		c(RankAce, Spades), c(RankKing, Spades), c(RankQueen, Spades),
		c(RankJack, Spades), c(RankTen, Spades),
		c(RankTwo, Hearts), c(RankThree, Clubs),
	}
	pair := []Card{
		c(RankTwo, Spades), c(RankTwo, Hearts), c(RankFive, Clubs),
		c(RankNine, Diamonds), c(RankJack, Spades),
		c(RankThree, Hearts), c(RankFour, Clubs),
	}

	royalValue := EvaluateBest(royal)
	pairValue := EvaluateBest(pair)

	assert.Equal(t, RoyalFlush, royalValue.Category)
	assert.Equal(t, OnePair, pairValue.Category)
	assert.True(t, CompareHands(royalValue, pairValue))
}

func TestWheelStraightRanksBelowSixHighStraight(t *testing.T) {
	wheel := []Card{
		c(RankAce, Spades), c(RankTwo, Hearts), c(RankThree, Clubs),
		c(RankFour, Diamonds), c(RankFive, Spades),
		c(RankNine, Hearts), c(RankKing, Clubs),
	}
	sixHigh := []Card{
		c(RankTwo, Spades), c(RankThree, Hearts), c(RankFour, Clubs),
		c(RankFive, Diamonds), c(RankSix, Spades),
		c(RankNine, Hearts), c(RankKing, Clubs),
	}

	wheelValue := EvaluateBest(wheel)
	sixHighValue := EvaluateBest(sixHigh)

	assert.Equal(t, Straight, wheelValue.Category)
	assert.Equal(t, Straight, sixHighValue.Category)
	assert.True(t, CompareHands(sixHighValue, wheelValue))
}

func TestEvaluateBestIsDeterministic(t *testing.T) {
	hand := []Card{
		c(RankAce, Spades), c(RankAce, Hearts), c(RankKing, Clubs),
		c(RankKing, Diamonds), c(RankTwo, Spades),
		c(RankNine, Hearts), c(RankFour, Clubs),
	}

	a := EvaluateBest(hand)
	b := EvaluateBest(hand)
	assert.Equal(t, a.Score, b.Score)
	assert.Equal(t, a.Category, b.Category)
}

func TestBestFiveSubsetEvaluatesToSameScore(t *testing.T) {
	hand := []Card{
		c(RankAce, Spades), c(RankAce, Hearts), c(RankKing, Clubs),
		c(RankKing, Diamonds), c(RankTwo, Spades),
		c(RankNine, Hearts), c(RankFour, Clubs),
	}

	full := EvaluateBest(hand)
	best5 := EvaluateBest(full.Best)

	assert.Len(t, full.Best, 5)
	assert.Equal(t, full.Score, best5.Score)
}
