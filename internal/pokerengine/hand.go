package pokerengine

import (
	"sort"

	chehsunliu "github.com/chehsunliu/poker"
)

// Category is a poker hand category, ordered weakest to strongest.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// HandValue is the result of evaluating a 5-to-7 card hand. Score is a
// single totally ordered integer where a HIGHER value always wins.
// chehsunliu/poker's own Evaluate returns the inverse (lower is better,
// 1 = best possible hand), so Score is chehsunliuWorstRank minus
// chehsunliu's raw rank rather than a category/kicker positional encoding
// rebuilt independently — that keeps a single source of truth (the library)
// for ties and kicker ordering.
type HandValue struct {
	Category    Category
	Score       int64
	Description string
	Best        []Card
}

// chehsunliuWorstRank is larger than any rank chehsunliu/poker returns
// (its worst possible 5-card hand, 7462, is high card 7-5-4-3-2). Used to
// invert "lower is better" into "higher is better" while keeping the
// result strictly positive.
const chehsunliuWorstRank = 7463

// EvaluateBest scores the best possible hand from 5, 6, or 7 cards.
// chehsunliu/poker's Evaluate already finds the best 5-card combination
// internally when given 6 or 7 cards, so no combinatorial search is needed
// for the score itself; getBestFive below re-derives the winning subset
// only for display/showdown disclosure purposes.
func EvaluateBest(cards []Card) HandValue {
	ch := toChehsunliu(cards)
	rank := chehsunliu.Evaluate(ch)
	class := chehsunliu.RankClass(rank)
	category := categoryFromChehsunliuClass(class)
	if rank == 1 {
		// chehsunliu's best rank is the ace-high straight flush.
		category = RoyalFlush
	}

	score := int64(chehsunliuWorstRank) - int64(rank)

	best := cards
	if len(cards) > 5 {
		best = bestFiveSubset(cards, rank)
	}

	return HandValue{
		Category:    category,
		Score:       score,
		Description: chehsunliu.RankString(rank),
		Best:        best,
	}
}

func toChehsunliu(cards []Card) []chehsunliu.Card {
	out := make([]chehsunliu.Card, len(cards))
	for i, c := range cards {
		out[i] = chehsunliu.NewCard(c.chehsunliuString())
	}
	return out
}

// categoryFromChehsunliuClass maps chehsunliu's RankClass buckets (9 = high
// card down to 1 = straight flush, with royal flush folded into straight
// flush) onto the local Category enum. The class does not distinguish the
// royal flush; EvaluateBest splits it out by its rank (1, the best hand).
func categoryFromChehsunliuClass(class int32) Category {
	switch class {
	case 1:
		return StraightFlush
	case 2:
		return FourOfAKind
	case 3:
		return FullHouse
	case 4:
		return Flush
	case 5:
		return Straight
	case 6:
		return ThreeOfAKind
	case 7:
		return TwoPair
	case 8:
		return OnePair
	default:
		return HighCard
	}
}

// bestFiveSubset finds which 5-card subset of cards reproduces targetRank,
// for showdown disclosure / UI purposes. The score itself does not depend
// on this search.
func bestFiveSubset(cards []Card, targetRank int32) []Card {
	n := len(cards)
	indices := make([]int, 5)
	var result []Card

	var combo func(start, depth int)
	combo = func(start, depth int) {
		if result != nil {
			return
		}
		if depth == 5 {
			subset := make([]Card, 5)
			for i, idx := range indices {
				subset[i] = cards[idx]
			}
			if chehsunliu.Evaluate(toChehsunliu(subset)) == targetRank {
				result = subset
			}
			return
		}
		for i := start; i < n; i++ {
			indices[depth] = i
			combo(i+1, depth+1)
			if result != nil {
				return
			}
		}
	}
	combo(0, 0)
	if result == nil {
		// Should be unreachable for a valid 6/7-card hand; fall back to the
		// first five cards sorted high-to-low rather than panicking.
		sorted := append([]Card(nil), cards...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Rank > sorted[j].Rank })
		return sorted[:5]
	}
	return result
}

// CompareHands reports whether a beats b (strictly higher score).
func CompareHands(a, b HandValue) bool {
	return a.Score > b.Score
}
