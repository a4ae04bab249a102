package pokerengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPotsSingleTierNoSidePot(t *testing.T) {
	contribs := []Contribution{
		{PlayerID: "a", Seat: 0, Total: 100},
		{PlayerID: "b", Seat: 1, Total: 100},
		{PlayerID: "c", Seat: 2, Total: 100},
	}
	pots := BuildPots(contribs)
	require.Len(t, pots, 1)
	assert.Equal(t, int64(300), pots[0].Amount)
	assert.Len(t, pots[0].Eligible, 3)
}

func TestBuildPotsSidePotFromShortAllIn(t *testing.T) {
	contribs := []Contribution{
		{PlayerID: "short", Seat: 0, Total: 50},
		{PlayerID: "b", Seat: 1, Total: 150},
		{PlayerID: "c", Seat: 2, Total: 150},
	}
	pots := BuildPots(contribs)
	require.Len(t, pots, 2)

	assert.Equal(t, int64(150), pots[0].Amount) // 50*3
	assert.Len(t, pots[0].Eligible, 3)

	assert.Equal(t, int64(200), pots[1].Amount) // 100*2
	assert.Len(t, pots[1].Eligible, 2)
	assert.False(t, pots[1].Eligible["short"])

	var sum int64
	for _, p := range pots {
		sum += p.Amount
	}
	assert.Equal(t, int64(350), sum)
}

func TestBuildPotsExcludesFoldedFromEligibility(t *testing.T) {
	contribs := []Contribution{
		{PlayerID: "folder", Seat: 0, Total: 100, Folded: true},
		{PlayerID: "b", Seat: 1, Total: 100},
	}
	pots := BuildPots(contribs)
	require.Len(t, pots, 1)
	assert.Equal(t, int64(200), pots[0].Amount)
	assert.False(t, pots[0].Eligible["folder"])
	assert.True(t, pots[0].Eligible["b"])
}

func TestBuildPotsAwardsTierToSmallestSeatWhenAllEligibleFolded(t *testing.T) {
	contribs := []Contribution{
		{PlayerID: "a", Seat: 0, Total: 100},
		{PlayerID: "b", Seat: 1, Total: 100, Folded: true},
		{PlayerID: "c", Seat: 2, Total: 200, Folded: true},
	}
	pots := BuildPots(contribs)
	require.Len(t, pots, 2)
	// Top tier (100-200 layer) has only "c" at/above it and "c" folded, so
	// it falls back to the smallest-seat-index non-folded contributor
	// overall: "a".
	assert.True(t, pots[1].Eligible["a"])
}

func TestAwardPotsSplitsTiedPotEvenly(t *testing.T) {
	contribs := []Contribution{
		{PlayerID: "a", Seat: 0, Total: 100},
		{PlayerID: "b", Seat: 1, Total: 100},
		{PlayerID: "c", Seat: 2, Total: 100},
	}
	pots := BuildPots(contribs)
	require.Len(t, pots, 1)
	// Pot of 300, "a" and "b" tied ahead of "c": 150 each, no remainder.
	tie := map[string]HandValue{
		"a": {Category: OnePair, Score: 500},
		"b": {Category: OnePair, Score: 500},
		"c": {Category: HighCard, Score: 100},
	}
	awards := AwardPots(pots, tie)
	total := map[string]int64{}
	for _, a := range awards {
		total[a.PlayerID] = a.Amount
	}
	assert.Equal(t, int64(150), total["a"])
	assert.Equal(t, int64(150), total["b"])
	assert.Equal(t, int64(0), total["c"])
}

func TestAwardPotsRemainderGoesToSmallestSeatIndex(t *testing.T) {
	contribs := []Contribution{
		{PlayerID: "a", Seat: 0, Total: 101},
		{PlayerID: "b", Seat: 1, Total: 101},
		{PlayerID: "c", Seat: 2, Total: 101},
	}
	pots := BuildPots(contribs)
	require.Len(t, pots, 1)
	assert.Equal(t, int64(303), pots[0].Amount)

	tie := map[string]HandValue{
		"a": {Score: 500}, "b": {Score: 500}, "c": {Score: 100},
	}
	awards := AwardPots(pots, tie)
	total := map[string]int64{}
	for _, a := range awards {
		total[a.PlayerID] = a.Amount
	}
	assert.Equal(t, int64(303), total["a"]+total["b"]+total["c"])
	assert.Equal(t, int64(152), total["a"])
	assert.Equal(t, int64(151), total["b"])
	assert.Equal(t, int64(0), total["c"])
}
