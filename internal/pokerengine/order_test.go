package pokerengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seats(n int, chips int64) []SeatState {
	s := make([]SeatState, n)
	for i := range s {
		s[i] = SeatState{Seat: Seat(i), Occupied: true, Chips: chips}
	}
	return s
}

func TestBlindSeatsHeadsUpDealerIsSmallBlind(t *testing.T) {
	s := seats(2, 1000)
	sb, bb, ok := BlindSeats(s, 0)
	require.True(t, ok)
	assert.Equal(t, Seat(0), sb)
	assert.Equal(t, Seat(1), bb)
}

func TestBlindSeatsThreeHanded(t *testing.T) {
	s := seats(3, 1000)
	sb, bb, ok := BlindSeats(s, 0)
	require.True(t, ok)
	assert.Equal(t, Seat(1), sb)
	assert.Equal(t, Seat(2), bb)
}

func TestBlindSeatsSkipsEliminatedSeats(t *testing.T) {
	s := seats(4, 1000)
	s[1].Chips = 0
	s[1].Eliminated = true
	sb, bb, ok := BlindSeats(s, 0)
	require.True(t, ok)
	assert.Equal(t, Seat(2), sb)
	assert.Equal(t, Seat(3), bb)
}

func TestFirstActorPreFlopThreeHanded(t *testing.T) {
	s := seats(3, 1000)
	include := func(ss SeatState) bool { return ss.Occupied && ss.Chips > 0 }
	actor, ok := FirstActor(s, 0, 2, true, include)
	require.True(t, ok)
	assert.Equal(t, Seat(0), actor) // wraps back to dealer in 3-handed (UTG = dealer here since SB=1,BB=2)
}

func TestFirstActorPostFlop(t *testing.T) {
	s := seats(3, 1000)
	include := func(ss SeatState) bool { return ss.Occupied && ss.Chips > 0 }
	actor, ok := FirstActor(s, 0, 2, false, include)
	require.True(t, ok)
	assert.Equal(t, Seat(1), actor)
}

func TestNextDealerSkipsBustedSeats(t *testing.T) {
	s := seats(4, 1000)
	s[1].Chips = 0
	s[1].Eliminated = true
	next, ok := NextDealer(s, 0)
	require.True(t, ok)
	assert.Equal(t, Seat(2), next)
}
