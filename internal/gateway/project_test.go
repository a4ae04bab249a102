package gateway

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hana19951208/pocket-holdem-mvp/internal/game"
	"github.com/Hana19951208/pocket-holdem-mvp/internal/pokerengine"
	"github.com/Hana19951208/pocket-holdem-mvp/internal/room"
)

func TestBuildSnapshotHidesOtherPlayersHoleCards(t *testing.T) {
	mgr := room.NewManager()
	r, host, err := mgr.CreateRoom("alice", "c1", room.DefaultConfig())
	require.NoError(t, err)
	_, bob, _, err := mgr.JoinRoom(r.ID, "bob", "c2", "")
	require.NoError(t, err)
	require.NoError(t, mgr.SitDown(r, host.ID, 0))
	require.NoError(t, mgr.SitDown(r, bob.ID, 1))

	host.HoleCards = []pokerengine.Card{{Suit: pokerengine.Spades, Rank: pokerengine.RankAce}}
	bob.HoleCards = []pokerengine.Card{{Suit: pokerengine.Hearts, Rank: pokerengine.RankKing}}

	snapForHost := BuildSnapshot(r, host.ID)
	for _, pv := range snapForHost.Players {
		if pv.PlayerID == host.ID {
			assert.NotEmpty(t, pv.HoleCards)
		} else {
			assert.Empty(t, pv.HoleCards, "viewer must never see another player's hole cards")
		}
	}

	snapForSpectator := BuildSnapshot(r, "")
	for _, pv := range snapForSpectator.Players {
		assert.Empty(t, pv.HoleCards, "a viewer with no bound identity sees no hole cards at all")
	}
}

func TestProjectHandResultRoundTripsThroughJSON(t *testing.T) {
	payload := game.HandResultPayload{
		Awards: []pokerengine.Award{{PlayerID: "a", Amount: 100}},
		Showdown: []game.ShowdownEntry{
			{PlayerID: "a", HoleCards: []pokerengine.Card{{Suit: pokerengine.Spades, Rank: pokerengine.RankAce}}},
		},
		WentToShowdown: true,
	}
	result := projectHandResult(payload)
	assert.Equal(t, true, result["wentToShowdown"])

	encoded, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	showdown, ok := decoded["showdownCards"].([]any)
	require.True(t, ok)
	assert.Len(t, showdown, 1)
}
