package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hana19951208/pocket-holdem-mvp/internal/room"
)

func newTestRoom(t *testing.T, numPlayers int) (*room.Manager, *room.Room, *Controller, []*room.Player) {
	t.Helper()
	mgr := room.NewManager()
	cfg := room.DefaultConfig()
	cfg.SmallBlind = 5
	cfg.BigBlind = 10
	cfg.MaxPlayers = 9

	r, host, err := mgr.CreateRoom("p0", "c0", cfg)
	require.NoError(t, err)
	require.NoError(t, mgr.SitDown(r, host.ID, 0))
	players := []*room.Player{host}

	for i := 1; i < numPlayers; i++ {
		_, p, _, err := mgr.JoinRoom(r.ID, "p", "c", "")
		require.NoError(t, err)
		require.NoError(t, mgr.SitDown(r, p.ID, i))
		players = append(players, p)
	}

	ctrl := &Controller{Manager: mgr, Rand: rand.New(rand.NewSource(1))}
	return mgr, r, ctrl, players
}

func requestID(tag string) string { return "req-" + tag }

func TestStartHandHeadsUpDealerIsSmallBlind(t *testing.T) {
	_, r, ctrl, players := newTestRoom(t, 2)

	_, err := ctrl.StartHand(r)
	require.NoError(t, err)

	dealer := r.Game.DealerSeat
	assert.Equal(t, dealer, r.Game.SmallBlindSeat)

	sbPlayer := r.PlayerAtSeat(r.Game.SmallBlindSeat)
	bbPlayer := r.PlayerAtSeat(r.Game.BigBlindSeat)
	assert.Equal(t, int64(5), sbPlayer.CurrentBet)
	assert.Equal(t, int64(10), bbPlayer.CurrentBet)
	assert.Len(t, players[0].HoleCards, 2)
}

func TestFoldChainEndsHandWithoutShowdown(t *testing.T) {
	_, r, ctrl, _ := newTestRoom(t, 3)
	_, err := ctrl.StartHand(r)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		actor := r.PlayerAtSeat(r.Game.CurrentPlayerSeat)
		events, err := ctrl.SubmitAction(r, Action{
			PlayerID: actor.ID, Type: ActionFold,
			RoundIndex: r.Game.RoundIndex, RequestID: requestID("fold-" + actor.ID),
		})
		require.NoError(t, err)
		if i == 1 {
			assertHasEventType(t, events, EventHandResult)
		}
	}

	assert.False(t, r.IsPlaying)
}

func TestCheckThroughToShowdown(t *testing.T) {
	_, r, ctrl, players := newTestRoom(t, 2)
	_, err := ctrl.StartHand(r)
	require.NoError(t, err)

	// Pre-flop: SB (dealer) must call the BB's extra 5, then BB checks.
	sb := r.PlayerAtSeat(r.Game.SmallBlindSeat)
	bb := r.PlayerAtSeat(r.Game.BigBlindSeat)

	_, err = ctrl.SubmitAction(r, Action{PlayerID: sb.ID, Type: ActionCall, RoundIndex: r.Game.RoundIndex, RequestID: requestID("1")})
	require.NoError(t, err)
	_, err = ctrl.SubmitAction(r, Action{PlayerID: bb.ID, Type: ActionCheck, RoundIndex: r.Game.RoundIndex, RequestID: requestID("2")})
	require.NoError(t, err)
	assert.Equal(t, room.Flop, r.Game.Phase)

	// Flop, turn, river: both check each street.
	for street := 0; street < 3; street++ {
		for i := 0; i < 2; i++ {
			actor := r.PlayerAtSeat(r.Game.CurrentPlayerSeat)
			_, err = ctrl.SubmitAction(r, Action{
				PlayerID: actor.ID, Type: ActionCheck,
				RoundIndex: r.Game.RoundIndex, RequestID: requestID(time.Now().String() + actor.ID),
			})
			require.NoError(t, err)
		}
	}

	assert.Equal(t, room.Idle, r.Game.Phase)
	assert.False(t, r.IsPlaying)
	_ = players
}

func TestRaiseClearsHasActedForOtherPlayers(t *testing.T) {
	_, r, ctrl, _ := newTestRoom(t, 3)
	_, err := ctrl.StartHand(r)
	require.NoError(t, err)

	firstActor := r.PlayerAtSeat(r.Game.CurrentPlayerSeat)
	_, err = ctrl.SubmitAction(r, Action{
		PlayerID: firstActor.ID, Type: ActionRaise, Amount: 30,
		RoundIndex: r.Game.RoundIndex, RequestID: requestID("raise"),
	})
	require.NoError(t, err)

	for _, p := range r.SeatedPlayers() {
		if p.ID == firstActor.ID {
			continue
		}
		if p.Status() == room.Active {
			assert.False(t, p.HasActed, "player %s should need to act again after the raise", p.ID)
		}
	}
}

func TestDuplicateRequestIDRejected(t *testing.T) {
	_, r, ctrl, _ := newTestRoom(t, 2)
	_, err := ctrl.StartHand(r)
	require.NoError(t, err)

	actor := r.PlayerAtSeat(r.Game.CurrentPlayerSeat)
	_, err = ctrl.SubmitAction(r, Action{PlayerID: actor.ID, Type: ActionCall, RoundIndex: r.Game.RoundIndex, RequestID: "dup"})
	require.NoError(t, err)

	_, err = ctrl.SubmitAction(r, Action{PlayerID: actor.ID, Type: ActionCheck, RoundIndex: r.Game.RoundIndex, RequestID: "dup"})
	require.Error(t, err)
	assert.Equal(t, room.ErrDuplicateRequest, err.(*room.RoomError).Code)
}

func TestStaleRoundIndexRejected(t *testing.T) {
	_, r, ctrl, _ := newTestRoom(t, 2)
	_, err := ctrl.StartHand(r)
	require.NoError(t, err)

	actor := r.PlayerAtSeat(r.Game.CurrentPlayerSeat)
	_, err = ctrl.SubmitAction(r, Action{
		PlayerID: actor.ID, Type: ActionCall,
		RoundIndex: r.Game.RoundIndex + 1, RequestID: "x",
	})
	require.Error(t, err)
	assert.Equal(t, room.ErrStaleRequest, err.(*room.RoomError).Code)
}

func TestNotYourTurnRejected(t *testing.T) {
	_, r, ctrl, players := newTestRoom(t, 3)
	_, err := ctrl.StartHand(r)
	require.NoError(t, err)

	var notActor *room.Player
	for _, p := range players {
		if p.SeatIndex != r.Game.CurrentPlayerSeat {
			notActor = p
			break
		}
	}
	_, err = ctrl.SubmitAction(r, Action{PlayerID: notActor.ID, Type: ActionFold, RoundIndex: r.Game.RoundIndex, RequestID: "x"})
	require.Error(t, err)
	assert.Equal(t, room.ErrNotYourTurn, err.(*room.RoomError).Code)
}

func TestTimeoutAutoFoldsWhenBetOwed(t *testing.T) {
	_, r, ctrl, _ := newTestRoom(t, 2)
	_, err := ctrl.StartHand(r)
	require.NoError(t, err)

	r.Game.TurnDeadline = time.Now().Add(-time.Second)
	events, err := ctrl.HandleTimeout(r)
	require.NoError(t, err)
	assertHasEventType(t, events, EventHandResult)
	assert.False(t, r.IsPlaying)
}

func TestSidePotWithAllIn(t *testing.T) {
	// Three-handed: seat0 = dealer (acts first pre-flop), seat1 = SB with a
	// short stack, seat2 = BB. seat0 raises big, the short stack can only
	// call all-in for less, and the BB calls in full, producing a main pot
	// all three are eligible for plus a side pot only seat0/seat2 can win.
	_, r, ctrl, players := newTestRoom(t, 3)
	players[1].Chips = 20

	// Put the previous button on seat 2 so rotation moves it to seat 0,
	// instead of relying on the random first-hand dealer pick.
	r.Game.HandNumber = 1
	r.Game.DealerSeat = 2

	_, err := ctrl.StartHand(r)
	require.NoError(t, err)
	require.Equal(t, 0, r.Game.CurrentPlayerSeat)

	_, err = ctrl.SubmitAction(r, Action{
		PlayerID: r.PlayerAtSeat(0).ID, Type: ActionRaise, Amount: 100,
		RoundIndex: r.Game.RoundIndex, RequestID: requestID("raise"),
	})
	require.NoError(t, err)

	_, err = ctrl.SubmitAction(r, Action{
		PlayerID: r.PlayerAtSeat(1).ID, Type: ActionAllIn,
		RoundIndex: r.Game.RoundIndex, RequestID: requestID("allin"),
	})
	require.NoError(t, err)
	assert.Equal(t, room.AllIn, players[1].Status())
	assert.Equal(t, int64(0), players[1].Chips)

	_, err = ctrl.SubmitAction(r, Action{
		PlayerID: r.PlayerAtSeat(2).ID, Type: ActionCall,
		RoundIndex: r.Game.RoundIndex, RequestID: requestID("call"),
	})
	require.NoError(t, err)

	require.Len(t, r.Game.Pots, 2)
	assert.Equal(t, int64(60), r.Game.Pots[0].Amount)
	assert.Len(t, r.Game.Pots[0].Eligible, 3)
	assert.Equal(t, int64(160), r.Game.Pots[1].Amount)
	assert.Len(t, r.Game.Pots[1].Eligible, 2)
	assert.False(t, r.Game.Pots[1].Eligible[players[1].ID])
	assert.Equal(t, room.Flop, r.Game.Phase)
}

func assertHasEventType(t *testing.T, events []Event, want EventType) {
	t.Helper()
	for _, e := range events {
		if e.Type == want {
			return
		}
	}
	t.Fatalf("expected an event of type %s, got %+v", want, events)
}
