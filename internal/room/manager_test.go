package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRoomAssignsHostAndUniqueID(t *testing.T) {
	m := NewManager()
	r, host, err := m.CreateRoom("alice", "conn-1", DefaultConfig())
	require.NoError(t, err)
	assert.Len(t, r.ID, 6)
	assert.True(t, host.IsHost)
	assert.Equal(t, r.HostID, host.ID)
}

func TestJoinRoomCreatesSpectator(t *testing.T) {
	m := NewManager()
	r, _, _ := m.CreateRoom("alice", "conn-1", DefaultConfig())

	got, p, reconnect, err := m.JoinRoom(r.ID, "bob", "conn-2", "")
	require.NoError(t, err)
	assert.False(t, reconnect)
	assert.Equal(t, Spectating, p.Status())
	assert.Same(t, r, got)
}

func TestJoinRoomReconnectsExistingPlayer(t *testing.T) {
	m := NewManager()
	r, _, _ := m.CreateRoom("alice", "conn-1", DefaultConfig())
	_, bob, _, _ := m.JoinRoom(r.ID, "bob", "conn-2", "")

	_, rejoined, reconnect, err := m.JoinRoom(r.ID, "bob", "conn-3", bob.ID)
	require.NoError(t, err)
	assert.True(t, reconnect)
	assert.Same(t, bob, rejoined)
	assert.Equal(t, "conn-3", bob.ConnectionID)
}

func TestJoinRoomNotFound(t *testing.T) {
	m := NewManager()
	_, _, _, err := m.JoinRoom("999999", "bob", "conn-2", "")
	require.Error(t, err)
	re, ok := err.(*RoomError)
	require.True(t, ok)
	assert.Equal(t, ErrRoomNotFound, re.Code)
	assert.True(t, re.ShouldClearSession)
}

func TestSitDownRejectsOccupiedSeat(t *testing.T) {
	m := NewManager()
	r, host, _ := m.CreateRoom("alice", "conn-1", DefaultConfig())
	_, bob, _, _ := m.JoinRoom(r.ID, "bob", "conn-2", "")

	require.NoError(t, m.SitDown(r, host.ID, 0))
	err := m.SitDown(r, bob.ID, 0)
	require.Error(t, err)
	assert.Equal(t, ErrSeatOccupied, err.(*RoomError).Code)
}

func TestSitDownGrantsInitialChips(t *testing.T) {
	m := NewManager()
	r, host, _ := m.CreateRoom("alice", "conn-1", DefaultConfig())
	require.NoError(t, m.SitDown(r, host.ID, 2))
	assert.Equal(t, r.Config.InitialChips, host.Chips)
	assert.Equal(t, Waiting, host.Status())
	assert.Equal(t, host.ID, r.SeatMap[2])
}

func TestStandUpRejectedDuringHand(t *testing.T) {
	m := NewManager()
	r, host, _ := m.CreateRoom("alice", "conn-1", DefaultConfig())
	require.NoError(t, m.SitDown(r, host.ID, 0))
	r.IsPlaying = true

	err := m.StandUp(r, host.ID)
	require.Error(t, err)
	assert.Equal(t, ErrGameInProgress, err.(*RoomError).Code)
}

func TestKickPlayerHostOnly(t *testing.T) {
	m := NewManager()
	r, host, _ := m.CreateRoom("alice", "conn-1", DefaultConfig())
	_, bob, _, _ := m.JoinRoom(r.ID, "bob", "conn-2", "")

	err := m.KickPlayer(r, bob.ID, host.ID)
	require.Error(t, err)
	assert.Equal(t, ErrNotHost, err.(*RoomError).Code)

	require.NoError(t, m.KickPlayer(r, host.ID, bob.ID))
	_, stillThere := r.Players[bob.ID]
	assert.False(t, stillThere)
}

func TestLeaveRoomTransfersHost(t *testing.T) {
	m := NewManager()
	r, host, _ := m.CreateRoom("alice", "conn-1", DefaultConfig())
	_, bob, _, _ := m.JoinRoom(r.ID, "bob", "conn-2", "")
	require.NoError(t, m.SitDown(r, bob.ID, 0))

	require.NoError(t, m.LeaveRoom(r, host.ID))
	assert.Equal(t, bob.ID, r.HostID)
}

func TestLeaveRoomDestroysEmptyRoom(t *testing.T) {
	m := NewManager()
	r, host, _ := m.CreateRoom("alice", "conn-1", DefaultConfig())
	require.NoError(t, m.LeaveRoom(r, host.ID))

	_, ok := m.Get(r.ID)
	assert.False(t, ok)
}

func TestRoomMarkProcessedRejectsDuplicates(t *testing.T) {
	r := NewRoom("123456", "host", DefaultConfig())
	assert.True(t, r.MarkProcessed("req-1"))
	assert.False(t, r.MarkProcessed("req-1"))
	assert.True(t, r.MarkProcessed("req-2"))
}
