package room

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"

	"github.com/google/uuid"
)

// Manager is the process-wide registry of live rooms. It is the only
// globally shared structure; individual room contents are only ever
// accessed through that room's own lock (see Room.Mu).
type Manager struct {
	// DefaultConfig seeds CreateRoom for callers that don't override every
	// field explicitly (the gateway's CREATE_ROOM handler only overrides
	// the fields a client actually supplied).
	DefaultConfig Config

	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewManager creates an empty room registry using the package default
// config as its seed for new rooms.
func NewManager() *Manager {
	return NewManagerWithDefaultConfig(DefaultConfig())
}

// NewManagerWithDefaultConfig creates an empty room registry that seeds
// CreateRoom with cfg instead of the package defaults, letting a deployment
// override blinds/stack/seat-count/timeouts process-wide via flags.
func NewManagerWithDefaultConfig(cfg Config) *Manager {
	return &Manager{DefaultConfig: cfg, rooms: map[string]*Room{}}
}

// Rooms returns a snapshot slice of every currently live room, used by the
// turn-timeout sweeper. Order is unspecified.
func (m *Manager) Rooms() []*Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	return out
}

// Get looks up a room by id.
func (m *Manager) Get(roomID string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[roomID]
	return r, ok
}

// CreateRoom allocates a new room with a unique 6-digit id and seats the
// creator as its host (as a spectator; they still need to SitDown).
func (m *Manager) CreateRoom(hostNickname, connectionID string, cfg Config) (*Room, *Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, err := m.newUniqueRoomIDLocked()
	if err != nil {
		return nil, nil, err
	}

	host := NewPlayer(uuid.NewString(), hostNickname, connectionID)
	host.IsHost = true

	r := NewRoom(id, host.ID, cfg)
	r.Players[host.ID] = host
	m.rooms[id] = r
	return r, host, nil
}

func (m *Manager) newUniqueRoomIDLocked() (string, error) {
	for attempt := 0; attempt < 100; attempt++ {
		n, err := rand.Int(rand.Reader, big.NewInt(1000000))
		if err != nil {
			return "", err
		}
		id := fmt.Sprintf("%06d", n.Int64())
		if _, exists := m.rooms[id]; !exists {
			return id, nil
		}
	}
	return "", fmt.Errorf("pocket-holdem: could not allocate a unique room id")
}

// JoinRoom adds a new spectating player to a room, or — when existingPlayerID
// is non-empty and known to the room — rebinds that player's connection and
// reports a reconnect instead of creating a new identity.
func (m *Manager) JoinRoom(roomID, nickname, connectionID, existingPlayerID string) (*Room, *Player, bool, error) {
	r, ok := m.Get(roomID)
	if !ok {
		return nil, nil, false, newClearingErr(ErrRoomNotFound, "no room with that id")
	}

	r.Mu.Lock()
	defer r.Mu.Unlock()

	if existingPlayerID != "" {
		if p, known := r.Players[existingPlayerID]; known {
			p.ConnectionID = connectionID
			return r, p, true, nil
		}
	}

	p := NewPlayer(uuid.NewString(), nickname, connectionID)
	r.Players[p.ID] = p
	return r, p, false, nil
}

// SitDown seats a player at the given seat index.
func (m *Manager) SitDown(r *Room, playerID string, seat int) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	p, ok := r.Players[playerID]
	if !ok {
		return newErr(ErrNotInRoom, "player is not a member of this room")
	}
	if seat < 0 || seat >= len(r.SeatMap) {
		return newErr(ErrInvalidSeatIndex, "seat index out of range")
	}
	if r.SeatMap[seat] != "" {
		return newErr(ErrSeatOccupied, "seat is already taken")
	}
	if p.IsSeated() {
		return newErr(ErrAlreadySeated, "player already has a seat")
	}

	r.SeatMap[seat] = playerID
	p.SitDown(seat, r.Config.InitialChips)
	return nil
}

// StandUp vacates a player's seat. Rejected while a hand is in progress;
// only disconnection is tolerated mid-hand.
func (m *Manager) StandUp(r *Room, playerID string) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	p, ok := r.Players[playerID]
	if !ok {
		return newErr(ErrNotInRoom, "player is not a member of this room")
	}
	if !p.IsSeated() {
		return newErr(ErrNotSeated, "player has no seat to stand up from")
	}
	if r.IsPlaying {
		return newErr(ErrGameInProgress, "cannot stand up while a hand is in progress")
	}

	r.SeatMap[p.SeatIndex] = ""
	p.StandUp()
	return nil
}

// KickPlayer removes a target player from the room. Host-only, and only
// while no hand is in progress.
func (m *Manager) KickPlayer(r *Room, hostID, targetID string) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.HostID != hostID {
		return newErr(ErrNotHost, "only the host can kick players")
	}
	if hostID == targetID {
		return newErr(ErrCannotKickSelf, "the host cannot kick themselves")
	}
	target, ok := r.Players[targetID]
	if !ok {
		return newErr(ErrTargetNotFound, "no such player in this room")
	}
	if r.IsPlaying {
		return newErr(ErrGameInProgress, "cannot kick players while a hand is in progress")
	}

	m.removePlayerLocked(r, target)
	return nil
}

// LeaveRoom removes a player from the room entirely, transferring hostship
// if they were the host. Rejected for a seated player mid-hand.
func (m *Manager) LeaveRoom(r *Room, playerID string) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	p, ok := r.Players[playerID]
	if !ok {
		return newErr(ErrNotInRoom, "player is not a member of this room")
	}
	if p.IsSeated() && r.IsPlaying {
		return newErr(ErrGameInProgress, "cannot leave while seated mid-hand; disconnect instead")
	}

	m.removePlayerLocked(r, p)
	return nil
}

// removePlayerLocked removes p from r, vacating its seat and transferring
// hostship if necessary. Caller must hold r.Mu.
func (m *Manager) removePlayerLocked(r *Room, p *Player) {
	if p.IsSeated() {
		r.SeatMap[p.SeatIndex] = ""
	}
	delete(r.Players, p.ID)

	if r.HostID == p.ID {
		m.transferHostLocked(r)
	}

	if len(r.Players) == 0 {
		m.mu.Lock()
		delete(m.rooms, r.ID)
		m.mu.Unlock()
	}
}

// transferHostLocked assigns hostship to the next remaining player, seated
// players preferred in seat order, falling back to any remaining member.
// Caller must hold r.Mu.
func (m *Manager) transferHostLocked(r *Room) {
	for _, id := range r.SeatMap {
		if id == "" {
			continue
		}
		if _, ok := r.Players[id]; ok {
			r.HostID = id
			return
		}
	}
	for id := range r.Players {
		r.HostID = id
		return
	}
	r.HostID = ""
}

// TransferHostIfEliminatedLocked moves hostship off an eliminated host,
// matching the observed teacher behavior of reassigning after a hand ends.
// Returns the new host id, or "" if nothing changed. Caller must hold r.Mu.
func (m *Manager) TransferHostIfEliminatedLocked(r *Room) string {
	host, ok := r.Players[r.HostID]
	if !ok || host.Status() != Eliminated {
		return ""
	}
	for _, p := range r.SeatedPlayers() {
		if p.ID != host.ID && p.Status() != Eliminated {
			r.HostID = p.ID
			return p.ID
		}
	}
	return ""
}
