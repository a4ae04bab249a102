package room

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Config holds the per-room tunables a host can override at creation time.
type Config struct {
	InitialChips       int64
	SmallBlind         int64
	BigBlind           int64
	MaxPlayers         int
	TurnTimeoutSeconds int
	InterHandDelay     time.Duration
}

// DefaultConfig matches SPEC_FULL.md §6's documented defaults.
func DefaultConfig() Config {
	return Config{
		InitialChips:       1000,
		SmallBlind:         5,
		BigBlind:           10,
		MaxPlayers:         6,
		TurnTimeoutSeconds: 30,
		InterHandDelay:     3 * time.Second,
	}
}

// requestIDCacheSize bounds the per-room idempotency LRU, per SPEC_FULL.md §5.
const requestIDCacheSize = 500

// Room is one table: its seat map, membership, and the hand currently in
// progress (if any). All mutation goes through a single sync.RWMutex,
// realizing the spec's "logical serial executor per room" as the teacher's
// Table does with its own mu.
type Room struct {
	ID        string
	HostID    string
	Config    Config
	CreatedAt time.Time

	Players map[string]*Player   // playerID -> player
	SeatMap []string             // seat index -> playerID, "" if empty
	Game    *GameState
	IsPlaying bool

	processed *lru.Cache[string, struct{}]

	Mu sync.RWMutex
}

// NewRoom creates an empty room with the given id/host/config.
func NewRoom(id, hostID string, cfg Config) *Room {
	cache, _ := lru.New[string, struct{}](requestIDCacheSize)
	return &Room{
		ID:        id,
		HostID:    hostID,
		Config:    cfg,
		CreatedAt: time.Now(),
		Players:   map[string]*Player{},
		SeatMap:   make([]string, cfg.MaxPlayers),
		Game:      NewGameState(),
		processed: cache,
	}
}

// MarkProcessed records a request id as handled. Returns false if it was
// already present (a duplicate that must be rejected without side effects).
func (r *Room) MarkProcessed(requestID string) bool {
	if _, ok := r.processed.Get(requestID); ok {
		return false
	}
	r.processed.Add(requestID, struct{}{})
	return true
}

// HasProcessed reports whether requestID has already been recorded, without
// recording it. Used to validate before mutating state.
func (r *Room) HasProcessed(requestID string) bool {
	_, ok := r.processed.Get(requestID)
	return ok
}

// RecordProcessed records requestID as handled. Called only once an action
// has been fully validated and applied.
func (r *Room) RecordProcessed(requestID string) {
	r.processed.Add(requestID, struct{}{})
}

// SeatedPlayers returns players currently occupying a seat, ordered by seat
// index.
func (r *Room) SeatedPlayers() []*Player {
	var out []*Player
	for _, id := range r.SeatMap {
		if id == "" {
			continue
		}
		if p, ok := r.Players[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// AllNonHostSeatedReady reports whether every seated player other than the
// host has marked themselves ready, per SPEC_FULL.md §4.3's ready model: the
// host may start a hand at will, but everyone else seated must opt in first.
// A room with no non-host seated players (e.g. the host is about to play
// alone against bots, or other seats are still empty) is vacuously ready.
func (r *Room) AllNonHostSeatedReady() bool {
	for _, p := range r.SeatedPlayers() {
		if p.ID == r.HostID {
			continue
		}
		if !p.IsReady {
			return false
		}
	}
	return true
}

// PlayerAtSeat returns the player at the given seat, or nil if empty.
func (r *Room) PlayerAtSeat(seat int) *Player {
	if seat < 0 || seat >= len(r.SeatMap) {
		return nil
	}
	id := r.SeatMap[seat]
	if id == "" {
		return nil
	}
	return r.Players[id]
}
