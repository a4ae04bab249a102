package gateway

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/decred/slog"

	"github.com/Hana19951208/pocket-holdem-mvp/internal/game"
	"github.com/Hana19951208/pocket-holdem-mvp/internal/room"
)

// Conn is the minimal send capability the hub needs from a transport. The
// concrete websocket adapter lives in transport_ws.go; tests can supply a
// fake.
type Conn interface {
	ID() string
	Send(OutboundMessage)
}

type binding struct {
	conn     Conn
	roomID   string
	playerID string
}

// broadcastJob asks a worker to re-project and push the current snapshot of
// one room to every connection bound to it. Grounded on the teacher's
// EventProcessor/eventWorker buffered-channel fan-out (pkg/server/events.go).
type broadcastJob struct {
	roomID string
}

// Hub is the connection registry and event dispatcher. One Hub serves every
// room in the process.
type Hub struct {
	Rooms      *room.Manager
	Controller *game.Controller
	Log        slog.Logger

	mu       sync.RWMutex
	byConn   map[string]*binding   // connID -> binding
	byRoom   map[string][]string  // roomID -> []connID
	versions map[string]*uint64   // roomID -> stateVersion counter

	jobs chan broadcastJob
	wg   sync.WaitGroup
}

// NewHub builds a Hub with workerCount background broadcast workers and a
// queue depth of queueSize, matching the shape (if not the exact numbers) of
// the teacher's NewEventProcessor(server, 1000, 3).
func NewHub(rooms *room.Manager, ctrl *game.Controller, log slog.Logger, queueSize, workerCount int) *Hub {
	h := &Hub{
		Rooms:      rooms,
		Controller: ctrl,
		Log:        log,
		byConn:     map[string]*binding{},
		byRoom:     map[string][]string{},
		versions:   map[string]*uint64{},
		jobs:       make(chan broadcastJob, queueSize),
	}
	for i := 0; i < workerCount; i++ {
		h.wg.Add(1)
		go h.worker()
	}
	return h
}

func (h *Hub) worker() {
	defer h.wg.Done()
	for job := range h.jobs {
		h.broadcastRoom(job.roomID)
	}
}

// Close stops accepting new broadcast jobs and waits for workers to drain.
func (h *Hub) Close() {
	close(h.jobs)
	h.wg.Wait()
}

// Register binds a new, not-yet-identified connection.
func (h *Hub) Register(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.byConn[conn.ID()] = &binding{conn: conn}
}

// Unregister drops a connection. The bound player's ConnectionID is cleared
// so future actions for them time out and auto-act rather than erroring.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	b, ok := h.byConn[connID]
	if !ok {
		h.mu.Unlock()
		return
	}
	delete(h.byConn, connID)
	if b.roomID != "" {
		h.byRoom[b.roomID] = removeString(h.byRoom[b.roomID], connID)
	}
	h.mu.Unlock()

	if b.roomID == "" || b.playerID == "" {
		return
	}
	if r, ok := h.Rooms.Get(b.roomID); ok {
		r.Mu.Lock()
		if p, ok := r.Players[b.playerID]; ok {
			p.ConnectionID = ""
		}
		r.Mu.Unlock()
	}
}

func removeString(ss []string, s string) []string {
	out := ss[:0]
	for _, v := range ss {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

func (h *Hub) bind(connID, roomID, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, ok := h.byConn[connID]
	if !ok {
		return
	}
	if b.roomID != "" && b.roomID != roomID {
		h.byRoom[b.roomID] = removeString(h.byRoom[b.roomID], connID)
	}
	b.roomID = roomID
	b.playerID = playerID
	if _, exists := h.versions[roomID]; !exists {
		var v uint64
		h.versions[roomID] = &v
	}
	conns := h.byRoom[roomID]
	for _, id := range conns {
		if id == connID {
			return
		}
	}
	h.byRoom[roomID] = append(conns, connID)
}

func (h *Hub) sendTo(connID string, msg OutboundMessage) {
	h.mu.RLock()
	b, ok := h.byConn[connID]
	h.mu.RUnlock()
	if ok {
		b.conn.Send(msg)
	}
}

func (h *Hub) sendToPlayer(roomID, playerID string, msg OutboundMessage) {
	h.mu.RLock()
	conns := append([]string(nil), h.byRoom[roomID]...)
	h.mu.RUnlock()
	for _, connID := range conns {
		h.mu.RLock()
		b := h.byConn[connID]
		h.mu.RUnlock()
		if b != nil && b.playerID == playerID {
			b.conn.Send(msg)
		}
	}
}

// queueBroadcast enqueues a snapshot refresh for roomID without blocking the
// caller on projection/serialization work, matching the teacher's
// async-dispatch EventProcessor.
func (h *Hub) queueBroadcast(roomID string) {
	select {
	case h.jobs <- broadcastJob{roomID: roomID}:
	default:
		// Queue is saturated; drop and let the next natural broadcast catch
		// up — clients tolerate this because every snapshot carries the
		// authoritative stateVersion and a later one always supersedes it.
		h.Log.Warnf("gateway: broadcast queue full for room %s, dropping", roomID)
	}
}

func (h *Hub) nextVersion(roomID string) uint64 {
	h.mu.RLock()
	v, ok := h.versions[roomID]
	h.mu.RUnlock()
	if !ok {
		h.mu.Lock()
		v, ok = h.versions[roomID]
		if !ok {
			var n uint64
			v = &n
			h.versions[roomID] = v
		}
		h.mu.Unlock()
	}
	return atomic.AddUint64(v, 1)
}

func (h *Hub) broadcastRoom(roomID string) {
	r, ok := h.Rooms.Get(roomID)
	if !ok {
		return
	}
	version := h.nextVersion(roomID)

	h.mu.RLock()
	conns := append([]string(nil), h.byRoom[roomID]...)
	h.mu.RUnlock()

	r.Mu.RLock()
	defer r.Mu.RUnlock()
	for _, connID := range conns {
		h.mu.RLock()
		b := h.byConn[connID]
		h.mu.RUnlock()
		if b == nil {
			continue
		}
		snap := BuildSnapshot(r, b.playerID)
		b.conn.Send(OutboundMessage{Type: OutSyncState, StateVersion: version, Payload: snap})
	}
}

// SweepTimeouts scans every live room for a player whose turn deadline has
// passed and auto-acts for them (check if nothing is owed, fold otherwise).
// Intended to be called periodically by a ticker in cmd/pokerd; grounded on
// the teacher's own AutoStartDelay scheduling style but applied here to the
// per-action clock instead of the inter-hand one.
func (h *Hub) SweepTimeouts(now time.Time) {
	for _, r := range h.Rooms.Rooms() {
		r.Mu.Lock()
		due := r.IsPlaying && r.Game.HasCurrentPlayer && !now.Before(r.Game.TurnDeadline)
		if !due {
			r.Mu.Unlock()
			continue
		}
		events, err := h.Controller.HandleTimeout(r)
		r.Mu.Unlock()
		if err != nil {
			h.Log.Warnf("gateway: timeout handling failed for room %s: %v", r.ID, err)
			continue
		}
		h.dispatchEvents(r.ID, events)
	}
}

// sendError delivers a scoped ERROR to a single connection; errors never
// broadcast.
func (h *Hub) sendError(connID string, err error) {
	re, ok := err.(*room.RoomError)
	if !ok {
		h.sendTo(connID, OutboundMessage{Type: OutError, Payload: errorPayload{Code: "INTERNAL", Message: err.Error()}})
		return
	}
	h.sendTo(connID, OutboundMessage{Type: OutError, Payload: errorPayload{
		Code: string(re.Code), Message: re.Message, ShouldClearSession: re.ShouldClearSession,
	}})
}

// HandleInbound parses and dispatches one raw client frame from connID.
func (h *Hub) HandleInbound(connID string, raw []byte) {
	var msg InboundMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		h.sendTo(connID, OutboundMessage{Type: OutError, Payload: errorPayload{Code: "BAD_REQUEST", Message: "malformed message"}})
		return
	}

	switch msg.Type {
	case InCreateRoom:
		h.handleCreateRoom(connID, msg.Payload)
	case InJoinRoom:
		h.handleJoinRoom(connID, msg.Payload)
	case InSitDown:
		h.handleSitDown(connID, msg.Payload)
	case InStandUp:
		h.handleStandUp(connID)
	case InStartGame:
		h.handleStartGame(connID)
	case InPlayerAction:
		h.handlePlayerAction(connID, msg.Payload)
	case InPlayerReady:
		h.handlePlayerReady(connID)
	case InKickPlayer:
		h.handleKickPlayer(connID, msg.Payload)
	case InLeaveRoom:
		h.handleLeaveRoom(connID)
	case InReconnect:
		h.handleReconnect(connID, msg.Payload)
	default:
		h.sendTo(connID, OutboundMessage{Type: OutError, Payload: errorPayload{Code: "BAD_REQUEST", Message: "unknown message type"}})
	}
}

func (h *Hub) currentBinding(connID string) (*binding, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	b, ok := h.byConn[connID]
	return b, ok
}

// dispatchEvents translates and fans out domain events from GameController,
// then schedules a full snapshot refresh so every connection's view stays
// consistent even for fields not covered by a specific event.
func (h *Hub) dispatchEvents(roomID string, events []game.Event) {
	handEnded, gameEnded := false, false
	for _, ev := range events {
		switch ev.Type {
		case game.EventDealCards:
			p := ev.Payload.(game.DealCardsPayload)
			h.sendToPlayer(roomID, p.PlayerID, OutboundMessage{
				Type: OutDealCards, Payload: map[string]any{"holeCards": cardDTOs(p.HoleCards)},
			})
		case game.EventPlayerTurn:
			p := ev.Payload.(game.PlayerTurnPayload)
			h.broadcastAll(roomID, OutboundMessage{Type: OutPlayerTurn, Payload: map[string]any{
				"playerId": p.PlayerID, "seat": p.Seat, "deadline": p.Deadline,
			}})
		case game.EventPlayerActed:
			p := ev.Payload.(game.PlayerActedPayload)
			h.broadcastAll(roomID, OutboundMessage{Type: OutPlayerActed, Payload: map[string]any{
				"playerId": p.PlayerID, "type": p.Type, "amount": p.Amount,
			}})
		case game.EventHandResult:
			p := ev.Payload.(game.HandResultPayload)
			h.broadcastAll(roomID, OutboundMessage{Type: OutHandResult, Payload: projectHandResult(p)})
			handEnded = true
		case game.EventGameEnded:
			p := ev.Payload.(game.GameEndedPayload)
			h.broadcastAll(roomID, OutboundMessage{Type: OutGameEnded, Payload: map[string]any{"winnerPlayerId": p.WinnerPlayerID}})
			gameEnded = true
		case game.EventHostTransferred:
			p := ev.Payload.(game.HostTransferredPayload)
			h.broadcastAll(roomID, OutboundMessage{Type: OutHostTransferred, Payload: map[string]any{"newHostId": p.NewHostID}})
		case game.EventGameStarted:
			h.broadcastAll(roomID, OutboundMessage{Type: OutGameStarted})
		}
	}
	h.queueBroadcast(roomID)

	if handEnded && !gameEnded {
		h.scheduleNextHand(roomID)
	}
}

// scheduleNextHand auto-starts the next hand after the room's configured
// InterHandDelay, per SPEC_FULL.md §4.4.5. Unlike the host's explicit
// START_GAME command, this automatic continuation does not re-check
// AllNonHostSeatedReady: a session already in progress keeps dealing to its
// seated players without requiring them to re-confirm between every hand
// (see DESIGN.md's Open Question decision).
func (h *Hub) scheduleNextHand(roomID string) {
	r, ok := h.Rooms.Get(roomID)
	if !ok {
		return
	}
	delay := r.Config.InterHandDelay
	time.AfterFunc(delay, func() {
		r, ok := h.Rooms.Get(roomID)
		if !ok {
			return
		}
		r.Mu.Lock()
		if r.IsPlaying || len(r.SeatedPlayers()) < 2 {
			r.Mu.Unlock()
			return
		}
		events, err := h.Controller.StartHand(r)
		r.Mu.Unlock()
		if err != nil {
			h.Log.Warnf("gateway: auto-start next hand failed for room %s: %v", roomID, err)
			return
		}
		h.dispatchEvents(roomID, events)
	})
}

func (h *Hub) broadcastAll(roomID string, msg OutboundMessage) {
	h.mu.RLock()
	conns := append([]string(nil), h.byRoom[roomID]...)
	h.mu.RUnlock()
	msg.StateVersion = h.nextVersion(roomID)
	for _, connID := range conns {
		h.sendTo(connID, msg)
	}
}
