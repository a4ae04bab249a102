package gateway

import (
	"encoding/json"

	"github.com/Hana19951208/pocket-holdem-mvp/internal/game"
	"github.com/Hana19951208/pocket-holdem-mvp/internal/room"
)

func (h *Hub) handleCreateRoom(connID string, raw json.RawMessage) {
	var p createRoomPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.sendTo(connID, OutboundMessage{Type: OutError, Payload: errorPayload{Code: "BAD_REQUEST", Message: "invalid CREATE_ROOM payload"}})
		return
	}

	cfg := h.Rooms.DefaultConfig
	if p.InitialChips > 0 {
		cfg.InitialChips = p.InitialChips
	}
	if p.SmallBlind > 0 {
		cfg.SmallBlind = p.SmallBlind
	}
	if p.BigBlind > 0 {
		cfg.BigBlind = p.BigBlind
	}
	if p.MaxPlayers > 0 {
		cfg.MaxPlayers = p.MaxPlayers
	}

	r, host, err := h.Rooms.CreateRoom(p.HostNickname, connID, cfg)
	if err != nil {
		h.sendError(connID, err)
		return
	}

	h.bind(connID, r.ID, host.ID)
	h.sendTo(connID, OutboundMessage{Type: OutRoomCreated, Payload: map[string]any{
		"roomId": r.ID, "playerId": host.ID,
	}})
	h.queueBroadcast(r.ID)
}

func (h *Hub) handleJoinRoom(connID string, raw json.RawMessage) {
	var p joinRoomPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.sendTo(connID, OutboundMessage{Type: OutError, Payload: errorPayload{Code: "BAD_REQUEST", Message: "invalid JOIN_ROOM payload"}})
		return
	}

	r, player, isReconnect, err := h.Rooms.JoinRoom(p.RoomID, p.Nickname, connID, p.PlayerID)
	if err != nil {
		h.sendError(connID, err)
		return
	}

	h.bind(connID, r.ID, player.ID)
	evType := OutRoomJoined
	if isReconnect {
		evType = OutReconnected
	}
	h.sendTo(connID, OutboundMessage{Type: evType, Payload: map[string]any{
		"roomId": r.ID, "playerId": player.ID,
	}})
	h.queueBroadcast(r.ID)
}

func (h *Hub) handleReconnect(connID string, raw json.RawMessage) {
	var p reconnectPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.sendTo(connID, OutboundMessage{Type: OutError, Payload: errorPayload{Code: "BAD_REQUEST", Message: "invalid RECONNECT payload"}})
		return
	}
	r, player, _, err := h.Rooms.JoinRoom(p.RoomID, "", connID, p.PlayerID)
	if err != nil {
		h.sendError(connID, err)
		return
	}
	h.bind(connID, r.ID, player.ID)
	h.sendTo(connID, OutboundMessage{Type: OutReconnected, Payload: map[string]any{
		"roomId": r.ID, "playerId": player.ID, "holeCards": cardDTOs(player.HoleCards),
	}})
	h.queueBroadcast(r.ID)
}

func (h *Hub) handleSitDown(connID string, raw json.RawMessage) {
	b, ok := h.requireBound(connID)
	if !ok {
		return
	}
	var p sitDownPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.sendTo(connID, OutboundMessage{Type: OutError, Payload: errorPayload{Code: "BAD_REQUEST", Message: "invalid SIT_DOWN payload"}})
		return
	}
	r, ok := h.Rooms.Get(b.roomID)
	if !ok {
		h.sendError(connID, &room.RoomError{Code: room.ErrRoomNotFound, Message: "room no longer exists", ShouldClearSession: true})
		return
	}
	if err := h.Rooms.SitDown(r, b.playerID, p.SeatIndex); err != nil {
		h.sendError(connID, err)
		return
	}
	h.queueBroadcast(r.ID)
}

func (h *Hub) handleStandUp(connID string) {
	b, ok := h.requireBound(connID)
	if !ok {
		return
	}
	r, ok := h.Rooms.Get(b.roomID)
	if !ok {
		return
	}
	if err := h.Rooms.StandUp(r, b.playerID); err != nil {
		h.sendError(connID, err)
		return
	}
	h.queueBroadcast(r.ID)
}

func (h *Hub) handleStartGame(connID string) {
	b, ok := h.requireBound(connID)
	if !ok {
		return
	}
	r, ok := h.Rooms.Get(b.roomID)
	if !ok {
		return
	}

	r.Mu.Lock()
	if r.HostID != b.playerID {
		r.Mu.Unlock()
		h.sendError(connID, &room.RoomError{Code: room.ErrNotHost, Message: "only the host can start the game"})
		return
	}
	if r.IsPlaying {
		r.Mu.Unlock()
		h.sendError(connID, &room.RoomError{Code: room.ErrGameAlreadyStarted, Message: "a hand is already in progress"})
		return
	}
	if !r.AllNonHostSeatedReady() {
		r.Mu.Unlock()
		h.sendError(connID, &room.RoomError{Code: room.ErrPlayersNotReady, Message: "all seated players must be ready before the host can start"})
		return
	}
	events, err := h.Controller.StartHand(r)
	r.Mu.Unlock()
	if err != nil {
		h.sendError(connID, err)
		return
	}
	h.dispatchEvents(r.ID, events)
}

func (h *Hub) handlePlayerAction(connID string, raw json.RawMessage) {
	b, ok := h.requireBound(connID)
	if !ok {
		return
	}
	var p playerActionPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.sendTo(connID, OutboundMessage{Type: OutError, Payload: errorPayload{Code: "BAD_REQUEST", Message: "invalid PLAYER_ACTION payload"}})
		return
	}
	r, ok := h.Rooms.Get(b.roomID)
	if !ok {
		return
	}

	r.Mu.Lock()
	events, err := h.Controller.SubmitAction(r, game.Action{
		PlayerID: b.playerID, Type: game.ActionType(p.Type), Amount: p.Amount,
		RoundIndex: p.RoundIndex, RequestID: p.RequestID,
	})
	r.Mu.Unlock()
	if err != nil {
		h.sendError(connID, err)
		return
	}

	// A hand might end on this action without needing another one to
	// follow it; dispatchEvents then schedules the next hand after the
	// configured inter-hand delay unless the game itself has ended.
	h.dispatchEvents(r.ID, events)
}

func (h *Hub) handlePlayerReady(connID string) {
	b, ok := h.requireBound(connID)
	if !ok {
		return
	}
	r, ok := h.Rooms.Get(b.roomID)
	if !ok {
		return
	}
	r.Mu.Lock()
	if p, ok := r.Players[b.playerID]; ok {
		p.IsReady = !p.IsReady
	}
	r.Mu.Unlock()
	h.broadcastAll(r.ID, OutboundMessage{Type: OutReadyStateChanged, Payload: map[string]any{"playerId": b.playerID}})
	h.queueBroadcast(r.ID)
}

func (h *Hub) handleKickPlayer(connID string, raw json.RawMessage) {
	b, ok := h.requireBound(connID)
	if !ok {
		return
	}
	var p kickPlayerPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.sendTo(connID, OutboundMessage{Type: OutError, Payload: errorPayload{Code: "BAD_REQUEST", Message: "invalid KICK_PLAYER payload"}})
		return
	}
	r, ok := h.Rooms.Get(b.roomID)
	if !ok {
		return
	}
	if err := h.Rooms.KickPlayer(r, b.playerID, p.TargetPlayerID); err != nil {
		h.sendError(connID, err)
		return
	}
	h.sendToPlayer(r.ID, p.TargetPlayerID, OutboundMessage{Type: OutPlayerKicked, Payload: map[string]any{"shouldClearSession": true}})
	h.queueBroadcast(r.ID)
}

func (h *Hub) handleLeaveRoom(connID string) {
	b, ok := h.requireBound(connID)
	if !ok {
		return
	}
	r, ok := h.Rooms.Get(b.roomID)
	if !ok {
		return
	}
	if err := h.Rooms.LeaveRoom(r, b.playerID); err != nil {
		h.sendError(connID, err)
		return
	}
	h.queueBroadcast(r.ID)
}

func (h *Hub) requireBound(connID string) (*binding, bool) {
	b, ok := h.currentBinding(connID)
	if !ok || b.roomID == "" || b.playerID == "" {
		h.sendTo(connID, OutboundMessage{Type: OutError, Payload: errorPayload{Code: "NOT_IN_ROOM", Message: "join a room first"}})
		return nil, false
	}
	return b, true
}
