// Package gateway is the event gateway: the connection registry and
// privacy-enforcing projector described in SPEC_FULL.md §4.5. It receives
// inbound client messages, dispatches them onto the owning room's
// GameController, and fans versioned, per-connection-filtered snapshots
// back out.
package gateway

import "encoding/json"

// InboundType enumerates the client-originated message types.
type InboundType string

const (
	InCreateRoom   InboundType = "CREATE_ROOM"
	InJoinRoom     InboundType = "JOIN_ROOM"
	InSitDown      InboundType = "SIT_DOWN"
	InStandUp      InboundType = "STAND_UP"
	InStartGame    InboundType = "START_GAME"
	InPlayerAction InboundType = "PLAYER_ACTION"
	InPlayerReady  InboundType = "PLAYER_READY"
	InKickPlayer   InboundType = "KICK_PLAYER"
	InLeaveRoom    InboundType = "LEAVE_ROOM"
	InReconnect    InboundType = "RECONNECT"
)

// InboundMessage is the envelope every client frame is parsed into; Payload
// is re-unmarshaled into the concrete type for Type.
type InboundMessage struct {
	Type    InboundType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type createRoomPayload struct {
	HostNickname string `json:"hostNickname"`
	InitialChips int64  `json:"initialChips"`
	SmallBlind   int64  `json:"smallBlind"`
	BigBlind     int64  `json:"bigBlind"`
	MaxPlayers   int    `json:"maxPlayers"`
}

type joinRoomPayload struct {
	RoomID   string `json:"roomId"`
	Nickname string `json:"nickname"`
	PlayerID string `json:"playerId,omitempty"`
}

type sitDownPayload struct {
	SeatIndex int `json:"seatIndex"`
}

type playerActionPayload struct {
	Type       string `json:"type"`
	Amount     int64  `json:"amount,omitempty"`
	RoundIndex int    `json:"roundIndex"`
	RequestID  string `json:"requestId"`
}

type kickPlayerPayload struct {
	TargetPlayerID string `json:"targetPlayerId"`
}

type reconnectPayload struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

// OutboundType enumerates the server-originated event catalog.
type OutboundType string

const (
	OutRoomCreated        OutboundType = "ROOM_CREATED"
	OutRoomJoined         OutboundType = "ROOM_JOINED"
	OutRoomUpdated        OutboundType = "ROOM_UPDATED"
	OutPlayerJoined       OutboundType = "PLAYER_JOINED"
	OutPlayerLeft         OutboundType = "PLAYER_LEFT"
	OutPlayerSat          OutboundType = "PLAYER_SAT"
	OutPlayerStood        OutboundType = "PLAYER_STOOD"
	OutPlayerKicked       OutboundType = "PLAYER_KICKED"
	OutHostTransferred    OutboundType = "HOST_TRANSFERRED"
	OutGameStarted        OutboundType = "GAME_STARTED"
	OutSyncState          OutboundType = "SYNC_STATE"
	OutDealCards          OutboundType = "DEAL_CARDS"
	OutPlayerTurn         OutboundType = "PLAYER_TURN"
	OutPlayerActed        OutboundType = "PLAYER_ACTED"
	OutReadyStateChanged  OutboundType = "READY_STATE_CHANGED"
	OutHandResult         OutboundType = "HAND_RESULT"
	OutGameEnded          OutboundType = "GAME_ENDED"
	OutReconnected        OutboundType = "RECONNECTED"
	OutError              OutboundType = "ERROR"
)

// OutboundMessage is the envelope every server frame is sent as. StateVersion
// lets clients discard stale duplicates (SPEC_FULL.md §4.5).
type OutboundMessage struct {
	Type         OutboundType `json:"type"`
	StateVersion uint64       `json:"stateVersion"`
	Payload      any          `json:"payload,omitempty"`
}

type errorPayload struct {
	Code               string `json:"code"`
	Message            string `json:"message"`
	ShouldClearSession bool   `json:"shouldClearSession,omitempty"`
}
