// Package game implements the GameController: hand lifecycle, action
// validation, betting-round progression, and showdown settlement. It
// operates on a *room.Room under that room's own lock.
package game

import (
	"time"

	"github.com/Hana19951208/pocket-holdem-mvp/internal/pokerengine"
	"github.com/Hana19951208/pocket-holdem-mvp/internal/room"
)

// EventType names one of the domain events the controller can emit. The
// gateway translates these into the wire event catalog in SPEC_FULL.md §4.5,
// applying the hole-card projection rule along the way.
type EventType string

const (
	EventGameStarted      EventType = "GAME_STARTED"
	EventDealCards        EventType = "DEAL_CARDS"
	EventPlayerTurn       EventType = "PLAYER_TURN"
	EventPlayerActed      EventType = "PLAYER_ACTED"
	EventPhaseAdvanced    EventType = "PHASE_ADVANCED"
	EventHandResult       EventType = "HAND_RESULT"
	EventGameEnded        EventType = "GAME_ENDED"
	EventHostTransferred  EventType = "HOST_TRANSFERRED"
	EventSyncState        EventType = "SYNC_STATE"
)

// Event is one domain event produced by a GameController call. Payload is
// one of the concrete *Payload structs below.
type Event struct {
	Type    EventType
	Payload any
}

// DealCardsPayload is private to a single player: their own hole cards.
type DealCardsPayload struct {
	PlayerID  string
	HoleCards []pokerengine.Card
}

// PlayerTurnPayload announces whose turn it is and the deadline.
type PlayerTurnPayload struct {
	PlayerID string
	Seat     int
	Deadline time.Time
}

// PlayerActedPayload reports a completed action for broadcast.
type PlayerActedPayload struct {
	PlayerID string
	Type     string
	Amount   int64
}

// PhaseAdvancedPayload reports a new street being dealt.
type PhaseAdvancedPayload struct {
	Phase          room.Phase
	CommunityCards []pokerengine.Card
}

// ShowdownEntry is one participant's revealed hand at showdown.
type ShowdownEntry struct {
	PlayerID  string
	HoleCards []pokerengine.Card
	Category  pokerengine.Category
}

// HandResultPayload reports how a hand ended and who won what.
type HandResultPayload struct {
	Awards    []pokerengine.Award
	Showdown  []ShowdownEntry // empty when every other player folded
	WentToShowdown bool
}

// GameEndedPayload reports the overall winner of the game (one player left
// with chips).
type GameEndedPayload struct {
	WinnerPlayerID string
}

// HostTransferredPayload reports a new host.
type HostTransferredPayload struct {
	NewHostID string
}
