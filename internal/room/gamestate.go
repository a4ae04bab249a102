package room

import (
	"time"

	"github.com/Hana19951208/pocket-holdem-mvp/internal/pokerengine"
)

// Phase is the current stage of a hand in progress.
type Phase string

const (
	Idle     Phase = "IDLE"
	PreFlop  Phase = "PRE_FLOP"
	Flop     Phase = "FLOP"
	Turn     Phase = "TURN"
	River    Phase = "RIVER"
	Showdown Phase = "SHOWDOWN"
)

// ActionRecord is one append-only entry in a hand's action history.
type ActionRecord struct {
	PlayerID  string
	Type      string
	Amount    int64
	Phase     Phase
	Timestamp time.Time
}

// GameState is the per-room state of a hand in progress. It is nil
// (or Phase == Idle) between hands.
type GameState struct {
	Phase          Phase
	CommunityCards []pokerengine.Card

	Pots []pokerengine.Pot

	CurrentPlayerSeat int
	HasCurrentPlayer  bool

	DealerSeat     int
	SmallBlindSeat int
	BigBlindSeat   int

	CurrentBet int64
	MinRaise   int64

	RoundIndex int

	TurnDeadline time.Time

	HandID  string
	RoundID string

	Deck *pokerengine.Deck

	HandNumber int

	ActionHistory []ActionRecord
}

// NewGameState starts a fresh, empty IDLE state.
func NewGameState() *GameState {
	return &GameState{Phase: Idle}
}
