package room

import (
	"github.com/Hana19951208/pocket-holdem-mvp/internal/pokerengine"
	"github.com/Hana19951208/pocket-holdem-mvp/internal/statemachine"
)

// Status is a player's lifecycle state within a room.
type Status string

const (
	Spectating Status = "SPECTATING"
	Waiting    Status = "WAITING"
	Active     Status = "ACTIVE"
	Folded     Status = "FOLDED"
	AllIn      Status = "ALL_IN"
	Eliminated Status = "ELIMINATED"
)

var (
	stateSpectating = statemachine.Named[Player]{Name: string(Spectating)}
	stateWaiting    = statemachine.Named[Player]{Name: string(Waiting)}
	stateActive     = statemachine.Named[Player]{Name: string(Active)}
	stateFolded     = statemachine.Named[Player]{Name: string(Folded)}
	stateAllIn      = statemachine.Named[Player]{Name: string(AllIn)}
	stateEliminated = statemachine.Named[Player]{Name: string(Eliminated)}
)

// Player is one seat occupant's full state: identity, economics, per-hand
// flags, social flags, and connection binding. Status transitions are
// driven explicitly by Room/GameController methods through TransitionTo.
type Player struct {
	ID       string
	Nickname string

	SeatIndex int // -1 when unseated
	IsHost    bool
	IsReady   bool

	Chips            int64
	CurrentBet       int64
	TotalBetThisHand int64

	HoleCards []pokerengine.Card

	HasActed      bool
	IsCurrentTurn bool
	IsDealer      bool

	ConnectionID string // "" when disconnected

	sm *statemachine.StateMachine[Player]
}

// NewPlayer creates a spectating player with no seat and no chips.
func NewPlayer(id, nickname, connectionID string) *Player {
	p := &Player{
		ID:           id,
		Nickname:     nickname,
		SeatIndex:    -1,
		ConnectionID: connectionID,
	}
	p.sm = statemachine.NewStateMachine(p, stateSpectating)
	return p
}

// Status returns the player's current lifecycle status.
func (p *Player) Status() Status {
	return Status(p.sm.Name())
}

func (p *Player) setStatus(s Status) {
	named := map[Status]statemachine.Named[Player]{
		Spectating: stateSpectating,
		Waiting:    stateWaiting,
		Active:     stateActive,
		Folded:     stateFolded,
		AllIn:      stateAllIn,
		Eliminated: stateEliminated,
	}[s]
	p.sm.TransitionTo(named)
}

// SitDown seats the player and grants the starting stack.
func (p *Player) SitDown(seat int, startingChips int64) {
	p.SeatIndex = seat
	p.Chips = startingChips
	p.setStatus(Waiting)
}

// StandUp clears the player's seat and per-hand state.
func (p *Player) StandUp() {
	p.SeatIndex = -1
	p.HoleCards = nil
	p.CurrentBet = 0
	p.TotalBetThisHand = 0
	p.HasActed = false
	p.IsCurrentTurn = false
	p.IsDealer = false
	p.setStatus(Spectating)
}

// IsSeated reports whether the player currently occupies a seat.
func (p *Player) IsSeated() bool {
	return p.SeatIndex >= 0
}

// DeductChips removes up to n chips (clamped to the player's stack) and
// credits it to CurrentBet/TotalBetThisHand, transitioning to ALL_IN when
// the stack reaches zero. Returns the amount actually deducted.
func (p *Player) DeductChips(n int64) int64 {
	actual := n
	if actual > p.Chips {
		actual = p.Chips
	}
	p.Chips -= actual
	p.CurrentBet += actual
	p.TotalBetThisHand += actual
	if p.Chips == 0 {
		p.setStatus(AllIn)
	}
	return actual
}

// AddChips credits the player, used only by pot awarding.
func (p *Player) AddChips(n int64) {
	p.Chips += n
}

// Fold marks the player as folded for the remainder of the hand.
func (p *Player) Fold() {
	p.HasActed = true
	p.IsCurrentTurn = false
	p.setStatus(Folded)
}

// AllInAction commits the player's entire remaining stack.
func (p *Player) AllInAction() int64 {
	return p.DeductChips(p.Chips)
}

// ResetForNewHand clears all per-hand state and puts the player back into
// ACTIVE standing ahead of a fresh deal. Callers are responsible for
// checking Chips > 0 first and calling MarkEliminated instead when not.
func (p *Player) ResetForNewHand() {
	p.HoleCards = nil
	p.CurrentBet = 0
	p.TotalBetThisHand = 0
	p.HasActed = false
	p.IsCurrentTurn = false
	p.IsDealer = false
	p.IsReady = false
	p.setStatus(Active)
}

// MarkEliminated transitions a zero-chip player out of the hand rotation.
func (p *Player) MarkEliminated() {
	p.setStatus(Eliminated)
}

// ResetForNewRound clears the per-betting-round fields (current bet and
// acted flag) while leaving TotalBetThisHand and hole cards untouched.
func (p *Player) ResetForNewRound() {
	p.CurrentBet = 0
	p.HasActed = false
	p.IsCurrentTurn = false
}

// CanAct reports whether the player may currently take a turn action.
func (p *Player) CanAct() bool {
	st := p.Status()
	return p.IsSeated() && (st == Active) && p.IsCurrentTurn
}
