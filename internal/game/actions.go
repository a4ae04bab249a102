package game

import (
	"time"

	"github.com/Hana19951208/pocket-holdem-mvp/internal/pokerengine"
	"github.com/Hana19951208/pocket-holdem-mvp/internal/room"
)

// ActionType is one of the five player actions the engine recognizes.
type ActionType string

const (
	ActionFold  ActionType = "FOLD"
	ActionCheck ActionType = "CHECK"
	ActionCall  ActionType = "CALL"
	ActionRaise ActionType = "RAISE"
	ActionAllIn ActionType = "ALL_IN"
)

// Action is one inbound player action request.
type Action struct {
	PlayerID   string
	Type       ActionType
	Amount     int64 // RAISE target total bet; ignored otherwise
	RoundIndex int
	RequestID  string
}

// SubmitAction validates and applies a player action, per the ordered
// pipeline in SPEC_FULL.md §4.4.2. Callers must hold r.Mu.
func (c *Controller) SubmitAction(r *room.Room, a Action) ([]Event, error) {
	if r.HasProcessed(a.RequestID) {
		return nil, &room.RoomError{Code: room.ErrDuplicateRequest, Message: "this action was already processed"}
	}
	if r.Game == nil || r.Game.Phase == room.Idle {
		return nil, &room.RoomError{Code: room.ErrNotYourTurn, Message: "no hand is in progress"}
	}
	if a.RoundIndex != r.Game.RoundIndex {
		return nil, &room.RoomError{Code: room.ErrStaleRequest, Message: "action refers to a round that has already ended"}
	}

	p, ok := r.Players[a.PlayerID]
	if !ok {
		return nil, &room.RoomError{Code: room.ErrNotInRoom, Message: "unknown player"}
	}
	if !p.IsSeated() || p.SeatIndex != r.Game.CurrentPlayerSeat || !r.Game.HasCurrentPlayer {
		return nil, &room.RoomError{Code: room.ErrNotYourTurn, Message: "it is not this player's turn"}
	}
	if !p.CanAct() {
		return nil, &room.RoomError{Code: room.ErrCannotAct, Message: "player cannot act right now"}
	}

	events, err := c.applyAction(r, p, a)
	if err != nil {
		return nil, err
	}
	r.RecordProcessed(a.RequestID)

	r.Game.ActionHistory = append(r.Game.ActionHistory, room.ActionRecord{
		PlayerID: p.ID, Type: string(a.Type), Amount: a.Amount, Phase: r.Game.Phase, Timestamp: time.Now(),
	})

	more, err := c.afterAction(r)
	if err != nil {
		return nil, err
	}
	return append(events, more...), nil
}

func (c *Controller) applyAction(r *room.Room, p *room.Player, a Action) ([]Event, error) {
	gs := r.Game

	switch a.Type {
	case ActionFold:
		p.Fold()
		return []Event{{Type: EventPlayerActed, Payload: PlayerActedPayload{PlayerID: p.ID, Type: string(ActionFold)}}}, nil

	case ActionCheck:
		if p.CurrentBet != gs.CurrentBet {
			return nil, &room.RoomError{Code: room.ErrCannotCheckMustCall, Message: "there is a bet to call"}
		}
		p.HasActed = true
		p.IsCurrentTurn = false
		return []Event{{Type: EventPlayerActed, Payload: PlayerActedPayload{PlayerID: p.ID, Type: string(ActionCheck)}}}, nil

	case ActionCall:
		owed := gs.CurrentBet - p.CurrentBet
		if owed <= 0 {
			return nil, &room.RoomError{Code: room.ErrNothingToCall, Message: "nothing to call; use check"}
		}
		paid := p.DeductChips(owed)
		p.HasActed = true
		p.IsCurrentTurn = false
		return []Event{{Type: EventPlayerActed, Payload: PlayerActedPayload{PlayerID: p.ID, Type: string(ActionCall), Amount: paid}}}, nil

	case ActionRaise:
		return c.applyRaise(r, p, a.Amount, false)

	case ActionAllIn:
		return c.applyRaise(r, p, p.CurrentBet+p.Chips, true)

	default:
		return nil, &room.RoomError{Code: room.ErrCannotAct, Message: "unknown action type"}
	}
}

// applyRaise handles both RAISE and ALL_IN (forceAllIn=true bypasses the
// minimum-raise-size check, since an all-in can be a short raise). target is
// the player's new total CurrentBet after the action.
func (c *Controller) applyRaise(r *room.Room, p *room.Player, target int64, forceAllIn bool) ([]Event, error) {
	gs := r.Game

	isWholeStack := target >= p.CurrentBet+p.Chips
	if isWholeStack {
		target = p.CurrentBet + p.Chips
	}

	if !forceAllIn && !isWholeStack && target < gs.CurrentBet+gs.MinRaise {
		return nil, &room.RoomError{Code: room.ErrRaiseTooSmall, Message: "raise is below the minimum"}
	}

	increment := target - p.CurrentBet
	if increment > p.Chips {
		return nil, &room.RoomError{Code: room.ErrNotEnoughChips, Message: "not enough chips for this raise"}
	}

	previousBet := gs.CurrentBet
	raiseSize := target - previousBet
	p.DeductChips(increment)
	p.HasActed = true
	p.IsCurrentTurn = false

	reopensAction := raiseSize >= gs.MinRaise
	if target > gs.CurrentBet {
		gs.CurrentBet = target
		if reopensAction {
			gs.MinRaise = raiseSize
			for _, other := range r.SeatedPlayers() {
				if other.ID == p.ID {
					continue
				}
				if other.Status() == room.Active || (other.Status() == room.AllIn && other.CurrentBet < gs.CurrentBet) {
					// Short all-ins below the minimum raise do not reopen
					// action for players who already acted (Open Question
					// decision, see DESIGN.md); a full raise does.
					other.HasActed = false
				}
			}
		}
	}

	actionType := ActionRaise
	if forceAllIn {
		actionType = ActionAllIn
	}
	return []Event{{Type: EventPlayerActed, Payload: PlayerActedPayload{PlayerID: p.ID, Type: string(actionType), Amount: increment}}}, nil
}

// afterAction checks whether the betting round (and possibly the hand) is
// complete, advancing state and producing further events as needed.
func (c *Controller) afterAction(r *room.Room) ([]Event, error) {
	active, _, _ := classify(r)

	if onlyOneRemains(r) {
		return c.settleSingleSurvivor(r)
	}

	if !roundComplete(r, active) {
		return c.advanceTurn(r, active)
	}

	return c.advancePhaseOrSettle(r)
}

func classify(r *room.Room) (active, allIn, folded []*room.Player) {
	for _, p := range r.SeatedPlayers() {
		switch p.Status() {
		case room.Active:
			active = append(active, p)
		case room.AllIn:
			allIn = append(allIn, p)
		case room.Folded:
			folded = append(folded, p)
		}
	}
	return
}

func onlyOneRemains(r *room.Room) bool {
	count := 0
	for _, p := range r.SeatedPlayers() {
		if p.Status() == room.Active || p.Status() == room.AllIn {
			count++
		}
	}
	return count == 1
}

// roundComplete reports whether every non-all-in participant has acted and
// is matched to the current bet.
func roundComplete(r *room.Room, active []*room.Player) bool {
	for _, p := range active {
		if !p.HasActed || p.CurrentBet != r.Game.CurrentBet {
			return false
		}
	}
	return true
}

func (c *Controller) advanceTurn(r *room.Room, active []*room.Player) ([]Event, error) {
	seats := toSeatStates(r)
	include := func(s pokerengine.SeatState) bool {
		p := r.PlayerAtSeat(int(s.Seat))
		return p != nil && p.Status() == room.Active
	}
	order := pokerengine.ActingOrderAfter(seats, pokerengine.Seat(r.Game.CurrentPlayerSeat), include)
	if len(order) == 0 {
		return c.advancePhaseOrSettle(r)
	}
	next := order[0]
	c.setCurrentActor(r, int(next))
	return []Event{{Type: EventPlayerTurn, Payload: PlayerTurnPayload{
		PlayerID: r.PlayerAtSeat(int(next)).ID,
		Seat:     int(next),
		Deadline: r.Game.TurnDeadline,
	}}}, nil
}
