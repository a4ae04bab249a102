package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/Hana19951208/pocket-holdem-mvp/internal/room"
)

// HandleTimeout fires a synthetic CHECK-or-FOLD action for the current
// actor when their deadline has passed, per SPEC_FULL.md §4.4.6. Callers
// must hold r.Mu and should only invoke this after confirming
// r.Game.TurnDeadline has elapsed.
func (c *Controller) HandleTimeout(r *room.Room) ([]Event, error) {
	if r.Game == nil || !r.Game.HasCurrentPlayer {
		return nil, nil
	}
	if time.Now().Before(r.Game.TurnDeadline) {
		return nil, nil
	}

	p := r.PlayerAtSeat(r.Game.CurrentPlayerSeat)
	if p == nil {
		return nil, nil
	}

	action := Action{
		PlayerID:   p.ID,
		Type:       ActionFold,
		RoundIndex: r.Game.RoundIndex,
		RequestID:  "timeout-" + uuid.NewString(),
	}
	if p.CurrentBet == r.Game.CurrentBet {
		action.Type = ActionCheck
	}

	return c.SubmitAction(r, action)
}
