package game

import (
	"github.com/Hana19951208/pocket-holdem-mvp/internal/pokerengine"
	"github.com/Hana19951208/pocket-holdem-mvp/internal/room"
)

// nextStreet maps each phase to the one after it in the hand lifecycle.
func nextStreet(p room.Phase) room.Phase {
	switch p {
	case room.PreFlop:
		return room.Flop
	case room.Flop:
		return room.Turn
	case room.Turn:
		return room.River
	default:
		return room.Showdown
	}
}

// advancePhaseOrSettle is called once a betting round is complete with more
// than one live (non-folded) player remaining. It rolls bets into the pots,
// deals the next street (skipping straight to showdown when at most one
// live player is not all-in), and arms the first actor of the new round —
// or settles the hand if showdown is reached. Per SPEC_FULL.md §4.4.4.
func (c *Controller) advancePhaseOrSettle(r *room.Room) ([]Event, error) {
	rebuildPots(r)

	for _, p := range r.SeatedPlayers() {
		if p.Status() == room.Active || p.Status() == room.AllIn {
			p.ResetForNewRound()
		}
	}

	liveNonAllIn := 0
	for _, p := range r.SeatedPlayers() {
		if p.Status() == room.Active {
			liveNonAllIn++
		}
	}

	phase := nextStreet(r.Game.Phase)
	if liveNonAllIn <= 1 {
		phase = room.Showdown
	}

	var events []Event
	switch phase {
	case room.Flop:
		r.Game.Deck.Burn()
		r.Game.CommunityCards = append(r.Game.CommunityCards, r.Game.Deck.Draw(), r.Game.Deck.Draw(), r.Game.Deck.Draw())
	case room.Turn, room.River:
		r.Game.Deck.Burn()
		r.Game.CommunityCards = append(r.Game.CommunityCards, r.Game.Deck.Draw())
	case room.Showdown:
		for len(r.Game.CommunityCards) < 5 {
			r.Game.Deck.Burn()
			r.Game.CommunityCards = append(r.Game.CommunityCards, r.Game.Deck.Draw())
		}
	}

	r.Game.Phase = phase
	r.Game.RoundIndex++
	r.Game.CurrentBet = 0
	r.Game.MinRaise = r.Config.BigBlind
	r.Game.HasCurrentPlayer = false

	events = append(events, Event{Type: EventPhaseAdvanced, Payload: PhaseAdvancedPayload{
		Phase:          phase,
		CommunityCards: append([]pokerengine.Card(nil), r.Game.CommunityCards...),
	}})

	if phase == room.Showdown {
		settle, err := c.settleShowdown(r)
		if err != nil {
			return nil, err
		}
		return append(events, settle...), nil
	}

	seats := toSeatStates(r)
	include := func(s pokerengine.SeatState) bool {
		p := r.PlayerAtSeat(int(s.Seat))
		return p != nil && p.Status() == room.Active
	}
	actor, ok := pokerengine.FirstActor(seats, pokerengine.Seat(r.Game.DealerSeat), pokerengine.Seat(r.Game.BigBlindSeat), false, include)
	if !ok {
		// Every remaining player is all-in; nobody left to act this street.
		more, err := c.advancePhaseOrSettle(r)
		if err != nil {
			return nil, err
		}
		return append(events, more...), nil
	}
	c.setCurrentActor(r, int(actor))
	events = append(events, Event{Type: EventPlayerTurn, Payload: PlayerTurnPayload{
		PlayerID: r.PlayerAtSeat(int(actor)).ID,
		Seat:     int(actor),
		Deadline: r.Game.TurnDeadline,
	}})
	return events, nil
}

// rebuildPots recomputes side pots from every seated player's total
// contribution this hand, per SPEC_FULL.md §4.1/§4.4.4 step 1.
func rebuildPots(r *room.Room) {
	var contribs []pokerengine.Contribution
	for _, p := range r.SeatedPlayers() {
		if p.TotalBetThisHand == 0 {
			continue
		}
		contribs = append(contribs, pokerengine.Contribution{
			PlayerID: p.ID,
			Seat:     p.SeatIndex,
			Total:    p.TotalBetThisHand,
			Folded:   p.Status() == room.Folded,
		})
	}
	r.Game.Pots = pokerengine.BuildPots(contribs)
}

// settleSingleSurvivor awards every pot to the sole remaining non-folded
// player without a showdown reveal, per SPEC_FULL.md §4.4.5.
func (c *Controller) settleSingleSurvivor(r *room.Room) ([]Event, error) {
	rebuildPots(r)

	var survivor *room.Player
	for _, p := range r.SeatedPlayers() {
		if p.Status() == room.Active || p.Status() == room.AllIn {
			survivor = p
		}
	}
	if survivor == nil {
		return nil, &room.RoomError{Code: room.ErrCannotAct, Message: "no surviving player to award the pot to"}
	}

	var total int64
	for _, pot := range r.Game.Pots {
		total += pot.Amount
	}
	survivor.AddChips(total)

	result := HandResultPayload{
		Awards: []pokerengine.Award{{PlayerID: survivor.ID, Amount: total}},
	}
	return c.finishHand(r, result)
}

// settleShowdown evaluates every non-folded player's best hand and awards
// each pot accordingly, per SPEC_FULL.md §4.4.5.
func (c *Controller) settleShowdown(r *room.Room) ([]Event, error) {
	scores := map[string]pokerengine.HandValue{}
	var showdown []ShowdownEntry

	for _, p := range r.SeatedPlayers() {
		if p.Status() != room.Active && p.Status() != room.AllIn {
			continue
		}
		seven := append(append([]pokerengine.Card(nil), p.HoleCards...), r.Game.CommunityCards...)
		hv := pokerengine.EvaluateBest(seven)
		scores[p.ID] = hv
		showdown = append(showdown, ShowdownEntry{PlayerID: p.ID, HoleCards: p.HoleCards, Category: hv.Category})
	}

	awards := pokerengine.AwardPots(r.Game.Pots, scores)
	for _, a := range awards {
		if p, ok := r.Players[a.PlayerID]; ok {
			p.AddChips(a.Amount)
		}
	}

	result := HandResultPayload{Awards: awards, Showdown: showdown, WentToShowdown: true}
	return c.finishHand(r, result)
}

// finishHand runs post-settlement bookkeeping: elimination, host transfer,
// and deciding whether the game has ended or another hand should follow.
func (c *Controller) finishHand(r *room.Room, result HandResultPayload) ([]Event, error) {
	events := []Event{{Type: EventHandResult, Payload: result}}

	for _, p := range r.SeatedPlayers() {
		if p.Chips == 0 && p.Status() != room.Eliminated {
			p.MarkEliminated()
		}
	}

	if newHost := c.Manager.TransferHostIfEliminatedLocked(r); newHost != "" {
		events = append(events, Event{Type: EventHostTransferred, Payload: HostTransferredPayload{NewHostID: newHost}})
	}

	remaining := 0
	var lastWithChips *room.Player
	for _, p := range r.SeatedPlayers() {
		if p.Chips > 0 {
			remaining++
			lastWithChips = p
		}
	}

	r.Game.Phase = room.Idle
	r.Game.HasCurrentPlayer = false
	r.IsPlaying = false
	for _, p := range r.SeatedPlayers() {
		p.IsCurrentTurn = false
		if p.ID != r.HostID {
			p.IsReady = false
		}
	}

	if remaining <= 1 {
		winnerID := ""
		if lastWithChips != nil {
			winnerID = lastWithChips.ID
		}
		events = append(events, Event{Type: EventGameEnded, Payload: GameEndedPayload{WinnerPlayerID: winnerID}})
		return events, nil
	}

	events = append(events, Event{Type: EventSyncState})
	return events, nil
}
