package game

import (
	"math/rand"
	"time"

	"github.com/decred/slog"
	"github.com/google/uuid"

	"github.com/Hana19951208/pocket-holdem-mvp/internal/pokerengine"
	"github.com/Hana19951208/pocket-holdem-mvp/internal/room"
)

// Controller drives one room's hand lifecycle. It holds no state of its
// own beyond its dependencies; all mutable state lives on the *room.Room
// passed into every call, matching the teacher's Table/Game split where
// the table owns state and the game logic is a set of pure-ish procedures
// operating on it under the table's lock.
type Controller struct {
	Manager *room.Manager
	Log     slog.Logger

	// Rand, when non-nil, is used instead of crypto/rand to shuffle decks.
	// Tests inject a seeded source for determinism; production leaves this
	// nil so NewShuffledDeck's CSPRNG path is used.
	Rand *rand.Rand
}

// NewController builds a Controller bound to the given room registry.
func NewController(mgr *room.Manager, log slog.Logger) *Controller {
	return &Controller{Manager: mgr, Log: log}
}

func (c *Controller) newDeck() *pokerengine.Deck {
	if c.Rand != nil {
		return pokerengine.NewDeckWithRand(c.Rand)
	}
	return pokerengine.NewShuffledDeck()
}

func (c *Controller) logf(format string, args ...interface{}) {
	if c.Log != nil {
		c.Log.Debugf(format, args...)
	}
}

// eligibleForHand reports whether a player can be dealt into the next hand.
func eligibleForHand(p *room.Player) bool {
	return p.IsSeated() && p.Chips > 0 && p.Status() != room.Eliminated
}

func toSeatStates(r *room.Room) []pokerengine.SeatState {
	out := make([]pokerengine.SeatState, len(r.SeatMap))
	for i, id := range r.SeatMap {
		if id == "" {
			out[i] = pokerengine.SeatState{Seat: pokerengine.Seat(i)}
			continue
		}
		p := r.Players[id]
		out[i] = pokerengine.SeatState{
			Seat:       pokerengine.Seat(i),
			Occupied:   true,
			Chips:      p.Chips,
			Eliminated: p.Status() == room.Eliminated,
		}
	}
	return out
}

// StartHand begins a new hand: blinds, deal, and the first turn. Per
// SPEC_FULL.md §4.4.1. Requires the room lock; callers must hold r.Mu.
func (c *Controller) StartHand(r *room.Room) ([]Event, error) {
	var participants []*room.Player
	for _, p := range r.SeatedPlayers() {
		if eligibleForHand(p) {
			participants = append(participants, p)
		}
	}
	if len(participants) < 2 {
		return nil, &room.RoomError{Code: room.ErrNotEnoughPlayers, Message: "need at least two players with chips to start a hand"}
	}

	seats := toSeatStates(r)

	dealerSeat := r.Game.DealerSeat
	if r.Game.HandNumber == 0 {
		// First hand of the room's life: pick uniformly at random among
		// participating seats (Open Question decision, see DESIGN.md).
		n, _ := randIntn(c.Rand, len(participants))
		dealerSeat = participants[n].SeatIndex
	} else if next, ok := pokerengine.NextDealer(seats, pokerengine.Seat(dealerSeat)); ok {
		dealerSeat = int(next)
	}

	sb, bb, ok := pokerengine.BlindSeats(seats, pokerengine.Seat(dealerSeat))
	if !ok {
		return nil, &room.RoomError{Code: room.ErrNotEnoughPlayers, Message: "not enough eligible seats to post blinds"}
	}

	for _, p := range r.SeatedPlayers() {
		if eligibleForHand(p) {
			p.ResetForNewHand()
		} else if p.IsSeated() && p.Chips == 0 {
			p.MarkEliminated()
		}
	}

	deck := c.newDeck()

	gs := room.NewGameState()
	gs.Phase = room.PreFlop
	gs.DealerSeat = dealerSeat
	gs.SmallBlindSeat = int(sb)
	gs.BigBlindSeat = int(bb)
	gs.CurrentBet = r.Config.BigBlind
	gs.MinRaise = r.Config.BigBlind
	gs.HandID = uuid.NewString()
	gs.RoundID = uuid.NewString()
	gs.RoundIndex = 0
	gs.Deck = deck
	gs.HandNumber = r.Game.HandNumber + 1
	r.Game = gs
	r.IsPlaying = true

	sbPlayer := r.PlayerAtSeat(int(sb))
	bbPlayer := r.PlayerAtSeat(int(bb))
	r.PlayerAtSeat(dealerSeat).IsDealer = true
	sbPlayer.DeductChips(r.Config.SmallBlind)
	bbPlayer.DeductChips(r.Config.BigBlind)
	bbPlayer.HasActed = false // BB keeps the option to check or raise even if everyone else only calls

	var events []Event

	for _, p := range r.SeatedPlayers() {
		if !eligibleForHand(p) {
			continue
		}
		p.HoleCards = []pokerengine.Card{deck.Draw(), deck.Draw()}
		events = append(events, Event{Type: EventDealCards, Payload: DealCardsPayload{PlayerID: p.ID, HoleCards: p.HoleCards}})
	}

	include := func(s pokerengine.SeatState) bool {
		p := r.PlayerAtSeat(int(s.Seat))
		return p != nil && eligibleForHand(p) && p.Status() != room.Folded
	}
	actor, ok := pokerengine.FirstActor(seats, pokerengine.Seat(dealerSeat), bb, true, include)
	if ok {
		c.setCurrentActor(r, int(actor))
		events = append(events, Event{Type: EventPlayerTurn, Payload: PlayerTurnPayload{
			PlayerID: r.PlayerAtSeat(int(actor)).ID,
			Seat:     int(actor),
			Deadline: r.Game.TurnDeadline,
		}})
	}

	events = append([]Event{{Type: EventGameStarted}}, events...)
	return events, nil
}

func randIntn(rng *rand.Rand, n int) (int, error) {
	if rng != nil {
		return rng.Intn(n), nil
	}
	return cryptoIntn(n)
}

func (c *Controller) setCurrentActor(r *room.Room, seat int) {
	for _, p := range r.SeatedPlayers() {
		p.IsCurrentTurn = false
	}
	p := r.PlayerAtSeat(seat)
	p.IsCurrentTurn = true
	r.Game.CurrentPlayerSeat = seat
	r.Game.HasCurrentPlayer = true
	r.Game.TurnDeadline = time.Now().Add(time.Duration(r.Config.TurnTimeoutSeconds) * time.Second)
}
