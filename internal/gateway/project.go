package gateway

import (
	"time"

	"github.com/Hana19951208/pocket-holdem-mvp/internal/game"
	"github.com/Hana19951208/pocket-holdem-mvp/internal/pokerengine"
	"github.com/Hana19951208/pocket-holdem-mvp/internal/room"
)

// CardDTO is the wire representation of a card.
type CardDTO struct {
	Suit string `json:"suit"`
	Rank int    `json:"rank"`
}

func cardDTO(c pokerengine.Card) CardDTO {
	return CardDTO{Suit: c.Suit.String(), Rank: c.Rank}
}

func cardDTOs(cards []pokerengine.Card) []CardDTO {
	out := make([]CardDTO, len(cards))
	for i, c := range cards {
		out[i] = cardDTO(c)
	}
	return out
}

// PlayerView is the projection of one player sent to one specific
// connection. HoleCards is populated only for the viewer's own player —
// never for anyone else; showdown cards are disclosed separately in the
// HAND_RESULT payload. This is the mechanical enforcement of SPEC_FULL.md
// §4.5's "Projection rule (critical)".
type PlayerView struct {
	PlayerID      string     `json:"playerId"`
	Nickname      string     `json:"nickname"`
	SeatIndex     int        `json:"seatIndex"`
	Chips         int64      `json:"chips"`
	CurrentBet    int64      `json:"currentBet"`
	Status        string     `json:"status"`
	IsHost        bool       `json:"isHost"`
	IsReady       bool       `json:"isReady"`
	IsDealer      bool       `json:"isDealer"`
	IsCurrentTurn bool       `json:"isCurrentTurn"`
	HoleCards     []CardDTO  `json:"holeCards,omitempty"`
	Connected     bool       `json:"connected"`
}

// PotView is the public projection of one pot (no kicker/hand detail).
type PotView struct {
	Amount int64 `json:"amount"`
}

// RoomSnapshot is the full per-connection projected view of a room.
type RoomSnapshot struct {
	RoomID            string       `json:"roomId"`
	HostID            string       `json:"hostId"`
	IsPlaying         bool         `json:"isPlaying"`
	Phase             string       `json:"phase"`
	CommunityCards    []CardDTO    `json:"communityCards"`
	Pots              []PotView    `json:"pots"`
	CurrentPlayerSeat *int         `json:"currentPlayerSeat,omitempty"`
	TurnDeadline      *time.Time   `json:"turnDeadline,omitempty"`
	Players           []PlayerView `json:"players"`
}

// BuildSnapshot projects r for the connection belonging to viewerID.
// viewerID == "" projects a fully public view (no hole cards for anyone),
// used for spectators with no bound player identity yet.
func BuildSnapshot(r *room.Room, viewerID string) RoomSnapshot {
	snap := RoomSnapshot{
		RoomID:    r.ID,
		HostID:    r.HostID,
		IsPlaying: r.IsPlaying,
	}
	if r.Game != nil {
		snap.Phase = string(r.Game.Phase)
		snap.CommunityCards = cardDTOs(r.Game.CommunityCards)
		for _, p := range r.Game.Pots {
			snap.Pots = append(snap.Pots, PotView{Amount: p.Amount})
		}
		if r.Game.HasCurrentPlayer {
			seat := r.Game.CurrentPlayerSeat
			snap.CurrentPlayerSeat = &seat
			deadline := r.Game.TurnDeadline
			snap.TurnDeadline = &deadline
		}
	}

	for _, id := range r.SeatMap {
		if id == "" {
			continue
		}
		p, ok := r.Players[id]
		if !ok {
			continue
		}
		view := PlayerView{
			PlayerID:      p.ID,
			Nickname:      p.Nickname,
			SeatIndex:     p.SeatIndex,
			Chips:         p.Chips,
			CurrentBet:    p.CurrentBet,
			Status:        string(p.Status()),
			IsHost:        p.ID == r.HostID,
			IsReady:       p.IsReady,
			IsDealer:      p.IsDealer,
			IsCurrentTurn: p.IsCurrentTurn,
			Connected:     p.ConnectionID != "",
		}
		if p.ID == viewerID {
			view.HoleCards = cardDTOs(p.HoleCards)
		}
		snap.Players = append(snap.Players, view)
	}

	return snap
}

// projectHandResult builds the HAND_RESULT payload, the same for every
// connection: showdown
// hole cards are disclosed only for players who actually reached showdown,
// per SPEC_FULL.md §4.5 — there is no viewer-identity check here because,
// unlike live hole cards, showdown cards are intentionally public to every
// connection once revealed.
func projectHandResult(payload game.HandResultPayload) map[string]any {
	type showdownEntryDTO struct {
		PlayerID  string    `json:"playerId"`
		HoleCards []CardDTO `json:"holeCards"`
		Category  string    `json:"category"`
	}
	type awardDTO struct {
		PlayerID string `json:"playerId"`
		Amount   int64  `json:"amount"`
	}

	awards := make([]awardDTO, len(payload.Awards))
	for i, a := range payload.Awards {
		awards[i] = awardDTO{PlayerID: a.PlayerID, Amount: a.Amount}
	}

	var showdown []showdownEntryDTO
	for _, s := range payload.Showdown {
		showdown = append(showdown, showdownEntryDTO{
			PlayerID:  s.PlayerID,
			HoleCards: cardDTOs(s.HoleCards),
			Category:  s.Category.String(),
		})
	}

	return map[string]any{
		"awards":         awards,
		"showdownCards":  showdown,
		"wentToShowdown": payload.WentToShowdown,
	}
}
