package pokerengine

// Seat identifies a seat index within a room's fixed-size seat map.
type Seat int

// SeatState is the minimal view order/rotation logic needs for one seat.
type SeatState struct {
	Seat       Seat
	Occupied   bool
	Chips      int64
	Eliminated bool
}

// ActingOrderAfter returns seats in play, in clockwise order starting
// immediately after `from`, restricted to seats for which include returns
// true. Used both for blind assignment and for finding the next actor.
func ActingOrderAfter(seats []SeatState, from Seat, include func(SeatState) bool) []Seat {
	n := len(seats)
	if n == 0 {
		return nil
	}
	var order []Seat
	for i := 1; i <= n; i++ {
		idx := (int(from) + i) % n
		s := seats[idx]
		if include(s) {
			order = append(order, s.Seat)
		}
	}
	return order
}

// BlindSeats computes small and big blind seats given the dealer and the
// set of seats participating in the hand. Heads-up (exactly two
// participants) is a special case: the dealer posts the small blind.
func BlindSeats(seats []SeatState, dealer Seat) (sb, bb Seat, ok bool) {
	participating := func(s SeatState) bool { return s.Occupied && !s.Eliminated && s.Chips > 0 }
	order := ActingOrderAfter(seats, dealer, participating)

	var dealerIsParticipating bool
	for _, s := range seats {
		if s.Seat == dealer && participating(s) {
			dealerIsParticipating = true
		}
	}

	if dealerIsParticipating && len(order) == 2 {
		// Heads-up: dealer is SB, the other seat (order[0]; the dealer itself
		// comes last in order) is BB.
		return dealer, order[0], true
	}
	if len(order) < 2 {
		return 0, 0, false
	}
	return order[0], order[1], true
}

// FirstActor returns the first seat to act in a betting round.
// preFlop=true uses the pre-flop rule (first seat after the big blind);
// otherwise uses the post-flop rule (first still-acting seat after the
// dealer). include should select seats that can still act this round
// (not folded, not all-in, seated).
func FirstActor(seats []SeatState, dealer, bigBlind Seat, preFlop bool, include func(SeatState) bool) (Seat, bool) {
	from := dealer
	if preFlop {
		from = bigBlind
	}
	order := ActingOrderAfter(seats, from, include)
	if len(order) == 0 {
		return 0, false
	}
	return order[0], true
}

// NextDealer returns the next seat (clockwise, wrapping) that is occupied,
// not eliminated, and has chips, starting the search after `from`.
func NextDealer(seats []SeatState, from Seat) (Seat, bool) {
	order := ActingOrderAfter(seats, from, func(s SeatState) bool {
		return s.Occupied && !s.Eliminated && s.Chips > 0
	})
	if len(order) == 0 {
		return 0, false
	}
	return order[0], true
}
