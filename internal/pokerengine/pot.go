package pokerengine

import "sort"

// Contribution describes one participant's standing at pot-construction
// time: how much they have put in this hand, whether they folded, and a
// stable seat index used to order remainder distribution and the
// everyone-folded-at-this-tier edge case.
type Contribution struct {
	PlayerID string
	Seat     int
	Total    int64
	Folded   bool
}

// Pot is one awardable pool: an amount and the set of player ids still
// eligible to win it.
type Pot struct {
	Amount    int64
	Eligible  map[string]bool
	seatOrder []string // eligible ids in ascending seat order, cached for awarding
}

// BuildPots constructs the tiered side-pot structure from each
// participant's total contribution this hand, per SPEC_FULL.md §4.1.
func BuildPots(contribs []Contribution) []Pot {
	active := make([]Contribution, 0, len(contribs))
	for _, c := range contribs {
		if c.Total > 0 {
			active = append(active, c)
		}
	}
	if len(active) == 0 {
		return nil
	}

	sort.Slice(active, func(i, j int) bool { return active[i].Total < active[j].Total })

	var pots []Pot
	var prevTier int64
	for i := 0; i < len(active); i++ {
		tier := active[i].Total
		if tier == prevTier {
			continue
		}
		layerSize := tier - prevTier

		// Everyone at this tier or above contributes to this layer.
		var contributors []Contribution
		for j := i; j < len(active); j++ {
			contributors = append(contributors, active[j])
		}

		amount := layerSize * int64(len(contributors))

		eligible := map[string]bool{}
		anyNonFolded := false
		for _, c := range contributors {
			if !c.Folded {
				eligible[c.PlayerID] = true
				anyNonFolded = true
			}
		}

		if !anyNonFolded {
			// Everyone eligible for this layer folded; award it to the
			// smallest-seat-index non-folded contributor among the full list
			// (not just this tier), matching the edge case in SPEC_FULL.md
			// §4.1 step 4.
			winner := smallestSeatContributor(contribs)
			eligible = map[string]bool{winner: true}
		}

		pots = append(pots, Pot{Amount: amount, Eligible: eligible, seatOrder: eligibleSeatOrder(contribs, eligible)})
		prevTier = tier
	}

	return pots
}

func smallestSeatContributor(contribs []Contribution) string {
	var best *Contribution
	for i := range contribs {
		c := &contribs[i]
		if c.Total == 0 || c.Folded {
			continue
		}
		if best == nil || c.Seat < best.Seat {
			best = c
		}
	}
	if best == nil {
		return contribs[0].PlayerID
	}
	return best.PlayerID
}

func eligibleSeatOrder(contribs []Contribution, eligible map[string]bool) []string {
	type seated struct {
		id   string
		seat int
	}
	var ids []seated
	for _, c := range contribs {
		if eligible[c.PlayerID] {
			ids = append(ids, seated{c.PlayerID, c.Seat})
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].seat < ids[j].seat })
	out := make([]string, len(ids))
	for i, s := range ids {
		out[i] = s.id
	}
	return out
}

// Award is one pot's outcome: which players won it and how much each got.
type Award struct {
	PlayerID string
	Amount   int64
}

// AwardPots distributes each pot among the best-scoring non-folded
// candidates eligible for it. Ties split evenly with the remainder given
// one chip at a time to the smallest seat indices, per SPEC_FULL.md §4.1.
func AwardPots(pots []Pot, scores map[string]HandValue) []Award {
	totals := map[string]int64{}
	var order []string // preserves first-seen order for stable output

	for _, pot := range pots {
		if pot.Amount == 0 || len(pot.Eligible) == 0 {
			continue
		}

		var winners []string
		var best HandValue
		haveBest := false
		for _, id := range pot.seatOrder {
			if !pot.Eligible[id] {
				continue
			}
			hv, ok := scores[id]
			if !ok {
				// Not a showdown participant (e.g. sole eligible survivor
				// after everyone else folded this layer); they win outright.
				winners = []string{id}
				haveBest = true
				break
			}
			if !haveBest || CompareHands(hv, best) {
				best = hv
				winners = []string{id}
				haveBest = true
			} else if hv.Score == best.Score {
				winners = append(winners, id)
			}
		}
		if len(winners) == 0 {
			continue
		}

		share := pot.Amount / int64(len(winners))
		remainder := pot.Amount % int64(len(winners))

		for _, id := range winners {
			if _, seen := totals[id]; !seen {
				order = append(order, id)
			}
			totals[id] += share
		}
		for i := int64(0); i < remainder; i++ {
			totals[winners[i]]++
		}
	}

	awards := make([]Award, 0, len(order))
	for _, id := range order {
		awards = append(awards, Award{PlayerID: id, Amount: totals[id]})
	}
	return awards
}
