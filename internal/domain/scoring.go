package domain

// RoundToFive rounds a non-negative point total to the nearest multiple of
// five. Remainders of three and four round up, zero to two round down:
// 12 -> 10, 13 -> 15, 73 -> 75.
func RoundToFive(p int) int {
	return (p + 2) / 5 * 5
}

// PlayerTally is one player's raw round outcome before contract settlement.
type PlayerTally struct {
	// TrickPoints is the unrounded sum of card points across tricks won.
	TrickPoints int
	// Marriages lists the suits this player declared during the round.
	// Marriages never declared earn nothing even if the cards were held.
	Marriages []Suit
}

// Total returns the rounded trick points plus marriage bonuses.
func (t PlayerTally) Total() int {
	total := RoundToFive(t.TrickPoints)
	for _, s := range t.Marriages {
		total += s.MarriageValue()
	}
	return total
}

// RoundResult is the settled outcome of one round.
type RoundResult struct {
	// Scores holds the per-seat score deltas to apply to the session.
	Scores [NumSeats]int `json:"scores"`
	// Contract is the finalized contract the round was played under.
	Contract Bid `json:"contract"`
	// ContractMade reports whether the contract holder met the contract.
	ContractMade bool `json:"contract_made"`
}

// SettleRound applies the contract adjustment to the players' tallies. The
// contract holder receives exactly the contract value when their total meets
// or exceeds it (excess is discarded, not banked) and the negative of the
// full contract value otherwise. The other two players keep their raw
// totals, which are never negative.
func SettleRound(tallies [NumSeats]PlayerTally, contract Bid) RoundResult {
	res := RoundResult{Contract: contract}
	for s := Seat(0); s < NumSeats; s++ {
		res.Scores[s] = tallies[s].Total()
	}
	holder := contract.Seat
	if res.Scores[holder] >= contract.Points {
		res.Scores[holder] = contract.Points
		res.ContractMade = true
	} else {
		res.Scores[holder] = -contract.Points
	}
	return res
}
