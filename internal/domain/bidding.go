package domain

const (
	// OpeningBid is the minimum value of the first non-pass bid.
	OpeningBid = 100
	// BidStep is the increment bids and contract raises must rise in.
	BidStep = 5
)

// Bid is one bidding action. Points of zero denotes a pass.
type Bid struct {
	Seat   Seat `json:"seat"`
	Points int  `json:"points"`
}

// Pass reports whether the bid is a pass.
func (b Bid) Pass() bool {
	return b.Points == 0
}

// HighestBid returns the highest non-pass bid in the history. The second
// return is false when every entry so far is a pass.
func HighestBid(history []Bid) (Bid, bool) {
	var best Bid
	found := false
	for _, b := range history {
		if !b.Pass() && b.Points > best.Points {
			best = b
			found = true
		}
	}
	return best, found
}

// ResolveBidding inspects an ordered bid history and reports whether bidding
// has concluded, and with which contract. Bidding concludes when all three
// seats have passed (nil contract, round aborted) or when exactly one seat
// remains unpassed having bid at least once; that seat's last bid is the
// contract. A seat that has passed stays passed.
func ResolveBidding(history []Bid) (contract *Bid, done bool) {
	var passed, hasBid [NumSeats]bool
	var lastBid [NumSeats]Bid
	for _, b := range history {
		if !b.Seat.Valid() {
			continue
		}
		if b.Pass() {
			passed[b.Seat] = true
		} else {
			lastBid[b.Seat] = b
			hasBid[b.Seat] = true
		}
	}

	passCount := 0
	remaining := Seat(-1)
	for s := Seat(0); s < NumSeats; s++ {
		if passed[s] {
			passCount++
		} else {
			remaining = s
		}
	}

	switch {
	case passCount == NumSeats:
		return nil, true
	case passCount == NumSeats-1 && hasBid[remaining]:
		c := lastBid[remaining]
		return &c, true
	default:
		return nil, false
	}
}
