package domain

// NumSeats is the fixed number of players at the table.
const NumSeats = 3

// Seat indexes one of the three fixed positions. Turn order is clockwise:
// seat 0, seat 1, seat 2, and back to seat 0.
type Seat int

// Valid reports whether the seat is within the table.
func (s Seat) Valid() bool {
	return s >= 0 && s < NumSeats
}

// Next returns the seat to the left, i.e. the next seat in turn order.
func (s Seat) Next() Seat {
	return (s + 1) % NumSeats
}
