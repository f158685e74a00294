package ports

import "context"

// GameOutcome describes one finished game for the stats backend.
type GameOutcome struct {
	MatchID string
	Winners []string
	Totals  map[string]int
	Rounds  int
}

// PlayerStats is the per-user career record kept by the stats backend.
type PlayerStats struct {
	Games     int `json:"games"`
	Wins      int `json:"wins"`
	BestScore int `json:"best_score"`
}

// StatsPort records finished games and serves career stats. Implementations
// must tolerate bot user IDs being absent from their backing store.
type StatsPort interface {
	RecordOutcome(ctx context.Context, outcome GameOutcome) error
	GetStats(ctx context.Context, userID string) (PlayerStats, error)
}
