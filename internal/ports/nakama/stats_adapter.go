package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"tysyacha/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	statsCollection   = "tysyacha_stats"
	statsKey          = "career"
	historyCollection = "tysyacha_history"
)

// StatsAdapter implements ports.StatsPort on top of Nakama's storage engine.
// Career records live under each user; the match history record is owned by
// the system user.
type StatsAdapter struct {
	nk runtime.NakamaModule
}

func NewStatsAdapter(nk runtime.NakamaModule) *StatsAdapter {
	return &StatsAdapter{nk: nk}
}

// GetStats reads a user's career record, returning zeroes for new players.
func (a *StatsAdapter) GetStats(ctx context.Context, userID string) (ports.PlayerStats, error) {
	objects, err := a.nk.StorageRead(ctx, []*runtime.StorageRead{{
		Collection: statsCollection,
		Key:        statsKey,
		UserID:     userID,
	}})
	if err != nil {
		return ports.PlayerStats{}, fmt.Errorf("read stats for %s: %w", userID, err)
	}
	if len(objects) == 0 {
		return ports.PlayerStats{}, nil
	}

	var stats ports.PlayerStats
	if err := json.Unmarshal([]byte(objects[0].Value), &stats); err != nil {
		return ports.PlayerStats{}, fmt.Errorf("unmarshal stats for %s: %w", userID, err)
	}
	return stats, nil
}

// RecordOutcome bumps each human player's career record and appends a match
// history entry.
func (a *StatsAdapter) RecordOutcome(ctx context.Context, outcome ports.GameOutcome) error {
	winners := make(map[string]bool, len(outcome.Winners))
	for _, userID := range outcome.Winners {
		winners[userID] = true
	}

	writes := make([]*runtime.StorageWrite, 0, len(outcome.Totals)+1)
	for userID, total := range outcome.Totals {
		stats, err := a.GetStats(ctx, userID)
		if err != nil {
			return err
		}
		stats.Games++
		if winners[userID] {
			stats.Wins++
		}
		if total > stats.BestScore {
			stats.BestScore = total
		}

		value, err := json.Marshal(stats)
		if err != nil {
			return fmt.Errorf("marshal stats for %s: %w", userID, err)
		}
		writes = append(writes, &runtime.StorageWrite{
			Collection:      statsCollection,
			Key:             statsKey,
			UserID:          userID,
			Value:           string(value),
			PermissionRead:  1, // owner can read
			PermissionWrite: 0, // server only
		})
	}

	if outcome.MatchID != "" {
		value, err := json.Marshal(outcome)
		if err != nil {
			return fmt.Errorf("marshal outcome: %w", err)
		}
		writes = append(writes, &runtime.StorageWrite{
			Collection:      historyCollection,
			Key:             outcome.MatchID,
			Value:           string(value),
			PermissionRead:  2, // public
			PermissionWrite: 0,
		})
	}

	if len(writes) == 0 {
		return nil
	}
	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		return fmt.Errorf("write outcome: %w", err)
	}
	return nil
}
