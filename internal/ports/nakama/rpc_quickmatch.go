package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"
)

// QuickMatchResponse is the payload returned to clients when requesting a
// lobby-capable match.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// PlayerStatsResponse wraps the caller's career record.
type PlayerStatsResponse struct {
	Games     int `json:"games"`
	Wins      int `json:"wins"`
	BestScore int `json:"best_score"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcPlayerStats, rpcPlayerStats)
}

func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	// Find an open lobby of our game.
	query := "+label.game:tysyacha +label.state:lobby +label.open:>=1"

	limit := 10
	authoritative := true
	minSize := 1
	maxSize := 2 // keep at least one seat for the caller

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("rpcQuickMatch: match list: %v", err)
		return "", err
	}
	if len(matches) > 0 {
		resp := QuickMatchResponse{MatchID: matches[0].MatchId, IsNew: false}
		b, _ := json.Marshal(resp)
		return string(b), nil
	}

	// Create a new match; seating happens in MatchJoin (server-authoritative).
	matchID, err := nk.MatchCreate(ctx, MatchNameTysyacha, map[string]interface{}{})
	if err != nil {
		logger.Error("rpcQuickMatch: match create: %v", err)
		return "", err
	}

	resp := QuickMatchResponse{MatchID: matchID, IsNew: true}
	b, _ := json.Marshal(resp)
	return string(b), nil
}

func rpcPlayerStats(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if !ok || userID == "" {
		return "", runtime.NewError("rpc requires an authenticated user", 16)
	}

	stats, err := NewStatsAdapter(nk).GetStats(ctx, userID)
	if err != nil {
		logger.Error("rpcPlayerStats: %v", err)
		return "", err
	}
	b, err := json.Marshal(PlayerStatsResponse(stats))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
