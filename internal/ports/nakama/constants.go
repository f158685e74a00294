package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a
	// lobby-capable match.
	RpcQuickMatch = "quick_match"

	// RpcPlayerStats is the Nakama RPC id clients call for career stats.
	RpcPlayerStats = "player_stats"

	// MatchNameTysyacha is the authoritative match handler name registered
	// with Nakama.
	MatchNameTysyacha = "tysyacha_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame        int64 = 1
	OpPlaceBid         int64 = 2
	OpRaiseContract    int64 = 3
	OpFinalizeContract int64 = 4
	OpDistributeCards  int64 = 5
	OpPlayCard         int64 = 6

	// Server -> Client
	OpMatchState int64 = 101
	OpGameEvent  int64 = 102
	OpGameError  int64 = 103
)
