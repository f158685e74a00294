package bot

import (
	"fmt"
)

// BotLevel selects a strategy implementation.
type BotLevel int

const (
	BotLevelCautious BotLevel = iota + 1
	BotLevelStandard
)

// NewBrain creates a new bot brain for the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelCautious:
		return &CautiousBot{}, nil
	case BotLevelStandard:
		return &StandardBot{}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// LevelFromDifficulty maps an identity difficulty label to a level. Unknown
// labels get the standard strategy.
func LevelFromDifficulty(difficulty string) BotLevel {
	if difficulty == "easy" {
		return BotLevelCautious
	}
	return BotLevelStandard
}
