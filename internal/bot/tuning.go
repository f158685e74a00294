package bot

import botinternal "tysyacha/internal/bot/internal"

// CautiousTuning underestimates the hand so the bot only contracts on near
// certainties and never raises into a thin treasure.
var CautiousTuning = botinternal.Weights{
	SureTrickPoints: 15.0,
	TenTrickPoints:  8.0,
	MarriageWeight:  0.7,
	LongSuitBonus:   3.0,
	TreasureUplift:  25.0,
	Safety:          20.0,
}

// StandardTuning tracks the expected value of the hand more closely and
// leaves a small margin for bad splits.
var StandardTuning = botinternal.Weights{
	SureTrickPoints: 18.0,
	TenTrickPoints:  12.0,
	MarriageWeight:  0.9,
	LongSuitBonus:   5.0,
	TreasureUplift:  50.0,
	Safety:          10.0,
}
