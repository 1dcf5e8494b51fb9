package analysis

import (
	"math"

	"TrendPulse/internal/domain/models"
)

// strengthInput captures the context a crossover-style event is scored in.
// The same scoring function is applied by every oscillator detector so that
// a "Strong" WaveTrend cross and a "Strong" exhaustion cross mean the same
// thing.
type strengthInput struct {
	eventType  models.SignalType
	bullish    bool
	lineGap    float64 // |fast - slow| at the crossing
	moneyFlow  float64 // 0 when money flow absent
	inExtreme  bool    // oscillator in the extreme zone matching direction
	divergence bool
}

// scoreStrength computes the multiplicative strength score and buckets it.
func (c Config) scoreStrength(in strengthInput) (float64, models.SignalStrength) {
	score := 1.0
	if in.eventType == models.SignalGoldBuy {
		score *= c.GoldBuyMult
	}
	if in.divergence {
		score *= c.DivergenceMult
	}
	gap := math.Abs(in.lineGap)
	if gap > c.WideGap {
		score *= c.WideGapMult
	} else if gap > c.NarrowGap {
		score *= c.NarrowGapMult
	}
	if (in.bullish && in.moneyFlow > 0) || (!in.bullish && in.moneyFlow < 0) {
		score *= c.MoneyFlowMult
	}
	if in.inExtreme {
		score *= c.ZoneMult
	}
	return score, c.bucketStrength(score)
}

func (c Config) bucketStrength(score float64) models.SignalStrength {
	switch {
	case score >= c.VeryStrongCutoff:
		return models.StrengthVeryStrong
	case score >= c.StrongCutoff:
		return models.StrengthStrong
	case score >= c.ModerateCutoff:
		return models.StrengthModerate
	default:
		return models.StrengthWeak
	}
}
