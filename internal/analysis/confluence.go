package analysis

import (
	"fmt"

	"TrendPulse/internal/domain/models"
)

func boolPtr(b bool) *bool { return &b }

// scoreConfluence fuses the four subsystem readings into one 0-100 value.
// Each subsystem contributes at most 25 points; an absent subsystem scores
// the neutral default with a nil alignment flag rather than a false one.
// Component scores always sum exactly to the clamped total.
func (c Config) scoreConfluence(a aligned, events []models.SignalEvent, rsi *models.RSI3M3Status, exh *models.ExhaustionStatus) models.ConfluenceScore {
	subs := []models.SubsystemScore{
		c.scoreWaveTrendSubsystem(a, events),
		c.scoreRSISubsystem(rsi),
		c.scoreExhaustionSubsystem(exh),
		c.scoreSACSubsystem(a.series.SAC),
	}

	sum := 0
	active := 0
	for _, s := range subs {
		sum += s.Score
		if s.Aligned != nil {
			active++
		}
	}
	// Only the WaveTrend component may go negative. When it drags the sum
	// below zero, clamp by absorbing the deficit into that component so the
	// parts still add up to the reported total.
	if sum < 0 {
		subs[0].Score -= sum
		sum = 0
	}
	if sum > 100 {
		sum = 100
	}

	var tone string
	switch {
	case sum >= 80:
		tone = "Strong bullish confluence"
	case sum >= 60:
		tone = "Moderate bullish confluence"
	case sum >= 40:
		tone = "Mixed signals"
	case sum >= 20:
		tone = "Bearish bias"
	default:
		tone = "Strong bearish confluence"
	}

	return models.ConfluenceScore{
		Total:      sum,
		Subsystems: subs,
		Summary:    fmt.Sprintf("%s (%d/4 systems active)", tone, active),
	}
}

// scoreWaveTrendSubsystem ranks the most recent crossover activity. A recent
// GoldBuy outranks a recent Buy, a quiet bullish posture (fast line above
// slow with positive money flow) earns a smaller credit, and a recent Sell
// contributes negatively. The negative contribution is intentional and is the
// only component allowed below zero.
func (c Config) scoreWaveTrendSubsystem(a aligned, events []models.SignalEvent) models.SubsystemScore {
	out := models.SubsystemScore{System: models.SystemWaveTrend}
	if a.waveTrendLen == 0 {
		out.Score = c.NeutralSubsystemScore
		return out
	}

	recentFrom := a.waveTrendLen - c.SummaryWindow
	var goldBuy, buy, sell bool
	for _, ev := range events {
		if ev.System != models.SystemWaveTrend || ev.SourceIndex < recentFrom {
			continue
		}
		switch ev.Type {
		case models.SignalGoldBuy:
			goldBuy = true
		case models.SignalBuy:
			buy = true
		case models.SignalSell, models.SignalFastMoneySell:
			sell = true
		}
	}

	s := a.series
	wt1 := lastValid(s.WT1, a.waveTrendLen, 0)
	wt2 := lastValid(s.WT2, a.waveTrendLen, 0)
	mf := lastValid(s.MoneyFlow, a.waveTrendLen, 0)

	switch {
	case goldBuy:
		out.Score, out.Aligned = 25, boolPtr(true)
	case buy:
		out.Score, out.Aligned = 20, boolPtr(true)
	case wt1 > wt2 && mf > 0:
		out.Score, out.Aligned = 15, boolPtr(true)
	case sell:
		out.Score, out.Aligned = -10, boolPtr(false)
	default:
		out.Score, out.Aligned = 0, boolPtr(false)
	}
	return out
}

func (c Config) scoreRSISubsystem(rsi *models.RSI3M3Status) models.SubsystemScore {
	out := models.SubsystemScore{System: models.SystemRSI3M3}
	if rsi == nil {
		out.Score = c.NeutralSubsystemScore
		return out
	}
	switch rsi.State {
	case models.RSIBullish:
		out.Score, out.Aligned = 25, boolPtr(true)
	case models.RSIBearish:
		out.Score, out.Aligned = 0, boolPtr(false)
	case models.RSITransition:
		out.Score, out.Aligned = 12, boolPtr(false)
	default:
		out.Score, out.Aligned = 10, boolPtr(false)
	}
	return out
}

// scoreExhaustionSubsystem grades by risk to a fresh long position: a deeply
// oversold market scores highest, a stretched overbought one scores zero.
func (c Config) scoreExhaustionSubsystem(exh *models.ExhaustionStatus) models.SubsystemScore {
	out := models.SubsystemScore{System: models.SystemExhaustion}
	if exh == nil {
		out.Score = c.NeutralSubsystemScore
		return out
	}
	switch c.exhaustionRiskLevel(exh.AvgPercentR) {
	case "Low":
		out.Score, out.Aligned = 25, boolPtr(true)
	case "Normal":
		out.Score, out.Aligned = 15, boolPtr(true)
	case "High":
		out.Score, out.Aligned = 5, boolPtr(false)
	default:
		out.Score, out.Aligned = 0, boolPtr(false)
	}
	return out
}

// scoreSACSubsystem maps the external prediction onto the shared ladder,
// keyed on predicted direction and confidence.
func (c Config) scoreSACSubsystem(sac *models.SACPrediction) models.SubsystemScore {
	out := models.SubsystemScore{System: models.SystemSAC}
	if sac == nil {
		out.Score = c.NeutralSubsystemScore
		return out
	}
	switch {
	case sac.Direction == "up" && sac.Confidence >= 0.7:
		out.Score, out.Aligned = 25, boolPtr(true)
	case sac.Direction == "up":
		out.Score, out.Aligned = 20, boolPtr(true)
	case sac.Direction == "down" && sac.Confidence >= 0.7:
		out.Score, out.Aligned = 0, boolPtr(false)
	case sac.Direction == "down":
		out.Score, out.Aligned = 5, boolPtr(false)
	default:
		out.Score, out.Aligned = 12, boolPtr(false)
	}
	return out
}
