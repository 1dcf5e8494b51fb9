package analysis

import (
	"math"

	"TrendPulse/internal/domain/models"
)

// Exhaustion severity labels, ordered from calm to stretched.
const (
	SeverityNormal   = "Normal"
	SeverityModerate = "Moderate"
	SeverityHigh     = "High"
	SeverityCritical = "Critical"
	SeverityExtreme  = "Extreme"
)

// severityFor classifies a %R reading by its distance from the -100/0
// extremes of the bounded range.
func severityFor(v float64) string {
	switch {
	case v >= -5 || v <= -95:
		return SeverityExtreme
	case v >= -10 || v <= -90:
		return SeverityCritical
	case v >= -20 || v <= -80:
		return SeverityHigh
	case v >= -30 || v <= -70:
		return SeverityModerate
	default:
		return SeverityNormal
	}
}

func severityStrength(severity string) models.SignalStrength {
	switch severity {
	case SeverityExtreme:
		return models.StrengthExtreme
	case SeverityCritical:
		return models.StrengthVeryStrong
	case SeverityHigh:
		return models.StrengthStrong
	case SeverityModerate:
		return models.StrengthModerate
	default:
		return models.StrengthWeak
	}
}

// detectExhaustion scans the averaged %R for band reversals and the fast/slow
// sub-lines for crossovers. Reversal severity is taken from the most extreme
// reading reached while inside the band, not the value at the exit crossing.
func (c Config) detectExhaustion(a aligned) []models.SignalEvent {
	s := a.series
	if a.exhaustionLen < 2 {
		return nil
	}
	avg := s.Exhaustion.AvgPercentR
	obLine := -c.ExhaustionThreshold
	osLine := -100 + c.ExhaustionThreshold

	var events []models.SignalEvent

	inOB, inOS := false, false
	peak, trough := 0.0, 0.0
	for i := 0; i < a.exhaustionLen; i++ {
		v := at(avg, i, math.NaN())
		if math.IsNaN(v) {
			continue
		}
		switch {
		case v >= obLine:
			if !inOB {
				inOB, peak = true, v
			} else if v > peak {
				peak = v
			}
			inOS = false
		case v <= osLine:
			if !inOS {
				inOS, trough = true, v
			} else if v < trough {
				trough = v
			}
			inOB = false
		default:
			if inOB {
				events = append(events, models.SignalEvent{
					Date:        s.Dates[i],
					Type:        models.SignalOverboughtRev,
					System:      models.SystemExhaustion,
					Strength:    severityStrength(severityFor(peak)),
					SourceIndex: i,
				})
			}
			if inOS {
				events = append(events, models.SignalEvent{
					Date:        s.Dates[i],
					Type:        models.SignalOversoldRev,
					System:      models.SystemExhaustion,
					Strength:    severityStrength(severityFor(trough)),
					SourceIndex: i,
				})
			}
			inOB, inOS = false, false
		}
	}

	// Fast/slow sub-line crossovers, when both lines are present.
	short, long := s.Exhaustion.ShortPercentR, s.Exhaustion.LongPercentR
	n := usableLen(a.exhaustionLen, short, long)
	for i := 1; i < n; i++ {
		ps, pl := at(short, i-1, math.NaN()), at(long, i-1, math.NaN())
		cs, cl := at(short, i, math.NaN()), at(long, i, math.NaN())
		if math.IsNaN(ps) || math.IsNaN(pl) || math.IsNaN(cs) || math.IsNaN(cl) {
			continue
		}
		if ps <= pl && cs > cl {
			events = append(events, models.SignalEvent{
				Date:        s.Dates[i],
				Type:        models.SignalBullishCross,
				System:      models.SystemExhaustion,
				Strength:    severityStrength(severityFor(cs)),
				SourceIndex: i,
			})
		} else if ps >= pl && cs < cl {
			events = append(events, models.SignalEvent{
				Date:        s.Dates[i],
				Type:        models.SignalBearishCross,
				System:      models.SystemExhaustion,
				Strength:    severityStrength(severityFor(cs)),
				SourceIndex: i,
			})
		}
	}
	return events
}

// exhaustionScore maps the latest %R reading onto 0-100. Band extremes score
// 70-100 by depth; mid-range readings score 20-60 by distance from the -50
// midpoint.
func (c Config) exhaustionScore(v float64) int {
	t := c.ExhaustionThreshold
	obLine := -t
	osLine := -100 + t
	var score float64
	switch {
	case v >= obLine:
		score = 70 + 30*math.Min((v-obLine)/t, 1)
	case v <= osLine:
		score = 70 + 30*math.Min((osLine-v)/t, 1)
	default:
		span := 50 - t
		dist := math.Abs(v+50) / span
		score = 20 + 40*math.Min(dist, 1)
	}
	return int(math.Round(score))
}

// exhaustionRiskLevel grades how hostile the current reading is to new longs:
// deeply oversold is Low risk, deep overbought is Critical.
func (c Config) exhaustionRiskLevel(v float64) string {
	switch {
	case v <= -100+c.ExhaustionThreshold:
		return "Low"
	case v >= -10:
		return "Critical"
	case v >= -c.ExhaustionThreshold:
		return "High"
	default:
		return "Normal"
	}
}

// exhaustionStatus reports the current reading for the output record.
func (c Config) exhaustionStatus(a aligned) *models.ExhaustionStatus {
	if a.exhaustionLen == 0 {
		return nil
	}
	v := lastValid(a.series.Exhaustion.AvgPercentR, a.exhaustionLen, -50)
	return &models.ExhaustionStatus{
		AvgPercentR: v,
		Severity:    severityFor(v),
		Score:       c.exhaustionScore(v),
		Overbought:  v >= -c.ExhaustionThreshold,
		Oversold:    v <= -100+c.ExhaustionThreshold,
	}
}
