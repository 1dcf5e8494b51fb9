package analysis

import (
	"math"

	"TrendPulse/internal/domain/models"
)

// detectPriceAction is the degrade-gracefully fallback when oscillator data
// is sparse: it flags outsized single-period and multi-period price moves so
// the timeline is never empty just because an indicator feed dropped out.
func (c Config) detectPriceAction(a aligned) []models.SignalEvent {
	s := a.series
	if a.priceLen < 2 {
		return nil
	}

	var events []models.SignalEvent
	emit := func(i int, pct float64) {
		typ := models.SignalBullishCross
		if pct < 0 {
			typ = models.SignalBearishCross
		}
		strength := models.StrengthModerate
		if math.Abs(pct) >= 2*c.PriceMoveSinglePct {
			strength = models.StrengthStrong
		}
		events = append(events, models.SignalEvent{
			Date:        s.Dates[i],
			Type:        typ,
			System:      models.SystemPriceAction,
			Strength:    strength,
			SourceIndex: i,
		})
	}

	for i := 1; i < a.priceLen; i++ {
		prev := at(s.Price, i-1, math.NaN())
		cur := at(s.Price, i, math.NaN())
		if math.IsNaN(prev) || math.IsNaN(cur) || prev == 0 {
			continue
		}
		pct := (cur - prev) / prev * 100
		if math.Abs(pct) > c.PriceMoveSinglePct {
			emit(i, pct)
			continue
		}
		if j := i - c.PriceMoveSpan; j >= 0 {
			base := at(s.Price, j, math.NaN())
			if !math.IsNaN(base) && base != 0 {
				span := (cur - base) / base * 100
				if math.Abs(span) > c.PriceMoveMultiPct {
					emit(i, span)
				}
			}
		}
	}
	return events
}
