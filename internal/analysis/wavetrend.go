package analysis

import (
	"math"

	"TrendPulse/internal/domain/models"
)

// crossing is a single WT1/WT2 sign change of the line difference.
type crossing struct {
	index   int
	bullish bool
}

// crossoverSource yields the crossings a WaveTrend scan should classify.
// Two implementations exist: one trusts the collaborator's precomputed signal
// indices, one re-derives crossings from the raw oscillator lines. Selection
// is explicit, based on what the payload supplied.
type crossoverSource interface {
	crossings(a aligned) []crossing
}

// derivedCrossovers re-derives crossings from the raw WT1/WT2 series.
type derivedCrossovers struct{}

func (derivedCrossovers) crossings(a aligned) []crossing {
	s := a.series
	var out []crossing
	for i := 1; i < a.waveTrendLen; i++ {
		prev := at(s.WT1, i-1, math.NaN()) - at(s.WT2, i-1, math.NaN())
		cur := at(s.WT1, i, math.NaN()) - at(s.WT2, i, math.NaN())
		if math.IsNaN(prev) || math.IsNaN(cur) {
			continue
		}
		if prev < 0 && cur > 0 {
			out = append(out, crossing{index: i, bullish: true})
		} else if prev > 0 && cur < 0 {
			out = append(out, crossing{index: i, bullish: false})
		}
	}
	return out
}

// precomputedCrossovers trusts the collaborator's resolved signal indices.
type precomputedCrossovers struct {
	idx *models.WaveTrendSignalIndices
}

func (p precomputedCrossovers) crossings(a aligned) []crossing {
	var out []crossing
	for _, i := range p.idx.Buy {
		if i > 0 && i < a.waveTrendLen {
			out = append(out, crossing{index: i, bullish: true})
		}
	}
	for _, i := range p.idx.GoldBuy {
		if i > 0 && i < a.waveTrendLen {
			out = append(out, crossing{index: i, bullish: true})
		}
	}
	for _, i := range p.idx.Sell {
		if i > 0 && i < a.waveTrendLen {
			out = append(out, crossing{index: i, bullish: false})
		}
	}
	return out
}

// crossoverSourceFor selects the detector strategy for a snapshot.
func crossoverSourceFor(s *models.IndicatorSeries) crossoverSource {
	if s.WaveTrendSignals != nil {
		sig := s.WaveTrendSignals
		if len(sig.Buy)+len(sig.GoldBuy)+len(sig.Sell) > 0 {
			return precomputedCrossovers{idx: sig}
		}
	}
	return derivedCrossovers{}
}

// detectWaveTrend classifies every crossing into Buy, GoldBuy, Sell or a
// plain cross event. Classification reads money flow and zone context at the
// crossing index; an absent money-flow series contributes 0 (never GoldBuy).
func (c Config) detectWaveTrend(a aligned, src crossoverSource) []models.SignalEvent {
	s := a.series
	if a.waveTrendLen < 2 {
		return nil
	}

	var events []models.SignalEvent
	for _, cr := range src.crossings(a) {
		i := cr.index
		wt1 := at(s.WT1, i, 0)
		wt2 := at(s.WT2, i, 0)
		mf := at(s.MoneyFlow, i, 0)

		ev := models.SignalEvent{
			Date:        s.Dates[i],
			System:      models.SystemWaveTrend,
			SourceIndex: i,
		}
		if cr.bullish {
			switch {
			case mf > 0 && wt1 < c.GoldBuyZone:
				ev.Type = models.SignalGoldBuy
			case wt1 < c.BuyZone:
				ev.Type = models.SignalBuy
			default:
				ev.Type = models.SignalBullishCross
			}
			_, ev.Strength = c.scoreStrength(strengthInput{
				eventType: ev.Type,
				bullish:   true,
				lineGap:   wt1 - wt2,
				moneyFlow: mf,
				inExtreme: wt1 < c.OversoldWT,
			})
		} else {
			ev.Type = models.SignalSell
			if mf < 0 && wt1 > c.OverboughtWT {
				ev.Type = models.SignalFastMoneySell
			}
			if wt1 > c.StrongSellZone {
				ev.Strength = models.StrengthStrong
			} else {
				ev.Strength = models.StrengthModerate
			}
		}
		events = append(events, ev)
	}
	return events
}

// waveTrendStatus reports the latest readings and zone status text.
func (c Config) waveTrendStatus(a aligned) *models.WaveTrendStatus {
	if a.waveTrendLen == 0 {
		return nil
	}
	s := a.series
	wt1 := lastValid(s.WT1, a.waveTrendLen, 0)
	wt2 := lastValid(s.WT2, a.waveTrendLen, 0)
	mf := lastValid(s.MoneyFlow, a.waveTrendLen, 0)

	zone := "Neutral zone"
	if wt1 > wt2 && wt2 < c.OversoldWT {
		zone = "Potential buy zone"
	} else if wt1 < wt2 && wt2 > c.OverboughtWT {
		zone = "Potential sell zone"
	}
	return &models.WaveTrendStatus{WT1: wt1, WT2: wt2, MoneyFlow: mf, ZoneStatus: zone}
}
