package analysis

import (
	"math"

	"TrendPulse/internal/domain/models"
)

func isPivotLow(series []float64, i, lookback, n int) bool {
	if i-lookback < 0 || i+lookback >= n {
		return false
	}
	v := series[i]
	if math.IsNaN(v) {
		return false
	}
	for j := 1; j <= lookback; j++ {
		if v > at(series, i-j, math.Inf(1)) || v > at(series, i+j, math.Inf(1)) {
			return false
		}
	}
	return true
}

func isPivotHigh(series []float64, i, lookback, n int) bool {
	if i-lookback < 0 || i+lookback >= n {
		return false
	}
	v := series[i]
	if math.IsNaN(v) {
		return false
	}
	for j := 1; j <= lookback; j++ {
		if v < at(series, i-j, math.Inf(-1)) || v < at(series, i+j, math.Inf(-1)) {
			return false
		}
	}
	return true
}

// divergenceScan parameterizes one oscillator-vs-price pass: which line is
// compared, how far the usable data runs, and the zone gates a pivot must
// clear before it can pair into a divergence.
type divergenceScan struct {
	system      models.SignalSystem
	osc         []float64
	n           int
	lowGate     float64 // bullish pivot lows qualify only below this
	highGate    float64 // bearish pivot highs qualify only above this
	extremeLow  float64 // extreme-zone multiplier applies below this
	extremeHigh float64 // extreme-zone multiplier applies above this
}

// scanDivergences pairs qualifying oscillator pivots with price pivots at the
// same index over a pivot lookback window. A bullish divergence needs price
// printing a lower low while the oscillator prints a higher low; bearish is
// the mirror.
func (c Config) scanDivergences(a aligned, sc divergenceScan) []models.SignalEvent {
	s := a.series
	lb := c.DivergenceLookback
	n := sc.n
	if n < 2*lb+1 {
		return nil
	}

	osc, price := sc.osc, s.Price
	var events []models.SignalEvent

	prevLow, prevHigh := -1, -1
	for i := lb; i < n-lb; i++ {
		if isPivotLow(osc, i, lb, n) && isPivotLow(price, i, lb, n) && osc[i] < sc.lowGate {
			if prevLow >= 0 && i-prevLow > lb &&
				price[i] < price[prevLow] && osc[i] > osc[prevLow] {
				_, strength := c.scoreStrength(strengthInput{
					eventType:  models.SignalBullishDivergence,
					bullish:    true,
					lineGap:    osc[i] - osc[prevLow],
					moneyFlow:  at(s.MoneyFlow, i, 0),
					inExtreme:  osc[i] < sc.extremeLow,
					divergence: true,
				})
				events = append(events, models.SignalEvent{
					Date:        s.Dates[i],
					Type:        models.SignalBullishDivergence,
					System:      sc.system,
					Strength:    strength,
					SourceIndex: i,
				})
			}
			prevLow = i
		}
		if isPivotHigh(osc, i, lb, n) && isPivotHigh(price, i, lb, n) && osc[i] > sc.highGate {
			if prevHigh >= 0 && i-prevHigh > lb &&
				price[i] > price[prevHigh] && osc[i] < osc[prevHigh] {
				_, strength := c.scoreStrength(strengthInput{
					eventType:  models.SignalBearishDivergence,
					bullish:    false,
					lineGap:    osc[prevHigh] - osc[i],
					moneyFlow:  at(s.MoneyFlow, i, 0),
					inExtreme:  osc[i] > sc.extremeHigh,
					divergence: true,
				})
				events = append(events, models.SignalEvent{
					Date:        s.Dates[i],
					Type:        models.SignalBearishDivergence,
					System:      sc.system,
					Strength:    strength,
					SourceIndex: i,
				})
			}
			prevHigh = i
		}
	}
	return events
}

// detectDivergences scans WT2 against price for regular divergences. Pivots
// qualify only near the oversold/overbought bands. Requires both WaveTrend
// lines and price.
func (c Config) detectDivergences(a aligned) []models.SignalEvent {
	n := a.waveTrendLen
	if a.priceLen < n {
		n = a.priceLen
	}
	return c.scanDivergences(a, divergenceScan{
		system:      models.SystemWaveTrend,
		osc:         a.series.WT2,
		n:           n,
		lowGate:     -40,
		highGate:    40,
		extremeLow:  c.OversoldWT,
		extremeHigh: c.OverboughtWT,
	})
}

// detectMFDivergences runs the same pass over the money-flow area. Money flow
// oscillates around zero, so a pivot qualifies on the matching side of the
// zero line and no extreme-zone multiplier applies.
func (c Config) detectMFDivergences(a aligned) []models.SignalEvent {
	return c.scanDivergences(a, divergenceScan{
		system:      models.SystemMoneyFlow,
		osc:         a.series.MoneyFlow,
		n:           usableLen(a.priceLen, a.series.MoneyFlow),
		lowGate:     0,
		highGate:    0,
		extremeLow:  math.Inf(-1),
		extremeHigh: math.Inf(1),
	})
}
