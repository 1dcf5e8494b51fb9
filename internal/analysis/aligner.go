package analysis

import (
	"math"

	"TrendPulse/internal/domain/models"
)

// usableLen returns the common usable length of the given parallel series:
// the shortest non-nil length, capped at n. A nil slice among required inputs
// yields 0, which downstream detectors read as "absent".
func usableLen(n int, series ...[]float64) int {
	for _, s := range series {
		if s == nil {
			return 0
		}
		if len(s) < n {
			n = len(s)
		}
	}
	if n < 0 {
		return 0
	}
	return n
}

// aligned is the sanitized per-detector view of one snapshot. Each subsystem
// gets its own usable length so a short exhaustion series never truncates the
// WaveTrend scan.
type aligned struct {
	series *models.IndicatorSeries

	priceLen      int
	waveTrendLen  int
	rsiLen        int
	exhaustionLen int
}

// alignSeries validates the snapshot and computes per-subsystem usable
// lengths. It never fails: raggedness truncates, absence zeroes.
func alignSeries(s *models.IndicatorSeries) aligned {
	a := aligned{series: s}
	if s == nil {
		return a
	}
	n := len(s.Dates)

	a.priceLen = usableLen(n, s.Price)
	a.waveTrendLen = usableLen(n, s.WT1, s.WT2)

	if s.RSI3M3 != nil {
		a.rsiLen = usableLen(n, s.RSI3M3.Values)
		if len(s.RSI3M3.States) > 0 && len(s.RSI3M3.States) < a.rsiLen {
			a.rsiLen = len(s.RSI3M3.States)
		}
	}
	if s.Exhaustion != nil {
		a.exhaustionLen = usableLen(n, s.Exhaustion.AvgPercentR)
	}
	return a
}

// at reads series[i], mapping NaN and out-of-range reads to the fallback.
func at(series []float64, i int, fallback float64) float64 {
	if i < 0 || i >= len(series) {
		return fallback
	}
	v := series[i]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// lastValid walks backward from n-1 to the most recent finite value.
// Returns the fallback when the whole prefix is NaN.
func lastValid(series []float64, n int, fallback float64) float64 {
	if n > len(series) {
		n = len(series)
	}
	for i := n - 1; i >= 0; i-- {
		v := series[i]
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v
		}
	}
	return fallback
}
