package analysis

import (
	"math"

	"TrendPulse/internal/domain/models"
)

// runBacktest measures the forward return of every historical buy-style event
// over the holding horizon. The scan is pure: two runs over the same frozen
// snapshot produce identical aggregates.
func (c Config) runBacktest(a aligned, events []models.SignalEvent) models.BacktestResult {
	s := a.series
	n := a.priceLen
	h := c.HoldingHorizon

	var (
		count     int
		sum       float64
		wins      int
		bestRet   float64
		bestType  models.SignalType
		haveTrade bool
	)
	for _, ev := range events {
		if ev.Type != models.SignalBuy && ev.Type != models.SignalGoldBuy {
			continue
		}
		i := ev.SourceIndex
		if i < 0 || i > n-h {
			continue
		}
		entry := at(s.Price, i, math.NaN())
		if math.IsNaN(entry) || entry == 0 {
			// Zero entries cannot produce a countable return.
			continue
		}
		exitIdx := i + h
		if exitIdx > n-1 {
			exitIdx = n - 1
		}
		exit := at(s.Price, exitIdx, math.NaN())
		if math.IsNaN(exit) {
			continue
		}
		ret := (exit - entry) / entry * 100
		count++
		sum += ret
		if ret > 0 {
			wins++
		}
		if !haveTrade || ret > bestRet {
			haveTrade, bestRet, bestType = true, ret, ev.Type
		}
	}

	if count == 0 {
		return models.BacktestResult{Bucket: models.BucketInsufficient}
	}

	avg := sum / float64(count)
	winRate := float64(wins) / float64(count) * 100

	var bucket models.PerformanceBucket
	switch {
	case avg > 5 && winRate > 70:
		bucket = models.BucketExcellent
	case avg > 3 && winRate > 60:
		bucket = models.BucketGood
	case avg > 1 && winRate > 50:
		bucket = models.BucketFair
	case avg > 0:
		bucket = models.BucketWeak
	default:
		bucket = models.BucketPoor
	}

	return models.BacktestResult{
		AvgReturnPct:   avg,
		WinRatePct:     winRate,
		SignalCount:    count,
		BestSignalType: bestType,
		Bucket:         bucket,
	}
}
