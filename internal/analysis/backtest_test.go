package analysis

import (
	"testing"

	"TrendPulse/internal/domain/models"
)

func buySeries(n int) (*models.IndicatorSeries, []models.SignalEvent) {
	s := &models.IndicatorSeries{Ticker: "TEST", Dates: testDates(n)}
	s.Price = make([]float64, n)
	for i := range s.Price {
		s.Price[i] = 100 + float64(i)
	}
	events := []models.SignalEvent{
		{Date: s.Dates[0], Type: models.SignalBuy, System: models.SystemWaveTrend, SourceIndex: 0},
		{Date: s.Dates[5], Type: models.SignalGoldBuy, System: models.SystemWaveTrend, SourceIndex: 5},
	}
	return s, events
}

func TestBacktestAggregates(t *testing.T) {
	c := DefaultConfig()
	s, events := buySeries(15)
	res := c.runBacktest(alignSeries(s), events)

	if res.SignalCount != 2 {
		t.Fatalf("expected 2 trades, got %d", res.SignalCount)
	}
	if res.WinRatePct != 100 {
		t.Fatalf("expected 100%% win rate on a rising series, got %v", res.WinRatePct)
	}
	if res.Bucket != models.BucketExcellent {
		t.Fatalf("expected Excellent, got %s", res.Bucket)
	}
	if res.BestSignalType != models.SignalBuy {
		t.Fatalf("expected Buy as best type, got %s", res.BestSignalType)
	}
}

func TestBacktestIdempotent(t *testing.T) {
	c := DefaultConfig()
	s, events := buySeries(30)
	a := alignSeries(s)
	first := c.runBacktest(a, events)
	second := c.runBacktest(a, events)
	if first != second {
		t.Fatalf("expected identical results, got %+v vs %+v", first, second)
	}
}

func TestBacktestNoQualifyingEvents(t *testing.T) {
	c := DefaultConfig()
	s := &models.IndicatorSeries{Dates: testDates(5), Price: []float64{1, 2, 3, 4, 5}}
	events := []models.SignalEvent{
		{Date: s.Dates[1], Type: models.SignalSell, System: models.SystemWaveTrend, SourceIndex: 1},
	}
	res := c.runBacktest(alignSeries(s), events)
	if res.Bucket != models.BucketInsufficient {
		t.Fatalf("expected the insufficient-data sentinel, got %s", res.Bucket)
	}
	if res.SignalCount != 0 {
		t.Fatalf("expected no counted trades, got %d", res.SignalCount)
	}
}

func TestBacktestZeroEntryGuard(t *testing.T) {
	c := DefaultConfig()
	s := &models.IndicatorSeries{Dates: testDates(15)}
	s.Price = make([]float64, 15)
	events := []models.SignalEvent{
		{Date: s.Dates[0], Type: models.SignalBuy, System: models.SystemWaveTrend, SourceIndex: 0},
	}
	res := c.runBacktest(alignSeries(s), events)
	if res.Bucket != models.BucketInsufficient {
		t.Fatalf("zero entry price must not produce a trade, got %+v", res)
	}
}

func TestBacktestSkipsEventsWithoutHorizon(t *testing.T) {
	c := DefaultConfig()
	s := &models.IndicatorSeries{Dates: testDates(8), Price: []float64{1, 1, 1, 1, 1, 1, 1, 1}}
	events := []models.SignalEvent{
		{Date: s.Dates[7], Type: models.SignalBuy, System: models.SystemWaveTrend, SourceIndex: 7},
	}
	res := c.runBacktest(alignSeries(s), events)
	if res.Bucket != models.BucketInsufficient {
		t.Fatalf("event too close to the series end must be skipped, got %+v", res)
	}
}
