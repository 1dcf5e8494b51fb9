package analysis

import (
	"testing"
	"time"

	"TrendPulse/internal/domain/models"
)

func testDates(n int) []time.Time {
	base := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = base.AddDate(0, 0, i)
	}
	return out
}

func TestGoldBuyClassification(t *testing.T) {
	s := &models.IndicatorSeries{
		Ticker:    "TEST",
		Dates:     testDates(2),
		Price:     []float64{10, 10},
		WT1:       []float64{-70, -60},
		WT2:       []float64{-50, -65},
		MoneyFlow: []float64{1, 1},
	}
	c := DefaultConfig()
	events := c.detectWaveTrend(alignSeries(s), derivedCrossovers{})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != models.SignalGoldBuy {
		t.Fatalf("expected GoldBuy, got %s", events[0].Type)
	}
	if events[0].SourceIndex != 1 {
		t.Fatalf("expected crossing at index 1, got %d", events[0].SourceIndex)
	}
}

func TestBullishThenBearishCross(t *testing.T) {
	s := &models.IndicatorSeries{
		Ticker: "TEST",
		Dates:  testDates(10),
		Price:  []float64{10, 10, 10, 10, 10, 10, 10, 10, 10, 10},
		WT1:    []float64{-70, -65, -55, -40, 10, 30, 55, 40, 20, -10},
		WT2:    []float64{-50, -50, -50, -50, -50, -50, 50, 45, 45, 45},
	}
	c := DefaultConfig()
	events := c.detectWaveTrend(alignSeries(s), derivedCrossovers{})
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Type != models.SignalBuy || events[0].SourceIndex != 3 {
		t.Fatalf("expected Buy at 3, got %s at %d", events[0].Type, events[0].SourceIndex)
	}
	if events[1].Type != models.SignalSell || events[1].SourceIndex != 7 {
		t.Fatalf("expected Sell at 7, got %s at %d", events[1].Type, events[1].SourceIndex)
	}
	if events[1].Strength != models.StrengthStrong {
		t.Fatalf("expected Strong sell above the strong zone, got %s", events[1].Strength)
	}
}

func TestPrecomputedIndicesPreferred(t *testing.T) {
	s := &models.IndicatorSeries{
		Ticker:           "TEST",
		Dates:            testDates(3),
		Price:            []float64{10, 10, 10},
		WT1:              []float64{-40, -35, -35},
		WT2:              []float64{-50, -50, -50},
		WaveTrendSignals: &models.WaveTrendSignalIndices{Buy: []int{2}},
	}
	src := crossoverSourceFor(s)
	if _, ok := src.(precomputedCrossovers); !ok {
		t.Fatalf("expected precomputed strategy, got %T", src)
	}
	c := DefaultConfig()
	events := c.detectWaveTrend(alignSeries(s), src)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != models.SignalBuy || events[0].SourceIndex != 2 {
		t.Fatalf("expected Buy at 2, got %s at %d", events[0].Type, events[0].SourceIndex)
	}
}

func TestDerivedStrategyWhenNoIndices(t *testing.T) {
	s := &models.IndicatorSeries{
		Dates: testDates(2),
		WT1:   []float64{-70, -60},
		WT2:   []float64{-50, -65},
	}
	if _, ok := crossoverSourceFor(s).(derivedCrossovers); !ok {
		t.Fatalf("expected derived strategy without precomputed indices")
	}
}

func TestWaveTrendZoneStatus(t *testing.T) {
	c := DefaultConfig()
	s := &models.IndicatorSeries{
		Dates: testDates(1),
		WT1:   []float64{-50},
		WT2:   []float64{-60},
	}
	status := c.waveTrendStatus(alignSeries(s))
	if status.ZoneStatus != "Potential buy zone" {
		t.Fatalf("expected buy zone, got %q", status.ZoneStatus)
	}
}
