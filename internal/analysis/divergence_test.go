package analysis

import (
	"testing"

	"TrendPulse/internal/domain/models"
)

// Price carves two pivot lows at indices 7 and 17, the second one lower.
var divPrice = []float64{
	104, 102, 100, 98, 96, 94, 92, 90,
	92, 94, 96, 98, 100,
	97, 94, 91, 88, 85,
	87, 89, 91, 93, 95, 97, 99,
}

// WT2 bottoms at the same indices, the second low higher and still below -40.
var divWT2 = []float64{
	-30, -35, -40, -45, -50, -55, -60, -70,
	-60, -50, -40, -30, -20,
	-28, -35, -42, -50, -55,
	-50, -45, -40, -35, -30, -25, -20,
}

func offsetSeries(in []float64, d float64) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = v + d
	}
	return out
}

func TestBullishDivergenceLowerLowHigherLow(t *testing.T) {
	s := &models.IndicatorSeries{
		Ticker: "TEST",
		Dates:  testDates(len(divPrice)),
		Price:  divPrice,
		WT1:    offsetSeries(divWT2, 5),
		WT2:    divWT2,
	}
	c := DefaultConfig()
	events := c.detectDivergences(alignSeries(s))
	if len(events) != 1 {
		t.Fatalf("expected 1 divergence, got %d", len(events))
	}
	ev := events[0]
	if ev.Type != models.SignalBullishDivergence || ev.System != models.SystemWaveTrend {
		t.Fatalf("got %s from %s", ev.Type, ev.System)
	}
	if ev.SourceIndex != 17 {
		t.Fatalf("expected divergence at the second pivot low (17), got %d", ev.SourceIndex)
	}
	// 1.5 divergence x 1.5 wide gap x 1.4 oversold zone = 3.15.
	if ev.Strength != models.StrengthVeryStrong {
		t.Fatalf("expected VeryStrong, got %s", ev.Strength)
	}
}

func TestNoDivergenceWithoutLowerLow(t *testing.T) {
	// Same oscillator shape but price prints a higher second low.
	price := []float64{
		104, 102, 100, 98, 96, 94, 92, 90,
		92, 94, 96, 98, 100,
		98, 96, 95, 94, 92,
		94, 95, 96, 97, 98, 99, 100,
	}
	s := &models.IndicatorSeries{
		Ticker: "TEST",
		Dates:  testDates(len(price)),
		Price:  price,
		WT1:    offsetSeries(divWT2, 5),
		WT2:    divWT2,
	}
	c := DefaultConfig()
	if events := c.detectDivergences(alignSeries(s)); len(events) != 0 {
		t.Fatalf("expected no divergence on a higher low, got %v", events)
	}
}

func TestNoDivergenceOnShortSeries(t *testing.T) {
	s := &models.IndicatorSeries{
		Ticker: "TEST",
		Dates:  testDates(8),
		Price:  divPrice[:8],
		WT1:    offsetSeries(divWT2[:8], 5),
		WT2:    divWT2[:8],
	}
	c := DefaultConfig()
	if events := c.detectDivergences(alignSeries(s)); len(events) != 0 {
		t.Fatalf("series shorter than the pivot window must stay silent, got %v", events)
	}
}

func TestMoneyFlowDivergence(t *testing.T) {
	mf := []float64{
		-0.5, -1.0, -1.5, -2.0, -2.5, -3.0, -3.5, -4.0,
		-3.5, -3.0, -2.5, -2.0, -1.5,
		-1.8, -2.1, -2.4, -2.7, -3.0,
		-2.8, -2.6, -2.4, -2.2, -2.0, -1.8, -1.6,
	}
	s := &models.IndicatorSeries{
		Ticker:    "TEST",
		Dates:     testDates(len(divPrice)),
		Price:     divPrice,
		MoneyFlow: mf,
	}
	c := DefaultConfig()
	events := c.detectMFDivergences(alignSeries(s))
	if len(events) != 1 {
		t.Fatalf("expected 1 money-flow divergence, got %d", len(events))
	}
	ev := events[0]
	if ev.Type != models.SignalBullishDivergence || ev.System != models.SystemMoneyFlow {
		t.Fatalf("got %s from %s", ev.Type, ev.System)
	}
	if ev.SourceIndex != 17 {
		t.Fatalf("expected divergence at index 17, got %d", ev.SourceIndex)
	}

	// The full pass carries money-flow divergences into the timeline.
	az, err := New(c)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	report := az.Analyze(s, testDates(len(divPrice))[len(divPrice)-1])
	found := false
	for _, entry := range report.Timeline {
		if entry.System == models.SystemMoneyFlow {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("timeline missing the money-flow divergence: %+v", report.Timeline)
	}
}
