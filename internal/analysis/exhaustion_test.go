package analysis

import (
	"testing"

	"TrendPulse/internal/domain/models"
)

func TestOversoldReversalExtreme(t *testing.T) {
	s := &models.IndicatorSeries{
		Ticker: "TEST",
		Dates:  testDates(5),
		Exhaustion: &models.ExhaustionSeries{
			AvgPercentR: []float64{-50, -95, -85, -75, -50},
		},
	}
	c := DefaultConfig()
	events := c.detectExhaustion(alignSeries(s))
	if len(events) != 1 {
		t.Fatalf("expected exactly 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Type != models.SignalOversoldRev {
		t.Fatalf("expected OversoldReversal, got %s", ev.Type)
	}
	if ev.SourceIndex != 3 {
		t.Fatalf("expected reversal at the band exit index 3, got %d", ev.SourceIndex)
	}
	if ev.Strength != models.StrengthExtreme {
		t.Fatalf("expected Extreme severity for the -95 reading, got %s", ev.Strength)
	}
}

func TestOverboughtReversal(t *testing.T) {
	s := &models.IndicatorSeries{
		Dates: testDates(3),
		Exhaustion: &models.ExhaustionSeries{
			AvgPercentR: []float64{-50, -10, -25},
		},
	}
	c := DefaultConfig()
	events := c.detectExhaustion(alignSeries(s))
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != models.SignalOverboughtRev || events[0].SourceIndex != 2 {
		t.Fatalf("expected OverboughtReversal at 2, got %s at %d", events[0].Type, events[0].SourceIndex)
	}
	if events[0].Strength != models.StrengthVeryStrong {
		t.Fatalf("expected VeryStrong for the -10 peak, got %s", events[0].Strength)
	}
}

func TestSubLineCrossover(t *testing.T) {
	s := &models.IndicatorSeries{
		Dates: testDates(2),
		Exhaustion: &models.ExhaustionSeries{
			AvgPercentR:   []float64{-50, -50},
			ShortPercentR: []float64{-60, -40},
			LongPercentR:  []float64{-50, -50},
		},
	}
	c := DefaultConfig()
	events := c.detectExhaustion(alignSeries(s))
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != models.SignalBullishCross || events[0].System != models.SystemExhaustion {
		t.Fatalf("expected exhaustion BullishCross, got %s/%s", events[0].System, events[0].Type)
	}
}

func TestSeverityBands(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{-97, SeverityExtreme},
		{-3, SeverityExtreme},
		{-92, SeverityCritical},
		{-85, SeverityHigh},
		{-25, SeverityModerate},
		{-50, SeverityNormal},
	}
	for _, tc := range cases {
		if got := severityFor(tc.v); got != tc.want {
			t.Fatalf("severityFor(%v): want %s, got %s", tc.v, tc.want, got)
		}
	}
}

func TestExhaustionRiskLevels(t *testing.T) {
	c := DefaultConfig()
	cases := []struct {
		v    float64
		want string
	}{
		{-85, "Low"},
		{-50, "Normal"},
		{-15, "High"},
		{-5, "Critical"},
	}
	for _, tc := range cases {
		if got := c.exhaustionRiskLevel(tc.v); got != tc.want {
			t.Fatalf("risk(%v): want %s, got %s", tc.v, tc.want, got)
		}
	}
}

func TestExhaustionStatusAbsent(t *testing.T) {
	c := DefaultConfig()
	s := &models.IndicatorSeries{Dates: testDates(2), Price: []float64{1, 2}}
	if status := c.exhaustionStatus(alignSeries(s)); status != nil {
		t.Fatalf("expected nil status without exhaustion data, got %+v", status)
	}
}
