package analysis

import (
	"testing"
	"time"

	"TrendPulse/internal/domain/models"
)

func TestRSIEventsOnlyOnStateChanges(t *testing.T) {
	s := &models.IndicatorSeries{
		Ticker: "TEST",
		Dates:  testDates(6),
		RSI3M3: &models.RSI3M3Series{
			Values: []float64{50, 50, 65, 65, 35, 35},
			States: []int{0, 0, 1, 1, 2, 2},
		},
	}
	c := DefaultConfig()
	now := s.Dates[5]
	status, events := c.analyzeRSI3M3(alignSeries(s), now)

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Type != models.SignalRSIBullishEntry || events[0].SourceIndex != 2 {
		t.Fatalf("expected bullish entry at 2, got %s at %d", events[0].Type, events[0].SourceIndex)
	}
	if events[1].Type != models.SignalRSIBearishEntry || events[1].SourceIndex != 4 {
		t.Fatalf("expected bearish entry at 4, got %s at %d", events[1].Type, events[1].SourceIndex)
	}

	tr := status.LastTransition
	if tr == nil {
		t.Fatalf("expected a last transition")
	}
	if tr.AtIndex != 4 || tr.FromState != models.RSIBullish || tr.ToState != models.RSIBearish {
		t.Fatalf("unexpected transition %+v", tr)
	}
	if tr.DurationInPriorState != 2 {
		t.Fatalf("expected duration 2, got %d", tr.DurationInPriorState)
	}
	if !tr.IsValidSignal {
		t.Fatalf("expected a valid signal")
	}
	if !status.IsFresh {
		t.Fatalf("expected fresh state change")
	}
}

func TestRSINoChangeNoTransition(t *testing.T) {
	s := &models.IndicatorSeries{
		Dates: testDates(3),
		RSI3M3: &models.RSI3M3Series{
			Values: []float64{65, 65, 65},
			States: []int{1, 1, 1},
		},
	}
	c := DefaultConfig()
	status, events := c.analyzeRSI3M3(alignSeries(s), time.Now())
	if len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
	if status.LastTransition != nil {
		t.Fatalf("expected no transition, got %+v", status.LastTransition)
	}
	if status.State != models.RSIBullish {
		t.Fatalf("expected Bullish, got %s", status.State)
	}
}

func TestDeriveRSIStatesHysteresis(t *testing.T) {
	c := DefaultConfig()
	values := []float64{50, 65, 59, 50, 38, 39.5, 65}
	want := []int{
		int(models.RSINeutral),
		int(models.RSIBullish),    // crossed above upper
		int(models.RSITransition), // fell back under the inner line
		int(models.RSITransition), // held, no threshold crossed
		int(models.RSIBearish),    // crossed below lower
		int(models.RSITransition), // rose back over the inner line
		int(models.RSIBullish),    // crossed above upper again
	}
	got := c.deriveRSIStates(values, len(values))
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("state[%d]: want %d, got %d", i, want[i], got[i])
		}
	}
}

func TestAnalyzeRSIDerivesWhenStatesAbsent(t *testing.T) {
	s := &models.IndicatorSeries{
		Dates: testDates(3),
		RSI3M3: &models.RSI3M3Series{
			Values: []float64{50, 65, 66},
		},
	}
	c := DefaultConfig()
	status, events := c.analyzeRSI3M3(alignSeries(s), s.Dates[2])
	if status.State != models.RSIBullish {
		t.Fatalf("expected derived Bullish state, got %s", status.State)
	}
	if len(events) != 1 || events[0].Type != models.SignalRSIBullishEntry {
		t.Fatalf("expected one bullish entry event, got %+v", events)
	}
}
