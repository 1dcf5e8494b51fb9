package models

import (
	"math"
	"testing"
)

func fp(v float64) *float64 { return &v }

func TestToSeriesNullsBecomeNaN(t *testing.T) {
	p := &SnapshotPayload{
		Ticker: "AAPL",
		Dates:  []string{"2024-01-02", "2024-01-03"},
		Price:  []*float64{fp(100), nil},
		WT1:    []*float64{nil, fp(-42.5)},
	}
	s, err := p.ToSeries()
	if err != nil {
		t.Fatalf("ToSeries: %v", err)
	}
	if s.Price[0] != 100 {
		t.Fatalf("price[0] = %v, want 100", s.Price[0])
	}
	if !math.IsNaN(s.Price[1]) {
		t.Fatalf("price[1] = %v, want NaN", s.Price[1])
	}
	if !math.IsNaN(s.WT1[0]) || s.WT1[1] != -42.5 {
		t.Fatalf("wt1 = %v", s.WT1)
	}
}

func TestToSeriesMissingBundlesStayNil(t *testing.T) {
	p := &SnapshotPayload{
		Ticker: "AAPL",
		Dates:  []string{"2024-01-02"},
	}
	s, err := p.ToSeries()
	if err != nil {
		t.Fatalf("ToSeries: %v", err)
	}
	if s.RSI3M3 != nil || s.Exhaustion != nil || s.SAC != nil || s.WaveTrendSignals != nil {
		t.Fatalf("optional bundles should be nil when absent")
	}
	if s.Price != nil || s.WT1 != nil {
		t.Fatalf("absent arrays should stay nil")
	}
}

func TestToSeriesResolvesSignalDates(t *testing.T) {
	p := &SnapshotPayload{
		Ticker: "MSFT",
		Dates:  []string{"2024-01-02", "2024-01-03", "2024-01-04"},
		Signals: &struct {
			Buy     []string `json:"buy"`
			GoldBuy []string `json:"goldBuy"`
			Sell    []string `json:"sell"`
		}{
			Buy:  []string{"2024-01-03", "2099-12-31"},
			Sell: []string{"2024-01-04"},
		},
	}
	s, err := p.ToSeries()
	if err != nil {
		t.Fatalf("ToSeries: %v", err)
	}
	if got := s.WaveTrendSignals.Buy; len(got) != 1 || got[0] != 1 {
		t.Fatalf("buy indices = %v, want [1]", got)
	}
	if got := s.WaveTrendSignals.Sell; len(got) != 1 || got[0] != 2 {
		t.Fatalf("sell indices = %v, want [2]", got)
	}
	if len(s.WaveTrendSignals.GoldBuy) != 0 {
		t.Fatalf("goldBuy indices = %v, want empty", s.WaveTrendSignals.GoldBuy)
	}
}

func TestToSeriesAcceptsIntradayDates(t *testing.T) {
	p := &SnapshotPayload{
		Ticker: "NVDA",
		Dates:  []string{"2024-01-02 09:30:00", "2024-01-02T10:30:00Z"},
	}
	s, err := p.ToSeries()
	if err != nil {
		t.Fatalf("ToSeries: %v", err)
	}
	if s.Dates[1].Hour() != 10 {
		t.Fatalf("dates[1] = %v", s.Dates[1])
	}
}

func TestToSeriesRejectsInvalidPayload(t *testing.T) {
	if _, err := (&SnapshotPayload{Dates: []string{"2024-01-02"}}).ToSeries(); err == nil {
		t.Fatalf("expected error for missing ticker")
	}
	if _, err := (&SnapshotPayload{Ticker: "AAPL"}).ToSeries(); err == nil {
		t.Fatalf("expected error for missing dates")
	}
	if _, err := (&SnapshotPayload{Ticker: "AAPL", Dates: []string{"bad"}}).ToSeries(); err == nil {
		t.Fatalf("expected error for bad date")
	}
}

func TestRSIStateCodesFromFloats(t *testing.T) {
	p := &SnapshotPayload{
		Ticker: "AAPL",
		Dates:  []string{"2024-01-02", "2024-01-03", "2024-01-04"},
		RSI3M3: &struct {
			Values []*float64 `json:"rsi3m3"`
			State  []*float64 `json:"state"`
		}{
			Values: []*float64{fp(55), fp(62), fp(58)},
			State:  []*float64{fp(0), fp(1), nil},
		},
	}
	s, err := p.ToSeries()
	if err != nil {
		t.Fatalf("ToSeries: %v", err)
	}
	want := []int{int(RSINeutral), int(RSIBullish), int(RSIBullish)}
	for i, st := range s.RSI3M3.States {
		if st != want[i] {
			t.Fatalf("state[%d] = %d, want %d", i, st, want[i])
		}
	}
}

func TestRSIStateNullsCarryForward(t *testing.T) {
	p := &SnapshotPayload{
		Ticker: "AAPL",
		Dates:  []string{"2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"},
		RSI3M3: &struct {
			Values []*float64 `json:"rsi3m3"`
			State  []*float64 `json:"state"`
		}{
			Values: []*float64{fp(30), fp(32), nil, fp(35)},
			State:  []*float64{nil, fp(2), nil, nil},
		},
	}
	s, err := p.ToSeries()
	if err != nil {
		t.Fatalf("ToSeries: %v", err)
	}
	// A null mid-series is a data gap, not a flip back to Neutral.
	want := []int{int(RSINeutral), int(RSIBearish), int(RSIBearish), int(RSIBearish)}
	for i, st := range s.RSI3M3.States {
		if st != want[i] {
			t.Fatalf("state[%d] = %d, want %d", i, st, want[i])
		}
	}
}
