package analysis

import (
	"strings"
	"testing"

	"TrendPulse/internal/domain/models"
)

func TestConfluenceAllBullish(t *testing.T) {
	c := DefaultConfig()
	s := &models.IndicatorSeries{
		Dates:     testDates(2),
		WT1:       []float64{-70, -60},
		WT2:       []float64{-50, -65},
		MoneyFlow: []float64{1, 1},
		SAC:       &models.SACPrediction{Direction: "up", Confidence: 0.9},
	}
	events := []models.SignalEvent{
		{Date: s.Dates[1], Type: models.SignalGoldBuy, System: models.SystemWaveTrend, SourceIndex: 1},
	}
	rsi := &models.RSI3M3Status{State: models.RSIBullish}
	exh := &models.ExhaustionStatus{AvgPercentR: -85}

	score := c.scoreConfluence(alignSeries(s), events, rsi, exh)
	if score.Total != 100 {
		t.Fatalf("expected total 100, got %d", score.Total)
	}
	if !strings.Contains(score.Summary, "Strong bullish confluence") {
		t.Fatalf("unexpected summary %q", score.Summary)
	}
	if !strings.Contains(score.Summary, "(4/4 systems active)") {
		t.Fatalf("expected 4/4 active qualifier, got %q", score.Summary)
	}
}

func TestConfluenceClampedAtZero(t *testing.T) {
	c := DefaultConfig()
	s := &models.IndicatorSeries{
		Dates:     testDates(2),
		WT1:       []float64{-10, -20},
		WT2:       []float64{0, 0},
		MoneyFlow: []float64{-1, -1},
		SAC:       &models.SACPrediction{Direction: "down", Confidence: 0.9},
	}
	events := []models.SignalEvent{
		{Date: s.Dates[1], Type: models.SignalSell, System: models.SystemWaveTrend, SourceIndex: 1},
	}
	rsi := &models.RSI3M3Status{State: models.RSIBearish}
	exh := &models.ExhaustionStatus{AvgPercentR: -5}

	score := c.scoreConfluence(alignSeries(s), events, rsi, exh)
	if score.Total != 0 {
		t.Fatalf("expected total clamped to 0, got %d", score.Total)
	}
	sum := 0
	for _, sub := range score.Subsystems {
		if sub.Score < 0 || sub.Score > 25 {
			t.Fatalf("subsystem %s score %d out of range after clamping", sub.System, sub.Score)
		}
		sum += sub.Score
	}
	if sum != score.Total {
		t.Fatalf("subsystem scores sum to %d, total is %d", sum, score.Total)
	}
	if !strings.Contains(score.Summary, "Strong bearish confluence") {
		t.Fatalf("unexpected summary %q", score.Summary)
	}
}

func TestConfluenceMissingExhaustionNeutral(t *testing.T) {
	c := DefaultConfig()
	s := &models.IndicatorSeries{
		Dates: testDates(2),
		WT1:   []float64{-10, -5},
		WT2:   []float64{-20, -20},
	}
	score := c.scoreConfluence(alignSeries(s), nil, &models.RSI3M3Status{State: models.RSINeutral}, nil)

	var exh models.SubsystemScore
	for _, sub := range score.Subsystems {
		if sub.System == models.SystemExhaustion {
			exh = sub
		}
	}
	if exh.Score != c.NeutralSubsystemScore {
		t.Fatalf("expected neutral default %d, got %d", c.NeutralSubsystemScore, exh.Score)
	}
	if exh.Aligned != nil {
		t.Fatalf("absent subsystem must report nil alignment, got %v", *exh.Aligned)
	}
	if !strings.Contains(score.Summary, "(2/4 systems active)") {
		t.Fatalf("expected 2/4 active qualifier, got %q", score.Summary)
	}
}

func TestConfluenceTotalBounds(t *testing.T) {
	c := DefaultConfig()
	fixtures := []*models.IndicatorSeries{
		nil,
		{Dates: testDates(1)},
		{Dates: testDates(2), WT1: []float64{-70, -60}, WT2: []float64{-50, -65}},
	}
	az, err := New(c)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	for i, s := range fixtures {
		report := az.Analyze(s, testDates(1)[0])
		total := report.Confluence.Total
		if total < 0 || total > 100 {
			t.Fatalf("fixture %d: total %d out of [0,100]", i, total)
		}
	}
}
