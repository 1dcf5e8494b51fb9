package analysis

import (
	"strings"
	"testing"
	"time"

	"TrendPulse/internal/domain/models"
)

func TestAnalyzeEmptySnapshot(t *testing.T) {
	az, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	report := az.Analyze(nil, time.Now())
	if report == nil {
		t.Fatalf("expected a report for an empty snapshot")
	}
	if report.WaveTrend != nil || report.RSI3M3 != nil || report.Exhaustion != nil || report.SAC != nil {
		t.Fatalf("expected nil subsystem statuses, got %+v", report)
	}
	if report.Backtest.Bucket != models.BucketInsufficient {
		t.Fatalf("expected insufficient-data backtest, got %s", report.Backtest.Bucket)
	}
	if !strings.Contains(report.Confluence.Summary, "(0/4 systems active)") {
		t.Fatalf("expected 0/4 active qualifier, got %q", report.Confluence.Summary)
	}
}

func TestAnalyzePriceActionFallback(t *testing.T) {
	az, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	s := &models.IndicatorSeries{
		Ticker: "TEST",
		Dates:  testDates(2),
		Price:  []float64{100, 120},
	}
	report := az.Analyze(s, s.Dates[1])
	if len(report.Timeline) == 0 {
		t.Fatalf("expected price-action fallback events on a bare price series")
	}
	if report.Timeline[0].System != models.SystemPriceAction {
		t.Fatalf("expected a price-action event, got %s", report.Timeline[0].System)
	}
}

func TestAnalyzeRaggedArraysTruncate(t *testing.T) {
	az, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	s := &models.IndicatorSeries{
		Ticker: "TEST",
		Dates:  testDates(10),
		Price:  []float64{1, 2, 3},
		WT1:    []float64{-70, -60},
		WT2:    []float64{-50, -65, -60, -55},
	}
	report := az.Analyze(s, s.Dates[9])
	if report == nil {
		t.Fatalf("ragged arrays must not fail the run")
	}
	if report.WaveTrend == nil {
		t.Fatalf("expected a WaveTrend status from the truncated series")
	}
}

func TestAnalyzeSummaryCounts(t *testing.T) {
	az, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	s := &models.IndicatorSeries{
		Ticker:    "TEST",
		Dates:     testDates(2),
		Price:     []float64{100, 150},
		WT1:       []float64{-70, -60},
		WT2:       []float64{-50, -65},
		MoneyFlow: []float64{1, 1},
	}
	report := az.Analyze(s, s.Dates[1])
	if report.Summary.GoldBuySignals != 1 {
		t.Fatalf("expected 1 recent GoldBuy, got %d", report.Summary.GoldBuySignals)
	}
	if report.Summary.CurrentPrice != 150 {
		t.Fatalf("expected current price 150, got %v", report.Summary.CurrentPrice)
	}
	if report.Summary.PriceChangePct != 50 {
		t.Fatalf("expected +50%% change, got %v", report.Summary.PriceChangePct)
	}
}

func TestConfigValidation(t *testing.T) {
	c := DefaultConfig()
	c.RSIUpper = 30 // below lower
	if _, err := New(c); err == nil {
		t.Fatalf("expected validation error for inverted thresholds")
	}
}
