package usecase

import (
	"context"
	"testing"

	"TrendPulse/internal/analysis"
	"TrendPulse/internal/domain/models"
	applogger "TrendPulse/pkg/logger"
)

type stubMetrics struct{}

func (stubMetrics) RecordAnalysis(string)            {}
func (stubMetrics) RecordSignal(string, string)      {}
func (stubMetrics) RecordError(string)               {}
func (stubMetrics) RecordConfluence(string, float64) {}
func (stubMetrics) RecordLatency(string, float64)    {}

func newTestAnalyzeUseCase(t *testing.T) *AnalyzeUseCase {
	t.Helper()
	az, err := analysis.New(analysis.DefaultConfig())
	if err != nil {
		t.Fatalf("analyzer: %v", err)
	}
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewAnalyzeUseCase(az, nil, nil, nil, nil, stubMetrics{}, l, 0)
}

func fp(v float64) *float64 { return &v }

func testSnapshot(ticker string) *models.SnapshotPayload {
	return &models.SnapshotPayload{
		Ticker: ticker,
		Dates:  []string{"2024-01-02", "2024-01-03"},
		Price:  []*float64{fp(100), fp(105)},
	}
}

func TestAnalyzeProducesReport(t *testing.T) {
	uc := newTestAnalyzeUseCase(t)

	report, err := uc.Analyze(context.Background(), testSnapshot("AAPL"), "api")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.Ticker != "AAPL" {
		t.Fatalf("ticker = %q", report.Ticker)
	}
	if report.Summary.CurrentPrice != 105 {
		t.Fatalf("current price = %v, want 105", report.Summary.CurrentPrice)
	}
}

func TestAnalyzeRejectsBadPayload(t *testing.T) {
	uc := newTestAnalyzeUseCase(t)

	if _, err := uc.Analyze(context.Background(), &models.SnapshotPayload{Ticker: "AAPL"}, "api"); err == nil {
		t.Fatalf("expected conversion error for missing dates")
	}
}

func TestScanPartialFailure(t *testing.T) {
	scan := NewScanUseCase(newTestAnalyzeUseCase(t), 2)

	res, err := scan.Scan(context.Background(), []*models.SnapshotPayload{
		testSnapshot("AAPL"),
		{Ticker: "BROKEN"},
		testSnapshot("MSFT"),
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(res.Reports) != 2 {
		t.Fatalf("reports = %d, want 2", len(res.Reports))
	}
	if _, ok := res.Errors["BROKEN"]; !ok {
		t.Fatalf("missing error for BROKEN, got %v", res.Errors)
	}
	for i := 1; i < len(res.Reports); i++ {
		if res.Reports[i-1].Confluence.Total < res.Reports[i].Confluence.Total {
			t.Fatalf("reports not sorted by confluence")
		}
	}
}

func TestScanEmptyBatch(t *testing.T) {
	scan := NewScanUseCase(newTestAnalyzeUseCase(t), 2)
	if _, err := scan.Scan(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty batch")
	}
}
