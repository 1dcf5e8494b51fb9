package middleware

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"TrendPulse/internal/domain/models"
)

type stubProc struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *stubProc) Process(ctx context.Context, p *models.SnapshotPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.err
}

func (s *stubProc) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubMetrics struct{}

func (stubMetrics) RecordAnalysis(string)            {}
func (stubMetrics) RecordSignal(string, string)      {}
func (stubMetrics) RecordError(string)               {}
func (stubMetrics) RecordConfluence(string, float64) {}
func (stubMetrics) RecordLatency(string, float64)    {}

func snapshot(ticker string) *models.SnapshotPayload {
	return &models.SnapshotPayload{Ticker: ticker, Dates: []string{"2024-01-02"}}
}

func TestPipelineRejectsInvalidSnapshots(t *testing.T) {
	proc := &stubProc{}
	p := NewIngestPipeline(proc, stubMetrics{})

	if err := p.Process(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil snapshot")
	}
	if err := p.Process(context.Background(), &models.SnapshotPayload{Dates: []string{"2024-01-02"}}); err == nil {
		t.Fatalf("expected error for empty ticker")
	}
	if err := p.Process(context.Background(), &models.SnapshotPayload{Ticker: "AAPL"}); err == nil {
		t.Fatalf("expected error for empty dates")
	}
	if proc.count() != 0 {
		t.Fatalf("invalid snapshots reached downstream")
	}
}

func TestPipelineThrottlesPerTicker(t *testing.T) {
	proc := &stubProc{}
	p := NewIngestPipeline(proc, stubMetrics{}, WithMinGap(time.Hour))

	if err := p.Process(context.Background(), snapshot("AAPL")); err != nil {
		t.Fatalf("first process: %v", err)
	}
	if err := p.Process(context.Background(), snapshot("AAPL")); err != nil {
		t.Fatalf("throttled process should not error: %v", err)
	}
	if got := proc.count(); got != 1 {
		t.Fatalf("downstream calls = %d, want 1", got)
	}

	// another ticker is tracked independently
	if err := p.Process(context.Background(), snapshot("MSFT")); err != nil {
		t.Fatalf("second ticker: %v", err)
	}
	if got := proc.count(); got != 2 {
		t.Fatalf("downstream calls = %d, want 2", got)
	}
}

func TestPipelineBuffersOnDownstreamError(t *testing.T) {
	proc := &stubProc{err: fmt.Errorf("boom")}
	p := NewIngestPipeline(proc, stubMetrics{})

	if err := p.Process(context.Background(), snapshot("AAPL")); err == nil {
		t.Fatalf("expected downstream error to propagate")
	}
	if got := proc.count(); got != 1 {
		t.Fatalf("downstream calls = %d, want 1", got)
	}
}
