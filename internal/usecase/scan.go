package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"TrendPulse/internal/domain/models"
)

// ScanUseCase runs the analyzer across a batch of snapshots with a bounded
// worker pool and returns the resulting reports ranked by confluence.
type ScanUseCase struct {
	analyze *AnalyzeUseCase
	workers int
	timeout time.Duration
}

func NewScanUseCase(analyze *AnalyzeUseCase, workers int) *ScanUseCase {
	if workers <= 0 {
		workers = 4
	}
	return &ScanUseCase{analyze: analyze, workers: workers, timeout: 60 * time.Second}
}

// ScanResult is one batch outcome: reports sorted by confluence descending,
// plus per-ticker errors for snapshots that failed to convert.
type ScanResult struct {
	Reports []*models.AnalysisReport `json:"reports"`
	Errors  map[string]string        `json:"errors,omitempty"`
}

func (uc *ScanUseCase) Scan(ctx context.Context, snapshots []*models.SnapshotPayload) (*ScanResult, error) {
	if len(snapshots) == 0 {
		return nil, fmt.Errorf("no snapshots to scan")
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	type item struct {
		ticker string
		report *models.AnalysisReport
		err    error
	}
	in := make(chan *models.SnapshotPayload, len(snapshots))
	out := make(chan item, len(snapshots))

	var wg sync.WaitGroup
	for w := 0; w < uc.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range in {
				report, err := uc.analyze.Analyze(ctx, p, "scan")
				out <- item{ticker: p.Ticker, report: report, err: err}
			}
		}()
	}

	for _, p := range snapshots {
		in <- p
	}
	close(in)
	go func() { wg.Wait(); close(out) }()

	res := &ScanResult{Errors: map[string]string{}}
	for it := range out {
		if it.err != nil {
			res.Errors[it.ticker] = it.err.Error()
			continue
		}
		res.Reports = append(res.Reports, it.report)
	}

	sort.Slice(res.Reports, func(i, j int) bool {
		return res.Reports[i].Confluence.Total > res.Reports[j].Confluence.Total
	})
	if len(res.Errors) == 0 {
		res.Errors = nil
	}
	return res, nil
}
