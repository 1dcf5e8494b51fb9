package usecase

import (
	"context"
	"fmt"

	"TrendPulse/internal/domain/models"
	"TrendPulse/pkg/queue"
)

// ScanJobType is the queue message type for asynchronous scan requests.
const ScanJobType = "scan_snapshots"

// ScanJobPayload is the queued form of a scan request.
type ScanJobPayload struct {
	Snapshots []*models.SnapshotPayload `json:"snapshots"`
}

// ScanJob processes queued scan batches so large watchlist scans do not
// block the HTTP request path.
type ScanJob struct {
	scan *ScanUseCase
}

func NewScanJob(scan *ScanUseCase) *ScanJob {
	return &ScanJob{scan: scan}
}

func (j *ScanJob) Name() string { return "scan-snapshots" }

func (j *ScanJob) Type() string { return ScanJobType }

func (j *ScanJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[ScanJobPayload](payload)
	if err != nil {
		return fmt.Errorf("parse scan payload: %w", err)
	}
	if _, err := j.scan.Scan(ctx, p.Snapshots); err != nil {
		return fmt.Errorf("scan batch: %w", err)
	}
	return nil
}

var _ queue.Job = (*ScanJob)(nil)
