package usecase

import (
	"context"
	"fmt"
	"time"

	"TrendPulse/internal/analysis"
	"TrendPulse/internal/domain/models"
	domrepo "TrendPulse/internal/domain/repository"
	domsvc "TrendPulse/internal/domain/service"
	pkgcache "TrendPulse/pkg/cache"
	applogger "TrendPulse/pkg/logger"
)

// AnalyzeUseCase runs one full analysis pass over a snapshot: series
// conversion, optional SAC enrichment, detection, scoring, then the
// side effects (cache, archive, alerts, metrics). Dependencies other than
// the analyzer and metrics are optional and skipped when nil.
type AnalyzeUseCase struct {
	analyzer  *analysis.Analyzer
	predictor domsvc.Predictor
	cache     pkgcache.Service
	archive   domrepo.EventArchive
	alerts    domrepo.AlertPublisher
	metrics   domrepo.Metrics
	l         *applogger.Logger
	reportTTL time.Duration
}

func NewAnalyzeUseCase(
	analyzer *analysis.Analyzer,
	predictor domsvc.Predictor,
	cache pkgcache.Service,
	archive domrepo.EventArchive,
	alerts domrepo.AlertPublisher,
	metrics domrepo.Metrics,
	l *applogger.Logger,
	reportTTL time.Duration,
) *AnalyzeUseCase {
	if reportTTL <= 0 {
		reportTTL = 5 * time.Minute
	}
	return &AnalyzeUseCase{
		analyzer:  analyzer,
		predictor: predictor,
		cache:     cache,
		archive:   archive,
		alerts:    alerts,
		metrics:   metrics,
		l:         l,
		reportTTL: reportTTL,
	}
}

func reportKey(ticker string) string { return pkgcache.GenerateKey("report", ticker) }

// Analyze converts the payload, enriches it with a SAC prediction when the
// payload did not carry one, runs the analyzer, and fans out side effects.
// Side-effect failures are logged and counted but never fail the analysis.
func (uc *AnalyzeUseCase) Analyze(ctx context.Context, p *models.SnapshotPayload, source string) (*models.AnalysisReport, error) {
	start := time.Now()

	series, err := p.ToSeries()
	if err != nil {
		uc.metrics.RecordError("payload_convert")
		return nil, fmt.Errorf("convert payload: %w", err)
	}

	if series.SAC == nil && uc.predictor != nil {
		pred, perr := uc.predictor.Predict(ctx, series.Ticker, series.Close)
		if perr != nil {
			// degrade to the neutral SAC subsystem
			uc.metrics.RecordError("sac_predict")
			uc.l.Warn("sac prediction unavailable",
				applogger.String("ticker", series.Ticker),
				applogger.Error(perr),
			)
		} else if pred != nil {
			series.SAC = pred
		}
	}

	report := uc.analyzer.Analyze(series, time.Now())

	uc.metrics.RecordAnalysis(source)
	uc.metrics.RecordConfluence(report.Ticker, float64(report.Confluence.Total))
	for _, entry := range report.Timeline {
		uc.metrics.RecordSignal(string(entry.System), string(entry.Type))
	}

	uc.cacheReport(ctx, report)
	uc.archiveEvents(ctx, report)
	uc.publishAlerts(ctx, report)

	uc.metrics.RecordLatency("analyze", time.Since(start).Seconds())
	return report, nil
}

// Process adapts Analyze to the ingest pipeline's processor interface.
func (uc *AnalyzeUseCase) Process(ctx context.Context, p *models.SnapshotPayload) error {
	_, err := uc.Analyze(ctx, p, "stream")
	return err
}

// GetCachedReport returns the most recent report for the ticker, or
// cache.ErrCacheMiss when none is stored.
func (uc *AnalyzeUseCase) GetCachedReport(ctx context.Context, ticker string) (*models.AnalysisReport, error) {
	if uc.cache == nil {
		return nil, pkgcache.ErrCacheMiss
	}
	var report models.AnalysisReport
	if err := uc.cache.Get(ctx, reportKey(ticker), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (uc *AnalyzeUseCase) cacheReport(ctx context.Context, report *models.AnalysisReport) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(ctx, reportKey(report.Ticker), report, uc.reportTTL); err != nil {
		uc.metrics.RecordError("report_cache")
		uc.l.Warn("report cache set failed",
			applogger.String("ticker", report.Ticker),
			applogger.Error(err),
		)
	}
}

func (uc *AnalyzeUseCase) archiveEvents(ctx context.Context, report *models.AnalysisReport) {
	if uc.archive == nil || len(report.Timeline) == 0 {
		return
	}
	events := make([]models.SignalEvent, len(report.Timeline))
	for i, entry := range report.Timeline {
		events[i] = entry.SignalEvent
	}
	if err := uc.archive.Store(ctx, report.Ticker, events); err != nil {
		uc.metrics.RecordError("archive_store")
		uc.l.Warn("event archive store failed",
			applogger.String("ticker", report.Ticker),
			applogger.Int("events", len(events)),
			applogger.Error(err),
		)
	}
}

// publishAlerts emits alerts for same-day events of Strong or better.
// Older timeline entries were already alerted on a previous pass.
func (uc *AnalyzeUseCase) publishAlerts(ctx context.Context, report *models.AnalysisReport) {
	if uc.alerts == nil {
		return
	}
	var batch []*models.SignalAlert
	for _, entry := range report.Timeline {
		if entry.DaysAgo > 0 || entry.Strength < models.StrengthStrong {
			continue
		}
		batch = append(batch, &models.SignalAlert{
			Ticker:      report.Ticker,
			Event:       entry.SignalEvent,
			Confluence:  report.Confluence.Total,
			GeneratedAt: report.GeneratedAt,
		})
	}
	if len(batch) == 0 {
		return
	}
	if err := uc.alerts.PublishBatch(ctx, batch); err != nil {
		uc.metrics.RecordError("alert_publish")
		uc.l.Warn("alert publish failed",
			applogger.String("ticker", report.Ticker),
			applogger.Int("alerts", len(batch)),
			applogger.Error(err),
		)
	}
}
