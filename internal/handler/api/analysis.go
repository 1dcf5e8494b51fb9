package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	models "TrendPulse/internal/domain/models"
	domrepo "TrendPulse/internal/domain/repository"
	icache "TrendPulse/internal/service/cache"
	"TrendPulse/internal/service/ratelimit"
	"TrendPulse/internal/usecase"
	pkgcache "TrendPulse/pkg/cache"
	xhttp "TrendPulse/pkg/http"
	xlogger "TrendPulse/pkg/logger"
	"TrendPulse/pkg/queue"

	"github.com/labstack/echo/v4"
)

// AnalysisHandler exposes the analysis engine over HTTP.
type AnalysisHandler struct {
	logger    *xlogger.Logger
	analyze   *usecase.AnalyzeUseCase
	scan      *usecase.ScanUseCase
	archive   domrepo.EventArchive
	jobs      queue.QueueService
	respCache icache.BytesCache
	rl        *ratelimit.Limiter
	collector *usecase.SnapshotCollector
}

func NewAnalysisHandler(
	logger *xlogger.Logger,
	analyze *usecase.AnalyzeUseCase,
	scan *usecase.ScanUseCase,
) *AnalysisHandler {
	return &AnalysisHandler{
		logger:  logger,
		analyze: analyze,
		scan:    scan,
		rl:      ratelimit.New(),
	}
}

// SetArchive enables the events endpoint.
func (h *AnalysisHandler) SetArchive(a domrepo.EventArchive) { h.archive = a }

// SetJobQueue enables asynchronous scans.
func (h *AnalysisHandler) SetJobQueue(q queue.QueueService) { h.jobs = q }

// SetResponseCache enables short-lived response caching on read endpoints.
func (h *AnalysisHandler) SetResponseCache(c icache.BytesCache) { h.respCache = c }

// SetCollector enables stream status on the health endpoint.
func (h *AnalysisHandler) SetCollector(c *usecase.SnapshotCollector) { h.collector = c }

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/analyze", h.GetReport)
	g.POST("/analyze", h.Analyze)
	g.POST("/scan", h.Scan)
	g.GET("/events", h.Events)
	e.GET("/healthz", h.Health)
}

// GetReport returns the most recent cached report for a ticker.
func (h *AnalysisHandler) GetReport(c echo.Context) error {
	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	report, err := h.analyze.GetCachedReport(c.Request().Context(), req.Ticker)
	if err != nil {
		if errors.Is(err, pkgcache.ErrCacheMiss) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("no report for %s", req.Ticker))
		}
		h.logger.Error("report lookup error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=15")
	return xhttp.SuccessResponse(c, report)
}

// Analyze runs a full analysis pass over a posted snapshot.
func (h *AnalysisHandler) Analyze(c echo.Context) error {
	p := &models.SnapshotPayload{}
	if err := c.Bind(p); err != nil {
		return xhttp.BadRequestResponse(c, xhttp.BadRequestError("invalid snapshot payload"))
	}
	if p.Ticker == "" {
		return xhttp.BadRequestResponse(c, xhttp.BadRequestError("ticker required"))
	}
	if !h.rl.Allow(c.RealIP()+":analyze", 10, 2) {
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("rate_limited", "", "rate limited", http.StatusTooManyRequests))
	}

	report, err := h.analyze.Analyze(c.Request().Context(), p, "api")
	if err != nil {
		h.logger.Error("analyze usecase error",
			xlogger.String("ticker", p.Ticker),
			xlogger.Error(err),
		)
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, report)
}

// Scan analyzes a batch of snapshots. With ?async=true and a job queue
// configured the batch is enqueued instead and processed by workers.
func (h *AnalysisHandler) Scan(c echo.Context) error {
	req := &models.ScanRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":scan", 3, 0.5) {
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("rate_limited", "", "rate limited", http.StatusTooManyRequests))
	}

	ctx := c.Request().Context()
	if h.jobs != nil && c.QueryParam("async") == "true" {
		payload := usecase.ScanJobPayload{Snapshots: req.Snapshots}
		if err := h.jobs.PublishMessage(ctx, usecase.ScanJobType, payload); err != nil {
			h.logger.Error("scan enqueue error", xlogger.Error(err))
			return xhttp.AppErrorResponse(c, err)
		}
		return xhttp.DataResponse(c, http.StatusAccepted, map[string]interface{}{
			"queued":    true,
			"snapshots": len(req.Snapshots),
		})
	}

	res, err := h.scan.Scan(ctx, req.Snapshots)
	if err != nil {
		h.logger.Error("scan usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Events queries archived signal events for a ticker over a lookback window.
func (h *AnalysisHandler) Events(c echo.Context) error {
	req := &models.EventsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if h.archive == nil {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("event archive not configured"))
	}
	lb := domrepo.NormalizeLookback(req.Lookback)

	cacheKey := pkgcache.GenerateKeyWithParams("events", req.Ticker, lb)
	if h.respCache != nil {
		if b, ok, cerr := h.respCache.GetBytes(cacheKey); cerr == nil && ok {
			return c.JSONBlob(http.StatusOK, b)
		}
	}

	now := time.Now()
	events, err := h.archive.Query(c.Request().Context(), req.Ticker, now.Add(-lb.Duration()), now, req.Limit)
	if err != nil {
		h.logger.Error("events query error",
			xlogger.String("ticker", req.Ticker),
			xlogger.Error(err),
		)
		return xhttp.AppErrorResponse(c, err)
	}

	if h.respCache != nil {
		if b, merr := json.Marshal(events); merr == nil {
			_ = h.respCache.SetBytes(cacheKey, b, 30*time.Second)
		}
	}
	return xhttp.SuccessResponse(c, events)
}

// Health reports subsystem health. Degraded subsystems do not fail the check;
// only a dead archive does.
func (h *AnalysisHandler) Health(c echo.Context) error {
	status := map[string]interface{}{"status": "ok"}
	if h.archive != nil {
		if err := h.archive.Health(c.Request().Context()); err != nil {
			status["status"] = "degraded"
			status["archive"] = err.Error()
			return c.JSON(http.StatusServiceUnavailable, status)
		}
		status["archive"] = "ok"
	}
	if h.collector != nil {
		status["stream_connected"] = h.collector.IsConnected()
	}
	return c.JSON(http.StatusOK, status)
}
