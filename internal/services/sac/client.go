package sac

import (
	"context"
	"fmt"
	"time"

	"TrendPulse/internal/domain/models"
	domsvc "TrendPulse/internal/domain/service"
	icache "TrendPulse/internal/service/cache"
	"TrendPulse/internal/service/ratelimit"
	"TrendPulse/pkg/config"
	xhttp "TrendPulse/pkg/http"
)

// HTTPPredictor calls the external SAC model service for a directional
// prediction. Results are cached per ticker and requests are rate limited so
// a scan burst cannot hammer the model service.
type HTTPPredictor struct {
	baseURL  string
	client   *xhttp.Client
	cache    *icache.TTLCache
	cacheTTL time.Duration
	limiter  *ratelimit.Limiter
}

func NewHTTPPredictor(cfg *config.Config) *HTTPPredictor {
	timeout := cfg.SAC.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	ttl := cfg.SAC.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &HTTPPredictor{
		baseURL:  cfg.SAC.URL,
		client:   xhttp.NewClient(xhttp.WithTimeout(timeout)),
		cache:    icache.NewTTLCache(),
		cacheTTL: ttl,
		limiter:  ratelimit.New(),
	}
}

type predictReq struct {
	Ticker   string             `json:"ticker"`
	Features map[string]float64 `json:"features"`
}

type predictResp struct {
	Direction  string  `json:"direction"`
	Confidence float64 `json:"confidence"`
}

// Predict fetches a prediction for the ticker. Returns (nil, nil) when the
// request is rate limited, so callers degrade to the neutral subsystem.
func (p *HTTPPredictor) Predict(ctx context.Context, ticker string, closes []float64) (*models.SACPrediction, error) {
	if p.baseURL == "" {
		return nil, fmt.Errorf("sac predictor not configured")
	}

	if v, ok := p.cache.Get(ticker); ok {
		if pred, ok := v.(*models.SACPrediction); ok {
			return pred, nil
		}
	}
	if !p.limiter.Allow("sac:"+ticker, 3, 0.2) {
		return nil, nil
	}

	var resp predictResp
	err := p.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    p.baseURL + "/predict",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: predictReq{Ticker: ticker, Features: ExtractFeatures(closes)},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("post predict: %w", err)
	}

	pred := &models.SACPrediction{
		Direction:  resp.Direction,
		Confidence: resp.Confidence,
	}
	p.cache.Set(ticker, pred, p.cacheTTL)
	return pred, nil
}

var _ domsvc.Predictor = (*HTTPPredictor)(nil)
