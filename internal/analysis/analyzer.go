package analysis

import (
	"math"
	"time"

	"TrendPulse/internal/domain/models"
)

// Analyzer runs the full multi-system pass over one indicator snapshot.
// It holds only validated configuration; every run is stateless, so a single
// instance is safe for concurrent use across instruments.
type Analyzer struct {
	cfg Config
}

// New validates the scoring configuration once, at construction.
func New(cfg Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{cfg: cfg}, nil
}

// Config returns the effective configuration.
func (az *Analyzer) Config() Config {
	return az.cfg
}

// Analyze produces the complete output record for one snapshot. It never
// fails: missing subsystems degrade to nil status fields and neutral
// confluence contributions, ragged arrays truncate, degenerate series yield
// empty detector output.
func (az *Analyzer) Analyze(s *models.IndicatorSeries, now time.Time) *models.AnalysisReport {
	c := az.cfg
	if s == nil {
		s = &models.IndicatorSeries{}
	}
	a := alignSeries(s)

	wtEvents := c.detectWaveTrend(a, crossoverSourceFor(s))
	divEvents := c.detectDivergences(a)
	divEvents = append(divEvents, c.detectMFDivergences(a)...)
	rsiStatus, rsiEvents := c.analyzeRSI3M3(a, now)
	exhEvents := c.detectExhaustion(a)
	exhStatus := c.exhaustionStatus(a)

	// Price-action fallback only fires when every oscillator stayed silent,
	// so a healthy feed is never diluted with raw price-move noise.
	var paEvents []models.SignalEvent
	if len(wtEvents)+len(rsiEvents)+len(exhEvents) == 0 {
		paEvents = c.detectPriceAction(a)
	}

	return &models.AnalysisReport{
		Ticker:      s.Ticker,
		GeneratedAt: now,

		Confluence: c.scoreConfluence(a, wtEvents, rsiStatus, exhStatus),
		Timeline:   c.aggregateTimeline(now, wtEvents, divEvents, rsiEvents, exhEvents, paEvents),
		Backtest:   c.runBacktest(a, wtEvents),

		WaveTrend:  c.waveTrendStatus(a),
		RSI3M3:     rsiStatus,
		Exhaustion: exhStatus,
		SAC:        sacStatus(s.SAC),

		Summary: c.summarize(a, wtEvents, divEvents),
	}
}

func sacStatus(p *models.SACPrediction) *models.SACStatus {
	if p == nil {
		return nil
	}
	return &models.SACStatus{Direction: p.Direction, Confidence: p.Confidence}
}

// summarize counts trailing-window signal activity and the latest price move.
func (c Config) summarize(a aligned, wtEvents, divEvents []models.SignalEvent) models.ReportSummary {
	s := a.series
	sum := models.ReportSummary{}

	from := a.waveTrendLen - c.SummaryWindow
	for _, ev := range wtEvents {
		if ev.SourceIndex < from {
			continue
		}
		switch ev.Type {
		case models.SignalBuy:
			sum.BuySignals++
		case models.SignalGoldBuy:
			sum.GoldBuySignals++
		case models.SignalSell, models.SignalFastMoneySell:
			sum.SellSignals++
		}
	}
	for _, ev := range divEvents {
		if ev.SourceIndex < from {
			continue
		}
		switch ev.Type {
		case models.SignalBullishDivergence:
			sum.BullishDivs++
		case models.SignalBearishDivergence:
			sum.BearishDivs++
		}
	}

	if a.priceLen > 0 {
		sum.CurrentPrice = lastValid(s.Price, a.priceLen, 0)
		if a.priceLen > 1 {
			prev := at(s.Price, a.priceLen-2, math.NaN())
			if !math.IsNaN(prev) && prev != 0 {
				sum.PriceChangePct = (sum.CurrentPrice - prev) / prev * 100
			}
		}
	}
	if len(s.Dates) > 0 {
		sum.LastUpdate = s.Dates[len(s.Dates)-1].Format("2006-01-02")
	}
	return sum
}
