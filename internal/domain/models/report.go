package models

import "time"

// WaveTrendStatus is the current WaveTrend reading attached to a report.
type WaveTrendStatus struct {
	WT1        float64 `json:"wt1"`
	WT2        float64 `json:"wt2"`
	MoneyFlow  float64 `json:"moneyFlow"`
	ZoneStatus string  `json:"zoneStatus"` // "Potential buy zone" | "Potential sell zone" | "Neutral zone"
}

// RSI3M3Status is the current RSI3M3+ reading and its freshest transition.
type RSI3M3Status struct {
	State          RSIState         `json:"state"`
	StateLabel     string           `json:"stateLabel"`
	Value          float64          `json:"value"`
	LastTransition *StateTransition `json:"lastTransition"`
	IsFresh        bool             `json:"isFresh"`
}

// ExhaustionStatus is the current TrendExhaust reading.
type ExhaustionStatus struct {
	AvgPercentR float64 `json:"avgPercentR"`
	Severity    string  `json:"severity"`
	Score       int     `json:"score"` // 0-100 exhaustion score fed to confluence
	Overbought  bool    `json:"overbought"`
	Oversold    bool    `json:"oversold"`
}

// SACStatus echoes the external prediction used for the fourth subsystem.
type SACStatus struct {
	Direction  string  `json:"direction"`
	Confidence float64 `json:"confidence"`
}

// ReportSummary mirrors the trailing-window signal counts and current readings
// the rendering collaborator shows in list views.
type ReportSummary struct {
	BuySignals     int     `json:"buySignals"`
	GoldBuySignals int     `json:"goldBuySignals"`
	SellSignals    int     `json:"sellSignals"`
	BullishDivs    int     `json:"bullishDivergences"`
	BearishDivs    int     `json:"bearishDivergences"`
	CurrentPrice   float64 `json:"currentPrice"`
	PriceChangePct float64 `json:"priceChangePct"`
	LastUpdate     string  `json:"lastUpdate"`
}

// AnalysisReport is the full output record for one instrument. It is plain
// nested data, ready for serialization; nil subsystem fields mean "no data".
type AnalysisReport struct {
	Ticker      string    `json:"ticker"`
	GeneratedAt time.Time `json:"generatedAt"`

	Confluence ConfluenceScore `json:"confluence"`
	Timeline   []TimelineEntry `json:"timeline"`
	Backtest   BacktestResult  `json:"backtest"`

	WaveTrend  *WaveTrendStatus  `json:"waveTrend"`
	RSI3M3     *RSI3M3Status     `json:"rsi3m3"`
	Exhaustion *ExhaustionStatus `json:"exhaustion"`
	SAC        *SACStatus        `json:"sac"`

	Summary ReportSummary `json:"summary"`
}
