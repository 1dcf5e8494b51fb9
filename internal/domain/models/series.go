package models

import "time"

// IndicatorSeries is the per-instrument snapshot every analysis run consumes.
// All populated slices are index-aligned with Dates. Optional sub-bundles are
// nil when the collaborator payload omitted them; detectors treat nil as
// "no data" and degrade to their neutral output.
type IndicatorSeries struct {
	Ticker string
	Dates  []time.Time

	Price  []float64
	High   []float64
	Low    []float64
	Close  []float64
	Volume []float64

	WT1       []float64
	WT2       []float64
	MoneyFlow []float64

	RSI3M3     *RSI3M3Series
	Exhaustion *ExhaustionSeries
	SAC        *SACPrediction

	// Precomputed detector output supplied by the collaborator. When present
	// the precomputed-index detector strategy is used instead of re-deriving
	// crossings from the raw series.
	WaveTrendSignals *WaveTrendSignalIndices
}

// Len returns the number of dated periods in the snapshot.
func (s *IndicatorSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Dates)
}

// RSI3M3Series carries the smoothed RSI oscillator and, optionally, the
// collaborator's precomputed state codes.
type RSI3M3Series struct {
	Values []float64
	// States holds 0=Neutral 1=Bullish 2=Bearish 3=Transition codes.
	// Empty means states must be derived from Values.
	States []int
}

// ExhaustionSeries carries the TrendExhaust Williams %R lines, all in [-100, 0].
type ExhaustionSeries struct {
	AvgPercentR   []float64
	ShortPercentR []float64
	LongPercentR  []float64
}

// SACPrediction is the optional external prediction collaborator input.
type SACPrediction struct {
	Direction  string  // "up", "down", "flat"
	Confidence float64 // 0..1
}

// WaveTrendSignalIndices are precomputed crossover indices from the
// collaborator, already resolved against Dates.
type WaveTrendSignalIndices struct {
	Buy     []int
	GoldBuy []int
	Sell    []int
}
