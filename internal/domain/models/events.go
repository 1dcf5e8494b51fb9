package models

import "time"

// SignalType identifies what kind of event a detector emitted.
type SignalType string

const (
	SignalBuy               SignalType = "Buy"
	SignalGoldBuy           SignalType = "GoldBuy"
	SignalSell              SignalType = "Sell"
	SignalFastMoneySell     SignalType = "FastMoneySell"
	SignalBullishDivergence SignalType = "BullishDivergence"
	SignalBearishDivergence SignalType = "BearishDivergence"
	SignalOverboughtRev     SignalType = "OverboughtReversal"
	SignalOversoldRev       SignalType = "OversoldReversal"
	SignalBullishCross      SignalType = "BullishCross"
	SignalBearishCross      SignalType = "BearishCross"
	SignalRSIBullishEntry   SignalType = "RSIBullishEntry"
	SignalRSIBearishEntry   SignalType = "RSIBearishEntry"
	SignalRSITransition     SignalType = "RSITransition"
)

// SignalSystem identifies which subsystem produced an event.
type SignalSystem string

const (
	SystemWaveTrend   SignalSystem = "WaveTrend"
	SystemRSI3M3      SignalSystem = "RSI3M3"
	SystemExhaustion  SignalSystem = "Exhaustion"
	SystemMoneyFlow   SignalSystem = "MoneyFlow"
	SystemPriceAction SignalSystem = "PriceAction"
	SystemVolume      SignalSystem = "Volume"
	SystemSAC         SignalSystem = "SAC"
)

// SignalStrength buckets the continuous strength score of an event.
type SignalStrength int

const (
	StrengthWeak SignalStrength = iota
	StrengthModerate
	StrengthStrong
	StrengthVeryStrong
	StrengthExtreme
)

func (s SignalStrength) String() string {
	switch s {
	case StrengthModerate:
		return "Moderate"
	case StrengthStrong:
		return "Strong"
	case StrengthVeryStrong:
		return "VeryStrong"
	case StrengthExtreme:
		return "Extreme"
	default:
		return "Weak"
	}
}

// SignalEvent is a single timestamped detector finding. Events are created once
// per analysis pass over a frozen snapshot and never mutated afterwards.
type SignalEvent struct {
	Date        time.Time      `json:"date"`
	Type        SignalType     `json:"type"`
	System      SignalSystem   `json:"system"`
	Strength    SignalStrength `json:"strength"`
	SourceIndex int            `json:"sourceIndex"`
}

// TimelineEntry is a SignalEvent annotated for the merged feed.
type TimelineEntry struct {
	SignalEvent
	DaysAgo int    `json:"daysAgo"`
	Icon    string `json:"icon"`
	Color   string `json:"color"`
}

// RSIState is the RSI3M3+ trend state.
type RSIState int

const (
	RSINeutral RSIState = iota
	RSIBullish
	RSIBearish
	RSITransition
)

func (s RSIState) String() string {
	switch s {
	case RSIBullish:
		return "Bullish"
	case RSIBearish:
		return "Bearish"
	case RSITransition:
		return "Transition"
	default:
		return "Neutral"
	}
}

// StateTransition describes the most recent RSI3M3 state change.
type StateTransition struct {
	FromState            RSIState       `json:"fromState"`
	ToState              RSIState       `json:"toState"`
	AtIndex              int            `json:"atIndex"`
	AtDate               time.Time      `json:"atDate"`
	DaysSinceChange      int            `json:"daysSinceChange"`
	DurationInPriorState int            `json:"durationInPriorState"`
	SignalStrength       SignalStrength `json:"signalStrength"`
	IsValidSignal        bool           `json:"isValidSignal"`
}

// SubsystemScore is one subsystem's contribution to the confluence total.
// Aligned is nil when the subsystem had no data at all.
type SubsystemScore struct {
	System  SignalSystem `json:"system"`
	Score   int          `json:"score"`
	Aligned *bool        `json:"aligned"`
}

// ConfluenceScore fuses all subsystem readings into one 0-100 ranking value.
// Subsystem scores always sum exactly to Total.
type ConfluenceScore struct {
	Total      int              `json:"total"`
	Subsystems []SubsystemScore `json:"subsystems"`
	Summary    string           `json:"summary"`
}

// PerformanceBucket grades aggregate backtest results.
type PerformanceBucket string

const (
	BucketExcellent    PerformanceBucket = "Excellent"
	BucketGood         PerformanceBucket = "Good"
	BucketFair         PerformanceBucket = "Fair"
	BucketWeak         PerformanceBucket = "Weak"
	BucketPoor         PerformanceBucket = "Poor"
	BucketInsufficient PerformanceBucket = "Insufficient Data"
)

// BacktestResult aggregates forward returns of historical buy-type events.
type BacktestResult struct {
	AvgReturnPct   float64           `json:"avgReturnPct"`
	WinRatePct     float64           `json:"winRatePct"`
	SignalCount    int               `json:"signalCount"`
	BestSignalType SignalType        `json:"bestSignalType"`
	Bucket         PerformanceBucket `json:"performanceBucket"`
}
