package analysis

import "fmt"

// Config collects every tunable scoring heuristic in one validated place.
// Values mirror the Pine defaults the indicator pipeline was calibrated with.
type Config struct {
	// WaveTrend crossover classification zones.
	GoldBuyZone    float64 `yaml:"gold_buy_zone"`    // wt1 below this + positive money flow upgrades to GoldBuy
	BuyZone        float64 `yaml:"buy_zone"`         // wt1 below this classifies a bullish cross as Buy
	StrongSellZone float64 `yaml:"strong_sell_zone"` // wt1 above this makes a Sell strength Strong
	OverboughtWT   float64 `yaml:"overbought_wt"`    // extreme overbought zone level
	OversoldWT     float64 `yaml:"oversold_wt"`      // extreme oversold zone level

	// Shared signal-strength multipliers (applied identically by all
	// oscillator-crossover detectors).
	GoldBuyMult    float64 `yaml:"gold_buy_mult"`
	DivergenceMult float64 `yaml:"divergence_mult"`
	WideGapMult    float64 `yaml:"wide_gap_mult"`   // |wt1-wt2| > WideGap
	NarrowGapMult  float64 `yaml:"narrow_gap_mult"` // |wt1-wt2| > NarrowGap
	WideGap        float64 `yaml:"wide_gap"`
	NarrowGap      float64 `yaml:"narrow_gap"`
	MoneyFlowMult  float64 `yaml:"money_flow_mult"` // direction matches money-flow sign
	ZoneMult       float64 `yaml:"zone_mult"`       // extreme zone matches direction

	// Strength bucket cutoffs.
	VeryStrongCutoff float64 `yaml:"very_strong_cutoff"`
	StrongCutoff     float64 `yaml:"strong_cutoff"`
	ModerateCutoff   float64 `yaml:"moderate_cutoff"`

	// RSI3M3 state machine thresholds.
	RSIUpper     float64 `yaml:"rsi_upper"`      // entry into Bullish
	RSILower     float64 `yaml:"rsi_lower"`      // entry into Bearish
	RSIBullExit  float64 `yaml:"rsi_bull_exit"`  // Bullish -> Transition on crossing below this inner line
	RSIBearExit  float64 `yaml:"rsi_bear_exit"`  // Bearish -> Transition on crossing above this inner line
	FreshMaxAge  int     `yaml:"fresh_max_age"`  // periods a state change counts as fresh
	MinValidHold int     `yaml:"min_valid_hold"` // prior-state duration required for a valid signal

	// TrendExhaust.
	ExhaustionThreshold float64 `yaml:"exhaustion_threshold"` // band width from the -100/0 extremes

	// Timeline aggregation.
	TimelineSize       int     `yaml:"timeline_size"`        // max events in the merged feed
	TimelineWindowDays int     `yaml:"timeline_window_days"` // preferred recency window
	TimelineMinEvents  int     `yaml:"timeline_min_events"`  // window fallback trigger
	PriceMoveSinglePct float64 `yaml:"price_move_single_pct"`
	PriceMoveMultiPct  float64 `yaml:"price_move_multi_pct"`
	PriceMoveSpan      int     `yaml:"price_move_span"`

	// Backtest.
	HoldingHorizon int `yaml:"holding_horizon"`

	// Divergence detection.
	DivergenceLookback int `yaml:"divergence_lookback"`

	// Confluence neutral default for absent subsystems.
	NeutralSubsystemScore int `yaml:"neutral_subsystem_score"`

	// Summary trailing window.
	SummaryWindow int `yaml:"summary_window"`
}

// DefaultConfig returns the calibrated defaults.
func DefaultConfig() Config {
	return Config{
		GoldBuyZone:    -50,
		BuyZone:        -30,
		StrongSellZone: 30,
		OverboughtWT:   53,
		OversoldWT:     -53,

		GoldBuyMult:    2.0,
		DivergenceMult: 1.5,
		WideGapMult:    1.5,
		NarrowGapMult:  1.2,
		WideGap:        5,
		NarrowGap:      2,
		MoneyFlowMult:  1.3,
		ZoneMult:       1.4,

		VeryStrongCutoff: 3.0,
		StrongCutoff:     2.2,
		ModerateCutoff:   1.5,

		RSIUpper:     60,
		RSILower:     40,
		RSIBullExit:  61,
		RSIBearExit:  39,
		FreshMaxAge:  3,
		MinValidHold: 2,

		ExhaustionThreshold: 20,

		TimelineSize:       20,
		TimelineWindowDays: 60,
		TimelineMinEvents:  10,
		PriceMoveSinglePct: 5,
		PriceMoveMultiPct:  15,
		PriceMoveSpan:      5,

		HoldingHorizon: 10,

		DivergenceLookback: 5,

		NeutralSubsystemScore: 12,

		SummaryWindow: 10,
	}
}

// Validate rejects configurations the scoring policy cannot work with.
func (c Config) Validate() error {
	if c.GoldBuyZone >= 0 || c.BuyZone >= 0 {
		return fmt.Errorf("analyzer: buy zones must be negative, got gold=%v buy=%v", c.GoldBuyZone, c.BuyZone)
	}
	if c.StrongSellZone <= 0 {
		return fmt.Errorf("analyzer: strong_sell_zone must be positive, got %v", c.StrongSellZone)
	}
	if c.RSIUpper <= c.RSILower {
		return fmt.Errorf("analyzer: rsi_upper (%v) must exceed rsi_lower (%v)", c.RSIUpper, c.RSILower)
	}
	if c.RSIBullExit <= c.RSILower || c.RSIBullExit >= 100 {
		return fmt.Errorf("analyzer: rsi_bull_exit (%v) must sit above rsi_lower", c.RSIBullExit)
	}
	if c.RSIBearExit >= c.RSIUpper || c.RSIBearExit <= 0 {
		return fmt.Errorf("analyzer: rsi_bear_exit (%v) must sit below rsi_upper", c.RSIBearExit)
	}
	if c.FreshMaxAge <= 0 {
		return fmt.Errorf("analyzer: fresh_max_age must be positive, got %d", c.FreshMaxAge)
	}
	if c.ExhaustionThreshold <= 0 || c.ExhaustionThreshold >= 50 {
		return fmt.Errorf("analyzer: exhaustion_threshold must be in (0, 50), got %v", c.ExhaustionThreshold)
	}
	if c.TimelineSize <= 0 || c.TimelineMinEvents <= 0 || c.TimelineWindowDays <= 0 {
		return fmt.Errorf("analyzer: timeline bounds must be positive")
	}
	if c.HoldingHorizon <= 0 {
		return fmt.Errorf("analyzer: holding_horizon must be positive, got %d", c.HoldingHorizon)
	}
	if c.VeryStrongCutoff <= c.StrongCutoff || c.StrongCutoff <= c.ModerateCutoff {
		return fmt.Errorf("analyzer: strength cutoffs must descend very_strong > strong > moderate")
	}
	if c.NeutralSubsystemScore < 0 || c.NeutralSubsystemScore > 25 {
		return fmt.Errorf("analyzer: neutral_subsystem_score must be in [0, 25], got %d", c.NeutralSubsystemScore)
	}
	return nil
}
