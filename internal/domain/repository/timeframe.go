package repository

import "time"

// Lookback represents event-query history windows.
type Lookback string

const (
	LB7d  Lookback = "7d"
	LB30d Lookback = "30d"
	LB90d Lookback = "90d"
)

// IsValidLookback returns true if lb is a supported lookback window.
func IsValidLookback(lb Lookback) bool {
	switch lb {
	case LB7d, LB30d, LB90d:
		return true
	default:
		return false
	}
}

// DefaultLookback returns the default lookback window.
func DefaultLookback() Lookback { return LB30d }

// NormalizeLookback converts a raw string to a valid lookback (or default).
func NormalizeLookback(s string) Lookback {
	if s == "" {
		return DefaultLookback()
	}
	lb := Lookback(s)
	if IsValidLookback(lb) {
		return lb
	}
	return DefaultLookback()
}

// Duration returns the wall-clock span of the lookback window.
func (lb Lookback) Duration() time.Duration {
	switch lb {
	case LB7d:
		return 7 * 24 * time.Hour
	case LB90d:
		return 90 * 24 * time.Hour
	default:
		return 30 * 24 * time.Hour
	}
}
