package analysis

import (
	"math"
	"time"

	"TrendPulse/internal/domain/models"
)

// deriveRSIStates rebuilds the 4-state array from raw oscillator values when
// the collaborator did not precompute it. Transition rules use hysteresis:
// full flips happen only at the outer thresholds, the inner lines emit an
// early-warning Transition state without flipping direction.
func (c Config) deriveRSIStates(values []float64, n int) []int {
	states := make([]int, n)
	for i := 1; i < n; i++ {
		prev := states[i-1]
		cur := at(values, i, math.NaN())
		prv := at(values, i-1, math.NaN())
		if math.IsNaN(cur) || math.IsNaN(prv) {
			states[i] = prev
			continue
		}
		switch {
		case prv <= c.RSIUpper && cur > c.RSIUpper:
			states[i] = int(models.RSIBullish)
		case prv >= c.RSILower && cur < c.RSILower:
			states[i] = int(models.RSIBearish)
		case prev == int(models.RSIBullish) && prv >= c.RSIBullExit && cur < c.RSIBullExit && cur > c.RSILower:
			states[i] = int(models.RSITransition)
		case prev == int(models.RSIBearish) && prv <= c.RSIBearExit && cur > c.RSIBearExit && cur < c.RSIUpper:
			states[i] = int(models.RSITransition)
		default:
			states[i] = prev
		}
	}
	return states
}

// rsiStrength scores a state reading from value depth beyond its threshold,
// with a freshness boost for recent changes. Uses the shared bucket cutoffs.
func (c Config) rsiStrength(state models.RSIState, value float64, periodsInState int) (float64, models.SignalStrength) {
	score := 1.0
	switch state {
	case models.RSIBullish:
		if d := value - c.RSIUpper; d > 0 {
			score += d / 20
		}
	case models.RSIBearish:
		if d := c.RSILower - value; d > 0 {
			score += d / 20
		}
	case models.RSITransition:
		score = 1.2
	default:
		score = 0.8
	}
	if periodsInState > 0 && periodsInState <= c.FreshMaxAge {
		score *= 1.3
	}
	return score, c.bucketStrength(score)
}

// analyzeRSI3M3 finds the most recent state change, scores it, and emits one
// event per historical state change for the timeline.
func (c Config) analyzeRSI3M3(a aligned, now time.Time) (*models.RSI3M3Status, []models.SignalEvent) {
	s := a.series
	if a.rsiLen < 2 || s.RSI3M3 == nil {
		return nil, nil
	}

	states := s.RSI3M3.States
	if len(states) == 0 {
		states = c.deriveRSIStates(s.RSI3M3.Values, a.rsiLen)
	}

	n := a.rsiLen
	var events []models.SignalEvent
	for i := 1; i < n; i++ {
		if states[i] == states[i-1] {
			continue
		}
		to := models.RSIState(states[i])
		var typ models.SignalType
		switch to {
		case models.RSIBullish:
			typ = models.SignalRSIBullishEntry
		case models.RSIBearish:
			typ = models.SignalRSIBearishEntry
		default:
			typ = models.SignalRSITransition
		}
		_, strength := c.rsiStrength(to, at(s.RSI3M3.Values, i, 50), 1)
		events = append(events, models.SignalEvent{
			Date:        s.Dates[i],
			Type:        typ,
			System:      models.SystemRSI3M3,
			Strength:    strength,
			SourceIndex: i,
		})
	}

	// Walk backward to the most recent change.
	last := -1
	for i := n - 1; i > 0; i-- {
		if states[i] != states[i-1] {
			last = i
			break
		}
	}

	curState := models.RSIState(states[n-1])
	curValue := lastValid(s.RSI3M3.Values, n, 50)

	status := &models.RSI3M3Status{
		State:      curState,
		StateLabel: curState.String(),
		Value:      curValue,
	}
	if last >= 0 {
		duration := n - last
		days := int(now.Sub(s.Dates[last]).Hours() / 24)
		if days < 0 {
			days = 0
		}
		_, strength := c.rsiStrength(curState, curValue, n-last)
		tr := &models.StateTransition{
			FromState:            models.RSIState(states[last-1]),
			ToState:              models.RSIState(states[last]),
			AtIndex:              last,
			AtDate:               s.Dates[last],
			DaysSinceChange:      days,
			DurationInPriorState: duration,
			SignalStrength:       strength,
			IsValidSignal:        duration >= c.MinValidHold && strength != models.StrengthWeak,
		}
		status.LastTransition = tr
		status.IsFresh = n-last <= c.FreshMaxAge
	}
	return status, events
}
