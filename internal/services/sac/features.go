package sac

import "math"

// featureWindow is how many trailing closes feed the volatility estimate.
const featureWindow = 20

// ExtractFeatures derives the model inputs from a close-price history.
// The SAC service expects normalized return and volatility features rather
// than raw prices.
func ExtractFeatures(closes []float64) map[string]float64 {
	rets := logReturns(closes)
	f := map[string]float64{
		"ret_1":  lastReturn(rets, 1),
		"ret_5":  lastReturn(rets, 5),
		"ret_10": lastReturn(rets, 10),
		"vol_20": realizedVolatility(rets, featureWindow),
	}
	if n := len(closes); n > 0 {
		f["close"] = closes[n-1]
	}
	return f
}

// logReturns computes r_t = ln(C_t / C_{t-1}). Non-positive or NaN closes
// contribute a zero return.
func logReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev, cur := closes[i-1], closes[i]
		if prev <= 0 || cur <= 0 || math.IsNaN(prev) || math.IsNaN(cur) {
			out = append(out, 0)
			continue
		}
		out = append(out, math.Log(cur/prev))
	}
	return out
}

// lastReturn sums the trailing n log returns, the cumulative return over
// the last n bars.
func lastReturn(rets []float64, n int) float64 {
	if n <= 0 || len(rets) < n {
		return 0
	}
	sum := 0.0
	for i := len(rets) - n; i < len(rets); i++ {
		sum += rets[i]
	}
	return sum
}

// realizedVolatility is the sample stddev of the trailing window of returns.
func realizedVolatility(rets []float64, window int) float64 {
	if window <= 1 || len(rets) < window {
		return 0
	}
	sum, sum2 := 0.0, 0.0
	for i := len(rets) - window; i < len(rets); i++ {
		r := rets[i]
		sum += r
		sum2 += r * r
	}
	n := float64(window)
	mean := sum / n
	variance := (sum2 - n*mean*mean) / (n - 1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}
