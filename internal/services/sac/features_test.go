package sac

import (
	"math"
	"testing"
)

func TestExtractFeaturesReturns(t *testing.T) {
	closes := []float64{100, 110, 121}
	f := ExtractFeatures(closes)

	want := math.Log(121.0 / 110.0)
	if math.Abs(f["ret_1"]-want) > 1e-12 {
		t.Fatalf("ret_1 = %v, want %v", f["ret_1"], want)
	}
	if f["close"] != 121 {
		t.Fatalf("close = %v, want 121", f["close"])
	}
	// only two returns available, longer horizons degrade to zero
	if f["ret_5"] != 0 || f["ret_10"] != 0 || f["vol_20"] != 0 {
		t.Fatalf("short history should zero long-horizon features: %v", f)
	}
}

func TestExtractFeaturesBadCloses(t *testing.T) {
	f := ExtractFeatures([]float64{100, -5, math.NaN(), 100})
	if math.IsNaN(f["ret_1"]) {
		t.Fatalf("ret_1 must never be NaN")
	}
	if _, ok := ExtractFeatures(nil)["close"]; ok {
		t.Fatalf("empty closes should not report a close")
	}
}

func TestRealizedVolatilityWindow(t *testing.T) {
	rets := make([]float64, 25)
	for i := range rets {
		if i%2 == 0 {
			rets[i] = 0.01
		} else {
			rets[i] = -0.01
		}
	}
	v := realizedVolatility(rets, 20)
	if v <= 0 {
		t.Fatalf("vol = %v, want positive", v)
	}
	if realizedVolatility(rets[:5], 20) != 0 {
		t.Fatalf("insufficient history must return 0")
	}
}
