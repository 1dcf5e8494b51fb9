package models

import (
	"fmt"
	"math"
	"time"
)

// SnapshotPayload is the JSON record the data-retrieval collaborator produces
// per instrument. Numeric arrays may contain nulls where the upstream
// calculation had no value; nulls become NaN and are handled by the aligner.
// Absent top-level keys are valid and mean "no data" for that subsystem.
type SnapshotPayload struct {
	Ticker string   `json:"ticker"`
	Dates  []string `json:"dates"`

	Price  []*float64 `json:"price"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`

	WT1       []*float64 `json:"wt1"`
	WT2       []*float64 `json:"wt2"`
	MoneyFlow []*float64 `json:"moneyFlow"`

	Signals *struct {
		Buy     []string `json:"buy"`
		GoldBuy []string `json:"goldBuy"`
		Sell    []string `json:"sell"`
	} `json:"signals"`

	RSI3M3 *struct {
		Values []*float64 `json:"rsi3m3"`
		State  []*float64 `json:"state"`
	} `json:"rsi3m3"`

	TrendExhaust *struct {
		ShortPercentR []*float64 `json:"shortPercentR"`
		LongPercentR  []*float64 `json:"longPercentR"`
		AvgPercentR   []*float64 `json:"avgPercentR"`
	} `json:"trendExhaust"`

	SACPrediction *struct {
		Direction  string  `json:"direction"`
		Confidence float64 `json:"confidence"`
	} `json:"sacPrediction"`
}

// dateLayouts accepted from the collaborator, daily and intraday.
var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339}

func parseSeriesDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func toFloats(in []*float64) []float64 {
	if in == nil {
		return nil
	}
	out := make([]float64, len(in))
	for i, v := range in {
		if v == nil {
			out[i] = math.NaN()
		} else {
			out[i] = *v
		}
	}
	return out
}

// toStates decodes the numeric state array. A null entry is a gap in the
// upstream calculation, not a state change, so the previous state carries
// forward; a leading null decodes as Neutral.
func toStates(in []*float64) []int {
	if in == nil {
		return nil
	}
	out := make([]int, len(in))
	prev := int(RSINeutral)
	for i, v := range in {
		if v != nil {
			prev = int(*v)
		}
		out[i] = prev
	}
	return out
}

// ToSeries converts the wire payload into an immutable IndicatorSeries.
// Precomputed signal date lists are resolved to snapshot indices; dates that
// do not appear in the snapshot are dropped rather than failing the decode.
func (p *SnapshotPayload) ToSeries() (*IndicatorSeries, error) {
	if p.Ticker == "" {
		return nil, fmt.Errorf("payload: ticker required")
	}
	if len(p.Dates) == 0 {
		return nil, fmt.Errorf("payload: dates required")
	}

	dates := make([]time.Time, len(p.Dates))
	index := make(map[string]int, len(p.Dates))
	for i, ds := range p.Dates {
		t, err := parseSeriesDate(ds)
		if err != nil {
			return nil, fmt.Errorf("payload: %w", err)
		}
		dates[i] = t
		index[ds] = i
	}

	s := &IndicatorSeries{
		Ticker:    p.Ticker,
		Dates:     dates,
		Price:     toFloats(p.Price),
		High:      toFloats(p.High),
		Low:       toFloats(p.Low),
		Close:     toFloats(p.Close),
		Volume:    toFloats(p.Volume),
		WT1:       toFloats(p.WT1),
		WT2:       toFloats(p.WT2),
		MoneyFlow: toFloats(p.MoneyFlow),
	}

	if p.RSI3M3 != nil {
		s.RSI3M3 = &RSI3M3Series{
			Values: toFloats(p.RSI3M3.Values),
			States: toStates(p.RSI3M3.State),
		}
	}
	if p.TrendExhaust != nil {
		s.Exhaustion = &ExhaustionSeries{
			AvgPercentR:   toFloats(p.TrendExhaust.AvgPercentR),
			ShortPercentR: toFloats(p.TrendExhaust.ShortPercentR),
			LongPercentR:  toFloats(p.TrendExhaust.LongPercentR),
		}
	}
	if p.SACPrediction != nil {
		s.SAC = &SACPrediction{
			Direction:  p.SACPrediction.Direction,
			Confidence: p.SACPrediction.Confidence,
		}
	}
	if p.Signals != nil {
		resolve := func(ds []string) []int {
			var out []int
			for _, d := range ds {
				if i, ok := index[d]; ok {
					out = append(out, i)
				}
			}
			return out
		}
		s.WaveTrendSignals = &WaveTrendSignalIndices{
			Buy:     resolve(p.Signals.Buy),
			GoldBuy: resolve(p.Signals.GoldBuy),
			Sell:    resolve(p.Signals.Sell),
		}
	}
	return s, nil
}
