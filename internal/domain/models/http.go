package models

// Requests for analysis HTTP endpoints. Defined in domain for consistency and reuse.

type AnalyzeRequest struct {
	Ticker string `query:"ticker" json:"ticker" validate:"required"`
}

type EventsRequest struct {
	Ticker   string `query:"ticker" json:"ticker" validate:"required"`
	Limit    int    `query:"limit" json:"limit" default:"50" validate:"gte=1,lte=1000"`
	Lookback string `query:"lookback" json:"lookback" validate:"omitempty,oneof=7d 30d 90d"`
}

// ScanRequest carries one snapshot payload per instrument to analyze.
type ScanRequest struct {
	Snapshots []*SnapshotPayload `json:"snapshots" validate:"required,min=1,max=200"`
}
