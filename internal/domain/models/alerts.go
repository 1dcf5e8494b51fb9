package models

import "time"

// SignalAlert is the downstream notification emitted when an analysis run
// finds a fresh strong signal. Alerts are fire-and-forget; consumers dedupe
// on (ticker, event date, event type).
type SignalAlert struct {
	Ticker      string      `json:"ticker"`
	Event       SignalEvent `json:"event"`
	Confluence  int         `json:"confluence"`
	GeneratedAt time.Time   `json:"generatedAt"`
}
