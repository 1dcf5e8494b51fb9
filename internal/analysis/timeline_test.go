package analysis

import (
	"testing"
	"time"

	"TrendPulse/internal/domain/models"
)

func TestTimelineSortedAndAnnotated(t *testing.T) {
	c := DefaultConfig()
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	feed := []models.SignalEvent{
		{Date: now.AddDate(0, 0, -10), Type: models.SignalBuy, System: models.SystemWaveTrend},
		{Date: now.AddDate(0, 0, -2), Type: models.SignalSell, System: models.SystemWaveTrend},
		{Date: now.AddDate(0, 0, -5), Type: models.SignalGoldBuy, System: models.SystemWaveTrend},
	}
	entries := c.aggregateTimeline(now, feed)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Type != models.SignalSell || entries[0].DaysAgo != 2 {
		t.Fatalf("expected newest first, got %s %d days ago", entries[0].Type, entries[0].DaysAgo)
	}
	if entries[1].Type != models.SignalGoldBuy || entries[2].Type != models.SignalBuy {
		t.Fatalf("entries not in descending date order: %+v", entries)
	}
	if entries[1].Icon == "" || entries[1].Color == "" {
		t.Fatalf("expected chart annotations, got %+v", entries[1])
	}
}

func TestTimelineWindowFallback(t *testing.T) {
	c := DefaultConfig()
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	var feed []models.SignalEvent
	for i := 0; i < 5; i++ {
		feed = append(feed, models.SignalEvent{
			Date:   now.AddDate(0, 0, -100-i),
			Type:   models.SignalBuy,
			System: models.SystemWaveTrend,
		})
	}
	entries := c.aggregateTimeline(now, feed)
	if len(entries) != 5 {
		t.Fatalf("expected fallback to include all 5 stale events, got %d", len(entries))
	}
}

func TestTimelineSizeCap(t *testing.T) {
	c := DefaultConfig()
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	var feed []models.SignalEvent
	for i := 0; i < 30; i++ {
		feed = append(feed, models.SignalEvent{
			Date:   now.AddDate(0, 0, -i),
			Type:   models.SignalBuy,
			System: models.SystemWaveTrend,
		})
	}
	entries := c.aggregateTimeline(now, feed)
	if len(entries) != c.TimelineSize {
		t.Fatalf("expected cap at %d, got %d", c.TimelineSize, len(entries))
	}
}

func TestTimelineEmpty(t *testing.T) {
	c := DefaultConfig()
	if entries := c.aggregateTimeline(time.Now(), nil, nil); entries != nil {
		t.Fatalf("expected nil for empty feeds, got %+v", entries)
	}
}
