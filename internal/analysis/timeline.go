package analysis

import (
	"sort"
	"time"

	"TrendPulse/internal/domain/models"
)

// Chart tags per event type, matching the palette the rendering collaborator
// already uses for the raw indicator overlays.
var eventTags = map[models.SignalType]struct {
	icon  string
	color string
}{
	models.SignalGoldBuy:           {"★", "#e2a400"},
	models.SignalBuy:               {"▲", "#3fff00"},
	models.SignalSell:              {"▼", "#ff5252"},
	models.SignalFastMoneySell:     {"▼", "#ff1100"},
	models.SignalBullishDivergence: {"◮", "#22ff00"},
	models.SignalBearishDivergence: {"◭", "#ff0000"},
	models.SignalOverboughtRev:     {"↓", "#ff5252"},
	models.SignalOversoldRev:       {"↑", "#3fff00"},
	models.SignalBullishCross:      {"↗", "#22ff00"},
	models.SignalBearishCross:      {"↘", "#ff0000"},
	models.SignalRSIBullishEntry:   {"●", "#00ff0a"},
	models.SignalRSIBearishEntry:   {"●", "#ff1100"},
	models.SignalRSITransition:     {"●", "#ffff00"},
}

// aggregateTimeline merges detector feeds into one chronologically sorted,
// bounded feed. The recency window is preferred; when it holds fewer than
// TimelineMinEvents the aggregator deliberately falls back to the most recent
// TimelineSize events regardless of age, so thin histories still render.
func (c Config) aggregateTimeline(now time.Time, feeds ...[]models.SignalEvent) []models.TimelineEntry {
	var all []models.SignalEvent
	for _, f := range feeds {
		all = append(all, f...)
	}
	if len(all) == 0 {
		return nil
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date.After(all[j].Date)
	})

	cutoff := now.AddDate(0, 0, -c.TimelineWindowDays)
	recent := all
	for i, ev := range all {
		if ev.Date.Before(cutoff) {
			recent = all[:i]
			break
		}
	}
	if len(recent) < c.TimelineMinEvents {
		// Window fallback: not enough recent activity, take newest overall.
		recent = all
	}
	if len(recent) > c.TimelineSize {
		recent = recent[:c.TimelineSize]
	}

	entries := make([]models.TimelineEntry, 0, len(recent))
	for _, ev := range recent {
		days := int(now.Sub(ev.Date).Hours() / 24)
		if days < 0 {
			days = 0
		}
		tag := eventTags[ev.Type]
		entries = append(entries, models.TimelineEntry{
			SignalEvent: ev,
			DaysAgo:     days,
			Icon:        tag.icon,
			Color:       tag.color,
		})
	}
	return entries
}
