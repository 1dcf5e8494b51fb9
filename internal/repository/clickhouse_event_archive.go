package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"TrendPulse/internal/domain/models"
	domrepo "TrendPulse/internal/domain/repository"
	pkgch "TrendPulse/pkg/clickhouse"
	applogger "TrendPulse/pkg/logger"
)

const eventTable = "trendpulse.signal_events"

// CHEventArchive implements EventArchive backed by ClickHouse.
type CHEventArchive struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHEventArchive(ch *pkgch.Client) *CHEventArchive {
	return &CHEventArchive{db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHEventArchive) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHEventArchive) Init(ctx context.Context) error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS ` + eventTable + ` (
            ticker      LowCardinality(String),
            event_date  DateTime,
            type        LowCardinality(String),
            system      LowCardinality(String),
            strength    UInt8,
            source_idx  Int32,
            detected_at DateTime DEFAULT now()
        ) ENGINE = ReplacingMergeTree
        ORDER BY (ticker, event_date, type)
    `
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure event table: %w", err)
	}
	return s.db.PingContext(ctx)
}

func (s *CHEventArchive) Store(ctx context.Context, ticker string, events []models.SignalEvent) error {
	if len(events) == 0 {
		return nil
	}
	start := time.Now()

	values := make([]string, 0, len(events))
	args := make([]interface{}, 0, len(events)*6)
	for _, ev := range events {
		values = append(values, "(?, ?, ?, ?, ?, ?)")
		args = append(args,
			ticker,
			ev.Date,
			string(ev.Type),
			string(ev.System),
			uint8(ev.Strength),
			int32(ev.SourceIndex),
		)
	}
	q := fmt.Sprintf(
		"INSERT INTO %s (ticker, event_date, type, system, strength, source_idx) VALUES %s",
		eventTable, strings.Join(values, ","),
	)
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse store_events error",
				applogger.String("ticker", ticker),
				applogger.Int("events", len(events)),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("store events: %w", err)
	}
	if s.l != nil {
		s.l.Debug("clickhouse store_events ok",
			applogger.String("ticker", ticker),
			applogger.Int("events", len(events)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

func (s *CHEventArchive) Query(ctx context.Context, ticker string, from, to time.Time, limit int) ([]models.SignalEvent, error) {
	start := time.Now()
	const q = `
        SELECT event_date, type, system, strength, source_idx
        FROM ` + eventTable + `
        WHERE ticker = ? AND event_date >= ? AND event_date <= ?
        ORDER BY event_date DESC
        LIMIT ?
    `
	rows, err := s.db.QueryContext(ctx, q, ticker, from, to, limit)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse query_events error",
				applogger.String("ticker", ticker),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	out := make([]models.SignalEvent, 0, limit)
	for rows.Next() {
		var (
			ev       models.SignalEvent
			typ, sys string
			strength uint8
			idx      int32
		)
		if err := rows.Scan(&ev.Date, &typ, &sys, &strength, &idx); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Type = models.SignalType(typ)
		ev.System = models.SignalSystem(sys)
		ev.Strength = models.SignalStrength(strength)
		ev.SourceIndex = int(idx)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Debug("clickhouse query_events ok",
			applogger.String("ticker", ticker),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHEventArchive) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CHEventArchive) Close() error {
	return nil // Managed by pkg
}

var _ domrepo.EventArchive = (*CHEventArchive)(nil)
