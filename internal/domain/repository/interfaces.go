package repository

import (
	"context"
	"time"

	"TrendPulse/internal/domain/models"
)

// SnapshotStream delivers indicator snapshots pushed by the data collaborator.
type SnapshotStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.SnapshotPayload, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// AlertPublisher pushes high-confluence signal alerts downstream.
type AlertPublisher interface {
	Publish(ctx context.Context, a *models.SignalAlert) error
	PublishBatch(ctx context.Context, alerts []*models.SignalAlert) error
	Close() error
}

// EventArchive persists detected signal events for later querying.
type EventArchive interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, ticker string, events []models.SignalEvent) error
	Query(ctx context.Context, ticker string, from, to time.Time, limit int) ([]models.SignalEvent, error)
	Health(ctx context.Context) error // ping
	Close() error
}

type Metrics interface {
	RecordAnalysis(source string)
	RecordSignal(system, signalType string)
	RecordError(kind string)
	RecordConfluence(ticker string, score float64)
	RecordLatency(op string, seconds float64)
}
