package usecase

import (
	"context"

	"TrendPulse/internal/domain/models"
	drepo "TrendPulse/internal/domain/repository"
	mid "TrendPulse/internal/middleware"
)

// SnapshotCollector reads snapshots from the push stream and feeds them
// through the ingest pipeline.
type SnapshotCollector struct {
	stream  drepo.SnapshotStream
	pipe    *mid.IngestPipeline
	metrics drepo.Metrics
}

func NewSnapshotCollector(stream drepo.SnapshotStream, pipe *mid.IngestPipeline, metrics drepo.Metrics) *SnapshotCollector {
	return &SnapshotCollector{stream: stream, pipe: pipe, metrics: metrics}
}

// IsConnected reports whether the underlying stream is connected.
func (c *SnapshotCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *SnapshotCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	c.pipe.Start(ctx)
	snapCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, snapCh, errCh)
	return nil
}

func (c *SnapshotCollector) consume(ctx context.Context, snapCh <-chan *models.SnapshotPayload, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errCh:
			if err != nil {
				c.metrics.RecordError("stream")
				_ = c.stream.Reconnect(ctx)
			}
		case s := <-snapCh:
			if s == nil {
				continue
			}
			_ = c.pipe.Process(ctx, s)
		}
	}
}

// Shutdown stops the pipeline and closes the stream.
func (c *SnapshotCollector) Shutdown(ctx context.Context) error {
	c.pipe.Stop()
	return c.stream.Close()
}
