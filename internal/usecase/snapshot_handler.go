package usecase

import (
	"context"
	"encoding/json"

	"TrendPulse/internal/domain/models"
	domrepo "TrendPulse/internal/domain/repository"
	mid "TrendPulse/internal/middleware"
	pkgkafka "TrendPulse/pkg/kafka"
)

// KafkaSnapshotHandler consumes snapshot payloads from Kafka and feeds them
// through the ingest pipeline.
type KafkaSnapshotHandler struct {
	topic   string
	pipe    *mid.IngestPipeline
	metrics domrepo.Metrics
}

func NewKafkaSnapshotHandler(topic string, pipe *mid.IngestPipeline, metrics domrepo.Metrics) *KafkaSnapshotHandler {
	return &KafkaSnapshotHandler{topic: topic, pipe: pipe, metrics: metrics}
}

func (h *KafkaSnapshotHandler) Topic() string { return h.topic }

func (h *KafkaSnapshotHandler) Handle(ctx context.Context, b []byte) error {
	var p models.SnapshotPayload
	if err := json.Unmarshal(b, &p); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	return h.pipe.Process(ctx, &p)
}

var _ pkgkafka.MessageHandler = (*KafkaSnapshotHandler)(nil)
