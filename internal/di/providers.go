package di

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"TrendPulse/internal/analysis"
	"TrendPulse/internal/domain/repository"
	domsvc "TrendPulse/internal/domain/service"
	"TrendPulse/internal/handler/api"
	mid "TrendPulse/internal/middleware"
	internalrepo "TrendPulse/internal/repository"
	icache "TrendPulse/internal/service/cache"
	"TrendPulse/internal/service/stream"
	"TrendPulse/internal/services/sac"
	"TrendPulse/internal/usecase"
	pkgcache "TrendPulse/pkg/cache"
	pkgch "TrendPulse/pkg/clickhouse"
	"TrendPulse/pkg/config"
	pkgkafka "TrendPulse/pkg/kafka"
	applogger "TrendPulse/pkg/logger"
	"TrendPulse/pkg/metrics"
	"TrendPulse/pkg/queue"
	"TrendPulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lc := &applogger.Config{Level: "info", Format: "json", Output: "stdout"}
	if cfg.Environment == "development" {
		lc.Level = "debug"
		lc.Format = "console"
	}
	return applogger.New(lc)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideAnalyzer builds the analysis engine from the validated config.
func ProvideAnalyzer(cfg *config.Config) (*analysis.Analyzer, error) {
	return analysis.New(cfg.Analyzer)
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideEventArchive creates the ClickHouse event archive and ensures its
// schema. Returns nil when ClickHouse is disabled.
func ProvideEventArchive(chClient *pkgch.Client, cfg *config.Config, l *applogger.Logger) (repository.EventArchive, error) {
	if chClient == nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := chClient.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS " + cfg.ClickHouse.Database,
	}); err != nil {
		_ = chClient.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	archive := internalrepo.NewCHEventArchive(chClient)
	archive.SetLogger(l)
	if err := archive.Init(ctx); err != nil {
		_ = chClient.Close()
		return nil, fmt.Errorf("event archive init: %w", err)
	}
	return archive, nil
}

// ProvideKafkaProducer creates a Kafka producer, or nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideAlertPublisher creates the Kafka alert publisher, or nil when the
// producer is absent or no alert topic is configured.
func ProvideAlertPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.AlertPublisher {
	if producer == nil || cfg.Kafka.AlertTopic == "" {
		return nil
	}
	return internalrepo.NewKafkaAlertPublisher(producer, cfg.Kafka.AlertTopic)
}

// ProvideKafkaConsumer creates a Kafka consumer, or nil when disabled.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled || cfg.Kafka.Consumer.GroupID == "" {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideRedisCache creates the Redis-backed cache, or nil when disabled.
func ProvideRedisCache(cfg *config.Config) (*pkgcache.RedisCache, error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, nil
	}
	host, portStr, err := net.SplitHostPort(cfg.Cache.Redis.Addr)
	if err != nil {
		return nil, fmt.Errorf("redis addr: %w", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("redis port: %w", err)
	}
	return pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		pkgcache.WithRedisPrefix("trendpulse"),
	)
}

// ProvideReportCache selects the report cache backend: layered memory+Redis
// when Redis is available, in-process memory otherwise.
func ProvideReportCache(redisCache *pkgcache.RedisCache) pkgcache.Service {
	if redisCache != nil {
		return pkgcache.NewLayeredCache(redisCache)
	}
	return pkgcache.NewMemoryCache()
}

// ProvideSACPredictor creates the external prediction client, or nil when
// disabled. A nil predictor degrades the SAC subsystem to neutral.
func ProvideSACPredictor(cfg *config.Config) domsvc.Predictor {
	if !cfg.SAC.Enabled {
		return nil
	}
	return sac.NewHTTPPredictor(cfg)
}

// ProvideAnalyzeUseCase assembles the analysis use case with its side effects.
func ProvideAnalyzeUseCase(
	analyzer *analysis.Analyzer,
	predictor domsvc.Predictor,
	reportCache pkgcache.Service,
	archive repository.EventArchive,
	alerts repository.AlertPublisher,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.AnalyzeUseCase {
	return usecase.NewAnalyzeUseCase(analyzer, predictor, reportCache, archive, alerts, m, l, cfg.Cache.ReportTTL)
}

// ProvideIngestPipeline builds the throttling pipeline between snapshot
// sources and the analyzer.
func ProvideIngestPipeline(analyze *usecase.AnalyzeUseCase, m repository.Metrics) *mid.IngestPipeline {
	return mid.NewIngestPipeline(analyze, m,
		mid.WithMinGap(time.Second),
		mid.WithBufferSize(256),
	)
}

// ProvideScanUseCase creates the batch scan use case.
func ProvideScanUseCase(analyze *usecase.AnalyzeUseCase, cfg *config.Config) *usecase.ScanUseCase {
	return usecase.NewScanUseCase(analyze, cfg.Scan.Workers)
}

// ProvideSnapshotHandler registers the Kafka handler for the snapshot topic.
func ProvideSnapshotHandler(pipe *mid.IngestPipeline, m repository.Metrics, cfg *config.Config) *usecase.KafkaSnapshotHandler {
	return usecase.NewKafkaSnapshotHandler(cfg.Kafka.SnapshotTopic, pipe, m)
}

// ProvideSnapshotStream creates the WebSocket stream, or nil when disabled.
func ProvideSnapshotStream(cfg *config.Config) repository.SnapshotStream {
	if !cfg.Stream.Enabled {
		return nil
	}
	return stream.New(
		cfg.Stream.URL,
		cfg.Stream.Tickers,
		cfg.Stream.ReconnectDelay,
		cfg.Stream.PingInterval,
	)
}

// ProvideSnapshotCollector creates the stream collector, or nil when no
// stream is configured.
func ProvideSnapshotCollector(s repository.SnapshotStream, pipe *mid.IngestPipeline, m repository.Metrics) *usecase.SnapshotCollector {
	if s == nil {
		return nil
	}
	return usecase.NewSnapshotCollector(s, pipe, m)
}

// ProvideJobQueue creates the Redis-backed scan job queue, or nil when Redis
// is unavailable.
func ProvideJobQueue(l *applogger.Logger, redisCache *pkgcache.RedisCache, scan *usecase.ScanUseCase, cfg *config.Config) *queue.RedisQueue {
	if redisCache == nil {
		return nil
	}
	workers := cfg.Scan.Workers
	if workers <= 0 {
		workers = 2
	}
	qc := &queue.QueueConfig{
		Workers:    workers,
		QueueSize:  100,
		RetryLimit: 3,
		RetryDelay: 5 * time.Second,
	}
	return queue.NewRedisConsumer(l, qc, redisCache.Client(), []queue.Job{
		usecase.NewScanJob(scan),
	})
}

// ProvideAnalysisHandler wires the HTTP handler with its optional extras.
func ProvideAnalysisHandler(
	l *applogger.Logger,
	analyze *usecase.AnalyzeUseCase,
	scan *usecase.ScanUseCase,
	archive repository.EventArchive,
	jobQueue *queue.RedisQueue,
	collector *usecase.SnapshotCollector,
) *api.AnalysisHandler {
	h := api.NewAnalysisHandler(l, analyze, scan)
	h.SetResponseCache(icache.NewTTLCache())
	if archive != nil {
		h.SetArchive(archive)
	}
	if jobQueue != nil {
		h.SetJobQueue(jobQueue)
	}
	if collector != nil {
		h.SetCollector(collector)
	}
	return h
}

// ProvideApp assembles the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler *api.AnalysisHandler,
	pipe *mid.IngestPipeline,
	collector *usecase.SnapshotCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaSnapshotHandler,
	jobQueue *queue.RedisQueue,
	producer *pkgkafka.Producer,
	chClient *pkgch.Client,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	return server.New(cfg, l, handler, pipe, collector, consumer, kh, jobQueue, producer, chClient)
}
