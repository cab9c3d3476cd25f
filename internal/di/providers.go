package di

import (
	"context"
	"fmt"
	"time"

	domrepo "BuildPulse/internal/domain/repository"
	domsvc "BuildPulse/internal/domain/service"
	"BuildPulse/internal/handler/api"
	internalrepo "BuildPulse/internal/repository"
	icache "BuildPulse/internal/service/cache"
	"BuildPulse/internal/services/predictive"
	"BuildPulse/internal/usecase"
	pkgch "BuildPulse/pkg/clickhouse"
	"BuildPulse/pkg/config"
	xhttp "BuildPulse/pkg/http"
	pkgkafka "BuildPulse/pkg/kafka"
	applogger "BuildPulse/pkg/logger"
	"BuildPulse/pkg/metrics"
	"BuildPulse/pkg/queue"
	"BuildPulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "json"
	if cfg.Environment == "development" {
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: "info", Format: format, Output: "stdout"})
}

// ProvideEngine creates the predictive engine.
func ProvideEngine() domsvc.Engine {
	return predictive.NewEngine()
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.NewRecorder()
}

// ProvideClickHouseClient creates a ClickHouse client and ensures the schema.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.SchemaStatements); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideSnapshotStore creates the ClickHouse-backed snapshot store.
func ProvideSnapshotStore(ch *pkgch.Client, lgr *applogger.Logger) domrepo.SnapshotStore {
	store := internalrepo.NewCHSnapshotStore(ch)
	store.SetLogger(lgr)
	return store
}

// ProvideKafkaProducer creates the Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.WriteTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideAlertPublisher creates the Kafka alert publisher.
func ProvideAlertPublisher(producer *pkgkafka.Producer, cfg *config.Config, lgr *applogger.Logger) domrepo.AlertPublisher {
	return internalrepo.NewKafkaAlertPublisher(producer, cfg.Kafka.AlertsTopic, lgr)
}

// ProvideKafkaConsumer creates the snapshot-events consumer.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideInsightCache picks Redis when enabled, in-process TTL cache
// otherwise.
func ProvideInsightCache(cfg *config.Config) icache.BytesCache {
	if cfg.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideDigestQueue creates the Redis digest queue when Redis is enabled.
func ProvideDigestQueue(cfg *config.Config, c icache.BytesCache, lgr *applogger.Logger) *queue.RedisQueue {
	rc, ok := c.(*icache.RedisCache)
	if !ok {
		return nil
	}
	prefix := cfg.Redis.DigestQueue
	if prefix == "" {
		prefix = "buildpulse:digest"
	}
	q := queue.NewRedisQueue(lgr,
		&queue.QueueConfig{Workers: 1, RetryLimit: 3, RetryDelay: 30 * time.Second},
		rc.Client(),
		queue.WithKeyPrefix(prefix))
	q.RegisterJob(usecase.NewAlertDigestJob(lgr))
	return q
}

// ProvideInsightService creates the cached insight usecase.
func ProvideInsightService(
	store domrepo.SnapshotStore,
	engine domsvc.Engine,
	c icache.BytesCache,
	m domrepo.Metrics,
	cfg *config.Config,
) *usecase.InsightService {
	return usecase.NewInsightService(store, engine, c, m, usecase.CacheTTLs{
		Overrun:   cfg.Analytics.CacheTTL.Overrun,
		CashFlow:  cfg.Analytics.CacheTTL.CashFlow,
		Safety:    cfg.Analytics.CacheTTL.Safety,
		Vendor:    cfg.Analytics.CacheTTL.Vendor,
		Equipment: cfg.Analytics.CacheTTL.Equipment,
		Anomalies: cfg.Analytics.CacheTTL.Anomalies,
	})
}

// ProvideCompanyInsights creates the aggregate dashboard usecase.
func ProvideCompanyInsights(insights *usecase.InsightService) *usecase.CompanyInsightsUseCase {
	return usecase.NewCompanyInsightsUseCase(insights)
}

// ProvideAlertsWSHandler creates the alerts websocket hub.
func ProvideAlertsWSHandler(lgr *applogger.Logger, monitor *usecase.AlertMonitor) *api.AlertsWSHandler {
	return api.NewAlertsWSHandler(lgr, monitor)
}

// ProvideAlertMonitor creates the sweeping alert monitor. The websocket hub
// is attached afterwards to break the hub/monitor cycle.
func ProvideAlertMonitor(
	store domrepo.SnapshotStore,
	engine domsvc.Engine,
	publisher domrepo.AlertPublisher,
	digest *queue.RedisQueue,
	m domrepo.Metrics,
	lgr *applogger.Logger,
	cfg *config.Config,
) *usecase.AlertMonitor {
	var digestSvc queue.QueueService
	if digest != nil {
		digestSvc = digest
	}
	return usecase.NewAlertMonitor(store, engine, publisher, nil, digestSvc, m, lgr, cfg.Analytics.SweepInterval)
}

// ProvideSnapshotEventsHandler creates the cache-invalidation consumer.
func ProvideSnapshotEventsHandler(cfg *config.Config, c icache.BytesCache, m domrepo.Metrics, lgr *applogger.Logger) *usecase.SnapshotEventsHandler {
	return usecase.NewSnapshotEventsHandler(cfg.Kafka.SnapshotsTopic, c, m, lgr)
}

// ProvideRoutes composes the HTTP handler surface.
func ProvideRoutes(
	lgr *applogger.Logger,
	insights *usecase.InsightService,
	company *usecase.CompanyInsightsUseCase,
	alertsWS *api.AlertsWSHandler,
	store domrepo.SnapshotStore,
	cfg *config.Config,
) xhttp.Handler {
	h := api.NewInsightsEchoHandler(lgr, insights, company)
	h.SetRateLimit(cfg.Analytics.RateLimit.Capacity, cfg.Analytics.RateLimit.RefillPerSec)
	return api.NewRoutes(h, alertsWS, store)
}

// ProvideApp assembles the application server.
func ProvideApp(
	cfg *config.Config,
	lgr *applogger.Logger,
	handler xhttp.Handler,
	monitor *usecase.AlertMonitor,
	consumer *pkgkafka.Consumer,
	snapshotHandler *usecase.SnapshotEventsHandler,
	digest *queue.RedisQueue,
	alertsWS *api.AlertsWSHandler,
	store domrepo.SnapshotStore,
	publisher domrepo.AlertPublisher,
) *server.App {
	monitor.SetBroadcaster(alertsWS)
	return server.New(cfg, lgr, handler, monitor, consumer, snapshotHandler, digest, alertsWS, store, publisher)
}
