package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	domrepo "BuildPulse/internal/domain/repository"
	"BuildPulse/internal/handler/api"
	"BuildPulse/internal/usecase"
	"BuildPulse/pkg/config"
	xhttp "BuildPulse/pkg/http"
	pkgkafka "BuildPulse/pkg/kafka"
	applogger "BuildPulse/pkg/logger"
	"BuildPulse/pkg/queue"
)

// App encapsulates the application lifecycle: HTTP surface, alert monitor,
// snapshot-event consumer and digest queue.
type App struct {
	cfg             *config.Config
	logger          *applogger.Logger
	handler         xhttp.Handler
	httpServer      *xhttp.Server
	monitor         *usecase.AlertMonitor
	consumer        *pkgkafka.Consumer
	snapshotHandler pkgkafka.MessageHandler
	digestQueue     *queue.RedisQueue
	alertsWS        *api.AlertsWSHandler
	store           domrepo.SnapshotStore
	publisher       domrepo.AlertPublisher
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	lgr *applogger.Logger,
	handler xhttp.Handler,
	monitor *usecase.AlertMonitor,
	consumer *pkgkafka.Consumer,
	snapshotHandler pkgkafka.MessageHandler,
	digestQueue *queue.RedisQueue,
	alertsWS *api.AlertsWSHandler,
	store domrepo.SnapshotStore,
	publisher domrepo.AlertPublisher,
) *App {
	return &App{
		cfg:             cfg,
		logger:          lgr,
		handler:         handler,
		monitor:         monitor,
		consumer:        consumer,
		snapshotHandler: snapshotHandler,
		digestQueue:     digestQueue,
		alertsWS:        alertsWS,
		store:           store,
		publisher:       publisher,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if a.digestQueue != nil {
		if err := a.digestQueue.Start(); err != nil {
			a.logger.Error("digest queue start error", applogger.Error(err))
			return err
		}
	}

	if a.consumer != nil && a.snapshotHandler != nil {
		a.consumer.RegisterHandler(a.snapshotHandler)
		if err := a.consumer.Start(); err != nil {
			a.logger.Error("kafka consumer start error", applogger.Error(err))
			return err
		}
		a.logger.Info("kafka consumer started", applogger.String("topic", a.snapshotHandler.Topic()))
	}

	a.monitor.Start()
	a.logger.Info("alert monitor started",
		applogger.Duration("sweep_interval", a.cfg.Analytics.SweepInterval))

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("buildpulse started",
		applogger.String("environment", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown stops services in reverse start order.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if err := a.monitor.Stop(shutdownCtx); err != nil {
		a.logger.Warn("alert monitor stop error", applogger.Error(err))
	}

	if a.alertsWS != nil {
		a.alertsWS.Close()
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(shutdownCtx); err != nil {
			a.logger.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	if a.digestQueue != nil {
		if err := a.digestQueue.Stop(shutdownCtx); err != nil {
			a.logger.Warn("digest queue stop error", applogger.Error(err))
		}
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("alert publisher close error", applogger.Error(err))
		}
	}

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("snapshot store close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
