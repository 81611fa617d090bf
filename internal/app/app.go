package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/crm/internal/graph"
	healthcheck "github.com/vladislavdragonenkov/crm/internal/health"
	"github.com/vladislavdragonenkov/crm/internal/metrics"
	"github.com/vladislavdragonenkov/crm/internal/service/crm"
	"github.com/vladislavdragonenkov/crm/internal/service/outbox"
	"github.com/vladislavdragonenkov/crm/internal/version"
)

const shutdownTimeout = 5 * time.Second

// Run собирает зависимости и запускает GraphQL API вместе со служебным
// HTTP-сервером. Блокируется до отмены ctx или фатальной ошибки сервера.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Close()

	// Недоступный Kafka не блокирует запуск API: события копятся в outbox
	// и будут опубликованы после рестарта с рабочим брокером.
	kafkaProducer, err := initKafkaProducer(cfg.KafkaBrokers, logger)
	if err != nil {
		logger.WithError(err).Warn("Kafka недоступен, публикация событий отключена")
	}
	defer closeKafka(kafkaProducer, logger)

	crmMetrics := metrics.NewCRMMetrics()
	service := crm.NewService(
		deps.Customers,
		deps.Products,
		deps.Orders,
		logger.WithField("component", "crm-service"),
		crm.WithOutbox(deps.Outbox),
		crm.WithMetrics(crmMetrics),
	)

	schema, err := graphql.ParseSchema(graph.SchemaSDL, graph.NewResolver(service))
	if err != nil {
		return fmt.Errorf("parse graphql schema: %w", err)
	}

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	if deps.Store != nil {
		healthHandler.RegisterChecker("postgres", healthcheck.NewSimpleChecker("postgres", func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return deps.Store.Ping(pingCtx)
		}))
	}

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	// Воркер публикует outbox-события только при настроенном Kafka.
	var workerWG sync.WaitGroup
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	if kafkaProducer != nil {
		worker := outbox.NewWorker(
			deps.Outbox,
			kafkaPublisher(kafkaProducer),
			outbox.WithLogger(logger.WithField("component", "outbox-worker")),
			outbox.WithDLQPublisher(kafkaDLQPublisher(kafkaProducer)),
		)
		workerWG.Add(1)
		go func() {
			defer workerWG.Done()
			worker.Run(workerCtx)
		}()
	}

	apiMux := http.NewServeMux()
	apiMux.Handle("/graphql", &relay.Handler{Schema: schema})
	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: apiMux}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("GraphQL API слушает %s/graphql", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем API сервер")
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		stopWorker()
		workerWG.Wait()
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		stopWorker()
		workerWG.Wait()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startMetricsServer запускает служебный HTTP-сервер: /metrics, /healthz,
// /readyz, /livez.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez", addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
