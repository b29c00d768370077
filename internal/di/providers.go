package di

import (
	"context"
	"fmt"
	"time"

	"FxPulse/internal/domain/models"
	"FxPulse/internal/domain/repository"
	"FxPulse/internal/handler/api"
	"FxPulse/internal/handler/ws"
	mid "FxPulse/internal/middleware"
	"FxPulse/internal/service/dukascopy"
	"FxPulse/internal/service/gemini"
	"FxPulse/internal/store"
	"FxPulse/internal/usecase"
	"FxPulse/pkg/cache"
	"FxPulse/pkg/config"
	"FxPulse/pkg/logger"
	"FxPulse/pkg/metrics"
	"FxPulse/pkg/server"
)

// ProvideLogger creates the application logger with the error collector the
// debug endpoint reads from.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	l.WithCollector(logger.NewErrorCollector())
	return l, nil
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the cache backing the vendor proxy and the AI
// signals: layered memory+Redis when Redis is configured, memory otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}

	redisCache, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Cache.Redis.Addr),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(redisCache), nil
}

// ProvideDukascopyClient creates the vendor feed client.
func ProvideDukascopyClient(cfg *config.Config, cacheSvc cache.Service) *dukascopy.Client {
	return dukascopy.New(
		cfg.Dukascopy.QuotesURL,
		cfg.Dukascopy.CalendarURL,
		dukascopy.WithTimeout(cfg.Dukascopy.Timeout),
		dukascopy.WithCache(cacheSvc, cfg.Cache.ProxyTTL),
	)
}

// ProvideQuoteFeed exposes the vendor client as a quote feed.
func ProvideQuoteFeed(client *dukascopy.Client) repository.QuoteFeed {
	return client
}

// ProvideCalendarFeed exposes the vendor client as a calendar feed.
func ProvideCalendarFeed(client *dukascopy.Client) repository.CalendarFeed {
	return client
}

// disabledAnalyzer is used when no Gemini key is configured; every event is
// skipped and the dashboard simply shows no AI signals.
type disabledAnalyzer struct{}

func (disabledAnalyzer) Analyze(context.Context, models.EconomicEvent, time.Time) (*models.AISignal, error) {
	return nil, nil
}

// ProvideAnalyzer creates the Gemini analyzer, or a disabled stand-in when
// the API key is absent.
func ProvideAnalyzer(cfg *config.Config) repository.EventAnalyzer {
	if !cfg.AIEnabled() {
		return disabledAnalyzer{}
	}
	return gemini.NewAnalyzer(
		cfg.Gemini.Endpoint,
		cfg.Gemini.APIKey,
		gemini.WithTimeout(cfg.Gemini.Timeout),
		gemini.WithRetry(cfg.Gemini.MaxRetries, cfg.Gemini.BaseDelay),
	)
}

// ProvidePairStore creates the pair snapshot store.
func ProvidePairStore(cfg *config.Config) *store.PairStore {
	return store.NewPairStore(cfg.Analysis.BufferSize)
}

// ProvideEventStore creates the event window store.
func ProvideEventStore(cfg *config.Config) *store.EventStore {
	return store.NewEventStore(cfg.Analysis.BufferSize)
}

// ProvideSignalStore creates the AI signal store.
func ProvideSignalStore() *store.SignalStore {
	return store.NewSignalStore()
}

// ProvidePairPoller creates the 1s quote poller.
func ProvidePairPoller(feed repository.QuoteFeed, st *store.PairStore, log *logger.Logger, m repository.Metrics, cfg *config.Config) *usecase.PairPoller {
	return usecase.NewPairPoller(feed, st, log, m, cfg.Dukascopy.PollInterval)
}

// ProvideEventPoller creates the calendar window poller.
func ProvideEventPoller(feed repository.CalendarFeed, st *store.EventStore, log *logger.Logger, m repository.Metrics, cfg *config.Config) *usecase.EventPoller {
	return usecase.NewEventPoller(feed, st, log, m, cfg.Dukascopy.WindowDays, cfg.Analysis.Cycle)
}

// ProvideAnalysisRunner creates the analysis runner with its pipeline
// attached.
func ProvideAnalysisRunner(
	analyzer repository.EventAnalyzer,
	events *store.EventStore,
	pairs *store.PairStore,
	signals *store.SignalStore,
	poller *usecase.EventPoller,
	cacheSvc cache.Service,
	log *logger.Logger,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.AnalysisRunner {
	runner := usecase.NewAnalysisRunner(analyzer, events, pairs, signals, poller, cacheSvc, cfg.Cache.SignalTTL, log, m)
	pipe := mid.NewAnalysisPipeline(runner, m,
		mid.WithMaxRPS(cfg.Analysis.MaxRPS),
		mid.WithBufferSize(cfg.Analysis.BufferSize),
	)
	runner.Attach(pipe)
	return runner
}

// ProvidePipeline recovers the pipeline the runner was attached to. Wire
// needs a provider per type; the pipeline lifecycle (Start/Stop) belongs to
// the app.
func ProvidePipeline(runner *usecase.AnalysisRunner, m repository.Metrics) *mid.AnalysisPipeline {
	if pipe, ok := runner.Pipeline().(*mid.AnalysisPipeline); ok {
		return pipe
	}
	return mid.NewAnalysisPipeline(runner, m)
}

// ProvideHub creates the WebSocket hub.
func ProvideHub(log *logger.Logger) *ws.Hub {
	return ws.NewHub(log)
}

// ProvidePusher creates the store-to-WebSocket pusher.
func ProvidePusher(hub *ws.Hub, pairs *store.PairStore, events *store.EventStore, runner *usecase.AnalysisRunner) *ws.Pusher {
	return ws.NewPusher(hub, pairs, events, runner)
}

// ProvideDashboardHandler creates the REST handler.
func ProvideDashboardHandler(log *logger.Logger, pairs *store.PairStore, events *store.EventStore, poller *usecase.EventPoller, runner *usecase.AnalysisRunner) *api.DashboardHandler {
	return api.NewDashboardHandler(log, pairs, events, poller, runner)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	cacheSvc cache.Service,
	pairPoller *usecase.PairPoller,
	eventPoller *usecase.EventPoller,
	runner *usecase.AnalysisRunner,
	pipeline *mid.AnalysisPipeline,
	hub *ws.Hub,
	pusher *ws.Pusher,
	handler *api.DashboardHandler,
) *server.App {
	return server.New(cfg, log, cacheSvc, pairPoller, eventPoller, runner, pipeline, hub, pusher, handler)
}
