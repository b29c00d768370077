package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"

	"FxPulse/internal/handler/api"
	"FxPulse/internal/handler/ws"
	mid "FxPulse/internal/middleware"
	"FxPulse/internal/scheduler"
	"FxPulse/internal/usecase"
	"FxPulse/pkg/cache"
	"FxPulse/pkg/config"
	xhttp "FxPulse/pkg/http"
	applogger "FxPulse/pkg/logger"
)

// App encapsulates the application lifecycle: pollers, analysis pipeline,
// scheduler, WebSocket push, and the HTTP server.
type App struct {
	cfg         *config.Config
	log         *applogger.Logger
	cache       cache.Service
	pairPoller  *usecase.PairPoller
	eventPoller *usecase.EventPoller
	runner      *usecase.AnalysisRunner
	pipeline    *mid.AnalysisPipeline
	hub         *ws.Hub
	pusher      *ws.Pusher
	handler     *api.DashboardHandler
	httpServer  *xhttp.Server
}

// New creates an App with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	cacheSvc cache.Service,
	pairPoller *usecase.PairPoller,
	eventPoller *usecase.EventPoller,
	runner *usecase.AnalysisRunner,
	pipeline *mid.AnalysisPipeline,
	hub *ws.Hub,
	pusher *ws.Pusher,
	handler *api.DashboardHandler,
) *App {
	return &App{
		cfg:         cfg,
		log:         log,
		cache:       cacheSvc,
		pairPoller:  pairPoller,
		eventPoller: eventPoller,
		runner:      runner,
		pipeline:    pipeline,
		hub:         hub,
		pusher:      pusher,
		handler:     handler,
	}
}

// routeSet registers several handlers on one Echo instance.
type routeSet []xhttp.Handler

func (r routeSet) RegisterRoutes(e *echo.Echo) {
	for _, h := range r {
		h.RegisterRoutes(e)
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}
	a.httpServer = xhttp.NewServer(routeSet{a.handler, a.hub},
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
	)

	a.pipeline.Start(ctx)
	go a.pairPoller.Run(ctx)
	go a.eventPoller.Run(ctx)
	go a.pusher.Run(ctx)
	a.log.Info("pollers started",
		applogger.Duration("pair_interval", a.cfg.Dukascopy.PollInterval),
		applogger.Int("window_days", a.cfg.Dukascopy.WindowDays),
	)

	sched := scheduler.New(ctx, a.runner, a.log)
	if err := sched.Register(a.cfg.Analysis.Cycle, a.cfg.Analysis.Sweep); err != nil {
		return err
	}
	sched.Start()

	if !a.cfg.AIEnabled() {
		a.log.Warn("gemini api key not configured, ai analysis disabled")
	}

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return a.shutdown(sched)
}

func (a *App) shutdown(sched *scheduler.Scheduler) error {
	sched.Stop()
	a.pipeline.Stop()
	a.hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn("cache close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
