package api

import (
	"time"

	"github.com/labstack/echo/v4"

	"FxPulse/internal/domain/models"
	"FxPulse/internal/store"
	"FxPulse/internal/usecase"
	xhttp "FxPulse/pkg/http"
	xlogger "FxPulse/pkg/logger"
)

// DashboardHandler serves the dashboard's read API: quotes, events,
// recommendations, AI signals, stats, and the per-subsystem debug panel.
type DashboardHandler struct {
	logger *xlogger.Logger
	pairs  *store.PairStore
	events *store.EventStore
	poller *usecase.EventPoller
	runner *usecase.AnalysisRunner
}

func NewDashboardHandler(logger *xlogger.Logger, pairs *store.PairStore, events *store.EventStore, poller *usecase.EventPoller, runner *usecase.AnalysisRunner) *DashboardHandler {
	return &DashboardHandler{
		logger: logger,
		pairs:  pairs,
		events: events,
		poller: poller,
		runner: runner,
	}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/currency-pairs", h.CurrencyPairs)
	g.GET("/economic-events", h.EconomicEvents)
	g.GET("/economic-events/:id/refresh", h.RefreshEvent)
	g.GET("/recommendations", h.Recommendations)
	g.GET("/signals", h.Signals)
	g.GET("/stats", h.Stats)
	g.GET("/debug", h.Debug)
	g.GET("/health", h.Health)
}

// CurrencyPairs returns the current pair snapshot with its source tag.
func (h *DashboardHandler) CurrencyPairs(c echo.Context) error {
	snap := h.pairs.Snapshot()
	if snap == nil {
		snap = &models.PairSnapshot{Pairs: []models.CurrencyPair{}}
	}
	return xhttp.SuccessResponse(c, snap)
}

// EconomicEvents moves the event window and returns the refreshed snapshot.
func (h *DashboardHandler) EconomicEvents(c echo.Context) error {
	req := &EventsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	window := models.EventWindow{
		Since: time.UnixMilli(req.Since).UTC(),
		Until: time.UnixMilli(req.Until).UTC(),
	}
	snap := h.poller.FetchWindow(c.Request().Context(), window)
	if snap == nil {
		snap = &models.EventSnapshot{Events: []models.EconomicEvent{}, Window: window}
	}
	return xhttp.SuccessResponse(c, snap)
}

// RefreshEvent re-fetches the window and merges the named event by id.
func (h *DashboardHandler) RefreshEvent(c echo.Context) error {
	req := &RefreshEventRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ev, err := h.poller.RefreshEvent(c.Request().Context(), req.ID)
	if err != nil {
		if _, ok := h.events.Get(req.ID); !ok {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("event %q not found", req.ID))
		}
		h.logger.Error("event refresh failed", xlogger.Subsystem("events"), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("event refresh failed").WithError(err))
	}
	return xhttp.SuccessResponse(c, ev)
}

// Recommendations scores every pair in the snapshot.
func (h *DashboardHandler) Recommendations(c echo.Context) error {
	recs := h.runner.Recommendations()
	if recs == nil {
		recs = []models.PairRecommendation{}
	}
	return xhttp.SuccessResponse(c, recs)
}

// Signals returns the held AI signals, newest first, with the counters.
func (h *DashboardHandler) Signals(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"signals": h.runner.Signals(),
		"stats":   h.runner.Stats(),
	})
}

// Stats returns the dashboard counters alone.
func (h *DashboardHandler) Stats(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.runner.Stats())
}

// Debug returns the latest recorded error per subsystem.
func (h *DashboardHandler) Debug(c echo.Context) error {
	errors := []xlogger.SubsystemError{}
	if col := h.logger.Collector(); col != nil {
		errors = col.Snapshot()
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{"errors": errors})
}

// Health is the liveness endpoint.
func (h *DashboardHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}
