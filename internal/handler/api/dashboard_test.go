package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"FxPulse/internal/domain/models"
	"FxPulse/internal/store"
	"FxPulse/internal/usecase"
	"FxPulse/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) RecordPoll(feed, source string)              {}
func (nopMetrics) RecordError(subsystem string)                {}
func (nopMetrics) RecordQuote(symbol string, bid, ask float64) {}
func (nopMetrics) RecordLatency(op string, seconds float64)    {}
func (nopMetrics) RecordSignal(signal string)                  {}
func (nopMetrics) RecordRecommendation(action string)          {}

type fakeCalendar struct {
	events []models.EconomicEvent
}

func (f *fakeCalendar) FetchEvents(context.Context, time.Time, time.Time) ([]models.EconomicEvent, models.Source, error) {
	return f.events, models.SourceLive, nil
}

type fakeAnalyzer struct{}

func (fakeAnalyzer) Analyze(context.Context, models.EconomicEvent, time.Time) (*models.AISignal, error) {
	return nil, nil
}

type fixture struct {
	e       *echo.Echo
	pairs   *store.PairStore
	events  *store.EventStore
	signals *store.SignalStore
}

func newFixture(t *testing.T, calendar *fakeCalendar) *fixture {
	t.Helper()

	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	log.WithCollector(logger.NewErrorCollector())

	pairs := store.NewPairStore(4)
	events := store.NewEventStore(4)
	signals := store.NewSignalStore()

	poller := usecase.NewEventPoller(calendar, events, log, nopMetrics{}, 7, time.Minute)
	runner := usecase.NewAnalysisRunner(fakeAnalyzer{}, events, pairs, signals, poller, nil, time.Minute, log, nopMetrics{})

	e := echo.New()
	NewDashboardHandler(log, pairs, events, poller, runner).RegisterRoutes(e)
	return &fixture{e: e, pairs: pairs, events: events, signals: signals}
}

func get(f *fixture, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func TestCurrencyPairsEmptySnapshot(t *testing.T) {
	f := newFixture(t, &fakeCalendar{})
	rec := get(f, "/api/currency-pairs")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"pairs":[]`) {
		t.Fatalf("expected an empty pair list, got %s", rec.Body.String())
	}
}

func TestCurrencyPairsReturnsSnapshotWithSource(t *testing.T) {
	f := newFixture(t, &fakeCalendar{})
	f.pairs.Publish([]models.CurrencyPair{
		{ID: 1020, Symbol: "EUR/USD", Bid: "1.07834", Ask: "1.07841"},
	}, models.SourceLive, time.Now())

	rec := get(f, "/api/currency-pairs")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"EUR/USD"`) || !strings.Contains(body, `"source":"live"`) {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestEconomicEventsRequiresWindow(t *testing.T) {
	f := newFixture(t, &fakeCalendar{})
	rec := get(f, "/api/economic-events")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected transport status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":400`) {
		t.Fatalf("missing window params must yield 400, got %s", rec.Body.String())
	}
}

func TestEconomicEventsFetchesWindow(t *testing.T) {
	calendar := &fakeCalendar{events: []models.EconomicEvent{
		{ID: "1", Title: "CPI", Currency: "EUR", Impact: "3"},
	}}
	f := newFixture(t, calendar)

	rec := get(f, "/api/economic-events?since=1740873600000&until=1741478400000")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"CPI"`) {
		t.Fatalf("expected fetched events, got %s", rec.Body.String())
	}

	snap := f.events.Snapshot()
	if snap == nil || !snap.Window.Since.Equal(time.UnixMilli(1740873600000).UTC()) {
		t.Fatalf("window not moved: %+v", snap)
	}
}

func TestRefreshEventUnknownID(t *testing.T) {
	f := newFixture(t, &fakeCalendar{})
	rec := get(f, "/api/economic-events/nope/refresh")
	if !strings.Contains(rec.Body.String(), `"status":404`) {
		t.Fatalf("unknown event must yield 404, got %s", rec.Body.String())
	}
}

func TestRefreshEventMergesOutcome(t *testing.T) {
	calendar := &fakeCalendar{events: []models.EconomicEvent{
		{ID: "1", Title: "CPI", Currency: "EUR"},
	}}
	f := newFixture(t, calendar)
	f.events.Replace(calendar.events, models.EventWindow{}, models.SourceLive, time.Now())

	calendar.events = []models.EconomicEvent{
		{ID: "1", Title: "CPI", Currency: "EUR", Actual: "2.4%", ActualNorm: "2.400"},
	}

	rec := get(f, "/api/economic-events/1/refresh")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"2.4%"`) {
		t.Fatalf("unexpected refresh reply %d %s", rec.Code, rec.Body.String())
	}

	stored, _ := f.events.Get("1")
	if stored.Actual != "2.4%" {
		t.Fatalf("store not merged: %+v", stored)
	}
}

func TestStatsCountsSignals(t *testing.T) {
	f := newFixture(t, &fakeCalendar{})
	f.pairs.Publish([]models.CurrencyPair{{Symbol: "EUR/USD", Bid: "1.1", Ask: "1.2"}}, models.SourceLive, time.Now())
	f.signals.Put(&models.AISignal{EventID: "1", State: models.SignalParsed, Signal: "BUY"})

	rec := get(f, "/api/stats")
	body := rec.Body.String()
	if !strings.Contains(body, `"active_pairs":1`) || !strings.Contains(body, `"buy_signals":1`) {
		t.Fatalf("unexpected stats %s", body)
	}
}

func TestHealth(t *testing.T) {
	f := newFixture(t, &fakeCalendar{})
	rec := get(f, "/api/health")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("unexpected health reply %d %s", rec.Code, rec.Body.String())
	}
}
