package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"FxPulse/internal/domain/models"
	"FxPulse/internal/store"
	"FxPulse/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) RecordPoll(feed, source string)               {}
func (nopMetrics) RecordError(subsystem string)                 {}
func (nopMetrics) RecordQuote(symbol string, bid, ask float64)  {}
func (nopMetrics) RecordLatency(op string, seconds float64)     {}
func (nopMetrics) RecordSignal(signal string)                   {}
func (nopMetrics) RecordRecommendation(action string)           {}

type fakeQuoteFeed struct {
	pairs  []models.CurrencyPair
	source models.Source
	err    error
}

func (f *fakeQuoteFeed) FetchPairs(context.Context) ([]models.CurrencyPair, models.Source, error) {
	return f.pairs, f.source, f.err
}

type fakeCalendar struct {
	events []models.EconomicEvent
	source models.Source
	err    error
	calls  int
}

func (f *fakeCalendar) FetchEvents(_ context.Context, since, until time.Time) ([]models.EconomicEvent, models.Source, error) {
	f.calls++
	return f.events, f.source, f.err
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func livePairs() []models.CurrencyPair {
	return []models.CurrencyPair{
		{ID: 1020, Symbol: "EUR/USD", Bid: "1.08000", Ask: "1.08010"},
	}
}

func TestPairPollerPublishesLiveQuotes(t *testing.T) {
	feed := &fakeQuoteFeed{pairs: livePairs(), source: models.SourceLive}
	st := store.NewPairStore(4)
	p := NewPairPoller(feed, st, testLogger(t), nopMetrics{}, time.Second)

	p.poll(context.Background())

	snap := st.Snapshot()
	if snap == nil || snap.Source != models.SourceLive {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestPairPollerKeepsLiveSnapshotOverFallback(t *testing.T) {
	feed := &fakeQuoteFeed{pairs: livePairs(), source: models.SourceLive}
	st := store.NewPairStore(4)
	p := NewPairPoller(feed, st, testLogger(t), nopMetrics{}, time.Second)
	p.poll(context.Background())
	live := st.Snapshot()

	feed.pairs = []models.CurrencyPair{{ID: 1020, Symbol: "EUR/USD", Bid: "1.07834", Ask: "1.07841"}}
	feed.source = models.SourceFallback
	feed.err = errors.New("upstream down")
	p.poll(context.Background())

	if st.Snapshot() != live {
		t.Fatal("fallback data must not replace a live snapshot")
	}
}

func TestPairPollerPublishesFallbackWhenEmpty(t *testing.T) {
	feed := &fakeQuoteFeed{pairs: livePairs(), source: models.SourceFallback, err: errors.New("upstream down")}
	st := store.NewPairStore(4)
	p := NewPairPoller(feed, st, testLogger(t), nopMetrics{}, time.Second)

	p.poll(context.Background())

	snap := st.Snapshot()
	if snap == nil || snap.Source != models.SourceFallback {
		t.Fatalf("expected fallback snapshot, got %+v", snap)
	}
}

func TestEventPollerDefaultWindow(t *testing.T) {
	p := NewEventPoller(&fakeCalendar{}, store.NewEventStore(4), testLogger(t), nopMetrics{}, 7, time.Minute)

	now := time.Date(2025, 3, 3, 15, 30, 0, 0, time.UTC)
	w := p.DefaultWindow(now)
	if !w.Since.Equal(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("window must start at midnight UTC, got %v", w.Since)
	}
	if !w.Until.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("window must span seven days, got %v", w.Until)
	}
}

func TestEventPollerRefreshEventMergesMatchingID(t *testing.T) {
	events := []models.EconomicEvent{
		{ID: "1", Title: "CPI", Currency: "EUR"},
		{ID: "2", Title: "GDP", Currency: "USD"},
	}
	feed := &fakeCalendar{events: events, source: models.SourceLive}
	st := store.NewEventStore(4)
	p := NewEventPoller(feed, st, testLogger(t), nopMetrics{}, 7, time.Minute)
	p.SetWindow(p.DefaultWindow(time.Now()))
	p.poll(context.Background())

	feed.events = []models.EconomicEvent{
		{ID: "1", Title: "CPI", Currency: "EUR"},
		{ID: "2", Title: "GDP", Currency: "USD", Actual: "2.3%", ActualNorm: "2.300"},
	}

	got, err := p.RefreshEvent(context.Background(), "2")
	if err != nil {
		t.Fatalf("RefreshEvent: %v", err)
	}
	if got.ID != "2" || got.Actual != "2.3%" {
		t.Fatalf("refreshed the wrong event: %+v", got)
	}

	stored, _ := st.Get("2")
	if stored.Actual != "2.3%" {
		t.Fatalf("store not merged: %+v", stored)
	}
}

func TestEventPollerRefreshEventUnknownID(t *testing.T) {
	feed := &fakeCalendar{events: []models.EconomicEvent{{ID: "1"}}, source: models.SourceLive}
	st := store.NewEventStore(4)
	p := NewEventPoller(feed, st, testLogger(t), nopMetrics{}, 7, time.Minute)
	p.SetWindow(p.DefaultWindow(time.Now()))
	p.poll(context.Background())

	if _, err := p.RefreshEvent(context.Background(), "nope"); err == nil {
		t.Fatal("expected an error for an unknown id")
	}
	if feed.calls != 1 {
		t.Fatalf("unknown ids must not hit the feed, got %d calls", feed.calls)
	}
}

func TestEventPollerKeepsLiveEventsOverFallback(t *testing.T) {
	feed := &fakeCalendar{events: []models.EconomicEvent{{ID: "1", Title: "CPI"}}, source: models.SourceLive}
	st := store.NewEventStore(4)
	p := NewEventPoller(feed, st, testLogger(t), nopMetrics{}, 7, time.Minute)
	p.SetWindow(p.DefaultWindow(time.Now()))
	p.poll(context.Background())
	live := st.Snapshot()

	feed.events = []models.EconomicEvent{{ID: "fallback"}}
	feed.source = models.SourceFallback
	feed.err = errors.New("upstream down")
	p.poll(context.Background())

	if st.Snapshot() != live {
		t.Fatal("fallback events must not replace a live snapshot")
	}
}
