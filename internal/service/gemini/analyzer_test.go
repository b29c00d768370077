package gemini

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"FxPulse/internal/domain/models"
)

func reply(text string) string {
	return fmt.Sprintf(`{"candidates":[{"content":{"parts":[{"text":%q}]}}]}`, text)
}

func todayEvent(now time.Time) models.EconomicEvent {
	return models.EconomicEvent{
		ID:       "42",
		Date:     now.UTC().Format("2006-01-02") + "T13:30:00+0000",
		Currency: "USD",
		Title:    "Nonfarm Payrolls",
		Previous: "229K", Forecast: "160K", Actual: "151K",
	}
}

func TestAnalyzeSkipsEventsNotFromToday(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for a non-today event")
	}))
	defer srv.Close()

	a := NewAnalyzer(srv.URL, "key")
	now := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	ev := todayEvent(now)
	ev.Date = "2025-03-02T21:45:00+0000"

	signal, err := a.Analyze(context.Background(), ev, now)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if signal != nil {
		t.Fatalf("expected nil signal for a skipped event, got %+v", signal)
	}
}

func TestAnalyzeParsesReply(t *testing.T) {
	text := "Event: Nonfarm Payrolls\nSignal: SELL\nConfidence: 80%\nReasoning: Actual came in below forecast.\nDirection: ↓\nAffected markets: EUR/USD, Gold"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "key" {
			t.Errorf("missing api key, got query %q", r.URL.RawQuery)
		}
		fmt.Fprint(w, reply(text))
	}))
	defer srv.Close()

	now := time.Now().UTC()
	a := NewAnalyzer(srv.URL, "key")
	signal, err := a.Analyze(context.Background(), todayEvent(now), now)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if signal.State != models.SignalParsed {
		t.Fatalf("expected parsed signal, got %s", signal.State)
	}
	if signal.EventID != "42" {
		t.Fatalf("signal not tied to event: %+v", signal)
	}
	if signal.Signal != "SELL" || signal.Confidence != "80%" || signal.Direction != "↓" {
		t.Fatalf("unexpected fields %+v", signal)
	}
	if signal.Markets != "EUR/USD, Gold" {
		t.Fatalf("affected markets not mapped: %q", signal.Markets)
	}
}

func TestAnalyzeKeepsPartialReplies(t *testing.T) {
	text := "Signal: BUY\nsome free-form commentary without structure"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, reply(text))
	}))
	defer srv.Close()

	now := time.Now().UTC()
	a := NewAnalyzer(srv.URL, "key")
	signal, err := a.Analyze(context.Background(), todayEvent(now), now)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if signal.State != models.SignalParsed || signal.Signal != "BUY" {
		t.Fatalf("unexpected signal %+v", signal)
	}
	if signal.Reasoning != "" {
		t.Fatalf("unstructured lines must be dropped, got %q", signal.Reasoning)
	}
}

func TestAnalyzeMarksUnparseableReplies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, reply("the model rambled with no structure at all"))
	}))
	defer srv.Close()

	now := time.Now().UTC()
	a := NewAnalyzer(srv.URL, "key")
	signal, err := a.Analyze(context.Background(), todayEvent(now), now)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if signal.State != models.SignalUnparseable {
		t.Fatalf("expected unparseable state, got %+v", signal)
	}
}

func TestAnalyzeRetriesOnRateLimit(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, reply("Signal: WAIT"))
	}))
	defer srv.Close()

	var slept []time.Duration
	now := time.Now().UTC()
	a := NewAnalyzer(srv.URL, "key", WithRetry(3, 10*time.Millisecond))
	a.sleep = func(d time.Duration) { slept = append(slept, d) }

	signal, err := a.Analyze(context.Background(), todayEvent(now), now)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if signal.Signal != "WAIT" {
		t.Fatalf("unexpected signal %+v", signal)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
	if len(slept) != 2 || slept[0] != 10*time.Millisecond || slept[1] != 20*time.Millisecond {
		t.Fatalf("unexpected backoff schedule %v", slept)
	}
}

func TestAnalyzeDoesNotRetryOtherErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	now := time.Now().UTC()
	a := NewAnalyzer(srv.URL, "key", WithRetry(3, time.Millisecond))
	if _, err := a.Analyze(context.Background(), todayEvent(now), now); err == nil {
		t.Fatal("expected an error on 500")
	}
	if calls != 1 {
		t.Fatalf("a 500 must not be retried, got %d attempts", calls)
	}
}

func TestAnalyzeGivesUpAfterMaxRetries(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	now := time.Now().UTC()
	a := NewAnalyzer(srv.URL, "key", WithRetry(3, time.Millisecond))
	a.sleep = func(time.Duration) {}

	if _, err := a.Analyze(context.Background(), todayEvent(now), now); err == nil {
		t.Fatal("expected an error after exhausting retries")
	}
	if calls != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", calls)
	}
}
