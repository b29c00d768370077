package usecase

import (
	"strings"
	"testing"

	"FxPulse/internal/domain/models"
)

func pair(symbol string) models.CurrencyPair {
	return models.CurrencyPair{ID: 1020, Symbol: symbol, Bid: "1.07834", Ask: "1.07841"}
}

func TestGenerateRecommendation_InvalidSymbol(t *testing.T) {
	for _, symbol := range []string{"EURUSD", "EUR/USD/JPY", "", "EUR/"} {
		rec := GenerateRecommendation(pair(symbol), []models.EconomicEvent{
			{Currency: "EUR", Impact: "3", Actual: "1", Forecast: "0", ActualNorm: "1", ForecastNorm: "0"},
		})
		if rec.Action != models.ActionWait {
			t.Errorf("%q: expected Wait, got %s", symbol, rec.Action)
		}
		if rec.Confidence != 0 {
			t.Errorf("%q: expected confidence 0, got %d", symbol, rec.Confidence)
		}
		if rec.Reason != "Invalid currency pair format" {
			t.Errorf("%q: unexpected reason %q", symbol, rec.Reason)
		}
	}
}

func TestGenerateRecommendation_NoRelevantEvents(t *testing.T) {
	rec := GenerateRecommendation(pair("EUR/USD"), []models.EconomicEvent{
		{Currency: "JPY", Impact: "3", Actual: "1", Forecast: "0", ActualNorm: "1", ForecastNorm: "0"},
	})
	if rec.Action != models.ActionWait || rec.Confidence != 30 {
		t.Fatalf("expected Wait/30, got %s/%d", rec.Action, rec.Confidence)
	}
	if rec.Reason != "No relevant economic events found for this currency pair" {
		t.Fatalf("unexpected reason %q", rec.Reason)
	}
}

func TestGenerateRecommendation_BuyOnStrongBaseEvent(t *testing.T) {
	events := []models.EconomicEvent{
		{
			Currency:     "EUR",
			Impact:       "3",
			Title:        "Terms of Trade",
			Actual:       "3.10%",
			ActualNorm:   "3.1",
			Forecast:     "1.10%",
			ForecastNorm: "1.1",
		},
	}
	rec := GenerateRecommendation(pair("EUR/USD"), events)
	if rec.Action != models.ActionBuy {
		t.Fatalf("expected Buy, got %s", rec.Action)
	}
	if rec.Confidence != 30 {
		t.Fatalf("expected confidence 30, got %d", rec.Confidence)
	}
	if !strings.Contains(rec.Reason, "EUR") || !strings.Contains(rec.Reason, "Terms of Trade") {
		t.Fatalf("reason should cite EUR and the event, got %q", rec.Reason)
	}
}

func TestGenerateRecommendation_UnemploymentInversionSell(t *testing.T) {
	// Unemployment below forecast is good for USD, so the quote side wins.
	events := []models.EconomicEvent{
		{
			Currency:     "USD",
			Impact:       "2",
			Title:        "Unemployment Rate",
			Actual:       "5.0%",
			ActualNorm:   "5.0",
			Forecast:     "5.4%",
			ForecastNorm: "5.4",
		},
	}
	rec := GenerateRecommendation(pair("EUR/USD"), events)
	if rec.Action != models.ActionSell {
		t.Fatalf("expected Sell, got %s", rec.Action)
	}
	if rec.Confidence != 20 {
		t.Fatalf("expected confidence 20, got %d", rec.Confidence)
	}
	if !strings.Contains(rec.Reason, "USD") {
		t.Fatalf("reason should cite USD, got %q", rec.Reason)
	}
}

func TestGenerateRecommendation_HoldFloorsConfidenceAt40(t *testing.T) {
	// |overall| == 1 always holds, with confidence max(10, 40) = 40.
	events := []models.EconomicEvent{
		{
			Currency:     "EUR",
			Impact:       "1",
			Title:        "Construction PMI",
			Actual:       "52.4",
			ActualNorm:   "52.4",
			Forecast:     "51.9",
			ForecastNorm: "51.9",
		},
	}
	rec := GenerateRecommendation(pair("EUR/USD"), events)
	if rec.Action != models.ActionHold {
		t.Fatalf("expected Hold, got %s", rec.Action)
	}
	if rec.Confidence != 40 {
		t.Fatalf("expected confidence 40, got %d", rec.Confidence)
	}
	if !strings.Contains(rec.Reason, "1 economic indicators") {
		t.Fatalf("reason should cite the indicator count, got %q", rec.Reason)
	}
}

func TestGenerateRecommendation_ConfidenceCappedAt95(t *testing.T) {
	events := make([]models.EconomicEvent, 0, 5)
	for i := 0; i < 5; i++ {
		events = append(events, models.EconomicEvent{
			Currency:     "EUR",
			Impact:       "3",
			Title:        "Retail Sales",
			Actual:       "0.3%",
			ActualNorm:   "0.3",
			Forecast:     "0.2%",
			ForecastNorm: "0.2",
		})
	}
	rec := GenerateRecommendation(pair("EUR/USD"), events)
	if rec.Action != models.ActionBuy {
		t.Fatalf("expected Buy, got %s", rec.Action)
	}
	if rec.Confidence != 95 {
		t.Fatalf("expected capped confidence 95, got %d", rec.Confidence)
	}
}

func TestGenerateRecommendation_CitesHighestImpactEvent(t *testing.T) {
	// Two EUR events; the impact-3 one must be the cited event even though it
	// comes later in the input.
	events := []models.EconomicEvent{
		{
			Currency: "EUR", Impact: "1", Title: "Minor Survey",
			Actual: "1.0", ActualNorm: "1.0", Forecast: "0.5", ForecastNorm: "0.5",
		},
		{
			Currency: "EUR", Impact: "3", Title: "Retail Sales",
			Actual: "0.3%", ActualNorm: "0.3", Forecast: "0.2%", ForecastNorm: "0.2",
		},
	}
	rec := GenerateRecommendation(pair("EUR/USD"), events)
	if rec.Action != models.ActionBuy {
		t.Fatalf("expected Buy, got %s", rec.Action)
	}
	if !strings.Contains(rec.Reason, "Retail Sales") {
		t.Fatalf("expected the impact-3 event cited, got %q", rec.Reason)
	}
}

func TestGenerateRecommendation_ImpactTieCitesFirstOccurrence(t *testing.T) {
	// Equal impact: the stable sort keeps input order, so the first relevant
	// event is the cited one.
	events := []models.EconomicEvent{
		{
			Currency: "EUR", Impact: "3", Title: "First Release",
			Actual: "1.0", ActualNorm: "1.0", Forecast: "0.5", ForecastNorm: "0.5",
		},
		{
			Currency: "EUR", Impact: "3", Title: "Second Release",
			Actual: "1.0", ActualNorm: "1.0", Forecast: "0.5", ForecastNorm: "0.5",
		},
	}
	rec := GenerateRecommendation(pair("EUR/USD"), events)
	if !strings.Contains(rec.Reason, "First Release") {
		t.Fatalf("expected the first tied event cited, got %q", rec.Reason)
	}
}

func TestGenerateRecommendation_Deterministic(t *testing.T) {
	events := []models.EconomicEvent{
		{Currency: "EUR", Impact: "3", Title: "Retail Sales", Actual: "0.3%", ActualNorm: "0.3", Forecast: "0.2%", ForecastNorm: "0.2"},
		{Currency: "USD", Impact: "2", Title: "Services PMI", Actual: "54.8", ActualNorm: "54.8", Forecast: "54.0", ForecastNorm: "54.0"},
	}
	first := GenerateRecommendation(pair("EUR/USD"), events)
	for i := 0; i < 10; i++ {
		if got := GenerateRecommendation(pair("EUR/USD"), events); got != first {
			t.Fatalf("non-deterministic result: %v vs %v", got, first)
		}
	}
}

func TestIsEventPositive_MissingValues(t *testing.T) {
	cases := []struct {
		name string
		ev   models.EconomicEvent
	}{
		{"no actual", models.EconomicEvent{Forecast: "1.0", ForecastNorm: "1.0", ActualNorm: "2.0"}},
		{"no forecast", models.EconomicEvent{Actual: "2.0", ActualNorm: "2.0", ForecastNorm: "1.0"}},
		{"bad actual norm", models.EconomicEvent{Actual: "2.0", Forecast: "1.0", ActualNorm: "n/a", ForecastNorm: "1.0"}},
		{"bad forecast norm", models.EconomicEvent{Actual: "2.0", Forecast: "1.0", ActualNorm: "2.0", ForecastNorm: ""}},
	}
	for _, tc := range cases {
		if isEventPositive(tc.ev) {
			t.Errorf("%s: expected not positive", tc.name)
		}
	}
}

func TestIsEventPositive_DefaultRule(t *testing.T) {
	ev := models.EconomicEvent{
		Title: "Retail Sales", Actual: "0.3%", Forecast: "0.2%",
		ActualNorm: "0.3", ForecastNorm: "0.2",
	}
	if !isEventPositive(ev) {
		t.Fatal("actual above forecast should be positive")
	}
	ev.ActualNorm, ev.ForecastNorm = "0.1", "0.2"
	if isEventPositive(ev) {
		t.Fatal("actual below forecast should be negative")
	}
}

func TestIsEventPositive_InversionIsCaseInsensitive(t *testing.T) {
	for _, title := range []string{"UNEMPLOYMENT Rate", "Core Inflation Rate", "unemployment claims"} {
		ev := models.EconomicEvent{
			Title: title, Actual: "4.0%", Forecast: "4.5%",
			ActualNorm: "4.0", ForecastNorm: "4.5",
		}
		if !isEventPositive(ev) {
			t.Errorf("%q: lower actual should be positive", title)
		}
	}
}
