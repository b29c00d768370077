package repository

import (
	"context"
	"time"

	"FxPulse/internal/domain/models"
)

// QuoteFeed fetches the current quote list. Implementations degrade to
// fallback data instead of failing; the returned Source says which one the
// caller got.
type QuoteFeed interface {
	FetchPairs(ctx context.Context) ([]models.CurrencyPair, models.Source, error)
}

// CalendarFeed fetches economic events for a [since, until) window.
type CalendarFeed interface {
	FetchEvents(ctx context.Context, since, until time.Time) ([]models.EconomicEvent, models.Source, error)
}

// EventAnalyzer produces an AI trading signal for one event. A nil signal
// with a nil error means the event was skipped (not from today); any failure
// is an error the caller converts to "no signal".
type EventAnalyzer interface {
	Analyze(ctx context.Context, event models.EconomicEvent, now time.Time) (*models.AISignal, error)
}

// Metrics records operational measurements.
type Metrics interface {
	RecordPoll(feed, source string)
	RecordError(subsystem string)
	RecordQuote(symbol string, bid, ask float64)
	RecordLatency(op string, seconds float64)
	RecordSignal(signal string)
	RecordRecommendation(action string)
}
