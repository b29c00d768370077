package models

import (
	"time"

	"FxPulse/pkg/util"
)

// EconomicEvent is one calendar entry as delivered by the Dukascopy economic
// calendar. The *_norm fields are numeric-string projections of the display
// values; the display values may carry units ("3.10%", "7.8B") and are not
// directly comparable.
type EconomicEvent struct {
	Date         string  `json:"date"`
	ID           string  `json:"id"`
	Country      string  `json:"country"`
	Currency     string  `json:"currency"`
	EventTag     string  `json:"event_tag"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Impact       string  `json:"impact"`
	Actual       string  `json:"actual"`
	ActualNorm   string  `json:"actual_norm"`
	Forecast     string  `json:"forecast"`
	ForecastNorm string  `json:"forecast_norm"`
	Previous     string  `json:"previous"`
	PreviousNorm string  `json:"previous_norm"`
	SourceLink   string  `json:"source_link"`
	ValueOrder   *string `json:"value_order"`
	ValueFormat  string  `json:"value_format"`
}

// Time parses the event's scheduled time. ok is false for malformed dates.
func (e EconomicEvent) Time() (time.Time, bool) {
	return util.ParseTime(e.Date)
}

// Stale reports whether the event's scheduled time has passed without an
// outcome being recorded yet. Events with unparseable dates are never stale.
func (e EconomicEvent) Stale(now time.Time) bool {
	if e.Actual != "" {
		return false
	}
	t, ok := e.Time()
	if !ok {
		return false
	}
	return !t.After(now)
}

// EventWindow is the half-open [Since, Until) date range the event store
// tracks.
type EventWindow struct {
	Since time.Time `json:"since"`
	Until time.Time `json:"until"`
}

// EventSnapshot is one published state of the event store.
type EventSnapshot struct {
	Events    []EconomicEvent `json:"events"`
	Window    EventWindow     `json:"window"`
	Source    Source          `json:"source"`
	UpdatedAt time.Time       `json:"updated_at"`
}
