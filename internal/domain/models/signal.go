package models

import "time"

// SignalState tags how much of the model's free-text reply survived parsing.
type SignalState string

const (
	// SignalParsed means at least one "key: value" line was extracted.
	SignalParsed SignalState = "parsed"
	// SignalUnparseable means no line of the reply matched "key: value".
	SignalUnparseable SignalState = "unparseable"
)

// AISignal is the best-effort parse of a generated trading-signal reply for
// one economic event. Fields the model did not emit stay empty; a nil
// *AISignal means "no signal available", never an error.
type AISignal struct {
	EventID    string      `json:"event_id"`
	State      SignalState `json:"state"`
	Event      string      `json:"event,omitempty"`
	Signal     string      `json:"signal,omitempty"`
	Confidence string      `json:"confidence,omitempty"`
	Reasoning  string      `json:"reasoning,omitempty"`
	Direction  string      `json:"direction,omitempty"`
	Markets    string      `json:"affected_markets,omitempty"`
	// Fields keeps every parsed line, including keys the template above
	// does not know about.
	Fields     map[string]string `json:"fields,omitempty"`
	AnalyzedAt time.Time         `json:"analyzed_at"`
}

// SignalStats are the dashboard counters derived from the current signals.
type SignalStats struct {
	ActivePairs int `json:"active_pairs"`
	BuySignals  int `json:"buy_signals"`
	SellSignals int `json:"sell_signals"`
}
