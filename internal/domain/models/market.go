package models

import (
	"strconv"
	"strings"
	"time"
)

// Source tags where a snapshot came from. Fallback data is served when the
// upstream feed is unavailable; consumers can tell the two apart.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// CurrencyPair is a quoted pair as delivered by the Dukascopy quote list.
// The vendor format is consumed as-is; bid/ask stay decimal strings.
type CurrencyPair struct {
	ID     int    `json:"id"`
	Symbol string `json:"n"`
	Def    int    `json:"def"`
	Group  string `json:"group"`
	Bid    string `json:"bid"`
	Ask    string `json:"ask"`
	Descr  string `json:"descr"`
	Delay  int    `json:"delay"`
}

// Currencies splits the symbol into base and quote codes. ok is false when
// the symbol does not split into exactly two non-empty parts; such a pair is
// unscoreable.
func (p CurrencyPair) Currencies() (base, quote string, ok bool) {
	parts := strings.Split(p.Symbol, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// Spread returns ask minus bid. Display only, never used in scoring.
func (p CurrencyPair) Spread() (float64, bool) {
	bid, err1 := strconv.ParseFloat(p.Bid, 64)
	ask, err2 := strconv.ParseFloat(p.Ask, 64)
	if err1 != nil || err2 != nil {
		return 0, false
	}
	return ask - bid, true
}

// PairSnapshot is one published state of the pair store.
type PairSnapshot struct {
	Pairs     []CurrencyPair `json:"pairs"`
	Source    Source         `json:"source"`
	UpdatedAt time.Time      `json:"updated_at"`
}
