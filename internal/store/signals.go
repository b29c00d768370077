package store

import (
	"sort"
	"strings"
	"sync"

	"FxPulse/internal/domain/models"
)

// SignalStore holds the latest AI signal per event. Signals are only ever
// upserted; a new analysis cycle overwrites the previous signal for the same
// event.
type SignalStore struct {
	mu      sync.RWMutex
	signals map[string]*models.AISignal
}

// NewSignalStore creates an empty signal store.
func NewSignalStore() *SignalStore {
	return &SignalStore{signals: make(map[string]*models.AISignal)}
}

// Put upserts the signal for its event.
func (s *SignalStore) Put(signal *models.AISignal) {
	if signal == nil || signal.EventID == "" {
		return
	}
	s.mu.Lock()
	s.signals[signal.EventID] = signal
	s.mu.Unlock()
}

// Get returns the signal for an event id.
func (s *SignalStore) Get(eventID string) (*models.AISignal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	signal, ok := s.signals[eventID]
	return signal, ok
}

// All returns every held signal, newest analysis first.
func (s *SignalStore) All() []*models.AISignal {
	s.mu.RLock()
	out := make([]*models.AISignal, 0, len(s.signals))
	for _, signal := range s.signals {
		out = append(out, signal)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].AnalyzedAt.Equal(out[j].AnalyzedAt) {
			return out[i].AnalyzedAt.After(out[j].AnalyzedAt)
		}
		return out[i].EventID < out[j].EventID
	})
	return out
}

// Stats counts buy and sell signals among parsed signals. activePairs is
// supplied by the caller from the current pair snapshot.
func (s *SignalStore) Stats(activePairs int) models.SignalStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.SignalStats{ActivePairs: activePairs}
	for _, signal := range s.signals {
		if signal.State != models.SignalParsed {
			continue
		}
		switch strings.ToLower(signal.Signal) {
		case "buy":
			stats.BuySignals++
		case "sell":
			stats.SellSignals++
		}
	}
	return stats
}
