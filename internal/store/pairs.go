package store

import (
	"sync"
	"time"

	"FxPulse/internal/domain/models"
)

// PairStore holds the latest currency-pair snapshot. A publish that changes
// no bid or ask is suppressed: the held snapshot keeps its identity and no
// update is emitted, so downstream consumers never recompute for nothing.
type PairStore struct {
	mu      sync.RWMutex
	snap    *models.PairSnapshot
	updates chan *models.PairSnapshot
}

// NewPairStore creates an empty pair store. buffer sizes the update channel;
// when the single consumer lags, older updates are dropped in favor of newer
// ones.
func NewPairStore(buffer int) *PairStore {
	if buffer <= 0 {
		buffer = 16
	}
	return &PairStore{
		updates: make(chan *models.PairSnapshot, buffer),
	}
}

// Publish replaces the snapshot wholesale and reports whether it actually
// changed. Quotes are compared positionally by bid/ask, the same way the
// refresh cycle receives them.
func (s *PairStore) Publish(pairs []models.CurrencyPair, source models.Source, now time.Time) bool {
	s.mu.Lock()

	if s.snap != nil && !quotesChanged(s.snap.Pairs, pairs) {
		s.mu.Unlock()
		return false
	}

	snap := &models.PairSnapshot{
		Pairs:     pairs,
		Source:    source,
		UpdatedAt: now,
	}
	s.snap = snap
	s.mu.Unlock()

	s.emit(snap)
	return true
}

// Snapshot returns the current snapshot, or nil before the first publish.
// The same pointer is returned until a publish actually changes data.
func (s *PairStore) Snapshot() *models.PairSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Updates delivers published snapshots to the single consumer.
func (s *PairStore) Updates() <-chan *models.PairSnapshot {
	return s.updates
}

func (s *PairStore) emit(snap *models.PairSnapshot) {
	for {
		select {
		case s.updates <- snap:
			return
		default:
		}
		// Full: drop the oldest pending update and retry.
		select {
		case <-s.updates:
		default:
		}
	}
}

func quotesChanged(prev, next []models.CurrencyPair) bool {
	if len(prev) != len(next) {
		return true
	}
	for i := range next {
		if prev[i].Bid != next[i].Bid || prev[i].Ask != next[i].Ask {
			return true
		}
	}
	return false
}
