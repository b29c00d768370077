package store

import (
	"sync"
	"time"

	"FxPulse/internal/domain/models"
)

// EventStore holds the economic events for the current date window. Events
// are replaced wholesale by a window fetch, or refreshed one at a time by id
// once their outcome is published. Events are never deleted within a window;
// the next full replace supersedes them.
type EventStore struct {
	mu      sync.RWMutex
	snap    *models.EventSnapshot
	updates chan *models.EventSnapshot
}

// NewEventStore creates an empty event store.
func NewEventStore(buffer int) *EventStore {
	if buffer <= 0 {
		buffer = 16
	}
	return &EventStore{
		updates: make(chan *models.EventSnapshot, buffer),
	}
}

// Replace swaps in a full window fetch.
func (s *EventStore) Replace(events []models.EconomicEvent, window models.EventWindow, source models.Source, now time.Time) {
	snap := &models.EventSnapshot{
		Events:    events,
		Window:    window,
		Source:    source,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.emit(snap)
}

// Merge overwrites the event with updated.ID in place, keeping its position.
// Other events are untouched. Returns false when the id is not in the
// current snapshot.
func (s *EventStore) Merge(updated models.EconomicEvent, now time.Time) bool {
	s.mu.Lock()

	if s.snap == nil {
		s.mu.Unlock()
		return false
	}

	idx := -1
	for i, ev := range s.snap.Events {
		if ev.ID == updated.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	events := make([]models.EconomicEvent, len(s.snap.Events))
	copy(events, s.snap.Events)
	events[idx] = updated

	snap := &models.EventSnapshot{
		Events:    events,
		Window:    s.snap.Window,
		Source:    s.snap.Source,
		UpdatedAt: now,
	}
	s.snap = snap
	s.mu.Unlock()

	s.emit(snap)
	return true
}

// Snapshot returns the current snapshot, or nil before the first replace.
func (s *EventStore) Snapshot() *models.EventSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Get returns the event with the given id from the current snapshot.
func (s *EventStore) Get(id string) (models.EconomicEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil {
		return models.EconomicEvent{}, false
	}
	for _, ev := range s.snap.Events {
		if ev.ID == id {
			return ev, true
		}
	}
	return models.EconomicEvent{}, false
}

// StaleEvents returns events whose scheduled time has passed but which still
// lack an actual value. The staleness sweep uses this to spot "event just
// released, go get the outcome".
func (s *EventStore) StaleEvents(now time.Time) []models.EconomicEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil {
		return nil
	}
	var stale []models.EconomicEvent
	for _, ev := range s.snap.Events {
		if ev.Stale(now) {
			stale = append(stale, ev)
		}
	}
	return stale
}

// Updates delivers published snapshots to the single consumer.
func (s *EventStore) Updates() <-chan *models.EventSnapshot {
	return s.updates
}

func (s *EventStore) emit(snap *models.EventSnapshot) {
	for {
		select {
		case s.updates <- snap:
			return
		default:
		}
		select {
		case <-s.updates:
		default:
		}
	}
}
