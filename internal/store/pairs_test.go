package store

import (
	"testing"
	"time"

	"FxPulse/internal/domain/models"
)

func somePairs() []models.CurrencyPair {
	return []models.CurrencyPair{
		{ID: 1020, Symbol: "EUR/USD", Bid: "1.07834", Ask: "1.07841"},
		{ID: 1032, Symbol: "USD/JPY", Bid: "148.672", Ask: "148.681"},
	}
}

func TestPairStorePublishAndSnapshot(t *testing.T) {
	s := NewPairStore(4)
	if s.Snapshot() != nil {
		t.Fatal("expected nil snapshot before first publish")
	}

	now := time.Now()
	if !s.Publish(somePairs(), models.SourceLive, now) {
		t.Fatal("first publish must report a change")
	}

	snap := s.Snapshot()
	if snap == nil || len(snap.Pairs) != 2 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.Source != models.SourceLive {
		t.Fatalf("expected live source, got %s", snap.Source)
	}

	select {
	case got := <-s.Updates():
		if got != snap {
			t.Fatal("update must carry the published snapshot")
		}
	default:
		t.Fatal("expected an update to be emitted")
	}
}

func TestPairStoreSuppressesUnchangedQuotes(t *testing.T) {
	s := NewPairStore(4)
	s.Publish(somePairs(), models.SourceLive, time.Now())
	<-s.Updates()

	before := s.Snapshot()

	// Same bid/ask for every symbol, later timestamp: must be a no-op.
	if s.Publish(somePairs(), models.SourceLive, time.Now().Add(time.Second)) {
		t.Fatal("unchanged quotes must not publish")
	}
	if s.Snapshot() != before {
		t.Fatal("snapshot identity must be preserved on a suppressed publish")
	}
	select {
	case <-s.Updates():
		t.Fatal("no update expected for unchanged quotes")
	default:
	}
}

func TestPairStorePublishesOnSingleQuoteChange(t *testing.T) {
	s := NewPairStore(4)
	s.Publish(somePairs(), models.SourceLive, time.Now())
	before := s.Snapshot()

	next := somePairs()
	next[1].Ask = "148.690"
	if !s.Publish(next, models.SourceLive, time.Now()) {
		t.Fatal("a changed ask must publish")
	}
	if s.Snapshot() == before {
		t.Fatal("snapshot must be replaced when a quote changed")
	}
}

func TestPairStorePublishesOnLengthChange(t *testing.T) {
	s := NewPairStore(4)
	s.Publish(somePairs(), models.SourceLive, time.Now())

	if !s.Publish(somePairs()[:1], models.SourceLive, time.Now()) {
		t.Fatal("a shrunk pair list must publish")
	}
}

func TestPairStoreDropsOldestUpdateWhenConsumerLags(t *testing.T) {
	s := NewPairStore(1)
	first := somePairs()
	s.Publish(first, models.SourceLive, time.Now())

	second := somePairs()
	second[0].Bid = "1.08000"
	s.Publish(second, models.SourceLive, time.Now())

	// Only the newest update should remain.
	got := <-s.Updates()
	if got.Pairs[0].Bid != "1.08000" {
		t.Fatalf("expected newest snapshot, got bid %s", got.Pairs[0].Bid)
	}
	select {
	case <-s.Updates():
		t.Fatal("expected a single pending update")
	default:
	}
}
