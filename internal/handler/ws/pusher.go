package ws

import (
	"context"

	"FxPulse/internal/store"
	"FxPulse/internal/usecase"
)

// Pusher is the single consumer of the store update channels. Every pair or
// event publish becomes a set of frames: the raw snapshot, the recomputed
// recommendations, and the counters. Upstream change-suppression means a
// quiet market pushes nothing.
type Pusher struct {
	hub    *Hub
	pairs  *store.PairStore
	events *store.EventStore
	runner *usecase.AnalysisRunner
}

func NewPusher(hub *Hub, pairs *store.PairStore, events *store.EventStore, runner *usecase.AnalysisRunner) *Pusher {
	return &Pusher{hub: hub, pairs: pairs, events: events, runner: runner}
}

// Run forwards store updates until the context is canceled.
func (p *Pusher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap := <-p.pairs.Updates():
			p.hub.Broadcast("pairs", snap)
			p.pushDerived()
		case snap := <-p.events.Updates():
			p.hub.Broadcast("events", snap)
			p.pushDerived()
		}
	}
}

func (p *Pusher) pushDerived() {
	p.hub.Broadcast("recommendations", p.runner.Recommendations())
	p.hub.Broadcast("stats", p.runner.Stats())
}
