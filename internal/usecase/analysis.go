package usecase

import (
	"context"
	"encoding/json"
	"time"

	"FxPulse/internal/domain/models"
	"FxPulse/internal/domain/repository"
	"FxPulse/internal/store"
	"FxPulse/pkg/cache"
	"FxPulse/pkg/logger"
)

// EventRefresher refetches one event's current vendor state.
type EventRefresher interface {
	RefreshEvent(ctx context.Context, id string) (models.EconomicEvent, error)
}

// Submitter queues an event for analysis.
type Submitter interface {
	Submit(event models.EconomicEvent) bool
}

// AnalysisRunner drives AI analysis of the current event window. The cron
// cycle submits every event; the staleness sweep refreshes just-released
// events and resubmits them. Actual analysis calls arrive here one at a
// time through the pipeline's Process callback.
type AnalysisRunner struct {
	analyzer  repository.EventAnalyzer
	events    *store.EventStore
	pairs     *store.PairStore
	signals   *store.SignalStore
	refresher EventRefresher
	cache     cache.Service
	signalTTL time.Duration
	log       *logger.Logger
	metrics   repository.Metrics

	pipeline Submitter
}

// NewAnalysisRunner creates a runner. Attach must be called before RunCycle
// or SweepStale.
func NewAnalysisRunner(
	analyzer repository.EventAnalyzer,
	events *store.EventStore,
	pairs *store.PairStore,
	signals *store.SignalStore,
	refresher EventRefresher,
	cacheSvc cache.Service,
	signalTTL time.Duration,
	log *logger.Logger,
	metrics repository.Metrics,
) *AnalysisRunner {
	if signalTTL <= 0 {
		signalTTL = 5 * time.Minute
	}
	return &AnalysisRunner{
		analyzer:  analyzer,
		events:    events,
		pairs:     pairs,
		signals:   signals,
		refresher: refresher,
		cache:     cacheSvc,
		signalTTL: signalTTL,
		log:       log,
		metrics:   metrics,
	}
}

// Attach wires the pipeline the runner submits through.
func (r *AnalysisRunner) Attach(pipeline Submitter) {
	r.pipeline = pipeline
}

// Pipeline returns the attached pipeline, or nil.
func (r *AnalysisRunner) Pipeline() Submitter {
	return r.pipeline
}

// RunCycle submits every event in the current window for analysis. The
// analyzer itself skips events not scheduled for today, so this stays cheap
// for the rest of the window.
func (r *AnalysisRunner) RunCycle(ctx context.Context) {
	snap := r.events.Snapshot()
	if snap == nil || r.pipeline == nil {
		return
	}
	for _, ev := range snap.Events {
		r.pipeline.Submit(ev)
	}
}

// SweepStale refreshes events whose time has passed without an actual value
// and resubmits them for analysis.
func (r *AnalysisRunner) SweepStale(ctx context.Context) {
	if r.pipeline == nil {
		return
	}
	for _, ev := range r.events.StaleEvents(time.Now()) {
		refreshed, err := r.refresher.RefreshEvent(ctx, ev.ID)
		if err != nil {
			continue
		}
		r.pipeline.Submit(refreshed)
	}
}

// Process analyzes one event. It satisfies the pipeline's processor
// contract. Results land in the signal store; failures are recorded and the
// previous signal, if any, stays in place.
func (r *AnalysisRunner) Process(ctx context.Context, event models.EconomicEvent) error {
	// The cache key includes the actual value, so a refreshed outcome is
	// re-analyzed immediately instead of waiting out the TTL.
	key := cache.Key("signal", event.ID, event.Actual)
	if r.cache != nil {
		if body, err := r.cache.Get(ctx, key); err == nil {
			var signal models.AISignal
			if err := json.Unmarshal(body, &signal); err == nil {
				r.signals.Put(&signal)
				return nil
			}
		}
	}

	start := time.Now()
	signal, err := r.analyzer.Analyze(ctx, event, time.Now())
	if err != nil {
		r.log.Error("event analysis failed", logger.Subsystem("ai"), logger.Error(err), logger.String("event_id", event.ID))
		r.metrics.RecordError("ai")
		return err
	}
	r.metrics.RecordLatency("analyze", time.Since(start).Seconds())

	if signal == nil {
		return nil
	}

	if c := r.log.Collector(); c != nil {
		c.Clear("ai")
	}

	r.signals.Put(signal)
	if signal.State == models.SignalParsed {
		r.metrics.RecordSignal(signal.Signal)
	} else {
		r.metrics.RecordSignal("unparseable")
	}

	if r.cache != nil {
		if body, err := json.Marshal(signal); err == nil {
			_ = r.cache.Set(ctx, key, body, r.signalTTL)
		}
	}
	return nil
}

// Signals returns the held signals, newest first.
func (r *AnalysisRunner) Signals() []*models.AISignal {
	return r.signals.All()
}

// Stats returns the dashboard counters.
func (r *AnalysisRunner) Stats() models.SignalStats {
	active := 0
	if snap := r.pairs.Snapshot(); snap != nil {
		active = len(snap.Pairs)
	}
	return r.signals.Stats(active)
}

// Recommendations computes a recommendation for every pair in the current
// snapshot against the current event window.
func (r *AnalysisRunner) Recommendations() []models.PairRecommendation {
	pairSnap := r.pairs.Snapshot()
	if pairSnap == nil {
		return nil
	}

	var events []models.EconomicEvent
	if snap := r.events.Snapshot(); snap != nil {
		events = snap.Events
	}

	out := make([]models.PairRecommendation, 0, len(pairSnap.Pairs))
	for _, pair := range pairSnap.Pairs {
		rec := GenerateRecommendation(pair, events)
		r.metrics.RecordRecommendation(string(rec.Action))
		out = append(out, models.PairRecommendation{
			Symbol:         pair.Symbol,
			Bid:            pair.Bid,
			Ask:            pair.Ask,
			Recommendation: rec,
		})
	}
	return out
}
