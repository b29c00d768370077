package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"FxPulse/internal/domain/models"
	"FxPulse/internal/domain/repository"
	"FxPulse/internal/store"
	"FxPulse/pkg/logger"
)

// PairPoller keeps the pair store current by polling the quote feed on a
// fixed interval. Publishing is change-suppressed by the store, so a quiet
// market produces no downstream work.
type PairPoller struct {
	feed     repository.QuoteFeed
	store    *store.PairStore
	log      *logger.Logger
	metrics  repository.Metrics
	interval time.Duration
}

// NewPairPoller creates a poller; interval is typically one second.
func NewPairPoller(feed repository.QuoteFeed, st *store.PairStore, log *logger.Logger, metrics repository.Metrics, interval time.Duration) *PairPoller {
	if interval <= 0 {
		interval = time.Second
	}
	return &PairPoller{feed: feed, store: st, log: log, metrics: metrics, interval: interval}
}

// Run polls until the context is canceled. The first poll happens
// immediately so the dashboard never starts empty.
func (p *PairPoller) Run(ctx context.Context) {
	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *PairPoller) poll(ctx context.Context) {
	start := time.Now()
	pairs, source, err := p.feed.FetchPairs(ctx)
	p.metrics.RecordPoll("pairs", string(source))
	p.metrics.RecordLatency("pairs_poll", time.Since(start).Seconds())

	if err != nil {
		p.log.Error("quote fetch degraded", logger.Subsystem("pairs"), logger.Error(err))
		p.metrics.RecordError("pairs")
	} else if c := p.log.Collector(); c != nil {
		c.Clear("pairs")
	}

	// A live snapshot beats static fallback data; only publish fallback
	// when there is nothing better to show.
	if source == models.SourceFallback {
		if snap := p.store.Snapshot(); snap != nil && snap.Source == models.SourceLive {
			return
		}
	}

	if p.store.Publish(pairs, source, time.Now()) {
		for _, pair := range pairs {
			bid, errB := strconv.ParseFloat(pair.Bid, 64)
			ask, errA := strconv.ParseFloat(pair.Ask, 64)
			if errB == nil && errA == nil {
				p.metrics.RecordQuote(pair.Symbol, bid, ask)
			}
		}
	}
}

// EventPoller keeps the event store filled for the active date window. The
// window defaults to [today 00:00 UTC, +windowDays) and can be moved by the
// API; moving it triggers an immediate refetch.
type EventPoller struct {
	feed       repository.CalendarFeed
	store      *store.EventStore
	log        *logger.Logger
	metrics    repository.Metrics
	windowDays int
	interval   time.Duration

	mu     sync.Mutex
	window models.EventWindow
	kick   chan struct{}
}

// NewEventPoller creates a poller; interval is how often the active window
// is refetched in the background.
func NewEventPoller(feed repository.CalendarFeed, st *store.EventStore, log *logger.Logger, metrics repository.Metrics, windowDays int, interval time.Duration) *EventPoller {
	if windowDays <= 0 {
		windowDays = 7
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &EventPoller{
		feed:       feed,
		store:      st,
		log:        log,
		metrics:    metrics,
		windowDays: windowDays,
		interval:   interval,
		kick:       make(chan struct{}, 1),
	}
}

// DefaultWindow is [today 00:00 UTC, +windowDays).
func (p *EventPoller) DefaultWindow(now time.Time) models.EventWindow {
	day := now.UTC().Truncate(24 * time.Hour)
	return models.EventWindow{Since: day, Until: day.AddDate(0, 0, p.windowDays)}
}

// SetWindow moves the active window and schedules a refetch.
func (p *EventPoller) SetWindow(window models.EventWindow) {
	p.mu.Lock()
	p.window = window
	p.mu.Unlock()

	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// Window returns the active window.
func (p *EventPoller) Window() models.EventWindow {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.window
}

// Run fetches the default window immediately, then refetches on the interval
// and whenever the window moves.
func (p *EventPoller) Run(ctx context.Context) {
	p.mu.Lock()
	if p.window.Since.IsZero() {
		p.window = p.DefaultWindow(time.Now())
	}
	p.mu.Unlock()

	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		case <-p.kick:
			p.poll(ctx)
		}
	}
}

func (p *EventPoller) poll(ctx context.Context) {
	window := p.Window()

	start := time.Now()
	events, source, err := p.feed.FetchEvents(ctx, window.Since, window.Until)
	p.metrics.RecordPoll("events", string(source))
	p.metrics.RecordLatency("events_poll", time.Since(start).Seconds())

	if err != nil {
		p.log.Error("calendar fetch degraded", logger.Subsystem("events"), logger.Error(err))
		p.metrics.RecordError("events")
	} else if c := p.log.Collector(); c != nil {
		c.Clear("events")
	}

	if source == models.SourceFallback {
		if snap := p.store.Snapshot(); snap != nil && snap.Source == models.SourceLive {
			return
		}
	}

	p.store.Replace(events, window, source, time.Now())
}

// FetchWindow moves the active window and fetches it synchronously,
// returning the resulting snapshot.
func (p *EventPoller) FetchWindow(ctx context.Context, window models.EventWindow) *models.EventSnapshot {
	p.mu.Lock()
	p.window = window
	p.mu.Unlock()

	p.poll(ctx)
	return p.store.Snapshot()
}

// RefreshEvent refetches the active window and merges the event with the
// given id into the store, returning the refreshed event. The id must be
// present both in the store and in the fetched window.
func (p *EventPoller) RefreshEvent(ctx context.Context, id string) (models.EconomicEvent, error) {
	if _, ok := p.store.Get(id); !ok {
		return models.EconomicEvent{}, fmt.Errorf("unknown event %q", id)
	}

	window := p.Window()
	events, _, err := p.feed.FetchEvents(ctx, window.Since, window.Until)
	if err != nil {
		p.log.Error("event refresh degraded", logger.Subsystem("events"), logger.Error(err), logger.String("event_id", id))
		p.metrics.RecordError("events")
		return models.EconomicEvent{}, err
	}

	for _, ev := range events {
		if ev.ID == id {
			p.store.Merge(ev, time.Now())
			return ev, nil
		}
	}
	return models.EconomicEvent{}, fmt.Errorf("event %q not in refreshed window", id)
}
