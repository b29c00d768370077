package middleware

import (
	"context"
	"sync"

	"FxPulse/internal/domain/models"
	"FxPulse/internal/domain/repository"
	"FxPulse/internal/service/ratelimit"
)

// Proc is the downstream processor the pipeline feeds, one event at a time.
type Proc interface {
	Process(ctx context.Context, event models.EconomicEvent) error
}

// AnalysisPipeline sits between the analysis triggers (the cron cycle, the
// staleness sweep) and the model upstream. It deduplicates pending events,
// buffers bursts, and throttles outbound calls to the configured rate. When
// the buffer overflows, newly submitted events are dropped; the next cycle
// resubmits them.
type AnalysisPipeline struct {
	proc    Proc
	metrics repository.Metrics
	limiter *ratelimit.Limiter
	maxRPS  float64

	bufCh  chan models.EconomicEvent
	stopCh chan struct{}

	mu      sync.Mutex
	started bool
	pending map[string]bool
}

// PipelineOption configures AnalysisPipeline.
type PipelineOption func(*AnalysisPipeline)

// WithMaxRPS sets the max outbound analysis calls per second.
func WithMaxRPS(n int) PipelineOption {
	return func(p *AnalysisPipeline) {
		if n > 0 {
			p.maxRPS = float64(n)
		}
	}
}

// WithBufferSize sets how many events may wait for analysis.
func WithBufferSize(n int) PipelineOption {
	return func(p *AnalysisPipeline) {
		if n > 0 {
			p.bufCh = make(chan models.EconomicEvent, n)
		}
	}
}

// NewAnalysisPipeline creates a pipeline feeding proc.
func NewAnalysisPipeline(proc Proc, metrics repository.Metrics, opts ...PipelineOption) *AnalysisPipeline {
	p := &AnalysisPipeline{
		proc:    proc,
		metrics: metrics,
		limiter: ratelimit.New(),
		maxRPS:  2,
		bufCh:   make(chan models.EconomicEvent, 256),
		stopCh:  make(chan struct{}),
		pending: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start launches the single worker draining the buffer.
func (p *AnalysisPipeline) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-p.stopCh:
				return
			case ev := <-p.bufCh:
				p.handle(ctx, ev)
			}
		}
	}()
}

// Stop stops the worker. Buffered events are discarded.
func (p *AnalysisPipeline) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	p.mu.Unlock()
	close(p.stopCh)
}

// Submit queues an event for analysis. An event already waiting is not
// queued twice; a full buffer drops the submission.
func (p *AnalysisPipeline) Submit(event models.EconomicEvent) bool {
	p.mu.Lock()
	if p.pending[event.ID] {
		p.mu.Unlock()
		return false
	}
	p.pending[event.ID] = true
	p.mu.Unlock()

	select {
	case p.bufCh <- event:
		return true
	default:
		p.mu.Lock()
		delete(p.pending, event.ID)
		p.mu.Unlock()
		p.metrics.RecordError("pipeline_buffer_full")
		return false
	}
}

func (p *AnalysisPipeline) handle(ctx context.Context, event models.EconomicEvent) {
	defer func() {
		p.mu.Lock()
		delete(p.pending, event.ID)
		p.mu.Unlock()
	}()

	if err := p.limiter.Wait(ctx, "analyzer", p.maxRPS, p.maxRPS); err != nil {
		return
	}
	if err := p.proc.Process(ctx, event); err != nil {
		p.metrics.RecordError("pipeline_process")
	}
}
