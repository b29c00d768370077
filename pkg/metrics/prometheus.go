package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	pollsTotal      *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	quote           *prometheus.GaugeVec
	latency         *prometheus.HistogramVec
	signalsTotal    *prometheus.CounterVec
	recommendations *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		pollsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxpulse_polls_total",
				Help: "Total number of upstream polls by feed and data source",
			},
			[]string{"feed", "source"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"subsystem"},
		),
		quote: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fxpulse_quote",
				Help: "Last quoted price for a currency pair",
			},
			[]string{"symbol", "side"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fxpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		signalsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxpulse_ai_signals_total",
				Help: "Total number of AI signals by outcome",
			},
			[]string{"signal"},
		),
		recommendations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxpulse_recommendations_total",
				Help: "Total number of computed recommendations by action",
			},
			[]string{"action"},
		),
	}
}

// RecordPoll records one upstream poll; source is "live" or "fallback".
func (r *Recorder) RecordPoll(feed, source string) {
	r.pollsTotal.WithLabelValues(feed, source).Inc()
}

// RecordError records an error occurrence for a subsystem.
func (r *Recorder) RecordError(subsystem string) {
	r.errorsTotal.WithLabelValues(subsystem).Inc()
}

// RecordQuote records the last bid/ask for a symbol.
func (r *Recorder) RecordQuote(symbol string, bid, ask float64) {
	r.quote.WithLabelValues(symbol, "bid").Set(bid)
	r.quote.WithLabelValues(symbol, "ask").Set(ask)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordSignal records an AI signal outcome (buy, sell, neutral, wait, none).
func (r *Recorder) RecordSignal(signal string) {
	r.signalsTotal.WithLabelValues(signal).Inc()
}

// RecordRecommendation records a computed recommendation action.
func (r *Recorder) RecordRecommendation(action string) {
	r.recommendations.WithLabelValues(action).Inc()
}
