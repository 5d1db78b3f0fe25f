package server

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/zephyrtronium/graphcalc"
)

// Metrics holds the Prometheus instruments for the server.
type Metrics struct {
	requests        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	inputErrors     *prometheus.CounterVec
	iterations      *prometheus.HistogramVec
	nonConvergence  *prometheus.CounterVec
	sampledSegments prometheus.Histogram
}

// NewMetrics creates the server's metrics and registers them, along with the
// hit and miss counts of cache, with reg.
func NewMetrics(reg prometheus.Registerer, cache *graphcalc.Cache) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "graphcalc",
			Name:      "requests_total",
			Help:      "HTTP requests by handler and status code.",
		}, []string{"handler", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "graphcalc",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by handler.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"handler"}),
		inputErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "graphcalc",
			Name:      "input_errors_total",
			Help:      "Rejected expressions and inputs by error kind.",
		}, []string{"kind"}),
		iterations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "graphcalc",
			Name:      "solver_iterations",
			Help:      "Newton-Raphson iterations per solve.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1024},
		}, []string{"solver"}),
		nonConvergence: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "graphcalc",
			Name:      "solver_nonconvergence_total",
			Help:      "Solves that did not converge.",
		}, []string{"solver"}),
		sampledSegments: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "graphcalc",
			Name:      "sample_segments",
			Help:      "Segments produced per sampled plot.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 64, 256},
		}),
	}
	reg.MustRegister(
		m.requests,
		m.duration,
		m.inputErrors,
		m.iterations,
		m.nonConvergence,
		m.sampledSegments,
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "graphcalc",
			Name:      "expr_cache_hits_total",
			Help:      "Parsed expression cache hits.",
		}, func() float64 {
			h, _ := cache.Stats()
			return float64(h)
		}),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "graphcalc",
			Name:      "expr_cache_misses_total",
			Help:      "Parsed expression cache misses.",
		}, func() float64 {
			_, m := cache.Stats()
			return float64(m)
		}),
	)
	return m
}

// RecordInputError counts a rejected input by the kind of its error.
func (m *Metrics) RecordInputError(err error) {
	m.inputErrors.WithLabelValues(errorKind(err)).Inc()
}

// RecordSolve records the outcome of a Newton-Raphson solve.
func (m *Metrics) RecordSolve(solver string, iterations int, converged bool) {
	m.iterations.WithLabelValues(solver).Observe(float64(iterations))
	if !converged {
		m.nonConvergence.WithLabelValues(solver).Inc()
	}
}

// errorKind names the type of an input error for use as a label value.
func errorKind(err error) string {
	var (
		lex     *graphcalc.LexError
		bracket *graphcalc.BracketError
		ident   *graphcalc.UnknownIdentifierError
		trail   *graphcalc.TrailingError
		sep     *graphcalc.SeparatorError
		call    *graphcalc.CallError
		empty   *graphcalc.EmptyExpressionError
		op      *graphcalc.OperatorError
		depth   *graphcalc.DepthError
		unbound *graphcalc.UnboundVariableError
		rng     *graphcalc.RangeError
	)
	switch {
	case errors.As(err, &lex):
		return "lex"
	case errors.As(err, &bracket):
		return "bracket"
	case errors.As(err, &ident):
		return "unknown_identifier"
	case errors.As(err, &trail):
		return "trailing"
	case errors.As(err, &sep):
		return "separator"
	case errors.As(err, &call):
		return "call"
	case errors.As(err, &empty):
		return "empty"
	case errors.As(err, &op):
		return "operator"
	case errors.As(err, &depth):
		return "depth"
	case errors.As(err, &unbound):
		return "unbound_variable"
	case errors.As(err, &rng):
		return "range"
	default:
		return "other"
	}
}
