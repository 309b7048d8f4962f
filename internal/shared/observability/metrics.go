// Package observability wires the engine's phase/graph/issue counters into
// Prometheus, adapted from the teacher's always-registered globals into an
// injected *Metrics so more than one engine run can exist in a process
// (tests, repeated CLI invocations) without a double-registration panic.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a nil-safe handle to a run's Prometheus instrumentation. A nil
// *Metrics (or one constructed with a nil registry) makes every method a
// no-op, so callers never need to guard metrics calls behind a feature flag.
type Metrics struct {
	ReachableFiles *prometheus.GaugeVec
	SymbolNodes    prometheus.Gauge
	SymbolEdges    prometheus.Gauge
	MutatorPhase   *prometheus.HistogramVec
	IssuesTotal    *prometheus.CounterVec
	FacadeFailures prometheus.Counter
}

// NewMetrics registers the engine's gauges/histograms/counters against reg
// and returns the handle. A nil reg yields a *Metrics whose methods are all
// no-ops.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		return nil
	}

	m := &Metrics{
		ReachableFiles: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sweepa_reachable_files_total",
			Help: "Number of files reached from an entry point in the current run.",
		}, []string{"project"}),
		SymbolNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sweepa_symbol_nodes_total",
			Help: "Total number of nodes in the symbol graph.",
		}),
		SymbolEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sweepa_symbol_edges_total",
			Help: "Total number of edges in the symbol graph.",
		}),
		MutatorPhase: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sweepa_mutator_phase_seconds",
			Help:    "Time spent in a mutator pipeline phase.",
			Buckets: prometheus.DefBuckets,
		}, []string{"phase"}),
		IssuesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sweepa_issues_total",
			Help: "Total number of issues emitted, by kind.",
		}, []string{"kind"}),
		FacadeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sweepa_facade_failures_total",
			Help: "Total number of recoverable compiler facade failures.",
		}),
	}
	reg.MustRegister(m.ReachableFiles, m.SymbolNodes, m.SymbolEdges, m.MutatorPhase, m.IssuesTotal, m.FacadeFailures)
	return m
}

func (m *Metrics) SetReachableFiles(project string, count int) {
	if m == nil {
		return
	}
	m.ReachableFiles.WithLabelValues(project).Set(float64(count))
}

func (m *Metrics) SetSymbolGraphSize(nodes, edges int) {
	if m == nil {
		return
	}
	m.SymbolNodes.Set(float64(nodes))
	m.SymbolEdges.Set(float64(edges))
}

func (m *Metrics) ObservePhaseDuration(phase string, seconds float64) {
	if m == nil {
		return
	}
	m.MutatorPhase.WithLabelValues(phase).Observe(seconds)
}

func (m *Metrics) IncIssue(kind string) {
	if m == nil {
		return
	}
	m.IssuesTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncFacadeFailure() {
	if m == nil {
		return
	}
	m.FacadeFailures.Inc()
}
