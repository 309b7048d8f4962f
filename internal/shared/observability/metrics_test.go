package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewMetricsNilRegistryIsNoOp(t *testing.T) {
	var m *Metrics
	m.SetReachableFiles("proj", 3)
	m.SetSymbolGraphSize(1, 2)
	m.ObservePhaseDuration("resolve", 0.5)
	m.IncIssue("unused-export")
	m.IncFacadeFailure()
}

func TestNewMetricsRegistersAgainstCustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	if m == nil {
		t.Fatal("expected a non-nil Metrics for a non-nil registry")
	}
	m.SetReachableFiles("proj", 3)
	m.IncIssue("unused-export")

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	if len(families) == 0 {
		t.Fatal("expected at least one registered metric family")
	}
}

func TestNewMetricsNilRegistryReturnsNil(t *testing.T) {
	if NewMetrics(nil) != nil {
		t.Fatal("expected a nil registry to produce a nil Metrics")
	}
}
