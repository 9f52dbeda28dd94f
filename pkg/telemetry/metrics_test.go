package telemetry

import (
	"testing"
	"time"
)

func TestEnabledMetricsRegisterAndRecord(t *testing.T) {
	m, err := NewMetrics(MetricsConfig{
		Enabled:       true,
		Namespace:     "orgforge",
		ListenAddress: ":0",
		Path:          "/metrics",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.RecordRunStarted("acme.my.example.com")
	m.RecordOperation("flow_activation", "failed", 2*time.Second)
	m.RecordError("hard", "ELEMENT_NOT_FOUND")
	m.RecordRunCompleted("aborted", 5*time.Second)

	families, err := m.registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather: %v", err)
	}

	got := make(map[string]bool, len(families))
	for _, mf := range families {
		got[mf.GetName()] = true
	}

	for _, want := range []string{
		"orgforge_runs_started_total",
		"orgforge_runs_completed_total",
		"orgforge_run_duration_seconds",
		"orgforge_operations_executed_total",
		"orgforge_operation_duration_seconds",
		"orgforge_errors_by_class_total",
		"orgforge_errors_by_code_total",
		"orgforge_active_runs",
	} {
		if !got[want] {
			t.Errorf("metric family %s not gathered", want)
		}
	}
}

func TestEnabledMetricsHandler(t *testing.T) {
	m, err := NewMetrics(MetricsConfig{Enabled: true, Namespace: "orgforge"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Handler() == nil {
		t.Error("expected a scrape handler for an enabled collector")
	}
}
