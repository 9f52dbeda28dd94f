package engine

import (
	"errors"
	"strings"
	"testing"
)

func TestAggregate(t *testing.T) {
	results := []OperationResult{
		{Label: "Session Settings"},
		{Label: "Flow: Flow_B", Err: NewElementNotFoundError("flow not found in list", nil)},
		{Label: "Omni-Channel"},
	}

	out := Aggregate(results)
	if out.Success() {
		t.Error("a batch with a failed entry is not a success")
	}
	if len(out.Applied) != 2 || out.Applied[0] != "Session Settings" || out.Applied[1] != "Omni-Channel" {
		t.Errorf("applied = %v", out.Applied)
	}
	if len(out.Failed) != 1 || out.Failed[0] != "Flow: Flow_B: flow not found in list" {
		t.Errorf("failed = %v", out.Failed)
	}
}

func TestAggregateEmpty(t *testing.T) {
	out := Aggregate(nil)
	if !out.Success() {
		t.Error("an empty aggregation is a success")
	}
	// Slices are initialized so the result marshals as [] rather than null.
	if out.Applied == nil || out.Failed == nil {
		t.Error("applied and failed must be non-nil")
	}
}

func TestFailureText(t *testing.T) {
	tests := []struct {
		name string
		res  OperationResult
		want string
	}{
		{
			"classified error uses the bare message",
			OperationResult{Label: "Sharing: Account", Err: NewInteractionTimeoutError("dropdown never enabled", nil)},
			"Sharing: Account: dropdown never enabled",
		},
		{
			"unclassified error is rendered verbatim",
			OperationResult{Label: "Activity Capture", Err: errors.New("context canceled")},
			"Activity Capture: context canceled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.res.FailureText(); got != tt.want {
				t.Errorf("FailureText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	result := &BatchResult{
		Applied: []string{"Session Settings"},
		Failed:  []string{"Flow: Flow_B: flow not found in list"},
	}

	summary := result.Summary()
	if !strings.HasPrefix(summary, "1 applied, 1 failed\n") {
		t.Errorf("summary header = %q", summary)
	}
	if !strings.Contains(summary, "ok   Session Settings") {
		t.Errorf("summary missing applied line: %q", summary)
	}
	if !strings.Contains(summary, "FAIL Flow: Flow_B: flow not found in list") {
		t.Errorf("summary missing failed line: %q", summary)
	}
}
