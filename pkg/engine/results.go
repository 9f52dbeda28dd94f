package engine

import (
	"errors"
	"fmt"
	"strings"
)

// OperationResult is the outcome of one configuration operation.
type OperationResult struct {
	// Label is the operation's human-readable tag.
	Label string `json:"label"`

	// Err is nil when the operation applied cleanly.
	Err error `json:"-"`
}

// Succeeded reports whether the operation applied cleanly.
func (r OperationResult) Succeeded() bool {
	return r.Err == nil
}

// FailureText renders a failed result as "label: message". For classified
// errors the bare message is used, without class or code decoration.
func (r OperationResult) FailureText() string {
	var e *AutomationError
	if errors.As(r.Err, &e) {
		return fmt.Sprintf("%s: %s", r.Label, e.Message)
	}
	return fmt.Sprintf("%s: %v", r.Label, r.Err)
}

// BatchResult is the reduced outcome of a batch run. Entry order follows
// execution order.
type BatchResult struct {
	// Applied lists the labels of operations that applied cleanly.
	Applied []string `json:"applied"`

	// Failed lists failed operations as "label: message" entries.
	Failed []string `json:"failed"`
}

// Success reports whether every attempted operation applied cleanly.
func (r *BatchResult) Success() bool {
	return len(r.Failed) == 0
}

// Aggregate reduces ordered operation results into a BatchResult. Operations
// never attempted do not appear at all.
func Aggregate(results []OperationResult) *BatchResult {
	out := &BatchResult{
		Applied: []string{},
		Failed:  []string{},
	}
	for _, res := range results {
		if res.Succeeded() {
			out.Applied = append(out.Applied, res.Label)
		} else {
			out.Failed = append(out.Failed, res.FailureText())
		}
	}
	return out
}

// Summary renders a one-look report of the run.
func (r *BatchResult) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d applied, %d failed\n", len(r.Applied), len(r.Failed))
	for _, label := range r.Applied {
		fmt.Fprintf(&b, "  ok   %s\n", label)
	}
	for _, entry := range r.Failed {
		fmt.Fprintf(&b, "  FAIL %s\n", entry)
	}
	return b.String()
}
