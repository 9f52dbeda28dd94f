package stores

import "time"

// RunStatus is the terminal state of a recorded run.
type RunStatus string

const (
	// RunStatusSucceeded means every operation applied cleanly.
	RunStatusSucceeded RunStatus = "succeeded"

	// RunStatusPartial means some operations failed but the run continued.
	RunStatusPartial RunStatus = "partial"

	// RunStatusAborted means a failure stopped the run before completion.
	RunStatusAborted RunStatus = "aborted"

	// RunStatusFailed means the run never got to execute operations,
	// usually because the session could not be established.
	RunStatusFailed RunStatus = "failed"
)

// RunRecord is one persisted batch run. AppliedJSON and FailedJSON hold the
// result entry lists as JSON arrays. No credential material is stored; the
// instance is identified by host only.
type RunRecord struct {
	ID              string     `json:"id"`
	InstanceHost    string     `json:"instance_host"`
	Status          RunStatus  `json:"status"`
	ContinueOnError bool       `json:"continue_on_error"`
	Operations      int        `json:"operations"`
	AppliedJSON     string     `json:"applied"`
	FailedJSON      string     `json:"failed"`
	Error           *string    `json:"error,omitempty"`
	StartedAt       time.Time  `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
