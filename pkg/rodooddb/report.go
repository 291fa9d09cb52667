package rodooddb

import (
	"time"

	"github.com/google/uuid"
)

// Report captures the outcome of one connectivity probe run. The boolean
// verdict is the contract; the rest is diagnostic detail for logs and
// tooling.
type Report struct {
	// RunID uniquely identifies this probe run across log lines.
	RunID uuid.UUID `json:"run_id"`

	// Target is the probed endpoint, host:port/database. Never contains
	// credentials.
	Target string `json:"target"`

	// Reachable is the probe verdict.
	Reachable bool `json:"reachable"`

	// Attempts lists every attempt in order.
	Attempts []Attempt `json:"attempts"`

	// Elapsed is the total wall-clock duration of the run, delays
	// included.
	Elapsed time.Duration `json:"elapsed"`

	// StartedAt is when the first attempt began.
	StartedAt time.Time `json:"started_at"`
}

// Attempt records a single liveness round trip.
type Attempt struct {
	// Number is 1-based.
	Number int `json:"number"`

	// Latency is the duration of the round trip itself, excluding any
	// retry delay that followed.
	Latency time.Duration `json:"latency"`

	// OK reports whether the round trip succeeded.
	OK bool `json:"ok"`

	// Kind is the classification of the failure. Empty on success.
	Kind string `json:"kind,omitempty"`

	// Error is the failure message. Empty on success.
	Error string `json:"error,omitempty"`
}

// NewReport creates a Report for the given target with a fresh run ID.
func NewReport(target string) *Report {
	return &Report{
		RunID:     uuid.New(),
		Target:    target,
		StartedAt: time.Now(),
	}
}

// LastError returns the error message of the final failed attempt, or the
// empty string if the probe succeeded or never ran.
func (r *Report) LastError() string {
	for i := len(r.Attempts) - 1; i >= 0; i-- {
		if !r.Attempts[i].OK {
			return r.Attempts[i].Error
		}
	}
	return ""
}
