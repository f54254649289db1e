package model

import (
	"time"

	"github.com/google/uuid"
)

// Run summarizes one operation for reporting
type Run struct {
	ID        string
	Operation string
	Keyword   string
	Inputs    []string
	Outputs   []string
	Count     int // Matches, updated cells, records or written files depending on the operation

	Matches []Match
	Records []ExtractionRecord

	StartedAt  time.Time
	FinishedAt time.Time
	Err        string // Failure description, empty on success
}

// NewRun starts a run for the given operation
func NewRun(operation string) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Operation: operation,
		StartedAt: time.Now(),
	}
}

// Finish records the end of the run and its outcome
func (r *Run) Finish(err error) {
	r.FinishedAt = time.Now()
	if err != nil {
		r.Err = err.Error()
	}
}

// Succeeded reports whether the run ended without error
func (r *Run) Succeeded() bool {
	return r.Err == ""
}

// Duration returns the elapsed time of a finished run
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Status returns "SUCCESS" or "FAILURE"
func (r *Run) Status() string {
	if r.Succeeded() {
		return "SUCCESS"
	}
	return "FAILURE"
}
