// Package keyword implements keyword-driven operations over spreadsheet sheets:
// cell writes and reads, search, adjacent-cell annotation, cross-file
// extraction and chunked output.
//
// Every operation opens its workbooks fresh and closes them before returning.
// An Operator is not safe for concurrent use.
package keyword

import (
	"time"

	"xlkeyword/internal/sheet"
)

const (
	// DefaultMessage is written next to every match when no message is given
	DefaultMessage = "on sale"

	// DefaultChunkSize is the group size used when none is configured
	DefaultChunkSize = 3

	// DefaultOutputTitle names the sheet of an extraction workbook
	DefaultOutputTitle = "matches"

	DefaultRowPrefix  = "split_data"
	DefaultTextPrefix = "text_chunks"
)

// Header is the first row of an extraction workbook
var Header = []string{"matched value", "source file"}

// Tracker follows the progress of one phase
type Tracker interface {
	Increment() error
	Finish() error
}

// Progress starts a tracker per phase
type Progress interface {
	Phase(name string, total int) Tracker
}

// Operator runs keyword operations against a sheet.Store
type Operator struct {
	store       sheet.Store
	progress    Progress
	now         func() time.Time
	outputTitle string
}

// Option configures an Operator
type Option func(*Operator)

// WithProgress reports phase progress to p
func WithProgress(p Progress) Option {
	return func(o *Operator) {
		if p != nil {
			o.progress = p
		}
	}
}

// WithClock replaces time.Now, used to name text chunk files
func WithClock(now func() time.Time) Option {
	return func(o *Operator) {
		if now != nil {
			o.now = now
		}
	}
}

// WithOutputTitle sets the sheet title of extraction workbooks
func WithOutputTitle(title string) Option {
	return func(o *Operator) {
		if title != "" {
			o.outputTitle = title
		}
	}
}

// New creates an Operator backed by store
func New(store sheet.Store, opts ...Option) *Operator {
	o := &Operator{
		store:       store,
		progress:    noopProgress{},
		now:         time.Now,
		outputTitle: DefaultOutputTitle,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Store returns the backing store
func (o *Operator) Store() sheet.Store {
	return o.store
}

type noopProgress struct{}

func (noopProgress) Phase(string, int) Tracker { return noopTracker{} }

type noopTracker struct{}

func (noopTracker) Increment() error { return nil }
func (noopTracker) Finish() error    { return nil }
