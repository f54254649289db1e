package ui

import (
	"fmt"
	"io"
	"os"

	"xlkeyword/internal/keyword"

	"github.com/schollz/progressbar/v3"
)

// Phase names the stage an operation reports progress for
type Phase string

const (
	PhaseReading   Phase = "Reading"
	PhaseWriting   Phase = "Writing"
	PhaseSplitting Phase = "Splitting"
	PhaseExporting Phase = "Exporting"
)

// newBar draws one themed bar for phase on output
func newBar(phase Phase, total int, output io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(output),
		progressbar.OptionSetDescription(fmt.Sprintf("[%s]", phase)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetPredictTime(true),
	)
}

// tracker adapts a bar to keyword.Tracker
type tracker struct {
	bar *progressbar.ProgressBar
}

func (t *tracker) Increment() error {
	return t.bar.Add(1)
}

func (t *tracker) Finish() error {
	return t.bar.Finish()
}

// Reporter creates one progress bar per phase as an operation enters it.
// It satisfies keyword.Progress.
type Reporter struct {
	current  *tracker
	disabled bool
	output   io.Writer
}

// NewReporter creates a Reporter drawing on stdout
func NewReporter() *Reporter {
	return NewReporterWithOutput(os.Stdout)
}

// NewReporterWithOutput creates a Reporter drawing on output
func NewReporterWithOutput(output io.Writer) *Reporter {
	return &Reporter{output: output}
}

// Disable suppresses all progress output
func (r *Reporter) Disable() {
	r.disabled = true
}

// Phase finishes the running bar, if any, and starts a new one
func (r *Reporter) Phase(name string, total int) keyword.Tracker {
	r.Finish()

	output := r.output
	if r.disabled {
		output = io.Discard
	}
	r.current = &tracker{bar: newBar(Phase(name), total, output)}
	return r.current
}

// Finish completes the running bar
func (r *Reporter) Finish() {
	if r.current != nil {
		r.current.Finish()
		r.current = nil
	}
}

// PrintSummary prints a line below the progress bars
func (r *Reporter) PrintSummary(message string) {
	if !r.disabled {
		fmt.Fprintln(r.output, message)
	}
}
