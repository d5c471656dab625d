// Package download drives the cosmetic resume download status.
package download

import (
	"time"

	"github.com/yukesshwaran21/My-Portfolio/internal/sequence"
)

// Status values shown next to the resume button.
type Status string

const (
	StatusIdle        Status = ""
	StatusDownloading Status = "downloading"
	StatusDownloaded  Status = "downloaded"
)

const (
	// DefaultFinishAfter is how long "downloading" shows.
	DefaultFinishAfter = 2 * time.Second
	// DefaultClearAfter is how long "downloaded" shows.
	DefaultClearAfter = 3 * time.Second
)

// Label is the text shown next to the resume button.
func (s Status) Label() string {
	switch s {
	case StatusDownloading:
		return "Downloading..."
	case StatusDownloaded:
		return "Downloaded!"
	}
	return ""
}

// Flow is idle -> downloading -> downloaded -> idle. Triggering it again restarts it.
type Flow struct {
	seq *sequence.Sequence
}

// Options tunes the delays; zero values take the defaults.
type Options struct {
	FinishAfter time.Duration
	ClearAfter  time.Duration
	OnChange    func(Status)
}

// NewFlow builds an idle flow.
func NewFlow(opts Options) *Flow {
	if opts.FinishAfter <= 0 {
		opts.FinishAfter = DefaultFinishAfter
	}
	if opts.ClearAfter <= 0 {
		opts.ClearAfter = DefaultClearAfter
	}

	cfg := sequence.Config{
		Steps: []sequence.Step{
			{Label: string(StatusDownloading)},
			{Label: string(StatusDownloaded), After: opts.FinishAfter},
		},
		ResetAfter: opts.ClearAfter,
	}
	if opts.OnChange != nil {
		cfg.OnChange = func(label string, _ sequence.Phase) {
			opts.OnChange(Status(label))
		}
	}
	return &Flow{seq: sequence.New(cfg)}
}

// Trigger starts (or restarts) the sequence.
func (f *Flow) Trigger() {
	f.seq.Start()
}

// Status returns the current status.
func (f *Flow) Status() Status {
	return Status(f.seq.Label())
}

// Stop cancels pending transitions, e.g. when the page or program goes away.
func (f *Flow) Stop() {
	f.seq.Stop()
}
