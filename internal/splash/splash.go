// Package splash models the loading screen shown before the page.
package splash

import (
	"time"

	"github.com/yukesshwaran21/My-Portfolio/internal/sequence"
)

const (
	// Duration is how long the splash stays up.
	Duration = 2 * time.Second
	// FillTime is how long the progress bar takes to reach 100%.
	FillTime = 1800 * time.Millisecond
)

// Splash is loading -> ready.
type Splash struct {
	seq      *sequence.Sequence
	fillTime time.Duration
}

// New builds a splash that stays up for d (Duration when zero).
func New(d time.Duration, onReady func()) *Splash {
	if d <= 0 {
		d = Duration
	}
	cfg := sequence.Config{
		Steps: []sequence.Step{{Label: "loading"}, {Label: "ready", After: d}},
	}
	if onReady != nil {
		cfg.OnChange = func(_ string, phase sequence.Phase) {
			if phase == sequence.Done {
				onReady()
			}
		}
	}
	fill := time.Duration(float64(FillTime) * float64(d) / float64(Duration))
	return &Splash{seq: sequence.New(cfg), fillTime: fill}
}

// Start shows the splash.
func (s *Splash) Start() { s.seq.Start() }

// Stop cancels the pending transition.
func (s *Splash) Stop() { s.seq.Stop() }

// Loading reports whether the splash is still up.
func (s *Splash) Loading() bool {
	return s.seq.Phase() == sequence.Running
}

// Ready reports whether the splash has finished.
func (s *Splash) Ready() bool {
	return s.seq.Phase() == sequence.Done
}

// Percent is the progress bar fill in [0,1].
func (s *Splash) Percent() float64 {
	if s.Ready() {
		return 1
	}
	return Fill(s.seq.Elapsed(), s.fillTime)
}

// Fill maps elapsed time onto [0,1] over fill.
func Fill(elapsed, fill time.Duration) float64 {
	if fill <= 0 || elapsed >= fill {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(fill)
}
