// Package sequence runs short cosmetic state machines on timers, such as the loading
// splash and the resume download status.
package sequence

import (
	"sync"
	"time"
)

// Phase is the coarse state of a Sequence.
type Phase int

const (
	Idle Phase = iota
	Running
	Done
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case Done:
		return "done"
	}
	return "idle"
}

// Step is entered After the previous step (the first step is entered on Start).
type Step struct {
	Label string
	After time.Duration
}

// Config describes a sequence.
type Config struct {
	Steps []Step
	// ResetAfter, when positive, returns the sequence to Idle that long after the
	// last step. Zero leaves it Done.
	ResetAfter time.Duration
	// OnChange observes every transition. It runs outside the lock.
	OnChange func(label string, phase Phase)
}

// Sequence is safe for concurrent use. Start restarts it; Stop cancels pending timers.
type Sequence struct {
	mu      sync.Mutex
	cfg     Config
	idx     int
	phase   Phase
	timer   *time.Timer
	gen     uint64
	started time.Time
	now     func() time.Time
}

// New builds an idle sequence.
func New(cfg Config) *Sequence {
	return &Sequence{cfg: cfg, idx: -1, now: time.Now}
}

// Start cancels any pending transition and enters the first step.
func (s *Sequence) Start() {
	if len(s.cfg.Steps) == 0 {
		return
	}

	s.mu.Lock()
	s.stopLocked()
	s.gen++
	s.started = s.now()
	label, phase := s.enterLocked(0, s.gen)
	s.mu.Unlock()

	s.notify(label, phase)
}

// Stop cancels pending timers and leaves the sequence where it is.
func (s *Sequence) Stop() {
	s.mu.Lock()
	s.stopLocked()
	s.gen++
	s.mu.Unlock()
}

// Reset cancels pending timers and returns to Idle.
func (s *Sequence) Reset() {
	s.mu.Lock()
	s.stopLocked()
	s.gen++
	changed := s.phase != Idle
	s.idx = -1
	s.phase = Idle
	s.mu.Unlock()

	if changed {
		s.notify("", Idle)
	}
}

// Label returns the current step label, or "" when idle.
func (s *Sequence) Label() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.labelLocked()
}

// Phase returns the coarse state.
func (s *Sequence) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Elapsed is the time since the last Start, or zero when idle.
func (s *Sequence) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == Idle {
		return 0
	}
	return s.now().Sub(s.started)
}

func (s *Sequence) labelLocked() string {
	if s.idx < 0 {
		return ""
	}
	return s.cfg.Steps[s.idx].Label
}

func (s *Sequence) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// enterLocked moves to step i and schedules whatever comes next.
func (s *Sequence) enterLocked(i int, gen uint64) (string, Phase) {
	s.idx = i
	last := i == len(s.cfg.Steps)-1

	switch {
	case !last:
		s.phase = Running
		s.schedule(s.cfg.Steps[i+1].After, gen, func() (string, Phase) {
			return s.enterLocked(i+1, gen)
		})
	case s.cfg.ResetAfter > 0:
		s.phase = Running
		s.schedule(s.cfg.ResetAfter, gen, func() (string, Phase) {
			s.idx = -1
			s.phase = Idle
			s.timer = nil
			return "", Idle
		})
	default:
		s.phase = Done
		s.timer = nil
	}
	return s.labelLocked(), s.phase
}

func (s *Sequence) schedule(d time.Duration, gen uint64, next func() (string, Phase)) {
	s.timer = time.AfterFunc(d, func() {
		s.mu.Lock()
		if gen != s.gen {
			s.mu.Unlock()
			return
		}
		label, phase := next()
		s.mu.Unlock()
		s.notify(label, phase)
	})
}

func (s *Sequence) notify(label string, phase Phase) {
	if s.cfg.OnChange != nil {
		s.cfg.OnChange(label, phase)
	}
}
