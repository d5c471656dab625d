// Package scroll maps a viewport scroll position onto the page's sections.
package scroll

import "github.com/yukesshwaran21/My-Portfolio/internal/section"

const (
	// HeaderOffset is the height of the sticky navigation bar on the web page.
	HeaderOffset = 80
	// BackToTopThreshold is the offset past which the back-to-top control shows.
	BackToTopThreshold = 500
)

// Metrics is the layout snapshot supplied by the renderer.
type Metrics struct {
	Offset         int
	ViewportHeight int
	DocumentHeight int
	// SectionTops holds each mounted section's page-top offset.
	// Sections not yet mounted are simply absent.
	SectionTops map[section.Section]int
}

// State is derived on every scroll event; nothing here is stored.
type State struct {
	Progress  float64
	BackToTop bool
	Active    section.Section
}

// Compute derives the scroll state. previous is kept as the active section when no
// section's start has been passed yet.
func Compute(m Metrics, l Layout, previous section.Section) State {
	return State{
		Progress:  Progress(m.Offset, m.ViewportHeight, m.DocumentHeight),
		BackToTop: m.Offset > l.BackToTop,
		Active:    ActiveSection(m.Offset, l.Header, m.SectionTops, l.Order, previous),
	}
}

// Layout holds the fixed parameters of a page, in the renderer's units.
type Layout struct {
	Order     []section.Section
	Header    int
	BackToTop int
}

// PageLayout is the web page: pixel units, every section in document order.
func PageLayout() Layout {
	return Layout{Order: section.All, Header: HeaderOffset, BackToTop: BackToTopThreshold}
}

// Progress returns offset / (document - viewport) clamped to [0,1].
func Progress(offset, viewport, document int) float64 {
	scrollable := document - viewport
	if scrollable <= 0 {
		if offset > 0 {
			return 1
		}
		return 0
	}
	p := float64(offset) / float64(scrollable)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// ActiveSection scans order from last to first and returns the first section whose
// top, minus the header, is at or above offset.
func ActiveSection(offset, header int, tops map[section.Section]int, order []section.Section, previous section.Section) section.Section {
	for i := len(order) - 1; i >= 0; i-- {
		top, ok := tops[order[i]]
		if !ok {
			continue
		}
		if top-header <= offset {
			return order[i]
		}
	}
	return previous
}

// TargetOffset is the scroll offset that brings a section's top just below the header.
func TargetOffset(top, header int) int {
	if t := top - header; t > 0 {
		return t
	}
	return 0
}

// Tracker remembers the active section between scroll events.
type Tracker struct {
	layout Layout
	state  State
}

// NewTracker starts on the first section with zero progress.
func NewTracker(l Layout) *Tracker {
	if len(l.Order) == 0 {
		l.Order = section.All
	}
	return &Tracker{
		layout: l,
		state:  State{Active: l.Order[0]},
	}
}

// Update recomputes the state from a fresh layout snapshot.
func (t *Tracker) Update(m Metrics) State {
	t.state = Compute(m, t.layout, t.state.Active)
	return t.state
}

// State returns the last computed state.
func (t *Tracker) State() State {
	return t.state
}

// Layout returns the tracker's fixed parameters.
func (t *Tracker) Layout() Layout {
	return t.layout
}
