// Package tui is the terminal rendition of the portfolio page.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yukesshwaran21/My-Portfolio/internal/console"
	"github.com/yukesshwaran21/My-Portfolio/internal/content"
	"github.com/yukesshwaran21/My-Portfolio/internal/download"
	"github.com/yukesshwaran21/My-Portfolio/internal/scroll"
	"github.com/yukesshwaran21/My-Portfolio/internal/section"
	"github.com/yukesshwaran21/My-Portfolio/internal/splash"
)

const (
	// headerLines is the nav bar plus the scroll progress bar.
	headerLines = 2
	footerLines = 1
	// consoleLines is the overlay height including its border.
	consoleLines = 9
	// backToTopLines mirrors the web page's threshold at roughly 20px a line.
	backToTopLines = 25
	frameInterval  = 50 * time.Millisecond
)

type mode int

const (
	modeSplash mode = iota
	modePage
	modeConsole
)

type (
	frameMsg      time.Time
	splashDoneMsg struct{}
	// statusMsg wakes the model after the download flow moves; the flow holds the value.
	statusMsg struct{}
)

// Options tunes the timed parts of the model.
type Options struct {
	SplashDuration time.Duration
	Download       download.Options
}

type Model struct {
	portfolio *content.Portfolio
	session   *console.Session
	flow      *download.Flow
	splash    *splash.Splash
	tracker   *scroll.Tracker
	events    chan tea.Msg

	doc    document
	tags   []string
	tag    string
	offset int
	width  int
	height int
	mode   mode
	state  scroll.State
	status download.Status

	input textinput.Model
	bar   progress.Model
}

func NewModel(p *content.Portfolio, table *console.Table, opts Options) Model {
	events := make(chan tea.Msg, 8)
	notify := func(msg tea.Msg) {
		select {
		case events <- msg:
		default:
		}
	}

	dl := opts.Download
	dl.OnChange = func(download.Status) { notify(statusMsg{}) }

	ti := textinput.New()
	ti.Prompt = console.Prompt
	ti.Placeholder = "type 'help'"
	ti.CharLimit = 200

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	m := Model{
		portfolio: p,
		session:   console.NewSession(table),
		flow:      download.NewFlow(dl),
		splash:    splash.New(opts.SplashDuration, func() { notify(splashDoneMsg{}) }),
		tracker: scroll.NewTracker(scroll.Layout{
			Order:     section.All,
			Header:    0,
			BackToTop: backToTopLines,
		}),
		events: events,
		tags:   content.ProjectTags(p.Projects),
		tag:    content.AllTag,
		width:  100,
		height: 30,
		input:  ti,
		bar:    bar,
	}
	m.layout()
	return m
}

func (m Model) Init() tea.Cmd {
	m.splash.Start()
	return tea.Batch(waitForEvent(m.events), frame())
}

func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Close cancels the pending splash and download timers.
func (m Model) Close() {
	m.splash.Stop()
	m.flow.Stop()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case frameMsg:
		if m.mode == modeSplash {
			return m, frame()
		}
		return m, nil

	case splashDoneMsg:
		if m.mode == modeSplash {
			m.mode = modePage
		}
		return m, waitForEvent(m.events)

	case statusMsg:
		m.status = m.flow.Status()
		return m, waitForEvent(m.events)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.Close()
			return m, tea.Quit
		}
		switch m.mode {
		case modePage:
			return m.updatePage(msg)
		case modeConsole:
			return m.updateConsole(msg)
		}
	}
	return m, nil
}

func (m Model) updatePage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q":
		m.Close()
		return m, tea.Quit

	case "down", "j":
		m.scrollTo(m.offset + 1)

	case "up", "k":
		m.scrollTo(m.offset - 1)

	case "pgdown", " ":
		m.scrollTo(m.offset + m.viewportHeight())

	case "pgup":
		m.scrollTo(m.offset - m.viewportHeight())

	case "home", "g":
		m.scrollTo(0)

	case "end", "G":
		m.scrollTo(m.maxOffset())

	case "1", "2", "3", "4", "5", "6", "7":
		if s, ok := section.At(int(key[0] - '1')); ok {
			m.jump(s)
		}

	case "tab":
		m.tag = content.NextTag(m.tags, m.tag)
		m.layout()

	case "d":
		m.startDownload()

	case "ctrl+k", ":":
		m.mode = modeConsole
		m.input.Focus()
		m.layout()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) updateConsole(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeConsole()
		return m, nil

	case "enter":
		res := m.session.Submit(m.input.Value())
		m.input.Reset()
		// the console stays open over the section it jumped to
		switch res.Effect.Kind {
		case console.Navigate:
			m.jump(res.Effect.Section)
		case console.Download:
			m.startDownload()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// closeConsole hides the overlay and discards its transcript.
func (m *Model) closeConsole() {
	m.session.Close()
	m.input.Reset()
	m.input.Blur()
	m.mode = modePage
	m.layout()
}

func (m *Model) startDownload() {
	m.flow.Trigger()
	m.status = m.flow.Status()
}

func (m *Model) jump(s section.Section) {
	top, ok := m.doc.tops[s]
	if !ok {
		return
	}
	m.scrollTo(scroll.TargetOffset(top, m.tracker.Layout().Header))
}

// layout re-renders the document for the current width and tag and keeps the
// offset in range.
func (m *Model) layout() {
	m.bar.Width = m.width
	m.doc = renderDocument(m.portfolio, m.tags, m.tag, m.width-2)
	m.scrollTo(m.offset)
}

func (m *Model) scrollTo(offset int) {
	if offset > m.maxOffset() {
		offset = m.maxOffset()
	}
	if offset < 0 {
		offset = 0
	}
	m.offset = offset
	m.state = m.tracker.Update(scroll.Metrics{
		Offset:         m.offset,
		ViewportHeight: m.viewportHeight(),
		DocumentHeight: m.doc.height(),
		SectionTops:    m.doc.tops,
	})
}

func (m Model) viewportHeight() int {
	rows := m.height - headerLines - footerLines
	if m.mode == modeConsole {
		rows -= consoleLines
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m Model) maxOffset() int {
	if n := m.doc.height() - m.viewportHeight(); n > 0 {
		return n
	}
	return 0
}

func (m Model) View() string {
	if m.mode == modeSplash {
		return m.renderSplash()
	}

	var b strings.Builder
	b.WriteString(m.renderNav() + "\n")
	b.WriteString(m.bar.ViewAs(m.state.Progress) + "\n")

	visible := m.viewportHeight()
	end := m.offset + visible
	if end > m.doc.height() {
		end = m.doc.height()
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(" " + m.doc.lines[i] + "\n")
	}
	for i := end - m.offset; i < visible; i++ {
		b.WriteString("\n")
	}

	if m.mode == modeConsole {
		b.WriteString(m.renderConsole() + "\n")
	}
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m Model) renderSplash() string {
	bar := m.bar
	bar.Width = 40
	body := lipgloss.JoinVertical(lipgloss.Center,
		splashNameStyle.Render(m.portfolio.Profile.Name),
		"",
		bar.ViewAs(m.splash.Percent()),
		"",
		dimStyle.Render("Loading portfolio..."),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) renderNav() string {
	items := make([]string, 0, len(section.All))
	for i, s := range section.All {
		label := fmt.Sprintf("%d %s", i+1, s.Label())
		if s == m.state.Active {
			items = append(items, activeNavStyle.Render(label))
		} else {
			items = append(items, navStyle.Render(label))
		}
	}
	return titleStyle.Render(m.portfolio.Profile.ShortName) + strings.Join(items, "")
}

func (m Model) renderConsole() string {
	lines := m.session.Lines()
	// transcript rows inside the border, leaving one for the input
	room := consoleLines - 3
	if len(lines) > room {
		lines = lines[len(lines)-room:]
	}
	for len(lines) < room {
		lines = append(lines, "")
	}
	body := consoleTextStyle.Render(strings.Join(lines, "\n")) + "\n" + m.input.View()
	return consoleStyle.Width(m.width - 2).Render(body)
}

func (m Model) renderStatus() string {
	var parts []string
	parts = append(parts, statusBarStyle.Render(fmt.Sprintf("%3.0f%%", m.state.Progress*100)))
	if label := m.status.Label(); label != "" {
		parts = append(parts, downloadStyle.Render(label))
	}
	if m.state.BackToTop {
		parts = append(parts, helpStyle.Render("g: back to top"))
	}
	if m.mode == modeConsole {
		parts = append(parts, helpStyle.Render("Enter: run  Esc: close"))
	} else {
		parts = append(parts, helpStyle.Render("j/k: scroll  1-7: jump  Tab: filter  d: resume  Ctrl+K: console  q: quit"))
	}
	return strings.Join(parts, "  ")
}
