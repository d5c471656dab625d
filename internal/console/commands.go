package console

import "github.com/yukesshwaran21/My-Portfolio/internal/section"

// ActionKind tags what a command does to the transcript.
type ActionKind int

const (
	// Respond appends Action.Text to the transcript.
	Respond ActionKind = iota
	// Clear empties the transcript.
	Clear
)

// EffectKind is the side effect bound to a command.
type EffectKind int

const (
	NoEffect EffectKind = iota
	// Navigate scrolls to Effect.Section.
	Navigate
	// Download starts the simulated resume download.
	Download
)

// Action is the tagged result of resolving a command.
type Action struct {
	Kind ActionKind
	Text string
}

// Effect is returned to the caller, which owns the page and performs it.
type Effect struct {
	Kind    EffectKind
	Section section.Section
}

// Command is one entry of the lookup table.
type Command struct {
	Name   string
	Action Action
	Effect Effect
}

// StealthResume is the easter-egg alias for resume.
const StealthResume = "yukessh --resume"

func respond(text string) Action { return Action{Kind: Respond, Text: text} }

func navigate(s section.Section) Effect { return Effect{Kind: Navigate, Section: s} }

// DefaultCommands is the fixed command table. Names must be lower-case.
var DefaultCommands = []Command{
	{Name: "help", Action: respond("Available commands: about, projects, skills, experience, contact, resume, clear")},
	{Name: "about", Action: respond("Navigating to About section..."), Effect: navigate(section.About)},
	{Name: "projects", Action: respond("Showing projects..."), Effect: navigate(section.Projects)},
	{Name: "skills", Action: respond("Displaying skills..."), Effect: navigate(section.Skills)},
	{Name: "experience", Action: respond("Loading experience timeline..."), Effect: navigate(section.Experience)},
	{Name: "contact", Action: respond("Opening contact form..."), Effect: navigate(section.Contact)},
	{Name: "resume", Action: respond("Downloading resume..."), Effect: Effect{Kind: Download}},
	{Name: "clear", Action: Action{Kind: Clear}},
	{Name: StealthResume, Action: respond("Downloading resume in stealth mode... 🥷"), Effect: Effect{Kind: Download}},
}
