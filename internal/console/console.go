// Package console implements the mock command shell shown in the console overlay.
package console

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Prompt prefixes every echoed input line.
const Prompt = "$ "

// Table resolves normalized input to a command.
type Table struct {
	commands map[string]Command
	names    []string
}

// NewTable builds a table; every name must already be lower-case and trimmed.
func NewTable(commands []Command) (*Table, error) {
	t := &Table{commands: make(map[string]Command, len(commands))}
	for _, c := range commands {
		if c.Name != Normalize(c.Name) {
			return nil, errors.Errorf("command %q is not normalized", c.Name)
		}
		if _, dup := t.commands[c.Name]; dup {
			return nil, errors.Errorf("duplicate command %q", c.Name)
		}
		t.commands[c.Name] = c
		t.names = append(t.names, c.Name)
	}
	return t, nil
}

// MustDefaultTable returns the table built from DefaultCommands.
func MustDefaultTable() *Table {
	t, err := NewTable(DefaultCommands)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup resolves raw input.
func (t *Table) Lookup(input string) (Command, bool) {
	c, ok := t.commands[Normalize(input)]
	return c, ok
}

// Names returns the command names in table order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Normalize trims and lower-cases input before lookup.
func Normalize(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// NotFound is the diagnostic appended for unknown input.
func NotFound(input string) string {
	return fmt.Sprintf("Command not found: %s. Type 'help' for available commands.", input)
}

// Result reports what one submit did.
type Result struct {
	Command string // normalized input
	Found   bool
	Cleared bool
	Effect  Effect
	// Lines is the transcript after the submit.
	Lines []string
}

// Session holds one console transcript. It is safe for concurrent use.
type Session struct {
	mu         sync.Mutex
	table      *Table
	transcript []string
}

// NewSession starts an empty transcript.
func NewSession(table *Table) *Session {
	return &Session{table: table}
}

// Submit echoes input, resolves it and returns the bound effect for the caller to run.
func (s *Session) Submit(input string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcript = append(s.transcript, Prompt+input)
	res := Result{Command: Normalize(input)}

	cmd, ok := s.table.Lookup(input)
	switch {
	case !ok:
		s.transcript = append(s.transcript, NotFound(input))
	case cmd.Action.Kind == Clear:
		res.Found = true
		res.Cleared = true
		s.transcript = nil
	default:
		res.Found = true
		res.Effect = cmd.Effect
		s.transcript = append(s.transcript, cmd.Action.Text)
	}

	res.Lines = s.linesLocked()
	return res
}

// Lines returns a copy of the transcript.
func (s *Session) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.linesLocked()
}

// Close discards the transcript, as closing the overlay does.
func (s *Session) Close() {
	s.mu.Lock()
	s.transcript = nil
	s.mu.Unlock()
}

func (s *Session) linesLocked() []string {
	out := make([]string, len(s.transcript))
	copy(out, s.transcript)
	return out
}
