// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/keymap"
	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/styles"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/session"
)

// Bar displays the search session phase and keybinding hints.
type Bar struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	state       session.State
	err         error
	resultCount int
	hints       []key.Binding
	width       int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  session.Idle,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the session phase.
func (s *Bar) renderLeft() string {
	if s.err != nil {
		return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.err))
	}

	//nolint:exhaustive // closed sessions are not displayed
	switch s.state {
	case session.Debouncing:
		return s.styles.Muted.Render("Typing...")
	case session.Searching:
		return s.styles.Warning.Render("Searching...")
	case session.Presenting:
		if s.resultCount == 0 {
			return s.styles.Muted.Render("No matches")
		}
		label := fmt.Sprintf("%d matches", s.resultCount)
		if s.resultCount == domain.MaxResults {
			label = fmt.Sprintf("%d matches (limit)", s.resultCount)
		}
		return s.styles.Success.Render(label)
	default:
		return s.styles.Muted.Render(fmt.Sprintf("Type at least %d characters", domain.MinQueryLength))
	}
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	bindings := s.hints
	if bindings == nil {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the displayed session phase.
func (s *Bar) SetState(state session.State) {
	s.state = state
}

// State returns the displayed session phase.
func (s *Bar) State() session.State {
	return s.state
}

// SetError shows err instead of the phase. A nil error clears it.
func (s *Bar) SetError(err error) {
	s.err = err
}

// Err returns the displayed error.
func (s *Bar) Err() error {
	return s.err
}

// SetResultCount sets the result count.
func (s *Bar) SetResultCount(count int) {
	s.resultCount = count
}

// ResultCount returns the current result count.
func (s *Bar) ResultCount() int {
	return s.resultCount
}

// SetHints overrides the keybinding hints. Nil restores the defaults.
func (s *Bar) SetHints(bindings []key.Binding) {
	s.hints = bindings
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to its initial state.
func (s *Bar) Clear() {
	s.state = session.Idle
	s.err = nil
	s.resultCount = 0
}
