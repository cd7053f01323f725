// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/styles"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

// linesPerResult is the height of one rendered result (title and snippet).
const linesPerResult = 2

// ResultList displays match results. It is a pure view: the selection is
// owned by the session controller and mirrored here with SetSelected.
type ResultList struct {
	results  []domain.MatchResult
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No matches")
	}

	lines := make([]string, 0, len(r.results)*linesPerResult+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results))), "")

	start, end := r.visibleRange()
	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]))
	}

	return strings.Join(lines, "\n")
}

// visibleRange returns the window of results that fits the height and
// keeps the selection on screen.
func (r *ResultList) visibleRange() (start, end int) {
	visible := (r.height - 2) / linesPerResult
	if visible < 1 {
		visible = 1
	}

	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end = start + visible
	if end > len(r.results) {
		end = len(r.results)
	}
	return start, end
}

// renderResult formats a single result as a title line and a snippet line.
func (r *ResultList) renderResult(index int, result *domain.MatchResult) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	title := result.Title
	if title == "" {
		title = "(Untitled)"
	}
	badge := r.styles.Badge(result.MatchType)
	material := r.styles.Muted.Render(result.MaterialSlug)

	maxTitle := r.width - len(result.MaterialSlug) - 16
	if maxTitle < 10 {
		maxTitle = 10
	}
	title = Truncate(title, maxTitle)

	var titleLine string
	if index == r.selected {
		titleLine = r.styles.Selected.Render(indicator+title) + " " + badge + " " + material
	} else {
		titleLine = r.styles.Normal.Render(indicator+title) + " " + badge + " " + material
	}

	snippet := Truncate(result.Snippet, r.width-6)
	return titleLine + "\n" + r.styles.Snippet.Render("    "+snippet)
}

// SetResults replaces the results and resets the selection.
func (r *ResultList) SetResults(results []domain.MatchResult) {
	r.results = results
	r.selected = 0
}

// Results returns the current results.
func (r *ResultList) Results() []domain.MatchResult {
	return r.results
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index. Out-of-range indexes are ignored.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}

// Truncate shortens s to at most n runes, ending with "..." when cut.
func Truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
