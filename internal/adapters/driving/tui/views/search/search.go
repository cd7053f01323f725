// Package search provides the search dialog view for the TUI.
// The view is an adapter around session.Controller: key presses and timer
// and search completions become controller calls, and each controller Output
// is turned back into Bubbletea commands.
package search

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/components/input"
	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/components/list"
	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/components/status"
	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/keymap"
	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/messages"
	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/styles"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/ports/driving"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/session"
)

// View represents the search dialog with input, results list, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.ResultList
	statusbar *status.Bar

	ctrl          *session.Controller
	searchService driving.SearchService
	ctx           context.Context

	width  int
	height int
	ready  bool
}

// NewView creates a new search view. A non-positive debounce uses
// session.DefaultDebounce.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	debounce time.Duration,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetHints(km.SearchHelp())

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewQueryInput(s),
		list:          list.NewResultList(s),
		statusbar:     bar,
		ctrl:          session.NewController(debounce),
		searchService: searchService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
	}
}

// WithContext sets the context used for searches.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Open starts a fresh search session.
func (v *View) Open() tea.Cmd {
	v.input.Reset()
	v.statusbar.Clear()
	return v.apply(v.ctrl.Open())
}

// Close ends the session without navigating anywhere.
func (v *View) Close() {
	v.ctrl.Close()
	v.input.Blur()
	v.sync()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v, v.handleKeyMsg(msg)

	case messages.DebounceElapsed:
		return v, v.apply(v.ctrl.TimerElapsed(msg.Token))

	case messages.SearchCompleted:
		if v.ctrl.ResultsArrived(msg.Seq, msg.Results) {
			v.statusbar.SetError(nil)
			v.sync()
		}
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetError(msg.Err)
		return v, nil
	}

	// cursor blink and other input housekeeping
	cmd, _ := v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg maps navigation keys to the controller and everything else
// to the query input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	//nolint:exhaustive // every other key is text input
	switch msg.Type {
	case tea.KeyEsc:
		return v.apply(v.ctrl.Key(session.Escape))
	case tea.KeyEnter:
		return v.apply(v.ctrl.Key(session.Enter))
	case tea.KeyUp:
		return v.apply(v.ctrl.Key(session.ArrowUp))
	case tea.KeyDown:
		return v.apply(v.ctrl.Key(session.ArrowDown))
	}

	cmd, changed := v.input.Update(msg)
	if !changed {
		return cmd
	}
	return tea.Batch(cmd, v.apply(v.ctrl.Input(v.input.Value())))
}

// apply performs the side effects requested by a controller Output.
func (v *View) apply(out session.Output) tea.Cmd {
	var cmds []tea.Cmd

	if out.Focus {
		cmds = append(cmds, v.input.Focus())
	}
	if d := out.Debounce; d != nil {
		token := d.Token
		cmds = append(cmds, tea.Tick(d.Delay, func(time.Time) tea.Msg {
			return messages.DebounceElapsed{Token: token}
		}))
	}
	if r := out.Request; r != nil {
		cmds = append(cmds, v.performSearch(*r))
	}
	switch {
	case out.Target != nil:
		target := *out.Target
		v.input.Blur()
		cmds = append(cmds, func() tea.Msg {
			return messages.TopicSelected{Target: target, From: messages.ViewSearch}
		})
	case out.Closed:
		v.input.Blur()
		cmds = append(cmds, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		})
	}

	v.sync()
	return tea.Batch(cmds...)
}

// performSearch runs a request and reports its results tagged with Seq.
func (v *View) performSearch(req session.Request) tea.Cmd {
	return func() tea.Msg {
		if v.searchService == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}
		return messages.SearchCompleted{
			Seq:     req.Seq,
			Query:   req.Query,
			Results: v.searchService.Search(v.ctx, req.Query),
		}
	}
}

// sync mirrors controller state into the components.
func (v *View) sync() {
	v.list.SetResults(v.ctrl.Results())
	v.list.SetSelected(v.ctrl.Cursor())
	v.statusbar.SetState(v.ctrl.State())
	v.statusbar.SetResultCount(len(v.ctrl.Results()))
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{
		v.styles.Title.Render("KawnHub"),
		"",
		v.input.View(),
		"",
		v.list.View(),
		"",
		v.statusbar.View(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-8) // header, input, status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current query text.
func (v *View) Query() string {
	return v.input.Value()
}

// Results returns the presented results.
func (v *View) Results() []domain.MatchResult {
	return v.ctrl.Results()
}

// SelectedIndex returns the index of the highlighted result.
func (v *View) SelectedIndex() int {
	return v.ctrl.Cursor()
}

// State returns the session phase.
func (v *View) State() session.State {
	return v.ctrl.State()
}

// IsOpen reports whether a search session is open.
func (v *View) IsOpen() bool {
	return v.ctrl.IsOpen()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.input.Focused()
}
