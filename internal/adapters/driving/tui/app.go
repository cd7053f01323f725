package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/keymap"
	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/messages"
	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/styles"
	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/views/browse"
	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/views/menu"
	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/views/search"
	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/views/topic"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	menuView   *menu.View
	searchView *search.View
	browseView *browse.View
	topicView  *topic.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// initialView is opened by Init.
	initialView messages.ViewType

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingSearchService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		menuView:    menu.NewView(s),
		searchView:  search.NewView(s, km, ports.Search, ports.Debounce),
		browseView:  browse.NewView(s, km, ports.Topics, ports.Corpus),
		topicView:   topic.NewView(s, km, ports.Topics),
		currentView: messages.ViewMenu,
		initialView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.browseView.WithContext(ctx)
	a.topicView.WithContext(ctx)
	return a
}

// WithInitialView opens view instead of the menu on start.
func (a *App) WithInitialView(view messages.ViewType) *App {
	a.initialView = view
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	initial := a.initialView
	return tea.Batch(
		tea.SetWindowTitle("kawnhub"),
		func() tea.Msg { return messages.ViewChanged{View: initial} },
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c. Plain q is left to the views since the
		// search input must accept it as text.
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.updateCurrent(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.TopicSelected:
		a.closeSearch()
		a.currentView = messages.ViewTopic
		return a, a.topicView.Open(msg.Target, msg.From)

	case messages.DebounceElapsed, messages.SearchCompleted:
		// delivered even when the search view is hidden; the session
		// discards anything that no longer applies
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.TopicsLoaded:
		a.browseView, cmd = a.browseView.Update(msg)
		return a, cmd

	case messages.TopicLoaded:
		a.topicView, cmd = a.topicView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.updateCurrent(msg)
}

// updateCurrent forwards msg to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewBrowse:
		a.browseView, cmd = a.browseView.Update(msg)
	case messages.ViewTopic:
		a.topicView, cmd = a.topicView.Update(msg)
	case messages.ViewHelp:
		if k, ok := msg.(tea.KeyMsg); ok && (k.Type == tea.KeyEsc || k.String() == "q") {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// switchTo activates view and runs its entry command.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	if view != messages.ViewSearch {
		a.closeSearch()
	}
	a.currentView = view

	//nolint:exhaustive // the topic view is opened through TopicSelected
	switch view {
	case messages.ViewSearch:
		return a.searchView.Open()
	case messages.ViewBrowse:
		return a.browseView.Open()
	case messages.ViewMenu:
		if a.ports.Corpus != nil {
			a.menuView.SetStats(a.ports.Corpus.Stats())
		}
	}
	return nil
}

// closeSearch ends an open search session so late results are dropped.
func (a *App) closeSearch() {
	if a.searchView.IsOpen() {
		a.searchView.Close()
	}
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewBrowse:
		return a.browseView.View()
	case messages.ViewTopic:
		return a.topicView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  /           Search
  q           Quit

Search:
  (type)      Query; searching starts after a short pause
  ↑/↓         Move through results (wraps around)
  enter       Open the highlighted topic at the matching block
  esc         Close search

Browse:
  j/k, ↑/↓    Navigate topics
  enter       Open topic
  r           Reload topics
  esc         Back to Menu

Topic:
  j/k, ↑/↓    Scroll
  n/p         Next / previous block
  g/G         Top / bottom
  esc         Back

ctrl+c quits from anywhere.

` + a.styles.Help.Render("[esc] back to menu")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.browseView.SetDimensions(width, height)
	a.topicView.SetDimensions(width, height)
}
