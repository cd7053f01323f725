// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

// DebounceElapsed is delivered when a search debounce timer fires.
type DebounceElapsed struct {
	Token uint64
}

// SearchCompleted carries the results of request Seq back to the model.
type SearchCompleted struct {
	Seq     uint64
	Query   string
	Results []domain.MatchResult
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the search dialog.
	ViewSearch
	// ViewBrowse lists topics grouped by material.
	ViewBrowse
	// ViewTopic shows a topic's content blocks.
	ViewTopic
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewBrowse:
		return "browse"
	case ViewTopic:
		return "topic"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// TopicSelected asks the app to open the topic viewer at Target.
// From is the view to return to when the viewer is closed.
type TopicSelected struct {
	Target domain.NavigationTarget
	From   ViewType
}

// TopicLoaded carries a topic fetched for the viewer.
type TopicLoaded struct {
	TopicID string
	Topic   *domain.Topic
	Err     error
}

// TopicsLoaded carries the topic list for the browse view.
type TopicsLoaded struct {
	Topics []domain.Topic
	Err    error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
