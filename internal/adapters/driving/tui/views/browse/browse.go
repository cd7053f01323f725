// Package browse provides the topic list view, grouped by material.
package browse

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/components/list"
	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/keymap"
	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/messages"
	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/styles"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/ports/driving"
)

// ErrNoTopicService indicates that no topic service was provided.
var ErrNoTopicService = errors.New("topic service is required")

// View lists every topic.
type View struct {
	styles        *styles.Styles
	keymap        *keymap.KeyMap
	topicService  driving.TopicService
	corpusService driving.CorpusService
	ctx           context.Context

	topics       []domain.Topic
	selected     int
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
}

// NewView creates a new browse view. corpusService may be nil, in which
// case reloading only re-reads the topic list.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	topicService driving.TopicService,
	corpusService driving.CorpusService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:        s,
		keymap:        km,
		topicService:  topicService,
		corpusService: corpusService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
	}
}

// WithContext sets the context used to load topics.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Open loads the topic list.
func (v *View) Open() tea.Cmd {
	v.loading = true
	v.err = nil
	return v.loadTopics()
}

// loadTopics returns a command that fetches every topic.
func (v *View) loadTopics() tea.Cmd {
	return func() tea.Msg {
		if v.topicService == nil {
			return messages.TopicsLoaded{Err: ErrNoTopicService}
		}
		topics, err := v.topicService.List(v.ctx)
		return messages.TopicsLoaded{Topics: topics, Err: err}
	}
}

// Update handles messages for the browse view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v, v.handleKeyMsg(msg)

	case messages.TopicsLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.topics = groupByMaterial(msg.Topics)
			if v.selected >= len(v.topics) {
				v.selected = max(0, len(v.topics)-1)
			}
			v.adjustScroll()
		}
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.topics)-1 {
			v.selected++
			v.adjustScroll()
		}
	case keymap.Matches(k, v.keymap.Select):
		t := v.SelectedTopic()
		if t == nil {
			return nil
		}
		target := domain.NavigationTarget{MaterialSlug: t.MaterialSlug, TopicID: t.ID, BlockIndex: domain.NoBlock}
		return func() tea.Msg {
			return messages.TopicSelected{Target: target, From: messages.ViewBrowse}
		}
	case keymap.Matches(k, v.keymap.Refresh):
		if v.corpusService != nil {
			v.corpusService.Invalidate()
		}
		return v.Open()
	case keymap.Matches(k, v.keymap.Back):
		return func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return nil
}

// groupByMaterial orders topics by material in first-seen order, keeping
// store order within each material.
func groupByMaterial(topics []domain.Topic) []domain.Topic {
	order := make([]string, 0)
	groups := make(map[string][]domain.Topic)
	for _, t := range topics {
		if _, ok := groups[t.MaterialSlug]; !ok {
			order = append(order, t.MaterialSlug)
		}
		groups[t.MaterialSlug] = append(groups[t.MaterialSlug], t)
	}

	out := make([]domain.Topic, 0, len(topics))
	for _, slug := range order {
		out = append(out, groups[slug]...)
	}
	return out
}

// adjustScroll adjusts the scroll offset to keep the selected item visible.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns the number of items that can be displayed.
func (v *View) visibleItemCount() int {
	// title, material headers, help
	return max(1, v.height-10)
}

// View renders the browse view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Topics (%d)", len(v.topics))))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading topics..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err)))
	case len(v.topics) == 0:
		b.WriteString(v.styles.Muted.Render("No topics yet. Import some with: kawnhub topics import <file>"))
	default:
		b.WriteString(v.renderTopics())
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderTopics() string {
	var b strings.Builder
	visibleItems := v.visibleItemCount()
	end := min(len(v.topics), v.scrollOffset+visibleItems)

	for i := v.scrollOffset; i < end; i++ {
		t := &v.topics[i]
		if i == v.scrollOffset || v.topics[i-1].MaterialSlug != t.MaterialSlug {
			material := t.MaterialSlug
			if material == "" {
				material = "(no material)"
			}
			b.WriteString(v.styles.Subtitle.Render(material))
			b.WriteString("\n")
		}
		b.WriteString(v.renderTopic(i, t))
		b.WriteString("\n")
	}

	if len(v.topics) > visibleItems {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]", v.scrollOffset+1, end, len(v.topics))))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderTopic renders a single topic line.
func (v *View) renderTopic(index int, t *domain.Topic) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	title := t.Title
	if title == "" {
		title = t.ID
	}
	title = list.Truncate(title, max(10, v.width-20))
	blocks := fmt.Sprintf("%d blocks", t.BlockCount())

	if index == v.selected {
		return v.styles.Selected.Render(indicator+title) + "  " + v.styles.Muted.Render(blocks)
	}
	return v.styles.Normal.Render(indicator+title) + "  " + v.styles.Muted.Render(blocks)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] open  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.adjustScroll()
}

// Topics returns the listed topics in display order.
func (v *View) Topics() []domain.Topic {
	return v.topics
}

// SelectedIndex returns the currently selected topic index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedTopic returns the currently selected topic.
func (v *View) SelectedTopic() *domain.Topic {
	if v.selected < len(v.topics) {
		return &v.topics[v.selected]
	}
	return nil
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
