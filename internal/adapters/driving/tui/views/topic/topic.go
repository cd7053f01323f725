// Package topic provides the topic viewer: a topic's blocks rendered in
// order, scrolled to and highlighting the block a search result points at.
package topic

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/keymap"
	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/messages"
	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/styles"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/ports/driving"
)

// line is one wrapped output line and the block it belongs to.
type line struct {
	text  string
	block int
	kind  domain.BlockType
}

// View is the topic viewer.
type View struct {
	styles       *styles.Styles
	keymap       *keymap.KeyMap
	topicService driving.TopicService
	ctx          context.Context

	target domain.NavigationTarget
	from   messages.ViewType
	topic  *domain.Topic

	lines        []line
	blockStarts  []int
	scrollOffset int
	width        int
	height       int
	ready        bool
	loading      bool
	err          error
}

// NewView creates a new topic viewer.
func NewView(s *styles.Styles, km *keymap.KeyMap, topicService driving.TopicService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:       s,
		keymap:       km,
		topicService: topicService,
		ctx:          context.Background(),
		width:        80,
		height:       24,
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

// Open loads the target topic. Esc returns to from.
func (v *View) Open(target domain.NavigationTarget, from messages.ViewType) tea.Cmd {
	v.target = target
	v.from = from
	v.topic = nil
	v.lines = nil
	v.blockStarts = nil
	v.scrollOffset = 0
	v.err = nil
	v.loading = true
	return v.loadTopic(target.TopicID)
}

// loadTopic returns a command that fetches the topic.
func (v *View) loadTopic(id string) tea.Cmd {
	return func() tea.Msg {
		if v.topicService == nil {
			return messages.TopicLoaded{TopicID: id, Err: ErrNoTopicService}
		}
		t, err := v.topicService.Get(v.ctx, id)
		return messages.TopicLoaded{TopicID: id, Topic: t, Err: err}
	}
}

// Update handles messages for the topic viewer.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v, v.handleKeyMsg(msg)

	case messages.TopicLoaded:
		if msg.TopicID != v.target.TopicID {
			return v, nil
		}
		v.loading = false
		v.err = msg.Err
		v.topic = msg.Topic
		v.layout()
		v.scrollToBlock(v.target.BlockIndex)
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		v.scrollBy(-1)
	case keymap.Matches(k, v.keymap.Down):
		v.scrollBy(1)
	case k == "pgup" || k == "ctrl+u":
		v.scrollBy(-v.visibleLines())
	case k == "pgdown" || k == "ctrl+d":
		v.scrollBy(v.visibleLines())
	case keymap.Matches(k, v.keymap.Top):
		v.scrollOffset = 0
	case keymap.Matches(k, v.keymap.Bottom):
		v.scrollOffset = v.maxScrollOffset()
	case keymap.Matches(k, v.keymap.NextBlock):
		v.jumpBlock(1)
	case keymap.Matches(k, v.keymap.PrevBlock):
		v.jumpBlock(-1)
	case keymap.Matches(k, v.keymap.Back):
		from := v.from
		return func() tea.Msg {
			return messages.ViewChanged{View: from}
		}
	}
	return nil
}

// layout renders every block into wrapped lines and records where each
// block starts.
func (v *View) layout() {
	v.lines = nil
	v.blockStarts = nil
	if v.topic == nil {
		return
	}

	width := v.contentWidth()
	v.blockStarts = make([]int, len(v.topic.Content))
	for i, b := range v.topic.Content {
		v.blockStarts[i] = len(v.lines)
		for _, raw := range blockText(b) {
			for _, w := range wrap(raw, width) {
				v.lines = append(v.lines, line{text: w, block: i, kind: b.Type})
			}
		}
		v.lines = append(v.lines, line{block: i, kind: b.Type})
	}
}

// scrollToBlock positions the block at the top of the viewport.
// Out-of-range indexes, including domain.NoBlock, leave the top in view.
func (v *View) scrollToBlock(i int) {
	if i < 0 || i >= len(v.blockStarts) {
		v.scrollOffset = 0
		return
	}
	v.scrollOffset = min(v.blockStarts[i], v.maxScrollOffset())
}

// jumpBlock moves to the start of the next (dir > 0) or previous block.
func (v *View) jumpBlock(dir int) {
	if len(v.blockStarts) == 0 {
		return
	}
	current := v.CurrentBlock()
	next := current + dir
	if dir < 0 && v.scrollOffset > v.blockStarts[current] {
		next = current
	}
	if next < 0 || next >= len(v.blockStarts) {
		return
	}
	v.scrollOffset = min(v.blockStarts[next], v.maxScrollOffset())
}

func (v *View) scrollBy(n int) {
	v.scrollOffset = max(0, min(v.scrollOffset+n, v.maxScrollOffset()))
}

// CurrentBlock returns the index of the block at the top of the viewport.
func (v *View) CurrentBlock() int {
	if v.scrollOffset < len(v.lines) {
		return v.lines[v.scrollOffset].block
	}
	return 0
}

func (v *View) contentWidth() int {
	return max(20, v.width-4)
}

// visibleLines returns the number of lines that can be displayed.
func (v *View) visibleLines() int {
	// title, separator, position and help
	return max(1, v.height-7)
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	return max(0, len(v.lines)-v.visibleLines())
}

// View renders the topic viewer.
func (v *View) View() string {
	var b strings.Builder

	title := v.target.TopicID
	if v.topic != nil && v.topic.Title != "" {
		title = v.topic.Title
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("  ")
	b.WriteString(v.styles.Muted.Render(v.target.Path()))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(v.width-4, 60)))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading topic..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err)))
	case len(v.lines) == 0:
		b.WriteString(v.styles.Muted.Render("(No content)"))
	default:
		b.WriteString(v.renderContent())
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderContent() string {
	var b strings.Builder
	visible := v.visibleLines()
	end := min(len(v.lines), v.scrollOffset+visible)
	for i := v.scrollOffset; i < end; i++ {
		b.WriteString(v.renderLine(v.lines[i]))
		b.WriteString("\n")
	}

	if len(v.lines) > visible {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  Block %d/%d  Line %d-%d of %d",
			v.CurrentBlock()+1, len(v.blockStarts), v.scrollOffset+1, end, len(v.lines))))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (v *View) renderLine(l line) string {
	var style lipgloss.Style
	//nolint:exhaustive // remaining types render as plain text
	switch l.kind {
	case domain.BlockHeading, domain.BlockSubheading:
		style = v.styles.Heading
	case domain.BlockCode:
		style = v.styles.Code
	case domain.BlockNote, domain.BlockTip, domain.BlockQuote:
		style = v.styles.Note
	case domain.BlockWarning:
		style = v.styles.Warning
	case domain.BlockImage, domain.BlockVideo, domain.BlockFile:
		style = v.styles.Muted
	default:
		style = v.styles.Normal
	}
	if l.block == v.target.BlockIndex && l.text != "" {
		style = style.Background(v.styles.Theme().Highlight)
	}
	return style.Render(l.text)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	hints := make([]string, 0, 7)
	for _, b := range v.keymap.TopicHelp() {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return v.styles.Help.Render(strings.Join(hints, "  "))
}

// SetDimensions sets the view dimensions and re-wraps the content.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	block := v.CurrentBlock()
	v.layout()
	if len(v.blockStarts) > 0 {
		v.scrollOffset = min(v.blockStarts[block], v.maxScrollOffset())
	}
}

// Topic returns the loaded topic.
func (v *View) Topic() *domain.Topic {
	return v.topic
}

// Target returns the navigation target being shown.
func (v *View) Target() domain.NavigationTarget {
	return v.target
}

// ScrollOffset returns the first visible line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}

// BlockStart returns the first line of block i.
func (v *View) BlockStart(i int) (int, bool) {
	if i < 0 || i >= len(v.blockStarts) {
		return 0, false
	}
	return v.blockStarts[i], true
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
