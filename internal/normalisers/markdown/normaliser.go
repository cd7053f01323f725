// Package markdown converts Markdown notes into topics.
//
// The first H1 becomes the topic title. Other headings, paragraphs, lists,
// fenced code, block quotes and standalone images become content blocks in
// document order. GitHub alert quotes ("> [!NOTE]", "> [!TIP]",
// "> [!WARNING]") become note, tip and warning blocks.
package markdown

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

var (
	headingRe  = regexp.MustCompile(`^(#{1,6})\s+(.*?)(?:\s+#+)?\s*$`)
	bulletRe   = regexp.MustCompile(`^\s*(?:[-*+]|\d+[.)])\s+(.*)$`)
	imageRe    = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)\s]+)(?:\s+"[^"]*")?\)$`)
	ruleRe     = regexp.MustCompile(`^([-*_])(?:\s*([-*_])){2,}$`)
	alertRe    = regexp.MustCompile(`^\[!(NOTE|TIP|WARNING|IMPORTANT|CAUTION)\]\s*(.*)$`)
	linkRe     = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]+\)`)
	boldRe     = regexp.MustCompile(`(\*\*|__)(.+?)(\*\*|__)`)
	italicRe   = regexp.MustCompile(`(^|[^\w*])\*([^*\s][^*]*?)\*`)
	inlineCode = regexp.MustCompile("`([^`]+)`")
	slugRe     = regexp.MustCompile(`[^a-z0-9]+`)
)

// Normaliser handles Markdown documents.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".md", ".markdown"}
}

// Normalise converts the Markdown document at uri into a topic of materialSlug.
// The topic ID is derived from the file name so re-importing replaces it.
func (n *Normaliser) Normalise(uri string, content []byte, materialSlug string) (*domain.Topic, error) {
	if materialSlug == "" {
		return nil, domain.ErrInvalidInput
	}

	p := &parser{}
	for _, line := range strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n") {
		p.line(line)
	}
	p.flush()

	title := p.title
	if title == "" {
		title = extractMarkdownTitle(uri)
	}

	return &domain.Topic{
		ID:           topicID(uri),
		Title:        title,
		MaterialSlug: materialSlug,
		Content:      p.blocks,
	}, nil
}

// parser accumulates blocks line by line.
type parser struct {
	title  string
	blocks []domain.ContentBlock

	para   []string
	items  []domain.BilingualText
	quote  []string
	code   []string
	inCode bool
}

func (p *parser) line(raw string) {
	if p.inCode {
		if strings.HasPrefix(strings.TrimSpace(raw), "```") {
			p.blocks = append(p.blocks, domain.NewTextBlock(domain.BlockCode, strings.Join(p.code, "\n")))
			p.code, p.inCode = nil, false
			return
		}
		p.code = append(p.code, raw)
		return
	}

	line := strings.TrimSpace(raw)
	switch {
	case line == "":
		p.flush()

	case strings.HasPrefix(line, "```"):
		p.flush()
		p.inCode = true

	case headingRe.MatchString(line):
		p.flush()
		m := headingRe.FindStringSubmatch(line)
		text := inlineText(m[2])
		switch {
		case len(m[1]) == 1 && p.title == "":
			p.title = text
		case len(m[1]) <= 2:
			p.blocks = append(p.blocks, domain.NewTextBlock(domain.BlockHeading, text))
		default:
			p.blocks = append(p.blocks, domain.NewTextBlock(domain.BlockSubheading, text))
		}

	case ruleRe.MatchString(line):
		p.flush()

	case imageRe.MatchString(line):
		p.flush()
		m := imageRe.FindStringSubmatch(line)
		p.blocks = append(p.blocks, domain.NewMediaBlock(domain.BlockImage, m[2], m[1]))

	case strings.HasPrefix(line, ">"):
		if len(p.para) > 0 || len(p.items) > 0 {
			p.flushText()
		}
		p.quote = append(p.quote, strings.TrimSpace(strings.TrimPrefix(line, ">")))

	case bulletRe.MatchString(line):
		if len(p.para) > 0 || len(p.quote) > 0 {
			p.flushText()
		}
		m := bulletRe.FindStringSubmatch(line)
		p.items = append(p.items, domain.BilingualText{Primary: inlineText(m[1])})

	default:
		if len(p.items) > 0 || len(p.quote) > 0 {
			p.flushText()
		}
		p.para = append(p.para, line)
	}
}

// flush closes every open block, including an unterminated code fence.
func (p *parser) flush() {
	if p.inCode {
		p.blocks = append(p.blocks, domain.NewTextBlock(domain.BlockCode, strings.Join(p.code, "\n")))
		p.code, p.inCode = nil, false
	}
	p.flushText()
}

func (p *parser) flushText() {
	if len(p.para) > 0 {
		p.blocks = append(p.blocks, domain.NewBilingualBlock(domain.BlockParagraph, inlineText(strings.Join(p.para, " ")), ""))
		p.para = nil
	}
	if len(p.items) > 0 {
		p.blocks = append(p.blocks, domain.NewListBlock(p.items...))
		p.items = nil
	}
	if len(p.quote) > 0 {
		p.blocks = append(p.blocks, quoteBlock(p.quote))
		p.quote = nil
	}
}

// quoteBlock turns quoted lines into a quote, or an alert block when the
// first line carries a GitHub alert marker.
func quoteBlock(lines []string) domain.ContentBlock {
	blockType := domain.BlockQuote
	if m := alertRe.FindStringSubmatch(lines[0]); m != nil {
		switch m[1] {
		case "TIP":
			blockType = domain.BlockTip
		case "WARNING", "CAUTION":
			blockType = domain.BlockWarning
		default:
			blockType = domain.BlockNote
		}
		lines = append([]string{m[2]}, lines[1:]...)
	}

	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			parts = append(parts, l)
		}
	}
	return domain.NewBilingualBlock(blockType, inlineText(strings.Join(parts, " ")), "")
}

// inlineText removes inline Markdown formatting, keeping the visible text.
func inlineText(s string) string {
	s = linkRe.ReplaceAllString(s, "$1")
	s = inlineCode.ReplaceAllString(s, "$1")
	s = boldRe.ReplaceAllString(s, "$2")
	s = italicRe.ReplaceAllString(s, "$1$2")
	return strings.TrimSpace(s)
}

// extractMarkdownTitle derives a title from the file name.
func extractMarkdownTitle(uri string) string {
	filename := filepath.Base(uri)
	ext := filepath.Ext(filename)
	if ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}

// topicID slugs the file name, e.g. "Intro_to Routing.md" becomes "intro-to-routing".
func topicID(uri string) string {
	name := strings.TrimSuffix(filepath.Base(uri), filepath.Ext(uri))
	return strings.Trim(slugRe.ReplaceAllString(strings.ToLower(name), "-"), "-")
}
