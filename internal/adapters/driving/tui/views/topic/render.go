package topic

import (
	"strings"
	"unicode/utf8"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

// blockText returns the unwrapped display lines of a block.
func blockText(b domain.ContentBlock) []string {
	var out []string
	switch p := b.Data.(type) {
	case domain.TextPayload:
		out = strings.Split(p.Text, "\n")
	case domain.BilingualPayload:
		out = strings.Split(p.Primary, "\n")
		if p.Secondary != "" {
			out = append(out, strings.Split(p.Secondary, "\n")...)
		}
	case domain.ListPayload:
		for _, item := range p.Items {
			out = append(out, "• "+item.Primary)
			if item.Secondary != "" {
				out = append(out, "  "+item.Secondary)
			}
		}
	case domain.MediaPayload:
		out = append(out, "["+string(b.Type)+"] "+p.URL)
		if p.Caption != "" {
			out = append(out, p.Caption)
		}
	case domain.MalformedPayload:
		out = append(out, "(unreadable "+string(b.Type)+" block: "+p.Reason+")")
	default:
		return nil
	}
	if len(out) == 0 {
		return nil
	}

	switch b.Type {
	case domain.BlockNote:
		out[0] = "Note: " + out[0]
	case domain.BlockTip:
		out[0] = "Tip: " + out[0]
	case domain.BlockWarning:
		out[0] = "Warning: " + out[0]
	case domain.BlockQuote:
		for i := range out {
			out[i] = "> " + out[i]
		}
	}
	return out
}

// wrap breaks s into lines of at most width runes, preferring spaces.
// Words longer than width are split.
func wrap(s string, width int) []string {
	if utf8.RuneCountInString(s) <= width {
		return []string{s}
	}

	var lines []string
	var cur []rune
	for _, word := range strings.Fields(s) {
		w := []rune(word)
		for len(w) > width {
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = nil
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(cur) == 0:
			cur = append(cur, w...)
		case len(cur)+1+len(w) <= width:
			cur = append(cur, ' ')
			cur = append(cur, w...)
		default:
			lines = append(lines, string(cur))
			cur = append([]rune(nil), w...)
		}
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}
