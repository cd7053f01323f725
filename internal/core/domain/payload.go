package domain

import (
	"fmt"
	"strings"
)

// BlockPayload is the decoded data of a content block.
// Implementations: TextPayload, BilingualPayload, ListPayload,
// MediaPayload and MalformedPayload.
type BlockPayload interface {
	// SearchText returns the text the scan engine matches against.
	SearchText() string

	isPayload()
}

// BilingualText is a text with an optional translation.
type BilingualText struct {
	Primary   string `json:"primaryText" yaml:"primaryText"`
	Secondary string `json:"secondaryText" yaml:"secondaryText"`
}

// Text joins the non-empty parts with a single space.
func (b BilingualText) Text() string {
	return joinNonEmpty(b.Primary, b.Secondary)
}

// TextPayload is a plain string payload.
type TextPayload struct {
	Text string
}

// BilingualPayload carries a primary text and its secondary translation.
type BilingualPayload struct {
	Primary   string
	Secondary string
}

// ListPayload is an ordered sequence of bilingual items.
type ListPayload struct {
	Items []BilingualText
}

// MediaPayload references an image, video or file. It has no searchable text.
type MediaPayload struct {
	URL     string
	Caption string
}

// MalformedPayload holds data of an unexpected shape.
type MalformedPayload struct {
	Raw    any
	Reason string
}

func (TextPayload) isPayload()      {}
func (BilingualPayload) isPayload() {}
func (ListPayload) isPayload()      {}
func (MediaPayload) isPayload()     {}
func (MalformedPayload) isPayload() {}

// SearchText returns the text unchanged.
func (p TextPayload) SearchText() string {
	return p.Text
}

// SearchText joins primary and secondary text.
func (p BilingualPayload) SearchText() string {
	return joinNonEmpty(p.Primary, p.Secondary)
}

// SearchText joins the text of every item.
func (p ListPayload) SearchText() string {
	parts := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		parts = append(parts, item.Text())
	}
	return joinNonEmpty(parts...)
}

// SearchText is always empty for media.
func (MediaPayload) SearchText() string {
	return ""
}

// SearchText is always empty for malformed data.
func (MalformedPayload) SearchText() string {
	return ""
}

// Err reports why the payload could not be classified.
func (p MalformedPayload) Err() error {
	return fmt.Errorf("%w: %s", ErrMalformedBlock, p.Reason)
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// DecodePayload classifies raw block data into a BlockPayload.
// raw is the generic value produced by a JSON or YAML decoder:
// a string, a map with string keys, or a list.
func DecodePayload(blockType BlockType, raw any) BlockPayload {
	if blockType.IsMedia() {
		return decodeMedia(raw)
	}

	switch v := raw.(type) {
	case nil:
		return TextPayload{}
	case string:
		return TextPayload{Text: v}
	case map[string]any:
		return decodeBilingual(v)
	case []any:
		return decodeList(v)
	default:
		return MalformedPayload{Raw: raw, Reason: fmt.Sprintf("unsupported data type %T", raw)}
	}
}

func decodeBilingual(m map[string]any) BlockPayload {
	primary, okP := optionalString(m, "primaryText")
	secondary, okS := optionalString(m, "secondaryText")
	if !okP || !okS {
		return MalformedPayload{Raw: m, Reason: "bilingual fields must be strings"}
	}
	if _, has := m["primaryText"]; !has {
		if _, has := m["secondaryText"]; !has {
			return MalformedPayload{Raw: m, Reason: "object without primaryText or secondaryText"}
		}
	}
	return BilingualPayload{Primary: primary, Secondary: secondary}
}

func decodeList(items []any) BlockPayload {
	out := make([]BilingualText, 0, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, BilingualText{Primary: v})
		case map[string]any:
			p, ok := decodeBilingual(v).(BilingualPayload)
			if !ok {
				return MalformedPayload{Raw: items, Reason: fmt.Sprintf("list item %d is not bilingual text", i)}
			}
			out = append(out, BilingualText{Primary: p.Primary, Secondary: p.Secondary})
		default:
			return MalformedPayload{Raw: items, Reason: fmt.Sprintf("list item %d has type %T", i, item)}
		}
	}
	return ListPayload{Items: out}
}

func decodeMedia(raw any) BlockPayload {
	switch v := raw.(type) {
	case string:
		return MediaPayload{URL: v}
	case map[string]any:
		url, _ := v["url"].(string)
		caption, _ := v["caption"].(string)
		return MediaPayload{URL: url, Caption: caption}
	default:
		return MediaPayload{}
	}
}

// optionalString reads key from m. A missing key is an empty string;
// a present non-string value reports false.
func optionalString(m map[string]any, key string) (string, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", true
	}
	s, ok := v.(string)
	return s, ok
}

// EncodePayload converts a payload back into its generic wire value.
// MalformedPayload round-trips its raw value unchanged.
func EncodePayload(p BlockPayload) any {
	switch v := p.(type) {
	case nil:
		return nil
	case TextPayload:
		return v.Text
	case BilingualPayload:
		return map[string]any{"primaryText": v.Primary, "secondaryText": v.Secondary}
	case ListPayload:
		items := make([]any, 0, len(v.Items))
		for _, item := range v.Items {
			items = append(items, map[string]any{"primaryText": item.Primary, "secondaryText": item.Secondary})
		}
		return items
	case MediaPayload:
		m := map[string]any{"url": v.URL}
		if v.Caption != "" {
			m["caption"] = v.Caption
		}
		return m
	case MalformedPayload:
		return v.Raw
	default:
		return nil
	}
}
