package domain

import (
	"encoding/json"
	"time"
)

// BlockType identifies the kind of a content block.
type BlockType string

// Block type vocabulary.
const (
	BlockHeading    BlockType = "heading"
	BlockSubheading BlockType = "subheading"
	BlockParagraph  BlockType = "paragraph"
	BlockList       BlockType = "list"
	BlockNote       BlockType = "note"
	BlockWarning    BlockType = "warning"
	BlockTip        BlockType = "tip"
	BlockCode       BlockType = "code"
	BlockQuote      BlockType = "quote"
	BlockImage      BlockType = "image"
	BlockVideo      BlockType = "video"
	BlockFile       BlockType = "file"
)

// AllBlockTypes returns the block vocabulary in display order.
func AllBlockTypes() []BlockType {
	return []BlockType{
		BlockHeading, BlockSubheading, BlockParagraph, BlockList,
		BlockNote, BlockWarning, BlockTip, BlockCode, BlockQuote,
		BlockImage, BlockVideo, BlockFile,
	}
}

// IsValid returns true if the block type is part of the vocabulary.
func (t BlockType) IsValid() bool {
	for _, bt := range AllBlockTypes() {
		if t == bt {
			return true
		}
	}
	return false
}

// IsMedia returns true for block types that reference a blob instead of text.
func (t BlockType) IsMedia() bool {
	return t == BlockImage || t == BlockVideo || t == BlockFile
}

// String returns the string representation.
func (t BlockType) String() string {
	return string(t)
}

// Topic is a single lesson or article belonging to a material.
type Topic struct {
	// ID is the unique identifier for this topic.
	ID string `json:"id"`

	// Title is the topic's display title.
	Title string `json:"title"`

	// MaterialSlug is the URL-safe identifier of the owning material.
	MaterialSlug string `json:"materialSlug"`

	// Content is the ordered list of content blocks.
	Content []ContentBlock `json:"content"`

	// CreatedAt is when the topic was first stored.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the topic was last modified.
	UpdatedAt time.Time `json:"updatedAt"`
}

// BlockCount returns the number of content blocks.
func (t *Topic) BlockCount() int {
	return len(t.Content)
}

// Block returns the block at index i, or false if i is out of range.
func (t *Topic) Block(i int) (ContentBlock, bool) {
	if i < 0 || i >= len(t.Content) {
		return ContentBlock{}, false
	}
	return t.Content[i], true
}

// Clone returns a copy that shares no block slice with t.
// Payload values are immutable and are shared.
func (t Topic) Clone() Topic {
	c := t
	if t.Content != nil {
		c.Content = make([]ContentBlock, len(t.Content))
		copy(c.Content, t.Content)
	}
	return c
}

// ContentBlock is one typed unit of topic content.
// Data is decoded once at the storage boundary.
type ContentBlock struct {
	Type BlockType
	Data BlockPayload
}

// NewTextBlock creates a block with a plain text payload.
func NewTextBlock(t BlockType, text string) ContentBlock {
	return ContentBlock{Type: t, Data: TextPayload{Text: text}}
}

// NewBilingualBlock creates a block with a bilingual payload.
func NewBilingualBlock(t BlockType, primary, secondary string) ContentBlock {
	return ContentBlock{Type: t, Data: BilingualPayload{Primary: primary, Secondary: secondary}}
}

// NewListBlock creates a list block from bilingual items.
func NewListBlock(items ...BilingualText) ContentBlock {
	return ContentBlock{Type: BlockList, Data: ListPayload{Items: items}}
}

// NewMediaBlock creates an image, video or file block.
func NewMediaBlock(t BlockType, url, caption string) ContentBlock {
	return ContentBlock{Type: t, Data: MediaPayload{URL: url, Caption: caption}}
}

// SearchText returns the block's searchable text.
// A block without payload yields the empty string.
func (b ContentBlock) SearchText() string {
	if b.Data == nil {
		return ""
	}
	return b.Data.SearchText()
}

type blockWire struct {
	Type BlockType `json:"type"`
	Data any       `json:"data"`
}

// MarshalJSON encodes the block in its wire shape {"type", "data"}.
func (b ContentBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(blockWire{Type: b.Type, Data: EncodePayload(b.Data)})
}

// UnmarshalJSON decodes the wire shape and classifies the payload.
// Unexpected shapes become MalformedPayload rather than an error.
func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	var w blockWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	b.Type = w.Type
	b.Data = DecodePayload(w.Type, w.Data)
	return nil
}
