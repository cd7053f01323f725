package domain

// MatchType records where a topic matched the query.
type MatchType string

const (
	// MatchTitle means the query was found in the topic title.
	MatchTitle MatchType = "title"

	// MatchContent means the query was found in a content block.
	MatchContent MatchType = "content"
)

// Scan limits.
const (
	// MinQueryLength is the shortest normalised query, in runes, that is scanned.
	MinQueryLength = 2

	// MaxResults caps the number of matches returned for one query.
	MaxResults = 15

	// SnippetBefore is the number of runes kept before the match position.
	SnippetBefore = 30

	// SnippetAfter is the number of runes kept from the match position onward.
	SnippetAfter = 70

	// Ellipsis marks a snippet truncated at either end.
	Ellipsis = "..."

	// TitleMatchLabel is the snippet used for title matches.
	TitleMatchLabel = "Match in title"

	// NoBlock is the BlockIndex of matches without a block location.
	NoBlock = -1
)

// MatchResult is a single search hit.
type MatchResult struct {
	// TopicID identifies the matched topic.
	TopicID string `json:"id"`

	// Title is the topic title.
	Title string `json:"title"`

	// MaterialSlug identifies the material that owns the topic.
	MaterialSlug string `json:"materialSlug"`

	// MatchType is title or content.
	MatchType MatchType `json:"matchType"`

	// BlockIndex is the matching block, or NoBlock for title matches.
	BlockIndex int `json:"blockIndex"`

	// Snippet is an excerpt around the match, or TitleMatchLabel.
	Snippet string `json:"snippet"`
}

// HasBlock returns true if the result points at a content block.
func (r MatchResult) HasBlock() bool {
	return r.BlockIndex != NoBlock
}
