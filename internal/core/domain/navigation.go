package domain

import (
	"fmt"
	"net/url"
)

// NavigationTarget is where a selected result leads.
type NavigationTarget struct {
	MaterialSlug string `json:"materialSlug"`
	TopicID      string `json:"topicId"`
	BlockIndex   int    `json:"blockIndex"`
}

// NewNavigationTarget resolves a match into a navigation target.
func NewNavigationTarget(r MatchResult) NavigationTarget {
	return NavigationTarget{
		MaterialSlug: r.MaterialSlug,
		TopicID:      r.TopicID,
		BlockIndex:   r.BlockIndex,
	}
}

// Anchor returns the fragment identifying the target block,
// or an empty string when there is no block location.
func (n NavigationTarget) Anchor() string {
	if n.BlockIndex == NoBlock || n.BlockIndex < 0 {
		return ""
	}
	return fmt.Sprintf("block-%d", n.BlockIndex)
}

// Path returns the routable location, e.g. /materials/networking/t1#block-3.
func (n NavigationTarget) Path() string {
	p := "/materials/" + url.PathEscape(n.MaterialSlug) + "/" + url.PathEscape(n.TopicID)
	if a := n.Anchor(); a != "" {
		p += "#" + a
	}
	return p
}
