package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNavigationTarget tests anchor and path resolution
func TestNavigationTarget(t *testing.T) {
	tests := []struct {
		name           string
		result         MatchResult
		expectedAnchor string
		expectedPath   string
	}{
		{
			name:           "content match",
			result:         MatchResult{TopicID: "t1", MaterialSlug: "networking", BlockIndex: 3},
			expectedAnchor: "block-3",
			expectedPath:   "/materials/networking/t1#block-3",
		},
		{
			name:           "first block",
			result:         MatchResult{TopicID: "t1", MaterialSlug: "networking", BlockIndex: 0},
			expectedAnchor: "block-0",
			expectedPath:   "/materials/networking/t1#block-0",
		},
		{
			name:           "title match has no anchor",
			result:         MatchResult{TopicID: "t2", MaterialSlug: "networking", BlockIndex: NoBlock},
			expectedAnchor: "",
			expectedPath:   "/materials/networking/t2",
		},
		{
			name:           "escapes path segments",
			result:         MatchResult{TopicID: "a/b", MaterialSlug: "net work", BlockIndex: NoBlock},
			expectedAnchor: "",
			expectedPath:   "/materials/net%20work/a%2Fb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := NewNavigationTarget(tt.result)

			assert.Equal(t, tt.result.TopicID, target.TopicID)
			assert.Equal(t, tt.result.MaterialSlug, target.MaterialSlug)
			assert.Equal(t, tt.result.BlockIndex, target.BlockIndex)
			assert.Equal(t, tt.expectedAnchor, target.Anchor())
			assert.Equal(t, tt.expectedPath, target.Path())
		})
	}
}
