package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

func TestExtractTopicID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid topic URI",
			uri:      "kawnhub://topics/t-123",
			expected: "t-123",
		},
		{
			name:     "invalid prefix",
			uri:      "file://topics/t-123",
			expected: "",
		},
		{
			name:     "topic list URI",
			uri:      "kawnhub://topics",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "kawnhub://topics/t-123/blocks",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractTopicID(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func routingTopics() []domain.Topic {
	return []domain.Topic{
		{
			ID:           "t1",
			Title:        "Intro to Routing",
			MaterialSlug: "networking",
			Content: []domain.ContentBlock{
				domain.NewTextBlock(domain.BlockHeading, "Overview"),
				domain.NewBilingualBlock(domain.BlockParagraph, "Static routes are manual.", ""),
			},
		},
		{ID: "t2", Title: "VLAN Basics", MaterialSlug: "networking"},
	}
}

func TestServer_handleTopicsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil topic service returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.NoError(t, err)

		result, err := server.handleTopicsResource(ctx, makeReadResourceRequest("kawnhub://topics"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns topics successfully", func(t *testing.T) {
		topics := &mockTopicService{topics: routingTopics()}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Topics: topics})
		require.NoError(t, err)

		result, err := server.handleTopicsResource(ctx, makeReadResourceRequest("kawnhub://topics"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		text := result.Contents[0].Text
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, text, `"id": "t1"`)
		assert.Contains(t, text, `"blocks": 2`)
		assert.Contains(t, text, `"uri": "kawnhub://topics/t2"`)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		topics := &mockTopicService{err: errors.New("database error")}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Topics: topics})
		require.NoError(t, err)

		_, err = server.handleTopicsResource(ctx, makeReadResourceRequest("kawnhub://topics"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing topics")
	})
}

func TestServer_handleTopicResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil topic service returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.NoError(t, err)

		_, err = server.handleTopicResource(ctx, makeReadResourceRequest("kawnhub://topics/t1"))
		require.Error(t, err)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Topics: &mockTopicService{}})
		require.NoError(t, err)

		_, err = server.handleTopicResource(ctx, makeReadResourceRequest("kawnhub://invalid/uri"))
		require.Error(t, err)
	})

	t.Run("unknown topic returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Topics: &mockTopicService{topics: routingTopics()}})
		require.NoError(t, err)

		_, err = server.handleTopicResource(ctx, makeReadResourceRequest("kawnhub://topics/missing"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("returns topic with content blocks", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Topics: &mockTopicService{topics: routingTopics()}})
		require.NoError(t, err)

		result, err := server.handleTopicResource(ctx, makeReadResourceRequest("kawnhub://topics/t1"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		text := result.Contents[0].Text
		assert.Contains(t, text, `"title": "Intro to Routing"`)
		assert.Contains(t, text, `"type": "paragraph"`)
		assert.Contains(t, text, `"primaryText": "Static routes are manual."`)
	})

	t.Run("returns error on service failure", func(t *testing.T) {
		topics := &mockTopicService{err: errors.New("database error")}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Topics: topics})
		require.NoError(t, err)

		_, err = server.handleTopicResource(ctx, makeReadResourceRequest("kawnhub://topics/t1"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting topic")
	})
}
