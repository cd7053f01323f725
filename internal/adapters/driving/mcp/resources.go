package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for KawnHub resources.
	uriScheme = "kawnhub://"

	topicsPrefix = uriScheme + "topics/"
)

// registerResources adds the topic resources when a topic service is wired.
func (s *Server) registerResources() {
	if s.ports.Topics == nil {
		return
	}

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "topics",
		Name:        "topics",
		Description: "List of all topics with their material and block count",
		MIMEType:    "application/json",
	}, s.handleTopicsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "topics/{topicId}",
		Name:        "topic",
		Description: "A topic with its ordered content blocks",
		MIMEType:    "application/json",
	}, s.handleTopicResource)
	s.exposed = append(s.exposed, uriScheme+"topics", uriScheme+"topics/{topicId}")
}

// handleTopicsResource returns a summary of every topic.
func (s *Server) handleTopicsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Topics == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	topics, err := s.ports.Topics.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing topics: %w", err)
	}

	type topicInfo struct {
		ID           string `json:"id"`
		Title        string `json:"title"`
		MaterialSlug string `json:"materialSlug"`
		Blocks       int    `json:"blocks"`
		URI          string `json:"uri"`
	}

	infos := make([]topicInfo, len(topics))
	for i := range topics {
		infos[i] = topicInfo{
			ID:           topics[i].ID,
			Title:        topics[i].Title,
			MaterialSlug: topics[i].MaterialSlug,
			Blocks:       topics[i].BlockCount(),
			URI:          topicURI(topics[i].ID),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling topics: %w", err)
	}

	return jsonResult(req.Params.URI, string(data)), nil
}

// handleTopicResource returns one topic with its content blocks.
func (s *Server) handleTopicResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Topics == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract topicId from URI: kawnhub://topics/{topicId}
	topicID := extractTopicID(req.Params.URI)
	if topicID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	topic, err := s.ports.Topics.Get(ctx, topicID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting topic: %w", err)
	}

	data, err := json.MarshalIndent(topic, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling topic: %w", err)
	}

	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// topicURI returns the resource URI of a topic.
func topicURI(id string) string {
	return topicsPrefix + id
}

// extractTopicID extracts the topic ID from a URI like kawnhub://topics/{topicId}.
func extractTopicID(uri string) string {
	if !strings.HasPrefix(uri, topicsPrefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, topicsPrefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
