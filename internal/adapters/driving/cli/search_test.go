package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_RequiresQuery(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "search")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestSearchCmd_HasFlags(t *testing.T) {
	require.NotNil(t, searchCmd.Flags().Lookup("json"), "json flag should exist")
	require.NotNil(t, searchCmd.Flags().Lookup("plain"), "plain flag should exist")
}

func TestSearchCmd_ContentMatch(t *testing.T) {
	setupTestServices(t, routingTopics()...)

	out, err := execute(t, "search", "static")

	require.NoError(t, err)
	assert.Contains(t, out, `Results for "static" (2):`)
	assert.Contains(t, out, "[1] Intro to Routing  (networking, content)")
	assert.Contains(t, out, "/materials/networking/t1#block-1")
	assert.Contains(t, out, "[2] VLAN Basics  (networking, content)")
	assert.Contains(t, out, "/materials/networking/t2#block-0")
}

func TestSearchCmd_TitleMatch(t *testing.T) {
	setupTestServices(t, routingTopics()...)

	out, err := execute(t, "search", "routing")

	require.NoError(t, err)
	assert.Contains(t, out, "[1] Intro to Routing  (networking, title)")
	assert.Contains(t, out, domain.TitleMatchLabel)
	assert.Contains(t, out, "/materials/networking/t1\n")
}

func TestSearchCmd_JoinsArguments(t *testing.T) {
	setupTestServices(t, routingTopics()...)

	out, err := execute(t, "search", "static", "routes")

	require.NoError(t, err)
	assert.Contains(t, out, `Results for "static routes" (1):`)
}

func TestSearchCmd_NoMatches(t *testing.T) {
	setupTestServices(t, routingTopics()...)

	out, err := execute(t, "search", "ospf")

	require.NoError(t, err)
	assert.Contains(t, out, `No matches for "ospf".`)
}

func TestSearchCmd_QueryTooShort(t *testing.T) {
	setupTestServices(t, routingTopics()...)

	for _, q := range []string{"s", " s ", "ع"} {
		t.Run(q, func(t *testing.T) {
			_, err := execute(t, "search", q)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrQueryTooShort)
			assert.Contains(t, err.Error(), "at least 2 characters")
		})
	}
}

func TestSearchCmd_ResultCap(t *testing.T) {
	topics := make([]domain.Topic, 0, 20)
	for i := 0; i < 20; i++ {
		topics = append(topics, domain.Topic{
			ID:           fmt.Sprintf("t%02d", i),
			Title:        fmt.Sprintf("Routing part %d", i),
			MaterialSlug: "networking",
		})
	}
	setupTestServices(t, topics...)

	out, err := execute(t, "search", "routing")

	require.NoError(t, err)
	assert.Contains(t, out, `Results for "routing" (first 15):`)
	assert.Contains(t, out, "[15] Routing part 14")
	assert.NotContains(t, out, "[16]")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	setupTestServices(t, routingTopics()...)

	out, err := execute(t, "search", "--json", "static")
	require.NoError(t, err)

	var results []struct {
		ID         string `json:"id"`
		MatchType  string `json:"matchType"`
		BlockIndex int    `json:"blockIndex"`
		Path       string `json:"path"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "t1", results[0].ID)
	assert.Equal(t, "content", results[0].MatchType)
	assert.Equal(t, 1, results[0].BlockIndex)
	assert.Equal(t, "/materials/networking/t1#block-1", results[0].Path)
}

func TestSearchCmd_JSONEmptyIsArray(t *testing.T) {
	setupTestServices(t, routingTopics()...)

	out, err := execute(t, "search", "--json", "ospf")

	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestSearchCmd_ServiceNotConfigured(t *testing.T) {
	clearServices(t)

	_, err := execute(t, "search", "test")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search service not configured")
}

func TestIsTerminal_NonFileWriter(t *testing.T) {
	assert.False(t, isTerminal(new(bytes.Buffer)))
}
